package model

import "testing"

type placement struct {
	sq       Square
	t        PieceType
	c        Color
	hasMoved bool
}

func place(rank, file int, t PieceType, c Color) placement {
	return placement{sq: Sq(rank, file), t: t, c: c}
}

func placeMoved(rank, file int, t PieceType, c Color) placement {
	return placement{sq: Sq(rank, file), t: t, c: c, hasMoved: true}
}

func newTestGame(toMove Color, pieces ...placement) *Game {
	b := NewEmptyBoard()
	for _, p := range pieces {
		piece := NewPiece(p.t, p.c)
		piece.HasMoved = p.hasMoved
		b.Place(p.sq, piece)
	}
	return NewGameFromBoard("test", b, toMove)
}

func mustMove(t *testing.T, g *Game, from, to Square) MoveResult {
	t.Helper()
	res, err := g.AttemptMove(MoveRequest{From: from, To: to})
	if err != nil {
		t.Fatalf("AttemptMove(%s -> %s) error: %v", from, to, err)
	}
	return res
}

func containsSquare(squares []Square, sq Square) bool {
	for _, s := range squares {
		if s == sq {
			return true
		}
	}
	return false
}

// deepCells copies every piece value so later mutation of the live board is visible in a diff.
func deepCells(g *Game) [8][8]*Piece {
	return g.board.clone().cells
}
