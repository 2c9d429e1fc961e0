package model

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"testing"

	"github.com/dylhunn/dragontoothmg"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var fenLetters = map[PieceType]byte{
	Pawn:   'p',
	Knight: 'n',
	Bishop: 'b',
	Rook:   'r',
	Queen:  'q',
	King:   'k',
}

func algebraic(sq Square) string {
	return fmt.Sprintf("%c%d", 'a'+sq.File, 8-sq.Rank)
}

// referenceFEN renders the game for the reference generator. Castling rights follow the
// same unmoved-king-and-rook rule the engine applies.
func referenceFEN(g *Game) string {
	var sb strings.Builder
	for r := 0; r < 8; r++ {
		empty := 0
		for f := 0; f < 8; f++ {
			p := g.board.cells[r][f]
			if p == nil {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			letter := fenLetters[p.Type]
			if p.Color == White {
				letter -= 'a' - 'A'
			}
			sb.WriteByte(letter)
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if r < 7 {
			sb.WriteByte('/')
		}
	}

	side := "w"
	if g.toMove == Black {
		side = "b"
	}

	castling := ""
	for _, c := range []struct {
		color  Color
		side   castleSide
		letter string
	}{
		{White, kingside, "K"}, {White, queenside, "Q"}, {Black, kingside, "k"}, {Black, queenside, "q"},
	} {
		rank := c.color.homeRank()
		if unmovedAt(g.board, Sq(rank, kingHomeFile), King, c.color) && unmovedAt(g.board, Sq(rank, c.side.rookFile), Rook, c.color) {
			castling += c.letter
		}
	}
	if castling == "" {
		castling = "-"
	}

	ep := "-"
	if g.lastMove.isDoublePawnStep() {
		ep = algebraic(Sq((g.lastMove.From.Rank+g.lastMove.To.Rank)/2, g.lastMove.To.File))
	}
	return fmt.Sprintf("%s %s %s %s 0 1", sb.String(), side, castling, ep)
}

func fromReferenceSquare(idx uint8) Square {
	return Sq(7-int(idx)/8, int(idx)%8)
}

// referenceMoves lists distinct from/to pairs; the reference emits one move per
// promotion piece.
func referenceMoves(fen string) []Move {
	board := dragontoothmg.ParseFen(fen)
	seen := map[Move]bool{}
	moves := []Move{}
	for _, m := range board.GenerateLegalMoves() {
		mv := Move{From: fromReferenceSquare(m.From()), To: fromReferenceSquare(m.To())}
		if !seen[mv] {
			seen[mv] = true
			moves = append(moves, mv)
		}
	}
	return moves
}

var sortMoves = cmpopts.SortSlices(func(a, b Move) bool {
	if a.From != b.From {
		return a.From.Rank < b.From.Rank || (a.From.Rank == b.From.Rank && a.From.File < b.From.File)
	}
	return a.To.Rank < b.To.Rank || (a.To.Rank == b.To.Rank && a.To.File < b.To.File)
})

func TestLegalMovesMatchReferenceGenerator(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping random playouts in short mode")
	}

	rng := rand.New(rand.NewSource(20240607))
	choices := []PieceType{Queen, Rook, Bishop, Knight}

	for game := 0; game < 12; game++ {
		g := NewGame(fmt.Sprintf("playout-%d", game))
		for ply := 0; ply < 160; ply++ {
			fen := referenceFEN(g)
			got := g.AllLegalMoves(g.ToMove())
			want := referenceMoves(fen)
			if diff := cmp.Diff(want, got, sortMoves); diff != "" {
				t.Fatalf("game %d ply %d %s: legal moves mismatch (-reference +engine):\n%s", game, ply, fen, diff)
			}
			if len(got) == 0 {
				if !g.IsGameOver() {
					t.Fatalf("game %d ply %d %s: no legal moves but game not over", game, ply, fen)
				}
				break
			}

			m := got[rng.Intn(len(got))]
			res, err := g.AttemptMove(MoveRequest{From: m.From, To: m.To})
			if err != nil {
				t.Fatalf("game %d ply %d %s: legal move %v rejected: %v", game, ply, fen, m, err)
			}
			if res.PromotionPending {
				if _, err := g.Promote(choices[rng.Intn(len(choices))]); err != nil {
					t.Fatalf("game %d ply %d: promote: %v", game, ply, err)
				}
			}
		}
	}
}
