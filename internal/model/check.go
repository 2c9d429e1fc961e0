package model

import "golang.org/x/exp/slices"

// kingPosition scans the board for color's king.
func (g *Game) kingPosition(color Color) (Square, bool) {
	for r := 0; r < 8; r++ {
		for f := 0; f < 8; f++ {
			p := g.board.cells[r][f]
			if p != nil && p.Type == King && p.Color == color {
				return Sq(r, f), true
			}
		}
	}
	return Square{}, false
}

// isInCheck reports whether any enemy piece's raw movement reaches color's king. A board
// without that king is never in check. This must not go through the legality filter,
// which calls back into it.
func (g *Game) isInCheck(color Color) bool {
	kingSq, ok := g.kingPosition(color)
	if !ok {
		return false
	}
	return g.isAttackedBy(kingSq, color.Opponent())
}

func (g *Game) isAttackedBy(target Square, attacker Color) bool {
	for r := 0; r < 8; r++ {
		for f := 0; f < 8; f++ {
			p := g.board.cells[r][f]
			if p == nil || p.Color != attacker {
				continue
			}
			if slices.Contains(RawMoves(Sq(r, f), g.board, g.lastMove), target) {
				return true
			}
		}
	}
	return false
}

func (g *Game) IsInCheck(color Color) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.isInCheck(color)
}

func (g *Game) KingPosition(color Color) (Square, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.kingPosition(color)
}
