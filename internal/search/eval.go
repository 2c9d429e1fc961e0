package search

import "github.com/benbeisheim/chess-rules-backend/internal/model"

// PieceValues are centipawn material weights. Kings carry no material value.
var PieceValues = map[model.PieceType]int{
	model.Pawn:   100,
	model.Knight: 300,
	model.Bishop: 300,
	model.Rook:   500,
	model.Queen:  900,
	model.King:   0,
}

// Evaluate scores a position from white's point of view: positive favors white.
func Evaluate(snapshot model.Snapshot) int {
	score := 0
	for r := 0; r < 8; r++ {
		for f := 0; f < 8; f++ {
			sv := snapshot[r][f]
			if sv == nil {
				continue
			}
			if sv.Color == model.White {
				score += PieceValues[sv.Type]
			} else {
				score -= PieceValues[sv.Type]
			}
		}
	}
	return score
}

// perspective flips a white-relative score to color's point of view.
func perspective(score int, color model.Color) int {
	if color == model.Black {
		return -score
	}
	return score
}
