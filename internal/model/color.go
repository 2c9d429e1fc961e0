package model

type Color string

const (
	White Color = "white"
	Black Color = "black"
)

func (c Color) Valid() bool {
	return c == White || c == Black
}

func (c Color) Opponent() Color {
	if c == White {
		return Black
	}
	return White
}

// homeRank is the back rank a color starts on.
func (c Color) homeRank() int {
	if c == White {
		return 7
	}
	return 0
}

// forward is the rank delta of a single pawn step.
func (c Color) forward() int {
	if c == White {
		return -1
	}
	return 1
}

// pawnRank is the rank pawns of this color start on.
func (c Color) pawnRank() int {
	if c == White {
		return 6
	}
	return 1
}

// promotionRank is the back rank opposite this color.
func (c Color) promotionRank() int {
	return c.Opponent().homeRank()
}
