package model

import "fmt"

type PieceType string

const (
	King   PieceType = "king"
	Queen  PieceType = "queen"
	Rook   PieceType = "rook"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Pawn   PieceType = "pawn"
)

// tracksMoved reports whether pieces of this type carry a meaningful HasMoved flag.
func (p PieceType) tracksMoved() bool {
	return p == King || p == Rook
}

// Piece is owned by exactly one board cell. Moving it transfers the pointer between
// cells; a piece is never placed on two cells at once.
type Piece struct {
	Type  PieceType `json:"type"`
	Color Color     `json:"color"`
	// HasMoved is only meaningful for kings and rooks.
	HasMoved bool `json:"hasMoved"`
}

func NewPiece(t PieceType, c Color) *Piece {
	return &Piece{Type: t, Color: c}
}

// Square addresses a cell by rank (row 0 is black's back rank) and file (column).
type Square struct {
	Rank int `json:"rank"`
	File int `json:"file"`
}

func Sq(rank, file int) Square {
	return Square{Rank: rank, File: file}
}

func (s Square) InBounds() bool {
	return s.Rank >= 0 && s.Rank < 8 && s.File >= 0 && s.File < 8
}

func (s Square) offset(dRank, dFile int) Square {
	return Square{Rank: s.Rank + dRank, File: s.File + dFile}
}

func (s Square) String() string {
	return fmt.Sprintf("(%d,%d)", s.Rank, s.File)
}

type Board struct {
	cells [8][8]*Piece
}

func NewEmptyBoard() *Board {
	return &Board{}
}

// NewStandardBoard returns the initial position: white on ranks 6 and 7, black on 0 and 1.
func NewStandardBoard() *Board {
	b := NewEmptyBoard()
	backRank := []PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for file, t := range backRank {
		b.cells[0][file] = NewPiece(t, Black)
		b.cells[7][file] = NewPiece(t, White)
		b.cells[1][file] = NewPiece(Pawn, Black)
		b.cells[6][file] = NewPiece(Pawn, White)
	}
	return b
}

// At returns the occupant of sq, or nil.
func (b *Board) At(sq Square) *Piece {
	return b.cells[sq.Rank][sq.File]
}

// Place puts p on sq, replacing any occupant. Used to build custom positions.
func (b *Board) Place(sq Square, p *Piece) {
	b.cells[sq.Rank][sq.File] = p
}

func (b *Board) set(sq Square, p *Piece) {
	b.cells[sq.Rank][sq.File] = p
}

func (b *Board) isEmpty(sq Square) bool {
	return b.cells[sq.Rank][sq.File] == nil
}

// clone deep-copies every piece so the copy shares no state with b.
func (b *Board) clone() *Board {
	c := &Board{}
	for r := 0; r < 8; r++ {
		for f := 0; f < 8; f++ {
			if p := b.cells[r][f]; p != nil {
				cp := *p
				c.cells[r][f] = &cp
			}
		}
	}
	return c
}

// each calls fn for every occupied cell in rank-major order.
func (b *Board) each(fn func(sq Square, p *Piece)) {
	for r := 0; r < 8; r++ {
		for f := 0; f < 8; f++ {
			if p := b.cells[r][f]; p != nil {
				fn(Square{Rank: r, File: f}, p)
			}
		}
	}
}

// SquareView is the read-only projection of an occupied cell.
type SquareView struct {
	Color Color     `json:"color"`
	Type  PieceType `json:"type"`
}

// Snapshot is an 8x8 grid of occupied cells; nil marks an empty cell.
type Snapshot [8][8]*SquareView

func (b *Board) Snapshot() Snapshot {
	var s Snapshot
	b.each(func(sq Square, p *Piece) {
		s[sq.Rank][sq.File] = &SquareView{Color: p.Color, Type: p.Type}
	})
	return s
}
