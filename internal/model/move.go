package model

// MoveRequest is a move submitted to a game. Promotion may be left empty; a pawn
// reaching the back rank without one leaves the game waiting for Promote.
type MoveRequest struct {
	From      Square    `json:"from"`
	To        Square    `json:"to"`
	Promotion PieceType `json:"promotion,omitempty"`
}

// Move is a from/to pair, used when enumerating every legal move of a side.
type Move struct {
	From Square `json:"from"`
	To   Square `json:"to"`
}

// LastMove records the previous ply. Piece is a copy taken when the move completed.
type LastMove struct {
	From  Square `json:"from"`
	To    Square `json:"to"`
	Piece Piece  `json:"piece"`
}

// isDoublePawnStep reports whether the recorded move was a pawn advancing two ranks.
func (lm *LastMove) isDoublePawnStep() bool {
	if lm == nil || lm.Piece.Type != Pawn {
		return false
	}
	d := lm.To.Rank - lm.From.Rank
	return (d == 2 || d == -2) && lm.From.File == lm.To.File
}

type CastleRookMove struct {
	From Square `json:"from"`
	To   Square `json:"to"`
}

// Ply is one completed move in the game history.
type Ply struct {
	Piece          Piece           `json:"piece"`
	From           Square          `json:"from"`
	To             Square          `json:"to"`
	CapturedPiece  *SquareView     `json:"capturedPiece"`
	CastleRookMove *CastleRookMove `json:"castleRookMove"`
	EnPassant      bool            `json:"enPassant"`
	Promotion      PieceType       `json:"promotion,omitempty"`
}

// MoveResult describes an accepted move. A rejected move returns an error instead.
type MoveResult struct {
	From             Square      `json:"from"`
	To               Square      `json:"to"`
	CapturedPiece    *SquareView `json:"capturedPiece"`
	PromotionPending bool        `json:"promotionPending"`
	Castle           bool        `json:"castle"`
	EnPassant        bool        `json:"enPassant"`
	Promotion        PieceType   `json:"promotion,omitempty"`
	ToMove           Color       `json:"toMove"`
	InCheck          bool        `json:"inCheck"`
	KingPosition     *Square     `json:"kingPosition"`
	GameOver         bool        `json:"gameOver"`
	Winner           *Color      `json:"winner"`
	Stalemate        bool        `json:"stalemate"`
	Board            Snapshot    `json:"board"`
}
