package model

// castleSide describes one castling wing relative to the king on file 4 of its home rank.
type castleSide struct {
	rookFile   int
	kingToFile int
	rookToFile int
	// between must be empty; transit must not be attacked.
	between []int
	transit []int
}

var (
	kingside = castleSide{
		rookFile:   7,
		kingToFile: 6,
		rookToFile: 5,
		between:    []int{5, 6},
		transit:    []int{5, 6},
	}
	queenside = castleSide{
		rookFile:   0,
		kingToFile: 2,
		rookToFile: 3,
		between:    []int{1, 2, 3},
		transit:    []int{3, 2},
	}
)

const kingHomeFile = 4

func castleSideFor(from, to Square) (castleSide, bool) {
	switch to.File - from.File {
	case 2:
		return kingside, true
	case -2:
		return queenside, true
	}
	return castleSide{}, false
}

func unmovedAt(board *Board, sq Square, t PieceType, c Color) bool {
	p := board.At(sq)
	return p != nil && p.Type == t && p.Color == c && !p.HasMoved
}

// canCastle checks every castling precondition for color on one wing. It only reads the
// board; transit squares are tested with the same simulate-and-rollback as the filter.
func (g *Game) canCastle(color Color, side castleSide) bool {
	rank := color.homeRank()
	kingSq := Sq(rank, kingHomeFile)
	if !unmovedAt(g.board, kingSq, King, color) || !unmovedAt(g.board, Sq(rank, side.rookFile), Rook, color) {
		return false
	}
	for _, file := range side.between {
		if !g.board.isEmpty(Sq(rank, file)) {
			return false
		}
	}
	if g.isInCheck(color) {
		return false
	}
	for _, file := range side.transit {
		if !g.leavesKingSafe(kingSq, Sq(rank, file)) {
			return false
		}
	}
	return true
}

func (g *Game) CanCastleKingside(color Color) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.canCastle(color, kingside)
}

func (g *Game) CanCastleQueenside(color Color) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.canCastle(color, queenside)
}

// handleCastle relocates the rook for a king move spanning two files. The king itself is
// moved by the caller in the same transition.
func (g *Game) handleCastle(from, to Square) *CastleRookMove {
	side, ok := castleSideFor(from, to)
	if !ok {
		return nil
	}
	rookFrom := Sq(from.Rank, side.rookFile)
	rookTo := Sq(from.Rank, side.rookToFile)
	rook := g.board.At(rookFrom)
	g.board.set(rookFrom, nil)
	g.board.set(rookTo, rook)
	rook.HasMoved = true
	return &CastleRookMove{From: rookFrom, To: rookTo}
}

// isEnPassantCapture reports whether a pawn stepping diagonally from -> to captures the
// enemy pawn that just made a double step onto the square beside it.
func isEnPassantCapture(piece *Piece, from, to Square, last *LastMove) bool {
	if piece == nil || piece.Type != Pawn {
		return false
	}
	if to.Rank-from.Rank != piece.Color.forward() || abs(to.File-from.File) != 1 {
		return false
	}
	if !last.isDoublePawnStep() || last.Piece.Color == piece.Color {
		return false
	}
	return last.To == enPassantVictim(from, to)
}

// enPassantVictim is the square of the pawn removed by an en passant capture: the
// capturing pawn's source rank on the destination file.
func enPassantVictim(from, to Square) Square {
	return Sq(from.Rank, to.File)
}

// IsPromotionChoice reports whether a pawn may be promoted to t.
func (t PieceType) IsPromotionChoice() bool {
	switch t {
	case Queen, Rook, Bishop, Knight:
		return true
	}
	return false
}

func isPromotionMove(piece *Piece, to Square) bool {
	return piece.Type == Pawn && to.Rank == piece.Color.promotionRank()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
