package model

// legalMoves filters the raw moves of the piece on from, plus castling targets for an
// unmoved king, down to those that do not leave its own king attacked.
func (g *Game) legalMoves(from Square) []Square {
	piece := g.board.At(from)
	if piece == nil {
		return []Square{}
	}

	candidates := RawMoves(from, g.board, g.lastMove)
	if piece.Type == King && !piece.HasMoved && from == Sq(piece.Color.homeRank(), kingHomeFile) {
		if g.canCastle(piece.Color, kingside) {
			candidates = append(candidates, Sq(from.Rank, kingside.kingToFile))
		}
		if g.canCastle(piece.Color, queenside) {
			candidates = append(candidates, Sq(from.Rank, queenside.kingToFile))
		}
	}

	legal := make([]Square, 0, len(candidates))
	for _, to := range candidates {
		if g.leavesKingSafe(from, to) {
			legal = append(legal, to)
		}
	}
	return legal
}

// leavesKingSafe plays from -> to on the live board, asks the check detector about the
// mover's color, then restores every touched cell. An en passant victim is lifted for the
// duration of the test as well.
func (g *Game) leavesKingSafe(from, to Square) bool {
	piece := g.board.At(from)
	if piece == nil {
		return false
	}
	captured := g.board.At(to)

	var victimSq Square
	var victim *Piece
	enPassant := captured == nil && isEnPassantCapture(piece, from, to, g.lastMove)
	if enPassant {
		victimSq = enPassantVictim(from, to)
		victim = g.board.At(victimSq)
	}

	defer func() {
		if enPassant {
			g.board.set(victimSq, victim)
		}
		g.board.set(from, piece)
		g.board.set(to, captured)
	}()

	g.board.set(to, piece)
	g.board.set(from, nil)
	if enPassant {
		g.board.set(victimSq, nil)
	}
	return !g.isInCheck(piece.Color)
}

// LegalMoves returns the legal destinations of the piece on from. An empty or
// out-of-range square yields no moves. The board is left exactly as it was.
func (g *Game) LegalMoves(from Square) []Square {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !from.InBounds() {
		return []Square{}
	}
	return g.legalMoves(from)
}

func (g *Game) legalMovesForColor(color Color) []Move {
	moves := []Move{}
	for r := 0; r < 8; r++ {
		for f := 0; f < 8; f++ {
			p := g.board.cells[r][f]
			if p == nil || p.Color != color {
				continue
			}
			from := Sq(r, f)
			for _, to := range g.legalMoves(from) {
				moves = append(moves, Move{From: from, To: to})
			}
		}
	}
	return moves
}

// hasLegalMove stops at the first piece of color with a legal destination.
func (g *Game) hasLegalMove(color Color) bool {
	for r := 0; r < 8; r++ {
		for f := 0; f < 8; f++ {
			p := g.board.cells[r][f]
			if p != nil && p.Color == color && len(g.legalMoves(Sq(r, f))) > 0 {
				return true
			}
		}
	}
	return false
}

// AllLegalMoves enumerates every legal move of color in rank-major order of the source.
func (g *Game) AllLegalMoves(color Color) []Move {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.legalMovesForColor(color)
}
