package model

// rawMoveFunc returns the squares a piece on from could reach by its movement pattern
// alone, ignoring whether its own king would be left attacked. Castling is not a raw
// move; the legality filter adds it.
type rawMoveFunc func(from Square, board *Board, last *LastMove) []Square

var (
	rookDirs   = []Square{{Rank: 1, File: 0}, {Rank: -1, File: 0}, {Rank: 0, File: 1}, {Rank: 0, File: -1}}
	bishopDirs = []Square{{Rank: 1, File: 1}, {Rank: 1, File: -1}, {Rank: -1, File: 1}, {Rank: -1, File: -1}}
	kingDirs   = append(append([]Square{}, rookDirs...), bishopDirs...)
	knightDirs = []Square{
		{Rank: 2, File: 1}, {Rank: 2, File: -1}, {Rank: -2, File: 1}, {Rank: -2, File: -1},
		{Rank: 1, File: 2}, {Rank: 1, File: -2}, {Rank: -1, File: 2}, {Rank: -1, File: -2},
	}
)

// rawMovers is the capability table; every PieceType has exactly one entry.
var rawMovers = map[PieceType]rawMoveFunc{
	Pawn:   rawPawnMoves,
	Knight: rawKnightMoves,
	Bishop: rawBishopMoves,
	Rook:   rawRookMoves,
	Queen:  rawQueenMoves,
	King:   rawKingMoves,
}

// RawMoves dispatches to the movement rule of the piece on from.
func RawMoves(from Square, board *Board, last *LastMove) []Square {
	p := board.At(from)
	if p == nil {
		return nil
	}
	mover, ok := rawMovers[p.Type]
	if !ok {
		return nil
	}
	return mover(from, board, last)
}

func rawPawnMoves(from Square, board *Board, last *LastMove) []Square {
	piece := board.At(from)
	dir := piece.Color.forward()
	moves := []Square{}

	// forward 1, then forward 2 from the starting rank
	one := from.offset(dir, 0)
	if one.InBounds() && board.isEmpty(one) {
		moves = append(moves, one)
		two := from.offset(2*dir, 0)
		if from.Rank == piece.Color.pawnRank() && two.InBounds() && board.isEmpty(two) {
			moves = append(moves, two)
		}
	}

	for _, df := range []int{-1, 1} {
		target := from.offset(dir, df)
		if !target.InBounds() {
			continue
		}
		if occupant := board.At(target); occupant != nil {
			if occupant.Color != piece.Color {
				moves = append(moves, target)
			}
			continue
		}
		if isEnPassantCapture(piece, from, target, last) {
			moves = append(moves, target)
		}
	}
	return moves
}

func rawKnightMoves(from Square, board *Board, _ *LastMove) []Square {
	return stepMoves(from, board, knightDirs)
}

func rawBishopMoves(from Square, board *Board, _ *LastMove) []Square {
	return slideMoves(from, board, bishopDirs)
}

func rawRookMoves(from Square, board *Board, _ *LastMove) []Square {
	return slideMoves(from, board, rookDirs)
}

func rawQueenMoves(from Square, board *Board, _ *LastMove) []Square {
	return append(slideMoves(from, board, bishopDirs), slideMoves(from, board, rookDirs)...)
}

func rawKingMoves(from Square, board *Board, _ *LastMove) []Square {
	return stepMoves(from, board, kingDirs)
}

// stepMoves collects single-step targets that are empty or hold an enemy piece.
func stepMoves(from Square, board *Board, dirs []Square) []Square {
	color := board.At(from).Color
	moves := []Square{}
	for _, dir := range dirs {
		target := from.offset(dir.Rank, dir.File)
		if !target.InBounds() {
			continue
		}
		if occupant := board.At(target); occupant == nil || occupant.Color != color {
			moves = append(moves, target)
		}
	}
	return moves
}

// slideMoves walks each direction until the edge, stopping on the first occupant and
// including it when it is an enemy.
func slideMoves(from Square, board *Board, dirs []Square) []Square {
	color := board.At(from).Color
	moves := []Square{}
	for _, dir := range dirs {
		target := from.offset(dir.Rank, dir.File)
		for target.InBounds() {
			occupant := board.At(target)
			if occupant == nil {
				moves = append(moves, target)
			} else {
				if occupant.Color != color {
					moves = append(moves, target)
				}
				break
			}
			target = target.offset(dir.Rank, dir.File)
		}
	}
	return moves
}
