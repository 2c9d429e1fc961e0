package search

import (
	"errors"
	"fmt"
	"sort"

	"github.com/benbeisheim/chess-rules-backend/internal/model"
)

const (
	MaxScore = 1_000_000
	// mate scores shrink with distance so a shorter mate is preferred
	mateThreshold = MaxScore - 1000
)

var (
	ErrNoLegalMoves = errors.New("no legal moves")
	ErrInvalidDepth = errors.New("search depth must be at least 1")
)

// Result is the chosen move and its score from the searching side's point of view.
type Result struct {
	Move  model.Move `json:"move"`
	Score int        `json:"score"`
	Nodes int        `json:"nodes"`
}

// IsMate reports whether the score is a forced mate for the searching side.
func (r Result) IsMate() bool {
	return r.Score >= mateThreshold
}

type searcher struct {
	nodes int
}

// BestMove runs a fixed-depth alpha-beta search for color, which must be the side to
// move. The game itself is never modified: every line is played on a clone, and pawns
// reaching the back rank are promoted to queens.
func BestMove(game *model.Game, depth int, color model.Color) (Result, error) {
	if depth < 1 {
		return Result{}, fmt.Errorf("%w: %d", ErrInvalidDepth, depth)
	}
	if game.Phase() == model.PhasePromotionPending {
		return Result{}, model.ErrPromotionPending
	}
	if toMove := game.ToMove(); toMove != color {
		return Result{}, fmt.Errorf("%w: %s to move", model.ErrWrongTurn, toMove)
	}

	root := game.Clone("search")
	moves := orderMoves(root.Snapshot(), root.AllLegalMoves(color))
	if len(moves) == 0 {
		return Result{}, ErrNoLegalMoves
	}

	s := &searcher{}
	best := Result{Move: moves[0], Score: -MaxScore}
	alpha, beta := -MaxScore, MaxScore
	for _, m := range moves {
		child, ok := s.play(root, m)
		if !ok {
			continue
		}
		score := -s.negamax(child, depth-1, -beta, -alpha, 1)
		if score > best.Score {
			best.Move = m
			best.Score = score
		}
		if score > alpha {
			alpha = score
		}
	}
	best.Nodes = s.nodes
	return best, nil
}

func (s *searcher) play(g *model.Game, m model.Move) (*model.Game, bool) {
	s.nodes++
	child := g.Clone("search")
	if _, err := child.AttemptMove(model.MoveRequest{From: m.From, To: m.To, Promotion: model.Queen}); err != nil {
		return nil, false
	}
	return child, true
}

// negamax returns the score of g from the side to move's point of view.
func (s *searcher) negamax(g *model.Game, depth, alpha, beta, ply int) int {
	side := g.ToMove()
	if g.IsGameOver() {
		if g.Winner() != nil {
			return -MaxScore + ply
		}
		return 0
	}
	if depth == 0 {
		return perspective(Evaluate(g.Snapshot()), side)
	}

	best := -MaxScore
	for _, m := range orderMoves(g.Snapshot(), g.AllLegalMoves(side)) {
		child, ok := s.play(g, m)
		if !ok {
			continue
		}
		score := -s.negamax(child, depth-1, -beta, -alpha, ply+1)
		if score > best {
			best = score
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			break
		}
	}
	return best
}

// orderMoves puts captures of valuable pieces first so cutoffs come early. The order is
// otherwise the generation order, which keeps results deterministic.
func orderMoves(snapshot model.Snapshot, moves []model.Move) []model.Move {
	victim := func(m model.Move) int {
		if sv := snapshot[m.To.Rank][m.To.File]; sv != nil {
			return PieceValues[sv.Type]
		}
		return 0
	}
	sort.SliceStable(moves, func(i, j int) bool {
		return victim(moves[i]) > victim(moves[j])
	})
	return moves
}
