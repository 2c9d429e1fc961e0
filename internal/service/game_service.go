package service

import (
	"errors"
	"fmt"

	"github.com/benbeisheim/chess-rules-backend/internal/config"
	"github.com/benbeisheim/chess-rules-backend/internal/model"
	"github.com/benbeisheim/chess-rules-backend/internal/search"
	"github.com/gofiber/fiber/v2/log"
)

var ErrInvalidSetup = errors.New("invalid setup")

// Status is the game state plus a material evaluation from white's point of view.
type Status struct {
	model.GameState
	Eval int `json:"eval"`
}

// AIMoveResult is the move the engine played and how it scored the position.
type AIMoveResult struct {
	model.MoveResult
	Depth  int  `json:"depth"`
	Score  int  `json:"score"`
	Nodes  int  `json:"nodes"`
	Eval   int  `json:"eval"`
	IsMate bool `json:"isMate"`
}

type GameService struct {
	gameManager *GameManager
	cfg         config.Config
}

func NewGameService(gameManager *GameManager, cfg config.Config) *GameService {
	return &GameService{
		gameManager: gameManager,
		cfg:         cfg,
	}
}

func (gs *GameService) CreateGame() (model.GameState, error) {
	game, err := gs.gameManager.CreateGame(NewGameID())
	if err != nil {
		return model.GameState{}, fmt.Errorf("failed to create game: %w", err)
	}

	log.Infof("created game %s", game.ID)
	return game.GetState(), nil
}

// CreateGameFromBoard registers a session starting from a custom position.
func (gs *GameService) CreateGameFromBoard(board *model.Board, toMove model.Color) (model.GameState, error) {
	if !toMove.Valid() {
		return model.GameState{}, fmt.Errorf("%w: side to move %q", ErrInvalidSetup, toMove)
	}
	for _, c := range []model.Color{model.White, model.Black} {
		if n := countKings(board, c); n != 1 {
			return model.GameState{}, fmt.Errorf("%w: %d %s kings", ErrInvalidSetup, n, c)
		}
	}
	game, err := gs.gameManager.AddGame(model.NewGameFromBoard(NewGameID(), board, toMove))
	if err != nil {
		return model.GameState{}, fmt.Errorf("failed to create game: %w", err)
	}

	log.Infof("created game %s from custom setup, %s to move", game.ID, toMove)
	return game.GetState(), nil
}

func countKings(board *model.Board, c model.Color) int {
	n := 0
	for r := 0; r < 8; r++ {
		for f := 0; f < 8; f++ {
			if p := board.At(model.Sq(r, f)); p != nil && p.Type == model.King && p.Color == c {
				n++
			}
		}
	}
	return n
}

func (gs *GameService) GetGameState(gameID string) (Status, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return Status{}, err
	}

	state := game.GetState()
	return Status{GameState: state, Eval: search.Evaluate(state.Board)}, nil
}

func (gs *GameService) LegalMoves(gameID string, from model.Square) ([]model.Square, error) {
	if !from.InBounds() {
		return nil, fmt.Errorf("%w: %s", model.ErrOutOfBounds, from)
	}
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return nil, err
	}

	return game.LegalMoves(from), nil
}

func (gs *GameService) MakeMove(gameID string, req model.MoveRequest) (model.MoveResult, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return model.MoveResult{}, err
	}

	res, err := game.AttemptMove(req)
	if err != nil {
		log.Debugf("game %s: rejected %s -> %s: %v", gameID, req.From, req.To, err)
		return model.MoveResult{}, err
	}

	gs.logResult(gameID, res)
	return res, nil
}

func (gs *GameService) Promote(gameID string, choice model.PieceType) (model.MoveResult, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return model.MoveResult{}, err
	}

	res, err := game.Promote(choice)
	if err != nil {
		log.Debugf("game %s: rejected promotion to %q: %v", gameID, choice, err)
		return model.MoveResult{}, err
	}

	gs.logResult(gameID, res)
	return res, nil
}

// AIMove searches for the best move of color (the side to move when nil) and plays it,
// promoting to a queen. A non-positive depth uses the configured default and larger
// depths are capped.
func (gs *GameService) AIMove(gameID string, color *model.Color, depth int) (AIMoveResult, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return AIMoveResult{}, err
	}

	side := game.ToMove()
	if color != nil {
		side = *color
	}
	depth = gs.cfg.SearchDepth(depth)

	best, err := search.BestMove(game, depth, side)
	if err != nil {
		return AIMoveResult{}, fmt.Errorf("ai move for %s: %w", side, err)
	}

	res, err := game.AttemptMove(model.MoveRequest{From: best.Move.From, To: best.Move.To, Promotion: model.Queen})
	if err != nil {
		// the position changed between search and play
		return AIMoveResult{}, fmt.Errorf("ai move %s -> %s: %w", best.Move.From, best.Move.To, err)
	}

	log.Infof("game %s: ai (%s, depth %d) played %s -> %s score %d after %d nodes",
		gameID, side, depth, res.From, res.To, best.Score, best.Nodes)
	gs.logResult(gameID, res)

	return AIMoveResult{
		MoveResult: res,
		Depth:      depth,
		Score:      best.Score,
		Nodes:      best.Nodes,
		Eval:       search.Evaluate(res.Board),
		IsMate:     best.IsMate(),
	}, nil
}

func (gs *GameService) ResetGame(gameID string) (model.GameState, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}

	game.Reset()
	log.Infof("game %s reset", gameID)
	return game.GetState(), nil
}

func (gs *GameService) DeleteGame(gameID string) error {
	if err := gs.gameManager.DeleteGame(gameID); err != nil {
		return err
	}
	log.Infof("game %s deleted", gameID)
	return nil
}

func (gs *GameService) logResult(gameID string, res model.MoveResult) {
	switch {
	case res.PromotionPending:
		log.Debugf("game %s: %s -> %s awaiting promotion choice", gameID, res.From, res.To)
	case res.GameOver && res.Winner != nil:
		log.Infof("game %s: checkmate, %s wins", gameID, *res.Winner)
	case res.GameOver && res.Stalemate:
		log.Infof("game %s: stalemate", gameID)
	default:
		log.Debugf("game %s: %s -> %s, %s to move", gameID, res.From, res.To, res.ToMove)
	}
}
