// service/game_manager.go
package service

import (
	"errors"
	"fmt"
	"sync"

	"github.com/benbeisheim/chess-rules-backend/internal/model"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrGameExists   = errors.New("game already exists")
)

// GameManager is the registry of live sessions. Its lock only guards the map; each game
// serialises its own moves and queries.
type GameManager struct {
	games map[string]*model.Game
	mu    sync.RWMutex
}

func NewGameManager() *GameManager {
	return &GameManager{
		games: make(map[string]*model.Game),
	}
}

// NewGameID returns a fresh session identifier.
func NewGameID() string {
	return uuid.New().String()
}

func (gm *GameManager) CreateGame(gameID string) (*model.Game, error) {
	return gm.AddGame(model.NewGame(gameID))
}

// AddGame registers a session built elsewhere, such as a custom setup.
func (gm *GameManager) AddGame(game *model.Game) (*model.Game, error) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[game.ID]; exists {
		return nil, fmt.Errorf("%w: %s", ErrGameExists, game.ID)
	}

	gm.games[game.ID] = game
	log.Debugf("registered game %s (%d live)", game.ID, len(gm.games))
	return game, nil
}

func (gm *GameManager) GetGame(gameID string) (*model.Game, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	game, exists := gm.games[gameID]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}

	return game, nil
}

func (gm *GameManager) DeleteGame(gameID string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; !exists {
		return fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}

	delete(gm.games, gameID)
	log.Debugf("removed game %s (%d live)", gameID, len(gm.games))
	return nil
}

func (gm *GameManager) Count() int {
	gm.mu.RLock()
	defer gm.mu.RUnlock()
	return len(gm.games)
}
