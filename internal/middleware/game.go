package middleware

import (
	"errors"

	"github.com/benbeisheim/chess-rules-backend/internal/model"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

// GameIDKey is the Locals key holding the resolved session id.
const GameIDKey = "gameID"

// GameLookup finds a live session by id.
type GameLookup interface {
	GetGame(gameID string) (*model.Game, error)
}

// RequireGame resolves the session named by the :gameId route param (or the X-Game-ID
// header when the route has none), answers 404 when it does not exist and stores the id
// in Locals for the handlers that follow.
func RequireGame(games GameLookup) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if id, ok := c.Locals(GameIDKey).(string); ok && id != "" {
			return c.Next()
		}

		gameID := c.Params("gameId")
		if gameID == "" {
			gameID = c.Get("X-Game-ID")
		}
		if gameID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "game ID is required",
			})
		}

		if _, err := games.GetGame(gameID); err != nil {
			log.Debugf("lookup of game %s failed: %v", gameID, err)
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		c.Locals(GameIDKey, gameID)
		return c.Next()
	}
}

// GameID returns the id stored by RequireGame.
func GameID(c *fiber.Ctx) (string, error) {
	id, ok := c.Locals(GameIDKey).(string)
	if !ok || id == "" {
		return "", errors.New("game ID not resolved")
	}
	return id, nil
}
