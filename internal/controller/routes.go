package controller

import (
	"github.com/benbeisheim/chess-rules-backend/internal/config"
	"github.com/benbeisheim/chess-rules-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// RegisterRoutes mounts the REST API under /api/game and the session websocket under
// /ws/game/:gameId.
func RegisterRoutes(app *fiber.App, gc *GameController, wsc *WebSocketController, games middleware.GameLookup, cfg config.Config) {
	requireGame := middleware.RequireGame(games)

	app.Get("/ws/game/:gameId", requireGame, middleware.WebSocketUpgrade(), websocket.New(wsc.HandleConnection, websocket.Config{
		ReadBufferSize:  cfg.WSReadBufferSize,
		WriteBufferSize: cfg.WSWriteBufferSize,
		Origins:         cfg.AllowOrigins,
	}))

	gameRoutes := app.Group("/api/game")
	gameRoutes.Post("/", gc.CreateGame)
	gameRoutes.Get("/:gameId", requireGame, gc.GetGameState)
	gameRoutes.Post("/:gameId/legal-moves", requireGame, gc.LegalMoves)
	gameRoutes.Post("/:gameId/move", requireGame, gc.MakeMove)
	gameRoutes.Post("/:gameId/promote", requireGame, gc.Promote)
	gameRoutes.Post("/:gameId/ai-move", requireGame, gc.AIMove)
	gameRoutes.Post("/:gameId/reset", requireGame, gc.ResetGame)
	gameRoutes.Delete("/:gameId", requireGame, gc.DeleteGame)
}
