package controller

import (
	"errors"

	"github.com/benbeisheim/chess-rules-backend/internal/middleware"
	"github.com/benbeisheim/chess-rules-backend/internal/model"
	"github.com/benbeisheim/chess-rules-backend/internal/service"
	"github.com/gofiber/fiber/v2"
)

type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

type squareBody struct {
	Rank *int `json:"rank"`
	File *int `json:"file"`
}

func (b squareBody) square() (model.Square, bool) {
	if b.Rank == nil || b.File == nil {
		return model.Square{}, false
	}
	return model.Sq(*b.Rank, *b.File), true
}

type moveBody struct {
	From      *squareBody     `json:"from"`
	To        *squareBody     `json:"to"`
	Promotion model.PieceType `json:"promotion"`
}

func (b moveBody) request() (model.MoveRequest, error) {
	if b.From == nil || b.To == nil {
		return model.MoveRequest{}, errors.New("from and to are required")
	}
	from, okFrom := b.From.square()
	to, okTo := b.To.square()
	if !okFrom || !okTo {
		return model.MoveRequest{}, errors.New("from and to need rank and file")
	}
	return model.MoveRequest{From: from, To: to, Promotion: b.Promotion}, nil
}

type promoteBody struct {
	Piece model.PieceType `json:"piece"`
}

type aiMoveBody struct {
	Color *model.Color `json:"color"`
	Depth int          `json:"depth"`
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	state, err := gc.gameService.CreateGame()
	if err != nil {
		return sendError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"gameId": state.ID,
		"state":  state,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	gameID, err := middleware.GameID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	status, err := gc.gameService.GetGameState(gameID)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(status)
}

func (gc *GameController) LegalMoves(c *fiber.Ctx) error {
	gameID, err := middleware.GameID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	var body squareBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	from, ok := body.square()
	if !ok {
		return badRequest(c, "rank and file are required")
	}

	moves, err := gc.gameService.LegalMoves(gameID, from)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(fiber.Map{
		"from":  from,
		"moves": moves,
	})
}

func (gc *GameController) MakeMove(c *fiber.Ctx) error {
	gameID, err := middleware.GameID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	var body moveBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	req, err := body.request()
	if err != nil {
		return badRequest(c, err.Error())
	}

	res, err := gc.gameService.MakeMove(gameID, req)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(res)
}

func (gc *GameController) Promote(c *fiber.Ctx) error {
	gameID, err := middleware.GameID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	var body promoteBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	res, err := gc.gameService.Promote(gameID, body.Piece)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(res)
}

// AIMove accepts an empty body, meaning the side to move at the default depth.
func (gc *GameController) AIMove(c *fiber.Ctx) error {
	gameID, err := middleware.GameID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	var body aiMoveBody
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&body); err != nil {
			return badRequest(c, "invalid request body")
		}
	}
	if body.Color != nil && !body.Color.Valid() {
		return badRequest(c, "color must be white or black")
	}

	res, err := gc.gameService.AIMove(gameID, body.Color, body.Depth)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(res)
}

func (gc *GameController) ResetGame(c *fiber.Ctx) error {
	gameID, err := middleware.GameID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	state, err := gc.gameService.ResetGame(gameID)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(state)
}

func (gc *GameController) DeleteGame(c *fiber.Ctx) error {
	gameID, err := middleware.GameID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	if err := gc.gameService.DeleteGame(gameID); err != nil {
		return sendError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
