package controller

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/benbeisheim/chess-rules-backend/internal/service"
	"github.com/benbeisheim/chess-rules-backend/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"
)

var errUnknownColor = errors.New("color must be white or black")

type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
	}
}

// HandleConnection serves one client of one session. Every text frame is a request and
// gets exactly one reply on the same connection.
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID, _ := c.Locals("wsGameID").(string)
	if gameID == "" {
		gameID = c.Params("gameId")
	}
	log.Infof("websocket connected to game %s", gameID)
	defer log.Infof("websocket for game %s closed", gameID)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warnf("websocket read for game %s: %v", gameID, err)
			}
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var reply ws.Message
		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			reply = ws.NewError("", fmt.Errorf("malformed message: %w", err))
		} else {
			reply = wsc.handleMessage(gameID, msg)
		}

		if err := c.WriteJSON(reply); err != nil {
			log.Warnf("websocket write for game %s: %v", gameID, err)
			return
		}
	}
}

func (wsc *WebSocketController) handleMessage(gameID string, msg ws.Message) ws.Message {
	log.Debugf("game %s: websocket %s", gameID, msg.Type)

	switch msg.Type {
	case ws.MessageTypeMove:
		var body moveBody
		if err := json.Unmarshal(msg.Payload, &body); err != nil {
			return ws.NewError(msg.Type, err)
		}
		req, err := body.request()
		if err != nil {
			return ws.NewError(msg.Type, err)
		}
		res, err := wsc.gameService.MakeMove(gameID, req)
		return reply(msg.Type, res, err)

	case ws.MessageTypePromote:
		var body ws.PromotePayload
		if err := json.Unmarshal(msg.Payload, &body); err != nil {
			return ws.NewError(msg.Type, err)
		}
		res, err := wsc.gameService.Promote(gameID, body.Piece)
		return reply(msg.Type, res, err)

	case ws.MessageTypeLegalMoves:
		var body struct {
			From *squareBody `json:"from"`
		}
		if err := json.Unmarshal(msg.Payload, &body); err != nil {
			return ws.NewError(msg.Type, err)
		}
		if body.From == nil {
			return ws.NewError(msg.Type, errors.New("from is required"))
		}
		from, ok := body.From.square()
		if !ok {
			return ws.NewError(msg.Type, errors.New("from needs rank and file"))
		}
		moves, err := wsc.gameService.LegalMoves(gameID, from)
		return reply(msg.Type, ws.LegalMovesPayload{From: from, Moves: moves}, err)

	case ws.MessageTypeAIMove:
		var body ws.AIMovePayload
		if len(msg.Payload) > 0 {
			if err := json.Unmarshal(msg.Payload, &body); err != nil {
				return ws.NewError(msg.Type, err)
			}
		}
		if body.Color != nil && !body.Color.Valid() {
			return ws.NewError(msg.Type, errUnknownColor)
		}
		res, err := wsc.gameService.AIMove(gameID, body.Color, body.Depth)
		return reply(msg.Type, res, err)

	case ws.MessageTypeGameState:
		status, err := wsc.gameService.GetGameState(gameID)
		return reply(msg.Type, status, err)

	default:
		return ws.NewError(msg.Type, fmt.Errorf("unknown message type: %s", msg.Type))
	}
}

func reply(t ws.MessageType, payload interface{}, err error) ws.Message {
	if err != nil {
		return ws.NewError(t, err)
	}
	msg, err := ws.NewMessage(t, payload)
	if err != nil {
		return ws.NewError(t, err)
	}
	return msg
}
