package ws

import (
	"encoding/json"

	"github.com/benbeisheim/chess-rules-backend/internal/model"
)

// MessageType names a request or its reply; a reply carries the type of the request it
// answers, or MessageTypeError.
type MessageType string

const (
	MessageTypeMove       MessageType = "move"
	MessageTypePromote    MessageType = "promote"
	MessageTypeLegalMoves MessageType = "legalMoves"
	MessageTypeAIMove     MessageType = "aiMove"
	MessageTypeGameState  MessageType = "gameState"
	MessageTypeError      MessageType = "error"
)

// Message is the envelope for every frame in both directions.
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type PromotePayload struct {
	Piece model.PieceType `json:"piece"`
}

type LegalMovesPayload struct {
	From  model.Square   `json:"from"`
	Moves []model.Square `json:"moves"`
}

type AIMovePayload struct {
	Color *model.Color `json:"color,omitempty"`
	Depth int          `json:"depth,omitempty"`
}

type ErrorPayload struct {
	Error   string      `json:"error"`
	Request MessageType `json:"request,omitempty"`
}

// NewMessage marshals payload into an envelope of type t.
func NewMessage(t MessageType, payload interface{}) (Message, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	return Message{Type: t, Payload: raw}, nil
}

func NewError(request MessageType, err error) Message {
	// ErrorPayload always marshals
	raw, _ := json.Marshal(ErrorPayload{Error: err.Error(), Request: request})
	return Message{Type: MessageTypeError, Payload: raw}
}
