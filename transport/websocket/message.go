package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
)

const (
	actionNewGame   = "game:new"
	actionGameState = "game:state"
	actionPlay      = "game:play"
	actionJump      = "game:jump"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type RequestPayload struct {
	GameID string `json:"game_id,omitempty"`
	Cell   *int   `json:"cell,omitempty"`
	Move   *int   `json:"move,omitempty"`
}

type ResponsePayload struct {
	Game  *entity.GameState `json:"game,omitempty"`
	Error string            `json:"error,omitempty"`
}
