package websocket

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
	"github.com/rocketscienceinc/tictactoe-history/internal/repository"
	"github.com/rocketscienceinc/tictactoe-history/internal/usecase"
)

func dial(t *testing.T) *websocket.Conn {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	gameUseCase := usecase.NewGameUseCase(logger, repository.NewMemoryGameRepository(0))

	srv := httptest.NewServer(New(logger, gameUseCase).Handler(ctx))
	t.Cleanup(srv.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return conn
}

func exchange(t *testing.T, conn *websocket.Conn, action string, payload any) ResponsePayload {
	t.Helper()

	payloadJSON, err := json.Marshal(payload)
	require.NoError(t, err)
	require.NoError(t, conn.WriteJSON(Message{Action: action, Payload: payloadJSON}))

	var msg Message
	require.NoError(t, conn.ReadJSON(&msg))
	require.Equal(t, action, msg.Action)

	var resp ResponsePayload
	require.NoError(t, json.Unmarshal(msg.Payload, &resp))

	return resp
}

func intPtr(v int) *int {
	return &v
}

func TestServer_GameFlow(t *testing.T) {
	// Given: a connected client
	conn := dial(t)

	// When: a new game is requested
	created := exchange(t, conn, actionNewGame, struct{}{})

	// Then: an empty game is returned
	require.Empty(t, created.Error)
	require.NotNil(t, created.Game)
	gameID := created.Game.ID
	assert.Equal(t, entity.PlayerX, created.Game.NextPlayer)

	// When: X and O play until X completes the top row
	var resp ResponsePayload
	for _, cell := range []int{0, 3, 1, 4, 2} {
		resp = exchange(t, conn, actionPlay, RequestPayload{GameID: gameID, Cell: intPtr(cell)})
		require.Empty(t, resp.Error)
	}

	// Then: the win is reported
	require.NotNil(t, resp.Game.Win)
	assert.Equal(t, entity.PlayerX, resp.Game.Win.Winner)
	assert.Equal(t, [3]int{0, 1, 2}, resp.Game.Win.Line)

	// When: jumping back to move 1 and playing a new move
	resp = exchange(t, conn, actionJump, RequestPayload{GameID: gameID, Move: intPtr(1)})
	require.Empty(t, resp.Error)
	assert.Equal(t, 6, resp.Game.HistoryLength)

	resp = exchange(t, conn, actionPlay, RequestPayload{GameID: gameID, Cell: intPtr(8)})
	require.Empty(t, resp.Error)

	// Then: the future is discarded
	assert.Equal(t, 3, resp.Game.HistoryLength)

	// And: the state request returns the same game
	state := exchange(t, conn, actionGameState, RequestPayload{GameID: gameID})
	assert.Equal(t, resp.Game, state.Game)
}

func TestServer_Errors(t *testing.T) {
	conn := dial(t)

	created := exchange(t, conn, actionNewGame, struct{}{})
	require.NotNil(t, created.Game)
	gameID := created.Game.ID

	tests := []struct {
		name    string
		action  string
		payload RequestPayload
	}{
		{"Missing game id", actionPlay, RequestPayload{Cell: intPtr(0)}},
		{"Unknown game", actionGameState, RequestPayload{GameID: "missing"}},
		{"Missing cell", actionPlay, RequestPayload{GameID: gameID}},
		{"Cell out of range", actionPlay, RequestPayload{GameID: gameID, Cell: intPtr(9)}},
		{"Missing move", actionJump, RequestPayload{GameID: gameID}},
		{"Move out of range", actionJump, RequestPayload{GameID: gameID, Move: intPtr(3)}},
		{"Unknown action", "game:undo", RequestPayload{GameID: gameID}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := exchange(t, conn, tt.action, tt.payload)

			assert.NotEmpty(t, resp.Error)
			assert.Nil(t, resp.Game)
		})
	}
}

func TestServer_OversizedMessageClosesConnection(t *testing.T) {
	// Given: a connected client
	conn := dial(t)

	// When: it sends a frame past the read limit
	payload := `{"game_id": "` + strings.Repeat("x", 2*maxMessageBytes) + `"}`
	require.NoError(t, conn.WriteJSON(Message{Action: actionGameState, Payload: json.RawMessage(payload)}))

	// Then: the server closes the connection instead of answering
	_, _, err := conn.ReadMessage()
	require.Error(t, err)
}
