package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
)

const (
	shutdownTimeout = 5 * time.Second

	// maxMessageBytes - largest request frame; bigger ones close the connection.
	maxMessageBytes = 1 << 10
)

type gameUseCase interface {
	CreateGame(ctx context.Context) (*entity.Game, error)
	GetGame(ctx context.Context, gameID string) (*entity.Game, error)

	Play(ctx context.Context, gameID string, cell int) (*entity.Game, error)
	JumpTo(ctx context.Context, gameID string, move int) (*entity.Game, error)
}

type handlerFunc func(ctx context.Context, msg *Message, conn *websocket.Conn) error

type Server struct {
	logger      *slog.Logger
	gameUseCase gameUseCase
	upgrader    websocket.Upgrader

	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, gameUseCase gameUseCase) *Server {
	server := &Server{
		logger:      logger.With("component", "websocket"),
		gameUseCase: gameUseCase,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},

		handlers: make(map[string]handlerFunc),
	}

	server.handlers[actionNewGame] = server.handleNewGame
	server.handlers[actionGameState] = server.handleGameState
	server.handlers[actionPlay] = server.handlePlay
	server.handlers[actionJump] = server.handleJump

	return server
}

// Handler - serves the /ws endpoint.
func (that *Server) Handler(ctx context.Context) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.upgradeToWebSocket(ctx, w, r)
	})

	return mux
}

// Start - starts WebSocket server.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:        ":" + port,
		Handler:     that.Handler(ctx),
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shut down server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// upgradeToWebSocket - upgrades the connection to WebSocket.
func (that *Server) upgradeToWebSocket(ctx context.Context, writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "upgradeToWebSocket")

	conn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	defer conn.Close()

	conn.SetReadLimit(maxMessageBytes)

	// unblock ReadMessage on shutdown
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	log.Info("WebSocket connection established", "remote", conn.RemoteAddr().String())

	if err = that.handleMessages(ctx, conn); err != nil {
		log.Info("WebSocket connection closed", "error", err)
	}
}

// handleMessages - processes messages from the client.
func (that *Server) handleMessages(ctx context.Context, conn *websocket.Conn) error {
	log := that.logger.With("method", "handleMessages")

	for {
		_, reqBody, err := conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("failed to read message: %w", err)
		}

		var message Message
		if err = json.Unmarshal(reqBody, &message); err != nil {
			log.Error("failed to unmarshal message", "error", err)

			if err = that.sendErrorResponse(conn, "", "malformed message"); err != nil {
				return err
			}
			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Error("unknown action", "action", message.Action)

			if err = that.sendErrorResponse(conn, message.Action, "unknown action"); err != nil {
				return err
			}
			continue
		}

		if err = handler(ctx, &message, conn); err != nil {
			return fmt.Errorf("failed to process %s: %w", message.Action, err)
		}
	}
}
