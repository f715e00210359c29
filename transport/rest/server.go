package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
)

const shutdownTimeout = 5 * time.Second

type gameUseCase interface {
	CreateGame(ctx context.Context) (*entity.Game, error)
	GetGame(ctx context.Context, gameID string) (*entity.Game, error)
	DeleteGame(ctx context.Context, gameID string) error

	Play(ctx context.Context, gameID string, cell int) (*entity.Game, error)
	JumpTo(ctx context.Context, gameID string, move int) (*entity.Game, error)
}

type Server struct {
	logger      *slog.Logger
	gameUseCase gameUseCase
}

func New(logger *slog.Logger, gameUseCase gameUseCase) *Server {
	return &Server{
		logger:      logger.With("component", "rest"),
		gameUseCase: gameUseCase,
	}
}

// Handler - routes of the HTTP API.
func (that *Server) Handler() http.Handler {
	router := mux.NewRouter()

	router.HandleFunc("/ping", that.handlePing).Methods(http.MethodGet)

	games := router.PathPrefix("/games").Subrouter()
	games.HandleFunc("", that.handleCreateGame).Methods(http.MethodPost)
	games.HandleFunc("/{gameID}", that.handleGetGame).Methods(http.MethodGet)
	games.HandleFunc("/{gameID}", that.handleDeleteGame).Methods(http.MethodDelete)
	games.HandleFunc("/{gameID}/play", that.handlePlay).Methods(http.MethodPost)
	games.HandleFunc("/{gameID}/jump", that.handleJump).Methods(http.MethodPost)

	return router
}

// Start - serves the HTTP API until ctx is cancelled.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
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
