package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-history/internal/config"
	"github.com/rocketscienceinc/tictactoe-history/internal/repository"
	"github.com/rocketscienceinc/tictactoe-history/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-history/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-history/transport/rest"
	"github.com/rocketscienceinc/tictactoe-history/transport/websocket"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	gameRepo, closeRepo, err := newGameRepository(ctx, log, conf)
	if err != nil {
		return err
	}
	defer closeRepo()

	gameUseCase := usecase.NewGameUseCase(logger, gameRepo)

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if httpErr := rest.New(logger, gameUseCase).Start(ctx, conf.HTTPPort); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run Websocket server
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		if wsErr := websocket.New(logger, gameUseCase).Start(ctx, conf.SocketPort); wsErr != nil {
			log.Error("WebSocket server error", "error", wsErr)
			wsErrCh <- wsErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err = <-wsErrCh:
		return fmt.Errorf("WebSocket server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

// newGameRepository - picks the game storage named in the config.
func newGameRepository(ctx context.Context, log *slog.Logger, conf *config.Config) (repository.GameRepository, func(), error) {
	if conf.Storage == config.StorageMemory {
		log.Info("Using in-memory game storage", "ttl", conf.GameTTL)
		return repository.NewMemoryGameRepository(conf.GameTTL), func() {}, nil
	}

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return nil, nil, ErrAddrNotFound
	}

	redisStorage, err := storage.New(ctx, redisAddrString)
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	log.Info("Using redis game storage", "addr", redisAddrString, "ttl", conf.GameTTL)

	closeStorage := func() {
		if err := redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}

	return repository.NewGameRepository(redisStorage, conf.GameTTL), closeStorage, nil
}
