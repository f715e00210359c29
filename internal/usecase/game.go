package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
)

type GameUseCase interface {
	CreateGame(ctx context.Context) (*entity.Game, error)
	GetGame(ctx context.Context, gameID string) (*entity.Game, error)
	DeleteGame(ctx context.Context, gameID string) error

	Play(ctx context.Context, gameID string, cell int) (*entity.Game, error)
	JumpTo(ctx context.Context, gameID string, move int) (*entity.Game, error)
}

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type gameUseCase struct {
	logger   *slog.Logger
	gameRepo gameRepo

	// guards load-modify-save per game
	locks *gameLocks
}

func NewGameUseCase(logger *slog.Logger, gameRepo gameRepo) GameUseCase {
	return &gameUseCase{
		logger:   logger.With("component", "game_usecase"),
		gameRepo: gameRepo,
		locks:    newGameLocks(),
	}
}

func (that *gameUseCase) CreateGame(ctx context.Context) (*entity.Game, error) {
	game := entity.NewGame(uuid.NewString())

	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	that.logger.Info("game created", "gameID", game.ID)

	return game, nil
}

func (that *gameUseCase) GetGame(ctx context.Context, gameID string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game %s: %w", gameID, err)
	}

	return game, nil
}

func (that *gameUseCase) DeleteGame(ctx context.Context, gameID string) error {
	defer that.locks.lock(gameID)()

	if err := that.gameRepo.DeleteByID(ctx, gameID); err != nil {
		return fmt.Errorf("failed to delete game %s: %w", gameID, err)
	}

	that.logger.Info("game deleted", "gameID", gameID)

	return nil
}

// Play - applies a click on a cell. A click the rules ignore (taken cell, finished game)
// returns the unchanged game without an error.
func (that *gameUseCase) Play(ctx context.Context, gameID string, cell int) (*entity.Game, error) {
	log := that.logger.With("method", "Play", "gameID", gameID)

	if !entity.IsValidCell(cell) {
		return nil, fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	defer that.locks.lock(gameID)()

	game, err := that.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	if !game.Play(cell) {
		log.Debug("move ignored", "cell", cell, "move", game.CurrentMove)
		return game, nil
	}

	if err = that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	log.Debug("move played", "cell", cell, "move", game.CurrentMove, "status", game.Status())

	return game, nil
}

func (that *gameUseCase) JumpTo(ctx context.Context, gameID string, move int) (*entity.Game, error) {
	log := that.logger.With("method", "JumpTo", "gameID", gameID)

	defer that.locks.lock(gameID)()

	game, err := that.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	if !game.IsValidMove(move) {
		return nil, fmt.Errorf("%w: move %d of %d", apperror.ErrInvalidMove, move, len(game.History))
	}

	game.JumpTo(move)

	if err = that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	log.Debug("jumped to move", "move", move)

	return game, nil
}
