package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
)

type memoryEntry struct {
	game      *entity.Game
	expiresAt time.Time
}

type memoryGame struct {
	mu    sync.RWMutex
	games map[string]memoryEntry
	ttl   time.Duration
	now   func() time.Time
}

// NewMemoryGameRepository - keeps games in process memory. Games are copied in and out.
// Every write resets the expiry to ttl; zero keeps games until they are deleted.
func NewMemoryGameRepository(ttl time.Duration) GameRepository {
	return &memoryGame{
		games: make(map[string]memoryEntry),
		ttl:   ttl,
		now:   time.Now,
	}
}

func (that *memoryGame) CreateOrUpdate(_ context.Context, game *entity.Game) error {
	if err := game.Validate(); err != nil {
		return fmt.Errorf("failed to set game: %w", err)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	now := that.now()
	that.evictExpired(now)

	entry := memoryEntry{game: game.Clone()}
	if that.ttl > 0 {
		entry.expiresAt = now.Add(that.ttl)
	}

	that.games[game.ID] = entry

	return nil
}

func (that *memoryGame) GetByID(_ context.Context, id string) (*entity.Game, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	entry, ok := that.games[id]
	if !ok || entry.isExpired(that.now()) {
		return nil, apperror.ErrGameNotFound
	}

	return entry.game.Clone(), nil
}

func (that *memoryGame) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	entry, ok := that.games[id]
	if !ok {
		return apperror.ErrGameNotFound
	}

	delete(that.games, id)

	if entry.isExpired(that.now()) {
		return apperror.ErrGameNotFound
	}

	return nil
}

// evictExpired - caller holds the write lock.
func (that *memoryGame) evictExpired(now time.Time) {
	for id, entry := range that.games {
		if entry.isExpired(now) {
			delete(that.games, id)
		}
	}
}

func (that memoryEntry) isExpired(now time.Time) bool {
	return !that.expiresAt.IsZero() && !now.Before(that.expiresAt)
}
