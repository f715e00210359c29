package usecase

import "sync"

type gameLock struct {
	mu   sync.Mutex
	refs int
}

// gameLocks - one mutex per game id, dropped once nobody holds or waits on it.
// Only serialises callers inside this process.
type gameLocks struct {
	mu    sync.Mutex
	locks map[string]*gameLock
}

func newGameLocks() *gameLocks {
	return &gameLocks{locks: make(map[string]*gameLock)}
}

// lock - blocks until gameID is free and returns its unlock func.
func (that *gameLocks) lock(gameID string) func() {
	that.mu.Lock()
	entry, ok := that.locks[gameID]
	if !ok {
		entry = &gameLock{}
		that.locks[gameID] = entry
	}
	entry.refs++
	that.mu.Unlock()

	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()

		that.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(that.locks, gameID)
		}
		that.mu.Unlock()
	}
}

func (that *gameLocks) size() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return len(that.locks)
}
