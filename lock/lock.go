// Package lock serializes draft mutations per league. Every operation that reads a
// league, decides and writes back must hold the league's lock for the whole cycle.
package lock

import (
	"context"
	"fmt"
	"sync"
)

// Locker hands out per-league exclusive locks. Lock blocks until the lock is held
// or ctx is done. The returned func releases the lock and is safe to call once.
type Locker interface {
	Lock(ctx context.Context, leagueID string) (unlock func(), err error)
}

// MemoryLocker serializes callers within a single process.
type MemoryLocker struct {
	mu     sync.Mutex
	leases map[string]chan struct{}
}

func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{leases: make(map[string]chan struct{})}
}

func (l *MemoryLocker) Lock(ctx context.Context, leagueID string) (func(), error) {
	l.mu.Lock()
	lease, found := l.leases[leagueID]
	if !found {
		lease = make(chan struct{}, 1)
		l.leases[leagueID] = lease
	}
	l.mu.Unlock()

	select {
	case lease <- struct{}{}:
	case <-ctx.Done():
		return nil, fmt.Errorf("waiting for lock on league %s: %w", leagueID, ctx.Err())
	}

	var once sync.Once
	return func() {
		once.Do(func() { <-lease })
	}, nil
}
