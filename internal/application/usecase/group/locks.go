package group

import (
	"context"
	"log/slog"
	"sync"

	"github.com/httpsniic/sistema-cmc-server/internal/application/adapter"
)

// StoreLocks serializes group writes of one store within the process, so a
// name check and the ID the repository assigns after it cannot interleave.
type StoreLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewStoreLocks creates an empty lock table.
func NewStoreLocks() *StoreLocks {
	return &StoreLocks{
		locks: make(map[string]*sync.Mutex),
	}
}

// Lock blocks until the store is free and returns its unlock func.
func (l *StoreLocks) Lock(storeID string) func() {
	l.mu.Lock()
	m, ok := l.locks[storeID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[storeID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}

// invalidateStore drops every cached dashboard of the store. Group metrics
// are computed for all periods from the same list.
func invalidateStore(ctx context.Context, cache adapter.MetricsCache, storeID string) {
	if err := cache.InvalidateStore(ctx, storeID); err != nil {
		slog.Warn("Failed to invalidate metrics cache",
			"store_id", storeID,
			"error", err,
		)
	}
}
