package adapter

import (
	"context"

	"github.com/httpsniic/sistema-cmc-server/internal/domain/entity"
)

// MetricsCache caches computed dashboards per (store, period).
type MetricsCache interface {
	// Get loads a cached value into dest. It reports false on a miss.
	Get(ctx context.Context, storeID string, period entity.Period, dest interface{}) (bool, error)

	// Set stores a value for the configured TTL.
	Set(ctx context.Context, storeID string, period entity.Period, value interface{}) error

	// Invalidate drops the cached value of a period.
	Invalidate(ctx context.Context, storeID string, period entity.Period) error

	// InvalidateStore drops the cached values of every period of a store.
	InvalidateStore(ctx context.Context, storeID string) error
}
