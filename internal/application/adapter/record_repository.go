package adapter

import (
	"context"

	"github.com/httpsniic/sistema-cmc-server/internal/domain/entity"
)

// RecordRepository stores the daily records of a (store, period) pair as one unit.
type RecordRepository interface {
	// Load returns the period's records in ascending date order. A period
	// without records yields an empty slice, not an error.
	Load(ctx context.Context, storeID string, period entity.Period) ([]*entity.DailyRecord, error)

	// SaveAll replaces every record of the period. Either all records are
	// written or none are.
	SaveAll(ctx context.Context, storeID string, period entity.Period, records []*entity.DailyRecord) error

	// CountByGroupTag counts the store's records, across all periods,
	// tagged with the given group name.
	CountByGroupTag(ctx context.Context, storeID, groupTag string) (int64, error)
}
