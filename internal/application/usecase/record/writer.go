package record

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/httpsniic/sistema-cmc-server/internal/application/adapter"
	"github.com/httpsniic/sistema-cmc-server/internal/domain/entity"
)

// periodWriter runs load, modify and save of one period under its lock.
type periodWriter struct {
	recordRepo adapter.RecordRepository
	cache      adapter.MetricsCache
	locks      *PeriodLocks
}

// rewrite applies mutate to the stored records of the period. The result is
// pruned of empty days and sorted before it replaces the period.
func (w *periodWriter) rewrite(
	ctx context.Context,
	storeID string,
	period entity.Period,
	mutate func([]*entity.DailyRecord) ([]*entity.DailyRecord, error),
) ([]*entity.DailyRecord, error) {
	unlock := w.locks.Lock(storeID, period)
	defer unlock()

	records, err := w.recordRepo.Load(ctx, storeID, period)
	if err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}

	records, err = mutate(records)
	if err != nil {
		return nil, err
	}

	records = entity.PruneEmpty(records)
	entity.SortRecords(records)

	if err := w.recordRepo.SaveAll(ctx, storeID, period, records); err != nil {
		return nil, fmt.Errorf("failed to save records: %w", err)
	}

	if err := w.cache.Invalidate(ctx, storeID, period); err != nil {
		// Entries expire on their own; a stale dashboard is not fatal.
		slog.Warn("Failed to invalidate metrics cache",
			"store_id", storeID,
			"period", period.Key(),
			"error", err,
		)
	}

	return records, nil
}
