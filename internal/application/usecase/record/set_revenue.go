package record

import (
	"context"

	"github.com/httpsniic/sistema-cmc-server/internal/application/adapter"
	"github.com/httpsniic/sistema-cmc-server/internal/domain/entity"
)

// SetRevenueInput represents the input for setting a day's revenue.
type SetRevenueInput struct {
	StoreID string
	Date    string
	Revenue string
}

// SetRevenueOutput represents the output of setting revenue.
type SetRevenueOutput struct {
	Record  *entity.DailyRecord
	Period  entity.Period
	Records []*entity.DailyRecord
}

// SetRevenueUseCase replaces the revenue of one day.
type SetRevenueUseCase struct {
	writer *periodWriter
}

// NewSetRevenueUseCase creates a new SetRevenueUseCase instance.
func NewSetRevenueUseCase(
	recordRepo adapter.RecordRepository,
	cache adapter.MetricsCache,
	locks *PeriodLocks,
) *SetRevenueUseCase {
	return &SetRevenueUseCase{
		writer: &periodWriter{recordRepo: recordRepo, cache: cache, locks: locks},
	}
}

// Execute overwrites the day's revenue, creating the day when missing.
// Setting zero on a day without purchases removes it.
func (uc *SetRevenueUseCase) Execute(ctx context.Context, input SetRevenueInput) (*SetRevenueOutput, error) {
	revenue, err := entity.ParseAmount(input.Revenue)
	if err != nil {
		return nil, err
	}

	entry, err := entity.NewDailyRecord(entity.DailyRecordInput{
		StoreID: input.StoreID,
		Date:    input.Date,
	})
	if err != nil {
		return nil, err
	}

	period := entry.Period()

	var updated *entity.DailyRecord
	records, err := uc.writer.rewrite(ctx, input.StoreID, period, func(records []*entity.DailyRecord) ([]*entity.DailyRecord, error) {
		if existing, ok := entity.FindRecord(records, entry.Date); ok {
			existing.Revenue = revenue
			updated = existing
			return records, nil
		}

		entry.Revenue = revenue
		updated = entry
		return append(records, entry), nil
	})
	if err != nil {
		return nil, err
	}

	return &SetRevenueOutput{
		Record:  updated,
		Period:  period,
		Records: records,
	}, nil
}
