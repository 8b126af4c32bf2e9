package record

import (
	"context"

	"github.com/httpsniic/sistema-cmc-server/internal/application/adapter"
	"github.com/httpsniic/sistema-cmc-server/internal/domain/entity"
	domainerror "github.com/httpsniic/sistema-cmc-server/internal/domain/error"
)

// RemovePurchaseInput represents the input for removing a day's purchase.
type RemovePurchaseInput struct {
	StoreID string
	Date    string
}

// RemovePurchaseOutput represents the output of removing a purchase.
type RemovePurchaseOutput struct {
	Period  entity.Period
	Records []*entity.DailyRecord
	// Pruned is true when the day had no revenue and was dropped.
	Pruned bool
}

// RemovePurchaseUseCase zeroes the purchases of one day.
type RemovePurchaseUseCase struct {
	writer *periodWriter
}

// NewRemovePurchaseUseCase creates a new RemovePurchaseUseCase instance.
func NewRemovePurchaseUseCase(
	recordRepo adapter.RecordRepository,
	cache adapter.MetricsCache,
	locks *PeriodLocks,
) *RemovePurchaseUseCase {
	return &RemovePurchaseUseCase{
		writer: &periodWriter{recordRepo: recordRepo, cache: cache, locks: locks},
	}
}

// Execute clears the purchase and both tags of the day. Revenue is kept.
func (uc *RemovePurchaseUseCase) Execute(ctx context.Context, input RemovePurchaseInput) (*RemovePurchaseOutput, error) {
	date, err := entity.ParseRecordDate(input.Date)
	if err != nil {
		return nil, err
	}

	period := entity.PeriodOf(date)
	pruned := false

	records, err := uc.writer.rewrite(ctx, input.StoreID, period, func(records []*entity.DailyRecord) ([]*entity.DailyRecord, error) {
		existing, ok := entity.FindRecord(records, date)
		if !ok {
			return nil, domainerror.NewRecordError(
				domainerror.ErrCodeRecordNotFound,
				"no record for "+date.Format(entity.RecordDateLayout),
				domainerror.ErrRecordNotFound,
			)
		}
		existing.ClearPurchase()
		pruned = existing.IsEmpty()
		return records, nil
	})
	if err != nil {
		return nil, err
	}

	return &RemovePurchaseOutput{
		Period:  period,
		Records: records,
		Pruned:  pruned,
	}, nil
}
