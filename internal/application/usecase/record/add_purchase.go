package record

import (
	"context"

	"github.com/httpsniic/sistema-cmc-server/internal/application/adapter"
	"github.com/httpsniic/sistema-cmc-server/internal/domain/entity"
)

// AddPurchaseInput represents the input for adding a purchase.
type AddPurchaseInput struct {
	StoreID     string
	Date        string
	Amount      string
	GroupTag    string
	SupplierTag string
	// SelectedPeriod is the period the client is looking at, if any.
	SelectedPeriod *entity.Period
}

// AddPurchaseOutput represents the output of adding a purchase.
type AddPurchaseOutput struct {
	Record                *entity.DailyRecord
	Period                entity.Period
	Records               []*entity.DailyRecord
	OutsideSelectedPeriod bool
}

// AddPurchaseUseCase merges a purchase into the day it happened.
type AddPurchaseUseCase struct {
	writer *periodWriter
}

// NewAddPurchaseUseCase creates a new AddPurchaseUseCase instance.
func NewAddPurchaseUseCase(
	recordRepo adapter.RecordRepository,
	cache adapter.MetricsCache,
	locks *PeriodLocks,
) *AddPurchaseUseCase {
	return &AddPurchaseUseCase{
		writer: &periodWriter{recordRepo: recordRepo, cache: cache, locks: locks},
	}
}

// Execute adds the amount to the day's purchases. The period is derived from
// the date, not from the period the client has selected.
func (uc *AddPurchaseUseCase) Execute(ctx context.Context, input AddPurchaseInput) (*AddPurchaseOutput, error) {
	amount, err := entity.ParseAmount(input.Amount)
	if err != nil {
		return nil, err
	}

	entry, err := entity.NewDailyRecord(entity.DailyRecordInput{
		StoreID:     input.StoreID,
		Date:        input.Date,
		GroupTag:    input.GroupTag,
		SupplierTag: input.SupplierTag,
	})
	if err != nil {
		return nil, err
	}

	period := entry.Period()

	var merged *entity.DailyRecord
	records, err := uc.writer.rewrite(ctx, input.StoreID, period, func(records []*entity.DailyRecord) ([]*entity.DailyRecord, error) {
		if existing, ok := entity.FindRecord(records, entry.Date); ok {
			existing.AddPurchase(amount, entry.GroupTag, entry.SupplierTag)
			merged = existing
			return records, nil
		}

		entry.PurchaseAmount = amount
		merged = entry
		return append(records, entry), nil
	})
	if err != nil {
		return nil, err
	}

	outside := input.SelectedPeriod != nil && *input.SelectedPeriod != period

	return &AddPurchaseOutput{
		Record:                merged,
		Period:                period,
		Records:               records,
		OutsideSelectedPeriod: outside,
	}, nil
}
