package record

import (
	"context"
	"fmt"

	"github.com/httpsniic/sistema-cmc-server/internal/application/adapter"
	"github.com/httpsniic/sistema-cmc-server/internal/domain/entity"
)

// ListRecordsInput represents the input for listing a period's records.
type ListRecordsInput struct {
	StoreID string
	Period  string
}

// ListRecordsOutput represents the output of listing records.
type ListRecordsOutput struct {
	Period  entity.Period
	Records []*entity.DailyRecord
}

// ListRecordsUseCase returns the records of one period.
type ListRecordsUseCase struct {
	recordRepo adapter.RecordRepository
}

// NewListRecordsUseCase creates a new ListRecordsUseCase instance.
func NewListRecordsUseCase(recordRepo adapter.RecordRepository) *ListRecordsUseCase {
	return &ListRecordsUseCase{
		recordRepo: recordRepo,
	}
}

// Execute loads the period's records in date order.
func (uc *ListRecordsUseCase) Execute(ctx context.Context, input ListRecordsInput) (*ListRecordsOutput, error) {
	period, err := entity.ParsePeriodKey(input.Period)
	if err != nil {
		return nil, err
	}

	records, err := uc.recordRepo.Load(ctx, input.StoreID, period)
	if err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}

	return &ListRecordsOutput{
		Period:  period,
		Records: records,
	}, nil
}
