package dashboard

import (
	"context"
	"fmt"

	"github.com/httpsniic/sistema-cmc-server/internal/application/adapter"
	"github.com/httpsniic/sistema-cmc-server/internal/domain/entity"
	"github.com/httpsniic/sistema-cmc-server/internal/domain/metrics"
)

// GetSupplierAnalysisInput represents the input for the supplier analysis.
type GetSupplierAnalysisInput struct {
	StoreID      string
	Period       string
	IncludeEmpty bool
}

// GetSupplierAnalysisOutput represents the per-supplier breakdown of a period.
type GetSupplierAnalysisOutput struct {
	Period    entity.Period
	Suppliers []metrics.SupplierMetric
}

// GetSupplierAnalysisUseCase computes the supplier breakdown of one period.
type GetSupplierAnalysisUseCase struct {
	recordRepo   adapter.RecordRepository
	supplierRepo adapter.SupplierRepository
}

// NewGetSupplierAnalysisUseCase creates a new GetSupplierAnalysisUseCase instance.
func NewGetSupplierAnalysisUseCase(recordRepo adapter.RecordRepository, supplierRepo adapter.SupplierRepository) *GetSupplierAnalysisUseCase {
	return &GetSupplierAnalysisUseCase{
		recordRepo:   recordRepo,
		supplierRepo: supplierRepo,
	}
}

// Execute performs the analysis.
func (uc *GetSupplierAnalysisUseCase) Execute(ctx context.Context, input GetSupplierAnalysisInput) (*GetSupplierAnalysisOutput, error) {
	period, err := parsePeriod(input.Period)
	if err != nil {
		return nil, err
	}

	records, err := uc.recordRepo.Load(ctx, input.StoreID, period)
	if err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}

	suppliers, err := uc.supplierRepo.List(ctx, input.StoreID)
	if err != nil {
		return nil, fmt.Errorf("failed to list suppliers: %w", err)
	}

	computed := metrics.ComputeSupplierMetrics(records, suppliers)
	if !input.IncludeEmpty {
		active := computed[:0]
		for _, m := range computed {
			if m.TotalPurchases.IsPositive() || m.TotalRevenue.IsPositive() {
				active = append(active, m)
			}
		}
		computed = active
	}

	return &GetSupplierAnalysisOutput{
		Period:    period,
		Suppliers: computed,
	}, nil
}
