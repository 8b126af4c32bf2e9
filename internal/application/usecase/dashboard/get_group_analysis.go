package dashboard

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/httpsniic/sistema-cmc-server/internal/application/adapter"
	"github.com/httpsniic/sistema-cmc-server/internal/domain/entity"
	"github.com/httpsniic/sistema-cmc-server/internal/domain/metrics"
)

// GetGroupAnalysisInput represents the input for the group analysis.
type GetGroupAnalysisInput struct {
	StoreID string
	Period  string
	// IncludeEmpty keeps groups without purchases or revenue.
	IncludeEmpty bool
}

// GetGroupAnalysisOutput represents the per-group breakdown of a period.
type GetGroupAnalysisOutput struct {
	Period         entity.Period
	Groups         []metrics.GroupMetric
	TotalPurchases decimal.Decimal
	TotalRevenue   decimal.Decimal
	// UntaggedPurchases sums purchases whose tag matches no current group.
	UntaggedPurchases decimal.Decimal
}

// GetGroupAnalysisUseCase computes the group breakdown of one period.
type GetGroupAnalysisUseCase struct {
	loader *snapshotLoader
}

// NewGetGroupAnalysisUseCase creates a new GetGroupAnalysisUseCase instance.
func NewGetGroupAnalysisUseCase(recordRepo adapter.RecordRepository, groupRepo adapter.GroupRepository) *GetGroupAnalysisUseCase {
	return &GetGroupAnalysisUseCase{
		loader: &snapshotLoader{
			recordRepo: recordRepo,
			groupRepo:  groupRepo,
		},
	}
}

// Execute performs the analysis.
func (uc *GetGroupAnalysisUseCase) Execute(ctx context.Context, input GetGroupAnalysisInput) (*GetGroupAnalysisOutput, error) {
	period, err := parsePeriod(input.Period)
	if err != nil {
		return nil, err
	}

	snap, err := uc.loader.load(ctx, input.StoreID, period, false)
	if err != nil {
		return nil, err
	}

	groups := metrics.ComputeGroupMetrics(snap.records, snap.groups)
	if !input.IncludeEmpty {
		groups = metrics.ActiveGroups(groups)
	}

	known := make(map[string]bool, len(snap.groups))
	for _, g := range snap.groups {
		known[g.Name] = true
	}

	kpis := metrics.ComputePeriodMetrics(snap.records, period.DaysInMonth())
	untagged := decimal.Zero
	for _, r := range snap.records {
		if !known[r.GroupTag] {
			untagged = untagged.Add(r.PurchaseAmount)
		}
	}

	return &GetGroupAnalysisOutput{
		Period:            period,
		Groups:            groups,
		TotalPurchases:    kpis.TotalPurchases,
		TotalRevenue:      kpis.TotalRevenue,
		UntaggedPurchases: untagged,
	}, nil
}
