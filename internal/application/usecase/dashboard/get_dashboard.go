package dashboard

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/httpsniic/sistema-cmc-server/internal/application/adapter"
	"github.com/httpsniic/sistema-cmc-server/internal/domain/entity"
	"github.com/httpsniic/sistema-cmc-server/internal/domain/metrics"
)

// recentPurchaseLimit bounds the recent purchase list.
const recentPurchaseLimit = 10

// Target sources.
const (
	TargetSourceGoal    = "goal"
	TargetSourceDefault = "default"
)

// GetDashboardInput represents the input for the dashboard.
type GetDashboardInput struct {
	StoreID string
	Period  string
}

// RecentPurchase is one day with purchases and its weight on the period CMC.
type RecentPurchase struct {
	Date         time.Time       `json:"date"`
	WeekdayLabel string          `json:"weekday_label"`
	Amount       decimal.Decimal `json:"amount"`
	GroupTag     string          `json:"group_tag"`
	SupplierTag  string          `json:"supplier_tag"`
	// Impact is the purchase over the period's total revenue, in percent.
	Impact decimal.Decimal `json:"impact"`
}

// GetDashboardOutput represents the dashboard of one (store, period).
type GetDashboardOutput struct {
	StoreID              string                 `json:"store_id"`
	Period               entity.Period          `json:"period"`
	DaysInMonth          int                    `json:"days_in_month"`
	Metrics              metrics.PeriodMetrics  `json:"metrics"`
	DaysRemainingDisplay int                    `json:"days_remaining_display"`
	TargetPercent        decimal.Decimal        `json:"target_percent"`
	TargetSource         string                 `json:"target_source"`
	Target               metrics.TargetStatus   `json:"target"`
	RevenueTarget        *decimal.Decimal       `json:"revenue_target,omitempty"`
	RevenueProgress      *decimal.Decimal       `json:"revenue_progress,omitempty"`
	Groups               []metrics.GroupMetric  `json:"groups"`
	RunningTotals        []metrics.RunningTotal `json:"running_totals"`
	RecentPurchases      []RecentPurchase       `json:"recent_purchases"`
	Cached               bool                   `json:"-"`
}

// GetDashboardUseCase builds the dashboard of one period.
type GetDashboardUseCase struct {
	loader        *snapshotLoader
	cache         adapter.MetricsCache
	defaultTarget decimal.Decimal
}

// NewGetDashboardUseCase creates a new GetDashboardUseCase instance.
// defaultTarget applies when no goal targets the period.
func NewGetDashboardUseCase(
	recordRepo adapter.RecordRepository,
	groupRepo adapter.GroupRepository,
	goalRepo adapter.GoalRepository,
	cache adapter.MetricsCache,
	defaultTarget decimal.Decimal,
) *GetDashboardUseCase {
	return &GetDashboardUseCase{
		loader: &snapshotLoader{
			recordRepo: recordRepo,
			groupRepo:  groupRepo,
			goalRepo:   goalRepo,
		},
		cache:         cache,
		defaultTarget: defaultTarget,
	}
}

// Execute returns the cached dashboard or computes a fresh one.
func (uc *GetDashboardUseCase) Execute(ctx context.Context, input GetDashboardInput) (*GetDashboardOutput, error) {
	period, err := parsePeriod(input.Period)
	if err != nil {
		return nil, err
	}

	var cached GetDashboardOutput
	hit, err := uc.cache.Get(ctx, input.StoreID, period, &cached)
	if err != nil {
		slog.Warn("Metrics cache read failed", "store_id", input.StoreID, "period", period.Key(), "error", err)
	}
	if hit {
		cached.Cached = true
		return &cached, nil
	}

	snap, err := uc.loader.load(ctx, input.StoreID, period, true)
	if err != nil {
		return nil, err
	}

	output := uc.build(input.StoreID, period, snap)

	if err := uc.cache.Set(ctx, input.StoreID, period, output); err != nil {
		slog.Warn("Metrics cache write failed", "store_id", input.StoreID, "period", period.Key(), "error", err)
	}

	return output, nil
}

func (uc *GetDashboardUseCase) build(storeID string, period entity.Period, snap *snapshot) *GetDashboardOutput {
	days := period.DaysInMonth()
	kpis := metrics.ComputePeriodMetrics(snap.records, days)

	target := uc.defaultTarget
	source := TargetSourceDefault
	var revenueTarget, revenueProgress *decimal.Decimal
	if snap.goal != nil {
		target = snap.goal.CostTargetPercent
		source = TargetSourceGoal
		revenueTarget = &snap.goal.RevenueTarget
		if snap.goal.RevenueTarget.IsPositive() {
			progress := kpis.TotalRevenue.Mul(decimal.NewFromInt(100)).Div(snap.goal.RevenueTarget)
			revenueProgress = &progress
		}
	}

	remaining := kpis.DaysRemaining
	if remaining < 0 {
		remaining = 0
	}

	return &GetDashboardOutput{
		StoreID:              storeID,
		Period:               period,
		DaysInMonth:          days,
		Metrics:              kpis,
		DaysRemainingDisplay: remaining,
		TargetPercent:        target,
		TargetSource:         source,
		Target:               metrics.EvaluateTarget(kpis.CurrentCostRatio, target, kpis.TotalRevenue),
		RevenueTarget:        revenueTarget,
		RevenueProgress:      revenueProgress,
		Groups:               metrics.ComputeGroupMetrics(snap.records, snap.groups),
		RunningTotals:        metrics.ComputeRunningTotals(snap.records),
		RecentPurchases:      recentPurchases(snap.records, kpis.TotalRevenue),
	}
}

// recentPurchases lists the latest days with purchases, newest first.
func recentPurchases(records []*entity.DailyRecord, totalRevenue decimal.Decimal) []RecentPurchase {
	out := make([]RecentPurchase, 0, recentPurchaseLimit)
	for i := len(records) - 1; i >= 0 && len(out) < recentPurchaseLimit; i-- {
		r := records[i]
		if !r.PurchaseAmount.IsPositive() {
			continue
		}
		out = append(out, RecentPurchase{
			Date:         r.Date,
			WeekdayLabel: r.WeekdayLabel,
			Amount:       r.PurchaseAmount,
			GroupTag:     r.GroupTag,
			SupplierTag:  r.SupplierTag,
			Impact:       metrics.CostRatio(r.PurchaseAmount, totalRevenue),
		})
	}
	return out
}
