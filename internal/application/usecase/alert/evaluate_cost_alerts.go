// Package alert queues cost alerts for stores whose CMC is above target.
package alert

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/httpsniic/sistema-cmc-server/internal/application/adapter"
	"github.com/httpsniic/sistema-cmc-server/internal/application/usecase/dashboard"
	"github.com/httpsniic/sistema-cmc-server/internal/domain/entity"
	"github.com/httpsniic/sistema-cmc-server/internal/domain/metrics"
)

// maxConcurrentStores bounds the dashboards built at once.
const maxConcurrentStores = 4

type dashboardReader interface {
	Execute(ctx context.Context, input dashboard.GetDashboardInput) (*dashboard.GetDashboardOutput, error)
}

// EvaluateCostAlertsOutput summarizes one evaluation run.
type EvaluateCostAlertsOutput struct {
	Period    string   `json:"period"`
	Evaluated int      `json:"evaluated"`
	Alerted   []string `json:"alerted"`
	Failed    []string `json:"failed"`
	Skipped   bool     `json:"skipped"`
}

// EvaluateCostAlertsUseCase checks the current period of every store.
type EvaluateCostAlertsUseCase struct {
	dashboards   dashboardReader
	emailService adapter.EmailService
	recipient    string
	now          func() time.Time
}

// NewEvaluateCostAlertsUseCase creates a new EvaluateCostAlertsUseCase instance.
func NewEvaluateCostAlertsUseCase(dashboards dashboardReader, emailService adapter.EmailService, recipient string) *EvaluateCostAlertsUseCase {
	return &EvaluateCostAlertsUseCase{
		dashboards:   dashboards,
		emailService: emailService,
		recipient:    recipient,
		now:          time.Now,
	}
}

// SetClock replaces the clock that picks the evaluated period.
func (uc *EvaluateCostAlertsUseCase) SetClock(now func() time.Time) {
	uc.now = now
}

// Execute evaluates every store. A store that fails is logged and listed in
// Failed; the others still run.
func (uc *EvaluateCostAlertsUseCase) Execute(ctx context.Context) (*EvaluateCostAlertsOutput, error) {
	period := entity.PeriodOf(uc.now())
	output := &EvaluateCostAlertsOutput{
		Period:  period.Key(),
		Alerted: []string{},
		Failed:  []string{},
	}

	if uc.recipient == "" {
		slog.Warn("Cost alerts skipped, no recipient configured")
		output.Skipped = true
		return output, nil
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentStores)

	for _, store := range entity.Stores() {
		store := store
		g.Go(func() error {
			alerted, err := uc.evaluateStore(gctx, store, period)

			mu.Lock()
			defer mu.Unlock()
			output.Evaluated++
			if err != nil {
				slog.Error("Failed to evaluate cost alert",
					"store_id", store.ID,
					"period", period.Key(),
					"error", err,
				)
				output.Failed = append(output.Failed, store.ID)
				return nil
			}
			if alerted {
				output.Alerted = append(output.Alerted, store.ID)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sort.Strings(output.Alerted)
	sort.Strings(output.Failed)

	slog.Info("Cost alerts evaluated",
		"period", output.Period,
		"alerted", len(output.Alerted),
		"failed", len(output.Failed),
	)
	return output, nil
}

func (uc *EvaluateCostAlertsUseCase) evaluateStore(ctx context.Context, store entity.Store, period entity.Period) (bool, error) {
	dash, err := uc.dashboards.Execute(ctx, dashboard.GetDashboardInput{
		StoreID: store.ID,
		Period:  period.Key(),
	})
	if err != nil {
		return false, fmt.Errorf("failed to build dashboard: %w", err)
	}

	if dash.Target.Status != metrics.TargetAbove {
		return false, nil
	}

	var groupsAbove []string
	for _, gm := range metrics.ActiveGroups(dash.Groups) {
		if !gm.WithinTarget() {
			groupsAbove = append(groupsAbove, gm.Name)
		}
	}

	err = uc.emailService.QueueCostAlertEmail(ctx, adapter.QueueCostAlertInput{
		RecipientEmail: uc.recipient,
		StoreID:        store.ID,
		StoreName:      store.Name,
		Period:         period.Key(),
		Revenue:        metrics.FormatCurrency(dash.Metrics.TotalRevenue),
		Purchases:      metrics.FormatCurrency(dash.Metrics.TotalPurchases),
		CostRatio:      metrics.FormatPercent(dash.Metrics.CurrentCostRatio),
		Target:         metrics.FormatPercent(dash.TargetPercent),
		Diff:           metrics.FormatPercent(dash.Target.Diff),
		GroupsAbove:    groupsAbove,
	})
	if err != nil {
		return false, fmt.Errorf("failed to queue alert: %w", err)
	}
	return true, nil
}
