// Package dashboard contains the dashboard and analysis use cases.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/httpsniic/sistema-cmc-server/internal/application/adapter"
	"github.com/httpsniic/sistema-cmc-server/internal/domain/entity"
	domainerror "github.com/httpsniic/sistema-cmc-server/internal/domain/error"
	"github.com/httpsniic/sistema-cmc-server/internal/domain/metrics"
)

// parsePeriod turns the period query value into a Period.
func parsePeriod(key string) (entity.Period, error) {
	if strings.TrimSpace(key) == "" {
		return entity.Period{}, domainerror.NewDashboardError(
			domainerror.ErrCodeMissingPeriod,
			"period is required",
			domainerror.ErrMissingPeriod,
		)
	}

	period, err := entity.ParsePeriodKey(key)
	if err != nil {
		return entity.Period{}, domainerror.NewDashboardError(
			domainerror.ErrCodeInvalidPeriodFormat,
			"period must be in M-YYYY format, e.g. 3-2025",
			err,
		)
	}
	return period, nil
}

// snapshot is everything the engine needs for one (store, period).
type snapshot struct {
	records []*entity.DailyRecord
	groups  []*entity.Group
	goal    *entity.Goal
}

// snapshotLoader reads a snapshot with its three queries in parallel.
type snapshotLoader struct {
	recordRepo adapter.RecordRepository
	groupRepo  adapter.GroupRepository
	goalRepo   adapter.GoalRepository
}

// load fetches the snapshot. The goal is only read when withGoal is set and
// is nil when none targets the period.
func (l *snapshotLoader) load(ctx context.Context, storeID string, period entity.Period, withGoal bool) (*snapshot, error) {
	var snap snapshot
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		records, err := l.recordRepo.Load(gctx, storeID, period)
		if err != nil {
			return fmt.Errorf("failed to load records: %w", err)
		}
		snap.records = records
		return nil
	})

	g.Go(func() error {
		groups, err := l.groupRepo.List(gctx, storeID)
		if err != nil {
			return fmt.Errorf("failed to list groups: %w", err)
		}
		snap.groups = groups
		return nil
	})

	if withGoal {
		g.Go(func() error {
			goal, err := l.goalRepo.FindForPeriod(gctx, storeID, period)
			if errors.Is(err, domainerror.ErrGoalNotFound) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to find goal: %w", err)
			}
			snap.goal = goal
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if !metrics.RecordsSorted(snap.records) {
		ordered := make([]*entity.DailyRecord, len(snap.records))
		copy(ordered, snap.records)
		entity.SortRecords(ordered)
		snap.records = ordered
	}

	return &snap, nil
}
