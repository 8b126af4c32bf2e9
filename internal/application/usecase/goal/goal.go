// Package goal contains goal-related use cases.
package goal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/httpsniic/sistema-cmc-server/internal/application/adapter"
	"github.com/httpsniic/sistema-cmc-server/internal/domain/entity"
	domainerror "github.com/httpsniic/sistema-cmc-server/internal/domain/error"
)

var maxTarget = decimal.NewFromInt(100)

// ListGoalsUseCase lists a store's goals.
type ListGoalsUseCase struct {
	goalRepo adapter.GoalRepository
}

// NewListGoalsUseCase creates a new ListGoalsUseCase instance.
func NewListGoalsUseCase(goalRepo adapter.GoalRepository) *ListGoalsUseCase {
	return &ListGoalsUseCase{goalRepo: goalRepo}
}

// Execute returns the goals ordered by ID.
func (uc *ListGoalsUseCase) Execute(ctx context.Context, storeID string) ([]*entity.Goal, error) {
	goals, err := uc.goalRepo.List(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	return goals, nil
}

// CreateGoalInput represents the input for goal creation.
type CreateGoalInput struct {
	StoreID           string
	Period            string
	RevenueTarget     *decimal.Decimal
	CostTargetPercent *decimal.Decimal // Optional, defaults to 30
	AverageTicket     *decimal.Decimal // Optional, defaults to 0
}

// CreateGoalUseCase handles goal creation logic.
type CreateGoalUseCase struct {
	goalRepo adapter.GoalRepository
	cache    adapter.MetricsCache
}

// NewCreateGoalUseCase creates a new CreateGoalUseCase instance.
func NewCreateGoalUseCase(goalRepo adapter.GoalRepository, cache adapter.MetricsCache) *CreateGoalUseCase {
	return &CreateGoalUseCase{goalRepo: goalRepo, cache: cache}
}

// Execute performs the goal creation.
func (uc *CreateGoalUseCase) Execute(ctx context.Context, input CreateGoalInput) (*entity.Goal, error) {
	period := strings.TrimSpace(input.Period)
	if period == "" {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeGoalPeriodRequired,
			"period is required",
			domainerror.ErrGoalPeriodRequired,
		)
	}

	// Validate revenue target
	if input.RevenueTarget == nil || !input.RevenueTarget.IsPositive() {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeInvalidRevenueTarget,
			"revenue target must be greater than zero",
			domainerror.ErrInvalidRevenueTarget,
		)
	}

	if t := input.CostTargetPercent; t != nil && (t.IsNegative() || t.GreaterThan(maxTarget)) {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeInvalidGoalCostTarget,
			"cost target must be between 0 and 100",
			domainerror.ErrInvalidGoalCostTarget,
		)
	}

	if input.AverageTicket != nil && input.AverageTicket.IsNegative() {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeInvalidAverageTicket,
			"average ticket must not be negative",
			domainerror.ErrInvalidAverageTicket,
		)
	}

	goal := entity.NewGoal(input.StoreID, period, *input.RevenueTarget, input.CostTargetPercent, input.AverageTicket)

	if err := uc.goalRepo.Create(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}
	invalidateStore(ctx, uc.cache, input.StoreID)
	return goal, nil
}

// DeleteGoalUseCase handles goal deletion logic.
type DeleteGoalUseCase struct {
	goalRepo adapter.GoalRepository
	cache    adapter.MetricsCache
}

// NewDeleteGoalUseCase creates a new DeleteGoalUseCase instance.
func NewDeleteGoalUseCase(goalRepo adapter.GoalRepository, cache adapter.MetricsCache) *DeleteGoalUseCase {
	return &DeleteGoalUseCase{goalRepo: goalRepo, cache: cache}
}

// Execute performs the goal deletion.
func (uc *DeleteGoalUseCase) Execute(ctx context.Context, storeID string, id uint) error {
	if err := uc.goalRepo.Delete(ctx, storeID, id); err != nil {
		if errors.Is(err, domainerror.ErrGoalNotFound) {
			return domainerror.NewGoalError(
				domainerror.ErrCodeGoalNotFound,
				"goal not found",
				domainerror.ErrGoalNotFound,
			)
		}
		return fmt.Errorf("failed to delete goal: %w", err)
	}
	invalidateStore(ctx, uc.cache, storeID)
	return nil
}

// invalidateStore drops every cached dashboard of the store. Goal labels are
// free text, so the periods a goal targets are not known here.
func invalidateStore(ctx context.Context, cache adapter.MetricsCache, storeID string) {
	if err := cache.InvalidateStore(ctx, storeID); err != nil {
		slog.Warn("Failed to invalidate metrics cache",
			"store_id", storeID,
			"error", err,
		)
	}
}
