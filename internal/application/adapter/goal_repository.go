package adapter

import (
	"context"

	"github.com/httpsniic/sistema-cmc-server/internal/domain/entity"
)

// GoalRepository defines the interface for goal persistence operations.
type GoalRepository interface {
	// List returns the store's goals ordered by ID.
	List(ctx context.Context, storeID string) ([]*entity.Goal, error)

	// FindForPeriod returns the most recent goal whose period label equals
	// the period key, or ErrGoalNotFound.
	FindForPeriod(ctx context.Context, storeID string, period entity.Period) (*entity.Goal, error)

	// Create assigns the next ID of the store and persists the goal.
	Create(ctx context.Context, goal *entity.Goal) error

	// Delete removes a goal of the store.
	Delete(ctx context.Context, storeID string, id uint) error
}
