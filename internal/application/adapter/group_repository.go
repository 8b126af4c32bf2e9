package adapter

import (
	"context"

	"github.com/httpsniic/sistema-cmc-server/internal/domain/entity"
)

// GroupRepository defines the interface for group persistence operations.
// Groups are scoped by store; IDs are unique within a store only.
type GroupRepository interface {
	// List returns the store's groups ordered by ID.
	List(ctx context.Context, storeID string) ([]*entity.Group, error)

	// FindByID retrieves one group of the store.
	FindByID(ctx context.Context, storeID string, id uint) (*entity.Group, error)

	// Create assigns the next ID of the store and persists the group.
	Create(ctx context.Context, group *entity.Group) error

	// Delete removes a group of the store.
	Delete(ctx context.Context, storeID string, id uint) error

	// ReplaceAll swaps the store's whole group list atomically.
	ReplaceAll(ctx context.Context, storeID string, groups []*entity.Group) error
}
