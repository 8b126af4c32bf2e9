package adapter

import (
	"context"

	"github.com/httpsniic/sistema-cmc-server/internal/domain/entity"
)

// StoreRepository persists the store list for reporting and foreign keys.
type StoreRepository interface {
	// Seed inserts any missing store of the list.
	Seed(ctx context.Context, stores []entity.Store) error
}
