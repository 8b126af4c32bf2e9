// Package store contains store use cases.
package store

import (
	"context"
	"fmt"

	"github.com/httpsniic/sistema-cmc-server/internal/application/adapter"
	"github.com/httpsniic/sistema-cmc-server/internal/domain/entity"
)

// ListStoresUseCase returns the fixed store list.
type ListStoresUseCase struct{}

// NewListStoresUseCase creates a new ListStoresUseCase instance.
func NewListStoresUseCase() *ListStoresUseCase {
	return &ListStoresUseCase{}
}

// Execute returns every store.
func (uc *ListStoresUseCase) Execute(context.Context) []entity.Store {
	return entity.Stores()
}

// SeedStoresUseCase writes the store list to the stores table.
type SeedStoresUseCase struct {
	storeRepo adapter.StoreRepository
}

// NewSeedStoresUseCase creates a new SeedStoresUseCase instance.
func NewSeedStoresUseCase(storeRepo adapter.StoreRepository) *SeedStoresUseCase {
	return &SeedStoresUseCase{storeRepo: storeRepo}
}

// Execute inserts missing stores and returns how many are known.
func (uc *SeedStoresUseCase) Execute(ctx context.Context) (int, error) {
	stores := entity.Stores()
	if err := uc.storeRepo.Seed(ctx, stores); err != nil {
		return 0, fmt.Errorf("failed to seed stores: %w", err)
	}
	return len(stores), nil
}
