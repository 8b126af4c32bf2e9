package persistence

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/httpsniic/sistema-cmc-server/internal/application/adapter"
	"github.com/httpsniic/sistema-cmc-server/internal/domain/entity"
	"github.com/httpsniic/sistema-cmc-server/internal/integration/persistence/model"
)

type storeRepository struct {
	db *gorm.DB
}

// NewStoreRepository creates a new store repository instance.
func NewStoreRepository(db *gorm.DB) adapter.StoreRepository {
	return &storeRepository{db: db}
}

// Seed inserts the stores that do not exist yet. Existing rows are left alone.
func (r *storeRepository) Seed(ctx context.Context, stores []entity.Store) error {
	if len(stores) == 0 {
		return nil
	}

	models := make([]*model.StoreModel, len(stores))
	for i, s := range stores {
		models[i] = model.StoreFromEntity(s)
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models).Error
}
