package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/httpsniic/sistema-cmc-server/internal/application/adapter"
	"github.com/httpsniic/sistema-cmc-server/internal/domain/entity"
	domainerror "github.com/httpsniic/sistema-cmc-server/internal/domain/error"
	"github.com/httpsniic/sistema-cmc-server/internal/integration/persistence/model"
)

type supplierRepository struct {
	db *gorm.DB
}

// NewSupplierRepository creates a new supplier repository instance.
func NewSupplierRepository(db *gorm.DB) adapter.SupplierRepository {
	return &supplierRepository{db: db}
}

func (r *supplierRepository) List(ctx context.Context, storeID string) ([]*entity.Supplier, error) {
	var models []model.SupplierModel
	if err := r.db.WithContext(ctx).Where("store_id = ?", storeID).Order("id ASC").Find(&models).Error; err != nil {
		return nil, err
	}

	suppliers := make([]*entity.Supplier, len(models))
	for i := range models {
		suppliers[i] = models[i].ToEntity()
	}
	return suppliers, nil
}

func (r *supplierRepository) Create(ctx context.Context, supplier *entity.Supplier) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		id, err := nextStoreID(tx, &model.SupplierModel{}, supplier.StoreID)
		if err != nil {
			return err
		}
		supplier.ID = id
		return tx.Create(model.SupplierFromEntity(supplier)).Error
	})
}

func (r *supplierRepository) Delete(ctx context.Context, storeID string, id uint) error {
	result := r.db.WithContext(ctx).Where("store_id = ? AND id = ?", storeID, id).Delete(&model.SupplierModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrSupplierNotFound
	}
	return nil
}
