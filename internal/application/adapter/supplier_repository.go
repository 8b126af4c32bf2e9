package adapter

import (
	"context"

	"github.com/httpsniic/sistema-cmc-server/internal/domain/entity"
)

// SupplierRepository defines the interface for supplier persistence operations.
type SupplierRepository interface {
	List(ctx context.Context, storeID string) ([]*entity.Supplier, error)
	Create(ctx context.Context, supplier *entity.Supplier) error
	Delete(ctx context.Context, storeID string, id uint) error
}
