package model

import (
	"time"

	"github.com/lib/pq"

	"github.com/httpsniic/sistema-cmc-server/internal/domain/entity"
)

// SupplierModel represents the suppliers table. Categories are kept in the
// Postgres array literal form ({a,b}) in a text column, which SQLite can
// store as well.
type SupplierModel struct {
	StoreID    string         `gorm:"type:varchar(50);primaryKey"`
	ID         uint           `gorm:"primaryKey;autoIncrement:false"`
	Name       string         `gorm:"type:varchar(100);not null"`
	Contact    string         `gorm:"type:varchar(100)"`
	Email      string         `gorm:"type:varchar(255)"`
	Categories pq.StringArray `gorm:"type:text"`
	CreatedAt  time.Time      `gorm:"not null"`
	UpdatedAt  time.Time      `gorm:"not null"`
}

// TableName returns the table name for the SupplierModel.
func (SupplierModel) TableName() string {
	return "suppliers"
}

// ToEntity converts a SupplierModel to a domain Supplier entity.
func (m *SupplierModel) ToEntity() *entity.Supplier {
	categories := make([]string, len(m.Categories))
	copy(categories, m.Categories)

	return &entity.Supplier{
		ID:         m.ID,
		StoreID:    m.StoreID,
		Name:       m.Name,
		Contact:    m.Contact,
		Email:      m.Email,
		Categories: categories,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

// SupplierFromEntity creates a SupplierModel from a domain Supplier entity.
func SupplierFromEntity(supplier *entity.Supplier) *SupplierModel {
	return &SupplierModel{
		StoreID:    supplier.StoreID,
		ID:         supplier.ID,
		Name:       supplier.Name,
		Contact:    supplier.Contact,
		Email:      supplier.Email,
		Categories: pq.StringArray(supplier.Categories),
		CreatedAt:  supplier.CreatedAt,
		UpdatedAt:  supplier.UpdatedAt,
	}
}
