package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/httpsniic/sistema-cmc-server/internal/domain/entity"
)

// GroupModel represents the groups table. IDs restart at 1 for every store.
type GroupModel struct {
	StoreID           string          `gorm:"type:varchar(50);primaryKey"`
	ID                uint            `gorm:"primaryKey;autoIncrement:false"`
	Name              string          `gorm:"type:varchar(100);not null"`
	Color             string          `gorm:"type:varchar(20);not null"`
	CostTargetPercent decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	Icon              string          `gorm:"type:varchar(20)"`
	CreatedAt         time.Time       `gorm:"not null"`
	UpdatedAt         time.Time       `gorm:"not null"`
}

// TableName returns the table name for the GroupModel.
func (GroupModel) TableName() string {
	return "purchase_groups"
}

// ToEntity converts a GroupModel to a domain Group entity.
func (m *GroupModel) ToEntity() *entity.Group {
	return &entity.Group{
		ID:                m.ID,
		StoreID:           m.StoreID,
		Name:              m.Name,
		Color:             m.Color,
		CostTargetPercent: m.CostTargetPercent,
		Icon:              m.Icon,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

// GroupFromEntity creates a GroupModel from a domain Group entity.
func GroupFromEntity(group *entity.Group) *GroupModel {
	return &GroupModel{
		StoreID:           group.StoreID,
		ID:                group.ID,
		Name:              group.Name,
		Color:             group.Color,
		CostTargetPercent: group.CostTargetPercent,
		Icon:              group.Icon,
		CreatedAt:         group.CreatedAt,
		UpdatedAt:         group.UpdatedAt,
	}
}
