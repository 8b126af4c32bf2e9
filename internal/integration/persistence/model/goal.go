package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/httpsniic/sistema-cmc-server/internal/domain/entity"
)

// GoalModel represents the goals table in the database.
type GoalModel struct {
	StoreID           string          `gorm:"type:varchar(50);primaryKey"`
	ID                uint            `gorm:"primaryKey;autoIncrement:false"`
	Period            string          `gorm:"type:varchar(50);not null;index"`
	RevenueTarget     decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	CostTargetPercent decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	AverageTicket     decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	CreatedAt         time.Time       `gorm:"not null"`
	UpdatedAt         time.Time       `gorm:"not null"`
}

// TableName returns the table name for the GoalModel.
func (GoalModel) TableName() string {
	return "goals"
}

// ToEntity converts a GoalModel to a domain Goal entity.
func (m *GoalModel) ToEntity() *entity.Goal {
	return &entity.Goal{
		ID:                m.ID,
		StoreID:           m.StoreID,
		Period:            m.Period,
		RevenueTarget:     m.RevenueTarget,
		CostTargetPercent: m.CostTargetPercent,
		AverageTicket:     m.AverageTicket,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

// GoalFromEntity creates a GoalModel from a domain Goal entity.
func GoalFromEntity(goal *entity.Goal) *GoalModel {
	return &GoalModel{
		StoreID:           goal.StoreID,
		ID:                goal.ID,
		Period:            goal.Period,
		RevenueTarget:     goal.RevenueTarget,
		CostTargetPercent: goal.CostTargetPercent,
		AverageTicket:     goal.AverageTicket,
		CreatedAt:         goal.CreatedAt,
		UpdatedAt:         goal.UpdatedAt,
	}
}
