package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/httpsniic/sistema-cmc-server/internal/domain/entity"
)

// DailyRecordModel represents the daily_records table. A record is keyed by
// store and day; PeriodKey groups the rows of one month for load and replace.
type DailyRecordModel struct {
	StoreID        string          `gorm:"type:varchar(50);primaryKey;index:idx_daily_records_store_period,priority:1"`
	Date           time.Time       `gorm:"type:date;primaryKey"`
	PeriodKey      string          `gorm:"type:varchar(10);not null;index:idx_daily_records_store_period,priority:2"`
	WeekdayLabel   string          `gorm:"type:varchar(3);not null"`
	Revenue        decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	PurchaseAmount decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	GroupTag       string          `gorm:"type:varchar(100);index"`
	SupplierTag    string          `gorm:"type:varchar(100)"`
	CreatedAt      time.Time       `gorm:"not null"`
	UpdatedAt      time.Time       `gorm:"not null"`
}

// TableName returns the table name for the DailyRecordModel.
func (DailyRecordModel) TableName() string {
	return "daily_records"
}

// ToEntity converts a DailyRecordModel to a domain DailyRecord entity.
func (m *DailyRecordModel) ToEntity() *entity.DailyRecord {
	date := time.Date(m.Date.Year(), m.Date.Month(), m.Date.Day(), 0, 0, 0, 0, time.UTC)
	return &entity.DailyRecord{
		StoreID:        m.StoreID,
		Date:           date,
		WeekdayLabel:   m.WeekdayLabel,
		Revenue:        m.Revenue,
		PurchaseAmount: m.PurchaseAmount,
		GroupTag:       m.GroupTag,
		SupplierTag:    m.SupplierTag,
	}
}

// DailyRecordFromEntity creates a DailyRecordModel from a domain DailyRecord.
func DailyRecordFromEntity(record *entity.DailyRecord) *DailyRecordModel {
	now := time.Now().UTC()
	return &DailyRecordModel{
		StoreID:        record.StoreID,
		Date:           record.Date,
		PeriodKey:      record.Period().Key(),
		WeekdayLabel:   record.WeekdayLabel,
		Revenue:        record.Revenue,
		PurchaseAmount: record.PurchaseAmount,
		GroupTag:       record.GroupTag,
		SupplierTag:    record.SupplierTag,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}
