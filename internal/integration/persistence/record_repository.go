package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/httpsniic/sistema-cmc-server/internal/application/adapter"
	"github.com/httpsniic/sistema-cmc-server/internal/domain/entity"
	domainerror "github.com/httpsniic/sistema-cmc-server/internal/domain/error"
	"github.com/httpsniic/sistema-cmc-server/internal/integration/persistence/model"
)

// recordRepository implements the adapter.RecordRepository interface.
type recordRepository struct {
	db *gorm.DB
}

// NewRecordRepository creates a new daily record repository instance.
func NewRecordRepository(db *gorm.DB) adapter.RecordRepository {
	return &recordRepository{
		db: db,
	}
}

// Load returns the records of a store's period in ascending date order.
func (r *recordRepository) Load(ctx context.Context, storeID string, period entity.Period) ([]*entity.DailyRecord, error) {
	var models []model.DailyRecordModel
	result := r.db.WithContext(ctx).
		Where("store_id = ? AND period_key = ?", storeID, period.Key()).
		Order("date ASC").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	records := make([]*entity.DailyRecord, len(models))
	for i := range models {
		records[i] = models[i].ToEntity()
	}
	return records, nil
}

// SaveAll replaces the period's rows inside one transaction.
func (r *recordRepository) SaveAll(ctx context.Context, storeID string, period entity.Period, records []*entity.DailyRecord) error {
	models := make([]*model.DailyRecordModel, 0, len(records))
	for _, rec := range records {
		if !period.Contains(rec.Date) {
			return domainerror.NewRecordError(
				domainerror.ErrCodeInvalidPeriod,
				fmt.Sprintf("record %s does not belong to period %s", rec.DateKey(), period.Key()),
				domainerror.ErrInvalidPeriod,
			)
		}
		m := model.DailyRecordFromEntity(rec)
		m.StoreID = storeID
		models = append(models, m)
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("store_id = ? AND period_key = ?", storeID, period.Key()).
			Delete(&model.DailyRecordModel{}).Error; err != nil {
			return err
		}
		if len(models) == 0 {
			return nil
		}
		return tx.Create(&models).Error
	})
}

// CountByGroupTag counts records of the store tagged with the group name.
func (r *recordRepository) CountByGroupTag(ctx context.Context, storeID, groupTag string) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.DailyRecordModel{}).
		Where("store_id = ? AND group_tag = ?", storeID, groupTag).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}
