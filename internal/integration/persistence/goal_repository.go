package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/httpsniic/sistema-cmc-server/internal/application/adapter"
	"github.com/httpsniic/sistema-cmc-server/internal/domain/entity"
	domainerror "github.com/httpsniic/sistema-cmc-server/internal/domain/error"
	"github.com/httpsniic/sistema-cmc-server/internal/integration/persistence/model"
)

type goalRepository struct {
	db *gorm.DB
}

// NewGoalRepository creates a new goal repository instance.
func NewGoalRepository(db *gorm.DB) adapter.GoalRepository {
	return &goalRepository{
		db: db,
	}
}

func (r *goalRepository) List(ctx context.Context, storeID string) ([]*entity.Goal, error) {
	var models []model.GoalModel
	result := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("id ASC").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	goals := make([]*entity.Goal, len(models))
	for i := range models {
		goals[i] = models[i].ToEntity()
	}
	return goals, nil
}

// FindForPeriod returns the newest goal labelled with the period key.
func (r *goalRepository) FindForPeriod(ctx context.Context, storeID string, period entity.Period) (*entity.Goal, error) {
	var goalModel model.GoalModel
	result := r.db.WithContext(ctx).
		Where("store_id = ? AND period = ?", storeID, period.Key()).
		Order("id DESC").
		First(&goalModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrGoalNotFound
		}
		return nil, result.Error
	}
	return goalModel.ToEntity(), nil
}

func (r *goalRepository) Create(ctx context.Context, goal *entity.Goal) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		id, err := nextStoreID(tx, &model.GoalModel{}, goal.StoreID)
		if err != nil {
			return err
		}
		goal.ID = id
		return tx.Create(model.GoalFromEntity(goal)).Error
	})
}

func (r *goalRepository) Delete(ctx context.Context, storeID string, id uint) error {
	result := r.db.WithContext(ctx).
		Where("store_id = ? AND id = ?", storeID, id).
		Delete(&model.GoalModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrGoalNotFound
	}
	return nil
}
