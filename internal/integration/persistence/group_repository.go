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

// groupRepository implements the adapter.GroupRepository interface.
type groupRepository struct {
	db *gorm.DB
}

// NewGroupRepository creates a new group repository instance.
func NewGroupRepository(db *gorm.DB) adapter.GroupRepository {
	return &groupRepository{
		db: db,
	}
}

// List returns the store's groups ordered by ID.
func (r *groupRepository) List(ctx context.Context, storeID string) ([]*entity.Group, error) {
	var models []model.GroupModel
	result := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("id ASC").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	groups := make([]*entity.Group, len(models))
	for i := range models {
		groups[i] = models[i].ToEntity()
	}
	return groups, nil
}

// FindByID retrieves one group of the store.
func (r *groupRepository) FindByID(ctx context.Context, storeID string, id uint) (*entity.Group, error) {
	var groupModel model.GroupModel
	result := r.db.WithContext(ctx).
		Where("store_id = ? AND id = ?", storeID, id).
		First(&groupModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrGroupNotFound
		}
		return nil, result.Error
	}
	return groupModel.ToEntity(), nil
}

// Create assigns the next per-store ID and inserts the group.
func (r *groupRepository) Create(ctx context.Context, group *entity.Group) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		id, err := nextStoreID(tx, &model.GroupModel{}, group.StoreID)
		if err != nil {
			return err
		}
		group.ID = id
		return tx.Create(model.GroupFromEntity(group)).Error
	})
}

// Delete removes a group of the store.
func (r *groupRepository) Delete(ctx context.Context, storeID string, id uint) error {
	result := r.db.WithContext(ctx).
		Where("store_id = ? AND id = ?", storeID, id).
		Delete(&model.GroupModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrGroupNotFound
	}
	return nil
}

// ReplaceAll swaps the store's group list. Groups without an ID get one
// after the highest ID of the new list.
func (r *groupRepository) ReplaceAll(ctx context.Context, storeID string, groups []*entity.Group) error {
	var maxID uint
	for _, g := range groups {
		if g.ID > maxID {
			maxID = g.ID
		}
	}

	models := make([]*model.GroupModel, 0, len(groups))
	for _, g := range groups {
		g.StoreID = storeID
		if g.ID == 0 {
			maxID++
			g.ID = maxID
		}
		models = append(models, model.GroupFromEntity(g))
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("store_id = ?", storeID).Delete(&model.GroupModel{}).Error; err != nil {
			return err
		}
		if len(models) == 0 {
			return nil
		}
		return tx.Create(&models).Error
	})
}
