package model

import "github.com/httpsniic/sistema-cmc-server/internal/domain/entity"

// StoreModel represents the stores table.
type StoreModel struct {
	ID   string `gorm:"type:varchar(50);primaryKey"`
	Name string `gorm:"type:varchar(100);not null"`
}

// TableName returns the table name for the StoreModel.
func (StoreModel) TableName() string {
	return "stores"
}

// StoreFromEntity creates a StoreModel from a domain Store.
func StoreFromEntity(store entity.Store) *StoreModel {
	return &StoreModel{ID: store.ID, Name: store.Name}
}

// All returns every model that auto-migration manages, in dependency order.
func All() []interface{} {
	return []interface{}{
		&StoreModel{},
		&UserModel{},
		&RefreshTokenModel{},
		&DailyRecordModel{},
		&GroupModel{},
		&SupplierModel{},
		&GoalModel{},
		&EmailQueueModel{},
	}
}
