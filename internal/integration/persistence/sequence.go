package persistence

import "gorm.io/gorm"

// nextStoreID returns max(id)+1 over the store's rows of the model's table.
// Call it inside the transaction that inserts the row.
func nextStoreID(tx *gorm.DB, m interface{}, storeID string) (uint, error) {
	var maxID uint
	row := tx.Model(m).
		Select("COALESCE(MAX(id), 0)").
		Where("store_id = ?", storeID).
		Row()
	if err := row.Scan(&maxID); err != nil {
		return 0, err
	}
	return maxID + 1, nil
}
