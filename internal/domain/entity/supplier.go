package entity

import (
	"strings"
	"time"
)

// Supplier is a vendor a store buys from.
type Supplier struct {
	ID         uint
	StoreID    string
	Name       string
	Contact    string
	Email      string
	Categories []string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewSupplier creates a new Supplier entity. The ID is assigned by the repository.
func NewSupplier(storeID, name, contact, email string, categories []string) *Supplier {
	now := time.Now().UTC()
	return &Supplier{
		StoreID:    storeID,
		Name:       name,
		Contact:    contact,
		Email:      email,
		Categories: categories,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// SplitCategories splits a comma separated list, trimming blanks.
func SplitCategories(raw string) []string {
	categories := make([]string, 0)
	for _, c := range strings.Split(raw, ",") {
		if c = strings.TrimSpace(c); c != "" {
			categories = append(categories, c)
		}
	}
	return categories
}
