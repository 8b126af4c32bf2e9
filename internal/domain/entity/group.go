// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Group defaults applied when a field is left blank on creation.
const (
	DefaultGroupColor = "#3b82f6"
	DefaultGroupIcon  = "📦"
)

// DefaultCostTargetPercent is the CMC target used when none is configured.
var DefaultCostTargetPercent = decimal.NewFromInt(30)

// Group is a purchase category of a store with its own CMC target.
// Daily records reference groups by name, not by ID.
type Group struct {
	ID                uint
	StoreID           string
	Name              string
	Color             string
	CostTargetPercent decimal.Decimal
	Icon              string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// NewGroup creates a new Group, filling blank fields with defaults.
// The ID is assigned by the repository.
func NewGroup(storeID, name, color string, costTargetPercent *decimal.Decimal, icon string) *Group {
	now := time.Now().UTC()

	if color == "" {
		color = DefaultGroupColor
	}
	if icon == "" {
		icon = DefaultGroupIcon
	}
	target := DefaultCostTargetPercent
	if costTargetPercent != nil {
		target = *costTargetPercent
	}

	return &Group{
		StoreID:           storeID,
		Name:              name,
		Color:             color,
		CostTargetPercent: target,
		Icon:              icon,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}
