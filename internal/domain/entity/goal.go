// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Goal is a revenue and CMC target for a store.
// Period is a free-text label; when it equals a period key ("3-2025")
// the goal's CMC target applies to that period's dashboard.
type Goal struct {
	ID                uint
	StoreID           string
	Period            string
	RevenueTarget     decimal.Decimal
	CostTargetPercent decimal.Decimal
	AverageTicket     decimal.Decimal
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// NewGoal creates a new Goal entity. A nil CMC target defaults to 30%,
// a nil average ticket to zero.
func NewGoal(storeID, period string, revenueTarget decimal.Decimal, costTargetPercent, averageTicket *decimal.Decimal) *Goal {
	now := time.Now().UTC()

	target := DefaultCostTargetPercent
	if costTargetPercent != nil {
		target = *costTargetPercent
	}
	ticket := decimal.Zero
	if averageTicket != nil {
		ticket = *averageTicket
	}

	return &Goal{
		StoreID:           storeID,
		Period:            period,
		RevenueTarget:     revenueTarget,
		CostTargetPercent: target,
		AverageTicket:     ticket,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// AppliesTo reports whether the goal targets the given period.
func (g *Goal) AppliesTo(period Period) bool {
	return g.Period == period.Key()
}
