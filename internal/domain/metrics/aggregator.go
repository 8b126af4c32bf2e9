// Package metrics computes CMC (cost of goods over revenue) indicators from
// daily records. Every function here is pure: inputs are never mutated and
// equal inputs always produce equal outputs.
package metrics

import (
	"github.com/shopspring/decimal"

	"github.com/httpsniic/sistema-cmc-server/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// PeriodMetrics are the headline KPIs of one month.
type PeriodMetrics struct {
	TotalRevenue        decimal.Decimal
	TotalPurchases      decimal.Decimal
	CurrentCostRatio    decimal.Decimal
	DaysWithActivity    int
	DaysRemaining       int
	ProjectedRevenue    decimal.Decimal
	AverageDailyRevenue decimal.Decimal
}

// GroupMetric is the purchase activity attributed to one group.
type GroupMetric struct {
	GroupID        uint
	Name           string
	Color          string
	Icon           string
	TotalPurchases decimal.Decimal
	TotalRevenue   decimal.Decimal
	CostRatio      decimal.Decimal
	TargetPercent  decimal.Decimal
}

// HasActivity reports whether any purchase or revenue matched the group.
func (m GroupMetric) HasActivity() bool {
	return m.TotalPurchases.IsPositive() || m.TotalRevenue.IsPositive()
}

// WithinTarget reports whether the group's ratio is at or below its target.
func (m GroupMetric) WithinTarget() bool {
	return WithinTarget(m.CostRatio, m.TargetPercent)
}

// SupplierMetric is the purchase activity attributed to one supplier.
type SupplierMetric struct {
	SupplierID     uint
	Name           string
	TotalPurchases decimal.Decimal
	TotalRevenue   decimal.Decimal
	CostRatio      decimal.Decimal
}

// CostRatio returns purchases / revenue * 100, or zero without revenue.
func CostRatio(purchases, revenue decimal.Decimal) decimal.Decimal {
	if !revenue.IsPositive() {
		return decimal.Zero
	}
	return purchases.Mul(hundred).Div(revenue)
}

// ComputePeriodMetrics aggregates a month of records. daysRemaining is not
// clamped and goes negative when activity exceeds daysInMonth.
func ComputePeriodMetrics(records []*entity.DailyRecord, daysInMonth int) PeriodMetrics {
	revenue := decimal.Zero
	purchases := decimal.Zero
	active := 0

	for _, r := range records {
		revenue = revenue.Add(r.Revenue)
		purchases = purchases.Add(r.PurchaseAmount)
		if r.Revenue.IsPositive() {
			active++
		}
	}

	remaining := daysInMonth - active

	average := decimal.Zero
	if active > 0 {
		average = revenue.Div(decimal.NewFromInt(int64(active)))
	}

	return PeriodMetrics{
		TotalRevenue:        revenue,
		TotalPurchases:      purchases,
		CurrentCostRatio:    CostRatio(purchases, revenue),
		DaysWithActivity:    active,
		DaysRemaining:       remaining,
		ProjectedRevenue:    revenue.Add(average.Mul(decimal.NewFromInt(int64(remaining)))),
		AverageDailyRevenue: average,
	}
}

// ComputeGroupMetrics returns one metric per group, in input order. Records
// match a group by exact, case-sensitive tag equality; revenue is summed over
// the matching days only.
func ComputeGroupMetrics(records []*entity.DailyRecord, groups []*entity.Group) []GroupMetric {
	out := make([]GroupMetric, 0, len(groups))

	for _, g := range groups {
		purchases, revenue := sumTagged(records, func(r *entity.DailyRecord) bool {
			return r.GroupTag == g.Name
		})

		out = append(out, GroupMetric{
			GroupID:        g.ID,
			Name:           g.Name,
			Color:          g.Color,
			Icon:           g.Icon,
			TotalPurchases: purchases,
			TotalRevenue:   revenue,
			CostRatio:      CostRatio(purchases, revenue),
			TargetPercent:  g.CostTargetPercent,
		})
	}

	return out
}

// ComputeSupplierMetrics mirrors ComputeGroupMetrics keyed on the supplier tag.
func ComputeSupplierMetrics(records []*entity.DailyRecord, suppliers []*entity.Supplier) []SupplierMetric {
	out := make([]SupplierMetric, 0, len(suppliers))

	for _, s := range suppliers {
		purchases, revenue := sumTagged(records, func(r *entity.DailyRecord) bool {
			return r.SupplierTag == s.Name
		})

		out = append(out, SupplierMetric{
			SupplierID:     s.ID,
			Name:           s.Name,
			TotalPurchases: purchases,
			TotalRevenue:   revenue,
			CostRatio:      CostRatio(purchases, revenue),
		})
	}

	return out
}

// ActiveGroups drops groups with neither purchases nor revenue.
func ActiveGroups(groupMetrics []GroupMetric) []GroupMetric {
	out := make([]GroupMetric, 0, len(groupMetrics))
	for _, m := range groupMetrics {
		if m.HasActivity() {
			out = append(out, m)
		}
	}
	return out
}

func sumTagged(records []*entity.DailyRecord, match func(*entity.DailyRecord) bool) (purchases, revenue decimal.Decimal) {
	purchases = decimal.Zero
	revenue = decimal.Zero
	for _, r := range records {
		if match(r) {
			purchases = purchases.Add(r.PurchaseAmount)
			revenue = revenue.Add(r.Revenue)
		}
	}
	return purchases, revenue
}
