package metrics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/httpsniic/sistema-cmc-server/internal/domain/entity"
)

// RunningTotal is the cumulative state of a month up to and including one day.
type RunningTotal struct {
	Date                time.Time
	WeekdayLabel        string
	Revenue             decimal.Decimal
	PurchaseAmount      decimal.Decimal
	GroupTag            string
	SupplierTag         string
	CumulativeRevenue   decimal.Decimal
	CumulativePurchases decimal.Decimal
	// DailyCostRatio is nil on days without revenue.
	DailyCostRatio      *decimal.Decimal
	CumulativeCostRatio decimal.Decimal
}

// ComputeRunningTotals returns one entry per record, in input order.
// Records must already be sorted ascending by date; see RecordsSorted.
func ComputeRunningTotals(records []*entity.DailyRecord) []RunningTotal {
	out := make([]RunningTotal, 0, len(records))
	revenue := decimal.Zero
	purchases := decimal.Zero

	for _, r := range records {
		revenue = revenue.Add(r.Revenue)
		purchases = purchases.Add(r.PurchaseAmount)

		var daily *decimal.Decimal
		if r.Revenue.IsPositive() {
			ratio := CostRatio(r.PurchaseAmount, r.Revenue)
			daily = &ratio
		}

		out = append(out, RunningTotal{
			Date:                r.Date,
			WeekdayLabel:        r.WeekdayLabel,
			Revenue:             r.Revenue,
			PurchaseAmount:      r.PurchaseAmount,
			GroupTag:            r.GroupTag,
			SupplierTag:         r.SupplierTag,
			CumulativeRevenue:   revenue,
			CumulativePurchases: purchases,
			DailyCostRatio:      daily,
			CumulativeCostRatio: CostRatio(purchases, revenue),
		})
	}

	return out
}

// RecordsSorted reports whether records are in ascending date order.
func RecordsSorted(records []*entity.DailyRecord) bool {
	for i := 1; i < len(records); i++ {
		if records[i].Date.Before(records[i-1].Date) {
			return false
		}
	}
	return true
}
