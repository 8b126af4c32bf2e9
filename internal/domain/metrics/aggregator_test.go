package metrics

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/httpsniic/sistema-cmc-server/internal/domain/entity"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func record(day int, revenue, purchase, groupTag string) *entity.DailyRecord {
	date := time.Date(2025, time.March, day, 0, 0, 0, 0, time.UTC)
	return &entity.DailyRecord{
		StoreID:        "paris6",
		Date:           date,
		WeekdayLabel:   entity.WeekdayLabel(date),
		Revenue:        dec(revenue),
		PurchaseAmount: dec(purchase),
		GroupTag:       groupTag,
	}
}

func TestComputePeriodMetrics(t *testing.T) {
	tests := []struct {
		name          string
		records       []*entity.DailyRecord
		days          int
		wantRevenue   string
		wantPurchases string
		wantRatio     string
		wantActive    int
		wantRemaining int
		wantAverage   string
		wantProjected string
	}{
		{
			name:          "empty period",
			records:       nil,
			days:          31,
			wantRevenue:   "0",
			wantPurchases: "0",
			wantRatio:     "0",
			wantActive:    0,
			wantRemaining: 31,
			wantAverage:   "0",
			wantProjected: "0",
		},
		{
			name: "one active day out of two",
			records: []*entity.DailyRecord{
				record(1, "1000", "300", ""),
				record(2, "0", "0", ""),
			},
			days:          2,
			wantRevenue:   "1000",
			wantPurchases: "300",
			wantRatio:     "30",
			wantActive:    1,
			wantRemaining: 1,
			wantAverage:   "1000",
			wantProjected: "2000",
		},
		{
			name: "purchases without revenue",
			records: []*entity.DailyRecord{
				record(3, "0", "250", "Carnes"),
			},
			days:          31,
			wantRevenue:   "0",
			wantPurchases: "250",
			wantRatio:     "0",
			wantActive:    0,
			wantRemaining: 31,
			wantAverage:   "0",
			wantProjected: "0",
		},
		{
			name: "activity beyond days in month",
			records: []*entity.DailyRecord{
				record(1, "100", "10", ""),
				record(2, "100", "10", ""),
				record(3, "100", "10", ""),
			},
			days:          2,
			wantRevenue:   "300",
			wantPurchases: "30",
			wantRatio:     "10",
			wantActive:    3,
			wantRemaining: -1,
			wantAverage:   "100",
			wantProjected: "200",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputePeriodMetrics(tt.records, tt.days)

			if !got.TotalRevenue.Equal(dec(tt.wantRevenue)) {
				t.Errorf("TotalRevenue = %s, want %s", got.TotalRevenue, tt.wantRevenue)
			}
			if !got.TotalPurchases.Equal(dec(tt.wantPurchases)) {
				t.Errorf("TotalPurchases = %s, want %s", got.TotalPurchases, tt.wantPurchases)
			}
			if !got.CurrentCostRatio.Equal(dec(tt.wantRatio)) {
				t.Errorf("CurrentCostRatio = %s, want %s", got.CurrentCostRatio, tt.wantRatio)
			}
			if got.DaysWithActivity != tt.wantActive {
				t.Errorf("DaysWithActivity = %d, want %d", got.DaysWithActivity, tt.wantActive)
			}
			if got.DaysRemaining != tt.wantRemaining {
				t.Errorf("DaysRemaining = %d, want %d", got.DaysRemaining, tt.wantRemaining)
			}
			if !got.AverageDailyRevenue.Equal(dec(tt.wantAverage)) {
				t.Errorf("AverageDailyRevenue = %s, want %s", got.AverageDailyRevenue, tt.wantAverage)
			}
			if !got.ProjectedRevenue.Equal(dec(tt.wantProjected)) {
				t.Errorf("ProjectedRevenue = %s, want %s", got.ProjectedRevenue, tt.wantProjected)
			}
		})
	}
}

func TestComputePeriodMetrics_DoesNotMutateInput(t *testing.T) {
	records := []*entity.DailyRecord{
		record(1, "1000", "300", "Bebidas"),
		record(2, "500", "50", ""),
	}

	first := ComputePeriodMetrics(records, 31)
	second := ComputePeriodMetrics(records, 31)

	if !first.TotalRevenue.Equal(second.TotalRevenue) || !first.ProjectedRevenue.Equal(second.ProjectedRevenue) {
		t.Errorf("repeated calls differ: %+v vs %+v", first, second)
	}
	if !records[0].Revenue.Equal(dec("1000")) || records[0].GroupTag != "Bebidas" {
		t.Errorf("input record was modified: %+v", records[0])
	}
}

func TestComputeGroupMetrics(t *testing.T) {
	groups := []*entity.Group{
		{ID: 1, Name: "Carnes", Color: "#ef4444", Icon: "🥩", CostTargetPercent: dec("30")},
		{ID: 2, Name: "Bebidas", Color: "#3b82f6", Icon: "🥤", CostTargetPercent: dec("25")},
		{ID: 3, Name: "Limpeza", Color: "#10b981", Icon: "🧽", CostTargetPercent: dec("5")},
	}
	records := []*entity.DailyRecord{
		record(1, "1000", "300", "Carnes"),
		record(2, "2000", "100", "Bebidas"),
		record(3, "500", "0", "carnes"),
		record(4, "800", "200", ""),
	}

	got := ComputeGroupMetrics(records, groups)

	if len(got) != len(groups) {
		t.Fatalf("len = %d, want %d", len(got), len(groups))
	}

	tests := []struct {
		name          string
		wantPurchases string
		wantRevenue   string
		wantRatio     string
		wantTarget    string
		wantWithin    bool
	}{
		{"Carnes", "300", "1000", "30", "30", true},
		{"Bebidas", "100", "2000", "5", "25", true},
		{"Limpeza", "0", "0", "0", "5", true},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := got[i]
			if m.Name != tt.name {
				t.Fatalf("order broken: got %q at %d, want %q", m.Name, i, tt.name)
			}
			if !m.TotalPurchases.Equal(dec(tt.wantPurchases)) {
				t.Errorf("TotalPurchases = %s, want %s", m.TotalPurchases, tt.wantPurchases)
			}
			if !m.TotalRevenue.Equal(dec(tt.wantRevenue)) {
				t.Errorf("TotalRevenue = %s, want %s", m.TotalRevenue, tt.wantRevenue)
			}
			if !m.CostRatio.Equal(dec(tt.wantRatio)) {
				t.Errorf("CostRatio = %s, want %s", m.CostRatio, tt.wantRatio)
			}
			if !m.TargetPercent.Equal(dec(tt.wantTarget)) {
				t.Errorf("TargetPercent = %s, want %s", m.TargetPercent, tt.wantTarget)
			}
			if m.WithinTarget() != tt.wantWithin {
				t.Errorf("WithinTarget() = %v, want %v", m.WithinTarget(), tt.wantWithin)
			}
		})
	}
}

func TestComputeGroupMetrics_NoGroups(t *testing.T) {
	got := ComputeGroupMetrics([]*entity.DailyRecord{record(1, "100", "10", "Carnes")}, nil)
	if len(got) != 0 {
		t.Errorf("expected no metrics, got %d", len(got))
	}
}

func TestComputeGroupMetrics_AboveTarget(t *testing.T) {
	groups := []*entity.Group{{ID: 1, Name: "Carnes", CostTargetPercent: dec("30")}}
	records := []*entity.DailyRecord{record(1, "1000", "301", "Carnes")}

	got := ComputeGroupMetrics(records, groups)

	if got[0].WithinTarget() {
		t.Errorf("expected ratio %s to be above target", got[0].CostRatio)
	}
}

func TestActiveGroups(t *testing.T) {
	in := []GroupMetric{
		{Name: "a", TotalPurchases: dec("10"), TotalRevenue: decimal.Zero},
		{Name: "b", TotalPurchases: decimal.Zero, TotalRevenue: decimal.Zero},
		{Name: "c", TotalPurchases: decimal.Zero, TotalRevenue: dec("5")},
	}

	got := ActiveGroups(in)

	if len(got) != 2 || got[0].Name != "a" || got[1].Name != "c" {
		t.Errorf("ActiveGroups() = %+v", got)
	}
}

func TestComputeSupplierMetrics(t *testing.T) {
	suppliers := []*entity.Supplier{
		{ID: 1, Name: "Atacadão"},
		{ID: 2, Name: "Ceasa"},
	}
	r1 := record(1, "1000", "120", "")
	r1.SupplierTag = "Atacadão"
	r2 := record(2, "600", "60", "")
	r2.SupplierTag = "Atacadão"
	r3 := record(3, "400", "0", "")

	got := ComputeSupplierMetrics([]*entity.DailyRecord{r1, r2, r3}, suppliers)

	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if !got[0].TotalPurchases.Equal(dec("180")) || !got[0].TotalRevenue.Equal(dec("1600")) {
		t.Errorf("Atacadão totals = %s / %s", got[0].TotalPurchases, got[0].TotalRevenue)
	}
	if !got[0].CostRatio.Equal(dec("11.25")) {
		t.Errorf("Atacadão ratio = %s, want 11.25", got[0].CostRatio)
	}
	if !got[1].TotalPurchases.IsZero() || !got[1].CostRatio.IsZero() {
		t.Errorf("Ceasa should be empty, got %+v", got[1])
	}
}

func TestCostRatio(t *testing.T) {
	tests := []struct {
		name      string
		purchases string
		revenue   string
		want      string
	}{
		{"regular", "300", "1000", "30"},
		{"zero revenue", "300", "0", "0"},
		{"negative revenue treated as none", "300", "-1", "0"},
		{"above one hundred", "1500", "1000", "150"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CostRatio(dec(tt.purchases), dec(tt.revenue))
			if !got.Equal(dec(tt.want)) {
				t.Errorf("CostRatio() = %s, want %s", got, tt.want)
			}
		})
	}
}
