package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/httpsniic/sistema-cmc-server/internal/domain/entity"
	domainerror "github.com/httpsniic/sistema-cmc-server/internal/domain/error"
	"github.com/httpsniic/sistema-cmc-server/internal/domain/metrics"
)

type stubRecords struct {
	mu      sync.Mutex
	records []*entity.DailyRecord
	loads   int
	err     error
}

func (s *stubRecords) Load(context.Context, string, entity.Period) ([]*entity.DailyRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loads++
	return s.records, s.err
}

func (s *stubRecords) SaveAll(context.Context, string, entity.Period, []*entity.DailyRecord) error {
	return nil
}

func (s *stubRecords) CountByGroupTag(context.Context, string, string) (int64, error) {
	return 0, nil
}

type stubGroups struct {
	groups []*entity.Group
}

func (s stubGroups) List(context.Context, string) ([]*entity.Group, error) { return s.groups, nil }
func (s stubGroups) FindByID(context.Context, string, uint) (*entity.Group, error) {
	return nil, domainerror.ErrGroupNotFound
}
func (s stubGroups) Create(context.Context, *entity.Group) error { return nil }
func (s stubGroups) Delete(context.Context, string, uint) error { return nil }
func (s stubGroups) ReplaceAll(context.Context, string, []*entity.Group) error { return nil }

type stubGoals struct {
	goal *entity.Goal
}

func (s stubGoals) List(context.Context, string) ([]*entity.Goal, error) { return nil, nil }
func (s stubGoals) FindForPeriod(_ context.Context, _ string, period entity.Period) (*entity.Goal, error) {
	if s.goal != nil && s.goal.AppliesTo(period) {
		return s.goal, nil
	}
	return nil, domainerror.ErrGoalNotFound
}
func (s stubGoals) Create(context.Context, *entity.Goal) error { return nil }
func (s stubGoals) Delete(context.Context, string, uint) error { return nil }

type stubSuppliers struct {
	suppliers []*entity.Supplier
}

func (s stubSuppliers) List(context.Context, string) ([]*entity.Supplier, error) {
	return s.suppliers, nil
}
func (s stubSuppliers) Create(context.Context, *entity.Supplier) error { return nil }
func (s stubSuppliers) Delete(context.Context, string, uint) error { return nil }

// jsonCache round-trips values through JSON like the Redis cache does.
type jsonCache struct {
	entries map[string][]byte
}

func newJSONCache() *jsonCache {
	return &jsonCache{entries: make(map[string][]byte)}
}

func (c *jsonCache) Get(_ context.Context, storeID string, period entity.Period, dest interface{}) (bool, error) {
	raw, ok := c.entries[storeID+":"+period.Key()]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (c *jsonCache) Set(_ context.Context, storeID string, period entity.Period, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[storeID+":"+period.Key()] = raw
	return nil
}

func (c *jsonCache) Invalidate(_ context.Context, storeID string, period entity.Period) error {
	delete(c.entries, storeID+":"+period.Key())
	return nil
}

func (c *jsonCache) InvalidateStore(_ context.Context, storeID string) error {
	for key := range c.entries {
		if strings.HasPrefix(key, storeID+":") {
			delete(c.entries, key)
		}
	}
	return nil
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func day(t *testing.T, date, revenue, purchase, group, supplier string) *entity.DailyRecord {
	t.Helper()
	r, err := entity.NewDailyRecord(entity.DailyRecordInput{
		StoreID:        "paris6",
		Date:           date,
		Revenue:        revenue,
		PurchaseAmount: purchase,
		GroupTag:       group,
		SupplierTag:    supplier,
	})
	if err != nil {
		t.Fatalf("record %s: %v", date, err)
	}
	return r
}

func marchRecords(t *testing.T) []*entity.DailyRecord {
	return []*entity.DailyRecord{
		day(t, "01/03/2025", "1000", "300", "Carnes", "Friboi"),
		day(t, "02/03/2025", "500", "0", "", ""),
	}
}

func carnes() *entity.Group {
	target := dec("30")
	g := entity.NewGroup("paris6", "Carnes", "#ef4444", &target, "🥩")
	g.ID = 1
	return g
}

func TestGetDashboardUseCase_WithGoal(t *testing.T) {
	target := dec("25")
	goal := entity.NewGoal("paris6", "3-2025", dec("40000"), &target, nil)

	uc := NewGetDashboardUseCase(
		&stubRecords{records: marchRecords(t)},
		stubGroups{groups: []*entity.Group{carnes()}},
		stubGoals{goal: goal},
		newJSONCache(),
		dec("30"),
	)

	out, err := uc.Execute(context.Background(), GetDashboardInput{StoreID: "paris6", Period: "3-2025"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !out.Metrics.CurrentCostRatio.Equal(dec("20")) {
		t.Errorf("ratio = %s, want 20", out.Metrics.CurrentCostRatio)
	}
	if out.DaysInMonth != 31 || out.DaysRemainingDisplay != 29 {
		t.Errorf("days = %d/%d, want 31/29", out.DaysInMonth, out.DaysRemainingDisplay)
	}
	if out.TargetSource != TargetSourceGoal || !out.TargetPercent.Equal(target) {
		t.Errorf("target = %s from %s", out.TargetPercent, out.TargetSource)
	}
	if out.Target.Status != metrics.TargetWithin || !out.Target.Diff.Equal(dec("-5")) {
		t.Errorf("target status = %+v", out.Target)
	}
	if out.RevenueProgress == nil || !out.RevenueProgress.Equal(dec("3.75")) {
		t.Errorf("revenue progress = %v, want 3.75", out.RevenueProgress)
	}
	if len(out.Groups) != 1 || !out.Groups[0].CostRatio.Equal(dec("30")) || !out.Groups[0].WithinTarget() {
		t.Errorf("groups = %+v", out.Groups)
	}
	if len(out.RunningTotals) != 2 || !out.RunningTotals[1].CumulativeRevenue.Equal(out.Metrics.TotalRevenue) {
		t.Errorf("running totals = %+v", out.RunningTotals)
	}
	if len(out.RecentPurchases) != 1 || !out.RecentPurchases[0].Impact.Equal(dec("20")) {
		t.Errorf("recent purchases = %+v", out.RecentPurchases)
	}
}

func TestGetDashboardUseCase_DefaultTarget(t *testing.T) {
	uc := NewGetDashboardUseCase(
		&stubRecords{records: []*entity.DailyRecord{day(t, "01/03/2025", "1000", "400", "", "")}},
		stubGroups{},
		stubGoals{},
		newJSONCache(),
		dec("30"),
	)

	out, err := uc.Execute(context.Background(), GetDashboardInput{StoreID: "paris6", Period: "3-2025"})
	if err != nil {
		t.Fatal(err)
	}
	if out.TargetSource != TargetSourceDefault || out.Target.Status != metrics.TargetAbove {
		t.Errorf("target = %+v from %s", out.Target, out.TargetSource)
	}
	if out.RevenueTarget != nil || out.RevenueProgress != nil {
		t.Error("revenue target must be absent without a goal")
	}
}

func TestGetDashboardUseCase_UsesCache(t *testing.T) {
	records := &stubRecords{records: marchRecords(t)}
	cache := newJSONCache()
	uc := NewGetDashboardUseCase(records, stubGroups{groups: []*entity.Group{carnes()}}, stubGoals{}, cache, dec("30"))
	ctx := context.Background()
	input := GetDashboardInput{StoreID: "paris6", Period: "3-2025"}

	first, err := uc.Execute(ctx, input)
	if err != nil {
		t.Fatal(err)
	}
	second, err := uc.Execute(ctx, input)
	if err != nil {
		t.Fatal(err)
	}

	if records.loads != 1 {
		t.Errorf("records loaded %d times, want 1", records.loads)
	}
	if first.Cached || !second.Cached {
		t.Errorf("cached flags = %v/%v", first.Cached, second.Cached)
	}
	if !second.Metrics.TotalRevenue.Equal(first.Metrics.TotalRevenue) || len(second.RunningTotals) != 2 {
		t.Errorf("cached dashboard differs: %+v", second.Metrics)
	}
	if second.RunningTotals[1].DailyCostRatio == nil || !second.RunningTotals[1].DailyCostRatio.IsZero() {
		t.Errorf("daily ratio lost in cache: %v", second.RunningTotals[1].DailyCostRatio)
	}

	_ = cache.Invalidate(ctx, "paris6", entity.Period{Month: 3, Year: 2025})
	if _, err := uc.Execute(ctx, input); err != nil {
		t.Fatal(err)
	}
	if records.loads != 2 {
		t.Errorf("records loaded %d times after invalidation, want 2", records.loads)
	}
}

func TestGetDashboardUseCase_ClampsDaysRemaining(t *testing.T) {
	// A corrupted period holding more active days than the month has.
	var records []*entity.DailyRecord
	start := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 30; i++ {
		records = append(records, day(t, start.AddDate(0, 0, i).Format(entity.RecordDateLayout), "100", "10", "", ""))
	}

	uc := NewGetDashboardUseCase(&stubRecords{records: records}, stubGroups{}, stubGoals{}, newJSONCache(), dec("30"))

	out, err := uc.Execute(context.Background(), GetDashboardInput{StoreID: "paris6", Period: "2-2025"})
	if err != nil {
		t.Fatal(err)
	}
	if out.Metrics.DaysRemaining != -2 || out.DaysRemainingDisplay != 0 {
		t.Errorf("remaining = %d, display = %d", out.Metrics.DaysRemaining, out.DaysRemainingDisplay)
	}
}

func TestGetDashboardUseCase_RecentPurchases(t *testing.T) {
	var records []*entity.DailyRecord
	for d := 1; d <= 14; d++ {
		date := time.Date(2025, time.March, d, 0, 0, 0, 0, time.UTC).Format(entity.RecordDateLayout)
		purchase := "10"
		if d == 14 {
			purchase = "0"
		}
		records = append(records, day(t, date, "100", purchase, "", ""))
	}

	uc := NewGetDashboardUseCase(&stubRecords{records: records}, stubGroups{}, stubGoals{}, newJSONCache(), dec("30"))
	out, err := uc.Execute(context.Background(), GetDashboardInput{StoreID: "paris6", Period: "3-2025"})
	if err != nil {
		t.Fatal(err)
	}

	if len(out.RecentPurchases) != recentPurchaseLimit {
		t.Fatalf("recent purchases = %d, want %d", len(out.RecentPurchases), recentPurchaseLimit)
	}
	if out.RecentPurchases[0].Date.Day() != 13 || out.RecentPurchases[9].Date.Day() != 4 {
		t.Errorf("order = %v..%v", out.RecentPurchases[0].Date, out.RecentPurchases[9].Date)
	}
	// 10 / 1400 * 100
	if got := out.RecentPurchases[0].Impact.Round(4); !got.Equal(dec("0.7143")) {
		t.Errorf("impact = %s", got)
	}
}

func TestGetDashboardUseCase_Errors(t *testing.T) {
	loadErr := errors.New("connection refused")

	tests := []struct {
		name    string
		period  string
		repoErr error
		want    error
	}{
		{name: "missing period", period: "", want: domainerror.ErrMissingPeriod},
		{name: "bad period", period: "2025-03", want: domainerror.ErrInvalidPeriod},
		{name: "month 13", period: "13-2025", want: domainerror.ErrInvalidPeriod},
		{name: "repository failure", period: "3-2025", repoErr: loadErr, want: loadErr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewGetDashboardUseCase(&stubRecords{err: tt.repoErr}, stubGroups{}, stubGoals{}, newJSONCache(), dec("30"))
			_, err := uc.Execute(context.Background(), GetDashboardInput{StoreID: "paris6", Period: tt.period})
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestGetGroupAnalysisUseCase(t *testing.T) {
	bebidas := entity.NewGroup("paris6", "Bebidas", "", nil, "")
	bebidas.ID = 2
	records := append(marchRecords(t), day(t, "03/03/2025", "0", "50", "Antigo", ""))

	uc := NewGetGroupAnalysisUseCase(&stubRecords{records: records}, stubGroups{groups: []*entity.Group{carnes(), bebidas}})

	t.Run("drops empty groups", func(t *testing.T) {
		out, err := uc.Execute(context.Background(), GetGroupAnalysisInput{StoreID: "paris6", Period: "3-2025"})
		if err != nil {
			t.Fatal(err)
		}
		if len(out.Groups) != 1 || out.Groups[0].Name != "Carnes" {
			t.Errorf("groups = %+v", out.Groups)
		}
		if !out.TotalPurchases.Equal(dec("350")) || !out.UntaggedPurchases.Equal(dec("50")) {
			t.Errorf("totals = %s, untagged = %s", out.TotalPurchases, out.UntaggedPurchases)
		}
	})

	t.Run("include empty", func(t *testing.T) {
		out, err := uc.Execute(context.Background(), GetGroupAnalysisInput{StoreID: "paris6", Period: "3-2025", IncludeEmpty: true})
		if err != nil {
			t.Fatal(err)
		}
		if len(out.Groups) != 2 || out.Groups[1].Name != "Bebidas" || !out.Groups[1].TotalPurchases.IsZero() {
			t.Errorf("groups = %+v", out.Groups)
		}
	})
}

func TestGetSupplierAnalysisUseCase(t *testing.T) {
	friboi := entity.NewSupplier("paris6", "Friboi", "", "", nil)
	ambev := entity.NewSupplier("paris6", "Ambev", "", "", nil)

	uc := NewGetSupplierAnalysisUseCase(&stubRecords{records: marchRecords(t)}, stubSuppliers{suppliers: []*entity.Supplier{friboi, ambev}})

	out, err := uc.Execute(context.Background(), GetSupplierAnalysisInput{StoreID: "paris6", Period: "3-2025"})
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Suppliers) != 1 || out.Suppliers[0].Name != "Friboi" || !out.Suppliers[0].CostRatio.Equal(dec("30")) {
		t.Errorf("suppliers = %+v", out.Suppliers)
	}

	out, err = uc.Execute(context.Background(), GetSupplierAnalysisInput{StoreID: "paris6", Period: "3-2025", IncludeEmpty: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Suppliers) != 2 {
		t.Errorf("suppliers = %d, want 2", len(out.Suppliers))
	}
}
