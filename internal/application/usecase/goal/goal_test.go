package goal

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/httpsniic/sistema-cmc-server/internal/domain/entity"
	domainerror "github.com/httpsniic/sistema-cmc-server/internal/domain/error"
)

type memoryGoals struct {
	goals []*entity.Goal
}

func (m *memoryGoals) List(_ context.Context, storeID string) ([]*entity.Goal, error) {
	var out []*entity.Goal
	for _, g := range m.goals {
		if g.StoreID == storeID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (m *memoryGoals) FindForPeriod(_ context.Context, storeID string, period entity.Period) (*entity.Goal, error) {
	for i := len(m.goals) - 1; i >= 0; i-- {
		if g := m.goals[i]; g.StoreID == storeID && g.AppliesTo(period) {
			return g, nil
		}
	}
	return nil, domainerror.ErrGoalNotFound
}

func (m *memoryGoals) Create(_ context.Context, goal *entity.Goal) error {
	goal.ID = uint(len(m.goals) + 1)
	m.goals = append(m.goals, goal)
	return nil
}

func (m *memoryGoals) Delete(_ context.Context, storeID string, id uint) error {
	for i, g := range m.goals {
		if g.StoreID == storeID && g.ID == id {
			m.goals = append(m.goals[:i], m.goals[i+1:]...)
			return nil
		}
	}
	return domainerror.ErrGoalNotFound
}

type storeCache struct {
	stores []string
}

func (c *storeCache) Get(context.Context, string, entity.Period, interface{}) (bool, error) {
	return false, nil
}

func (c *storeCache) Set(context.Context, string, entity.Period, interface{}) error {
	return nil
}

func (c *storeCache) Invalidate(context.Context, string, entity.Period) error {
	return nil
}

func (c *storeCache) InvalidateStore(_ context.Context, storeID string) error {
	c.stores = append(c.stores, storeID)
	return nil
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestCreateGoalUseCase(t *testing.T) {
	tests := []struct {
		name    string
		input   CreateGoalInput
		wantErr error
	}{
		{name: "defaults", input: CreateGoalInput{StoreID: "paris6", Period: "3-2025", RevenueTarget: dec("120000")}},
		{name: "free text label", input: CreateGoalInput{StoreID: "paris6", Period: "Carnaval", RevenueTarget: dec("5000"), CostTargetPercent: dec("28"), AverageTicket: dec("85.5")}},
		{name: "missing period", input: CreateGoalInput{StoreID: "paris6", RevenueTarget: dec("1")}, wantErr: domainerror.ErrGoalPeriodRequired},
		{name: "missing revenue", input: CreateGoalInput{StoreID: "paris6", Period: "3-2025"}, wantErr: domainerror.ErrInvalidRevenueTarget},
		{name: "zero revenue", input: CreateGoalInput{StoreID: "paris6", Period: "3-2025", RevenueTarget: dec("0")}, wantErr: domainerror.ErrInvalidRevenueTarget},
		{name: "target too high", input: CreateGoalInput{StoreID: "paris6", Period: "3-2025", RevenueTarget: dec("1"), CostTargetPercent: dec("101")}, wantErr: domainerror.ErrInvalidGoalCostTarget},
		{name: "negative ticket", input: CreateGoalInput{StoreID: "paris6", Period: "3-2025", RevenueTarget: dec("1"), AverageTicket: dec("-1")}, wantErr: domainerror.ErrInvalidAverageTicket},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewCreateGoalUseCase(&memoryGoals{}, &storeCache{}).Execute(context.Background(), tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.ID == 0 {
				t.Error("ID was not assigned")
			}
		})
	}
}

func TestCreateGoalUseCase_Defaults(t *testing.T) {
	got, err := NewCreateGoalUseCase(&memoryGoals{}, &storeCache{}).Execute(context.Background(), CreateGoalInput{
		StoreID:       "paris6",
		Period:        " 3-2025 ",
		RevenueTarget: dec("1000"),
	})
	if err != nil {
		t.Fatal(err)
	}
	if got.Period != "3-2025" || !got.CostTargetPercent.Equal(decimal.NewFromInt(30)) || !got.AverageTicket.IsZero() {
		t.Errorf("unexpected goal %+v", got)
	}
	if !got.AppliesTo(entity.Period{Month: 3, Year: 2025}) {
		t.Error("goal should apply to 3-2025")
	}
}

func TestDeleteGoalUseCase(t *testing.T) {
	repo := &memoryGoals{}
	ctx := context.Background()
	created, err := NewCreateGoalUseCase(repo, &storeCache{}).Execute(ctx, CreateGoalInput{StoreID: "paris6", Period: "3-2025", RevenueTarget: dec("1")})
	if err != nil {
		t.Fatal(err)
	}

	uc := NewDeleteGoalUseCase(repo, &storeCache{})
	if err := uc.Execute(ctx, "paris6", created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := uc.Execute(ctx, "paris6", created.ID); !errors.Is(err, domainerror.ErrGoalNotFound) {
		t.Errorf("second delete err = %v", err)
	}

	goals, _ := NewListGoalsUseCase(repo).Execute(ctx, "paris6")
	if len(goals) != 0 {
		t.Errorf("goals left: %d", len(goals))
	}
}

func TestGoalWrites_InvalidateStoreCache(t *testing.T) {
	repo := &memoryGoals{}
	cache := &storeCache{}
	ctx := context.Background()

	_, err := NewCreateGoalUseCase(repo, cache).Execute(ctx, CreateGoalInput{StoreID: "xian", Period: "3-2025"})
	if !errors.Is(err, domainerror.ErrInvalidRevenueTarget) {
		t.Fatalf("err = %v", err)
	}
	if len(cache.stores) != 0 {
		t.Fatalf("rejected goal invalidated %v", cache.stores)
	}

	created, err := NewCreateGoalUseCase(repo, cache).Execute(ctx, CreateGoalInput{StoreID: "xian", Period: "3-2025", RevenueTarget: dec("80000")})
	if err != nil {
		t.Fatal(err)
	}
	if err := NewDeleteGoalUseCase(repo, cache).Execute(ctx, "xian", created.ID); err != nil {
		t.Fatal(err)
	}

	if len(cache.stores) != 2 || cache.stores[0] != "xian" || cache.stores[1] != "xian" {
		t.Errorf("invalidated stores = %v, want [xian xian]", cache.stores)
	}
}
