package group

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/httpsniic/sistema-cmc-server/internal/domain/entity"
	domainerror "github.com/httpsniic/sistema-cmc-server/internal/domain/error"
)

type memoryGroups struct {
	groups   []*entity.Group
	replaced int
}

func (m *memoryGroups) List(_ context.Context, storeID string) ([]*entity.Group, error) {
	var out []*entity.Group
	for _, g := range m.groups {
		if g.StoreID == storeID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (m *memoryGroups) FindByID(_ context.Context, storeID string, id uint) (*entity.Group, error) {
	for _, g := range m.groups {
		if g.StoreID == storeID && g.ID == id {
			return g, nil
		}
	}
	return nil, domainerror.ErrGroupNotFound
}

func (m *memoryGroups) Create(_ context.Context, group *entity.Group) error {
	var maxID uint
	for _, g := range m.groups {
		if g.StoreID == group.StoreID && g.ID > maxID {
			maxID = g.ID
		}
	}
	group.ID = maxID + 1
	m.groups = append(m.groups, group)
	return nil
}

func (m *memoryGroups) Delete(_ context.Context, storeID string, id uint) error {
	for i, g := range m.groups {
		if g.StoreID == storeID && g.ID == id {
			m.groups = append(m.groups[:i], m.groups[i+1:]...)
			return nil
		}
	}
	return domainerror.ErrGroupNotFound
}

func (m *memoryGroups) ReplaceAll(_ context.Context, storeID string, groups []*entity.Group) error {
	m.replaced++
	var maxID uint
	for _, g := range groups {
		if g.ID > maxID {
			maxID = g.ID
		}
	}
	for _, g := range groups {
		if g.ID == 0 {
			maxID++
			g.ID = maxID
		}
	}
	m.groups = groups
	return nil
}

type taggedRecords struct {
	counts map[string]int64
}

func (taggedRecords) Load(context.Context, string, entity.Period) ([]*entity.DailyRecord, error) {
	return nil, nil
}

func (taggedRecords) SaveAll(context.Context, string, entity.Period, []*entity.DailyRecord) error {
	return nil
}

func (r taggedRecords) CountByGroupTag(_ context.Context, storeID, tag string) (int64, error) {
	return r.counts[storeID+"/"+tag], nil
}

// storeCache records which stores had their dashboards dropped.
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

func pct(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func groupCode(err error) domainerror.GroupErrorCode {
	var groupErr *domainerror.GroupError
	if errors.As(err, &groupErr) {
		return groupErr.Code
	}
	return ""
}

func TestCreateGroupUseCase(t *testing.T) {
	tests := []struct {
		name     string
		fields   GroupFields
		wantCode domainerror.GroupErrorCode
	}{
		{name: "defaults", fields: GroupFields{Name: "Hortifruti"}},
		{name: "explicit fields", fields: GroupFields{Name: "Carnes", Color: "#EF4444", CostTargetPercent: pct("35"), Icon: "🥩"}},
		{name: "blank name", fields: GroupFields{Name: "   "}, wantCode: domainerror.ErrCodeGroupNameRequired},
		{name: "bad color", fields: GroupFields{Name: "X", Color: "red"}, wantCode: domainerror.ErrCodeInvalidGroupColor},
		{name: "target above 100", fields: GroupFields{Name: "X", CostTargetPercent: pct("100.01")}, wantCode: domainerror.ErrCodeInvalidCostTarget},
		{name: "negative target", fields: GroupFields{Name: "X", CostTargetPercent: pct("-1")}, wantCode: domainerror.ErrCodeInvalidCostTarget},
		{name: "duplicate", fields: GroupFields{Name: "Bebidas"}, wantCode: domainerror.ErrCodeDuplicateGroupName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &memoryGroups{groups: []*entity.Group{entity.NewGroup("paris6", "Bebidas", "", nil, "")}}
			repo.groups[0].ID = 1

			out, err := NewCreateGroupUseCase(repo, &storeCache{}, NewStoreLocks()).Execute(context.Background(), CreateGroupInput{StoreID: "paris6", GroupFields: tt.fields})
			if tt.wantCode != "" {
				if got := groupCode(err); got != tt.wantCode {
					t.Fatalf("code = %q, want %q (err %v)", got, tt.wantCode, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if out.Group.ID != 2 {
				t.Errorf("ID = %d, want 2", out.Group.ID)
			}
		})
	}
}

func TestCreateGroupUseCase_Defaults(t *testing.T) {
	out, err := NewCreateGroupUseCase(&memoryGroups{}, &storeCache{}, NewStoreLocks()).Execute(context.Background(), CreateGroupInput{
		StoreID:     "xian",
		GroupFields: GroupFields{Name: "Laticínios", Color: "#A855F7"},
	})
	if err != nil {
		t.Fatal(err)
	}
	g := out.Group
	if g.Color != "#a855f7" || g.Icon != entity.DefaultGroupIcon || !g.CostTargetPercent.Equal(decimal.NewFromInt(30)) {
		t.Errorf("unexpected defaults %+v", g)
	}
}

func TestDeleteGroupUseCase_ReportsOrphans(t *testing.T) {
	repo := &memoryGroups{}
	ctx := context.Background()
	created, err := NewCreateGroupUseCase(repo, &storeCache{}, NewStoreLocks()).Execute(ctx, CreateGroupInput{StoreID: "paris6", GroupFields: GroupFields{Name: "Bebidas"}})
	if err != nil {
		t.Fatal(err)
	}

	uc := NewDeleteGroupUseCase(repo, taggedRecords{counts: map[string]int64{"paris6/Bebidas": 4}}, &storeCache{}, NewStoreLocks())

	out, err := uc.Execute(ctx, DeleteGroupInput{StoreID: "paris6", GroupID: created.Group.ID})
	if err != nil {
		t.Fatal(err)
	}
	if out.OrphanedRecords != 4 || out.Name != "Bebidas" {
		t.Errorf("output = %+v", out)
	}

	_, err = uc.Execute(ctx, DeleteGroupInput{StoreID: "paris6", GroupID: created.Group.ID})
	if groupCode(err) != domainerror.ErrCodeGroupNotFound {
		t.Errorf("second delete err = %v", err)
	}
}

func TestReplaceGroupsUseCase(t *testing.T) {
	t.Run("keeps ids and assigns new ones", func(t *testing.T) {
		repo := &memoryGroups{}
		out, err := NewReplaceGroupsUseCase(repo, &storeCache{}, NewStoreLocks()).Execute(context.Background(), ReplaceGroupsInput{
			StoreID: "stella",
			Groups: []ReplaceGroupsItem{
				{ID: 5, GroupFields: GroupFields{Name: "Carnes"}},
				{GroupFields: GroupFields{Name: "Bebidas"}},
				{ID: 5, GroupFields: GroupFields{Name: "Peixes"}},
			},
		})
		if err != nil {
			t.Fatal(err)
		}
		ids := []uint{out.Groups[0].ID, out.Groups[1].ID, out.Groups[2].ID}
		if ids[0] != 5 || ids[1] != 6 || ids[2] != 7 {
			t.Errorf("ids = %v, want [5 6 7]", ids)
		}
	})

	t.Run("rejects the whole list on one bad item", func(t *testing.T) {
		repo := &memoryGroups{}
		_, err := NewReplaceGroupsUseCase(repo, &storeCache{}, NewStoreLocks()).Execute(context.Background(), ReplaceGroupsInput{
			StoreID: "stella",
			Groups: []ReplaceGroupsItem{
				{GroupFields: GroupFields{Name: "Carnes"}},
				{GroupFields: GroupFields{Name: "Carnes"}},
			},
		})
		if groupCode(err) != domainerror.ErrCodeDuplicateGroupName {
			t.Fatalf("err = %v", err)
		}
		if repo.replaced != 0 {
			t.Error("nothing may be written when validation fails")
		}
	})

	t.Run("empty list clears", func(t *testing.T) {
		repo := &memoryGroups{groups: []*entity.Group{entity.NewGroup("stella", "Carnes", "", nil, "")}}
		out, err := NewReplaceGroupsUseCase(repo, &storeCache{}, NewStoreLocks()).Execute(context.Background(), ReplaceGroupsInput{StoreID: "stella"})
		if err != nil {
			t.Fatal(err)
		}
		if len(out.Groups) != 0 || len(repo.groups) != 0 {
			t.Errorf("groups left: %d", len(repo.groups))
		}
	})
}

func TestListGroupsUseCase_ScopedByStore(t *testing.T) {
	repo := &memoryGroups{groups: []*entity.Group{
		entity.NewGroup("paris6", "Carnes", "", nil, ""),
		entity.NewGroup("xian", "Bebidas", "", nil, ""),
	}}

	out, err := NewListGroupsUseCase(repo).Execute(context.Background(), ListGroupsInput{StoreID: "xian"})
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Groups) != 1 || out.Groups[0].Name != "Bebidas" {
		t.Errorf("groups = %+v", out.Groups)
	}
}

func TestGroupWrites_InvalidateStoreCache(t *testing.T) {
	tests := []struct {
		name string
		run  func(ctx context.Context, repo *memoryGroups, cache *storeCache) error
		want []string
	}{
		{
			name: "create",
			run: func(ctx context.Context, repo *memoryGroups, cache *storeCache) error {
				_, err := NewCreateGroupUseCase(repo, cache, NewStoreLocks()).Execute(ctx, CreateGroupInput{StoreID: "paris6", GroupFields: GroupFields{Name: "Peixes"}})
				return err
			},
			want: []string{"paris6"},
		},
		{
			name: "rejected create",
			run: func(ctx context.Context, repo *memoryGroups, cache *storeCache) error {
				_, err := NewCreateGroupUseCase(repo, cache, NewStoreLocks()).Execute(ctx, CreateGroupInput{StoreID: "paris6", GroupFields: GroupFields{Name: "Carnes"}})
				if groupCode(err) != domainerror.ErrCodeDuplicateGroupName {
					return err
				}
				return nil
			},
		},
		{
			name: "replace",
			run: func(ctx context.Context, repo *memoryGroups, cache *storeCache) error {
				_, err := NewReplaceGroupsUseCase(repo, cache, NewStoreLocks()).Execute(ctx, ReplaceGroupsInput{
					StoreID: "paris6",
					Groups:  []ReplaceGroupsItem{{ID: 1, GroupFields: GroupFields{Name: "Carnes Nobres"}}},
				})
				return err
			},
			want: []string{"paris6"},
		},
		{
			name: "delete",
			run: func(ctx context.Context, repo *memoryGroups, cache *storeCache) error {
				_, err := NewDeleteGroupUseCase(repo, taggedRecords{}, cache, NewStoreLocks()).Execute(ctx, DeleteGroupInput{StoreID: "paris6", GroupID: 1})
				return err
			},
			want: []string{"paris6"},
		},
		{
			name: "delete of a missing group",
			run: func(ctx context.Context, repo *memoryGroups, cache *storeCache) error {
				_, err := NewDeleteGroupUseCase(repo, taggedRecords{}, cache, NewStoreLocks()).Execute(ctx, DeleteGroupInput{StoreID: "paris6", GroupID: 9})
				if groupCode(err) != domainerror.ErrCodeGroupNotFound {
					return err
				}
				return nil
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &memoryGroups{groups: []*entity.Group{entity.NewGroup("paris6", "Carnes", "", nil, "")}}
			repo.groups[0].ID = 1
			cache := &storeCache{}

			if err := tt.run(context.Background(), repo, cache); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(cache.stores) != len(tt.want) || (len(tt.want) > 0 && cache.stores[0] != tt.want[0]) {
				t.Errorf("invalidated stores = %v, want %v", cache.stores, tt.want)
			}
		})
	}
}

func TestCreateGroupUseCase_ConcurrentCreates(t *testing.T) {
	// memoryGroups is not safe for concurrent use, so every repository call
	// must happen under the store lock.
	repo := &memoryGroups{}
	uc := NewCreateGroupUseCase(repo, &storeCache{}, NewStoreLocks())

	const workers = 8
	var (
		wg         sync.WaitGroup
		mu         sync.Mutex
		created    int
		duplicates int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Execute(context.Background(), CreateGroupInput{StoreID: "paris6", GroupFields: GroupFields{Name: "Carnes"}})

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				created++
			case groupCode(err) == domainerror.ErrCodeDuplicateGroupName:
				duplicates++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if created != 1 || duplicates != workers-1 {
		t.Errorf("created = %d, duplicates = %d", created, duplicates)
	}
	if len(repo.groups) != 1 || repo.groups[0].ID != 1 {
		t.Errorf("stored groups = %+v", repo.groups)
	}
}

func TestCreateGroupUseCase_ConcurrentDistinctNames(t *testing.T) {
	repo := &memoryGroups{}
	uc := NewCreateGroupUseCase(repo, &storeCache{}, NewStoreLocks())
	names := []string{"Carnes", "Bebidas", "Peixes", "Hortifruti", "Laticínios", "Padaria"}

	var wg sync.WaitGroup
	for _, name := range names {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			if _, err := uc.Execute(context.Background(), CreateGroupInput{StoreID: "xian", GroupFields: GroupFields{Name: name}}); err != nil {
				t.Errorf("create %s: %v", name, err)
			}
		}(name)
	}
	wg.Wait()

	seen := make(map[uint]bool)
	for _, g := range repo.groups {
		if seen[g.ID] {
			t.Errorf("ID %d assigned twice", g.ID)
		}
		seen[g.ID] = true
	}
	if len(seen) != len(names) {
		t.Errorf("stored %d groups, want %d", len(seen), len(names))
	}
}
