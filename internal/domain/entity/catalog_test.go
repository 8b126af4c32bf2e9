package entity

import (
	"reflect"
	"testing"

	"github.com/shopspring/decimal"
)

func TestNewGroup_Defaults(t *testing.T) {
	g := NewGroup("paris6", "Carnes", "", nil, "")

	if g.Color != DefaultGroupColor || g.Icon != DefaultGroupIcon {
		t.Errorf("defaults not applied: %+v", g)
	}
	if !g.CostTargetPercent.Equal(decimal.NewFromInt(30)) {
		t.Errorf("CostTargetPercent = %s, want 30", g.CostTargetPercent)
	}

	target := decimal.NewFromInt(12)
	custom := NewGroup("paris6", "Bebidas", "#000000", &target, "🥤")
	if custom.Color != "#000000" || custom.Icon != "🥤" || !custom.CostTargetPercent.Equal(target) {
		t.Errorf("custom values lost: %+v", custom)
	}
}

func TestNewGoal_Defaults(t *testing.T) {
	g := NewGoal("xian", "3-2025", decimal.NewFromInt(100000), nil, nil)

	if !g.CostTargetPercent.Equal(decimal.NewFromInt(30)) {
		t.Errorf("CostTargetPercent = %s, want 30", g.CostTargetPercent)
	}
	if !g.AverageTicket.IsZero() {
		t.Errorf("AverageTicket = %s, want 0", g.AverageTicket)
	}
	if !g.AppliesTo(Period{Month: 3, Year: 2025}) {
		t.Error("expected goal to apply to 3-2025")
	}
	if g.AppliesTo(Period{Month: 4, Year: 2025}) {
		t.Error("did not expect goal to apply to 4-2025")
	}
}

func TestSplitCategories(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"Carnes, Frios ,Laticínios", []string{"Carnes", "Frios", "Laticínios"}},
		{" , ,", []string{}},
		{"", []string{}},
		{"Bebidas", []string{"Bebidas"}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := SplitCategories(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitCategories(%q) = %#v, want %#v", tt.in, got, tt.want)
			}
		})
	}
}

func TestStores(t *testing.T) {
	list := Stores()
	if len(list) != 7 {
		t.Fatalf("len(Stores()) = %d, want 7", len(list))
	}

	list[0].Name = "changed"
	if s, _ := FindStore("paris6"); s.Name != "Paris6" {
		t.Errorf("Stores() must return a copy, got %q", s.Name)
	}

	if _, ok := FindStore("unknown"); ok {
		t.Error("did not expect to find unknown store")
	}
}

func TestEmailJob_Lifecycle(t *testing.T) {
	job := NewEmailJob(TemplateCostAlert, "ops@cmc.com", "Ops", "Alerta", map[string]interface{}{"store": "Xian"})

	if !job.IsReadyToProcess() {
		t.Fatal("new job should be ready")
	}

	job.MarkProcessing()
	job.MarkFailed(errTest("timeout"), false)
	if job.Status != EmailStatusPending || job.Attempts != 1 {
		t.Errorf("after temporary failure: status=%s attempts=%d", job.Status, job.Attempts)
	}
	if job.IsReadyToProcess() {
		t.Error("retry should be delayed")
	}

	job.MarkFailed(errTest("bad address"), true)
	if job.Status != EmailStatusFailed || job.ProcessedAt == nil {
		t.Errorf("permanent failure should close the job: %+v", job)
	}

	sent := NewEmailJob(TemplateCostAlert, "ops@cmc.com", "", "Alerta", nil)
	sent.MarkSent("re_123")
	if sent.Status != EmailStatusSent || sent.ResendID != "re_123" {
		t.Errorf("MarkSent() = %+v", sent)
	}
}

type errTest string

func (e errTest) Error() string { return string(e) }
