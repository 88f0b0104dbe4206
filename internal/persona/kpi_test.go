package persona

import (
	"math/rand"
	"testing"

	"github.com/mavropro/mavro-api/internal/models"
)

func TestDefaultKPIsShape(t *testing.T) {
	t.Parallel()
	kpis := DefaultKPIs()
	if len(kpis) == 0 {
		t.Fatal("DefaultKPIs() is empty")
	}
	seen := make(map[string]bool)
	for _, k := range kpis {
		if k.ID == "" || k.Title == "" {
			t.Errorf("KPI missing id or title: %+v", k)
		}
		if seen[k.ID] {
			t.Errorf("duplicate KPI id %s", k.ID)
		}
		seen[k.ID] = true
		if k.Current < 0 || k.Current > 100 {
			t.Errorf("KPI %s current %.2f out of [0,100]", k.ID, k.Current)
		}
	}
}

func TestJitterKPIsBounds(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewSource(42))
	kpis := DefaultKPIs()

	// Many refresh steps must never escape the clamp or change the tile set.
	for i := 0; i < 500; i++ {
		next := JitterKPIs(kpis, rng)
		if len(next) != len(kpis) {
			t.Fatalf("step %d: len = %d, want %d", i, len(next), len(kpis))
		}
		for j, k := range next {
			if k.ID != kpis[j].ID {
				t.Fatalf("step %d: id[%d] = %s, want %s", i, j, k.ID, kpis[j].ID)
			}
			if k.Current < 0 || k.Current > 100 {
				t.Fatalf("step %d: KPI %s current %.2f out of [0,100]", i, k.ID, k.Current)
			}
			delta := k.Current - kpis[j].Current
			if delta > kpiJitterRange+0.1 || delta < -kpiJitterRange-0.1 {
				t.Fatalf("step %d: KPI %s delta %.2f outside jitter range", i, k.ID, delta)
			}
		}
		kpis = next
	}
}

func TestJitterKPIsTrend(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewSource(7))
	kpis := DefaultKPIs()
	for i := 0; i < 100; i++ {
		next := JitterKPIs(kpis, rng)
		for j, k := range next {
			delta := k.Current - kpis[j].Current
			switch k.Trend {
			case models.KPITrendUp:
				if delta <= 0 {
					t.Fatalf("KPI %s trend up with delta %.2f", k.ID, delta)
				}
			case models.KPITrendDown:
				if delta >= 0 {
					t.Fatalf("KPI %s trend down with delta %.2f", k.ID, delta)
				}
			case models.KPITrendStable:
				if delta > kpiStableWindow+0.1 || delta < -kpiStableWindow-0.1 {
					t.Fatalf("KPI %s trend stable with delta %.2f", k.ID, delta)
				}
			default:
				t.Fatalf("KPI %s has invalid trend %q", k.ID, k.Trend)
			}
		}
		kpis = next
	}
}

func TestJitterKPIsDoesNotMutateInput(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewSource(1))
	kpis := DefaultKPIs()
	before := kpis[0].Current
	_ = JitterKPIs(kpis, rng)
	if kpis[0].Current != before {
		t.Error("JitterKPIs mutated its input slice")
	}
}

func TestClamp(t *testing.T) {
	t.Parallel()
	tests := []struct {
		v, want float64
	}{
		{-5, 0},
		{0, 0},
		{50, 50},
		{100, 100},
		{104, 100},
	}
	for _, tt := range tests {
		if got := clamp(0, 100, tt.v); got != tt.want {
			t.Errorf("clamp(0,100,%.1f) = %.1f, want %.1f", tt.v, got, tt.want)
		}
	}
}
