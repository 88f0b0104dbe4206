package persona

import (
	"fmt"
	"math/rand"

	"github.com/mavropro/mavro-api/internal/models"
)

const (
	kpiJitterRange  = 3.0
	kpiStableWindow = 0.5
)

// DefaultKPIs returns a fresh KPI snapshot in its initial state. The tile set
// is fixed; refreshes mutate values but never the count or ids.
func DefaultKPIs() []models.KPI {
	return []models.KPI{
		{ID: "revenue", Title: "Monthly Revenue", Value: "$24,500", ChangePercent: 12.5, Trend: models.KPITrendUp, Target: 30000, Current: 81.7},
		{ID: "leads", Title: "New Leads", Value: "142", ChangePercent: 8.2, Trend: models.KPITrendUp, Target: 200, Current: 71.0},
		{ID: "engagement", Title: "Engagement Rate", Value: "4.8%", ChangePercent: -1.3, Trend: models.KPITrendDown, Target: 6, Current: 80.0},
		{ID: "conversion", Title: "Conversion Rate", Value: "3.2%", ChangePercent: 0.2, Trend: models.KPITrendStable, Target: 5, Current: 64.0},
	}
}

// JitterKPIs applies one refresh step to a snapshot: each tile's current value
// moves by a uniform delta in [-3, 3], clamped to [0, 100], and the trend is
// recomputed from the applied delta. The input is not mutated.
func JitterKPIs(kpis []models.KPI, rng *rand.Rand) []models.KPI {
	out := make([]models.KPI, len(kpis))
	for i, k := range kpis {
		delta := (rng.Float64()*2 - 1) * kpiJitterRange
		next := clamp(0, 100, k.Current+delta)
		applied := next - k.Current

		k.ChangePercent = roundTo(applied, 1)
		k.Current = roundTo(next, 1)
		switch {
		case applied > kpiStableWindow:
			k.Trend = models.KPITrendUp
		case applied < -kpiStableWindow:
			k.Trend = models.KPITrendDown
		default:
			k.Trend = models.KPITrendStable
		}
		out[i] = k
	}
	return out
}

func clamp(lo, hi, v float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func roundTo(v float64, places int) float64 {
	shift := 1.0
	for i := 0; i < places; i++ {
		shift *= 10
	}
	if v >= 0 {
		return float64(int64(v*shift+0.5)) / shift
	}
	return float64(int64(v*shift-0.5)) / shift
}

// FormatProgress renders a current/target pair the way the dashboard tiles
// display progress.
func FormatProgress(current, target float64) string {
	return fmt.Sprintf("%.1f%% of %.0f", current, target)
}
