package models

// KPITrend indicates the direction of a KPI since the previous refresh.
type KPITrend string

const (
	KPITrendUp     KPITrend = "up"
	KPITrendDown   KPITrend = "down"
	KPITrendStable KPITrend = "stable"
)

// KPI is a dashboard tile showing a metric, its trend, and progress toward a target.
type KPI struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Value         string   `json:"value"`
	ChangePercent float64  `json:"change_percent"`
	Trend         KPITrend `json:"trend"`
	Target        float64  `json:"target"`
	Current       float64  `json:"current"` // 0-100 progress toward target
}
