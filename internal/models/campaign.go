package models

// CampaignStatus represents the lifecycle state of a campaign.
type CampaignStatus string

const (
	CampaignStatusDraft     CampaignStatus = "draft"
	CampaignStatusActive    CampaignStatus = "active"
	CampaignStatusPaused    CampaignStatus = "paused"
	CampaignStatusCompleted CampaignStatus = "completed"
)

// Campaign is a marketing campaign record derived from the active persona's dataset.
type Campaign struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Platform    string         `json:"platform"`
	Status      CampaignStatus `json:"status"`
	Budget      float64        `json:"budget"`
	Spent       float64        `json:"spent"`
	Impressions int            `json:"impressions"`
	Clicks      int            `json:"clicks"`
	Conversions int            `json:"conversions"`
	ROI         float64        `json:"roi"`
	Persona     PersonaKey     `json:"persona"`
}

// Review is a public review record shown on the Reviews page.
type Review struct {
	ID        string     `json:"id"`
	Platform  string     `json:"platform"`
	Author    string     `json:"author"`
	Rating    int        `json:"rating"` // 1-5
	Text      string     `json:"text"`
	Responded bool       `json:"responded"`
	Persona   PersonaKey `json:"persona"`
}

// FourSightSummary is the analytics rollup shown on the FourSIGHT page.
type FourSightSummary struct {
	Persona          PersonaKey `json:"persona"`
	IndustryTag      string     `json:"industry_tag"`
	TotalCampaigns   int        `json:"total_campaigns"`
	ActiveCampaigns  int        `json:"active_campaigns"`
	TotalBudget      float64    `json:"total_budget"`
	TotalSpent       float64    `json:"total_spent"`
	TotalImpressions int        `json:"total_impressions"`
	TotalClicks      int        `json:"total_clicks"`
	TotalConversions int        `json:"total_conversions"`
	ClickThroughRate float64    `json:"click_through_rate"`
	AverageROI       float64    `json:"average_roi"`
}
