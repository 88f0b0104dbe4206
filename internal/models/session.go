package models

import "time"

// DashboardMode is the Plan/Track/Grow/Learn navigation axis.
type DashboardMode string

const (
	ModePlan  DashboardMode = "plan"
	ModeTrack DashboardMode = "track"
	ModeGrow  DashboardMode = "grow"
	ModeLearn DashboardMode = "learn"
)

// DashboardView is the page axis of the dashboard.
type DashboardView string

const (
	ViewDashboard DashboardView = "dashboard"
	ViewCampaigns DashboardView = "campaigns"
	ViewReviews   DashboardView = "reviews"
	ViewCRM       DashboardView = "crm"
	ViewFourSight DashboardView = "foursight"
	ViewSettings  DashboardView = "settings"
	ViewGeoSmart  DashboardView = "geosmart"
)

// Session is the server-side dashboard session state. Exactly one persona,
// one mode, and one view are active at a time.
type Session struct {
	ID           string        `json:"id"`
	Persona      PersonaKey    `json:"persona"`
	Mode         DashboardMode `json:"mode"`
	View         DashboardView `json:"view"`
	DatasetEpoch int           `json:"dataset_epoch"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}
