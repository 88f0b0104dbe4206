package models

// ContactStatus represents where a contact sits in the pipeline.
type ContactStatus string

const (
	ContactStatusLead     ContactStatus = "lead"
	ContactStatusProspect ContactStatus = "prospect"
	ContactStatusCustomer ContactStatus = "customer"
	ContactStatusInactive ContactStatus = "inactive"
)

// ContactPriority represents follow-up priority.
type ContactPriority string

const (
	ContactPriorityHigh   ContactPriority = "high"
	ContactPriorityMedium ContactPriority = "medium"
	ContactPriorityLow    ContactPriority = "low"
)

// LeadTemperature is a presentation-level heat rating for a contact.
type LeadTemperature string

const (
	LeadTemperatureHot  LeadTemperature = "hot"
	LeadTemperatureWarm LeadTemperature = "warm"
	LeadTemperatureCold LeadTemperature = "cold"
)

// EngagementEvent is one entry in a contact's ordered engagement history.
type EngagementEvent struct {
	Date     string `json:"date"`
	Type     string `json:"type"` // email, call, meeting, social, content_view
	Platform string `json:"platform,omitempty"`
	Duration int    `json:"duration_seconds"`
	Outcome  string `json:"outcome"`
}

// Contact is a CRM record derived from the active persona's dataset.
type Contact struct {
	ID                string            `json:"id"`
	Name              string            `json:"name"`
	Email             string            `json:"email"`
	Phone             string            `json:"phone"`
	Company           string            `json:"company"`
	Position          string            `json:"position"`
	Status            ContactStatus     `json:"status"`
	Priority          ContactPriority   `json:"priority"`
	EstimatedValue    int               `json:"estimated_value"`
	AIScore           int               `json:"ai_score"` // 0-100
	Temperature       LeadTemperature   `json:"temperature"`
	Persona           PersonaKey        `json:"persona"`
	Tags              []string          `json:"tags,omitempty"`
	Notes             string            `json:"notes,omitempty"`
	EngagementHistory []EngagementEvent `json:"engagement_history,omitempty"`
}
