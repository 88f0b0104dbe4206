package models

import "time"

// FeedbackType classifies a feedback submission.
type FeedbackType string

const (
	FeedbackTypeBug         FeedbackType = "bug"
	FeedbackTypeFeature     FeedbackType = "feature"
	FeedbackTypeImprovement FeedbackType = "improvement"
	FeedbackTypeGeneral     FeedbackType = "general"
)

// FeedbackSeverity is the reporter-assigned severity of a feedback item.
type FeedbackSeverity string

const (
	FeedbackSeverityLow      FeedbackSeverity = "low"
	FeedbackSeverityMedium   FeedbackSeverity = "medium"
	FeedbackSeverityHigh     FeedbackSeverity = "high"
	FeedbackSeverityCritical FeedbackSeverity = "critical"
)

// FeedbackStatus tracks whether a feedback item has been handled.
type FeedbackStatus string

const (
	FeedbackStatusOpen     FeedbackStatus = "open"
	FeedbackStatusResolved FeedbackStatus = "resolved"
)

// BrowserInfo captures the client environment attached to a feedback report.
type BrowserInfo struct {
	UserAgent string `json:"user_agent"`
	Viewport  string `json:"viewport"`
	URL       string `json:"url"`
}

// Feedback is a bug report, feature request, improvement, or general note.
type Feedback struct {
	ID               string           `json:"id"` // FB-<unix>-<seq>
	Type             FeedbackType     `json:"type"`
	Title            string           `json:"title"`
	Description      string           `json:"description"`
	Severity         FeedbackSeverity `json:"severity,omitempty"`
	Category         string           `json:"category,omitempty"`
	Steps            string           `json:"steps,omitempty"`
	ExpectedBehavior string           `json:"expected_behavior,omitempty"`
	ActualBehavior   string           `json:"actual_behavior,omitempty"`
	BrowserInfo      *BrowserInfo     `json:"browser_info,omitempty"`
	SessionID        string           `json:"session_id,omitempty"`
	Status           FeedbackStatus   `json:"status"`
	CreatedAt        time.Time        `json:"created_at"`
}

// UserRating is a satisfaction rating submission.
type UserRating struct {
	ID             string    `json:"id"`     // UF-<unix>-<seq>
	Rating         int       `json:"rating"` // 1-5
	Comment        string    `json:"comment,omitempty"`
	Features       []string  `json:"features,omitempty"`
	Improvements   []string  `json:"improvements,omitempty"`
	WouldRecommend *bool     `json:"would_recommend,omitempty"`
	SessionID      string    `json:"session_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// FeedbackAnalytics is the rollup returned by the analytics endpoint.
type FeedbackAnalytics struct {
	TotalFeedback      int            `json:"total_feedback"`
	FeedbackByType     map[string]int `json:"feedback_by_type"`
	FeedbackBySeverity map[string]int `json:"feedback_by_severity"`
	AverageRating      float64        `json:"average_rating"`
	TotalRatings       int            `json:"total_ratings"`
	RecentFeedback     []*Feedback    `json:"recent_feedback"`
}
