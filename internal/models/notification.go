package models

import "time"

// ToastSeverity classifies a transient notification.
type ToastSeverity string

const (
	ToastSeverityInfo    ToastSeverity = "info"
	ToastSeveritySuccess ToastSeverity = "success"
	ToastSeverityWarning ToastSeverity = "warning"
	ToastSeverityError   ToastSeverity = "error"
)

// Toast is a transient, auto-dismissing notification in a session's feed.
type Toast struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	Message   string        `json:"message"`
	Severity  ToastSeverity `json:"severity"`
	Timestamp time.Time     `json:"timestamp"`
	Read      bool          `json:"read"`
}
