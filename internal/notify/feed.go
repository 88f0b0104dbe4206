package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mavropro/mavro-api/internal/models"
)

// DefaultDismissAfter is the auto-dismiss timeout applied when none is
// configured.
const DefaultDismissAfter = 5 * time.Second

// Feed holds per-session ephemeral toast notifications. Every pushed toast
// schedules its own auto-dismiss timer; dismissal is fire-and-forget and a
// miss (already dismissed, unknown id) has no consequence.
type Feed struct {
	mu           sync.Mutex
	sessions     map[string][]*entry
	timers       map[string]*time.Timer
	dismissAfter time.Duration
	logger       *zap.Logger
	closed       bool
}

type entry struct {
	toast models.Toast
}

// NewFeed creates a toast feed. dismissAfter <= 0 falls back to
// DefaultDismissAfter.
func NewFeed(dismissAfter time.Duration, logger *zap.Logger) *Feed {
	if dismissAfter <= 0 {
		dismissAfter = DefaultDismissAfter
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Feed{
		sessions:     make(map[string][]*entry),
		timers:       make(map[string]*time.Timer),
		dismissAfter: dismissAfter,
		logger:       logger,
	}
}

// Push adds a toast to the session's feed and returns its generated id. The
// toast auto-dismisses after the configured timeout.
func (f *Feed) Push(sessionID, title, message string, severity models.ToastSeverity) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ""
	}

	toast := models.Toast{
		ID:        uuid.New().String(),
		Title:     title,
		Message:   message,
		Severity:  severity,
		Timestamp: time.Now().UTC(),
	}
	f.sessions[sessionID] = append(f.sessions[sessionID], &entry{toast: toast})

	id := toast.ID
	f.timers[id] = time.AfterFunc(f.dismissAfter, func() {
		f.Dismiss(sessionID, id)
	})

	f.logger.Debug("toast_pushed",
		zap.String("session_id", sessionID),
		zap.String("toast_id", id),
		zap.String("severity", string(severity)))
	return id
}

// Dismiss removes a toast immediately. Unknown ids, and ids belonging to a
// different session, are a no-op.
func (f *Feed) Dismiss(sessionID, toastID string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	entries := f.sessions[sessionID]
	found := false
	for i, e := range entries {
		if e.toast.ID == toastID {
			f.sessions[sessionID] = append(entries[:i], entries[i+1:]...)
			found = true
			break
		}
	}
	// The timer is only this session's to cancel if the toast was here.
	if !found {
		return
	}

	if t, ok := f.timers[toastID]; ok {
		t.Stop()
		delete(f.timers, toastID)
	}
	if len(f.sessions[sessionID]) == 0 {
		delete(f.sessions, sessionID)
	}
}

// List returns the session's toasts most-recent-first. Insertion order only;
// severity never reorders the feed.
func (f *Feed) List(sessionID string) []models.Toast {
	f.mu.Lock()
	defer f.mu.Unlock()

	entries := f.sessions[sessionID]
	out := make([]models.Toast, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		out = append(out, entries[i].toast)
	}
	return out
}

// DropSession removes a session's feed and cancels its timers.
func (f *Feed) DropSession(sessionID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.sessions[sessionID] {
		if t, ok := f.timers[e.toast.ID]; ok {
			t.Stop()
			delete(f.timers, e.toast.ID)
		}
	}
	delete(f.sessions, sessionID)
}

// Close cancels all pending timers and rejects further pushes.
func (f *Feed) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	f.closed = true
	for id, t := range f.timers {
		t.Stop()
		delete(f.timers, id)
	}
	f.sessions = make(map[string][]*entry)
}
