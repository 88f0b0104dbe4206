package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mavropro/mavro-api/internal/models"
	"github.com/mavropro/mavro-api/internal/notify"
	"github.com/mavropro/mavro-api/internal/request"
	"github.com/mavropro/mavro-api/internal/validation"
)

// NotificationHandler handles the per-session toast feed
type NotificationHandler struct {
	feed *notify.Feed
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(feed *notify.Feed) *NotificationHandler {
	return &NotificationHandler{feed: feed}
}

// RegisterRoutes registers notification routes on the given router
// The router should already have the /notifications prefix
func (h *NotificationHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("", h.ListToasts).Methods("GET")
	r.HandleFunc("", h.PushToast).Methods("POST")
	r.HandleFunc("/{id}", h.DismissToast).Methods("DELETE")
}

// PushToastRequest represents a toast push request
type PushToastRequest struct {
	Title    string `json:"title" validate:"max=200"`
	Message  string `json:"message" validate:"required,min=1,max=500"`
	Severity string `json:"severity,omitempty" validate:"omitempty,toast_severity"`
}

// ListToasts returns the session's feed, most-recent-first
func (h *NotificationHandler) ListToasts(w http.ResponseWriter, r *http.Request) {
	sess := request.SessionFromContext(r)
	if sess == nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Session not found in context")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"notifications": h.feed.List(sess.ID),
	})
}

// PushToast adds a toast to the session's feed. It auto-dismisses after the
// configured timeout.
func (h *NotificationHandler) PushToast(w http.ResponseWriter, r *http.Request) {
	sess := request.SessionFromContext(r)
	if sess == nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Session not found in context")
		return
	}

	var req PushToastRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid request body")
		return
	}

	req.Title = validation.SanitizeText(req.Title)
	req.Message = validation.SanitizeText(req.Message)

	if err := validation.Validate.Struct(&req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid toast: "+err.Error())
		return
	}

	severity := models.ToastSeverity(req.Severity)
	if severity == "" {
		severity = models.ToastSeverityInfo
	}

	id := h.feed.Push(sess.ID, req.Title, req.Message, severity)
	if id == "" {
		respondJSONError(w, http.StatusServiceUnavailable, "Service Unavailable", "Notification feed is shut down")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"id": id,
	})
}

// DismissToast removes a toast immediately. Dismissal is fire-and-forget:
// unknown ids succeed.
func (h *NotificationHandler) DismissToast(w http.ResponseWriter, r *http.Request) {
	sess := request.SessionFromContext(r)
	if sess == nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Session not found in context")
		return
	}

	vars := mux.Vars(r)
	h.feed.Dismiss(sess.ID, vars["id"])

	respondJSON(w, http.StatusOK, map[string]any{
		"dismissed": vars["id"],
	})
}
