package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/mavropro/mavro-api/internal/database"
	"github.com/mavropro/mavro-api/internal/models"
	"github.com/mavropro/mavro-api/internal/queue"
	"github.com/mavropro/mavro-api/internal/request"
	"github.com/mavropro/mavro-api/internal/validation"
)

// FeedbackHandler handles feedback and rating submissions
type FeedbackHandler struct {
	repo     database.FeedbackRepositoryInterface
	jobQueue queue.JobQueue
	logger   *zap.Logger
}

// NewFeedbackHandler creates a new feedback handler. jobQueue may be nil when
// the queue is unavailable; alert jobs are then skipped.
func NewFeedbackHandler(repo database.FeedbackRepositoryInterface, jobQueue queue.JobQueue, logger *zap.Logger) *FeedbackHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FeedbackHandler{repo: repo, jobQueue: jobQueue, logger: logger}
}

// RegisterRoutes registers feedback routes on the given router
// The router should already have the /feedback prefix
func (h *FeedbackHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("", h.SubmitFeedback).Methods("POST")
	r.HandleFunc("/rating", h.SubmitRating).Methods("POST")
	r.HandleFunc("/analytics", h.GetAnalytics).Methods("GET")
	r.HandleFunc("/{id}/resolve", h.ResolveFeedback).Methods("POST")
}

// BrowserInfoRequest mirrors the optional client environment block
type BrowserInfoRequest struct {
	UserAgent string `json:"user_agent" validate:"max=500"`
	Viewport  string `json:"viewport" validate:"max=50"`
	URL       string `json:"url" validate:"max=2000"`
}

// SubmitFeedbackRequest represents a feedback submission
type SubmitFeedbackRequest struct {
	Type             string              `json:"type" validate:"required,feedback_type"`
	Title            string              `json:"title" validate:"required,min=5,max=200"`
	Description      string              `json:"description" validate:"required,min=10,max=2000"`
	Severity         string              `json:"severity,omitempty" validate:"omitempty,feedback_severity"`
	Category         string              `json:"category,omitempty" validate:"omitempty,feedback_category"`
	Steps            string              `json:"steps,omitempty" validate:"max=2000"`
	ExpectedBehavior string              `json:"expected_behavior,omitempty" validate:"max=1000"`
	ActualBehavior   string              `json:"actual_behavior,omitempty" validate:"max=1000"`
	BrowserInfo      *BrowserInfoRequest `json:"browser_info,omitempty"`
}

// SubmitRatingRequest represents a satisfaction rating submission
type SubmitRatingRequest struct {
	Rating         int      `json:"rating" validate:"required,min=1,max=5"`
	Comment        string   `json:"comment,omitempty" validate:"max=1000"`
	Features       []string `json:"features,omitempty" validate:"max=20,dive,max=100"`
	Improvements   []string `json:"improvements,omitempty" validate:"max=20,dive,max=100"`
	WouldRecommend *bool    `json:"would_recommend,omitempty"`
}

// SubmitFeedback validates and persists a feedback submission. Validation
// failures never reach storage or the queue. High and critical severity
// submissions enqueue an alert job for the worker.
func (h *FeedbackHandler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	sess := request.SessionFromContext(r)
	if sess == nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Session not found in context")
		return
	}

	var req SubmitFeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid request body")
		return
	}

	req.Title = validation.SanitizeText(req.Title)
	req.Description = validation.SanitizeText(req.Description)
	req.Steps = validation.SanitizeText(req.Steps)
	req.ExpectedBehavior = validation.SanitizeText(req.ExpectedBehavior)
	req.ActualBehavior = validation.SanitizeText(req.ActualBehavior)

	if err := validation.Validate.Struct(&req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid feedback: "+err.Error())
		return
	}

	feedback := &models.Feedback{
		ID:               h.repo.NextFeedbackID(),
		Type:             models.FeedbackType(req.Type),
		Title:            req.Title,
		Description:      req.Description,
		Severity:         models.FeedbackSeverity(req.Severity),
		Category:         req.Category,
		Steps:            req.Steps,
		ExpectedBehavior: req.ExpectedBehavior,
		ActualBehavior:   req.ActualBehavior,
		SessionID:        sess.ID,
		Status:           models.FeedbackStatusOpen,
		CreatedAt:        time.Now().UTC(),
	}
	if req.BrowserInfo != nil {
		feedback.BrowserInfo = &models.BrowserInfo{
			UserAgent: req.BrowserInfo.UserAgent,
			Viewport:  req.BrowserInfo.Viewport,
			URL:       req.BrowserInfo.URL,
		}
	}

	if err := h.repo.CreateFeedback(r.Context(), feedback); err != nil {
		h.logger.Error("feedback_create_failed", zap.Error(err))
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to store feedback")
		return
	}

	if h.jobQueue != nil &&
		(feedback.Severity == models.FeedbackSeverityHigh || feedback.Severity == models.FeedbackSeverityCritical) {
		job := queue.NewFeedbackAlertJob(feedback.ID, sess.ID)
		if err := h.jobQueue.Enqueue(r.Context(), job); err != nil {
			// The feedback is stored; a lost alert is logged, not surfaced.
			h.logger.Error("feedback_alert_enqueue_failed",
				zap.String("feedback_id", feedback.ID),
				zap.Error(err))
		}
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"feedback": feedback,
	})
}

// SubmitRating validates and persists a satisfaction rating
func (h *FeedbackHandler) SubmitRating(w http.ResponseWriter, r *http.Request) {
	sess := request.SessionFromContext(r)
	if sess == nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Session not found in context")
		return
	}

	var req SubmitRatingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid request body")
		return
	}

	req.Comment = validation.SanitizeText(req.Comment)

	if err := validation.Validate.Struct(&req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid rating: "+err.Error())
		return
	}

	rating := &models.UserRating{
		ID:             h.repo.NextRatingID(),
		Rating:         req.Rating,
		Comment:        req.Comment,
		Features:       req.Features,
		Improvements:   req.Improvements,
		WouldRecommend: req.WouldRecommend,
		SessionID:      sess.ID,
		CreatedAt:      time.Now().UTC(),
	}

	if err := h.repo.CreateRating(r.Context(), rating); err != nil {
		h.logger.Error("rating_create_failed", zap.Error(err))
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to store rating")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"rating": rating,
	})
}

// GetAnalytics returns the feedback analytics rollup
func (h *FeedbackHandler) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	analytics, err := h.repo.Analytics(r.Context())
	if err != nil {
		h.logger.Error("feedback_analytics_failed", zap.Error(err))
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to load analytics")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"analytics": analytics,
	})
}

// ResolveFeedback marks a feedback item resolved
func (h *FeedbackHandler) ResolveFeedback(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]

	found, err := h.repo.Resolve(r.Context(), id)
	if err != nil {
		h.logger.Error("feedback_resolve_failed", zap.String("feedback_id", id), zap.Error(err))
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to resolve feedback")
		return
	}
	if !found {
		respondJSONError(w, http.StatusNotFound, "Not Found", "Feedback not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"resolved": id,
	})
}
