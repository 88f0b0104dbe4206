package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mavropro/mavro-api/internal/models"
	"github.com/mavropro/mavro-api/internal/notify"
	"github.com/mavropro/mavro-api/internal/persona"
	"github.com/mavropro/mavro-api/internal/request"
	"github.com/mavropro/mavro-api/internal/session"
	"github.com/mavropro/mavro-api/internal/validation"
)

// SessionHandler handles dashboard session state requests
type SessionHandler struct {
	store    *session.Store
	kpis     *session.KPIStore
	registry *persona.Registry
	feed     *notify.Feed
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(store *session.Store, kpis *session.KPIStore, registry *persona.Registry, feed *notify.Feed) *SessionHandler {
	return &SessionHandler{store: store, kpis: kpis, registry: registry, feed: feed}
}

// RegisterRoutes registers session routes on the given router
// The router should already have the /session prefix
func (h *SessionHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("", h.GetSession).Methods("GET")
	r.HandleFunc("/persona", h.SetPersona).Methods("PUT")
	r.HandleFunc("/mode", h.SetMode).Methods("PUT")
	r.HandleFunc("/view", h.SetView).Methods("PUT")
}

// SetPersonaRequest represents a persona switch request
type SetPersonaRequest struct {
	Persona string `json:"persona" validate:"required"`
}

// SetModeRequest represents a mode switch request
type SetModeRequest struct {
	Mode string `json:"mode" validate:"required"`
}

// SetViewRequest represents a view switch request
type SetViewRequest struct {
	View string `json:"view" validate:"required"`
}

// GetSession returns the current session state
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	sess := request.SessionFromContext(r)
	if sess == nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Session not found in context")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"session": sess,
	})
}

// SetPersona switches the session's active persona. Switching always
// regenerates the derived datasets: the dataset epoch is bumped and the KPI
// snapshot is reset. Unknown persona keys fall back to the default with an
// explicit fallback flag in the response.
func (h *SessionHandler) SetPersona(w http.ResponseWriter, r *http.Request) {
	sess := request.SessionFromContext(r)
	if sess == nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Session not found in context")
		return
	}

	var req SetPersonaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid request body")
		return
	}
	if err := validation.Validate.Struct(&req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "persona is required")
		return
	}

	p, fallback := h.registry.Lookup(models.PersonaKey(req.Persona))

	ctx := r.Context()
	updated, err := h.store.SetPersona(ctx, sess.ID, p.Key)
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to update session")
		return
	}

	// A persona switch invalidates the KPI snapshot; the next read reseeds it.
	if err := h.kpis.Reset(ctx, sess.ID); err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to reset KPI snapshot")
		return
	}

	h.feed.Push(sess.ID, "Persona switched",
		fmt.Sprintf("Now viewing %s (%s)", p.DisplayName, p.BusinessName),
		models.ToastSeveritySuccess)

	respondJSON(w, http.StatusOK, map[string]any{
		"session":  updated,
		"persona":  p,
		"fallback": fallback,
	})
}

// SetMode sets the active dashboard mode. Transitions are unconditional.
func (h *SessionHandler) SetMode(w http.ResponseWriter, r *http.Request) {
	sess := request.SessionFromContext(r)
	if sess == nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Session not found in context")
		return
	}

	var req SetModeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid request body")
		return
	}
	if err := validation.ValidateMode(req.Mode); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}

	updated, err := h.store.SetMode(r.Context(), sess.ID, models.DashboardMode(req.Mode))
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to update session")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"session": updated,
	})
}

// SetView sets the active dashboard view. Transitions are unconditional.
func (h *SessionHandler) SetView(w http.ResponseWriter, r *http.Request) {
	sess := request.SessionFromContext(r)
	if sess == nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Session not found in context")
		return
	}

	var req SetViewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid request body")
		return
	}
	if err := validation.ValidateView(req.View); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}

	updated, err := h.store.SetView(r.Context(), sess.ID, models.DashboardView(req.View))
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to update session")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"session": updated,
	})
}
