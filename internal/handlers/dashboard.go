package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mavropro/mavro-api/internal/persona"
	"github.com/mavropro/mavro-api/internal/request"
	"github.com/mavropro/mavro-api/internal/session"
)

// DashboardHandler serves the persona-derived dashboard datasets
type DashboardHandler struct {
	datasets *persona.Datasets
	kpis     *session.KPIStore
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(datasets *persona.Datasets, kpis *session.KPIStore) *DashboardHandler {
	return &DashboardHandler{datasets: datasets, kpis: kpis}
}

// RegisterRoutes registers dashboard routes on the given router
// The router should already have the /dashboard prefix
func (h *DashboardHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/contacts", h.GetContacts).Methods("GET")
	r.HandleFunc("/campaigns", h.GetCampaigns).Methods("GET")
	r.HandleFunc("/reviews", h.GetReviews).Methods("GET")
	r.HandleFunc("/kpis", h.GetKPIs).Methods("GET")
	r.HandleFunc("/foursight", h.GetFourSight).Methods("GET")
}

// GetContacts returns the CRM contact table for the session's persona
func (h *DashboardHandler) GetContacts(w http.ResponseWriter, r *http.Request) {
	sess := request.SessionFromContext(r)
	if sess == nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Session not found in context")
		return
	}

	contacts, fallback := h.datasets.Contacts(sess.Persona)
	respondJSON(w, http.StatusOK, map[string]any{
		"contacts": contacts,
		"persona":  sess.Persona,
		"epoch":    sess.DatasetEpoch,
		"fallback": fallback,
	})
}

// GetCampaigns returns the campaign table for the session's persona
func (h *DashboardHandler) GetCampaigns(w http.ResponseWriter, r *http.Request) {
	sess := request.SessionFromContext(r)
	if sess == nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Session not found in context")
		return
	}

	campaigns, fallback := h.datasets.Campaigns(sess.Persona)
	respondJSON(w, http.StatusOK, map[string]any{
		"campaigns": campaigns,
		"persona":   sess.Persona,
		"epoch":     sess.DatasetEpoch,
		"fallback":  fallback,
	})
}

// GetReviews returns the review records for the session's persona
func (h *DashboardHandler) GetReviews(w http.ResponseWriter, r *http.Request) {
	sess := request.SessionFromContext(r)
	if sess == nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Session not found in context")
		return
	}

	reviews, fallback := h.datasets.Reviews(sess.Persona)
	respondJSON(w, http.StatusOK, map[string]any{
		"reviews":  reviews,
		"persona":  sess.Persona,
		"epoch":    sess.DatasetEpoch,
		"fallback": fallback,
	})
}

// GetKPIs returns the session's current KPI snapshot. The snapshot is seeded
// on first read and jittered in the background by the worker's refresher.
func (h *DashboardHandler) GetKPIs(w http.ResponseWriter, r *http.Request) {
	sess := request.SessionFromContext(r)
	if sess == nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Session not found in context")
		return
	}

	kpis, err := h.kpis.Get(r.Context(), sess.ID)
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to load KPI snapshot")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"kpis":  kpis,
		"epoch": sess.DatasetEpoch,
	})
}

// GetFourSight returns the analytics rollup for the session's persona
func (h *DashboardHandler) GetFourSight(w http.ResponseWriter, r *http.Request) {
	sess := request.SessionFromContext(r)
	if sess == nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Session not found in context")
		return
	}

	summary, fallback := h.datasets.FourSight(sess.Persona)
	respondJSON(w, http.StatusOK, map[string]any{
		"foursight": summary,
		"persona":   sess.Persona,
		"fallback":  fallback,
	})
}
