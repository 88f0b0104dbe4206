package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mavropro/mavro-api/internal/persona"
)

// PersonaHandler serves the persona registry listing
type PersonaHandler struct {
	registry *persona.Registry
}

// NewPersonaHandler creates a new persona handler
func NewPersonaHandler(registry *persona.Registry) *PersonaHandler {
	return &PersonaHandler{registry: registry}
}

// RegisterRoutes registers persona routes on the given router
func (h *PersonaHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("", h.ListPersonas).Methods("GET")
}

// ListPersonas returns every registered persona in registry order
func (h *PersonaHandler) ListPersonas(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"personas": h.registry.All(),
	})
}
