package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mavropro/mavro-api/internal/database"
	"github.com/mavropro/mavro-api/internal/models"
	"github.com/mavropro/mavro-api/internal/request"
)

// MaxSettingValueBytes caps the size of one stored settings blob
const MaxSettingValueBytes = 64 * 1024

// SettingsHandler handles the per-session versioned settings store
type SettingsHandler struct {
	repo database.SettingsRepositoryInterface
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(repo database.SettingsRepositoryInterface) *SettingsHandler {
	return &SettingsHandler{repo: repo}
}

// RegisterRoutes registers settings routes on the given router
// The router should already have the /settings prefix
func (h *SettingsHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("", h.ListSettings).Methods("GET")
	r.HandleFunc("/{key}", h.GetSetting).Methods("GET")
	r.HandleFunc("/{key}", h.SetSetting).Methods("PUT")
	r.HandleFunc("/{key}", h.DeleteSetting).Methods("DELETE")
}

// SetSettingRequest represents a settings write
type SetSettingRequest struct {
	SchemaVersion int             `json:"schema_version"`
	Value         json.RawMessage `json:"value"`
}

// settingKey extracts and checks the key path variable against the closed set
func settingKey(r *http.Request) (models.SettingKey, bool) {
	key := models.SettingKey(mux.Vars(r)["key"])
	return key, models.IsKnownSettingKey(key)
}

// ListSettings returns every stored setting for the session
func (h *SettingsHandler) ListSettings(w http.ResponseWriter, r *http.Request) {
	sess := request.SessionFromContext(r)
	if sess == nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Session not found in context")
		return
	}

	settings, err := h.repo.List(r.Context(), sess.ID)
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to load settings")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"settings": settings,
	})
}

// GetSetting returns one setting. Unknown keys are rejected; unset known keys
// return 404.
func (h *SettingsHandler) GetSetting(w http.ResponseWriter, r *http.Request) {
	sess := request.SessionFromContext(r)
	if sess == nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Session not found in context")
		return
	}

	key, known := settingKey(r)
	if !known {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Unknown settings key")
		return
	}

	setting, err := h.repo.Get(r.Context(), sess.ID, key)
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to load setting")
		return
	}
	if setting == nil {
		respondJSONError(w, http.StatusNotFound, "Not Found", "Setting is not set")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"setting": setting,
	})
}

// SetSetting upserts one setting blob with its schema version
func (h *SettingsHandler) SetSetting(w http.ResponseWriter, r *http.Request) {
	sess := request.SessionFromContext(r)
	if sess == nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Session not found in context")
		return
	}

	key, known := settingKey(r)
	if !known {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Unknown settings key")
		return
	}

	var req SetSettingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid request body")
		return
	}
	if len(req.Value) == 0 {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "value is required")
		return
	}
	if len(req.Value) > MaxSettingValueBytes {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "value too large")
		return
	}
	if !json.Valid(req.Value) {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "value must be valid JSON")
		return
	}
	if req.SchemaVersion < 1 {
		req.SchemaVersion = 1
	}

	// Timestamps come back from the store so created_at survives updates
	setting := &models.Setting{
		SessionID:     sess.ID,
		Key:           key,
		SchemaVersion: req.SchemaVersion,
		Value:         req.Value,
	}

	if err := h.repo.Set(r.Context(), setting); err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to store setting")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"setting": setting,
	})
}

// DeleteSetting removes one setting. Unset known keys return 404.
func (h *SettingsHandler) DeleteSetting(w http.ResponseWriter, r *http.Request) {
	sess := request.SessionFromContext(r)
	if sess == nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Session not found in context")
		return
	}

	key, known := settingKey(r)
	if !known {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Unknown settings key")
		return
	}

	found, err := h.repo.Delete(r.Context(), sess.ID, key)
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to delete setting")
		return
	}
	if !found {
		respondJSONError(w, http.StatusNotFound, "Not Found", "Setting is not set")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"deleted": string(key),
	})
}
