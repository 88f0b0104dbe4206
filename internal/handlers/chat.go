package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/mavropro/mavro-api/internal/request"
	"github.com/mavropro/mavro-api/internal/services/vivi"
	"github.com/mavropro/mavro-api/internal/validation"
)

// MaxChatMessageLength is the maximum length for a chat message
const MaxChatMessageLength = 4000

// ChatHandler handles ViVi chat requests
type ChatHandler struct {
	chatService *vivi.ChatService
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatService *vivi.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// RegisterRoutes registers chat routes on the given router
// The router should already have the /chat prefix
func (h *ChatHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/message", h.SendMessage).Methods("POST")
	r.HandleFunc("/history", h.GetHistory).Methods("GET")
}

// ChatMessageRequest represents a chat message request
type ChatMessageRequest struct {
	Message string `json:"message" validate:"required"`
}

// SendMessage sends a message to ViVi with the session's persona as context.
// A second message while one is in flight gets 409; provider failure returns
// a persona-aware fallback reply rather than an error.
func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	sess := request.SessionFromContext(r)
	if sess == nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Session not found in context")
		return
	}

	var req ChatMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid request body")
		return
	}

	text := strings.TrimSpace(validation.SanitizeText(req.Message))
	if text == "" {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Message must not be empty")
		return
	}
	if len(text) > MaxChatMessageLength {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Message too long")
		return
	}

	reply, fallback, err := h.chatService.SendMessage(r.Context(), sess.ID, sess.Persona, text)
	if err != nil {
		if errors.Is(err, vivi.ErrSessionBusy) {
			respondJSONError(w, http.StatusConflict, "Conflict", "A message is already being processed for this session")
			return
		}
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to process message")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"message":  reply,
		"fallback": fallback,
	})
}

// GetHistory returns the session's chat history in order
func (h *ChatHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	sess := request.SessionFromContext(r)
	if sess == nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Session not found in context")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"messages": h.chatService.History(sess.ID),
	})
}
