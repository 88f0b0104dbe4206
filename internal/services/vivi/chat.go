package vivi

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mavropro/mavro-api/internal/models"
	"github.com/mavropro/mavro-api/internal/persona"
)

// ChatService manages per-session chat histories. Histories live in memory
// only and drop with the session.
type ChatService struct {
	provider Provider
	registry *persona.Registry
	sessions map[string]*ChatSession
	mu       sync.RWMutex // Protects concurrent access to sessions map
	logger   *zap.Logger
}

// ChatSession represents an active chat session
type ChatSession struct {
	SessionID    string
	Messages     []models.ChatMessage
	CreatedAt    time.Time
	LastActivity time.Time

	mu   sync.Mutex
	busy bool // one in-flight provider call per session
}

// touch records activity. LastActivity is guarded by session.mu like the
// message slice.
func (cs *ChatSession) touch() {
	cs.mu.Lock()
	cs.LastActivity = time.Now()
	cs.mu.Unlock()
}

// NewChatService creates a new chat service
func NewChatService(provider Provider, registry *persona.Registry, logger *zap.Logger) *ChatService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChatService{
		provider: provider,
		registry: registry,
		sessions: make(map[string]*ChatSession),
		logger:   logger,
	}
}

// GetOrCreateSession gets or creates a chat session
func (s *ChatService) GetOrCreateSession(sessionID string) *ChatSession {
	// Try read lock first for fast path
	s.mu.RLock()
	if session, exists := s.sessions[sessionID]; exists {
		s.mu.RUnlock()
		session.touch()
		return session
	}
	s.mu.RUnlock()

	// Need to create new session, acquire write lock
	s.mu.Lock()
	defer s.mu.Unlock()

	// Double-check after acquiring write lock (another goroutine might have created it)
	if session, exists := s.sessions[sessionID]; exists {
		session.touch()
		return session
	}

	session := &ChatSession{
		SessionID:    sessionID,
		Messages:     make([]models.ChatMessage, 0),
		CreatedAt:    time.Now(),
		LastActivity: time.Now(),
	}

	s.sessions[sessionID] = session
	return session
}

// History returns a copy of the session's message history.
func (s *ChatService) History(sessionID string) []models.ChatMessage {
	s.mu.RLock()
	session, exists := s.sessions[sessionID]
	s.mu.RUnlock()
	if !exists {
		return []models.ChatMessage{}
	}

	session.mu.Lock()
	defer session.mu.Unlock()
	out := make([]models.ChatMessage, len(session.Messages))
	copy(out, session.Messages)
	return out
}

// SendMessage appends the user message, calls the provider, and appends the
// assistant reply. Provider failure appends a persona-aware apology instead
// and reports fallback=true; there is no retry on this path. A second call
// while one is in flight fails with ErrSessionBusy.
func (s *ChatService) SendMessage(ctx context.Context, sessionID string, personaKey models.PersonaKey, text string) (reply models.ChatMessage, fallback bool, err error) {
	session := s.GetOrCreateSession(sessionID)

	session.mu.Lock()
	if session.busy {
		session.mu.Unlock()
		return models.ChatMessage{}, false, ErrSessionBusy
	}
	session.busy = true

	userMsg := models.ChatMessage{
		ID:        uuid.New().String(),
		Role:      models.ChatRoleUser,
		Content:   text,
		Timestamp: time.Now().UTC(),
	}
	session.Messages = append(session.Messages, userMsg)
	session.LastActivity = time.Now()

	history := make([]ChatMessage, 0, len(session.Messages))
	for _, m := range session.Messages {
		history = append(history, ChatMessage{Role: string(m.Role), Content: m.Content})
	}
	session.mu.Unlock()

	defer func() {
		session.mu.Lock()
		session.busy = false
		session.mu.Unlock()
	}()

	p, _ := s.registry.Lookup(personaKey)
	upstream, chatErr := s.provider.Chat(ctx, history, p)

	assistant := models.ChatMessage{
		ID:        uuid.New().String(),
		Role:      models.ChatRoleAssistant,
		Timestamp: time.Now().UTC(),
	}
	if chatErr != nil {
		s.logger.Warn("chat_provider_failed",
			zap.String("session_id", sessionID),
			zap.String("persona", string(p.Key)),
			zap.Error(chatErr))
		assistant.Content = fallbackApology(p)
		assistant.Suggestions = s.registry.Suggestions(p.Key)
		fallback = true
	} else {
		assistant.Content = upstream.Message
		assistant.Suggestions = upstream.Suggestions
	}

	session.mu.Lock()
	session.Messages = append(session.Messages, assistant)
	session.LastActivity = time.Now()
	session.mu.Unlock()

	return assistant, fallback, nil
}

// CloseSession drops a chat session and its history
func (s *ChatService) CloseSession(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}

func fallbackApology(p models.Persona) string {
	return fmt.Sprintf(
		"Sorry %s, I'm having trouble reaching my brain right now. "+
			"Give me a moment and try again. In the meantime, here are a few things we could work on for %s.",
		firstName(p.DisplayName), p.BusinessName)
}

func firstName(displayName string) string {
	for i, r := range displayName {
		if r == ' ' {
			return displayName[:i]
		}
	}
	return displayName
}
