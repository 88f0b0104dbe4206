package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/mavropro/mavro-api/internal/models"
)

// ErrNotFound is returned when no session exists for the given ID.
var ErrNotFound = errors.New("session not found")

// Store persists dashboard sessions in Redis as JSON with a sliding TTL.
// Writes are last-write-wins; each session has a single writer in practice
// (one browser tab).
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore creates a session store. ttl is the sliding idle timeout; every
// read or write pushes expiry out by ttl.
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

func sessionKey(id string) string {
	return "session:" + id
}

// newSession builds a fresh session in the initial state {plan, dashboard}
// with the default persona.
func newSession() *models.Session {
	now := time.Now().UTC()
	return &models.Session{
		ID:           uuid.New().String(),
		Persona:      models.DefaultPersona,
		Mode:         models.ModePlan,
		View:         models.ViewDashboard,
		DatasetEpoch: 1,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Create initializes and persists a fresh session.
func (s *Store) Create(ctx context.Context) (*models.Session, error) {
	sess := newSession()
	if err := s.save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Get loads a session and extends its TTL.
func (s *Store) Get(ctx context.Context, id string) (*models.Session, error) {
	data, err := s.client.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var sess models.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}

	// Sliding TTL: reading keeps the session alive.
	if err := s.client.Expire(ctx, sessionKey(id), s.ttl).Err(); err != nil {
		return nil, fmt.Errorf("failed to extend session ttl: %w", err)
	}
	return &sess, nil
}

// GetOrCreate loads the session with the given ID, or creates a fresh one if
// the ID is empty or unknown.
func (s *Store) GetOrCreate(ctx context.Context, id string) (*models.Session, error) {
	if id != "" {
		sess, err := s.Get(ctx, id)
		if err == nil {
			return sess, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
	}
	return s.Create(ctx)
}

// SetPersona switches the session's active persona. Switching regenerates the
// derived datasets, so the dataset epoch is bumped even when the persona is
// unchanged.
func (s *Store) SetPersona(ctx context.Context, id string, persona models.PersonaKey) (*models.Session, error) {
	sess, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	sess.Persona = persona
	sess.DatasetEpoch++
	sess.UpdatedAt = time.Now().UTC()
	if err := s.save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// SetMode sets the active mode. Transitions are unconditional.
func (s *Store) SetMode(ctx context.Context, id string, mode models.DashboardMode) (*models.Session, error) {
	sess, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	sess.Mode = mode
	sess.UpdatedAt = time.Now().UTC()
	if err := s.save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// SetView sets the active view. Transitions are unconditional.
func (s *Store) SetView(ctx context.Context, id string, view models.DashboardView) (*models.Session, error) {
	sess, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	sess.View = view
	sess.UpdatedAt = time.Now().UTC()
	if err := s.save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Delete removes a session. Missing sessions are not an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (s *Store) save(ctx context.Context, sess *models.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := s.client.Set(ctx, sessionKey(sess.ID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

// Ping checks Redis reachability for health checks.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
