package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mavropro/mavro-api/internal/models"
)

// SettingsRepository handles the per-session versioned settings store.
// Key validation happens at the handler layer; this layer stores blobs.
type SettingsRepository struct {
	db *DB
}

// NewSettingsRepository creates a new settings repository.
func NewSettingsRepository(db *DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Get loads one setting. Returns nil when the key is unset.
func (r *SettingsRepository) Get(ctx context.Context, sessionID string, key models.SettingKey) (*models.Setting, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT session_id, key, schema_version, value, created_at, updated_at
		FROM settings WHERE session_id = $1 AND key = $2
	`, sessionID, key)
	s := &models.Setting{}
	err := row.Scan(&s.SessionID, &s.Key, &s.SchemaVersion, &s.Value, &s.CreatedAt, &s.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get setting: %w", err)
	}
	return s, nil
}

// Set upserts one setting blob. The stored timestamps are written back into
// s: created_at keeps the original row's value on update.
func (r *SettingsRepository) Set(ctx context.Context, s *models.Setting) error {
	now := time.Now()
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO settings (session_id, key, schema_version, value, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (session_id, key) DO UPDATE SET
			schema_version = EXCLUDED.schema_version,
			value = EXCLUDED.value,
			updated_at = EXCLUDED.updated_at
		RETURNING created_at, updated_at
	`, s.SessionID, s.Key, s.SchemaVersion, []byte(s.Value), now, now)
	if err := row.Scan(&s.CreatedAt, &s.UpdatedAt); err != nil {
		return fmt.Errorf("set setting: %w", err)
	}
	return nil
}

// List returns all settings stored for a session.
func (r *SettingsRepository) List(ctx context.Context, sessionID string) ([]*models.Setting, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT session_id, key, schema_version, value, created_at, updated_at
		FROM settings WHERE session_id = $1 ORDER BY key
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := []*models.Setting{}
	for rows.Next() {
		s := &models.Setting{}
		if err := rows.Scan(&s.SessionID, &s.Key, &s.SchemaVersion, &s.Value, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("list settings: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	return out, nil
}

// Delete removes one setting. Returns false when the key was unset.
func (r *SettingsRepository) Delete(ctx context.Context, sessionID string, key models.SettingKey) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM settings WHERE session_id = $1 AND key = $2
	`, sessionID, key)
	if err != nil {
		return false, fmt.Errorf("delete setting: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete setting: %w", err)
	}
	return n > 0, nil
}
