package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/mavropro/mavro-api/internal/models"
)

// FeedbackRepository handles feedback and rating persistence.
type FeedbackRepository struct {
	db  *DB
	seq atomic.Int64
}

// NewFeedbackRepository creates a new feedback repository.
func NewFeedbackRepository(db *DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

// NextFeedbackID generates a feedback ID in the FB-<unix>-<seq> form.
func (r *FeedbackRepository) NextFeedbackID() string {
	return fmt.Sprintf("FB-%d-%d", time.Now().Unix(), r.seq.Add(1))
}

// NextRatingID generates a rating ID in the UF-<unix>-<seq> form.
func (r *FeedbackRepository) NextRatingID() string {
	return fmt.Sprintf("UF-%d-%d", time.Now().Unix(), r.seq.Add(1))
}

// CreateFeedback persists a validated feedback submission. The caller must
// have validated the record; this layer only stores it.
func (r *FeedbackRepository) CreateFeedback(ctx context.Context, f *models.Feedback) error {
	var browserInfo []byte
	if f.BrowserInfo != nil {
		var err error
		browserInfo, err = json.Marshal(f.BrowserInfo)
		if err != nil {
			return fmt.Errorf("encode browser info: %w", err)
		}
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO feedback (id, type, title, description, severity, category, steps,
			expected_behavior, actual_behavior, browser_info, session_id, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`, f.ID, f.Type, f.Title, f.Description, nullString(string(f.Severity)), nullString(f.Category),
		nullString(f.Steps), nullString(f.ExpectedBehavior), nullString(f.ActualBehavior),
		browserInfo, nullString(f.SessionID), f.Status, f.CreatedAt)
	if err != nil {
		return fmt.Errorf("create feedback: %w", err)
	}
	return nil
}

// CreateRating persists a satisfaction rating.
func (r *FeedbackRepository) CreateRating(ctx context.Context, u *models.UserRating) error {
	features, err := json.Marshal(u.Features)
	if err != nil {
		return fmt.Errorf("encode features: %w", err)
	}
	improvements, err := json.Marshal(u.Improvements)
	if err != nil {
		return fmt.Errorf("encode improvements: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO user_ratings (id, rating, comment, features, improvements, would_recommend, session_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, u.ID, u.Rating, nullString(u.Comment), features, improvements, u.WouldRecommend, nullString(u.SessionID), u.CreatedAt)
	if err != nil {
		return fmt.Errorf("create rating: %w", err)
	}
	return nil
}

// GetFeedback loads one feedback item by ID.
func (r *FeedbackRepository) GetFeedback(ctx context.Context, id string) (*models.Feedback, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, type, title, description, severity, category, steps,
			expected_behavior, actual_behavior, browser_info, session_id, status, created_at
		FROM feedback WHERE id = $1
	`, id)
	f, err := scanFeedback(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get feedback: %w", err)
	}
	return f, nil
}

// Resolve marks a feedback item resolved. Returns false when the ID is unknown.
func (r *FeedbackRepository) Resolve(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE feedback SET status = $1 WHERE id = $2
	`, models.FeedbackStatusResolved, id)
	if err != nil {
		return false, fmt.Errorf("resolve feedback: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("resolve feedback: %w", err)
	}
	return n > 0, nil
}

// Analytics aggregates totals by type and severity, the average rating, and
// the 10 most recent submissions.
func (r *FeedbackRepository) Analytics(ctx context.Context) (*models.FeedbackAnalytics, error) {
	a := &models.FeedbackAnalytics{
		FeedbackByType:     make(map[string]int),
		FeedbackBySeverity: make(map[string]int),
		RecentFeedback:     []*models.Feedback{},
	}

	rows, err := r.db.QueryContext(ctx, `SELECT type, COUNT(*) FROM feedback GROUP BY type`)
	if err != nil {
		return nil, fmt.Errorf("feedback by type: %w", err)
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var typ string
		var count int
		if err := rows.Scan(&typ, &count); err != nil {
			return nil, fmt.Errorf("feedback by type: %w", err)
		}
		a.FeedbackByType[typ] = count
		a.TotalFeedback += count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("feedback by type: %w", err)
	}

	sevRows, err := r.db.QueryContext(ctx, `
		SELECT severity, COUNT(*) FROM feedback WHERE severity IS NOT NULL GROUP BY severity
	`)
	if err != nil {
		return nil, fmt.Errorf("feedback by severity: %w", err)
	}
	defer func() { _ = sevRows.Close() }()
	for sevRows.Next() {
		var sev string
		var count int
		if err := sevRows.Scan(&sev, &count); err != nil {
			return nil, fmt.Errorf("feedback by severity: %w", err)
		}
		a.FeedbackBySeverity[sev] = count
	}
	if err := sevRows.Err(); err != nil {
		return nil, fmt.Errorf("feedback by severity: %w", err)
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT COALESCE(AVG(rating), 0), COUNT(*) FROM user_ratings
	`)
	if err := row.Scan(&a.AverageRating, &a.TotalRatings); err != nil {
		return nil, fmt.Errorf("rating average: %w", err)
	}

	recent, err := r.listRecent(ctx, 10)
	if err != nil {
		return nil, err
	}
	a.RecentFeedback = recent
	return a, nil
}

func (r *FeedbackRepository) listRecent(ctx context.Context, limit int) ([]*models.Feedback, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, type, title, description, severity, category, steps,
			expected_behavior, actual_behavior, browser_info, session_id, status, created_at
		FROM feedback ORDER BY created_at DESC LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent feedback: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := []*models.Feedback{}
	for rows.Next() {
		f, err := scanFeedback(rows)
		if err != nil {
			return nil, fmt.Errorf("list recent feedback: %w", err)
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list recent feedback: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFeedback(row rowScanner) (*models.Feedback, error) {
	f := &models.Feedback{}
	var severity, category, steps, expected, actual, sessionID sql.NullString
	var browserInfo []byte
	if err := row.Scan(&f.ID, &f.Type, &f.Title, &f.Description, &severity, &category,
		&steps, &expected, &actual, &browserInfo, &sessionID, &f.Status, &f.CreatedAt); err != nil {
		return nil, err
	}
	f.Severity = models.FeedbackSeverity(severity.String)
	f.Category = category.String
	f.Steps = steps.String
	f.ExpectedBehavior = expected.String
	f.ActualBehavior = actual.String
	f.SessionID = sessionID.String
	if len(browserInfo) > 0 {
		var bi models.BrowserInfo
		if err := json.Unmarshal(browserInfo, &bi); err == nil {
			f.BrowserInfo = &bi
		}
	}
	return f, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
