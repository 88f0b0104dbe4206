package database

import (
	"context"

	"github.com/mavropro/mavro-api/internal/models"
)

// FeedbackRepositoryInterface defines the feedback repository operations.
// This interface enables better testability by allowing mock implementations
type FeedbackRepositoryInterface interface {
	NextFeedbackID() string
	NextRatingID() string
	CreateFeedback(ctx context.Context, f *models.Feedback) error
	CreateRating(ctx context.Context, u *models.UserRating) error
	GetFeedback(ctx context.Context, id string) (*models.Feedback, error)
	Resolve(ctx context.Context, id string) (bool, error)
	Analytics(ctx context.Context) (*models.FeedbackAnalytics, error)
}

// SettingsRepositoryInterface defines the settings repository operations.
// Set writes the stored timestamps back into s.
type SettingsRepositoryInterface interface {
	Get(ctx context.Context, sessionID string, key models.SettingKey) (*models.Setting, error)
	Set(ctx context.Context, s *models.Setting) error
	List(ctx context.Context, sessionID string) ([]*models.Setting, error)
	Delete(ctx context.Context, sessionID string, key models.SettingKey) (bool, error)
}

// Ensure concrete types implement the interfaces
var (
	_ FeedbackRepositoryInterface = (*FeedbackRepository)(nil)
	_ SettingsRepositoryInterface = (*SettingsRepository)(nil)
)
