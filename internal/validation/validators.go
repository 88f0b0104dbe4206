package validation

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/mavropro/mavro-api/internal/models"
)

var (
	// Validate is a shared validator instance
	Validate *validator.Validate
)

func init() {
	Validate = validator.New()

	// Register custom validators for enums
	// These should never fail in normal operation, but log if they do
	if err := Validate.RegisterValidation("feedback_type", validateFeedbackType); err != nil {
		panic(fmt.Sprintf("failed to register feedback_type validator: %v", err))
	}
	if err := Validate.RegisterValidation("feedback_severity", validateFeedbackSeverity); err != nil {
		panic(fmt.Sprintf("failed to register feedback_severity validator: %v", err))
	}
	if err := Validate.RegisterValidation("feedback_category", validateFeedbackCategory); err != nil {
		panic(fmt.Sprintf("failed to register feedback_category validator: %v", err))
	}
	if err := Validate.RegisterValidation("toast_severity", validateToastSeverity); err != nil {
		panic(fmt.Sprintf("failed to register toast_severity validator: %v", err))
	}
}

func validateFeedbackType(fl validator.FieldLevel) bool {
	switch models.FeedbackType(fl.Field().String()) {
	case models.FeedbackTypeBug, models.FeedbackTypeFeature, models.FeedbackTypeImprovement, models.FeedbackTypeGeneral:
		return true
	default:
		return false
	}
}

func validateFeedbackSeverity(fl validator.FieldLevel) bool {
	switch models.FeedbackSeverity(fl.Field().String()) {
	case models.FeedbackSeverityLow, models.FeedbackSeverityMedium, models.FeedbackSeverityHigh, models.FeedbackSeverityCritical:
		return true
	default:
		return false
	}
}

func validateFeedbackCategory(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "ui", "performance", "functionality", "data", "integration", "other":
		return true
	default:
		return false
	}
}

func validateToastSeverity(fl validator.FieldLevel) bool {
	switch models.ToastSeverity(fl.Field().String()) {
	case models.ToastSeverityInfo, models.ToastSeveritySuccess, models.ToastSeverityWarning, models.ToastSeverityError:
		return true
	default:
		return false
	}
}

// SanitizeText sanitizes text input by trimming whitespace and removing control characters
func SanitizeText(text string) string {
	// Trim whitespace
	text = strings.TrimSpace(text)

	// Remove control characters except newline and tab
	var sanitized strings.Builder
	for _, r := range text {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			continue
		}
		sanitized.WriteRune(r)
	}

	return sanitized.String()
}

// ValidateMode validates a DashboardMode string value
func ValidateMode(value string) error {
	switch models.DashboardMode(value) {
	case models.ModePlan, models.ModeTrack, models.ModeGrow, models.ModeLearn:
		return nil
	default:
		return fmt.Errorf("invalid mode: %s (must be 'plan', 'track', 'grow', or 'learn')", value)
	}
}

// ValidateView validates a DashboardView string value
func ValidateView(value string) error {
	switch models.DashboardView(value) {
	case models.ViewDashboard, models.ViewCampaigns, models.ViewReviews, models.ViewCRM,
		models.ViewFourSight, models.ViewSettings, models.ViewGeoSmart:
		return nil
	default:
		return fmt.Errorf("invalid view: %s", value)
	}
}

// ValidateContactStatus validates a ContactStatus string value
func ValidateContactStatus(value string) error {
	switch models.ContactStatus(value) {
	case models.ContactStatusLead, models.ContactStatusProspect, models.ContactStatusCustomer, models.ContactStatusInactive:
		return nil
	default:
		return fmt.Errorf("invalid status: %s (must be 'lead', 'prospect', 'customer', or 'inactive')", value)
	}
}

// ValidateCampaignStatus validates a CampaignStatus string value
func ValidateCampaignStatus(value string) error {
	switch models.CampaignStatus(value) {
	case models.CampaignStatusDraft, models.CampaignStatusActive, models.CampaignStatusPaused, models.CampaignStatusCompleted:
		return nil
	default:
		return fmt.Errorf("invalid status: %s (must be 'draft', 'active', 'paused', or 'completed')", value)
	}
}
