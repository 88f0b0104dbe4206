package models

import (
	"encoding/json"
	"time"
)

// SettingKey identifies one of the owned persisted settings blobs. The key set
// is closed; unknown keys are rejected at the handler layer.
type SettingKey string

const (
	SettingOnboardingData      SettingKey = "onboardingData"
	SettingViViProfile         SettingKey = "viviProfile"
	SettingUserProfilePhoto    SettingKey = "userProfilePhoto"
	SettingMavroSettings       SettingKey = "mavro-settings"
	SettingMenuOrder           SettingKey = "menuOrder"
	SettingMavroTheme          SettingKey = "mavro-theme"
	SettingTourCompleted       SettingKey = "mavro-tour-completed"
	SettingOnboardingCompleted SettingKey = "mavro-onboarding-completed"
	SettingDraftContent        SettingKey = "mavro-draft-content"
)

// KnownSettingKeys lists every key the settings store will accept.
var KnownSettingKeys = []SettingKey{
	SettingOnboardingData,
	SettingViViProfile,
	SettingUserProfilePhoto,
	SettingMavroSettings,
	SettingMenuOrder,
	SettingMavroTheme,
	SettingTourCompleted,
	SettingOnboardingCompleted,
	SettingDraftContent,
}

// IsKnownSettingKey reports whether key is in the closed key set.
func IsKnownSettingKey(key SettingKey) bool {
	for _, k := range KnownSettingKeys {
		if k == key {
			return true
		}
	}
	return false
}

// Setting is one versioned JSON blob owned by a session.
type Setting struct {
	SessionID     string          `json:"session_id"`
	Key           SettingKey      `json:"key"`
	SchemaVersion int             `json:"schema_version"`
	Value         json.RawMessage `json:"value"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
