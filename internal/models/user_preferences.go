package models

import "time"

// UserPreferences holds one row of defaults per user, created together with
// the account.
type UserPreferences struct {
	ID                   uint      `json:"id" gorm:"primaryKey"`
	UserID               uint      `json:"user_id" gorm:"uniqueIndex"`
	DefaultTimeRange     string    `json:"default_time_range"`   // daily | weekly | monthly
	DefaultFortuneType   string    `json:"default_fortune_type"` // general | love | career | wealth | health
	NotificationsEnabled bool      `json:"notifications_enabled"`
	Theme                string    `json:"theme"` // light | dark
	UpdatedAt            time.Time `json:"updated_at"`
}

// DefaultPreferences returns the row written at account creation.
func DefaultPreferences(userID uint) *UserPreferences {
	return &UserPreferences{
		UserID:               userID,
		DefaultTimeRange:     "daily",
		DefaultFortuneType:   "general",
		NotificationsEnabled: true,
		Theme:                "light",
	}
}

type UpdatePreferencesRequest struct {
	DefaultTimeRange     *string `json:"defaultTimeRange" validate:"omitempty,oneof=daily weekly monthly"`
	DefaultFortuneType   *string `json:"defaultFortuneType" validate:"omitempty,oneof=general love career wealth health"`
	NotificationsEnabled *bool   `json:"notificationsEnabled"`
	Theme                *string `json:"theme" validate:"omitempty,oneof=light dark"`
}
