package models

import "time"

// FortuneRecord is one generated fortune, owned by a user.
type FortuneRecord struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      uint      `json:"user_id" gorm:"index"`
	ZodiacSign  string    `json:"zodiac_sign"`
	TimeRange   string    `json:"time_range" gorm:"index"`   // daily | weekly | monthly
	FortuneType string    `json:"fortune_type" gorm:"index"` // general | love | career | wealth | health
	Content     string    `json:"content"`
	GeneratedAt time.Time `json:"generated_at" gorm:"index"`
	CreatedAt   time.Time `json:"created_at"`
}

type GenerateFortuneRequest struct {
	TimeRange   string `json:"timeRange" validate:"required,oneof=daily weekly monthly"`
	FortuneType string `json:"fortuneType" validate:"required,oneof=general love career wealth health"`
	BirthDate   string `json:"birthDate" validate:"omitempty,datetime=2006-01-02"`
	Name        string `json:"name" validate:"omitempty,max=50"`
}
