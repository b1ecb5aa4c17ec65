package models

import (
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

type User struct {
	gorm.Model  `json:"-"`
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name"`
	Email       string `json:"email" gorm:"uniqueIndex"` // Ensure email is unique across all users
	Password    string `json:"-"`                        // Store hashed password, ignore for JSON serialization
	FirebaseUID string `json:"firebase_uid,omitempty"`   // Link to Firebase User UID
	BirthDate   string `json:"birth_date,omitempty"`     // YYYY-MM-DD
	BirthTime   string `json:"birth_time,omitempty"`     // HH:MM, prompt flavor only
	Avatar      string `json:"avatar,omitempty"`
	ZodiacSign  string `json:"zodiac_sign,omitempty"` // derived from BirthDate, one of the 12 keys
}

type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	Name      string `json:"name" validate:"required,min=1,max=50"`
	BirthDate string `json:"birthDate" validate:"omitempty,datetime=2006-01-02"`
	BirthTime string `json:"birthTime" validate:"omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest uses pointers for partial-update semantics: only
// fields present in the payload are touched.
type UpdateProfileRequest struct {
	Name      *string `json:"name" validate:"omitempty,min=1,max=50"`
	BirthDate *string `json:"birthDate"`
	BirthTime *string `json:"birthTime"`
	Avatar    *string `json:"avatar"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
