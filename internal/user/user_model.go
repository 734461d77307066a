package user

import (
	"time"

	"gorm.io/gorm"
)

// User is an account that owns or administers teams.
type User struct {
	gorm.Model
	Name     string `json:"name" gorm:"not null"`
	Email    string `json:"email" gorm:"uniqueIndex;not null"`
	Phone    string `json:"phone"`
	Password string `json:"-" gorm:"not null"`
	IsAdmin  bool   `json:"is_admin" gorm:"default:false"`
}

// RefreshToken stores an issued refresh token until rotation or expiry.
type RefreshToken struct {
	gorm.Model
	UserID    uint      `json:"user_id" gorm:"index"`
	Token     string    `json:"-" gorm:"uniqueIndex"`
	ExpiresAt time.Time `json:"expires_at"`
	Revoked   bool      `json:"revoked" gorm:"default:false"`
}
