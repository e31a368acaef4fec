// models/profile.go
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Profile mirrors the user record from the auth backend plus accumulated
// click-to-earn earnings. Rows are upserted by the profile sync worker and
// credited by the game service.
type Profile struct {
	ID            string          `json:"id" gorm:"primaryKey;type:uuid"`
	UserID        string          `json:"user_id" gorm:"type:uuid;not null;uniqueIndex"`
	Username      string          `json:"username" gorm:"type:varchar(64)"`
	AvatarURL     string          `json:"avatar_url"`
	TotalEarnings decimal.Decimal `json:"total_earnings" gorm:"type:decimal(38,18);not null;default:0"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// Achievement is an append-only badge awarded to a user.
type Achievement struct {
	ID          string    `json:"id" gorm:"primaryKey;type:uuid"`
	UserID      string    `json:"user_id" gorm:"type:uuid;not null;index"`
	Title       string    `json:"title" gorm:"type:varchar(128);not null"`
	Description string    `json:"description"`
	BadgeURL    string    `json:"badge_url"`
	EarnedAt    time.Time `json:"earned_at" gorm:"autoCreateTime"`
}
