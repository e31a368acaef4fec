// models/game.go
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Game struct {
	ID              string          `json:"id" gorm:"primaryKey;type:uuid"`
	Name            string          `json:"name" gorm:"type:varchar(128);not null"`
	Description     string          `json:"description"`
	ThumbnailURL    string          `json:"thumbnail_url"`
	RewardPerAction decimal.Decimal `json:"reward_per_action" gorm:"type:decimal(38,18);not null;default:0"`
	MaxPlaysPerDay  int             `json:"max_plays_per_day" gorm:"default:10"`
	IsActive        bool            `json:"is_active" gorm:"default:true"`
	CreatedAt       time.Time       `json:"created_at"`
}

// GameSession records one completed play of a game and the reward it earned.
type GameSession struct {
	ID           string          `json:"id" gorm:"primaryKey;type:uuid"`
	GameID       string          `json:"game_id" gorm:"type:uuid;not null;index"`
	UserID       string          `json:"user_id" gorm:"type:uuid;not null;index"`
	Score        int64           `json:"score"`
	RewardEarned decimal.Decimal `json:"reward_earned" gorm:"type:decimal(38,18)"`
	CompletedAt  time.Time       `json:"completed_at" gorm:"autoCreateTime"`
}
