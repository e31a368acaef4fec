// models/insight.go
package models

import "time"

const (
	RecommendationBullish = "bullish"
	RecommendationBearish = "bearish"
	RecommendationNeutral = "neutral"
)

// PortfolioSymbol is the token_symbol used for portfolio-wide analyses.
const PortfolioSymbol = "PORTFOLIO"

// AIInsight is an append-only stored analysis produced by the AI gateway.
type AIInsight struct {
	ID              string    `json:"id" gorm:"primaryKey;type:uuid"`
	UserID          string    `json:"user_id" gorm:"type:uuid;not null;index"`
	TokenSymbol     string    `json:"token_symbol" gorm:"type:varchar(32);not null"`
	Analysis        string    `json:"analysis" gorm:"type:text;not null"`
	Recommendation  string    `json:"recommendation" gorm:"type:varchar(16)"`
	ConfidenceScore float64   `json:"confidence_score"`
	CreatedAt       time.Time `json:"created_at"`
}
