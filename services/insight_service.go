// services/insight_service.go
package services

import (
	"fmt"
	"log"
	"math/rand"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/victorkkoech/i-verse-hub/models"
)

const analystSystemPrompt = "You are a crypto market analyst. Provide clear, concise insights."

type InsightService struct {
	DB *gorm.DB
	AI *AIClient
}

func NewInsightService(db *gorm.DB, ai *AIClient) *InsightService {
	return &InsightService{DB: db, AI: ai}
}

// ClassifyRecommendation derives a recommendation from the analysis text by
// substring search: "bullish" wins over "bearish", anything else is neutral.
func ClassifyRecommendation(analysis string) string {
	lower := strings.ToLower(analysis)
	if strings.Contains(lower, "bullish") {
		return models.RecommendationBullish
	}
	if strings.Contains(lower, "bearish") {
		return models.RecommendationBearish
	}
	return models.RecommendationNeutral
}

// confidenceScore is a placeholder in [0.7, 1.0), not a real model
// confidence value.
func confidenceScore() float64 {
	return 0.7 + rand.Float64()*0.3
}

func tokenPrompt(symbol string) string {
	return fmt.Sprintf(`Provide a brief analysis and recommendation for %s cryptocurrency. Include:
1. Current market sentiment
2. Key strengths and weaknesses
3. Short-term outlook (bullish/bearish/neutral)
4. One actionable recommendation
Keep it concise (3-4 sentences max).`, symbol)
}

// TokenInsight generates and persists an analysis for a single token symbol.
func (s *InsightService) TokenInsight(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	var input struct {
		TokenSymbol string `json:"tokenSymbol"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if input.TokenSymbol == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Token symbol is required"})
	}

	return s.generate(c, userID, input.TokenSymbol, tokenPrompt(input.TokenSymbol))
}

// PortfolioAnalysis generates an analysis across the caller's whole
// portfolio. The holdings summary goes into the prompt; the insight is stored
// under the PORTFOLIO symbol.
func (s *InsightService) PortfolioAnalysis(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	var wallets []models.Wallet
	if err := s.DB.Preload("Tokens").Where("user_id = ?", userID).Find(&wallets).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch wallets",
			"cause": err.Error(),
		})
	}

	var holdings []string
	for _, w := range wallets {
		for _, t := range w.Tokens {
			holdings = append(holdings, fmt.Sprintf("%s %s on %s (worth $%.2f)",
				t.Balance.String(), t.Symbol, w.Chain, t.Balance.InexactFloat64()*t.PriceUSD))
		}
	}
	summary := "no holdings yet"
	if len(holdings) > 0 {
		summary = strings.Join(holdings, ", ")
	}

	prompt := fmt.Sprintf(`Analyze this crypto portfolio: %s. Include:
1. Overall portfolio health and diversification
2. Key risks and opportunities
3. Short-term outlook (bullish/bearish/neutral)
4. One actionable recommendation
Keep it concise (3-4 sentences max).`, summary)

	return s.generate(c, userID, models.PortfolioSymbol, prompt)
}

func (s *InsightService) generate(c *fiber.Ctx, userID, tokenSymbol, prompt string) error {
	analysis, err := s.AI.Complete(analystSystemPrompt, prompt)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	recommendation := ClassifyRecommendation(analysis)
	confidence := confidenceScore()

	insight := models.AIInsight{
		ID:              uuid.NewString(),
		UserID:          userID,
		TokenSymbol:     tokenSymbol,
		Analysis:        analysis,
		Recommendation:  recommendation,
		ConfidenceScore: confidence,
	}
	// a failed insert loses history, not the response
	if err := s.DB.Create(&insight).Error; err != nil {
		log.Printf("⚠️  [INSIGHT] Failed to save insight for %s: %v", tokenSymbol, err)
	}

	log.Printf("✅ [INSIGHT] Generated for %s (%s)", tokenSymbol, recommendation)
	return c.JSON(fiber.Map{
		"analysis":         analysis,
		"recommendation":   recommendation,
		"confidence_score": confidence,
	})
}

// GetInsights returns the caller's stored insights, newest first.
func (s *InsightService) GetInsights(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	if limit < 1 || limit > 100 {
		limit = 10
	}

	var insights []models.AIInsight
	if err := s.DB.Where("user_id = ?", userID).
		Order("created_at DESC").Limit(limit).Find(&insights).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch insights",
			"cause": err.Error(),
		})
	}

	return c.JSON(fiber.Map{"insights": insights})
}
