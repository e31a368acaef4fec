// services/portfolio_service.go
package services

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/victorkkoech/i-verse-hub/models"
)

type PortfolioService struct {
	DB *gorm.DB
}

func NewPortfolioService(db *gorm.DB) *PortfolioService {
	return &PortfolioService{DB: db}
}

// GetSummary aggregates the dashboard view: total USD value across all
// tokens, the ten most recent transactions and the latest stored insight.
func (s *PortfolioService) GetSummary(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	var wallets []models.Wallet
	if err := s.DB.Preload("Tokens").Where("user_id = ?", userID).Find(&wallets).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch wallets",
			"cause": err.Error(),
		})
	}

	totalValue := 0.0
	for _, w := range wallets {
		for _, t := range w.Tokens {
			totalValue += t.Balance.InexactFloat64() * t.PriceUSD
		}
	}

	var transactions []models.Transaction
	if err := s.DB.
		Joins("JOIN wallets ON wallets.id = transactions.wallet_id").
		Where("wallets.user_id = ?", userID).
		Order("transactions.created_at DESC").
		Limit(10).
		Find(&transactions).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch transactions",
			"cause": err.Error(),
		})
	}

	var latest *models.AIInsight
	var insight models.AIInsight
	err := s.DB.Where("user_id = ?", userID).Order("created_at DESC").First(&insight).Error
	if err == nil {
		latest = &insight
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch insights",
			"cause": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"total_value_usd":     totalValue,
		"wallets":             wallets,
		"recent_transactions": transactions,
		"latest_insight":      latest,
	})
}
