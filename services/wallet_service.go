// services/wallet_service.go
package services

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/victorkkoech/i-verse-hub/models"
	"github.com/victorkkoech/i-verse-hub/utils"
)

type WalletService struct {
	DB *gorm.DB
}

func NewWalletService(db *gorm.DB) *WalletService {
	return &WalletService{DB: db}
}

// CreateWallet provisions a chain-scoped wallet for the caller. Calling it
// again for the same chain returns the existing wallet — the (user_id, chain)
// unique index makes the operation idempotent even under concurrent calls.
func (s *WalletService) CreateWallet(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	var input struct {
		Chain string `json:"chain"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	var existing models.Wallet
	err := s.DB.Where("user_id = ? AND chain = ?", userID, input.Chain).First(&existing).Error
	if err == nil {
		return c.JSON(fiber.Map{"wallet": existing})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "DB error checking wallet",
			"cause": err.Error(),
		})
	}

	wallet, err := s.Provision(userID, input.Chain)
	if err != nil {
		log.Printf("❌ [WALLET] Failed to provision %s wallet for %s: %v", input.Chain, userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create wallet",
			"cause": err.Error(),
		})
	}

	log.Printf("✅ [WALLET] Wallet created: %s (%s)", wallet.ID, wallet.Chain)
	return c.JSON(fiber.Map{"wallet": wallet})
}

// Provision inserts the wallet row plus the chain's default token. A losing
// racer hits the unique index (zero rows affected) and returns the winner's
// row instead of creating a duplicate.
func (s *WalletService) Provision(userID, chain string) (*models.Wallet, error) {
	wallet := &models.Wallet{
		ID:      uuid.NewString(),
		UserID:  userID,
		Chain:   chain,
		Address: utils.GenerateAddress(chain),
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		// first wallet the user ever gets is primary
		var count int64
		if err := tx.Model(&models.Wallet{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
			return err
		}
		wallet.IsPrimary = count == 0

		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "chain"}},
			DoNothing: true,
		}).Create(wallet)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// lost a provisioning race — the winner already created the
			// wallet and its default token
			return tx.Where("user_id = ? AND chain = ?", userID, chain).First(wallet).Error
		}

		if def, ok := models.DefaultTokens[chain]; ok {
			token := models.Token{
				ID:       uuid.NewString(),
				WalletID: wallet.ID,
				Symbol:   def.Symbol,
				Name:     def.Name,
				Decimals: def.Decimals,
				Balance:  decimal.Zero,
			}
			if err := tx.Create(&token).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return wallet, nil
}

// GetWallets returns the caller's wallets with their tokens.
func (s *WalletService) GetWallets(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	var wallets []models.Wallet
	if err := s.DB.Preload("Tokens").Where("user_id = ?", userID).
		Order("created_at ASC").Find(&wallets).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch wallets",
			"cause": err.Error(),
		})
	}

	return c.JSON(fiber.Map{"wallets": wallets})
}
