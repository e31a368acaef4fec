// services/transfer_service.go
package services

import (
	"errors"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/victorkkoech/i-verse-hub/models"
	"github.com/victorkkoech/i-verse-hub/utils"
)

// feeRate is the flat transfer fee: 0.1% of the amount.
var feeRate = decimal.NewFromFloat(0.001)

// ErrInsufficientBalance is returned when the conditional debit matches no
// row, i.e. the token cannot cover amount + fee.
var ErrInsufficientBalance = errors.New("insufficient balance")

type TransferService struct {
	DB *gorm.DB
}

func NewTransferService(db *gorm.DB) *TransferService {
	return &TransferService{DB: db}
}

// TransferFee returns the fee charged for sending the given amount.
func TransferFee(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(feeRate)
}

// SendTransaction debits amount + fee from the caller's token and appends an
// immutable transaction record.
func (s *TransferService) SendTransaction(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	var input struct {
		WalletID    string `json:"walletId"`
		ToAddress   string `json:"toAddress"`
		Amount      string `json:"amount"`
		TokenSymbol string `json:"tokenSymbol"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if input.WalletID == "" || input.ToAddress == "" || input.Amount == "" || input.TokenSymbol == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing required fields"})
	}

	amount, err := decimal.NewFromString(input.Amount)
	if err != nil || !amount.IsPositive() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Amount must be a positive number"})
	}

	// ownership check: wallet must belong to the caller
	var wallet models.Wallet
	if err := s.DB.Where("id = ? AND user_id = ?", input.WalletID, userID).First(&wallet).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Wallet not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "DB error fetching wallet",
			"cause": err.Error(),
		})
	}

	var token models.Token
	if err := s.DB.Where("wallet_id = ? AND symbol = ?", wallet.ID, input.TokenSymbol).First(&token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Token not found in wallet"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "DB error fetching token",
			"cause": err.Error(),
		})
	}

	transaction, err := s.Execute(&wallet, token.ID, input.ToAddress, input.TokenSymbol, amount)
	if err != nil {
		if errors.Is(err, ErrInsufficientBalance) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Insufficient balance"})
		}
		log.Printf("❌ [TRANSFER] Failed for wallet %s: %v", wallet.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create transaction",
			"cause": err.Error(),
		})
	}

	log.Printf("✅ [TRANSFER] Transaction created: %s (%s %s)", transaction.ID, amount.String(), input.TokenSymbol)
	return c.JSON(fiber.Map{"transaction": transaction})
}

// Execute performs the debit and the transaction insert atomically. The
// balance check and the write are a single conditional UPDATE — two
// concurrent transfers can never both pass a stale check, and a failed debit
// leaves no transaction row behind.
func (s *TransferService) Execute(wallet *models.Wallet, tokenID, toAddress, tokenSymbol string, amount decimal.Decimal) (*models.Transaction, error) {
	fee := TransferFee(amount)
	total := amount.Add(fee)

	transaction := &models.Transaction{
		ID:          uuid.NewString(),
		WalletID:    wallet.ID,
		Type:        models.TxTypeSend,
		FromAddress: wallet.Address,
		ToAddress:   toAddress,
		Amount:      amount,
		Fee:         fee,
		TokenSymbol: tokenSymbol,
		TxHash:      utils.GenerateTxHash(),
		Status:      models.TxStatusCompleted,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Token{}).
			Where("id = ? AND balance >= ?", tokenID, total).
			Update("balance", gorm.Expr("balance - ?", total))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInsufficientBalance
		}

		return tx.Create(transaction).Error
	})
	if err != nil {
		return nil, err
	}

	return transaction, nil
}

// GetTransactions returns the caller's transactions, newest first.
func (s *TransferService) GetTransactions(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	if limit < 1 || limit > 100 {
		limit = 10
	}

	var transactions []models.Transaction
	if err := s.DB.
		Joins("JOIN wallets ON wallets.id = transactions.wallet_id").
		Where("wallets.user_id = ?", userID).
		Order("transactions.created_at DESC").
		Limit(limit).
		Find(&transactions).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch transactions",
			"cause": err.Error(),
		})
	}

	return c.JSON(fiber.Map{"transactions": transactions})
}
