// models/transaction.go
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	TxTypeSend    = "send"
	TxTypeReceive = "receive"
	TxTypeSwap    = "swap"
)

// TxStatusCompleted is the only status ever written. The column exists for
// schema compatibility with clients that render it.
const TxStatusCompleted = "completed"

// Transaction is an append-only transfer record. Rows are created once and
// never mutated; they reference a token only by symbol.
type Transaction struct {
	ID          string          `json:"id" gorm:"primaryKey;type:uuid"`
	WalletID    string          `json:"wallet_id" gorm:"type:uuid;not null;index"`
	Type        string          `json:"type" gorm:"type:varchar(16);not null"`
	FromAddress string          `json:"from_address" gorm:"type:varchar(128)"`
	ToAddress   string          `json:"to_address" gorm:"type:varchar(128)"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:decimal(38,18);not null"`
	Fee         decimal.Decimal `json:"fee" gorm:"type:decimal(38,18)"`
	TokenSymbol string          `json:"token_symbol" gorm:"type:varchar(32);not null"`
	TxHash      string          `json:"tx_hash" gorm:"type:varchar(128)"`
	Status      string          `json:"status" gorm:"type:varchar(16)"`
	CreatedAt   time.Time       `json:"created_at"`
}
