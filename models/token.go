// models/token.go
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Token is a balance of one currency unit owned by exactly one wallet.
// Balance is the only mutable column after creation and is only ever changed
// through the transfer executor's conditional debit.
type Token struct {
	ID              string          `json:"id" gorm:"primaryKey;type:uuid"`
	WalletID        string          `json:"wallet_id" gorm:"type:uuid;not null;index"`
	Symbol          string          `json:"symbol" gorm:"type:varchar(32);not null"`
	Name            string          `json:"name" gorm:"type:varchar(128);not null"`
	Decimals        int             `json:"decimals"`
	Balance         decimal.Decimal `json:"balance" gorm:"type:decimal(38,18);not null;default:0"`
	PriceUSD        float64         `json:"price_usd"`
	ContractAddress string          `json:"contract_address" gorm:"type:varchar(128)"`
	LogoURL         string          `json:"logo_url"`
	LastUpdated     time.Time       `json:"last_updated" gorm:"autoUpdateTime"`
}
