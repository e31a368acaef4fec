// models/wallet.go
package models

import (
	"time"
)

const (
	ChainEthereum = "Ethereum"
	ChainBSC      = "BSC"
	ChainTRON     = "TRON"
)

// Wallet is a per-chain account record for a user. A user holds at most one
// wallet per chain, enforced by the composite unique index — a second
// provision call for the same (user, chain) must return the existing row.
type Wallet struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid"`
	UserID    string    `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_wallets_user_chain"`
	Chain     string    `json:"chain" gorm:"type:varchar(64);not null;uniqueIndex:idx_wallets_user_chain"`
	Address   string    `json:"address" gorm:"type:varchar(128);not null"`
	IsPrimary bool      `json:"is_primary"`
	CreatedAt time.Time `json:"created_at"`

	Tokens []Token `json:"tokens,omitempty" gorm:"foreignKey:WalletID"`
}

// DefaultTokenDef describes the native token created alongside a new wallet.
type DefaultTokenDef struct {
	Symbol   string
	Name     string
	Decimals int
}

// DefaultTokens maps a chain to its native token. Chains without an entry
// (e.g. a client sending "Polygon") still get a wallet, just no token row.
var DefaultTokens = map[string]DefaultTokenDef{
	ChainEthereum: {Symbol: "ETH", Name: "Ethereum", Decimals: 18},
	ChainBSC:      {Symbol: "BNB", Name: "Binance Coin", Decimals: 18},
	ChainTRON:     {Symbol: "TRX", Name: "TRON", Decimals: 6},
}
