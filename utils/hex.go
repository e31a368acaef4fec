// utils/hex.go
package utils

import (
	"math/rand"
	"strings"

	"github.com/victorkkoech/i-verse-hub/models"
)

const hexDigits = "0123456789abcdef"

// RandomHex returns n pseudo-random lowercase hex characters. This is a
// display-only placeholder — NOT key material. Real custody would delegate to
// a key-management component instead of generating addresses here.
func RandomHex(n int) string {
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		b.WriteByte(hexDigits[rand.Intn(16)])
	}
	return b.String()
}

// GenerateAddress produces a simulated chain address: "T" + 33 hex chars for
// TRON, "0x" + 40 hex chars for every other chain (including unknown ones).
func GenerateAddress(chain string) string {
	hex := RandomHex(40)
	if chain == models.ChainTRON {
		return "T" + hex[:33]
	}
	return "0x" + hex
}

// GenerateTxHash produces a simulated transaction hash: "0x" + 64 hex chars.
func GenerateTxHash() string {
	return "0x" + RandomHex(64)
}
