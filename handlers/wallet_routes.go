// handlers/wallet_routes.go
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/victorkkoech/i-verse-hub/middleware"
	"github.com/victorkkoech/i-verse-hub/services"
)

func SetupWalletRoutes(app *fiber.App, walletService *services.WalletService, transferService *services.TransferService, auth *services.AuthClient) {
	// 🔐 everything here acts on the caller's own rows
	secured := app.Group("/", middleware.UserContextMiddleware(auth))

	secured.Post("/wallets", walletService.CreateWallet)
	secured.Get("/wallets", walletService.GetWallets)

	secured.Post("/transactions", transferService.SendTransaction)
	secured.Get("/transactions", transferService.GetTransactions)
}
