// handlers/game_routes.go
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/victorkkoech/i-verse-hub/middleware"
	"github.com/victorkkoech/i-verse-hub/services"
)

func SetupGameRoutes(app *fiber.App, gameService *services.GameService, auth *services.AuthClient) {
	// 🔓 public catalog
	app.Get("/games", gameService.GetAllGames)
	app.Get("/games/:id", gameService.GetGameByID)
	app.Get("/leaderboard", gameService.GetLeaderboard)

	// 🔐 secured — require user context
	secured := app.Group("/", middleware.UserContextMiddleware(auth))

	secured.Post("/games", gameService.CreateGame) // admin only, checked in handler
	secured.Post("/games/:id/sessions", gameService.RecordSession)
	secured.Get("/achievements", gameService.GetAchievements)
}
