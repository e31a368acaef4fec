// handlers/insight_routes.go
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/victorkkoech/i-verse-hub/middleware"
	"github.com/victorkkoech/i-verse-hub/services"
)

func SetupInsightRoutes(app *fiber.App, insightService *services.InsightService, portfolioService *services.PortfolioService, auth *services.AuthClient) {
	secured := app.Group("/", middleware.UserContextMiddleware(auth))

	secured.Post("/insights/token", insightService.TokenInsight)
	secured.Post("/insights/portfolio", insightService.PortfolioAnalysis)
	secured.Get("/insights", insightService.GetInsights)

	secured.Get("/portfolio/summary", portfolioService.GetSummary)
}
