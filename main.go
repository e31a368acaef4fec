package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/victorkkoech/i-verse-hub/handlers"
	"github.com/victorkkoech/i-verse-hub/models"
	"github.com/victorkkoech/i-verse-hub/services"
	"github.com/victorkkoech/i-verse-hub/utils"
	"github.com/victorkkoech/i-verse-hub/workers"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	app := fiber.New()

	// The SPA can be served from anywhere, so CORS stays permissive.
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Client-Info, Apikey",
	}))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.Wallet{},
		&models.Token{},
		&models.Transaction{},
		&models.AIInsight{},
		&models.Profile{},
		&models.Achievement{},
		&models.Game{},
		&models.GameSession{},
		&models.UserRole{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	if err := utils.InitAssetStore(); err != nil {
		log.Fatal("failed to initialize asset store:", err)
	}

	authURL := os.Getenv("SUPABASE_URL")
	if authURL == "" {
		log.Fatal("SUPABASE_URL environment variable not set")
	}
	anonKey := os.Getenv("SUPABASE_ANON_KEY")
	if anonKey == "" {
		log.Fatal("SUPABASE_ANON_KEY environment variable not set")
	}
	authClient := services.NewAuthClient(authURL, anonKey)

	aiURL := os.Getenv("AI_GATEWAY_URL")
	if aiURL == "" {
		aiURL = "https://ai.gateway.lovable.dev"
	}
	aiClient, err := services.NewAIClient(aiURL, os.Getenv("AI_GATEWAY_API_KEY"))
	if err != nil {
		log.Fatal("failed to initialize AI client:", err)
	}

	walletService := services.NewWalletService(db)
	transferService := services.NewTransferService(db)
	insightService := services.NewInsightService(db, aiClient)
	portfolioService := services.NewPortfolioService(db)
	gameService := services.NewGameService(db)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// profile mirror from the auth backend, needed for leaderboards
	serviceKey := os.Getenv("SUPABASE_SERVICE_KEY")
	if serviceKey != "" {
		profileSync := workers.NewProfileSyncWorker(db, authClient, serviceKey)
		go profileSync.Run(ctx, 60*time.Second)
	} else {
		log.Println("⚠️  SUPABASE_SERVICE_KEY not set — profile sync disabled")
	}

	portfolioService.StartPriceScheduler()

	handlers.SetupWalletRoutes(app, walletService, transferService, authClient)
	handlers.SetupInsightRoutes(app, insightService, portfolioService, authClient)
	handlers.SetupGameRoutes(app, gameService, authClient)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("✅ Server running on http://localhost:%s", port)

	<-ctx.Done()
	log.Println("Shutting down server...")
	_ = app.Shutdown()
}
