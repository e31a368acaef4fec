// services/game_service.go
package services

import (
	"errors"
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/victorkkoech/i-verse-hub/models"
	"github.com/victorkkoech/i-verse-hub/utils"
)

// firstSessionAchievementTitle is awarded on a user's first ever game session.
const firstSessionAchievementTitle = "First Steps"

type GameService struct {
	DB *gorm.DB
}

func NewGameService(db *gorm.DB) *GameService {
	return &GameService{DB: db}
}

// GetAllGames returns the active game catalog.
func (s *GameService) GetAllGames(c *fiber.Ctx) error {
	var games []models.Game
	if err := s.DB.Where("is_active = ?", true).Order("created_at DESC").Find(&games).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch games",
			"cause": err.Error(),
		})
	}
	return c.JSON(fiber.Map{"games": games})
}

func (s *GameService) GetGameByID(c *fiber.Ctx) error {
	var game models.Game
	if err := s.DB.First(&game, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Game not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch game",
			"cause": err.Error(),
		})
	}
	return c.JSON(game)
}

// CreateGame adds a game to the catalog. Admin only; thumbnail is an optional
// multipart file stored in the asset store.
func (s *GameService) CreateGame(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	isAdmin, err := HasRole(s.DB, userID, models.RoleAdmin)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to check role",
			"cause": err.Error(),
		})
	}
	if !isAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Admin role required"})
	}

	name := c.FormValue("name")
	if name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Game name is required"})
	}

	reward := decimal.Zero
	if v := c.FormValue("reward_per_action"); v != "" {
		reward, err = decimal.NewFromString(v)
		if err != nil || reward.IsNegative() {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "reward_per_action must be a non-negative number"})
		}
	}

	maxPlays := 10
	if v := c.FormValue("max_plays_per_day"); v != "" {
		maxPlays, err = strconv.Atoi(v)
		if err != nil || maxPlays < 1 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "max_plays_per_day must be a positive integer"})
		}
	}

	game := models.Game{
		ID:              uuid.NewString(),
		Name:            name,
		Description:     c.FormValue("description"),
		RewardPerAction: reward,
		MaxPlaysPerDay:  maxPlays,
		IsActive:        true,
	}

	if fileHeader, err := c.FormFile("thumbnail"); err == nil {
		key := utils.AssetKey("thumbnails", name, fileHeader.Filename)
		url, err := utils.UploadAsset(c.Context(), fileHeader, key)
		if err != nil {
			log.Printf("❌ [GAME] Thumbnail upload failed for %s: %v", name, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to upload thumbnail",
				"cause": err.Error(),
			})
		}
		game.ThumbnailURL = url
	}

	if err := s.DB.Create(&game).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create game",
			"cause": err.Error(),
		})
	}

	log.Printf("✅ [GAME] Created: %s (%s)", game.Name, game.ID)
	return c.Status(fiber.StatusCreated).JSON(game)
}

// RecordSession records one play of a game and credits the reward to the
// caller's profile. The per-day play cap is enforced against completed
// sessions since midnight UTC.
func (s *GameService) RecordSession(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	gameID := c.Params("id")

	var input struct {
		Score int64 `json:"score"`
	}
	if err := c.BodyParser(&input); err != nil && len(c.Body()) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	var game models.Game
	if err := s.DB.First(&game, "id = ?", gameID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Game not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch game",
			"cause": err.Error(),
		})
	}
	if !game.IsActive {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Game is not active"})
	}

	if _, err := EnsureProfile(s.DB, userID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to ensure profile",
			"cause": err.Error(),
		})
	}

	session := &models.GameSession{
		ID:           uuid.NewString(),
		GameID:       game.ID,
		UserID:       userID,
		Score:        input.Score,
		RewardEarned: game.RewardPerAction,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		startOfDay := time.Now().UTC().Truncate(24 * time.Hour)
		var playsToday int64
		if err := tx.Model(&models.GameSession{}).
			Where("game_id = ? AND user_id = ? AND completed_at >= ?", game.ID, userID, startOfDay).
			Count(&playsToday).Error; err != nil {
			return err
		}
		if playsToday >= int64(game.MaxPlaysPerDay) {
			return errDailyLimitReached
		}

		if err := tx.Create(session).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Profile{}).
			Where("user_id = ?", userID).
			Update("total_earnings", gorm.Expr("total_earnings + ?", game.RewardPerAction)).Error; err != nil {
			return err
		}

		// first ever session earns the starter achievement
		var sessionCount int64
		if err := tx.Model(&models.GameSession{}).Where("user_id = ?", userID).Count(&sessionCount).Error; err != nil {
			return err
		}
		if sessionCount == 1 {
			achievement := models.Achievement{
				ID:          uuid.NewString(),
				UserID:      userID,
				Title:       firstSessionAchievementTitle,
				Description: "Completed your first game session",
			}
			if err := tx.Create(&achievement).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, errDailyLimitReached) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Daily play limit reached"})
		}
		log.Printf("❌ [GAME] Failed to record session for %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to record session",
			"cause": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"session": session})
}

var errDailyLimitReached = errors.New("daily play limit reached")

// GetAchievements returns the caller's achievements, newest first.
func (s *GameService) GetAchievements(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	var achievements []models.Achievement
	if err := s.DB.Where("user_id = ?", userID).
		Order("earned_at DESC").Find(&achievements).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch achievements",
			"cause": err.Error(),
		})
	}

	return c.JSON(fiber.Map{"achievements": achievements})
}

// GetLeaderboard returns the top earners.
func (s *GameService) GetLeaderboard(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var profiles []models.Profile
	if err := s.DB.Order("total_earnings DESC").Limit(limit).Find(&profiles).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch leaderboard",
			"cause": err.Error(),
		})
	}

	return c.JSON(fiber.Map{"leaderboard": profiles})
}
