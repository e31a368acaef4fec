// workers/profile_sync_worker.go
package workers

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/victorkkoech/i-verse-hub/models"
	"github.com/victorkkoech/i-verse-hub/services"
)

// ProfileSyncWorker mirrors user records from the auth backend into the
// profiles table so leaderboards and portfolio views can join on them without
// a per-request auth API call.
type ProfileSyncWorker struct {
	DB         *gorm.DB
	Auth       *services.AuthClient
	ServiceKey string
	PageSize   int
}

func NewProfileSyncWorker(db *gorm.DB, auth *services.AuthClient, serviceKey string) *ProfileSyncWorker {
	return &ProfileSyncWorker{
		DB:         db,
		Auth:       auth,
		ServiceKey: serviceKey,
		PageSize:   100,
	}
}

// Run polls the auth admin API until the context is cancelled.
func (w *ProfileSyncWorker) Run(ctx context.Context, pollInterval time.Duration) {
	log.Println("Starting profile sync worker...")

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Profile sync worker stopped.")
			return
		case <-ticker.C:
			if err := w.syncOnce(); err != nil {
				log.Printf("❌ Profile sync failed: %v", err)
			}
		}
	}
}

func (w *ProfileSyncWorker) syncOnce() error {
	total := 0
	for page := 1; ; page++ {
		users, err := w.Auth.ListUsers(w.ServiceKey, page, w.PageSize)
		if err != nil {
			return err
		}
		if len(users) == 0 {
			break
		}

		profiles := make([]models.Profile, 0, len(users))
		for _, u := range users {
			profiles = append(profiles, models.Profile{
				ID:        uuid.NewString(),
				UserID:    u.ID,
				Username:  u.MetadataString("username"),
				AvatarURL: u.MetadataString("avatar_url"),
				CreatedAt: u.CreatedAt,
			})
		}

		// upsert keyed on user_id; earnings are owned by the game service
		// and must never be overwritten from here
		if err := w.DB.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"username", "avatar_url", "updated_at"}),
		}).Create(&profiles).Error; err != nil {
			return err
		}

		total += len(profiles)
		if len(users) < w.PageSize {
			break
		}
	}

	if total > 0 {
		log.Printf("✅ Synced %d profile(s) from auth service.", total)
	}
	return nil
}
