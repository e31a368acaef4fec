// services/price_scheduler.go
package services

import (
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/victorkkoech/i-verse-hub/models"
	"github.com/victorkkoech/i-verse-hub/utils"
)

// StartPriceScheduler refreshes tokens.price_usd periodically from the
// configured price API. Without PRICE_API_URL the scheduler is skipped and
// prices stay at whatever was last written.
func (s *PortfolioService) StartPriceScheduler() {
	priceAPIURL := os.Getenv("PRICE_API_URL")
	if priceAPIURL == "" {
		log.Println("⚠️  PRICE_API_URL not set — token price refresh disabled")
		return
	}

	sched, _ := gocron.NewScheduler()
	sched.Start()

	// Every 5 minutes: refresh prices for every symbol currently held
	_, _ = sched.NewJob(
		gocron.DurationJob(5*time.Minute),
		gocron.NewTask(func() {
			var symbols []string
			if err := s.DB.Model(&models.Token{}).
				Distinct("symbol").Pluck("symbol", &symbols).Error; err != nil {
				log.Printf("[PriceRefresh] DB error: %v", err)
				return
			}
			if len(symbols) == 0 {
				return
			}

			prices, err := fetchPrices(priceAPIURL, symbols)
			if err != nil {
				log.Printf("[PriceRefresh] Fetch failed: %v", err)
				return
			}

			updated := 0
			for symbol, price := range prices {
				res := s.DB.Model(&models.Token{}).
					Where("symbol = ?", symbol).
					Updates(map[string]interface{}{
						"price_usd":    price,
						"last_updated": time.Now(),
					})
				if res.Error != nil {
					log.Printf("[PriceRefresh] Failed to update %s: %v", symbol, res.Error)
					continue
				}
				updated += int(res.RowsAffected)
			}
			log.Printf("✅ [PriceRefresh] Updated %d token row(s) across %d symbol(s)", updated, len(prices))
		}),
	)
}

// fetchPrices calls the price API with a comma-separated symbol list and
// expects a symbol→USD map back.
func fetchPrices(baseURL string, symbols []string) (map[string]float64, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse price API URL: %w", err)
	}
	q := u.Query()
	q.Set("symbols", strings.Join(symbols, ","))
	u.RawQuery = q.Encode()

	resp, err := utils.HTTPClient.Get(u.String())
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("price API returned status %d", resp.StatusCode)
	}

	var prices map[string]float64
	if err := json.NewDecoder(resp.Body).Decode(&prices); err != nil {
		return nil, err
	}
	return prices, nil
}
