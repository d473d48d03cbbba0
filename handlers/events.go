// handlers/event_routes.go
package handlers

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"game-economy-system/middleware"
	"game-economy-system/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupEventRoutes exposes the persisted event feed over SSE. Clients
// get every economy event attributed to them (rewards, spends,
// tournament results) as it lands.
func SetupEventRoutes(app *fiber.App, db *gorm.DB) {
	secured := app.Group("/", middleware.UserContextMiddleware())

	secured.Get("/events/stream", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		// SSE headers
		c.Set("Content-Type", "text/event-stream")
		c.Set("Cache-Control", "no-cache")
		c.Set("Connection", "keep-alive")
		c.Set("X-Accel-Buffering", "no") // nginx

		c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
			ticker := time.NewTicker(2 * time.Second)
			defer ticker.Stop()

			var lastMaxCreatedAt time.Time

			// Initialize cursor so the stream only carries new events
			var latest models.PlatformEvent
			if err := db.
				Where("player_id = ?", userID).
				Order("created_at DESC").
				First(&latest).Error; err == nil {
				lastMaxCreatedAt = latest.CreatedAt
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				log.Printf("SSE init error for user %s: %v", userID, err)
			}

			// Initial keepalive (comment event)
			w.WriteString(":\n\n")
			w.Flush()

			for {
				select {
				case <-ticker.C:
					var fresh []models.PlatformEvent

					err := db.
						Where("player_id = ?", userID).
						Where("created_at > ?", lastMaxCreatedAt).
						Order("created_at ASC").
						Find(&fresh).Error
					if err != nil {
						log.Printf("SSE query error for user %s: %v", userID, err)
						continue
					}
					if len(fresh) == 0 {
						continue
					}

					lastMaxCreatedAt = fresh[len(fresh)-1].CreatedAt

					for _, evt := range fresh {
						payload, _ := json.Marshal(evt)
						fmt.Fprintf(w, "event: %s\ndata: %s\n\n", evt.Type, payload)
					}

					if err := w.Flush(); err != nil {
						// Client disconnected
						return
					}

				case <-c.Context().Done():
					return
				}
			}
		})

		return nil
	})
}
