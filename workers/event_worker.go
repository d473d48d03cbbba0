// workers/event_worker.go
package workers

import (
	"context"
	"encoding/json"
	"log"

	"game-economy-system/models"
	"game-economy-system/services"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RunEventWorker drains the event bus sink and persists each event as a
// PlatformEvent row. Persistence is deliberately outside the emitting
// transaction: a slow insert here never holds up gameplay.
func RunEventWorker(ctx context.Context, db *gorm.DB, bus *services.EventBus) {
	log.Println("✅ Event worker started")
	for {
		select {
		case <-ctx.Done():
			log.Println("⚠️ Event worker stopping")
			return
		case evt := <-bus.Sink():
			payload := ""
			if evt.Data != nil {
				raw, err := json.Marshal(evt.Data)
				if err != nil {
					log.Printf("⚠️ Event worker: cannot marshal payload for %s: %v", evt.Type, err)
				} else {
					payload = string(raw)
				}
			}

			row := models.PlatformEvent{
				ID:       uuid.NewString(),
				Type:     evt.Type,
				PlayerID: evt.PlayerID,
				Payload:  payload,
			}
			if err := db.Create(&row).Error; err != nil {
				log.Printf("⚠️ Event worker: failed to persist %s: %v", evt.Type, err)
			}
		}
	}
}
