// services/scheduler.go
package services

import (
	"log"
	"time"

	"game-economy-system/models"

	"github.com/go-co-op/gocron/v2"
)

// StartStatusScheduler flips tournaments from open to closed once their
// registration window has passed. The status column is informational
// (join always re-checks EndTime), but dashboards read it.
func (s *TournamentService) StartStatusScheduler() {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	// Every minute: close tournaments past their end time
	_, _ = sched.NewJob(
		gocron.DurationJob(1*time.Minute),
		gocron.NewTask(func() {
			now := time.Now().Unix()
			result := s.DB.Model(&models.Tournament{}).
				Where("status = ? AND end_time <= ? AND is_completed = ?", models.TournamentStatusOpen, now, false).
				Update("status", models.TournamentStatusClosed)
			if result.Error != nil {
				log.Printf("[Scheduler] DB error: %v", result.Error)
				return
			}
			if result.RowsAffected > 0 {
				log.Printf("✅ Closed registration on %d tournament(s)", result.RowsAffected)
			}
		}),
	)
}
