package models

import "time"

// Event type names published by the core. Every successful mutating
// operation emits at least one of these; failed operations emit nothing.
const (
	EventPlayerRegistered     = "economy.player_registered"
	EventGameSessionStarted   = "economy.game_session_started"
	EventGameSessionCompleted = "economy.game_session_completed"
	EventTokensEarned         = "economy.tokens_earned"
	EventTokensSpent          = "economy.tokens_spent"
	EventTournamentCreated    = "economy.tournament_created"
	EventTournamentJoined     = "economy.tournament_joined"
	EventTournamentCompleted  = "economy.tournament_completed"
	EventDailyResetOccurred   = "economy.daily_reset_occurred"
)

// PlatformEvent is the persisted notification log row, written by the
// event worker and streamed to SSE clients.
type PlatformEvent struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	Type      string    `gorm:"index;not null" json:"type"`
	PlayerID  string    `gorm:"index" json:"player_id,omitempty"`
	Payload   string    `gorm:"type:text" json:"payload"` // JSON-encoded event fields
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime;index"`
}
