package models

// GameSession records one play. Immutable once IsCompleted is set.
// SessionID is allocated from the platform-wide counter, so ids are
// strictly increasing starting at 1 — no UUIDs here on purpose, the
// ledger wants a dense sequence.
type GameSession struct {
	SessionID uint64 `gorm:"primaryKey;autoIncrement:false" json:"session_id"`
	PlayerID  string `gorm:"index;not null" json:"player_id"` // Player.ExternalUserID

	// Unix seconds; EndTime - StartTime equals the reported duration.
	StartTime int64 `json:"start_time"`
	EndTime   int64 `json:"end_time"`

	Score        int64  `json:"score"`
	IsWin        bool   `json:"is_win"`
	TokensEarned uint64 `json:"tokens_earned"`
	IsCompleted  bool   `json:"is_completed" gorm:"default:false"`

	Timestamps
}
