package models

import (
	"time"

	"gorm.io/gorm"
)

// Player is the per-identity economy record. One row per registered
// identity, created at registration and never deleted — pausing an
// account only flips IsActive.
type Player struct {
	ID             string `gorm:"primaryKey;type:uuid" json:"id"`
	ExternalUserID string `gorm:"uniqueIndex;not null" json:"external_user_id"` // caller identity from the gateway
	Username       string `gorm:"size:20;not null" json:"username"`             // immutable after registration

	TokenBalance     uint64 `json:"token_balance" gorm:"default:0"`
	TotalGamesPlayed uint64 `json:"total_games_played" gorm:"default:0"`
	TotalWins        uint64 `json:"total_wins" gorm:"default:0"`
	DailyGamesPlayed uint64 `json:"daily_games_played" gorm:"default:0"`

	// HighestWinStreak >= CurrentWinStreak always.
	CurrentWinStreak uint64 `json:"current_win_streak" gorm:"default:0"`
	HighestWinStreak uint64 `json:"highest_win_streak" gorm:"default:0"`

	// Unix seconds. Stays 0 until the first play, which makes the first
	// play always take the daily-reset branch.
	LastPlayTime int64 `json:"last_play_time" gorm:"default:0"`

	IsRegistered bool `json:"is_registered" gorm:"default:false"`
	IsActive     bool `json:"is_active" gorm:"default:true"`

	Timestamps
}

// Timestamps adds GORM auto-times
type Timestamps struct {
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}
