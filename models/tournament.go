package models

import (
	"time"
)

// Tournament status values. Informational only: the scheduler flips
// open → closed once the registration window passes, completion sets
// completed. Authoritative join/complete checks always use the
// timestamps and flags, never Status.
const (
	TournamentStatusOpen      = "open"
	TournamentStatusClosed    = "closed"
	TournamentStatusCompleted = "completed"
)

// Tournament is created by the platform owner and mutated by joins and
// completion. PrizePool accrues entry fees and is paid out in full to
// the winner.
type Tournament struct {
	TournamentID uint64 `gorm:"primaryKey;autoIncrement:false" json:"tournament_id"` // 1-based sequential
	Name         string `gorm:"not null" json:"name"`
	Slug         string `gorm:"index" json:"slug"`
	BannerURL    string `json:"banner_url,omitempty"`

	EntryFee  uint64 `json:"entry_fee" gorm:"default:0"`
	PrizePool uint64 `json:"prize_pool" gorm:"default:0"`

	// Unix seconds; joining is allowed while now < EndTime.
	StartTime int64 `json:"start_time"`
	EndTime   int64 `json:"end_time"`

	WinnerID    string `json:"winner_id,omitempty"` // empty until completion
	IsActive    bool   `json:"is_active" gorm:"default:true"`
	IsCompleted bool   `json:"is_completed" gorm:"default:false"`
	Status      string `json:"status" gorm:"default:'open'"`

	// Relationships
	Entries []TournamentEntry `json:"entries,omitempty" gorm:"foreignKey:TournamentID;references:TournamentID"`

	// Calculated fields (not stored in DB)
	ParticipantsCount int64 `json:"participants_count,omitempty" gorm:"-"`

	Timestamps
}

// TournamentEntry is the (tournament, player) membership set. The
// composite unique index enforces at-most-once joining; JoinedAt keeps
// the ordered participant sequence.
type TournamentEntry struct {
	ID           string    `gorm:"primaryKey;type:uuid" json:"id"`
	TournamentID uint64    `gorm:"not null;index;uniqueIndex:idx_tournament_player" json:"tournament_id"`
	PlayerID     string    `gorm:"not null;uniqueIndex:idx_tournament_player" json:"player_id"`
	JoinedAt     time.Time `json:"joined_at" gorm:"autoCreateTime"`
}
