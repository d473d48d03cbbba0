package models

import "time"

// TokenDirection indicates whether a transaction mints or burns tokens
type TokenDirection string

const (
	TokenDirectionCredit TokenDirection = "credit"
	TokenDirectionDebit  TokenDirection = "debit"
)

// TokenTransaction is the audit row written by every balance mutation.
// Balances live on the Player row; this table is the trail.
type TokenTransaction struct {
	ID        string         `gorm:"primaryKey;type:uuid" json:"id"`
	PlayerID  string         `gorm:"index;not null" json:"player_id"` // Player.ExternalUserID
	Amount    uint64         `json:"amount"`
	Direction TokenDirection `gorm:"type:varchar(8);not null" json:"direction"`
	Reason    string         `json:"reason"` // e.g., "Welcome Bonus", "Game Reward", "Purchase: sword"
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime;index"`
}
