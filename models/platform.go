package models

// Economic defaults applied when the platform row is first created.
// All of them except WelcomeBonus are owner-tunable afterwards.
const (
	DefaultBaseRewardPerWin      = 100
	DefaultStreakBonusMultiplier = 10 // percent of base per streak step
	DefaultDailyPlayLimit        = 10
	DefaultMinimumGameDuration   = 60 // seconds

	// WelcomeBonus is the fixed token grant credited on registration.
	WelcomeBonus = 500
)

// PlatformStateID is the primary key of the singleton row.
const PlatformStateID = 1

// PlatformState is the singleton economy row. OwnerID is set on first
// boot and never changes; everything else is owner-gated runtime state.
type PlatformState struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	OwnerID string `gorm:"not null" json:"owner_id"`

	PlatformActive bool `json:"platform_active" gorm:"default:true"`

	// Tunable economic parameters.
	BaseRewardPerWin      uint64 `json:"base_reward_per_win"`
	StreakBonusMultiplier uint64 `json:"streak_bonus_multiplier"`
	DailyPlayLimit        uint64 `json:"daily_play_limit"`
	MinimumGameDuration   int64  `json:"minimum_game_duration"` // seconds

	// Running totals. TotalGameTokens counts tokens *issued*: credits
	// increment it, spends never decrement it.
	TotalGameTokens        uint64 `json:"total_game_tokens" gorm:"default:0"`
	TotalPlayersRegistered uint64 `json:"total_players_registered" gorm:"default:0"`
	GameSessionCounter     uint64 `json:"game_session_counter" gorm:"default:0"`
	TournamentCounter      uint64 `json:"tournament_counter" gorm:"default:0"`

	Timestamps
}
