package services

import (
	"errors"
	"fmt"

	"game-economy-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const maxUsernameBytes = 20

type PlayerService struct {
	DB       *gorm.DB
	Platform *PlatformService
}

func NewPlayerService(db *gorm.DB, platform *PlatformService) *PlayerService {
	return &PlayerService{DB: db, Platform: platform}
}

// Register creates the caller's player record and credits the welcome
// bonus. The username is immutable afterwards.
func (s *PlayerService) Register(callerID, username string) error {
	if callerID == "" {
		return models.ErrInvalidIdentity
	}
	if len(username) == 0 || len(username) > maxUsernameBytes {
		return fmt.Errorf("%w: username must be 1-%d bytes", models.ErrInvalidInput, maxUsernameBytes)
	}

	s.Platform.Lock()
	defer s.Platform.Unlock()

	var events []Event
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		state, err := loadState(tx)
		if err != nil {
			return err
		}
		if err := requirePlatformActive(state); err != nil {
			return err
		}

		var existing models.Player
		err = tx.Where("external_user_id = ?", callerID).First(&existing).Error
		if err == nil {
			return models.ErrAlreadyRegistered
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		player := models.Player{
			ID:             uuid.NewString(),
			ExternalUserID: callerID,
			Username:       username,
			IsRegistered:   true,
			IsActive:       true,
		}
		if err := tx.Create(&player).Error; err != nil {
			return err
		}
		if err := creditTokens(tx, state, &player, models.WelcomeBonus, "Welcome Bonus"); err != nil {
			return err
		}

		state.TotalPlayersRegistered++
		if err := tx.Save(state).Error; err != nil {
			return err
		}

		events = append(events,
			Event{
				Type:     models.EventPlayerRegistered,
				PlayerID: callerID,
				Data:     map[string]interface{}{"username": username},
			},
			Event{
				Type:     models.EventTokensEarned,
				PlayerID: callerID,
				Data:     map[string]interface{}{"amount": uint64(models.WelcomeBonus), "reason": "Welcome Bonus"},
			},
		)
		return nil
	})
	if err != nil {
		return err
	}
	s.Platform.Bus.Publish(events...)
	return nil
}

// SetActive pauses or resumes a player account. Owner-only. A missing
// record is a silent no-op: pausing an identity that never registered
// has nothing to flip (source behavior, kept).
func (s *PlayerService) SetActive(callerID, identity string, active bool) error {
	if identity == "" {
		return models.ErrInvalidIdentity
	}

	s.Platform.Lock()
	defer s.Platform.Unlock()

	return s.DB.Transaction(func(tx *gorm.DB) error {
		state, err := loadState(tx)
		if err != nil {
			return err
		}
		if err := requireOwner(state, callerID); err != nil {
			return err
		}

		var player models.Player
		if err := tx.Where("external_user_id = ?", identity).First(&player).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		player.IsActive = active
		return tx.Save(&player).Error
	})
}

// PlayerStats is the public read model for one player.
type PlayerStats struct {
	Username         string `json:"username"`
	TokenBalance     uint64 `json:"token_balance"`
	TotalGamesPlayed uint64 `json:"total_games_played"`
	TotalWins        uint64 `json:"total_wins"`
	CurrentWinStreak uint64 `json:"current_win_streak"`
	HighestWinStreak uint64 `json:"highest_win_streak"`
	IsActive         bool   `json:"is_active"`
}

func (s *PlayerService) GetPlayerStats(identity string) (*PlayerStats, error) {
	if identity == "" {
		return nil, models.ErrInvalidIdentity
	}
	var player models.Player
	if err := s.DB.Where("external_user_id = ?", identity).First(&player).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotRegistered
		}
		return nil, err
	}
	return &PlayerStats{
		Username:         player.Username,
		TokenBalance:     player.TokenBalance,
		TotalGamesPlayed: player.TotalGamesPlayed,
		TotalWins:        player.TotalWins,
		CurrentWinStreak: player.CurrentWinStreak,
		HighestWinStreak: player.HighestWinStreak,
		IsActive:         player.IsActive,
	}, nil
}
