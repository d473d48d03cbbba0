package services

import (
	"fmt"
	"time"

	"game-economy-system/models"

	"gorm.io/gorm"
)

// dailyResetWindow is the rolling limit window, anchored at the
// player's last play time (not calendar midnight).
const dailyResetWindow = int64(24 * 60 * 60)

// GameService is the game-session ledger: it records sessions, applies
// the daily limit and duration checks, and pays out rewards.
type GameService struct {
	DB       *gorm.DB
	Platform *PlatformService
}

func NewGameService(db *gorm.DB, platform *PlatformService) *GameService {
	return &GameService{DB: db, Platform: platform}
}

// PlayGame records one completed game for the caller and returns the
// tokens earned. The whole transition — session row, player counters,
// streaks, balance, global totals — commits atomically or not at all.
func (s *GameService) PlayGame(callerID string, durationSec int64, score int64, isWin bool) (uint64, error) {
	s.Platform.Lock()
	defer s.Platform.Unlock()

	var tokensEarned uint64
	var events []Event
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		state, err := loadState(tx)
		if err != nil {
			return err
		}
		if err := requirePlatformActive(state); err != nil {
			return err
		}
		player, err := requireActivePlayer(tx, callerID)
		if err != nil {
			return err
		}
		if durationSec < state.MinimumGameDuration {
			return fmt.Errorf("%w: game duration below minimum (%ds)", models.ErrInvalidInput, state.MinimumGameDuration)
		}
		if score <= 0 {
			return fmt.Errorf("%w: score must be positive", models.ErrInvalidInput)
		}

		// One clock read per operation; the reset and the limit check
		// below must agree on "now".
		now := time.Now().Unix()

		// Rolling 24h window anchored at the previous play.
		// LastPlayTime starts at 0, so a player's first game always
		// lands here — that quirk is load-bearing and kept.
		if now > player.LastPlayTime+dailyResetWindow {
			player.DailyGamesPlayed = 0
			events = append(events, Event{Type: models.EventDailyResetOccurred, PlayerID: callerID})
		}
		if player.DailyGamesPlayed >= state.DailyPlayLimit {
			return models.ErrDailyLimitReached
		}

		// Pre-incremented counter: the first session ever is id 1.
		state.GameSessionCounter++
		session := models.GameSession{
			SessionID: state.GameSessionCounter,
			PlayerID:  callerID,
			StartTime: now - durationSec,
			EndTime:   now,
			Score:     score,
			IsWin:     isWin,
		}
		events = append(events, Event{
			Type:     models.EventGameSessionStarted,
			PlayerID: callerID,
			Data:     map[string]interface{}{"session_id": session.SessionID},
		})

		// The streak bonus uses the streak as it stood before this game.
		reward := ComputeReward(player.CurrentWinStreak, score, isWin, RewardParams{
			BaseRewardPerWin:      state.BaseRewardPerWin,
			StreakBonusMultiplier: state.StreakBonusMultiplier,
		})

		player.TotalGamesPlayed++
		player.DailyGamesPlayed++
		player.LastPlayTime = now
		if isWin {
			player.TotalWins++
			player.CurrentWinStreak++
			if player.CurrentWinStreak > player.HighestWinStreak {
				player.HighestWinStreak = player.CurrentWinStreak
			}
		} else {
			player.CurrentWinStreak = 0
		}

		if err := creditTokens(tx, state, player, reward, "Game Reward"); err != nil {
			return err
		}

		session.TokensEarned = reward
		session.IsCompleted = true
		if err := tx.Create(&session).Error; err != nil {
			return err
		}
		if err := tx.Save(state).Error; err != nil {
			return err
		}

		tokensEarned = reward
		events = append(events,
			Event{
				Type:     models.EventGameSessionCompleted,
				PlayerID: callerID,
				Data: map[string]interface{}{
					"session_id":    session.SessionID,
					"score":         score,
					"is_win":        isWin,
					"tokens_earned": reward,
				},
			},
			Event{
				Type:     models.EventTokensEarned,
				PlayerID: callerID,
				Data:     map[string]interface{}{"amount": reward, "reason": "Game Reward"},
			},
		)
		return nil
	})
	if err != nil {
		return 0, err
	}
	s.Platform.Bus.Publish(events...)
	return tokensEarned, nil
}

// GetPlayerGameHistory returns the player's session ids in play order.
func (s *GameService) GetPlayerGameHistory(identity string) ([]uint64, error) {
	if identity == "" {
		return nil, models.ErrInvalidIdentity
	}
	var count int64
	if err := s.DB.Model(&models.Player{}).Where("external_user_id = ?", identity).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, models.ErrNotRegistered
	}

	var ids []uint64
	err := s.DB.Model(&models.GameSession{}).
		Where("player_id = ?", identity).
		Order("session_id ASC").
		Pluck("session_id", &ids).Error
	return ids, err
}

// GetSession returns one completed session.
func (s *GameService) GetSession(sessionID uint64) (*models.GameSession, error) {
	var session models.GameSession
	if err := s.DB.First(&session, "session_id = ?", sessionID).Error; err != nil {
		return nil, err
	}
	return &session, nil
}
