package services

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"game-economy-system/models"

	"gorm.io/gorm"
)

// PlatformService owns the singleton platform row: the owner identity,
// the active flag, the tunable economic parameters and the running
// totals. It also carries the mutex that serializes every mutating
// economy operation — combined with the per-operation transaction this
// gives each state transition exclusive access to the rows it touches,
// so no partial application is ever observable.
type PlatformService struct {
	DB  *gorm.DB
	Bus *EventBus

	opMu sync.Mutex
}

func NewPlatformService(db *gorm.DB, bus *EventBus) *PlatformService {
	return &PlatformService{DB: db, Bus: bus}
}

// Lock/Unlock bracket every mutating operation across all services.
func (s *PlatformService) Lock()   { s.opMu.Lock() }
func (s *PlatformService) Unlock() { s.opMu.Unlock() }

// EnsurePlatformState creates the singleton row on first boot. The
// owner identity is fixed at creation; on later boots the stored owner
// wins and the argument is ignored.
func (s *PlatformService) EnsurePlatformState(ownerID string) (*models.PlatformState, error) {
	var state models.PlatformState
	err := s.DB.First(&state, "id = ?", models.PlatformStateID).Error
	if err == nil {
		return &state, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if ownerID == "" {
		return nil, fmt.Errorf("PLATFORM_OWNER_ID must be set on first boot")
	}
	state = models.PlatformState{
		ID:                    models.PlatformStateID,
		OwnerID:               ownerID,
		PlatformActive:        true,
		BaseRewardPerWin:      models.DefaultBaseRewardPerWin,
		StreakBonusMultiplier: models.DefaultStreakBonusMultiplier,
		DailyPlayLimit:        models.DefaultDailyPlayLimit,
		MinimumGameDuration:   models.DefaultMinimumGameDuration,
	}
	if err := s.DB.Create(&state).Error; err != nil {
		return nil, err
	}
	log.Printf("✅ Platform state initialized (owner %s)", ownerID)
	return &state, nil
}

// loadState fetches the singleton row inside the caller's transaction.
func loadState(tx *gorm.DB) (*models.PlatformState, error) {
	var state models.PlatformState
	if err := tx.First(&state, "id = ?", models.PlatformStateID).Error; err != nil {
		return nil, fmt.Errorf("platform state missing: %w", err)
	}
	return &state, nil
}

func requireOwner(state *models.PlatformState, callerID string) error {
	if callerID == "" || callerID != state.OwnerID {
		return models.ErrNotOwner
	}
	return nil
}

func requirePlatformActive(state *models.PlatformState) error {
	if !state.PlatformActive {
		return models.ErrPlatformInactive
	}
	return nil
}

// TogglePlatformStatus flips the active flag and returns the new value.
// Toggling twice restores the original state. Owner-only, and
// deliberately NOT gated on the flag itself — the owner must be able to
// resume a paused platform.
func (s *PlatformService) TogglePlatformStatus(callerID string) (bool, error) {
	s.Lock()
	defer s.Unlock()

	var active bool
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		state, err := loadState(tx)
		if err != nil {
			return err
		}
		if err := requireOwner(state, callerID); err != nil {
			return err
		}
		state.PlatformActive = !state.PlatformActive
		active = state.PlatformActive
		return tx.Save(state).Error
	})
	if err != nil {
		return false, err
	}
	log.Printf("Platform active flag set to %t by owner", active)
	return active, nil
}

// UpdateGameParameters replaces the three core economic parameters.
func (s *PlatformService) UpdateGameParameters(callerID string, baseReward, streakMultiplier, dailyLimit uint64) error {
	if baseReward == 0 || dailyLimit == 0 {
		return fmt.Errorf("%w: base reward and daily limit must be positive", models.ErrInvalidInput)
	}
	s.Lock()
	defer s.Unlock()

	return s.DB.Transaction(func(tx *gorm.DB) error {
		state, err := loadState(tx)
		if err != nil {
			return err
		}
		if err := requireOwner(state, callerID); err != nil {
			return err
		}
		state.BaseRewardPerWin = baseReward
		state.StreakBonusMultiplier = streakMultiplier
		state.DailyPlayLimit = dailyLimit
		return tx.Save(state).Error
	})
}

// SetMinimumGameDuration adjusts the shortest accepted game length.
func (s *PlatformService) SetMinimumGameDuration(callerID string, seconds int64) error {
	if seconds <= 0 {
		return fmt.Errorf("%w: minimum duration must be positive", models.ErrInvalidInput)
	}
	s.Lock()
	defer s.Unlock()

	return s.DB.Transaction(func(tx *gorm.DB) error {
		state, err := loadState(tx)
		if err != nil {
			return err
		}
		if err := requireOwner(state, callerID); err != nil {
			return err
		}
		state.MinimumGameDuration = seconds
		return tx.Save(state).Error
	})
}

// PlatformStats is the public read model of the running totals.
type PlatformStats struct {
	TotalPlayers  uint64 `json:"total_players"`
	TotalTokens   uint64 `json:"total_tokens"`
	TotalSessions uint64 `json:"total_sessions"`
	IsActive      bool   `json:"is_active"`
}

func (s *PlatformService) GetPlatformStats() (*PlatformStats, error) {
	var state models.PlatformState
	if err := s.DB.First(&state, "id = ?", models.PlatformStateID).Error; err != nil {
		return nil, err
	}
	return &PlatformStats{
		TotalPlayers:  state.TotalPlayersRegistered,
		TotalTokens:   state.TotalGameTokens,
		TotalSessions: state.GameSessionCounter,
		IsActive:      state.PlatformActive,
	}, nil
}
