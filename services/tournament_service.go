package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"game-economy-system/models"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// TournamentService handles tournament lifecycle: owner-created,
// fee-gated joining while the window is open, and owner-driven
// completion that pays the accrued prize pool to the winner.
type TournamentService struct {
	DB       *gorm.DB
	Platform *PlatformService
}

func NewTournamentService(db *gorm.DB, platform *PlatformService) *TournamentService {
	return &TournamentService{DB: db, Platform: platform}
}

// CreateTournament allocates the next sequential tournament id and
// opens the registration window [now, now+durationSec). Owner-only.
// bannerURL is optional — the handler uploads the file to R2 first and
// passes the public URL here, keeping storage I/O out of the
// transaction.
func (s *TournamentService) CreateTournament(callerID, name string, entryFee uint64, durationSec int64, bannerURL string) (uint64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, fmt.Errorf("%w: tournament name required", models.ErrInvalidInput)
	}
	if durationSec <= 0 {
		return 0, fmt.Errorf("%w: duration must be positive", models.ErrInvalidInput)
	}

	s.Platform.Lock()
	defer s.Platform.Unlock()

	var tournamentID uint64
	var events []Event
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		state, err := loadState(tx)
		if err != nil {
			return err
		}
		if err := requireOwner(state, callerID); err != nil {
			return err
		}
		if err := requirePlatformActive(state); err != nil {
			return err
		}

		now := time.Now().Unix()
		state.TournamentCounter++
		tournament := models.Tournament{
			TournamentID: state.TournamentCounter,
			Name:         name,
			Slug:         slug.Make(name),
			BannerURL:    bannerURL,
			EntryFee:     entryFee,
			StartTime:    now,
			EndTime:      now + durationSec,
			IsActive:     true,
			Status:       models.TournamentStatusOpen,
		}
		if err := tx.Create(&tournament).Error; err != nil {
			return err
		}
		if err := tx.Save(state).Error; err != nil {
			return err
		}

		tournamentID = tournament.TournamentID
		events = append(events, Event{
			Type: models.EventTournamentCreated,
			Data: map[string]interface{}{
				"tournament_id": tournament.TournamentID,
				"name":          name,
				"entry_fee":     entryFee,
				"end_time":      tournament.EndTime,
			},
		})
		return nil
	})
	if err != nil {
		return 0, err
	}
	s.Platform.Bus.Publish(events...)
	return tournamentID, nil
}

// JoinTournament debits the entry fee from the caller and adds it to
// the prize pool. Each identity can join a tournament at most once.
func (s *TournamentService) JoinTournament(callerID string, tournamentID uint64) error {
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
		player, err := requireActivePlayer(tx, callerID)
		if err != nil {
			return err
		}

		var tournament models.Tournament
		if err := tx.First(&tournament, "tournament_id = ?", tournamentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrTournamentNotFound
			}
			return err
		}
		if tournament.IsCompleted {
			return models.ErrTournamentCompleted
		}
		if !tournament.IsActive {
			return models.ErrTournamentNotActive
		}

		now := time.Now().Unix()
		if now >= tournament.EndTime {
			return models.ErrRegistrationClosed
		}

		var existing models.TournamentEntry
		err = tx.Where("tournament_id = ? AND player_id = ?", tournamentID, callerID).First(&existing).Error
		if err == nil {
			return models.ErrAlreadyJoined
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if tournament.EntryFee > 0 {
			if err := debitTokens(tx, player, tournament.EntryFee, "Tournament entry: "+tournament.Name); err != nil {
				return err
			}
		}
		tournament.PrizePool += tournament.EntryFee

		entry := models.TournamentEntry{
			ID:           uuid.NewString(),
			TournamentID: tournamentID,
			PlayerID:     callerID,
			JoinedAt:     time.Now(),
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}
		if err := tx.Save(&tournament).Error; err != nil {
			return err
		}

		events = append(events, Event{
			Type:     models.EventTournamentJoined,
			PlayerID: callerID,
			Data: map[string]interface{}{
				"tournament_id": tournamentID,
				"entry_fee":     tournament.EntryFee,
				"prize_pool":    tournament.PrizePool,
			},
		})
		return nil
	})
	if err != nil {
		return err
	}
	s.Platform.Bus.Publish(events...)
	return nil
}

// CompleteTournament settles a tournament: the winner — who must have
// joined — receives the whole prize pool, and the tournament is closed
// for good. Owner-only; calling it twice fails on the completed flag.
func (s *TournamentService) CompleteTournament(callerID string, tournamentID uint64, winnerID string) error {
	if winnerID == "" {
		return models.ErrInvalidIdentity
	}

	s.Platform.Lock()
	defer s.Platform.Unlock()

	var events []Event
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		state, err := loadState(tx)
		if err != nil {
			return err
		}
		if err := requireOwner(state, callerID); err != nil {
			return err
		}

		var tournament models.Tournament
		if err := tx.First(&tournament, "tournament_id = ?", tournamentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrTournamentNotFound
			}
			return err
		}
		if tournament.IsCompleted {
			return models.ErrTournamentCompleted
		}

		var entryCount int64
		if err := tx.Model(&models.TournamentEntry{}).
			Where("tournament_id = ? AND player_id = ?", tournamentID, winnerID).
			Count(&entryCount).Error; err != nil {
			return err
		}
		if entryCount == 0 {
			return models.ErrNotAParticipant
		}

		// Participants are registered by construction, so the row is there.
		var winner models.Player
		if err := tx.Where("external_user_id = ?", winnerID).First(&winner).Error; err != nil {
			return err
		}

		if tournament.PrizePool > 0 {
			if err := creditTokens(tx, state, &winner, tournament.PrizePool, "Tournament Prize: "+tournament.Name); err != nil {
				return err
			}
			if err := tx.Save(state).Error; err != nil {
				return err
			}
		}

		tournament.WinnerID = winnerID
		tournament.IsCompleted = true
		tournament.IsActive = false
		tournament.Status = models.TournamentStatusCompleted
		if err := tx.Save(&tournament).Error; err != nil {
			return err
		}

		events = append(events,
			Event{
				Type:     models.EventTournamentCompleted,
				PlayerID: winnerID,
				Data: map[string]interface{}{
					"tournament_id": tournamentID,
					"winner":        winnerID,
					"prize_pool":    tournament.PrizePool,
				},
			},
			Event{
				Type:     models.EventTokensEarned,
				PlayerID: winnerID,
				Data:     map[string]interface{}{"amount": tournament.PrizePool, "reason": "Tournament Prize"},
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

// GetTournamentByID returns one tournament with its ordered entries.
func (s *TournamentService) GetTournamentByID(tournamentID uint64) (*models.Tournament, error) {
	var tournament models.Tournament
	err := s.DB.
		Preload("Entries", func(db *gorm.DB) *gorm.DB {
			return db.Order("joined_at ASC")
		}).
		First(&tournament, "tournament_id = ?", tournamentID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrTournamentNotFound
		}
		return nil, err
	}
	tournament.ParticipantsCount = int64(len(tournament.Entries))
	return &tournament, nil
}

// GetAllTournaments lists tournaments, newest first, with participant
// counts filled in.
func (s *TournamentService) GetAllTournaments() ([]models.Tournament, error) {
	var tournaments []models.Tournament
	if err := s.DB.Order("tournament_id DESC").Find(&tournaments).Error; err != nil {
		return nil, err
	}
	for i := range tournaments {
		var count int64
		s.DB.Model(&models.TournamentEntry{}).
			Where("tournament_id = ?", tournaments[i].TournamentID).
			Count(&count)
		tournaments[i].ParticipantsCount = count
	}
	return tournaments, nil
}
