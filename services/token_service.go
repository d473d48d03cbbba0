package services

import (
	"errors"
	"fmt"

	"game-economy-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TokenService exposes the spend operation and the transaction history.
// The credit/debit primitives below are plain functions operating inside
// the caller's transaction, so registration, gameplay and tournaments
// all share one ledger path.
type TokenService struct {
	DB       *gorm.DB
	Platform *PlatformService
}

func NewTokenService(db *gorm.DB, platform *PlatformService) *TokenService {
	return &TokenService{DB: db, Platform: platform}
}

// creditTokens mints amount to the player inside the caller's
// transaction. TotalGameTokens counts tokens issued and only ever
// grows; the caller is responsible for saving state afterwards if it
// has further mutations to fold in.
func creditTokens(tx *gorm.DB, state *models.PlatformState, player *models.Player, amount uint64, reason string) error {
	player.TokenBalance += amount
	state.TotalGameTokens += amount
	if err := tx.Save(player).Error; err != nil {
		return err
	}
	return tx.Create(&models.TokenTransaction{
		ID:        uuid.NewString(),
		PlayerID:  player.ExternalUserID,
		Amount:    amount,
		Direction: models.TokenDirectionCredit,
		Reason:    reason,
	}).Error
}

// debitTokens burns amount from the player's balance. The global
// counter is left alone: it tracks issuance, not circulation.
func debitTokens(tx *gorm.DB, player *models.Player, amount uint64, reason string) error {
	if amount > player.TokenBalance {
		return models.ErrInsufficientBalance
	}
	player.TokenBalance -= amount
	if err := tx.Save(player).Error; err != nil {
		return err
	}
	return tx.Create(&models.TokenTransaction{
		ID:        uuid.NewString(),
		PlayerID:  player.ExternalUserID,
		Amount:    amount,
		Direction: models.TokenDirectionDebit,
		Reason:    reason,
	}).Error
}

const maxItemNameBytes = 64

// SpendTokens burns tokens from the caller's balance in exchange for a
// named item. The item itself lives outside this service — we only
// settle the ledger side.
func (s *TokenService) SpendTokens(callerID string, amount uint64, itemName string) error {
	if amount == 0 {
		return fmt.Errorf("%w: amount must be positive", models.ErrInvalidInput)
	}
	if len(itemName) == 0 || len(itemName) > maxItemNameBytes {
		return fmt.Errorf("%w: item name must be 1-%d bytes", models.ErrInvalidInput, maxItemNameBytes)
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
		player, err := requireActivePlayer(tx, callerID)
		if err != nil {
			return err
		}
		if err := debitTokens(tx, player, amount, "Purchase: "+itemName); err != nil {
			return err
		}
		events = append(events, Event{
			Type:     models.EventTokensSpent,
			PlayerID: callerID,
			Data: map[string]interface{}{
				"amount": amount,
				"item":   itemName,
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

// GetPlayerTransactions returns the audit trail for one player, newest
// first.
func (s *TokenService) GetPlayerTransactions(identity string, limit int) ([]models.TokenTransaction, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	var count int64
	if err := s.DB.Model(&models.Player{}).Where("external_user_id = ?", identity).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, models.ErrNotRegistered
	}

	var txs []models.TokenTransaction
	err := s.DB.Where("player_id = ?", identity).
		Order("created_at DESC").
		Limit(limit).
		Find(&txs).Error
	return txs, err
}

// requireActivePlayer loads the player row inside tx and enforces the
// registered/active preconditions shared by every gameplay operation.
func requireActivePlayer(tx *gorm.DB, identity string) (*models.Player, error) {
	if identity == "" {
		return nil, models.ErrInvalidIdentity
	}
	var player models.Player
	if err := tx.Where("external_user_id = ?", identity).First(&player).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotRegistered
		}
		return nil, err
	}
	if !player.IsRegistered {
		return nil, models.ErrNotRegistered
	}
	if !player.IsActive {
		return nil, models.ErrPlayerInactive
	}
	return &player, nil
}
