package services

import (
	"path/filepath"
	"testing"

	"game-economy-system/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testOwnerID = "owner-0001"

type testEnv struct {
	DB          *gorm.DB
	Bus         *EventBus
	Platform    *PlatformService
	Players     *PlayerService
	Tokens      *TokenService
	Games       *GameService
	Tournaments *TournamentService
}

// newTestEnv spins up a file-backed sqlite database in a temp dir and
// wires the full service graph against it, with the platform state
// already initialized.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "economy_test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.PlatformState{},
		&models.Player{},
		&models.GameSession{},
		&models.Tournament{},
		&models.TournamentEntry{},
		&models.TokenTransaction{},
		&models.PlatformEvent{},
	))

	bus := NewEventBus()
	platform := NewPlatformService(db, bus)
	_, err = platform.EnsurePlatformState(testOwnerID)
	require.NoError(t, err)

	return &testEnv{
		DB:          db,
		Bus:         bus,
		Platform:    platform,
		Players:     NewPlayerService(db, platform),
		Tokens:      NewTokenService(db, platform),
		Games:       NewGameService(db, platform),
		Tournaments: NewTournamentService(db, platform),
	}
}

func (e *testEnv) register(t *testing.T, id, username string) {
	t.Helper()
	require.NoError(t, e.Players.Register(id, username))
}

func (e *testEnv) player(t *testing.T, id string) models.Player {
	t.Helper()
	var p models.Player
	require.NoError(t, e.DB.Where("external_user_id = ?", id).First(&p).Error)
	return p
}

func (e *testEnv) state(t *testing.T) models.PlatformState {
	t.Helper()
	var s models.PlatformState
	require.NoError(t, e.DB.First(&s, "id = ?", models.PlatformStateID).Error)
	return s
}
