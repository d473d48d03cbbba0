package services

import (
	"strings"
	"testing"

	"game-economy-system/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterCreditsWelcomeBonus(t *testing.T) {
	env := newTestEnv(t)

	env.register(t, "user-1", "alice")

	p := env.player(t, "user-1")
	assert.Equal(t, uint64(models.WelcomeBonus), p.TokenBalance)
	assert.True(t, p.IsRegistered)
	assert.True(t, p.IsActive)
	assert.Equal(t, "alice", p.Username)

	s := env.state(t)
	assert.Equal(t, uint64(1), s.TotalPlayersRegistered)
	assert.Equal(t, uint64(models.WelcomeBonus), s.TotalGameTokens)

	// welcome bonus lands in the transaction trail
	txns, err := env.Tokens.GetPlayerTransactions("user-1", 10)
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, models.TokenDirectionCredit, txns[0].Direction)
	assert.Equal(t, "Welcome Bonus", txns[0].Reason)
}

func TestRegisterDuplicateFails(t *testing.T) {
	env := newTestEnv(t)

	env.register(t, "user-1", "alice")
	err := env.Players.Register("user-1", "alice-again")
	assert.ErrorIs(t, err, models.ErrAlreadyRegistered)

	// failed attempt leaves totals untouched
	s := env.state(t)
	assert.Equal(t, uint64(1), s.TotalPlayersRegistered)
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t)

	assert.ErrorIs(t, env.Players.Register("", "alice"), models.ErrInvalidIdentity)
	assert.ErrorIs(t, env.Players.Register("user-1", ""), models.ErrInvalidInput)
	assert.ErrorIs(t, env.Players.Register("user-1", strings.Repeat("x", 21)), models.ErrInvalidInput)

	// 20 bytes is still fine
	assert.NoError(t, env.Players.Register("user-1", strings.Repeat("x", 20)))
}

func TestRegisterBlockedWhenPlatformPaused(t *testing.T) {
	env := newTestEnv(t)

	active, err := env.Platform.TogglePlatformStatus(testOwnerID)
	require.NoError(t, err)
	require.False(t, active)

	err = env.Players.Register("user-1", "alice")
	assert.ErrorIs(t, err, models.ErrPlatformInactive)
}

func TestSetActivePauseAndResume(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "user-1", "alice")

	require.NoError(t, env.Players.SetActive(testOwnerID, "user-1", false))
	assert.False(t, env.player(t, "user-1").IsActive)

	// paused players can't spend
	err := env.Tokens.SpendTokens("user-1", 10, "skin")
	assert.ErrorIs(t, err, models.ErrPlayerInactive)

	require.NoError(t, env.Players.SetActive(testOwnerID, "user-1", true))
	assert.True(t, env.player(t, "user-1").IsActive)
	assert.NoError(t, env.Tokens.SpendTokens("user-1", 10, "skin"))
}

func TestSetActiveAuthorization(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "user-1", "alice")

	assert.ErrorIs(t, env.Players.SetActive("user-1", "user-1", false), models.ErrNotOwner)
	assert.ErrorIs(t, env.Players.SetActive(testOwnerID, "", false), models.ErrInvalidIdentity)

	// pausing an identity that never registered is a silent no-op
	assert.NoError(t, env.Players.SetActive(testOwnerID, "ghost", false))
}

func TestGetPlayerStats(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "user-1", "alice")

	stats, err := env.Players.GetPlayerStats("user-1")
	require.NoError(t, err)
	assert.Equal(t, "alice", stats.Username)
	assert.Equal(t, uint64(models.WelcomeBonus), stats.TokenBalance)
	assert.Zero(t, stats.TotalGamesPlayed)

	_, err = env.Players.GetPlayerStats("ghost")
	assert.ErrorIs(t, err, models.ErrNotRegistered)

	_, err = env.Players.GetPlayerStats("")
	assert.ErrorIs(t, err, models.ErrInvalidIdentity)
}
