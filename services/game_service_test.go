package services

import (
	"testing"
	"time"

	"game-economy-system/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayGamePaysReward(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "user-1", "alice")

	// defaults: base 100, multiplier 10. First win, streak 0, score 250.
	earned, err := env.Games.PlayGame("user-1", 120, 250, true)
	require.NoError(t, err)
	assert.Equal(t, uint64(127), earned)

	p := env.player(t, "user-1")
	assert.Equal(t, uint64(models.WelcomeBonus+127), p.TokenBalance)
	assert.Equal(t, uint64(1), p.TotalGamesPlayed)
	assert.Equal(t, uint64(1), p.TotalWins)
	assert.Equal(t, uint64(1), p.CurrentWinStreak)
	assert.Equal(t, uint64(1), p.DailyGamesPlayed)

	s := env.state(t)
	assert.Equal(t, uint64(models.WelcomeBonus+127), s.TotalGameTokens)
	assert.Equal(t, uint64(1), s.GameSessionCounter)
}

func TestPlayGameStreakProgression(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "user-1", "alice")

	// Three wins then a loss. The streak bonus uses the streak before
	// each game: 0, 1, 2.
	for i, want := range []uint64{127, 137, 147} {
		earned, err := env.Games.PlayGame("user-1", 120, 250, true)
		require.NoError(t, err, "win %d", i+1)
		assert.Equal(t, want, earned, "win %d", i+1)
	}

	p := env.player(t, "user-1")
	assert.Equal(t, uint64(3), p.CurrentWinStreak)
	assert.Equal(t, uint64(3), p.HighestWinStreak)

	// a loss resets the current streak but not the high-water mark
	earned, err := env.Games.PlayGame("user-1", 120, 250, false)
	require.NoError(t, err)
	assert.Equal(t, uint64(27), earned)

	p = env.player(t, "user-1")
	assert.Zero(t, p.CurrentWinStreak)
	assert.Equal(t, uint64(3), p.HighestWinStreak)
	assert.Equal(t, uint64(3), p.TotalWins)
	assert.Equal(t, uint64(4), p.TotalGamesPlayed)
}

func TestPlayGameSessionIDsAreSequential(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "user-1", "alice")
	env.register(t, "user-2", "bob")

	_, err := env.Games.PlayGame("user-1", 120, 100, true)
	require.NoError(t, err)
	_, err = env.Games.PlayGame("user-2", 120, 100, false)
	require.NoError(t, err)
	_, err = env.Games.PlayGame("user-1", 120, 100, true)
	require.NoError(t, err)

	ids, err := env.Games.GetPlayerGameHistory("user-1")
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 3}, ids)

	ids, err = env.Games.GetPlayerGameHistory("user-2")
	require.NoError(t, err)
	assert.Equal(t, []uint64{2}, ids)

	session, err := env.Games.GetSession(2)
	require.NoError(t, err)
	assert.Equal(t, "user-2", session.PlayerID)
	assert.True(t, session.IsCompleted)
	assert.False(t, session.IsWin)
}

func TestPlayGamePreconditions(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "user-1", "alice")

	_, err := env.Games.PlayGame("ghost", 120, 100, true)
	assert.ErrorIs(t, err, models.ErrNotRegistered)

	_, err = env.Games.PlayGame("", 120, 100, true)
	assert.ErrorIs(t, err, models.ErrInvalidIdentity)

	// below the 60s default minimum duration
	_, err = env.Games.PlayGame("user-1", 59, 100, true)
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	_, err = env.Games.PlayGame("user-1", 120, 0, true)
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	require.NoError(t, env.Players.SetActive(testOwnerID, "user-1", false))
	_, err = env.Games.PlayGame("user-1", 120, 100, true)
	assert.ErrorIs(t, err, models.ErrPlayerInactive)
}

func TestPlayGameBlockedWhenPlatformPaused(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "user-1", "alice")

	_, err := env.Platform.TogglePlatformStatus(testOwnerID)
	require.NoError(t, err)

	_, err = env.Games.PlayGame("user-1", 120, 100, true)
	assert.ErrorIs(t, err, models.ErrPlatformInactive)

	// nothing was recorded
	assert.Zero(t, env.state(t).GameSessionCounter)
}

func TestPlayGameDailyLimit(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "user-1", "alice")

	require.NoError(t, env.Platform.UpdateGameParameters(testOwnerID, 100, 10, 2))

	_, err := env.Games.PlayGame("user-1", 120, 100, true)
	require.NoError(t, err)
	_, err = env.Games.PlayGame("user-1", 120, 100, true)
	require.NoError(t, err)

	_, err = env.Games.PlayGame("user-1", 120, 100, true)
	assert.ErrorIs(t, err, models.ErrDailyLimitReached)

	p := env.player(t, "user-1")
	assert.Equal(t, uint64(2), p.DailyGamesPlayed)
	assert.Equal(t, uint64(2), p.TotalGamesPlayed)
}

func TestPlayGameDailyWindowRolls(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "user-1", "alice")

	require.NoError(t, env.Platform.UpdateGameParameters(testOwnerID, 100, 10, 2))

	_, err := env.Games.PlayGame("user-1", 120, 100, true)
	require.NoError(t, err)
	_, err = env.Games.PlayGame("user-1", 120, 100, true)
	require.NoError(t, err)
	_, err = env.Games.PlayGame("user-1", 120, 100, true)
	require.ErrorIs(t, err, models.ErrDailyLimitReached)

	// simulate 25h passing since the last game
	stale := time.Now().Unix() - 25*60*60
	require.NoError(t, env.DB.Model(&models.Player{}).
		Where("external_user_id = ?", "user-1").
		Update("last_play_time", stale).Error)

	_, err = env.Games.PlayGame("user-1", 120, 100, true)
	require.NoError(t, err)

	// counter was reset before the new game was counted
	assert.Equal(t, uint64(1), env.player(t, "user-1").DailyGamesPlayed)
}

func TestGetPlayerGameHistoryUnknownPlayer(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.Games.GetPlayerGameHistory("ghost")
	assert.ErrorIs(t, err, models.ErrNotRegistered)

	_, err = env.Games.GetPlayerGameHistory("")
	assert.ErrorIs(t, err, models.ErrInvalidIdentity)
}
