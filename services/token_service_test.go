package services

import (
	"strings"
	"testing"

	"game-economy-system/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpendTokens(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "user-1", "alice")

	require.NoError(t, env.Tokens.SpendTokens("user-1", 200, "golden skin"))

	p := env.player(t, "user-1")
	assert.Equal(t, uint64(models.WelcomeBonus-200), p.TokenBalance)

	// issuance counter tracks minting, not circulation
	assert.Equal(t, uint64(models.WelcomeBonus), env.state(t).TotalGameTokens)

	txns, err := env.Tokens.GetPlayerTransactions("user-1", 10)
	require.NoError(t, err)
	require.Len(t, txns, 2) // welcome credit + this debit
	assert.Equal(t, models.TokenDirectionDebit, txns[0].Direction)
	assert.Equal(t, "Purchase: golden skin", txns[0].Reason)
}

func TestSpendTokensOverdraft(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "user-1", "alice")

	err := env.Tokens.SpendTokens("user-1", models.WelcomeBonus+1, "yacht")
	assert.ErrorIs(t, err, models.ErrInsufficientBalance)

	// the failed spend left the balance untouched
	assert.Equal(t, uint64(models.WelcomeBonus), env.player(t, "user-1").TokenBalance)

	// spending the exact balance is allowed
	require.NoError(t, env.Tokens.SpendTokens("user-1", models.WelcomeBonus, "everything"))
	assert.Zero(t, env.player(t, "user-1").TokenBalance)
}

func TestSpendTokensValidation(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "user-1", "alice")

	assert.ErrorIs(t, env.Tokens.SpendTokens("user-1", 0, "skin"), models.ErrInvalidInput)
	assert.ErrorIs(t, env.Tokens.SpendTokens("user-1", 10, ""), models.ErrInvalidInput)
	assert.ErrorIs(t, env.Tokens.SpendTokens("user-1", 10, strings.Repeat("x", 65)), models.ErrInvalidInput)
	assert.ErrorIs(t, env.Tokens.SpendTokens("ghost", 10, "skin"), models.ErrNotRegistered)
	assert.ErrorIs(t, env.Tokens.SpendTokens("", 10, "skin"), models.ErrInvalidIdentity)
}

func TestGetPlayerTransactionsOrderAndLimit(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "user-1", "alice")

	require.NoError(t, env.Tokens.SpendTokens("user-1", 1, "a"))
	require.NoError(t, env.Tokens.SpendTokens("user-1", 2, "b"))
	require.NoError(t, env.Tokens.SpendTokens("user-1", 3, "c"))

	txns, err := env.Tokens.GetPlayerTransactions("user-1", 2)
	require.NoError(t, err)
	assert.Len(t, txns, 2)

	_, err = env.Tokens.GetPlayerTransactions("ghost", 10)
	assert.ErrorIs(t, err, models.ErrNotRegistered)
}
