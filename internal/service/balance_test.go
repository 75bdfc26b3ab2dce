package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cabin-reservation/internal/model"
)

func newLedger(balance float64) (*BalanceService, *fakeClients) {
	clients := newFakeClients(model.Client{ID: "C1", Name: "Ana", Status: model.ClientActive, Balance: balance})
	return NewBalanceService(clients), clients
}

func TestCreditAddsToBalance(t *testing.T) {
	ledger, clients := newLedger(100)
	ctx := context.Background()

	require.NoError(t, ledger.Credit(ctx, "C1", 50))
	c, err := clients.GetByID(ctx, "C1")
	require.NoError(t, err)
	assert.Equal(t, 150.0, c.Balance)

	// Zero-amount credits are accepted as no-ops.
	require.NoError(t, ledger.Credit(ctx, "C1", 0))
	c, _ = clients.GetByID(ctx, "C1")
	assert.Equal(t, 150.0, c.Balance)

	assert.ErrorIs(t, ledger.Credit(ctx, "C1", -1), ErrValidation)
	assert.ErrorIs(t, ledger.Credit(ctx, "missing", 10), ErrNotFound)
}

func TestDebitRefusesPartialWithdrawals(t *testing.T) {
	ledger, clients := newLedger(100)
	ctx := context.Background()

	// A withdrawal leaving a positive remainder hits the blocked guard.
	err := ledger.Debit(ctx, "C1", 50)
	assert.ErrorIs(t, err, ErrBlockedFunds)
	assert.Contains(t, err.Error(), "100.00")
	assert.Contains(t, err.Error(), "50.00")

	c, _ := clients.GetByID(ctx, "C1")
	assert.Equal(t, 100.0, c.Balance)
}

func TestDebitOverdraftIsInsufficient(t *testing.T) {
	ledger, _ := newLedger(100)

	err := ledger.Debit(context.Background(), "C1", 150)
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.NotErrorIs(t, err, ErrBlockedFunds)
}

func TestDebitExactBalanceSucceeds(t *testing.T) {
	ledger, clients := newLedger(100)
	ctx := context.Background()

	require.NoError(t, ledger.Debit(ctx, "C1", 100))
	c, err := clients.GetByID(ctx, "C1")
	require.NoError(t, err)
	assert.Equal(t, 0.0, c.Balance)

	// A zero-balance client can still "debit" zero.
	require.NoError(t, ledger.Debit(ctx, "C1", 0))

	assert.ErrorIs(t, ledger.Debit(ctx, "C1", -5), ErrValidation)
	assert.ErrorIs(t, ledger.Debit(ctx, "missing", 10), ErrNotFound)
}
