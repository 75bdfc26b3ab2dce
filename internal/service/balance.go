package service

import (
	"context"
	"fmt"
)

// BalanceService applies credits and debits to a client's spendable
// balance. Reads and writes are separate operations without a retry
// loop; under concurrent debits one caller may compute against a stale
// balance, which the storage layer must be trusted to tolerate.
type BalanceService struct {
	clients ClientStore
}

// NewBalanceService wires the balance ledger.
func NewBalanceService(clients ClientStore) *BalanceService {
	return &BalanceService{clients: clients}
}

// Credit adds a non-negative amount to the client's balance.
func (s *BalanceService) Credit(ctx context.Context, clientID string, amount float64) error {
	if amount < 0 {
		return invalidf("credit amount must not be negative")
	}
	client, err := s.clients.GetByID(ctx, clientID)
	if err != nil {
		return storeErr(err)
	}
	return storeErr(s.clients.SetBalance(ctx, clientID, client.Balance+amount))
}

// Debit withdraws from the client's balance. The blocked-funds guard
// comes first and is intentionally literal: a debit is only permitted
// when it brings the balance to zero (or the amount exceeds the
// balance, in which case the sufficiency check rejects it). Partial
// withdrawals that would leave a positive remainder are refused
// because the remainder is considered earmarked.
func (s *BalanceService) Debit(ctx context.Context, clientID string, amount float64) error {
	if amount < 0 {
		return invalidf("debit amount must not be negative")
	}
	client, err := s.clients.GetByID(ctx, clientID)
	if err != nil {
		return storeErr(err)
	}
	if client.Balance-amount > 0 {
		return fmt.Errorf("%w: balance %.2f is blocked against a withdrawal of %.2f",
			ErrBlockedFunds, client.Balance, amount)
	}
	if amount > client.Balance {
		return fmt.Errorf("%w: balance %.2f, requested %.2f",
			ErrInsufficientFunds, client.Balance, amount)
	}
	return storeErr(s.clients.SetBalance(ctx, clientID, client.Balance-amount))
}
