package repository

import (
	"context"

	"github.com/osse101/GameVault_Go/internal/domain"
)

// Ledger defines persistence for the cash/bank buckets of a player row
type Ledger interface {
	GetBalance(ctx context.Context, accountID int64) (domain.Balance, error)
	BeginLedgerTx(ctx context.Context) (LedgerTx, error)
}

// LedgerTx holds row locks on the accounts it has read for update
type LedgerTx interface {
	Tx
	// GetBalanceForUpdate locks the account row until the transaction ends.
	GetBalanceForUpdate(ctx context.Context, accountID int64) (domain.Balance, error)
	// UpdateBalance writes both buckets in one statement.
	UpdateBalance(ctx context.Context, accountID int64, balance domain.Balance) error
}
