package postgres

import (
	"context"

	"github.com/osse101/GameVault_Go/internal/database"
	"github.com/osse101/GameVault_Go/internal/domain"
	"github.com/osse101/GameVault_Go/internal/repository"
)

// LedgerRepository implements repository.Ledger on the players table
type LedgerRepository struct {
	gw *database.Gateway
}

// NewLedgerRepository creates a new LedgerRepository
func NewLedgerRepository(gw *database.Gateway) *LedgerRepository {
	return &LedgerRepository{gw: gw}
}

// BeginLedgerTx starts a new transaction
func (r *LedgerRepository) BeginLedgerTx(ctx context.Context) (repository.LedgerTx, error) {
	tx, err := r.gw.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return &LedgerTx{tx: tx}, nil
}

// GetBalance is an unlocked read
func (r *LedgerRepository) GetBalance(ctx context.Context, accountID int64) (domain.Balance, error) {
	return readBalance(ctx, r.gw, `SELECT money::text, bank::text FROM players WHERE id = $1`, accountID)
}

// LedgerTx implements repository.LedgerTx
type LedgerTx struct {
	tx *database.Tx
}

// Commit commits the transaction
func (t *LedgerTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

// Rollback rolls back the transaction
func (t *LedgerTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

// GetBalanceForUpdate locks the player row
func (t *LedgerTx) GetBalanceForUpdate(ctx context.Context, accountID int64) (domain.Balance, error) {
	return readBalance(ctx, t.tx, `SELECT money::text, bank::text FROM players WHERE id = $1 FOR UPDATE`, accountID)
}

// UpdateBalance writes both buckets
func (t *LedgerTx) UpdateBalance(ctx context.Context, accountID int64, balance domain.Balance) error {
	tag, err := t.tx.Exec(ctx, `UPDATE players SET money = $2::numeric, bank = $3::numeric WHERE id = $1`,
		accountID, balance.Cash.String(), balance.Bank.String())
	if err != nil {
		return err
	}
	return mustAffect(tag.RowsAffected(), domain.ErrAccountNotFound)
}

func readBalance(ctx context.Context, q runner, sql string, accountID int64) (domain.Balance, error) {
	var cash, bank string
	if err := q.QueryRow(ctx, sql, accountID).Scan(&cash, &bank); err != nil {
		return domain.Balance{}, missing(err, domain.ErrAccountNotFound)
	}
	return parseBalance(cash, bank)
}
