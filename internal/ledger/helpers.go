package ledger

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/osse101/GameVault_Go/internal/domain"
	"github.com/osse101/GameVault_Go/internal/metrics"
	"github.com/osse101/GameVault_Go/internal/repository"
)

// withTx begins a ledger transaction, runs operation and commits. Any failure
// rolls back and is reported once under op.
func (s *service) withTx(ctx context.Context, op string, operation func(tx repository.LedgerTx) error) error {
	tx, err := s.repo.BeginLedgerTx(ctx)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	defer repository.SafeRollback(ctx, tx)

	if err := operation(tx); err != nil {
		return s.fail(ctx, op, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return s.fail(ctx, op, err)
	}
	return nil
}

func (s *service) fail(ctx context.Context, op string, err error) error {
	result := metrics.ResultFailure
	if domain.IsBusinessError(err) {
		result = metrics.ResultRejected
	}
	metrics.LedgerMutations.WithLabelValues(op, result).Inc()
	s.reporter.ReportError(ctx, err, op)
	return err
}

// validateAmount requires a strictly positive amount with at most cent precision
func validateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: %s must be positive", domain.ErrInvalidAmount, amount)
	}
	return validateDelta(amount)
}

// validateDelta rejects sub-cent precision that the NUMERIC(15,2) column would round away
func validateDelta(delta decimal.Decimal) error {
	if !delta.Equal(delta.Round(domain.MoneyScale)) {
		return fmt.Errorf("%w: %s has more than %d decimal places", domain.ErrInvalidAmount, delta, domain.MoneyScale)
	}
	return nil
}

// lockOrder returns the ids in the order their rows must be locked
func lockOrder(a, b int64) []int64 {
	if a < b {
		return []int64{a, b}
	}
	return []int64{b, a}
}
