package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/osse101/GameVault_Go/internal/domain"
	"github.com/osse101/GameVault_Go/internal/metrics"
	"github.com/osse101/GameVault_Go/internal/repository"
)

// withTx begins an inventory transaction, runs operation and commits. Any
// failure rolls back and is reported once under op.
func (s *service) withTx(ctx context.Context, op string, operation func(tx repository.InventoryTx) error) error {
	tx, err := s.repo.BeginInventoryTx(ctx)
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
	metrics.InventoryOperations.WithLabelValues(op, result).Inc()
	s.reporter.ReportError(ctx, err, op)
	return err
}

func (s *service) succeed(op string) {
	metrics.InventoryOperations.WithLabelValues(op, metrics.ResultSuccess).Inc()
}

// stackKey validates the inputs of a mutation and computes the stack identity
func stackKey(ownerID int64, itemName string, qty int, metadata domain.ItemMetadata) (domain.StackKey, error) {
	if qty < 0 || qty > MaxStackQuantity {
		return domain.StackKey{}, fmt.Errorf("%w: quantity %d", domain.ErrInvalidAmount, qty)
	}
	if strings.TrimSpace(itemName) == "" || len(itemName) > MaxItemNameLength {
		return domain.StackKey{}, fmt.Errorf("%w: item name %q", domain.ErrInvalidInput, itemName)
	}
	fp, err := metadata.Fingerprint()
	if err != nil {
		return domain.StackKey{}, err
	}
	return domain.StackKey{OwnerID: ownerID, ItemName: itemName, Fingerprint: fp}, nil
}

// lockOrder returns the two keys in ascending owner id order
func lockOrder(a, b domain.StackKey) []domain.StackKey {
	if a.OwnerID < b.OwnerID {
		return []domain.StackKey{a, b}
	}
	return []domain.StackKey{b, a}
}
