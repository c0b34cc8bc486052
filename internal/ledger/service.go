// Package ledger implements the cash and bank balance operations. Every
// mutation reads the account row with a lock and writes it back in the same
// transaction.
package ledger

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/osse101/GameVault_Go/internal/domain"
	"github.com/osse101/GameVault_Go/internal/logger"
	"github.com/osse101/GameVault_Go/internal/metrics"
	"github.com/osse101/GameVault_Go/internal/observability"
	"github.com/osse101/GameVault_Go/internal/repository"
)

// Observer is told about every committed balance change
type Observer interface {
	BalanceChanged(ctx context.Context, accountID int64, balance domain.Balance)
}

// Service defines the ledger operations
type Service interface {
	GetBalance(ctx context.Context, accountID int64) (domain.Balance, error)
	AdjustCash(ctx context.Context, accountID int64, delta decimal.Decimal) (decimal.Decimal, error)
	AdjustBank(ctx context.Context, accountID int64, delta decimal.Decimal) (decimal.Decimal, error)
	TransferBankToCash(ctx context.Context, accountID int64, amount decimal.Decimal) (domain.Balance, error)
	TransferCashToBank(ctx context.Context, accountID int64, amount decimal.Decimal) (domain.Balance, error)
	// Transfer pays cash from one player to another and returns the payer's balance.
	Transfer(ctx context.Context, fromID, toID int64, amount decimal.Decimal) (domain.Balance, error)
	SetBalance(ctx context.Context, accountID int64, balance domain.Balance) error
	AddObserver(o Observer)
}

type service struct {
	repo     repository.Ledger
	reporter observability.Reporter

	mu        sync.RWMutex
	observers []Observer
}

// NewService creates a new ledger service
func NewService(repo repository.Ledger, reporter observability.Reporter) Service {
	if reporter == nil {
		reporter = observability.Nop{}
	}
	return &service{repo: repo, reporter: reporter}
}

// AddObserver registers o for post-commit notifications
func (s *service) AddObserver(o Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, o)
}

// GetBalance is an unlocked read
func (s *service) GetBalance(ctx context.Context, accountID int64) (domain.Balance, error) {
	return s.repo.GetBalance(ctx, accountID)
}

func (s *service) AdjustCash(ctx context.Context, accountID int64, delta decimal.Decimal) (decimal.Decimal, error) {
	if err := validateDelta(delta); err != nil {
		return decimal.Zero, s.fail(ctx, OpAdjustCash, err)
	}
	bal, err := s.mutate(ctx, OpAdjustCash, accountID, func(cur domain.Balance) (domain.Balance, error) {
		next := cur
		next.Cash = cur.Cash.Add(delta)
		if next.Cash.IsNegative() {
			return cur, fmt.Errorf("%w: cash %s, delta %s", domain.ErrInsufficientFunds, cur.Cash, delta)
		}
		return next, nil
	})
	if err != nil {
		return decimal.Zero, err
	}
	return bal.Cash, nil
}

func (s *service) AdjustBank(ctx context.Context, accountID int64, delta decimal.Decimal) (decimal.Decimal, error) {
	if err := validateDelta(delta); err != nil {
		return decimal.Zero, s.fail(ctx, OpAdjustBank, err)
	}
	bal, err := s.mutate(ctx, OpAdjustBank, accountID, func(cur domain.Balance) (domain.Balance, error) {
		next := cur
		next.Bank = cur.Bank.Add(delta)
		if next.Bank.IsNegative() {
			return cur, fmt.Errorf("%w: bank %s, delta %s", domain.ErrInsufficientFunds, cur.Bank, delta)
		}
		return next, nil
	})
	if err != nil {
		return decimal.Zero, err
	}
	return bal.Bank, nil
}

func (s *service) TransferBankToCash(ctx context.Context, accountID int64, amount decimal.Decimal) (domain.Balance, error) {
	if err := validateAmount(amount); err != nil {
		return domain.Balance{}, s.fail(ctx, OpTransferBankToCash, err)
	}
	return s.mutate(ctx, OpTransferBankToCash, accountID, func(cur domain.Balance) (domain.Balance, error) {
		if cur.Bank.LessThan(amount) {
			return cur, fmt.Errorf("%w: bank %s, amount %s", domain.ErrInsufficientFunds, cur.Bank, amount)
		}
		return domain.Balance{Cash: cur.Cash.Add(amount), Bank: cur.Bank.Sub(amount)}, nil
	})
}

func (s *service) TransferCashToBank(ctx context.Context, accountID int64, amount decimal.Decimal) (domain.Balance, error) {
	if err := validateAmount(amount); err != nil {
		return domain.Balance{}, s.fail(ctx, OpTransferCashToBank, err)
	}
	return s.mutate(ctx, OpTransferCashToBank, accountID, func(cur domain.Balance) (domain.Balance, error) {
		if cur.Cash.LessThan(amount) {
			return cur, fmt.Errorf("%w: cash %s, amount %s", domain.ErrInsufficientFunds, cur.Cash, amount)
		}
		return domain.Balance{Cash: cur.Cash.Sub(amount), Bank: cur.Bank.Add(amount)}, nil
	})
}

// Transfer locks both rows in ascending id order so opposite transfers cannot deadlock
func (s *service) Transfer(ctx context.Context, fromID, toID int64, amount decimal.Decimal) (domain.Balance, error) {
	if fromID == toID {
		return domain.Balance{}, s.fail(ctx, OpTransfer, fmt.Errorf("%w: cannot transfer to self", domain.ErrInvalidInput))
	}
	if err := validateAmount(amount); err != nil {
		return domain.Balance{}, s.fail(ctx, OpTransfer, err)
	}

	var from, to domain.Balance
	err := s.withTx(ctx, OpTransfer, func(tx repository.LedgerTx) error {
		locked := make(map[int64]domain.Balance, 2)
		for _, id := range lockOrder(fromID, toID) {
			bal, err := tx.GetBalanceForUpdate(ctx, id)
			if err != nil {
				return err
			}
			locked[id] = bal
		}
		from, to = locked[fromID], locked[toID]

		if from.Cash.LessThan(amount) {
			return fmt.Errorf("%w: cash %s, amount %s", domain.ErrInsufficientFunds, from.Cash, amount)
		}
		from.Cash = from.Cash.Sub(amount)
		to.Cash = to.Cash.Add(amount)

		if err := tx.UpdateBalance(ctx, fromID, from); err != nil {
			return err
		}
		return tx.UpdateBalance(ctx, toID, to)
	})
	if err != nil {
		return domain.Balance{}, err
	}

	metrics.LedgerMutations.WithLabelValues(OpTransfer, metrics.ResultSuccess).Inc()
	logger.FromContext(ctx).Debug(LogMsgTransferDone, "from", fromID, "to", toID, "amount", amount.String())
	s.notify(ctx, fromID, from)
	s.notify(ctx, toID, to)
	return from, nil
}

// SetBalance overwrites both buckets. Used by admin tooling.
func (s *service) SetBalance(ctx context.Context, accountID int64, balance domain.Balance) error {
	if !balance.IsValid() {
		return s.fail(ctx, OpSetBalance, fmt.Errorf("%w: balance must be non-negative", domain.ErrInvalidAmount))
	}
	if err := validateDelta(balance.Cash); err != nil {
		return s.fail(ctx, OpSetBalance, err)
	}
	if err := validateDelta(balance.Bank); err != nil {
		return s.fail(ctx, OpSetBalance, err)
	}
	_, err := s.mutate(ctx, OpSetBalance, accountID, func(domain.Balance) (domain.Balance, error) {
		return balance, nil
	})
	return err
}

// mutate locks one account, applies fn and writes the result
func (s *service) mutate(ctx context.Context, op string, accountID int64, fn func(cur domain.Balance) (domain.Balance, error)) (domain.Balance, error) {
	var next domain.Balance
	err := s.withTx(ctx, op, func(tx repository.LedgerTx) error {
		cur, err := tx.GetBalanceForUpdate(ctx, accountID)
		if err != nil {
			return err
		}
		next, err = fn(cur)
		if err != nil {
			return err
		}
		return tx.UpdateBalance(ctx, accountID, next)
	})
	if err != nil {
		return domain.Balance{}, err
	}

	metrics.LedgerMutations.WithLabelValues(op, metrics.ResultSuccess).Inc()
	logger.FromContext(ctx).Debug(LogMsgBalanceChanged,
		"operation", op,
		"account_id", accountID,
		"cash", next.Cash.String(),
		"bank", next.Bank.String())
	s.notify(ctx, accountID, next)
	return next, nil
}

func (s *service) notify(ctx context.Context, accountID int64, balance domain.Balance) {
	s.mu.RLock()
	observers := s.observers
	s.mu.RUnlock()

	for _, o := range observers {
		o.BalanceChanged(ctx, accountID, balance)
	}
}
