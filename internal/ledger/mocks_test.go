package ledger

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/GameVault_Go/internal/domain"
	"github.com/osse101/GameVault_Go/internal/repository"
)

// MockRepository implements repository.Ledger for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetBalance(ctx context.Context, accountID int64) (domain.Balance, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(domain.Balance), args.Error(1)
}

func (m *MockRepository) BeginLedgerTx(ctx context.Context) (repository.LedgerTx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.LedgerTx), args.Error(1)
}

// MockTx implements repository.LedgerTx for testing
type MockTx struct {
	mock.Mock
}

func (m *MockTx) GetBalanceForUpdate(ctx context.Context, accountID int64) (domain.Balance, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(domain.Balance), args.Error(1)
}

func (m *MockTx) UpdateBalance(ctx context.Context, accountID int64, balance domain.Balance) error {
	args := m.Called(ctx, accountID, balance)
	return args.Error(0)
}

func (m *MockTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// recordingObserver captures post-commit notifications
type recordingObserver struct {
	mock.Mock
}

func (o *recordingObserver) BalanceChanged(ctx context.Context, accountID int64, balance domain.Balance) {
	o.Called(ctx, accountID, balance)
}
