package ban

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/GameVault_Go/internal/domain"
)

// MockRepository implements repository.Ban for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, ban domain.Ban) (*domain.Ban, error) {
	args := m.Called(ctx, ban)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ban), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id int64) (*domain.Ban, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ban), args.Error(1)
}

func (m *MockRepository) ActiveForPlayer(ctx context.Context, playerID int64, now time.Time) (*domain.Ban, error) {
	args := m.Called(ctx, playerID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ban), args.Error(1)
}

func (m *MockRepository) ListActive(ctx context.Context, now time.Time) ([]domain.Ban, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Ban), args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}
