package player

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/GameVault_Go/internal/domain"
)

// MockRepository implements repository.Player for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, handle, name string, balance domain.Balance) (*domain.Player, error) {
	args := m.Called(ctx, handle, name, balance)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Player), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id int64) (*domain.Player, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Player), args.Error(1)
}

func (m *MockRepository) GetByHandle(ctx context.Context, handle string) (*domain.Player, error) {
	args := m.Called(ctx, handle)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Player), args.Error(1)
}

func (m *MockRepository) GetByName(ctx context.Context, name string) (*domain.Player, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Player), args.Error(1)
}

func (m *MockRepository) SearchByName(ctx context.Context, pattern string, limit int) ([]domain.Player, error) {
	args := m.Called(ctx, pattern, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Player), args.Error(1)
}

func (m *MockRepository) GetAll(ctx context.Context, limit, offset int) ([]domain.Player, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Player), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, id int64, upd domain.PlayerUpdate) (bool, error) {
	args := m.Called(ctx, id, upd)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) SaveSnapshot(ctx context.Context, id int64, snap domain.PlayerSnapshot) error {
	return m.Called(ctx, id, snap).Error(0)
}

func (m *MockRepository) AddPlayTime(ctx context.Context, id int64, minutes int64) error {
	return m.Called(ctx, id, minutes).Error(0)
}

func (m *MockRepository) MarkLogin(ctx context.Context, id int64, name string) error {
	return m.Called(ctx, id, name).Error(0)
}

func (m *MockRepository) TopByPlayTime(ctx context.Context, limit int) ([]domain.PlayerRanking, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PlayerRanking), args.Error(1)
}

func (m *MockRepository) TopByWealth(ctx context.Context, limit int) ([]domain.PlayerRanking, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PlayerRanking), args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
