package settings

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/GameVault_Go/internal/domain"
)

// MockRepository implements repository.Setting for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Get(ctx context.Context, key string) (*domain.Setting, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Setting), args.Error(1)
}

func (m *MockRepository) GetAll(ctx context.Context) ([]domain.Setting, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Setting), args.Error(1)
}

func (m *MockRepository) Upsert(ctx context.Context, key string, value domain.SettingValue) error {
	return m.Called(ctx, key, value).Error(0)
}

func (m *MockRepository) InsertIfAbsent(ctx context.Context, key string, value domain.SettingValue) (bool, error) {
	args := m.Called(ctx, key, value)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

// memRepo is a map-backed repository.Setting
type memRepo struct {
	mu   sync.Mutex
	rows map[string]domain.SettingValue
}

func newMemRepo() *memRepo { return &memRepo{rows: map[string]domain.SettingValue{}} }

func (r *memRepo) Get(_ context.Context, key string) (*domain.Setting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.rows[key]
	if !ok {
		return nil, domain.ErrSettingNotFound
	}
	return &domain.Setting{Key: key, Value: v}, nil
}

func (r *memRepo) GetAll(context.Context) ([]domain.Setting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Setting, 0, len(r.rows))
	for k, v := range r.rows {
		out = append(out, domain.Setting{Key: k, Value: v})
	}
	return out, nil
}

func (r *memRepo) Upsert(_ context.Context, key string, value domain.SettingValue) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[key] = value
	return nil
}

func (r *memRepo) InsertIfAbsent(_ context.Context, key string, value domain.SettingValue) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[key]; ok {
		return false, nil
	}
	r.rows[key] = value
	return true, nil
}

func (r *memRepo) Delete(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[key]; !ok {
		return domain.ErrSettingNotFound
	}
	delete(r.rows, key)
	return nil
}
