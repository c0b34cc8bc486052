package vehicle

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/GameVault_Go/internal/domain"
)

// MockRepository implements repository.Vehicle for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, ownerID int64, spec domain.NewVehicle) (*domain.Vehicle, error) {
	args := m.Called(ctx, ownerID, spec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}

func (m *MockRepository) GetByOwner(ctx context.Context, ownerID int64) ([]domain.Vehicle, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Vehicle), args.Error(1)
}

func (m *MockRepository) GetByPlate(ctx context.Context, plate string) (*domain.Vehicle, error) {
	args := m.Called(ctx, plate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}

func (m *MockRepository) GetAll(ctx context.Context, limit, offset int) ([]domain.Vehicle, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Vehicle), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, id int64, upd domain.VehicleUpdate) (bool, error) {
	args := m.Called(ctx, id, upd)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) SaveSnapshot(ctx context.Context, id int64, snap domain.VehicleSnapshot) error {
	args := m.Called(ctx, id, snap)
	return args.Error(0)
}

func (m *MockRepository) SetOwner(ctx context.Context, id, ownerID int64) error {
	args := m.Called(ctx, id, ownerID)
	return args.Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// fakeLive is an in-memory world entity
type fakeLive struct {
	mu        sync.Mutex
	snap      domain.VehicleSnapshot
	owner     int64
	destroyed int
}

func (f *fakeLive) Snapshot() domain.VehicleSnapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snap
}

func (f *fakeLive) SetOwner(ownerID int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.owner = ownerID
}

func (f *fakeLive) Destroy() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.destroyed++
}

func (f *fakeLive) destroyCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.destroyed
}

// spawnInto returns a SpawnFunc that builds fakeLive entities and records them
func spawnInto(made map[int64]*fakeLive) SpawnFunc {
	var mu sync.Mutex
	return func(v *domain.Vehicle) (LiveVehicle, error) {
		mu.Lock()
		defer mu.Unlock()
		f := &fakeLive{snap: domain.VehicleSnapshot{Position: v.Position, Dimension: v.Dimension}}
		made[v.ID] = f
		return f, nil
	}
}
