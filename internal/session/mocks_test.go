package session

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/GameVault_Go/internal/domain"
)

// MockPlayers implements Players for testing
type MockPlayers struct {
	mock.Mock
}

func (m *MockPlayers) LookupOrCreate(ctx context.Context, handle, name string, balance domain.Balance) (*domain.Player, bool, error) {
	args := m.Called(ctx, handle, name, balance)
	if args.Get(0) == nil {
		return nil, false, args.Error(2)
	}
	return args.Get(0).(*domain.Player), args.Bool(1), args.Error(2)
}

func (m *MockPlayers) MarkLogin(ctx context.Context, id int64, name string) error {
	return m.Called(ctx, id, name).Error(0)
}

func (m *MockPlayers) SaveSnapshot(ctx context.Context, id int64, snap domain.PlayerSnapshot) error {
	return m.Called(ctx, id, snap).Error(0)
}

func (m *MockPlayers) AddPlayTime(ctx context.Context, id int64, minutes int64) error {
	return m.Called(ctx, id, minutes).Error(0)
}

func (m *MockPlayers) Update(ctx context.Context, id int64, upd domain.PlayerUpdate) (bool, error) {
	args := m.Called(ctx, id, upd)
	return args.Bool(0), args.Error(1)
}

// MockBalances implements Balances for testing
type MockBalances struct {
	mock.Mock
}

func (m *MockBalances) GetBalance(ctx context.Context, accountID int64) (domain.Balance, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(domain.Balance), args.Error(1)
}

// MockInventory implements Inventories for testing
type MockInventory struct {
	mock.Mock
}

func (m *MockInventory) GetPlayerItems(ctx context.Context, ownerID int64) ([]domain.InventoryStack, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InventoryStack), args.Error(1)
}

// MockBans implements BanChecker for testing
type MockBans struct {
	mock.Mock
}

func (m *MockBans) CheckLogin(ctx context.Context, playerID int64) error {
	return m.Called(ctx, playerID).Error(0)
}

// staticSettings answers Number from a fixed map
type staticSettings map[string]float64

func (s staticSettings) Number(_ context.Context, key string, def float64) float64 {
	if v, ok := s[key]; ok {
		return v
	}
	return def
}

// fakeLive records what the manager pushes into it
type fakeLive struct {
	mu        sync.Mutex
	handle    string
	name      string
	id        int64
	pos       domain.Position
	dimension int
	health    int
	armor     int
	balances  []domain.Balance
	applied   []LoadedState
}

func newFakeLive(handle string) *fakeLive {
	return &fakeLive{handle: handle, name: "Name_" + handle, health: 80, armor: 10, pos: domain.Position{X: 1, Y: 2, Z: 3}}
}

func (f *fakeLive) Handle() string { return f.handle }
func (f *fakeLive) Name() string   { return f.name }

func (f *fakeLive) PersistentID() int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.id
}

func (f *fakeLive) SetPersistentID(id int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.id = id
}

func (f *fakeLive) Position() domain.Position { return f.pos }
func (f *fakeLive) Dimension() int            { return f.dimension }
func (f *fakeLive) Health() int               { return f.health }
func (f *fakeLive) Armor() int                { return f.armor }

func (f *fakeLive) SetBalance(b domain.Balance) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.balances = append(f.balances, b)
}

func (f *fakeLive) Apply(state LoadedState) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.applied = append(f.applied, state)
}

func (f *fakeLive) snapshot() domain.PlayerSnapshot {
	return domain.PlayerSnapshot{Position: f.pos, Dimension: f.dimension, Health: f.health, Armor: f.armor}
}
