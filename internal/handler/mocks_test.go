package handler

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/osse101/GameVault_Go/internal/activity"
	"github.com/osse101/GameVault_Go/internal/ban"
	"github.com/osse101/GameVault_Go/internal/domain"
	"github.com/osse101/GameVault_Go/internal/inventory"
	"github.com/osse101/GameVault_Go/internal/ledger"
	"github.com/osse101/GameVault_Go/internal/observability"
	"github.com/osse101/GameVault_Go/internal/player"
	"github.com/osse101/GameVault_Go/internal/repository"
	"github.com/osse101/GameVault_Go/internal/session"
	"github.com/osse101/GameVault_Go/internal/settings"
	"github.com/osse101/GameVault_Go/internal/vehicle"
)

// The mocks embed their interface so only the methods the handlers call
// need bodies. Calling anything else panics on the nil embedded value.

type MockPlayerService struct {
	mock.Mock
	player.Service
}

func (m *MockPlayerService) GetByID(ctx context.Context, id int64) (*domain.Player, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*domain.Player)
	return p, args.Error(1)
}

func (m *MockPlayerService) GetByHandle(ctx context.Context, handle string) (*domain.Player, error) {
	args := m.Called(ctx, handle)
	p, _ := args.Get(0).(*domain.Player)
	return p, args.Error(1)
}

func (m *MockPlayerService) SearchByName(ctx context.Context, pattern string, limit int) ([]domain.Player, error) {
	args := m.Called(ctx, pattern, limit)
	p, _ := args.Get(0).([]domain.Player)
	return p, args.Error(1)
}

func (m *MockPlayerService) GetAll(ctx context.Context, limit, offset int) ([]domain.Player, error) {
	args := m.Called(ctx, limit, offset)
	p, _ := args.Get(0).([]domain.Player)
	return p, args.Error(1)
}

func (m *MockPlayerService) Update(ctx context.Context, id int64, upd domain.PlayerUpdate) (bool, error) {
	args := m.Called(ctx, id, upd)
	return args.Bool(0), args.Error(1)
}

func (m *MockPlayerService) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockPlayerService) TopByPlayTime(ctx context.Context, limit int) ([]domain.PlayerRanking, error) {
	args := m.Called(ctx, limit)
	r, _ := args.Get(0).([]domain.PlayerRanking)
	return r, args.Error(1)
}

func (m *MockPlayerService) TopByWealth(ctx context.Context, limit int) ([]domain.PlayerRanking, error) {
	args := m.Called(ctx, limit)
	r, _ := args.Get(0).([]domain.PlayerRanking)
	return r, args.Error(1)
}

type MockLedgerService struct {
	mock.Mock
	ledger.Service
}

func (m *MockLedgerService) GetBalance(ctx context.Context, id int64) (domain.Balance, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Balance), args.Error(1)
}

func (m *MockLedgerService) AdjustCash(ctx context.Context, id int64, delta decimal.Decimal) (decimal.Decimal, error) {
	args := m.Called(ctx, id, delta.String())
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockLedgerService) AdjustBank(ctx context.Context, id int64, delta decimal.Decimal) (decimal.Decimal, error) {
	args := m.Called(ctx, id, delta.String())
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockLedgerService) TransferCashToBank(ctx context.Context, id int64, amount decimal.Decimal) (domain.Balance, error) {
	args := m.Called(ctx, id, amount.String())
	return args.Get(0).(domain.Balance), args.Error(1)
}

func (m *MockLedgerService) TransferBankToCash(ctx context.Context, id int64, amount decimal.Decimal) (domain.Balance, error) {
	args := m.Called(ctx, id, amount.String())
	return args.Get(0).(domain.Balance), args.Error(1)
}

func (m *MockLedgerService) Transfer(ctx context.Context, fromID, toID int64, amount decimal.Decimal) (domain.Balance, error) {
	args := m.Called(ctx, fromID, toID, amount.String())
	return args.Get(0).(domain.Balance), args.Error(1)
}

type MockInventoryService struct {
	mock.Mock
	inventory.Service
}

func (m *MockInventoryService) AddItem(ctx context.Context, ownerID int64, item string, qty int, md domain.ItemMetadata) (int64, error) {
	args := m.Called(ctx, ownerID, item, qty, md)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInventoryService) RemoveItem(ctx context.Context, ownerID int64, item string, qty int, md domain.ItemMetadata) error {
	return m.Called(ctx, ownerID, item, qty, md).Error(0)
}

func (m *MockInventoryService) TransferItem(ctx context.Context, fromID, toID int64, item string, qty int, md domain.ItemMetadata) error {
	return m.Called(ctx, fromID, toID, item, qty, md).Error(0)
}

func (m *MockInventoryService) GetPlayerItems(ctx context.Context, ownerID int64) ([]domain.InventoryStack, error) {
	args := m.Called(ctx, ownerID)
	s, _ := args.Get(0).([]domain.InventoryStack)
	return s, args.Error(1)
}

func (m *MockInventoryService) ClearInventory(ctx context.Context, ownerID int64) (int64, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(int64), args.Error(1)
}

type MockVehicleService struct {
	mock.Mock
	vehicle.Service
}

func (m *MockVehicleService) Create(ctx context.Context, ownerID int64, spec domain.NewVehicle) (*domain.Vehicle, error) {
	args := m.Called(ctx, ownerID, spec)
	v, _ := args.Get(0).(*domain.Vehicle)
	return v, args.Error(1)
}

func (m *MockVehicleService) GetByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	args := m.Called(ctx, id)
	v, _ := args.Get(0).(*domain.Vehicle)
	return v, args.Error(1)
}

func (m *MockVehicleService) GetByPlate(ctx context.Context, plate string) (*domain.Vehicle, error) {
	args := m.Called(ctx, plate)
	v, _ := args.Get(0).(*domain.Vehicle)
	return v, args.Error(1)
}

func (m *MockVehicleService) GetByOwner(ctx context.Context, ownerID int64) ([]domain.Vehicle, error) {
	args := m.Called(ctx, ownerID)
	v, _ := args.Get(0).([]domain.Vehicle)
	return v, args.Error(1)
}

func (m *MockVehicleService) GetAll(ctx context.Context, limit, offset int) ([]domain.Vehicle, error) {
	args := m.Called(ctx, limit, offset)
	v, _ := args.Get(0).([]domain.Vehicle)
	return v, args.Error(1)
}

func (m *MockVehicleService) TransferOwnership(ctx context.Context, id, newOwnerID int64) error {
	return m.Called(ctx, id, newOwnerID).Error(0)
}

func (m *MockVehicleService) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockVehicleService) Spawned() []int64 {
	ids, _ := m.Called().Get(0).([]int64)
	return ids
}

type MockBanService struct {
	mock.Mock
	ban.Service
}

func (m *MockBanService) Ban(ctx context.Context, req ban.Request) (*domain.Ban, error) {
	args := m.Called(ctx, req)
	b, _ := args.Get(0).(*domain.Ban)
	return b, args.Error(1)
}

func (m *MockBanService) Lift(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockBanService) ActiveBan(ctx context.Context, playerID int64) (*domain.Ban, error) {
	args := m.Called(ctx, playerID)
	b, _ := args.Get(0).(*domain.Ban)
	return b, args.Error(1)
}

func (m *MockBanService) ListActive(ctx context.Context) ([]domain.Ban, error) {
	args := m.Called(ctx)
	b, _ := args.Get(0).([]domain.Ban)
	return b, args.Error(1)
}

type MockActivityService struct {
	mock.Mock
	activity.Service
}

func (m *MockActivityService) Recent(ctx context.Context, f domain.ActivityFilter) ([]domain.ActivityLog, error) {
	args := m.Called(ctx, f)
	l, _ := args.Get(0).([]domain.ActivityLog)
	return l, args.Error(1)
}

type MockSettingsService struct {
	mock.Mock
	settings.Service
}

func (m *MockSettingsService) Get(ctx context.Context, key string, def domain.SettingValue) domain.SettingValue {
	return m.Called(ctx, key, def).Get(0).(domain.SettingValue)
}

func (m *MockSettingsService) Set(ctx context.Context, key string, v domain.SettingValue) error {
	return m.Called(ctx, key, v).Error(0)
}

func (m *MockSettingsService) GetAll(ctx context.Context) ([]domain.Setting, error) {
	args := m.Called(ctx)
	s, _ := args.Get(0).([]domain.Setting)
	return s, args.Error(1)
}

func (m *MockSettingsService) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

type MockFactionRepo struct {
	mock.Mock
	repository.Faction
}

func (m *MockFactionRepo) Create(ctx context.Context, f domain.Faction) (*domain.Faction, error) {
	args := m.Called(ctx, f)
	out, _ := args.Get(0).(*domain.Faction)
	return out, args.Error(1)
}

func (m *MockFactionRepo) GetByID(ctx context.Context, id int64) (*domain.Faction, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(*domain.Faction)
	return out, args.Error(1)
}

func (m *MockFactionRepo) List(ctx context.Context) ([]domain.Faction, error) {
	args := m.Called(ctx)
	out, _ := args.Get(0).([]domain.Faction)
	return out, args.Error(1)
}

func (m *MockFactionRepo) AdjustFunds(ctx context.Context, id int64, delta decimal.Decimal) (decimal.Decimal, error) {
	args := m.Called(ctx, id, delta.String())
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

type MockSessions struct {
	mock.Mock
}

func (m *MockSessions) Active() []session.Info {
	s, _ := m.Called().Get(0).([]session.Info)
	return s
}

func (m *MockSessions) Save(ctx context.Context, handle string) error {
	return m.Called(ctx, handle).Error(0)
}

func (m *MockSessions) Disconnect(ctx context.Context, handle, reason string) error {
	return m.Called(ctx, handle, reason).Error(0)
}

type MockPinger struct {
	mock.Mock
}

func (m *MockPinger) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type stubReports struct {
	all []observability.Report
}

func (s stubReports) Snapshot() []observability.Report { return s.all }

func (s stubReports) Errors() []observability.Report {
	var out []observability.Report
	for _, r := range s.all {
		if !r.Slow {
			out = append(out, r)
		}
	}
	return out
}
