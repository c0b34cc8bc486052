package inventory

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/GameVault_Go/internal/domain"
	"github.com/osse101/GameVault_Go/internal/repository"
)

// MockRepository implements repository.Inventory for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetStacks(ctx context.Context, ownerID int64) ([]domain.InventoryStack, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InventoryStack), args.Error(1)
}

func (m *MockRepository) GetStack(ctx context.Context, key domain.StackKey) (*domain.InventoryStack, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryStack), args.Error(1)
}

func (m *MockRepository) CountItem(ctx context.Context, ownerID int64, itemName string) (int, error) {
	args := m.Called(ctx, ownerID, itemName)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) BeginInventoryTx(ctx context.Context) (repository.InventoryTx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.InventoryTx), args.Error(1)
}

// MockTx implements repository.InventoryTx for testing
type MockTx struct {
	mock.Mock
}

func (m *MockTx) GetStackForUpdate(ctx context.Context, key domain.StackKey) (*domain.InventoryStack, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryStack), args.Error(1)
}

func (m *MockTx) GetStackByIDForUpdate(ctx context.Context, stackID int64) (*domain.InventoryStack, error) {
	args := m.Called(ctx, stackID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryStack), args.Error(1)
}

func (m *MockTx) AddToStack(ctx context.Context, key domain.StackKey, metadata domain.ItemMetadata, qty int) (int64, error) {
	args := m.Called(ctx, key, metadata, qty)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTx) SetQuantity(ctx context.Context, stackID int64, qty int) error {
	return m.Called(ctx, stackID, qty).Error(0)
}

func (m *MockTx) SetMetadata(ctx context.Context, stackID int64, metadata domain.ItemMetadata, fingerprint string) error {
	return m.Called(ctx, stackID, metadata, fingerprint).Error(0)
}

func (m *MockTx) DeleteStack(ctx context.Context, stackID int64) error {
	return m.Called(ctx, stackID).Error(0)
}

func (m *MockTx) DeleteOwnerStacks(ctx context.Context, ownerID int64) (int64, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTx) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockTx) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
