package repository

import (
	"context"

	"github.com/osse101/GameVault_Go/internal/domain"
)

// Inventory defines persistence for item stacks
type Inventory interface {
	GetStacks(ctx context.Context, ownerID int64) ([]domain.InventoryStack, error)
	GetStack(ctx context.Context, key domain.StackKey) (*domain.InventoryStack, error)
	CountItem(ctx context.Context, ownerID int64, itemName string) (int, error)
	BeginInventoryTx(ctx context.Context) (InventoryTx, error)
}

// InventoryTx defines the locked operations on stacks
type InventoryTx interface {
	Tx
	// GetStackForUpdate locks the stack. Returns nil, nil when absent.
	GetStackForUpdate(ctx context.Context, key domain.StackKey) (*domain.InventoryStack, error)
	GetStackByIDForUpdate(ctx context.Context, stackID int64) (*domain.InventoryStack, error)
	// AddToStack inserts the stack or increments it if a concurrent insert won.
	AddToStack(ctx context.Context, key domain.StackKey, metadata domain.ItemMetadata, qty int) (int64, error)
	SetQuantity(ctx context.Context, stackID int64, qty int) error
	SetMetadata(ctx context.Context, stackID int64, metadata domain.ItemMetadata, fingerprint string) error
	DeleteStack(ctx context.Context, stackID int64) error
	DeleteOwnerStacks(ctx context.Context, ownerID int64) (int64, error)
}
