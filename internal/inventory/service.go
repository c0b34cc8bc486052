// Package inventory implements item stacks. A stack is identified by its
// owner, item name and the canonical fingerprint of its metadata, and is
// never stored with a non-positive quantity.
package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/osse101/GameVault_Go/internal/domain"
	"github.com/osse101/GameVault_Go/internal/logger"
	"github.com/osse101/GameVault_Go/internal/observability"
	"github.com/osse101/GameVault_Go/internal/repository"
)

// Service defines the inventory operations
type Service interface {
	AddItem(ctx context.Context, ownerID int64, itemName string, qty int, metadata domain.ItemMetadata) (int64, error)
	RemoveItem(ctx context.Context, ownerID int64, itemName string, qty int, metadata domain.ItemMetadata) error
	TransferItem(ctx context.Context, fromID, toID int64, itemName string, qty int, metadata domain.ItemMetadata) error
	HasItem(ctx context.Context, ownerID int64, itemName string, qty int, metadata domain.ItemMetadata) (bool, error)
	CountItem(ctx context.Context, ownerID int64, itemName string) (int, error)
	GetPlayerItems(ctx context.Context, ownerID int64) ([]domain.InventoryStack, error)
	GetPlayerItem(ctx context.Context, ownerID int64, itemName string, metadata domain.ItemMetadata) (*domain.InventoryStack, error)
	UpdateItemMetadata(ctx context.Context, stackID int64, metadata domain.ItemMetadata) (int64, error)
	ClearInventory(ctx context.Context, ownerID int64) (int64, error)
}

type service struct {
	repo     repository.Inventory
	reporter observability.Reporter
}

// NewService creates a new inventory service
func NewService(repo repository.Inventory, reporter observability.Reporter) Service {
	if reporter == nil {
		reporter = observability.Nop{}
	}
	return &service{repo: repo, reporter: reporter}
}

// AddItem increments the matching stack or creates it and returns the stack id.
// A zero quantity is a no-op and returns 0.
func (s *service) AddItem(ctx context.Context, ownerID int64, itemName string, qty int, metadata domain.ItemMetadata) (int64, error) {
	if qty == 0 {
		return 0, nil
	}
	key, err := stackKey(ownerID, itemName, qty, metadata)
	if err != nil {
		return 0, s.fail(ctx, OpAddItem, err)
	}

	var stackID int64
	err = s.withTx(ctx, OpAddItem, func(tx repository.InventoryTx) error {
		id, err := tx.AddToStack(ctx, key, metadata, qty)
		stackID = id
		return err
	})
	if err != nil {
		return 0, err
	}

	s.succeed(OpAddItem)
	logger.FromContext(ctx).Debug(LogMsgItemAdded, "owner_id", ownerID, "item", itemName, "quantity", qty, "stack_id", stackID)
	return stackID, nil
}

// RemoveItem decrements the matching stack and deletes it when it reaches zero
func (s *service) RemoveItem(ctx context.Context, ownerID int64, itemName string, qty int, metadata domain.ItemMetadata) error {
	if qty == 0 {
		return nil
	}
	key, err := stackKey(ownerID, itemName, qty, metadata)
	if err != nil {
		return s.fail(ctx, OpRemoveItem, err)
	}

	err = s.withTx(ctx, OpRemoveItem, func(tx repository.InventoryTx) error {
		stack, err := tx.GetStackForUpdate(ctx, key)
		if err != nil {
			return err
		}
		return takeFrom(ctx, tx, stack, key, qty)
	})
	if err != nil {
		return err
	}

	s.succeed(OpRemoveItem)
	logger.FromContext(ctx).Debug(LogMsgItemRemoved, "owner_id", ownerID, "item", itemName, "quantity", qty)
	return nil
}

// TransferItem moves qty of one stack to another owner in one transaction.
// Both stacks are locked in ascending owner id order and the source is
// debited before the destination is touched.
func (s *service) TransferItem(ctx context.Context, fromID, toID int64, itemName string, qty int, metadata domain.ItemMetadata) error {
	if fromID == toID {
		return s.fail(ctx, OpTransferItem, fmt.Errorf("%w: cannot transfer to the same owner", domain.ErrInvalidInput))
	}
	if qty == 0 {
		return nil
	}
	src, err := stackKey(fromID, itemName, qty, metadata)
	if err != nil {
		return s.fail(ctx, OpTransferItem, err)
	}
	dst := src
	dst.OwnerID = toID

	err = s.withTx(ctx, OpTransferItem, func(tx repository.InventoryTx) error {
		var source *domain.InventoryStack
		for _, key := range lockOrder(src, dst) {
			stack, err := tx.GetStackForUpdate(ctx, key)
			if err != nil {
				return err
			}
			if key == src {
				source = stack
			}
		}

		if err := takeFrom(ctx, tx, source, src, qty); err != nil {
			return err
		}
		_, err := tx.AddToStack(ctx, dst, metadata, qty)
		return err
	})
	if err != nil {
		return err
	}

	s.succeed(OpTransferItem)
	logger.FromContext(ctx).Debug(LogMsgItemTransferred, "from", fromID, "to", toID, "item", itemName, "quantity", qty)
	return nil
}

// HasItem reports whether the exact stack holds at least qty. Only a missing
// stack yields false; invalid metadata and storage failures are returned.
func (s *service) HasItem(ctx context.Context, ownerID int64, itemName string, qty int, metadata domain.ItemMetadata) (bool, error) {
	stack, err := s.GetPlayerItem(ctx, ownerID, itemName, metadata)
	if errors.Is(err, domain.ErrItemNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return stack.Quantity >= qty, nil
}

// CountItem sums the quantity of every variant of itemName
func (s *service) CountItem(ctx context.Context, ownerID int64, itemName string) (int, error) {
	return s.repo.CountItem(ctx, ownerID, itemName)
}

func (s *service) GetPlayerItems(ctx context.Context, ownerID int64) ([]domain.InventoryStack, error) {
	return s.repo.GetStacks(ctx, ownerID)
}

// GetPlayerItem returns ErrItemNotFound when the exact stack does not exist
func (s *service) GetPlayerItem(ctx context.Context, ownerID int64, itemName string, metadata domain.ItemMetadata) (*domain.InventoryStack, error) {
	fp, err := metadata.Fingerprint()
	if err != nil {
		return nil, err
	}
	stack, err := s.repo.GetStack(ctx, domain.StackKey{OwnerID: ownerID, ItemName: itemName, Fingerprint: fp})
	if err != nil {
		return nil, err
	}
	if stack == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrItemNotFound, itemName)
	}
	return stack, nil
}

// UpdateItemMetadata replaces the metadata of a stack. When another stack of
// the same owner and item already carries the new metadata, the two are
// merged and the id of the surviving stack is returned.
func (s *service) UpdateItemMetadata(ctx context.Context, stackID int64, metadata domain.ItemMetadata) (int64, error) {
	fp, err := metadata.Fingerprint()
	if err != nil {
		return 0, s.fail(ctx, OpUpdateItemMetadata, err)
	}

	var result int64
	err = s.withTx(ctx, OpUpdateItemMetadata, func(tx repository.InventoryTx) error {
		stack, err := tx.GetStackByIDForUpdate(ctx, stackID)
		if err != nil {
			return err
		}
		result = stack.ID
		if stack.Fingerprint == fp {
			return nil
		}

		target, err := tx.GetStackForUpdate(ctx, domain.StackKey{OwnerID: stack.OwnerID, ItemName: stack.ItemName, Fingerprint: fp})
		if err != nil {
			return err
		}
		if target == nil {
			return tx.SetMetadata(ctx, stack.ID, metadata, fp)
		}

		merged := target.Quantity + stack.Quantity
		if merged > MaxStackQuantity {
			return fmt.Errorf("%w: merged quantity %d exceeds %d", domain.ErrInvalidAmount, merged, MaxStackQuantity)
		}
		if err := tx.SetQuantity(ctx, target.ID, merged); err != nil {
			return err
		}
		result = target.ID
		logger.FromContext(ctx).Debug(LogMsgStacksMerged, "from_stack", stack.ID, "into_stack", target.ID)
		return tx.DeleteStack(ctx, stack.ID)
	})
	if err != nil {
		return 0, err
	}

	s.succeed(OpUpdateItemMetadata)
	logger.FromContext(ctx).Debug(LogMsgStackRekeyed, "stack_id", stackID, "result_id", result)
	return result, nil
}

// ClearInventory deletes every stack of the owner and returns how many went
func (s *service) ClearInventory(ctx context.Context, ownerID int64) (int64, error) {
	var removed int64
	err := s.withTx(ctx, OpClearInventory, func(tx repository.InventoryTx) error {
		var err error
		removed, err = tx.DeleteOwnerStacks(ctx, ownerID)
		return err
	})
	if err != nil {
		return 0, err
	}

	s.succeed(OpClearInventory)
	logger.FromContext(ctx).Info(LogMsgInventoryClear, "owner_id", ownerID, "stacks", removed)
	return removed, nil
}

// takeFrom debits a locked stack, deleting it when emptied
func takeFrom(ctx context.Context, tx repository.InventoryTx, stack *domain.InventoryStack, key domain.StackKey, qty int) error {
	if stack == nil {
		return fmt.Errorf("%w: %s for owner %d", domain.ErrItemNotFound, key.ItemName, key.OwnerID)
	}
	if qty > stack.Quantity {
		return fmt.Errorf("%w: have %d %s, need %d", domain.ErrInsufficientQuantity, stack.Quantity, key.ItemName, qty)
	}
	if qty == stack.Quantity {
		return tx.DeleteStack(ctx, stack.ID)
	}
	return tx.SetQuantity(ctx, stack.ID, stack.Quantity-qty)
}
