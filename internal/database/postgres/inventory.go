package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/GameVault_Go/internal/database"
	"github.com/osse101/GameVault_Go/internal/domain"
	"github.com/osse101/GameVault_Go/internal/repository"
)

const stackColumns = `id, player_id, item_name, quantity, metadata_fingerprint, created_at`

// InventoryRepository implements repository.Inventory
type InventoryRepository struct {
	gw *database.Gateway
}

// NewInventoryRepository creates a new InventoryRepository
func NewInventoryRepository(gw *database.Gateway) *InventoryRepository {
	return &InventoryRepository{gw: gw}
}

func scanStack(row pgx.Row) (*domain.InventoryStack, error) {
	var s domain.InventoryStack
	if err := row.Scan(&s.ID, &s.OwnerID, &s.ItemName, &s.Quantity, &s.Fingerprint, &s.CreatedAt); err != nil {
		return nil, err
	}
	md, err := domain.ParseItemMetadata(s.Fingerprint)
	if err != nil {
		return nil, err
	}
	s.Metadata = md
	return &s, nil
}

// scanOptionalStack returns nil, nil on a miss
func scanOptionalStack(row pgx.Row) (*domain.InventoryStack, error) {
	s, err := scanStack(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return s, nil
}

// BeginInventoryTx starts a new transaction
func (r *InventoryRepository) BeginInventoryTx(ctx context.Context) (repository.InventoryTx, error) {
	tx, err := r.gw.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return &InventoryTx{tx: tx}, nil
}

// GetStacks lists every stack of an owner
func (r *InventoryRepository) GetStacks(ctx context.Context, ownerID int64) ([]domain.InventoryStack, error) {
	return queryAll(ctx, r.gw, scanStack,
		`SELECT `+stackColumns+` FROM inventory_stacks WHERE player_id = $1 ORDER BY item_name, id`, ownerID)
}

// GetStack returns nil, nil when the stack does not exist
func (r *InventoryRepository) GetStack(ctx context.Context, key domain.StackKey) (*domain.InventoryStack, error) {
	return scanOptionalStack(r.gw.QueryRow(ctx, `
		SELECT `+stackColumns+` FROM inventory_stacks
		WHERE player_id = $1 AND item_name = $2 AND metadata_fingerprint = $3`,
		key.OwnerID, key.ItemName, key.Fingerprint))
}

// CountItem sums quantity across every metadata variant of an item
func (r *InventoryRepository) CountItem(ctx context.Context, ownerID int64, itemName string) (int, error) {
	var n int
	err := r.gw.QueryRow(ctx, `
		SELECT COALESCE(SUM(quantity), 0)::int FROM inventory_stacks
		WHERE player_id = $1 AND item_name = $2`, ownerID, itemName).Scan(&n)
	return n, err
}

// InventoryTx implements repository.InventoryTx
type InventoryTx struct {
	tx *database.Tx
}

// Commit commits the transaction
func (t *InventoryTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

// Rollback rolls back the transaction
func (t *InventoryTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

// GetStackForUpdate locks the stack row if it exists
func (t *InventoryTx) GetStackForUpdate(ctx context.Context, key domain.StackKey) (*domain.InventoryStack, error) {
	return scanOptionalStack(t.tx.QueryRow(ctx, `
		SELECT `+stackColumns+` FROM inventory_stacks
		WHERE player_id = $1 AND item_name = $2 AND metadata_fingerprint = $3
		FOR UPDATE`,
		key.OwnerID, key.ItemName, key.Fingerprint))
}

// GetStackByIDForUpdate locks the stack row by id
func (t *InventoryTx) GetStackByIDForUpdate(ctx context.Context, stackID int64) (*domain.InventoryStack, error) {
	s, err := scanStack(t.tx.QueryRow(ctx,
		`SELECT `+stackColumns+` FROM inventory_stacks WHERE id = $1 FOR UPDATE`, stackID))
	if err != nil {
		return nil, missing(err, domain.ErrItemNotFound)
	}
	return s, nil
}

// AddToStack inserts the stack, or increments it when the identity already exists
func (t *InventoryTx) AddToStack(ctx context.Context, key domain.StackKey, metadata domain.ItemMetadata, qty int) (int64, error) {
	if metadata == nil {
		metadata = domain.ItemMetadata{}
	}
	var id int64
	err := t.tx.QueryRow(ctx, `
		INSERT INTO inventory_stacks (player_id, item_name, quantity, metadata, metadata_fingerprint)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT ON CONSTRAINT inventory_stacks_identity_key
		DO UPDATE SET quantity = inventory_stacks.quantity + EXCLUDED.quantity
		RETURNING id`,
		key.OwnerID, key.ItemName, qty, metadata, key.Fingerprint).Scan(&id)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return 0, fmt.Errorf("%w: owner %d", domain.ErrPlayerNotFound, key.OwnerID)
		}
		if database.IsNumericOutOfRange(err) {
			return 0, fmt.Errorf("%w: stack %s would exceed the maximum quantity", domain.ErrInvalidAmount, key.ItemName)
		}
		return 0, err
	}
	return id, nil
}

// SetQuantity overwrites the quantity of a locked stack
func (t *InventoryTx) SetQuantity(ctx context.Context, stackID int64, qty int) error {
	tag, err := t.tx.Exec(ctx, `UPDATE inventory_stacks SET quantity = $2 WHERE id = $1`, stackID, qty)
	if err != nil {
		return err
	}
	return mustAffect(tag.RowsAffected(), domain.ErrItemNotFound)
}

// SetMetadata re-keys a stack
func (t *InventoryTx) SetMetadata(ctx context.Context, stackID int64, metadata domain.ItemMetadata, fingerprint string) error {
	if metadata == nil {
		metadata = domain.ItemMetadata{}
	}
	tag, err := t.tx.Exec(ctx,
		`UPDATE inventory_stacks SET metadata = $2, metadata_fingerprint = $3 WHERE id = $1`,
		stackID, metadata, fingerprint)
	if err != nil {
		return err
	}
	return mustAffect(tag.RowsAffected(), domain.ErrItemNotFound)
}

// DeleteStack removes a stack
func (t *InventoryTx) DeleteStack(ctx context.Context, stackID int64) error {
	tag, err := t.tx.Exec(ctx, `DELETE FROM inventory_stacks WHERE id = $1`, stackID)
	if err != nil {
		return err
	}
	return mustAffect(tag.RowsAffected(), domain.ErrItemNotFound)
}

// DeleteOwnerStacks removes every stack of an owner and returns how many went
func (t *InventoryTx) DeleteOwnerStacks(ctx context.Context, ownerID int64) (int64, error) {
	tag, err := t.tx.Exec(ctx, `DELETE FROM inventory_stacks WHERE player_id = $1`, ownerID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
