package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// ItemMetadata holds the variable attributes of an item (durability, tint, serial...).
type ItemMetadata map[string]any

// EmptyFingerprint is the fingerprint of an item without attributes.
const EmptyFingerprint = "{}"

// Fingerprint returns the canonical serialization used as part of stack identity.
// Object keys are sorted at every depth, so equal attribute sets always produce
// equal fingerprints and any difference, even cosmetic, produces a different one.
func (m ItemMetadata) Fingerprint() (string, error) {
	if len(m) == 0 {
		return EmptyFingerprint, nil
	}
	data, err := json.Marshal(map[string]any(m))
	if err != nil {
		return "", fmt.Errorf("%w: metadata is not serializable: %v", ErrInvalidInput, err)
	}
	return string(data), nil
}

// ParseItemMetadata decodes a stored fingerprint back into metadata.
func ParseItemMetadata(fingerprint string) (ItemMetadata, error) {
	if fingerprint == "" || fingerprint == EmptyFingerprint {
		return ItemMetadata{}, nil
	}
	var m ItemMetadata
	if err := json.Unmarshal([]byte(fingerprint), &m); err != nil {
		return nil, fmt.Errorf("failed to decode item metadata: %w", err)
	}
	return m, nil
}

// StackKey identifies one inventory stack.
type StackKey struct {
	OwnerID     int64
	ItemName    string
	Fingerprint string
}

// InventoryStack is some positive quantity of one item variant held by one player.
type InventoryStack struct {
	ID          int64        `json:"id"`
	OwnerID     int64        `json:"owner_id"`
	ItemName    string       `json:"item_name"`
	Quantity    int          `json:"quantity"`
	Metadata    ItemMetadata `json:"metadata"`
	Fingerprint string       `json:"-"`
	CreatedAt   time.Time    `json:"created_at"`
}

// Key returns the identity of the stack.
func (s InventoryStack) Key() StackKey {
	return StackKey{OwnerID: s.OwnerID, ItemName: s.ItemName, Fingerprint: s.Fingerprint}
}
