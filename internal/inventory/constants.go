package inventory

import "math"

// MaxStackQuantity matches the INTEGER quantity column
const MaxStackQuantity = math.MaxInt32

// Operation labels
const (
	OpAddItem            = "inventory.add"
	OpRemoveItem         = "inventory.remove"
	OpTransferItem       = "inventory.transfer"
	OpUpdateItemMetadata = "inventory.update_metadata"
	OpClearInventory     = "inventory.clear"
)

// Log messages
const (
	LogMsgItemAdded       = "Item added"
	LogMsgItemRemoved     = "Item removed"
	LogMsgItemTransferred = "Item transferred"
	LogMsgStackRekeyed    = "Stack metadata updated"
	LogMsgStacksMerged    = "Stack merged into existing stack"
	LogMsgInventoryClear  = "Inventory cleared"
)

// MaxItemNameLength matches the item_name column
const MaxItemNameLength = 100
