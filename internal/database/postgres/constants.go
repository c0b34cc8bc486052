package postgres

// Constraint names from the initial migration
const (
	ConstraintPlayersHandle = "players_handle_key"
	ConstraintVehiclesPlate = "vehicles_plate_key"
	ConstraintFactionsName  = "factions_name_key"
)

// Operation labels passed to the gateway for transactional statements
const (
	OpPlayerCreate      = "player.create"
	OpVehicleCreate     = "vehicle.create"
	OpVehicleSetOwner   = "vehicle.set_owner"
	OpFactionCreate     = "faction.create"
	OpFactionAdjustFund = "faction.adjust_funds"
)

// Query limits
const (
	DefaultListLimit = 100
	MaxListLimit     = 1000
)

// Error Messages
const (
	ErrMsgInvalidMoneyValue  = "invalid money value"
	ErrMsgFactionNameTaken   = "faction name already taken"
	ErrMsgFailedToEncodeJSON = "failed to encode json column"
)
