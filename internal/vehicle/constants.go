package vehicle

// Operation labels
const (
	OpCreate            = "vehicle.create"
	OpTransferOwnership = "vehicle.transfer_ownership"
	OpSpawn             = "vehicle.spawn"
)

// Plates are three letters followed by three digits
const (
	plateLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	plateDigits  = "0123456789"
	// MaxPlateAttempts bounds regeneration after plate collisions
	MaxPlateAttempts = 5
	MaxPlateLength   = 8
)

// JobNameAutosave labels the vehicle autosave in metrics
const JobNameAutosave = "vehicle_autosave"

// Log messages
const (
	LogMsgVehicleCreated     = "Vehicle created"
	LogMsgPlateCollision     = "Generated plate already taken, regenerating"
	LogMsgOwnershipChanged   = "Vehicle ownership transferred"
	LogMsgVehicleDeleted     = "Vehicle deleted"
	LogMsgVehicleSpawned     = "Vehicle spawned"
	LogMsgVehicleDespawned   = "Vehicle despawned"
	LogMsgSpawnFailed        = "Failed to spawn vehicle"
	LogMsgAutosaveCompleted  = "Vehicle autosave completed"
	LogMsgEventPublishFailed = "Failed to publish vehicle event"
)
