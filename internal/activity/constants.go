package activity

// Details keys added from typed payloads
const (
	DetailVehicleID     = "vehicle_id"
	DetailModel         = "model"
	DetailPlate         = "plate"
	DetailPreviousOwner = "previous_owner_id"
	DetailBanID         = "ban_id"
	DetailAdminID       = "admin_id"
	DetailReason        = "reason"
	DetailExpiresAt     = "expires_at"
	DetailHandle        = "handle"
	DetailEventID       = "event_id"
)

// Recent limits
const (
	DefaultQueryLimit = 50
	MaxQueryLimit     = 500
)

// JobNameCleanup labels the retention job in logs
const JobNameCleanup = "activity_cleanup"


// Log messages
const (
	LogMsgUnknownPayload      = "Event payload has an unexpected shape, logging without details"
	LogMsgFailedToLogEvent    = "Failed to log event to database"
	LogMsgEventLogged         = "Event logged to database"
	LogMsgCleanupJobStarting  = "Starting activity log cleanup job"
	LogMsgCleanupJobFailed    = "Activity log cleanup failed"
	LogMsgCleanupJobCompleted = "Activity log cleanup completed"
)
