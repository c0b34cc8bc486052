package session

// Operation labels
const (
	OpLogin      = "session.login"
	OpSave       = "session.save"
	OpDisconnect = "session.disconnect"
)

// Job names used in metrics and logs
const (
	JobNameAutosave = "player_autosave"
	JobNamePlaytime = "player_playtime"
)

// DefaultSaveConcurrency bounds parallel saves during one autosave run
const DefaultSaveConcurrency = 8

// PlaytimeTickMinutes is credited to every active session per tick
const PlaytimeTickMinutes = 1

// Event detail keys
const (
	DetailReason  = "reason"
	DetailKiller  = "killer"
	DetailCreated = "created"
)

// Log messages
const (
	LogMsgLoginStarted       = "Player login started"
	LogMsgLoginSucceeded     = "Player logged in"
	LogMsgLoginFailed        = "Player login failed"
	LogMsgPlayerCreated      = "New player created"
	LogMsgSaved              = "Player data saved"
	LogMsgFinalSaveFailed    = "Final save failed, disconnecting anyway"
	LogMsgDisconnected       = "Player disconnected"
	LogMsgPlayerDied         = "Player died"
	LogMsgAutosaveCompleted  = "Player autosave completed"
	LogMsgAutosaveFailed     = "Autosave failed for player"
	LogMsgPlaytimeFailed     = "Failed to add play time"
	LogMsgEventPublishFailed = "Failed to publish session event"
)
