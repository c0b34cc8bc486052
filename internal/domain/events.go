package domain

// Event type constants used across the application for event bus subscriptions
// and activity logging.
//
// Event types follow the pattern: <entity>.<action> (e.g., "player.logged_in")
const (
	EventTypePlayerCreated      = "player.created"
	EventTypePlayerLoggedIn     = "player.logged_in"
	EventTypePlayerSaved        = "player.saved"
	EventTypePlayerDisconnected = "player.disconnected"
	EventTypePlayerDied         = "player.died"

	EventTypeVehicleCreated     = "vehicle.created"
	EventTypeVehicleTransferred = "vehicle.transferred"
	EventTypeVehicleDeleted     = "vehicle.deleted"

	EventTypePlayerBanned   = "ban.created"
	EventTypePlayerUnbanned = "ban.lifted"
)

// ActionForEvent maps an event type to the activity log action it records.
var ActionForEvent = map[string]string{
	EventTypePlayerCreated:      ActionAccountCreated,
	EventTypePlayerLoggedIn:     ActionLoggedIn,
	EventTypePlayerSaved:        ActionDataSaved,
	EventTypePlayerDisconnected: ActionDisconnected,
	EventTypePlayerDied:         ActionDied,
	EventTypeVehicleCreated:     ActionVehicleCreated,
	EventTypeVehicleTransferred: ActionVehicleTransferred,
	EventTypeVehicleDeleted:     ActionVehicleDeleted,
	EventTypePlayerBanned:       ActionBanned,
	EventTypePlayerUnbanned:     ActionUnbanned,
}
