package ban

// Operation labels
const (
	OpBan = "ban.create"
)

// MaxReasonLength matches the bans.reason column
const MaxReasonLength = 255

// JobNameSweep labels the expired-ban sweep in logs
const JobNameSweep = "ban_sweep"

// Log messages
const (
	LogMsgPlayerBanned       = "Player banned"
	LogMsgBanLifted          = "Ban lifted"
	LogMsgExpiredBansSwept   = "Expired bans removed"
	LogMsgEventPublishFailed = "Failed to publish ban event"
)
