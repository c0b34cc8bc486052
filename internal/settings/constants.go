package settings

// MaxKeyLength matches the settings.key column
const MaxKeyLength = 64

// OpSet labels reported Set failures
const OpSet = "settings.set"

// Log messages
const (
	LogMsgSettingFallback     = "Setting unavailable, using default"
	LogMsgSettingKindMismatch = "Setting has unexpected kind, using default"
	LogMsgSettingChanged      = "Setting changed"
	LogMsgSettingsSeeded      = "Default settings seeded"
)
