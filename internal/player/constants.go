package player

import "time"

// Operation labels
const (
	OpCreate         = "player.create"
	OpLookupOrCreate = "player.lookup_or_create"
	OpUpdate         = "player.update"
)

// Lookup-or-create retries after losing a create race on the handle
const MaxLookupAttempts = 3

// Handle cache defaults
const (
	DefaultCacheSize = 1024
	DefaultCacheTTL  = 10 * time.Minute
)

// Field limits matching the players table
const (
	MaxHandleLength = 255
	MaxNameLength   = 255
	MaxVital        = 100
)

// Log messages
const (
	LogMsgPlayerCreated    = "Player created"
	LogMsgLostCreateRace   = "Handle created concurrently, retrying lookup"
	LogMsgPlayerDeleted    = "Player deleted"
	LogMsgCacheInvalidated = "Handle cache entry invalidated"
)
