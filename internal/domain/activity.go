package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Activity actions recorded in the activity log.
const (
	ActionAccountCreated     = "account_created"
	ActionLoggedIn           = "logged_in"
	ActionDataSaved          = "data_saved"
	ActionDisconnected       = "disconnected"
	ActionDied               = "died"
	ActionVehicleCreated     = "vehicle_created"
	ActionVehicleTransferred = "vehicle_transferred"
	ActionVehicleDeleted     = "vehicle_deleted"
	ActionBanned             = "banned"
	ActionUnbanned           = "unbanned"
)

// ActivityLog is one audit row.
type ActivityLog struct {
	ID        int64          `json:"id"`
	PlayerID  *int64         `json:"player_id,omitempty"`
	Action    string         `json:"action"`
	Details   map[string]any `json:"details,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// ActivityFilter narrows activity queries. Zero values mean no constraint.
type ActivityFilter struct {
	PlayerID *int64
	Action   string
	Since    *time.Time
	Limit    int
}

// Ban excludes a player from logging in until it expires or is lifted.
type Ban struct {
	ID        int64      `json:"id"`
	PlayerID  *int64     `json:"player_id,omitempty"`
	AdminID   *int64     `json:"admin_id,omitempty"`
	Reason    string     `json:"reason"`
	IP        string     `json:"ip,omitempty"`
	HWID      string     `json:"hwid,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"` // nil means permanent
	CreatedAt time.Time  `json:"created_at"`
}

// ActiveAt reports whether the ban is in force at t.
func (b Ban) ActiveAt(t time.Time) bool {
	return b.ExpiresAt == nil || b.ExpiresAt.After(t)
}

// Faction is a player organisation with a shared treasury.
type Faction struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Type         string          `json:"type"`
	Funds        decimal.Decimal `json:"funds"`
	Headquarters *Position       `json:"headquarters,omitempty"`
	Color        string          `json:"color,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}
