package domain

import "time"

// Position is a point in the game world.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Player is the persistent record of a game account.
// Handle is the external platform identity and never changes after creation.
type Player struct {
	ID          int64      `json:"id"`
	Handle      string     `json:"handle"`
	Name        string     `json:"name"`
	Balance     Balance    `json:"balance"`
	Health      int        `json:"health"`
	Armor       int        `json:"armor"`
	Hunger      int        `json:"hunger"`
	Thirst      int        `json:"thirst"`
	Position    Position   `json:"position"`
	Dimension   int        `json:"dimension"`
	AdminLevel  int        `json:"admin_level"`
	FactionID   *int64     `json:"faction_id,omitempty"`
	FactionRank int        `json:"faction_rank"`
	JobID       *int64     `json:"job_id,omitempty"`
	JobRank     int        `json:"job_rank"`
	PlayTime    int64      `json:"play_time"` // minutes
	CreatedAt   time.Time  `json:"created_at"`
	LastLogin   *time.Time `json:"last_login,omitempty"`
}

// PlayerStats are the vital values written together.
type PlayerStats struct {
	Health int `json:"health" validate:"min=0,max=100"`
	Armor  int `json:"armor" validate:"min=0,max=100"`
	Hunger int `json:"hunger" validate:"min=0,max=100"`
	Thirst int `json:"thirst" validate:"min=0,max=100"`
}

// PlayerSnapshot is what autosave and disconnect write back from a live session.
// Balances are absent: the ledger owns them and live copies are only notified.
type PlayerSnapshot struct {
	Position  Position
	Dimension int
	Health    int
	Armor     int
}

// PlayerUpdate names the mutable player columns. A nil field is left untouched.
// Handle, ID and CreatedAt are absent on purpose: they cannot be changed.
type PlayerUpdate struct {
	Name        *string
	Health      *int
	Armor       *int
	Hunger      *int
	Thirst      *int
	Position    *Position
	Dimension   *int
	AdminLevel  *int
	FactionID   *int64
	FactionRank *int
	JobID       *int64
	JobRank     *int
}

// IsEmpty reports whether the update carries no fields.
func (u PlayerUpdate) IsEmpty() bool {
	return u.Name == nil && u.Health == nil && u.Armor == nil &&
		u.Hunger == nil && u.Thirst == nil && u.Position == nil &&
		u.Dimension == nil && u.AdminLevel == nil && u.FactionID == nil &&
		u.FactionRank == nil && u.JobID == nil && u.JobRank == nil
}

// PlayerRanking is a row of a leaderboard query.
type PlayerRanking struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	PlayTime int64   `json:"play_time,omitempty"`
	Balance  Balance `json:"balance"`
}

// Default vitals for a newly created player.
const (
	DefaultHealth = 100
	DefaultHunger = 100
	DefaultThirst = 100
)
