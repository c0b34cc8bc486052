package domain

import "time"

// Rotation is a vehicle heading expressed as Euler angles.
type Rotation struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Mods maps a modification slot to the variant installed in it.
type Mods map[int]int

// VehicleCondition holds the bounded wear values of a vehicle.
type VehicleCondition struct {
	Fuel         float64 `json:"fuel"`
	EngineHealth float64 `json:"engine_health"`
	BodyHealth   float64 `json:"body_health"`
}

// Vehicle condition bounds.
const (
	MaxFuel         = 100.0
	MaxEngineHealth = 1000.0
	MaxBodyHealth   = 1000.0
	// Engines can be damaged below zero in game, down to this floor.
	MinEngineHealth = -4000.0
)

// Clamp forces every value into its legal range.
func (c VehicleCondition) Clamp() VehicleCondition {
	return VehicleCondition{
		Fuel:         clamp(c.Fuel, 0, MaxFuel),
		EngineHealth: clamp(c.EngineHealth, MinEngineHealth, MaxEngineHealth),
		BodyHealth:   clamp(c.BodyHealth, 0, MaxBodyHealth),
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Vehicle is a persistent vehicle. OwnerID is nil once the owner was deleted.
type Vehicle struct {
	ID        int64            `json:"id"`
	OwnerID   *int64           `json:"owner_id,omitempty"`
	Model     string           `json:"model"`
	Plate     string           `json:"plate"`
	Position  Position         `json:"position"`
	Rotation  Rotation         `json:"rotation"`
	Dimension int              `json:"dimension"`
	Color1    int              `json:"color1"`
	Color2    int              `json:"color2"`
	Condition VehicleCondition `json:"condition"`
	Locked    bool             `json:"locked"`
	Engine    bool             `json:"engine"`
	Mods      Mods             `json:"mods"`
	CreatedAt time.Time        `json:"created_at"`
}

// NewVehicle is the input to vehicle creation.
type NewVehicle struct {
	Model     string   `json:"model" validate:"required,max=64"`
	Plate     string   `json:"plate,omitempty" validate:"omitempty,max=8"`
	Position  Position `json:"position"`
	Rotation  Rotation `json:"rotation"`
	Dimension int      `json:"dimension"`
	Color1    int      `json:"color1" validate:"min=0"`
	Color2    int      `json:"color2" validate:"min=0"`
}

// VehicleSnapshot is the live state written back on autosave and despawn.
// A nil Mods leaves the stored mods untouched.
type VehicleSnapshot struct {
	Position  Position
	Rotation  Rotation
	Dimension int
	Condition VehicleCondition
	Locked    bool
	Engine    bool
	Mods      Mods
}

// VehicleUpdate names the mutable vehicle columns. The owner is changed only
// through an ownership transfer, and ID, plate and creation time never change.
type VehicleUpdate struct {
	Model     *string
	Position  *Position
	Rotation  *Rotation
	Dimension *int
	Color1    *int
	Color2    *int
	Condition *VehicleCondition
	Locked    *bool
	Engine    *bool
	Mods      Mods
}

// IsEmpty reports whether the update carries no fields.
func (u VehicleUpdate) IsEmpty() bool {
	return u.Model == nil && u.Position == nil && u.Rotation == nil &&
		u.Dimension == nil && u.Color1 == nil && u.Color2 == nil &&
		u.Condition == nil && u.Locked == nil && u.Engine == nil && u.Mods == nil
}
