package session

import (
	"time"

	"github.com/osse101/GameVault_Go/internal/domain"
)

// LivePlayer is the game-engine side of a connected player. The manager only
// reads state it needs to save and pushes loaded or changed state back.
type LivePlayer interface {
	Handle() string
	Name() string
	PersistentID() int64
	SetPersistentID(id int64)
	Position() domain.Position
	Dimension() int
	Health() int
	Armor() int
	SetBalance(balance domain.Balance)
	Apply(state LoadedState)
}

// LoadedState is pushed into the live entity when login completes
type LoadedState struct {
	PlayerID   int64
	Created    bool
	Position   domain.Position
	Dimension  int
	Health     int
	Armor      int
	AdminLevel int
	Balance    domain.Balance
	Inventory  []domain.InventoryStack
}

// Info is a read-only view of a session
type Info struct {
	PlayerID   int64               `json:"player_id"`
	Handle     string              `json:"handle"`
	Name       string              `json:"name"`
	State      domain.SessionState `json:"-"`
	StateName  string              `json:"state"`
	LoggedInAt time.Time           `json:"logged_in_at"`
}

// Session is one connected player. Its fields are guarded by the manager.
type Session struct {
	playerID   int64
	handle     string
	name       string
	state      domain.SessionState
	loggedInAt time.Time
	live       LivePlayer
}

func (s *Session) info() Info {
	return Info{
		PlayerID:   s.playerID,
		Handle:     s.handle,
		Name:       s.name,
		State:      s.state,
		StateName:  s.state.String(),
		LoggedInAt: s.loggedInAt,
	}
}

func (s *Session) transition(next domain.SessionState) error {
	st, err := s.state.Transition(next)
	if err != nil {
		return err
	}
	s.state = st
	return nil
}

// snapshot reads the state written back on save
func (s *Session) snapshot() domain.PlayerSnapshot {
	return domain.PlayerSnapshot{
		Position:  s.live.Position(),
		Dimension: s.live.Dimension(),
		Health:    s.live.Health(),
		Armor:     s.live.Armor(),
	}
}
