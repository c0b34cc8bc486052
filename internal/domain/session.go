package domain

import "fmt"

// SessionState is a step in a player session's lifecycle.
type SessionState int

const (
	StateDisconnected SessionState = iota
	StateAuthenticating
	StateLoading
	StateActive
	StateSaving
)

var sessionStateNames = [...]string{
	StateDisconnected:   "disconnected",
	StateAuthenticating: "authenticating",
	StateLoading:        "loading",
	StateActive:         "active",
	StateSaving:         "saving",
}

func (s SessionState) String() string {
	if int(s) < len(sessionStateNames) {
		return sessionStateNames[s]
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// allowedTransitions lists every legal edge of the lifecycle.
// Authenticating and Loading may fall back to Disconnected when login fails.
// Saving returns to Active after an autosave and to Disconnected after the final save.
var allowedTransitions = map[SessionState][]SessionState{
	StateDisconnected:   {StateAuthenticating},
	StateAuthenticating: {StateLoading, StateDisconnected},
	StateLoading:        {StateActive, StateDisconnected},
	StateActive:         {StateSaving},
	StateSaving:         {StateActive, StateDisconnected},
}

// CanTransition reports whether moving from s to next is legal.
func (s SessionState) CanTransition(next SessionState) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Transition returns next or ErrInvalidTransition.
func (s SessionState) Transition(next SessionState) (SessionState, error) {
	if !s.CanTransition(next) {
		return s, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s, next)
	}
	return next, nil
}
