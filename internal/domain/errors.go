package domain

import (
	"errors"
	"fmt"
)

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	ErrMsgNotFound = "not found"

	// Ledger errors
	ErrMsgInsufficientFunds = "insufficient funds"
	ErrMsgInvalidAmount     = "invalid amount"

	// Inventory errors
	ErrMsgInsufficientQuantity = "insufficient quantity"

	// Identity errors
	ErrMsgDuplicateHandle = "duplicate account handle"
	ErrMsgDuplicatePlate  = "duplicate vehicle plate"

	// Storage errors
	ErrMsgTransactionAborted  = "transaction aborted"
	ErrMsgConnectivityFailure = "storage connectivity failure"
	ErrMsgTxClosed            = "tx is closed"

	// Session errors
	ErrMsgInvalidTransition = "invalid session state transition"
	ErrMsgSessionActive     = "session already active"
	ErrMsgPlayerBanned      = "player is banned"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrNotFound = errors.New(ErrMsgNotFound)

	// Specific absences. All of them satisfy errors.Is(err, ErrNotFound).
	ErrPlayerNotFound  = fmt.Errorf("player %w", ErrNotFound)
	ErrAccountNotFound = fmt.Errorf("account %w", ErrNotFound)
	ErrItemNotFound    = fmt.Errorf("item %w", ErrNotFound)
	ErrVehicleNotFound = fmt.Errorf("vehicle %w", ErrNotFound)
	ErrSettingNotFound = fmt.Errorf("setting %w", ErrNotFound)
	ErrFactionNotFound = fmt.Errorf("faction %w", ErrNotFound)
	ErrBanNotFound     = fmt.Errorf("ban %w", ErrNotFound)
	ErrSessionNotFound = fmt.Errorf("session %w", ErrNotFound)

	ErrInsufficientFunds    = errors.New(ErrMsgInsufficientFunds)
	ErrInsufficientQuantity = errors.New(ErrMsgInsufficientQuantity)
	ErrInvalidAmount        = errors.New(ErrMsgInvalidAmount)
	ErrDuplicateHandle      = errors.New(ErrMsgDuplicateHandle)
	ErrDuplicatePlate       = errors.New(ErrMsgDuplicatePlate)

	ErrTransactionAborted  = errors.New(ErrMsgTransactionAborted)
	ErrConnectivityFailure = errors.New(ErrMsgConnectivityFailure)

	ErrInvalidTransition = errors.New(ErrMsgInvalidTransition)
	ErrSessionActive     = errors.New(ErrMsgSessionActive)
	ErrPlayerBanned      = errors.New(ErrMsgPlayerBanned)

	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)

// IsBusinessError reports whether err is an expected outcome of a rule check
// rather than an infrastructure failure.
func IsBusinessError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, ErrInsufficientFunds),
		errors.Is(err, ErrInsufficientQuantity),
		errors.Is(err, ErrInvalidAmount),
		errors.Is(err, ErrDuplicateHandle),
		errors.Is(err, ErrDuplicatePlate),
		errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrPlayerBanned),
		errors.Is(err, ErrInvalidTransition),
		errors.Is(err, ErrSessionActive):
		return true
	}
	return false
}
