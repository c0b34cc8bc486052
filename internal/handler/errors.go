package handler

import (
	"errors"
	"net/http"

	"github.com/osse101/GameVault_Go/internal/domain"
	"github.com/osse101/GameVault_Go/internal/logger"
)

// Request-level messages. These never carry internal error details.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgMissingQueryParam     = "Missing %s query parameter"
	ErrMsgInvalidID             = "Invalid id"
	ErrMsgInvalidLimit          = "Invalid limit parameter"
	ErrMsgInvalidSince          = "Invalid since parameter, expected RFC3339"
	ErrMsgInvalidBucket         = "bucket must be cash or bank"
	ErrMsgSettingNotFound       = "Setting not found"
	ErrMsgSessionNotFound       = "No active session for that handle"
)

// User-facing messages for service errors
const (
	ErrMsgGenericServerError   = "Something went wrong"
	ErrMsgUnknownError         = "Unknown error"
	ErrMsgUnavailableError     = "Storage is temporarily unavailable. Please try again later."
	ErrMsgRetryError           = "The operation was rolled back. Please try again."
	ErrMsgNotFoundError        = "Resource not found"
	ErrMsgPlayerNotFoundError  = "Player not found"
	ErrMsgVehicleNotFoundError = "Vehicle not found"
	ErrMsgItemNotFoundError    = "Item not found"
	ErrMsgBanNotFoundError     = "Ban not found"
	ErrMsgFactionNotFoundError = "Faction not found"
	ErrMsgNotEnoughMoneyError  = "Not enough money"
	ErrMsgNotEnoughItemsError  = "Not enough items"
	ErrMsgInvalidAmountError   = "Amount must be positive"
	ErrMsgInvalidInputError    = "Invalid request. Please check your inputs."
	ErrMsgDuplicateHandleError = "A player with that handle already exists"
	ErrMsgDuplicatePlateError  = "That plate is already taken"
	ErrMsgSessionActiveError   = "Player is already logged in"
	ErrMsgPlayerBannedError    = "Player is banned"
	ErrMsgInvalidStateError    = "Session is busy. Please try again."
)

// Success messages
const (
	MsgSettingSaved      = "Setting saved"
	MsgSettingDeleted    = "Setting deleted"
	MsgPlayerUpdated     = "Player updated"
	MsgPlayerUnchanged   = "Nothing to update"
	MsgPlayerDeleted     = "Player deleted"
	MsgItemAdded         = "Item added"
	MsgItemRemoved       = "Item removed"
	MsgItemTransferred   = "Item transferred"
	MsgVehicleDeleted    = "Vehicle deleted"
	MsgVehicleTransferred ="Vehicle transferred"
	MsgBanLifted         = "Ban lifted"
	MsgSessionSaved      = "Session saved"
	MsgSessionKicked     = "Session closed"
)

// mapServiceError converts a service error to a status code and a message
// that is safe to show to API clients.
func mapServiceError(err error) (int, string) {
	switch {
	case err == nil:
		return http.StatusInternalServerError, ErrMsgUnknownError
	case errors.Is(err, domain.ErrPlayerNotFound):
		return http.StatusNotFound, ErrMsgPlayerNotFoundError
	case errors.Is(err, domain.ErrAccountNotFound):
		return http.StatusNotFound, ErrMsgPlayerNotFoundError
	case errors.Is(err, domain.ErrVehicleNotFound):
		return http.StatusNotFound, ErrMsgVehicleNotFoundError
	case errors.Is(err, domain.ErrItemNotFound):
		return http.StatusNotFound, ErrMsgItemNotFoundError
	case errors.Is(err, domain.ErrBanNotFound):
		return http.StatusNotFound, ErrMsgBanNotFoundError
	case errors.Is(err, domain.ErrFactionNotFound):
		return http.StatusNotFound, ErrMsgFactionNotFoundError
	case errors.Is(err, domain.ErrSettingNotFound):
		return http.StatusNotFound, ErrMsgSettingNotFound
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound, ErrMsgSessionNotFound
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, ErrMsgNotFoundError
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusBadRequest, ErrMsgNotEnoughMoneyError
	case errors.Is(err, domain.ErrInsufficientQuantity):
		return http.StatusBadRequest, ErrMsgNotEnoughItemsError
	case errors.Is(err, domain.ErrInvalidAmount):
		return http.StatusBadRequest, ErrMsgInvalidAmountError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidInputError
	case errors.Is(err, domain.ErrDuplicateHandle):
		return http.StatusConflict, ErrMsgDuplicateHandleError
	case errors.Is(err, domain.ErrDuplicatePlate):
		return http.StatusConflict, ErrMsgDuplicatePlateError
	case errors.Is(err, domain.ErrSessionActive):
		return http.StatusConflict, ErrMsgSessionActiveError
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict, ErrMsgInvalidStateError
	case errors.Is(err, domain.ErrPlayerBanned):
		return http.StatusForbidden, ErrMsgPlayerBannedError
	case errors.Is(err, domain.ErrConnectivityFailure):
		return http.StatusServiceUnavailable, ErrMsgUnavailableError
	case errors.Is(err, domain.ErrTransactionAborted):
		return http.StatusInternalServerError, ErrMsgRetryError
	}
	return http.StatusInternalServerError, ErrMsgGenericServerError
}

// respondServiceError logs err and writes the mapped response.
// Business outcomes log at warn, everything else at error.
func respondServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	status, msg := mapServiceError(err)
	log := logger.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error(op+" failed", "error", err)
	} else {
		log.Warn(op+" rejected", "error", err, "status", status)
	}
	respondError(w, status, msg)
}
