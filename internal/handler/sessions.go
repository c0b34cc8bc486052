package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/GameVault_Go/internal/logger"
	"github.com/osse101/GameVault_Go/internal/session"
)

// DefaultKickReason is recorded when a kick request gives none
const DefaultKickReason = "kicked by admin"

// Sessions is the part of the session manager the admin API drives
type Sessions interface {
	Active() []session.Info
	Save(ctx context.Context, handle string) error
	Disconnect(ctx context.Context, handle, reason string) error
}

// KickRequest carries an optional reason
type KickRequest struct {
	Reason string `json:"reason" validate:"max=255"`
}

// HandleListSessions lists connected players
func HandleListSessions(sessions Sessions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, newList(sessions.Active()))
	}
}

// HandleSaveSession forces an immediate save of one session
func HandleSaveSession(sessions Sessions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		handle := chi.URLParam(r, "handle")
		if err := sessions.Save(r.Context(), handle); err != nil {
			respondServiceError(w, r, "Save session", err)
			return
		}
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgSessionSaved})
	}
}

// HandleKickSession saves and closes one session
func HandleKickSession(sessions Sessions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req KickRequest
		if r.ContentLength != 0 {
			if err := DecodeAndValidateRequest(r, w, &req, "Kick session"); err != nil {
				return
			}
		}
		if req.Reason == "" {
			req.Reason = DefaultKickReason
		}

		handle := chi.URLParam(r, "handle")
		if err := sessions.Disconnect(r.Context(), handle, req.Reason); err != nil {
			respondServiceError(w, r, "Kick session", err)
			return
		}

		logger.FromContext(r.Context()).Info("Session kicked", "handle", handle, "reason", req.Reason)
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgSessionKicked})
	}
}
