package handler

import (
	"net/http"
	"time"

	"github.com/osse101/GameVault_Go/internal/ban"
	"github.com/osse101/GameVault_Go/internal/logger"
)

// CreateBanRequest bans a player. Without expires_at the ban is permanent.
type CreateBanRequest struct {
	PlayerID  int64      `json:"player_id" validate:"required,gt=0"`
	AdminID   *int64     `json:"admin_id" validate:"omitempty,gt=0"`
	Reason    string     `json:"reason" validate:"required,max=255"`
	ExpiresAt *time.Time `json:"expires_at"`
	IP        string     `json:"ip" validate:"omitempty,ip"`
	HWID      string     `json:"hwid" validate:"omitempty,max=128"`
}

// ActiveBanResponse wraps a possibly absent ban
type ActiveBanResponse struct {
	Banned bool `json:"banned"`
	Ban    any  `json:"ban,omitempty"`
}

// HandleListBans lists bans still in force
func HandleListBans(svc ban.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bans, err := svc.ListActive(r.Context())
		if err != nil {
			respondServiceError(w, r, "List bans", err)
			return
		}
		respondJSON(w, http.StatusOK, newList(bans))
	}
}

// HandleCreateBan bans a player
func HandleCreateBan(svc ban.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateBanRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Create ban"); err != nil {
			return
		}

		playerID := req.PlayerID
		b, err := svc.Ban(r.Context(), ban.Request{
			PlayerID:  &playerID,
			AdminID:   req.AdminID,
			Reason:    req.Reason,
			ExpiresAt: req.ExpiresAt,
			IP:        req.IP,
			HWID:      req.HWID,
		})
		if err != nil {
			respondServiceError(w, r, "Create ban", err)
			return
		}

		logger.FromContext(r.Context()).Info("Player banned", "ban_id", b.ID, "player_id", playerID)
		respondJSON(w, http.StatusCreated, b)
	}
}

// HandleLiftBan removes a ban
func HandleLiftBan(svc ban.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r, w, "id")
		if !ok {
			return
		}
		if err := svc.Lift(r.Context(), id); err != nil {
			respondServiceError(w, r, "Lift ban", err)
			return
		}
		logger.FromContext(r.Context()).Info("Ban lifted", "ban_id", id)
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgBanLifted})
	}
}

// HandleGetPlayerBan reports the ban in force for a player, if any
func HandleGetPlayerBan(svc ban.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r, w, "id")
		if !ok {
			return
		}
		b, err := svc.ActiveBan(r.Context(), id)
		if err != nil {
			respondServiceError(w, r, "Get player ban", err)
			return
		}
		if b == nil {
			respondJSON(w, http.StatusOK, ActiveBanResponse{})
			return
		}
		respondJSON(w, http.StatusOK, ActiveBanResponse{Banned: true, Ban: b})
	}
}
