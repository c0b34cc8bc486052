package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/GameVault_Go/internal/domain"
	"github.com/osse101/GameVault_Go/internal/logger"
	"github.com/osse101/GameVault_Go/internal/player"
)

// UpdatePlayerRequest is a partial update. Absent fields are left alone.
// A faction_id or job_id of 0 clears the membership.
type UpdatePlayerRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=64,excludesall=\x00\n\r\t"`
	Health      *int             `json:"health" validate:"omitempty,min=0,max=100"`
	Armor       *int             `json:"armor" validate:"omitempty,min=0,max=100"`
	Hunger      *int             `json:"hunger" validate:"omitempty,min=0,max=100"`
	Thirst      *int             `json:"thirst" validate:"omitempty,min=0,max=100"`
	Position    *domain.Position `json:"position"`
	Dimension   *int             `json:"dimension" validate:"omitempty,min=0"`
	AdminLevel  *int             `json:"admin_level" validate:"omitempty,min=0,max=10"`
	FactionID   *int64           `json:"faction_id" validate:"omitempty,min=0"`
	FactionRank *int             `json:"faction_rank" validate:"omitempty,min=0"`
	JobID       *int64           `json:"job_id" validate:"omitempty,min=0"`
	JobRank     *int             `json:"job_rank" validate:"omitempty,min=0"`
}

func (r UpdatePlayerRequest) toUpdate() domain.PlayerUpdate {
	return domain.PlayerUpdate{
		Name:        r.Name,
		Health:      r.Health,
		Armor:       r.Armor,
		Hunger:      r.Hunger,
		Thirst:      r.Thirst,
		Position:    r.Position,
		Dimension:   r.Dimension,
		AdminLevel:  r.AdminLevel,
		FactionID:   r.FactionID,
		FactionRank: r.FactionRank,
		JobID:       r.JobID,
		JobRank:     r.JobRank,
	}
}

// HandleListPlayers pages through all players ordered by id
func HandleListPlayers(svc player.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, ok := queryLimit(r, w, DefaultListLimit)
		if !ok {
			return
		}
		players, err := svc.GetAll(r.Context(), limit, queryOffset(r))
		if err != nil {
			respondServiceError(w, r, "List players", err)
			return
		}
		respondJSON(w, http.StatusOK, newList(players))
	}
}

// HandleSearchPlayers finds players whose name contains ?name
func HandleSearchPlayers(svc player.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name, ok := GetQueryParam(r, w, "name")
		if !ok {
			return
		}
		limit, ok := queryLimit(r, w, DefaultListLimit)
		if !ok {
			return
		}
		players, err := svc.SearchByName(r.Context(), name, limit)
		if err != nil {
			respondServiceError(w, r, "Search players", err)
			return
		}
		respondJSON(w, http.StatusOK, newList(players))
	}
}

// HandleGetPlayer returns a player by id
func HandleGetPlayer(svc player.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r, w, "id")
		if !ok {
			return
		}
		p, err := svc.GetByID(r.Context(), id)
		if err != nil {
			respondServiceError(w, r, "Get player", err)
			return
		}
		respondJSON(w, http.StatusOK, p)
	}
}

// HandleGetPlayerByHandle resolves a platform handle
func HandleGetPlayerByHandle(svc player.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.GetByHandle(r.Context(), chi.URLParam(r, "handle"))
		if err != nil {
			respondServiceError(w, r, "Get player by handle", err)
			return
		}
		respondJSON(w, http.StatusOK, p)
	}
}

// HandleUpdatePlayer applies a partial update
func HandleUpdatePlayer(svc player.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r, w, "id")
		if !ok {
			return
		}
		var req UpdatePlayerRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Update player"); err != nil {
			return
		}

		changed, err := svc.Update(r.Context(), id, req.toUpdate())
		if err != nil {
			respondServiceError(w, r, "Update player", err)
			return
		}
		if !changed {
			respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgPlayerUnchanged})
			return
		}

		logger.FromContext(r.Context()).Info("Player updated", "player_id", id)
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgPlayerUpdated})
	}
}

// HandleDeletePlayer removes a player. Inventory goes with it and owned
// vehicles are orphaned.
func HandleDeletePlayer(svc player.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r, w, "id")
		if !ok {
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			respondServiceError(w, r, "Delete player", err)
			return
		}
		logger.FromContext(r.Context()).Info("Player deleted", "player_id", id)
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgPlayerDeleted})
	}
}

// HandleTopPlayTime is the play time leaderboard
func HandleTopPlayTime(svc player.Service) http.HandlerFunc {
	return handleTop(svc.TopByPlayTime, "Top by play time")
}

// HandleTopWealth is the cash plus bank leaderboard
func HandleTopWealth(svc player.Service) http.HandlerFunc {
	return handleTop(svc.TopByWealth, "Top by wealth")
}

func handleTop(query func(ctx context.Context, limit int) ([]domain.PlayerRanking, error), op string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, ok := queryLimit(r, w, 10)
		if !ok {
			return
		}
		rows, err := query(r.Context(), limit)
		if err != nil {
			respondServiceError(w, r, op, err)
			return
		}
		respondJSON(w, http.StatusOK, newList(rows))
	}
}
