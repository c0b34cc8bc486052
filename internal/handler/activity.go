package handler

import (
	"net/http"

	"github.com/osse101/GameVault_Go/internal/activity"
	"github.com/osse101/GameVault_Go/internal/domain"
)

// HandleQueryActivity returns recent audit rows, newest first.
// Filters: player_id, action, since (RFC3339) and limit.
func HandleQueryActivity(svc activity.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID, ok := queryInt64(r, w, "player_id")
		if !ok {
			return
		}
		since, ok := queryTime(r, w, "since")
		if !ok {
			return
		}
		limit, ok := queryLimit(r, w, activity.DefaultQueryLimit)
		if !ok {
			return
		}

		rows, err := svc.Recent(r.Context(), domain.ActivityFilter{
			PlayerID: playerID,
			Action:   r.URL.Query().Get("action"),
			Since:    since,
			Limit:    limit,
		})
		if err != nil {
			respondServiceError(w, r, "Query activity", err)
			return
		}
		respondJSON(w, http.StatusOK, newList(rows))
	}
}
