package handler

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/osse101/GameVault_Go/internal/domain"
	"github.com/osse101/GameVault_Go/internal/logger"
	"github.com/osse101/GameVault_Go/internal/repository"
)

// CreateFactionRequest registers a faction with an empty treasury
type CreateFactionRequest struct {
	Name         string           `json:"name" validate:"required,max=64,excludesall=\x00\n\r\t"`
	Type         string           `json:"type" validate:"required,max=32"`
	Color        string           `json:"color" validate:"omitempty,hexcolor"`
	Headquarters *domain.Position `json:"headquarters"`
}

// AdjustFundsRequest adds a signed delta to a faction treasury
type AdjustFundsRequest struct {
	Delta decimal.Decimal `json:"delta" validate:"required"`
}

// FundsResponse is the treasury after an adjustment
type FundsResponse struct {
	FactionID int64           `json:"faction_id"`
	Funds     decimal.Decimal `json:"funds"`
}

// HandleListFactions lists every faction
func HandleListFactions(repo repository.Faction) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		factions, err := repo.List(r.Context())
		if err != nil {
			respondServiceError(w, r, "List factions", err)
			return
		}
		respondJSON(w, http.StatusOK, newList(factions))
	}
}

// HandleGetFaction returns a faction by id
func HandleGetFaction(repo repository.Faction) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r, w, "id")
		if !ok {
			return
		}
		f, err := repo.GetByID(r.Context(), id)
		if err != nil {
			respondServiceError(w, r, "Get faction", err)
			return
		}
		respondJSON(w, http.StatusOK, f)
	}
}

// HandleCreateFaction registers a faction
func HandleCreateFaction(repo repository.Faction) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateFactionRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Create faction"); err != nil {
			return
		}

		f, err := repo.Create(r.Context(), domain.Faction{
			Name:         req.Name,
			Type:         req.Type,
			Color:        req.Color,
			Headquarters: req.Headquarters,
			Funds:        decimal.Zero,
		})
		if err != nil {
			respondServiceError(w, r, "Create faction", err)
			return
		}

		logger.FromContext(r.Context()).Info("Faction created", "faction_id", f.ID, "name", f.Name)
		respondJSON(w, http.StatusCreated, f)
	}
}

// HandleAdjustFactionFunds applies a delta to a faction treasury
func HandleAdjustFactionFunds(repo repository.Faction) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r, w, "id")
		if !ok {
			return
		}
		var req AdjustFundsRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Adjust faction funds"); err != nil {
			return
		}

		funds, err := repo.AdjustFunds(r.Context(), id, req.Delta)
		if err != nil {
			respondServiceError(w, r, "Adjust faction funds", err)
			return
		}
		respondJSON(w, http.StatusOK, FundsResponse{FactionID: id, Funds: funds})
	}
}
