package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/GameVault_Go/internal/domain"
	"github.com/osse101/GameVault_Go/internal/logger"
	"github.com/osse101/GameVault_Go/internal/vehicle"
)

// CreateVehicleRequest registers a vehicle for an owner. An empty plate is generated.
type CreateVehicleRequest struct {
	OwnerID int64 `json:"owner_id" validate:"required,gt=0"`
	domain.NewVehicle
}

// TransferVehicleRequest names the new owner
type TransferVehicleRequest struct {
	OwnerID int64 `json:"owner_id" validate:"required,gt=0"`
}

// SpawnedResponse lists the ids of vehicles currently in the world
type SpawnedResponse struct {
	Count int     `json:"count"`
	IDs   []int64 `json:"ids"`
}

// HandleListVehicles pages through all vehicles
func HandleListVehicles(svc vehicle.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, ok := queryLimit(r, w, DefaultListLimit)
		if !ok {
			return
		}
		vehicles, err := svc.GetAll(r.Context(), limit, queryOffset(r))
		if err != nil {
			respondServiceError(w, r, "List vehicles", err)
			return
		}
		respondJSON(w, http.StatusOK, newList(vehicles))
	}
}

// HandleGetVehicle returns a vehicle by id
func HandleGetVehicle(svc vehicle.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r, w, "id")
		if !ok {
			return
		}
		v, err := svc.GetByID(r.Context(), id)
		if err != nil {
			respondServiceError(w, r, "Get vehicle", err)
			return
		}
		respondJSON(w, http.StatusOK, v)
	}
}

// HandleGetVehicleByPlate looks a vehicle up by plate, case-insensitively
func HandleGetVehicleByPlate(svc vehicle.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := svc.GetByPlate(r.Context(), chi.URLParam(r, "plate"))
		if err != nil {
			respondServiceError(w, r, "Get vehicle by plate", err)
			return
		}
		respondJSON(w, http.StatusOK, v)
	}
}

// HandleGetPlayerVehicles lists the vehicles a player owns
func HandleGetPlayerVehicles(svc vehicle.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r, w, "id")
		if !ok {
			return
		}
		vehicles, err := svc.GetByOwner(r.Context(), id)
		if err != nil {
			respondServiceError(w, r, "Get player vehicles", err)
			return
		}
		respondJSON(w, http.StatusOK, newList(vehicles))
	}
}

// HandleCreateVehicle registers a new vehicle
func HandleCreateVehicle(svc vehicle.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateVehicleRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Create vehicle"); err != nil {
			return
		}

		v, err := svc.Create(r.Context(), req.OwnerID, req.NewVehicle)
		if err != nil {
			respondServiceError(w, r, "Create vehicle", err)
			return
		}

		logger.FromContext(r.Context()).Info("Vehicle created",
			"vehicle_id", v.ID, "owner_id", req.OwnerID, "plate", v.Plate)
		respondJSON(w, http.StatusCreated, v)
	}
}

// HandleTransferVehicle hands a vehicle to another player
func HandleTransferVehicle(svc vehicle.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r, w, "id")
		if !ok {
			return
		}
		var req TransferVehicleRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Transfer vehicle"); err != nil {
			return
		}
		if err := svc.TransferOwnership(r.Context(), id, req.OwnerID); err != nil {
			respondServiceError(w, r, "Transfer vehicle", err)
			return
		}
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgVehicleTransferred})
	}
}

// HandleDeleteVehicle removes a vehicle, despawning it first when it is in the world
func HandleDeleteVehicle(svc vehicle.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r, w, "id")
		if !ok {
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			respondServiceError(w, r, "Delete vehicle", err)
			return
		}
		logger.FromContext(r.Context()).Info("Vehicle deleted", "vehicle_id", id)
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgVehicleDeleted})
	}
}

// HandleSpawnedVehicles lists the vehicles currently in the world
func HandleSpawnedVehicles(svc vehicle.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ids := svc.Spawned()
		if ids == nil {
			ids = []int64{}
		}
		respondJSON(w, http.StatusOK, SpawnedResponse{Count: len(ids), IDs: ids})
	}
}
