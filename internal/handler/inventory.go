package handler

import (
	"net/http"

	"github.com/osse101/GameVault_Go/internal/domain"
	"github.com/osse101/GameVault_Go/internal/inventory"
	"github.com/osse101/GameVault_Go/internal/logger"
)

// ItemRequest names an item variant and a quantity
type ItemRequest struct {
	ItemName string              `json:"item_name" validate:"required,max=64,excludesall=\x00\n\r\t"`
	Quantity int                 `json:"quantity" validate:"min=1,max=100000"`
	Metadata domain.ItemMetadata `json:"metadata,omitempty"`
}

// TransferItemRequest moves items between two players
type TransferItemRequest struct {
	FromID   int64               `json:"from_id" validate:"required,gt=0"`
	ToID     int64               `json:"to_id" validate:"required,gt=0"`
	ItemName string              `json:"item_name" validate:"required,max=64,excludesall=\x00\n\r\t"`
	Quantity int                 `json:"quantity" validate:"min=1,max=100000"`
	Metadata domain.ItemMetadata `json:"metadata,omitempty"`
}

// AddItemResponse identifies the stack the items landed in
type AddItemResponse struct {
	Message string `json:"message"`
	StackID int64  `json:"stack_id"`
}

// ClearInventoryResponse reports how many stacks were dropped
type ClearInventoryResponse struct {
	Removed int64 `json:"removed"`
}

// HandleGetInventory lists a player's stacks
func HandleGetInventory(svc inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r, w, "id")
		if !ok {
			return
		}
		stacks, err := svc.GetPlayerItems(r.Context(), id)
		if err != nil {
			respondServiceError(w, r, "Get inventory", err)
			return
		}
		respondJSON(w, http.StatusOK, newList(stacks))
	}
}

// HandleAddItem adds items, merging into an existing stack of the same variant
func HandleAddItem(svc inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r, w, "id")
		if !ok {
			return
		}
		var req ItemRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Add item"); err != nil {
			return
		}

		stackID, err := svc.AddItem(r.Context(), id, req.ItemName, req.Quantity, req.Metadata)
		if err != nil {
			respondServiceError(w, r, "Add item", err)
			return
		}

		logger.FromContext(r.Context()).Info("Item added",
			"player_id", id, "item", req.ItemName, "quantity", req.Quantity)
		respondJSON(w, http.StatusOK, AddItemResponse{Message: MsgItemAdded, StackID: stackID})
	}
}

// HandleRemoveItem removes items from the matching stack
func HandleRemoveItem(svc inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r, w, "id")
		if !ok {
			return
		}
		var req ItemRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Remove item"); err != nil {
			return
		}

		if err := svc.RemoveItem(r.Context(), id, req.ItemName, req.Quantity, req.Metadata); err != nil {
			respondServiceError(w, r, "Remove item", err)
			return
		}

		logger.FromContext(r.Context()).Info("Item removed",
			"player_id", id, "item", req.ItemName, "quantity", req.Quantity)
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgItemRemoved})
	}
}

// HandleTransferItem moves items between players in one transaction
func HandleTransferItem(svc inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req TransferItemRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Transfer item"); err != nil {
			return
		}

		err := svc.TransferItem(r.Context(), req.FromID, req.ToID, req.ItemName, req.Quantity, req.Metadata)
		if err != nil {
			respondServiceError(w, r, "Transfer item", err)
			return
		}
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgItemTransferred})
	}
}

// HandleClearInventory drops every stack a player holds
func HandleClearInventory(svc inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r, w, "id")
		if !ok {
			return
		}
		n, err := svc.ClearInventory(r.Context(), id)
		if err != nil {
			respondServiceError(w, r, "Clear inventory", err)
			return
		}
		logger.FromContext(r.Context()).Info("Inventory cleared", "player_id", id, "stacks", n)
		respondJSON(w, http.StatusOK, ClearInventoryResponse{Removed: n})
	}
}
