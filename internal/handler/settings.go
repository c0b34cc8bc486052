package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/GameVault_Go/internal/domain"
	"github.com/osse101/GameVault_Go/internal/logger"
	"github.com/osse101/GameVault_Go/internal/settings"
)

// SetSettingRequest carries a setting value. Its variant is inferred from
// the JSON token type: number, boolean, string, or object/array.
type SetSettingRequest struct {
	Value *domain.SettingValue `json:"value" validate:"required"`
}

// SettingResponse is one setting as the API shows it
type SettingResponse struct {
	Key   string              `json:"key"`
	Kind  domain.SettingKind  `json:"kind"`
	Value domain.SettingValue `json:"value"`
}

// HandleListSettings returns every stored setting
func HandleListSettings(svc settings.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		all, err := svc.GetAll(r.Context())
		if err != nil {
			respondServiceError(w, r, "List settings", err)
			return
		}
		respondJSON(w, http.StatusOK, newList(all))
	}
}

// HandleGetSetting returns one setting or 404
func HandleGetSetting(svc settings.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := chi.URLParam(r, "key")
		v := svc.Get(r.Context(), key, domain.SettingValue{})
		if v.Kind == "" {
			respondError(w, http.StatusNotFound, ErrMsgSettingNotFound)
			return
		}
		respondJSON(w, http.StatusOK, SettingResponse{Key: key, Kind: v.Kind, Value: v})
	}
}

// HandleSetSetting creates or replaces a setting
func HandleSetSetting(svc settings.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SetSettingRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Set setting"); err != nil {
			return
		}

		key := chi.URLParam(r, "key")
		if err := svc.Set(r.Context(), key, *req.Value); err != nil {
			respondServiceError(w, r, "Set setting", err)
			return
		}

		logger.FromContext(r.Context()).Info("Setting saved", "key", key, "kind", req.Value.Kind)
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgSettingSaved})
	}
}

// HandleDeleteSetting removes a setting so readers fall back to their defaults
func HandleDeleteSetting(svc settings.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := chi.URLParam(r, "key")
		if err := svc.Delete(r.Context(), key); err != nil {
			respondServiceError(w, r, "Delete setting", err)
			return
		}
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgSettingDeleted})
	}
}
