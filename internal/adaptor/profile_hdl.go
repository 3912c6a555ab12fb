package adaptor

import (
	"encoding/json"
	"net/http"

	"advonex/internal/dto/request"
	"advonex/internal/usecase"
	"advonex/pkg/utils"

	"go.uber.org/zap"
)

type ProfileHandler struct {
	service usecase.ProfileService
	log     *zap.Logger
}

func NewProfileHandler(service usecase.ProfileService, log *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		service: service,
		log:     log,
	}
}

// GetClient handles GET /api/profiles/client
func (h *ProfileHandler) GetClient(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	resp, err := h.service.GetClientProfile(r.Context(), userID)
	if err != nil {
		writeServiceError(w, h.log, err, "get client profile")
		return
	}

	utils.ResponseSuccess(w, "OK", resp)
}

// UpdateClient handles PUT /api/profiles/client
func (h *ProfileHandler) UpdateClient(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req request.UpdateClientProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	resp, err := h.service.UpdateClientProfile(r.Context(), userID, &req)
	if err != nil {
		writeServiceError(w, h.log, err, "update client profile")
		return
	}

	utils.ResponseSuccess(w, "Profile updated", resp)
}

// GetLawyer handles GET /api/profiles/lawyer
func (h *ProfileHandler) GetLawyer(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	resp, err := h.service.GetLawyerProfile(r.Context(), userID)
	if err != nil {
		writeServiceError(w, h.log, err, "get lawyer profile")
		return
	}

	utils.ResponseSuccess(w, "OK", resp)
}

// UpdateLawyer handles PUT /api/profiles/lawyer
func (h *ProfileHandler) UpdateLawyer(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req request.UpdateLawyerProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	resp, err := h.service.UpdateLawyerProfile(r.Context(), userID, &req)
	if err != nil {
		writeServiceError(w, h.log, err, "update lawyer profile")
		return
	}

	utils.ResponseSuccess(w, "Profile updated", resp)
}
