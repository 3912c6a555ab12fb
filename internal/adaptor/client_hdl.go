package adaptor

import (
	"encoding/json"
	"net/http"

	"advonex/internal/dto/request"
	"advonex/internal/usecase"
	"advonex/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ClientHandler struct {
	service usecase.ClientService
	log     *zap.Logger
}

func NewClientHandler(service usecase.ClientService, log *zap.Logger) *ClientHandler {
	return &ClientHandler{
		service: service,
		log:     log,
	}
}

// SaveLawyer handles POST /api/client/save-lawyer
func (h *ClientHandler) SaveLawyer(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req request.SaveLawyerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	resp, err := h.service.SaveLawyer(r.Context(), userID, &req)
	if err != nil {
		writeServiceError(w, h.log, err, "save lawyer")
		return
	}

	utils.ResponseCreated(w, "Lawyer saved", resp)
}

// ListSavedLawyers handles GET /api/client/saved-lawyers
func (h *ClientHandler) ListSavedLawyers(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	resp, err := h.service.ListSavedLawyers(r.Context(), userID)
	if err != nil {
		writeServiceError(w, h.log, err, "list saved lawyers")
		return
	}

	utils.ResponseSuccess(w, "OK", resp)
}

// RequestConsultation handles POST /api/client/request-consultation
func (h *ClientHandler) RequestConsultation(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req request.CreateConsultationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	resp, err := h.service.RequestConsultation(r.Context(), userID, &req)
	if err != nil {
		writeServiceError(w, h.log, err, "request consultation")
		return
	}

	utils.ResponseCreated(w, "Consultation requested", resp)
}

// ListConsultations handles GET /api/client/consultation-requests
func (h *ClientHandler) ListConsultations(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	resp, err := h.service.ListConsultations(r.Context(), userID)
	if err != nil {
		writeServiceError(w, h.log, err, "list consultations")
		return
	}

	utils.ResponseSuccess(w, "OK", resp)
}

// GetConsultation handles GET /api/client/consultation-requests/{id}
func (h *ClientHandler) GetConsultation(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	id, err := utils.ParseUUID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid request id", nil)
		return
	}

	resp, err := h.service.GetConsultation(r.Context(), userID, id)
	if err != nil {
		writeServiceError(w, h.log, err, "get consultation")
		return
	}

	utils.ResponseSuccess(w, "OK", resp)
}

// CancelConsultation handles POST /api/client/consultation-requests/{id}/cancel
func (h *ClientHandler) CancelConsultation(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	id, err := utils.ParseUUID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid request id", nil)
		return
	}

	resp, err := h.service.CancelConsultation(r.Context(), userID, id)
	if err != nil {
		writeServiceError(w, h.log, err, "cancel consultation")
		return
	}

	utils.ResponseSuccess(w, "Consultation cancelled", resp)
}
