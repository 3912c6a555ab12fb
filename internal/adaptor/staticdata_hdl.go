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

type StaticDataHandler struct {
	service usecase.StaticDataService
	log     *zap.Logger
}

func NewStaticDataHandler(service usecase.StaticDataService, log *zap.Logger) *StaticDataHandler {
	return &StaticDataHandler{
		service: service,
		log:     log,
	}
}

// ListPracticeAreas handles GET /api/static-data/practice-areas
func (h *StaticDataHandler) ListPracticeAreas(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.ListPracticeAreas(r.Context())
	if err != nil {
		writeServiceError(w, h.log, err, "list practice areas")
		return
	}

	utils.ResponseSuccess(w, "OK", resp)
}

// ListCourts handles GET /api/static-data/courts
func (h *StaticDataHandler) ListCourts(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.ListCourts(r.Context())
	if err != nil {
		writeServiceError(w, h.log, err, "list courts")
		return
	}

	utils.ResponseSuccess(w, "OK", resp)
}

// AddPracticeArea handles POST /api/static-data/lawyer/me/practice-areas
func (h *StaticDataHandler) AddPracticeArea(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req request.AddPracticeAreaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	resp, err := h.service.AddLawyerPracticeArea(r.Context(), userID, &req)
	if err != nil {
		writeServiceError(w, h.log, err, "add practice area")
		return
	}

	utils.ResponseCreated(w, "Practice area added", resp)
}

// RemovePracticeArea handles DELETE /api/static-data/lawyer/me/practice-areas/{id}
func (h *StaticDataHandler) RemovePracticeArea(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	id, err := utils.ParseUUID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid practice area id", nil)
		return
	}

	if err := h.service.RemoveLawyerPracticeArea(r.Context(), userID, id); err != nil {
		writeServiceError(w, h.log, err, "remove practice area")
		return
	}

	utils.ResponseSuccess(w, "Practice area removed", nil)
}

// AddPracticeCourt handles POST /api/static-data/lawyer/me/practice-courts
func (h *StaticDataHandler) AddPracticeCourt(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req request.AddPracticeCourtRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	resp, err := h.service.AddLawyerPracticeCourt(r.Context(), userID, &req)
	if err != nil {
		writeServiceError(w, h.log, err, "add practice court")
		return
	}

	utils.ResponseCreated(w, "Practice court added", resp)
}

// RemovePracticeCourt handles DELETE /api/static-data/lawyer/me/practice-courts/{id}
func (h *StaticDataHandler) RemovePracticeCourt(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	id, err := utils.ParseUUID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid practice court id", nil)
		return
	}

	if err := h.service.RemoveLawyerPracticeCourt(r.Context(), userID, id); err != nil {
		writeServiceError(w, h.log, err, "remove practice court")
		return
	}

	utils.ResponseSuccess(w, "Practice court removed", nil)
}

// AddService handles POST /api/static-data/lawyer/me/services
func (h *StaticDataHandler) AddService(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req request.AddServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	resp, err := h.service.AddLawyerService(r.Context(), userID, &req)
	if err != nil {
		writeServiceError(w, h.log, err, "add service")
		return
	}

	utils.ResponseCreated(w, "Service added", resp)
}

// RemoveService handles DELETE /api/static-data/lawyer/me/services/{id}
func (h *StaticDataHandler) RemoveService(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	id, err := utils.ParseUUID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid service id", nil)
		return
	}

	if err := h.service.RemoveLawyerService(r.Context(), userID, id); err != nil {
		writeServiceError(w, h.log, err, "remove service")
		return
	}

	utils.ResponseSuccess(w, "Service removed", nil)
}
