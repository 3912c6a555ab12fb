package adaptor

import (
	"net/http"
	"strconv"

	"advonex/internal/dto/request"
	"advonex/internal/usecase"
	"advonex/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type LawyerHandler struct {
	service usecase.LawyerService
	log     *zap.Logger
}

func NewLawyerHandler(service usecase.LawyerService, log *zap.Logger) *LawyerHandler {
	return &LawyerHandler{
		service: service,
		log:     log,
	}
}

// Search handles GET /api/lawyers
func (h *LawyerHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	req := request.SearchLawyersRequest{
		SearchTerm:   q.Get("searchTerm"),
		PracticeArea: q.Get("practiceArea"),
		Court:        q.Get("court"),
		Service:      q.Get("service"),
	}

	if v := q.Get("minFee"); v != "" {
		fee, err := strconv.ParseFloat(v, 64)
		if err != nil {
			utils.ResponseBadRequest(w, "minFee must be a number", nil)
			return
		}
		req.MinFee = &fee
	}
	if v := q.Get("maxFee"); v != "" {
		fee, err := strconv.ParseFloat(v, 64)
		if err != nil {
			utils.ResponseBadRequest(w, "maxFee must be a number", nil)
			return
		}
		req.MaxFee = &fee
	}
	if v := q.Get("page"); v != "" {
		req.Page, _ = strconv.Atoi(v)
	}
	if v := q.Get("limit"); v != "" {
		req.Limit, _ = strconv.Atoi(v)
	}

	resp, err := h.service.Search(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "search lawyers")
		return
	}

	utils.ResponseSuccess(w, "OK", resp)
}

// GetByID handles GET /api/lawyers/{id}
func (h *LawyerHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseUUID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid lawyer id", nil)
		return
	}

	resp, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.log, err, "get lawyer")
		return
	}

	utils.ResponseSuccess(w, "OK", resp)
}

// Dashboard handles GET /api/lawyer/dashboard
func (h *LawyerHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	resp, err := h.service.Dashboard(r.Context(), userID)
	if err != nil {
		writeServiceError(w, h.log, err, "lawyer dashboard")
		return
	}

	utils.ResponseSuccess(w, "OK", resp)
}

// Inbox handles GET /api/lawyer/consultation-requests
func (h *LawyerHandler) Inbox(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	resp, err := h.service.Inbox(r.Context(), userID)
	if err != nil {
		writeServiceError(w, h.log, err, "lawyer inbox")
		return
	}

	utils.ResponseSuccess(w, "OK", resp)
}
