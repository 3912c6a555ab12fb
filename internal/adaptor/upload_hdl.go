package adaptor

import (
	"io"
	"net/http"

	"advonex/internal/usecase"
	"advonex/pkg/utils"

	"go.uber.org/zap"
)

type UploadHandler struct {
	service usecase.UploadService
	log     *zap.Logger
}

func NewUploadHandler(service usecase.UploadService, log *zap.Logger) *UploadHandler {
	return &UploadHandler{
		service: service,
		log:     log,
	}
}

// readImage extracts the "image" part from a multipart form.
func (h *UploadHandler) readImage(w http.ResponseWriter, r *http.Request) ([]byte, string, bool) {
	if err := r.ParseMultipartForm(usecase.MaxImageSize); err != nil {
		utils.ResponseBadRequest(w, "Invalid multipart form", nil)
		return nil, "", false
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		utils.ResponseBadRequest(w, "Missing image file", nil)
		return nil, "", false
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, usecase.MaxImageSize+1))
	if err != nil {
		utils.ResponseBadRequest(w, "Failed to read image file", nil)
		return nil, "", false
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	return data, contentType, true
}

// UploadImage handles POST /api/upload/image
func (h *UploadHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUserID(w, r); !ok {
		return
	}

	data, contentType, ok := h.readImage(w, r)
	if !ok {
		return
	}

	result, err := h.service.UploadImage(r.Context(), data, contentType)
	if err != nil {
		writeServiceError(w, h.log, err, "upload image")
		return
	}

	utils.ResponseCreated(w, "Image uploaded", result)
}

// ClientProfilePic handles POST /api/upload/profile-pic/client
func (h *UploadHandler) ClientProfilePic(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	data, contentType, ok := h.readImage(w, r)
	if !ok {
		return
	}

	result, err := h.service.UpdateClientPhoto(r.Context(), userID, data, contentType)
	if err != nil {
		writeServiceError(w, h.log, err, "upload client profile picture")
		return
	}

	utils.ResponseSuccess(w, "Profile picture updated", result)
}

// LawyerProfilePic handles POST /api/upload/profile-pic/lawyer
func (h *UploadHandler) LawyerProfilePic(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	data, contentType, ok := h.readImage(w, r)
	if !ok {
		return
	}

	result, err := h.service.UpdateLawyerPhoto(r.Context(), userID, data, contentType)
	if err != nil {
		writeServiceError(w, h.log, err, "upload lawyer profile picture")
		return
	}

	utils.ResponseSuccess(w, "Profile picture updated", result)
}
