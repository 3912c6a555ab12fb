package adaptor

import (
	"encoding/json"
	"net/http"

	"advonex/internal/dto/request"
	"advonex/internal/usecase"
	"advonex/pkg/utils"

	"go.uber.org/zap"
)

type AuthHandler struct {
	service usecase.AuthService
	log     *zap.Logger
}

func NewAuthHandler(service usecase.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		log:     log,
	}
}

// RequestOtp handles POST /api/auth/request-otp
func (h *AuthHandler) RequestOtp(w http.ResponseWriter, r *http.Request) {
	var req request.RequestOtpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	if err := h.service.RequestPhoneOtp(r.Context(), &req); err != nil {
		writeServiceError(w, h.log, err, "request OTP")
		return
	}

	utils.ResponseSuccess(w, "OTP sent", nil)
}

// VerifyOtp handles POST /api/auth/verify-otp
func (h *AuthHandler) VerifyOtp(w http.ResponseWriter, r *http.Request) {
	var req request.VerifyOtpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	resp, err := h.service.VerifyPhoneOtp(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "verify OTP")
		return
	}

	utils.ResponseSuccess(w, "Login successful", resp)
}

// RequestEmailOtp handles POST /api/auth/request-otp-email
func (h *AuthHandler) RequestEmailOtp(w http.ResponseWriter, r *http.Request) {
	var req request.RequestEmailOtpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	if err := h.service.RequestEmailOtp(r.Context(), &req); err != nil {
		writeServiceError(w, h.log, err, "request email OTP")
		return
	}

	utils.ResponseSuccess(w, "OTP sent", nil)
}

// VerifyEmailOtp handles POST /api/auth/verify-otp-email
func (h *AuthHandler) VerifyEmailOtp(w http.ResponseWriter, r *http.Request) {
	var req request.VerifyEmailOtpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	resp, err := h.service.VerifyEmailOtp(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "verify email OTP")
		return
	}

	utils.ResponseSuccess(w, "Login successful", resp)
}

// Refresh handles POST /api/auth/refresh
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req request.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	resp, err := h.service.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		writeServiceError(w, h.log, err, "refresh")
		return
	}

	utils.ResponseSuccess(w, "Token refreshed", resp)
}

// Logout handles POST /api/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	if err := h.service.Logout(r.Context(), userID); err != nil {
		writeServiceError(w, h.log, err, "logout")
		return
	}

	utils.ResponseSuccess(w, "Logout successful", nil)
}

// AddRole handles POST /api/auth/add-role
func (h *AuthHandler) AddRole(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req request.AddRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	resp, err := h.service.AddRole(r.Context(), userID, &req)
	if err != nil {
		writeServiceError(w, h.log, err, "add role")
		return
	}

	utils.ResponseSuccess(w, "Role switched", resp)
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	resp, err := h.service.GetCurrentUser(r.Context(), userID)
	if err != nil {
		writeServiceError(w, h.log, err, "get current user")
		return
	}

	utils.ResponseSuccess(w, "OK", resp)
}
