package adaptor

import (
	"errors"
	"net/http"
	"strings"

	"advonex/internal/usecase"
	"advonex/pkg/apperror"
	"advonex/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Handler struct {
	Auth       *AuthHandler
	Profile    *ProfileHandler
	Lawyer     *LawyerHandler
	Client     *ClientHandler
	StaticData *StaticDataHandler
	Upload     *UploadHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:       NewAuthHandler(service.Auth, log),
		Profile:    NewProfileHandler(service.Profile, log),
		Lawyer:     NewLawyerHandler(service.Lawyer, log),
		Client:     NewClientHandler(service.Client, log),
		StaticData: NewStaticDataHandler(service.StaticData, log),
		Upload:     NewUploadHandler(service.Upload, log),
	}
}

// writeServiceError maps the usecase error taxonomy onto HTTP responses.
// Internal errors are logged and hidden behind a generic message.
func writeServiceError(w http.ResponseWriter, log *zap.Logger, err error, action string) {
	switch {
	case errors.Is(err, apperror.ErrBadRequest):
		utils.ResponseBadRequest(w, stripSentinel(err, apperror.ErrBadRequest), nil)
	case errors.Is(err, apperror.ErrUnauthorized):
		utils.ResponseUnauthorized(w, stripSentinel(err, apperror.ErrUnauthorized))
	case errors.Is(err, apperror.ErrForbidden):
		utils.ResponseForbidden(w, stripSentinel(err, apperror.ErrForbidden))
	case errors.Is(err, apperror.ErrNotFound):
		utils.ResponseNotFound(w, stripSentinel(err, apperror.ErrNotFound)+" not found")
	case errors.Is(err, apperror.ErrConflict):
		utils.ResponseConflict(w, stripSentinel(err, apperror.ErrConflict))
	case errors.Is(err, apperror.ErrTooManyRequests):
		utils.ResponseTooManyRequests(w, stripSentinel(err, apperror.ErrTooManyRequests))
	default:
		log.Error("Unhandled service error",
			zap.Error(err),
			zap.String("action", action),
		)
		utils.ResponseInternalError(w, "Something went wrong")
	}
}

func stripSentinel(err error, sentinel error) string {
	return strings.TrimPrefix(err.Error(), sentinel.Error()+": ")
}

// requireUserID pulls the authenticated user out of the request context.
// Routes behind the auth middleware always have it; a miss is a bug.
func requireUserID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, found := utils.GetUserIDFromContext(r.Context())
	if !found {
		utils.ResponseUnauthorized(w, "Authentication required")
		return uuid.Nil, false
	}
	return id, true
}
