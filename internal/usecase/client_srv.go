package usecase

import (
	"context"
	"fmt"
	"time"

	"advonex/internal/data/entity"
	"advonex/internal/data/repository"
	"advonex/internal/dto/request"
	"advonex/internal/dto/response"
	"advonex/pkg/apperror"
	"advonex/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ClientService interface {
	SaveLawyer(ctx context.Context, userID uuid.UUID, req *request.SaveLawyerRequest) (*response.SavedLawyerResponse, error)
	ListSavedLawyers(ctx context.Context, userID uuid.UUID) ([]response.SavedLawyerResponse, error)
	RequestConsultation(ctx context.Context, userID uuid.UUID, req *request.CreateConsultationRequest) (*response.ConsultationRequestResponse, error)
	ListConsultations(ctx context.Context, userID uuid.UUID) ([]response.ConsultationRequestResponse, error)
	GetConsultation(ctx context.Context, userID uuid.UUID, requestID uuid.UUID) (*response.ConsultationRequestResponse, error)
	CancelConsultation(ctx context.Context, userID uuid.UUID, requestID uuid.UUID) (*response.ConsultationRequestResponse, error)
}

type clientService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewClientService(repo *repository.Repository, log *zap.Logger) ClientService {
	return &clientService{
		repo: repo,
		log:  log,
	}
}

func (s *clientService) clientProfileFor(ctx context.Context, userID uuid.UUID) (*entity.ClientProfile, error) {
	profile, err := s.repo.ClientProfile.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: find client profile", apperror.ErrInternal)
	}
	if profile == nil {
		return nil, fmt.Errorf("%w: client profile", apperror.ErrNotFound)
	}
	return profile, nil
}

func (s *clientService) SaveLawyer(ctx context.Context, userID uuid.UUID, req *request.SaveLawyerRequest) (*response.SavedLawyerResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", apperror.ErrBadRequest, utils.FormatValidationErrors(errs))
	}

	profile, err := s.clientProfileFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	lawyerID, err := uuid.Parse(req.LawyerID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid lawyer id", apperror.ErrBadRequest)
	}
	lawyer, err := s.repo.LawyerProfile.FindByID(ctx, lawyerID)
	if err != nil {
		return nil, fmt.Errorf("%w: find lawyer", apperror.ErrInternal)
	}
	if lawyer == nil {
		return nil, fmt.Errorf("%w: lawyer", apperror.ErrNotFound)
	}

	exists, err := s.repo.SavedLawyer.Exists(ctx, profile.ID, lawyer.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: check saved lawyer", apperror.ErrInternal)
	}
	if exists {
		return nil, fmt.Errorf("%w: lawyer already saved", apperror.ErrConflict)
	}

	saved := &entity.SavedLawyer{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now().UTC(),
		},
		ClientProfileID: profile.ID,
		LawyerProfileID: lawyer.ID,
		Lawyer:          lawyer,
	}
	if err := s.repo.SavedLawyer.Create(ctx, saved); err != nil {
		return nil, fmt.Errorf("%w: save lawyer", apperror.ErrInternal)
	}

	s.log.Info("Lawyer saved",
		zap.String("client_profile_id", profile.ID.String()),
		zap.String("lawyer_profile_id", lawyer.ID.String()),
	)
	resp := response.SavedLawyerToResponse(saved)
	return &resp, nil
}

func (s *clientService) ListSavedLawyers(ctx context.Context, userID uuid.UUID) ([]response.SavedLawyerResponse, error) {
	profile, err := s.clientProfileFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	saved, err := s.repo.SavedLawyer.ListByClient(ctx, profile.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: list saved lawyers", apperror.ErrInternal)
	}

	out := make([]response.SavedLawyerResponse, 0, len(saved))
	for _, row := range saved {
		out = append(out, response.SavedLawyerToResponse(row))
	}
	return out, nil
}

func (s *clientService) RequestConsultation(ctx context.Context, userID uuid.UUID, req *request.CreateConsultationRequest) (*response.ConsultationRequestResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", apperror.ErrBadRequest, utils.FormatValidationErrors(errs))
	}

	profile, err := s.clientProfileFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	lawyerID, err := uuid.Parse(req.LawyerID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid lawyer id", apperror.ErrBadRequest)
	}
	lawyer, err := s.repo.LawyerProfile.FindByID(ctx, lawyerID)
	if err != nil {
		return nil, fmt.Errorf("%w: find lawyer", apperror.ErrInternal)
	}
	if lawyer == nil {
		return nil, fmt.Errorf("%w: lawyer", apperror.ErrNotFound)
	}

	now := time.Now().UTC()
	consultation := &entity.ConsultationRequest{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		ClientProfileID: profile.ID,
		LawyerProfileID: lawyer.ID,
		Message:         req.Message,
		Status:          entity.RequestStatusPending,
		ResponseStatus:  entity.ResponseStatusPending,
		Lawyer:          lawyer,
	}
	if err := s.repo.Consultation.Create(ctx, consultation); err != nil {
		return nil, fmt.Errorf("%w: create consultation request", apperror.ErrInternal)
	}

	s.log.Info("Consultation requested",
		zap.String("client_profile_id", profile.ID.String()),
		zap.String("lawyer_profile_id", lawyer.ID.String()),
	)
	resp := response.ConsultationToResponse(consultation)
	return &resp, nil
}

func (s *clientService) ListConsultations(ctx context.Context, userID uuid.UUID) ([]response.ConsultationRequestResponse, error) {
	profile, err := s.clientProfileFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	requests, err := s.repo.Consultation.ListByClient(ctx, profile.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: list consultation requests", apperror.ErrInternal)
	}

	return response.ConsultationsToResponses(requests), nil
}

// findOwnConsultation fetches a request and hides it unless it belongs to
// the calling client.
func (s *clientService) findOwnConsultation(ctx context.Context, userID uuid.UUID, requestID uuid.UUID) (*entity.ConsultationRequest, error) {
	profile, err := s.clientProfileFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	consultation, err := s.repo.Consultation.FindByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("%w: find consultation request", apperror.ErrInternal)
	}
	if consultation == nil || consultation.ClientProfileID != profile.ID {
		return nil, fmt.Errorf("%w: consultation request", apperror.ErrNotFound)
	}
	return consultation, nil
}

func (s *clientService) GetConsultation(ctx context.Context, userID uuid.UUID, requestID uuid.UUID) (*response.ConsultationRequestResponse, error) {
	consultation, err := s.findOwnConsultation(ctx, userID, requestID)
	if err != nil {
		return nil, err
	}

	lawyer, err := s.repo.LawyerProfile.FindByID(ctx, consultation.LawyerProfileID)
	if err != nil {
		return nil, fmt.Errorf("%w: find lawyer", apperror.ErrInternal)
	}
	consultation.Lawyer = lawyer

	resp := response.ConsultationToResponse(consultation)
	return &resp, nil
}

func (s *clientService) CancelConsultation(ctx context.Context, userID uuid.UUID, requestID uuid.UUID) (*response.ConsultationRequestResponse, error) {
	consultation, err := s.findOwnConsultation(ctx, userID, requestID)
	if err != nil {
		return nil, err
	}

	if consultation.Status != entity.RequestStatusPending {
		return nil, fmt.Errorf("%w: only pending requests can be cancelled", apperror.ErrBadRequest)
	}

	if err := s.repo.Consultation.UpdateStatus(ctx, consultation.ID, entity.RequestStatusClosed); err != nil {
		return nil, fmt.Errorf("%w: cancel consultation request", apperror.ErrInternal)
	}
	consultation.Status = entity.RequestStatusClosed
	consultation.UpdatedAt = time.Now().UTC()

	s.log.Info("Consultation cancelled", zap.String("request_id", consultation.ID.String()))
	resp := response.ConsultationToResponse(consultation)
	return &resp, nil
}
