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

type ProfileService interface {
	GetClientProfile(ctx context.Context, userID uuid.UUID) (*response.ClientProfileResponse, error)
	UpdateClientProfile(ctx context.Context, userID uuid.UUID, req *request.UpdateClientProfileRequest) (*response.ClientProfileResponse, error)
	GetLawyerProfile(ctx context.Context, userID uuid.UUID) (*response.LawyerProfileResponse, error)
	UpdateLawyerProfile(ctx context.Context, userID uuid.UUID, req *request.UpdateLawyerProfileRequest) (*response.LawyerProfileResponse, error)
}

type profileService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewProfileService(repo *repository.Repository, log *zap.Logger) ProfileService {
	return &profileService{
		repo: repo,
		log:  log,
	}
}

func (s *profileService) GetClientProfile(ctx context.Context, userID uuid.UUID) (*response.ClientProfileResponse, error) {
	profile, err := s.repo.ClientProfile.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: find client profile", apperror.ErrInternal)
	}
	if profile == nil {
		return nil, fmt.Errorf("%w: client profile", apperror.ErrNotFound)
	}

	resp := response.ClientProfileToResponse(profile)
	return &resp, nil
}

func (s *profileService) UpdateClientProfile(ctx context.Context, userID uuid.UUID, req *request.UpdateClientProfileRequest) (*response.ClientProfileResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", apperror.ErrBadRequest, utils.FormatValidationErrors(errs))
	}

	profile, err := s.repo.ClientProfile.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: find client profile", apperror.ErrInternal)
	}
	if profile == nil {
		return nil, fmt.Errorf("%w: client profile", apperror.ErrNotFound)
	}

	if req.Name != nil {
		profile.Name = req.Name
	}
	if req.Photo != nil {
		profile.Photo = req.Photo
	}
	// First successful update completes registration
	profile.RegistrationPending = false
	profile.UpdatedAt = time.Now().UTC()

	if err := s.repo.ClientProfile.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("%w: update client profile", apperror.ErrInternal)
	}

	s.log.Info("Client profile updated", zap.String("profile_id", profile.ID.String()))
	resp := response.ClientProfileToResponse(profile)
	return &resp, nil
}

func (s *profileService) GetLawyerProfile(ctx context.Context, userID uuid.UUID) (*response.LawyerProfileResponse, error) {
	profile, err := s.repo.LawyerProfile.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: find lawyer profile", apperror.ErrInternal)
	}
	if profile == nil {
		return nil, fmt.Errorf("%w: lawyer profile", apperror.ErrNotFound)
	}

	if err := s.repo.LawyerProfile.LoadRelations(ctx, profile); err != nil {
		return nil, fmt.Errorf("%w: load profile relations", apperror.ErrInternal)
	}

	resp := response.LawyerProfileToResponse(profile)
	return &resp, nil
}

func (s *profileService) UpdateLawyerProfile(ctx context.Context, userID uuid.UUID, req *request.UpdateLawyerProfileRequest) (*response.LawyerProfileResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", apperror.ErrBadRequest, utils.FormatValidationErrors(errs))
	}

	profile, err := s.repo.LawyerProfile.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: find lawyer profile", apperror.ErrInternal)
	}
	if profile == nil {
		return nil, fmt.Errorf("%w: lawyer profile", apperror.ErrNotFound)
	}

	now := time.Now().UTC()
	err = s.repo.InTx(ctx, func(r *repository.Repository) error {
		if req.Name != nil {
			profile.Name = req.Name
		}
		if req.Photo != nil {
			profile.Photo = req.Photo
		}
		if req.Location != nil {
			profile.Location = req.Location
		}
		if req.Experience != nil {
			profile.Experience = req.Experience
		}
		if req.Bio != nil {
			profile.Bio = req.Bio
		}
		if req.ConsultFee != nil {
			profile.ConsultFee = req.ConsultFee
		}
		if req.BarID != nil {
			profile.BarID = req.BarID
		}

		if req.Specialization != nil && *req.Specialization != "" {
			area, err := findOrCreatePracticeArea(ctx, r, *req.Specialization, now)
			if err != nil {
				return err
			}
			profile.SpecializationID = &area.ID
		}
		if req.PrimaryCourt != nil && *req.PrimaryCourt != "" {
			court, err := findOrCreatePracticeCourt(ctx, r, *req.PrimaryCourt, now)
			if err != nil {
				return err
			}
			profile.PrimaryCourtID = &court.ID
		}

		if req.Education != nil {
			edu := &entity.Education{
				BaseSimple: entity.BaseSimple{
					ID:        uuid.New(),
					CreatedAt: now,
				},
				LawyerProfileID: profile.ID,
				Degree:          req.Education.Degree,
				Institution:     req.Education.Institution,
				Year:            req.Education.Year,
			}
			if err := r.LawyerProfile.UpsertEducation(ctx, edu); err != nil {
				return fmt.Errorf("%w: upsert education", apperror.ErrInternal)
			}
		}

		profile.RegistrationPending = false
		profile.UpdatedAt = now

		if err := r.LawyerProfile.Update(ctx, profile); err != nil {
			return fmt.Errorf("%w: update lawyer profile", apperror.ErrInternal)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.repo.LawyerProfile.LoadRelations(ctx, profile); err != nil {
		return nil, fmt.Errorf("%w: load profile relations", apperror.ErrInternal)
	}

	s.log.Info("Lawyer profile updated", zap.String("profile_id", profile.ID.String()))
	resp := response.LawyerProfileToResponse(profile)
	return &resp, nil
}
