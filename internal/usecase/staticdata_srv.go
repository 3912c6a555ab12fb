package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"advonex/internal/data/entity"
	"advonex/internal/data/repository"
	"advonex/internal/dto/request"
	"advonex/internal/dto/response"
	"advonex/pkg/apperror"
	"advonex/pkg/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type StaticDataService interface {
	ListPracticeAreas(ctx context.Context) ([]response.PracticeAreaResponse, error)
	ListCourts(ctx context.Context) ([]response.PracticeCourtResponse, error)

	AddLawyerPracticeArea(ctx context.Context, userID uuid.UUID, req *request.AddPracticeAreaRequest) (*response.PracticeAreaResponse, error)
	RemoveLawyerPracticeArea(ctx context.Context, userID uuid.UUID, areaID uuid.UUID) error
	AddLawyerPracticeCourt(ctx context.Context, userID uuid.UUID, req *request.AddPracticeCourtRequest) (*response.PracticeCourtResponse, error)
	RemoveLawyerPracticeCourt(ctx context.Context, userID uuid.UUID, courtID uuid.UUID) error
	AddLawyerService(ctx context.Context, userID uuid.UUID, req *request.AddServiceRequest) (*response.ServiceResponse, error)
	RemoveLawyerService(ctx context.Context, userID uuid.UUID, serviceID uuid.UUID) error
}

type staticDataService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewStaticDataService(repo *repository.Repository, log *zap.Logger) StaticDataService {
	return &staticDataService{
		repo: repo,
		log:  log,
	}
}

func (s *staticDataService) ListPracticeAreas(ctx context.Context) ([]response.PracticeAreaResponse, error) {
	areas, err := s.repo.PracticeArea.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list practice areas", apperror.ErrInternal)
	}

	out := make([]response.PracticeAreaResponse, 0, len(areas))
	for _, area := range areas {
		out = append(out, response.PracticeAreaToResponse(area))
	}
	return out, nil
}

func (s *staticDataService) ListCourts(ctx context.Context) ([]response.PracticeCourtResponse, error) {
	courts, err := s.repo.PracticeCourt.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list courts", apperror.ErrInternal)
	}

	out := make([]response.PracticeCourtResponse, 0, len(courts))
	for _, court := range courts {
		out = append(out, response.PracticeCourtToResponse(court))
	}
	return out, nil
}

// lawyerProfileFor resolves the caller's lawyer profile or fails with 404.
func (s *staticDataService) lawyerProfileFor(ctx context.Context, userID uuid.UUID) (*entity.LawyerProfile, error) {
	profile, err := s.repo.LawyerProfile.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: find lawyer profile", apperror.ErrInternal)
	}
	if profile == nil {
		return nil, fmt.Errorf("%w: lawyer profile", apperror.ErrNotFound)
	}
	return profile, nil
}

func (s *staticDataService) AddLawyerPracticeArea(ctx context.Context, userID uuid.UUID, req *request.AddPracticeAreaRequest) (*response.PracticeAreaResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", apperror.ErrBadRequest, utils.FormatValidationErrors(errs))
	}

	profile, err := s.lawyerProfileFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	var area *entity.PracticeArea
	err = s.repo.InTx(ctx, func(r *repository.Repository) error {
		area, err = findOrCreatePracticeArea(ctx, r, req.Name, time.Now().UTC())
		if err != nil {
			return err
		}
		if err := r.LawyerProfile.AddPracticeArea(ctx, profile.ID, area.ID); err != nil {
			return fmt.Errorf("%w: link practice area", apperror.ErrInternal)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := response.PracticeAreaToResponse(area)
	return &resp, nil
}

func (s *staticDataService) RemoveLawyerPracticeArea(ctx context.Context, userID uuid.UUID, areaID uuid.UUID) error {
	profile, err := s.lawyerProfileFor(ctx, userID)
	if err != nil {
		return err
	}

	err = s.repo.LawyerProfile.RemovePracticeArea(ctx, profile.ID, areaID)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: practice area link", apperror.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("%w: unlink practice area", apperror.ErrInternal)
	}
	return nil
}

func (s *staticDataService) AddLawyerPracticeCourt(ctx context.Context, userID uuid.UUID, req *request.AddPracticeCourtRequest) (*response.PracticeCourtResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", apperror.ErrBadRequest, utils.FormatValidationErrors(errs))
	}

	profile, err := s.lawyerProfileFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	var court *entity.PracticeCourt
	err = s.repo.InTx(ctx, func(r *repository.Repository) error {
		court, err = findOrCreatePracticeCourt(ctx, r, req.Name, time.Now().UTC())
		if err != nil {
			return err
		}
		if err := r.LawyerProfile.AddPracticeCourt(ctx, profile.ID, court.ID); err != nil {
			return fmt.Errorf("%w: link practice court", apperror.ErrInternal)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := response.PracticeCourtToResponse(court)
	return &resp, nil
}

func (s *staticDataService) RemoveLawyerPracticeCourt(ctx context.Context, userID uuid.UUID, courtID uuid.UUID) error {
	profile, err := s.lawyerProfileFor(ctx, userID)
	if err != nil {
		return err
	}

	err = s.repo.LawyerProfile.RemovePracticeCourt(ctx, profile.ID, courtID)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: practice court link", apperror.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("%w: unlink practice court", apperror.ErrInternal)
	}
	return nil
}

func (s *staticDataService) AddLawyerService(ctx context.Context, userID uuid.UUID, req *request.AddServiceRequest) (*response.ServiceResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", apperror.ErrBadRequest, utils.FormatValidationErrors(errs))
	}

	profile, err := s.lawyerProfileFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	var service *entity.Service
	err = s.repo.InTx(ctx, func(r *repository.Repository) error {
		service, err = findOrCreateService(ctx, r, req.Name, time.Now().UTC())
		if err != nil {
			return err
		}
		if err := r.LawyerProfile.AddService(ctx, profile.ID, service.ID); err != nil {
			return fmt.Errorf("%w: link service", apperror.ErrInternal)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := response.ServiceToResponse(service)
	return &resp, nil
}

func (s *staticDataService) RemoveLawyerService(ctx context.Context, userID uuid.UUID, serviceID uuid.UUID) error {
	profile, err := s.lawyerProfileFor(ctx, userID)
	if err != nil {
		return err
	}

	err = s.repo.LawyerProfile.RemoveService(ctx, profile.ID, serviceID)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: service link", apperror.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("%w: unlink service", apperror.ErrInternal)
	}
	return nil
}

// ==================== Find-or-create helpers ====================

func findOrCreatePracticeArea(ctx context.Context, r *repository.Repository, name string, now time.Time) (*entity.PracticeArea, error) {
	area, err := r.PracticeArea.FindByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("%w: find practice area", apperror.ErrInternal)
	}
	if area != nil {
		return area, nil
	}

	area = &entity.PracticeArea{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		Name: name,
	}
	if err := r.PracticeArea.Create(ctx, area); err != nil {
		return nil, fmt.Errorf("%w: create practice area", apperror.ErrInternal)
	}
	return area, nil
}

func findOrCreatePracticeCourt(ctx context.Context, r *repository.Repository, name string, now time.Time) (*entity.PracticeCourt, error) {
	court, err := r.PracticeCourt.FindByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("%w: find practice court", apperror.ErrInternal)
	}
	if court != nil {
		return court, nil
	}

	court = &entity.PracticeCourt{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		Name: name,
	}
	if err := r.PracticeCourt.Create(ctx, court); err != nil {
		return nil, fmt.Errorf("%w: create practice court", apperror.ErrInternal)
	}
	return court, nil
}

func findOrCreateService(ctx context.Context, r *repository.Repository, name string, now time.Time) (*entity.Service, error) {
	service, err := r.Service.FindByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("%w: find service", apperror.ErrInternal)
	}
	if service != nil {
		return service, nil
	}

	service = &entity.Service{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		Name: name,
	}
	if err := r.Service.Create(ctx, service); err != nil {
		return nil, fmt.Errorf("%w: create service", apperror.ErrInternal)
	}
	return service, nil
}
