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

const dashboardRecentLimit = 5

type LawyerService interface {
	Search(ctx context.Context, req *request.SearchLawyersRequest) (*response.Paginated[response.LawyerCard], error)
	GetByID(ctx context.Context, id uuid.UUID) (*response.LawyerProfileResponse, error)
	Dashboard(ctx context.Context, userID uuid.UUID) (*response.DashboardResponse, error)
	Inbox(ctx context.Context, userID uuid.UUID) (*response.InboxResponse, error)
}

type lawyerService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewLawyerService(repo *repository.Repository, log *zap.Logger) LawyerService {
	return &lawyerService{
		repo: repo,
		log:  log,
	}
}

func (s *lawyerService) Search(ctx context.Context, req *request.SearchLawyersRequest) (*response.Paginated[response.LawyerCard], error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", apperror.ErrBadRequest, utils.FormatValidationErrors(errs))
	}

	page := req.Page
	if page < 1 {
		page = 1
	}
	limit := req.Limit
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	filter := repository.LawyerSearchFilter{
		SearchTerm:   req.SearchTerm,
		PracticeArea: req.PracticeArea,
		Court:        req.Court,
		Service:      req.Service,
		MinFee:       req.MinFee,
		MaxFee:       req.MaxFee,
		Limit:        limit,
		Offset:       utils.CalculateOffset(page, limit),
	}

	profiles, err := s.repo.LawyerProfile.Search(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: search lawyers", apperror.ErrInternal)
	}
	total, err := s.repo.LawyerProfile.CountSearch(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: count lawyers", apperror.ErrInternal)
	}

	cards := make([]response.LawyerCard, 0, len(profiles))
	for _, profile := range profiles {
		cards = append(cards, response.LawyerToCard(profile))
	}

	return response.NewPaginated(cards, page, limit, total), nil
}

func (s *lawyerService) GetByID(ctx context.Context, id uuid.UUID) (*response.LawyerProfileResponse, error) {
	profile, err := s.repo.LawyerProfile.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: find lawyer", apperror.ErrInternal)
	}
	if profile == nil {
		return nil, fmt.Errorf("%w: lawyer", apperror.ErrNotFound)
	}

	if err := s.repo.LawyerProfile.LoadRelations(ctx, profile); err != nil {
		return nil, fmt.Errorf("%w: load lawyer relations", apperror.ErrInternal)
	}

	resp := response.LawyerProfileToResponse(profile)
	return &resp, nil
}

func (s *lawyerService) Dashboard(ctx context.Context, userID uuid.UUID) (*response.DashboardResponse, error) {
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

	counts, err := s.repo.Consultation.CountsByLawyer(ctx, profile.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: count requests", apperror.ErrInternal)
	}

	requests, err := s.repo.Consultation.ListByLawyer(ctx, profile.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: list requests", apperror.ErrInternal)
	}

	recent := requests
	if len(recent) > dashboardRecentLimit {
		recent = recent[:dashboardRecentLimit]
	}

	var responded []*entity.ConsultationRequest
	for _, item := range requests {
		if item.ResponseStatus != entity.ResponseStatusPending {
			responded = append(responded, item)
			if len(responded) == dashboardRecentLimit {
				break
			}
		}
	}

	lastLogin := profileLastLogin(ctx, s.repo, userID)

	return &response.DashboardResponse{
		Profile:         response.LawyerProfileToResponse(profile),
		Requests:        response.CountsToResponse(counts),
		RecentRequests:  response.ConsultationsToResponses(recent),
		RecentResponses: response.ConsultationsToResponses(responded),
		LastLogin:       lastLogin,
	}, nil
}

func (s *lawyerService) Inbox(ctx context.Context, userID uuid.UUID) (*response.InboxResponse, error) {
	profile, err := s.repo.LawyerProfile.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: find lawyer profile", apperror.ErrInternal)
	}
	if profile == nil {
		return nil, fmt.Errorf("%w: lawyer profile", apperror.ErrNotFound)
	}

	requests, err := s.repo.Consultation.ListByLawyer(ctx, profile.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: list requests", apperror.ErrInternal)
	}
	counts, err := s.repo.Consultation.CountsByLawyer(ctx, profile.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: count requests", apperror.ErrInternal)
	}

	return &response.InboxResponse{
		Requests: response.ConsultationsToResponses(requests),
		Counts:   response.CountsToResponse(counts),
	}, nil
}

func profileLastLogin(ctx context.Context, repo *repository.Repository, userID uuid.UUID) *time.Time {
	user, err := repo.User.FindByID(ctx, userID)
	if err != nil || user == nil {
		return nil
	}
	return user.LastLogin
}
