package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"advonex/internal/data/entity"
	"advonex/internal/data/repository"
	"advonex/internal/dto/request"
	"advonex/pkg/apperror"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type lawyerTestEnv struct {
	service       LawyerService
	lawyerProfile *entity.LawyerProfile
	consultations *fakeConsultationRepo
}

func newLawyerTestEnv(t *testing.T) *lawyerTestEnv {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC()

	lawyers := newFakeLawyerProfileRepo()
	consultations := &fakeConsultationRepo{}

	repo := &repository.Repository{
		User:          newFakeUserRepo(),
		LawyerProfile: lawyers,
		Consultation:  consultations,
	}

	name := "Dashboard Lawyer"
	lawyerProfile := &entity.LawyerProfile{
		Base:   entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		UserID: uuid.New(),
		Name:   &name,
	}
	if err := lawyers.Create(ctx, lawyerProfile); err != nil {
		t.Fatalf("seed lawyer profile: %v", err)
	}

	return &lawyerTestEnv{
		service:       NewLawyerService(repo, zap.NewNop()),
		lawyerProfile: lawyerProfile,
		consultations: consultations,
	}
}

func (env *lawyerTestEnv) seedRequest(t *testing.T, responseStatus entity.ResponseStatus, at time.Time) {
	t.Helper()
	err := env.consultations.Create(context.Background(), &entity.ConsultationRequest{
		Base:            entity.Base{ID: uuid.New(), CreatedAt: at, UpdatedAt: at},
		ClientProfileID: uuid.New(),
		LawyerProfileID: env.lawyerProfile.ID,
		Message:         "seeded",
		Status:          entity.RequestStatusPending,
		ResponseStatus:  responseStatus,
	})
	if err != nil {
		t.Fatalf("seed consultation: %v", err)
	}
}

func TestSearchPagingDefaults(t *testing.T) {
	env := newLawyerTestEnv(t)
	ctx := context.Background()

	result, err := env.service.Search(ctx, &request.SearchLawyersRequest{Page: 0, Limit: 0})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if result.Page != 1 {
		t.Errorf("page = %d, want 1", result.Page)
	}
	if result.Limit != 10 {
		t.Errorf("limit = %d, want 10", result.Limit)
	}
	if result.Data == nil {
		t.Error("data must be an empty slice, not nil")
	}

	result, err = env.service.Search(ctx, &request.SearchLawyersRequest{Page: 2, Limit: 500})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if result.Limit != 100 {
		t.Errorf("limit = %d, want clamp to 100", result.Limit)
	}
}

func TestGetByID(t *testing.T) {
	env := newLawyerTestEnv(t)
	ctx := context.Background()

	profile, err := env.service.GetByID(ctx, env.lawyerProfile.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if profile.Name == nil || *profile.Name != "Dashboard Lawyer" {
		t.Errorf("name = %v, want Dashboard Lawyer", profile.Name)
	}
	if profile.PracticeAreas == nil || profile.Services == nil {
		t.Error("relation slices must be present even when empty")
	}

	_, err = env.service.GetByID(ctx, uuid.New())
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("unknown id: err = %v, want not found", err)
	}
}

func TestDashboard(t *testing.T) {
	env := newLawyerTestEnv(t)
	ctx := context.Background()
	now := time.Now().UTC()

	// 7 pending plus 2 decided; recents cap at 5
	for i := 0; i < 7; i++ {
		env.seedRequest(t, entity.ResponseStatusPending, now.Add(time.Duration(i)*time.Minute))
	}
	env.seedRequest(t, entity.ResponseStatusAccepted, now.Add(10*time.Minute))
	env.seedRequest(t, entity.ResponseStatusRejected, now.Add(11*time.Minute))

	dashboard, err := env.service.Dashboard(ctx, env.lawyerProfile.UserID)
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}

	if dashboard.Requests.Total != 9 {
		t.Errorf("total = %d, want 9", dashboard.Requests.Total)
	}
	if dashboard.Requests.Pending != 7 {
		t.Errorf("pending = %d, want 7", dashboard.Requests.Pending)
	}
	if dashboard.Requests.Accepted != 1 || dashboard.Requests.Rejected != 1 {
		t.Errorf("accepted/rejected = %d/%d, want 1/1",
			dashboard.Requests.Accepted, dashboard.Requests.Rejected)
	}
	if len(dashboard.RecentRequests) != dashboardRecentLimit {
		t.Errorf("recent requests = %d, want %d", len(dashboard.RecentRequests), dashboardRecentLimit)
	}
	if len(dashboard.RecentResponses) != 2 {
		t.Errorf("recent responses = %d, want 2", len(dashboard.RecentResponses))
	}

	_, err = env.service.Dashboard(ctx, uuid.New())
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("unknown user: err = %v, want not found", err)
	}
}

func TestInbox(t *testing.T) {
	env := newLawyerTestEnv(t)
	ctx := context.Background()
	now := time.Now().UTC()

	env.seedRequest(t, entity.ResponseStatusPending, now)
	env.seedRequest(t, entity.ResponseStatusAccepted, now.Add(time.Minute))

	inbox, err := env.service.Inbox(ctx, env.lawyerProfile.UserID)
	if err != nil {
		t.Fatalf("Inbox: %v", err)
	}
	if len(inbox.Requests) != 2 {
		t.Errorf("requests = %d, want 2", len(inbox.Requests))
	}
	if inbox.Counts.Pending != 1 || inbox.Counts.Accepted != 1 {
		t.Errorf("counts = %+v, want 1 pending and 1 accepted", inbox.Counts)
	}
}
