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

type staticDataTestEnv struct {
	service       StaticDataService
	lawyerProfile *entity.LawyerProfile
	areas         *fakePracticeAreaRepo
}

func newStaticDataTestEnv(t *testing.T) *staticDataTestEnv {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC()

	lawyers := newFakeLawyerProfileRepo()
	areas := &fakePracticeAreaRepo{}

	repo := &repository.Repository{
		LawyerProfile: lawyers,
		PracticeArea:  areas,
	}

	lawyerProfile := &entity.LawyerProfile{
		Base:   entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		UserID: uuid.New(),
	}
	if err := lawyers.Create(ctx, lawyerProfile); err != nil {
		t.Fatalf("seed lawyer profile: %v", err)
	}

	return &staticDataTestEnv{
		service:       NewStaticDataService(repo, zap.NewNop()),
		lawyerProfile: lawyerProfile,
		areas:         areas,
	}
}

func TestAddPracticeAreaReusesExistingName(t *testing.T) {
	env := newStaticDataTestEnv(t)
	ctx := context.Background()
	userID := env.lawyerProfile.UserID

	first, err := env.service.AddLawyerPracticeArea(ctx, userID, &request.AddPracticeAreaRequest{Name: "Taxation"})
	if err != nil {
		t.Fatalf("AddLawyerPracticeArea: %v", err)
	}

	// A different casing of the same name resolves to the existing row
	second, err := env.service.AddLawyerPracticeArea(ctx, userID, &request.AddPracticeAreaRequest{Name: "taxation"})
	if err != nil {
		t.Fatalf("AddLawyerPracticeArea: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("taxation resolved to %s, want existing row %s", second.ID, first.ID)
	}
	if second.Name != "Taxation" {
		t.Errorf("name = %q, want the stored casing Taxation", second.Name)
	}
}

func TestAddPracticeAreaTreatsWildcardsAsLiterals(t *testing.T) {
	env := newStaticDataTestEnv(t)
	ctx := context.Background()
	userID := env.lawyerProfile.UserID

	existing, err := env.service.AddLawyerPracticeArea(ctx, userID, &request.AddPracticeAreaRequest{Name: "Taxation"})
	if err != nil {
		t.Fatalf("AddLawyerPracticeArea: %v", err)
	}

	// Names containing SQL pattern metacharacters are plain names, they
	// must not glob onto existing rows
	created, err := env.service.AddLawyerPracticeArea(ctx, userID, &request.AddPracticeAreaRequest{Name: "Tax%"})
	if err != nil {
		t.Fatalf("AddLawyerPracticeArea: %v", err)
	}
	if created.ID == existing.ID {
		t.Error("Tax% matched the Taxation row instead of creating its own")
	}
	if created.Name != "Tax%" {
		t.Errorf("name = %q, want Tax%%", created.Name)
	}

	areas, err := env.areas.FindAll(ctx)
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if len(areas) != 2 {
		t.Errorf("stored areas = %d, want 2 distinct rows", len(areas))
	}
}

func TestAddPracticeAreaRequiresLawyerProfile(t *testing.T) {
	env := newStaticDataTestEnv(t)

	_, err := env.service.AddLawyerPracticeArea(context.Background(), uuid.New(), &request.AddPracticeAreaRequest{Name: "Family Law"})
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("no lawyer profile: err = %v, want not found", err)
	}
}

func TestRemovePracticeAreaUnknownLink(t *testing.T) {
	env := newStaticDataTestEnv(t)

	err := env.service.RemoveLawyerPracticeArea(context.Background(), env.lawyerProfile.UserID, uuid.New())
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("unknown link: err = %v, want not found", err)
	}
}
