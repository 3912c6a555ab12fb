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

type clientTestEnv struct {
	service       ClientService
	clientProfile *entity.ClientProfile
	lawyerProfile *entity.LawyerProfile
	lawyers       *fakeLawyerProfileRepo
	consultations *fakeConsultationRepo
}

func newClientTestEnv(t *testing.T) *clientTestEnv {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC()

	clients := newFakeClientProfileRepo()
	lawyers := newFakeLawyerProfileRepo()
	consultations := &fakeConsultationRepo{}

	repo := &repository.Repository{
		ClientProfile: clients,
		LawyerProfile: lawyers,
		SavedLawyer:   &fakeSavedLawyerRepo{},
		Consultation:  consultations,
	}

	clientProfile := &entity.ClientProfile{
		Base:   entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		UserID: uuid.New(),
	}
	if err := clients.Create(ctx, clientProfile); err != nil {
		t.Fatalf("seed client profile: %v", err)
	}

	name := "Test Lawyer"
	lawyerProfile := &entity.LawyerProfile{
		Base:   entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		UserID: uuid.New(),
		Name:   &name,
	}
	if err := lawyers.Create(ctx, lawyerProfile); err != nil {
		t.Fatalf("seed lawyer profile: %v", err)
	}

	return &clientTestEnv{
		service:       NewClientService(repo, zap.NewNop()),
		clientProfile: clientProfile,
		lawyerProfile: lawyerProfile,
		lawyers:       lawyers,
		consultations: consultations,
	}
}

func TestSaveLawyer(t *testing.T) {
	env := newClientTestEnv(t)
	ctx := context.Background()
	userID := env.clientProfile.UserID

	saved, err := env.service.SaveLawyer(ctx, userID, &request.SaveLawyerRequest{
		LawyerID: env.lawyerProfile.ID.String(),
	})
	if err != nil {
		t.Fatalf("SaveLawyer: %v", err)
	}
	if saved.Lawyer.ID != env.lawyerProfile.ID.String() {
		t.Errorf("saved lawyer id = %q, want %q", saved.Lawyer.ID, env.lawyerProfile.ID)
	}

	// Saving twice is a conflict
	_, err = env.service.SaveLawyer(ctx, userID, &request.SaveLawyerRequest{
		LawyerID: env.lawyerProfile.ID.String(),
	})
	if !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("duplicate save: err = %v, want conflict", err)
	}

	// An unknown lawyer id is not found
	_, err = env.service.SaveLawyer(ctx, userID, &request.SaveLawyerRequest{
		LawyerID: uuid.New().String(),
	})
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("unknown lawyer: err = %v, want not found", err)
	}

	// A caller without a client profile is not found
	_, err = env.service.SaveLawyer(ctx, uuid.New(), &request.SaveLawyerRequest{
		LawyerID: env.lawyerProfile.ID.String(),
	})
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("no client profile: err = %v, want not found", err)
	}

	list, err := env.service.ListSavedLawyers(ctx, userID)
	if err != nil {
		t.Fatalf("ListSavedLawyers: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("saved lawyers = %d, want 1", len(list))
	}
}

func TestConsultationLifecycle(t *testing.T) {
	env := newClientTestEnv(t)
	ctx := context.Background()
	userID := env.clientProfile.UserID

	created, err := env.service.RequestConsultation(ctx, userID, &request.CreateConsultationRequest{
		LawyerID: env.lawyerProfile.ID.String(),
		Message:  "I need help with a tenancy dispute",
	})
	if err != nil {
		t.Fatalf("RequestConsultation: %v", err)
	}
	if created.Status != string(entity.RequestStatusPending) {
		t.Errorf("status = %q, want PENDING", created.Status)
	}
	if created.ResponseStatus != string(entity.ResponseStatusPending) {
		t.Errorf("responseStatus = %q, want PENDING", created.ResponseStatus)
	}

	requestID, err := uuid.Parse(created.ID)
	if err != nil {
		t.Fatalf("parse request id: %v", err)
	}

	fetched, err := env.service.GetConsultation(ctx, userID, requestID)
	if err != nil {
		t.Fatalf("GetConsultation: %v", err)
	}
	if fetched.Lawyer == nil || fetched.Lawyer.ID != env.lawyerProfile.ID.String() {
		t.Error("fetched request must embed the lawyer card")
	}

	// Another client's request is invisible
	_, err = env.service.GetConsultation(ctx, uuid.New(), requestID)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("foreign request: err = %v, want not found", err)
	}

	cancelled, err := env.service.CancelConsultation(ctx, userID, requestID)
	if err != nil {
		t.Fatalf("CancelConsultation: %v", err)
	}
	if cancelled.Status != string(entity.RequestStatusClosed) {
		t.Errorf("status after cancel = %q, want CLOSED", cancelled.Status)
	}

	// A closed request cannot be cancelled again
	_, err = env.service.CancelConsultation(ctx, userID, requestID)
	if !errors.Is(err, apperror.ErrBadRequest) {
		t.Errorf("cancel closed request: err = %v, want bad request", err)
	}
}

func TestGetConsultationLawyerLookupFailure(t *testing.T) {
	env := newClientTestEnv(t)
	ctx := context.Background()
	userID := env.clientProfile.UserID

	created, err := env.service.RequestConsultation(ctx, userID, &request.CreateConsultationRequest{
		LawyerID: env.lawyerProfile.ID.String(),
		Message:  "Employment dispute",
	})
	if err != nil {
		t.Fatalf("RequestConsultation: %v", err)
	}
	requestID, err := uuid.Parse(created.ID)
	if err != nil {
		t.Fatalf("parse request id: %v", err)
	}

	// A failed lawyer lookup must surface, not return a half-built response
	env.lawyers.findErr = errors.New("connection reset")
	_, err = env.service.GetConsultation(ctx, userID, requestID)
	if !errors.Is(err, apperror.ErrInternal) {
		t.Errorf("lawyer lookup failure: err = %v, want internal", err)
	}
}

func TestCancelRespondedConsultation(t *testing.T) {
	env := newClientTestEnv(t)
	ctx := context.Background()
	userID := env.clientProfile.UserID

	created, err := env.service.RequestConsultation(ctx, userID, &request.CreateConsultationRequest{
		LawyerID: env.lawyerProfile.ID.String(),
		Message:  "Contract review",
	})
	if err != nil {
		t.Fatalf("RequestConsultation: %v", err)
	}
	requestID, err := uuid.Parse(created.ID)
	if err != nil {
		t.Fatalf("parse request id: %v", err)
	}

	if err := env.consultations.UpdateStatus(ctx, requestID, entity.RequestStatusResponded); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}

	_, err = env.service.CancelConsultation(ctx, userID, requestID)
	if !errors.Is(err, apperror.ErrBadRequest) {
		t.Errorf("cancel responded request: err = %v, want bad request", err)
	}
}

func TestListConsultations(t *testing.T) {
	env := newClientTestEnv(t)
	ctx := context.Background()
	userID := env.clientProfile.UserID

	for _, msg := range []string{"first", "second"} {
		_, err := env.service.RequestConsultation(ctx, userID, &request.CreateConsultationRequest{
			LawyerID: env.lawyerProfile.ID.String(),
			Message:  msg,
		})
		if err != nil {
			t.Fatalf("RequestConsultation(%s): %v", msg, err)
		}
	}

	list, err := env.service.ListConsultations(ctx, userID)
	if err != nil {
		t.Fatalf("ListConsultations: %v", err)
	}
	if len(list) != 2 {
		t.Errorf("requests = %d, want 2", len(list))
	}
}
