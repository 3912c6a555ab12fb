package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"advonex/internal/data/entity"
	"advonex/internal/data/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// In-memory repository fakes. A Repository built with these has no pool, so
// InTx runs the callback directly.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user, ok := f.users[id]; ok {
		clone := *user
		return &clone, nil
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByPhone(_ context.Context, phone string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.PhoneNumber != nil && *user.PhoneNumber == phone {
			clone := *user
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Email != nil && *user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) UpdateLastLogin(_ context.Context, id uuid.UUID, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user, ok := f.users[id]; ok {
		user.LastLogin = &at
		user.UpdatedAt = at
	}
	return nil
}

type fakeUserRoleRepo struct {
	mu    sync.Mutex
	roles []*entity.UserRole
}

func (f *fakeUserRoleRepo) Create(_ context.Context, role *entity.UserRole) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *role
	f.roles = append(f.roles, &clone)
	return nil
}

func (f *fakeUserRoleRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]*entity.UserRole, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.UserRole
	for _, role := range f.roles {
		if role.UserID == userID {
			clone := *role
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (f *fakeUserRoleRepo) DeactivateAllForUser(_ context.Context, userID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, role := range f.roles {
		if role.UserID == userID {
			role.IsActive = false
		}
	}
	return nil
}

func (f *fakeUserRoleRepo) SetActive(_ context.Context, userID uuid.UUID, target entity.Role) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, role := range f.roles {
		if role.UserID == userID && role.Role == target {
			role.IsActive = true
			return nil
		}
	}
	return pgx.ErrNoRows
}

type fakeClientProfileRepo struct {
	mu       sync.Mutex
	profiles map[uuid.UUID]*entity.ClientProfile
}

func newFakeClientProfileRepo() *fakeClientProfileRepo {
	return &fakeClientProfileRepo{profiles: make(map[uuid.UUID]*entity.ClientProfile)}
}

func (f *fakeClientProfileRepo) Create(_ context.Context, profile *entity.ClientProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *profile
	f.profiles[profile.ID] = &clone
	return nil
}

func (f *fakeClientProfileRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.ClientProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if profile, ok := f.profiles[id]; ok {
		clone := *profile
		return &clone, nil
	}
	return nil, nil
}

func (f *fakeClientProfileRepo) FindByUserID(_ context.Context, userID uuid.UUID) (*entity.ClientProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, profile := range f.profiles {
		if profile.UserID == userID {
			clone := *profile
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeClientProfileRepo) Update(_ context.Context, profile *entity.ClientProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *profile
	f.profiles[profile.ID] = &clone
	return nil
}

type fakeLawyerProfileRepo struct {
	mu       sync.Mutex
	profiles map[uuid.UUID]*entity.LawyerProfile
	findErr  error
}

func newFakeLawyerProfileRepo() *fakeLawyerProfileRepo {
	return &fakeLawyerProfileRepo{profiles: make(map[uuid.UUID]*entity.LawyerProfile)}
}

func (f *fakeLawyerProfileRepo) Create(_ context.Context, profile *entity.LawyerProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *profile
	f.profiles[profile.ID] = &clone
	return nil
}

func (f *fakeLawyerProfileRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.LawyerProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	if profile, ok := f.profiles[id]; ok {
		clone := *profile
		return &clone, nil
	}
	return nil, nil
}

func (f *fakeLawyerProfileRepo) FindByUserID(_ context.Context, userID uuid.UUID) (*entity.LawyerProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, profile := range f.profiles {
		if profile.UserID == userID {
			clone := *profile
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeLawyerProfileRepo) Update(_ context.Context, profile *entity.LawyerProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *profile
	f.profiles[profile.ID] = &clone
	return nil
}

func (f *fakeLawyerProfileRepo) Search(_ context.Context, _ repository.LawyerSearchFilter) ([]*entity.LawyerProfile, error) {
	return nil, nil
}

func (f *fakeLawyerProfileRepo) CountSearch(_ context.Context, _ repository.LawyerSearchFilter) (int64, error) {
	return 0, nil
}

func (f *fakeLawyerProfileRepo) LoadRelations(_ context.Context, _ *entity.LawyerProfile) error {
	return nil
}

func (f *fakeLawyerProfileRepo) UpsertEducation(_ context.Context, _ *entity.Education) error {
	return nil
}

func (f *fakeLawyerProfileRepo) AddPracticeArea(_ context.Context, _, _ uuid.UUID) error { return nil }
func (f *fakeLawyerProfileRepo) RemovePracticeArea(_ context.Context, _, _ uuid.UUID) error {
	return pgx.ErrNoRows
}
func (f *fakeLawyerProfileRepo) AddPracticeCourt(_ context.Context, _, _ uuid.UUID) error { return nil }
func (f *fakeLawyerProfileRepo) RemovePracticeCourt(_ context.Context, _, _ uuid.UUID) error {
	return pgx.ErrNoRows
}
func (f *fakeLawyerProfileRepo) AddService(_ context.Context, _, _ uuid.UUID) error { return nil }
func (f *fakeLawyerProfileRepo) RemoveService(_ context.Context, _, _ uuid.UUID) error {
	return pgx.ErrNoRows
}

type fakePhoneOtpRepo struct {
	mu   sync.Mutex
	otps []*entity.PhoneOtp
}

func (f *fakePhoneOtpRepo) Create(_ context.Context, otp *entity.PhoneOtp) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *otp
	f.otps = append(f.otps, &clone)
	return nil
}

func (f *fakePhoneOtpRepo) FindValid(_ context.Context, phone, code string, now time.Time) (*entity.PhoneOtp, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, otp := range f.otps {
		if otp.PhoneNumber == phone && otp.Otp == code && otp.ExpiresAt.After(now) {
			clone := *otp
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakePhoneOtpRepo) DeleteByPhone(_ context.Context, phone string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.otps[:0]
	for _, otp := range f.otps {
		if otp.PhoneNumber != phone {
			kept = append(kept, otp)
		}
	}
	f.otps = kept
	return nil
}

func (f *fakePhoneOtpRepo) DeleteExpiredForPhone(_ context.Context, phone string, now time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.otps[:0]
	for _, otp := range f.otps {
		if otp.PhoneNumber != phone || otp.ExpiresAt.After(now) {
			kept = append(kept, otp)
		}
	}
	f.otps = kept
	return nil
}

func (f *fakePhoneOtpRepo) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var deleted int64
	kept := f.otps[:0]
	for _, otp := range f.otps {
		if otp.ExpiresAt.After(now) {
			kept = append(kept, otp)
		} else {
			deleted++
		}
	}
	f.otps = kept
	return deleted, nil
}

// latest returns the single live OTP for a phone number, for tests to read
// the generated code back.
func (f *fakePhoneOtpRepo) latest(phone string) *entity.PhoneOtp {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.otps) - 1; i >= 0; i-- {
		if f.otps[i].PhoneNumber == phone {
			clone := *f.otps[i]
			return &clone
		}
	}
	return nil
}

// expire backdates every stored code for a phone number, for expiry tests.
func (f *fakePhoneOtpRepo) expire(phone string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, otp := range f.otps {
		if otp.PhoneNumber == phone {
			otp.ExpiresAt = time.Now().UTC().Add(-time.Minute)
		}
	}
}

type fakeEmailOtpRepo struct {
	mu   sync.Mutex
	otps map[string]*entity.EmailOtp
}

func newFakeEmailOtpRepo() *fakeEmailOtpRepo {
	return &fakeEmailOtpRepo{otps: make(map[string]*entity.EmailOtp)}
}

func (f *fakeEmailOtpRepo) Upsert(_ context.Context, otp *entity.EmailOtp) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *otp
	f.otps[otp.Email] = &clone
	return nil
}

func (f *fakeEmailOtpRepo) FindByEmail(_ context.Context, email string) (*entity.EmailOtp, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if otp, ok := f.otps[email]; ok {
		clone := *otp
		return &clone, nil
	}
	return nil, nil
}

func (f *fakeEmailOtpRepo) MarkUsed(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, otp := range f.otps {
		if otp.ID == id {
			otp.IsUsed = true
			return nil
		}
	}
	return pgx.ErrNoRows
}

// expire backdates the stored code for an address, for expiry tests.
func (f *fakeEmailOtpRepo) expire(email string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if otp, ok := f.otps[email]; ok {
		otp.ExpiresAt = time.Now().UTC().Add(-time.Minute)
	}
}

func (f *fakeEmailOtpRepo) DeleteExpiredOrUsed(_ context.Context, now time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var deleted int64
	for email, otp := range f.otps {
		if otp.IsUsed || !otp.ExpiresAt.After(now) {
			delete(f.otps, email)
			deleted++
		}
	}
	return deleted, nil
}

type fakeRefreshTokenRepo struct {
	mu     sync.Mutex
	tokens []*entity.RefreshToken
}

func (f *fakeRefreshTokenRepo) Create(_ context.Context, token *entity.RefreshToken) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *token
	f.tokens = append(f.tokens, &clone)
	return nil
}

func (f *fakeRefreshTokenRepo) FindLatestByUser(_ context.Context, userID uuid.UUID) (*entity.RefreshToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var latest *entity.RefreshToken
	for _, token := range f.tokens {
		if token.UserID != userID {
			continue
		}
		if latest == nil || token.CreatedAt.After(latest.CreatedAt) {
			latest = token
		}
	}
	if latest == nil {
		return nil, nil
	}
	clone := *latest
	return &clone, nil
}

func (f *fakeRefreshTokenRepo) DeleteByID(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.tokens[:0]
	for _, token := range f.tokens {
		if token.ID != id {
			kept = append(kept, token)
		}
	}
	f.tokens = kept
	return nil
}

func (f *fakeRefreshTokenRepo) DeleteAllForUser(_ context.Context, userID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.tokens[:0]
	for _, token := range f.tokens {
		if token.UserID != userID {
			kept = append(kept, token)
		}
	}
	f.tokens = kept
	return nil
}

// fakePracticeAreaRepo mirrors the repository contract: FindByName is
// case-insensitive equality, never a pattern match.
type fakePracticeAreaRepo struct {
	mu    sync.Mutex
	areas []*entity.PracticeArea
}

func (f *fakePracticeAreaRepo) FindAll(_ context.Context) ([]*entity.PracticeArea, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*entity.PracticeArea, 0, len(f.areas))
	for _, area := range f.areas {
		clone := *area
		out = append(out, &clone)
	}
	return out, nil
}

func (f *fakePracticeAreaRepo) FindByName(_ context.Context, name string) (*entity.PracticeArea, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, area := range f.areas {
		if strings.EqualFold(area.Name, name) {
			clone := *area
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakePracticeAreaRepo) Create(_ context.Context, area *entity.PracticeArea) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *area
	f.areas = append(f.areas, &clone)
	return nil
}

type fakeSavedLawyerRepo struct {
	mu    sync.Mutex
	saved []*entity.SavedLawyer
}

func (f *fakeSavedLawyerRepo) Create(_ context.Context, saved *entity.SavedLawyer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *saved
	f.saved = append(f.saved, &clone)
	return nil
}

func (f *fakeSavedLawyerRepo) Exists(_ context.Context, clientProfileID, lawyerProfileID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, row := range f.saved {
		if row.ClientProfileID == clientProfileID && row.LawyerProfileID == lawyerProfileID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeSavedLawyerRepo) ListByClient(_ context.Context, clientProfileID uuid.UUID) ([]*entity.SavedLawyer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.SavedLawyer
	for i := len(f.saved) - 1; i >= 0; i-- {
		if f.saved[i].ClientProfileID == clientProfileID {
			clone := *f.saved[i]
			out = append(out, &clone)
		}
	}
	return out, nil
}

type fakeConsultationRepo struct {
	mu       sync.Mutex
	requests []*entity.ConsultationRequest
}

func (f *fakeConsultationRepo) Create(_ context.Context, request *entity.ConsultationRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *request
	f.requests = append(f.requests, &clone)
	return nil
}

func (f *fakeConsultationRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.ConsultationRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, request := range f.requests {
		if request.ID == id {
			clone := *request
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeConsultationRepo) ListByClient(_ context.Context, clientProfileID uuid.UUID) ([]*entity.ConsultationRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.ConsultationRequest
	for i := len(f.requests) - 1; i >= 0; i-- {
		if f.requests[i].ClientProfileID == clientProfileID {
			clone := *f.requests[i]
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (f *fakeConsultationRepo) ListByLawyer(_ context.Context, lawyerProfileID uuid.UUID) ([]*entity.ConsultationRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.ConsultationRequest
	for i := len(f.requests) - 1; i >= 0; i-- {
		if f.requests[i].LawyerProfileID == lawyerProfileID {
			clone := *f.requests[i]
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (f *fakeConsultationRepo) CountsByLawyer(_ context.Context, lawyerProfileID uuid.UUID) (*repository.ConsultationCounts, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	counts := &repository.ConsultationCounts{}
	for _, request := range f.requests {
		if request.LawyerProfileID != lawyerProfileID {
			continue
		}
		counts.Total++
		switch request.ResponseStatus {
		case entity.ResponseStatusPending:
			counts.Pending++
		case entity.ResponseStatusAccepted:
			counts.Accepted++
		case entity.ResponseStatusRejected:
			counts.Rejected++
		}
	}
	return counts, nil
}

func (f *fakeConsultationRepo) UpdateStatus(_ context.Context, id uuid.UUID, status entity.RequestStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, request := range f.requests {
		if request.ID == id {
			request.Status = status
			request.UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f *fakeRefreshTokenRepo) count(userID uuid.UUID) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, token := range f.tokens {
		if token.UserID == userID {
			n++
		}
	}
	return n
}

// expireAll backdates every stored record, for expiry tests.
func (f *fakeRefreshTokenRepo) expireAll() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, token := range f.tokens {
		token.ExpiresAt = time.Now().UTC().Add(-time.Minute)
	}
}
