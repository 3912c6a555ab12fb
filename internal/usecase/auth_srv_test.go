package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"advonex/internal/data/repository"
	"advonex/internal/dto/request"
	"advonex/internal/dto/response"
	"advonex/pkg/apperror"
	"advonex/pkg/mailer"
	"advonex/pkg/ratelimit"
	"advonex/pkg/sms"
	"advonex/pkg/token"
	"advonex/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type authTestEnv struct {
	service   AuthService
	tokens    *token.Manager
	phoneOtps *fakePhoneOtpRepo
	emailOtps *fakeEmailOtpRepo
	refresh   *fakeRefreshTokenRepo
}

func newAuthTestEnv(t *testing.T) *authTestEnv {
	t.Helper()

	logger := zap.NewNop()
	phoneOtps := &fakePhoneOtpRepo{}
	emailOtps := newFakeEmailOtpRepo()
	refresh := &fakeRefreshTokenRepo{}

	repo := &repository.Repository{
		User:          newFakeUserRepo(),
		UserRole:      &fakeUserRoleRepo{},
		ClientProfile: newFakeClientProfileRepo(),
		LawyerProfile: newFakeLawyerProfileRepo(),
		PhoneOtp:      phoneOtps,
		EmailOtp:      emailOtps,
		RefreshToken:  refresh,
	}

	config := &utils.Config{
		OTP: utils.OTPConfig{
			Length:              6,
			PhoneExpiryMinutes:  10,
			EmailExpiryMinutes:  5,
			MaxRequestsPerHour:  5,
			AllowedEmailDomains: []string{"gmail.com"},
		},
	}

	tokens, err := token.NewManager(utils.JWTConfig{
		AccessSecret:      "test-access-secret",
		AccessExpiryHours: 1,
		RefreshSecret:     "test-refresh-secret",
		RefreshExpiryDays: 7,
	})
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	service := NewAuthService(
		repo,
		config,
		tokens,
		ratelimit.NewMemoryLimiter(config.OTP.MaxRequestsPerHour, time.Hour),
		sms.NewMockSender(logger),
		mailer.NewMockMailer(logger),
		logger,
	)

	return &authTestEnv{
		service:   service,
		tokens:    tokens,
		phoneOtps: phoneOtps,
		emailOtps: emailOtps,
		refresh:   refresh,
	}
}

// login drives the request/verify flow and returns the auth response plus the
// code that was consumed.
func (env *authTestEnv) login(t *testing.T, phone, role string) (*response.AuthResponse, string) {
	t.Helper()
	ctx := context.Background()

	err := env.service.RequestPhoneOtp(ctx, &request.RequestOtpRequest{
		PhoneNumber: phone,
		Role:        role,
	})
	if err != nil {
		t.Fatalf("RequestPhoneOtp: %v", err)
	}

	otp := env.phoneOtps.latest(phone)
	if otp == nil {
		t.Fatal("no OTP stored after request")
	}

	resp, err := env.service.VerifyPhoneOtp(ctx, &request.VerifyOtpRequest{
		PhoneNumber: phone,
		Otp:         otp.Otp,
	})
	if err != nil {
		t.Fatalf("VerifyPhoneOtp: %v", err)
	}

	return resp, otp.Otp
}

func (env *authTestEnv) userID(t *testing.T, resp *response.AuthResponse) uuid.UUID {
	t.Helper()
	id, err := uuid.Parse(resp.User.ID)
	if err != nil {
		t.Fatalf("parse user id %q: %v", resp.User.ID, err)
	}
	return id
}

func TestPhoneOtpSignupFlow(t *testing.T) {
	env := newAuthTestEnv(t)

	resp, _ := env.login(t, "+15551230001", "CLIENT")

	if !resp.IsNewUser {
		t.Error("expected isNewUser for first login")
	}
	if got := resp.User.Roles; len(got) != 1 || got[0] != "CLIENT" {
		t.Errorf("roles = %v, want [CLIENT]", got)
	}
	if resp.User.ActiveRole != "CLIENT" {
		t.Errorf("activeRole = %q, want CLIENT", resp.User.ActiveRole)
	}
	if resp.User.ProfileID == "" {
		t.Error("expected a profile id for the new client")
	}
	if resp.Tokens.AccessToken == "" || resp.Tokens.RefreshToken == "" {
		t.Error("expected a full token pair")
	}

	// Second login with the same phone is not a signup
	second, _ := env.login(t, "+15551230001", "CLIENT")
	if second.IsNewUser {
		t.Error("second login must not report isNewUser")
	}
	if second.User.ID != resp.User.ID {
		t.Error("second login must land on the same account")
	}
}

func TestVerifyOtpIsSingleUse(t *testing.T) {
	env := newAuthTestEnv(t)
	ctx := context.Background()

	_, code := env.login(t, "+15551230002", "CLIENT")

	_, err := env.service.VerifyPhoneOtp(ctx, &request.VerifyOtpRequest{
		PhoneNumber: "+15551230002",
		Otp:         code,
	})
	if !errors.Is(err, apperror.ErrUnauthorized) {
		t.Errorf("replayed OTP: err = %v, want unauthorized", err)
	}
}

func TestVerifyOtpWrongCode(t *testing.T) {
	env := newAuthTestEnv(t)
	ctx := context.Background()

	err := env.service.RequestPhoneOtp(ctx, &request.RequestOtpRequest{
		PhoneNumber: "+15551230003",
		Role:        "CLIENT",
	})
	if err != nil {
		t.Fatalf("RequestPhoneOtp: %v", err)
	}

	_, err = env.service.VerifyPhoneOtp(ctx, &request.VerifyOtpRequest{
		PhoneNumber: "+15551230003",
		Otp:         "000000",
	})
	if !errors.Is(err, apperror.ErrUnauthorized) {
		t.Errorf("wrong code: err = %v, want unauthorized", err)
	}
}

func TestVerifyOtpExpiredCode(t *testing.T) {
	env := newAuthTestEnv(t)
	ctx := context.Background()

	err := env.service.RequestPhoneOtp(ctx, &request.RequestOtpRequest{
		PhoneNumber: "+15551230012",
		Role:        "CLIENT",
	})
	if err != nil {
		t.Fatalf("RequestPhoneOtp: %v", err)
	}

	otp := env.phoneOtps.latest("+15551230012")
	if otp == nil {
		t.Fatal("no OTP stored after request")
	}
	env.phoneOtps.expire("+15551230012")

	_, err = env.service.VerifyPhoneOtp(ctx, &request.VerifyOtpRequest{
		PhoneNumber: "+15551230012",
		Otp:         otp.Otp,
	})
	if !errors.Is(err, apperror.ErrUnauthorized) {
		t.Errorf("expired code: err = %v, want unauthorized", err)
	}
}

func TestVerifyEmailOtpExpiredCode(t *testing.T) {
	env := newAuthTestEnv(t)
	ctx := context.Background()

	if err := env.service.RequestEmailOtp(ctx, &request.RequestEmailOtpRequest{Email: "expired@gmail.com"}); err != nil {
		t.Fatalf("RequestEmailOtp: %v", err)
	}

	stored, err := env.emailOtps.FindByEmail(ctx, "expired@gmail.com")
	if err != nil || stored == nil {
		t.Fatalf("stored OTP: %v, %v", stored, err)
	}
	env.emailOtps.expire("expired@gmail.com")

	_, err = env.service.VerifyEmailOtp(ctx, &request.VerifyEmailOtpRequest{
		Email: "expired@gmail.com",
		Otp:   stored.Otp,
	})
	if !errors.Is(err, apperror.ErrUnauthorized) {
		t.Errorf("expired code: err = %v, want unauthorized", err)
	}
}

func TestRequestOtpRoleConflict(t *testing.T) {
	env := newAuthTestEnv(t)
	ctx := context.Background()

	env.login(t, "+15551230004", "LAWYER")

	err := env.service.RequestPhoneOtp(ctx, &request.RequestOtpRequest{
		PhoneNumber: "+15551230004",
		Role:        "CLIENT",
	})
	if !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("cross-role request: err = %v, want conflict", err)
	}
}

func TestRequestOtpRateLimit(t *testing.T) {
	env := newAuthTestEnv(t)
	ctx := context.Background()

	req := &request.RequestOtpRequest{PhoneNumber: "+15551230005", Role: "CLIENT"}
	for i := 0; i < 5; i++ {
		if err := env.service.RequestPhoneOtp(ctx, req); err != nil {
			t.Fatalf("request %d: %v", i+1, err)
		}
	}

	err := env.service.RequestPhoneOtp(ctx, req)
	if !errors.Is(err, apperror.ErrTooManyRequests) {
		t.Errorf("6th request in the window: err = %v, want too many requests", err)
	}

	// A different identifier is not throttled
	other := &request.RequestOtpRequest{PhoneNumber: "+15551230006", Role: "CLIENT"}
	if err := env.service.RequestPhoneOtp(ctx, other); err != nil {
		t.Errorf("other phone blocked: %v", err)
	}
}

func TestAddRole(t *testing.T) {
	env := newAuthTestEnv(t)
	ctx := context.Background()

	resp, _ := env.login(t, "+15551230007", "CLIENT")
	userID := env.userID(t, resp)

	// ADMIN cannot be self-assigned
	_, err := env.service.AddRole(ctx, userID, &request.AddRoleRequest{Role: "ADMIN"})
	if !errors.Is(err, apperror.ErrForbidden) {
		t.Errorf("add ADMIN: err = %v, want forbidden", err)
	}

	// The active role is a conflict
	_, err = env.service.AddRole(ctx, userID, &request.AddRoleRequest{Role: "CLIENT"})
	if !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("add active role: err = %v, want conflict", err)
	}

	// Switching to LAWYER mints tokens carrying only the new role
	switched, err := env.service.AddRole(ctx, userID, &request.AddRoleRequest{Role: "LAWYER"})
	if err != nil {
		t.Fatalf("AddRole(LAWYER): %v", err)
	}
	if switched.User.ActiveRole != "LAWYER" {
		t.Errorf("activeRole = %q, want LAWYER", switched.User.ActiveRole)
	}
	if len(switched.User.Roles) != 2 {
		t.Errorf("roles = %v, want both CLIENT and LAWYER", switched.User.Roles)
	}

	claims, err := env.tokens.ParseAccess(switched.Tokens.AccessToken)
	if err != nil {
		t.Fatalf("ParseAccess: %v", err)
	}
	if len(claims.Roles) != 1 || claims.Roles[0] != "LAWYER" {
		t.Errorf("token roles = %v, want [LAWYER]", claims.Roles)
	}
	if claims.ProfileID == "" {
		t.Error("token must carry the lawyer profile id")
	}
	if claims.ProfileID == resp.User.ProfileID {
		t.Error("lawyer profile id must differ from the client profile id")
	}

	// Switching back reuses the existing role row
	back, err := env.service.AddRole(ctx, userID, &request.AddRoleRequest{Role: "CLIENT"})
	if err != nil {
		t.Fatalf("AddRole(CLIENT): %v", err)
	}
	if back.User.ActiveRole != "CLIENT" {
		t.Errorf("activeRole = %q, want CLIENT", back.User.ActiveRole)
	}
	if back.User.ProfileID != resp.User.ProfileID {
		t.Error("switching back must resolve the original client profile")
	}
}

func TestRefreshRotation(t *testing.T) {
	env := newAuthTestEnv(t)
	ctx := context.Background()

	resp, _ := env.login(t, "+15551230008", "CLIENT")
	userID := env.userID(t, resp)
	oldToken := resp.Tokens.RefreshToken

	rotated, err := env.service.Refresh(ctx, oldToken)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if rotated.Tokens.RefreshToken == oldToken {
		t.Error("refresh must issue a new refresh token")
	}

	// Replaying the rotated-out token revokes every session
	_, err = env.service.Refresh(ctx, oldToken)
	if !errors.Is(err, apperror.ErrUnauthorized) {
		t.Errorf("replayed refresh token: err = %v, want unauthorized", err)
	}
	if n := env.refresh.count(userID); n != 0 {
		t.Errorf("stored refresh tokens after replay = %d, want 0", n)
	}

	// The rotated pair is dead too, its stored record is gone
	_, err = env.service.Refresh(ctx, rotated.Tokens.RefreshToken)
	if !errors.Is(err, apperror.ErrUnauthorized) {
		t.Errorf("refresh after revocation: err = %v, want unauthorized", err)
	}
}

func TestRefreshExpiredRecord(t *testing.T) {
	env := newAuthTestEnv(t)
	ctx := context.Background()

	resp, _ := env.login(t, "+15551230009", "CLIENT")
	userID := env.userID(t, resp)

	env.refresh.expireAll()

	_, err := env.service.Refresh(ctx, resp.Tokens.RefreshToken)
	if !errors.Is(err, apperror.ErrUnauthorized) {
		t.Errorf("expired record: err = %v, want unauthorized", err)
	}
	if n := env.refresh.count(userID); n != 0 {
		t.Errorf("expired record not deleted, %d left", n)
	}
}

func TestRefreshMalformedToken(t *testing.T) {
	env := newAuthTestEnv(t)

	_, err := env.service.Refresh(context.Background(), "not-a-jwt")
	if !errors.Is(err, apperror.ErrUnauthorized) {
		t.Errorf("malformed token: err = %v, want unauthorized", err)
	}

	_, err = env.service.Refresh(context.Background(), "")
	if !errors.Is(err, apperror.ErrBadRequest) {
		t.Errorf("empty token: err = %v, want bad request", err)
	}
}

func TestLogoutRevokesAllSessions(t *testing.T) {
	env := newAuthTestEnv(t)
	ctx := context.Background()

	resp, _ := env.login(t, "+15551230010", "CLIENT")
	userID := env.userID(t, resp)

	if err := env.service.Logout(ctx, userID); err != nil {
		t.Fatalf("Logout: %v", err)
	}

	_, err := env.service.Refresh(ctx, resp.Tokens.RefreshToken)
	if !errors.Is(err, apperror.ErrUnauthorized) {
		t.Errorf("refresh after logout: err = %v, want unauthorized", err)
	}
}

func TestEmailOtpFlow(t *testing.T) {
	env := newAuthTestEnv(t)
	ctx := context.Background()

	// Unsupported domain is rejected outright
	err := env.service.RequestEmailOtp(ctx, &request.RequestEmailOtpRequest{Email: "user@example.org"})
	if !errors.Is(err, apperror.ErrBadRequest) {
		t.Errorf("disallowed domain: err = %v, want bad request", err)
	}

	// The address is normalized before the allow-list check
	if err := env.service.RequestEmailOtp(ctx, &request.RequestEmailOtpRequest{Email: "User@Gmail.com"}); err != nil {
		t.Fatalf("RequestEmailOtp: %v", err)
	}

	stored, err := env.emailOtps.FindByEmail(ctx, "user@gmail.com")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if stored == nil {
		t.Fatal("no OTP stored under the normalized address")
	}

	resp, err := env.service.VerifyEmailOtp(ctx, &request.VerifyEmailOtpRequest{
		Email: "user@gmail.com",
		Otp:   stored.Otp,
	})
	if err != nil {
		t.Fatalf("VerifyEmailOtp: %v", err)
	}
	if !resp.IsNewUser {
		t.Error("expected isNewUser on first email login")
	}
	if resp.User.ActiveRole != "CLIENT" {
		t.Errorf("activeRole = %q, want CLIENT default", resp.User.ActiveRole)
	}

	// The used code cannot be replayed
	_, err = env.service.VerifyEmailOtp(ctx, &request.VerifyEmailOtpRequest{
		Email: "user@gmail.com",
		Otp:   stored.Otp,
	})
	if !errors.Is(err, apperror.ErrUnauthorized) {
		t.Errorf("replayed email OTP: err = %v, want unauthorized", err)
	}
}

func TestGetCurrentUser(t *testing.T) {
	env := newAuthTestEnv(t)
	ctx := context.Background()

	resp, _ := env.login(t, "+15551230011", "LAWYER")
	userID := env.userID(t, resp)

	summary, err := env.service.GetCurrentUser(ctx, userID)
	if err != nil {
		t.Fatalf("GetCurrentUser: %v", err)
	}
	if summary.ActiveRole != "LAWYER" {
		t.Errorf("activeRole = %q, want LAWYER", summary.ActiveRole)
	}
	if summary.PhoneNumber == nil || *summary.PhoneNumber != "+15551230011" {
		t.Errorf("phoneNumber = %v, want +15551230011", summary.PhoneNumber)
	}
	if summary.ProfileID != resp.User.ProfileID {
		t.Errorf("profileId = %q, want %q", summary.ProfileID, resp.User.ProfileID)
	}

	_, err = env.service.GetCurrentUser(ctx, uuid.New())
	if !errors.Is(err, apperror.ErrUnauthorized) {
		t.Errorf("unknown user: err = %v, want unauthorized", err)
	}
}
