package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"advonex/internal/data/entity"
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

type AuthService interface {
	RequestPhoneOtp(ctx context.Context, req *request.RequestOtpRequest) error
	VerifyPhoneOtp(ctx context.Context, req *request.VerifyOtpRequest) (*response.AuthResponse, error)
	RequestEmailOtp(ctx context.Context, req *request.RequestEmailOtpRequest) error
	VerifyEmailOtp(ctx context.Context, req *request.VerifyEmailOtpRequest) (*response.AuthResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*response.AuthResponse, error)
	Logout(ctx context.Context, userID uuid.UUID) error
	AddRole(ctx context.Context, userID uuid.UUID, req *request.AddRoleRequest) (*response.AuthResponse, error)
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*response.UserSummary, error)
}

type authService struct {
	repo    *repository.Repository
	config  *utils.Config
	tokens  *token.Manager
	limiter ratelimit.Limiter
	sms     sms.Sender
	mailer  mailer.Mailer
	log     *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	config *utils.Config,
	tokens *token.Manager,
	limiter ratelimit.Limiter,
	smsSender sms.Sender,
	mail mailer.Mailer,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:    repo,
		config:  config,
		tokens:  tokens,
		limiter: limiter,
		sms:     smsSender,
		mailer:  mail,
		log:     log,
	}
}

func (s *authService) RequestPhoneOtp(ctx context.Context, req *request.RequestOtpRequest) error {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return fmt.Errorf("%w: %s", apperror.ErrBadRequest, utils.FormatValidationErrors(errs))
	}

	// 2. Rate limit per phone number
	allowed, err := s.limiter.Allow(ctx, "otp:phone:"+req.PhoneNumber)
	if err != nil {
		s.log.Error("Rate limiter failure", zap.Error(err))
		return fmt.Errorf("%w: rate limiter unavailable", apperror.ErrInternal)
	}
	if !allowed {
		return fmt.Errorf("%w: too many OTP requests, try again later", apperror.ErrTooManyRequests)
	}

	// 3. A phone already registered under the other role cannot request a
	//    login for this one
	user, err := s.repo.User.FindByPhone(ctx, req.PhoneNumber)
	if err != nil {
		return fmt.Errorf("%w: check existing user", apperror.ErrInternal)
	}
	if user != nil {
		activeRole, err := s.activeRole(ctx, s.repo, user.ID)
		if err != nil {
			return err
		}
		if activeRole != "" && activeRole != entity.Role(req.Role) {
			return fmt.Errorf("%w: phone number already registered as %s", apperror.ErrConflict, activeRole)
		}
	}

	// 4. Generate and persist the code, replacing any live one
	code := utils.GenerateOTP(s.config.OTP.Length)
	now := time.Now().UTC()

	if err := s.repo.PhoneOtp.DeleteByPhone(ctx, req.PhoneNumber); err != nil {
		return fmt.Errorf("%w: reset phone OTP", apperror.ErrInternal)
	}

	otp := &entity.PhoneOtp{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		PhoneNumber: req.PhoneNumber,
		Otp:         code,
		Role:        entity.Role(req.Role),
		ExpiresAt:   now.Add(time.Duration(s.config.OTP.PhoneExpiryMinutes) * time.Minute),
	}
	if err := s.repo.PhoneOtp.Create(ctx, otp); err != nil {
		return fmt.Errorf("%w: store phone OTP", apperror.ErrInternal)
	}

	// 5. Deliver. A failed send is logged but does not invalidate the code
	//    unless configured to
	if err := s.sms.SendOtp(ctx, req.PhoneNumber, code); err != nil {
		s.log.Error("Failed to send OTP SMS",
			zap.Error(err),
			zap.String("phone_number", req.PhoneNumber),
		)
		if s.config.OTP.FailOnDeliveryError {
			return fmt.Errorf("%w: send OTP SMS", apperror.ErrInternal)
		}
	}

	s.log.Info("Phone OTP issued", zap.String("phone_number", req.PhoneNumber))
	return nil
}

func (s *authService) VerifyPhoneOtp(ctx context.Context, req *request.VerifyOtpRequest) (*response.AuthResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", apperror.ErrBadRequest, utils.FormatValidationErrors(errs))
	}

	now := time.Now().UTC()

	// 2. Look up a live code; on miss also sweep expired rows for the number
	otp, err := s.repo.PhoneOtp.FindValid(ctx, req.PhoneNumber, req.Otp, now)
	if err != nil {
		return nil, fmt.Errorf("%w: look up OTP", apperror.ErrInternal)
	}
	if otp == nil {
		if err := s.repo.PhoneOtp.DeleteExpiredForPhone(ctx, req.PhoneNumber, now); err != nil {
			s.log.Warn("Failed to purge expired OTPs", zap.Error(err))
		}
		return nil, fmt.Errorf("%w: invalid or expired OTP", apperror.ErrUnauthorized)
	}

	// 3. Log the user in (or create the account) atomically
	var result *response.AuthResponse
	err = s.repo.InTx(ctx, func(r *repository.Repository) error {
		user, err := r.User.FindByPhone(ctx, req.PhoneNumber)
		if err != nil {
			return fmt.Errorf("%w: find user", apperror.ErrInternal)
		}

		isNew := user == nil
		if isNew {
			user = &entity.User{
				Base: entity.Base{
					ID:        uuid.New(),
					CreatedAt: now,
					UpdatedAt: now,
				},
				PhoneNumber:   &req.PhoneNumber,
				AccountStatus: entity.AccountStatusActive,
				LastLogin:     &now,
			}
			if err := r.User.Create(ctx, user); err != nil {
				return fmt.Errorf("%w: create user", apperror.ErrInternal)
			}
			if err := createActiveRole(ctx, r, user.ID, otp.Role, now); err != nil {
				return err
			}
			if _, err := ensureProfile(ctx, r, user.ID, otp.Role, now); err != nil {
				return err
			}
		} else {
			activeRole, err := s.activeRole(ctx, r, user.ID)
			if err != nil {
				return err
			}
			if activeRole != otp.Role {
				return fmt.Errorf("%w: role %s is not active for this account", apperror.ErrUnauthorized, otp.Role)
			}
			if err := r.User.UpdateLastLogin(ctx, user.ID, now); err != nil {
				return fmt.Errorf("%w: stamp last login", apperror.ErrInternal)
			}
		}

		// Consume the code
		if err := r.PhoneOtp.DeleteByPhone(ctx, req.PhoneNumber); err != nil {
			return fmt.Errorf("%w: consume OTP", apperror.ErrInternal)
		}

		result, err = s.issueSession(ctx, r, user, isNew)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Phone OTP verified",
		zap.String("phone_number", req.PhoneNumber),
		zap.Bool("is_new_user", result.IsNewUser),
	)
	return result, nil
}

func (s *authService) RequestEmailOtp(ctx context.Context, req *request.RequestEmailOtpRequest) error {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return fmt.Errorf("%w: %s", apperror.ErrBadRequest, utils.FormatValidationErrors(errs))
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	// 2. Only allow-listed providers
	if !s.emailDomainAllowed(email) {
		return fmt.Errorf("%w: email domain is not supported", apperror.ErrBadRequest)
	}

	// 3. Rate limit per address
	allowed, err := s.limiter.Allow(ctx, "otp:email:"+email)
	if err != nil {
		s.log.Error("Rate limiter failure", zap.Error(err))
		return fmt.Errorf("%w: rate limiter unavailable", apperror.ErrInternal)
	}
	if !allowed {
		return fmt.Errorf("%w: too many OTP requests, try again later", apperror.ErrTooManyRequests)
	}

	// 4. Upsert the single row for this address
	code := utils.GenerateOTP(s.config.OTP.Length)
	now := time.Now().UTC()
	otp := &entity.EmailOtp{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		Email:     email,
		Otp:       code,
		IsUsed:    false,
		ExpiresAt: now.Add(time.Duration(s.config.OTP.EmailExpiryMinutes) * time.Minute),
	}
	if err := s.repo.EmailOtp.Upsert(ctx, otp); err != nil {
		return fmt.Errorf("%w: store email OTP", apperror.ErrInternal)
	}

	// 5. Deliver
	if _, err := s.mailer.SendOtpEmail(ctx, email, code); err != nil {
		s.log.Error("Failed to send OTP email",
			zap.Error(err),
			zap.String("email", email),
		)
		if s.config.OTP.FailOnDeliveryError {
			return fmt.Errorf("%w: send OTP email", apperror.ErrInternal)
		}
	}

	s.log.Info("Email OTP issued", zap.String("email", email))
	return nil
}

func (s *authService) VerifyEmailOtp(ctx context.Context, req *request.VerifyEmailOtpRequest) (*response.AuthResponse, error) {
	// 1. Validate input; role defaults to CLIENT
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", apperror.ErrBadRequest, utils.FormatValidationErrors(errs))
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	role := entity.RoleClient
	if req.Role != "" {
		role = entity.Role(req.Role)
	}

	now := time.Now().UTC()

	// 2. Check the stored code
	otp, err := s.repo.EmailOtp.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%w: look up OTP", apperror.ErrInternal)
	}
	if otp == nil || otp.IsUsed || otp.Otp != req.Otp || !otp.ExpiresAt.After(now) {
		return nil, fmt.Errorf("%w: invalid or expired OTP", apperror.ErrUnauthorized)
	}

	// 3. Log in or create the account; the code is marked used, not deleted
	var result *response.AuthResponse
	err = s.repo.InTx(ctx, func(r *repository.Repository) error {
		user, err := r.User.FindByEmail(ctx, email)
		if err != nil {
			return fmt.Errorf("%w: find user", apperror.ErrInternal)
		}

		isNew := user == nil
		if isNew {
			user = &entity.User{
				Base: entity.Base{
					ID:        uuid.New(),
					CreatedAt: now,
					UpdatedAt: now,
				},
				Email:         &email,
				AccountStatus: entity.AccountStatusActive,
				LastLogin:     &now,
			}
			if err := r.User.Create(ctx, user); err != nil {
				return fmt.Errorf("%w: create user", apperror.ErrInternal)
			}
			if err := createActiveRole(ctx, r, user.ID, role, now); err != nil {
				return err
			}
			if _, err := ensureProfile(ctx, r, user.ID, role, now); err != nil {
				return err
			}
		} else {
			activeRole, err := s.activeRole(ctx, r, user.ID)
			if err != nil {
				return err
			}
			if activeRole != role {
				return fmt.Errorf("%w: role %s is not active for this account", apperror.ErrUnauthorized, role)
			}
			if err := r.User.UpdateLastLogin(ctx, user.ID, now); err != nil {
				return fmt.Errorf("%w: stamp last login", apperror.ErrInternal)
			}
		}

		if err := r.EmailOtp.MarkUsed(ctx, otp.ID); err != nil {
			return fmt.Errorf("%w: consume OTP", apperror.ErrInternal)
		}

		result, err = s.issueSession(ctx, r, user, isNew)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Email OTP verified",
		zap.String("email", email),
		zap.Bool("is_new_user", result.IsNewUser),
	)
	return result, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*response.AuthResponse, error) {
	if refreshToken == "" {
		return nil, fmt.Errorf("%w: refresh token is required", apperror.ErrBadRequest)
	}

	// 1. Signature check only; the stored record decides expiry
	subject, err := s.tokens.ParseRefreshSubject(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed refresh token", apperror.ErrUnauthorized)
	}
	userID, err := uuid.Parse(subject)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed refresh token", apperror.ErrUnauthorized)
	}

	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: find user", apperror.ErrInternal)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: unknown user", apperror.ErrUnauthorized)
	}

	// 2. Compare against the newest stored record
	record, err := s.repo.RefreshToken.FindLatestByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: find refresh token", apperror.ErrInternal)
	}
	if record == nil {
		return nil, fmt.Errorf("%w: no active session", apperror.ErrUnauthorized)
	}

	if !token.CompareRefreshToken(record.HashedToken, refreshToken) {
		// A valid-signature token that does not match the stored hash is a
		// replay of a rotated token. Kill every session for the user.
		s.log.Warn("Refresh token reuse detected", zap.String("user_id", userID.String()))
		if err := s.repo.RefreshToken.DeleteAllForUser(ctx, userID); err != nil {
			s.log.Error("Failed to revoke refresh tokens", zap.Error(err))
		}
		return nil, fmt.Errorf("%w: refresh token revoked", apperror.ErrUnauthorized)
	}

	if !record.ExpiresAt.After(time.Now().UTC()) {
		if err := s.repo.RefreshToken.DeleteByID(ctx, record.ID); err != nil {
			s.log.Error("Failed to delete expired refresh token", zap.Error(err))
		}
		return nil, fmt.Errorf("%w: refresh token expired", apperror.ErrUnauthorized)
	}

	// 3. Rotate atomically
	var result *response.AuthResponse
	err = s.repo.InTx(ctx, func(r *repository.Repository) error {
		if err := r.RefreshToken.DeleteByID(ctx, record.ID); err != nil {
			return fmt.Errorf("%w: rotate refresh token", apperror.ErrInternal)
		}
		result, err = s.issueSession(ctx, r, user, false)
		return err
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (s *authService) Logout(ctx context.Context, userID uuid.UUID) error {
	if err := s.repo.RefreshToken.DeleteAllForUser(ctx, userID); err != nil {
		return fmt.Errorf("%w: revoke sessions", apperror.ErrInternal)
	}
	s.log.Info("User logged out", zap.String("user_id", userID.String()))
	return nil
}

func (s *authService) AddRole(ctx context.Context, userID uuid.UUID, req *request.AddRoleRequest) (*response.AuthResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", apperror.ErrBadRequest, utils.FormatValidationErrors(errs))
	}

	role := entity.Role(req.Role)
	if role == entity.RoleAdmin {
		return nil, fmt.Errorf("%w: ADMIN role cannot be self-assigned", apperror.ErrForbidden)
	}

	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: find user", apperror.ErrInternal)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: unknown user", apperror.ErrUnauthorized)
	}

	// 2. Switching to the role already active is a conflict
	activeRole, err := s.activeRole(ctx, s.repo, userID)
	if err != nil {
		return nil, err
	}
	if activeRole == role {
		return nil, fmt.Errorf("%w: role %s is already active", apperror.ErrConflict, role)
	}

	// 3. Flip the active role and make sure the profile row exists
	now := time.Now().UTC()
	var result *response.AuthResponse
	err = s.repo.InTx(ctx, func(r *repository.Repository) error {
		if err := r.UserRole.DeactivateAllForUser(ctx, userID); err != nil {
			return fmt.Errorf("%w: deactivate roles", apperror.ErrInternal)
		}

		roles, err := r.UserRole.ListByUser(ctx, userID)
		if err != nil {
			return fmt.Errorf("%w: list roles", apperror.ErrInternal)
		}
		exists := false
		for _, existing := range roles {
			if existing.Role == role {
				exists = true
				break
			}
		}
		if exists {
			if err := r.UserRole.SetActive(ctx, userID, role); err != nil {
				return fmt.Errorf("%w: activate role", apperror.ErrInternal)
			}
		} else {
			if err := createActiveRole(ctx, r, userID, role, now); err != nil {
				return err
			}
		}

		if _, err := ensureProfile(ctx, r, userID, role, now); err != nil {
			return err
		}

		result, err = s.issueSession(ctx, r, user, false)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Active role switched",
		zap.String("user_id", userID.String()),
		zap.String("role", string(role)),
	)
	return result, nil
}

func (s *authService) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*response.UserSummary, error) {
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: find user", apperror.ErrInternal)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: unknown user", apperror.ErrUnauthorized)
	}

	roles, err := s.repo.UserRole.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: list roles", apperror.ErrInternal)
	}

	profileID, err := s.activeProfileID(ctx, s.repo, user.ID, roles)
	if err != nil {
		return nil, err
	}

	summary := response.UserToSummary(user, roles, profileID)
	return &summary, nil
}

// ==================== Helpers ====================

// issueSession re-reads role/profile state, mints a token pair and persists
// the refresh hash. Must run with the surrounding writes in one tx.
func (s *authService) issueSession(ctx context.Context, r *repository.Repository, user *entity.User, isNew bool) (*response.AuthResponse, error) {
	roles, err := r.UserRole.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: list roles", apperror.ErrInternal)
	}

	profileID, err := s.activeProfileID(ctx, r, user.ID, roles)
	if err != nil {
		return nil, err
	}

	var activeRoles []string
	for _, role := range roles {
		if role.IsActive {
			activeRoles = append(activeRoles, string(role.Role))
		}
	}

	var phone, email string
	if user.PhoneNumber != nil {
		phone = *user.PhoneNumber
	}
	if user.Email != nil {
		email = *user.Email
	}

	pair, err := s.tokens.NewPair(user.ID.String(), activeRoles, profileID, phone, email)
	if err != nil {
		s.log.Error("Failed to mint token pair", zap.Error(err))
		return nil, fmt.Errorf("%w: mint tokens", apperror.ErrInternal)
	}

	hash, err := token.HashRefreshToken(pair.RefreshToken)
	if err != nil {
		return nil, fmt.Errorf("%w: hash refresh token", apperror.ErrInternal)
	}
	record := &entity.RefreshToken{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now().UTC(),
		},
		UserID:      user.ID,
		HashedToken: hash,
		ExpiresAt:   pair.RefreshExpiresAt,
	}
	if err := r.RefreshToken.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("%w: store refresh token", apperror.ErrInternal)
	}

	return &response.AuthResponse{
		User:      response.UserToSummary(user, roles, profileID),
		Tokens:    response.PairToResponse(pair),
		IsNewUser: isNew,
	}, nil
}

func (s *authService) activeRole(ctx context.Context, r *repository.Repository, userID uuid.UUID) (entity.Role, error) {
	roles, err := r.UserRole.ListByUser(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("%w: list roles", apperror.ErrInternal)
	}
	for _, role := range roles {
		if role.IsActive {
			return role.Role, nil
		}
	}
	return "", nil
}

// activeProfileID resolves the profile row backing the active role.
func (s *authService) activeProfileID(ctx context.Context, r *repository.Repository, userID uuid.UUID, roles []*entity.UserRole) (string, error) {
	for _, role := range roles {
		if !role.IsActive {
			continue
		}
		switch role.Role {
		case entity.RoleClient:
			profile, err := r.ClientProfile.FindByUserID(ctx, userID)
			if err != nil {
				return "", fmt.Errorf("%w: find client profile", apperror.ErrInternal)
			}
			if profile != nil {
				return profile.ID.String(), nil
			}
		case entity.RoleLawyer:
			profile, err := r.LawyerProfile.FindByUserID(ctx, userID)
			if err != nil {
				return "", fmt.Errorf("%w: find lawyer profile", apperror.ErrInternal)
			}
			if profile != nil {
				return profile.ID.String(), nil
			}
		}
	}
	return "", nil
}

func (s *authService) emailDomainAllowed(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return false
	}
	domain := email[at+1:]
	for _, allowed := range s.config.OTP.AllowedEmailDomains {
		if domain == allowed {
			return true
		}
	}
	return false
}

func createActiveRole(ctx context.Context, r *repository.Repository, userID uuid.UUID, role entity.Role, now time.Time) error {
	userRole := &entity.UserRole{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		UserID:   userID,
		Role:     role,
		IsActive: true,
	}
	if err := r.UserRole.Create(ctx, userRole); err != nil {
		return fmt.Errorf("%w: create role", apperror.ErrInternal)
	}
	return nil
}

// ensureProfile creates the profile row for a role the first time it is
// activated. New profiles start with registrationPending set.
func ensureProfile(ctx context.Context, r *repository.Repository, userID uuid.UUID, role entity.Role, now time.Time) (string, error) {
	switch role {
	case entity.RoleClient:
		profile, err := r.ClientProfile.FindByUserID(ctx, userID)
		if err != nil {
			return "", fmt.Errorf("%w: find client profile", apperror.ErrInternal)
		}
		if profile != nil {
			return profile.ID.String(), nil
		}
		profile = &entity.ClientProfile{
			Base: entity.Base{
				ID:        uuid.New(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			UserID:              userID,
			RegistrationPending: true,
		}
		if err := r.ClientProfile.Create(ctx, profile); err != nil {
			return "", fmt.Errorf("%w: create client profile", apperror.ErrInternal)
		}
		return profile.ID.String(), nil

	case entity.RoleLawyer:
		profile, err := r.LawyerProfile.FindByUserID(ctx, userID)
		if err != nil {
			return "", fmt.Errorf("%w: find lawyer profile", apperror.ErrInternal)
		}
		if profile != nil {
			return profile.ID.String(), nil
		}
		profile = &entity.LawyerProfile{
			Base: entity.Base{
				ID:        uuid.New(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			UserID:              userID,
			RegistrationPending: true,
		}
		if err := r.LawyerProfile.Create(ctx, profile); err != nil {
			return "", fmt.Errorf("%w: create lawyer profile", apperror.ErrInternal)
		}
		return profile.ID.String(), nil
	}

	return "", nil
}
