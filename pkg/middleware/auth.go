package middleware

import (
	"net/http"
	"strings"

	"advonex/internal/data/entity"
	"advonex/internal/data/repository"
	"advonex/pkg/token"
	"advonex/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Auth validates the bearer access token and the account status, then puts
// the identity (user id, active roles, profile id) on the request context.
func Auth(tokens *token.Manager, userRepo repository.UserRepository, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.ResponseUnauthorized(w, "Missing authorization token")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}

			claims, err := tokens.ParseAccess(parts[1])
			if err != nil {
				logger.Warn("Invalid access token", zap.Error(err))
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			}

			userID, err := uuid.Parse(claims.Subject)
			if err != nil {
				logger.Warn("Access token subject is not a UUID", zap.String("sub", claims.Subject))
				utils.ResponseUnauthorized(w, "Invalid token subject")
				return
			}

			user, err := userRepo.FindByID(r.Context(), userID)
			if err != nil {
				logger.Error("Failed to load user for auth",
					zap.Error(err), zap.String("user_id", userID.String()))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}
			if user == nil || user.AccountStatus != entity.AccountStatusActive {
				logger.Warn("Token for missing or inactive account", zap.String("user_id", userID.String()))
				utils.ResponseUnauthorized(w, "Account is not active")
				return
			}

			ctx := utils.SetUserContext(r.Context(), userID, claims.Roles, claims.ProfileID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole gates a route on an active role carried by the access token.
func RequireRole(role entity.Role, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := utils.GetUserIDFromContext(r.Context()); !ok {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			if !utils.HasRoleInContext(r.Context(), string(role)) {
				logger.Warn("Role check failed",
					zap.String("required", string(role)),
					zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, "Access denied. Required role: "+string(role))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
