package utils

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	UserIDKey    contextKey = "user_id"
	RolesKey     contextKey = "roles"
	ProfileIDKey contextKey = "profile_id"
)

func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userIDVal := ctx.Value(UserIDKey)
	if userIDVal == nil {
		return uuid.Nil, false
	}

	userIDStr, ok := userIDVal.(string)
	if !ok {
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return uuid.Nil, false
	}

	return userID, true
}

func GetRolesFromContext(ctx context.Context) ([]string, bool) {
	rolesVal := ctx.Value(RolesKey)
	if rolesVal == nil {
		return nil, false
	}

	roles, ok := rolesVal.([]string)
	return roles, ok
}

// HasRoleInContext reports whether the authenticated user carries the role.
func HasRoleInContext(ctx context.Context, role string) bool {
	roles, ok := GetRolesFromContext(ctx)
	if !ok {
		return false
	}
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

func GetProfileIDFromContext(ctx context.Context) (string, bool) {
	profileVal := ctx.Value(ProfileIDKey)
	if profileVal == nil {
		return "", false
	}

	profileID, ok := profileVal.(string)
	return profileID, ok && profileID != ""
}

func SetUserContext(ctx context.Context, userID uuid.UUID, roles []string, profileID string) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, userID.String())
	ctx = context.WithValue(ctx, RolesKey, roles)
	ctx = context.WithValue(ctx, ProfileIDKey, profileID)
	return ctx
}
