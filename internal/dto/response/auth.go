package response

import (
	"time"

	"advonex/internal/data/entity"
	"advonex/pkg/token"
)

type UserSummary struct {
	ID          string   `json:"id"`
	PhoneNumber *string  `json:"phoneNumber,omitempty"`
	Email       *string  `json:"email,omitempty"`
	Roles       []string `json:"roles"`
	ActiveRole  string   `json:"activeRole,omitempty"`
	ProfileID   string   `json:"profileId,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type TokenPair struct {
	AccessToken      string    `json:"accessToken"`
	AccessExpiresAt  time.Time `json:"accessExpiresAt"`
	RefreshToken     string    `json:"refreshToken"`
	RefreshExpiresAt time.Time `json:"refreshExpiresAt"`
}

type AuthResponse struct {
	User      UserSummary `json:"user"`
	Tokens    TokenPair   `json:"tokens"`
	IsNewUser bool        `json:"isNewUser"`
}

func UserToSummary(user *entity.User, roles []*entity.UserRole, profileID string) UserSummary {
	summary := UserSummary{
		ID:          user.ID.String(),
		PhoneNumber: user.PhoneNumber,
		Email:       user.Email,
		Roles:       []string{},
		ProfileID:   profileID,
		CreatedAt:   user.CreatedAt,
	}

	for _, role := range roles {
		summary.Roles = append(summary.Roles, string(role.Role))
		if role.IsActive {
			summary.ActiveRole = string(role.Role)
		}
	}

	return summary
}

func PairToResponse(pair *token.Pair) TokenPair {
	return TokenPair{
		AccessToken:      pair.AccessToken,
		AccessExpiresAt:  pair.AccessExpiresAt,
		RefreshToken:     pair.RefreshToken,
		RefreshExpiresAt: pair.RefreshExpiresAt,
	}
}
