// Package token mints and verifies the access/refresh JWT pair and owns the
// storage hashing for refresh tokens. Access tokens carry the active role
// set and profile id; refresh tokens carry only the subject.
package token

import (
	"crypto/sha256"
	"fmt"
	"time"

	"advonex/pkg/utils"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type AccessClaims struct {
	Roles     []string `json:"roles"`
	ProfileID string   `json:"profileId"`
	Phone     string   `json:"phone,omitempty"`
	Email     string   `json:"email,omitempty"`
	jwt.RegisteredClaims
}

type Pair struct {
	AccessToken      string
	AccessExpiresAt  time.Time
	RefreshToken     string
	RefreshExpiresAt time.Time
}

type Manager struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewManager fails when either secret is missing; a token stack without
// secrets must not come up.
func NewManager(cfg utils.JWTConfig) (*Manager, error) {
	if cfg.AccessSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not configured")
	}
	if cfg.RefreshSecret == "" {
		return nil, fmt.Errorf("JWT_REFRESH_SECRET is not configured")
	}

	return &Manager{
		accessSecret:  []byte(cfg.AccessSecret),
		refreshSecret: []byte(cfg.RefreshSecret),
		accessTTL:     time.Duration(cfg.AccessExpiryHours) * time.Hour,
		refreshTTL:    time.Duration(cfg.RefreshExpiryDays) * 24 * time.Hour,
	}, nil
}

// NewPair mints an access token for the given identity plus a refresh token
// carrying only the subject.
func (m *Manager) NewPair(userID string, roles []string, profileID, phone, email string) (*Pair, error) {
	now := time.Now().UTC()
	accessExp := now.Add(m.accessTTL)
	refreshExp := now.Add(m.refreshTTL)

	accessClaims := AccessClaims{
		Roles:     roles,
		ProfileID: profileID,
		Phone:     phone,
		Email:     email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(accessExp),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).SignedString(m.accessSecret)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}

	refreshClaims := jwt.RegisteredClaims{
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(refreshExp),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	refresh, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString(m.refreshSecret)
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}

	return &Pair{
		AccessToken:      access,
		AccessExpiresAt:  accessExp,
		RefreshToken:     refresh,
		RefreshExpiresAt: refreshExp,
	}, nil
}

// ParseAccess verifies signature and expiry and returns the claims.
func (m *Manager) ParseAccess(tokenStr string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.accessSecret, nil
	})
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// ParseRefreshSubject verifies the refresh token signature and returns the
// subject. Expiry is deliberately not validated here: the stored record is
// authoritative, and "malformed" must be distinguishable from "expired".
func (m *Manager) ParseRefreshSubject(tokenStr string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.refreshSecret, nil
	}, jwt.WithoutClaimsValidation())
	if err != nil {
		return "", err
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("refresh token has no subject")
	}
	return claims.Subject, nil
}

// HashRefreshToken returns the salted hash persisted in place of the raw
// token. The token is SHA-256-digested first because bcrypt rejects inputs
// longer than 72 bytes and a signed JWT always is.
func HashRefreshToken(raw string) (string, error) {
	sum := sha256.Sum256([]byte(raw))
	hash, err := bcrypt.GenerateFromPassword(sum[:], bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CompareRefreshToken reports whether raw matches the stored hash.
func CompareRefreshToken(hashed, raw string) bool {
	sum := sha256.Sum256([]byte(raw))
	return bcrypt.CompareHashAndPassword([]byte(hashed), sum[:]) == nil
}
