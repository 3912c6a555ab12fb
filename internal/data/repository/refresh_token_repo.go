package repository

import (
	"context"
	"fmt"

	"advonex/internal/data/entity"
	"advonex/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type RefreshTokenRepository interface {
	Create(ctx context.Context, token *entity.RefreshToken) error
	FindLatestByUser(ctx context.Context, userID uuid.UUID) (*entity.RefreshToken, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
	DeleteAllForUser(ctx context.Context, userID uuid.UUID) error
}

type refreshTokenRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewRefreshTokenRepository(db database.Querier, log *zap.Logger) RefreshTokenRepository {
	return &refreshTokenRepository{
		db:  db,
		log: log,
	}
}

func (tr *refreshTokenRepository) Create(ctx context.Context, token *entity.RefreshToken) error {
	query := `
		INSERT INTO refresh_tokens (id, user_id, hashed_token, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := tr.db.Exec(ctx, query,
		token.ID,
		token.UserID,
		token.HashedToken,
		token.ExpiresAt,
		token.CreatedAt,
	)

	if err != nil {
		tr.log.Error("Failed to create refresh token",
			zap.Error(err),
			zap.String("user_id", token.UserID.String()),
		)
		return fmt.Errorf("create refresh token for user %s: %w", token.UserID.String(), err)
	}

	return nil
}

// FindLatestByUser returns the most recently issued token record. Rotation
// keeps one live record per user so the newest is the only valid one.
func (tr *refreshTokenRepository) FindLatestByUser(ctx context.Context, userID uuid.UUID) (*entity.RefreshToken, error) {
	query := `
		SELECT id, user_id, hashed_token, expires_at, created_at
		FROM refresh_tokens
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`

	var token entity.RefreshToken
	err := tr.db.QueryRow(ctx, query, userID).Scan(
		&token.ID,
		&token.UserID,
		&token.HashedToken,
		&token.ExpiresAt,
		&token.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		tr.log.Error("Failed to find refresh token",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find refresh token for user %s: %w", userID.String(), err)
	}

	return &token, nil
}

func (tr *refreshTokenRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM refresh_tokens WHERE id = $1`

	_, err := tr.db.Exec(ctx, query, id)
	if err != nil {
		tr.log.Error("Failed to delete refresh token",
			zap.Error(err),
			zap.String("token_id", id.String()),
		)
		return fmt.Errorf("delete refresh token %s: %w", id.String(), err)
	}

	return nil
}

func (tr *refreshTokenRepository) DeleteAllForUser(ctx context.Context, userID uuid.UUID) error {
	query := `DELETE FROM refresh_tokens WHERE user_id = $1`

	_, err := tr.db.Exec(ctx, query, userID)
	if err != nil {
		tr.log.Error("Failed to delete refresh tokens for user",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return fmt.Errorf("delete refresh tokens for user %s: %w", userID.String(), err)
	}

	return nil
}
