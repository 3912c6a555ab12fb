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

type ClientProfileRepository interface {
	Create(ctx context.Context, profile *entity.ClientProfile) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.ClientProfile, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.ClientProfile, error)
	Update(ctx context.Context, profile *entity.ClientProfile) error
}

type clientProfileRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewClientProfileRepository(db database.Querier, log *zap.Logger) ClientProfileRepository {
	return &clientProfileRepository{
		db:  db,
		log: log,
	}
}

func (cr *clientProfileRepository) Create(ctx context.Context, profile *entity.ClientProfile) error {
	query := `
		INSERT INTO client_profiles (id, user_id, name, photo, registration_pending, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := cr.db.Exec(ctx, query,
		profile.ID,
		profile.UserID,
		profile.Name,
		profile.Photo,
		profile.RegistrationPending,
		profile.CreatedAt,
		profile.UpdatedAt,
	)

	if err != nil {
		cr.log.Error("Failed to create client profile",
			zap.Error(err),
			zap.String("user_id", profile.UserID.String()),
		)
		return fmt.Errorf("create client profile for user %s: %w", profile.UserID.String(), err)
	}

	return nil
}

func (cr *clientProfileRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.ClientProfile, error) {
	query := `
		SELECT id, user_id, name, photo, registration_pending, created_at, updated_at
		FROM client_profiles
		WHERE id = $1
	`

	return cr.scanOne(ctx, query, id)
}

func (cr *clientProfileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.ClientProfile, error) {
	query := `
		SELECT id, user_id, name, photo, registration_pending, created_at, updated_at
		FROM client_profiles
		WHERE user_id = $1
	`

	return cr.scanOne(ctx, query, userID)
}

func (cr *clientProfileRepository) scanOne(ctx context.Context, query string, arg any) (*entity.ClientProfile, error) {
	var profile entity.ClientProfile
	err := cr.db.QueryRow(ctx, query, arg).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.Name,
		&profile.Photo,
		&profile.RegistrationPending,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		cr.log.Error("Failed to find client profile", zap.Error(err))
		return nil, fmt.Errorf("find client profile: %w", err)
	}

	return &profile, nil
}

func (cr *clientProfileRepository) Update(ctx context.Context, profile *entity.ClientProfile) error {
	query := `
		UPDATE client_profiles
		SET name = $2, photo = $3, registration_pending = $4, updated_at = $5
		WHERE id = $1
	`

	result, err := cr.db.Exec(ctx, query,
		profile.ID,
		profile.Name,
		profile.Photo,
		profile.RegistrationPending,
		profile.UpdatedAt,
	)

	if err != nil {
		cr.log.Error("Failed to update client profile",
			zap.Error(err),
			zap.String("profile_id", profile.ID.String()),
		)
		return fmt.Errorf("update client profile %s: %w", profile.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("client profile %s not found", profile.ID.String())
	}

	return nil
}
