package repository

import (
	"context"
	"fmt"

	"advonex/internal/data/entity"
	"advonex/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserRoleRepository interface {
	Create(ctx context.Context, role *entity.UserRole) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.UserRole, error)
	DeactivateAllForUser(ctx context.Context, userID uuid.UUID) error
	SetActive(ctx context.Context, userID uuid.UUID, role entity.Role) error
}

type userRoleRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewUserRoleRepository(db database.Querier, log *zap.Logger) UserRoleRepository {
	return &userRoleRepository{
		db:  db,
		log: log,
	}
}

func (rr *userRoleRepository) Create(ctx context.Context, role *entity.UserRole) error {
	query := `
		INSERT INTO user_roles (id, user_id, role, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := rr.db.Exec(ctx, query,
		role.ID,
		role.UserID,
		role.Role,
		role.IsActive,
		role.CreatedAt,
	)

	if err != nil {
		rr.log.Error("Failed to create user role",
			zap.Error(err),
			zap.String("user_id", role.UserID.String()),
			zap.String("role", string(role.Role)),
		)
		return fmt.Errorf("create user role %s: %w", role.Role, err)
	}

	return nil
}

func (rr *userRoleRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.UserRole, error) {
	query := `
		SELECT id, user_id, role, is_active, created_at
		FROM user_roles
		WHERE user_id = $1
		ORDER BY created_at ASC
	`

	rows, err := rr.db.Query(ctx, query, userID)
	if err != nil {
		rr.log.Error("Failed to list user roles",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("list roles for user %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var roles []*entity.UserRole
	for rows.Next() {
		var role entity.UserRole
		err := rows.Scan(
			&role.ID,
			&role.UserID,
			&role.Role,
			&role.IsActive,
			&role.CreatedAt,
		)
		if err != nil {
			rr.log.Error("Failed to scan user role row", zap.Error(err))
			return nil, fmt.Errorf("scan user role row: %w", err)
		}
		roles = append(roles, &role)
	}

	if err := rows.Err(); err != nil {
		rr.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate user role rows: %w", err)
	}

	return roles, nil
}

func (rr *userRoleRepository) DeactivateAllForUser(ctx context.Context, userID uuid.UUID) error {
	query := `UPDATE user_roles SET is_active = FALSE WHERE user_id = $1`

	_, err := rr.db.Exec(ctx, query, userID)
	if err != nil {
		rr.log.Error("Failed to deactivate user roles",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return fmt.Errorf("deactivate roles for user %s: %w", userID.String(), err)
	}

	return nil
}

func (rr *userRoleRepository) SetActive(ctx context.Context, userID uuid.UUID, role entity.Role) error {
	query := `UPDATE user_roles SET is_active = TRUE WHERE user_id = $1 AND role = $2`

	result, err := rr.db.Exec(ctx, query, userID, role)
	if err != nil {
		rr.log.Error("Failed to activate user role",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("role", string(role)),
		)
		return fmt.Errorf("activate role %s for user %s: %w", role, userID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("role %s not found for user %s", role, userID.String())
	}

	return nil
}
