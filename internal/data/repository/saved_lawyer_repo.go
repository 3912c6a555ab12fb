package repository

import (
	"context"
	"fmt"

	"advonex/internal/data/entity"
	"advonex/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type SavedLawyerRepository interface {
	Create(ctx context.Context, saved *entity.SavedLawyer) error
	Exists(ctx context.Context, clientProfileID, lawyerProfileID uuid.UUID) (bool, error)
	ListByClient(ctx context.Context, clientProfileID uuid.UUID) ([]*entity.SavedLawyer, error)
}

type savedLawyerRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewSavedLawyerRepository(db database.Querier, log *zap.Logger) SavedLawyerRepository {
	return &savedLawyerRepository{
		db:  db,
		log: log,
	}
}

func (sr *savedLawyerRepository) Create(ctx context.Context, saved *entity.SavedLawyer) error {
	query := `
		INSERT INTO saved_lawyers (id, client_profile_id, lawyer_profile_id, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := sr.db.Exec(ctx, query,
		saved.ID,
		saved.ClientProfileID,
		saved.LawyerProfileID,
		saved.CreatedAt,
	)

	if err != nil {
		sr.log.Error("Failed to save lawyer",
			zap.Error(err),
			zap.String("client_profile_id", saved.ClientProfileID.String()),
			zap.String("lawyer_profile_id", saved.LawyerProfileID.String()),
		)
		return fmt.Errorf("save lawyer %s for client %s: %w",
			saved.LawyerProfileID.String(), saved.ClientProfileID.String(), err)
	}

	return nil
}

func (sr *savedLawyerRepository) Exists(ctx context.Context, clientProfileID, lawyerProfileID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM saved_lawyers
			WHERE client_profile_id = $1 AND lawyer_profile_id = $2
		)
	`

	var exists bool
	err := sr.db.QueryRow(ctx, query, clientProfileID, lawyerProfileID).Scan(&exists)
	if err != nil {
		sr.log.Error("Failed to check saved lawyer",
			zap.Error(err),
			zap.String("client_profile_id", clientProfileID.String()),
		)
		return false, fmt.Errorf("check saved lawyer: %w", err)
	}

	return exists, nil
}

// ListByClient embeds the lawyer card on each row, newest saved first.
func (sr *savedLawyerRepository) ListByClient(ctx context.Context, clientProfileID uuid.UUID) ([]*entity.SavedLawyer, error) {
	query := `
		SELECT sl.id, sl.client_profile_id, sl.lawyer_profile_id, sl.created_at,
		       lp.id, lp.user_id, lp.name, lp.photo, lp.location, lp.experience, lp.bio,
		       lp.consult_fee, lp.bar_id, lp.is_verified, lp.registration_pending,
		       lp.specialization_id, lp.primary_court_id, lp.created_at, lp.updated_at
		FROM saved_lawyers sl
		JOIN lawyer_profiles lp ON lp.id = sl.lawyer_profile_id
		WHERE sl.client_profile_id = $1
		ORDER BY sl.created_at DESC
	`

	rows, err := sr.db.Query(ctx, query, clientProfileID)
	if err != nil {
		sr.log.Error("Failed to list saved lawyers",
			zap.Error(err),
			zap.String("client_profile_id", clientProfileID.String()),
		)
		return nil, fmt.Errorf("list saved lawyers for client %s: %w", clientProfileID.String(), err)
	}
	defer rows.Close()

	var saved []*entity.SavedLawyer
	for rows.Next() {
		var row entity.SavedLawyer
		var lawyer entity.LawyerProfile
		err := rows.Scan(
			&row.ID,
			&row.ClientProfileID,
			&row.LawyerProfileID,
			&row.CreatedAt,
			&lawyer.ID,
			&lawyer.UserID,
			&lawyer.Name,
			&lawyer.Photo,
			&lawyer.Location,
			&lawyer.Experience,
			&lawyer.Bio,
			&lawyer.ConsultFee,
			&lawyer.BarID,
			&lawyer.IsVerified,
			&lawyer.RegistrationPending,
			&lawyer.SpecializationID,
			&lawyer.PrimaryCourtID,
			&lawyer.CreatedAt,
			&lawyer.UpdatedAt,
		)
		if err != nil {
			sr.log.Error("Failed to scan saved lawyer row", zap.Error(err))
			return nil, fmt.Errorf("scan saved lawyer row: %w", err)
		}
		row.Lawyer = &lawyer
		saved = append(saved, &row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate saved lawyer rows: %w", err)
	}

	return saved, nil
}
