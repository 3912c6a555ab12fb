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

// ConsultationCounts aggregates a lawyer's inbox by response status.
type ConsultationCounts struct {
	Total    int64
	Pending  int64
	Accepted int64
	Rejected int64
}

type ConsultationRepository interface {
	Create(ctx context.Context, request *entity.ConsultationRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.ConsultationRequest, error)
	ListByClient(ctx context.Context, clientProfileID uuid.UUID) ([]*entity.ConsultationRequest, error)
	ListByLawyer(ctx context.Context, lawyerProfileID uuid.UUID) ([]*entity.ConsultationRequest, error)
	CountsByLawyer(ctx context.Context, lawyerProfileID uuid.UUID) (*ConsultationCounts, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.RequestStatus) error
}

type consultationRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewConsultationRepository(db database.Querier, log *zap.Logger) ConsultationRepository {
	return &consultationRepository{
		db:  db,
		log: log,
	}
}

const consultationColumns = `
	id, client_profile_id, lawyer_profile_id, message, status, response_status,
	response, response_reason, response_timestamp, created_at, updated_at
`

func scanConsultation(row pgx.Row) (*entity.ConsultationRequest, error) {
	var request entity.ConsultationRequest
	err := row.Scan(
		&request.ID,
		&request.ClientProfileID,
		&request.LawyerProfileID,
		&request.Message,
		&request.Status,
		&request.ResponseStatus,
		&request.Response,
		&request.ResponseReason,
		&request.ResponseTimestamp,
		&request.CreatedAt,
		&request.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (cr *consultationRepository) Create(ctx context.Context, request *entity.ConsultationRequest) error {
	query := `
		INSERT INTO consultation_requests (id, client_profile_id, lawyer_profile_id, message,
		                                   status, response_status, response, response_reason,
		                                   response_timestamp, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := cr.db.Exec(ctx, query,
		request.ID,
		request.ClientProfileID,
		request.LawyerProfileID,
		request.Message,
		request.Status,
		request.ResponseStatus,
		request.Response,
		request.ResponseReason,
		request.ResponseTimestamp,
		request.CreatedAt,
		request.UpdatedAt,
	)

	if err != nil {
		cr.log.Error("Failed to create consultation request",
			zap.Error(err),
			zap.String("client_profile_id", request.ClientProfileID.String()),
			zap.String("lawyer_profile_id", request.LawyerProfileID.String()),
		)
		return fmt.Errorf("create consultation request: %w", err)
	}

	return nil
}

func (cr *consultationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.ConsultationRequest, error) {
	query := `SELECT ` + consultationColumns + ` FROM consultation_requests WHERE id = $1`

	request, err := scanConsultation(cr.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		cr.log.Error("Failed to find consultation request",
			zap.Error(err),
			zap.String("request_id", id.String()),
		)
		return nil, fmt.Errorf("find consultation request %s: %w", id.String(), err)
	}

	return request, nil
}

func (cr *consultationRepository) ListByClient(ctx context.Context, clientProfileID uuid.UUID) ([]*entity.ConsultationRequest, error) {
	query := `
		SELECT cr.id, cr.client_profile_id, cr.lawyer_profile_id, cr.message, cr.status,
		       cr.response_status, cr.response, cr.response_reason, cr.response_timestamp,
		       cr.created_at, cr.updated_at,
		       lp.id, lp.user_id, lp.name, lp.photo, lp.location, lp.experience, lp.bio,
		       lp.consult_fee, lp.bar_id, lp.is_verified, lp.registration_pending,
		       lp.specialization_id, lp.primary_court_id, lp.created_at, lp.updated_at
		FROM consultation_requests cr
		JOIN lawyer_profiles lp ON lp.id = cr.lawyer_profile_id
		WHERE cr.client_profile_id = $1
		ORDER BY cr.created_at DESC
	`

	rows, err := cr.db.Query(ctx, query, clientProfileID)
	if err != nil {
		cr.log.Error("Failed to list consultation requests for client",
			zap.Error(err),
			zap.String("client_profile_id", clientProfileID.String()),
		)
		return nil, fmt.Errorf("list consultation requests for client %s: %w", clientProfileID.String(), err)
	}
	defer rows.Close()

	var requests []*entity.ConsultationRequest
	for rows.Next() {
		var request entity.ConsultationRequest
		var lawyer entity.LawyerProfile
		err := rows.Scan(
			&request.ID,
			&request.ClientProfileID,
			&request.LawyerProfileID,
			&request.Message,
			&request.Status,
			&request.ResponseStatus,
			&request.Response,
			&request.ResponseReason,
			&request.ResponseTimestamp,
			&request.CreatedAt,
			&request.UpdatedAt,
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
			cr.log.Error("Failed to scan consultation request row", zap.Error(err))
			return nil, fmt.Errorf("scan consultation request row: %w", err)
		}
		request.Lawyer = &lawyer
		requests = append(requests, &request)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate consultation request rows: %w", err)
	}

	return requests, nil
}

func (cr *consultationRepository) ListByLawyer(ctx context.Context, lawyerProfileID uuid.UUID) ([]*entity.ConsultationRequest, error) {
	query := `
		SELECT cr.id, cr.client_profile_id, cr.lawyer_profile_id, cr.message, cr.status,
		       cr.response_status, cr.response, cr.response_reason, cr.response_timestamp,
		       cr.created_at, cr.updated_at,
		       cp.id, cp.user_id, cp.name, cp.photo, cp.registration_pending,
		       cp.created_at, cp.updated_at
		FROM consultation_requests cr
		JOIN client_profiles cp ON cp.id = cr.client_profile_id
		WHERE cr.lawyer_profile_id = $1
		ORDER BY cr.created_at DESC
	`

	rows, err := cr.db.Query(ctx, query, lawyerProfileID)
	if err != nil {
		cr.log.Error("Failed to list consultation requests for lawyer",
			zap.Error(err),
			zap.String("lawyer_profile_id", lawyerProfileID.String()),
		)
		return nil, fmt.Errorf("list consultation requests for lawyer %s: %w", lawyerProfileID.String(), err)
	}
	defer rows.Close()

	var requests []*entity.ConsultationRequest
	for rows.Next() {
		var request entity.ConsultationRequest
		var client entity.ClientProfile
		err := rows.Scan(
			&request.ID,
			&request.ClientProfileID,
			&request.LawyerProfileID,
			&request.Message,
			&request.Status,
			&request.ResponseStatus,
			&request.Response,
			&request.ResponseReason,
			&request.ResponseTimestamp,
			&request.CreatedAt,
			&request.UpdatedAt,
			&client.ID,
			&client.UserID,
			&client.Name,
			&client.Photo,
			&client.RegistrationPending,
			&client.CreatedAt,
			&client.UpdatedAt,
		)
		if err != nil {
			cr.log.Error("Failed to scan consultation request row", zap.Error(err))
			return nil, fmt.Errorf("scan consultation request row: %w", err)
		}
		request.Client = &client
		requests = append(requests, &request)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate consultation request rows: %w", err)
	}

	return requests, nil
}

func (cr *consultationRepository) CountsByLawyer(ctx context.Context, lawyerProfileID uuid.UUID) (*ConsultationCounts, error) {
	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE response_status = 'PENDING'),
		       COUNT(*) FILTER (WHERE response_status = 'ACCEPTED'),
		       COUNT(*) FILTER (WHERE response_status = 'REJECTED')
		FROM consultation_requests
		WHERE lawyer_profile_id = $1
	`

	var counts ConsultationCounts
	err := cr.db.QueryRow(ctx, query, lawyerProfileID).Scan(
		&counts.Total,
		&counts.Pending,
		&counts.Accepted,
		&counts.Rejected,
	)
	if err != nil {
		cr.log.Error("Failed to count consultation requests",
			zap.Error(err),
			zap.String("lawyer_profile_id", lawyerProfileID.String()),
		)
		return nil, fmt.Errorf("count consultation requests for lawyer %s: %w", lawyerProfileID.String(), err)
	}

	return &counts, nil
}

func (cr *consultationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.RequestStatus) error {
	query := `UPDATE consultation_requests SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := cr.db.Exec(ctx, query, id, status)
	if err != nil {
		cr.log.Error("Failed to update consultation request status",
			zap.Error(err),
			zap.String("request_id", id.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update consultation request %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("consultation request %s not found", id.String())
	}

	return nil
}
