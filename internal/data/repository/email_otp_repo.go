package repository

import (
	"context"
	"fmt"
	"time"

	"advonex/internal/data/entity"
	"advonex/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type EmailOtpRepository interface {
	Upsert(ctx context.Context, otp *entity.EmailOtp) error
	FindByEmail(ctx context.Context, email string) (*entity.EmailOtp, error)
	MarkUsed(ctx context.Context, id uuid.UUID) error
	DeleteExpiredOrUsed(ctx context.Context, now time.Time) (int64, error)
}

type emailOtpRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewEmailOtpRepository(db database.Querier, log *zap.Logger) EmailOtpRepository {
	return &emailOtpRepository{
		db:  db,
		log: log,
	}
}

// Upsert replaces any prior code for the email, one row per address.
func (er *emailOtpRepository) Upsert(ctx context.Context, otp *entity.EmailOtp) error {
	query := `
		INSERT INTO email_otps (id, email, otp, is_used, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (email)
		DO UPDATE SET otp = EXCLUDED.otp, is_used = FALSE, expires_at = EXCLUDED.expires_at,
		              created_at = EXCLUDED.created_at
	`

	_, err := er.db.Exec(ctx, query,
		otp.ID,
		otp.Email,
		otp.Otp,
		otp.IsUsed,
		otp.ExpiresAt,
		otp.CreatedAt,
	)

	if err != nil {
		er.log.Error("Failed to upsert email OTP",
			zap.Error(err),
			zap.String("email", otp.Email),
		)
		return fmt.Errorf("upsert email OTP for %s: %w", otp.Email, err)
	}

	return nil
}

func (er *emailOtpRepository) FindByEmail(ctx context.Context, email string) (*entity.EmailOtp, error) {
	query := `
		SELECT id, email, otp, is_used, expires_at, created_at
		FROM email_otps
		WHERE email = $1
	`

	var otp entity.EmailOtp
	err := er.db.QueryRow(ctx, query, email).Scan(
		&otp.ID,
		&otp.Email,
		&otp.Otp,
		&otp.IsUsed,
		&otp.ExpiresAt,
		&otp.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		er.log.Error("Failed to find email OTP",
			zap.Error(err),
			zap.String("email", email),
		)
		return nil, fmt.Errorf("find email OTP for %s: %w", email, err)
	}

	return &otp, nil
}

func (er *emailOtpRepository) MarkUsed(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE email_otps SET is_used = TRUE WHERE id = $1`

	result, err := er.db.Exec(ctx, query, id)
	if err != nil {
		er.log.Error("Failed to mark email OTP used",
			zap.Error(err),
			zap.String("otp_id", id.String()),
		)
		return fmt.Errorf("mark email OTP %s used: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("email OTP %s not found", id.String())
	}

	return nil
}

func (er *emailOtpRepository) DeleteExpiredOrUsed(ctx context.Context, now time.Time) (int64, error) {
	query := `DELETE FROM email_otps WHERE expires_at <= $1 OR is_used = TRUE`

	result, err := er.db.Exec(ctx, query, now)
	if err != nil {
		er.log.Error("Failed to delete stale email OTPs", zap.Error(err))
		return 0, fmt.Errorf("delete stale email OTPs: %w", err)
	}

	return result.RowsAffected(), nil
}
