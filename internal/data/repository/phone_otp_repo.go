package repository

import (
	"context"
	"fmt"
	"time"

	"advonex/internal/data/entity"
	"advonex/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type PhoneOtpRepository interface {
	Create(ctx context.Context, otp *entity.PhoneOtp) error
	FindValid(ctx context.Context, phoneNumber, code string, now time.Time) (*entity.PhoneOtp, error)
	DeleteByPhone(ctx context.Context, phoneNumber string) error
	DeleteExpiredForPhone(ctx context.Context, phoneNumber string, now time.Time) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type phoneOtpRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewPhoneOtpRepository(db database.Querier, log *zap.Logger) PhoneOtpRepository {
	return &phoneOtpRepository{
		db:  db,
		log: log,
	}
}

func (pr *phoneOtpRepository) Create(ctx context.Context, otp *entity.PhoneOtp) error {
	query := `
		INSERT INTO phone_otps (id, phone_number, otp, role, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := pr.db.Exec(ctx, query,
		otp.ID,
		otp.PhoneNumber,
		otp.Otp,
		otp.Role,
		otp.ExpiresAt,
		otp.CreatedAt,
	)

	if err != nil {
		pr.log.Error("Failed to create phone OTP",
			zap.Error(err),
			zap.String("phone_number", otp.PhoneNumber),
		)
		return fmt.Errorf("create phone OTP for %s: %w", otp.PhoneNumber, err)
	}

	return nil
}

func (pr *phoneOtpRepository) FindValid(ctx context.Context, phoneNumber, code string, now time.Time) (*entity.PhoneOtp, error) {
	query := `
		SELECT id, phone_number, otp, role, expires_at, created_at
		FROM phone_otps
		WHERE phone_number = $1 AND otp = $2 AND expires_at > $3
	`

	var otp entity.PhoneOtp
	err := pr.db.QueryRow(ctx, query, phoneNumber, code, now).Scan(
		&otp.ID,
		&otp.PhoneNumber,
		&otp.Otp,
		&otp.Role,
		&otp.ExpiresAt,
		&otp.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		pr.log.Error("Failed to find valid phone OTP",
			zap.Error(err),
			zap.String("phone_number", phoneNumber),
		)
		return nil, fmt.Errorf("find valid phone OTP for %s: %w", phoneNumber, err)
	}

	return &otp, nil
}

// DeleteByPhone keeps at most one live OTP per phone number.
func (pr *phoneOtpRepository) DeleteByPhone(ctx context.Context, phoneNumber string) error {
	query := `DELETE FROM phone_otps WHERE phone_number = $1`

	_, err := pr.db.Exec(ctx, query, phoneNumber)
	if err != nil {
		pr.log.Error("Failed to delete phone OTPs",
			zap.Error(err),
			zap.String("phone_number", phoneNumber),
		)
		return fmt.Errorf("delete phone OTPs for %s: %w", phoneNumber, err)
	}

	return nil
}

func (pr *phoneOtpRepository) DeleteExpiredForPhone(ctx context.Context, phoneNumber string, now time.Time) error {
	query := `DELETE FROM phone_otps WHERE phone_number = $1 AND expires_at <= $2`

	_, err := pr.db.Exec(ctx, query, phoneNumber, now)
	if err != nil {
		pr.log.Error("Failed to delete expired phone OTPs",
			zap.Error(err),
			zap.String("phone_number", phoneNumber),
		)
		return fmt.Errorf("delete expired phone OTPs for %s: %w", phoneNumber, err)
	}

	return nil
}

func (pr *phoneOtpRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	query := `DELETE FROM phone_otps WHERE expires_at <= $1`

	result, err := pr.db.Exec(ctx, query, now)
	if err != nil {
		pr.log.Error("Failed to delete expired phone OTPs", zap.Error(err))
		return 0, fmt.Errorf("delete expired phone OTPs: %w", err)
	}

	return result.RowsAffected(), nil
}
