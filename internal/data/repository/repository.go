package repository

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"advonex/pkg/database"
)

// Repository bundles every data access interface behind one struct so the
// usecase layer takes a single dependency. All repos are built over a
// database.Querier, which both the pool and a pgx.Tx satisfy.
type Repository struct {
	User          UserRepository
	UserRole      UserRoleRepository
	ClientProfile ClientProfileRepository
	LawyerProfile LawyerProfileRepository
	PhoneOtp      PhoneOtpRepository
	EmailOtp      EmailOtpRepository
	RefreshToken  RefreshTokenRepository
	PracticeArea  PracticeAreaRepository
	PracticeCourt PracticeCourtRepository
	Service       ServiceRepository
	SavedLawyer   SavedLawyerRepository
	Consultation  ConsultationRepository

	db     database.PgxIface
	logger *zap.Logger
}

func NewRepository(db database.PgxIface, logger *zap.Logger) *Repository {
	r := bind(db, logger)
	r.db = db
	r.logger = logger
	return r
}

func bind(q database.Querier, logger *zap.Logger) *Repository {
	return &Repository{
		User:          NewUserRepository(q, logger),
		UserRole:      NewUserRoleRepository(q, logger),
		ClientProfile: NewClientProfileRepository(q, logger),
		LawyerProfile: NewLawyerProfileRepository(q, logger),
		PhoneOtp:      NewPhoneOtpRepository(q, logger),
		EmailOtp:      NewEmailOtpRepository(q, logger),
		RefreshToken:  NewRefreshTokenRepository(q, logger),
		PracticeArea:  NewPracticeAreaRepository(q, logger),
		PracticeCourt: NewPracticeCourtRepository(q, logger),
		Service:       NewServiceRepository(q, logger),
		SavedLawyer:   NewSavedLawyerRepository(q, logger),
		Consultation:  NewConsultationRepository(q, logger),
	}
}

// InTx runs fn against a copy of the repository bound to a single
// transaction. The transaction commits when fn returns nil and rolls back
// otherwise. Repositories without a pool (test fakes) run fn directly.
func (r *Repository) InTx(ctx context.Context, fn func(*Repository) error) error {
	if r.db == nil {
		return fn(r)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.logger.Error("failed to begin transaction", zap.Error(err))
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(bind(tx, r.logger)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		r.logger.Error("failed to commit transaction", zap.Error(err))
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
