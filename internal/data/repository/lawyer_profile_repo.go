package repository

import (
	"context"
	"fmt"
	"strings"

	"advonex/internal/data/entity"
	"advonex/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// LawyerSearchFilter narrows the public lawyer listing. Taxonomy filters
// match by name, case-insensitively.
type LawyerSearchFilter struct {
	SearchTerm   string
	PracticeArea string
	Court        string
	Service      string
	MinFee       *float64
	MaxFee       *float64
	Limit        int
	Offset       int
}

type LawyerProfileRepository interface {
	Create(ctx context.Context, profile *entity.LawyerProfile) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.LawyerProfile, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.LawyerProfile, error)
	Update(ctx context.Context, profile *entity.LawyerProfile) error
	Search(ctx context.Context, filter LawyerSearchFilter) ([]*entity.LawyerProfile, error)
	CountSearch(ctx context.Context, filter LawyerSearchFilter) (int64, error)
	LoadRelations(ctx context.Context, profile *entity.LawyerProfile) error

	UpsertEducation(ctx context.Context, edu *entity.Education) error

	AddPracticeArea(ctx context.Context, lawyerProfileID, practiceAreaID uuid.UUID) error
	RemovePracticeArea(ctx context.Context, lawyerProfileID, practiceAreaID uuid.UUID) error
	AddPracticeCourt(ctx context.Context, lawyerProfileID, practiceCourtID uuid.UUID) error
	RemovePracticeCourt(ctx context.Context, lawyerProfileID, practiceCourtID uuid.UUID) error
	AddService(ctx context.Context, lawyerProfileID, serviceID uuid.UUID) error
	RemoveService(ctx context.Context, lawyerProfileID, serviceID uuid.UUID) error
}

type lawyerProfileRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewLawyerProfileRepository(db database.Querier, log *zap.Logger) LawyerProfileRepository {
	return &lawyerProfileRepository{
		db:  db,
		log: log,
	}
}

const lawyerProfileColumns = `
	id, user_id, name, photo, location, experience, bio, consult_fee, bar_id,
	is_verified, registration_pending, specialization_id, primary_court_id,
	created_at, updated_at
`

func scanLawyerProfile(row pgx.Row) (*entity.LawyerProfile, error) {
	var profile entity.LawyerProfile
	err := row.Scan(
		&profile.ID,
		&profile.UserID,
		&profile.Name,
		&profile.Photo,
		&profile.Location,
		&profile.Experience,
		&profile.Bio,
		&profile.ConsultFee,
		&profile.BarID,
		&profile.IsVerified,
		&profile.RegistrationPending,
		&profile.SpecializationID,
		&profile.PrimaryCourtID,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (lr *lawyerProfileRepository) Create(ctx context.Context, profile *entity.LawyerProfile) error {
	query := `
		INSERT INTO lawyer_profiles (id, user_id, name, photo, location, experience, bio,
		                             consult_fee, bar_id, is_verified, registration_pending,
		                             specialization_id, primary_court_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := lr.db.Exec(ctx, query,
		profile.ID,
		profile.UserID,
		profile.Name,
		profile.Photo,
		profile.Location,
		profile.Experience,
		profile.Bio,
		profile.ConsultFee,
		profile.BarID,
		profile.IsVerified,
		profile.RegistrationPending,
		profile.SpecializationID,
		profile.PrimaryCourtID,
		profile.CreatedAt,
		profile.UpdatedAt,
	)

	if err != nil {
		lr.log.Error("Failed to create lawyer profile",
			zap.Error(err),
			zap.String("user_id", profile.UserID.String()),
		)
		return fmt.Errorf("create lawyer profile for user %s: %w", profile.UserID.String(), err)
	}

	return nil
}

func (lr *lawyerProfileRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.LawyerProfile, error) {
	query := `SELECT ` + lawyerProfileColumns + ` FROM lawyer_profiles WHERE id = $1`

	profile, err := scanLawyerProfile(lr.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		lr.log.Error("Failed to find lawyer profile by ID",
			zap.Error(err),
			zap.String("profile_id", id.String()),
		)
		return nil, fmt.Errorf("find lawyer profile %s: %w", id.String(), err)
	}

	return profile, nil
}

func (lr *lawyerProfileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.LawyerProfile, error) {
	query := `SELECT ` + lawyerProfileColumns + ` FROM lawyer_profiles WHERE user_id = $1`

	profile, err := scanLawyerProfile(lr.db.QueryRow(ctx, query, userID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		lr.log.Error("Failed to find lawyer profile by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find lawyer profile for user %s: %w", userID.String(), err)
	}

	return profile, nil
}

func (lr *lawyerProfileRepository) Update(ctx context.Context, profile *entity.LawyerProfile) error {
	query := `
		UPDATE lawyer_profiles
		SET name = $2, photo = $3, location = $4, experience = $5, bio = $6,
		    consult_fee = $7, bar_id = $8, is_verified = $9, registration_pending = $10,
		    specialization_id = $11, primary_court_id = $12, updated_at = $13
		WHERE id = $1
	`

	result, err := lr.db.Exec(ctx, query,
		profile.ID,
		profile.Name,
		profile.Photo,
		profile.Location,
		profile.Experience,
		profile.Bio,
		profile.ConsultFee,
		profile.BarID,
		profile.IsVerified,
		profile.RegistrationPending,
		profile.SpecializationID,
		profile.PrimaryCourtID,
		profile.UpdatedAt,
	)

	if err != nil {
		lr.log.Error("Failed to update lawyer profile",
			zap.Error(err),
			zap.String("profile_id", profile.ID.String()),
		)
		return fmt.Errorf("update lawyer profile %s: %w", profile.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("lawyer profile %s not found", profile.ID.String())
	}

	return nil
}

// buildSearchWhere turns the filter into a WHERE clause with positional
// args. Profiles still mid-registration are excluded from public listings.
func buildSearchWhere(filter LawyerSearchFilter) (string, []any) {
	clauses := []string{"lp.registration_pending = FALSE"}
	var args []any

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.SearchTerm != "" {
		p := arg("%" + filter.SearchTerm + "%")
		clauses = append(clauses, fmt.Sprintf("(lp.name ILIKE %s OR lp.bio ILIKE %s)", p, p))
	}
	if filter.PracticeArea != "" {
		clauses = append(clauses, fmt.Sprintf(`EXISTS (
			SELECT 1 FROM lawyer_practice_areas la
			JOIN practice_areas pa ON pa.id = la.practice_area_id
			WHERE la.lawyer_profile_id = lp.id AND pa.name ILIKE %s
		)`, arg(filter.PracticeArea)))
	}
	if filter.Court != "" {
		clauses = append(clauses, fmt.Sprintf(`EXISTS (
			SELECT 1 FROM lawyer_practice_courts lc
			JOIN practice_courts pc ON pc.id = lc.practice_court_id
			WHERE lc.lawyer_profile_id = lp.id AND pc.name ILIKE %s
		)`, arg(filter.Court)))
	}
	if filter.Service != "" {
		clauses = append(clauses, fmt.Sprintf(`EXISTS (
			SELECT 1 FROM lawyer_services ls
			JOIN services s ON s.id = ls.service_id
			WHERE ls.lawyer_profile_id = lp.id AND s.name ILIKE %s
		)`, arg(filter.Service)))
	}
	if filter.MinFee != nil {
		clauses = append(clauses, fmt.Sprintf("lp.consult_fee >= %s", arg(*filter.MinFee)))
	}
	if filter.MaxFee != nil {
		clauses = append(clauses, fmt.Sprintf("lp.consult_fee <= %s", arg(*filter.MaxFee)))
	}

	return strings.Join(clauses, " AND "), args
}

func (lr *lawyerProfileRepository) Search(ctx context.Context, filter LawyerSearchFilter) ([]*entity.LawyerProfile, error) {
	where, args := buildSearchWhere(filter)
	query := fmt.Sprintf(`
		SELECT lp.id, lp.user_id, lp.name, lp.photo, lp.location, lp.experience, lp.bio,
		       lp.consult_fee, lp.bar_id, lp.is_verified, lp.registration_pending,
		       lp.specialization_id, lp.primary_court_id, lp.created_at, lp.updated_at
		FROM lawyer_profiles lp
		WHERE %s
		ORDER BY lp.created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := lr.db.Query(ctx, query, args...)
	if err != nil {
		lr.log.Error("Failed to search lawyer profiles", zap.Error(err))
		return nil, fmt.Errorf("search lawyer profiles: %w", err)
	}
	defer rows.Close()

	var profiles []*entity.LawyerProfile
	for rows.Next() {
		profile, err := scanLawyerProfile(rows)
		if err != nil {
			lr.log.Error("Failed to scan lawyer profile row", zap.Error(err))
			return nil, fmt.Errorf("scan lawyer profile row: %w", err)
		}
		profiles = append(profiles, profile)
	}

	if err := rows.Err(); err != nil {
		lr.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate lawyer profile rows: %w", err)
	}

	return profiles, nil
}

func (lr *lawyerProfileRepository) CountSearch(ctx context.Context, filter LawyerSearchFilter) (int64, error) {
	where, args := buildSearchWhere(filter)
	query := fmt.Sprintf(`SELECT COUNT(*) FROM lawyer_profiles lp WHERE %s`, where)

	var count int64
	err := lr.db.QueryRow(ctx, query, args...).Scan(&count)
	if err != nil {
		lr.log.Error("Failed to count lawyer profiles", zap.Error(err))
		return 0, fmt.Errorf("count lawyer profiles: %w", err)
	}

	return count, nil
}

// LoadRelations hydrates specialization, primary court, education and the
// taxonomy links onto an already-fetched profile.
func (lr *lawyerProfileRepository) LoadRelations(ctx context.Context, profile *entity.LawyerProfile) error {
	if profile.SpecializationID != nil {
		var area entity.PracticeArea
		err := lr.db.QueryRow(ctx,
			`SELECT id, name, description, created_at FROM practice_areas WHERE id = $1`,
			*profile.SpecializationID,
		).Scan(&area.ID, &area.Name, &area.Description, &area.CreatedAt)
		if err != nil && err != pgx.ErrNoRows {
			return fmt.Errorf("load specialization: %w", err)
		}
		if err == nil {
			profile.Specialization = &area
		}
	}

	if profile.PrimaryCourtID != nil {
		var court entity.PracticeCourt
		err := lr.db.QueryRow(ctx,
			`SELECT id, name, location, created_at FROM practice_courts WHERE id = $1`,
			*profile.PrimaryCourtID,
		).Scan(&court.ID, &court.Name, &court.Location, &court.CreatedAt)
		if err != nil && err != pgx.ErrNoRows {
			return fmt.Errorf("load primary court: %w", err)
		}
		if err == nil {
			profile.PrimaryCourt = &court
		}
	}

	var edu entity.Education
	err := lr.db.QueryRow(ctx, `
		SELECT id, lawyer_profile_id, degree, institution, year, created_at
		FROM educations
		WHERE lawyer_profile_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`, profile.ID).Scan(&edu.ID, &edu.LawyerProfileID, &edu.Degree, &edu.Institution, &edu.Year, &edu.CreatedAt)
	if err != nil && err != pgx.ErrNoRows {
		return fmt.Errorf("load education: %w", err)
	}
	if err == nil {
		profile.Education = &edu
	}

	areas, err := lr.listPracticeAreas(ctx, profile.ID)
	if err != nil {
		return err
	}
	profile.PracticeAreas = areas

	courts, err := lr.listPracticeCourts(ctx, profile.ID)
	if err != nil {
		return err
	}
	profile.PracticeCourts = courts

	services, err := lr.listServices(ctx, profile.ID)
	if err != nil {
		return err
	}
	profile.Services = services

	return nil
}

func (lr *lawyerProfileRepository) listPracticeAreas(ctx context.Context, profileID uuid.UUID) ([]entity.PracticeArea, error) {
	rows, err := lr.db.Query(ctx, `
		SELECT pa.id, pa.name, pa.description, pa.created_at
		FROM lawyer_practice_areas la
		JOIN practice_areas pa ON pa.id = la.practice_area_id
		WHERE la.lawyer_profile_id = $1
		ORDER BY pa.name ASC
	`, profileID)
	if err != nil {
		return nil, fmt.Errorf("list lawyer practice areas: %w", err)
	}
	defer rows.Close()

	var areas []entity.PracticeArea
	for rows.Next() {
		var area entity.PracticeArea
		if err := rows.Scan(&area.ID, &area.Name, &area.Description, &area.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan practice area row: %w", err)
		}
		areas = append(areas, area)
	}
	return areas, rows.Err()
}

func (lr *lawyerProfileRepository) listPracticeCourts(ctx context.Context, profileID uuid.UUID) ([]entity.PracticeCourt, error) {
	rows, err := lr.db.Query(ctx, `
		SELECT pc.id, pc.name, pc.location, pc.created_at
		FROM lawyer_practice_courts lc
		JOIN practice_courts pc ON pc.id = lc.practice_court_id
		WHERE lc.lawyer_profile_id = $1
		ORDER BY pc.name ASC
	`, profileID)
	if err != nil {
		return nil, fmt.Errorf("list lawyer practice courts: %w", err)
	}
	defer rows.Close()

	var courts []entity.PracticeCourt
	for rows.Next() {
		var court entity.PracticeCourt
		if err := rows.Scan(&court.ID, &court.Name, &court.Location, &court.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan practice court row: %w", err)
		}
		courts = append(courts, court)
	}
	return courts, rows.Err()
}

func (lr *lawyerProfileRepository) listServices(ctx context.Context, profileID uuid.UUID) ([]entity.Service, error) {
	rows, err := lr.db.Query(ctx, `
		SELECT s.id, s.name, s.description, s.created_at
		FROM lawyer_services ls
		JOIN services s ON s.id = ls.service_id
		WHERE ls.lawyer_profile_id = $1
		ORDER BY s.name ASC
	`, profileID)
	if err != nil {
		return nil, fmt.Errorf("list lawyer services: %w", err)
	}
	defer rows.Close()

	var services []entity.Service
	for rows.Next() {
		var service entity.Service
		if err := rows.Scan(&service.ID, &service.Name, &service.Description, &service.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan service row: %w", err)
		}
		services = append(services, service)
	}
	return services, rows.Err()
}

// UpsertEducation keeps a single education row per lawyer profile.
func (lr *lawyerProfileRepository) UpsertEducation(ctx context.Context, edu *entity.Education) error {
	query := `
		INSERT INTO educations (id, lawyer_profile_id, degree, institution, year, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (lawyer_profile_id)
		DO UPDATE SET degree = EXCLUDED.degree, institution = EXCLUDED.institution, year = EXCLUDED.year
	`

	_, err := lr.db.Exec(ctx, query,
		edu.ID,
		edu.LawyerProfileID,
		edu.Degree,
		edu.Institution,
		edu.Year,
		edu.CreatedAt,
	)

	if err != nil {
		lr.log.Error("Failed to upsert education",
			zap.Error(err),
			zap.String("profile_id", edu.LawyerProfileID.String()),
		)
		return fmt.Errorf("upsert education for profile %s: %w", edu.LawyerProfileID.String(), err)
	}

	return nil
}

func (lr *lawyerProfileRepository) addLink(ctx context.Context, table, column string, profileID, linkedID uuid.UUID) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (lawyer_profile_id, %s)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, table, column)

	_, err := lr.db.Exec(ctx, query, profileID, linkedID)
	if err != nil {
		lr.log.Error("Failed to add lawyer link",
			zap.Error(err),
			zap.String("table", table),
			zap.String("profile_id", profileID.String()),
		)
		return fmt.Errorf("add %s link: %w", table, err)
	}

	return nil
}

func (lr *lawyerProfileRepository) removeLink(ctx context.Context, table, column string, profileID, linkedID uuid.UUID) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE lawyer_profile_id = $1 AND %s = $2`, table, column)

	result, err := lr.db.Exec(ctx, query, profileID, linkedID)
	if err != nil {
		lr.log.Error("Failed to remove lawyer link",
			zap.Error(err),
			zap.String("table", table),
			zap.String("profile_id", profileID.String()),
		)
		return fmt.Errorf("remove %s link: %w", table, err)
	}

	if result.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return nil
}

func (lr *lawyerProfileRepository) AddPracticeArea(ctx context.Context, lawyerProfileID, practiceAreaID uuid.UUID) error {
	return lr.addLink(ctx, "lawyer_practice_areas", "practice_area_id", lawyerProfileID, practiceAreaID)
}

func (lr *lawyerProfileRepository) RemovePracticeArea(ctx context.Context, lawyerProfileID, practiceAreaID uuid.UUID) error {
	return lr.removeLink(ctx, "lawyer_practice_areas", "practice_area_id", lawyerProfileID, practiceAreaID)
}

func (lr *lawyerProfileRepository) AddPracticeCourt(ctx context.Context, lawyerProfileID, practiceCourtID uuid.UUID) error {
	return lr.addLink(ctx, "lawyer_practice_courts", "practice_court_id", lawyerProfileID, practiceCourtID)
}

func (lr *lawyerProfileRepository) RemovePracticeCourt(ctx context.Context, lawyerProfileID, practiceCourtID uuid.UUID) error {
	return lr.removeLink(ctx, "lawyer_practice_courts", "practice_court_id", lawyerProfileID, practiceCourtID)
}

func (lr *lawyerProfileRepository) AddService(ctx context.Context, lawyerProfileID, serviceID uuid.UUID) error {
	return lr.addLink(ctx, "lawyer_services", "service_id", lawyerProfileID, serviceID)
}

func (lr *lawyerProfileRepository) RemoveService(ctx context.Context, lawyerProfileID, serviceID uuid.UUID) error {
	return lr.removeLink(ctx, "lawyer_services", "service_id", lawyerProfileID, serviceID)
}
