package repository

import (
	"context"
	"fmt"

	"advonex/internal/data/entity"
	"advonex/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// ==================== Practice areas ====================

type PracticeAreaRepository interface {
	FindAll(ctx context.Context) ([]*entity.PracticeArea, error)
	FindByName(ctx context.Context, name string) (*entity.PracticeArea, error)
	Create(ctx context.Context, area *entity.PracticeArea) error
}

type practiceAreaRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewPracticeAreaRepository(db database.Querier, log *zap.Logger) PracticeAreaRepository {
	return &practiceAreaRepository{
		db:  db,
		log: log,
	}
}

func (pr *practiceAreaRepository) FindAll(ctx context.Context) ([]*entity.PracticeArea, error) {
	query := `SELECT id, name, description, created_at FROM practice_areas ORDER BY name ASC`

	rows, err := pr.db.Query(ctx, query)
	if err != nil {
		pr.log.Error("Failed to list practice areas", zap.Error(err))
		return nil, fmt.Errorf("list practice areas: %w", err)
	}
	defer rows.Close()

	var areas []*entity.PracticeArea
	for rows.Next() {
		var area entity.PracticeArea
		if err := rows.Scan(&area.ID, &area.Name, &area.Description, &area.CreatedAt); err != nil {
			pr.log.Error("Failed to scan practice area row", zap.Error(err))
			return nil, fmt.Errorf("scan practice area row: %w", err)
		}
		areas = append(areas, &area)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate practice area rows: %w", err)
	}

	return areas, nil
}

// FindByName matches case-insensitively so user-typed names resolve.
// Exact equality, not a pattern match: % and _ in a name are literal.
func (pr *practiceAreaRepository) FindByName(ctx context.Context, name string) (*entity.PracticeArea, error) {
	query := `SELECT id, name, description, created_at FROM practice_areas WHERE LOWER(name) = LOWER($1)`

	var area entity.PracticeArea
	err := pr.db.QueryRow(ctx, query, name).Scan(&area.ID, &area.Name, &area.Description, &area.CreatedAt)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		pr.log.Error("Failed to find practice area by name",
			zap.Error(err),
			zap.String("name", name),
		)
		return nil, fmt.Errorf("find practice area %s: %w", name, err)
	}

	return &area, nil
}

func (pr *practiceAreaRepository) Create(ctx context.Context, area *entity.PracticeArea) error {
	query := `
		INSERT INTO practice_areas (id, name, description, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := pr.db.Exec(ctx, query, area.ID, area.Name, area.Description, area.CreatedAt)
	if err != nil {
		pr.log.Error("Failed to create practice area",
			zap.Error(err),
			zap.String("name", area.Name),
		)
		return fmt.Errorf("create practice area %s: %w", area.Name, err)
	}

	return nil
}

// ==================== Practice courts ====================

type PracticeCourtRepository interface {
	FindAll(ctx context.Context) ([]*entity.PracticeCourt, error)
	FindByName(ctx context.Context, name string) (*entity.PracticeCourt, error)
	Create(ctx context.Context, court *entity.PracticeCourt) error
}

type practiceCourtRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewPracticeCourtRepository(db database.Querier, log *zap.Logger) PracticeCourtRepository {
	return &practiceCourtRepository{
		db:  db,
		log: log,
	}
}

func (pr *practiceCourtRepository) FindAll(ctx context.Context) ([]*entity.PracticeCourt, error) {
	query := `SELECT id, name, location, created_at FROM practice_courts ORDER BY name ASC`

	rows, err := pr.db.Query(ctx, query)
	if err != nil {
		pr.log.Error("Failed to list practice courts", zap.Error(err))
		return nil, fmt.Errorf("list practice courts: %w", err)
	}
	defer rows.Close()

	var courts []*entity.PracticeCourt
	for rows.Next() {
		var court entity.PracticeCourt
		if err := rows.Scan(&court.ID, &court.Name, &court.Location, &court.CreatedAt); err != nil {
			pr.log.Error("Failed to scan practice court row", zap.Error(err))
			return nil, fmt.Errorf("scan practice court row: %w", err)
		}
		courts = append(courts, &court)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate practice court rows: %w", err)
	}

	return courts, nil
}

func (pr *practiceCourtRepository) FindByName(ctx context.Context, name string) (*entity.PracticeCourt, error) {
	query := `SELECT id, name, location, created_at FROM practice_courts WHERE LOWER(name) = LOWER($1)`

	var court entity.PracticeCourt
	err := pr.db.QueryRow(ctx, query, name).Scan(&court.ID, &court.Name, &court.Location, &court.CreatedAt)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		pr.log.Error("Failed to find practice court by name",
			zap.Error(err),
			zap.String("name", name),
		)
		return nil, fmt.Errorf("find practice court %s: %w", name, err)
	}

	return &court, nil
}

func (pr *practiceCourtRepository) Create(ctx context.Context, court *entity.PracticeCourt) error {
	query := `
		INSERT INTO practice_courts (id, name, location, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := pr.db.Exec(ctx, query, court.ID, court.Name, court.Location, court.CreatedAt)
	if err != nil {
		pr.log.Error("Failed to create practice court",
			zap.Error(err),
			zap.String("name", court.Name),
		)
		return fmt.Errorf("create practice court %s: %w", court.Name, err)
	}

	return nil
}

// ==================== Services ====================

type ServiceRepository interface {
	FindAll(ctx context.Context) ([]*entity.Service, error)
	FindByName(ctx context.Context, name string) (*entity.Service, error)
	Create(ctx context.Context, service *entity.Service) error
}

type serviceRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewServiceRepository(db database.Querier, log *zap.Logger) ServiceRepository {
	return &serviceRepository{
		db:  db,
		log: log,
	}
}

func (sr *serviceRepository) FindAll(ctx context.Context) ([]*entity.Service, error) {
	query := `SELECT id, name, description, created_at FROM services ORDER BY name ASC`

	rows, err := sr.db.Query(ctx, query)
	if err != nil {
		sr.log.Error("Failed to list services", zap.Error(err))
		return nil, fmt.Errorf("list services: %w", err)
	}
	defer rows.Close()

	var services []*entity.Service
	for rows.Next() {
		var service entity.Service
		if err := rows.Scan(&service.ID, &service.Name, &service.Description, &service.CreatedAt); err != nil {
			sr.log.Error("Failed to scan service row", zap.Error(err))
			return nil, fmt.Errorf("scan service row: %w", err)
		}
		services = append(services, &service)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate service rows: %w", err)
	}

	return services, nil
}

func (sr *serviceRepository) FindByName(ctx context.Context, name string) (*entity.Service, error) {
	query := `SELECT id, name, description, created_at FROM services WHERE LOWER(name) = LOWER($1)`

	var service entity.Service
	err := sr.db.QueryRow(ctx, query, name).Scan(&service.ID, &service.Name, &service.Description, &service.CreatedAt)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		sr.log.Error("Failed to find service by name",
			zap.Error(err),
			zap.String("name", name),
		)
		return nil, fmt.Errorf("find service %s: %w", name, err)
	}

	return &service, nil
}

func (sr *serviceRepository) Create(ctx context.Context, service *entity.Service) error {
	query := `
		INSERT INTO services (id, name, description, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := sr.db.Exec(ctx, query, service.ID, service.Name, service.Description, service.CreatedAt)
	if err != nil {
		sr.log.Error("Failed to create service",
			zap.Error(err),
			zap.String("name", service.Name),
		)
		return fmt.Errorf("create service %s: %w", service.Name, err)
	}

	return nil
}
