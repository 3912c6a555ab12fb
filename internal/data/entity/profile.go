package entity

import "github.com/google/uuid"

// ClientProfile extends User for the CLIENT role. Created lazily the first
// time the role becomes active; RegistrationPending clears on first update.
type ClientProfile struct {
	Base
	UserID              uuid.UUID `db:"user_id"`
	Name                *string   `db:"name"`
	Photo               *string   `db:"photo"`
	RegistrationPending bool      `db:"registration_pending"`
}

// LawyerProfile extends User for the LAWYER role.
type LawyerProfile struct {
	Base
	UserID              uuid.UUID  `db:"user_id"`
	Name                *string    `db:"name"`
	Photo               *string    `db:"photo"`
	Location            *string    `db:"location"`
	Experience          *int       `db:"experience"`
	Bio                 *string    `db:"bio"`
	ConsultFee          *float64   `db:"consult_fee"`
	BarID               *string    `db:"bar_id"`
	IsVerified          bool       `db:"is_verified"`
	RegistrationPending bool       `db:"registration_pending"`
	SpecializationID    *uuid.UUID `db:"specialization_id"`
	PrimaryCourtID      *uuid.UUID `db:"primary_court_id"`

	// Loaded relations, nil unless the repository hydrates them
	Specialization *PracticeArea
	PrimaryCourt   *PracticeCourt
	Education      *Education
	PracticeAreas  []PracticeArea
	PracticeCourts []PracticeCourt
	Services       []Service
}

type Education struct {
	BaseSimple
	LawyerProfileID uuid.UUID `db:"lawyer_profile_id"`
	Degree          string    `db:"degree"`
	Institution     string    `db:"institution"`
	Year            int       `db:"year"`
}
