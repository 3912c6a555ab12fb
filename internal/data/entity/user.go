package entity

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleClient Role = "CLIENT"
	RoleLawyer Role = "LAWYER"
	RoleAdmin  Role = "ADMIN"
)

type AccountStatus string

const (
	AccountStatusActive    AccountStatus = "ACTIVE"
	AccountStatusSuspended AccountStatus = "SUSPENDED"
	AccountStatusDeleted   AccountStatus = "DELETED"
)

// User is the identity anchor. Phone and email are both optional; a user
// may exist with neither profile while registration is incomplete.
type User struct {
	Base
	PhoneNumber   *string       `db:"phone_number"`
	Email         *string       `db:"email"`
	AccountStatus AccountStatus `db:"account_status"`
	LastLogin     *time.Time    `db:"last_login"`
}

// UserRole joins a user to a role kind. At most one row per (user, role)
// pair; application logic keeps at most one row active per user.
type UserRole struct {
	BaseSimple
	UserID   uuid.UUID `db:"user_id"`
	Role     Role      `db:"role"`
	IsActive bool      `db:"is_active"`
}
