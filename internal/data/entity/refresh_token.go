package entity

import (
	"time"

	"github.com/google/uuid"
)

// RefreshToken stores only the salted hash of the raw token, so possession
// of the database does not leak usable refresh tokens. Rotated on every
// refresh; bulk-deleted on logout.
type RefreshToken struct {
	BaseSimple
	UserID      uuid.UUID `db:"user_id"`
	HashedToken string    `db:"hashed_token"`
	ExpiresAt   time.Time `db:"expires_at"`
}
