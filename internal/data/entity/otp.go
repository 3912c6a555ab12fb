package entity

import "time"

// PhoneOtp is a short-lived login credential for a phone number. The
// intended role is recorded at request time and applied on verification.
type PhoneOtp struct {
	BaseSimple
	PhoneNumber string    `db:"phone_number"`
	Otp         string    `db:"otp"`
	Role        Role      `db:"role"`
	ExpiresAt   time.Time `db:"expires_at"`
}

// EmailOtp is the email-channel variant: one row per email (upserted) with
// a consumption flag instead of delete-on-use.
type EmailOtp struct {
	BaseSimple
	Email     string    `db:"email"`
	Otp       string    `db:"otp"`
	IsUsed    bool      `db:"is_used"`
	ExpiresAt time.Time `db:"expires_at"`
}
