package entity

import (
	"time"

	"github.com/google/uuid"
)

// SavedLawyer shortlists a lawyer for a client. Unique per
// (client profile, lawyer profile) pair.
type SavedLawyer struct {
	BaseSimple
	ClientProfileID uuid.UUID `db:"client_profile_id"`
	LawyerProfileID uuid.UUID `db:"lawyer_profile_id"`

	Lawyer *LawyerProfile
}

type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "PENDING"
	RequestStatusViewed    RequestStatus = "VIEWED"
	RequestStatusResponded RequestStatus = "RESPONDED"
	RequestStatusClosed    RequestStatus = "CLOSED"
)

type ResponseStatus string

const (
	ResponseStatusPending  ResponseStatus = "PENDING"
	ResponseStatusAccepted ResponseStatus = "ACCEPTED"
	ResponseStatusRejected ResponseStatus = "REJECTED"
)

// ConsultationRequest is a client-to-lawyer interaction record. Status is
// the client-facing lifecycle; ResponseStatus is the lawyer's decision.
type ConsultationRequest struct {
	Base
	ClientProfileID   uuid.UUID      `db:"client_profile_id"`
	LawyerProfileID   uuid.UUID      `db:"lawyer_profile_id"`
	Message           string         `db:"message"`
	Status            RequestStatus  `db:"status"`
	ResponseStatus    ResponseStatus `db:"response_status"`
	Response          *string        `db:"response"`
	ResponseReason    *string        `db:"response_reason"`
	ResponseTimestamp *time.Time     `db:"response_timestamp"`

	Lawyer *LawyerProfile
	Client *ClientProfile
}
