// Package apperror defines the error taxonomy services hand to handlers.
// Usecases wrap a sentinel with context (fmt.Errorf("...: %w", ErrConflict))
// and adaptors map it to a status code with errors.Is.
package apperror

import "errors"

var (
	ErrBadRequest      = errors.New("bad request")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrTooManyRequests = errors.New("too many requests")
	ErrInternal        = errors.New("internal error")
)
