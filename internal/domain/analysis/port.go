package analysis

import (
	"context"
	"errors"
)

// ErrValidation marks a malformed request (missing content, bad content type).
var ErrValidation = errors.New("validation failed")

// ValidationError carries the message shown to the caller. It matches
// ErrValidation under errors.Is.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// Invalid returns a ValidationError with msg.
func Invalid(msg string) error { return &ValidationError{Msg: msg} }

// RecentLimit caps the number of records returned by Repository.Recent.
const RecentLimit = 50

// Repository port untuk persistence
type Repository interface {
	Save(ctx context.Context, r *Record) error
	Get(ctx context.Context, id ID) (*Record, error)
	// Recent returns up to RecentLimit records, newest first.
	Recent(ctx context.Context) ([]*Record, error)
}
