package usecase

import (
	"errors"

	"movie-review/pkg/utils"
)

var (
	ErrUnauthenticated    = errors.New("authentication required")
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrPartialWrite       = errors.New("vote recorded but counters not updated")

	ErrReviewNotFound     = errors.New("review not found")
	ErrInvalidVote        = errors.New("vote must be LIKE or DISLIKE")
	ErrForbidden          = errors.New("forbidden")
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrNotFound           = errors.New("not found")
	ErrCatalogUnavailable = errors.New("catalog unavailable")
)

// ValidationError carries per-field messages and matches ErrValidation.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return ErrValidation.Error() + ": " + utils.FormatValidationErrors(e.Fields)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func invalid(field, message string) error {
	return &ValidationError{Fields: map[string]string{field: message}}
}
