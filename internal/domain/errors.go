package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrRecordNotFound    = errors.New("record not found")
	ErrValidation        = errors.New("validation failed")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidStatus     = errors.New("invalid status transition")
	ErrInvalidID         = errors.New("invalid id")
	ErrDuplicate         = errors.New("record already exists")
)

func validationError(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrValidation, err)
}

func ValidationErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// ValidateID rejects identifiers that are not UUIDs before they reach a uuid column.
func ValidateID(id string) error {
	if err := uuid.Validate(id); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return nil
}
