package core

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidMonth       = errors.New("invalid month")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrEmptyID            = errors.New("empty expense id")
	ErrEmptyPaymentMethod = errors.New("empty payment method")
	ErrDescriptionTooLong = errors.New("description too long (max 200 characters)")

	// ErrInvalidInput marks user text that could not be parsed.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound is returned when an update or delete matches no row.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateID is returned when creating an expense whose id already exists.
	ErrDuplicateID = errors.New("duplicate expense id")
)

// InputError reports a value typed by the user that failed to parse.
type InputError struct {
	Field string
	Value string
	Err   error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// Is makes every InputError match ErrInvalidInput.
func (e *InputError) Is(target error) bool {
	return target == ErrInvalidInput
}
