package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrTicketNotFound  = errors.New("ticket not found")
	ErrBookingNotFound = errors.New("booking not found")
)

var (
	ErrAlreadyBooked = errors.New("booking already exists")
	ErrEmailTaken    = errors.New("an account with this email already exists")
)

var (
	ErrCredentialsRequired = errors.New("email and password are required")
	ErrNoAccount           = errors.New("no account found with this email address")
	ErrWrongPassword       = errors.New("incorrect password")
)

var ErrValidation = errors.New("validation error")

// FieldError is a validation failure tied to a single input field. It
// unwraps to ErrValidation so callers can match the whole class.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *FieldError) Unwrap() error { return ErrValidation }

func NewFieldError(field, message string) *FieldError {
	return &FieldError{Field: field, Message: message}
}
