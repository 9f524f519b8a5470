package usecase

import (
	"errors"
	"fmt"

	"transit-booking/pkg/utils"
)

// Sentinel errors untuk outcome yang expected. Handler memetakan pakai
// errors.Is, bukan substring matching.
var (
	ErrDepartureNotFound       = errors.New("departure not found")
	ErrDepartureNotBookable    = errors.New("departure is not open for booking")
	ErrInsufficientSeats       = errors.New("not enough seats available")
	ErrBookingNotFound         = errors.New("booking not found")
	ErrBookingAlreadyCancelled = errors.New("booking is already cancelled")
	ErrInvalidPaymentStatus    = errors.New("invalid payment status transition")
	ErrTicketNotAvailable      = errors.New("ticket is not available until the booking is paid")
	ErrStationNotFound         = errors.New("station not found")
	ErrEmailTaken              = errors.New("email is already registered")
	ErrInvalidCredentials      = errors.New("invalid email or password")
	ErrUserNotFound            = errors.New("user not found")
)

// ValidationError membawa detail per-field dari validator.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", utils.FormatValidationErrors(e.Fields))
}

func newValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

func fieldError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}
