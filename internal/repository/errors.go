// Package repository defines error types that are reused across multiple
// repositories and the services built on them.  These sentinel values
// allow higher layers such as handlers to distinguish between different
// failure scenarios with errors.Is.  Every failed mutation leaves stored
// state unchanged.
package repository

import (
	"errors"
	"fmt"

	"github.com/iliyamo/table-reservation/internal/model"
)

var (
	// ErrUnknownRestaurant is returned when a referenced restaurant does
	// not exist.
	ErrUnknownRestaurant = errors.New("unknown restaurant")

	// ErrNotFound is returned when a reservation, menu item, place or user
	// cannot be found.
	ErrNotFound = errors.New("not found")

	// ErrInvalidTransition is returned when a reservation status change
	// does not follow the reservation state machine.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrCapacityExceeded is returned when a reservation asks for more
	// guests than the restaurant can seat.
	ErrCapacityExceeded = errors.New("capacity exceeded")

	// ErrValidation is returned when required fields are missing or
	// malformed.
	ErrValidation = errors.New("validation error")

	// ErrForbidden is returned when the caller attempts an operation
	// on a resource they do not own. Handlers should translate this
	// into an HTTP 403 response.
	ErrForbidden = errors.New("forbidden")

	// ErrConflict is returned when a delete or update cannot be
	// performed because of conflicting state, such as attempting to
	// delete a restaurant that still has reservations. Handlers should
	// translate this into an HTTP 409 response.
	ErrConflict = errors.New("conflict")

	// ErrEmailExists is returned when registering an email twice.
	ErrEmailExists = errors.New("email already exists")
)

// TransitionError identifies the current and requested status of a
// rejected status change.  It matches ErrInvalidTransition.
type TransitionError struct {
	From model.ReservationStatus
	To   model.ReservationStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("invalid status transition from %s to %s", e.From, e.To)
}

func (e *TransitionError) Is(target error) bool { return target == ErrInvalidTransition }

// ValidationError names the offending field.  It matches ErrValidation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// CapacityError reports the requested party size against the restaurant's
// seating capacity.  It matches ErrCapacityExceeded.
type CapacityError struct {
	Guests   int
	Capacity int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("capacity exceeded: %d guests requested, %d seats available", e.Guests, e.Capacity)
}

func (e *CapacityError) Is(target error) bool { return target == ErrCapacityExceeded }
