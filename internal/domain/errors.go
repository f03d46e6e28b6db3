package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidID             = errors.New("invalid id")
	ErrInvalidDate           = errors.New("invalid date")
	ErrInvalidSlot           = errors.New("invalid slot start hour")
	ErrInvalidDuration       = errors.New("invalid duration")
	ErrCourtNotFound         = errors.New("court not found")
	ErrVenueNotFound         = errors.New("venue not found")
	ErrBookingNotFound       = errors.New("booking not found")
	ErrPaymentNotFound       = errors.New("payment not found")
	ErrPaymentAlreadySettled = errors.New("payment already succeeded")
	ErrVenueNotApproved      = errors.New("venue not approved for bookings")
	ErrOutsideOperatingHours = errors.New("booking time outside court operating hours")
	ErrPriceMismatch         = errors.New("expected price does not match court price")
	ErrSlotConflict          = errors.New("time slot already booked")
	ErrIdempotencyKeyTaken   = errors.New("idempotency key already used")
	ErrVenueSlugTaken        = errors.New("venue with this name already exists")
	ErrVenueNameRequired     = errors.New("venue name required")
	ErrCourtsRequired        = errors.New("at least one court required")
	ErrInvalidHours          = errors.New("invalid operating hours")
	ErrInvalidPrice          = errors.New("invalid price per hour")
	ErrBookingTimeout        = errors.New("booking transaction timed out")
)

// SlotConflictError reports the interval that blocked a booking attempt.
// It matches ErrSlotConflict under errors.Is so callers can branch on the
// sentinel without losing the offending interval.
type SlotConflictError struct {
	Start time.Time
	End   time.Time
}

func (e *SlotConflictError) Error() string {
	return fmt.Sprintf("time slot conflict: already booked from %s to %s",
		e.Start.Format(time.RFC3339), e.End.Format(time.RFC3339))
}

func (e *SlotConflictError) Is(target error) bool {
	return target == ErrSlotConflict
}
