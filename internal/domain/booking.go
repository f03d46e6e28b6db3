package domain

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
	BookingStatusCompleted BookingStatus = "COMPLETED"
)

// Booking is a claim on a court for the half-open interval
// [StartTime, EndTime). For a given court, no two bookings with status
// PENDING or CONFIRMED may overlap.
type Booking struct {
	ID             int64
	CourtID        int64
	UserID         int64
	StartTime      time.Time
	EndTime        time.Time
	Status         BookingStatus
	Notes          string
	IdempotencyKey string
	CreatedAt      time.Time
}
