package domain

import "time"

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusSucceeded PaymentStatus = "SUCCEEDED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
	PaymentStatusRefunded  PaymentStatus = "REFUNDED"
)

// Payment is created atomically with its booking and settled later by the
// payment gateway. Amount is in the smallest currency unit. ProviderRef
// holds the gateway's payment-intent id once known.
type Payment struct {
	ID          int64
	BookingID   int64
	Amount      int64
	Currency    string
	Status      PaymentStatus
	ProviderRef string
	CreatedAt   time.Time
}
