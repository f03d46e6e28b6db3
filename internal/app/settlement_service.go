package app

import (
	"context"

	"github.com/UJJWALLAAD67/sportsbook/internal/domain"
)

type SettlementRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetPaymentByProviderRef(ctx context.Context, providerRef string) (*domain.Payment, error)
	GetPaymentByBookingID(ctx context.Context, bookingID int64) (*domain.Payment, error)
	SetPaymentProviderRef(ctx context.Context, paymentID int64, providerRef string) error
	UpdatePaymentStatus(ctx context.Context, paymentID int64, status domain.PaymentStatus) error
	UpdateBookingStatus(ctx context.Context, bookingID int64, status domain.BookingStatus) error
}

// Gateway event types the settlement path reacts to. Anything else is
// acknowledged and ignored.
const (
	EventPaymentSucceeded = "payment_intent.succeeded"
	EventPaymentFailed    = "payment_intent.payment_failed"
	EventPaymentCanceled  = "payment_intent.canceled"
	EventChargeRefunded   = "charge.refunded"
)

type SettlementService struct {
	repo   SettlementRepository
	events EventPublisher
}

func NewSettlementService(repo SettlementRepository, events EventPublisher) *SettlementService {
	return &SettlementService{repo: repo, events: events}
}

type SettlementEvent struct {
	Type        string
	ProviderRef string
}

// ApplyEvent moves a payment and its booking through the settlement state
// machine: succeeded confirms the booking, failed/canceled cancels it, a
// refund marks the payment refunded. Replays of an already-applied event
// are no-ops, so gateway retries are safe.
func (s *SettlementService) ApplyEvent(ctx context.Context, ev SettlementEvent) error {
	var target domain.PaymentStatus
	var bookingStatus domain.BookingStatus
	var routingKey string

	switch ev.Type {
	case EventPaymentSucceeded:
		target = domain.PaymentStatusSucceeded
		bookingStatus = domain.BookingStatusConfirmed
		routingKey = "booking.confirmed"
	case EventPaymentFailed, EventPaymentCanceled:
		target = domain.PaymentStatusFailed
		bookingStatus = domain.BookingStatusCancelled
		routingKey = "booking.cancelled"
	case EventChargeRefunded:
		target = domain.PaymentStatusRefunded
	default:
		return nil
	}
	if ev.ProviderRef == "" {
		return domain.ErrPaymentNotFound
	}

	var bookingID int64
	applied := false

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		payment, err := s.repo.GetPaymentByProviderRef(txCtx, ev.ProviderRef)
		if err != nil {
			return err
		}
		if payment == nil {
			return domain.ErrPaymentNotFound
		}
		if payment.Status == target {
			return nil
		}

		if err := s.repo.UpdatePaymentStatus(txCtx, payment.ID, target); err != nil {
			return err
		}
		if bookingStatus != "" {
			if err := s.repo.UpdateBookingStatus(txCtx, payment.BookingID, bookingStatus); err != nil {
				return err
			}
		}
		bookingID = payment.BookingID
		applied = true
		return nil
	})
	if err != nil {
		return err
	}

	if applied && routingKey != "" {
		_ = s.events.PublishJSON(ctx, routingKey, map[string]any{
			"booking_id":   bookingID,
			"provider_ref": ev.ProviderRef,
		})
	}
	return nil
}

// RegisterProviderRef attaches the gateway's payment-intent id to a
// booking's payment so later webhook events can be correlated. Fails once
// the payment has already settled.
func (s *SettlementService) RegisterProviderRef(ctx context.Context, bookingID int64, providerRef string) error {
	if bookingID <= 0 {
		return domain.ErrInvalidID
	}
	if providerRef == "" {
		return domain.ErrPaymentNotFound
	}
	return s.repo.WithTx(ctx, func(txCtx context.Context) error {
		payment, err := s.repo.GetPaymentByBookingID(txCtx, bookingID)
		if err != nil {
			return err
		}
		if payment == nil {
			return domain.ErrPaymentNotFound
		}
		if payment.Status == domain.PaymentStatusSucceeded {
			return domain.ErrPaymentAlreadySettled
		}
		return s.repo.SetPaymentProviderRef(txCtx, payment.ID, providerRef)
	})
}
