package app

import (
	"context"
	"errors"
	"time"

	"github.com/UJJWALLAAD67/sportsbook/internal/clock"
	"github.com/UJJWALLAAD67/sportsbook/internal/domain"
)

type BookingRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	FindBookingByIdempotencyKey(ctx context.Context, key string) (*domain.Booking, *domain.Payment, error)
	GetCourtForBooking(ctx context.Context, courtID int64) (domain.Court, domain.Venue, error)
	FindOverlappingBooking(ctx context.Context, courtID int64, start, end time.Time) (*domain.Booking, error)
	CreateBooking(ctx context.Context, booking *domain.Booking) error
	CreatePayment(ctx context.Context, payment *domain.Payment) error
}

// EventPublisher emits booking lifecycle events. Publishing is
// fire-and-forget; failures never fail the request.
type EventPublisher interface {
	PublishJSON(ctx context.Context, routingKey string, payload any) error
}

type BookingService struct {
	repo      BookingRepository
	clock     clock.Clock
	events    EventPublisher
	txTimeout time.Duration
}

const defaultTxTimeout = 10 * time.Second

func NewBookingService(repo BookingRepository, clk clock.Clock, events EventPublisher, opts ...BookingServiceOption) *BookingService {
	svc := &BookingService{
		repo:      repo,
		clock:     clk,
		events:    events,
		txTimeout: defaultTxTimeout,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

type BookingServiceOption func(*BookingService)

// WithTxTimeout overrides the default bound on the booking transaction.
func WithTxTimeout(d time.Duration) BookingServiceOption {
	return func(s *BookingService) {
		if d > 0 {
			s.txTimeout = d
		}
	}
}

type CreateBookingInput struct {
	CourtID        int64
	VenueID        int64
	UserID         int64
	Date           string // ISO date, e.g. 2024-03-15
	SlotStartHour  int
	DurationHours  int
	ExpectedPrice  int64 // minor units; zero means not supplied
	Notes          string
	IdempotencyKey string
}

// interval resolves the requested half-open [start, end) window in UTC.
func (in CreateBookingInput) interval() (time.Time, time.Time, error) {
	if in.CourtID <= 0 || in.VenueID <= 0 || in.UserID <= 0 {
		return time.Time{}, time.Time{}, domain.ErrInvalidID
	}
	day, err := time.Parse("2006-01-02", in.Date)
	if err != nil {
		return time.Time{}, time.Time{}, domain.ErrInvalidDate
	}
	if in.SlotStartHour < 0 || in.SlotStartHour >= 24 {
		return time.Time{}, time.Time{}, domain.ErrInvalidSlot
	}
	if in.DurationHours <= 0 || in.SlotStartHour+in.DurationHours > 24 {
		return time.Time{}, time.Time{}, domain.ErrInvalidDuration
	}
	start := time.Date(day.Year(), day.Month(), day.Day(), in.SlotStartHour, 0, 0, 0, time.UTC)
	return start, start.Add(time.Duration(in.DurationHours) * time.Hour), nil
}

type BookingResult struct {
	Booking       domain.Booking
	Payment       domain.Payment
	AlreadyExists bool
}

// CreateBooking admits at most one booking per overlapping interval on a
// court. Conflict detection, eligibility checks and the booking+payment
// insert all run inside one serializable transaction; concurrent losers
// surface ErrSlotConflict and are not retried here. Retries with the same
// idempotency key are safe and return the original booking.
func (s *BookingService) CreateBooking(ctx context.Context, in CreateBookingInput) (BookingResult, error) {
	start, end, err := in.interval()
	if err != nil {
		return BookingResult{}, err
	}

	if in.IdempotencyKey != "" {
		booking, payment, err := s.repo.FindBookingByIdempotencyKey(ctx, in.IdempotencyKey)
		if err != nil {
			return BookingResult{}, err
		}
		if booking != nil {
			res := BookingResult{Booking: *booking, AlreadyExists: true}
			if payment != nil {
				res.Payment = *payment
			}
			return res, nil
		}
	}

	now := s.clock.Now()
	key := in.IdempotencyKey
	if key == "" {
		key = newIdempotencyKey(in.UserID, now)
	}

	var result BookingResult

	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	err = s.repo.WithTx(txCtx, func(txCtx context.Context) error {
		court, venue, err := s.repo.GetCourtForBooking(txCtx, in.CourtID)
		if err != nil {
			return err
		}
		if court.VenueID != in.VenueID {
			return domain.ErrCourtNotFound
		}

		conflict, err := s.repo.FindOverlappingBooking(txCtx, in.CourtID, start, end)
		if err != nil {
			return err
		}
		if conflict != nil {
			return &domain.SlotConflictError{Start: conflict.StartTime, End: conflict.EndTime}
		}

		if !venue.Approved {
			return domain.ErrVenueNotApproved
		}
		if in.SlotStartHour < court.OpenTime || in.SlotStartHour+in.DurationHours > court.CloseTime {
			return domain.ErrOutsideOperatingHours
		}

		amount := court.PricePerHour * int64(in.DurationHours)
		if in.ExpectedPrice != 0 && in.ExpectedPrice != amount {
			return domain.ErrPriceMismatch
		}

		booking := domain.Booking{
			CourtID:        in.CourtID,
			UserID:         in.UserID,
			StartTime:      start,
			EndTime:        end,
			Status:         domain.BookingStatusPending,
			Notes:          in.Notes,
			IdempotencyKey: key,
			CreatedAt:      now,
		}

		if err := s.repo.CreateBooking(txCtx, &booking); err != nil {
			return err
		}

		payment := domain.Payment{
			BookingID: booking.ID,
			Amount:    amount,
			Currency:  court.Currency,
			Status:    domain.PaymentStatusPending,
			CreatedAt: now,
		}
		if err := s.repo.CreatePayment(txCtx, &payment); err != nil {
			return err
		}

		result = BookingResult{Booking: booking, Payment: payment}
		return nil
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return BookingResult{}, domain.ErrBookingTimeout
		}
		// A concurrent request with the same key can commit between the
		// fast-path lookup and the insert. The unique index aborts this
		// transaction, so the re-read must happen outside it; under
		// serializable isolation the same race can also surface as a
		// serialization failure.
		if errors.Is(err, domain.ErrIdempotencyKeyTaken) ||
			(in.IdempotencyKey != "" && errors.Is(err, domain.ErrSlotConflict)) {
			existing, payment, lookupErr := s.repo.FindBookingByIdempotencyKey(ctx, key)
			if lookupErr == nil && existing != nil {
				res := BookingResult{Booking: *existing, AlreadyExists: true}
				if payment != nil {
					res.Payment = *payment
				}
				return res, nil
			}
		}
		return BookingResult{}, err
	}

	if !result.AlreadyExists {
		_ = s.events.PublishJSON(ctx, "booking.created", map[string]any{
			"booking_id": result.Booking.ID,
			"court_id":   result.Booking.CourtID,
			"user_id":    result.Booking.UserID,
			"start":      result.Booking.StartTime.Unix(),
			"end":        result.Booking.EndTime.Unix(),
			"amount":     result.Payment.Amount,
		})
	}
	return result, nil
}
