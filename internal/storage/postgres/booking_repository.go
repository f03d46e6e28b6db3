package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/UJJWALLAAD67/sportsbook/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepository struct {
	pool *pgxpool.Pool
}

func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{pool: pool}
}

// WithTx runs fn inside a serializable transaction. Serialization failures
// surface as ErrSlotConflict: the only writes under this isolation level are
// booking admissions, so a serialization abort means a concurrent booking
// won. Statement cancellation from the transaction deadline maps to
// ErrBookingTimeout.
func (r *BookingRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	err := withTx(ctx, r.pool, pgx.TxOptions{IsoLevel: pgx.Serializable}, fn)
	if err != nil {
		if isSerializationFailure(err) {
			return domain.ErrSlotConflict
		}
		if isQueryCanceled(err) {
			return domain.ErrBookingTimeout
		}
	}
	return err
}

func (r *BookingRepository) GetCourtForBooking(ctx context.Context, courtID int64) (domain.Court, domain.Venue, error) {
	const query = `
SELECT c.id, c.venue_id, c.name, c.sport, c.price_per_hour, c.currency, c.open_time, c.close_time,
       v.id, v.owner_id, v.name, v.slug, v.approved
FROM courts c
JOIN venues v ON v.id = c.venue_id
WHERE c.id = $1
FOR UPDATE OF c`

	var c domain.Court
	var v domain.Venue
	err := r.queryRow(ctx, query, courtID).Scan(
		&c.ID, &c.VenueID, &c.Name, &c.Sport, &c.PricePerHour, &c.Currency, &c.OpenTime, &c.CloseTime,
		&v.ID, &v.OwnerID, &v.Name, &v.Slug, &v.Approved,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Court{}, domain.Venue{}, domain.ErrCourtNotFound
		}
		return domain.Court{}, domain.Venue{}, fmt.Errorf("get court: %w", err)
	}
	return c, v, nil
}

func (r *BookingRepository) FindOverlappingBooking(ctx context.Context, courtID int64, start, end time.Time) (*domain.Booking, error) {
	// Half-open overlap test: back-to-back slots never collide.
	const query = `
SELECT id, court_id, user_id, start_time, end_time, status
FROM bookings
WHERE court_id = $1
  AND status IN ('PENDING', 'CONFIRMED')
  AND start_time < $3
  AND end_time > $2
ORDER BY start_time
LIMIT 1`

	var b domain.Booking
	err := r.queryRow(ctx, query, courtID, start, end).
		Scan(&b.ID, &b.CourtID, &b.UserID, &b.StartTime, &b.EndTime, &b.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find overlapping booking: %w", err)
	}
	return &b, nil
}

func (r *BookingRepository) FindBookingByIdempotencyKey(ctx context.Context, key string) (*domain.Booking, *domain.Payment, error) {
	const query = `
SELECT b.id, b.court_id, b.user_id, b.start_time, b.end_time, b.status, COALESCE(b.notes, ''), b.idempotency_key, b.created_at,
       p.id, p.booking_id, p.amount, p.currency, p.status, COALESCE(p.provider_ref, ''), p.created_at
FROM bookings b
LEFT JOIN payments p ON p.booking_id = b.id
WHERE b.idempotency_key = $1`

	var b domain.Booking
	var p domain.Payment
	var paymentID *int64
	var paymentBookingID, paymentAmount *int64
	var paymentCurrency, paymentStatus, paymentRef *string
	var paymentCreatedAt *time.Time

	err := r.queryRow(ctx, query, key).Scan(
		&b.ID, &b.CourtID, &b.UserID, &b.StartTime, &b.EndTime, &b.Status, &b.Notes, &b.IdempotencyKey, &b.CreatedAt,
		&paymentID, &paymentBookingID, &paymentAmount, &paymentCurrency, &paymentStatus, &paymentRef, &paymentCreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("find booking by idempotency key: %w", err)
	}
	if paymentID == nil {
		return &b, nil, nil
	}
	p.ID = *paymentID
	p.BookingID = *paymentBookingID
	p.Amount = *paymentAmount
	p.Currency = *paymentCurrency
	p.Status = domain.PaymentStatus(*paymentStatus)
	p.ProviderRef = *paymentRef
	p.CreatedAt = *paymentCreatedAt
	return &b, &p, nil
}

func (r *BookingRepository) CreateBooking(ctx context.Context, booking *domain.Booking) error {
	const stmt = `
INSERT INTO bookings (court_id, user_id, start_time, end_time, status, notes, idempotency_key, created_at)
VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8)
RETURNING id`

	err := r.queryRow(ctx, stmt,
		booking.CourtID,
		booking.UserID,
		booking.StartTime,
		booking.EndTime,
		booking.Status,
		booking.Notes,
		booking.IdempotencyKey,
		booking.CreatedAt,
	).Scan(&booking.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrIdempotencyKeyTaken
		}
		if isForeignKeyViolation(err) {
			return domain.ErrCourtNotFound
		}
		return fmt.Errorf("create booking: %w", err)
	}
	return nil
}

func (r *BookingRepository) CreatePayment(ctx context.Context, payment *domain.Payment) error {
	const stmt = `
INSERT INTO payments (booking_id, amount, currency, status, created_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING id`

	err := r.queryRow(ctx, stmt,
		payment.BookingID,
		payment.Amount,
		payment.Currency,
		payment.Status,
		payment.CreatedAt,
	).Scan(&payment.ID)
	if err != nil {
		return fmt.Errorf("create payment: %w", err)
	}
	return nil
}

func (r *BookingRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}
