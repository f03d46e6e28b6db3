package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/UJJWALLAAD67/sportsbook/internal/app"
	"github.com/UJJWALLAAD67/sportsbook/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AvailabilityRepository struct {
	pool *pgxpool.Pool
}

func NewAvailabilityRepository(pool *pgxpool.Pool) *AvailabilityRepository {
	return &AvailabilityRepository{pool: pool}
}

func (r *AvailabilityRepository) ListActiveByCourtAndDay(ctx context.Context, courtID int64, dayStart, dayEnd time.Time) ([]domain.Booking, error) {
	const query = `
SELECT id, court_id, user_id, start_time, end_time, status
FROM bookings
WHERE court_id = $1
  AND status IN ('PENDING', 'CONFIRMED')
  AND start_time < $3
  AND end_time > $2
ORDER BY start_time`

	rows, err := r.pool.Query(ctx, query, courtID, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("list bookings by day: %w", err)
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		var b domain.Booking
		if err := rows.Scan(&b.ID, &b.CourtID, &b.UserID, &b.StartTime, &b.EndTime, &b.Status); err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate bookings: %w", rows.Err())
	}
	return bookings, nil
}

const bookingDetailColumns = `
b.id, b.court_id, b.user_id, b.start_time, b.end_time, b.status, COALESCE(b.notes, ''), b.idempotency_key, b.created_at,
c.id, c.venue_id, c.name, c.sport, c.price_per_hour, c.currency, c.open_time, c.close_time,
v.id, v.owner_id, v.name, v.slug, COALESCE(v.address, ''), COALESCE(v.city, ''), COALESCE(v.state, ''), v.approved,
p.id, p.amount, p.currency, p.status, COALESCE(p.provider_ref, ''), p.created_at`

func (r *AvailabilityRepository) GetBookingDetail(ctx context.Context, bookingID, userID int64) (*app.BookingDetail, error) {
	query := `
SELECT ` + bookingDetailColumns + `
FROM bookings b
JOIN courts c ON c.id = b.court_id
JOIN venues v ON v.id = c.venue_id
LEFT JOIN payments p ON p.booking_id = b.id
WHERE b.id = $1 AND b.user_id = $2`

	detail, err := scanBookingDetail(r.pool.QueryRow(ctx, query, bookingID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get booking detail: %w", err)
	}
	return detail, nil
}

func (r *AvailabilityRepository) ListByUser(ctx context.Context, userID int64, status domain.BookingStatus, limit, offset int) ([]app.BookingDetail, int, error) {
	countQuery := `SELECT COUNT(*) FROM bookings WHERE user_id = $1`
	listQuery := `
SELECT ` + bookingDetailColumns + `
FROM bookings b
JOIN courts c ON c.id = b.court_id
JOIN venues v ON v.id = c.venue_id
LEFT JOIN payments p ON p.booking_id = b.id
WHERE b.user_id = $1`

	countArgs := []any{userID}
	listArgs := []any{userID}
	if status != "" {
		countQuery += ` AND status = $2`
		listQuery += ` AND b.status = $2`
		countArgs = append(countArgs, status)
		listArgs = append(listArgs, status)
	}
	listQuery += fmt.Sprintf(` ORDER BY b.created_at DESC LIMIT %d OFFSET %d`, limit, offset)

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count user bookings: %w", err)
	}

	rows, err := r.pool.Query(ctx, listQuery, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("list user bookings: %w", err)
	}
	defer rows.Close()

	var details []app.BookingDetail
	for rows.Next() {
		detail, err := scanBookingDetail(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan user booking: %w", err)
		}
		details = append(details, *detail)
	}
	if rows.Err() != nil {
		return nil, 0, fmt.Errorf("iterate user bookings: %w", rows.Err())
	}
	return details, total, nil
}

func scanBookingDetail(row pgx.Row) (*app.BookingDetail, error) {
	var d app.BookingDetail
	var paymentID, paymentAmount *int64
	var paymentCurrency, paymentStatus, paymentRef *string
	var paymentCreatedAt *time.Time

	err := row.Scan(
		&d.Booking.ID, &d.Booking.CourtID, &d.Booking.UserID, &d.Booking.StartTime, &d.Booking.EndTime,
		&d.Booking.Status, &d.Booking.Notes, &d.Booking.IdempotencyKey, &d.Booking.CreatedAt,
		&d.Court.ID, &d.Court.VenueID, &d.Court.Name, &d.Court.Sport, &d.Court.PricePerHour,
		&d.Court.Currency, &d.Court.OpenTime, &d.Court.CloseTime,
		&d.Venue.ID, &d.Venue.OwnerID, &d.Venue.Name, &d.Venue.Slug, &d.Venue.Address, &d.Venue.City,
		&d.Venue.State, &d.Venue.Approved,
		&paymentID, &paymentAmount, &paymentCurrency, &paymentStatus, &paymentRef, &paymentCreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if paymentID != nil {
		d.Payment = &domain.Payment{
			ID:          *paymentID,
			BookingID:   d.Booking.ID,
			Amount:      *paymentAmount,
			Currency:    *paymentCurrency,
			Status:      domain.PaymentStatus(*paymentStatus),
			ProviderRef: *paymentRef,
			CreatedAt:   *paymentCreatedAt,
		}
	}
	return &d, nil
}
