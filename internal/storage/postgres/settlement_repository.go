package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/UJJWALLAAD67/sportsbook/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SettlementRepository struct {
	pool *pgxpool.Pool
}

func NewSettlementRepository(pool *pgxpool.Pool) *SettlementRepository {
	return &SettlementRepository{pool: pool}
}

func (r *SettlementRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, pgx.TxOptions{}, fn)
}

func (r *SettlementRepository) GetPaymentByProviderRef(ctx context.Context, providerRef string) (*domain.Payment, error) {
	const query = `
SELECT id, booking_id, amount, currency, status, COALESCE(provider_ref, ''), created_at
FROM payments
WHERE provider_ref = $1
FOR UPDATE`

	return r.getPayment(ctx, query, providerRef)
}

func (r *SettlementRepository) GetPaymentByBookingID(ctx context.Context, bookingID int64) (*domain.Payment, error) {
	const query = `
SELECT id, booking_id, amount, currency, status, COALESCE(provider_ref, ''), created_at
FROM payments
WHERE booking_id = $1
FOR UPDATE`

	return r.getPayment(ctx, query, bookingID)
}

func (r *SettlementRepository) SetPaymentProviderRef(ctx context.Context, paymentID int64, providerRef string) error {
	const stmt = `UPDATE payments SET provider_ref = $2 WHERE id = $1`
	tag, err := r.exec(ctx, stmt, paymentID, providerRef)
	if err != nil {
		return fmt.Errorf("set provider ref: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPaymentNotFound
	}
	return nil
}

func (r *SettlementRepository) UpdatePaymentStatus(ctx context.Context, paymentID int64, status domain.PaymentStatus) error {
	const stmt = `UPDATE payments SET status = $2 WHERE id = $1`
	tag, err := r.exec(ctx, stmt, paymentID, status)
	if err != nil {
		return fmt.Errorf("update payment status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPaymentNotFound
	}
	return nil
}

func (r *SettlementRepository) UpdateBookingStatus(ctx context.Context, bookingID int64, status domain.BookingStatus) error {
	const stmt = `UPDATE bookings SET status = $2 WHERE id = $1`
	tag, err := r.exec(ctx, stmt, bookingID, status)
	if err != nil {
		return fmt.Errorf("update booking status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBookingNotFound
	}
	return nil
}

func (r *SettlementRepository) getPayment(ctx context.Context, query string, arg any) (*domain.Payment, error) {
	var p domain.Payment
	var status string
	err := r.queryRow(ctx, query, arg).
		Scan(&p.ID, &p.BookingID, &p.Amount, &p.Currency, &status, &p.ProviderRef, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}
	p.Status = domain.PaymentStatus(status)
	return &p, nil
}

func (r *SettlementRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *SettlementRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}
