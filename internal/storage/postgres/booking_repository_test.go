package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/UJJWALLAAD67/sportsbook/internal/domain"
	"github.com/UJJWALLAAD67/sportsbook/internal/testutil"
)

func TestBookingRepository(t *testing.T) {
	pool := testutil.NewTestPool(t)
	repo := NewBookingRepository(pool)
	testutil.ApplyMigrations(t, context.Background(), pool)

	day := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)

	t.Run("GetCourtForBooking returns court with venue", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)
		venueID, courtID := testutil.InsertVenueAndCourt(t, ctx, pool, true, 10, 22, 120000)

		err := repo.WithTx(ctx, func(txCtx context.Context) error {
			court, venue, err := repo.GetCourtForBooking(txCtx, courtID)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if court.ID != courtID || court.VenueID != venueID {
				t.Fatalf("unexpected court %+v", court)
			}
			if !venue.Approved {
				t.Fatal("expected approved venue")
			}

			if _, _, err := repo.GetCourtForBooking(txCtx, courtID+999); !errors.Is(err, domain.ErrCourtNotFound) {
				t.Fatalf("expected ErrCourtNotFound, got %v", err)
			}
			return nil
		})
		if err != nil {
			t.Fatalf("tx failed: %v", err)
		}
	})

	t.Run("FindOverlappingBooking uses half-open intervals", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)
		_, courtID := testutil.InsertVenueAndCourt(t, ctx, pool, true, 10, 22, 120000)
		userID := testutil.InsertUser(t, ctx, pool, "player@example.com", "USER")

		testutil.InsertBooking(t, ctx, pool, courtID, userID, domain.Booking{
			StartTime:      day.Add(10 * time.Hour),
			EndTime:        day.Add(12 * time.Hour),
			Status:         domain.BookingStatusConfirmed,
			IdempotencyKey: "seed-1",
		})

		overlap, err := repo.FindOverlappingBooking(ctx, courtID, day.Add(11*time.Hour), day.Add(13*time.Hour))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if overlap == nil {
			t.Fatal("expected an overlap")
		}

		adjacent, err := repo.FindOverlappingBooking(ctx, courtID, day.Add(12*time.Hour), day.Add(13*time.Hour))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if adjacent != nil {
			t.Fatalf("back-to-back slot must not overlap, got %+v", adjacent)
		}
	})

	t.Run("cancelled bookings do not block the slot", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)
		_, courtID := testutil.InsertVenueAndCourt(t, ctx, pool, true, 10, 22, 120000)
		userID := testutil.InsertUser(t, ctx, pool, "player@example.com", "USER")

		testutil.InsertBooking(t, ctx, pool, courtID, userID, domain.Booking{
			StartTime:      day.Add(10 * time.Hour),
			EndTime:        day.Add(12 * time.Hour),
			Status:         domain.BookingStatusCancelled,
			IdempotencyKey: "seed-1",
		})

		overlap, err := repo.FindOverlappingBooking(ctx, courtID, day.Add(10*time.Hour), day.Add(12*time.Hour))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if overlap != nil {
			t.Fatalf("cancelled booking must not block, got %+v", overlap)
		}
	})

	t.Run("CreateBooking enforces the idempotency key", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)
		_, courtID := testutil.InsertVenueAndCourt(t, ctx, pool, true, 10, 22, 120000)
		userID := testutil.InsertUser(t, ctx, pool, "player@example.com", "USER")

		booking := domain.Booking{
			CourtID:        courtID,
			UserID:         userID,
			StartTime:      day.Add(10 * time.Hour),
			EndTime:        day.Add(11 * time.Hour),
			Status:         domain.BookingStatusPending,
			IdempotencyKey: "idem-1",
			CreatedAt:      time.Now().UTC(),
		}
		if err := repo.CreateBooking(ctx, &booking); err != nil {
			t.Fatalf("create booking: %v", err)
		}
		if booking.ID == 0 {
			t.Fatal("expected id assigned")
		}

		dup := booking
		dup.ID = 0
		dup.StartTime = day.Add(14 * time.Hour)
		dup.EndTime = day.Add(15 * time.Hour)
		if err := repo.CreateBooking(ctx, &dup); !errors.Is(err, domain.ErrIdempotencyKeyTaken) {
			t.Fatalf("expected ErrIdempotencyKeyTaken, got %v", err)
		}

		missing := booking
		missing.ID = 0
		missing.CourtID = courtID + 999
		missing.IdempotencyKey = "idem-2"
		if err := repo.CreateBooking(ctx, &missing); !errors.Is(err, domain.ErrCourtNotFound) {
			t.Fatalf("expected ErrCourtNotFound, got %v", err)
		}
	})

	t.Run("FindBookingByIdempotencyKey joins the payment", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)
		_, courtID := testutil.InsertVenueAndCourt(t, ctx, pool, true, 10, 22, 120000)
		userID := testutil.InsertUser(t, ctx, pool, "player@example.com", "USER")

		booking := domain.Booking{
			CourtID:        courtID,
			UserID:         userID,
			StartTime:      day.Add(10 * time.Hour),
			EndTime:        day.Add(12 * time.Hour),
			Status:         domain.BookingStatusPending,
			IdempotencyKey: "idem-1",
			CreatedAt:      time.Now().UTC(),
		}
		if err := repo.CreateBooking(ctx, &booking); err != nil {
			t.Fatalf("create booking: %v", err)
		}

		found, payment, err := repo.FindBookingByIdempotencyKey(ctx, "idem-1")
		if err != nil {
			t.Fatalf("find: %v", err)
		}
		if found == nil || found.ID != booking.ID {
			t.Fatalf("expected booking %d, got %+v", booking.ID, found)
		}
		if payment != nil {
			t.Fatalf("expected no payment yet, got %+v", payment)
		}

		pay := domain.Payment{
			BookingID: booking.ID,
			Amount:    240000,
			Currency:  "INR",
			Status:    domain.PaymentStatusPending,
			CreatedAt: time.Now().UTC(),
		}
		if err := repo.CreatePayment(ctx, &pay); err != nil {
			t.Fatalf("create payment: %v", err)
		}

		_, payment, err = repo.FindBookingByIdempotencyKey(ctx, "idem-1")
		if err != nil {
			t.Fatalf("find after payment: %v", err)
		}
		if payment == nil || payment.Amount != 240000 {
			t.Fatalf("expected joined payment, got %+v", payment)
		}

		missing, _, err := repo.FindBookingByIdempotencyKey(ctx, "no-such-key")
		if err != nil {
			t.Fatalf("find missing: %v", err)
		}
		if missing != nil {
			t.Fatalf("expected nil for unknown key, got %+v", missing)
		}
	})

	t.Run("WithTx rolls back on failure", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)
		_, courtID := testutil.InsertVenueAndCourt(t, ctx, pool, true, 10, 22, 120000)
		userID := testutil.InsertUser(t, ctx, pool, "player@example.com", "USER")

		sentinel := errors.New("abort")
		err := repo.WithTx(ctx, func(txCtx context.Context) error {
			booking := domain.Booking{
				CourtID:        courtID,
				UserID:         userID,
				StartTime:      day.Add(10 * time.Hour),
				EndTime:        day.Add(11 * time.Hour),
				Status:         domain.BookingStatusPending,
				IdempotencyKey: "idem-rollback",
				CreatedAt:      time.Now().UTC(),
			}
			if err := repo.CreateBooking(txCtx, &booking); err != nil {
				return err
			}
			return sentinel
		})
		if !errors.Is(err, sentinel) {
			t.Fatalf("expected sentinel error, got %v", err)
		}

		found, _, err := repo.FindBookingByIdempotencyKey(ctx, "idem-rollback")
		if err != nil {
			t.Fatalf("find: %v", err)
		}
		if found != nil {
			t.Fatalf("expected rollback, found %+v", found)
		}
	})
}
