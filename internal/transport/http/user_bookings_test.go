package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/UJJWALLAAD67/sportsbook/internal/app"
	"github.com/UJJWALLAAD67/sportsbook/internal/domain"
)

func TestHandleUserBookings(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)
	detail := app.BookingDetail{
		Booking: domain.Booking{ID: 9, UserID: 7, StartTime: start, EndTime: start.Add(time.Hour), Status: domain.BookingStatusConfirmed},
		Court:   domain.Court{ID: 5, Name: "Court 1", Sport: "badminton", PricePerHour: 120000, Currency: "INR", OpenTime: 10, CloseTime: 22},
		Venue:   domain.Venue{ID: 1, Name: "Test Arena", City: "Pune"},
		Payment: &domain.Payment{ID: 77, BookingID: 9, Amount: 120000, Currency: "INR", Status: domain.PaymentStatusSucceeded},
	}

	t.Run("lists with filters forwarded", func(t *testing.T) {
		t.Parallel()
		svc := &stubBookingReader{page: app.UserBookingsPage{Bookings: []app.BookingDetail{detail}, Total: 1}}
		req := httptest.NewRequest(http.MethodGet, "/bookings/user?status=CONFIRMED&page=2&limit=5", nil)
		req = withIdentity(req, 7, RoleUser)
		rec := httptest.NewRecorder()

		HandleUserBookings(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rec.Code)
		}
		if svc.gotList.UserID != 7 || svc.gotList.Status != "CONFIRMED" || svc.gotList.Page != 2 || svc.gotList.Limit != 5 {
			t.Fatalf("unexpected list input %+v", svc.gotList)
		}
		body := rec.Body.String()
		if !strings.Contains(body, `"total":1`) {
			t.Fatalf("expected total in body, got %q", body)
		}
		if !strings.Contains(body, `"name":"Test Arena"`) {
			t.Fatalf("expected venue in body, got %q", body)
		}
	})

	t.Run("unauthenticated", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/bookings/user", nil)
		rec := httptest.NewRecorder()

		HandleUserBookings(&stubBookingReader{}).ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected status 401, got %d", rec.Code)
		}
	})

	t.Run("method not allowed", func(t *testing.T) {
		t.Parallel()
		req := withIdentity(httptest.NewRequest(http.MethodPost, "/bookings/user", nil), 7, RoleUser)
		rec := httptest.NewRecorder()

		HandleUserBookings(&stubBookingReader{}).ServeHTTP(rec, req)

		if rec.Code != http.StatusMethodNotAllowed {
			t.Fatalf("expected status 405, got %d", rec.Code)
		}
	})
}

func TestHandleBookingByID(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)
	detail := app.BookingDetail{
		Booking: domain.Booking{ID: 9, UserID: 7, StartTime: start, EndTime: start.Add(time.Hour), Status: domain.BookingStatusPending},
		Court:   domain.Court{ID: 5, Name: "Court 1"},
		Venue:   domain.Venue{ID: 1, Name: "Test Arena"},
	}

	t.Run("returns detail", func(t *testing.T) {
		t.Parallel()
		svc := &stubBookingReader{detail: detail}
		req := withIdentity(httptest.NewRequest(http.MethodGet, "/bookings/9", nil), 7, RoleUser)
		rec := httptest.NewRecorder()

		HandleBookingByID(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rec.Code)
		}
		if svc.gotBookingID != 9 || svc.gotUserID != 7 {
			t.Fatalf("expected lookup scoped to booking 9 user 7, got %d/%d", svc.gotBookingID, svc.gotUserID)
		}
		if !strings.Contains(rec.Body.String(), `"id":9`) {
			t.Fatalf("expected booking in body, got %q", rec.Body.String())
		}
	})

	t.Run("not found for other users", func(t *testing.T) {
		t.Parallel()
		svc := &stubBookingReader{err: domain.ErrBookingNotFound}
		req := withIdentity(httptest.NewRequest(http.MethodGet, "/bookings/9", nil), 8, RoleUser)
		rec := httptest.NewRecorder()

		HandleBookingByID(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected status 404, got %d", rec.Code)
		}
	})

	t.Run("malformed id", func(t *testing.T) {
		t.Parallel()
		req := withIdentity(httptest.NewRequest(http.MethodGet, "/bookings/abc", nil), 7, RoleUser)
		rec := httptest.NewRecorder()

		HandleBookingByID(&stubBookingReader{}).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d", rec.Code)
		}
	})
}

type stubBookingReader struct {
	detail app.BookingDetail
	page   app.UserBookingsPage
	err    error

	gotBookingID int64
	gotUserID    int64
	gotList      app.ListUserBookingsInput
}

func (s *stubBookingReader) GetBooking(_ context.Context, bookingID, userID int64) (app.BookingDetail, error) {
	s.gotBookingID = bookingID
	s.gotUserID = userID
	if s.err != nil {
		return app.BookingDetail{}, s.err
	}
	return s.detail, nil
}

func (s *stubBookingReader) ListUserBookings(_ context.Context, in app.ListUserBookingsInput) (app.UserBookingsPage, error) {
	s.gotList = in
	if s.err != nil {
		return app.UserBookingsPage{}, s.err
	}
	return s.page, nil
}
