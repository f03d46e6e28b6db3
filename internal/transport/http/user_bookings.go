package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/UJJWALLAAD67/sportsbook/internal/app"
	"github.com/UJJWALLAAD67/sportsbook/internal/domain"
)

// BookingReader is the minimal interface needed for booking detail and
// history endpoints.
type BookingReader interface {
	GetBooking(ctx context.Context, bookingID, userID int64) (app.BookingDetail, error)
	ListUserBookings(ctx context.Context, in app.ListUserBookingsInput) (app.UserBookingsPage, error)
}

// HandleUserBookings lists the authenticated user's bookings with optional
// status filter and paging.
func HandleUserBookings(svc BookingReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}
		id, ok := identityFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, codeUnauthorized, "authentication required")
			return
		}

		q := r.URL.Query()
		page, _ := strconv.Atoi(q.Get("page"))
		limit, _ := strconv.Atoi(q.Get("limit"))

		result, err := svc.ListUserBookings(r.Context(), app.ListUserBookingsInput{
			UserID: id.userID,
			Status: q.Get("status"),
			Page:   page,
			Limit:  limit,
		})
		if err != nil {
			writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			return
		}

		resp := userBookingsResponse{
			Bookings: make([]bookingDetailBody, 0, len(result.Bookings)),
			Total:    result.Total,
		}
		for _, d := range result.Bookings {
			resp.Bookings = append(resp.Bookings, newBookingDetailBody(d))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// HandleBookingByID returns one of the authenticated user's bookings with
// court, venue and payment data.
func HandleBookingByID(svc BookingReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}
		id, ok := identityFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, codeUnauthorized, "authentication required")
			return
		}
		bookingID, ok := parseBookingPath(r.URL.Path)
		if !ok {
			writeError(w, http.StatusBadRequest, codeInvalidID, "invalid booking id")
			return
		}

		detail, err := svc.GetBooking(r.Context(), bookingID, id.userID)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrInvalidID):
				writeError(w, http.StatusBadRequest, codeInvalidID, err.Error())
			case errors.Is(err, domain.ErrBookingNotFound):
				writeError(w, http.StatusNotFound, codeBookingNotFound, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			}
			return
		}
		writeJSON(w, http.StatusOK, newBookingDetailBody(detail))
	}
}

func parseBookingPath(path string) (int64, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) != 2 || parts[0] != "bookings" {
		return 0, false
	}
	return parseID(parts[1])
}

type userBookingsResponse struct {
	Bookings []bookingDetailBody `json:"bookings"`
	Total    int                 `json:"total"`
}

type bookingDetailBody struct {
	ID        int64        `json:"id"`
	StartTime time.Time    `json:"start_time"`
	EndTime   time.Time    `json:"end_time"`
	Status    string       `json:"status"`
	CreatedAt time.Time    `json:"created_at"`
	Court     courtBody    `json:"court"`
	Venue     venueRefBody `json:"venue"`
	Payment   *paymentBody `json:"payment,omitempty"`
}

type courtBody struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Sport        string `json:"sport"`
	PricePerHour int64  `json:"price_per_hour"`
	Currency     string `json:"currency"`
	OpenTime     int    `json:"open_time"`
	CloseTime    int    `json:"close_time"`
}

type venueRefBody struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
}

func newBookingDetailBody(d app.BookingDetail) bookingDetailBody {
	body := bookingDetailBody{
		ID:        d.Booking.ID,
		StartTime: d.Booking.StartTime,
		EndTime:   d.Booking.EndTime,
		Status:    string(d.Booking.Status),
		CreatedAt: d.Booking.CreatedAt,
		Court: courtBody{
			ID:           d.Court.ID,
			Name:         d.Court.Name,
			Sport:        d.Court.Sport,
			PricePerHour: d.Court.PricePerHour,
			Currency:     d.Court.Currency,
			OpenTime:     d.Court.OpenTime,
			CloseTime:    d.Court.CloseTime,
		},
		Venue: venueRefBody{
			ID:      d.Venue.ID,
			Name:    d.Venue.Name,
			Address: d.Venue.Address,
			City:    d.Venue.City,
			State:   d.Venue.State,
		},
	}
	if d.Payment != nil {
		p := newPaymentBody(*d.Payment)
		body.Payment = &p
	}
	return body
}
