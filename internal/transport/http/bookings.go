package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/UJJWALLAAD67/sportsbook/internal/app"
	"github.com/UJJWALLAAD67/sportsbook/internal/domain"
)

const idempotencyHeader = "Idempotency-Key"

// BookingCreator is the minimal interface needed to create a booking.
type BookingCreator interface {
	CreateBooking(ctx context.Context, in app.CreateBookingInput) (app.BookingResult, error)
}

// CourtDayLister is the minimal interface needed to list a court's occupied
// intervals for one day.
type CourtDayLister interface {
	ListCourtDay(ctx context.Context, courtID int64, date string) ([]app.BookedInterval, error)
}

// HandleBookings serves booking creation and the per-court availability
// read on the /bookings collection.
func HandleBookings(creator BookingCreator, lister CourtDayLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			handleCreateBooking(creator, w, r)
		case http.MethodGet:
			handleListCourtDay(lister, w, r)
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		}
	}
}

func handleCreateBooking(svc BookingCreator, w http.ResponseWriter, r *http.Request) {
	id, ok := identityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, codeUnauthorized, "authentication required")
		return
	}

	var req createBookingRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
		return
	}

	result, err := svc.CreateBooking(r.Context(), app.CreateBookingInput{
		CourtID:        req.CourtID,
		VenueID:        req.VenueID,
		UserID:         id.userID,
		Date:           req.Date,
		SlotStartHour:  req.SlotStartHour,
		DurationHours:  req.DurationHours,
		ExpectedPrice:  req.ExpectedPrice,
		Notes:          req.Notes,
		IdempotencyKey: r.Header.Get(idempotencyHeader),
	})
	if err != nil {
		writeBookingError(w, err)
		return
	}

	resp := bookingResponse{
		Booking: newBookingBody(result.Booking),
		Payment: newPaymentBody(result.Payment),
	}
	status := http.StatusCreated
	if result.AlreadyExists {
		resp.AlreadyExists = true
		status = http.StatusOK
	}
	writeJSON(w, status, resp)
}

func writeBookingError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidID):
		writeError(w, http.StatusBadRequest, codeInvalidID, err.Error())
	case errors.Is(err, domain.ErrInvalidDate):
		writeError(w, http.StatusBadRequest, codeInvalidDate, err.Error())
	case errors.Is(err, domain.ErrInvalidSlot):
		writeError(w, http.StatusBadRequest, codeInvalidSlot, err.Error())
	case errors.Is(err, domain.ErrInvalidDuration):
		writeError(w, http.StatusBadRequest, codeInvalidDuration, err.Error())
	case errors.Is(err, domain.ErrPriceMismatch):
		writeError(w, http.StatusBadRequest, codePriceMismatch, err.Error())
	case errors.Is(err, domain.ErrOutsideOperatingHours):
		writeError(w, http.StatusBadRequest, codeOutsideHours, err.Error())
	case errors.Is(err, domain.ErrCourtNotFound):
		writeError(w, http.StatusNotFound, codeCourtNotFound, err.Error())
	case errors.Is(err, domain.ErrVenueNotApproved):
		writeError(w, http.StatusForbidden, codeVenueNotApproved, err.Error())
	case errors.Is(err, domain.ErrSlotConflict):
		writeError(w, http.StatusConflict, codeSlotConflict,
			"this time slot is no longer available, please select a different time")
	case errors.Is(err, domain.ErrBookingTimeout):
		writeError(w, http.StatusRequestTimeout, codeBookingTimeout,
			"booking request timed out, please try again")
	default:
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}

func handleListCourtDay(svc CourtDayLister, w http.ResponseWriter, r *http.Request) {
	courtID, ok := parseID(r.URL.Query().Get("court_id"))
	date := r.URL.Query().Get("date")
	if !ok || date == "" {
		writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "court_id and date are required")
		return
	}

	intervals, err := svc.ListCourtDay(r.Context(), courtID, date)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidID):
			writeError(w, http.StatusBadRequest, codeInvalidID, err.Error())
		case errors.Is(err, domain.ErrInvalidDate):
			writeError(w, http.StatusBadRequest, codeInvalidDate, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
		}
		return
	}

	resp := make([]bookedIntervalBody, 0, len(intervals))
	for _, iv := range intervals {
		resp = append(resp, bookedIntervalBody{Start: iv.Start, End: iv.End})
	}
	writeJSON(w, http.StatusOK, resp)
}

type createBookingRequest struct {
	VenueID       int64  `json:"venue_id"`
	CourtID       int64  `json:"court_id"`
	Date          string `json:"date"`
	SlotStartHour int    `json:"slot_start_hour"`
	DurationHours int    `json:"duration_hours"`
	ExpectedPrice int64  `json:"expected_price"`
	Notes         string `json:"notes"`
}

type bookingResponse struct {
	Booking       bookingBody `json:"booking"`
	Payment       paymentBody `json:"payment"`
	AlreadyExists bool        `json:"already_exists,omitempty"`
}

type bookingBody struct {
	ID        int64     `json:"id"`
	CourtID   int64     `json:"court_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Status    string    `json:"status"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func newBookingBody(b domain.Booking) bookingBody {
	return bookingBody{
		ID:        b.ID,
		CourtID:   b.CourtID,
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
		Status:    string(b.Status),
		Notes:     b.Notes,
		CreatedAt: b.CreatedAt,
	}
}

type paymentBody struct {
	ID       int64  `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
}

func newPaymentBody(p domain.Payment) paymentBody {
	return paymentBody{
		ID:       p.ID,
		Amount:   p.Amount,
		Currency: p.Currency,
		Status:   string(p.Status),
	}
}

type bookedIntervalBody struct {
	Start time.Time `json:"start_time"`
	End   time.Time `json:"end_time"`
}
