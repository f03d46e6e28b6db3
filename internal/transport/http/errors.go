package http

import (
	"encoding/json"
	"net/http"
)

const (
	codeMethodNotAllowed      = "method_not_allowed"
	codeNotFound              = "not_found"
	codeInvalidRequestBody    = "invalid_request_body"
	codeInvalidID             = "invalid_id"
	codeInvalidDate           = "invalid_date"
	codeInvalidSlot           = "invalid_slot"
	codeInvalidDuration       = "invalid_duration"
	codeCourtNotFound         = "court_not_found"
	codeVenueNotFound         = "venue_not_found"
	codeBookingNotFound       = "booking_not_found"
	codePaymentNotFound       = "payment_not_found"
	codeVenueNotApproved      = "venue_not_approved"
	codeOutsideHours          = "outside_operating_hours"
	codePriceMismatch         = "price_mismatch"
	codeSlotConflict          = "slot_conflict"
	codeVenueSlugTaken        = "venue_slug_taken"
	codeVenueNameRequired     = "venue_name_required"
	codeCourtsRequired        = "courts_required"
	codeInvalidHours          = "invalid_hours"
	codeInvalidPrice          = "invalid_price"
	codeBookingTimeout        = "booking_timeout"
	codePaymentAlreadySettled = "payment_already_settled"
	codeInvalidSignature      = "invalid_signature"
	codeUnauthorized          = "unauthorized"
	codeForbidden             = "forbidden"
	codeInternalError         = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(errorResponse{
		Error: msg,
		Code:  code,
	})
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
