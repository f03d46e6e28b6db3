package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/UJJWALLAAD67/sportsbook/internal/domain"
)

// ProviderRefRegistrar is the minimal interface needed to attach a gateway
// payment-intent id to a booking's payment.
type ProviderRefRegistrar interface {
	RegisterProviderRef(ctx context.Context, bookingID int64, providerRef string) error
}

// HandleRegisterPaymentIntent records the gateway reference the client
// obtained for a booking so webhook events can be correlated later.
func HandleRegisterPaymentIntent(svc ProviderRefRegistrar) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}
		if _, ok := identityFromContext(r.Context()); !ok {
			writeError(w, http.StatusUnauthorized, codeUnauthorized, "authentication required")
			return
		}

		var req registerIntentRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		err := svc.RegisterProviderRef(r.Context(), req.BookingID, req.ProviderRef)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrInvalidID):
				writeError(w, http.StatusBadRequest, codeInvalidID, err.Error())
			case errors.Is(err, domain.ErrPaymentNotFound):
				writeError(w, http.StatusNotFound, codePaymentNotFound, err.Error())
			case errors.Is(err, domain.ErrPaymentAlreadySettled):
				writeError(w, http.StatusConflict, codePaymentAlreadySettled, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			}
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"registered": true})
	}
}

type registerIntentRequest struct {
	BookingID   int64  `json:"booking_id"`
	ProviderRef string `json:"provider_ref"`
}
