package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/UJJWALLAAD67/sportsbook/internal/app"
	"github.com/UJJWALLAAD67/sportsbook/internal/domain"
)

// AdminVenueService is the minimal interface needed for the admin approval
// queue.
type AdminVenueService interface {
	ListPendingVenues(ctx context.Context) ([]app.VenueWithCourts, error)
	ApproveVenue(ctx context.Context, venueID int64) error
}

// HandleAdminFacilities lists venues awaiting approval.
func HandleAdminFacilities(svc AdminVenueService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}
		venues, err := svc.ListPendingVenues(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			return
		}
		resp := make([]venueBody, 0, len(venues))
		for _, v := range venues {
			resp = append(resp, newVenueBody(v))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// HandleApproveVenue marks a pending venue approved, making its courts
// bookable.
func HandleApproveVenue(svc AdminVenueService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}
		venueID, ok := parseApproveVenuePath(r.URL.Path)
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		if err := svc.ApproveVenue(r.Context(), venueID); err != nil {
			switch {
			case errors.Is(err, domain.ErrInvalidID):
				writeError(w, http.StatusBadRequest, codeInvalidID, err.Error())
			case errors.Is(err, domain.ErrVenueNotFound):
				writeError(w, http.StatusNotFound, codeVenueNotFound, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			}
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"approved": true})
	}
}

func parseApproveVenuePath(path string) (int64, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) != 4 {
		return 0, false
	}
	if parts[0] != "admin" || parts[1] != "facilities" || parts[3] != "approve" {
		return 0, false
	}
	return parseID(parts[2])
}
