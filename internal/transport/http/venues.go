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

// OwnerVenueService is the minimal interface needed for owner venue
// endpoints.
type OwnerVenueService interface {
	CreateVenue(ctx context.Context, in app.CreateVenueInput) (app.VenueWithCourts, error)
	ListOwnerVenues(ctx context.Context, ownerID int64) ([]app.VenueWithCourts, error)
}

// HandleOwnerVenues serves venue registration and listing for facility
// owners. New venues stay unapproved until an admin acts.
func HandleOwnerVenues(svc OwnerVenueService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := identityFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, codeUnauthorized, "authentication required")
			return
		}

		switch r.Method {
		case http.MethodGet:
			venues, err := svc.ListOwnerVenues(r.Context(), id.userID)
			if err != nil {
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
				return
			}
			resp := make([]venueBody, 0, len(venues))
			for _, v := range venues {
				resp = append(resp, newVenueBody(v))
			}
			writeJSON(w, http.StatusOK, resp)
		case http.MethodPost:
			var req createVenueRequest
			dec := json.NewDecoder(r.Body)
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
				return
			}

			courts := make([]app.CreateCourtInput, 0, len(req.Courts))
			for _, c := range req.Courts {
				courts = append(courts, app.CreateCourtInput{
					Name:         c.Name,
					Sport:        c.Sport,
					PricePerHour: c.PricePerHour,
					Currency:     c.Currency,
					OpenTime:     c.OpenTime,
					CloseTime:    c.CloseTime,
				})
			}

			venue, err := svc.CreateVenue(r.Context(), app.CreateVenueInput{
				OwnerID:     id.userID,
				Name:        req.Name,
				Description: req.Description,
				Address:     req.Address,
				City:        req.City,
				State:       req.State,
				Country:     req.Country,
				Amenities:   req.Amenities,
				Courts:      courts,
			})
			if err != nil {
				switch {
				case errors.Is(err, domain.ErrVenueNameRequired):
					writeError(w, http.StatusBadRequest, codeVenueNameRequired, err.Error())
				case errors.Is(err, domain.ErrCourtsRequired):
					writeError(w, http.StatusBadRequest, codeCourtsRequired, err.Error())
				case errors.Is(err, domain.ErrInvalidHours):
					writeError(w, http.StatusBadRequest, codeInvalidHours, err.Error())
				case errors.Is(err, domain.ErrInvalidPrice):
					writeError(w, http.StatusBadRequest, codeInvalidPrice, err.Error())
				case errors.Is(err, domain.ErrVenueSlugTaken):
					writeError(w, http.StatusConflict, codeVenueSlugTaken, err.Error())
				default:
					writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
				}
				return
			}
			writeJSON(w, http.StatusCreated, newVenueBody(venue))
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		}
	}
}

type createVenueRequest struct {
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Address     string               `json:"address"`
	City        string               `json:"city"`
	State       string               `json:"state"`
	Country     string               `json:"country"`
	Amenities   []string             `json:"amenities"`
	Courts      []createCourtRequest `json:"courts"`
}

type createCourtRequest struct {
	Name         string `json:"name"`
	Sport        string `json:"sport"`
	PricePerHour int64  `json:"price_per_hour"`
	Currency     string `json:"currency"`
	OpenTime     int    `json:"open_time"`
	CloseTime    int    `json:"close_time"`
}

type venueBody struct {
	ID        int64       `json:"id"`
	Name      string      `json:"name"`
	Slug      string      `json:"slug"`
	Address   string      `json:"address,omitempty"`
	City      string      `json:"city,omitempty"`
	State     string      `json:"state,omitempty"`
	Country   string      `json:"country,omitempty"`
	Amenities []string    `json:"amenities,omitempty"`
	Approved  bool        `json:"approved"`
	Courts    []courtBody `json:"courts"`
	CreatedAt time.Time   `json:"created_at"`
}

func newVenueBody(v app.VenueWithCourts) venueBody {
	courts := make([]courtBody, 0, len(v.Courts))
	for _, c := range v.Courts {
		courts = append(courts, courtBody{
			ID:           c.ID,
			Name:         c.Name,
			Sport:        c.Sport,
			PricePerHour: c.PricePerHour,
			Currency:     c.Currency,
			OpenTime:     c.OpenTime,
			CloseTime:    c.CloseTime,
		})
	}
	return venueBody{
		ID:        v.Venue.ID,
		Name:      v.Venue.Name,
		Slug:      v.Venue.Slug,
		Address:   v.Venue.Address,
		City:      v.Venue.City,
		State:     v.Venue.State,
		Country:   v.Venue.Country,
		Amenities: v.Venue.Amenities,
		Approved:  v.Venue.Approved,
		Courts:    courts,
		CreatedAt: v.Venue.CreatedAt,
	}
}
