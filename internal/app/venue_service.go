package app

import (
	"context"
	"strings"

	"github.com/UJJWALLAAD67/sportsbook/internal/clock"
	"github.com/UJJWALLAAD67/sportsbook/internal/domain"
)

type VenueRepository interface {
	CreateVenueWithCourts(ctx context.Context, venue *domain.Venue, courts []domain.Court) error
	ListByOwner(ctx context.Context, ownerID int64) ([]VenueWithCourts, error)
	ListPending(ctx context.Context) ([]VenueWithCourts, error)
	ApproveVenue(ctx context.Context, venueID int64) error
}

type VenueWithCourts struct {
	Venue  domain.Venue
	Courts []domain.Court
}

type VenueService struct {
	repo  VenueRepository
	clock clock.Clock
}

func NewVenueService(repo VenueRepository, clk clock.Clock) *VenueService {
	return &VenueService{repo: repo, clock: clk}
}

type CreateCourtInput struct {
	Name         string
	Sport        string
	PricePerHour int64
	Currency     string
	OpenTime     int
	CloseTime    int
}

type CreateVenueInput struct {
	OwnerID     int64
	Name        string
	Description string
	Address     string
	City        string
	State       string
	Country     string
	Amenities   []string
	Courts      []CreateCourtInput
}

// CreateVenue registers a venue with its courts in one transaction. New
// venues are not bookable until an admin approves them.
func (s *VenueService) CreateVenue(ctx context.Context, in CreateVenueInput) (VenueWithCourts, error) {
	if in.OwnerID <= 0 {
		return VenueWithCourts{}, domain.ErrInvalidID
	}
	if strings.TrimSpace(in.Name) == "" {
		return VenueWithCourts{}, domain.ErrVenueNameRequired
	}
	// Names with no slug-safe runes would all collapse onto the empty
	// slug and collide with each other.
	slug := slugify(in.Name)
	if slug == "" {
		return VenueWithCourts{}, domain.ErrVenueNameRequired
	}
	if len(in.Courts) == 0 {
		return VenueWithCourts{}, domain.ErrCourtsRequired
	}

	courts := make([]domain.Court, 0, len(in.Courts))
	for _, c := range in.Courts {
		if c.OpenTime < 0 || c.CloseTime > 24 || c.OpenTime >= c.CloseTime {
			return VenueWithCourts{}, domain.ErrInvalidHours
		}
		if c.PricePerHour <= 0 {
			return VenueWithCourts{}, domain.ErrInvalidPrice
		}
		currency := c.Currency
		if currency == "" {
			currency = "INR"
		}
		courts = append(courts, domain.Court{
			Name:         c.Name,
			Sport:        c.Sport,
			PricePerHour: c.PricePerHour,
			Currency:     currency,
			OpenTime:     c.OpenTime,
			CloseTime:    c.CloseTime,
		})
	}

	venue := domain.Venue{
		OwnerID:     in.OwnerID,
		Name:        in.Name,
		Slug:        slug,
		Description: in.Description,
		Address:     in.Address,
		City:        in.City,
		State:       in.State,
		Country:     in.Country,
		Amenities:   in.Amenities,
		Approved:    false,
		CreatedAt:   s.clock.Now(),
	}

	if err := s.repo.CreateVenueWithCourts(ctx, &venue, courts); err != nil {
		return VenueWithCourts{}, err
	}
	return VenueWithCourts{Venue: venue, Courts: courts}, nil
}

func (s *VenueService) ListOwnerVenues(ctx context.Context, ownerID int64) ([]VenueWithCourts, error) {
	if ownerID <= 0 {
		return nil, domain.ErrInvalidID
	}
	return s.repo.ListByOwner(ctx, ownerID)
}

// ListPendingVenues returns venues awaiting admin approval, newest first.
func (s *VenueService) ListPendingVenues(ctx context.Context) ([]VenueWithCourts, error) {
	return s.repo.ListPending(ctx)
}

func (s *VenueService) ApproveVenue(ctx context.Context, venueID int64) error {
	if venueID <= 0 {
		return domain.ErrInvalidID
	}
	return s.repo.ApproveVenue(ctx, venueID)
}

// slugify lowercases the name and collapses anything outside [a-z0-9] into
// single hyphens.
func slugify(name string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
