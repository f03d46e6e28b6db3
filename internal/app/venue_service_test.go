package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/UJJWALLAAD67/sportsbook/internal/clock"
	"github.com/UJJWALLAAD67/sportsbook/internal/domain"
)

func TestCreateVenue(t *testing.T) {
	now := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

	validInput := func() CreateVenueInput {
		return CreateVenueInput{
			OwnerID: 2,
			Name:    "Smash Point Arena",
			City:    "Pune",
			Courts: []CreateCourtInput{
				{Name: "Court 1", Sport: "badminton", PricePerHour: 120000, OpenTime: 6, CloseTime: 23},
			},
		}
	}

	t.Run("creates unapproved venue with slug", func(t *testing.T) {
		repo := &fakeVenueRepo{}
		svc := NewVenueService(repo, clock.NewFixed(now))

		res, err := svc.CreateVenue(context.Background(), validInput())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if res.Venue.Approved {
			t.Fatal("new venues must start unapproved")
		}
		if res.Venue.Slug != "smash-point-arena" {
			t.Fatalf("expected slug smash-point-arena, got %q", res.Venue.Slug)
		}
		if len(res.Courts) != 1 {
			t.Fatalf("expected 1 court, got %d", len(res.Courts))
		}
		if res.Courts[0].Currency != "INR" {
			t.Fatalf("expected default currency INR, got %q", res.Courts[0].Currency)
		}
		if !repo.created {
			t.Fatal("expected repository write")
		}
	})

	t.Run("validation", func(t *testing.T) {
		cases := []struct {
			name    string
			mutate  func(*CreateVenueInput)
			wantErr error
		}{
			{"missing owner", func(in *CreateVenueInput) { in.OwnerID = 0 }, domain.ErrInvalidID},
			{"blank name", func(in *CreateVenueInput) { in.Name = "   " }, domain.ErrVenueNameRequired},
			{"unsluggable name", func(in *CreateVenueInput) { in.Name = "!!! ###" }, domain.ErrVenueNameRequired},
			{"no courts", func(in *CreateVenueInput) { in.Courts = nil }, domain.ErrCourtsRequired},
			{"inverted hours", func(in *CreateVenueInput) { in.Courts[0].OpenTime = 20; in.Courts[0].CloseTime = 8 }, domain.ErrInvalidHours},
			{"close past midnight", func(in *CreateVenueInput) { in.Courts[0].CloseTime = 25 }, domain.ErrInvalidHours},
			{"zero price", func(in *CreateVenueInput) { in.Courts[0].PricePerHour = 0 }, domain.ErrInvalidPrice},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				repo := &fakeVenueRepo{}
				svc := NewVenueService(repo, clock.NewFixed(now))

				in := validInput()
				tc.mutate(&in)
				if _, err := svc.CreateVenue(context.Background(), in); !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
				if repo.created {
					t.Fatal("invalid input must not reach the repository")
				}
			})
		}
	})

	t.Run("duplicate slug surfaces", func(t *testing.T) {
		repo := &fakeVenueRepo{createErr: domain.ErrVenueSlugTaken}
		svc := NewVenueService(repo, clock.NewFixed(now))

		if _, err := svc.CreateVenue(context.Background(), validInput()); !errors.Is(err, domain.ErrVenueSlugTaken) {
			t.Fatalf("expected ErrVenueSlugTaken, got %v", err)
		}
	})
}

func TestApproveVenue(t *testing.T) {
	repo := &fakeVenueRepo{}
	svc := NewVenueService(repo, clock.NewSystem())

	if err := svc.ApproveVenue(context.Background(), 3); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if repo.approvedID != 3 {
		t.Fatalf("expected venue 3 approved, got %d", repo.approvedID)
	}

	if err := svc.ApproveVenue(context.Background(), 0); !errors.Is(err, domain.ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
}

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Smash Point Arena", "smash-point-arena"},
		{"  Arena!  #1  ", "arena-1"},
		{"ALL CAPS", "all-caps"},
		{"already-sluggy", "already-sluggy"},
		{"!!!", ""},
	}
	for _, tc := range cases {
		if got := slugify(tc.in); got != tc.want {
			t.Fatalf("slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

type fakeVenueRepo struct {
	created    bool
	createErr  error
	approvedID int64
}

func (f *fakeVenueRepo) CreateVenueWithCourts(_ context.Context, venue *domain.Venue, courts []domain.Court) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = true
	venue.ID = 1
	for i := range courts {
		courts[i].ID = int64(i + 1)
		courts[i].VenueID = venue.ID
	}
	return nil
}

func (f *fakeVenueRepo) ListByOwner(_ context.Context, ownerID int64) ([]VenueWithCourts, error) {
	return nil, nil
}

func (f *fakeVenueRepo) ListPending(_ context.Context) ([]VenueWithCourts, error) {
	return nil, nil
}

func (f *fakeVenueRepo) ApproveVenue(_ context.Context, venueID int64) error {
	f.approvedID = venueID
	return nil
}
