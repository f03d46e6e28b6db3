package app

import (
	"context"
	"time"

	"github.com/UJJWALLAAD67/sportsbook/internal/domain"
)

type AvailabilityRepository interface {
	ListActiveByCourtAndDay(ctx context.Context, courtID int64, dayStart, dayEnd time.Time) ([]domain.Booking, error)
	GetBookingDetail(ctx context.Context, bookingID, userID int64) (*BookingDetail, error)
	ListByUser(ctx context.Context, userID int64, status domain.BookingStatus, limit, offset int) ([]BookingDetail, int, error)
}

// BookingDetail is a booking joined with its court, venue and payment for
// display to the requester.
type BookingDetail struct {
	Booking domain.Booking
	Court   domain.Court
	Venue   domain.Venue
	Payment *domain.Payment
}

type AvailabilityService struct {
	repo AvailabilityRepository
}

func NewAvailabilityService(repo AvailabilityRepository) *AvailabilityService {
	return &AvailabilityService{repo: repo}
}

// BookedInterval is one occupied [start, end) window on a court.
type BookedInterval struct {
	Start time.Time
	End   time.Time
}

// ListCourtDay returns the occupied intervals on a court for one calendar
// day, so callers can render free slots without seeing other users' data.
func (s *AvailabilityService) ListCourtDay(ctx context.Context, courtID int64, date string) ([]BookedInterval, error) {
	if courtID <= 0 {
		return nil, domain.ErrInvalidID
	}
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, domain.ErrInvalidDate
	}
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	bookings, err := s.repo.ListActiveByCourtAndDay(ctx, courtID, dayStart, dayStart.Add(24*time.Hour))
	if err != nil {
		return nil, err
	}
	intervals := make([]BookedInterval, 0, len(bookings))
	for _, b := range bookings {
		intervals = append(intervals, BookedInterval{Start: b.StartTime, End: b.EndTime})
	}
	return intervals, nil
}

// GetBooking returns one booking with related data, scoped to its owner.
func (s *AvailabilityService) GetBooking(ctx context.Context, bookingID, userID int64) (BookingDetail, error) {
	if bookingID <= 0 {
		return BookingDetail{}, domain.ErrInvalidID
	}
	detail, err := s.repo.GetBookingDetail(ctx, bookingID, userID)
	if err != nil {
		return BookingDetail{}, err
	}
	if detail == nil {
		return BookingDetail{}, domain.ErrBookingNotFound
	}
	return *detail, nil
}

type ListUserBookingsInput struct {
	UserID int64
	Status string // empty or "ALL" means no filter
	Page   int
	Limit  int
}

type UserBookingsPage struct {
	Bookings []BookingDetail
	Total    int
}

func (s *AvailabilityService) ListUserBookings(ctx context.Context, in ListUserBookingsInput) (UserBookingsPage, error) {
	if in.UserID <= 0 {
		return UserBookingsPage{}, domain.ErrInvalidID
	}
	if in.Page < 1 {
		in.Page = 1
	}
	if in.Limit < 1 || in.Limit > 100 {
		in.Limit = 10
	}
	var status domain.BookingStatus
	if in.Status != "" && in.Status != "ALL" {
		status = domain.BookingStatus(in.Status)
	}
	bookings, total, err := s.repo.ListByUser(ctx, in.UserID, status, in.Limit, (in.Page-1)*in.Limit)
	if err != nil {
		return UserBookingsPage{}, err
	}
	return UserBookingsPage{Bookings: bookings, Total: total}, nil
}
