package bookings

import (
	"context"
	"log/slog"
	"time"

	"github.com/preston-bernstein/bookplay-admin/internal/calendar"
	"github.com/preston-bernstein/bookplay-admin/internal/domain"
	"github.com/preston-bernstein/bookplay-admin/internal/logging"
	"github.com/preston-bernstein/bookplay-admin/internal/querycache"
	"github.com/preston-bernstein/bookplay-admin/internal/validation"
)

// Backend defines the booking calls the service makes.
type Backend interface {
	ListBookings(ctx context.Context, businessID string) ([]domain.Booking, error)
	GetBooking(ctx context.Context, businessID, bookingID string) (domain.Booking, error)
	CreateBooking(ctx context.Context, businessID string, in domain.CreateBookingInput) (domain.Booking, error)
	CancelBooking(ctx context.Context, businessID, bookingID string) (domain.Booking, error)
}

// Service coordinates booking reads and mutations through the query cache.
type Service struct {
	backend Backend
	cache   *querycache.Cache
	logger  *slog.Logger
	now     func() time.Time
}

// NewService constructs a Service.
func NewService(backend Backend, cache *querycache.Cache, logger *slog.Logger) *Service {
	return &Service{backend: backend, cache: cache, logger: logger, now: time.Now}
}

// CalendarQuery selects the month view. Empty Month and Selected default to
// the current month and today in Timezone.
type CalendarQuery struct {
	BusinessID string
	Month      string
	Selected   string
	Filter     calendar.Filter
	Timezone   string
}

// All returns every booking of the business in backend order.
func (s *Service) All(ctx context.Context, businessID string) ([]domain.Booking, error) {
	return querycache.Fetch(ctx, s.cache, querycache.BookingsKey(businessID),
		func(ctx context.Context) ([]domain.Booking, error) {
			return s.backend.ListBookings(ctx, businessID)
		})
}

// List returns the filtered bookings, newest first.
func (s *Service) List(ctx context.Context, businessID string, filter calendar.Filter) ([]domain.Booking, error) {
	all, err := s.All(ctx, businessID)
	if err != nil {
		return nil, err
	}
	return filter.Apply(all), nil
}

// Day returns the filtered bookings of one date, earliest first.
func (s *Service) Day(ctx context.Context, businessID, date string, filter calendar.Filter) ([]domain.Booking, error) {
	list, err := s.List(ctx, businessID, filter)
	if err != nil {
		return nil, err
	}
	return calendar.BucketByDate(list).For(date), nil
}

// Calendar builds the month view. The projection is recomputed per call;
// only the booking list is cached.
func (s *Service) Calendar(ctx context.Context, q CalendarQuery) (calendar.MonthView, error) {
	loc := resolveLocation(q.Timezone)
	today := calendar.Today(s.now(), loc)

	month := calendar.MonthOf(s.now().In(loc))
	if q.Month != "" {
		parsed, err := calendar.ParseMonth(q.Month)
		if err != nil {
			return calendar.MonthView{}, err
		}
		month = parsed
	}

	all, err := s.All(ctx, q.BusinessID)
	if err != nil {
		return calendar.MonthView{}, err
	}
	return calendar.BuildMonthView(all, calendar.ViewInput{
		Month:    month,
		Filter:   q.Filter,
		Selected: q.Selected,
		Today:    today,
	}), nil
}

// Get returns a single booking.
func (s *Service) Get(ctx context.Context, businessID, bookingID string) (domain.Booking, error) {
	return querycache.Fetch(ctx, s.cache, querycache.BookingKey(businessID, bookingID),
		func(ctx context.Context) (domain.Booking, error) {
			return s.backend.GetBooking(ctx, businessID, bookingID)
		})
}

// Create validates and submits a booking for the business.
func (s *Service) Create(ctx context.Context, businessID string, in domain.CreateBookingInput) (domain.Booking, error) {
	in.BusinessID = businessID
	if err := validation.Struct(in); err != nil {
		return domain.Booking{}, err
	}
	booking, err := s.backend.CreateBooking(ctx, businessID, in)
	if err != nil {
		return domain.Booking{}, err
	}
	s.cache.Invalidate(querycache.BookingsKey(businessID))
	logging.Info(s.logger, "booking created",
		logging.FieldBusinessID, businessID,
		logging.FieldBookingID, booking.ID,
		logging.FieldDate, booking.Date,
	)
	return booking, nil
}

// Cancel moves a booking to CANCELLED.
func (s *Service) Cancel(ctx context.Context, businessID, bookingID string) (domain.Booking, error) {
	booking, err := s.backend.CancelBooking(ctx, businessID, bookingID)
	if err != nil {
		return domain.Booking{}, err
	}
	s.cache.Invalidate(querycache.BookingsKey(businessID))
	logging.Info(s.logger, "booking cancelled",
		logging.FieldBusinessID, businessID,
		logging.FieldBookingID, bookingID,
	)
	return booking, nil
}

func resolveLocation(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	if loc, err := time.LoadLocation(name); err == nil {
		return loc
	}
	return time.UTC
}
