package bookplay

import (
	"context"
	"net/http"

	"github.com/preston-bernstein/bookplay-admin/internal/domain"
)

// ListBookings returns every booking of a business, in backend order.
func (c *Client) ListBookings(ctx context.Context, businessID string) ([]domain.Booking, error) {
	var out []domain.Booking
	err := c.do(ctx, call{
		method: http.MethodGet,
		route:  "/businesses/:id/bookings",
		path:   pathf("/businesses/%s/bookings", businessID),
	}, &out)
	return out, err
}

func (c *Client) GetBooking(ctx context.Context, businessID, bookingID string) (domain.Booking, error) {
	var out domain.Booking
	err := c.do(ctx, call{
		method: http.MethodGet,
		route:  "/businesses/:id/bookings/:bookingId",
		path:   pathf("/businesses/%s/bookings/%s", businessID, bookingID),
	}, &out)
	return out, err
}

func (c *Client) CreateBooking(ctx context.Context, businessID string, in domain.CreateBookingInput) (domain.Booking, error) {
	var out domain.Booking
	err := c.do(ctx, call{
		method: http.MethodPost,
		route:  "/businesses/:id/bookings",
		path:   pathf("/businesses/%s/bookings", businessID),
		body:   in,
	}, &out)
	return out, err
}

// CancelBooking moves a booking to CANCELLED. Bookings are never hard deleted.
func (c *Client) CancelBooking(ctx context.Context, businessID, bookingID string) (domain.Booking, error) {
	var out domain.Booking
	err := c.do(ctx, call{
		method: http.MethodPatch,
		route:  "/businesses/:id/bookings/:bookingId/cancel",
		path:   pathf("/businesses/%s/bookings/%s/cancel", businessID, bookingID),
	}, &out)
	return out, err
}
