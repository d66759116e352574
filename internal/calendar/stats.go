package calendar

import "github.com/preston-bernstein/bookplay-admin/internal/domain"

// Stats holds active and cancelled booking counts.
type Stats struct {
	Active    int `json:"active"`
	Cancelled int `json:"cancelled"`
}

// Total returns every counted booking.
func (s Stats) Total() int {
	return s.Active + s.Cancelled
}

// Count tallies bookings by status.
func Count(bookings []domain.Booking) Stats {
	var s Stats
	for _, b := range bookings {
		switch b.Status {
		case domain.BookingActive:
			s.Active++
		case domain.BookingCancelled:
			s.Cancelled++
		}
	}
	return s
}

// MonthCount returns how many bookings fall in the month, any status.
func MonthCount(bookings []domain.Booking, m Month) int {
	n := 0
	for _, b := range bookings {
		if m.Contains(b.Date) {
			n++
		}
	}
	return n
}

// MonthStats counts active and cancelled bookings dated in the month.
func MonthStats(bookings []domain.Booking, m Month) Stats {
	var s Stats
	for _, b := range bookings {
		if !m.Contains(b.Date) {
			continue
		}
		switch b.Status {
		case domain.BookingActive:
			s.Active++
		case domain.BookingCancelled:
			s.Cancelled++
		}
	}
	return s
}
