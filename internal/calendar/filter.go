package calendar

import (
	"slices"
	"strings"

	"github.com/preston-bernstein/bookplay-admin/internal/domain"
)

// Filter narrows the booking list. Empty fields are unbounded; From and To
// are inclusive YYYY-MM-DD bounds.
type Filter struct {
	CourtID string
	From    string
	To      string
}

// IsZero reports whether the filter lets every booking through.
func (f Filter) IsZero() bool {
	return f.CourtID == "" && f.From == "" && f.To == ""
}

// Match reports whether a booking passes the filter.
func (f Filter) Match(b domain.Booking) bool {
	if f.CourtID != "" && b.CourtID != f.CourtID {
		return false
	}
	if f.From != "" && b.Date < f.From {
		return false
	}
	if f.To != "" && b.Date > f.To {
		return false
	}
	return true
}

// Apply returns the matching bookings, newest first: date descending, then
// start time descending.
func (f Filter) Apply(bookings []domain.Booking) []domain.Booking {
	out := make([]domain.Booking, 0, len(bookings))
	for _, b := range bookings {
		if f.Match(b) {
			out = append(out, b)
		}
	}
	slices.SortStableFunc(out, func(a, b domain.Booking) int {
		if c := strings.Compare(b.Date, a.Date); c != 0 {
			return c
		}
		return compareStart(b, a)
	})
	return out
}
