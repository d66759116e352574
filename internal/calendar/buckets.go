package calendar

import (
	"slices"
	"strings"

	"github.com/preston-bernstein/bookplay-admin/internal/domain"
	"github.com/preston-bernstein/bookplay-admin/internal/timeutil"
)

// Buckets groups bookings by their exact date string.
type Buckets map[string][]domain.Booking

// BucketByDate groups bookings by date and stable-sorts each group by start
// time. Bookings outside any month of interest are bucketed all the same.
// The input slice is left untouched.
func BucketByDate(bookings []domain.Booking) Buckets {
	out := make(Buckets)
	for _, b := range bookings {
		out[b.Date] = append(out[b.Date], b)
	}
	for _, items := range out {
		slices.SortStableFunc(items, compareStart)
	}
	return out
}

// For returns the bucket for a date; a date without bookings yields an empty
// slice.
func (b Buckets) For(date string) []domain.Booking {
	if items, ok := b[date]; ok {
		return items
	}
	return []domain.Booking{}
}

// Stats counts active and cancelled bookings on a date.
func (b Buckets) Stats(date string) Stats {
	return Count(b[date])
}

func compareStart(a, b domain.Booking) int {
	return strings.Compare(timeutil.ShortClock(a.StartTime), timeutil.ShortClock(b.StartTime))
}
