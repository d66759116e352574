package calendar

import (
	"fmt"
	"time"

	"github.com/preston-bernstein/bookplay-admin/internal/timeutil"
)

// Month identifies a calendar month independent of any time zone.
type Month struct {
	Year  int
	Month time.Month
}

// ParseMonth parses a YYYY-MM key.
func ParseMonth(value string) (Month, error) {
	t, err := timeutil.ParseMonth(value)
	if err != nil {
		return Month{}, fmt.Errorf("calendar: invalid month %q", value)
	}
	return MonthOf(t), nil
}

// MonthOf returns the month containing t, in t's location.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// String returns the YYYY-MM key.
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// First returns midnight UTC on the first day of the month.
func (m Month) First() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

// Days returns the number of days in the month.
func (m Month) Days() int {
	return m.First().AddDate(0, 1, -1).Day()
}

// Add moves delta months forward (or backward when negative).
func (m Month) Add(delta int) Month {
	return MonthOf(m.First().AddDate(0, delta, 0))
}

// Contains reports whether a YYYY-MM-DD date string falls in the month.
func (m Month) Contains(date string) bool {
	return len(date) >= 7 && date[:7] == m.String()
}

// Date returns the YYYY-MM-DD key of a day in the month.
func (m Month) Date(day int) string {
	return fmt.Sprintf("%s-%02d", m.String(), day)
}
