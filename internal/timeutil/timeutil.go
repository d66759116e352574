package timeutil

import (
	"fmt"
	"strings"
	"time"
)

const (
	// DateLayout defines the canonical date format (YYYY-MM-DD).
	DateLayout = "2006-01-02"
	// MonthLayout defines the canonical month key format (YYYY-MM).
	MonthLayout = "2006-01"
	// ClockLayout is the wall-clock format used by bookings and rules (HH:MM).
	ClockLayout = "15:04"
)

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// FormatDate formats a time as YYYY-MM-DD in its current location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseMonth parses a YYYY-MM month key.
func ParseMonth(value string) (time.Time, error) {
	return time.Parse(MonthLayout, value)
}

// NormalizeClock trims a HH:MM[:SS] wall-clock string to HH:MM and validates it.
// The backend sometimes returns seconds; the UI contract only ever shows minutes.
func NormalizeClock(value string) (string, error) {
	value = strings.TrimSpace(value)
	if len(value) == len("15:04:05") {
		if _, err := time.Parse("15:04:05", value); err != nil {
			return "", fmt.Errorf("invalid clock %q", value)
		}
		return value[:5], nil
	}
	if _, err := time.Parse(ClockLayout, value); err != nil || len(value) != len(ClockLayout) {
		return "", fmt.Errorf("invalid clock %q", value)
	}
	return value, nil
}

// ShortClock returns the HH:MM prefix of a clock string without validating it.
func ShortClock(value string) string {
	if len(value) > 5 {
		return value[:5]
	}
	return value
}
