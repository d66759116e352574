package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthGridJune2025(t *testing.T) {
	m := Month{Year: 2025, Month: time.June}
	cells := MonthGrid(m)

	require.Len(t, cells, 42)
	assert.Equal(t, 6, LeadingPadding(m))
	for i := 0; i < 6; i++ {
		assert.True(t, cells[i].Empty(), "cell %d should be padding", i)
	}
	assert.Equal(t, Cell{Date: "2025-06-01", Day: 1}, cells[6])
	assert.Equal(t, Cell{Date: "2025-06-30", Day: 30}, cells[35])
	for i := 36; i < 42; i++ {
		assert.True(t, cells[i].Empty(), "cell %d should be padding", i)
	}
}

func TestMonthGridIsWholeWeeksForEveryMonth(t *testing.T) {
	for year := 2023; year <= 2026; year++ {
		for month := time.January; month <= time.December; month++ {
			m := Month{Year: year, Month: month}
			cells := MonthGrid(m)

			assert.Zero(t, len(cells)%7, "%s: length %d", m, len(cells))
			days := 0
			for _, c := range cells {
				if !c.Empty() {
					days++
				}
			}
			assert.Equal(t, m.Days(), days, "%s", m)
		}
	}
}

func TestMonthGridStartsOnMonday(t *testing.T) {
	// September 2025 starts on a Monday.
	cells := MonthGrid(Month{Year: 2025, Month: time.September})
	assert.Equal(t, 1, cells[0].Day)
	assert.Len(t, cells, 35)
}

func TestLeapFebruary(t *testing.T) {
	assert.Equal(t, 29, Month{Year: 2024, Month: time.February}.Days())
	assert.Equal(t, 28, Month{Year: 2025, Month: time.February}.Days())
}

func TestWeeksSplitsRows(t *testing.T) {
	rows := Weeks(MonthGrid(Month{Year: 2025, Month: time.June}))
	require.Len(t, rows, 6)
	for _, row := range rows {
		assert.Len(t, row, 7)
	}
}

func TestMonthNavigation(t *testing.T) {
	m, err := ParseMonth("2025-01")
	require.NoError(t, err)

	assert.Equal(t, "2024-12", m.Add(-1).String())
	assert.Equal(t, "2025-02", m.Add(1).String())
	assert.Equal(t, "2026-01", m.Add(12).String())
	assert.True(t, m.Contains("2025-01-31"))
	assert.False(t, m.Contains("2025-02-01"))
	assert.False(t, m.Contains("2025"))

	_, err = ParseMonth("2025-13")
	assert.Error(t, err)
}

func TestTodayUsesLocation(t *testing.T) {
	now := time.Date(2025, 6, 1, 2, 0, 0, 0, time.UTC)
	west := time.FixedZone("UTC-3", -3*60*60)
	assert.Equal(t, "2025-05-31", Today(now, west))
	assert.Equal(t, "2025-06-01", Today(now, nil))
}
