package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/preston-bernstein/bookplay-admin/internal/domain"
)

func sampleBookings() []domain.Booking {
	return []domain.Booking{
		booking("a", "2025-06-10", "09:00", domain.BookingActive),
		booking("b", "2025-06-10", "08:00", domain.BookingCancelled),
		booking("c", "2025-06-12", "18:00", domain.BookingActive),
		booking("d", "2025-05-30", "10:00", domain.BookingActive),
		{ID: "e", CourtID: "c2", Date: "2025-06-10", StartTime: "11:00", Status: domain.BookingActive},
	}
}

func TestFilterAppliesBoundsAndOrdersNewestFirst(t *testing.T) {
	got := Filter{CourtID: "c1", From: "2025-06-01", To: "2025-06-30"}.Apply(sampleBookings())

	ids := make([]string, 0, len(got))
	for _, b := range got {
		ids = append(ids, b.ID)
	}
	assert.Equal(t, []string{"c", "a", "b"}, ids)
}

func TestFilterZeroKeepsEverything(t *testing.T) {
	f := Filter{}
	assert.True(t, f.IsZero())
	assert.Len(t, f.Apply(sampleBookings()), 5)
}

func TestFilterBoundsAreInclusive(t *testing.T) {
	got := Filter{From: "2025-06-12", To: "2025-06-12"}.Apply(sampleBookings())
	require.Len(t, got, 1)
	assert.Equal(t, "c", got[0].ID)
}

func TestBuildMonthView(t *testing.T) {
	view := BuildMonthView(sampleBookings(), ViewInput{
		Month:    Month{Year: 2025, Month: time.June},
		Selected: "2025-06-10",
		Today:    "2025-06-12",
	})

	assert.Equal(t, "2025-06", view.Month)
	assert.Equal(t, "2025-05", view.Previous)
	assert.Equal(t, "2025-07", view.Next)
	require.Len(t, view.Cells, 42)
	assert.False(t, view.HasFilters)
	assert.Equal(t, 5, view.Results)
	assert.Equal(t, 4, view.MonthBookings)
	assert.Equal(t, Stats{Active: 4, Cancelled: 1}, view.Stats)
	assert.Equal(t, Stats{Active: 3, Cancelled: 1}, view.MonthStats)

	tenth := view.Cells[6+9]
	assert.Equal(t, "2025-06-10", tenth.Date)
	assert.True(t, tenth.IsSelected)
	assert.Equal(t, 2, tenth.Active)
	assert.Equal(t, 1, tenth.Cancelled)

	twelfth := view.Cells[6+11]
	assert.True(t, twelfth.IsToday)

	require.Len(t, view.SelectedBookings, 3)
	assert.Equal(t, "b", view.SelectedBookings[0].ID)
	assert.Equal(t, "a", view.SelectedBookings[1].ID)
	assert.Equal(t, "e", view.SelectedBookings[2].ID)
}

func TestBuildMonthViewDefaultsSelectionToToday(t *testing.T) {
	view := BuildMonthView(nil, ViewInput{
		Month:  Month{Year: 2025, Month: time.June},
		Filter: Filter{CourtID: "c9"},
		Today:  "2025-06-03",
	})
	assert.Equal(t, "2025-06-03", view.Selected)
	assert.True(t, view.HasFilters)
	assert.NotNil(t, view.SelectedBookings)
	assert.Empty(t, view.SelectedBookings)
	assert.True(t, view.Cells[0].Empty)
}
