package handlers

import (
	"net/http"
	"strings"

	"github.com/preston-bernstein/bookplay-admin/internal/app/bookings"
	"github.com/preston-bernstein/bookplay-admin/internal/calendar"
	"github.com/preston-bernstein/bookplay-admin/internal/domain"
	"github.com/preston-bernstein/bookplay-admin/internal/timeutil"
)

// Calendar returns the month grid, stats and the selected day's bookings.
func (h *Handler) Calendar(w http.ResponseWriter, r *http.Request) {
	business, ok := h.activeBusiness(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	filter, ok := h.filterFromQuery(w, r)
	if !ok {
		return
	}
	month := strings.TrimSpace(q.Get("month"))
	if month != "" {
		if _, err := calendar.ParseMonth(month); err != nil {
			h.badRequest(w, r, "invalid month, expected YYYY-MM")
			return
		}
	}
	selected := strings.TrimSpace(q.Get("date"))
	if selected != "" && !validDate(selected) {
		h.badRequest(w, r, "invalid date, expected YYYY-MM-DD")
		return
	}

	view, err := h.bookings.Calendar(r.Context(), bookings.CalendarQuery{
		BusinessID: business.ID,
		Month:      month,
		Selected:   selected,
		Filter:     filter,
		Timezone:   business.Timezone,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view, h.logger)
}

// ListBookings returns the filtered bookings, newest first.
func (h *Handler) ListBookings(w http.ResponseWriter, r *http.Request) {
	business, ok := h.activeBusiness(w, r)
	if !ok {
		return
	}
	filter, ok := h.filterFromQuery(w, r)
	if !ok {
		return
	}
	list, err := h.bookings.List(r.Context(), business.ID, filter)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list, h.logger)
}

// DayBookings returns one date's bookings ordered by start time.
func (h *Handler) DayBookings(w http.ResponseWriter, r *http.Request) {
	business, ok := h.activeBusiness(w, r)
	if !ok {
		return
	}
	date := r.PathValue("date")
	if !validDate(date) {
		h.badRequest(w, r, "invalid date, expected YYYY-MM-DD")
		return
	}
	filter, ok := h.filterFromQuery(w, r)
	if !ok {
		return
	}
	day, err := h.bookings.Day(r.Context(), business.ID, date, filter)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, day, h.logger)
}

// BookingByID returns a single booking.
func (h *Handler) BookingByID(w http.ResponseWriter, r *http.Request) {
	business, ok := h.activeBusiness(w, r)
	if !ok {
		return
	}
	booking, err := h.bookings.Get(r.Context(), business.ID, r.PathValue("bookingID"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, booking, h.logger)
}

// CreateBooking books a court for the active business.
func (h *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	business, ok := h.activeBusiness(w, r)
	if !ok {
		return
	}
	var in domain.CreateBookingInput
	if err := decodeJSON(w, r, &in); err != nil {
		h.badRequest(w, r, err.Error())
		return
	}
	booking, err := h.bookings.Create(r.Context(), business.ID, in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, booking, h.logger)
}

// CancelBooking cancels a booking.
func (h *Handler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	business, ok := h.activeBusiness(w, r)
	if !ok {
		return
	}
	booking, err := h.bookings.Cancel(r.Context(), business.ID, r.PathValue("bookingID"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, booking, h.logger)
}

func (h *Handler) filterFromQuery(w http.ResponseWriter, r *http.Request) (calendar.Filter, bool) {
	q := r.URL.Query()
	filter := calendar.Filter{
		CourtID: strings.TrimSpace(q.Get("court")),
		From:    strings.TrimSpace(q.Get("from")),
		To:      strings.TrimSpace(q.Get("to")),
	}
	if (filter.From != "" && !validDate(filter.From)) || (filter.To != "" && !validDate(filter.To)) {
		h.badRequest(w, r, "invalid date range, expected YYYY-MM-DD")
		return calendar.Filter{}, false
	}
	return filter, true
}

func validDate(value string) bool {
	_, err := timeutil.ParseDate(value)
	return err == nil
}
