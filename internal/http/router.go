package http

import (
	nethttp "net/http"

	"github.com/preston-bernstein/bookplay-admin/internal/http/handlers"
)

// NewRouter registers the admin API on a ServeMux.
func NewRouter(h *handlers.Handler) nethttp.Handler {
	mux := nethttp.NewServeMux()
	mux.HandleFunc("GET /health", h.Health)
	mux.HandleFunc("GET /ready", h.Ready)

	mux.HandleFunc("GET /session", h.Session)
	mux.HandleFunc("POST /session/login", h.Login)
	mux.HandleFunc("POST /session/register", h.Register)
	mux.HandleFunc("POST /session/logout", h.Logout)
	mux.HandleFunc("POST /session/refresh", h.RefreshSession)

	mux.HandleFunc("GET /businesses", h.ListBusinesses)
	mux.HandleFunc("POST /businesses", h.CreateBusiness)
	mux.HandleFunc("GET /business", h.CurrentBusiness)
	mux.HandleFunc("PATCH /business", h.UpdateBusiness)
	mux.HandleFunc("GET /members", h.ListMembers)
	mux.HandleFunc("POST /members", h.AddMember)
	mux.HandleFunc("PATCH /members/{userID}", h.UpdateMember)
	mux.HandleFunc("DELETE /members/{userID}", h.RemoveMember)

	mux.HandleFunc("GET /calendar", h.Calendar)
	mux.HandleFunc("GET /bookings", h.ListBookings)
	mux.HandleFunc("POST /bookings", h.CreateBooking)
	mux.HandleFunc("GET /bookings/day/{date}", h.DayBookings)
	mux.HandleFunc("GET /bookings/{bookingID}", h.BookingByID)
	mux.HandleFunc("POST /bookings/{bookingID}/cancel", h.CancelBooking)

	mux.HandleFunc("GET /courts", h.ListCourts)
	mux.HandleFunc("POST /courts", h.CreateCourt)
	mux.HandleFunc("GET /courts/{courtID}", h.CourtByID)
	mux.HandleFunc("PATCH /courts/{courtID}", h.UpdateCourt)
	mux.HandleFunc("DELETE /courts/{courtID}", h.DeleteCourt)
	mux.HandleFunc("GET /courts/{courtID}/schedule", h.CourtSchedule)
	mux.HandleFunc("POST /courts/{courtID}/availability-rules", h.CreateCourtAvailability)
	mux.HandleFunc("POST /courts/{courtID}/availability-rules/{ruleID}/toggle", h.ToggleAvailability)
	mux.HandleFunc("POST /courts/{courtID}/exception-rules", h.CreateCourtException)
	mux.HandleFunc("POST /courts/{courtID}/exception-rules/{ruleID}/toggle", h.ToggleException)

	mux.HandleFunc("GET /availability-rules", h.ListAvailabilityRules)
	mux.HandleFunc("DELETE /availability-rules/{ruleID}", h.DeleteAvailabilityRule)
	mux.HandleFunc("GET /exception-rules", h.ListExceptionRules)
	mux.HandleFunc("DELETE /exception-rules/{ruleID}", h.DeleteExceptionRule)
	return mux
}
