package http

import (
	"bytes"
	"encoding/json"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/preston-bernstein/bookplay-admin/internal/app/bookings"
	"github.com/preston-bernstein/bookplay-admin/internal/app/businesses"
	"github.com/preston-bernstein/bookplay-admin/internal/app/courts"
	"github.com/preston-bernstein/bookplay-admin/internal/assignment"
	"github.com/preston-bernstein/bookplay-admin/internal/bookplay"
	"github.com/preston-bernstein/bookplay-admin/internal/calendar"
	"github.com/preston-bernstein/bookplay-admin/internal/domain"
	"github.com/preston-bernstein/bookplay-admin/internal/http/handlers"
	"github.com/preston-bernstein/bookplay-admin/internal/querycache"
	"github.com/preston-bernstein/bookplay-admin/internal/session"
	"github.com/preston-bernstein/bookplay-admin/internal/testutil"
)

type harness struct {
	t       *testing.T
	router  nethttp.Handler
	backend *testutil.FakeBackend
	cache   *querycache.Cache
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	backend := testutil.NewFakeBackend(t)
	cache := querycache.New(time.Minute, nil)
	mgr := session.NewManager(session.Config{OnSignOut: cache.Clear})
	client := bookplay.NewClient(bookplay.Config{BaseURL: backend.URL(), Tokens: mgr})
	mgr.SetBackend(client)

	h := handlers.NewHandler(handlers.Deps{
		Session:    mgr,
		Bookings:   bookings.NewService(client, cache, nil),
		Courts:     courts.NewService(client, cache, nil),
		Businesses: businesses.NewService(client, cache, nil),
		Assignment: assignment.NewService(client, cache, nil),
	})
	return &harness{t: t, router: NewRouter(h), backend: backend, cache: cache}
}

func (h *harness) do(method, target string, body any) *httptest.ResponseRecorder {
	h.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			h.t.Fatalf("marshal: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	return testutil.Serve(h.router, method, target, reader)
}

func (h *harness) login() session.Snapshot {
	h.t.Helper()
	rr := h.do(nethttp.MethodPost, "/session/login", domain.LoginRequest{Username: testutil.FakeEmail, Password: testutil.FakePassword})
	testutil.AssertStatus(h.t, rr, nethttp.StatusOK)
	var snap session.Snapshot
	testutil.DecodeJSON(h.t, rr, &snap)
	return snap
}

func TestRouterHealthAndMethods(t *testing.T) {
	h := newHarness(t)

	testutil.AssertStatus(t, h.do(nethttp.MethodGet, "/health", nil), nethttp.StatusOK)
	testutil.AssertStatus(t, h.do(nethttp.MethodGet, "/ready", nil), nethttp.StatusOK)
	testutil.AssertStatus(t, h.do(nethttp.MethodPost, "/health", nil), nethttp.StatusMethodNotAllowed)
	testutil.AssertStatus(t, h.do(nethttp.MethodGet, "/nope", nil), nethttp.StatusNotFound)
}

func TestRouterSessionGate(t *testing.T) {
	h := newHarness(t)

	var snap session.Snapshot
	rr := h.do(nethttp.MethodGet, "/session", nil)
	testutil.DecodeJSON(t, rr, &snap)
	if snap.State != session.StateAnonymous {
		t.Fatalf("expected anonymous session, got %s", snap.State)
	}
	testutil.AssertStatus(t, h.do(nethttp.MethodGet, "/bookings", nil), nethttp.StatusUnauthorized)

	snap = h.login()
	if snap.State != session.StateAuthenticated || snap.HasBusiness {
		t.Fatalf("expected authenticated session without business, got %+v", snap)
	}
	testutil.AssertStatus(t, h.do(nethttp.MethodGet, "/calendar", nil), nethttp.StatusConflict)

	rr = h.do(nethttp.MethodPost, "/businesses", domain.CreateBusinessInput{Name: "Club Norte", Timezone: "Europe/Madrid", SlotDuration: 60})
	testutil.AssertStatus(t, rr, nethttp.StatusCreated)
	rr = h.do(nethttp.MethodPost, "/businesses", domain.CreateBusinessInput{Name: "Club Sur", Timezone: "Europe/Madrid", SlotDuration: 60})
	testutil.AssertStatus(t, rr, nethttp.StatusConflict)

	rr = h.do(nethttp.MethodGet, "/session", nil)
	testutil.DecodeJSON(t, rr, &snap)
	if !snap.HasBusiness || snap.Business.Name != "Club Norte" {
		t.Fatalf("expected new business active, got %+v", snap)
	}

	rr = h.do(nethttp.MethodPost, "/session/logout", nil)
	testutil.AssertStatus(t, rr, nethttp.StatusOK)
	testutil.AssertStatus(t, h.do(nethttp.MethodGet, "/courts", nil), nethttp.StatusUnauthorized)
	if h.cache.Len() != 0 {
		t.Fatalf("expected cache cleared on logout")
	}
}

func TestRouterBookingFlow(t *testing.T) {
	h := newHarness(t)
	business := h.backend.SeedBusiness("Club", "UTC")
	court := h.backend.SeedCourt(business.ID, "Center")
	h.backend.SeedBooking(domain.Booking{BusinessID: business.ID, CourtID: court.ID, Date: "2025-06-14", StartTime: "09:00", EndTime: "10:00"})
	h.login()

	rr := h.do(nethttp.MethodPost, "/bookings", domain.CreateBookingInput{CourtID: court.ID, Date: "2025-06-14", StartTime: "08:00", EndTime: "09:00"})
	testutil.AssertStatus(t, rr, nethttp.StatusCreated)
	var created domain.Booking
	testutil.DecodeJSON(t, rr, &created)

	rr = h.do(nethttp.MethodPost, "/bookings", domain.CreateBookingInput{CourtID: court.ID, Date: "2025-06-14", StartTime: "08:30", EndTime: "09:30"})
	testutil.AssertStatus(t, rr, nethttp.StatusConflict)

	rr = h.do(nethttp.MethodPost, "/bookings", domain.CreateBookingInput{CourtID: court.ID, Date: "2025-06-14", StartTime: "10:00", EndTime: "09:00"})
	testutil.AssertStatus(t, rr, nethttp.StatusBadRequest)

	rr = h.do(nethttp.MethodGet, "/calendar?month=2025-06&date=2025-06-14", nil)
	testutil.AssertStatus(t, rr, nethttp.StatusOK)
	var view calendar.MonthView
	testutil.DecodeJSON(t, rr, &view)
	if len(view.Cells) != 42 || len(view.SelectedBookings) != 2 {
		t.Fatalf("unexpected calendar: cells=%d selected=%d", len(view.Cells), len(view.SelectedBookings))
	}
	if view.SelectedBookings[0].StartTime != "08:00" {
		t.Fatalf("expected day ordered by start, got %s first", view.SelectedBookings[0].StartTime)
	}

	rr = h.do(nethttp.MethodPost, "/bookings/"+created.ID+"/cancel", nil)
	testutil.AssertStatus(t, rr, nethttp.StatusOK)

	rr = h.do(nethttp.MethodGet, "/bookings/day/2025-06-14", nil)
	testutil.AssertStatus(t, rr, nethttp.StatusOK)
	var day []domain.Booking
	testutil.DecodeJSON(t, rr, &day)
	if len(day) != 2 || day[0].Status != domain.BookingCancelled {
		t.Fatalf("expected cancelled booking kept in day list, got %+v", day)
	}
}

func TestRouterAssignmentFlow(t *testing.T) {
	h := newHarness(t)
	business := h.backend.SeedBusiness("Club", "UTC")
	court := h.backend.SeedCourt(business.ID, "Center")
	other := h.backend.SeedCourt(business.ID, "North")
	h.login()

	rr := h.do(nethttp.MethodPost, "/courts/"+court.ID+"/availability-rules", domain.CreateAvailabilityRuleInput{
		Name: "Weekday mornings", DayOfWeek: 1, StartTime: "08:00", EndTime: "12:00", IsActive: true,
	})
	testutil.AssertStatus(t, rr, nethttp.StatusCreated)
	var rule domain.AvailabilityRule
	testutil.DecodeJSON(t, rr, &rule)
	if got := h.backend.AttachedRuleIDs(court.ID); len(got) != 1 || got[0] != rule.ID {
		t.Fatalf("expected rule attached, got %v", got)
	}

	rr = h.do(nethttp.MethodGet, "/courts/"+court.ID+"/schedule", nil)
	testutil.AssertStatus(t, rr, nethttp.StatusOK)
	var schedule assignment.CourtSchedule
	testutil.DecodeJSON(t, rr, &schedule)
	if len(schedule.Rules) != 1 || !schedule.Rules[0].Assigned {
		t.Fatalf("expected assigned rule in schedule, got %+v", schedule.Rules)
	}

	rr = h.do(nethttp.MethodPost, "/courts/"+court.ID+"/availability-rules/"+rule.ID+"/toggle", nil)
	testutil.AssertStatus(t, rr, nethttp.StatusOK)
	var toggled assignment.ToggleResult
	testutil.DecodeJSON(t, rr, &toggled)
	if toggled.Assigned || len(h.backend.AttachedRuleIDs(court.ID)) != 0 {
		t.Fatalf("expected rule detached, got %+v", toggled)
	}

	closure := h.backend.SeedException(business.ID, domain.ExceptionRule{
		Date:   "2025-12-25",
		Courts: []domain.CourtRef{{ID: court.ID}, {ID: other.ID}},
	})
	rr = h.do(nethttp.MethodPost, "/courts/"+court.ID+"/exception-rules/"+closure.ID+"/toggle", nil)
	testutil.AssertStatus(t, rr, nethttp.StatusOK)
	testutil.DecodeJSON(t, rr, &toggled)
	if toggled.Assigned {
		t.Fatalf("expected court removed from exception")
	}

	rr = h.do(nethttp.MethodGet, "/exception-rules", nil)
	var exceptions []domain.ExceptionRule
	testutil.DecodeJSON(t, rr, &exceptions)
	if len(exceptions) != 1 || len(exceptions[0].Courts) != 1 || exceptions[0].Courts[0].ID != other.ID {
		t.Fatalf("expected only the other court left, got %+v", exceptions)
	}

	rr = h.do(nethttp.MethodPost, "/courts/"+court.ID+"/exception-rules/missing/toggle", nil)
	testutil.AssertStatus(t, rr, nethttp.StatusNotFound)

	rr = h.do(nethttp.MethodDelete, "/availability-rules/"+rule.ID, nil)
	testutil.AssertStatus(t, rr, nethttp.StatusNoContent)
}

func TestRouterPartialFailureKeepsRule(t *testing.T) {
	h := newHarness(t)
	business := h.backend.SeedBusiness("Club", "UTC")
	court := h.backend.SeedCourt(business.ID, "Center")
	h.login()

	h.backend.FailOnce(nethttp.MethodPost, "/api/courts/"+court.ID+"/availability-rules", nethttp.StatusInternalServerError)
	rr := h.do(nethttp.MethodPost, "/courts/"+court.ID+"/availability-rules", domain.CreateAvailabilityRuleInput{
		Name: "Evenings", DayOfWeek: 5, StartTime: "18:00", EndTime: "22:00",
	})
	testutil.AssertStatus(t, rr, nethttp.StatusBadGateway)

	rr = h.do(nethttp.MethodGet, "/availability-rules", nil)
	var rules []domain.AvailabilityRule
	testutil.DecodeJSON(t, rr, &rules)
	if len(rules) != 1 {
		t.Fatalf("expected created rule to remain, got %d", len(rules))
	}
}

func TestRouterUpstreamUnauthorizedSignsOut(t *testing.T) {
	h := newHarness(t)
	business := h.backend.SeedBusiness("Club", "UTC")
	h.login()

	h.backend.FailOnce(nethttp.MethodGet, "/api/businesses/"+business.ID+"/courts", nethttp.StatusUnauthorized)
	testutil.AssertStatus(t, h.do(nethttp.MethodGet, "/courts", nil), nethttp.StatusUnauthorized)

	var snap session.Snapshot
	testutil.DecodeJSON(t, h.do(nethttp.MethodGet, "/session", nil), &snap)
	if snap.State != session.StateAnonymous {
		t.Fatalf("expected session forced anonymous, got %s", snap.State)
	}
}
