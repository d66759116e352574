package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/preston-bernstein/bookplay-admin/internal/app/bookings"
	"github.com/preston-bernstein/bookplay-admin/internal/app/businesses"
	"github.com/preston-bernstein/bookplay-admin/internal/app/courts"
	"github.com/preston-bernstein/bookplay-admin/internal/assignment"
	"github.com/preston-bernstein/bookplay-admin/internal/bookplay"
	"github.com/preston-bernstein/bookplay-admin/internal/domain"
	"github.com/preston-bernstein/bookplay-admin/internal/querycache"
	"github.com/preston-bernstein/bookplay-admin/internal/refresher"
	"github.com/preston-bernstein/bookplay-admin/internal/session"
	"github.com/preston-bernstein/bookplay-admin/internal/testutil"
	"github.com/preston-bernstein/bookplay-admin/internal/validation"
)

type fixture struct {
	h       *Handler
	backend *testutil.FakeBackend
	session *session.Manager
}

func newFixture(t *testing.T, status func() refresher.Status) *fixture {
	t.Helper()
	backend := testutil.NewFakeBackend(t)
	cache := querycache.New(time.Minute, nil)
	mgr := session.NewManager(session.Config{OnSignOut: cache.Clear})
	client := bookplay.NewClient(bookplay.Config{BaseURL: backend.URL(), Tokens: mgr})
	mgr.SetBackend(client)

	h := NewHandler(Deps{
		Session:    mgr,
		Bookings:   bookings.NewService(client, cache, nil),
		Courts:     courts.NewService(client, cache, nil),
		Businesses: businesses.NewService(client, cache, nil),
		Assignment: assignment.NewService(client, cache, nil),
		Status:     status,
	})
	return &fixture{h: h, backend: backend, session: mgr}
}

func (f *fixture) login(t *testing.T) {
	t.Helper()
	if _, err := f.session.Login(context.Background(), domain.LoginRequest{Username: testutil.FakeEmail, Password: testutil.FakePassword}); err != nil {
		t.Fatalf("login failed: %v", err)
	}
}

func TestHealth(t *testing.T) {
	f := newFixture(t, nil)
	rr := testutil.Serve(http.HandlerFunc(f.h.Health), http.MethodGet, "/health", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp map[string]string
	testutil.DecodeJSON(t, rr, &resp)
	if resp["status"] != "ok" {
		t.Fatalf("expected status ok, got %s", resp["status"])
	}
}

func TestHealthShuttingDown(t *testing.T) {
	f := newFixture(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodGet, "/health", nil).WithContext(ctx)
	rr := testutil.ServeRequest(http.HandlerFunc(f.h.Health), req)
	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
}

func TestReady(t *testing.T) {
	status := refresher.Status{}
	f := newFixture(t, func() refresher.Status { return status })

	rr := testutil.Serve(http.HandlerFunc(f.h.Ready), http.MethodGet, "/ready", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	status = refresher.Status{LastAttempt: time.Now(), ConsecutiveFailures: 1, LastError: "bookings: boom"}
	rr = testutil.Serve(http.HandlerFunc(f.h.Ready), http.MethodGet, "/ready", nil)
	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
	var body errorBody
	testutil.DecodeJSON(t, rr, &body)
	if body.Error != "bookings: boom" {
		t.Fatalf("expected refresher error surfaced, got %q", body.Error)
	}

	status = refresher.Status{LastAttempt: time.Now(), LastSuccess: time.Now()}
	rr = testutil.Serve(http.HandlerFunc(f.h.Ready), http.MethodGet, "/ready", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
}

func TestFailMapsErrors(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"validation", &validation.Error{Fields: []validation.FieldError{{Field: "name", Tag: "required", Message: "name is required"}}}, http.StatusBadRequest, "validation failed"},
		{"unauthenticated", session.ErrUnauthenticated, http.StatusUnauthorized, "not authenticated"},
		{"loading", session.ErrLoading, http.StatusServiceUnavailable, "session is loading"},
		{"no business", session.ErrNoBusiness, http.StatusConflict, "no business has been created yet"},
		{"has business", session.ErrHasBusiness, http.StatusConflict, "a business already exists for this account"},
		{"rule not found", fmt.Errorf("%w: exception rule x", assignment.ErrRuleNotFound), http.StatusNotFound, "rule not found"},
		{"upstream not found", &bookplay.APIError{StatusCode: 404, Message: "Court not found"}, http.StatusNotFound, "Court not found"},
		{"upstream conflict", &bookplay.APIError{StatusCode: 409, Message: "Court already booked"}, http.StatusConflict, "Court already booked"},
		{"upstream 500", &bookplay.APIError{StatusCode: 500}, http.StatusBadGateway, upstreamFallback},
		{"rate limited", &bookplay.RateLimitError{StatusCode: 429, RetryAfter: 3 * time.Second}, http.StatusBadGateway, "the booking backend is rate limiting requests"},
		{"transport", errors.New("dial tcp: connection refused"), http.StatusBadGateway, upstreamFallback},
		{"cancelled", context.Canceled, http.StatusServiceUnavailable, "request cancelled"},
	}

	f := newFixture(t, nil)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			f.h.fail(rr, httptest.NewRequest(http.MethodGet, "/x", nil), tc.err)
			testutil.AssertStatus(t, rr, tc.status)
			var body errorBody
			testutil.DecodeJSON(t, rr, &body)
			if body.Error != tc.msg {
				t.Fatalf("expected %q, got %q", tc.msg, body.Error)
			}
		})
	}
}

func TestFailPartialFailureKeepsRuleIDForAnyCause(t *testing.T) {
	cases := []struct {
		name   string
		cause  error
		status int
	}{
		{"cancelled", context.Canceled, http.StatusBadGateway},
		{"upstream unauthorized", &bookplay.APIError{StatusCode: http.StatusUnauthorized}, http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, nil)
			f.login(t)
			rr := httptest.NewRecorder()
			err := &assignment.PartialFailureError{Step: "assign", RuleID: "rule-9", Err: tc.cause}
			f.h.fail(rr, httptest.NewRequest(http.MethodPost, "/x", nil), err)

			testutil.AssertStatus(t, rr, tc.status)
			var body struct {
				Details partialDetails `json:"details"`
			}
			testutil.DecodeJSON(t, rr, &body)
			if body.Details.RuleID != "rule-9" {
				t.Fatalf("expected orphaned rule id, got %+v", body.Details)
			}
			signedOut := f.session.Snapshot().State == session.StateAnonymous
			if signedOut != (tc.status == http.StatusUnauthorized) {
				t.Fatalf("unexpected session state %s", f.session.Snapshot().State)
			}
		})
	}
}

func TestFailNoBusinessPointsToOnboarding(t *testing.T) {
	f := newFixture(t, nil)
	rr := httptest.NewRecorder()
	f.h.fail(rr, httptest.NewRequest(http.MethodGet, "/courts", nil), session.ErrNoBusiness)

	var body struct {
		Details map[string]string `json:"details"`
	}
	testutil.DecodeJSON(t, rr, &body)
	if body.Details["next"] != "new-account" {
		t.Fatalf("expected new-account hint, got %+v", body.Details)
	}
}

func TestFailRateLimitSetsRetryAfter(t *testing.T) {
	f := newFixture(t, nil)
	rr := httptest.NewRecorder()
	f.h.fail(rr, httptest.NewRequest(http.MethodGet, "/x", nil), &bookplay.RateLimitError{RetryAfter: 5 * time.Second})
	if got := rr.Header().Get("Retry-After"); got != "5" {
		t.Fatalf("expected Retry-After 5, got %q", got)
	}
}

func TestFailPartialFailureNamesRule(t *testing.T) {
	f := newFixture(t, nil)
	rr := httptest.NewRecorder()
	err := &assignment.PartialFailureError{Step: "assign", RuleID: "rule-1", Err: errors.New("boom")}
	f.h.fail(rr, httptest.NewRequest(http.MethodPost, "/x", nil), err)

	testutil.AssertStatus(t, rr, http.StatusBadGateway)
	var body struct {
		Details partialDetails `json:"details"`
	}
	testutil.DecodeJSON(t, rr, &body)
	if body.Details.RuleID != "rule-1" || body.Details.Step != "assign" {
		t.Fatalf("unexpected details %+v", body.Details)
	}
}

func TestFailUpstreamUnauthorizedSignsOut(t *testing.T) {
	f := newFixture(t, nil)
	f.login(t)
	if !f.session.Snapshot().IsAuthenticated() {
		t.Fatalf("expected authenticated session")
	}

	rr := httptest.NewRecorder()
	f.h.fail(rr, httptest.NewRequest(http.MethodGet, "/x", nil), &bookplay.APIError{StatusCode: 401})

	testutil.AssertStatus(t, rr, http.StatusUnauthorized)
	if f.session.Snapshot().State != session.StateAnonymous {
		t.Fatalf("expected session signed out")
	}
}

func TestBusinessRoutesRequireSession(t *testing.T) {
	f := newFixture(t, nil)

	rr := testutil.Serve(http.HandlerFunc(f.h.ListCourts), http.MethodGet, "/courts", nil)
	testutil.AssertStatus(t, rr, http.StatusUnauthorized)

	f.login(t)
	rr = testutil.Serve(http.HandlerFunc(f.h.ListCourts), http.MethodGet, "/courts", nil)
	testutil.AssertStatus(t, rr, http.StatusConflict)
	if got := len(f.backend.Requests()); got != 3 {
		t.Fatalf("expected only login/me/businesses calls, got %d", got)
	}
}

func TestDayBookingsRejectsBadDate(t *testing.T) {
	f := newFixture(t, nil)
	f.backend.SeedBusiness("Club", "UTC")
	f.login(t)

	req := httptest.NewRequest(http.MethodGet, "/bookings/day/14-06-2025", nil)
	req.SetPathValue("date", "14-06-2025")
	rr := testutil.ServeRequest(http.HandlerFunc(f.h.DayBookings), req)
	testutil.AssertStatus(t, rr, http.StatusBadRequest)
}

func TestCalendarRejectsBadQuery(t *testing.T) {
	f := newFixture(t, nil)
	f.backend.SeedBusiness("Club", "UTC")
	f.login(t)

	for _, target := range []string{"/calendar?month=2025-13", "/calendar?date=tomorrow", "/calendar?from=2025-06-01&to=June"} {
		rr := testutil.Serve(http.HandlerFunc(f.h.Calendar), http.MethodGet, target, nil)
		testutil.AssertStatus(t, rr, http.StatusBadRequest)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	f := newFixture(t, nil)
	body := `{"username":"owner@example.com","password":"wrong"}`
	rr := testutil.Serve(http.HandlerFunc(f.h.Login), http.MethodPost, "/session/login", strings.NewReader(body))
	testutil.AssertStatus(t, rr, http.StatusUnauthorized)

	var resp errorBody
	testutil.DecodeJSON(t, rr, &resp)
	if resp.Error != "invalid email or password" {
		t.Fatalf("unexpected error %q", resp.Error)
	}
}

func TestLoginValidatesBody(t *testing.T) {
	f := newFixture(t, nil)
	rr := testutil.Serve(http.HandlerFunc(f.h.Login), http.MethodPost, "/session/login", strings.NewReader(`{"username":""}`))
	testutil.AssertStatus(t, rr, http.StatusBadRequest)
	if got := len(f.backend.Requests()); got != 0 {
		t.Fatalf("invalid login must not reach the backend, got %d requests", got)
	}
}
