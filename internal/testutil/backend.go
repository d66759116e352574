package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/preston-bernstein/bookplay-admin/internal/domain"
)

// Fake backend credentials.
const (
	FakeEmail    = "owner@example.com"
	FakePassword = "correct-horse"
	FakeToken    = "fake-access-token"
)

// FakeBackend is an in-memory stand-in for the booking REST API. Every route
// except login and register requires FakeToken as a bearer token.
type FakeBackend struct {
	server *httptest.Server

	mu         sync.Mutex
	user       domain.User
	businesses []domain.Business
	bookings   map[string][]domain.Booking
	courts     map[string][]domain.Court
	rules      map[string][]domain.AvailabilityRule
	attached   map[string][]string
	exceptions map[string][]domain.ExceptionRule
	members    map[string][]domain.BusinessUser
	failures   map[string]int
	requests   []string
}

// NewFakeBackend starts a fake backend that is closed with the test.
func NewFakeBackend(t testing.TB) *FakeBackend {
	t.Helper()
	f := &FakeBackend{
		user: domain.User{
			ID:         uuid.NewString(),
			Name:       "Owner",
			UserName:   "owner",
			Email:      FakeEmail,
			GlobalRole: domain.GlobalRoleMaster,
		},
		bookings:   make(map[string][]domain.Booking),
		courts:     make(map[string][]domain.Court),
		rules:      make(map[string][]domain.AvailabilityRule),
		attached:   make(map[string][]string),
		exceptions: make(map[string][]domain.ExceptionRule),
		members:    make(map[string][]domain.BusinessUser),
		failures:   make(map[string]int),
	}
	f.server = httptest.NewServer(f.routes())
	t.Cleanup(f.server.Close)
	return f
}

// URL is the API base URL to configure the client with.
func (f *FakeBackend) URL() string {
	return f.server.URL + "/api"
}

// FailOnce makes the next request matching "METHOD /api/path" answer status.
func (f *FakeBackend) FailOnce(method, path string, status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[method+" "+path] = status
}

// Requests returns the "METHOD path" of every request received.
func (f *FakeBackend) Requests() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.requests)
}

// SeedBusiness adds a business owned by the fake user.
func (f *FakeBackend) SeedBusiness(name, timezone string) domain.Business {
	f.mu.Lock()
	defer f.mu.Unlock()
	b := domain.Business{ID: uuid.NewString(), Name: name, Timezone: timezone, SlotDuration: 60}
	f.businesses = append(f.businesses, b)
	return b
}

// SeedCourt adds a court to a business.
func (f *FakeBackend) SeedCourt(businessID, name string) domain.Court {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := domain.Court{ID: uuid.NewString(), BusinessID: businessID, Name: name}
	f.courts[businessID] = append(f.courts[businessID], c)
	return c
}

// SeedBooking adds a booking to a business.
func (f *FakeBackend) SeedBooking(b domain.Booking) domain.Booking {
	f.mu.Lock()
	defer f.mu.Unlock()
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.Status == "" {
		b.Status = domain.BookingActive
	}
	f.bookings[b.BusinessID] = append(f.bookings[b.BusinessID], b)
	return b
}

// SeedRule adds a weekly availability rule to a business.
func (f *FakeBackend) SeedRule(businessID string, r domain.AvailabilityRule) domain.AvailabilityRule {
	f.mu.Lock()
	defer f.mu.Unlock()
	r.ID = uuid.NewString()
	r.BusinessID = businessID
	f.rules[businessID] = append(f.rules[businessID], r)
	return r
}

// SeedException adds an exception rule to a business.
func (f *FakeBackend) SeedException(businessID string, r domain.ExceptionRule) domain.ExceptionRule {
	f.mu.Lock()
	defer f.mu.Unlock()
	r.ID = uuid.NewString()
	r.BusinessID = businessID
	f.exceptions[businessID] = append(f.exceptions[businessID], r)
	return r
}

// AttachedRuleIDs returns the weekly rules attached to a court.
func (f *FakeBackend) AttachedRuleIDs(courtID string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.attached[courtID])
}

func (f *FakeBackend) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", f.login)
	mux.HandleFunc("POST /api/auth/register", f.register)
	mux.HandleFunc("GET /api/auth/me", f.authed(f.me))

	mux.HandleFunc("GET /api/businesses", f.authed(f.listBusinesses))
	mux.HandleFunc("POST /api/businesses", f.authed(f.createBusiness))
	mux.HandleFunc("GET /api/businesses/{id}", f.authed(f.getBusiness))
	mux.HandleFunc("PATCH /api/businesses/{id}", f.authed(f.updateBusiness))

	mux.HandleFunc("GET /api/businesses/{id}/bookings", f.authed(f.listBookings))
	mux.HandleFunc("POST /api/businesses/{id}/bookings", f.authed(f.createBooking))
	mux.HandleFunc("GET /api/businesses/{id}/bookings/{bookingID}", f.authed(f.getBooking))
	mux.HandleFunc("PATCH /api/businesses/{id}/bookings/{bookingID}/cancel", f.authed(f.cancelBooking))

	mux.HandleFunc("GET /api/businesses/{id}/courts", f.authed(f.listCourts))
	mux.HandleFunc("POST /api/businesses/{id}/courts", f.authed(f.createCourt))
	mux.HandleFunc("DELETE /api/businesses/{id}/courts/{courtID}", f.authed(f.deleteCourt))

	mux.HandleFunc("GET /api/businesses/{id}/availability-rules", f.authed(f.listRules))
	mux.HandleFunc("POST /api/businesses/{id}/availability-rules", f.authed(f.createRule))
	mux.HandleFunc("DELETE /api/businesses/{id}/availability-rules/{ruleID}", f.authed(f.deleteRule))
	mux.HandleFunc("GET /api/businesses/{id}/exception-rules", f.authed(f.listExceptions))
	mux.HandleFunc("POST /api/businesses/{id}/exception-rules", f.authed(f.createException))
	mux.HandleFunc("PUT /api/businesses/{id}/exception-rules/{ruleID}", f.authed(f.updateException))

	mux.HandleFunc("GET /api/courts/{courtID}/availability-rules", f.authed(f.listAttached))
	mux.HandleFunc("POST /api/courts/{courtID}/availability-rules", f.authed(f.attach))
	mux.HandleFunc("DELETE /api/courts/{courtID}/availability-rules/{ruleID}", f.authed(f.detach))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + r.URL.Path
		f.mu.Lock()
		f.requests = append(f.requests, key)
		status, fail := f.failures[key]
		delete(f.failures, key)
		f.mu.Unlock()
		if fail {
			writeFake(w, status, map[string]string{"message": http.StatusText(status)})
			return
		}
		mux.ServeHTTP(w, r)
	})
}

func (f *FakeBackend) authed(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+FakeToken {
			writeFake(w, http.StatusUnauthorized, map[string]string{"message": "Unauthorized"})
			return
		}
		next(w, r)
	}
}

func (f *FakeBackend) login(w http.ResponseWriter, r *http.Request) {
	var in domain.LoginRequest
	if !readFake(w, r, &in) {
		return
	}
	if in.Username != FakeEmail || in.Password != FakePassword {
		writeFake(w, http.StatusUnauthorized, map[string]string{"message": "Invalid credentials"})
		return
	}
	writeFake(w, http.StatusOK, domain.LoginResponse{AccessToken: FakeToken})
}

func (f *FakeBackend) register(w http.ResponseWriter, r *http.Request) {
	var in domain.RegisterRequest
	if !readFake(w, r, &in) {
		return
	}
	f.mu.Lock()
	f.user.Name = in.Name
	f.user.UserName = in.UserName
	f.user.Email = in.Email
	user := f.user
	f.mu.Unlock()
	writeFake(w, http.StatusCreated, domain.RegisterResponse{
		User:        domain.AuthUser{ID: user.ID, Name: user.Name, Email: user.Email, GlobalRole: string(user.GlobalRole)},
		AccessToken: FakeToken,
	})
}

func (f *FakeBackend) me(w http.ResponseWriter, _ *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	writeFake(w, http.StatusOK, f.user)
}

func (f *FakeBackend) listBusinesses(w http.ResponseWriter, _ *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	writeFake(w, http.StatusOK, nonNil(f.businesses))
}

func (f *FakeBackend) createBusiness(w http.ResponseWriter, r *http.Request) {
	var in domain.CreateBusinessInput
	if !readFake(w, r, &in) {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	b := domain.Business{ID: uuid.NewString(), Name: in.Name, Timezone: in.Timezone, SlotDuration: in.SlotDuration, CreatedAt: time.Now().UTC()}
	f.businesses = append(f.businesses, b)
	writeFake(w, http.StatusCreated, b)
}

func (f *FakeBackend) getBusiness(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.businesses {
		if b.ID == r.PathValue("id") {
			writeFake(w, http.StatusOK, b)
			return
		}
	}
	writeFake(w, http.StatusNotFound, map[string]string{"message": "Business not found"})
}

func (f *FakeBackend) updateBusiness(w http.ResponseWriter, r *http.Request) {
	var in domain.UpdateBusinessInput
	if !readFake(w, r, &in) {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.businesses {
		if f.businesses[i].ID == r.PathValue("id") {
			if in.Name != nil {
				f.businesses[i].Name = *in.Name
			}
			if in.Timezone != nil {
				f.businesses[i].Timezone = *in.Timezone
			}
			writeFake(w, http.StatusOK, f.businesses[i])
			return
		}
	}
	writeFake(w, http.StatusNotFound, map[string]string{"message": "Business not found"})
}

func (f *FakeBackend) listBookings(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	writeFake(w, http.StatusOK, nonNil(f.bookings[r.PathValue("id")]))
}

func (f *FakeBackend) createBooking(w http.ResponseWriter, r *http.Request) {
	var in domain.CreateBookingInput
	if !readFake(w, r, &in) {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	businessID := r.PathValue("id")
	for _, existing := range f.bookings[businessID] {
		if existing.IsActive() && existing.CourtID == in.CourtID && existing.Date == in.Date &&
			existing.StartTime < in.EndTime && in.StartTime < existing.EndTime {
			writeFake(w, http.StatusConflict, map[string]string{"message": "Court already booked for that time"})
			return
		}
	}
	b := domain.Booking{
		ID:         uuid.NewString(),
		CourtID:    in.CourtID,
		BusinessID: businessID,
		GuestName:  in.GuestName,
		Date:       in.Date,
		StartTime:  in.StartTime,
		EndTime:    in.EndTime,
		Status:     domain.BookingActive,
	}
	f.bookings[businessID] = append(f.bookings[businessID], b)
	writeFake(w, http.StatusCreated, b)
}

func (f *FakeBackend) getBooking(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.bookings[r.PathValue("id")] {
		if b.ID == r.PathValue("bookingID") {
			writeFake(w, http.StatusOK, b)
			return
		}
	}
	writeFake(w, http.StatusNotFound, map[string]string{"message": "Booking not found"})
}

func (f *FakeBackend) cancelBooking(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	list := f.bookings[r.PathValue("id")]
	for i := range list {
		if list[i].ID == r.PathValue("bookingID") {
			list[i].Status = domain.BookingCancelled
			writeFake(w, http.StatusOK, list[i])
			return
		}
	}
	writeFake(w, http.StatusNotFound, map[string]string{"message": "Booking not found"})
}

func (f *FakeBackend) listCourts(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	writeFake(w, http.StatusOK, nonNil(f.courts[r.PathValue("id")]))
}

func (f *FakeBackend) createCourt(w http.ResponseWriter, r *http.Request) {
	var in domain.CreateCourtInput
	if !readFake(w, r, &in) {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	businessID := r.PathValue("id")
	c := domain.Court{ID: uuid.NewString(), BusinessID: businessID, Name: in.Name, IsIndoor: in.IsIndoor}
	f.courts[businessID] = append(f.courts[businessID], c)
	writeFake(w, http.StatusCreated, c)
}

func (f *FakeBackend) deleteCourt(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	businessID := r.PathValue("id")
	f.courts[businessID] = slices.DeleteFunc(f.courts[businessID], func(c domain.Court) bool {
		return c.ID == r.PathValue("courtID")
	})
	w.WriteHeader(http.StatusNoContent)
}

func (f *FakeBackend) listRules(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	writeFake(w, http.StatusOK, nonNil(f.rules[r.PathValue("id")]))
}

func (f *FakeBackend) createRule(w http.ResponseWriter, r *http.Request) {
	var in domain.CreateAvailabilityRuleInput
	if !readFake(w, r, &in) {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	businessID := r.PathValue("id")
	rule := domain.AvailabilityRule{
		ID:         uuid.NewString(),
		BusinessID: businessID,
		Name:       in.Name,
		DayOfWeek:  in.DayOfWeek,
		StartTime:  in.StartTime,
		EndTime:    in.EndTime,
		IsActive:   in.IsActive,
	}
	f.rules[businessID] = append(f.rules[businessID], rule)
	writeFake(w, http.StatusCreated, rule)
}

func (f *FakeBackend) deleteRule(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	businessID, ruleID := r.PathValue("id"), r.PathValue("ruleID")
	f.rules[businessID] = slices.DeleteFunc(f.rules[businessID], func(rule domain.AvailabilityRule) bool {
		return rule.ID == ruleID
	})
	for courtID, ids := range f.attached {
		f.attached[courtID] = slices.DeleteFunc(ids, func(id string) bool { return id == ruleID })
	}
	w.WriteHeader(http.StatusNoContent)
}

func (f *FakeBackend) listExceptions(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	writeFake(w, http.StatusOK, nonNil(f.exceptions[r.PathValue("id")]))
}

func (f *FakeBackend) createException(w http.ResponseWriter, r *http.Request) {
	var in domain.CreateExceptionRuleInput
	if !readFake(w, r, &in) {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	businessID := r.PathValue("id")
	rule := domain.ExceptionRule{
		ID:          uuid.NewString(),
		BusinessID:  businessID,
		Date:        in.Date,
		StartTime:   in.StartTime,
		EndTime:     in.EndTime,
		IsAvailable: in.IsAvailable,
		Reason:      in.Reason,
		Courts:      f.courtRefsLocked(businessID, in.CourtIDs),
	}
	f.exceptions[businessID] = append(f.exceptions[businessID], rule)
	writeFake(w, http.StatusCreated, rule)
}

func (f *FakeBackend) updateException(w http.ResponseWriter, r *http.Request) {
	var in domain.UpdateExceptionRuleInput
	if !readFake(w, r, &in) {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	businessID := r.PathValue("id")
	list := f.exceptions[businessID]
	for i := range list {
		if list[i].ID != r.PathValue("ruleID") {
			continue
		}
		if in.CourtIDs != nil {
			list[i].Courts = f.courtRefsLocked(businessID, *in.CourtIDs)
		}
		if in.IsAvailable != nil {
			list[i].IsAvailable = *in.IsAvailable
		}
		writeFake(w, http.StatusOK, list[i])
		return
	}
	writeFake(w, http.StatusNotFound, map[string]string{"message": "Exception rule not found"})
}

func (f *FakeBackend) listAttached(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := f.attached[r.PathValue("courtID")]
	out := []domain.AvailabilityRule{}
	for _, rules := range f.rules {
		for _, rule := range rules {
			if slices.Contains(ids, rule.ID) {
				out = append(out, rule)
			}
		}
	}
	writeFake(w, http.StatusOK, out)
}

func (f *FakeBackend) attach(w http.ResponseWriter, r *http.Request) {
	var in domain.AddCourtAvailabilityInput
	if !readFake(w, r, &in) {
		return
	}
	if in.AvailabilityRuleID == "" {
		writeFake(w, http.StatusBadRequest, map[string][]string{"message": {"availabilityRuleId must be a UUID"}})
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	courtID := r.PathValue("courtID")
	if slices.Contains(f.attached[courtID], in.AvailabilityRuleID) {
		writeFake(w, http.StatusConflict, map[string]string{"message": "Rule already assigned"})
		return
	}
	f.attached[courtID] = append(f.attached[courtID], in.AvailabilityRuleID)
	writeFake(w, http.StatusCreated, domain.CourtAvailability{
		ID:                 uuid.NewString(),
		CourtID:            courtID,
		AvailabilityRuleID: in.AvailabilityRuleID,
	})
}

func (f *FakeBackend) detach(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	courtID, ruleID := r.PathValue("courtID"), r.PathValue("ruleID")
	f.attached[courtID] = slices.DeleteFunc(f.attached[courtID], func(id string) bool { return id == ruleID })
	w.WriteHeader(http.StatusNoContent)
}

func (f *FakeBackend) courtRefsLocked(businessID string, ids []string) []domain.CourtRef {
	refs := make([]domain.CourtRef, 0, len(ids))
	for _, id := range ids {
		ref := domain.CourtRef{ID: id}
		for _, c := range f.courts[businessID] {
			if c.ID == id {
				ref.Name = c.Name
			}
		}
		refs = append(refs, ref)
	}
	return refs
}

func readFake(w http.ResponseWriter, r *http.Request, dest any) bool {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		writeFake(w, http.StatusBadRequest, map[string]string{"message": strings.TrimSpace(err.Error())})
		return false
	}
	return true
}

func writeFake(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func nonNil[T any](list []T) []T {
	if list == nil {
		return []T{}
	}
	return list
}
