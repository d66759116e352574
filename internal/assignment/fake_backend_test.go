package assignment

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/preston-bernstein/bookplay-admin/internal/domain"
)

// fakeBackend keeps court assignments in memory the way the REST backend does.
type fakeBackend struct {
	mu         sync.Mutex
	rules      []domain.AvailabilityRule
	attached   map[string][]string
	exceptions []domain.ExceptionRule
	courtNames map[string]string

	listAttachedCalls int
	updates           []domain.UpdateExceptionRuleInput
	created           []domain.CreateAvailabilityRuleInput
	createdExceptions []domain.CreateExceptionRuleInput

	failAdd    error
	failRemove error
	failUpdate error
	nextRuleID string
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		attached:   make(map[string][]string),
		courtNames: make(map[string]string),
	}
}

func (f *fakeBackend) ListAvailabilityRules(context.Context, string) ([]domain.AvailabilityRule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.rules), nil
}

func (f *fakeBackend) CreateAvailabilityRule(_ context.Context, businessID string, in domain.CreateAvailabilityRuleInput) (domain.AvailabilityRule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, in)
	rule := domain.AvailabilityRule{
		ID:         f.nextRuleID,
		BusinessID: businessID,
		Name:       in.Name,
		DayOfWeek:  in.DayOfWeek,
		StartTime:  in.StartTime,
		EndTime:    in.EndTime,
		IsActive:   in.IsActive,
	}
	f.rules = append(f.rules, rule)
	return rule, nil
}

func (f *fakeBackend) DeleteAvailabilityRule(_ context.Context, _ string, ruleID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rules = slices.DeleteFunc(f.rules, func(r domain.AvailabilityRule) bool { return r.ID == ruleID })
	return nil
}

func (f *fakeBackend) ListCourtAvailabilityRules(_ context.Context, courtID string) ([]domain.AvailabilityRule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listAttachedCalls++
	out := make([]domain.AvailabilityRule, 0)
	for _, id := range f.attached[courtID] {
		out = append(out, domain.AvailabilityRule{ID: id})
	}
	return out, nil
}

func (f *fakeBackend) AddCourtAvailability(_ context.Context, courtID string, in domain.AddCourtAvailabilityInput) (domain.CourtAvailability, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAdd != nil {
		return domain.CourtAvailability{}, f.failAdd
	}
	f.attached[courtID] = append(f.attached[courtID], in.AvailabilityRuleID)
	return domain.CourtAvailability{CourtID: courtID, AvailabilityRuleID: in.AvailabilityRuleID}, nil
}

func (f *fakeBackend) RemoveCourtAvailability(_ context.Context, courtID, ruleID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failRemove != nil {
		return f.failRemove
	}
	f.attached[courtID] = slices.DeleteFunc(f.attached[courtID], func(id string) bool { return id == ruleID })
	return nil
}

func (f *fakeBackend) ListExceptionRules(context.Context, string) ([]domain.ExceptionRule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.exceptions), nil
}

func (f *fakeBackend) CreateExceptionRule(_ context.Context, businessID string, in domain.CreateExceptionRuleInput) (domain.ExceptionRule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createdExceptions = append(f.createdExceptions, in)
	rule := domain.ExceptionRule{ID: "new-exception", BusinessID: businessID, Date: in.Date, IsAvailable: in.IsAvailable}
	for _, id := range in.CourtIDs {
		rule.Courts = append(rule.Courts, domain.CourtRef{ID: id, Name: f.courtNames[id]})
	}
	f.exceptions = append(f.exceptions, rule)
	return rule, nil
}

func (f *fakeBackend) UpdateExceptionRule(_ context.Context, _ string, ruleID string, in domain.UpdateExceptionRuleInput) (domain.ExceptionRule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failUpdate != nil {
		return domain.ExceptionRule{}, f.failUpdate
	}
	f.updates = append(f.updates, in)
	for i, r := range f.exceptions {
		if r.ID != ruleID {
			continue
		}
		if in.CourtIDs != nil {
			r.Courts = nil
			for _, id := range *in.CourtIDs {
				r.Courts = append(r.Courts, domain.CourtRef{ID: id, Name: f.courtNames[id]})
			}
		}
		f.exceptions[i] = r
		return r, nil
	}
	return domain.ExceptionRule{}, errors.New("not found")
}

func (f *fakeBackend) DeleteExceptionRule(_ context.Context, _ string, ruleID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.exceptions = slices.DeleteFunc(f.exceptions, func(r domain.ExceptionRule) bool { return r.ID == ruleID })
	return nil
}
