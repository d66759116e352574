package assignment

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/preston-bernstein/bookplay-admin/internal/domain"
	"github.com/preston-bernstein/bookplay-admin/internal/logging"
	"github.com/preston-bernstein/bookplay-admin/internal/querycache"
	"github.com/preston-bernstein/bookplay-admin/internal/validation"
)

// Backend is the slice of the REST client the assignment flows need.
type Backend interface {
	ListAvailabilityRules(ctx context.Context, businessID string) ([]domain.AvailabilityRule, error)
	CreateAvailabilityRule(ctx context.Context, businessID string, in domain.CreateAvailabilityRuleInput) (domain.AvailabilityRule, error)
	DeleteAvailabilityRule(ctx context.Context, businessID, ruleID string) error
	ListCourtAvailabilityRules(ctx context.Context, courtID string) ([]domain.AvailabilityRule, error)
	AddCourtAvailability(ctx context.Context, courtID string, in domain.AddCourtAvailabilityInput) (domain.CourtAvailability, error)
	RemoveCourtAvailability(ctx context.Context, courtID, ruleID string) error
	ListExceptionRules(ctx context.Context, businessID string) ([]domain.ExceptionRule, error)
	CreateExceptionRule(ctx context.Context, businessID string, in domain.CreateExceptionRuleInput) (domain.ExceptionRule, error)
	UpdateExceptionRule(ctx context.Context, businessID, ruleID string, in domain.UpdateExceptionRuleInput) (domain.ExceptionRule, error)
	DeleteExceptionRule(ctx context.Context, businessID, ruleID string) error
}

// Service runs the court assignment flows. No local state is mutated before
// the backend confirms a change; a failed call leaves the cache untouched.
type Service struct {
	backend Backend
	cache   *querycache.Cache
	logger  *slog.Logger
}

// NewService constructs a Service.
func NewService(backend Backend, cache *querycache.Cache, logger *slog.Logger) *Service {
	return &Service{backend: backend, cache: cache, logger: logger}
}

// ToggleResult is the court's assignment state after a toggle.
type ToggleResult struct {
	RuleID   string `json:"ruleId"`
	CourtID  string `json:"courtId"`
	Assigned bool   `json:"assigned"`
}

// AttachedRules returns the weekly rules attached to a court.
func (s *Service) AttachedRules(ctx context.Context, courtID string) (RuleSet, error) {
	attached, err := querycache.Fetch(ctx, s.cache, querycache.CourtAvailabilityKey(courtID),
		func(ctx context.Context) ([]domain.AvailabilityRule, error) {
			return s.backend.ListCourtAvailabilityRules(ctx, courtID)
		})
	if err != nil {
		return nil, err
	}
	return NewRuleSet(attached), nil
}

// ExceptionRules returns the business's exception rules.
func (s *Service) ExceptionRules(ctx context.Context, businessID string) ([]domain.ExceptionRule, error) {
	return querycache.Fetch(ctx, s.cache, querycache.ExceptionRulesKey(businessID),
		func(ctx context.Context) ([]domain.ExceptionRule, error) {
			return s.backend.ListExceptionRules(ctx, businessID)
		})
}

// AvailabilityRules returns the business's weekly rules.
func (s *Service) AvailabilityRules(ctx context.Context, businessID string) ([]domain.AvailabilityRule, error) {
	return querycache.Fetch(ctx, s.cache, querycache.AvailabilityRulesKey(businessID),
		func(ctx context.Context) ([]domain.AvailabilityRule, error) {
			return s.backend.ListAvailabilityRules(ctx, businessID)
		})
}

// Schedule builds the court's schedule view.
func (s *Service) Schedule(ctx context.Context, businessID, courtID string) (CourtSchedule, error) {
	rules, err := s.AvailabilityRules(ctx, businessID)
	if err != nil {
		return CourtSchedule{}, err
	}
	attached, err := s.AttachedRules(ctx, courtID)
	if err != nil {
		return CourtSchedule{}, err
	}
	exceptions, err := s.ExceptionRules(ctx, businessID)
	if err != nil {
		return CourtSchedule{}, err
	}
	return BuildCourtSchedule(courtID, rules, attached, exceptions), nil
}

// ToggleWeekly attaches the rule when absent and detaches it when present.
func (s *Service) ToggleWeekly(ctx context.Context, courtID, ruleID string) (ToggleResult, error) {
	set, err := s.AttachedRules(ctx, courtID)
	if err != nil {
		return ToggleResult{}, err
	}

	assigned := set.IsRuleAssigned(ruleID)
	if assigned {
		err = s.backend.RemoveCourtAvailability(ctx, courtID, ruleID)
	} else {
		_, err = s.backend.AddCourtAvailability(ctx, courtID, domain.AddCourtAvailabilityInput{AvailabilityRuleID: ruleID})
	}
	if err != nil {
		logging.Warn(s.logger, "weekly rule toggle failed",
			logging.FieldCourtID, courtID,
			logging.FieldRuleID, ruleID,
			"error", err,
		)
		return ToggleResult{}, err
	}

	s.cache.Invalidate(querycache.CourtAvailabilityKey(courtID))
	return ToggleResult{RuleID: ruleID, CourtID: courtID, Assigned: !assigned}, nil
}

// ToggleException adds or removes the court from the exception's court list
// by submitting the whole recomputed list. There is no version check: two
// concurrent toggles on one rule race and the last write wins.
func (s *Service) ToggleException(ctx context.Context, businessID, courtID, ruleID string) (ToggleResult, error) {
	rules, err := s.ExceptionRules(ctx, businessID)
	if err != nil {
		return ToggleResult{}, err
	}
	rule, ok := findException(rules, ruleID)
	if !ok {
		return ToggleResult{}, fmt.Errorf("%w: exception rule %s", ErrRuleNotFound, ruleID)
	}

	assigned := IsExceptionAssigned(rule, courtID)
	next := NextCourtIDs(rule.CourtIDs(), courtID, !assigned)
	if _, err := s.backend.UpdateExceptionRule(ctx, businessID, ruleID, domain.UpdateExceptionRuleInput{CourtIDs: &next}); err != nil {
		logging.Warn(s.logger, "exception toggle failed",
			logging.FieldCourtID, courtID,
			logging.FieldRuleID, ruleID,
			"error", err,
		)
		return ToggleResult{}, err
	}

	s.invalidateException(businessID, ruleID)
	s.cache.Invalidate(querycache.CourtExceptionsKey(courtID))
	return ToggleResult{RuleID: ruleID, CourtID: courtID, Assigned: !assigned}, nil
}

// CreateRuleAndAssign creates a weekly rule and attaches it to the court.
// The two requests are not compensated: when attaching fails the created rule
// is returned together with a *PartialFailureError naming it.
func (s *Service) CreateRuleAndAssign(ctx context.Context, businessID, courtID string, in domain.CreateAvailabilityRuleInput) (domain.AvailabilityRule, error) {
	if err := validation.Struct(in); err != nil {
		return domain.AvailabilityRule{}, err
	}

	rule, err := s.backend.CreateAvailabilityRule(ctx, businessID, in)
	if err != nil {
		return domain.AvailabilityRule{}, err
	}
	s.cache.Invalidate(querycache.AvailabilityRulesKey(businessID))

	if _, err := s.backend.AddCourtAvailability(ctx, courtID, domain.AddCourtAvailabilityInput{AvailabilityRuleID: rule.ID}); err != nil {
		logging.Error(s.logger, "rule created but not assigned", err,
			logging.FieldBusinessID, businessID,
			logging.FieldCourtID, courtID,
			logging.FieldRuleID, rule.ID,
		)
		return rule, &PartialFailureError{Step: "assign", RuleID: rule.ID, Err: err}
	}
	s.cache.Invalidate(querycache.CourtAvailabilityKey(courtID))
	return rule, nil
}

// CreateExceptionForCourt creates an exception rule already scoped to the
// court. Any court ids in the input are replaced.
func (s *Service) CreateExceptionForCourt(ctx context.Context, businessID, courtID string, in domain.CreateExceptionRuleInput) (domain.ExceptionRule, error) {
	in.CourtIDs = []string{courtID}
	if err := validation.Struct(in); err != nil {
		return domain.ExceptionRule{}, err
	}

	rule, err := s.backend.CreateExceptionRule(ctx, businessID, in)
	if err != nil {
		return domain.ExceptionRule{}, err
	}
	s.cache.Invalidate(querycache.ExceptionRulesKey(businessID))
	s.cache.Invalidate(querycache.CourtExceptionsKey(courtID))
	return rule, nil
}

// DeleteAvailabilityRule removes a weekly rule from the business. Every
// court's attachment list may reference it, so all of them are dropped.
func (s *Service) DeleteAvailabilityRule(ctx context.Context, businessID, ruleID string) error {
	if err := s.backend.DeleteAvailabilityRule(ctx, businessID, ruleID); err != nil {
		return err
	}
	s.cache.Invalidate(querycache.AvailabilityRulesKey(businessID))
	s.cache.Invalidate(querycache.AvailabilityRuleKey(ruleID))
	s.cache.Invalidate("court")
	return nil
}

// DeleteExceptionRule removes an exception rule from the business.
func (s *Service) DeleteExceptionRule(ctx context.Context, businessID, ruleID string) error {
	if err := s.backend.DeleteExceptionRule(ctx, businessID, ruleID); err != nil {
		return err
	}
	s.invalidateException(businessID, ruleID)
	return nil
}

func (s *Service) invalidateException(businessID, ruleID string) {
	s.cache.Invalidate(querycache.ExceptionRuleKey(ruleID))
	s.cache.Invalidate(querycache.ExceptionRulesKey(businessID))
}

func findException(rules []domain.ExceptionRule, ruleID string) (domain.ExceptionRule, bool) {
	for _, r := range rules {
		if r.ID == ruleID {
			return r, true
		}
	}
	return domain.ExceptionRule{}, false
}
