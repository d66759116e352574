package assignment

import (
	"slices"
	"time"

	"github.com/preston-bernstein/bookplay-admin/internal/domain"
	"github.com/preston-bernstein/bookplay-admin/internal/timeutil"
)

// RuleSet is the set of weekly rule ids the backend reports attached to a
// court. Membership is never inferred from a rule's day of week.
type RuleSet map[string]struct{}

// NewRuleSet indexes the rules attached to a court.
func NewRuleSet(attached []domain.AvailabilityRule) RuleSet {
	set := make(RuleSet, len(attached))
	for _, r := range attached {
		set[r.ID] = struct{}{}
	}
	return set
}

// IsRuleAssigned reports whether the weekly rule is attached to the court.
func (s RuleSet) IsRuleAssigned(ruleID string) bool {
	_, ok := s[ruleID]
	return ok
}

// IDs returns the attached rule ids in sorted order.
func (s RuleSet) IDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// IsExceptionAssigned scans the rule's embedded court list.
func IsExceptionAssigned(rule domain.ExceptionRule, courtID string) bool {
	for _, c := range rule.Courts {
		if c.ID == courtID {
			return true
		}
	}
	return false
}

// NextCourtIDs computes the full court list to submit after assigning or
// unassigning courtID. Assigning an id already present and unassigning an
// absent id both leave the list unchanged.
func NextCourtIDs(current []string, courtID string, assign bool) []string {
	next := make([]string, 0, len(current)+1)
	present := false
	for _, id := range current {
		if id == courtID {
			present = true
			if !assign {
				continue
			}
		}
		next = append(next, id)
	}
	if assign && !present {
		next = append(next, courtID)
	}
	return next
}

// RuleRow is a weekly rule as shown in a court's schedule.
type RuleRow struct {
	Rule     domain.AvailabilityRule `json:"rule"`
	DayLabel string                  `json:"dayLabel"`
	Window   string                  `json:"window"`
	Assigned bool                    `json:"assigned"`
}

// ExceptionRow is an exception rule as shown in a court's schedule.
type ExceptionRow struct {
	Rule     domain.ExceptionRule `json:"rule"`
	Window   string               `json:"window"`
	Assigned bool                 `json:"assigned"`
}

// CourtSchedule lists every business rule with its assignment to one court.
type CourtSchedule struct {
	CourtID    string         `json:"courtId"`
	Rules      []RuleRow      `json:"rules"`
	Exceptions []ExceptionRow `json:"exceptions"`
}

// BuildCourtSchedule projects business rules and the court's attached rules
// into the schedule view. Rule order follows the backend.
func BuildCourtSchedule(courtID string, rules []domain.AvailabilityRule, attached RuleSet, exceptions []domain.ExceptionRule) CourtSchedule {
	out := CourtSchedule{
		CourtID:    courtID,
		Rules:      make([]RuleRow, 0, len(rules)),
		Exceptions: make([]ExceptionRow, 0, len(exceptions)),
	}
	for _, r := range rules {
		out.Rules = append(out.Rules, RuleRow{
			Rule:     r,
			DayLabel: DayLabel(r.DayOfWeek),
			Window:   Window(r.StartTime, r.EndTime),
			Assigned: attached.IsRuleAssigned(r.ID),
		})
	}
	for _, e := range exceptions {
		out.Exceptions = append(out.Exceptions, ExceptionRow{
			Rule:     e,
			Window:   exceptionWindow(e),
			Assigned: IsExceptionAssigned(e, courtID),
		})
	}
	return out
}

// DayLabel names a 0..6 (Sunday first) day of week.
func DayLabel(day int) string {
	if day < 0 || day > 6 {
		return "Unknown"
	}
	return time.Weekday(day).String()
}

// Window formats a start/end pair as "HH:MM-HH:MM".
func Window(start, end string) string {
	return timeutil.ShortClock(start) + "-" + timeutil.ShortClock(end)
}

func exceptionWindow(e domain.ExceptionRule) string {
	if e.StartTime == nil || e.EndTime == nil {
		return "All day"
	}
	return Window(*e.StartTime, *e.EndTime)
}
