package assignment

import (
	"errors"
	"fmt"
)

// ErrRuleNotFound is returned when a toggled rule is not among the business's rules.
var ErrRuleNotFound = errors.New("assignment: rule not found")

// PartialFailureError reports a multi-step flow that stopped after its first
// step succeeded. Nothing is rolled back; RuleID names the rule left behind.
type PartialFailureError struct {
	Step   string
	RuleID string
	Err    error
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("assignment: %s failed after rule %s was created: %v", e.Step, e.RuleID, e.Err)
}

func (e *PartialFailureError) Unwrap() error {
	return e.Err
}

// AsPartialFailure unwraps a PartialFailureError.
func AsPartialFailure(err error) (*PartialFailureError, bool) {
	var pErr *PartialFailureError
	if errors.As(err, &pErr) {
		return pErr, true
	}
	return nil, false
}
