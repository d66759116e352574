package domain

import "time"

// AvailabilityRule is a recurring weekly opening window.
// DayOfWeek follows time.Weekday numbering: 0 is Sunday.
type AvailabilityRule struct {
	ID         string    `json:"id"`
	BusinessID string    `json:"businessId"`
	Name       string    `json:"name"`
	DayOfWeek  int       `json:"dayOfWeek"`
	StartTime  string    `json:"startTime"`
	EndTime    string    `json:"endTime"`
	IsActive   bool      `json:"isActive"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Weekday returns the rule's day as a time.Weekday.
func (r AvailabilityRule) Weekday() time.Weekday {
	return time.Weekday(r.DayOfWeek)
}

// CourtRef is the embedded court reference carried by an exception rule.
type CourtRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ExceptionRule is a one-off override (closure or special opening) for a date,
// optionally scoped to specific courts.
type ExceptionRule struct {
	ID          string     `json:"id"`
	BusinessID  string     `json:"businessId"`
	Date        string     `json:"date"`
	StartTime   *string    `json:"startTime,omitempty"`
	EndTime     *string    `json:"endTime,omitempty"`
	IsAvailable bool       `json:"isAvailable"`
	Reason      *string    `json:"reason,omitempty"`
	Courts      []CourtRef `json:"courts,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// CourtIDs returns the ids of the courts the exception is scoped to.
func (r ExceptionRule) CourtIDs() []string {
	ids := make([]string, 0, len(r.Courts))
	for _, c := range r.Courts {
		ids = append(ids, c.ID)
	}
	return ids
}

// CourtAvailability is the join row between a court and a weekly rule.
type CourtAvailability struct {
	ID                 string    `json:"id"`
	CourtID            string    `json:"courtId"`
	AvailabilityRuleID string    `json:"availabilityRuleId"`
	CreatedAt          time.Time `json:"createdAt"`
}

// CourtException is the join row between a court and an exception rule.
type CourtException struct {
	ID              string    `json:"id"`
	CourtID         string    `json:"courtId"`
	ExceptionRuleID string    `json:"exceptionRuleId"`
	CreatedAt       time.Time `json:"createdAt"`
}

// CreateAvailabilityRuleInput is the weekly rule form payload.
type CreateAvailabilityRuleInput struct {
	Name      string `json:"name" validate:"required,min=1,max=120"`
	DayOfWeek int    `json:"dayOfWeek" validate:"weekday"`
	StartTime string `json:"startTime" validate:"required,clock"`
	EndTime   string `json:"endTime" validate:"required,clock"`
	IsActive  bool   `json:"isActive"`
}

// UpdateAvailabilityRuleInput is the partial weekly rule update payload.
type UpdateAvailabilityRuleInput struct {
	Name      *string `json:"name,omitempty" validate:"omitempty,min=1,max=120"`
	DayOfWeek *int    `json:"dayOfWeek,omitempty" validate:"omitempty,weekday"`
	StartTime *string `json:"startTime,omitempty" validate:"omitempty,clock"`
	EndTime   *string `json:"endTime,omitempty" validate:"omitempty,clock"`
	IsActive  *bool   `json:"isActive,omitempty"`
}

// CreateExceptionRuleInput is the exception form payload.
type CreateExceptionRuleInput struct {
	Date        string   `json:"date" validate:"required,isodate"`
	StartTime   *string  `json:"startTime,omitempty" validate:"omitempty,clock"`
	EndTime     *string  `json:"endTime,omitempty" validate:"omitempty,clock"`
	IsAvailable bool     `json:"isAvailable"`
	Reason      *string  `json:"reason,omitempty" validate:"omitempty,max=250"`
	CourtIDs    []string `json:"courtIds,omitempty" validate:"omitempty,dive,uuid"`
}

// UpdateExceptionRuleInput is the partial exception update payload. A non-nil
// CourtIDs replaces the rule's whole court list.
type UpdateExceptionRuleInput struct {
	Date        *string   `json:"date,omitempty" validate:"omitempty,isodate"`
	StartTime   *string   `json:"startTime,omitempty" validate:"omitempty,clock"`
	EndTime     *string   `json:"endTime,omitempty" validate:"omitempty,clock"`
	IsAvailable *bool     `json:"isAvailable,omitempty"`
	Reason      *string   `json:"reason,omitempty" validate:"omitempty,max=250"`
	CourtIDs    *[]string `json:"courtIds,omitempty" validate:"omitempty,dive,uuid"`
}

// AddCourtAvailabilityInput attaches a weekly rule to a court.
type AddCourtAvailabilityInput struct {
	AvailabilityRuleID string `json:"availabilityRuleId" validate:"required,uuid"`
}

// AddCourtExceptionInput attaches an exception rule to a court.
type AddCourtExceptionInput struct {
	ExceptionRuleID string `json:"exceptionRuleId" validate:"required,uuid"`
}
