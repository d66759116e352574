package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/preston-bernstein/bookplay-admin/internal/domain"
	"github.com/preston-bernstein/bookplay-admin/internal/timeutil"
)

// FieldError represents one failed field check.
type FieldError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

// Error is returned when an input fails validation. It never reaches the backend.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return "validation failed"
	}
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// AsError unwraps a validation error.
func AsError(err error) (*Error, bool) {
	var vErr *Error
	if errors.As(err, &vErr) {
		return vErr, true
	}
	return nil, false
}

var (
	once     sync.Once
	instance *validator.Validate
)

func validate() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(jsonName)
		mustRegister(v, map[string]validator.Func{
			"clock":   isClock,
			"isodate": isISODate,
			"weekday": isWeekday,
		})
		v.RegisterStructValidation(bookingWindow, domain.CreateBookingInput{})
		v.RegisterStructValidation(ruleWindow, domain.CreateAvailabilityRuleInput{})
		v.RegisterStructValidation(exceptionWindow, domain.CreateExceptionRuleInput{})
		instance = v
	})
	return instance
}

// mustRegister installs custom tags and panics on a bad registration.
func mustRegister(v *validator.Validate, tags map[string]validator.Func) {
	for tag, fn := range tags {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("validation: register %q: %v", tag, err))
		}
	}
}

// Struct validates s and returns *Error describing every failed field, or nil.
func Struct(s any) error {
	err := validate().Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	out := &Error{Fields: make([]FieldError, 0, len(fieldErrs))}
	for _, fe := range fieldErrs {
		out.Fields = append(out.Fields, FieldError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Message: message(fe),
		})
	}
	return out
}

func jsonName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return fld.Name
	}
	return name
}

func isClock(fl validator.FieldLevel) bool {
	_, err := timeutil.NormalizeClock(fl.Field().String())
	return err == nil
}

func isISODate(fl validator.FieldLevel) bool {
	_, err := timeutil.ParseDate(fl.Field().String())
	return err == nil
}

func isWeekday(fl validator.FieldLevel) bool {
	d := fl.Field().Int()
	return d >= 0 && d <= 6
}

func bookingWindow(sl validator.StructLevel) {
	in := sl.Current().Interface().(domain.CreateBookingInput)
	if !clockBefore(in.StartTime, in.EndTime) {
		sl.ReportError(in.EndTime, "endTime", "EndTime", "after_start", "")
	}
}

func ruleWindow(sl validator.StructLevel) {
	in := sl.Current().Interface().(domain.CreateAvailabilityRuleInput)
	if !clockBefore(in.StartTime, in.EndTime) {
		sl.ReportError(in.EndTime, "endTime", "EndTime", "after_start", "")
	}
}

func exceptionWindow(sl validator.StructLevel) {
	in := sl.Current().Interface().(domain.CreateExceptionRuleInput)
	if in.StartTime == nil || in.EndTime == nil {
		return
	}
	if !clockBefore(*in.StartTime, *in.EndTime) {
		sl.ReportError(*in.EndTime, "endTime", "EndTime", "after_start", "")
	}
}

// clockBefore compares zero-padded HH:MM strings; malformed values are left to
// the field-level clock check.
func clockBefore(start, end string) bool {
	s, errS := timeutil.NormalizeClock(start)
	e, errE := timeutil.NormalizeClock(end)
	if errS != nil || errE != nil {
		return true
	}
	return s < e
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "uuid":
		return field + " must be a valid UUID"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	case "clock":
		return field + " must be a time in HH:MM format"
	case "isodate":
		return field + " must be a date in YYYY-MM-DD format"
	case "weekday":
		return field + " must be between 0 (Sunday) and 6 (Saturday)"
	case "timezone":
		return field + " must be a valid IANA timezone"
	case "after_start":
		return field + " must be later than startTime"
	default:
		return field + " is invalid"
	}
}
