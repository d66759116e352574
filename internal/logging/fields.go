package logging

import "log/slog"

// Common structured log field keys to keep logs searchable/consistent.
const (
	FieldService    = "service"
	FieldVersion    = "version"
	FieldRequestID  = "request_id"
	FieldPath       = "path"
	FieldMethod     = "method"
	FieldStatusCode = "status_code"
	FieldEndpoint   = "endpoint"
	FieldBusinessID = "business_id"
	FieldCourtID    = "court_id"
	FieldRuleID     = "rule_id"
	FieldBookingID  = "booking_id"
	FieldDate       = "date"
	FieldMonth      = "month"
	FieldCount      = "count"
	FieldState      = "state"
	FieldCacheKey   = "cache_key"
	FieldDurationMS = "duration_ms"
)

// WithCommon appends service/version fields when provided.
func WithCommon(attrs []slog.Attr, service, version string) []slog.Attr {
	if service != "" {
		attrs = append(attrs, slog.String(FieldService, service))
	}
	if version != "" {
		attrs = append(attrs, slog.String(FieldVersion, version))
	}
	return attrs
}
