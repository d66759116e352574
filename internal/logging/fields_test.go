package logging

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"
)

func TestWithCommonSkipsEmptyValues(t *testing.T) {
	attrs := WithCommon([]slog.Attr{slog.String(FieldBusinessID, "b1")}, "bookplay-admin", "")
	if len(attrs) != 2 {
		t.Fatalf("expected existing attr plus service, got %+v", attrs)
	}
	if attrs[1].Key != FieldService || attrs[1].Value.String() != "bookplay-admin" {
		t.Fatalf("expected service attr, got %+v", attrs[1])
	}
}

func TestHelpersTolerateNilLogger(t *testing.T) {
	Info(nil, "info")
	Warn(nil, "warn")
	Debug(nil, "debug")
	Error(nil, "error", errors.New("boom"))
}

func TestErrorUsesErrorKey(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Config{Output: &buf})

	Error(logger, "backend call failed", errors.New("boom"), FieldCourtID, "c1")

	out := buf.String()
	if !strings.Contains(out, "level=ERROR") || !strings.Contains(out, "error=boom") || !strings.Contains(out, "court_id=c1") {
		t.Fatalf("unexpected log line %q", out)
	}
}

func TestErrorDemotesCanceledContext(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Config{Output: &buf})

	Error(logger, "request aborted", fmt.Errorf("list bookings: %w", context.Canceled))

	if out := buf.String(); !strings.Contains(out, "level=INFO") {
		t.Fatalf("expected canceled error at info, got %q", out)
	}
}
