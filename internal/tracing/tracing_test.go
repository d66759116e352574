package tracing

import (
	"context"
	"errors"
	"testing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestSetupNoopWhenDisabled(t *testing.T) {
	shutdown, err := Setup(context.Background(), Config{Enabled: false, OtlpEndpoint: "localhost:4318"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestSetupNoopWhenEndpointEmpty(t *testing.T) {
	called := false
	orig := exporterFactory
	exporterFactory = func(context.Context, string, bool) (sdktrace.SpanExporter, error) {
		called = true
		return tracetest.NewInMemoryExporter(), nil
	}
	t.Cleanup(func() { exporterFactory = orig })

	if _, err := Setup(context.Background(), Config{Enabled: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if called {
		t.Fatalf("expected no exporter without an endpoint")
	}
}

func TestSetupInstallsProvider(t *testing.T) {
	orig := exporterFactory
	exporterFactory = func(context.Context, string, bool) (sdktrace.SpanExporter, error) {
		return tracetest.NewInMemoryExporter(), nil
	}
	t.Cleanup(func() { exporterFactory = orig })

	shutdown, err := Setup(context.Background(), Config{Enabled: true, OtlpEndpoint: "collector:4318"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestSetupPropagatesExporterError(t *testing.T) {
	orig := exporterFactory
	exporterFactory = func(context.Context, string, bool) (sdktrace.SpanExporter, error) {
		return nil, errors.New("boom")
	}
	t.Cleanup(func() { exporterFactory = orig })

	if _, err := Setup(context.Background(), Config{Enabled: true, OtlpEndpoint: "collector:4318"}); err == nil {
		t.Fatalf("expected exporter error")
	}
}
