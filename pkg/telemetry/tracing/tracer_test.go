package tracing

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"mercator-hq/jikan/pkg/config"
)

func newRecordingTracer(t *testing.T) (*Tracer, *tracetest.SpanRecorder) {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	tracer := NewWithProvider(provider)
	t.Cleanup(func() { _ = tracer.Shutdown(context.Background()) })
	return tracer, recorder
}

func TestNew(t *testing.T) {
	tests := []struct {
		name        string
		config      *config.TracingConfig
		wantErr     bool
		wantEnabled bool
	}{
		{
			name:    "nil config",
			config:  nil,
			wantErr: true,
		},
		{
			name:   "disabled tracing",
			config: &config.TracingConfig{Enabled: false},
		},
		{
			name: "enabled with always sampler",
			config: &config.TracingConfig{
				Enabled:     true,
				Sampler:     SamplerAlways,
				Endpoint:    "localhost:4317",
				Insecure:    true,
				Timeout:     time.Second,
				ServiceName: "test",
			},
			wantEnabled: true,
		},
		{
			name: "invalid sampler",
			config: &config.TracingConfig{
				Enabled:  true,
				Sampler:  "sometimes",
				Endpoint: "localhost:4317",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracer, err := New(tt.config, "test")
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			defer tracer.Shutdown(context.Background())

			if tracer.Enabled() != tt.wantEnabled {
				t.Errorf("Enabled() = %v, want %v", tracer.Enabled(), tt.wantEnabled)
			}
		})
	}
}

func TestNoop(t *testing.T) {
	tracer := Noop()
	ctx, span := tracer.Start(context.Background(), "noop")
	span.End()

	if tracer.Enabled() {
		t.Error("Expected noop tracer to be disabled")
	}
	if TraceID(ctx) != "" {
		t.Errorf("Expected no trace ID, got %q", TraceID(ctx))
	}
	if err := tracer.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
}

func TestTracer_RecordsSpans(t *testing.T) {
	tracer, recorder := newRecordingTracer(t)

	ctx, span := tracer.Start(context.Background(), "jikan.GetAnime")
	span.SetAttributes(RequestAttributes("anime", "GET", "https://api.jikan.moe/v4/anime/1", "req-1")...)
	SetResponse(span, 200)
	SetCacheHit(span, false)
	SetStatus(span, nil)
	if TraceID(ctx) == "" {
		t.Error("Expected a trace ID inside a recording span")
	}
	span.End()

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("Expected 1 span, got %d", len(spans))
	}
	got := spans[0]
	if got.Name() != "jikan.GetAnime" {
		t.Errorf("Expected span name jikan.GetAnime, got %q", got.Name())
	}
	if got.Status().Code != codes.Ok {
		t.Errorf("Expected OK status, got %v", got.Status().Code)
	}

	attrs := make(map[attribute.Key]attribute.Value)
	for _, kv := range got.Attributes() {
		attrs[kv.Key] = kv.Value
	}
	if attrs[AttrEndpoint].AsString() != "anime" {
		t.Errorf("Expected endpoint attribute anime, got %v", attrs[AttrEndpoint])
	}
	if attrs[AttrHTTPStatus].AsInt64() != 200 {
		t.Errorf("Expected status attribute 200, got %v", attrs[AttrHTTPStatus])
	}
	if attrs[AttrCacheHit].AsBool() {
		t.Error("Expected cache hit attribute false")
	}
}

func TestSetErrorAndStatus(t *testing.T) {
	tracer, recorder := newRecordingTracer(t)

	_, span := tracer.Start(context.Background(), "failing")
	boom := errors.New("boom")
	SetError(span, boom)
	SetError(span, nil)
	SetStatus(span, boom)
	span.End()

	got := recorder.Ended()[0]
	if got.Status().Code != codes.Error || got.Status().Description != "boom" {
		t.Errorf("Expected error status, got %+v", got.Status())
	}
	if len(got.Events()) != 1 {
		t.Errorf("Expected one recorded error event, got %d", len(got.Events()))
	}
}

func TestCreateSampler(t *testing.T) {
	tests := []struct {
		name     string
		strategy string
		ratio    float64
		wantErr  bool
	}{
		{"always sampler", SamplerAlways, 0, false},
		{"never sampler", SamplerNever, 0, false},
		{"ratio sampler - 50%", SamplerRatio, 0.5, false},
		{"ratio sampler - invalid negative", SamplerRatio, -0.1, true},
		{"ratio sampler - invalid > 1", SamplerRatio, 1.5, true},
		{"unknown strategy", "unknown", 0.5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sampler, err := createSampler(tt.strategy, tt.ratio)
			if (err != nil) != tt.wantErr {
				t.Errorf("createSampler() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && sampler == nil {
				t.Error("createSampler() returned nil sampler without error")
			}
		})
	}
}
