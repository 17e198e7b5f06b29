package cli

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"mercator-hq/jikan/pkg/jikan"
	"mercator-hq/jikan/pkg/jikan/guard"
)

func TestConfigError(t *testing.T) {
	err := NewConfigError("rate_limits.windows", "invalid window")
	expected := "config error in rate_limits.windows: invalid window"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}

	err = NewConfigError("", "failed to load")
	if err.Error() != "config error: failed to load" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestCommandError(t *testing.T) {
	underlyingErr := errors.New("underlying error")
	err := NewCommandError("anime", underlyingErr)

	expected := "command anime failed: underlying error"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
	if !errors.Is(err, underlyingErr) {
		t.Error("errors.Is() should work with CommandError.Unwrap()")
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: ExitOK},
		{name: "generic", err: errors.New("boom"), want: ExitError},
		{name: "canceled", err: fmt.Errorf("wait: %w", context.Canceled), want: ExitInterrupted},
		{name: "config", err: NewConfigError("output", "bad"), want: ExitUsage},
		{name: "validation", err: &guard.ValidationError{Field: "id", Message: "must be positive"}, want: ExitUsage},
		{name: "not found", err: &jikan.NotFoundError{Endpoint: "anime"}, want: ExitNotFound},
		{name: "rate limited", err: NewCommandError("top", &jikan.RateLimitError{Endpoint: "top_anime"}), want: ExitRateLimited},
		{name: "server", err: &jikan.APIError{Endpoint: "anime", StatusCode: 503}, want: ExitUpstream},
		{name: "client", err: &jikan.APIError{Endpoint: "anime", StatusCode: 400}, want: ExitError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
