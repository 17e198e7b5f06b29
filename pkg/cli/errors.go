package cli

import (
	"context"
	"errors"
	"fmt"

	"mercator-hq/jikan/pkg/jikan"
	"mercator-hq/jikan/pkg/jikan/guard"
)

// Process exit codes.
const (
	ExitOK          = 0
	ExitError       = 1
	ExitUsage       = 2
	ExitNotFound    = 3
	ExitRateLimited = 4
	ExitUpstream    = 5
	ExitInterrupted = 130
)

// ConfigError represents an error in configuration or flags.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("config error: %s", e.Message)
	}
	return fmt.Sprintf("config error in %s: %s", e.Field, e.Message)
}

// CommandError represents an error from a command execution.
type CommandError struct {
	Command string
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command %s failed: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError.
func NewConfigError(field, message string) *ConfigError {
	return &ConfigError{
		Field:   field,
		Message: message,
	}
}

// NewCommandError creates a new CommandError.
func NewCommandError(command string, err error) *CommandError {
	return &CommandError{
		Command: command,
		Err:     err,
	}
}

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var (
		configErr     *ConfigError
		validationErr *guard.ValidationError
		apiErr        *jikan.APIError
	)

	switch {
	case errors.Is(err, context.Canceled):
		return ExitInterrupted
	case errors.As(err, &configErr), errors.As(err, &validationErr):
		return ExitUsage
	case jikan.IsNotFound(err):
		return ExitNotFound
	case jikan.IsRateLimited(err):
		return ExitRateLimited
	case errors.As(err, &apiErr) && apiErr.Temporary():
		return ExitUpstream
	default:
		return ExitError
	}
}
