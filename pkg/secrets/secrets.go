// Package secrets resolves credential references in configuration values.
//
// A value of the form "env:NAME" is read from the environment and
// "file:/path" from a file with 0600 or 0400 permissions. Anything else is
// returned unchanged, so plain values keep working:
//
//	cache:
//	  redis:
//	    password: file:/run/secrets/redis-password
package secrets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrNotFound is returned when a referenced secret does not exist.
var ErrNotFound = errors.New("secret not found")

// Provider reads secrets from one source.
type Provider interface {
	// GetSecret returns the secret called name.
	GetSecret(ctx context.Context, name string) (string, error)

	// Scheme is the reference prefix the provider handles, without the colon.
	Scheme() string
}

// EnvProvider reads secrets from environment variables.
type EnvProvider struct{}

// GetSecret returns the value of the environment variable name. An empty
// variable counts as missing.
func (EnvProvider) GetSecret(_ context.Context, name string) (string, error) {
	value := os.Getenv(name)
	if value == "" {
		return "", fmt.Errorf("%w: environment variable %s is empty or unset", ErrNotFound, name)
	}
	return value, nil
}

// Scheme returns "env".
func (EnvProvider) Scheme() string { return "env" }

// FileProvider reads secrets from files. Surrounding whitespace is trimmed.
type FileProvider struct{}

// GetSecret reads the file at path. The file must be a regular file that
// only its owner can read.
func (FileProvider) GetSecret(_ context.Context, path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return "", fmt.Errorf("failed to stat secret file: %w", err)
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("secret path is not a regular file: %s", path)
	}
	if mode := info.Mode().Perm(); mode != 0o600 && mode != 0o400 {
		return "", fmt.Errorf("insecure permissions on %s: %o (expected 0600 or 0400)", path, mode)
	}

	// #nosec G304 - the path comes from operator configuration
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read secret file: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Scheme returns "file".
func (FileProvider) Scheme() string { return "file" }

// Resolver dispatches references to providers by scheme.
type Resolver struct {
	providers map[string]Provider
}

// NewResolver creates a resolver for the given providers. Without
// arguments it uses EnvProvider and FileProvider.
func NewResolver(providers ...Provider) *Resolver {
	if len(providers) == 0 {
		providers = []Provider{EnvProvider{}, FileProvider{}}
	}
	r := &Resolver{providers: make(map[string]Provider, len(providers))}
	for _, p := range providers {
		r.providers[p.Scheme()] = p
	}
	return r
}

// Resolve returns the secret value referenced by value, or value itself
// when it carries no known scheme.
func (r *Resolver) Resolve(ctx context.Context, value string) (string, error) {
	scheme, name, ok := strings.Cut(value, ":")
	if !ok {
		return value, nil
	}
	p, known := r.providers[scheme]
	if !known {
		return value, nil
	}
	if name == "" {
		return "", fmt.Errorf("empty %s secret reference", scheme)
	}
	return p.GetSecret(ctx, name)
}

var defaultResolver = NewResolver()

// Resolve resolves value with the env and file providers.
func Resolve(ctx context.Context, value string) (string, error) {
	return defaultResolver.Resolve(ctx, value)
}
