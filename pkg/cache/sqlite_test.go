package cache

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
)

// newTestSQLite opens a cache in a temp dir. The mattn driver is skipped
// when the binary was built without cgo.
func newTestSQLite(t *testing.T, driver string, clock clockwork.Clock) *SQLite {
	t.Helper()

	backend, err := NewSQLite(&SQLiteConfig{
		Path:          filepath.Join(t.TempDir(), "cache.db"),
		Driver:        driver,
		PurgeInterval: time.Hour,
		Clock:         clock,
	})
	if err != nil {
		if driver == DriverMattn && strings.Contains(err.Error(), "cgo") {
			t.Skipf("mattn/go-sqlite3 unavailable: %v", err)
		}
		t.Fatalf("NewSQLite(%s) failed: %v", driver, err)
	}
	t.Cleanup(func() { backend.Close() })
	return backend
}

func TestSQLite(t *testing.T) {
	for _, driver := range []string{DriverModernc, DriverMattn} {
		t.Run(driver, func(t *testing.T) {
			clock := clockwork.NewFakeClock()
			backend := newTestSQLite(t, driver, clock)
			if backend.Driver() != driver {
				t.Errorf("Expected driver %s, got %s", driver, backend.Driver())
			}
			testBackend(t, backend, clock)
		})
	}
}

func TestSQLite_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "cache.db")

	first, err := NewSQLite(&SQLiteConfig{Path: path})
	if err != nil {
		t.Fatalf("NewSQLite failed: %v", err)
	}
	if err := first.Set(ctx, "GET /anime/1", []byte("body"), time.Hour); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	second, err := NewSQLite(&SQLiteConfig{Path: path})
	if err != nil {
		t.Fatalf("Reopen failed: %v", err)
	}
	defer second.Close()

	got, ok, err := second.Get(ctx, "GET /anime/1")
	if err != nil || !ok {
		t.Fatalf("Expected hit after reopen, ok %v, err %v", ok, err)
	}
	if string(got) != "body" {
		t.Errorf("Expected body, got %q", got)
	}
}

func TestSQLite_PurgeCountsExpired(t *testing.T) {
	ctx := context.Background()
	clock := clockwork.NewFakeClock()
	backend := newTestSQLite(t, DriverModernc, clock)

	_ = backend.Set(ctx, "a", []byte("1"), time.Second)
	_ = backend.Set(ctx, "b", []byte("2"), time.Second)
	_ = backend.Set(ctx, "c", []byte("3"), 0)
	clock.Advance(time.Minute)

	n, err := backend.Purge(ctx)
	if err != nil {
		t.Fatalf("Purge failed: %v", err)
	}
	if n != 2 {
		t.Errorf("Expected 2 purged, got %d", n)
	}
}

func TestSQLite_CloseIsIdempotent(t *testing.T) {
	backend, err := NewSQLite(&SQLiteConfig{Path: filepath.Join(t.TempDir(), "cache.db")})
	if err != nil {
		t.Fatalf("NewSQLite failed: %v", err)
	}
	if err := backend.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := backend.Close(); err != nil {
		t.Errorf("Expected second Close to succeed, got %v", err)
	}
	if _, _, err := backend.Get(context.Background(), "k"); err != ErrClosed {
		t.Errorf("Expected ErrClosed, got %v", err)
	}
}

func TestNewSQLite_InvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  *SQLiteConfig
	}{
		{name: "nil", cfg: nil},
		{name: "empty path", cfg: &SQLiteConfig{}},
		{name: "unknown driver", cfg: &SQLiteConfig{Path: "x.db", Driver: "postgres"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewSQLite(tt.cfg); err == nil {
				t.Error("Expected error, got nil")
			}
		})
	}
}
