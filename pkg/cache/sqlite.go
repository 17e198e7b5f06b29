package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	_ "github.com/mattn/go-sqlite3" // driver "sqlite3" (cgo)
	_ "modernc.org/sqlite"          // driver "sqlite" (pure Go)
)

// SQLite driver names.
const (
	DriverModernc = "sqlite"
	DriverMattn   = "sqlite3"
)

// SQLite persists cached responses in a SQLite database so they survive
// restarts of the CLI. Expired rows are swept by a background loop.
//
// The database runs in WAL mode with a single connection; SQLite allows only
// one writer and the cache is small.
type SQLite struct {
	db        *sql.DB
	path      string
	driver    string
	clock     clockwork.Clock
	logger    *slog.Logger
	done      chan struct{}
	loopDone  chan struct{}
	mu        sync.RWMutex
	closeOnce sync.Once
	closed    bool

	getStmt    *sql.Stmt
	setStmt    *sql.Stmt
	deleteStmt *sql.Stmt
	purgeStmt  *sql.Stmt
	clearStmt  *sql.Stmt
}

// SQLiteConfig configures the SQLite backend.
type SQLiteConfig struct {
	// Path is the database file. ":memory:" is accepted for tests.
	Path string

	// Driver is "sqlite" (modernc.org/sqlite) or "sqlite3" (mattn/go-sqlite3).
	// Default: "sqlite"
	Driver string

	// BusyTimeout is how long to wait for locks before failing.
	// Default: 5 seconds
	BusyTimeout time.Duration

	// PurgeInterval is how often expired rows are deleted.
	// Default: 1 minute
	PurgeInterval time.Duration

	// Clock is used for expiry. Default: real clock.
	Clock clockwork.Clock

	// Logger receives purge failures. Default: slog.Default().
	Logger *slog.Logger
}

// NewSQLite opens (and if needed creates) the cache database.
func NewSQLite(cfg *SQLiteConfig) (*SQLite, error) {
	if cfg == nil || cfg.Path == "" {
		return nil, fmt.Errorf("sqlite cache: path cannot be empty")
	}
	c := *cfg
	if c.Driver == "" {
		c.Driver = DriverModernc
	}
	if c.Driver != DriverModernc && c.Driver != DriverMattn {
		return nil, fmt.Errorf("sqlite cache: unknown driver %q", c.Driver)
	}
	if c.BusyTimeout == 0 {
		c.BusyTimeout = 5 * time.Second
	}
	if c.PurgeInterval == 0 {
		c.PurgeInterval = time.Minute
	}
	if c.Clock == nil {
		c.Clock = clockwork.NewRealClock()
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}

	db, err := sql.Open(c.Driver, c.Path)
	if err != nil {
		return nil, newError(BackendSQLite, "open", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	s := &SQLite{
		db:       db,
		path:     c.Path,
		driver:   c.Driver,
		clock:    c.Clock,
		logger:   c.Logger.With("component", "cache.sqlite"),
		done:     make(chan struct{}),
		loopDone: make(chan struct{}),
	}

	if err := s.initialize(c.BusyTimeout); err != nil {
		db.Close()
		return nil, err
	}

	if err := s.prepareStatements(); err != nil {
		db.Close()
		return nil, newError(BackendSQLite, "prepare", err)
	}

	go s.purgeLoop(c.PurgeInterval)

	s.logger.Debug("sqlite cache opened", "path", c.Path, "driver", c.Driver)
	return s, nil
}

// initialize sets pragmas and creates the schema. Pragmas are issued as
// statements because the two drivers disagree on DSN syntax.
func (s *SQLite) initialize(busyTimeout time.Duration) error {
	if _, err := s.db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d;", busyTimeout.Milliseconds())); err != nil {
		return newError(BackendSQLite, "set_busy_timeout", err)
	}
	if s.path != ":memory:" {
		if _, err := s.db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			return newError(BackendSQLite, "enable_wal", err)
		}
	}

	schema := `
	CREATE TABLE IF NOT EXISTS cache_entries (
		key TEXT PRIMARY KEY,
		value BLOB NOT NULL,
		expires_at INTEGER NOT NULL,
		created_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_cache_entries_expires_at ON cache_entries(expires_at);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return newError(BackendSQLite, "create_schema", err)
	}
	return nil
}

func (s *SQLite) prepareStatements() error {
	var err error

	s.getStmt, err = s.db.Prepare(`SELECT value, expires_at FROM cache_entries WHERE key = ?`)
	if err != nil {
		return fmt.Errorf("get statement: %w", err)
	}

	s.setStmt, err = s.db.Prepare(`
		INSERT INTO cache_entries (key, value, expires_at, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			expires_at = excluded.expires_at,
			created_at = excluded.created_at
	`)
	if err != nil {
		return fmt.Errorf("set statement: %w", err)
	}

	s.deleteStmt, err = s.db.Prepare(`DELETE FROM cache_entries WHERE key = ?`)
	if err != nil {
		return fmt.Errorf("delete statement: %w", err)
	}

	// expires_at 0 marks entries without a TTL
	s.purgeStmt, err = s.db.Prepare(`DELETE FROM cache_entries WHERE expires_at > 0 AND expires_at <= ?`)
	if err != nil {
		return fmt.Errorf("purge statement: %w", err)
	}

	s.clearStmt, err = s.db.Prepare(`DELETE FROM cache_entries`)
	if err != nil {
		return fmt.Errorf("clear statement: %w", err)
	}

	return nil
}

// Get returns the cached value for key.
func (s *SQLite) Get(ctx context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, false, ErrClosed
	}

	var (
		value     []byte
		expiresAt int64
	)
	err := s.getStmt.QueryRowContext(ctx, key).Scan(&value, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, newError(BackendSQLite, "get", err)
	}

	if expiresAt > 0 && s.clock.Now().UnixNano() >= expiresAt {
		return nil, false, nil
	}
	return value, true, nil
}

// Set stores value under key.
func (s *SQLite) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	now := s.clock.Now()
	var expiresAt int64
	if ttl > 0 {
		expiresAt = now.Add(ttl).UnixNano()
	}

	if _, err := s.setStmt.ExecContext(ctx, key, value, expiresAt, now.UnixNano()); err != nil {
		return newError(BackendSQLite, "set", err)
	}
	return nil
}

// Delete removes key.
func (s *SQLite) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	if _, err := s.deleteStmt.ExecContext(ctx, key); err != nil {
		return newError(BackendSQLite, "delete", err)
	}
	return nil
}

// Purge deletes expired rows.
func (s *SQLite) Purge(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, ErrClosed
	}
	return s.exec(ctx, "purge", s.purgeStmt, s.clock.Now().UnixNano())
}

// Clear deletes every row.
func (s *SQLite) Clear(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, ErrClosed
	}
	return s.exec(ctx, "clear", s.clearStmt)
}

func (s *SQLite) exec(ctx context.Context, op string, stmt *sql.Stmt, args ...any) (int, error) {
	result, err := stmt.ExecContext(ctx, args...)
	if err != nil {
		return 0, newError(BackendSQLite, op, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, newError(BackendSQLite, op, err)
	}
	return int(n), nil
}

// Name returns "sqlite".
func (s *SQLite) Name() string { return BackendSQLite }

// Driver returns the database/sql driver in use.
func (s *SQLite) Driver() string { return s.driver }

// Close stops the purge loop and closes the database.
// Close is idempotent and safe to call multiple times.
func (s *SQLite) Close() error {
	var closeErr error

	s.closeOnce.Do(func() {
		close(s.done)
		<-s.loopDone

		s.mu.Lock()
		defer s.mu.Unlock()
		s.closed = true

		for _, stmt := range []*sql.Stmt{s.getStmt, s.setStmt, s.deleteStmt, s.purgeStmt, s.clearStmt} {
			if stmt != nil {
				stmt.Close()
			}
		}

		if s.path != ":memory:" {
			_, _ = s.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)")
		}
		closeErr = s.db.Close()
	})

	return closeErr
}

// purgeLoop deletes expired rows until Close.
func (s *SQLite) purgeLoop(interval time.Duration) {
	defer close(s.loopDone)

	ticker := s.clock.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.Chan():
			ctx, cancel := context.WithTimeout(context.Background(), interval)
			n, err := s.Purge(ctx)
			cancel()
			if err != nil {
				s.logger.Warn("cache purge failed", "error", err)
				continue
			}
			if n > 0 {
				s.logger.Debug("purged expired cache entries", "count", n)
			}
		case <-s.done:
			return
		}
	}
}
