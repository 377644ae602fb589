// Package store persists monitoring nodes and port collectors in SQLite.
//
// The store is the submit sink of the collector form: Save adapts it to a
// collect.SubmitFunc. Nodes only exist to give collectors a place in the
// tree; the form selects them by path.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	appErrors "moncollect/internal/errors"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite" // Pure Go SQLite driver, WAL-friendly
)

// ErrNotFound is returned (wrapped) when a node or collector id does not exist.
var ErrNotFound = appErrors.New(appErrors.CodeNotFound, "not found", nil)

// Store is a handle on the collector database. It is safe for concurrent use.
type Store struct {
	db   *sql.DB
	path string
	log  zerolog.Logger
	now  func() time.Time
}

// Option configures Open.
type Option func(*Store)

// WithLogger sets the logger used for store diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) {
		s.log = l
	}
}

// WithClock overrides the timestamp source. Tests use it for stable output.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// Open opens (creating if needed) the database at path and migrates it.
func Open(ctx context.Context, path string, opts ...Option) (*Store, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil, appErrors.New(appErrors.CodeConfigurationError, "database path is empty", nil)
	}
	//nolint:gosec // G301: database directory needs standard permissions
	if err := os.MkdirAll(filepath.Dir(trimmed), 0o755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", buildDSN(trimmed))
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	s := &Store{
		db:   db,
		path: trimmed,
		log:  zerolog.Nop(),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	s.log.Debug().Str("path", trimmed).Msg("store opened")
	return s, nil
}

// buildDSN creates a read-write WAL DSN with foreign keys enforced on every
// connection.
func buildDSN(dbPath string) string {
	u := url.URL{
		Scheme: "file",
		Path:   filepath.ToSlash(dbPath),
	}
	q := url.Values{}
	q.Add("_pragma", "foreign_keys(1)")
	q.Add("_pragma", "journal_mode(WAL)")
	q.Add("_pragma", "busy_timeout(3000)")
	u.RawQuery = q.Encode()
	return u.String()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS nodes (
		id    INTEGER PRIMARY KEY AUTOINCREMENT,
		pid   INTEGER NOT NULL DEFAULT 0,
		ident TEXT    NOT NULL,
		name  TEXT    NOT NULL DEFAULT '',
		path  TEXT    NOT NULL UNIQUE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_nodes_pid ON nodes(pid)`,
	`CREATE TABLE IF NOT EXISTS collectors (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		collect_type TEXT    NOT NULL,
		nid          INTEGER NOT NULL REFERENCES nodes(id),
		name         TEXT    NOT NULL,
		port         INTEGER NOT NULL,
		timeout      INTEGER NOT NULL,
		step         INTEGER NOT NULL,
		comment      TEXT    NOT NULL DEFAULT '',
		tags         TEXT    NOT NULL DEFAULT '',
		created_at   TEXT    NOT NULL,
		updated_at   TEXT    NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_collectors_nid ON collectors(nid)`,
}

func (s *Store) migrate(ctx context.Context) error {
	for _, stmt := range migrations {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return storageError("migrate schema", err)
		}
	}
	return nil
}

func storageError(op string, err error) error {
	return appErrors.New(appErrors.CodeStorageFailed, fmt.Sprintf("%s: %v", op, err), err)
}

const timeLayout = time.RFC3339Nano

func (s *Store) timestamp() string {
	return s.now().UTC().Format(timeLayout)
}

func parseTime(v string) time.Time {
	t, err := time.Parse(timeLayout, v)
	if err != nil {
		return time.Time{}
	}
	return t
}
