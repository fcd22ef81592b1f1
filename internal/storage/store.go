package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/mattn/go-sqlite3"

	"tasktracker/internal/dbx"
)

// Supported database drivers.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// MemoryDSN opens a private in-memory SQLite database.
const MemoryDSN = ":memory:"

// Store wraps access to the relational database and exposes the
// owner-scoped operations used by the API.
type Store struct {
	db       *sql.DB
	logger   *slog.Logger
	postgres bool
	now      func() time.Time
}

// Open connects to the database and creates the schema when missing.
func Open(driver, dsn string, logger *slog.Logger) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("empty database dsn")
	}
	if logger == nil {
		logger = slog.Default()
	}

	var (
		conn *sql.DB
		err  error
	)
	switch driver {
	case DriverSQLite, "sqlite", "":
		conn, err = openSQLite(dsn)
	case DriverPostgres, "pgx":
		conn, err = sql.Open("pgx", dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
	if err != nil {
		return nil, err
	}

	s := &Store{
		db:       conn,
		logger:   logger,
		postgres: driver == DriverPostgres || driver == "pgx",
		now:      func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
	}
	if err := s.migrate(context.Background()); err != nil {
		_ = conn.Close()
		return nil, err
	}

	logger.Info("database ready", slog.String("driver", s.driverName()))
	return s, nil
}

func openSQLite(path string) (*sql.DB, error) {
	if err := ensureDir(path); err != nil {
		return nil, err
	}

	source := path
	if path == MemoryDSN {
		source = ":memory:"
	}
	conn, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?_busy_timeout=5000&_foreign_keys=ON", source))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// A single connection serializes writers and keeps an in-memory
	// database alive for the lifetime of the store.
	conn.SetMaxOpenConns(1)
	conn.SetConnMaxLifetime(0)
	return conn, nil
}

// Close releases the database resources.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Ping checks that the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) driverName() string {
	if s.postgres {
		return DriverPostgres
	}
	return DriverSQLite
}

func ensureDir(dbPath string) error {
	if dbPath == MemoryDSN || strings.Contains(dbPath, "mode=memory") {
		return nil
	}
	dir := filepath.Dir(dbPath)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func (s *Store) migrate(ctx context.Context) error {
	stmts := sqliteSchema
	if s.postgres {
		stmts = postgresSchema
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
            id TEXT PRIMARY KEY,
            email TEXT NOT NULL UNIQUE,
            password TEXT NOT NULL,
            name TEXT NOT NULL,
            created_at DATETIME NOT NULL
        );`,
	`CREATE TABLE IF NOT EXISTS projects (
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL,
            description TEXT NOT NULL DEFAULT '',
            color TEXT NOT NULL DEFAULT '#3B82F6',
            user_id TEXT NOT NULL REFERENCES users(id),
            created_at DATETIME NOT NULL
        );`,
	`CREATE TABLE IF NOT EXISTS tasks (
            id TEXT PRIMARY KEY,
            title TEXT NOT NULL,
            description TEXT NOT NULL DEFAULT '',
            status TEXT NOT NULL DEFAULT 'not-started',
            priority TEXT NOT NULL DEFAULT 'medium',
            due_date DATETIME,
            project_id TEXT NOT NULL REFERENCES projects(id),
            user_id TEXT NOT NULL REFERENCES users(id),
            created_at DATETIME NOT NULL,
            updated_at DATETIME NOT NULL
        );`,
	`CREATE TABLE IF NOT EXISTS revoked_tokens (
            token_id TEXT PRIMARY KEY,
            user_id TEXT NOT NULL,
            expires_at DATETIME,
            revoked_at DATETIME NOT NULL
        );`,
	`CREATE INDEX IF NOT EXISTS idx_projects_user ON projects(user_id, created_at);`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_user ON tasks(user_id, created_at);`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_project ON tasks(project_id);`,
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
            id TEXT PRIMARY KEY,
            email TEXT NOT NULL UNIQUE,
            password TEXT NOT NULL,
            name TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL
        );`,
	`CREATE TABLE IF NOT EXISTS projects (
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL,
            description TEXT NOT NULL DEFAULT '',
            color TEXT NOT NULL DEFAULT '#3B82F6',
            user_id TEXT NOT NULL REFERENCES users(id),
            created_at TIMESTAMPTZ NOT NULL
        );`,
	`CREATE TABLE IF NOT EXISTS tasks (
            id TEXT PRIMARY KEY,
            title TEXT NOT NULL,
            description TEXT NOT NULL DEFAULT '',
            status TEXT NOT NULL DEFAULT 'not-started',
            priority TEXT NOT NULL DEFAULT 'medium',
            due_date TIMESTAMPTZ,
            project_id TEXT NOT NULL REFERENCES projects(id),
            user_id TEXT NOT NULL REFERENCES users(id),
            created_at TIMESTAMPTZ NOT NULL,
            updated_at TIMESTAMPTZ NOT NULL
        );`,
	`CREATE TABLE IF NOT EXISTS revoked_tokens (
            token_id TEXT PRIMARY KEY,
            user_id TEXT NOT NULL,
            expires_at TIMESTAMPTZ,
            revoked_at TIMESTAMPTZ NOT NULL
        );`,
	`CREATE INDEX IF NOT EXISTS idx_projects_user ON projects(user_id, created_at);`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_user ON tasks(user_id, created_at);`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_project ON tasks(project_id);`,
}

// rebind rewrites ? placeholders into $n for PostgreSQL.
func (s *Store) rebind(query string) string {
	if !s.postgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (s *Store) exec(ctx context.Context, q dbx.DBTX, query string, args ...any) (sql.Result, error) {
	return q.ExecContext(ctx, s.rebind(query), args...)
}

func (s *Store) query(ctx context.Context, q dbx.DBTX, query string, args ...any) (*sql.Rows, error) {
	return q.QueryContext(ctx, s.rebind(query), args...)
}

func (s *Store) queryRow(ctx context.Context, q dbx.DBTX, query string, args ...any) *sql.Row {
	return q.QueryRowContext(ctx, s.rebind(query), args...)
}

func isUniqueViolation(err error) bool {
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			liteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time.UTC()
	return &v
}
