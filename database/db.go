package database

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/sqlite3/*.sql migrations/postgres/*.sql
var migrations embed.FS

// Dialect names the SQL flavour behind a DB. The values double as goose dialect names.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite3"
	DialectPostgres Dialect = "postgres"
)

// ErrNotFound is returned when a referenced project or task does not exist.
var ErrNotFound = errors.New("not found")

// Options selects and configures the backing store.
// A non-empty DatabaseURL selects postgres; otherwise Path names a sqlite file.
type Options struct {
	DatabaseURL    string
	Path           string
	SkipMigrations bool
}

type DB struct {
	*sql.DB
	Dialect Dialect
	lock    *flock.Flock
}

// Open connects to the configured store and brings its schema up to date.
func Open(ctx context.Context, opts Options) (*DB, error) {
	var (
		db  *DB
		err error
	)
	if opts.DatabaseURL != "" {
		db, err = openPostgres(ctx, opts.DatabaseURL)
	} else {
		db, err = openSQLite(ctx, opts.Path)
	}
	if err != nil {
		return nil, err
	}

	if !opts.SkipMigrations {
		if err := db.Migrate(ctx, "up"); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	log.Printf("Database connection established: dialect=%s", db.Dialect)
	return db, nil
}

func openSQLite(ctx context.Context, path string) (*DB, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite path not set")
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	// One server per database file.
	lock := flock.New(path + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire database lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("database %s is in use by another process", path)
	}

	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000", path)
	sqlDB, err := sql.Open("sqlite3", dsn)
	if err != nil {
		lock.Unlock()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		lock.Unlock()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{DB: sqlDB, Dialect: DialectSQLite, lock: lock}, nil
}

func openPostgres(ctx context.Context, databaseURL string) (*DB, error) {
	sqlDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)
	sqlDB.SetConnMaxIdleTime(30 * time.Minute)

	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{DB: sqlDB, Dialect: DialectPostgres}, nil
}

// Migrate runs a goose command ("up", "down", "status", "redo", "reset", "version")
// against the embedded migrations for the DB's dialect.
func (db *DB) Migrate(ctx context.Context, command string, args ...string) error {
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect(string(db.Dialect)); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	dir := "migrations/" + string(db.Dialect)
	if err := goose.RunContext(ctx, command, db.DB, dir, args...); err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}
	return nil
}

// Store returns a gateway backed by the connection pool.
func (db *DB) Store() *Store {
	return &Store{exec: db.DB, dialect: db.Dialect}
}

// Acquire checks out a dedicated connection. The caller must Release it.
func (db *DB) Acquire(ctx context.Context) (*Session, error) {
	conn, err := db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire connection: %w", err)
	}
	return &Session{conn: conn, dialect: db.Dialect}, nil
}

func (db *DB) Close() error {
	err := db.DB.Close()
	if db.lock != nil {
		if uerr := db.lock.Unlock(); uerr != nil && err == nil {
			err = fmt.Errorf("failed to release database lock: %w", uerr)
		}
	}
	log.Println("Database connection closed")
	return err
}

// Session is one connection held for the span of a request.
type Session struct {
	conn    *sql.Conn
	dialect Dialect
}

func (s *Session) Store() *Store {
	return &Store{exec: s.conn, dialect: s.dialect}
}

func (s *Session) Release() error {
	return s.conn.Close()
}

type executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type beginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

// Store is the storage gateway for projects and tasks. The same Store code runs
// against the pool, a request connection, or a transaction.
type Store struct {
	exec    executor
	dialect Dialect
}

// InTx runs fn in a transaction and commits if it returns nil.
// A Store that is already inside a transaction runs fn directly.
func (s *Store) InTx(ctx context.Context, fn func(tx *Store) error) error {
	b, ok := s.exec.(beginner)
	if !ok {
		return fn(s)
	}

	tx, err := b.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(&Store{exec: tx, dialect: s.dialect}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	var one int
	if err := s.exec.QueryRowContext(ctx, "SELECT 1").Scan(&one); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	return nil
}

// rebind rewrites ? placeholders to $N for postgres.
func (s *Store) rebind(query string) string {
	if s.dialect != DialectPostgres || !strings.Contains(query, "?") {
		return query
	}

	var b strings.Builder
	n := 1
	for _, r := range query {
		if r == '?' {
			fmt.Fprintf(&b, "$%d", n)
			n++
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (s *Store) execContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return s.exec.ExecContext(ctx, s.rebind(query), args...)
}

func (s *Store) queryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return s.exec.QueryContext(ctx, s.rebind(query), args...)
}

func (s *Store) queryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return s.exec.QueryRowContext(ctx, s.rebind(query), args...)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

type rowsScanner interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}
