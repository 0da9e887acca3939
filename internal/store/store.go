package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Supported values for the database.driver setting.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

// dialect captures the handful of DDL differences between the supported
// databases. Queries themselves are written with ? placeholders and rebound
// by sqlx for the active driver.
type dialect struct {
	name       string
	sqlDriver  string
	timestamp  string
	boolean    string
	singleConn bool
}

var dialects = map[string]dialect{
	DriverSQLite:   {name: DriverSQLite, sqlDriver: "sqlite", timestamp: "DATETIME", boolean: "INTEGER", singleConn: true},
	DriverPostgres: {name: DriverPostgres, sqlDriver: "pgx", timestamp: "TIMESTAMPTZ", boolean: "BOOLEAN"},
	DriverMySQL:    {name: DriverMySQL, sqlDriver: "mysql", timestamp: "DATETIME(6)", boolean: "BOOLEAN"},
}

// Store is the content repository of the site backend. It persists admins,
// the public content entities, the company profile, and contact submissions.
type Store struct {
	db      *sqlx.DB
	dialect dialect
}

// NewStore opens a SQLite store under dataDir. Pass empty string for an
// in-memory database.
func NewStore(dataDir string) (*Store, error) {
	var dsn string
	if dataDir == "" {
		dsn = ":memory:?_journal_mode=WAL"
	} else {
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
		dsn = filepath.Join(dataDir, "corpsite.db") + "?_journal_mode=WAL&_busy_timeout=5000"
	}
	return Open(DriverSQLite, dsn)
}

// Open connects to the database identified by driver and dsn and applies
// the schema migrations.
func Open(driver, dsn string) (*Store, error) {
	d, ok := dialects[driver]
	if !ok {
		return nil, fmt.Errorf("unsupported database driver %q (use sqlite, postgres or mysql)", driver)
	}

	if d.name == DriverMySQL {
		normalized, err := normalizeMySQLDSN(dsn)
		if err != nil {
			return nil, fmt.Errorf("parse mysql dsn: %w", err)
		}
		dsn = normalized
	}

	db, err := sqlx.Connect(d.sqlDriver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", driver, err)
	}

	if d.singleConn {
		db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	s := &Store{db: db, dialect: d}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate %s database: %w", driver, err)
	}
	return s, nil
}

// normalizeMySQLDSN forces the options the store depends on: DATETIME
// columns scanned into time.Time, and UPDATE reporting matched rather than
// changed rows so that an unchanged save is not mistaken for a missing row.
func normalizeMySQLDSN(dsn string) (string, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", err
	}
	cfg.ParseTime = true
	cfg.ClientFoundRows = true
	if cfg.Loc == nil {
		cfg.Loc = time.UTC
	}
	return cfg.FormatDSN(), nil
}

// Driver returns the configured driver name (sqlite, postgres or mysql).
func (s *Store) Driver() string {
	return s.dialect.name
}

// Ping verifies the database connection is alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// get runs a single-row query, translating sql.ErrNoRows to ErrNotFound.
func (s *Store) get(ctx context.Context, dest interface{}, what, query string, args ...interface{}) error {
	if err := s.db.GetContext(ctx, dest, s.db.Rebind(query), args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("get %s: %w", what, err)
	}
	return nil
}

// selectAll runs a multi-row query.
func (s *Store) selectAll(ctx context.Context, dest interface{}, what, query string, args ...interface{}) error {
	if err := s.db.SelectContext(ctx, dest, s.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("list %s: %w", what, err)
	}
	return nil
}

// namedExec runs an INSERT or UPDATE bound from a struct. When mustExist is
// set, zero affected rows is reported as ErrNotFound.
func (s *Store) namedExec(ctx context.Context, what, query string, arg interface{}, mustExist bool) error {
	result, err := s.db.NamedExecContext(ctx, query, arg)
	if err != nil {
		return classifyError(fmt.Errorf("%s: %w", what, err))
	}
	if !mustExist {
		return nil
	}
	return requireRows(result, what)
}

// exec runs a statement with positional arguments. When mustExist is set,
// zero affected rows is reported as ErrNotFound.
func (s *Store) exec(ctx context.Context, what, query string, mustExist bool, args ...interface{}) error {
	result, err := s.db.ExecContext(ctx, s.db.Rebind(query), args...)
	if err != nil {
		return classifyError(fmt.Errorf("%s: %w", what, err))
	}
	if !mustExist {
		return nil
	}
	return requireRows(result, what)
}

func requireRows(result sql.Result, what string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", what, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// classifyError wraps unique constraint violations from any of the supported
// drivers with ErrConflict. Other errors are returned unchanged.
func classifyError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return fmt.Errorf("%w: %v", ErrConflict, err)
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && myErr.Number == 1062 {
		return fmt.Errorf("%w: %v", ErrConflict, err)
	}
	if strings.Contains(strings.ToLower(err.Error()), "unique constraint") {
		return fmt.Errorf("%w: %v", ErrConflict, err)
	}
	return err
}

// now returns the current time truncated to microseconds, the finest
// precision all supported databases keep.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
