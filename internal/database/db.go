// Package database provides database connection and initialization functionality.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "github.com/lib/pq"  // PostgreSQL driver
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Driver identifies the SQL backend
type Driver string

const (
	// DriverSQLite uses modernc.org/sqlite
	DriverSQLite Driver = "sqlite"
	// DriverPostgres uses github.com/lib/pq
	DriverPostgres Driver = "postgres"
)

// DatabaseProfile defines different configuration profiles for databases
type DatabaseProfile string

const (
	// ProfileReadOnly - analytics reads only, writes are rejected by SQLite
	ProfileReadOnly DatabaseProfile = "readonly"
	// ProfileStandard - Balanced configuration, used when fixtures are loaded
	ProfileStandard DatabaseProfile = "standard"
)

// DB wraps the database connection with production-grade configuration
type DB struct {
	conn    *sql.DB
	driver  Driver
	dsn     string
	profile DatabaseProfile
	name    string // Database name for logging
}

// Config holds database configuration
type Config struct {
	Driver  Driver
	DSN     string // file path or file: URI for SQLite, connection URL for PostgreSQL
	Profile DatabaseProfile
	Name    string // Friendly name for logging (e.g., "ecoledger")
}

// New opens a database connection and verifies it with a ping
func New(cfg Config) (*DB, error) {
	if cfg.Driver == "" {
		cfg.Driver = DriverSQLite
	}
	if cfg.Profile == "" {
		cfg.Profile = ProfileReadOnly
	}
	if cfg.DSN == "" {
		return nil, fmt.Errorf("database %s: empty DSN", cfg.Name)
	}

	var connStr string
	switch cfg.Driver {
	case DriverSQLite:
		dsn, err := resolveSQLitePath(cfg.DSN)
		if err != nil {
			return nil, err
		}
		cfg.DSN = dsn
		connStr = buildSQLiteConnectionString(cfg.DSN, cfg.Profile)
	case DriverPostgres:
		connStr = cfg.DSN
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	conn, err := sql.Open(string(cfg.Driver), connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", cfg.Name, err)
	}

	configureConnectionPool(conn, cfg.Driver)

	// Test connection with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to ping database %s: %w", cfg.Name, err)
	}

	db := &DB{
		conn:    conn,
		driver:  cfg.Driver,
		dsn:     cfg.DSN,
		profile: cfg.Profile,
		name:    cfg.Name,
	}

	if err := db.applySessionSettings(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to apply session settings for %s: %w", cfg.Name, err)
	}

	return db, nil
}

// resolveSQLitePath makes plain file paths absolute. file: URIs (used for
// in-memory databases in tests) are returned as-is.
func resolveSQLitePath(path string) (string, error) {
	if strings.HasPrefix(path, "file:") {
		return path, nil
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve database path to absolute: %w", err)
	}
	if _, err := os.Stat(absPath); err != nil {
		return "", fmt.Errorf("database file %s: %w", absPath, err)
	}
	return absPath, nil
}

// buildSQLiteConnectionString appends PRAGMAs for the profile
func buildSQLiteConnectionString(path string, profile DatabaseProfile) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	connStr := path + sep + "_pragma=busy_timeout(5000)"

	switch profile {
	case ProfileReadOnly:
		connStr += "&_pragma=query_only(1)" // Reject writes
	case ProfileStandard:
		connStr += "&_pragma=foreign_keys(1)"
	}

	connStr += "&_pragma=cache_size(-16000)" // 16MB cache (negative = KB)

	return connStr
}

// configureConnectionPool sets connection pool parameters
func configureConnectionPool(conn *sql.DB, driver Driver) {
	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(4)
	conn.SetConnMaxLifetime(1 * time.Hour)
	conn.SetConnMaxIdleTime(10 * time.Minute)

	if driver == DriverPostgres {
		conn.SetMaxOpenConns(20)
	}
}

// applySessionSettings marks PostgreSQL sessions read-only for the read-only profile
func (db *DB) applySessionSettings(ctx context.Context) error {
	if db.driver != DriverPostgres || db.profile != ProfileReadOnly {
		return nil
	}
	_, err := db.conn.ExecContext(ctx, "SET SESSION CHARACTERISTICS AS TRANSACTION READ ONLY")
	return err
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// Conn returns the underlying *sql.DB
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// Name returns the database name
func (db *DB) Name() string {
	return db.name
}

// Driver returns the SQL driver in use
func (db *DB) Driver() Driver {
	return db.driver
}

// Profile returns the database profile
func (db *DB) Profile() DatabaseProfile {
	return db.profile
}

// Rebind rewrites ? placeholders into $N for PostgreSQL.
// Queries must not contain literal question marks.
func (db *DB) Rebind(query string) string {
	if db.driver != DriverPostgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// QueryContext executes a query with context
func (db *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return db.conn.QueryContext(ctx, db.Rebind(query), args...)
}

// QueryRowContext executes a single-row query with context
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return db.conn.QueryRowContext(ctx, db.Rebind(query), args...)
}

// HealthCheck pings the database and runs a trivial query
func (db *DB) HealthCheck(ctx context.Context) error {
	if err := db.conn.PingContext(ctx); err != nil {
		return fmt.Errorf("ping failed for %s: %w", db.name, err)
	}

	var one int
	if err := db.conn.QueryRowContext(ctx, "SELECT 1").Scan(&one); err != nil {
		return fmt.Errorf("health query failed for %s: %w", db.name, err)
	}

	return nil
}
