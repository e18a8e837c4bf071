package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // Postgres driver, registered as "pgx"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // SQLite driver, registered as "sqlite"
)

const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite"

	MaxOpenConns    = 10
	MaxIdleConns    = 2
	MaxConnLifetime = 10 * time.Minute
	MaxConnIdleTime = 5 * time.Minute
)

func init() {
	sqlx.BindDriver(DriverSQLite, sqlx.QUESTION)
}

// ParseURI maps a connection URI onto a registered driver name and its data source name.
// postgres:// and postgresql:// URIs go to pgx unchanged; sqlite://<path> goes to SQLite
// with the scheme stripped.
func ParseURI(uri string) (driver, dsn string, err error) {
	switch {
	case strings.HasPrefix(uri, "postgres://"), strings.HasPrefix(uri, "postgresql://"):
		return DriverPostgres, uri, nil
	case strings.HasPrefix(uri, "sqlite://"):
		dsn = strings.TrimPrefix(uri, "sqlite://")
		if dsn == "" {
			return "", "", fmt.Errorf("sqlite uri %q has no path", uri)
		}
		return DriverSQLite, dsn, nil
	default:
		return "", "", fmt.Errorf("unsupported database uri %q", uri)
	}
}

// New creates a new database connection pool for the given URI.
func New(ctx context.Context, uri string) (*sqlx.DB, error) {
	driver, dsn, err := ParseURI(uri)
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("error opening %s database: %w", driver, err)
	}

	if driver == DriverSQLite {
		// SQLite serializes writers; a single connection also keeps in-memory databases alive.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(MaxOpenConns)
		db.SetMaxIdleConns(MaxIdleConns)
		db.SetConnMaxLifetime(MaxConnLifetime)
		db.SetConnMaxIdleTime(MaxConnIdleTime)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("error pinging %s database: %w", driver, err)
	}
	return db, nil
}

const postgresSchema = `
	CREATE TABLE IF NOT EXISTS accounts (
		id SERIAL PRIMARY KEY,
		name VARCHAR(64) NOT NULL,
		email VARCHAR(64) NOT NULL,
		address VARCHAR(256) NOT NULL,
		phone_number VARCHAR(32),
		date_joined DATE NOT NULL DEFAULT CURRENT_DATE
	);`

const sqliteSchema = `
	CREATE TABLE IF NOT EXISTS accounts (
		id INTEGER PRIMARY KEY AUTOINCREMENT, -- ids of deleted rows are never handed out again
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		address TEXT NOT NULL,
		phone_number TEXT,
		date_joined DATE NOT NULL DEFAULT CURRENT_DATE
	);`

// Migrate runs the SQL statements to set up the database schema.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	stmt := postgresSchema
	if db.DriverName() == DriverSQLite {
		stmt = sqliteSchema
	}
	if _, err := db.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("failed to create accounts table: %w", err)
	}
	return nil
}
