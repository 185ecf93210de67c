// Package repomanager vends dialect-specific repository implementations and
// runs the matching embedded goose migrations.
package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"

	"github.com/dmitrijs2005/farmauth/internal/dbx"
	"github.com/dmitrijs2005/farmauth/internal/server/migrations"
	"github.com/dmitrijs2005/farmauth/internal/server/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// Supported values for the database driver setting.
const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite"
)

// PostgresRepositoryManager vends PostgreSQL-backed repositories.
type PostgresRepositoryManager struct{}

// Users returns a users.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

// RunMigrations applies the embedded Postgres migrations.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return gooseUp(ctx, db, goose.DialectPostgres, migrations.Postgres)
}

// gooseUp is a seam for tests.
var gooseUp = func(ctx context.Context, db *sql.DB, dialect goose.Dialect, fsys fs.FS) error {
	p, err := goose.NewProvider(dialect, db, fsys)
	if err != nil {
		return err
	}
	_, err = p.Up(ctx)
	return err
}

// NewPostgresRepositoryManager constructs a PostgreSQL-backed RepositoryManager.
func NewPostgresRepositoryManager() RepositoryManager {
	return &PostgresRepositoryManager{}
}

// Open connects to the database named by driver/dsn, applies migrations and
// returns the handle together with the matching manager.
func Open(ctx context.Context, driver, dsn string) (*sql.DB, RepositoryManager, error) {
	var m RepositoryManager
	switch driver {
	case DriverPostgres, "postgres":
		driver = DriverPostgres
		m = NewPostgresRepositoryManager()
	case DriverSQLite:
		m = NewSQLiteRepositoryManager()
	default:
		return nil, nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("db open error: %w", err)
	}
	if driver == DriverSQLite {
		// SQLite has a single writer; queueing on one connection turns
		// SQLITE_BUSY into ordinary waiting.
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("db ping error: %w", err)
	}

	if err := m.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("migration error: %w", err)
	}

	return db, m, nil
}
