package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/farmauth/internal/dbx"
	"github.com/dmitrijs2005/farmauth/internal/server/migrations"
	"github.com/dmitrijs2005/farmauth/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// SQLiteRepositoryManager vends SQLite-backed repositories.
type SQLiteRepositoryManager struct{}

func (m *SQLiteRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return gooseUp(ctx, db, goose.DialectSQLite3, migrations.SQLite)
}

func NewSQLiteRepositoryManager() RepositoryManager {
	return &SQLiteRepositoryManager{}
}
