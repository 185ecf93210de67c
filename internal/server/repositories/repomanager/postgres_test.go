package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/farmauth/internal/server/migrations"
	"github.com/dmitrijs2005/farmauth/internal/server/models"
	"github.com/dmitrijs2005/farmauth/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func TestFactories_ReturnConcreteRepos(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	_, ok := NewPostgresRepositoryManager().Users(db).(*users.PostgresRepository)
	assert.True(t, ok, "postgres manager must vend PostgresRepository")

	_, ok = NewSQLiteRepositoryManager().Users(db).(*users.SQLiteRepository)
	assert.True(t, ok, "sqlite manager must vend SQLiteRepository")
}

func TestRunMigrations_PassesDialectAndFS(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	orig := gooseUp
	defer func() { gooseUp = orig }()

	var gotDialect goose.Dialect
	var gotFS fs.FS
	gooseUp = func(ctx context.Context, db *sql.DB, dialect goose.Dialect, fsys fs.FS) error {
		gotDialect, gotFS = dialect, fsys
		return nil
	}

	require.NoError(t, NewPostgresRepositoryManager().RunMigrations(context.Background(), db))
	assert.Equal(t, goose.DialectPostgres, gotDialect)
	assert.Equal(t, migrations.Postgres, gotFS)

	require.NoError(t, NewSQLiteRepositoryManager().RunMigrations(context.Background(), db))
	assert.Equal(t, goose.DialectSQLite3, gotDialect)
	assert.Equal(t, migrations.SQLite, gotFS)
}

func TestRunMigrations_Error(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	orig := gooseUp
	gooseUp = func(context.Context, *sql.DB, goose.Dialect, fs.FS) error {
		return errors.New("boom")
	}
	defer func() { gooseUp = orig }()

	err := NewPostgresRepositoryManager().RunMigrations(context.Background(), db)
	if err == nil || err.Error() != "boom" {
		t.Fatalf("expected boom, got %v", err)
	}
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, _, err := Open(context.Background(), "oracle", "x")
	assert.ErrorContains(t, err, `unsupported database driver "oracle"`)
}

func TestOpen_SQLiteMigratesAndServesUsers(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "auth.db")

	db, m, err := Open(ctx, DriverSQLite, dsn)
	require.NoError(t, err)
	defer db.Close()

	repo := m.Users(db)
	u, err := repo.Create(ctx, &models.User{Email: "alice@example.com", PasswordHash: "h", DisplayName: "Alice"})
	require.NoError(t, err)

	got, err := repo.GetUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	// Reopening the same file is a no-op migration.
	db2, _, err := Open(ctx, DriverSQLite, dsn)
	require.NoError(t, err)
	require.NoError(t, db2.Close())
}
