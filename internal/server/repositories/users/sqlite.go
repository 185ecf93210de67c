package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/farmauth/internal/common"
	"github.com/dmitrijs2005/farmauth/internal/dbx"
	"github.com/dmitrijs2005/farmauth/internal/server/models"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// SQLiteRepository stores users in SQLite (modernc driver). Used for local
// runs and integration tests; schema matches the Postgres one.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO users (email, password, name) VALUES (?, ?, ?) RETURNING user_id`,
		user.Email, user.PasswordHash, user.DisplayName).Scan(&user.ID)
	if err != nil {
		if isSQLiteConstraint(err) {
			return nil, common.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return user, nil
}

func (r *SQLiteRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return scanUser(r.db.QueryRowContext(ctx,
		`SELECT user_id, email, name, password FROM users WHERE email = ?`, email))
}

func (r *SQLiteRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return scanUser(r.db.QueryRowContext(ctx,
		`SELECT user_id, email, name, password FROM users WHERE user_id = ?`, id))
}

func (r *SQLiteRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE user_id = ?`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return checkAffected(res)
}

// The only constraint an insert into users can break with non-NULL values is
// the unique email.
func isSQLiteConstraint(err error) bool {
	var e *sqlite.Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Code()&0xff == sqlite3.SQLITE_CONSTRAINT
}
