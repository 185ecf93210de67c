// Package users is the identity store gateway: lookup, insert and removal of
// user records. Email uniqueness is enforced by the database constraint, so
// concurrent registrations of one email resolve to exactly one row no matter
// how many service instances run.
package users

import (
	"context"

	"github.com/dmitrijs2005/farmauth/internal/server/models"
)

type Repository interface {
	// Create inserts user and fills in its ID. Returns common.ErrDuplicateEmail
	// if the email is taken.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	// GetUserByEmail returns common.ErrorNotFound when no user has that email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	Delete(ctx context.Context, id int64) error
}
