package services

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"

	"github.com/dmitrijs2005/farmauth/internal/common"
	"github.com/dmitrijs2005/farmauth/internal/dbx"
	"github.com/dmitrijs2005/farmauth/internal/server/auth"
	"github.com/dmitrijs2005/farmauth/internal/server/models"
	usersrepo "github.com/dmitrijs2005/farmauth/internal/server/repositories/users"
)

var errBoom = errors.New("boom")

func fastHasher() *auth.Argon2 {
	return &auth.Argon2{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}
}

// fakeUsersRepo is an in-memory users.Repository with error injection.
type fakeUsersRepo struct {
	mu     sync.Mutex
	byMail map[string]*models.User
	nextID int64

	getErr    error
	createErr error
	deleteErr error

	creates int
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{byMail: map[string]*models.User{}}
}

func (f *fakeUsersRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates++
	if f.createErr != nil {
		return nil, f.createErr
	}
	if _, ok := f.byMail[u.Email]; ok {
		return nil, common.ErrDuplicateEmail
	}
	f.nextID++
	c := *u
	c.ID = f.nextID
	f.byMail[c.Email] = &c
	out := c
	return &out, nil
}

func (f *fakeUsersRepo) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byMail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	c := *u
	return &c, nil
}

func (f *fakeUsersRepo) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, u := range f.byMail {
		if u.ID == id {
			c := *u
			return &c, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for k, u := range f.byMail {
		if u.ID == id {
			delete(f.byMail, k)
			return nil
		}
	}
	return common.ErrorNotFound
}

type fakeRepoManager struct {
	u *fakeUsersRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) usersrepo.Repository          { return m.u }

// fakeTokens issues "tok:<subject>" and accepts only those.
type fakeTokens struct {
	issueErr error
	lastTTL  time.Duration
}

func (f *fakeTokens) Issue(subject string, ttl time.Duration) (string, error) {
	if f.issueErr != nil {
		return "", f.issueErr
	}
	f.lastTTL = ttl
	return "tok:" + subject, nil
}

func (f *fakeTokens) Validate(token string) (string, error) {
	if len(token) > 4 && token[:4] == "tok:" {
		return token[4:], nil
	}
	return "", common.ErrInvalidToken
}

// countingHasher wraps a hasher and records Verify calls.
type countingHasher struct {
	auth.PasswordHasher
	mu       sync.Mutex
	verifies int
	hashErr  error
}

func (c *countingHasher) Hash(p string) (string, error) {
	if c.hashErr != nil {
		return "", c.hashErr
	}
	return c.PasswordHasher.Hash(p)
}

func (c *countingHasher) Verify(p, h string) bool {
	c.mu.Lock()
	c.verifies++
	c.mu.Unlock()
	return c.PasswordHasher.Verify(p, h)
}
