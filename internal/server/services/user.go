// Package services contains server-side business logic: registration,
// login and resolving access tokens back to users. Transports call into
// this package and translate its sentinel errors.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/farmauth/internal/common"
	"github.com/dmitrijs2005/farmauth/internal/dbx"
	"github.com/dmitrijs2005/farmauth/internal/logging"
	"github.com/dmitrijs2005/farmauth/internal/server/auth"
	"github.com/dmitrijs2005/farmauth/internal/server/config"
	"github.com/dmitrijs2005/farmauth/internal/server/models"
	"github.com/dmitrijs2005/farmauth/internal/server/repositories/repomanager"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// TokenIssuer mints access tokens for a subject.
type TokenIssuer interface {
	Issue(subject string, ttl time.Duration) (string, error)
}

// TokenValidator checks an access token and returns its subject.
type TokenValidator interface {
	Validate(token string) (string, error)
}

// TokenResponse is what a successful login hands back to the caller.
type TokenResponse struct {
	AccessToken string
	TokenType   string
	ExpiresIn   time.Duration
}

// UserService provides account operations:
//   - Register: create users with a hashed password
//   - Login: verify credentials and mint an access token
//   - DeleteAccount: remove a user; outstanding tokens stop resolving
type UserService struct {
	db          dbx.DBTX
	repomanager repomanager.RepositoryManager
	hasher      auth.PasswordHasher
	tokens      TokenIssuer
	tokenTTL    time.Duration
	logger      logging.Logger

	// dummyHash is verified against when the email is unknown so that
	// both failure paths cost one argon2 computation.
	dummyHash string
}

// NewUserService constructs a UserService. It hashes a throwaway password
// once, which fails only if the system RNG does.
func NewUserService(db dbx.DBTX, m repomanager.RepositoryManager, hasher auth.PasswordHasher,
	tokens TokenIssuer, cfg *config.Config, logger logging.Logger) (*UserService, error) {

	dummy, err := hasher.Hash("farmauth-dummy-password")
	if err != nil {
		return nil, fmt.Errorf("error preparing hasher: %w", err)
	}

	return &UserService{
		db:          db,
		repomanager: m,
		hasher:      hasher,
		tokens:      tokens,
		tokenTTL:    cfg.AccessTokenValidityDuration,
		logger:      logger.With("module", "users"),
		dummyHash:   dummy,
	}, nil
}

type registerInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

func (r registerInput) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, validation.Length(3, 255), is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(1, 1024)),
		validation.Field(&r.Name, validation.Required, validation.RuneLength(1, 255)),
	)
}

// Register validates the input, hashes the password and stores a new user.
// The email must not be taken; a concurrent registration of the same email
// is caught by the store's unique constraint. The returned user carries no
// password hash.
func (s *UserService) Register(ctx context.Context, email, password, displayName string) (*models.User, error) {
	in := registerInput{Email: email, Password: password, Name: displayName}
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}

	repo := s.repomanager.Users(s.db)

	_, err := repo.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, common.ErrDuplicateEmail
	case !errors.Is(err, common.ErrorNotFound):
		s.logger.Error(ctx, "user lookup failed", "error", err)
		return nil, fmt.Errorf("%w: %v", common.ErrStoreUnavailable, err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		s.logger.Error(ctx, "password hashing failed", "error", err)
		return nil, common.ErrorInternal
	}

	u, err := repo.Create(ctx, &models.User{Email: email, DisplayName: displayName, PasswordHash: hash})
	if err != nil {
		if errors.Is(err, common.ErrDuplicateEmail) {
			return nil, common.ErrDuplicateEmail
		}
		s.logger.Error(ctx, "user insert failed", "error", err)
		return nil, fmt.Errorf("%w: %v", common.ErrStoreUnavailable, err)
	}

	s.logger.Info(ctx, "user registered", "user_id", u.ID)
	return u.Public(), nil
}

// Login checks the credentials and issues an access token. Unknown email
// and wrong password are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, email, password string) (*TokenResponse, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.hasher.Verify(password, s.dummyHash)
			return nil, common.ErrInvalidCredentials
		}
		s.logger.Error(ctx, "user lookup failed", "error", err)
		return nil, fmt.Errorf("%w: %v", common.ErrStoreUnavailable, err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, common.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.Email, s.tokenTTL)
	if err != nil {
		s.logger.Error(ctx, "token issue failed", "error", err)
		return nil, common.ErrorInternal
	}

	ttl := s.tokenTTL
	if ttl <= 0 {
		ttl = auth.DefaultTokenTTL
	}

	return &TokenResponse{AccessToken: token, TokenType: common.TokenTypeBearer, ExpiresIn: ttl}, nil
}

// DeleteAccount removes the user. Tokens already issued for it will fail
// resolution from now on.
func (s *UserService) DeleteAccount(ctx context.Context, userID int64) error {
	repo := s.repomanager.Users(s.db)

	u, err := repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		s.logger.Error(ctx, "user lookup failed", "user_id", userID, "error", err)
		return fmt.Errorf("%w: %v", common.ErrStoreUnavailable, err)
	}

	if err := repo.Delete(ctx, u.ID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		s.logger.Error(ctx, "user delete failed", "user_id", userID, "error", err)
		return fmt.Errorf("%w: %v", common.ErrStoreUnavailable, err)
	}

	s.logger.Info(ctx, "user deleted", "user_id", u.ID, "email", u.Email)
	return nil
}
