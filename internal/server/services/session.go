package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/farmauth/internal/common"
	"github.com/dmitrijs2005/farmauth/internal/dbx"
	"github.com/dmitrijs2005/farmauth/internal/logging"
	"github.com/dmitrijs2005/farmauth/internal/server/models"
	"github.com/dmitrijs2005/farmauth/internal/server/repositories/repomanager"
)

// SessionResolver turns a bearer token into the current user record.
type SessionResolver struct {
	db          dbx.DBTX
	repomanager repomanager.RepositoryManager
	tokens      TokenValidator
	logger      logging.Logger
}

func NewSessionResolver(db dbx.DBTX, m repomanager.RepositoryManager, tokens TokenValidator, logger logging.Logger) *SessionResolver {
	return &SessionResolver{
		db:          db,
		repomanager: m,
		tokens:      tokens,
		logger:      logger.With("module", "sessions"),
	}
}

// Resolve validates the token and loads its subject from the store.
// Missing, invalid or expired tokens and tokens whose user no longer exists
// all yield common.ErrorUnauthorized. Other store failures yield
// common.ErrStoreUnavailable.
func (r *SessionResolver) Resolve(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, common.ErrorUnauthorized
	}

	email, err := r.tokens.Validate(token)
	if err != nil {
		r.logger.Debug(ctx, "token rejected", "reason", err)
		return nil, common.ErrorUnauthorized
	}

	user, err := r.repomanager.Users(r.db).GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		r.logger.Error(ctx, "user lookup failed", "error", err)
		return nil, fmt.Errorf("%w: %v", common.ErrStoreUnavailable, err)
	}

	return user.Public(), nil
}
