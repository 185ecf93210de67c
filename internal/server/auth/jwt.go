// Package auth holds the credential primitives: argon2id password hashing and
// the HS256 session-token codec. Nothing in here touches storage.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/farmauth/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is used when neither the caller nor the config sets one.
const DefaultTokenTTL = 24 * time.Hour

// TokenCodec issues and validates stateless HS256 access tokens. The subject
// claim carries the user's email. A codec is immutable and safe for
// concurrent use.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
	leeway time.Duration
	now    func() time.Time
}

type TokenOption func(*TokenCodec)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) TokenOption {
	return func(c *TokenCodec) { c.now = now }
}

// WithLeeway tolerates small clock skew when checking exp.
func WithLeeway(d time.Duration) TokenOption {
	return func(c *TokenCodec) { c.leeway = d }
}

func NewTokenCodec(secret []byte, ttl time.Duration, opts ...TokenOption) *TokenCodec {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	c := &TokenCodec{
		secret: append([]byte(nil), secret...),
		ttl:    ttl,
		now:    time.Now,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// TTL is the lifetime applied when Issue gets a non-positive ttl.
func (c *TokenCodec) TTL() time.Duration { return c.ttl }

// Issue signs {sub, iat, exp}. A non-positive ttl falls back to the codec default.
func (c *TokenCodec) Issue(subject string, ttl time.Duration) (string, error) {
	if subject == "" {
		return "", common.ErrInvalidToken
	}
	if ttl <= 0 {
		ttl = c.ttl
	}

	now := c.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	})

	return token.SignedString(c.secret)
}

// Validate checks signature, algorithm, expiry and subject and returns the
// subject. It says nothing about whether that subject still exists.
func (c *TokenCodec) Validate(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(c.leeway),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", common.ErrInvalidToken
	}

	if !token.Valid || claims.Subject == "" {
		return "", common.ErrInvalidToken
	}

	return claims.Subject, nil
}
