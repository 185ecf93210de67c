// Package common defines shared constants and sentinel errors used across
// the server, its transports and the CLI client. Callers should use errors.Is
// to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound     = errors.New("not found")
	ErrDuplicateEmail = errors.New("email already registered")

	// Service-level errors.
	ErrorInternal         = errors.New("internal error")
	ErrorUnauthorized     = errors.New("unauthorized")
	ErrorValidation       = errors.New("validation error")
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrStoreUnavailable   = errors.New("store unavailable")

	// Token errors. Both mean the token must not be trusted.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
