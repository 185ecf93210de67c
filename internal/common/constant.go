// Package common contains shared constants and sentinel errors used across
// farmauth components.
package common

// AuthorizationHeaderName is the gRPC metadata key (and HTTP header) carrying
// the bearer token on authenticated calls.
const AuthorizationHeaderName = "authorization"

// BearerScheme prefixes the token inside the authorization value.
const BearerScheme = "Bearer"

// TokenTypeBearer is reported to clients alongside an issued access token.
const TokenTypeBearer = "bearer"
