package client

import "errors"

var (
	ErrUnavailable        = errors.New("server unavailable")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrAlreadyRegistered  = errors.New("email already registered")
	ErrInvalidInput       = errors.New("invalid input")
)
