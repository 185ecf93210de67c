// Package cli implements the farmauth command line: register, login,
// whoami, delete and ping against the gRPC AuthService.
package cli
