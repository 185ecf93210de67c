// Package client is the CLI's gRPC client for the farmauth AuthService.
// It attaches the access token to authenticated calls and maps gRPC status
// codes onto a few client-side errors.
package client
