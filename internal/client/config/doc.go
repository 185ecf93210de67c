// Package config loads runtime configuration for the farmauth CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Environment: FARMAUTH_ADDRESS, FARMAUTH_TOKEN.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string       address:port of the gRPC endpoint
//	-timeout int    per-call timeout (seconds)
//	-token string   access token for authenticated commands
//
// # JSON schema
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "timeout": "10s"
//	}
//
// The token is deliberately not read from the JSON file.
package config
