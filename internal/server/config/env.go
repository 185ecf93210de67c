package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// envConfig names the environment variables the server understands.
// Unset variables keep whatever the earlier layers produced.
type envConfig struct {
	EndpointAddrGRPC         string        `env:"GRPC_ADDRESS"`
	EndpointAddrHTTP         string        `env:"HTTP_ADDRESS"`
	DatabaseDriver           string        `env:"DATABASE_DRIVER"`
	DatabaseDSN              string        `env:"DATABASE_DSN"`
	SecretKey                string        `env:"SECRET_KEY"`
	AccessTokenExpireMinutes int           `env:"ACCESS_TOKEN_EXPIRE_MINUTES"`
	RequestTimeout           time.Duration `env:"REQUEST_TIMEOUT"`
	CORSOrigins              []string      `env:"CORS_ORIGINS" envSeparator:","`
}

// parseEnv overlays environment variables onto config. A nil environ reads
// the process environment.
func parseEnv(config *Config, environ map[string]string) error {
	var e envConfig
	opts := env.Options{}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(&e, opts); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	setString(&config.EndpointAddrGRPC, e.EndpointAddrGRPC)
	setString(&config.EndpointAddrHTTP, e.EndpointAddrHTTP)
	setString(&config.DatabaseDriver, e.DatabaseDriver)
	setString(&config.DatabaseDSN, e.DatabaseDSN)
	setString(&config.SecretKey, e.SecretKey)

	if e.AccessTokenExpireMinutes > 0 {
		config.AccessTokenValidityDuration = time.Duration(e.AccessTokenExpireMinutes) * time.Minute
	}
	if e.RequestTimeout > 0 {
		config.RequestTimeout = e.RequestTimeout
	}
	if len(e.CORSOrigins) > 0 {
		config.CORSOrigins = e.CORSOrigins
	}
	return nil
}
