package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

type envConfig struct {
	ServerEndpointAddr string `env:"FARMAUTH_ADDRESS"`
	Token              string `env:"FARMAUTH_TOKEN"`
}

// parseEnv overlays set variables. A nil environ reads the process
// environment.
func parseEnv(config *Config, environ map[string]string) error {
	var e envConfig
	if err := env.ParseWithOptions(&e, env.Options{Environment: environ}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	if e.ServerEndpointAddr != "" {
		config.ServerEndpointAddr = e.ServerEndpointAddr
	}
	if e.Token != "" {
		config.Token = e.Token
	}
	return nil
}
