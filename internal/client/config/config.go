package config

import "time"

// Config holds runtime settings for the farmauth CLI.
type Config struct {
	ServerEndpointAddr string
	Timeout            time.Duration
	Token              string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.Timeout = 10 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	if err := parseEnv(cfg, nil); err != nil {
		panic(err)
	}
	parseFlags(cfg)
	return cfg
}
