package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/farmauth/internal/flagx"
	"github.com/dmitrijs2005/farmauth/internal/timex"
)

// JsonConfig is the on-disk shape of the configuration file. Durations are
// timex.Duration so that both "15m" and integer nanoseconds are accepted.
// Keys that are absent leave the current value untouched.
type JsonConfig struct {
	EndpointAddrGRPC            string          `json:"endpoint_addr_grpc"`
	EndpointAddrHTTP            string          `json:"endpoint_addr_http"`
	DatabaseDriver              string          `json:"database_driver"`
	DatabaseDSN                 string          `json:"database_dsn"`
	SecretKey                   string          `json:"secret_key"`
	AccessTokenValidityDuration *timex.Duration `json:"access_token_validity_duration"`
	RequestTimeout              *timex.Duration `json:"request_timeout"`
	CORSOrigins                 []string        `json:"cors_origins"`
}

// parseJson overlays values from the file named by -c / -config.
// No flag means nothing to load. An unreadable file or invalid JSON panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.ConfigFileFromArgs(os.Args[1:])
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	c.apply(config)
}

func (c *JsonConfig) apply(config *Config) {
	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.DatabaseDriver, c.DatabaseDriver)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	if c.AccessTokenValidityDuration != nil {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.RequestTimeout != nil {
		config.RequestTimeout = c.RequestTimeout.Duration
	}
	if len(c.CORSOrigins) > 0 {
		config.CORSOrigins = c.CORSOrigins
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
