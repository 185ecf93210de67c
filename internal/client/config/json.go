package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/farmauth/internal/flagx"
	"github.com/dmitrijs2005/farmauth/internal/timex"
)

type JsonConfig struct {
	ServerEndpointAddr string          `json:"server_endpoint_addr"`
	Timeout            *timex.Duration `json:"timeout"`
}

// parseJson overlays values from the file given by -c / -config. It panics
// on an unreadable file or invalid JSON.
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

	if c.ServerEndpointAddr != "" {
		config.ServerEndpointAddr = c.ServerEndpointAddr
	}
	if c.Timeout != nil {
		config.Timeout = c.Timeout.Duration
	}
}
