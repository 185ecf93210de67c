package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/farmauth/internal/flagx"
)

// parseFlags overlays -a, -timeout and -token. Positional arguments (the
// command) are left for the caller.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-timeout", "-token"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.ServerEndpointAddr, "a", config.ServerEndpointAddr, "address and port of the server")
	timeout := fs.Int("timeout", int(config.Timeout.Seconds()), "per-call timeout (in seconds)")
	fs.StringVar(&config.Token, "token", config.Token, "access token")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.Timeout = time.Duration(*timeout) * time.Second
}
