package config

import (
	"fmt"
	"net/url"
	"os"
	"time"
)

// Config holds runtime settings for the adminpanel CLI.
//
// Fields:
//   - ServerURL: base URL of the REST API, e.g. http://127.0.0.1:3001/api.
//   - SessionDB: SQLite file that keeps the session between runs.
//   - RequestTimeout: upper bound for a single API call.
type Config struct {
	ServerURL      string
	SessionDB      string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:3001/api"
	c.SessionDB = "session.db"
	c.RequestTimeout = 10 * time.Second
}

func (c *Config) Validate() error {
	u, err := url.Parse(c.ServerURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid server url %q", c.ServerURL)
	}
	if c.SessionDB == "" {
		return fmt.Errorf("session db path is empty")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout)
	}
	return nil
}

// Load constructs a Config, applies defaults, then overlays values from JSON
// (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig is Load over the process arguments.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}
