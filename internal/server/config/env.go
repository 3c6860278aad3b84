package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// LoadFromEnv builds a Config from defaults overlaid with ADMINPANEL_*
// environment variables. Unset variables keep their defaults.
//
// Serverless runtimes pass no command line, so the function host uses this
// instead of Load.
func LoadFromEnv() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
