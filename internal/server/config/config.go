// Package config handles configuration for the API server: built-in
// defaults, an optional JSON file, command-line flags, and (for the function
// host, which gets no flags) environment variables.
package config

import (
	"fmt"
	"os"
	"time"
)

const (
	// TokenSchemeJWT signs session tokens with SecretKey (HS256).
	TokenSchemeJWT = "jwt"
	// TokenSchemeOpaque issues the unsigned base64 JSON tokens older front
	// ends expect. Anyone holding a token can forge one; demo use only.
	TokenSchemeOpaque = "opaque"
)

// Config holds runtime settings for the adminpanel API server.
//
// Fields:
//   - EndpointAddrHTTP: bind address of the REST API.
//   - EndpointAddrGRPC: bind address of the gRPC health endpoint; empty disables it.
//   - SecretKey: HMAC secret for the jwt token scheme. Do not use the default in prod.
//   - TokenScheme: "jwt" or "opaque".
//   - TokenValidityDuration: session token lifetime.
//   - AllowedOrigins: CORS origins; "*" allows any.
//   - SeedFile: optional YAML file replacing the built-in datasets.
//   - ShutdownTimeout: grace period for in-flight requests on shutdown.
type Config struct {
	EndpointAddrHTTP      string        `env:"ADMINPANEL_HTTP_ADDR"`
	EndpointAddrGRPC      string        `env:"ADMINPANEL_GRPC_ADDR"`
	SecretKey             string        `env:"ADMINPANEL_SECRET_KEY"`
	TokenScheme           string        `env:"ADMINPANEL_TOKEN_SCHEME"`
	TokenValidityDuration time.Duration `env:"ADMINPANEL_TOKEN_TTL"`
	AllowedOrigins        []string      `env:"ADMINPANEL_ALLOWED_ORIGINS" envSeparator:","`
	SeedFile              string        `env:"ADMINPANEL_SEED_FILE"`
	ShutdownTimeout       time.Duration `env:"ADMINPANEL_SHUTDOWN_TIMEOUT"`
}

// LoadDefaults populates Config with development defaults.
// NOTE: SecretKey must be overridden outside local development.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":3001"
	c.EndpointAddrGRPC = ""
	c.SecretKey = "secretKey"
	c.TokenScheme = TokenSchemeJWT
	c.TokenValidityDuration = 24 * time.Hour
	c.AllowedOrigins = []string{"*"}
	c.SeedFile = ""
	c.ShutdownTimeout = 5 * time.Second
}

// Validate reports settings the server cannot start with.
func (c *Config) Validate() error {
	switch c.TokenScheme {
	case TokenSchemeJWT:
		if c.SecretKey == "" {
			return fmt.Errorf("token scheme %q requires a secret key", c.TokenScheme)
		}
	case TokenSchemeOpaque:
	default:
		return fmt.Errorf("unknown token scheme %q", c.TokenScheme)
	}
	if c.TokenValidityDuration <= 0 {
		return fmt.Errorf("token validity must be positive, got %s", c.TokenValidityDuration)
	}
	return nil
}

// Load builds a Config by applying defaults, then overlaying values from an
// optional JSON file and finally from the given command-line arguments.
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
