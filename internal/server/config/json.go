package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/adminpanel/internal/flagx"
	"github.com/dmitrijs2005/adminpanel/internal/timex"
)

// JsonConfig is the on-disk shape of the server config file. Durations use
// timex.Duration so both "24h" and integer nanoseconds are accepted.
//
//	{
//	  "endpoint_addr_http": ":3001",
//	  "secret_key": "change-me",
//	  "token_scheme": "jwt",
//	  "token_validity_duration": "24h",
//	  "allowed_origins": ["http://localhost:5173"]
//	}
type JsonConfig struct {
	EndpointAddrHTTP      string         `json:"endpoint_addr_http"`
	EndpointAddrGRPC      string         `json:"endpoint_addr_grpc"`
	SecretKey             string         `json:"secret_key"`
	TokenScheme           string         `json:"token_scheme"`
	TokenValidityDuration timex.Duration `json:"token_validity_duration"`
	AllowedOrigins        []string       `json:"allowed_origins"`
	SeedFile              string         `json:"seed_file"`
	ShutdownTimeout       timex.Duration `json:"shutdown_timeout"`
}

// parseJson overlays config with the JSON file named by -c/-config in args.
// Only keys present with a non-zero value override what is already set.
func parseJson(config *Config, args []string) error {
	path := flagx.ConfigFile(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	setString(&config.EndpointAddrHTTP, jc.EndpointAddrHTTP)
	setString(&config.EndpointAddrGRPC, jc.EndpointAddrGRPC)
	setString(&config.SecretKey, jc.SecretKey)
	setString(&config.TokenScheme, jc.TokenScheme)
	setString(&config.SeedFile, jc.SeedFile)
	if jc.TokenValidityDuration.Duration != 0 {
		config.TokenValidityDuration = jc.TokenValidityDuration.Duration
	}
	if jc.ShutdownTimeout.Duration != 0 {
		config.ShutdownTimeout = jc.ShutdownTimeout.Duration
	}
	if len(jc.AllowedOrigins) > 0 {
		config.AllowedOrigins = jc.AllowedOrigins
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
