package config

import (
	"flag"

	"github.com/dmitrijs2005/adminpanel/internal/flagx"
)

// parseFlags populates Config fields from command-line flags. Flags owned by
// other components are ignored.
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("client", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerURL, "u", cfg.ServerURL, "base URL of the API")
	fs.StringVar(&cfg.SessionDB, "d", cfg.SessionDB, "session database file")
	fs.DurationVar(&cfg.RequestTimeout, "t", cfg.RequestTimeout, "per-request timeout")

	return flagx.ParseKnown(fs, args)
}
