package config

import (
	"flag"
	"strings"

	"github.com/dmitrijs2005/adminpanel/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-a string     REST API bind address (e.g. ":3001")
//	-g string     gRPC health bind address, empty disables
//	-s string     JWT HMAC secret key
//	-m string     token scheme: jwt | opaque
//	-t duration   token validity (e.g. "24h")
//	-o string     comma-separated CORS origins
//	-f string     YAML seed file
//	-w duration   shutdown grace period
//
// Flags other components own (such as -c) are skipped by flagx.ParseKnown.
func parseFlags(config *Config, args []string) error {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run the API on")
	fs.StringVar(&config.EndpointAddrGRPC, "g", config.EndpointAddrGRPC, "address and port of the gRPC health endpoint")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.StringVar(&config.TokenScheme, "m", config.TokenScheme, "token scheme (jwt|opaque)")
	fs.DurationVar(&config.TokenValidityDuration, "t", config.TokenValidityDuration, "token validity")
	origins := fs.String("o", strings.Join(config.AllowedOrigins, ","), "allowed CORS origins, comma-separated")
	fs.StringVar(&config.SeedFile, "f", config.SeedFile, "YAML seed file")
	fs.DurationVar(&config.ShutdownTimeout, "w", config.ShutdownTimeout, "shutdown grace period")

	if err := flagx.ParseKnown(fs, args); err != nil {
		return err
	}

	config.AllowedOrigins = splitList(*origins)
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
