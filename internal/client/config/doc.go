// Package config loads runtime configuration for the adminpanel CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via flags: -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-u string     base URL of the API, including the /api prefix
//	-d string     path of the local session database
//	-t duration   per-request timeout
//
// # JSON schema
//
// Durations use timex.Duration, so values can be either strings like "10s"
// or integer nanoseconds:
//
//	{
//	  "server_url": "http://127.0.0.1:3001/api",
//	  "session_db": "session.db",
//	  "request_timeout": "10s"
//	}
package config
