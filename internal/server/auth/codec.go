// Package auth issues and verifies the session tokens handed out at login.
//
// Two schemes share the Codec interface. JWTCodec signs tokens with a server
// secret. OpaqueCodec reproduces the legacy demo format (unsigned base64 JSON)
// so older front ends keep working; anyone can forge those tokens.
package auth

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/adminpanel/internal/server/config"
)

// DefaultValidity is how long an issued token stays valid.
const DefaultValidity = 24 * time.Hour

// Codec turns a subject (user) id into a bearer token and back.
type Codec interface {
	// Issue returns a token for subjectID that expires after the codec's TTL.
	Issue(subjectID int) (string, error)
	// Verify returns the subject id of a well-formed, unexpired token.
	// Malformed and expired tokens both yield (0, false).
	Verify(token string) (int, bool)
}

// Clock returns the current time. Tests substitute a fixed clock.
type Clock func() time.Time

// NewCodec builds the codec selected by cfg.TokenScheme.
func NewCodec(cfg *config.Config) (Codec, error) {
	switch cfg.TokenScheme {
	case config.TokenSchemeJWT:
		return NewJWTCodec([]byte(cfg.SecretKey), cfg.TokenValidityDuration, time.Now), nil
	case config.TokenSchemeOpaque:
		return NewOpaqueCodec(cfg.TokenValidityDuration, time.Now), nil
	default:
		return nil, fmt.Errorf("unknown token scheme %q", cfg.TokenScheme)
	}
}
