package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("ADMINPANEL_SECRET_KEY", "env-secret")
	t.Setenv("ADMINPANEL_TOKEN_TTL", "2h")
	t.Setenv("ADMINPANEL_ALLOWED_ORIGINS", "http://a.example,http://b.example")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "env-secret", cfg.SecretKey)
	assert.Equal(t, 2*time.Hour, cfg.TokenValidityDuration)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, ":3001", cfg.EndpointAddrHTTP, "unset variables keep defaults")
	assert.Equal(t, TokenSchemeJWT, cfg.TokenScheme)
}

func TestLoadFromEnv_Invalid(t *testing.T) {
	t.Setenv("ADMINPANEL_TOKEN_SCHEME", "paseto")

	_, err := LoadFromEnv()
	assert.Error(t, err)
}
