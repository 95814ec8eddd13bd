package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_DurationDefaults(t *testing.T) {
	t.Setenv("JWT_ACCESS_EXPIRY", "")
	t.Setenv("JWT_REFRESH_EXPIRY", "")

	cfg := Load()
	assert.Equal(t, 15*time.Minute, cfg.JWTAccessExpiry)
	assert.Equal(t, 168*time.Hour, cfg.JWTRefreshExpiry)
}

func TestLoad_MalformedDurationKeepsFallback(t *testing.T) {
	t.Setenv("JWT_ACCESS_EXPIRY", "30m")
	t.Setenv("JWT_REFRESH_EXPIRY", "one week")

	cfg := Load()
	assert.Equal(t, 30*time.Minute, cfg.JWTAccessExpiry)
	// A typo must not shrink the refresh lifetime to the access default.
	assert.Equal(t, 168*time.Hour, cfg.JWTRefreshExpiry)
}
