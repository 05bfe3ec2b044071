package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"MYSQL_DSN", "REDIS_URL", "PORT", "JWT_SECRET", "RATE_LIMIT", "ENABLE_SSL", "CORS_ORIGINS", "BREED_CACHE_TTL"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8000", cfg.Port)
	assert.Empty(t, cfg.RedisURL)
	assert.Empty(t, cfg.JWTSecret)
	assert.Equal(t, "https://api.thecatapi.com/v1", cfg.CatAPIURL)
	assert.Equal(t, time.Hour, cfg.BreedCacheTTL)
	assert.Equal(t, 10*time.Second, cfg.BreedTimeout)
	assert.Equal(t, 120, cfg.RateLimit)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
	assert.True(t, cfg.MetricsEnabled)
	assert.False(t, cfg.TLSEnabled())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("REDIS_URL", "redis://cache:6379/1")
	t.Setenv("BREED_CACHE_TTL", "15m")
	t.Setenv("RATE_LIMIT", "0")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("ENABLE_SSL", "true")
	t.Setenv("SSL_CERT", "/etc/ssl/cert.pem")
	t.Setenv("SSL_KEY", "/etc/ssl/key.pem")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "redis://cache:6379/1", cfg.RedisURL)
	assert.Equal(t, 15*time.Minute, cfg.BreedCacheTTL)
	assert.Zero(t, cfg.RateLimit)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.True(t, cfg.TLSEnabled())
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]string{
		"BREED_TIMEOUT":   "soon",
		"RATE_LIMIT":      "-3",
		"METRICS_ENABLED": "maybe",
		"ENABLE_SSL":      "true",
	}
	for key, val := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv("SSL_CERT", "")
			t.Setenv("SSL_KEY", "")
			t.Setenv(key, val)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
