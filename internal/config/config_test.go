package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("RATE_LIMIT_WINDOW_SECONDS", "")

	cfg := Load()

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Env)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, "migrations", cfg.Database.MigrationsDir)
	assert.Equal(t, 100, cfg.RateLimit.Requests)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
	assert.False(t, cfg.RateLimit.Enabled)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SERVER_ENV", "production")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://shop.example, https://admin.example ,")
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	t.Setenv("RATE_LIMIT_WINDOW_SECONDS", "5")
	t.Setenv("JWT_SECRET", "s3cret")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, []string{"https://shop.example", "https://admin.example"}, cfg.Server.AllowedOrigins)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 5*time.Second, cfg.RateLimit.Window)
	assert.Equal(t, "s3cret", cfg.JWT.Secret)
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, splitList(""))
	assert.Equal(t, []string{"a"}, splitList(" a "))
	assert.Equal(t, []string{"a", "b"}, splitList("a,,b"))
}
