package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load("")
	require.NotNil(t, cfg)

	assert.Equal(t, "postgres", cfg.DB.Driver)
	assert.Equal(t, "localhost", cfg.DB.Host)
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.Equal(t, 5, cfg.DB.ReadyAttempts)
	assert.Equal(t, 5, cfg.DB.ReadyDelaySec)
	assert.True(t, cfg.DB.AutoMigrate)

	assert.Equal(t, "localhost:6379", cfg.Redis.Addr())
	assert.Equal(t, 30, cfg.Cache.UsersTTLSec)
	assert.Equal(t, 8080, cfg.App.HTTP.Port)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("APP_DB_HOST", "db.internal")
	t.Setenv("APP_DB_PORT", "5433")
	t.Setenv("APP_REDIS_HOST", "cache.internal")
	t.Setenv("APP_CACHE_USERS_TTL_SEC", "10")

	cfg := Load("")
	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, 5433, cfg.DB.Port)
	assert.Equal(t, "cache.internal:6379", cfg.Redis.Addr())
	assert.Equal(t, 10, cfg.Cache.UsersTTLSec)
}

// Deploys that predate the APP_ prefix set the original variable names.
func TestLoadLegacyEnv(t *testing.T) {
	t.Setenv("POSTGRES_HOST", "legacy-db")
	t.Setenv("POSTGRES_USER", "svc")
	t.Setenv("POSTGRES_DB", "accounts")
	t.Setenv("REDIS_PORT", "6380")

	cfg := Load("")
	assert.Equal(t, "legacy-db", cfg.DB.Host)
	assert.Equal(t, "svc", cfg.DB.User)
	assert.Equal(t, "accounts", cfg.DB.Name)
	assert.Equal(t, "localhost:6380", cfg.Redis.Addr())
}
