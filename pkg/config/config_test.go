package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opentraining/coursecatalog/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "course_catalog", cfg.Database.Database)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 6379, cfg.Redis.Port)
	assert.Equal(t, 20, cfg.Search.DefaultPageSize)
	assert.Equal(t, 100, cfg.Search.MaxPageSize)
	assert.Equal(t, 300, cfg.Search.DebounceMS)
	assert.Equal(t, 600, cfg.Search.FacetCacheTTL)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_NAME", "catalog_test")
	t.Setenv("SEARCH_DEBOUNCE_MS", "150")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "catalog_test", cfg.Database.Database)
	assert.Equal(t, 150, cfg.Search.DebounceMS)
}

func TestLoad_InvalidIntFallsBackToDefault(t *testing.T) {
	t.Setenv("SERVER_PORT", "not-a-port")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestDatabaseDSN(t *testing.T) {
	cfg := config.DatabaseConfig{
		Host: "db", Port: 5433, User: "app", Password: "secret",
		Database: "catalog", SSLMode: "require",
	}

	assert.Equal(t,
		"host=db port=5433 user=app password=secret dbname=catalog sslmode=require",
		cfg.DatabaseDSN(),
	)
}

func TestRedisAddr(t *testing.T) {
	cfg := config.RedisConfig{Host: "cache", Port: 6380}
	assert.Equal(t, "cache:6380", cfg.RedisAddr())
}
