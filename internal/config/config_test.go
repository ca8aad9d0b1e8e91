package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("APP_NAME", "talent-match")
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("DB_NAME", "talent")
	t.Setenv("DB_USER", "talent")
	t.Setenv("JWT_ACCESS_SECRET", "secret")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "talent-match", cfg.App.AppName)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "localhost", cfg.Database.DBHost)
	assert.Equal(t, cfg.App.AppName, cfg.Database.ApplicationName)
	assert.Equal(t, "5432", cfg.Database.DBPort)
	assert.Equal(t, int32(10), cfg.Database.PoolMaxConns)
	assert.Equal(t, "6379", cfg.Redis.Port)
	assert.Equal(t, 8, cfg.Matching.Workers)
	assert.Equal(t, 30*time.Second, cfg.Matching.LeaseTTL)
	assert.False(t, cfg.Matching.SynonymExpansion)
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("MATCH_WORKERS", "0")
	t.Setenv("MATCH_SYNONYM_EXPANSION", "true")
	t.Setenv("MATCH_LEASE_TTL", "2m")
	t.Setenv("LOG_JSON", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 1, cfg.Matching.Workers)
	assert.True(t, cfg.Matching.SynonymExpansion)
	assert.Equal(t, 2*time.Minute, cfg.Matching.LeaseTTL)
	assert.True(t, cfg.App.LogJSON)
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("APP_NAME", "")
	t.Setenv("HTTP_PORT", "")
	t.Setenv("DB_NAME", "x")
	t.Setenv("DB_USER", "x")
	t.Setenv("JWT_ACCESS_SECRET", "x")

	_, err := Load()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errMissingRequiredEnv))
	assert.Contains(t, err.Error(), "APP_NAME")
	assert.Contains(t, err.Error(), "HTTP_PORT")
}
