package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 1<<20, cfg.MaxSourceBytes)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_NAME", "policies")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("POLAR_MAX_SOURCE_BYTES", "2048")

	cfg := Load()

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel())
	assert.Equal(t, 2048, cfg.MaxSourceBytes)
	assert.Equal(t, "host=db.internal port=5432 user=postgres password=secret dbname=policies sslmode=disable", cfg.DSN())
}

func TestLoadIgnoresInvalidLimit(t *testing.T) {
	t.Setenv("POLAR_MAX_SOURCE_BYTES", "lots")
	t.Setenv("LOG_LEVEL", "verbose")

	cfg := Load()

	assert.Equal(t, 1<<20, cfg.MaxSourceBytes)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel())
}
