package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"SERVER_PORT", "STORAGE_BACKEND", "DATA_DIR", "SQLITE_PATH", "MONGO_URI",
	"MONGO_DB_NAME", "KAFKA_BROKERS", "KAFKA_TOPIC", "CORS_ORIGIN", "LOG_FILE",
	"LOG_LEVEL", "BREAKER_ENABLED",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.ServerPort)
	assert.Equal(t, "file", cfg.StorageBackend)
	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, "*", cfg.CORSOrigin)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.False(t, cfg.BreakerEnabled)
	assert.Equal(t, ":3000", cfg.Addr())
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("STORAGE_BACKEND", "Mongo")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "mongo", cfg.StorageBackend)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
	assert.True(t, cfg.BreakerEnabled)
}

func TestLoadEnvFile(t *testing.T) {
	clearEnv(t)
	// godotenv does not override variables that exist, even when empty.
	os.Unsetenv("DATA_DIR")
	t.Cleanup(func() { os.Unsetenv("DATA_DIR") })

	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("DATA_DIR=/srv/actividad\n"), 0o600))

	cfg, err := Load(envFile)
	require.NoError(t, err)
	assert.Equal(t, "/srv/actividad", cfg.DataDir)
}

func TestLoadMissingEnvFileIsNotAnError(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.NoError(t, err)
}

func TestLoadRejectsBadBool(t *testing.T) {
	clearEnv(t)
	t.Setenv("BREAKER_ENABLED", "sometimes")

	_, err := Load("")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := Config{ServerPort: "3000", StorageBackend: "file", DataDir: "data", LogLevel: "info"}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty port", func(c *Config) { c.ServerPort = "" }},
		{"non numeric port", func(c *Config) { c.ServerPort = "http" }},
		{"unknown backend", func(c *Config) { c.StorageBackend = "redis" }},
		{"file without dir", func(c *Config) { c.DataDir = "" }},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }},
		{"kafka without topic", func(c *Config) { c.KafkaBrokers = []string{"k:9092"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestSetBackendFollowsBreakerDefault(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	require.False(t, cfg.BreakerEnabled)

	cfg.SetBackend("SQLite")
	assert.Equal(t, "sqlite", cfg.StorageBackend)
	assert.True(t, cfg.BreakerEnabled)

	t.Setenv("BREAKER_ENABLED", "false")
	cfg, err = Load("")
	require.NoError(t, err)
	cfg.SetBackend("mongo")
	assert.False(t, cfg.BreakerEnabled)
}
