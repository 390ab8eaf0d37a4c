package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"actividad-clase/api-service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFlags(t *testing.T) *flags {
	t.Helper()
	t.Setenv("LOG_FILE", "-")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("KAFKA_BROKERS", "")
	t.Setenv("STORAGE_BACKEND", "")
	return &flags{
		envFile: filepath.Join(t.TempDir(), "missing.env"),
		backend: "file",
		dataDir: t.TempDir(),
	}
}

func TestLoadConfigFlagOverrides(t *testing.T) {
	f := testFlags(t)
	f.port = "4000"

	cfg, err := loadConfig(f)
	require.NoError(t, err)
	assert.Equal(t, "4000", cfg.ServerPort)
	assert.Equal(t, "file", cfg.StorageBackend)
	assert.Equal(t, f.dataDir, cfg.DataDir)
}

func TestLoadConfigRejectsUnknownBackend(t *testing.T) {
	f := testFlags(t)
	f.backend = "redis"

	_, err := loadConfig(f)
	assert.Error(t, err)
}

func TestSeedCommand(t *testing.T) {
	f := testFlags(t)

	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"seed", "--env-file", f.envFile, "--backend", "file", "--data-dir", f.dataDir})
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "Sample data created")

	a, err := newApp(context.Background(), f)
	require.NoError(t, err)
	defer a.close(context.Background())

	people, err := a.services.People.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, people, 2)

	tasks, err := a.services.Tasks.List(context.Background())
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, models.StatusPending, tasks[0].Status)
	assert.Equal(t, models.StatusInProgress, tasks[1].Status)
	assert.Equal(t, 1, tasks[0].ProjectID)
}
