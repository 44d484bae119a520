package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	c, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", c.Port)
	assert.Equal(t, "mongodb://localhost:27017", c.MongoURI)
	assert.Equal(t, "denovidb", c.MongoDB)
	assert.Equal(t, 12*time.Hour, c.TokenTTL)
	assert.Equal(t, "Europe/Skopje", c.Timezone)
	assert.Equal(t, "@hourly", c.CleanupSchedule)
	assert.Equal(t, 5, c.LoginMaxAttempts)
	assert.Equal(t, time.Minute, c.LoginWindow)
	assert.False(t, c.TrustProxy)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, "json", c.LogFormat)
}

func TestLoad_EnvOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("MONGO_URI", "mongodb://db:27017")
	t.Setenv("LOGIN_WINDOW", "30s")
	t.Setenv("LOGIN_MAX_ATTEMPTS", "10")
	t.Setenv("TRUST_PROXY", "true")

	c, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "mongodb://db:27017", c.MongoURI)
	assert.Equal(t, 30*time.Second, c.LoginWindow)
	assert.Equal(t, 10, c.LoginMaxAttempts)
	assert.True(t, c.TrustProxy)
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	file := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte("port: \"9090\"\ncleanup_schedule: \"@every 10m\"\n"), 0o600))

	c, err := Load(file)
	require.NoError(t, err)
	assert.Equal(t, "9090", c.Port)
	assert.Equal(t, "@every 10m", c.CleanupSchedule)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestLocation(t *testing.T) {
	c := &Config{Timezone: "Not/AZone"}
	assert.Equal(t, time.UTC, c.Location())

	c.Timezone = "UTC"
	assert.Equal(t, "UTC", c.Location().String())
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}
