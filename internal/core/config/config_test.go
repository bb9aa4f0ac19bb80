package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "admin-console", c.App.Name)
	assert.Equal(t, "development", c.App.Env)
	assert.Equal(t, 3000, c.App.HTTP.Port)
	assert.Equal(t, "mysql", c.DB.Driver)
	assert.False(t, c.Redis.Enable)
	assert.Equal(t, "admin_session", c.Session.CookieName)
	assert.Equal(t, 24, c.Session.TTLHours)
	assert.True(t, c.Bootstrap.Eager)
	assert.True(t, c.Bootstrap.FailFast)
	assert.Equal(t, "admin", c.Seed.Username)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("APP_DB_DRIVER", "postgres")
	t.Setenv("APP_SESSION_SECRET", "from-env")
	t.Setenv("APP_BOOTSTRAP_FAILFAST", "false")

	c, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "postgres", c.DB.Driver)
	assert.Equal(t, "from-env", c.Session.Secret)
	assert.False(t, c.Bootstrap.FailFast)
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
app:
  name: staging-console
  http:
    port: 8080
session:
  ttlhours: 1
`), 0o600))

	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "staging-console", c.App.Name)
	assert.Equal(t, 8080, c.App.HTTP.Port)
	assert.Equal(t, 1, c.Session.TTLHours)
	// untouched keys keep their defaults
	assert.Equal(t, "mysql", c.DB.Driver)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
