package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/notexe/postly-cli/internal/postly"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestNew(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, `
api:
  base_url: http://postly.test/api
session:
  db_path: `+filepath.Join(dir, "session.db")+`
calendar:
  timezone: Europe/Berlin
  default_platform: tiktok
ui:
  colored_output: true
`)

	a, err := New(path, Overrides{NoColor: true, LogLevel: "debug"})
	require.NoError(t, err)
	defer a.Close()

	assert.Equal(t, "http://postly.test/api", a.Client.BaseURL())
	assert.Equal(t, "Europe/Berlin", a.Location.String())
	assert.Equal(t, postly.PlatformTikTok, a.Config.DefaultPlatform())
	assert.False(t, a.Config.UI.ColoredOutput)
	assert.Equal(t, "debug", a.Config.Log.Level)
	assert.FileExists(t, filepath.Join(dir, "session.db"))
}

func TestNewInvalidConfig(t *testing.T) {
	path := writeConfig(t, `
api:
  base_url: not-a-url
session:
  db_path: `+filepath.Join(t.TempDir(), "session.db")+`
`)

	_, err := New(path, Overrides{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}
