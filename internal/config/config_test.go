package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/notexe/postly-cli/internal/postly"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, postly.DefaultBaseURL, cfg.API.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.APITimeout())
	assert.Equal(t, AssistNone, cfg.Assist.Provider)
	assert.Equal(t, 7, cfg.Calendar.PlanDays)
	assert.True(t, filepath.IsAbs(cfg.Session.DBPath))
	assert.NoError(t, cfg.Validate())
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
api:
  base_url: https://postly.example.com/api
calendar:
  timezone: Europe/Berlin
  default_platform: tiktok
log:
  level: debug
`), 0o600))

	t.Setenv("POSTLY_API__TIMEOUT", "5")
	t.Setenv("POSTLY_TOKEN", "tok-123")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "https://postly.example.com/api", cfg.API.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.APITimeout())
	assert.Equal(t, "tok-123", cfg.API.Token)
	assert.Equal(t, postly.PlatformTikTok, cfg.DefaultPlatform())
	assert.Equal(t, "debug", cfg.Log.Level)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Berlin", loc.String())
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "api.base_url", envKey("POSTLY_API__BASE_URL"))
	assert.Equal(t, "assist.deepseek.api_key", envKey("POSTLY_ASSIST__DEEPSEEK__API_KEY"))
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg, err := Load("")
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"relative url", func(c *Config) { c.API.BaseURL = "/api" }, "api.base_url"},
		{"zero timeout", func(c *Config) { c.API.Timeout = 0 }, "api.timeout"},
		{"bad timezone", func(c *Config) { c.Calendar.Timezone = "Mars/Olympus" }, "calendar.timezone"},
		{"bad platform", func(c *Config) { c.Calendar.DefaultPlatform = "myspace" }, "default_platform"},
		{"unknown provider", func(c *Config) { c.Assist.Provider = "gpt" }, "unknown assist provider"},
		{"deepseek without key", func(c *Config) {
			c.Assist.Provider = AssistDeepSeek
			c.Assist.DeepSeek.APIKey = ""
		}, "API key"},
		{"temperature", func(c *Config) { c.Assist.Temperature = 3 }, "temperature"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.wantErr)
		})
	}
}

func TestValidateOllamaDefaultsURL(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	cfg.Assist.Provider = AssistOllama
	cfg.Assist.Ollama.BaseURL = ""
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "http://localhost:11434", cfg.Assist.Ollama.BaseURL)
}
