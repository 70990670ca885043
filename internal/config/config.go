package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/notexe/postly-cli/internal/postly"
)

// Assist provider names.
const (
	AssistNone     = "none"
	AssistDeepSeek = "deepseek"
	AssistOllama   = "ollama"
)

const envPrefix = "POSTLY_"

type Config struct {
	API      APIConfig      `koanf:"api"`
	Session  SessionConfig  `koanf:"session"`
	Calendar CalendarConfig `koanf:"calendar"`
	Assist   AssistConfig   `koanf:"assist"`
	UI       UIConfig       `koanf:"ui"`
	Log      LogConfig      `koanf:"log"`
}

type APIConfig struct {
	BaseURL string `koanf:"base_url"`
	Timeout int    `koanf:"timeout"` // seconds
	// Token, when set, is sent instead of the stored session token.
	Token string `koanf:"token"`
}

type SessionConfig struct {
	DBPath string `koanf:"db_path"`
}

type CalendarConfig struct {
	Timezone        string `koanf:"timezone"` // IANA name, empty or "Local" for the system zone
	DefaultPlatform string `koanf:"default_platform"`
	PlanDays        int    `koanf:"plan_days"`
}

type AssistConfig struct {
	Provider    string         `koanf:"provider"`
	Model       string         `koanf:"model"`
	MaxTokens   int            `koanf:"max_tokens"`
	Temperature float64        `koanf:"temperature"`
	DeepSeek    DeepSeekConfig `koanf:"deepseek"`
	Ollama      OllamaConfig   `koanf:"ollama"`
}

type DeepSeekConfig struct {
	APIKey  string `koanf:"api_key"`
	Timeout int    `koanf:"timeout"`
}

type OllamaConfig struct {
	BaseURL string `koanf:"base_url"`
	Timeout int    `koanf:"timeout"`
}

type UIConfig struct {
	ColoredOutput bool   `koanf:"colored_output"`
	Spinner       bool   `koanf:"spinner"`
	HistoryFile   string `koanf:"history_file"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"` // console or json
	File   string `koanf:"file"`   // empty logs to stderr
}

// Load layers defaults, the YAML file at configPath (if it exists) and
// POSTLY_ environment variables. A double underscore nests keys, so
// POSTLY_API__BASE_URL sets api.base_url.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(NewDefaultProvider(), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath != "" {
		configPath = expandPath(configPath)

		if _, err := os.Stat(configPath); err == nil {
			if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load config file: %w", err)
			}
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if token := os.Getenv("POSTLY_TOKEN"); token != "" {
		k.Set("api.token", token)
	}
	if apiKey := os.Getenv("DEEPSEEK_API_KEY"); apiKey != "" && k.String("assist.deepseek.api_key") == "" {
		k.Set("assist.deepseek.api_key", apiKey)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Session.DBPath = expandPath(cfg.Session.DBPath)
	cfg.UI.HistoryFile = expandPath(cfg.UI.HistoryFile)
	cfg.Log.File = expandPath(cfg.Log.File)

	return &cfg, nil
}

// envKey maps POSTLY_API__BASE_URL to api.base_url.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, envPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api.base_url must be an absolute URL, got %q", c.API.BaseURL)
	}

	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive")
	}

	if c.Session.DBPath == "" {
		return fmt.Errorf("session.db_path is required")
	}

	if _, err := c.Location(); err != nil {
		return err
	}

	if p := postly.Platform(c.Calendar.DefaultPlatform); p != "" && !p.Known() {
		return fmt.Errorf("unknown calendar.default_platform: %s", p)
	}

	switch c.Assist.Provider {
	case AssistNone, "":
	case AssistDeepSeek:
		if c.Assist.DeepSeek.APIKey == "" {
			return fmt.Errorf("DeepSeek API key is required (set DEEPSEEK_API_KEY or add to config file)")
		}
	case AssistOllama:
		if c.Assist.Ollama.BaseURL == "" {
			c.Assist.Ollama.BaseURL = "http://localhost:11434"
		}
	default:
		return fmt.Errorf("unknown assist provider: %s (supported: %s, %s, %s)",
			c.Assist.Provider, AssistNone, AssistDeepSeek, AssistOllama)
	}

	if c.Assist.Temperature < 0 || c.Assist.Temperature > 2 {
		return fmt.Errorf("assist.temperature must be between 0 and 2")
	}

	return nil
}

// Location resolves calendar.timezone.
func (c *Config) Location() (*time.Location, error) {
	switch c.Calendar.Timezone {
	case "", "Local", "local":
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Calendar.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid calendar.timezone %q: %w", c.Calendar.Timezone, err)
	}
	return loc, nil
}

// APITimeout returns api.timeout as a duration.
func (c *Config) APITimeout() time.Duration {
	return time.Duration(c.API.Timeout) * time.Second
}

func (c *Config) DefaultPlatform() postly.Platform {
	return postly.Platform(c.Calendar.DefaultPlatform)
}

func expandPath(path string) string {
	if path == "" {
		return path
	}

	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}

	return path
}
