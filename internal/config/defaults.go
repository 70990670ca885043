package config

import (
	"github.com/knadh/koanf/providers/confmap"
	"github.com/notexe/postly-cli/internal/postly"
)

func DefaultConfig() map[string]interface{} {
	return map[string]interface{}{
		"api": map[string]interface{}{
			"base_url": postly.DefaultBaseURL,
			"timeout":  30,
			"token":    "",
		},
		"session": map[string]interface{}{
			"db_path": "~/.postly/session.db",
		},
		"calendar": map[string]interface{}{
			"timezone":         "Local",
			"default_platform": "",
			"plan_days":        7,
		},
		"assist": map[string]interface{}{
			"provider":    AssistNone,
			"model":       "deepseek-chat",
			"max_tokens":  256,
			"temperature": 0.8,
			"deepseek": map[string]interface{}{
				"api_key": "",
				"timeout": 60,
			},
			"ollama": map[string]interface{}{
				"base_url": "http://localhost:11434",
				"timeout":  120,
			},
		},
		"ui": map[string]interface{}{
			"colored_output": true,
			"spinner":        true,
			"history_file":   "~/.postly/history",
		},
		"log": map[string]interface{}{
			"level":  "warn",
			"format": "console",
			"file":   "",
		},
	}
}

func NewDefaultProvider() *confmap.Confmap {
	return confmap.Provider(DefaultConfig(), ".")
}

func GetDefaultConfigPath() string {
	return "~/.postly/config.yaml"
}
