package assist

import (
	"errors"
	"fmt"
	"time"

	"github.com/notexe/postly-cli/internal/config"
)

// ErrDisabled is returned when no assist provider is configured.
var ErrDisabled = errors.New("note assistant is disabled (set assist.provider)")

// NewProvider creates a Provider from the assist config.
func NewProvider(cfg config.AssistConfig) (Provider, error) {
	switch cfg.Provider {
	case config.AssistDeepSeek:
		return NewDeepSeekProvider(cfg.DeepSeek.APIKey)

	case config.AssistOllama:
		return NewOllamaProvider(cfg.Ollama.BaseURL, time.Duration(cfg.Ollama.Timeout)*time.Second), nil

	case config.AssistNone, "":
		return nil, ErrDisabled

	default:
		return nil, fmt.Errorf("unknown assist provider: %s (supported: %s, %s)",
			cfg.Provider, config.AssistDeepSeek, config.AssistOllama)
	}
}
