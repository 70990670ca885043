// Package app wires configuration, logging, the session store and the
// Postly client for the commands.
package app

import (
	"fmt"
	"time"

	"github.com/notexe/postly-cli/internal/config"
	"github.com/notexe/postly-cli/internal/logging"
	"github.com/notexe/postly-cli/internal/postly"
	"github.com/notexe/postly-cli/internal/session"
	"go.uber.org/zap"
)

// App holds the long-lived dependencies of a command run.
type App struct {
	Config   *config.Config
	Logger   *zap.Logger
	Sessions *session.Store
	Client   *postly.Client
	Location *time.Location

	cleanup func()
}

// Overrides are command-line values applied on top of the loaded config.
type Overrides struct {
	NoColor  bool
	LogLevel string
}

// New loads and validates the config at configPath and opens the
// dependencies it describes. Close must be called when done.
func New(configPath string, o Overrides) (*App, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("error loading configuration: %w", err)
	}
	if o.NoColor {
		cfg.UI.ColoredOutput = false
	}
	if o.LogLevel != "" {
		cfg.Log.Level = o.LogLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	logger, syncLog, err := logging.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	store, err := session.NewStore(cfg.Session.DBPath)
	if err != nil {
		syncLog()
		return nil, err
	}

	// A configured token wins over the stored session.
	var tokens postly.TokenSource = store
	if cfg.API.Token != "" {
		tokens = postly.StaticToken(cfg.API.Token)
	}

	client := postly.NewClient(cfg.API.BaseURL, tokens,
		postly.WithTimeout(cfg.APITimeout()),
		postly.WithLogger(logger),
	)

	logger.Debug("app initialised",
		zap.String("base_url", cfg.API.BaseURL),
		zap.String("timezone", loc.String()),
	)

	return &App{
		Config:   cfg,
		Logger:   logger,
		Sessions: store,
		Client:   client,
		Location: loc,
		cleanup: func() {
			store.Close()
			syncLog()
		},
	}, nil
}

// Close releases the session store and flushes the logger.
func (a *App) Close() {
	if a.cleanup != nil {
		a.cleanup()
	}
}
