package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/notexe/postly-cli/internal/app"
	"github.com/notexe/postly-cli/internal/assist"
	"github.com/notexe/postly-cli/internal/repl"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func init() {
	rootCmd.AddCommand(shellCmd)
}

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start the interactive calendar shell",
	Args:  cobra.NoArgs,
	RunE:  runShell,
}

func runShell(cmd *cobra.Command, _ []string) error {
	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		w, dash, err := loadWidget(ctx, a)
		if err != nil {
			return err
		}

		username := dash.Profile.Username
		if username == "" {
			if sess, err := a.Sessions.Load(ctx); err == nil {
				username = sess.Username
			}
		}

		r := repl.NewREPL(w, a.Client, repl.Options{
			Username:    username,
			BaseURL:     a.Client.BaseURL(),
			Colored:     a.Config.UI.ColoredOutput,
			Spinner:     a.Config.UI.Spinner,
			HistoryFile: a.Config.UI.HistoryFile,
			PlanDays:    a.Config.Calendar.PlanDays,
			Notes:       noteWriter(a),
			Logger:      a.Logger,
		})

		go func() {
			<-ctx.Done()
			r.Stop()
		}()

		if err := r.Start(ctx); err != nil {
			return fmt.Errorf("shell: %w", err)
		}
		return nil
	})
}

// noteWriter returns nil when no assist provider is configured.
func noteWriter(a *app.App) *assist.NoteWriter {
	cfg := a.Config.Assist
	p, err := assist.NewProvider(cfg)
	if err != nil {
		if !errors.Is(err, assist.ErrDisabled) {
			a.Logger.Warn("note assistant unavailable", zap.Error(err))
		}
		return nil
	}
	return assist.NewNoteWriter(p, cfg.Model, cfg.MaxTokens, cfg.Temperature, a.Logger)
}
