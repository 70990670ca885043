// Command postly is the Postly reminder calendar for the terminal.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/notexe/postly-cli/internal/app"
	"github.com/notexe/postly-cli/internal/calendar"
	"github.com/notexe/postly-cli/internal/config"
	"github.com/notexe/postly-cli/internal/scheduler"
	"github.com/notexe/postly-cli/internal/ui"
	"github.com/spf13/cobra"
)

var (
	configPath string
	noColor    bool
	monthFlag  string
	logLevel   string

	version = "dev"
)

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "postly",
	Short: "Schedule post reminders on a calendar",
	Long: `postly keeps a calendar of reminders to publish posts on Instagram,
TikTok, Twitter and OnlyFans, backed by the Postly API.

Run without a subcommand to start the interactive shell.

Examples:
  # Sign in once
  postly login alice

  # Show April with its reminders
  postly calendar --month 2024-04

  # Schedule a reminder
  postly remind add 2024-04-12 --time 18:30 --platform tiktok --note "teaser"`,
	Version:      version,
	SilenceUsage: true,
	RunE:         runShell,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.GetDefaultConfigPath(), "Path to configuration file")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().StringVar(&monthFlag, "month", "", "Month to show as YYYY-MM (default: current month)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
}

// withApp runs fn with the configured dependencies and a context that is
// cancelled on Ctrl+C.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app.App) error) error {
	a, err := app.New(configPath, app.Overrides{NoColor: noColor, LogLevel: logLevel})
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return fn(ctx, a)
}

// newWidget creates a scheduler over the app's client, showing --month
// when given.
func newWidget(a *app.App) (*scheduler.Widget, error) {
	w := scheduler.New(a.Client, nil, scheduler.Options{
		Location:        a.Location,
		DefaultPlatform: a.Config.DefaultPlatform(),
		Logger:          a.Logger,
	})

	if monthFlag != "" {
		m, err := calendar.ParseMonth(monthFlag)
		if err != nil {
			return nil, err
		}
		w.Navigator().GoTo(m)
	}
	return w, nil
}

// loadWidget creates a widget seeded with the dashboard data.
func loadWidget(ctx context.Context, a *app.App) (*scheduler.Widget, scheduler.Dashboard, error) {
	w, err := newWidget(a)
	if err != nil {
		return nil, scheduler.Dashboard{}, err
	}
	d, err := scheduler.LoadDashboard(ctx, a.Client, a.Logger)
	if err != nil {
		return nil, scheduler.Dashboard{}, err
	}
	w.Apply(d)
	if a.Config.DefaultPlatform() != "" {
		w.Editor().SetDefaultPlatform(a.Config.DefaultPlatform())
	}
	return w, d, nil
}

func formatter(a *app.App) *ui.Formatter {
	return ui.NewFormatter(a.Config.UI.ColoredOutput)
}

func printf(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}
