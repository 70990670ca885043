package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/notexe/postly-cli/internal/app"
	"github.com/notexe/postly-cli/internal/postly"
	"github.com/notexe/postly-cli/internal/ui"
	"github.com/spf13/cobra"
)

var (
	suggestPlatform string
	suggestPick     int
	suggestNote     string
	planDays        int
)

func init() {
	rootCmd.AddCommand(suggestCmd)
	rootCmd.AddCommand(planCmd)

	suggestCmd.Flags().StringVar(&suggestPlatform, "platform", "", "Platform to get times for (default: profile platform)")
	suggestCmd.Flags().IntVar(&suggestPick, "pick", 0, "Schedule a reminder at suggestion N")
	suggestCmd.Flags().StringVar(&suggestNote, "note", "", "Note for the reminder created with --pick")

	planCmd.Flags().IntVar(&planDays, "days", 0, "Number of days to plan (default: calendar.plan_days)")
}

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Show the best posting times",
	Long: `Show recommended posting times for a platform. With --pick N a reminder
is scheduled at the N-th suggestion.

Examples:
  postly suggest --platform instagram
  postly suggest --platform tiktok --pick 2 --note "dance clip"`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			return runSuggest(ctx, cmd, a)
		})
	},
}

func runSuggest(ctx context.Context, cmd *cobra.Command, a *app.App) error {
	w, _, err := loadWidget(ctx, a)
	if err != nil {
		return err
	}
	f := formatter(a)

	platform := postly.Platform(suggestPlatform)
	if platform == "" {
		platform = w.Editor().DefaultPlatform()
	}

	if _, err := w.FetchSuggestions(ctx, platform); err != nil {
		return err
	}
	printf(cmd, "%s", f.RenderSuggestions(w.Picker().Snapshot()))

	if suggestPick <= 0 {
		return nil
	}

	form, err := w.UseSuggestion(suggestPick - 1)
	if err != nil {
		return err
	}
	if suggestNote != "" {
		if err := w.Editor().SetNote(suggestNote); err != nil {
			return err
		}
	}

	r, err := w.SubmitReminder(ctx)
	if err != nil {
		return err
	}
	printf(cmd, "\n%s\n", f.FormatSuccess("Reminder saved: "+form.Date.Long()))
	printf(cmd, "  %s\n", ui.ReminderLine(*r, a.Location, w.DraftLabel))
	return nil
}

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Generate an AI posting plan",
	Long: `Ask the Postly API to plan posts across all platforms for the next
days. The planned reminders are created on the server and listed here.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			w, err := newWidget(a)
			if err != nil {
				return err
			}
			days := planDays
			if days <= 0 {
				days = a.Config.Calendar.PlanDays
			}

			f := formatter(a)
			spinner := ui.NewSpinner(a.Config.UI.Spinner, a.Config.UI.ColoredOutput)

			var res postly.PlanResult
			err = spinner.While("Generating posting plan...", func() error {
				var err error
				res, err = w.GeneratePlan(ctx, a.Client, days)
				return err
			})
			if err != nil {
				return err
			}

			platforms := "all platforms"
			if len(res.Platforms) > 0 {
				platforms = strings.Join(res.Platforms, ", ")
			}
			printf(cmd, "%s\n", f.FormatSuccess(fmt.Sprintf("Plan generated for the next %d days (%s)", days, platforms)))
			printf(cmd, "%s", renderMonthWithList(f, w))
			return nil
		})
	},
}
