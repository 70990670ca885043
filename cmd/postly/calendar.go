package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/notexe/postly-cli/internal/app"
	"github.com/notexe/postly-cli/internal/calendar"
	"github.com/notexe/postly-cli/internal/postly"
	"github.com/notexe/postly-cli/internal/scheduler"
	"github.com/notexe/postly-cli/internal/ui"
	"github.com/spf13/cobra"
)

var (
	addTime     string
	addPlatform string
	addNote     string
	addDraft    string
	addNoEmail  bool
	listAll     bool
)

func init() {
	rootCmd.AddCommand(calendarCmd)
	rootCmd.AddCommand(remindCmd)
	remindCmd.AddCommand(remindAddCmd)
	remindCmd.AddCommand(remindListCmd)
	remindCmd.AddCommand(remindDeleteCmd)

	remindAddCmd.Flags().StringVar(&addTime, "time", scheduler.DefaultTime, "Time as HH:MM")
	remindAddCmd.Flags().StringVar(&addPlatform, "platform", "", "instagram, tiktok, twitter or onlyfans (default: profile platform)")
	remindAddCmd.Flags().StringVar(&addNote, "note", "", "Short note shown with the reminder")
	remindAddCmd.Flags().StringVar(&addDraft, "draft", "", "ID of a content draft to attach")
	remindAddCmd.Flags().BoolVar(&addNoEmail, "no-email", false, "Do not send an email notification")

	remindListCmd.Flags().BoolVar(&listAll, "all", false, "List every reminder, not only the --month ones")
}

var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Show a month with its reminders",
	Long: `Show the month grid (Monday first) with a marker on every day that
has reminders, followed by the month's reminders.

Examples:
  postly calendar
  postly calendar --month 2024-12`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			w, _, err := loadWidget(ctx, a)
			if err != nil {
				return err
			}
			printf(cmd, "%s", renderMonthWithList(formatter(a), w))
			return nil
		})
	},
}

// renderMonthWithList draws the visible month and lists its reminders.
func renderMonthWithList(f *ui.Formatter, w *scheduler.Widget) string {
	view := w.View()

	var sb strings.Builder
	sb.WriteString(f.RenderMonth(ui.MonthGrid{View: view}))
	sb.WriteString("\n")
	sb.WriteString(f.RenderReminderList(monthReminders(w, view.Month), w.Location(), w.DraftLabel))
	return sb.String()
}

func monthReminders(w *scheduler.Widget, m calendar.Month) []postly.Reminder {
	var out []postly.Reminder
	for _, r := range w.Reminders().All() {
		if m.Contains(calendar.DateOf(r.ScheduledAt, w.Location())) {
			out = append(out, r)
		}
	}
	return out
}

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Add, list and delete reminders",
}

var remindAddCmd = &cobra.Command{
	Use:   "add YYYY-MM-DD",
	Short: "Schedule a reminder",
	Long: `Schedule a reminder on a day. Time, platform and note are optional;
the email notification is on unless --no-email is given.

Examples:
  postly remind add 2024-03-15
  postly remind add 2024-03-15 --time 09:30 --platform tiktok --note teaser --no-email`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			return runRemindAdd(ctx, cmd, a, args[0])
		})
	},
}

func runRemindAdd(ctx context.Context, cmd *cobra.Command, a *app.App, day string) error {
	date, err := calendar.ParseDate(day)
	if err != nil {
		return err
	}

	w, _, err := loadWidget(ctx, a)
	if err != nil {
		return err
	}

	w.OpenDay(date)
	ed := w.Editor()
	if err := ed.SetTime(addTime); err != nil {
		return err
	}
	if addPlatform != "" {
		if err := ed.SetPlatform(postly.Platform(addPlatform)); err != nil {
			return err
		}
	}
	if err := ed.SetNote(addNote); err != nil {
		return err
	}
	if err := ed.SetNotifyEmail(!addNoEmail); err != nil {
		return err
	}
	if addDraft != "" {
		if err := ed.SetDraft(postly.ID(addDraft)); err != nil {
			return err
		}
	}

	r, err := w.SubmitReminder(ctx)
	if err != nil {
		return err
	}

	f := formatter(a)
	printf(cmd, "%s\n", f.FormatSuccess("Reminder saved: "+date.Long()))
	printf(cmd, "  %s\n", ui.ReminderLine(*r, a.Location, w.DraftLabel))
	return nil
}

var remindListCmd = &cobra.Command{
	Use:   "list",
	Short: "List reminders of the month",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			w, _, err := loadWidget(ctx, a)
			if err != nil {
				return err
			}
			f := formatter(a)

			reminders := w.Reminders().All()
			if !listAll {
				m := w.Navigator().Visible()
				reminders = monthReminders(w, m)
				printf(cmd, "%s\n", f.FormatHeader(m.Label()))
			}
			printf(cmd, "%s", f.RenderReminderList(reminders, a.Location, w.DraftLabel))
			return nil
		})
	},
}

var remindDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a reminder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			w, err := newWidget(a)
			if err != nil {
				return err
			}
			id := postly.ID(strings.TrimPrefix(args[0], "#"))
			if err := w.DeleteReminder(ctx, a.Client, id); err != nil {
				return err
			}
			printf(cmd, "%s\n", formatter(a).FormatSuccess(fmt.Sprintf("Reminder #%s deleted", id)))
			return nil
		})
	},
}
