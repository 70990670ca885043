package repl

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/notexe/postly-cli/internal/assist"
	"github.com/notexe/postly-cli/internal/calendar"
	"github.com/notexe/postly-cli/internal/postly"
	"github.com/notexe/postly-cli/internal/scheduler"
	"github.com/notexe/postly-cli/internal/ui"
)

func (r *REPL) handleMonth(args string) error {
	if args == "" {
		return fmt.Errorf("usage: /month YYYY-MM")
	}
	m, err := calendar.ParseMonth(args)
	if err != nil {
		return err
	}
	r.widget.Navigator().GoTo(m)
	r.displayMonth()
	return nil
}

// handleDay opens a day of the visible month (/day 15) or any date
// (/day 2024-03-15).
func (r *REPL) handleDay(args string) error {
	if args == "" {
		return fmt.Errorf("usage: /day <N|YYYY-MM-DD>")
	}

	var d calendar.Date
	if n, err := strconv.Atoi(args); err == nil {
		m := r.widget.Navigator().Visible()
		if n < 1 || n > m.Len() {
			return fmt.Errorf("%s has days 1-%d", m.Label(), m.Len())
		}
		d = calendar.Date{Year: m.Year, Month: m.Month, Day: n}
	} else {
		parsed, err := calendar.ParseDate(args)
		if err != nil {
			return err
		}
		d = parsed
		r.widget.Navigator().GoTo(d.MonthOf())
	}

	r.widget.OpenDay(d)
	r.displayDay(d)
	r.displayEditor()
	return nil
}

func (r *REPL) handleTime(args string) error {
	if args == "" {
		return fmt.Errorf("usage: /time HH:MM")
	}
	if err := r.widget.Editor().SetTime(args); err != nil {
		return err
	}
	r.displayEditor()
	return nil
}

func (r *REPL) handlePlatform(args string) error {
	var p postly.Platform
	if args == "" {
		idx, err := ui.NewSelector("Platform", ui.PlatformOptions(), r.opts.Colored).WithIO(r.in, r.out).Run()
		if err != nil {
			return err
		}
		p = postly.Platforms[idx]
	} else {
		p = postly.Platform(strings.ToLower(args))
	}

	if err := r.widget.Editor().SetPlatform(p); err != nil {
		return err
	}
	r.displayEditor()
	return nil
}

// handleDraft attaches a draft by list number or id; "none" detaches it.
func (r *REPL) handleDraft(args string) error {
	drafts := r.widget.Drafts()
	editor := r.widget.Editor()

	switch {
	case args == "":
		if len(drafts) == 0 {
			r.displayInfo("No drafts to attach.")
			return nil
		}
		idx, err := ui.NewSelector("Attach draft", ui.DraftOptions(drafts), r.opts.Colored).WithIO(r.in, r.out).Run()
		if err != nil {
			return err
		}
		if idx == 0 {
			if err := editor.ClearDraft(); err != nil {
				return err
			}
		} else if err := editor.SetDraft(drafts[idx-1].ID); err != nil {
			return err
		}

	case strings.EqualFold(args, "none"):
		if err := editor.ClearDraft(); err != nil {
			return err
		}

	default:
		id := postly.ID(args)
		if n, err := strconv.Atoi(args); err == nil && n >= 1 && n <= len(drafts) {
			id = drafts[n-1].ID
		}
		if err := editor.SetDraft(id); err != nil {
			return err
		}
	}

	r.displayEditor()
	return nil
}

// handleNote sets the note, or drafts one with the assistant for
// "/note ai [hint]".
func (r *REPL) handleNote(ctx context.Context, args string) error {
	editor := r.widget.Editor()

	fields := strings.Fields(args)
	if len(fields) > 0 && strings.EqualFold(fields[0], "ai") {
		snap := editor.Snapshot()
		if snap.State == scheduler.EditorClosed {
			return scheduler.ErrEditorClosed
		}
		if r.opts.Notes == nil {
			return assist.ErrDisabled
		}

		req := assist.NoteRequest{
			ScheduledAt: snap.Form.ScheduledAt(r.widget.Location()),
			Platform:    snap.Form.Platform,
			Hint:        strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(args), fields[0])),
		}
		if snap.Form.DraftID != "" {
			req.Draft = r.widget.DraftLabel(snap.Form.DraftID)
		}

		var note string
		err := r.spinner.While("Drafting note...", func() error {
			var err error
			note, err = r.opts.Notes.Draft(ctx, req)
			return err
		})
		if err != nil {
			return err
		}
		args = note
	}

	if err := editor.SetNote(args); err != nil {
		return err
	}
	r.displayEditor()
	return nil
}

func (r *REPL) handleEmail(args string) error {
	var on bool
	switch strings.ToLower(args) {
	case "on", "yes", "true":
		on = true
	case "off", "no", "false":
		on = false
	default:
		return fmt.Errorf("usage: /email on|off")
	}

	if err := r.widget.Editor().SetNotifyEmail(on); err != nil {
		return err
	}
	r.displayEditor()
	return nil
}

func (r *REPL) handleSave(ctx context.Context) error {
	var created *postly.Reminder
	err := r.spinner.While("Saving reminder...", func() error {
		var err error
		created, err = r.widget.SubmitReminder(ctx)
		return err
	})
	if err != nil {
		r.displayEditor()
		return err
	}
	if created == nil {
		r.displayInfo("Pick a day first with /day N.")
		return nil
	}

	r.displaySuccess("Reminder saved: " + ui.ReminderLine(*created, r.widget.Location(), r.widget.DraftLabel))
	r.displayMonth()
	return nil
}

func (r *REPL) handleSuggest(ctx context.Context, args string) error {
	platform := postly.Platform(strings.ToLower(args))
	if platform == "" {
		if snap := r.widget.Editor().Snapshot(); snap.State != scheduler.EditorClosed {
			platform = snap.Form.Platform
		}
	}

	err := r.spinner.While("Loading suggestions...", func() error {
		_, err := r.widget.FetchSuggestions(ctx, platform)
		return err
	})
	if err != nil {
		return err
	}

	r.displaySuggestions()
	if len(r.widget.Picker().Snapshot().Suggestions) > 0 {
		r.displaySystem("Use /pick N to start a reminder at one of these times.")
	}
	return nil
}

func (r *REPL) handlePick(args string) error {
	n, err := strconv.Atoi(args)
	if err != nil {
		return fmt.Errorf("usage: /pick N")
	}

	form, err := r.widget.UseSuggestion(n - 1)
	if err != nil {
		if errors.Is(err, scheduler.ErrNoSuggestion) {
			return fmt.Errorf("%w (run /suggest first)", err)
		}
		return err
	}

	r.widget.Navigator().GoTo(form.Date.MonthOf())
	r.displayEditor()
	return nil
}

func (r *REPL) handleDelete(ctx context.Context, args string) error {
	id := postly.ID(strings.TrimPrefix(args, "#"))
	if id == "" {
		return fmt.Errorf("usage: /delete <id>")
	}
	if _, ok := r.widget.Reminders().Find(id); !ok {
		return fmt.Errorf("no reminder with id %s", id)
	}

	err := r.spinner.While("Deleting reminder...", func() error {
		return r.widget.DeleteReminder(ctx, r.api, id)
	})
	if err != nil {
		return err
	}
	r.displaySuccess("Reminder #" + string(id) + " deleted.")
	r.displayMonth()
	return nil
}

func (r *REPL) handleReload(ctx context.Context) error {
	err := r.spinner.While("Reloading reminders...", func() error {
		return r.widget.Reload(ctx, r.api)
	})
	if err != nil {
		return err
	}
	r.displayMonth()
	return nil
}

func (r *REPL) handlePlan(ctx context.Context, args string) error {
	days := r.opts.PlanDays
	if args != "" {
		n, err := strconv.Atoi(args)
		if err != nil || n <= 0 {
			return fmt.Errorf("usage: /plan [days]")
		}
		days = n
	}

	var res postly.PlanResult
	err := r.spinner.While("Generating posting plan...", func() error {
		var err error
		res, err = r.widget.GeneratePlan(ctx, r.api, days)
		return err
	})
	if err != nil {
		return err
	}

	platforms := "all platforms"
	if len(res.Platforms) > 0 {
		platforms = strings.Join(res.Platforms, ", ")
	}
	r.displaySuccess(fmt.Sprintf("Plan generated for the next %d days (%s).", days, platforms))
	r.displayMonth()
	return nil
}
