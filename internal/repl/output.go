package repl

import (
	"fmt"

	"github.com/notexe/postly-cli/internal/calendar"
	"github.com/notexe/postly-cli/internal/scheduler"
	"github.com/notexe/postly-cli/internal/ui"
)

func (r *REPL) displayError(err error) {
	r.status.Hide()
	fmt.Fprintln(r.out, r.formatter.FormatError(err))
	fmt.Fprintln(r.out)
}

func (r *REPL) displayWelcome() {
	fmt.Fprint(r.out, r.formatter.FormatWelcome(r.opts.Username, r.opts.BaseURL))
}

func (r *REPL) displayHelp() {
	fmt.Fprint(r.out, r.formatter.FormatHelp())
}

func (r *REPL) displayInfo(msg string) {
	fmt.Fprintln(r.out, r.formatter.FormatInfo(msg))
	fmt.Fprintln(r.out)
}

func (r *REPL) displaySystem(msg string) {
	fmt.Fprintln(r.out, r.formatter.FormatStatus(msg))
	fmt.Fprintln(r.out)
}

func (r *REPL) displaySuccess(msg string) {
	fmt.Fprintln(r.out, r.formatter.FormatSuccess(msg))
	fmt.Fprintln(r.out)
}

func (r *REPL) displayMonth() {
	grid := ui.MonthGrid{View: r.widget.View()}
	if snap := r.widget.Editor().Snapshot(); snap.State != scheduler.EditorClosed {
		grid.Selected = snap.Form.Date
	}
	fmt.Fprintln(r.out, r.formatter.RenderMonth(grid))
}

func (r *REPL) displayDay(d calendar.Date) {
	fmt.Fprint(r.out, r.formatter.RenderDay(d, r.widget.RemindersOn(d), r.widget.Location(), r.widget.DraftLabel))
	fmt.Fprintln(r.out)
}

func (r *REPL) displayEditor() {
	fmt.Fprintln(r.out, r.formatter.RenderEditor(r.widget.Editor().Snapshot(), r.widget.DraftLabel))
}

func (r *REPL) displaySuggestions() {
	fmt.Fprintln(r.out, r.formatter.RenderSuggestions(r.widget.Picker().Snapshot()))
}
