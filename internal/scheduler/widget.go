// Package scheduler is the calendar reminder scheduler: a month view over a
// caller-owned reminder list, a reminder editor and a posting-time picker.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/notexe/postly-cli/internal/calendar"
	"github.com/notexe/postly-cli/internal/postly"
	"go.uber.org/zap"
)

// Backend is the part of the Postly API the scheduler core needs.
type Backend interface {
	CreateReminder(ctx context.Context, in postly.ReminderInput) (postly.Reminder, error)
	FetchSuggestions(ctx context.Context, platform postly.Platform) ([]postly.Suggestion, error)
}

// Options configures a Widget. Zero values fall back to sensible defaults.
type Options struct {
	Location        *time.Location
	Now             func() time.Time
	DefaultPlatform postly.Platform
	Drafts          []postly.DraftSummary
	Logger          *zap.Logger
}

// Widget ties the month navigator, editor and picker to one reminder list.
type Widget struct {
	nav       *calendar.Navigator
	editor    *Editor
	picker    *Picker
	reminders *Collection
	loc       *time.Location
	logger    *zap.Logger

	mu     sync.RWMutex
	drafts []postly.DraftSummary
}

// New creates a widget over reminders. A nil collection starts empty.
func New(backend Backend, reminders *Collection, opts Options) *Widget {
	if reminders == nil {
		reminders = NewCollection(nil)
	}
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("scheduler")

	w := &Widget{
		nav:       calendar.NewNavigator(loc, opts.Now),
		editor:    newEditor(backend, reminders, loc, logger),
		picker:    newPicker(backend, logger),
		reminders: reminders,
		loc:       loc,
		logger:    logger,
	}
	w.editor.SetDefaultPlatform(opts.DefaultPlatform)
	w.SetDrafts(opts.Drafts)
	return w
}

func (w *Widget) Navigator() *calendar.Navigator { return w.nav }
func (w *Widget) Editor() *Editor                { return w.editor }
func (w *Widget) Picker() *Picker                { return w.picker }
func (w *Widget) Reminders() *Collection         { return w.reminders }
func (w *Widget) Location() *time.Location       { return w.loc }

// SetDrafts replaces the drafts offered for attachment.
func (w *Widget) SetDrafts(drafts []postly.DraftSummary) {
	cp := make([]postly.DraftSummary, len(drafts))
	copy(cp, drafts)

	w.mu.Lock()
	w.drafts = cp
	w.mu.Unlock()
	w.editor.setDrafts(cp)
}

func (w *Widget) Drafts() []postly.DraftSummary {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]postly.DraftSummary, len(w.drafts))
	copy(out, w.drafts)
	return out
}

// DraftLabel returns the label of a known draft, or the raw id.
func (w *Widget) DraftLabel(id postly.ID) string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	for _, d := range w.drafts {
		if d.ID == id {
			return d.Label()
		}
	}
	return string(id)
}

// MonthView is everything needed to draw the visible month.
type MonthView struct {
	Month calendar.Month
	Today calendar.Date
	Weeks [][]calendar.Cell
	Total int
}

// View derives the grid of the visible month from the current reminders.
func (w *Widget) View() MonthView {
	m := w.nav.Visible()
	byDay := calendar.RemindersByDay(w.reminders.All(), w.loc)

	total := 0
	for _, d := range m.Days() {
		total += len(byDay[d])
	}
	return MonthView{
		Month: m,
		Today: w.nav.Today(),
		Weeks: calendar.Grid(m, byDay),
		Total: total,
	}
}

// RemindersOn lists the reminders of one day in list order.
func (w *Widget) RemindersOn(d calendar.Date) []postly.Reminder {
	return calendar.RemindersByDay(w.reminders.All(), w.loc)[d]
}

func (w *Widget) PrevMonth() calendar.Month { return w.nav.GoToPreviousMonth() }
func (w *Widget) NextMonth() calendar.Month { return w.nav.GoToNextMonth() }

// OpenDay opens the editor for d with default fields.
func (w *Widget) OpenDay(d calendar.Date) {
	w.editor.Open(d)
}

// SubmitReminder saves the open form. See Editor.Submit.
func (w *Widget) SubmitReminder(ctx context.Context) (*postly.Reminder, error) {
	return w.editor.Submit(ctx)
}

func (w *Widget) CloseEditor() { w.editor.Close() }

// FetchSuggestions opens the picker and loads slots for platform.
func (w *Widget) FetchSuggestions(ctx context.Context, platform postly.Platform) ([]postly.Suggestion, error) {
	return w.picker.Fetch(ctx, platform)
}

// UseSuggestion turns suggestion i into a pre-filled editor form.
func (w *Widget) UseSuggestion(i int) (ReminderForm, error) {
	s, platform, err := w.picker.Take(i)
	if err != nil {
		return ReminderForm{}, err
	}
	return w.OpenFromSuggestion(s, platform), nil
}

// OpenFromSuggestion opens the editor at the suggestion's date and time.
func (w *Widget) OpenFromSuggestion(s postly.Suggestion, fallback postly.Platform) ReminderForm {
	form := FormFromSuggestion(s, fallback)
	w.picker.Close()
	w.editor.OpenWith(form)
	return form
}
