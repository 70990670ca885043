package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/notexe/postly-cli/internal/calendar"
	"github.com/notexe/postly-cli/internal/postly"
	"go.uber.org/zap"
)

// DefaultTime is the time pre-filled when a day is opened.
const DefaultTime = "12:00"

var (
	ErrSubmitInProgress = errors.New("reminder is already being saved")
	ErrEditorClosed     = errors.New("no reminder is being edited")
	ErrUnknownDraft     = errors.New("draft is not in the draft list")
)

// EditorState is the lifecycle phase of the reminder editor.
type EditorState int

const (
	EditorClosed EditorState = iota
	EditorOpen
	EditorSubmitting
)

func (s EditorState) String() string {
	switch s {
	case EditorOpen:
		return "open"
	case EditorSubmitting:
		return "submitting"
	default:
		return "closed"
	}
}

// ReminderForm holds the editor fields.
type ReminderForm struct {
	Date        calendar.Date
	Time        string
	Platform    postly.Platform
	DraftID     postly.ID
	Note        string
	NotifyEmail bool
}

// DefaultForm returns the fields a freshly opened day starts with.
func DefaultForm(date calendar.Date, platform postly.Platform) ReminderForm {
	if platform == "" {
		platform = postly.DefaultPlatform
	}
	return ReminderForm{
		Date:        date,
		Time:        DefaultTime,
		Platform:    platform,
		NotifyEmail: true,
	}
}

// FormFromSuggestion pre-fills the editor from a posting slot. Date and
// time are read in the suggestion's own offset, not converted.
func FormFromSuggestion(s postly.Suggestion, fallback postly.Platform) ReminderForm {
	platform := s.Platform
	if platform == "" {
		platform = fallback
	}
	form := DefaultForm(calendar.DateOf(s.Datetime, nil), platform)
	form.Time = fmt.Sprintf("%02d:%02d", s.Datetime.Hour(), s.Datetime.Minute())
	return form
}

// ParseClock splits an HH:MM string. A missing or unparseable part is 0.
func ParseClock(s string) (hour, minute int) {
	h, m, _ := strings.Cut(strings.TrimSpace(s), ":")
	hour, _ = strconv.Atoi(strings.TrimSpace(h))
	minute, _ = strconv.Atoi(strings.TrimSpace(m))
	return hour, minute
}

// ScheduledAt combines the form's date and time in loc.
func (f ReminderForm) ScheduledAt(loc *time.Location) time.Time {
	hour, minute := ParseClock(f.Time)
	return f.Date.At(hour, minute, loc)
}

// Input builds the creation payload. The draft is only sent when set.
func (f ReminderForm) Input(loc *time.Location) postly.ReminderInput {
	return postly.ReminderInput{
		ScheduledAt: f.ScheduledAt(loc),
		Platform:    f.Platform,
		Note:        f.Note,
		NotifyEmail: f.NotifyEmail,
		DraftID:     f.DraftID,
	}
}

// EditorSnapshot is a point-in-time copy of the editor.
type EditorSnapshot struct {
	State EditorState
	Form  ReminderForm
	Err   error
}

// Editor collects and submits a new reminder for one calendar day.
type Editor struct {
	mu        sync.Mutex
	backend   Backend
	reminders *Collection
	loc       *time.Location
	logger    *zap.Logger

	state           EditorState
	form            ReminderForm
	err             error
	gen             uint64
	defaultPlatform postly.Platform
	drafts          []postly.DraftSummary
}

func newEditor(backend Backend, reminders *Collection, loc *time.Location, logger *zap.Logger) *Editor {
	return &Editor{
		backend:         backend,
		reminders:       reminders,
		loc:             loc,
		logger:          logger,
		defaultPlatform: postly.DefaultPlatform,
	}
}

// Open starts a reminder for date with default fields.
func (e *Editor) Open(date calendar.Date) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.openLocked(DefaultForm(date, e.defaultPlatform))
}

// OpenWith starts a reminder with the given fields.
func (e *Editor) OpenWith(form ReminderForm) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.openLocked(form)
}

func (e *Editor) openLocked(form ReminderForm) {
	e.gen++
	e.state = EditorOpen
	e.form = form
	e.err = nil
}

// Close discards the form. A save already in flight still completes.
func (e *Editor) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.gen++
	e.state = EditorClosed
	e.err = nil
}

// Snapshot returns a copy of the editor state.
func (e *Editor) Snapshot() EditorSnapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return EditorSnapshot{State: e.state, Form: e.form, Err: e.err}
}

// SetDefaultPlatform changes the platform new forms start with.
func (e *Editor) SetDefaultPlatform(p postly.Platform) {
	if p == "" {
		return
	}
	e.mu.Lock()
	e.defaultPlatform = p
	e.mu.Unlock()
}

// Err returns the error of the last failed submit, if the form is still open.
func (e *Editor) Err() error {
	return e.Snapshot().Err
}

func (e *Editor) DefaultPlatform() postly.Platform {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.defaultPlatform
}

func (e *Editor) setDrafts(drafts []postly.DraftSummary) {
	e.mu.Lock()
	e.drafts = drafts
	e.mu.Unlock()
}

func (e *Editor) update(fn func(f *ReminderForm) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	switch e.state {
	case EditorClosed:
		return ErrEditorClosed
	case EditorSubmitting:
		return ErrSubmitInProgress
	}
	return fn(&e.form)
}

func (e *Editor) SetTime(hhmm string) error {
	return e.update(func(f *ReminderForm) error {
		f.Time = hhmm
		return nil
	})
}

func (e *Editor) SetPlatform(p postly.Platform) error {
	return e.update(func(f *ReminderForm) error {
		f.Platform = p
		return nil
	})
}

func (e *Editor) SetNote(note string) error {
	return e.update(func(f *ReminderForm) error {
		f.Note = note
		return nil
	})
}

func (e *Editor) SetNotifyEmail(on bool) error {
	return e.update(func(f *ReminderForm) error {
		f.NotifyEmail = on
		return nil
	})
}

// SetDraft attaches one of the known drafts.
func (e *Editor) SetDraft(id postly.ID) error {
	return e.update(func(f *ReminderForm) error {
		for _, d := range e.drafts {
			if d.ID == id {
				f.DraftID = id
				return nil
			}
		}
		return fmt.Errorf("%w: %s", ErrUnknownDraft, id)
	})
}

func (e *Editor) ClearDraft() error {
	return e.update(func(f *ReminderForm) error {
		f.DraftID = ""
		return nil
	})
}

// Submit saves the form. On success the backend's reminder is appended to
// the collection and the editor closes. On failure the form stays open and
// intact and the error is returned. Without an open form it does nothing.
func (e *Editor) Submit(ctx context.Context) (*postly.Reminder, error) {
	e.mu.Lock()
	switch {
	case e.state == EditorSubmitting:
		e.mu.Unlock()
		return nil, ErrSubmitInProgress
	case e.state == EditorClosed, e.form.Date.IsZero():
		e.mu.Unlock()
		return nil, nil
	}
	input := e.form.Input(e.loc)
	gen := e.gen
	e.state = EditorSubmitting
	e.err = nil
	e.mu.Unlock()

	created, err := e.backend.CreateReminder(ctx, input)

	e.mu.Lock()
	defer e.mu.Unlock()
	current := e.gen == gen

	if err != nil {
		err = fmt.Errorf("could not save reminder: %w", err)
		e.logger.Warn("reminder save failed",
			zap.Time("scheduled_at", input.ScheduledAt),
			zap.String("platform", string(input.Platform)),
			zap.Error(err))
		if current {
			e.state = EditorOpen
			e.err = err
		}
		return nil, err
	}

	e.reminders.Append(created)
	e.logger.Info("reminder saved",
		zap.String("id", string(created.ID)),
		zap.Time("scheduled_at", created.ScheduledAt))
	if current {
		e.gen++
		e.state = EditorClosed
	}
	return &created, nil
}
