package scheduler

import (
	"context"
	"fmt"

	"github.com/notexe/postly-cli/internal/postly"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Dashboard is the data a scheduler view starts from.
type Dashboard struct {
	Reminders []postly.Reminder
	Drafts    []postly.DraftSummary
	Profile   postly.Profile
}

// DashboardSource loads the initial dashboard data.
type DashboardSource interface {
	ListReminders(ctx context.Context) ([]postly.Reminder, error)
	ListDrafts(ctx context.Context) ([]postly.DraftSummary, error)
	Profile(ctx context.Context) (postly.Profile, error)
}

// LoadDashboard fetches reminders, drafts and profile concurrently.
// Only a reminder failure is fatal; drafts and profile degrade to empty.
func LoadDashboard(ctx context.Context, src DashboardSource, logger *zap.Logger) (Dashboard, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var d Dashboard
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		rs, err := src.ListReminders(gctx)
		if err != nil {
			return fmt.Errorf("failed to load reminders: %w", err)
		}
		d.Reminders = rs
		return nil
	})
	g.Go(func() error {
		drafts, err := src.ListDrafts(gctx)
		if err != nil {
			logger.Warn("could not load drafts", zap.Error(err))
			return nil
		}
		d.Drafts = drafts
		return nil
	})
	g.Go(func() error {
		p, err := src.Profile(gctx)
		if err != nil {
			logger.Warn("could not load profile", zap.Error(err))
			return nil
		}
		d.Profile = p
		return nil
	})

	if err := g.Wait(); err != nil {
		return Dashboard{}, err
	}
	return d, nil
}

// Apply seeds the widget with dashboard data.
func (w *Widget) Apply(d Dashboard) {
	w.reminders.Replace(d.Reminders)
	w.SetDrafts(d.Drafts)
	w.editor.SetDefaultPlatform(d.Profile.DefaultPlatform)
}

// ReminderLister reloads the reminder list.
type ReminderLister interface {
	ListReminders(ctx context.Context) ([]postly.Reminder, error)
}

// Reload replaces the collection with the backend's list.
func (w *Widget) Reload(ctx context.Context, src ReminderLister) error {
	rs, err := src.ListReminders(ctx)
	if err != nil {
		return fmt.Errorf("could not reload reminders: %w", err)
	}
	w.reminders.Replace(rs)
	return nil
}

// ReminderDeleter removes reminders on the backend.
type ReminderDeleter interface {
	DeleteReminder(ctx context.Context, id postly.ID) error
}

// DeleteReminder deletes id on the backend, then drops it locally.
func (w *Widget) DeleteReminder(ctx context.Context, del ReminderDeleter, id postly.ID) error {
	if err := del.DeleteReminder(ctx, id); err != nil {
		return fmt.Errorf("could not delete reminder: %w", err)
	}
	w.reminders.Remove(id)
	w.logger.Info("reminder deleted", zap.String("id", string(id)))
	return nil
}

// Planner asks the backend for a generated posting plan.
type Planner interface {
	GeneratePlan(ctx context.Context, req postly.PlanRequest) (postly.PlanResult, error)
	ReminderLister
}

// GeneratePlan requests a cross-platform plan for the next days and
// reloads the reminders so the planned posts show up.
func (w *Widget) GeneratePlan(ctx context.Context, p Planner, days int) (postly.PlanResult, error) {
	if days <= 0 {
		days = 7
	}
	res, err := p.GeneratePlan(ctx, postly.PlanRequest{Platform: "all", Days: days})
	if err != nil {
		return postly.PlanResult{}, fmt.Errorf("could not generate a posting plan: %w", err)
	}
	if err := w.Reload(ctx, p); err != nil {
		return res, err
	}
	return res, nil
}
