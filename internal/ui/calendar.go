package ui

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/notexe/postly-cli/internal/calendar"
	"github.com/notexe/postly-cli/internal/postly"
	"github.com/notexe/postly-cli/internal/scheduler"
)

var weekdayHeader = []string{"Mo", "Tu", "We", "Th", "Fr", "Sa", "Su"}

// gridWidth is seven cells of "dd*" separated by single spaces.
const gridWidth = 7*3 + 6

// MonthGrid is the input of RenderMonth.
type MonthGrid struct {
	View     scheduler.MonthView
	Selected calendar.Date
}

// RenderMonth draws a Monday-first month. Days with one reminder get a
// dot, busier days get their count (or + above nine).
func (f *Formatter) RenderMonth(g MonthGrid) string {
	var sb strings.Builder

	title := g.View.Month.Label()
	pad := (gridWidth - lipgloss.Width(title)) / 2
	if pad < 0 {
		pad = 0
	}
	sb.WriteString(strings.Repeat(" ", pad))
	sb.WriteString(f.render(HeaderStyle, title))
	sb.WriteString("\n")
	sb.WriteString(f.render(DimStyle, strings.Join(weekdayHeader, " ")))
	sb.WriteString("\n")

	for _, week := range g.View.Weeks {
		cells := make([]string, len(week))
		for i, c := range week {
			cells[i] = f.renderCell(c, g.View.Today, g.Selected)
		}
		sb.WriteString(strings.TrimRight(strings.Join(cells, " "), " "))
		sb.WriteString("\n")
	}

	switch g.View.Total {
	case 0:
		sb.WriteString(f.render(DimStyle, "no reminders this month"))
	case 1:
		sb.WriteString(f.render(StatusStyle, "1 reminder this month"))
	default:
		sb.WriteString(f.render(StatusStyle, fmt.Sprintf("%d reminders this month", g.View.Total)))
	}
	sb.WriteString("\n")
	return sb.String()
}

func (f *Formatter) renderCell(c calendar.Cell, today, selected calendar.Date) string {
	if c.Blank {
		return "   "
	}

	day := fmt.Sprintf("%2d", c.Date.Day)
	switch {
	case c.Date == selected:
		day = f.render(SelectedStyle, day)
	case c.Date == today:
		day = f.render(TodayStyle, day)
	}

	return day + f.render(BusyStyle, ReminderMarker(len(c.Reminders)))
}

// ReminderMarker is the one-character busy marker of a day cell.
func ReminderMarker(n int) string {
	switch {
	case n <= 0:
		return " "
	case n == 1:
		return "•"
	case n <= 9:
		return fmt.Sprintf("%d", n)
	default:
		return "+"
	}
}

// DraftLabeler resolves a draft id to a display label.
type DraftLabeler func(id postly.ID) string

// ReminderLine formats one reminder, e.g.
// "09:30  TikTok  teaser  [draft: Spring promo] ✉ #12".
func ReminderLine(r postly.Reminder, loc *time.Location, drafts DraftLabeler) string {
	at := r.ScheduledAt
	if loc != nil {
		at = at.In(loc)
	}

	parts := []string{at.Format("15:04"), r.Platform.DisplayName()}
	if r.Note != "" {
		parts = append(parts, r.Note)
	}
	if r.DraftID != "" {
		label := string(r.DraftID)
		if drafts != nil {
			label = drafts(r.DraftID)
		}
		parts = append(parts, "[draft: "+label+"]")
	}
	if r.NotifyEmail {
		parts = append(parts, "✉")
	}
	if r.ID != "" {
		parts = append(parts, "#"+string(r.ID))
	}
	return strings.Join(parts, "  ")
}

// RenderDay lists the reminders of one day as markdown.
func (f *Formatter) RenderDay(d calendar.Date, reminders []postly.Reminder, loc *time.Location, drafts DraftLabeler) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "## %s\n\n", d.Long())
	if len(reminders) == 0 {
		sb.WriteString("_No reminders yet._\n")
	}
	for _, r := range reminders {
		fmt.Fprintf(&sb, "- %s\n", ReminderLine(r, loc, drafts))
	}
	return f.RenderMarkdown(sb.String())
}

// RenderReminderList prints reminders grouped by day, in day order.
func (f *Formatter) RenderReminderList(reminders []postly.Reminder, loc *time.Location, drafts DraftLabeler) string {
	if len(reminders) == 0 {
		return f.FormatDim("No reminders.") + "\n"
	}

	byDay := calendar.RemindersByDay(reminders, loc)
	days := make([]calendar.Date, 0, len(byDay))
	for d := range byDay {
		days = append(days, d)
	}
	slices.SortFunc(days, func(a, b calendar.Date) int {
		switch {
		case a.Before(b):
			return -1
		case b.Before(a):
			return 1
		}
		return 0
	})

	var sb strings.Builder
	for _, d := range days {
		sb.WriteString(f.FormatHeader(d.Long()))
		sb.WriteString("\n")
		for _, r := range byDay[d] {
			sb.WriteString("  ")
			sb.WriteString(ReminderLine(r, loc, drafts))
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
