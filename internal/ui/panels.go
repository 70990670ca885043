package ui

import (
	"fmt"
	"strings"

	"github.com/notexe/postly-cli/internal/postly"
	"github.com/notexe/postly-cli/internal/scheduler"
)

// RenderEditor shows the reminder form being edited.
func (f *Formatter) RenderEditor(snap scheduler.EditorSnapshot, drafts DraftLabeler) string {
	if snap.State == scheduler.EditorClosed {
		return f.FormatDim("No reminder open. Use /day N to start one.") + "\n"
	}

	form := snap.Form
	draft := "none"
	if form.DraftID != "" {
		draft = string(form.DraftID)
		if drafts != nil {
			draft = drafts(form.DraftID)
		}
	}
	note := form.Note
	if note == "" {
		note = "-"
	}
	email := "off"
	if form.NotifyEmail {
		email = "on"
	}

	rows := [][2]string{
		{"Date", form.Date.Long()},
		{"Time", form.Time},
		{"Platform", form.Platform.DisplayName()},
		{"Draft", draft},
		{"Note", note},
		{"Email", email},
	}

	var sb strings.Builder
	for i, row := range rows {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(f.render(DimStyle, fmt.Sprintf("%-9s", row[0])))
		sb.WriteString(row[1])
	}
	if snap.State == scheduler.EditorSubmitting {
		sb.WriteString("\n")
		sb.WriteString(f.FormatStatus("Saving..."))
	}
	if snap.Err != nil {
		sb.WriteString("\n")
		sb.WriteString(f.FormatError(snap.Err))
	}

	return f.FormatBox("New reminder", sb.String()) + "\n"
}

// RenderSuggestions lists the picker's posting slots, numbered from 1.
func (f *Formatter) RenderSuggestions(snap scheduler.PickerSnapshot) string {
	var sb strings.Builder
	sb.WriteString(f.FormatHeader("Best times for " + snap.Platform.DisplayName()))
	sb.WriteString("\n")

	switch {
	case snap.Loading:
		sb.WriteString(f.FormatStatus("Loading suggestions..."))
		sb.WriteString("\n")
	case snap.Err != nil:
		sb.WriteString(f.FormatError(snap.Err))
		sb.WriteString("\n")
	case len(snap.Suggestions) == 0:
		sb.WriteString(f.FormatDim("No suggestions available."))
		sb.WriteString("\n")
	}

	for i, s := range snap.Suggestions {
		sb.WriteString(SuggestionLine(i+1, s))
		sb.WriteString("\n")
	}
	return sb.String()
}

// SuggestionLine formats a numbered suggestion, e.g.
// " 1. Wed, Mar 20 18:00  Instagram  evening engagement peak".
func SuggestionLine(n int, s postly.Suggestion) string {
	line := fmt.Sprintf("%2d. %s", n, s.Label())
	if s.Platform != "" {
		line += "  " + s.Platform.DisplayName()
	}
	if s.Reason != "" {
		line += "  " + s.Reason
	}
	return line
}

// DraftOptions turns drafts into selector options.
func DraftOptions(drafts []postly.DraftSummary) []SelectorOption {
	opts := make([]SelectorOption, 0, len(drafts)+1)
	opts = append(opts, SelectorOption{Label: "No draft"})
	for _, d := range drafts {
		opts = append(opts, SelectorOption{Label: d.Label(), Description: string(d.ID)})
	}
	return opts
}

// PlatformOptions lists the built-in platforms as selector options.
func PlatformOptions() []SelectorOption {
	opts := make([]SelectorOption, len(postly.Platforms))
	for i, p := range postly.Platforms {
		opts[i] = SelectorOption{Label: p.DisplayName(), Description: string(p)}
	}
	return opts
}
