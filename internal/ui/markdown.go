package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// RenderMarkdown renders md for the terminal. Without colors, or when the
// renderer fails, the markdown source is returned as is.
func (f *Formatter) RenderMarkdown(md string) string {
	if !f.colored {
		return md
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return md
	}

	out, err := renderer.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n") + "\n"
}

const helpMarkdown = `# Commands

## Calendar
- ` + "`/prev`" + `, ` + "`/next`" + `, ` + "`/today`" + ` move between months
- ` + "`/month YYYY-MM`" + ` jump to a month
- ` + "`/show`" + ` redraw the calendar
- ` + "`/day N`" + ` or ` + "`/day YYYY-MM-DD`" + ` open a day and start a reminder

## Reminder
- ` + "`/time HH:MM`" + ` set the time
- ` + "`/platform [name]`" + ` set the platform, or pick one
- ` + "`/draft [n|none]`" + ` attach a draft, or pick one
- ` + "`/note <text>`" + ` set the note, ` + "`/note ai [hint]`" + ` drafts one
- ` + "`/email on|off`" + ` email notification
- ` + "`/save`" + ` save the reminder, ` + "`/close`" + ` discard it

## Suggestions
- ` + "`/suggest [platform]`" + ` recommended posting times
- ` + "`/pick N`" + ` start a reminder from suggestion N

## Other
- ` + "`/delete <id>`" + ` delete a reminder
- ` + "`/reload`" + ` reload reminders from the server
- ` + "`/plan [days]`" + ` generate an AI posting plan
- ` + "`/help`" + `, ` + "`/quit`" + `

Ctrl+C or Ctrl+D exits.
`

func (f *Formatter) FormatHelp() string {
	return f.RenderMarkdown(helpMarkdown)
}
