package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("81")). // Bright cyan
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203")). // Coral red
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("222")) // Warm yellow

	StatusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")). // Medium gray
			Italic(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("114")). // Green
			Bold(true)

	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	AccentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("147")) // Light purple

	TodayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("16")).
			Background(lipgloss.Color("81")).
			Bold(true)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("16")).
			Background(lipgloss.Color("147"))

	BusyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("215")). // Orange
			Bold(true)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")). // Soft blue border
			Padding(0, 1)
)

type Formatter struct {
	colored bool
}

func NewFormatter(colored bool) *Formatter {
	return &Formatter{colored: colored}
}

func (f *Formatter) Colored() bool {
	return f.colored
}

func (f *Formatter) render(style lipgloss.Style, s string) string {
	if f.colored {
		return style.Render(s)
	}
	return s
}

func (f *Formatter) FormatError(err error) string {
	return f.render(ErrorStyle, "Error: ") + err.Error()
}

func (f *Formatter) FormatInfo(info string) string {
	return f.render(InfoStyle, info)
}

func (f *Formatter) FormatSuccess(msg string) string {
	return f.render(SuccessStyle, "✓ ") + msg
}

func (f *Formatter) FormatStatus(msg string) string {
	return f.render(StatusStyle, msg)
}

func (f *Formatter) FormatDim(msg string) string {
	return f.render(DimStyle, msg)
}

func (f *Formatter) FormatHeader(msg string) string {
	return f.render(HeaderStyle, msg)
}

// FormatWelcome is the banner printed when the shell starts.
func (f *Formatter) FormatWelcome(user, baseURL string) string {
	if user == "" {
		user = "creator"
	}
	title := fmt.Sprintf("Postly scheduler • %s", user)
	lines := []string{
		title,
		"API: " + baseURL,
		"",
		"Type /help for commands",
	}

	if !f.colored {
		return "\n" + strings.Join(lines, "\n") + "\n\n"
	}

	body := strings.Join([]string{
		HeaderStyle.Render(title),
		DimStyle.Render("API: ") + SuccessStyle.UnsetBold().Render(baseURL),
		"",
		StatusStyle.Render("Type /help for commands"),
	}, "\n")
	return "\n" + BoxStyle.Render(body) + "\n\n"
}

// FormatPrompt returns the shell prompt, e.g. "march 2024 >" or
// "mar 15 >" while a reminder is being edited.
func (f *Formatter) FormatPrompt(label string) string {
	if f.colored {
		return lipgloss.NewStyle().Foreground(lipgloss.Color("62")).Render(label) +
			lipgloss.NewStyle().Foreground(lipgloss.Color("114")).Bold(true).Render(" > ")
	}
	return label + " > "
}

// FormatBox wraps content in a titled box.
func (f *Formatter) FormatBox(title, content string) string {
	if f.colored {
		return HeaderStyle.Render(title) + "\n" + BoxStyle.Render(content)
	}
	return title + "\n" + content
}
