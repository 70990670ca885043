package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var ErrCancelled = errors.New("cancelled")

// SelectorOption is a single option in the selector.
type SelectorOption struct {
	Label       string
	Description string
}

// Selector is an arrow-key navigable menu. Off a terminal it falls back
// to a numbered list read from its input.
type Selector struct {
	question string
	options  []SelectorOption
	selected int
	colored  bool

	in  io.Reader
	out io.Writer

	cursorStyle   lipgloss.Style
	selectedStyle lipgloss.Style
	optionStyle   lipgloss.Style
	dimStyle      lipgloss.Style
	questionStyle lipgloss.Style
	hintStyle     lipgloss.Style
}

func NewSelector(question string, options []SelectorOption, colored bool) *Selector {
	return &Selector{
		question: question,
		options:  options,
		colored:  colored,
		in:       os.Stdin,
		out:      os.Stdout,

		cursorStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true),
		selectedStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("114")).Bold(true),
		optionStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		dimStyle:      lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		questionStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("81")).Bold(true),
		hintStyle:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true),
	}
}

// WithIO replaces stdin/stdout.
func (s *Selector) WithIO(in io.Reader, out io.Writer) *Selector {
	s.in = in
	s.out = out
	return s
}

// Preselect moves the cursor to option i.
func (s *Selector) Preselect(i int) *Selector {
	if i >= 0 && i < len(s.options) {
		s.selected = i
	}
	return s
}

// Run displays the selector and returns the chosen index.
func (s *Selector) Run() (int, error) {
	if len(s.options) == 0 {
		return -1, errors.New("nothing to select")
	}

	f, ok := s.in.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return s.runSimple()
	}
	fd := int(f.Fd())

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return s.runSimple()
	}
	defer func() {
		term.Restore(fd, oldState)
		fmt.Fprint(s.out, "\033[?25h") // show cursor
	}()

	fmt.Fprint(s.out, "\033[?25l") // hide cursor
	totalLines := len(s.options) + 3
	s.printMenu()

	reader := bufio.NewReader(s.in)
	for {
		b, err := reader.ReadByte()
		if err != nil {
			return -1, err
		}

		done := false
		switch b {
		case 13, 10: // Enter
			done = true
		case 3, 'q': // Ctrl+C
			s.clearMenu(totalLines)
			return -1, ErrCancelled
		case 'j':
			s.moveDown()
		case 'k':
			s.moveUp()
		case ' ':
			done = true
		case 27: // escape sequence
			b2, _ := reader.ReadByte()
			if b2 == '[' {
				b3, _ := reader.ReadByte()
				switch b3 {
				case 'A':
					s.moveUp()
				case 'B':
					s.moveDown()
				}
			}
		default:
			if b >= '1' && b <= '9' {
				if idx := int(b - '1'); idx < len(s.options) {
					s.selected = idx
					done = true
				}
			}
		}

		s.clearMenu(totalLines)
		if done {
			return s.selected, nil
		}
		s.printMenu()
	}
}

func (s *Selector) printMenu() {
	var sb strings.Builder

	sb.WriteString(s.style(s.questionStyle, s.question))
	sb.WriteString("\r\n")
	sb.WriteString(s.style(s.hintStyle, "[j/k or arrows] move  [enter] select  [q] cancel"))
	sb.WriteString("\r\n\r\n")

	for i, opt := range s.options {
		label := opt.Label
		if opt.Description != "" {
			label += " - " + opt.Description
		}

		if i == s.selected {
			sb.WriteString(s.style(s.cursorStyle, "> "))
			sb.WriteString(s.style(s.selectedStyle, label))
		} else {
			sb.WriteString(s.style(s.dimStyle, "  "))
			sb.WriteString(s.style(s.optionStyle, label))
		}
		sb.WriteString("\r\n")
	}

	fmt.Fprint(s.out, sb.String())
}

func (s *Selector) style(st lipgloss.Style, text string) string {
	if s.colored {
		return st.Render(text)
	}
	return text
}

func (s *Selector) clearMenu(lines int) {
	for i := 0; i < lines; i++ {
		fmt.Fprint(s.out, "\033[A\033[2K\r")
	}
}

// runSimple prints a numbered list and reads a number. An empty answer
// keeps the preselected option.
func (s *Selector) runSimple() (int, error) {
	fmt.Fprintln(s.out, s.question)
	for i, opt := range s.options {
		label := opt.Label
		if opt.Description != "" {
			label += " - " + opt.Description
		}
		fmt.Fprintf(s.out, "  [%d] %s\n", i+1, label)
	}
	fmt.Fprint(s.out, "Enter number: ")

	line, err := bufio.NewReader(s.in).ReadString('\n')
	if err != nil && line == "" {
		return -1, ErrCancelled
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return s.selected, nil
	}

	n, err := strconv.Atoi(line)
	if err != nil || n < 1 || n > len(s.options) {
		return -1, fmt.Errorf("invalid choice %q", line)
	}
	return n - 1, nil
}

func (s *Selector) moveUp() {
	if s.selected > 0 {
		s.selected--
	} else {
		s.selected = len(s.options) - 1
	}
}

func (s *Selector) moveDown() {
	if s.selected < len(s.options)-1 {
		s.selected++
	} else {
		s.selected = 0
	}
}

// ReadPassword prompts for a secret without echo when stdin is a terminal.
func ReadPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(b), nil
	}

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
