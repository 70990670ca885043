package ui

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner is an animated loading indicator on stderr.
type Spinner struct {
	message  string
	running  bool
	stopCh   chan struct{}
	done     chan struct{}
	mu       sync.Mutex
	enabled  bool
	colored  bool
	interval time.Duration
	out      io.Writer

	style    lipgloss.Style
	msgStyle lipgloss.Style
}

// NewSpinner creates a spinner. A disabled spinner prints nothing.
func NewSpinner(enabled, colored bool) *Spinner {
	return &Spinner{
		enabled:  enabled,
		colored:  colored,
		interval: 80 * time.Millisecond,
		out:      os.Stderr,
		style:    lipgloss.NewStyle().Foreground(lipgloss.Color("86")),
		msgStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true),
	}
}

// Start begins the animation. Starting a running spinner updates its message.
func (s *Spinner) Start(message string) {
	s.mu.Lock()
	if !s.enabled {
		s.mu.Unlock()
		return
	}
	if s.running {
		s.message = message
		s.mu.Unlock()
		return
	}

	s.message = message
	s.running = true
	s.stopCh = make(chan struct{})
	s.done = make(chan struct{})
	s.mu.Unlock()

	go s.animate()
}

// Stop stops the spinner and clears the line.
func (s *Spinner) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	close(s.stopCh)
	s.mu.Unlock()

	<-s.done
	fmt.Fprint(s.out, "\r\033[K")
}

// While runs fn with the spinner showing message.
func (s *Spinner) While(message string, fn func() error) error {
	s.Start(message)
	defer s.Stop()
	return fn()
}

func (s *Spinner) animate() {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	frame := 0
	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.mu.Lock()
			msg := s.message
			s.mu.Unlock()

			s.render(spinnerFrames[frame], msg)
			frame = (frame + 1) % len(spinnerFrames)
		}
	}
}

func (s *Spinner) render(frame, message string) {
	if s.colored {
		frame = s.style.Render(frame)
		message = s.msgStyle.Render(message)
	}
	fmt.Fprintf(s.out, "\r\033[K%s %s", frame, message)
}
