package ui

import (
	"fmt"
	"io"
	"os"
)

// StatusDisplay shows a transient one-line status, e.g. while a request is
// in flight.
type StatusDisplay struct {
	formatter *Formatter
	enabled   bool
	out       io.Writer
}

func NewStatusDisplay(formatter *Formatter, enabled bool) *StatusDisplay {
	return &StatusDisplay{
		formatter: formatter,
		enabled:   enabled,
		out:       os.Stdout,
	}
}

func (s *StatusDisplay) Show(message string) {
	if !s.enabled {
		return
	}
	fmt.Fprint(s.out, "\r\033[K")
	fmt.Fprint(s.out, s.formatter.FormatStatus(message))
}

func (s *StatusDisplay) Hide() {
	if !s.enabled {
		return
	}
	fmt.Fprint(s.out, "\r\033[K")
}
