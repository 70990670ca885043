package assist

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/notexe/postly-cli/internal/postly"
	"go.uber.org/zap"
)

const noteSystemPrompt = "You write reminder notes for a social media creator. " +
	"Reply with a single short sentence, at most 140 characters, no hashtags, no quotes, no preamble."

// MaxNoteLen caps generated notes, in runes.
const MaxNoteLen = 140

// NoteRequest describes the reminder a note is drafted for.
type NoteRequest struct {
	ScheduledAt time.Time
	Platform    postly.Platform
	Draft       string // label of the attached draft, if any
	Hint        string // free text from the user
}

// NoteWriter drafts reminder notes.
type NoteWriter struct {
	provider    Provider
	model       string
	maxTokens   int
	temperature float64
	logger      *zap.Logger
}

func NewNoteWriter(p Provider, model string, maxTokens int, temperature float64, logger *zap.Logger) *NoteWriter {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxTokens <= 0 {
		maxTokens = 256
	}
	return &NoteWriter{
		provider:    p,
		model:       model,
		maxTokens:   maxTokens,
		temperature: temperature,
		logger:      logger.Named("assist"),
	}
}

// Draft asks the model for a note and returns it cleaned up.
func (w *NoteWriter) Draft(ctx context.Context, req NoteRequest) (string, error) {
	if w == nil || w.provider == nil {
		return "", ErrDisabled
	}

	resp, err := w.provider.Complete(ctx, Request{
		System:      noteSystemPrompt,
		Messages:    []Message{{Role: "user", Content: notePrompt(req)}},
		Model:       w.model,
		MaxTokens:   w.maxTokens,
		Temperature: w.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("could not draft note: %w", err)
	}

	w.logger.Debug("note drafted",
		zap.String("provider", w.provider.Name()),
		zap.Int("input_tokens", resp.InputTokens),
		zap.Int("output_tokens", resp.OutputTokens))

	note := CleanNote(resp.Content)
	if note == "" {
		return "", errors.New("could not draft note: empty reply")
	}
	return note, nil
}

func notePrompt(req NoteRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Post on %s at %s.", req.Platform.DisplayName(), req.ScheduledAt.Format("Monday, January 2 15:04"))
	if req.Draft != "" {
		fmt.Fprintf(&b, " Content draft: %s.", req.Draft)
	}
	if req.Hint != "" {
		fmt.Fprintf(&b, " The creator says: %s", req.Hint)
	}
	b.WriteString("\nWrite the reminder note.")
	return b.String()
}

// CleanNote keeps the first line of a model reply, strips wrapping quotes
// and caps it at MaxNoteLen runes.
func CleanNote(s string) string {
	s = strings.TrimSpace(s)
	if line, _, found := strings.Cut(s, "\n"); found {
		s = strings.TrimSpace(line)
	}
	s = strings.Trim(s, "\"'`“”")
	s = strings.TrimSpace(s)

	if utf8.RuneCountInString(s) > MaxNoteLen {
		r := []rune(s)
		s = strings.TrimSpace(string(r[:MaxNoteLen-1])) + "…"
	}
	return s
}
