package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/notexe/postly-cli/internal/postly"
	"go.uber.org/zap"
)

var ErrNoSuggestion = errors.New("no such suggestion")

// PickerSnapshot is a point-in-time copy of the suggestion picker.
type PickerSnapshot struct {
	Open        bool
	Platform    postly.Platform
	Suggestions []postly.Suggestion
	Loading     bool
	Err         error
}

// Picker fetches recommended posting slots and hands one to the editor.
//
// Fetches are not sequenced: when two overlap, whichever response arrives
// last overwrites the list.
type Picker struct {
	mu      sync.Mutex
	backend Backend
	logger  *zap.Logger

	open        bool
	platform    postly.Platform
	suggestions []postly.Suggestion
	inflight    int
	err         error
}

func newPicker(backend Backend, logger *zap.Logger) *Picker {
	return &Picker{
		backend:  backend,
		logger:   logger,
		platform: postly.DefaultPlatform,
	}
}

// Open shows the picker.
func (p *Picker) Open() {
	p.mu.Lock()
	p.open = true
	p.mu.Unlock()
}

// Close hides the picker and discards its suggestions.
func (p *Picker) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.open = false
	p.suggestions = nil
	p.err = nil
}

func (p *Picker) SetPlatform(platform postly.Platform) {
	p.mu.Lock()
	p.platform = platform
	p.mu.Unlock()
}

func (p *Picker) Snapshot() PickerSnapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]postly.Suggestion, len(p.suggestions))
	copy(out, p.suggestions)
	return PickerSnapshot{
		Open:        p.open,
		Platform:    p.platform,
		Suggestions: out,
		Loading:     p.inflight > 0,
		Err:         p.err,
	}
}

// Fetch replaces the list with suggestions for platform. The list is
// cleared when the fetch starts and left empty if it fails.
func (p *Picker) Fetch(ctx context.Context, platform postly.Platform) ([]postly.Suggestion, error) {
	if platform == "" {
		platform = postly.DefaultPlatform
	}

	p.mu.Lock()
	p.open = true
	p.platform = platform
	p.suggestions = nil
	p.err = nil
	p.inflight++
	p.mu.Unlock()

	got, err := p.backend.FetchSuggestions(ctx, platform)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.inflight--

	if err != nil {
		p.err = fmt.Errorf("could not load posting suggestions: %w", err)
		p.logger.Warn("suggestion fetch failed",
			zap.String("platform", string(platform)),
			zap.Error(err))
		return nil, p.err
	}

	if got == nil {
		got = []postly.Suggestion{}
	}
	p.suggestions = got
	p.logger.Debug("suggestions loaded",
		zap.String("platform", string(platform)),
		zap.Int("count", len(got)))

	out := make([]postly.Suggestion, len(got))
	copy(out, got)
	return out, nil
}

// Take returns suggestion i and closes the picker.
func (p *Picker) Take(i int) (postly.Suggestion, postly.Platform, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if i < 0 || i >= len(p.suggestions) {
		return postly.Suggestion{}, "", fmt.Errorf("%w: %d", ErrNoSuggestion, i+1)
	}
	s := p.suggestions[i]
	platform := p.platform

	p.open = false
	p.suggestions = nil
	p.err = nil
	return s, platform, nil
}
