package scheduler

import (
	"sync"

	"github.com/notexe/postly-cli/internal/postly"
)

// Collection is the reminder list owned by the caller of a Widget.
// The editor only ever appends to it, after the backend confirmed the
// reminder. It is safe for concurrent use.
type Collection struct {
	mu    sync.RWMutex
	items []postly.Reminder
}

// NewCollection wraps an initial reminder list. The slice is copied.
func NewCollection(items []postly.Reminder) *Collection {
	c := &Collection{}
	c.Replace(items)
	return c
}

// All returns a copy of the reminders in insertion order.
func (c *Collection) All() []postly.Reminder {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]postly.Reminder, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Append adds r at the end.
func (c *Collection) Append(r postly.Reminder) {
	c.mu.Lock()
	c.items = append(c.items, r)
	c.mu.Unlock()
}

// Replace swaps the whole list, e.g. after a reload from the backend.
func (c *Collection) Replace(items []postly.Reminder) {
	cp := make([]postly.Reminder, len(items))
	copy(cp, items)

	c.mu.Lock()
	c.items = cp
	c.mu.Unlock()
}

// Remove drops every reminder with id and reports whether one was found.
func (c *Collection) Remove(id postly.ID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.items[:0:0]
	for _, r := range c.items {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	removed := len(kept) != len(c.items)
	c.items = kept
	return removed
}

// Find returns the reminder with id.
func (c *Collection) Find(id postly.ID) (postly.Reminder, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, r := range c.items {
		if r.ID == id {
			return r, true
		}
	}
	return postly.Reminder{}, false
}
