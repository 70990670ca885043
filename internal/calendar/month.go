package calendar

import (
	"fmt"
	"sync"
	"time"
)

// Month identifies a calendar month. It carries no day, so navigation can
// never skip a month by overflowing a day-of-month.
type Month struct {
	Year  int
	Month time.Month
}

// CurrentMonth returns the month containing now in loc.
func CurrentMonth(now time.Time, loc *time.Location) Month {
	return DateOf(now, loc).MonthOf()
}

// ParseMonth parses a YYYY-MM string.
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Month{}, fmt.Errorf("invalid month %q (want YYYY-MM): %w", s, err)
	}
	return Month{Year: t.Year(), Month: t.Month()}, nil
}

// AddMonths shifts m by n months in either direction.
func (m Month) AddMonths(n int) Month {
	idx := m.Year*12 + int(m.Month-1) + n
	year := idx / 12
	mon := idx % 12
	if mon < 0 {
		mon += 12
		year--
	}
	return Month{Year: year, Month: time.Month(mon + 1)}
}

func (m Month) Next() Month { return m.AddMonths(1) }
func (m Month) Prev() Month { return m.AddMonths(-1) }

// First returns midnight of the 1st of m in loc.
func (m Month) First(loc *time.Location) time.Time {
	return Date{Year: m.Year, Month: m.Month, Day: 1}.At(0, 0, loc)
}

// Len returns the number of days in m.
func (m Month) Len() int {
	// Day 0 of the following month is the last day of this one.
	return time.Date(m.Year, m.Month+1, 0, 12, 0, 0, 0, time.UTC).Day()
}

// Days lists every day of m in ascending order.
func (m Month) Days() []Date {
	return DaysInMonth(m.Year, m.Month)
}

// LeadingBlanks is the number of empty cells before day 1 in a Monday-first grid.
func (m Month) LeadingBlanks() int {
	return LeadingBlanks(m.Year, m.Month)
}

// Contains reports whether d falls in m.
func (m Month) Contains(d Date) bool {
	return d.Year == m.Year && d.Month == m.Month
}

// Label formats m as "March 2024".
func (m Month) Label() string {
	return fmt.Sprintf("%s %d", m.Month, m.Year)
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// Navigator holds the visible month of a calendar view.
// It is safe for concurrent use.
type Navigator struct {
	mu      sync.RWMutex
	visible Month
	loc     *time.Location
	now     func() time.Time
}

// NewNavigator starts at the month containing now() in loc.
func NewNavigator(loc *time.Location, now func() time.Time) *Navigator {
	if loc == nil {
		loc = time.Local
	}
	if now == nil {
		now = time.Now
	}
	return &Navigator{
		visible: CurrentMonth(now(), loc),
		loc:     loc,
		now:     now,
	}
}

// Visible returns the month currently shown.
func (n *Navigator) Visible() Month {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.visible
}

// GoTo jumps to m.
func (n *Navigator) GoTo(m Month) {
	n.mu.Lock()
	n.visible = m
	n.mu.Unlock()
}

func (n *Navigator) GoToPreviousMonth() Month {
	return n.shift(-1)
}

func (n *Navigator) GoToNextMonth() Month {
	return n.shift(1)
}

// GoToToday returns to the month containing the current time.
func (n *Navigator) GoToToday() Month {
	m := CurrentMonth(n.now(), n.loc)
	n.GoTo(m)
	return m
}

// Today returns the current calendar day in the navigator's location.
func (n *Navigator) Today() Date {
	return DateOf(n.now(), n.loc)
}

func (n *Navigator) shift(delta int) Month {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.visible = n.visible.AddMonths(delta)
	return n.visible
}
