package calendar

import (
	"time"

	"github.com/notexe/postly-cli/internal/postly"
)

// DaysInMonth returns every date of the month from the 1st to the last day.
func DaysInMonth(year int, month time.Month) []Date {
	n := Month{Year: year, Month: month}.Len()
	days := make([]Date, n)
	for i := range days {
		days[i] = Date{Year: year, Month: month, Day: i + 1}
	}
	return days
}

// LeadingBlanks counts the grid cells before day 1 when weeks start on Monday.
func LeadingBlanks(year int, month time.Month) int {
	wd := Date{Year: year, Month: month, Day: 1}.Weekday()
	return (int(wd) + 6) % 7
}

// RemindersByDay buckets reminders by the calendar day of ScheduledAt in loc.
// Each bucket keeps the input order.
func RemindersByDay(reminders []postly.Reminder, loc *time.Location) map[Date][]postly.Reminder {
	byDay := make(map[Date][]postly.Reminder)
	for _, r := range reminders {
		key := DateOf(r.ScheduledAt, loc)
		byDay[key] = append(byDay[key], r)
	}
	return byDay
}

// Cell is one slot of a month grid. Blank cells have a zero Date.
type Cell struct {
	Date      Date
	Blank     bool
	Reminders []postly.Reminder
}

// Grid lays out m as Monday-first weeks of seven cells, padding the
// leading and trailing blanks. byDay may be nil.
func Grid(m Month, byDay map[Date][]postly.Reminder) [][]Cell {
	cells := make([]Cell, 0, 42)
	for i := 0; i < m.LeadingBlanks(); i++ {
		cells = append(cells, Cell{Blank: true})
	}
	for _, d := range m.Days() {
		cells = append(cells, Cell{Date: d, Reminders: byDay[d]})
	}
	for len(cells)%7 != 0 {
		cells = append(cells, Cell{Blank: true})
	}

	weeks := make([][]Cell, 0, len(cells)/7)
	for i := 0; i < len(cells); i += 7 {
		weeks = append(weeks, cells[i:i+7])
	}
	return weeks
}
