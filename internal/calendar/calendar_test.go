package calendar

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/notexe/postly-cli/internal/postly"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDaysInMonth(t *testing.T) {
	t.Run("known lengths", func(t *testing.T) {
		tests := []struct {
			year  int
			month time.Month
			want  int
		}{
			{2024, time.February, 29},
			{2023, time.February, 28},
			{1900, time.February, 28},
			{2000, time.February, 29},
			{2024, time.April, 30},
			{2024, time.December, 31},
		}
		for _, tt := range tests {
			t.Run(fmt.Sprintf("%d-%02d", tt.year, tt.month), func(t *testing.T) {
				assert.Len(t, DaysInMonth(tt.year, tt.month), tt.want)
			})
		}
	})

	t.Run("ascending without gaps for every month", func(t *testing.T) {
		for year := 1899; year <= 2101; year++ {
			for month := time.January; month <= time.December; month++ {
				days := DaysInMonth(year, month)
				require.GreaterOrEqual(t, len(days), 28)
				require.LessOrEqual(t, len(days), 31)

				for i, d := range days {
					require.Equal(t, Date{Year: year, Month: month, Day: i + 1}, d)
				}
				// The day after the last one belongs to the next month.
				last := days[len(days)-1].At(12, 0, time.UTC)
				require.NotEqual(t, month, last.AddDate(0, 0, 1).Month())
			}
		}
	})
}

func TestLeadingBlanks(t *testing.T) {
	tests := []struct {
		name  string
		month Month
		want  int
	}{
		{"starts on Sunday", Month{2024, time.September}, 6},
		{"starts on Monday", Month{2024, time.April}, 0},
		{"starts on Friday", Month{2024, time.March}, 4},
		{"starts on Wednesday", Month{2025, time.January}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.month.LeadingBlanks())
		})
	}
}

func TestRemindersByDay(t *testing.T) {
	t.Run("partitions input preserving order", func(t *testing.T) {
		rng := rand.New(rand.NewSource(7))
		base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

		reminders := make([]postly.Reminder, 200)
		for i := range reminders {
			reminders[i] = postly.Reminder{
				ID:          postly.ID(fmt.Sprintf("r%d", i)),
				ScheduledAt: base.Add(time.Duration(rng.Intn(60*24)) * time.Hour),
			}
		}

		byDay := RemindersByDay(reminders, time.UTC)

		seen := make(map[postly.ID]int)
		total := 0
		for day, bucket := range byDay {
			prev := -1
			for _, r := range bucket {
				assert.Equal(t, day, DateOf(r.ScheduledAt, time.UTC))
				seen[r.ID]++

				var idx int
				_, err := fmt.Sscanf(string(r.ID), "r%d", &idx)
				require.NoError(t, err)
				assert.Greater(t, idx, prev, "bucket must keep input order")
				prev = idx
			}
			total += len(bucket)
		}

		assert.Equal(t, len(reminders), total)
		for _, r := range reminders {
			assert.Equal(t, 1, seen[r.ID], "reminder %s must be in exactly one bucket", r.ID)
		}
	})

	t.Run("keys by local calendar day", func(t *testing.T) {
		loc := time.FixedZone("UTC+2", 2*60*60)
		r := postly.Reminder{ID: "late", ScheduledAt: time.Date(2024, 3, 15, 23, 30, 0, 0, time.UTC)}

		byDay := RemindersByDay([]postly.Reminder{r}, loc)

		assert.Len(t, byDay[Date{2024, time.March, 16}], 1)
		assert.Empty(t, byDay[Date{2024, time.March, 15}])
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, RemindersByDay(nil, time.UTC))
	})
}

func TestMonthNavigation(t *testing.T) {
	t.Run("twelve forward and back returns to start", func(t *testing.T) {
		for year := 1999; year <= 2001; year++ {
			for month := time.January; month <= time.December; month++ {
				start := Month{Year: year, Month: month}
				m := start
				for i := 0; i < 12; i++ {
					m = m.Next()
				}
				assert.Equal(t, Month{Year: year + 1, Month: month}, m)
				for i := 0; i < 12; i++ {
					m = m.Prev()
				}
				assert.Equal(t, start, m)
				assert.Equal(t, 1, m.First(time.UTC).Day())
			}
		}
	})

	t.Run("crosses year boundaries", func(t *testing.T) {
		assert.Equal(t, Month{2023, time.December}, Month{2024, time.January}.Prev())
		assert.Equal(t, Month{2025, time.January}, Month{2024, time.December}.Next())
		assert.Equal(t, Month{1990, time.March}, Month{2024, time.March}.AddMonths(-34*12))
	})

	t.Run("navigator from a month-end day", func(t *testing.T) {
		now := func() time.Time { return time.Date(2024, 1, 31, 10, 0, 0, 0, time.UTC) }
		nav := NewNavigator(time.UTC, now)

		assert.Equal(t, Month{2024, time.February}, nav.GoToNextMonth())
		assert.Equal(t, Month{2024, time.March}, nav.GoToNextMonth())
		assert.Equal(t, Month{2024, time.February}, nav.GoToPreviousMonth())
		assert.Equal(t, Month{2024, time.January}, nav.GoToToday())
		assert.Equal(t, Date{2024, time.January, 31}, nav.Today())
	})
}

func TestParse(t *testing.T) {
	m, err := ParseMonth("2024-03")
	require.NoError(t, err)
	assert.Equal(t, Month{2024, time.March}, m)
	assert.Equal(t, "March 2024", m.Label())

	d, err := ParseDate("2024-03-15")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15", d.String())
	assert.Equal(t, "Fri, Mar 15 2024", d.Long())

	_, err = ParseDate("15/03/2024")
	assert.Error(t, err)
}

func TestGrid(t *testing.T) {
	m := Month{2024, time.March}
	day := Date{2024, time.March, 15}
	byDay := map[Date][]postly.Reminder{day: {{ID: "a"}, {ID: "b"}}}

	weeks := Grid(m, byDay)

	require.Len(t, weeks, 5)
	for i := 0; i < 4; i++ {
		assert.True(t, weeks[0][i].Blank)
	}
	assert.Equal(t, Date{2024, time.March, 1}, weeks[0][4].Date)
	// Friday the 15th sits in the third row, fifth column.
	assert.Equal(t, day, weeks[2][4].Date)
	assert.Len(t, weeks[2][4].Reminders, 2)
	assert.Equal(t, Date{2024, time.March, 31}, weeks[4][6].Date)

	april := Grid(Month{2024, time.April}, nil)
	require.Len(t, april, 5)
	assert.False(t, april[0][0].Blank)
	assert.True(t, april[4][6].Blank)
}
