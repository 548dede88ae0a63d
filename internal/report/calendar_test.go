package report

import (
	"fmt"
	"testing"
	"time"

	"worklog/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMonthKey(t *testing.T) {
	tests := []struct {
		key       string
		wantOK    bool
		wantYear  int
		wantMonth time.Month
	}{
		{key: "2025-02", wantOK: true, wantYear: 2025, wantMonth: time.February},
		{key: "1970-01", wantOK: true, wantYear: 1970, wantMonth: time.January},
		{key: "2100-12", wantOK: true, wantYear: 2100, wantMonth: time.December},
		{key: "2025-13"},
		{key: "2025-00"},
		{key: "1969-12"},
		{key: "2101-01"},
		{key: "2025-2"},
		{key: "2025-02-01"},
		{key: ""},
		{key: "abcd-ef"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			year, month, ok := ParseMonthKey(tt.key)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantYear, year)
				assert.Equal(t, tt.wantMonth, month)
			}
		})
	}
}

func TestResolveMonth(t *testing.T) {
	now := time.Date(2025, time.March, 18, 9, 30, 0, 0, time.UTC)

	d, ok := ResolveMonth("2024-11", now)
	require.True(t, ok)
	assert.Equal(t, "2024-11-01", d.String())

	d, ok = ResolveMonth("garbage", now)
	require.True(t, ok)
	assert.Equal(t, "2025-03-01", d.String())

	_, ok = ResolveMonth("", time.Time{})
	assert.False(t, ok)
}

func TestCalendarRange(t *testing.T) {
	tests := []struct {
		name        string
		key         string
		startOfWeek int
		wantStart   string
		wantEnd     string
	}{
		{name: "february monday start", key: "2025-02", startOfWeek: 1, wantStart: "2025-01-27", wantEnd: "2025-03-02"},
		{name: "february sunday start", key: "2025-02", startOfWeek: 0, wantStart: "2025-01-26", wantEnd: "2025-03-01"},
		{name: "month starting on start of week", key: "2024-09", startOfWeek: 0, wantStart: "2024-09-01", wantEnd: "2024-10-05"},
		{name: "out of range start of week falls back to monday", key: "2025-02", startOfWeek: 9, wantStart: "2025-01-27", wantEnd: "2025-03-02"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, ok := CalendarRange(tt.key, tt.startOfWeek, time.Time{})
			require.True(t, ok)
			assert.Equal(t, tt.wantStart, start.String())
			assert.Equal(t, tt.wantEnd, end.String())
		})
	}
}

func TestBuildCalendarMonth_February2025(t *testing.T) {
	now := time.Date(2025, time.February, 14, 10, 0, 0, 0, time.UTC)
	entries := []domain.TimeEntry{
		onProject(entry(1, "2025-01-27", 60), 3, "Alpha", "#f00"),
		entry(1, "2025-02-14", 30),
		entry(1, "2025-02-14", 45),
		entry(1, "2025-03-02", 15),
		entry(1, "2025-03-03", 500),
		entry(2, "2025-02-14", 120),
		entry(1, "2025-02-20", 0),
	}

	month := BuildCalendarMonth(CalendarOptions{
		MemberID:    1,
		MonthKey:    "2025-02",
		StartOfWeek: 1,
		Now:         now,
	}, entries)

	assert.Equal(t, "2025-02", month.MonthKey)
	assert.Equal(t, "février 2025", month.MonthLabel)
	assert.Equal(t, "2025-01-27", month.RangeStart.String())
	assert.Equal(t, "2025-03-02", month.RangeEnd.String())
	assert.Equal(t, []string{"lun.", "mar.", "mer.", "jeu.", "ven.", "sam.", "dim."}, month.WeekdayHeaders)

	require.Len(t, month.Weeks, 5)
	days := 0
	for _, week := range month.Weeks {
		require.Len(t, week.Days, 7)
		days += len(week.Days)
	}
	assert.Equal(t, 35, days)

	first := month.Weeks[0]
	assert.Equal(t, 2025, first.ISOYear)
	assert.Equal(t, 5, first.ISOWeek)
	assert.Equal(t, "2025-W05", first.Key)
	assert.Equal(t, "2025-01-27", first.Start.String())
	assert.Equal(t, "2025-02-02", first.End.String())
	assert.False(t, first.Days[0].IsCurrentMonth)
	assert.True(t, first.Days[5].IsCurrentMonth)
	require.Len(t, first.Days[0].Entries, 1)
	assert.Equal(t, "Alpha", first.Days[0].Entries[0].ProjectLabel)
	assert.Equal(t, "1 heure", first.Days[0].Entries[0].Duration)

	var today *CalendarDay
	for w := range month.Weeks {
		for d := range month.Weeks[w].Days {
			if month.Weeks[w].Days[d].IsToday {
				require.Nil(t, today, "only one day is today")
				today = &month.Weeks[w].Days[d]
			}
		}
	}
	require.NotNil(t, today)
	assert.Equal(t, "2025-02-14", today.Date.String())
	assert.Equal(t, 4, today.WeekdayIndex)
	assert.Len(t, today.Entries, 2)
	assert.Equal(t, 75, today.TotalMinutes)
	assert.Equal(t, "1 heure 15 min", today.Total)

	last := month.Weeks[4]
	assert.Equal(t, "2025-03-02", last.End.String())
	assert.Equal(t, 15, last.Days[6].TotalMinutes)

	assert.Equal(t, 150, month.TotalMinutes)
	assert.Equal(t, "2 heures 30 min", month.Total)

	assert.Equal(t, Navigation{
		PreviousKey:   "2025-01",
		PreviousLabel: "janvier 2025",
		NextKey:       "2025-03",
		NextLabel:     "mars 2025",
	}, month.Navigation)
}

func TestBuildCalendarMonth_GridIsCompleteForEveryStartOfWeek(t *testing.T) {
	for startOfWeek := 0; startOfWeek <= 6; startOfWeek++ {
		for m := 1; m <= 24; m++ {
			year := 2024 + (m-1)/12
			key := fmt.Sprintf("%04d-%02d", year, (m-1)%12+1)

			t.Run(fmt.Sprintf("%s/sow%d", key, startOfWeek), func(t *testing.T) {
				month := BuildCalendarMonth(CalendarOptions{MemberID: 1, MonthKey: key, StartOfWeek: startOfWeek}, nil)

				assert.Equal(t, time.Weekday(startOfWeek), month.RangeStart.Weekday())
				assert.Equal(t, time.Weekday((startOfWeek+6)%7), month.RangeEnd.Weekday())

				total := month.RangeStart.DaysUntil(month.RangeEnd) + 1
				assert.Zero(t, total%7)
				assert.LessOrEqual(t, total, 42)
				assert.GreaterOrEqual(t, total, 28)

				inMonth := 0
				previous := month.RangeStart.AddDays(-1)
				for _, week := range month.Weeks {
					require.Len(t, week.Days, 7)
					for i, day := range week.Days {
						assert.Equal(t, i, day.WeekdayIndex)
						assert.True(t, day.Date.Equal(previous.AddDays(1)))
						previous = day.Date
						if day.IsCurrentMonth {
							inMonth++
						}
					}
				}
				assert.True(t, previous.Equal(month.RangeEnd))
				assert.Equal(t, month.MonthEnd.Day(), inMonth)
			})
		}
	}
}

func TestBuildCalendarMonth_Degenerate(t *testing.T) {
	tests := []struct {
		name string
		opts CalendarOptions
	}{
		{name: "no member", opts: CalendarOptions{MonthKey: "2025-02", StartOfWeek: 1}},
		{name: "negative member", opts: CalendarOptions{MemberID: -4, MonthKey: "2025-02", StartOfWeek: 1}},
		{name: "no usable month", opts: CalendarOptions{MemberID: 1, MonthKey: "2025-99", StartOfWeek: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			month := BuildCalendarMonth(tt.opts, []domain.TimeEntry{entry(1, "2025-02-03", 60)})

			assert.NotNil(t, month.Weeks)
			assert.Empty(t, month.Weeks)
			assert.Len(t, month.WeekdayHeaders, 7)
			assert.Zero(t, month.TotalMinutes)
			assert.Equal(t, "0 min", month.Total)
		})
	}
}

func TestBuildCalendarMonth_FallsBackToCurrentMonth(t *testing.T) {
	now := time.Date(2025, time.July, 4, 23, 0, 0, 0, time.UTC)

	month := BuildCalendarMonth(CalendarOptions{MemberID: 1, MonthKey: "nope", StartOfWeek: 0, Now: now}, nil)

	assert.Equal(t, "2025-07", month.MonthKey)
	assert.Equal(t, []string{"dim.", "lun.", "mar.", "mer.", "jeu.", "ven.", "sam."}, month.WeekdayHeaders)
	assert.NotEmpty(t, month.Weeks)
}

func TestWeekdayHeaders(t *testing.T) {
	assert.Equal(t, []string{"sam.", "dim.", "lun.", "mar.", "mer.", "jeu.", "ven."}, WeekdayHeaders(6))
	assert.Equal(t, WeekdayHeaders(1), WeekdayHeaders(-1))
}
