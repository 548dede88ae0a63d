package report

import (
	"regexp"
	"strconv"
	"time"

	"worklog/internal/domain"
	"worklog/internal/duration"
)

const (
	minCalendarYear = 1970
	maxCalendarYear = 2100

	// DefaultStartOfWeek is used when the configured start of week is outside 0-6.
	DefaultStartOfWeek = int(time.Monday)
)

var monthKeyPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

// EntrySummary is the lightweight view of an entry shown in a calendar day.
type EntrySummary struct {
	ID           string `json:"id"`
	ProjectLabel string `json:"project_label"`
	ProjectColor string `json:"project_color"`
	TaskLabel    string `json:"task_label"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	Minutes      int    `json:"minutes"`
	Duration     string `json:"duration"`
	Notes        string `json:"notes"`
}

// CalendarDay is one cell of the grid.
type CalendarDay struct {
	Date           domain.Date    `json:"date"`
	DayNumber      int            `json:"day_number"`
	WeekdayIndex   int            `json:"weekday_index"`    // 0-6, relative to the configured start of week
	IsCurrentMonth bool           `json:"is_current_month"`
	IsToday        bool           `json:"is_today"`
	Entries        []EntrySummary `json:"entries"`
	TotalMinutes   int            `json:"total_minutes"`
	Total          string         `json:"total"`
}

// CalendarWeek is one row of seven days.
type CalendarWeek struct {
	ISOYear      int           `json:"iso_year"`
	ISOWeek      int           `json:"iso_week"`
	Key          string        `json:"key"`
	Start        domain.Date   `json:"start"`         // first grid day
	End          domain.Date   `json:"end"`           // last grid day
	ISOStart     domain.Date   `json:"iso_start"`     // Monday of the ISO week
	ISOEnd       domain.Date   `json:"iso_end"`       // Sunday of the ISO week
	Days         []CalendarDay `json:"days"`
	TotalMinutes int           `json:"total_minutes"`
	Total        string        `json:"total"`
}

// Navigation holds the keys of the adjacent months.
type Navigation struct {
	PreviousKey   string `json:"previous_key"`
	PreviousLabel string `json:"previous_label"`
	NextKey       string `json:"next_key"`
	NextLabel     string `json:"next_label"`
}

// CalendarMonth is a navigable month view padded to whole weeks.
type CalendarMonth struct {
	MemberID       int64          `json:"member_id"`
	MonthKey       string         `json:"month_key"`
	MonthLabel     string         `json:"month_label"`
	MonthStart     domain.Date    `json:"month_start"`
	MonthEnd       domain.Date    `json:"month_end"`
	RangeStart     domain.Date    `json:"range_start"`
	RangeEnd       domain.Date    `json:"range_end"`
	StartOfWeek    int            `json:"start_of_week"`
	WeekdayHeaders []string       `json:"weekday_headers"`
	Weeks          []CalendarWeek `json:"weeks"`
	TotalMinutes   int            `json:"total_minutes"`
	Total          string         `json:"total"`
	Navigation     Navigation     `json:"navigation"`
}

// CalendarOptions drives BuildCalendarMonth.
type CalendarOptions struct {
	MemberID    int64     `json:"member_id"`
	MonthKey    string    `json:"month_key"`     // YYYY-MM, empty or invalid means the month of Now
	StartOfWeek int       `json:"start_of_week"` // 0 = Sunday ... 6 = Saturday
	Now         time.Time `json:"now"`
}

// ParseMonthKey validates a YYYY-MM key with a month in 01-12 and a year in 1970-2100.
func ParseMonthKey(key string) (int, time.Month, bool) {
	if !monthKeyPattern.MatchString(key) {
		return 0, 0, false
	}
	year, err := strconv.Atoi(key[:4])
	if err != nil {
		return 0, 0, false
	}
	month, err := strconv.Atoi(key[5:])
	if err != nil {
		return 0, 0, false
	}
	if month < 1 || month > 12 || year < minCalendarYear || year > maxCalendarYear {
		return 0, 0, false
	}
	return year, time.Month(month), true
}

// MonthKey renders the YYYY-MM key of a date.
func MonthKey(d domain.Date) string {
	if d.IsZero() {
		return ""
	}
	return d.Time().Format("2006-01")
}

// ResolveMonth returns the first day of the requested month, falling back to
// the month of now. It reports false when neither yields a usable month.
func ResolveMonth(key string, now time.Time) (domain.Date, bool) {
	if year, month, ok := ParseMonthKey(key); ok {
		return domain.NewDate(year, month, 1), true
	}
	today := domain.DateOf(now)
	if today.IsZero() || today.Year() < minCalendarYear || today.Year() > maxCalendarYear {
		return domain.Date{}, false
	}
	return today.MonthStart(), true
}

// CalendarRange returns the grid bounds for a month: the month start moved
// back to the start of week and the month end moved forward to complete its
// last week. Callers fetch entries for this whole range.
func CalendarRange(key string, startOfWeek int, now time.Time) (domain.Date, domain.Date, bool) {
	monthStart, ok := ResolveMonth(key, now)
	if !ok {
		return domain.Date{}, domain.Date{}, false
	}
	start, end := gridBounds(monthStart, normalizeStartOfWeek(startOfWeek))
	return start, end, true
}

func gridBounds(monthStart domain.Date, startOfWeek int) (domain.Date, domain.Date) {
	monthEnd := monthStart.MonthEnd()
	back := (int(monthStart.Weekday()) - startOfWeek + 7) % 7
	lastWeekday := (startOfWeek + 6) % 7
	forward := (lastWeekday - int(monthEnd.Weekday()) + 7) % 7
	return monthStart.AddDays(-back), monthEnd.AddDays(forward)
}

func normalizeStartOfWeek(startOfWeek int) int {
	if startOfWeek < 0 || startOfWeek > 6 {
		return DefaultStartOfWeek
	}
	return startOfWeek
}

// BuildCalendarMonth lays out the month grid for one member and attaches the
// entries of each day. Entries outside the grid are ignored. A non-positive
// member id or an unresolvable month yields an empty grid that still carries
// the weekday headers.
func BuildCalendarMonth(opts CalendarOptions, entries []domain.TimeEntry) CalendarMonth {
	startOfWeek := normalizeStartOfWeek(opts.StartOfWeek)
	month := CalendarMonth{
		MemberID:       opts.MemberID,
		StartOfWeek:    startOfWeek,
		WeekdayHeaders: WeekdayHeaders(startOfWeek),
		Weeks:          []CalendarWeek{},
		Total:          duration.Format(0),
	}
	if opts.MemberID <= 0 {
		return month
	}
	monthStart, ok := ResolveMonth(opts.MonthKey, opts.Now)
	if !ok {
		return month
	}

	monthEnd := monthStart.MonthEnd()
	rangeStart, rangeEnd := gridBounds(monthStart, startOfWeek)

	month.MonthKey = MonthKey(monthStart)
	month.MonthLabel = MonthLabel(monthStart)
	month.MonthStart = monthStart
	month.MonthEnd = monthEnd
	month.RangeStart = rangeStart
	month.RangeEnd = rangeEnd

	previous := monthStart.AddMonths(-1)
	next := monthStart.AddMonths(1)
	month.Navigation = Navigation{
		PreviousKey:   MonthKey(previous),
		PreviousLabel: MonthLabel(previous),
		NextKey:       MonthKey(next),
		NextLabel:     MonthLabel(next),
	}

	byDate := indexByDate(entries, opts.MemberID, rangeStart, rangeEnd)
	today := domain.DateOf(opts.Now)

	var current *CalendarWeek
	for day := rangeStart; !day.After(rangeEnd); day = day.AddDays(1) {
		weekdayIndex := (int(day.Weekday()) - startOfWeek + 7) % 7
		if current == nil || weekdayIndex == 0 {
			if current != nil {
				month.Weeks = append(month.Weeks, closeWeek(*current))
			}
			current = openWeek(day, startOfWeek)
		}

		cell := CalendarDay{
			Date:           day,
			DayNumber:      day.Day(),
			WeekdayIndex:   weekdayIndex,
			IsCurrentMonth: !day.Before(monthStart) && !day.After(monthEnd),
			IsToday:        !today.IsZero() && day.Equal(today),
			Entries:        []EntrySummary{},
		}
		for _, entry := range byDate[day.String()] {
			cell.Entries = append(cell.Entries, summarize(entry))
			cell.TotalMinutes += entry.DurationMinutes
		}
		cell.Total = duration.Format(cell.TotalMinutes)

		current.Days = append(current.Days, cell)
		current.TotalMinutes += cell.TotalMinutes
	}
	if current != nil {
		month.Weeks = append(month.Weeks, closeWeek(*current))
	}

	for _, week := range month.Weeks {
		month.TotalMinutes += week.TotalMinutes
	}
	month.Total = duration.Format(month.TotalMinutes)
	return month
}

// openWeek starts a grid row. The ISO week is the one containing the row's Monday.
func openWeek(first domain.Date, startOfWeek int) *CalendarWeek {
	monday := first.AddDays((int(time.Monday) - startOfWeek + 7) % 7)
	isoYear, isoWeek := monday.ISOWeek()
	return &CalendarWeek{
		ISOYear:  isoYear,
		ISOWeek:  isoWeek,
		Key:      WeekKey(isoYear, isoWeek),
		Start:    first,
		End:      first.AddDays(6),
		ISOStart: monday,
		ISOEnd:   monday.AddDays(6),
		Days:     make([]CalendarDay, 0, 7),
	}
}

func closeWeek(week CalendarWeek) CalendarWeek {
	week.Total = duration.Format(week.TotalMinutes)
	return week
}

func indexByDate(entries []domain.TimeEntry, memberID int64, from, to domain.Date) map[string][]domain.TimeEntry {
	byDate := make(map[string][]domain.TimeEntry)
	for _, entry := range entries {
		if entry.MemberID != memberID || entry.DurationMinutes <= 0 {
			continue
		}
		d := entry.ActivityDate
		if d.IsZero() || d.Before(from) || d.After(to) {
			continue
		}
		byDate[d.String()] = append(byDate[d.String()], entry)
	}
	return byDate
}

func summarize(entry domain.TimeEntry) EntrySummary {
	return EntrySummary{
		ID:           entry.ID,
		ProjectLabel: entry.ProjectLabel,
		ProjectColor: entry.ProjectColor,
		TaskLabel:    entry.TaskLabel,
		StartTime:    entry.StartTime,
		EndTime:      entry.EndTime,
		Minutes:      entry.DurationMinutes,
		Duration:     duration.Format(entry.DurationMinutes),
		Notes:        entry.Notes,
	}
}
