package api

import (
	"context"
	"math"
	"strconv"
	"strings"
	"time"

	"worklog/internal/domain"
	"worklog/internal/duration"
	"worklog/internal/errors"
)

// EntryInput is a time entry as typed on the command line.
type EntryInput struct {
	MemberID     int64
	ProjectID    int64
	ProjectLabel string
	ProjectColor string
	Task         string
	Date         string // YYYY-MM-DD, "today", "yesterday" or empty for today
	Start        string
	End          string
	Duration     string // minutes, a Go duration such as 1h30m, or H:MM
	Notes        string
	RecordedBy   int64
}

// RecordEntryFromInput parses the textual fields and records the entry.
func (a *apiImpl) RecordEntryFromInput(ctx context.Context, input EntryInput) (*domain.TimeEntry, error) {
	date, err := a.parseActivityDate(input.Date)
	if err != nil {
		return nil, err
	}

	minutes := 0
	if strings.TrimSpace(input.Duration) != "" {
		if minutes, err = ParseDurationInput(input.Duration); err != nil {
			return nil, err
		}
	}

	recordedBy := input.RecordedBy
	if recordedBy == 0 {
		recordedBy = input.MemberID
	}

	return a.RecordEntry(ctx, domain.TimeEntry{
		MemberID:        input.MemberID,
		ProjectID:       input.ProjectID,
		ProjectLabel:    input.ProjectLabel,
		ProjectColor:    input.ProjectColor,
		TaskLabel:       input.Task,
		ActivityDate:    date,
		StartTime:       input.Start,
		EndTime:         input.End,
		DurationMinutes: minutes,
		Notes:           input.Notes,
		RecordedBy:      recordedBy,
	})
}

// parseActivityDate resolves the date keywords against the API clock.
func (a *apiImpl) parseActivityDate(value string) (domain.Date, error) {
	today := domain.DateOf(a.now().In(a.location))

	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "today":
		return today, nil
	case "yesterday":
		return today.AddDays(-1), nil
	}

	date, err := domain.ParseDate(strings.TrimSpace(value))
	if err != nil {
		return domain.Date{}, errors.NewInvalidInputError("date", value, "expected YYYY-MM-DD, today or yesterday")
	}
	return date, nil
}

// ParseDurationInput accepts "90", "1h30m" or "1:30" and returns minutes.
func ParseDurationInput(value string) (int, error) {
	value = strings.TrimSpace(value)

	if n, err := strconv.Atoi(value); err == nil {
		if n < 0 {
			return 0, errors.NewInvalidInputError("duration", value, "must not be negative")
		}
		return n, nil
	}
	if d, err := time.ParseDuration(value); err == nil {
		if d < 0 {
			return 0, errors.NewInvalidInputError("duration", value, "must not be negative")
		}
		return int(math.Round(d.Minutes())), nil
	}
	if d, ok := duration.ParseClock(value); ok && strings.Contains(value, ":") {
		return int(math.Round(d.Minutes())), nil
	}
	return 0, errors.NewInvalidInputError("duration", value, "expected minutes, a duration like 1h30m, or H:MM")
}
