package services

import (
	"context"

	"worklog/internal/domain"
	"worklog/internal/report"
)

// ReportQuery selects the entries a report is computed over.
type ReportQuery struct {
	MemberID  *int64
	ProjectID *int64
	From      *domain.Date // inclusive
	To        *domain.Date // inclusive
	Limit     int          // series only; 0 uses the configured limit
}

// CalendarQuery selects one member's month. An empty or invalid month key
// means the current month.
type CalendarQuery struct {
	MemberID int64
	MonthKey string
}

// ReportingService loads entries and member contracts and runs the
// reporting engine over them.
type ReportingService interface {
	GetRollup(ctx context.Context, query ReportQuery) (*report.Rollup, error)
	GetMonthlySeries(ctx context.Context, query ReportQuery) (*report.Series, error)
	GetWeeklySeries(ctx context.Context, query ReportQuery) (*report.Series, error)
	GetWeeklyBalance(ctx context.Context, query ReportQuery) (*report.BalanceReport, error)
	GetCalendar(ctx context.Context, query CalendarQuery) (*report.CalendarMonth, error)
}

func (q ReportQuery) searchOptions() domain.SearchOptions {
	return domain.SearchOptions{
		MemberID:  q.MemberID,
		ProjectID: q.ProjectID,
		From:      q.From,
		To:        q.To,
	}
}

