package cli

import (
	"bytes"
	"context"
	"testing"

	"worklog/internal/config"
	"worklog/internal/domain"
	"worklog/internal/report"
	"worklog/internal/services"
)

// mockReportingService returns canned reports and records the last query.
type mockReportingService struct {
	rollup   *report.Rollup
	series   *report.Series
	balance  *report.BalanceReport
	calendar *report.CalendarMonth
	err      error

	lastQuery    services.ReportQuery
	lastCalendar services.CalendarQuery
}

func (m *mockReportingService) GetRollup(ctx context.Context, query services.ReportQuery) (*report.Rollup, error) {
	m.lastQuery = query
	return m.rollup, m.err
}

func (m *mockReportingService) GetMonthlySeries(ctx context.Context, query services.ReportQuery) (*report.Series, error) {
	m.lastQuery = query
	return m.series, m.err
}

func (m *mockReportingService) GetWeeklySeries(ctx context.Context, query services.ReportQuery) (*report.Series, error) {
	m.lastQuery = query
	return m.series, m.err
}

func (m *mockReportingService) GetWeeklyBalance(ctx context.Context, query services.ReportQuery) (*report.BalanceReport, error) {
	m.lastQuery = query
	return m.balance, m.err
}

func (m *mockReportingService) GetCalendar(ctx context.Context, query services.CalendarQuery) (*report.CalendarMonth, error) {
	m.lastCalendar = query
	return m.calendar, m.err
}

func setupTestAppWithMockReports(t *testing.T, reports *mockReportingService, format string) (*App, *bytes.Buffer) {
	t.Helper()
	cfg := config.NewConfig()
	cfg.Display.Format = format
	var out bytes.Buffer
	return NewApp(nil, reports, cfg, &out), &out
}

func sampleEntries() []domain.TimeEntry {
	day := domain.NewDate(2025, 2, 3)
	return []domain.TimeEntry{
		{MemberID: 1, ProjectID: 1, ProjectLabel: "Alpha", TaskLabel: "a", ActivityDate: day, DurationMinutes: 30},
		{MemberID: 2, ProjectID: 2, ProjectLabel: "Beta", TaskLabel: "b", ActivityDate: day, DurationMinutes: 90},
	}
}
