package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"worklog/internal/duration"
	"worklog/internal/logging"
	"worklog/internal/report"
	"worklog/internal/services"
)

// CalendarCommand prints one member's month padded to whole weeks.
type CalendarCommand struct {
	reports      services.ReportingService
	renderer     *Renderer
	errorHandler *ErrorHandler
}

func NewCalendarCommand(app *App) *CalendarCommand {
	return &CalendarCommand{
		reports:      app.reports,
		renderer:     app.renderer,
		errorHandler: NewErrorHandler(app.logger),
	}
}

func (c *CalendarCommand) Execute(ctx context.Context, query services.CalendarQuery) error {
	month, err := c.reports.GetCalendar(ctx, query)
	if err != nil {
		return c.errorHandler.Handle("build calendar", err)
	}

	if c.renderer.JSON() {
		return c.renderer.WriteJSON(month)
	}

	c.renderer.Printf("%s, member %d\n\n", month.MonthLabel, month.MemberID)

	columns := make([]Column, 0, 9)
	columns = append(columns, Column{Title: "Sem."})
	for _, header := range month.WeekdayHeaders {
		columns = append(columns, Column{Title: header, Right: true})
	}
	columns = append(columns, Column{Title: "Total", Right: true})

	rows := make([][]string, 0, 2*len(month.Weeks))
	for _, week := range month.Weeks {
		days := []string{fmt.Sprintf("S%02d", week.ISOWeek)}
		totals := []string{""}
		for _, day := range week.Days {
			days = append(days, dayCell(day))
			totals = append(totals, minutesCell(day.TotalMinutes))
		}
		days = append(days, "")
		totals = append(totals, minutesCell(week.TotalMinutes))
		rows = append(rows, days, totals)
	}
	c.renderer.Table(columns, rows)

	c.renderer.Printf("\nTotal: %s\n", month.Total)
	c.renderer.Printf("< %s (%s)   %s (%s) >\n",
		month.Navigation.PreviousLabel, month.Navigation.PreviousKey,
		month.Navigation.NextLabel, month.Navigation.NextKey)
	return nil
}

// dayCell renders the day number, in parentheses outside the month and
// starred for today.
func dayCell(day report.CalendarDay) string {
	cell := fmt.Sprintf("%d", day.DayNumber)
	if !day.IsCurrentMonth {
		cell = "(" + cell + ")"
	}
	if day.IsToday {
		cell = "*" + cell
	}
	return cell
}

func minutesCell(minutes int) string {
	if minutes <= 0 {
		return ""
	}
	return duration.Format(minutes)
}

func (r *RootCommand) newCalendarCommand() *cobra.Command {
	var memberID int64

	cmd := &cobra.Command{
		Use:   "calendar [YYYY-MM]",
		Short: "Month calendar of one member",
		Long: `Month calendar of one member, padded to whole weeks starting on the
configured start of week. Without a month, or with an invalid one, the
current month is shown.

Examples:
  worklog calendar --member 1
  worklog calendar 2025-02 --member 1 --start-of-week 0`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := services.CalendarQuery{MemberID: memberID}
			if len(args) == 1 {
				query.MonthKey = args[0]
			}
			return r.run(cmd, func(ctx context.Context, app *App) error {
				if _, _, ok := report.ParseMonthKey(query.MonthKey); query.MonthKey != "" && !ok {
					app.logger.Debug("invalid month key, using the current month", logging.FieldMonth, query.MonthKey)
				}
				return NewCalendarCommand(app).Execute(ctx, query)
			})
		},
	}
	cmd.Flags().Int64VarP(&memberID, "member", "m", 0, "Member whose entries are shown")
	_ = cmd.MarkFlagRequired("member")
	return cmd
}
