package cli

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"worklog/internal/duration"
	"worklog/internal/errors"
	"worklog/internal/report"
	"worklog/internal/services"
)

const (
	PeriodMonth = "month"
	PeriodWeek  = "week"
)

// SeriesCommand prints monthly or ISO weekly totals.
type SeriesCommand struct {
	reports      services.ReportingService
	renderer     *Renderer
	errorHandler *ErrorHandler
}

func NewSeriesCommand(app *App) *SeriesCommand {
	return &SeriesCommand{
		reports:      app.reports,
		renderer:     app.renderer,
		errorHandler: NewErrorHandler(app.logger),
	}
}

func (c *SeriesCommand) Execute(ctx context.Context, period string, query services.ReportQuery, byMember bool) error {
	var series *report.Series
	var err error

	switch period {
	case PeriodMonth:
		series, err = c.reports.GetMonthlySeries(ctx, query)
	case PeriodWeek:
		series, err = c.reports.GetWeeklySeries(ctx, query)
	default:
		return errors.NewInvalidInputError("period", period, "must be month or week")
	}
	if err != nil {
		return c.errorHandler.Handle("compute series", err)
	}

	if c.renderer.JSON() {
		return c.renderer.WriteJSON(series)
	}
	if len(series.All) == 0 {
		c.renderer.Println("No entries found")
		return nil
	}

	c.writeBuckets(series.All)
	if byMember {
		for _, memberID := range series.Members() {
			c.renderer.Printf("\nMember %d\n", memberID)
			c.writeBuckets(series.ByMember[memberID])
		}
	}
	return nil
}

func (c *SeriesCommand) writeBuckets(buckets []report.Bucket) {
	rows := make([][]string, len(buckets))
	for i, b := range buckets {
		rows[i] = []string{b.Key, b.Label, strconv.Itoa(b.Entries), duration.Format(b.Minutes)}
	}
	c.renderer.Table([]Column{
		{Title: "Period"},
		{Title: "Label"},
		{Title: "Entries", Right: true},
		{Title: "Duration", Right: true},
	}, rows)
}

func (r *RootCommand) newSeriesCommand() *cobra.Command {
	var filter reportFilter
	var period string
	var byMember bool

	cmd := &cobra.Command{
		Use:   "series",
		Short: "Monthly or weekly totals",
		Long: `Totals per calendar month or per ISO week, keeping the most recent periods.

Examples:
  worklog series
  worklog series --period week --limit 8 --by-member`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter.bind(cmd)
			query, err := filter.query()
			if err != nil {
				return err
			}
			return r.run(cmd, func(ctx context.Context, app *App) error {
				return NewSeriesCommand(app).Execute(ctx, period, query, byMember)
			})
		},
	}
	addFilterFlags(cmd, &filter)
	addLimitFlag(cmd, &filter)
	cmd.Flags().StringVar(&period, "period", PeriodMonth, "month or week")
	cmd.Flags().BoolVar(&byMember, "by-member", false, "Also print one series per member")
	return cmd
}
