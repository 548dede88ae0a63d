package cli

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"worklog/internal/duration"
	"worklog/internal/report"
	"worklog/internal/services"
)

// RollupCommand prints totals by project, by member and by member and project.
type RollupCommand struct {
	reports      services.ReportingService
	renderer     *Renderer
	errorHandler *ErrorHandler
}

func NewRollupCommand(app *App) *RollupCommand {
	return &RollupCommand{
		reports:      app.reports,
		renderer:     app.renderer,
		errorHandler: NewErrorHandler(app.logger),
	}
}

func (c *RollupCommand) Execute(ctx context.Context, query services.ReportQuery, pairs bool) error {
	rollup, err := c.reports.GetRollup(ctx, query)
	if err != nil {
		return c.errorHandler.Handle("compute rollup", err)
	}

	report.SortProjectsByMinutes(rollup.Projects)
	report.SortMembersByMinutes(rollup.Members)
	report.SortMemberProjectsByMinutes(rollup.MemberProjects)

	if c.renderer.JSON() {
		return c.renderer.WriteJSON(rollup)
	}
	if rollup.TotalEntries == 0 {
		c.renderer.Println("No entries found")
		return nil
	}

	projectRows := make([][]string, len(rollup.Projects))
	for i, p := range rollup.Projects {
		projectRows[i] = []string{projectName(p.Project), p.Color, strconv.Itoa(p.Entries), duration.Format(p.Minutes)}
	}
	c.renderer.Table([]Column{
		{Title: "Project"},
		{Title: "Color"},
		{Title: "Entries", Right: true},
		{Title: "Duration", Right: true},
	}, projectRows)
	c.renderer.Println()

	memberRows := make([][]string, len(rollup.Members))
	for i, m := range rollup.Members {
		memberRows[i] = []string{strconv.FormatInt(m.MemberID, 10), strconv.Itoa(m.Entries), duration.Format(m.Minutes)}
	}
	c.renderer.Table([]Column{
		{Title: "Member", Right: true},
		{Title: "Entries", Right: true},
		{Title: "Duration", Right: true},
	}, memberRows)

	if pairs {
		c.renderer.Println()
		pairRows := make([][]string, len(rollup.MemberProjects))
		for i, mp := range rollup.MemberProjects {
			pairRows[i] = []string{strconv.FormatInt(mp.MemberID, 10), projectName(mp.Project), strconv.Itoa(mp.Entries), duration.Format(mp.Minutes)}
		}
		c.renderer.Table([]Column{
			{Title: "Member", Right: true},
			{Title: "Project"},
			{Title: "Entries", Right: true},
			{Title: "Duration", Right: true},
		}, pairRows)
	}

	c.renderer.Printf("\nTotal: %s over %d entries\n", duration.Format(rollup.TotalMinutes), rollup.TotalEntries)
	return nil
}

func (r *RootCommand) newRollupCommand() *cobra.Command {
	var filter reportFilter
	var pairs bool

	cmd := &cobra.Command{
		Use:   "rollup",
		Short: "Totals by project and by member",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter.bind(cmd)
			query, err := filter.query()
			if err != nil {
				return err
			}
			return r.run(cmd, func(ctx context.Context, app *App) error {
				return NewRollupCommand(app).Execute(ctx, query, pairs)
			})
		},
	}
	addFilterFlags(cmd, &filter)
	cmd.Flags().BoolVar(&pairs, "pairs", false, "Also break down each member by project")
	return cmd
}
