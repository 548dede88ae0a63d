package cli

import (
	"context"
	"sort"

	"github.com/spf13/cobra"

	"worklog/internal/duration"
	"worklog/internal/report"
	"worklog/internal/services"
)

// BalanceCommand prints weekly worked time against the contracts.
type BalanceCommand struct {
	reports      services.ReportingService
	renderer     *Renderer
	errorHandler *ErrorHandler
}

func NewBalanceCommand(app *App) *BalanceCommand {
	return &BalanceCommand{
		reports:      app.reports,
		renderer:     app.renderer,
		errorHandler: NewErrorHandler(app.logger),
	}
}

func (c *BalanceCommand) Execute(ctx context.Context, query services.ReportQuery) error {
	balance, err := c.reports.GetWeeklyBalance(ctx, query)
	if err != nil {
		return c.errorHandler.Handle("compute balance", err)
	}

	if c.renderer.JSON() {
		return c.renderer.WriteJSON(balance)
	}
	if len(balance.All) == 0 {
		c.renderer.Println("No entries found")
		return nil
	}

	if query.MemberID == nil {
		c.renderer.Printf("All members (contract %s per week)\n", duration.Format(balance.AggregateExpected))
		c.writeWeeks(balance.All)
		c.renderer.Printf("Balance: %s\n", balance.AggregateBalanceLabel)
	}

	for _, memberID := range memberIDs(balance.ByMember) {
		if query.MemberID == nil {
			c.renderer.Println()
		}
		c.renderer.Printf("Member %d (contract %s per week)\n", memberID, duration.Format(balance.MemberContracts[memberID]))
		c.writeWeeks(balance.ByMember[memberID])
		c.renderer.Printf("Balance: %s\n", balance.MemberBalanceLabels[memberID])
	}
	return nil
}

func (c *BalanceCommand) writeWeeks(buckets []report.Bucket) {
	rows := make([][]string, 0, len(buckets))
	for _, b := range buckets {
		if b.Balance == nil {
			continue
		}
		rows = append(rows, []string{
			b.Key,
			b.Label,
			b.Balance.Actual,
			b.Balance.Expected,
			b.Balance.Extra,
			b.Balance.Deficit,
			b.Balance.Difference,
		})
	}
	c.renderer.Table([]Column{
		{Title: "Week"},
		{Title: "Label"},
		{Title: "Worked", Right: true},
		{Title: "Expected", Right: true},
		{Title: "Extra", Right: true},
		{Title: "Deficit", Right: true},
		{Title: "Difference", Right: true},
	}, rows)
}

func (r *RootCommand) newBalanceCommand() *cobra.Command {
	var filter reportFilter

	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Weekly balance against the contracts",
		Long: `Weekly worked time compared with each member's contract. The contract
comes from the weekly schedule set with "worklog member set".

Examples:
  worklog balance
  worklog balance --member 1 --limit 4`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter.bind(cmd)
			query, err := filter.query()
			if err != nil {
				return err
			}
			return r.run(cmd, func(ctx context.Context, app *App) error {
				return NewBalanceCommand(app).Execute(ctx, query)
			})
		},
	}
	addFilterFlags(cmd, &filter)
	addLimitFlag(cmd, &filter)
	return cmd
}

func memberIDs(byMember map[int64][]report.Bucket) []int64 {
	ids := make([]int64, 0, len(byMember))
	for id := range byMember {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
