package cli

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"worklog/internal/api"
	"worklog/internal/domain"
	"worklog/internal/duration"
	"worklog/internal/errors"
)

// ListCommand prints the entries matching a filter.
type ListCommand struct {
	api          api.API
	renderer     *Renderer
	errorHandler *ErrorHandler
}

func NewListCommand(app *App) *ListCommand {
	return &ListCommand{
		api:          app.api,
		renderer:     app.renderer,
		errorHandler: NewErrorHandler(app.logger),
	}
}

func (c *ListCommand) Execute(ctx context.Context, opts domain.SearchOptions) error {
	entries, err := c.api.ListEntries(ctx, opts)
	if err != nil {
		return c.errorHandler.Handle("list entries", err)
	}

	if c.renderer.JSON() {
		return c.renderer.WriteJSON(entries)
	}
	if len(entries) == 0 {
		c.renderer.Println("No entries found")
		return nil
	}

	total := 0
	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		total += entry.DurationMinutes
		rows = append(rows, []string{
			entry.ID,
			entry.ActivityDate.String(),
			strconv.FormatInt(entry.MemberID, 10),
			projectName(entry.Project()),
			entry.TaskLabel,
			timeRange(entry.StartTime, entry.EndTime),
			duration.Format(entry.DurationMinutes),
		})
	}
	c.renderer.Table([]Column{
		{Title: "ID"},
		{Title: "Date"},
		{Title: "Member", Right: true},
		{Title: "Project"},
		{Title: "Task"},
		{Title: "Time"},
		{Title: "Duration", Right: true},
	}, rows)
	c.renderer.Printf("\n%d entries, %s\n", len(entries), duration.Format(total))
	return nil
}

// DeleteCommand removes one entry by id.
type DeleteCommand struct {
	api          api.API
	renderer     *Renderer
	errorHandler *ErrorHandler
}

func NewDeleteCommand(app *App) *DeleteCommand {
	return &DeleteCommand{
		api:          app.api,
		renderer:     app.renderer,
		errorHandler: NewErrorHandler(app.logger),
	}
}

func (c *DeleteCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "delete", "usage: worklog delete ENTRY_ID")
	}
	if err := c.api.DeleteEntry(ctx, args[0]); err != nil {
		return c.errorHandler.Handle("delete entry", err)
	}
	c.renderer.Printf("Deleted entry %s\n", args[0])
	return nil
}

func (r *RootCommand) newListCommand() *cobra.Command {
	var filter reportFilter

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List time entries",
		Long: `List time entries ordered by activity date and start time.

Examples:
  worklog list --member 1 --from 2025-02-01 --to 2025-02-28
  worklog list --project 3 -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter.bind(cmd)
			opts, err := filter.searchOptions()
			if err != nil {
				return err
			}
			return r.run(cmd, func(ctx context.Context, app *App) error {
				return NewListCommand(app).Execute(ctx, opts)
			})
		},
	}
	addFilterFlags(cmd, &filter)
	return cmd
}

func (r *RootCommand) newDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ENTRY_ID",
		Short: "Delete a time entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, func(ctx context.Context, app *App) error {
				return NewDeleteCommand(app).Execute(ctx, args)
			})
		},
	}
}

func projectName(key domain.ProjectKey) string {
	if key.Unassigned {
		return "(unassigned)"
	}
	return key.Label
}

func timeRange(start, end string) string {
	if start == "" && end == "" {
		return ""
	}
	return start + "-" + end
}
