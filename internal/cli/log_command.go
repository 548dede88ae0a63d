package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"worklog/internal/api"
	"worklog/internal/duration"
	"worklog/internal/errors"
)

// LogCommand records one time entry.
type LogCommand struct {
	api          api.API
	renderer     *Renderer
	errorHandler *ErrorHandler
}

func NewLogCommand(app *App) *LogCommand {
	return &LogCommand{
		api:          app.api,
		renderer:     app.renderer,
		errorHandler: NewErrorHandler(app.logger),
	}
}

func (c *LogCommand) Execute(ctx context.Context, input api.EntryInput) error {
	if strings.TrimSpace(input.Task) == "" {
		return errors.NewInvalidInputError("task", input.Task, `usage: worklog log --member ID [flags] "task label"`)
	}

	entry, err := c.api.RecordEntryFromInput(ctx, input)
	if err != nil {
		return c.errorHandler.Handle("record entry", err)
	}

	if c.renderer.JSON() {
		return c.renderer.WriteJSON(entry)
	}
	c.renderer.Printf("Recorded entry %s: %s on %s (%s)\n",
		entry.ID, duration.Format(entry.DurationMinutes), entry.ActivityDate, entry.TaskLabel)
	return nil
}

func (r *RootCommand) newLogCommand() *cobra.Command {
	var input api.EntryInput

	cmd := &cobra.Command{
		Use:   "log [task label]",
		Short: "Record a time entry",
		Long: `Record a time entry for a member.

The duration comes from --start and --end when both are given, otherwise from
--duration, which accepts minutes (90), a duration (1h30m) or H:MM (1:30).
The date defaults to today and also accepts "today" and "yesterday".

Examples:
  worklog log --member 1 --duration 45 "standup and triage"
  worklog log --member 1 --date yesterday --start 14:00 --end 15:45 deploy
  worklog log --member 2 --project 3 --project-label Alpha --color '#0af' --duration 2h design`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				input.Task = strings.Join(args, " ")
			}
			return r.run(cmd, func(ctx context.Context, app *App) error {
				return NewLogCommand(app).Execute(ctx, input)
			})
		},
	}

	flags := cmd.Flags()
	flags.Int64VarP(&input.MemberID, "member", "m", 0, "Member the time is recorded for")
	flags.Int64VarP(&input.ProjectID, "project", "p", 0, "Project id")
	flags.StringVar(&input.ProjectLabel, "project-label", "", "Project label, empty for unassigned")
	flags.StringVar(&input.ProjectColor, "color", "", "Project color, #rgb or #rrggbb")
	flags.StringVarP(&input.Task, "task", "t", "", "Task label (or pass it as arguments)")
	flags.StringVarP(&input.Date, "date", "d", "", "Activity date, YYYY-MM-DD, today or yesterday")
	flags.StringVar(&input.Start, "start", "", "Start time, HH:MM")
	flags.StringVar(&input.End, "end", "", "End time, HH:MM")
	flags.StringVar(&input.Duration, "duration", "", "Duration when no time range is given")
	flags.StringVar(&input.Notes, "notes", "", "Free text notes")
	flags.Int64Var(&input.RecordedBy, "recorded-by", 0, "Member who recorded the entry (defaults to --member)")
	_ = cmd.MarkFlagRequired("member")

	return cmd
}
