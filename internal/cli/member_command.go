package cli

import (
	"context"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"worklog/internal/api"
	"worklog/internal/contract"
	"worklog/internal/domain"
	"worklog/internal/duration"
	"worklog/internal/errors"
)

// memberView is the printable form of a member with its resolved contract.
type memberView struct {
	ID            int64             `json:"id"`
	DisplayName   string            `json:"display_name"`
	Schedule      contract.Schedule `json:"weekly_schedule"`
	WeeklyMinutes int               `json:"weekly_minutes"`
	Weekly        string            `json:"weekly"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

func newMemberView(member *domain.Member) memberView {
	schedule, _ := contract.ParseSchedule(member.WeeklySchedule)
	if schedule == nil {
		schedule = contract.Schedule{}
	}
	weekly := contract.Resolve(*member).WeeklyMinutes
	return memberView{
		ID:            member.ID,
		DisplayName:   member.DisplayName,
		Schedule:      schedule,
		WeeklyMinutes: weekly,
		Weekly:        duration.Format(weekly),
		UpdatedAt:     member.UpdatedAt,
	}
}

// MemberCommand manages member profiles and their weekly schedules.
type MemberCommand struct {
	api          api.API
	renderer     *Renderer
	errorHandler *ErrorHandler
}

func NewMemberCommand(app *App) *MemberCommand {
	return &MemberCommand{
		api:          app.api,
		renderer:     app.renderer,
		errorHandler: NewErrorHandler(app.logger),
	}
}

// Set stores the member's name and schedule.
func (c *MemberCommand) Set(ctx context.Context, memberID int64, name string, schedule []byte) error {
	member, err := c.api.SetMemberSchedule(ctx, memberID, name, schedule)
	if err != nil {
		return c.errorHandler.Handle("set member", err)
	}
	return c.print(newMemberView(member))
}

func (c *MemberCommand) Show(ctx context.Context, memberID int64) error {
	member, err := c.api.GetMember(ctx, memberID)
	if err != nil {
		return c.errorHandler.Handle("get member", err)
	}
	return c.print(newMemberView(member))
}

func (c *MemberCommand) List(ctx context.Context) error {
	members, err := c.api.ListMembers(ctx)
	if err != nil {
		return c.errorHandler.Handle("list members", err)
	}

	views := make([]memberView, len(members))
	for i, member := range members {
		views[i] = newMemberView(member)
	}
	if c.renderer.JSON() {
		return c.renderer.WriteJSON(views)
	}
	if len(views) == 0 {
		c.renderer.Println("No members found")
		return nil
	}

	rows := make([][]string, len(views))
	for i, v := range views {
		rows[i] = []string{strconv.FormatInt(v.ID, 10), v.DisplayName, strconv.Itoa(len(v.Schedule)), v.Weekly}
	}
	c.renderer.Table([]Column{
		{Title: "ID", Right: true},
		{Title: "Name"},
		{Title: "Slots", Right: true},
		{Title: "Weekly contract", Right: true},
	}, rows)
	return nil
}

func (c *MemberCommand) print(view memberView) error {
	if c.renderer.JSON() {
		return c.renderer.WriteJSON(view)
	}

	name := view.DisplayName
	if name == "" {
		name = "member #" + strconv.FormatInt(view.ID, 10)
	}
	c.renderer.Printf("%s (id %d): weekly contract %s\n", name, view.ID, view.Weekly)
	for _, slot := range view.Schedule {
		c.renderer.Printf("  %s-%s  break %d min  %s\n",
			slot.Start, slot.End, slot.BreakMinutes, duration.Format(contract.SlotMinutes(slot)))
	}
	return nil
}

func (r *RootCommand) newMemberCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "member",
		Short: "Manage members and their weekly schedules",
	}

	var name, schedule, scheduleFile string
	setCmd := &cobra.Command{
		Use:   "set MEMBER_ID",
		Short: "Create or update a member",
		Long: `Create or update a member. The schedule is a JSON list of working slots
whose durations, minus breaks, add up to the weekly contract. Passing no
schedule clears it; passing no name keeps the stored one.

Example:
  worklog member set 1 --name Ada --schedule '[{"start":"09:00","end":"17:00","break_minutes":60}]'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			memberID, err := parseMemberID(args[0])
			if err != nil {
				return err
			}
			raw := []byte(schedule)
			if scheduleFile != "" {
				if raw, err = os.ReadFile(scheduleFile); err != nil {
					return errors.NewInvalidInputError("schedule-file", scheduleFile, err.Error())
				}
			}
			return r.run(cmd, func(ctx context.Context, app *App) error {
				return NewMemberCommand(app).Set(ctx, memberID, name, raw)
			})
		},
	}
	setCmd.Flags().StringVar(&name, "name", "", "Display name")
	setCmd.Flags().StringVar(&schedule, "schedule", "", "Weekly schedule as JSON")
	setCmd.Flags().StringVar(&scheduleFile, "schedule-file", "", "Read the weekly schedule from a file")
	setCmd.MarkFlagsMutuallyExclusive("schedule", "schedule-file")

	showCmd := &cobra.Command{
		Use:   "show MEMBER_ID",
		Short: "Show a member and their weekly contract",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			memberID, err := parseMemberID(args[0])
			if err != nil {
				return err
			}
			return r.run(cmd, func(ctx context.Context, app *App) error {
				return NewMemberCommand(app).Show(ctx, memberID)
			})
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List members",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, func(ctx context.Context, app *App) error {
				return NewMemberCommand(app).List(ctx)
			})
		},
	}

	cmd.AddCommand(setCmd, showCmd, listCmd)
	return cmd
}

func parseMemberID(value string) (int64, error) {
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.NewInvalidInputError("member_id", value, "must be a positive integer")
	}
	return id, nil
}
