package cli

import (
	"context"
	"io"
	"time"

	"github.com/spf13/cobra"

	"worklog/internal/config"
)

// AppFactory builds the application once the configuration is known.
type AppFactory func(cfg *config.Config, out io.Writer) (*App, error)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd          *cobra.Command
	loader       *config.Loader
	newApp       AppFactory
	config       *config.Config
	errorHandler *ErrorHandler
}

// NewRootCommand creates the root cobra command with global flags. A nil
// factory uses NewAppFromConfig.
func NewRootCommand(loader *config.Loader, factory AppFactory) *RootCommand {
	if loader == nil {
		loader = config.NewLoader()
	}
	if factory == nil {
		factory = NewAppFromConfig
	}
	root := &RootCommand{
		loader:       loader,
		newApp:       factory,
		errorHandler: NewErrorHandler(nil),
	}

	root.cmd = &cobra.Command{
		Use:   "worklog",
		Short: "Record team work time and report it against weekly contracts",
		Long: `worklog records time entries for the members of a team and reports on them.

REPORTS:
  • Rollups by project, by member and by member and project
  • Monthly and ISO weekly series with the most recent periods kept
  • Weekly balance of worked time against each member's contract
  • A month calendar padded to whole weeks

EXAMPLES:
  worklog log --member 1 --project-label Alpha --start 09:00 --end 10:30 "code review"
  worklog member set 1 --name Ada --schedule '[{"start":"09:00","end":"17:00","break_minutes":60}]'
  worklog rollup --from 2025-02-01 --to 2025-02-28
  worklog series --period week --member 1
  worklog balance --member 1
  worklog calendar 2025-02 --member 1

CONFIGURATION:
  Configuration follows this priority order: command-line flags > environment variables > .env file > defaults

    WL_DB_DIR                      Database directory (default: ~/.worklog)
    WL_DB_FILENAME                 Database filename (default: worklog.db)
    WL_DB_QUERY_TIMEOUT            Query timeout (default: 10s)
    WL_REPORT_START_OF_WEEK        First calendar column, 0 = Sunday (default: 1)
    WL_REPORT_MONTHLY_LIMIT        Months kept in monthly series (default: 12)
    WL_REPORT_WEEKLY_LIMIT         Weeks kept in weekly series (default: 12)
    WL_REPORT_TIMEZONE             Time zone used for "today" (default: Local)
    WL_VALIDATION_MAX_DURATION     Maximum entry duration (default: 24h)
    WL_DISPLAY_FORMAT              table or json (default: table)
    WL_APP_TIMEOUT                 Command timeout (default: 60s)
    WL_APP_VERBOSE                 Debug logging (default: false)
    WL_LOG_LEVEL                   debug, info, warn or error (default: info)`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.loadConfig(cmd)
		},
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	return r.cmd.Execute()
}

// ExecuteContext runs the root command under ctx.
func (r *RootCommand) ExecuteContext(ctx context.Context) error {
	return r.cmd.ExecuteContext(ctx)
}

// Command exposes the cobra command, mostly for tests.
func (r *RootCommand) Command() *cobra.Command {
	return r.cmd
}

// ExitCode maps a returned error to the process exit status.
func (r *RootCommand) ExitCode(err error) int {
	return r.errorHandler.ExitCode(err)
}

func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.String("db-dir", "", "Database directory (overrides WL_DB_DIR)")
	flags.String("db-filename", "", "Database filename (overrides WL_DB_FILENAME)")
	flags.Duration("db-query-timeout", 0, "Database query timeout (overrides WL_DB_QUERY_TIMEOUT)")

	flags.Int("start-of-week", 0, "First calendar column, 0 = Sunday ... 6 = Saturday (overrides WL_REPORT_START_OF_WEEK)")
	flags.Int("monthly-limit", 0, "Months kept in monthly series (overrides WL_REPORT_MONTHLY_LIMIT)")
	flags.Int("weekly-limit", 0, "Weeks kept in weekly series (overrides WL_REPORT_WEEKLY_LIMIT)")
	flags.String("timezone", "", "Time zone used to resolve today (overrides WL_REPORT_TIMEZONE)")

	flags.Duration("max-duration", 0, "Maximum entry duration (overrides WL_VALIDATION_MAX_DURATION)")

	flags.StringP("format", "o", "", "Output format, table or json (overrides WL_DISPLAY_FORMAT)")

	flags.Duration("timeout", 0, "Command timeout (overrides WL_APP_TIMEOUT)")
	flags.BoolP("verbose", "v", false, "Enable debug logging (overrides WL_APP_VERBOSE)")
	flags.String("log-level", "", "Log level (overrides WL_LOG_LEVEL)")
}

func (r *RootCommand) addSubcommands() {
	r.cmd.AddCommand(
		r.newLogCommand(),
		r.newListCommand(),
		r.newDeleteCommand(),
		r.newMemberCommand(),
		r.newRollupCommand(),
		r.newSeriesCommand(),
		r.newBalanceCommand(),
		r.newCalendarCommand(),
	)
}

// loadConfig reads the configuration with the flags the user actually set.
// Flags left at their zero value do not override, so --start-of-week 0
// still selects Sunday.
func (r *RootCommand) loadConfig(cmd *cobra.Command) error {
	cfg, err := r.loader.LoadWithOverrides(overridesFromFlags(cmd))
	if err != nil {
		return r.errorHandler.Handle("load configuration", err)
	}
	r.config = cfg
	return nil
}

func overridesFromFlags(cmd *cobra.Command) *config.ConfigOverrides {
	flags := cmd.Flags()
	overrides := &config.ConfigOverrides{}

	if flags.Changed("db-dir") {
		v, _ := flags.GetString("db-dir")
		overrides.DBDir = &v
	}
	if flags.Changed("db-filename") {
		v, _ := flags.GetString("db-filename")
		overrides.DBFilename = &v
	}
	if flags.Changed("db-query-timeout") {
		v, _ := flags.GetDuration("db-query-timeout")
		overrides.DBQueryTimeout = &v
	}
	if flags.Changed("start-of-week") {
		v, _ := flags.GetInt("start-of-week")
		overrides.StartOfWeek = &v
	}
	if flags.Changed("monthly-limit") {
		v, _ := flags.GetInt("monthly-limit")
		overrides.MonthlyLimit = &v
	}
	if flags.Changed("weekly-limit") {
		v, _ := flags.GetInt("weekly-limit")
		overrides.WeeklyLimit = &v
	}
	if flags.Changed("timezone") {
		v, _ := flags.GetString("timezone")
		overrides.Timezone = &v
	}
	if flags.Changed("max-duration") {
		v, _ := flags.GetDuration("max-duration")
		overrides.MaxDuration = &v
	}
	if flags.Changed("format") {
		v, _ := flags.GetString("format")
		overrides.Format = &v
	}
	if flags.Changed("timeout") {
		v, _ := flags.GetDuration("timeout")
		overrides.Timeout = &v
	}
	if flags.Changed("verbose") {
		v, _ := flags.GetBool("verbose")
		overrides.Verbose = &v
	}
	if flags.Changed("log-level") {
		v, _ := flags.GetString("log-level")
		overrides.LogLevel = &v
	}

	return overrides
}

// run builds the application, bounds the command by the configured timeout
// and releases the database afterwards.
func (r *RootCommand) run(cmd *cobra.Command, fn func(ctx context.Context, app *App) error) error {
	app, err := r.newApp(r.config, cmd.OutOrStdout())
	if err != nil {
		return r.errorHandler.Handle("open database", err)
	}
	defer app.Close()

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithTimeout(parent, r.getAppTimeout())
	defer cancel()

	return fn(ctx, app)
}

func (r *RootCommand) getAppTimeout() time.Duration {
	if r.config != nil && r.config.Application.Timeout > 0 {
		return r.config.Application.Timeout
	}
	return 60 * time.Second
}
