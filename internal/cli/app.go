package cli

import (
	"io"
	"os"
	"time"

	"worklog/internal/api"
	"worklog/internal/config"
	"worklog/internal/logging"
	"worklog/internal/repository/sqlite"
	"worklog/internal/services"
)

// timeNow is a variable that can be replaced in tests
var timeNow = time.Now

// App holds the dependencies shared by every command.
type App struct {
	api      api.API
	reports  services.ReportingService
	config   *config.Config
	logger   *logging.Logger
	renderer *Renderer
	repo     sqlite.Repository
}

// NewApp creates a CLI application around existing services.
func NewApp(apiInstance api.API, reports services.ReportingService, cfg *config.Config, out io.Writer) *App {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	if out == nil {
		out = os.Stdout
	}
	return &App{
		api:      apiInstance,
		reports:  reports,
		config:   cfg,
		logger:   logging.Nop(),
		renderer: NewRenderer(out, cfg.Display.Format),
	}
}

// NewAppFromConfig opens the configured database and wires the API and the
// reporting service on top of it. Close releases the database.
func NewAppFromConfig(cfg *config.Config, out io.Writer) (*App, error) {
	logger := config.NewLogger(cfg)
	logging.SetDefault(logger)

	repo, err := config.CreateRepository(cfg, logger.WithComponent(logging.ComponentStorage))
	if err != nil {
		return nil, err
	}

	apiInstance := api.New(repo,
		api.WithConfig(cfg),
		api.WithLogger(logger),
		api.WithClock(func() time.Time { return timeNow() }),
	)
	reports := services.NewReportingService(repo, cfg,
		services.WithLogger(logger),
		services.WithClock(func() time.Time { return timeNow() }),
	)

	app := NewApp(apiInstance, reports, cfg, out)
	app.logger = logger.WithComponent(logging.ComponentCLI)
	app.repo = repo
	return app, nil
}

// Close releases the database opened by NewAppFromConfig.
func (a *App) Close() error {
	if a.repo != nil {
		return a.repo.Close()
	}
	return nil
}
