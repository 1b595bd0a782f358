package bootstrap

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	plannerinadapter "focusflow/internal/modules/planner/adapter/in"
	planneroutadapter "focusflow/internal/modules/planner/adapter/out"
	"focusflow/internal/modules/planner/dto"
	plannerout "focusflow/internal/modules/planner/port/out"
	plannerservice "focusflow/internal/modules/planner/service"
	plannerusecase "focusflow/internal/modules/planner/usecase"
	"focusflow/internal/platform/clock"
	"focusflow/internal/platform/config"
	"focusflow/internal/platform/i18n"
	"focusflow/internal/platform/id"
	"focusflow/internal/platform/logging"
	uiapp "focusflow/internal/ui/app"
)

const celebrationBuffer = 8

// Options selects the front-end specific collaborators.
type Options struct {
	// Interactive routes completion cues to the TUI instead of the terminal
	// and sends logs to a file under the data dir.
	Interactive bool
	// AssumeYes skips confirmation prompts.
	AssumeYes bool
	Stdin     io.Reader
	Stderr    io.Writer
}

type App struct {
	PlannerCLI plannerinadapter.CLIHandler
	PlannerTUI plannerinadapter.TUIHandler
	Catalog    *i18n.Catalog
	Logger     *log.Logger

	celebrations *planneroutadapter.ChannelNotifier
	closers      []io.Closer
}

func New(cfg config.Config, opts Options) (*App, error) {
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}

	app := &App{}
	logger, err := app.newLogger(cfg, opts)
	if err != nil {
		return nil, err
	}
	app.Logger = logger

	catalog, err := i18n.Load(cfg.Locale)
	if err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("load locale: %w", err)
	}
	app.Catalog = catalog

	gateway, err := app.newGateway(cfg)
	if err != nil {
		_ = app.Close()
		return nil, err
	}

	var notifier plannerout.CompletionNotifier
	if opts.Interactive {
		app.celebrations = planneroutadapter.NewChannelNotifier(celebrationBuffer)
		notifier = app.celebrations
	} else {
		notifier = planneroutadapter.NewTerminalNotifier(opts.Stderr)
	}

	var confirmer plannerout.Confirmer = planneroutadapter.NewPromptConfirmer(opts.Stdin, opts.Stderr)
	if opts.AssumeYes {
		confirmer = planneroutadapter.AssumeYes{}
	}

	clk := clock.SystemClock{}
	svc := plannerservice.NewPlannerService(plannerservice.Deps{
		Clock:      clk,
		IDs:        id.UUID{},
		Gateway:    gateway,
		Notifier:   notifier,
		Confirmer:  confirmer,
		Translator: catalog,
		Logger:     logger,
	})
	plannerUC := plannerusecase.NewInteractor(svc, clk)

	app.PlannerCLI = plannerinadapter.NewCLIHandler(plannerUC)
	app.PlannerTUI = plannerinadapter.NewTUIHandler(plannerUC)
	logger.Debug("bootstrap ready", "backend", cfg.Backend, "locale", cfg.Locale, "interactive", opts.Interactive)
	return app, nil
}

// Close releases the storage handle and the log file, if any.
func (a *App) Close() error {
	var first error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	return first
}

func (a *App) newLogger(cfg config.Config, opts Options) (*log.Logger, error) {
	if !opts.Interactive {
		return logging.NewWithWriter(opts.Stderr, cfg.LogLevel), nil
	}
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(cfg.DataDir, "focusflow.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	a.closers = append(a.closers, f)
	return logging.NewWithWriter(f, cfg.LogLevel), nil
}

func (a *App) newGateway(cfg config.Config) (plannerout.PersistenceGateway, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		gateway, err := planneroutadapter.NewSQLiteGateway(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite gateway: %w", err)
		}
		a.closers = append(a.closers, gateway)
		return gateway, nil
	default:
		return planneroutadapter.NewFileGateway(cfg.SnapshotPath), nil
	}
}

func RunTUI(app *App) error {
	var cues <-chan dto.CelebrationOutput
	if app.celebrations != nil {
		cues = app.celebrations.C()
	}
	model := uiapp.NewModel(app.PlannerTUI, app.Catalog.Translate, cues)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
