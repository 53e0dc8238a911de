package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"go.trai.ch/forge/internal/adapters/prefs"     //nolint:depguard // Wired in app layer
	"go.trai.ch/forge/internal/adapters/shell"     //nolint:depguard // Wired in app layer
	"go.trai.ch/forge/internal/adapters/snapshot"  //nolint:depguard // Wired in app layer
	"go.trai.ch/forge/internal/adapters/state"     //nolint:depguard // Wired in app layer
	"go.trai.ch/forge/internal/adapters/workspace" //nolint:depguard // Wired in app layer
	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/forge/internal/engine/job"
	"go.trai.ch/forge/internal/engine/orchestrator"
	"go.trai.ch/forge/internal/engine/registry"
	"go.trai.ch/forge/internal/engine/settings"
	"go.trai.ch/zerr"
)

// session holds the components bound to one loaded workspace configuration.
type session struct {
	cwd          string
	cfg          *domain.Workspace
	workspace    *workspace.Workspace
	registry     *registry.Registry
	settings     *settings.Synchronizer
	orchestrator *orchestrator.Orchestrator
	runner       *job.Runner
	detach       func()
}

func (a *App) open(ctx context.Context) (*session, error) {
	cwd := a.workDir
	if cwd == "" {
		var err error
		if cwd, err = os.Getwd(); err != nil {
			return nil, zerr.Wrap(err, "failed to get working directory")
		}
	}

	cfg, err := a.configLoader.Load(cwd)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	validators := registry.NewValidators()
	if err := validators.AddSpecs(cfg.Validators); err != nil {
		return nil, err
	}

	reg := registry.New(state.NewStore(filepath.Join(cfg.Root, domain.DefaultRegistryPath())), validators, a.logger)
	if err := reg.Open(ctx); err != nil {
		return nil, err
	}

	prefsPath := filepath.Join(cfg.Root, domain.DefaultPrefsPath())
	preferences, err := prefs.Open(prefsPath)
	if err != nil {
		// The next flush rewrites the file.
		a.logger.Warn("ignoring preferences: " + err.Error())
		preferences = prefs.New(prefsPath)
	}

	synchronizer := settings.New(reg, snapshot.NewStore(cfg.SettingsDir), preferences, a.prompter, a.logger, cfg.Vendor)

	var executor ports.GoalExecutor = a.executor
	if executor == nil {
		executor = shell.NewExecutor(cfg.Tools, a.logger)
	}

	ws := workspace.New(cfg)
	orch := orchestrator.New(ws, executor, a.logger)
	builders, err := orchestrator.NewProvider(cfg.Tools, orch)
	if err != nil {
		return nil, err
	}

	return &session{
		cwd:          cwd,
		cfg:          cfg,
		workspace:    ws,
		registry:     reg,
		settings:     synchronizer,
		orchestrator: orch,
		runner:       job.NewRunner(ws, builders, a.telemetry, a.tracer, a.logger),
		detach:       synchronizer.Attach(ctx),
	}, nil
}

// closeInto detaches the synchronizer, persists the registry and joins any failure into err.
func (s *session) closeInto(err *error) {
	s.detach()
	if closeErr := s.registry.Close(); closeErr != nil {
		*err = errors.Join(*err, closeErr)
	}
}
