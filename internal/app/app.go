// Package app implements the application layer for forge.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/forge/internal/adapters/prompt"  //nolint:depguard // Wired in app layer
	"go.trai.ch/forge/internal/adapters/watcher" //nolint:depguard // Wired in app layer
	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/forge/internal/engine/progress"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	logger       ports.Logger
	telemetry    ports.Telemetry
	tracer       ports.Tracer
	prompter     ports.Prompter
	watcher      ports.Watcher

	executor ports.GoalExecutor
	workDir  string
	debounce time.Duration
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	log ports.Logger,
	telemetry ports.Telemetry,
	tracer ports.Tracer,
	prompter ports.Prompter,
	w ports.Watcher,
) *App {
	return &App{
		configLoader: loader,
		logger:       log,
		telemetry:    telemetry,
		tracer:       tracer,
		prompter:     prompter,
		watcher:      w,
		debounce:     watcher.DefaultDebounceWindow,
	}
}

// WithExecutor replaces the shell goal executor.
// This is primarily used for testing.
func (a *App) WithExecutor(executor ports.GoalExecutor) *App {
	a.executor = executor
	return a
}

// WithWorkDir sets the directory commands resolve the workspace and the current project from.
func (a *App) WithWorkDir(dir string) *App {
	a.workDir = dir
	return a
}

// WithDebounceWindow sets the quiet period of the watch command.
func (a *App) WithDebounceWindow(d time.Duration) *App {
	a.debounce = d
	return a
}

// Options are the global command line options.
type Options struct {
	JSON     bool
	Yes      bool
	NoPrompt bool
}

// Configure applies the global options.
func (a *App) Configure(opts Options) {
	if l, ok := a.logger.(interface{ SetJSON(bool) }); ok {
		l.SetJSON(opts.JSON)
	}
	if mode := prompt.ResolveMode(opts.Yes, opts.NoPrompt); mode != prompt.ModeAsk {
		a.prompter = prompt.New(mode)
	}
}

// BuildOptions configuration for the Build method.
type BuildOptions struct {
	Kind       domain.DescriptorKind
	Projects   []string
	All        bool
	Descriptor string
}

// Build generates the artifacts of kind for the selected projects.
// Without projects it builds the project containing the working directory.
func (a *App) Build(ctx context.Context, opts BuildOptions) (err error) {
	s, err := a.open(ctx)
	if err != nil {
		return err
	}
	defer s.closeInto(&err)

	a.promptImport(ctx, s)

	if opts.Descriptor != "" {
		return a.buildDescriptor(ctx, s, opts.Kind, opts.Descriptor)
	}

	projects, err := a.buildTargets(s, opts.Projects, opts.All)
	if err != nil {
		return err
	}

	handles, err := s.runner.RunAll(ctx, projects, opts.Kind)
	for _, h := range handles {
		outcome := h.Outcome()
		if outcome.IsOK() {
			a.logger.Info(fmt.Sprintf("%s: %s", h.Name(), h.State()))
			continue
		}
		a.logger.Error(zerr.With(zerr.Wrap(outcome.Err(), fmt.Sprintf("%s %s", h.Name(), h.State())), "job", h.ID.String()))
	}
	return err
}

func (a *App) buildTargets(s *session, names []string, all bool) ([]*domain.Project, error) {
	if all {
		return s.workspace.Projects(), nil
	}
	if len(names) == 0 {
		// The runner reports a job without project.
		project, err := s.workspace.ResolveModule(s.cwd)
		if err != nil {
			return []*domain.Project{nil}, nil
		}
		return []*domain.Project{project}, nil
	}

	projects := make([]*domain.Project, 0, len(names))
	for _, name := range names {
		p, err := s.workspace.ResolveProject(name)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, nil
}

func (a *App) buildDescriptor(ctx context.Context, s *session, kind domain.DescriptorKind, descriptor string) error {
	if !filepath.IsAbs(descriptor) {
		descriptor = filepath.Join(s.cwd, descriptor)
	}
	if _, err := os.Stat(descriptor); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrDescriptorNotFound, "build "+string(kind)), "descriptor", descriptor)
	}

	var outcome domain.Outcome
	err := s.workspace.Atomic(ctx, func(ctx context.Context) error {
		scope := progress.New(ctx, a.telemetry, filepath.Base(descriptor), domain.GoalBudget)
		switch kind {
		case domain.DescriptorWSDD:
			outcome = s.orchestrator.BuildWSDD(ctx, descriptor, scope)
		case domain.DescriptorLanguage:
			outcome = s.orchestrator.BuildLanguage(ctx, descriptor, scope)
		default:
			outcome = s.orchestrator.BuildService(ctx, descriptor, scope)
		}
		if !scope.IsDone() {
			_ = scope.Done(outcome.Err())
		}
		return nil
	})
	if err != nil {
		return err
	}

	if !outcome.IsOK() {
		a.logger.Error(zerr.With(zerr.Wrap(outcome.Err(), fmt.Sprintf("build %s %s", kind, filepath.Base(descriptor))), "descriptor", descriptor))
		return errors.Join(domain.ErrBuildExecutionFailed, outcome.Err())
	}
	a.logger.Info(fmt.Sprintf("build %s %s: %s", kind, filepath.Base(descriptor), domain.JobSucceeded))
	return nil
}

// Refresh rescans the given projects, or every project when none is named.
func (a *App) Refresh(ctx context.Context, names []string) (err error) {
	s, err := a.open(ctx)
	if err != nil {
		return err
	}
	defer s.closeInto(&err)

	projects, err := a.buildTargets(s, names, len(names) == 0)
	if err != nil {
		return err
	}

	var errs []error
	for _, p := range projects {
		var res domain.RefreshResult
		err := s.workspace.Atomic(ctx, func(ctx context.Context) error {
			var err error
			res, err = s.workspace.Refresh(ctx, p, domain.DepthInfinite)
			return err
		})
		if err != nil {
			errs = append(errs, zerr.With(err, "project", p.Name))
			continue
		}
		a.logger.Info(fmt.Sprintf("refreshed %s: %d added, %d changed, %d removed", p.Name, res.Added, res.Changed, res.Removed))
	}
	return errors.Join(errs...)
}

// Watch refreshes projects as their files change until ctx is cancelled.
func (a *App) Watch(ctx context.Context) (err error) {
	s, err := a.open(ctx)
	if err != nil {
		return err
	}
	defer s.closeInto(&err)

	if err := a.watcher.Start(ctx, s.cfg.Root); err != nil {
		return err
	}
	defer func() { _ = a.watcher.Stop() }()

	a.logger.Info("watching " + s.cfg.Root)
	watcher.NewRefresher(s.workspace, a.logger, a.debounce).Run(ctx, a.watcher.Events())
	return nil
}

// ImportSettings imports the global snapshots into the workspace registry.
func (a *App) ImportSettings(ctx context.Context) (n int, err error) {
	s, err := a.open(ctx)
	if err != nil {
		return 0, err
	}
	defer s.closeInto(&err)

	return s.settings.ImportAll(ctx)
}

// ExportSettings writes the workspace registry to the global snapshots.
func (a *App) ExportSettings(ctx context.Context) (err error) {
	s, err := a.open(ctx)
	if err != nil {
		return err
	}
	defer s.closeInto(&err)

	return s.settings.ExportAll(ctx)
}

// CheckSettings offers to import global settings unless it was offered before.
// It reports whether an import ran.
func (a *App) CheckSettings(ctx context.Context) (imported bool, err error) {
	s, err := a.open(ctx)
	if err != nil {
		return false, err
	}
	defer s.closeInto(&err)

	return s.settings.MaybePromptImport(ctx)
}

// AddEntity adds an entity to the workspace registry.
func (a *App) AddEntity(ctx context.Context, e *domain.Entity) (err error) {
	s, err := a.open(ctx)
	if err != nil {
		return err
	}
	defer s.closeInto(&err)

	a.promptImport(ctx, s)
	if err := s.registry.Add(e); err != nil {
		return err
	}
	a.logger.Info(fmt.Sprintf("added %s %s", e.Kind, e.ID))
	return nil
}

// RemoveEntity removes an entity from the workspace registry.
func (a *App) RemoveEntity(ctx context.Context, kind domain.EntityKind, id string) (err error) {
	s, err := a.open(ctx)
	if err != nil {
		return err
	}
	defer s.closeInto(&err)

	if err := s.registry.Remove(kind, id); err != nil {
		return err
	}
	a.logger.Info(fmt.Sprintf("removed %s %s", kind, id))
	return nil
}

// ListEntities returns the live entities of kind sorted by id.
func (a *App) ListEntities(ctx context.Context, kind domain.EntityKind) (entities []*domain.Entity, err error) {
	s, err := a.open(ctx)
	if err != nil {
		return nil, err
	}
	defer s.closeInto(&err)

	a.promptImport(ctx, s)
	return s.registry.List(kind), nil
}

// promptImport offers the global settings import. Failures do not stop the command.
func (a *App) promptImport(ctx context.Context, s *session) {
	if _, err := s.settings.MaybePromptImport(ctx); err != nil {
		a.logger.Error(zerr.Wrap(err, "settings import check failed"))
	}
}
