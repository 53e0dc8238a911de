// Package orchestrator runs generation goals against workspace modules.
package orchestrator

import (
	"context"
	"fmt"
	"path/filepath"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ProjectBuilder = (*Orchestrator)(nil)

// Work units of a goal invocation. Each split sums to domain.GoalBudget.
const (
	resolveUnits  = 10
	goalUnits     = 80
	refreshUnits  = 10
	generateUnits = 70
	siblingUnits  = 10
)

// Orchestrator resolves the module owning a descriptor, runs a goal against
// it and refreshes the affected projects.
type Orchestrator struct {
	workspace ports.Workspace
	executor  ports.GoalExecutor
	logger    ports.Logger
}

// New creates a new Orchestrator.
func New(workspace ports.Workspace, executor ports.GoalExecutor, logger ports.Logger) *Orchestrator {
	return &Orchestrator{
		workspace: workspace,
		executor:  executor,
		logger:    logger,
	}
}

// BuildLanguage builds the language resources described by descriptor.
func (o *Orchestrator) BuildLanguage(ctx context.Context, descriptor string, budget ports.Progress) domain.Outcome {
	return o.build(ctx, descriptor, domain.GoalBuildLang, false, budget)
}

// BuildService generates the service layer described by descriptor.
func (o *Orchestrator) BuildService(ctx context.Context, descriptor string, budget ports.Progress) domain.Outcome {
	return o.build(ctx, descriptor, domain.GoalBuildService, true, budget)
}

// BuildWSDD generates the web service deployment descriptors for descriptor.
func (o *Orchestrator) BuildWSDD(ctx context.Context, descriptor string, budget ports.Progress) domain.Outcome {
	return o.build(ctx, descriptor, domain.GoalBuildWSDD, true, budget)
}

// BuildServiceFor builds the service layer of the first module of the
// project's aggregator that has a service descriptor.
func (o *Orchestrator) BuildServiceFor(ctx context.Context, project *domain.Project, budget ports.Progress) domain.Outcome {
	return o.buildFirstModule(ctx, project, domain.DescriptorService, budget, o.BuildService)
}

// BuildWSDDFor builds the WSDD of the first module of the project's
// aggregator that has a service descriptor.
func (o *Orchestrator) BuildWSDDFor(ctx context.Context, project *domain.Project, budget ports.Progress) domain.Outcome {
	return o.buildFirstModule(ctx, project, domain.DescriptorWSDD, budget, o.BuildWSDD)
}

// BuildLanguageFor builds the language resources of the project itself.
func (o *Orchestrator) BuildLanguageFor(ctx context.Context, project *domain.Project, budget ports.Progress) domain.Outcome {
	descriptor, ok := o.workspace.FindDescriptorFile(project, domain.DescriptorLanguage)
	if !ok {
		o.logger.Warn(fmt.Sprintf("project %s has no %s, nothing to build",
			project.Name, domain.DescriptorLanguage.FileName()))
		return domain.OK()
	}
	return o.BuildLanguage(ctx, descriptor, budget)
}

type buildFunc func(ctx context.Context, descriptor string, budget ports.Progress) domain.Outcome

// buildFirstModule delegates to build for the first module, in declared
// order, whose descriptor exists. Lookup failures are logged, never returned.
func (o *Orchestrator) buildFirstModule(
	ctx context.Context,
	project *domain.Project,
	kind domain.DescriptorKind,
	budget ports.Progress,
	build buildFunc,
) domain.Outcome {
	aggregator := project.Aggregator()

	for _, module := range o.candidates(aggregator) {
		descriptor, ok := o.workspace.FindDescriptorFile(module, kind)
		if !ok {
			continue
		}
		return build(ctx, descriptor, budget)
	}

	o.logger.Warn(fmt.Sprintf("no module of %s has a %s, nothing to build", aggregator.Name, kind.FileName()))
	return domain.OK()
}

// candidates resolves the aggregator's declared modules. An aggregator
// without modules has no candidates.
func (o *Orchestrator) candidates(aggregator *domain.Project) []*domain.Project {
	names := o.workspace.ListSiblingModules(aggregator)
	modules := make([]*domain.Project, 0, len(names))
	for _, name := range names {
		module, err := o.workspace.ResolveProject(name)
		if err != nil {
			o.logger.Error(zerr.With(zerr.Wrap(err, "skipping module"), "module", name))
			continue
		}
		modules = append(modules, module)
	}
	return modules
}

func (o *Orchestrator) build(
	ctx context.Context,
	descriptor string,
	goal string,
	withSibling bool,
	budget ports.Progress,
) (outcome domain.Outcome) {
	scope, err := budget.Child(goal, domain.GoalBudget)
	if err != nil {
		return domain.FailedErr(err)
	}
	defer func() {
		_ = scope.Done(outcome.Err())
	}()

	module, err := o.resolve(scope, descriptor)
	if err != nil {
		return domain.Failed(fmt.Sprintf("could not resolve module for %s", descriptor), err)
	}

	if scope.Canceled() {
		return domain.Failed("build cancelled before "+goal, context.Canceled)
	}

	units := goalUnits
	if withSibling {
		units = generateUnits
	}
	outcome = o.execute(ctx, module, goal, scope, units)

	if withSibling {
		o.refreshSibling(ctx, module, scope)
	}
	o.refreshProject(ctx, module, scope)

	return outcome
}

func (o *Orchestrator) resolve(scope ports.Progress, descriptor string) (*domain.Project, error) {
	step, err := scope.Child("resolve module", resolveUnits)
	if err != nil {
		return nil, err
	}

	module, err := o.workspace.ResolveModule(descriptor)
	if err != nil {
		err = zerr.With(zerr.Wrap(err, "resolve module"), "descriptor", descriptor)
	}
	_ = step.Done(err)
	return module, err
}

func (o *Orchestrator) execute(
	ctx context.Context,
	module *domain.Project,
	goal string,
	scope ports.Progress,
	units int,
) domain.Outcome {
	step, err := scope.Child("execute "+goal, units)
	if err != nil {
		return domain.FailedErr(err)
	}

	outcome := o.executor.ExecuteGoal(ctx, module, goal, step)
	_ = step.Done(outcome.Err())
	return outcome
}

// refreshSibling refreshes the API project configured by the module's
// apiBaseDir plugin setting. Failures are logged and swallowed.
func (o *Orchestrator) refreshSibling(ctx context.Context, module *domain.Project, scope ports.Progress) {
	step, err := scope.Child("refresh sibling", siblingUnits)
	if err != nil {
		o.logger.Error(err)
		return
	}

	err = o.siblingRefresh(ctx, module)
	if err != nil {
		o.logger.Warn("sibling refresh skipped: " + err.Error())
	}
	_ = step.Done(nil)
}

func (o *Orchestrator) siblingRefresh(ctx context.Context, module *domain.Project) error {
	base := module.Plugin[domain.PluginAPIBaseDir]
	if base == "" {
		return nil
	}
	if !filepath.IsAbs(base) {
		base = filepath.Join(module.Dir, base)
	}

	sibling, err := o.workspace.ResolveProjectAt(filepath.Clean(base))
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrSiblingNotFound, err.Error()), "path", base)
	}

	if _, err := o.workspace.Refresh(ctx, sibling, domain.DepthInfinite); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrRefreshFailed.Error()), "project", sibling.Name)
	}
	return nil
}

// refreshProject makes generated files of the module visible. Failures are logged.
func (o *Orchestrator) refreshProject(ctx context.Context, module *domain.Project, scope ports.Progress) {
	step, err := scope.Child("refresh "+module.Name, refreshUnits)
	if err != nil {
		o.logger.Error(err)
		return
	}

	result, err := o.workspace.Refresh(ctx, module, domain.DepthInfinite)
	if err != nil {
		o.logger.Warn(fmt.Sprintf("refresh of %s failed: %v", module.Name, err))
	} else if result.Total() > 0 {
		o.logger.Info(fmt.Sprintf("%s: %d added, %d changed, %d removed",
			module.Name, result.Added, result.Changed, result.Removed))
	}
	_ = step.Done(nil)
}
