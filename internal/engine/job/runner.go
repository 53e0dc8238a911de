// Package job runs build jobs one at a time under the workspace lock.
package job

import (
	"context"
	"errors"
	"fmt"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/forge/internal/engine/progress"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Runner schedules build jobs.
type Runner struct {
	workspace ports.Workspace
	builders  ports.BuilderProvider
	telemetry ports.Telemetry
	tracer    ports.Tracer
	logger    ports.Logger
}

// NewRunner creates a new Runner. Telemetry may be nil.
func NewRunner(
	workspace ports.Workspace,
	builders ports.BuilderProvider,
	telemetry ports.Telemetry,
	tracer ports.Tracer,
	logger ports.Logger,
) *Runner {
	return &Runner{
		workspace: workspace,
		builders:  builders,
		telemetry: telemetry,
		tracer:    tracer,
		logger:    logger,
	}
}

// Schedule starts a job building project and returns its handle immediately.
func (r *Runner) Schedule(ctx context.Context, project *domain.Project, kind domain.DescriptorKind) *Handle {
	ctx, cancel := context.WithCancel(ctx)
	h := newHandle(project, kind, cancel)

	if project == nil {
		h.finish(domain.JobFailed, domain.FailedErr(domain.ErrNoProject))
		r.logger.Error(domain.ErrNoProject)
		cancel()
		close(h.done)
		return h
	}

	go r.run(ctx, h)
	return h
}

// RunAll runs a job per project and waits for all of them. The workspace
// lock serializes the builds, and a failed job does not stop the others.
// It returns domain.ErrBuildExecutionFailed if any job did not succeed.
func (r *Runner) RunAll(ctx context.Context, projects []*domain.Project, kind domain.DescriptorKind) ([]*Handle, error) {
	handles := make([]*Handle, len(projects))
	errs := make([]error, len(projects))

	var g errgroup.Group
	for i, project := range projects {
		h := r.Schedule(ctx, project, kind)
		handles[i] = h
		g.Go(func() error {
			outcome, err := h.Wait(ctx)
			if err != nil {
				h.Cancel()
				<-h.Done()
				errs[i] = err
				return err
			}
			if !outcome.IsOK() {
				errs[i] = zerr.With(zerr.Wrap(outcome.Err(), h.Name()), "job", h.Name())
			}
			return nil
		})
	}
	_ = g.Wait()

	if err := errors.Join(errs...); err != nil {
		return handles, errors.Join(domain.ErrBuildExecutionFailed, err)
	}
	return handles, nil
}

func (r *Runner) run(ctx context.Context, h *Handle) {
	defer close(h.done)
	defer h.cancel()

	ctx, span := r.tracer.Start(ctx, h.Name(),
		ports.WithAttribute("job.id", h.ID.String()),
		ports.WithAttribute("project", h.Project.Name),
		ports.WithAttribute("kind", string(h.Kind)),
	)
	defer func() {
		state := h.State()
		span.SetAttribute("state", string(state))
		if err := h.Outcome().Err(); err != nil {
			span.RecordError(err)
		}
		span.End()
	}()

	defer zerr.Defer(func(err error) {
		cause := zerr.With(zerr.Wrap(domain.ErrJobPanicked, err.Error()), "job", h.Name())
		h.finish(domain.JobFailed, domain.Failed(domain.ErrJobPanicked.Error(), cause))
		r.logger.Error(cause)
	})

	err := r.workspace.Atomic(ctx, func(ctx context.Context) error {
		r.build(ctx, h)
		return nil
	})
	if err != nil {
		h.finish(domain.JobCancelled, domain.Failed("build cancelled before it started", err))
	}
}

func (r *Runner) build(ctx context.Context, h *Handle) {
	scope := progress.New(ctx, r.telemetry, h.Name(), domain.GoalBudget)
	if !h.start(scope) {
		_ = scope.Done(context.Canceled)
		h.finish(domain.JobCancelled, domain.Failed("build cancelled before it started", context.Canceled))
		return
	}

	outcome := r.invoke(ctx, h, scope)
	if !scope.IsDone() {
		_ = scope.Done(outcome.Err())
	}

	switch {
	case outcome.IsOK():
		h.finish(domain.JobSucceeded, outcome)
	case h.cancelled.Load():
		h.finish(domain.JobCancelled, outcome)
	default:
		h.finish(domain.JobFailed, outcome)
	}
}

func (r *Runner) invoke(ctx context.Context, h *Handle, scope ports.Progress) domain.Outcome {
	builder, err := r.builders.BuilderFor(h.Project)
	if err != nil {
		return domain.Failed(fmt.Sprintf("could not create project builder for %s", h.Project.Name), err)
	}

	switch h.Kind {
	case domain.DescriptorService:
		return builder.BuildServiceFor(ctx, h.Project, scope)
	case domain.DescriptorWSDD:
		return builder.BuildWSDDFor(ctx, h.Project, scope)
	case domain.DescriptorLanguage:
		return builder.BuildLanguageFor(ctx, h.Project, scope)
	default:
		return domain.FailedErr(zerr.With(zerr.Wrap(domain.ErrInvalidDescriptorKind, "job"), "kind", string(h.Kind)))
	}
}
