package job_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"testing/synctest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/forge/internal/core/ports/mocks"
	"go.trai.ch/forge/internal/engine/job"
	"go.uber.org/mock/gomock"
)

// lockedWorkspace implements Atomic with a channel semaphore and counts
// how many callers hold it at once.
type lockedWorkspace struct {
	ports.Workspace
	sem     chan struct{}
	holders atomic.Int32
	maxSeen atomic.Int32
}

func newLockedWorkspace() *lockedWorkspace {
	return &lockedWorkspace{sem: make(chan struct{}, 1)}
}

func (w *lockedWorkspace) Atomic(ctx context.Context, fn func(context.Context) error) error {
	select {
	case w.sem <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { <-w.sem }()

	n := w.holders.Add(1)
	defer w.holders.Add(-1)
	for {
		seen := w.maxSeen.Load()
		if n <= seen || w.maxSeen.CompareAndSwap(seen, n) {
			break
		}
	}
	return fn(ctx)
}

type fixture struct {
	ws       *lockedWorkspace
	builder  *mocks.MockProjectBuilder
	provider *mocks.MockBuilderProvider
	logger   *mocks.MockLogger
	runner   *job.Runner
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	span := mocks.NewMockSpan(ctrl)
	span.EXPECT().SetAttribute(gomock.Any(), gomock.Any()).AnyTimes()
	span.EXPECT().RecordError(gomock.Any()).AnyTimes()
	span.EXPECT().End().AnyTimes()

	tracer := mocks.NewMockTracer(ctrl)
	tracer.EXPECT().Start(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string, _ ...ports.SpanOption) (context.Context, ports.Span) {
			return ctx, span
		}).AnyTimes()

	f := &fixture{
		ws:       newLockedWorkspace(),
		builder:  mocks.NewMockProjectBuilder(ctrl),
		provider: mocks.NewMockBuilderProvider(ctrl),
		logger:   mocks.NewMockLogger(ctrl),
	}
	f.runner = job.NewRunner(f.ws, f.provider, nil, tracer, f.logger)
	return f
}

func TestSchedule_NoProject(t *testing.T) {
	f := newFixture(t)
	f.logger.EXPECT().Error(gomock.Any())

	h := f.runner.Schedule(context.Background(), nil, domain.DescriptorService)

	outcome, err := h.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.JobFailed, h.State())
	assert.ErrorIs(t, outcome.Err(), domain.ErrNoProject)
	assert.Contains(t, outcome.Message, "use the import command")
}

func TestSchedule_Succeeded(t *testing.T) {
	f := newFixture(t)
	project := &domain.Project{Name: "portal", Tool: "maven"}

	f.provider.EXPECT().BuilderFor(project).Return(f.builder, nil)
	f.builder.EXPECT().BuildServiceFor(gomock.Any(), project, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *domain.Project, budget ports.Progress) domain.Outcome {
			assert.Equal(t, domain.GoalBudget, budget.Remaining())
			return domain.OK()
		})

	h := f.runner.Schedule(context.Background(), project, domain.DescriptorService)
	outcome, err := h.Wait(context.Background())
	require.NoError(t, err)

	assert.True(t, outcome.IsOK())
	assert.Equal(t, domain.JobSucceeded, h.State())
	assert.NotEmpty(t, h.ID.String())
}

func TestSchedule_KindSelectsOperation(t *testing.T) {
	f := newFixture(t)
	project := &domain.Project{Name: "portal"}

	f.provider.EXPECT().BuilderFor(project).Return(f.builder, nil).Times(2)
	f.builder.EXPECT().BuildWSDDFor(gomock.Any(), project, gomock.Any()).Return(domain.OK())
	f.builder.EXPECT().BuildLanguageFor(gomock.Any(), project, gomock.Any()).Return(domain.OK())

	for _, kind := range []domain.DescriptorKind{domain.DescriptorWSDD, domain.DescriptorLanguage} {
		h := f.runner.Schedule(context.Background(), project, kind)
		_, err := h.Wait(context.Background())
		require.NoError(t, err)
		assert.Equal(t, domain.JobSucceeded, h.State())
	}
}

func TestSchedule_Failed(t *testing.T) {
	f := newFixture(t)
	project := &domain.Project{Name: "portal"}

	f.provider.EXPECT().BuilderFor(project).Return(f.builder, nil)
	f.builder.EXPECT().BuildServiceFor(gomock.Any(), project, gomock.Any()).
		Return(domain.Failed("BUILD FAILURE", domain.ErrGoalFailed))

	h := f.runner.Schedule(context.Background(), project, domain.DescriptorService)
	outcome, err := h.Wait(context.Background())
	require.NoError(t, err)

	assert.Equal(t, domain.JobFailed, h.State())
	assert.ErrorIs(t, outcome.Err(), domain.ErrGoalFailed)
}

func TestSchedule_BuilderNotFound(t *testing.T) {
	f := newFixture(t)
	project := &domain.Project{Name: "portal", Tool: "ant"}

	f.provider.EXPECT().BuilderFor(project).Return(nil, domain.ErrBuilderNotFound)

	h := f.runner.Schedule(context.Background(), project, domain.DescriptorService)
	outcome, err := h.Wait(context.Background())
	require.NoError(t, err)

	assert.Equal(t, domain.JobFailed, h.State())
	assert.ErrorIs(t, outcome.Err(), domain.ErrBuilderNotFound)
}

func TestSchedule_Panic(t *testing.T) {
	f := newFixture(t)
	project := &domain.Project{Name: "portal"}

	f.provider.EXPECT().BuilderFor(project).Return(f.builder, nil)
	f.builder.EXPECT().BuildServiceFor(gomock.Any(), project, gomock.Any()).
		DoAndReturn(func(context.Context, *domain.Project, ports.Progress) domain.Outcome {
			panic("boom")
		})
	f.logger.EXPECT().Error(gomock.Any())

	h := f.runner.Schedule(context.Background(), project, domain.DescriptorService)
	outcome, err := h.Wait(context.Background())
	require.NoError(t, err)

	assert.Equal(t, domain.JobFailed, h.State())
	assert.ErrorIs(t, outcome.Err(), domain.ErrJobPanicked)

	// The lock is released after a panic.
	assert.Empty(t, f.ws.sem)
}

func TestSchedule_CancelWhileWaiting(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t)
		first := &domain.Project{Name: "first"}
		second := &domain.Project{Name: "second"}
		release := make(chan struct{})

		f.provider.EXPECT().BuilderFor(first).Return(f.builder, nil)
		f.builder.EXPECT().BuildServiceFor(gomock.Any(), first, gomock.Any()).
			DoAndReturn(func(context.Context, *domain.Project, ports.Progress) domain.Outcome {
				<-release
				return domain.OK()
			})

		h1 := f.runner.Schedule(t.Context(), first, domain.DescriptorService)
		synctest.Wait()
		h2 := f.runner.Schedule(t.Context(), second, domain.DescriptorService)
		synctest.Wait()

		assert.Equal(t, domain.JobRunning, h1.State())
		assert.Equal(t, domain.JobWaiting, h2.State())

		h2.Cancel()
		synctest.Wait()
		assert.Equal(t, domain.JobCancelled, h2.State())

		close(release)
		_, err := h1.Wait(t.Context())
		require.NoError(t, err)
		assert.Equal(t, domain.JobSucceeded, h1.State())
	})
}

func TestSchedule_CancelWhileRunning(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t)
		project := &domain.Project{Name: "portal"}

		f.provider.EXPECT().BuilderFor(project).Return(f.builder, nil)
		f.builder.EXPECT().BuildServiceFor(gomock.Any(), project, gomock.Any()).
			DoAndReturn(func(ctx context.Context, _ *domain.Project, budget ports.Progress) domain.Outcome {
				<-ctx.Done()
				assert.True(t, budget.Canceled())
				return domain.Failed("interrupted", ctx.Err())
			})

		h := f.runner.Schedule(t.Context(), project, domain.DescriptorService)
		synctest.Wait()
		require.Equal(t, domain.JobRunning, h.State())

		h.Cancel()
		_, err := h.Wait(t.Context())
		require.NoError(t, err)
		assert.Equal(t, domain.JobCancelled, h.State())
	})
}

func TestRunAll_Serialized(t *testing.T) {
	f := newFixture(t)
	projects := []*domain.Project{{Name: "a"}, {Name: "b"}, {Name: "c"}}

	var mu sync.Mutex
	var built []string

	f.provider.EXPECT().BuilderFor(gomock.Any()).Return(f.builder, nil).Times(3)
	f.builder.EXPECT().BuildServiceFor(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p *domain.Project, _ ports.Progress) domain.Outcome {
			mu.Lock()
			built = append(built, p.Name)
			mu.Unlock()
			if p.Name == "b" {
				return domain.Failed("b failed", domain.ErrGoalFailed)
			}
			return domain.OK()
		}).Times(3)

	handles, err := f.runner.RunAll(context.Background(), projects, domain.DescriptorService)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrBuildExecutionFailed)
	assert.ErrorIs(t, err, domain.ErrGoalFailed)

	require.Len(t, handles, 3)
	assert.Equal(t, domain.JobSucceeded, handles[0].State())
	assert.Equal(t, domain.JobFailed, handles[1].State())
	assert.Equal(t, domain.JobSucceeded, handles[2].State())
	assert.Len(t, built, 3)
	assert.Equal(t, int32(1), f.ws.maxSeen.Load())
}

func TestRunAll_Empty(t *testing.T) {
	f := newFixture(t)

	handles, err := f.runner.RunAll(context.Background(), nil, domain.DescriptorLanguage)
	require.NoError(t, err)
	assert.Empty(t, handles)
}
