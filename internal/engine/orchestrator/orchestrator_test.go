package orchestrator_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports/mocks"
	"go.trai.ch/forge/internal/engine/orchestrator"
	"go.trai.ch/forge/internal/engine/progress"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	ws       *mocks.MockWorkspace
	executor *mocks.MockGoalExecutor
	logger   *mocks.MockLogger
	orch     *orchestrator.Orchestrator
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &fixture{
		ws:       mocks.NewMockWorkspace(ctrl),
		executor: mocks.NewMockGoalExecutor(ctrl),
		logger:   mocks.NewMockLogger(ctrl),
	}
	f.logger.EXPECT().Info(gomock.Any()).AnyTimes()
	f.orch = orchestrator.New(f.ws, f.executor, f.logger)
	return f
}

func serviceModule() (*domain.Project, *domain.Project) {
	api := &domain.Project{Name: "portal-api", Dir: filepath.FromSlash("/ws/portal-api")}
	svc := &domain.Project{
		Name:   "portal-service",
		Dir:    filepath.FromSlash("/ws/portal-service"),
		Plugin: map[string]string{domain.PluginAPIBaseDir: "../portal-api"},
	}
	return svc, api
}

func TestBuildService_Success(t *testing.T) {
	f := newFixture(t)
	svc, api := serviceModule()
	descriptor := filepath.Join(svc.Dir, "service.xml")
	ctx := context.Background()

	gomock.InOrder(
		f.ws.EXPECT().ResolveModule(descriptor).Return(svc, nil),
		f.executor.EXPECT().ExecuteGoal(gomock.Any(), svc, domain.GoalBuildService, gomock.Any()).Return(domain.OK()),
		f.ws.EXPECT().ResolveProjectAt(api.Dir).Return(api, nil),
		f.ws.EXPECT().Refresh(gomock.Any(), api, domain.DepthInfinite).Return(domain.RefreshResult{}, nil),
		f.ws.EXPECT().Refresh(gomock.Any(), svc, domain.DepthInfinite).Return(domain.RefreshResult{Added: 3}, nil),
	)

	root := progress.New(ctx, nil, "job", domain.GoalBudget)
	outcome := f.orch.BuildService(ctx, descriptor, root)

	assert.True(t, outcome.IsOK())
	assert.Equal(t, []progress.Allocation{{Name: domain.GoalBuildService, Units: domain.GoalBudget}}, root.Allocations())
}

func TestBuildService_SiblingFailureDoesNotFailBuild(t *testing.T) {
	f := newFixture(t)
	svc, api := serviceModule()
	descriptor := filepath.Join(svc.Dir, "service.xml")
	ctx := context.Background()

	f.ws.EXPECT().ResolveModule(descriptor).Return(svc, nil)
	f.executor.EXPECT().ExecuteGoal(gomock.Any(), svc, domain.GoalBuildService, gomock.Any()).Return(domain.OK())
	f.ws.EXPECT().ResolveProjectAt(api.Dir).Return(nil, domain.ErrProjectNotFound)
	f.ws.EXPECT().Refresh(gomock.Any(), svc, domain.DepthInfinite).Return(domain.RefreshResult{}, nil)
	f.logger.EXPECT().Warn(gomock.Any()).Times(1)

	outcome := f.orch.BuildService(ctx, descriptor, progress.New(ctx, nil, "job", 100))

	assert.True(t, outcome.IsOK())
}

func TestBuildService_SiblingRefreshFailureSwallowed(t *testing.T) {
	f := newFixture(t)
	svc, api := serviceModule()
	descriptor := filepath.Join(svc.Dir, "service.xml")
	ctx := context.Background()

	f.ws.EXPECT().ResolveModule(descriptor).Return(svc, nil)
	f.executor.EXPECT().ExecuteGoal(gomock.Any(), svc, domain.GoalBuildWSDD, gomock.Any()).Return(domain.OK())
	f.ws.EXPECT().ResolveProjectAt(api.Dir).Return(api, nil)
	f.ws.EXPECT().Refresh(gomock.Any(), api, domain.DepthInfinite).Return(domain.RefreshResult{}, errors.New("disk gone"))
	f.ws.EXPECT().Refresh(gomock.Any(), svc, domain.DepthInfinite).Return(domain.RefreshResult{}, nil)
	f.logger.EXPECT().Warn(gomock.Any()).Times(1)

	outcome := f.orch.BuildWSDD(ctx, descriptor, progress.New(ctx, nil, "job", 100))

	assert.True(t, outcome.IsOK())
}

func TestBuildService_GoalFailureSurfaces(t *testing.T) {
	f := newFixture(t)
	svc, _ := serviceModule()
	svc.Plugin = nil
	descriptor := filepath.Join(svc.Dir, "service.xml")
	ctx := context.Background()

	cause := errors.New("exit status 1")
	f.ws.EXPECT().ResolveModule(descriptor).Return(svc, nil)
	f.executor.EXPECT().ExecuteGoal(gomock.Any(), svc, domain.GoalBuildService, gomock.Any()).
		Return(domain.Failed("BUILD FAILURE", cause))
	f.ws.EXPECT().Refresh(gomock.Any(), svc, domain.DepthInfinite).Return(domain.RefreshResult{}, nil)

	outcome := f.orch.BuildService(ctx, descriptor, progress.New(ctx, nil, "job", 100))

	assert.False(t, outcome.IsOK())
	assert.Equal(t, "BUILD FAILURE", outcome.Message)
	assert.Same(t, cause, outcome.Cause)
}

func TestBuildLanguage_ResolutionFailure(t *testing.T) {
	f := newFixture(t)
	descriptor := filepath.FromSlash("/elsewhere/Language.properties")
	ctx := context.Background()

	f.ws.EXPECT().ResolveModule(descriptor).Return(nil, domain.ErrModuleNotFound)
	f.executor.EXPECT().ExecuteGoal(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	root := progress.New(ctx, nil, "job", 100)
	outcome := f.orch.BuildLanguage(ctx, descriptor, root)

	assert.False(t, outcome.IsOK())
	assert.Contains(t, outcome.Message, descriptor)
	assert.ErrorIs(t, outcome.Err(), domain.ErrModuleNotFound)
	assert.Equal(t, 0, root.Remaining())
}

func TestBuildLanguage_ProgressSplit(t *testing.T) {
	ctrl := gomock.NewController(t)
	ws := mocks.NewMockWorkspace(ctrl)
	executor := mocks.NewMockGoalExecutor(ctrl)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Info(gomock.Any()).AnyTimes()

	budget := mocks.NewMockProgress(ctrl)
	scope := mocks.NewMockProgress(ctrl)
	resolve := mocks.NewMockProgress(ctrl)
	goal := mocks.NewMockProgress(ctrl)
	refresh := mocks.NewMockProgress(ctrl)

	module := &domain.Project{Name: "portal", Dir: filepath.FromSlash("/ws/portal")}
	descriptor := filepath.Join(module.Dir, "Language.properties")

	budget.EXPECT().Child(domain.GoalBuildLang, 100).Return(scope, nil)
	scope.EXPECT().Canceled().Return(false).AnyTimes()
	gomock.InOrder(
		scope.EXPECT().Child("resolve module", 10).Return(resolve, nil),
		scope.EXPECT().Child("execute "+domain.GoalBuildLang, 80).Return(goal, nil),
		scope.EXPECT().Child("refresh portal", 10).Return(refresh, nil),
		scope.EXPECT().Done(nil).Return(nil).Times(1),
	)
	resolve.EXPECT().Done(nil).Return(nil).Times(1)
	goal.EXPECT().Done(nil).Return(nil).Times(1)
	refresh.EXPECT().Done(nil).Return(nil).Times(1)

	ws.EXPECT().ResolveModule(descriptor).Return(module, nil)
	executor.EXPECT().ExecuteGoal(gomock.Any(), module, domain.GoalBuildLang, goal).Return(domain.OK())
	ws.EXPECT().Refresh(gomock.Any(), module, domain.DepthInfinite).Return(domain.RefreshResult{}, nil)

	outcome := orchestrator.New(ws, executor, logger).BuildLanguage(context.Background(), descriptor, budget)
	assert.True(t, outcome.IsOK())
}

func TestBuildService_ProgressSplitOnFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	ws := mocks.NewMockWorkspace(ctrl)
	executor := mocks.NewMockGoalExecutor(ctrl)
	logger := mocks.NewMockLogger(ctrl)

	budget := mocks.NewMockProgress(ctrl)
	scope := mocks.NewMockProgress(ctrl)
	step := mocks.NewMockProgress(ctrl)

	module := &domain.Project{Name: "svc", Dir: filepath.FromSlash("/ws/svc")}
	descriptor := filepath.Join(module.Dir, "service.xml")
	failure := domain.Failed("boom", errors.New("boom"))

	budget.EXPECT().Child(domain.GoalBuildService, 100).Return(scope, nil)
	scope.EXPECT().Canceled().Return(false).AnyTimes()
	gomock.InOrder(
		scope.EXPECT().Child("resolve module", 10).Return(step, nil),
		scope.EXPECT().Child("execute "+domain.GoalBuildService, 70).Return(step, nil),
		scope.EXPECT().Child("refresh sibling", 10).Return(step, nil),
		scope.EXPECT().Child("refresh svc", 10).Return(step, nil),
		scope.EXPECT().Done(failure.Cause).Return(nil).Times(1),
	)
	step.EXPECT().Done(gomock.Any()).Return(nil).Times(4)

	ws.EXPECT().ResolveModule(descriptor).Return(module, nil)
	executor.EXPECT().ExecuteGoal(gomock.Any(), module, domain.GoalBuildService, step).Return(failure)
	ws.EXPECT().Refresh(gomock.Any(), module, domain.DepthInfinite).Return(domain.RefreshResult{}, nil)

	outcome := orchestrator.New(ws, executor, logger).BuildService(context.Background(), descriptor, budget)
	assert.False(t, outcome.IsOK())
}

func TestBuildServiceFor_FirstMatch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	parent := &domain.Project{Name: "parent", Dir: "/ws", Modules: []string{"a", "b", "c"}}
	a := &domain.Project{Name: "a", Dir: "/ws/a", Parent: parent}
	b := &domain.Project{Name: "b", Dir: "/ws/b", Parent: parent}
	c := &domain.Project{Name: "c", Dir: "/ws/c", Parent: parent}

	f.ws.EXPECT().ListSiblingModules(parent).Return(parent.Modules)
	f.ws.EXPECT().ResolveProject("a").Return(a, nil)
	f.ws.EXPECT().ResolveProject("b").Return(b, nil)
	f.ws.EXPECT().ResolveProject("c").Return(c, nil)
	f.ws.EXPECT().FindDescriptorFile(a, domain.DescriptorService).Return("", false)
	f.ws.EXPECT().FindDescriptorFile(b, domain.DescriptorService).Return("/ws/b/service.xml", true)
	f.ws.EXPECT().FindDescriptorFile(c, gomock.Any()).Times(0)

	f.ws.EXPECT().ResolveModule("/ws/b/service.xml").Return(b, nil).Times(1)
	f.executor.EXPECT().ExecuteGoal(gomock.Any(), b, domain.GoalBuildService, gomock.Any()).Return(domain.OK()).Times(1)
	f.ws.EXPECT().Refresh(gomock.Any(), b, domain.DepthInfinite).Return(domain.RefreshResult{}, nil)

	// Called on a child module: the aggregator's module list is used.
	outcome := f.orch.BuildServiceFor(ctx, c, progress.New(ctx, nil, "job", 100))
	assert.True(t, outcome.IsOK())
}

func TestBuildServiceFor_NoDescriptorIsNoop(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	parent := &domain.Project{Name: "parent", Dir: "/ws", Modules: []string{"a", "missing"}}
	a := &domain.Project{Name: "a", Dir: "/ws/a", Parent: parent}

	f.ws.EXPECT().ListSiblingModules(parent).Return(parent.Modules)
	f.ws.EXPECT().ResolveProject("a").Return(a, nil)
	f.ws.EXPECT().ResolveProject("missing").Return(nil, domain.ErrProjectNotFound)
	f.ws.EXPECT().FindDescriptorFile(a, domain.DescriptorWSDD).Return("", false)
	f.executor.EXPECT().ExecuteGoal(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	f.logger.EXPECT().Error(gomock.Any()).Times(1)
	f.logger.EXPECT().Warn(gomock.Any()).Times(1)

	root := progress.New(ctx, nil, "job", 100)
	outcome := f.orch.BuildWSDDFor(ctx, parent, root)

	assert.True(t, outcome.IsOK())
	assert.Empty(t, root.Allocations())
}

func TestBuildServiceFor_StandaloneProject(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := &domain.Project{Name: "solo", Dir: "/ws/solo"}

	// The project's own service.xml is not looked up: only declared modules are candidates.
	f.ws.EXPECT().ListSiblingModules(p).Return(nil)
	f.ws.EXPECT().FindDescriptorFile(gomock.Any(), gomock.Any()).Times(0)
	f.executor.EXPECT().ExecuteGoal(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	f.logger.EXPECT().Warn(gomock.Any()).Times(1)

	outcome := f.orch.BuildServiceFor(ctx, p, progress.New(ctx, nil, "job", 100))
	require.True(t, outcome.IsOK())
}

func TestBuild_CancelledBeforeGoal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := &domain.Project{Name: "solo", Dir: "/ws/solo"}

	f.ws.EXPECT().ResolveModule(gomock.Any()).Return(p, nil)
	f.executor.EXPECT().ExecuteGoal(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	root := progress.New(ctx, nil, "job", 100)
	root.Cancel()
	outcome := f.orch.BuildService(ctx, "/ws/solo/service.xml", root)

	assert.False(t, outcome.IsOK())
	assert.ErrorIs(t, outcome.Err(), context.Canceled)
}

func TestBuild_BudgetTooSmall(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	root := progress.New(ctx, nil, "job", 50)
	outcome := f.orch.BuildService(ctx, "/ws/solo/service.xml", root)

	assert.False(t, outcome.IsOK())
	assert.ErrorIs(t, outcome.Err(), domain.ErrBudgetExceeded)
}
