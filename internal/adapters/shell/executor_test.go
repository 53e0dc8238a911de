package shell_test

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/forge/internal/adapters/shell"
	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

func shTool(goals map[string]string) map[string]*domain.Tool {
	tool := &domain.Tool{
		Name:    "sh",
		Command: []string{"sh", "-c"},
		Goals:   map[string][]string{},
		Env:     map[string]string{"FORGE_TEST": "from-tool"},
	}
	for goal, script := range goals {
		tool.Goals[goal] = []string{script}
	}
	return map[string]*domain.Tool{"sh": tool}
}

func idleScope(ctrl *gomock.Controller) *mocks.MockProgress {
	scope := mocks.NewMockProgress(ctrl)
	scope.EXPECT().Canceled().Return(false).AnyTimes()
	return scope
}

func TestExecutor_ExecuteGoal(t *testing.T) {
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)

	var mu sync.Mutex
	var lines []string
	logger.EXPECT().Info(gomock.Any()).Do(func(msg string) {
		mu.Lock()
		lines = append(lines, msg)
		mu.Unlock()
	}).AnyTimes()

	dir := t.TempDir()
	executor := shell.NewExecutor(shTool(map[string]string{
		domain.GoalBuildService: "pwd; echo $FORGE_TEST",
	}), logger)

	module := &domain.Project{Name: "portal-service", Dir: dir, Tool: "sh"}
	outcome := executor.ExecuteGoal(context.Background(), module, domain.GoalBuildService, idleScope(ctrl))

	require.True(t, outcome.IsOK(), outcome.Message)
	mu.Lock()
	defer mu.Unlock()
	assert.Contains(t, lines, "from-tool")
	assert.Contains(t, strings.Join(lines, "\n"), dir)
}

func TestExecutor_ExecuteGoal_Failure(t *testing.T) {
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Info(gomock.Any()).AnyTimes()

	executor := shell.NewExecutor(shTool(map[string]string{
		domain.GoalBuildWSDD: "echo compiling; echo 'BUILD FAILURE: missing entity'; exit 3",
	}), logger)

	module := &domain.Project{Name: "portal-service", Dir: t.TempDir(), Tool: "sh"}
	outcome := executor.ExecuteGoal(context.Background(), module, domain.GoalBuildWSDD, idleScope(ctrl))

	require.False(t, outcome.IsOK())
	assert.Equal(t, "BUILD FAILURE: missing entity", outcome.Message)
	require.ErrorIs(t, outcome.Err(), domain.ErrGoalFailed)

	var zErr *zerr.Error
	require.ErrorAs(t, outcome.Err(), &zErr)
	assert.Equal(t, 3, zErr.Metadata()["exit_code"])
}

func TestExecutor_ExecuteGoal_Misconfigured(t *testing.T) {
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	executor := shell.NewExecutor(shTool(map[string]string{domain.GoalBuildService: "true"}), logger)

	outcome := executor.ExecuteGoal(context.Background(),
		&domain.Project{Name: "p", Dir: t.TempDir(), Tool: "gradle"}, domain.GoalBuildService, idleScope(ctrl))
	assert.ErrorIs(t, outcome.Err(), domain.ErrToolNotFound)

	outcome = executor.ExecuteGoal(context.Background(),
		&domain.Project{Name: "p", Dir: t.TempDir(), Tool: "sh"}, domain.GoalBuildLang, idleScope(ctrl))
	assert.ErrorIs(t, outcome.Err(), domain.ErrGoalNotConfigured)
}

func TestExecutor_ExecuteGoal_CancelledByScope(t *testing.T) {
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Info(gomock.Any()).AnyTimes()

	executor := shell.NewExecutor(shTool(map[string]string{
		domain.GoalBuildService: "echo started; sleep 30",
	}), logger)
	executor.SetPollInterval(10 * time.Millisecond)

	var cancelled atomic.Bool
	scope := mocks.NewMockProgress(ctrl)
	scope.EXPECT().Canceled().DoAndReturn(cancelled.Load).AnyTimes()

	time.AfterFunc(200*time.Millisecond, func() { cancelled.Store(true) })

	start := time.Now()
	outcome := executor.ExecuteGoal(context.Background(),
		&domain.Project{Name: "p", Dir: t.TempDir(), Tool: "sh"}, domain.GoalBuildService, scope)

	assert.ErrorIs(t, outcome.Err(), context.Canceled)
	assert.Less(t, time.Since(start), 10*time.Second)
}

func TestExecutor_ExecuteGoal_CancelledBeforeStart(t *testing.T) {
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	executor := shell.NewExecutor(shTool(map[string]string{domain.GoalBuildService: "echo never"}), logger)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcome := executor.ExecuteGoal(ctx,
		&domain.Project{Name: "p", Dir: t.TempDir(), Tool: "sh"}, domain.GoalBuildService, idleScope(ctrl))
	assert.ErrorIs(t, outcome.Err(), context.Canceled)
}

func TestExecutor_ExecuteGoal_SerializedPerTool(t *testing.T) {
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)

	var mu sync.Mutex
	var lines []string
	logger.EXPECT().Info(gomock.Any()).Do(func(msg string) {
		mu.Lock()
		lines = append(lines, msg)
		mu.Unlock()
	}).AnyTimes()

	executor := shell.NewExecutor(shTool(map[string]string{
		domain.GoalBuildService: "echo begin; sleep 0.2; echo end",
	}), logger)

	var wg sync.WaitGroup
	for range 3 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			outcome := executor.ExecuteGoal(context.Background(),
				&domain.Project{Name: "p", Dir: t.TempDir(), Tool: "sh"}, domain.GoalBuildService, idleScope(ctrl))
			assert.True(t, outcome.IsOK())
		}()
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, lines, 6)
	for i := 0; i < len(lines); i += 2 {
		assert.Equal(t, []string{"begin", "end"}, lines[i:i+2], "executions must not interleave")
	}
}
