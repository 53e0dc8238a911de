// Package shell runs build tool goals in a pseudo terminal.
package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/creack/pty"
	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/zerr"
)

// DefaultPollInterval is how often a running goal checks for cancellation.
const DefaultPollInterval = 100 * time.Millisecond

var _ ports.GoalExecutor = (*Executor)(nil)

// Executor implements ports.GoalExecutor by running the configured tool command.
type Executor struct {
	tools        map[string]*domain.Tool
	logger       ports.Logger
	pollInterval time.Duration

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewExecutor creates a new Executor for the given tools.
func NewExecutor(tools map[string]*domain.Tool, logger ports.Logger) *Executor {
	return &Executor{
		tools:        tools,
		logger:       logger,
		pollInterval: DefaultPollInterval,
		locks:        make(map[string]*sync.Mutex),
	}
}

// SetPollInterval changes how often a running goal checks for cancellation.
func (e *Executor) SetPollInterval(d time.Duration) {
	e.pollInterval = d
}

// ExecuteGoal runs the goal of the module's tool in the module directory.
// Goals of the same tool run one at a time.
func (e *Executor) ExecuteGoal(ctx context.Context, module *domain.Project, goal string, scope ports.Progress) domain.Outcome {
	tool, ok := e.tools[module.Tool]
	if !ok {
		err := zerr.With(zerr.Wrap(domain.ErrToolNotFound, "execute goal"), "tool", module.Tool)
		return domain.Failed("no build tool configured for "+module.Name, err)
	}

	args, ok := tool.Args(goal)
	if !ok {
		err := zerr.With(zerr.With(zerr.Wrap(domain.ErrGoalNotConfigured, "execute goal"), "tool", tool.Name), "goal", goal)
		return domain.Failed(tool.Name+" cannot run "+goal, err)
	}

	lock := e.lockFor(tool.Name)
	lock.Lock()
	defer lock.Unlock()

	if scope.Canceled() || ctx.Err() != nil {
		return domain.Failed("build cancelled before "+goal, context.Canceled)
	}

	tail := &tailWriter{}
	out := &logWriter{logger: e.logger}
	proc, err := start(module.Dir, args, resolveEnvironment(os.Environ(), tool.Env), io.MultiWriter(out, tail))
	if err != nil {
		return domain.Failed("could not start "+tool.Name, zerr.With(err, "module", module.Name))
	}

	stop := make(chan struct{})
	interrupted := make(chan struct{})
	go e.watch(ctx, scope, proc, stop, interrupted)

	err = proc.Wait()
	close(stop)

	select {
	case <-interrupted:
		return domain.Failed(goal+" cancelled", context.Canceled)
	default:
	}

	if err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		msg := tail.Last()
		if msg == "" {
			msg = goal + " failed for " + module.Name
		}
		failure := zerr.With(zerr.With(zerr.Wrap(domain.ErrGoalFailed, goal), "module", module.Name), "exit_code", exitCode)
		return domain.Failed(msg, failure)
	}

	return domain.OK()
}

// watch interrupts the process once when the scope or ctx is cancelled.
func (e *Executor) watch(ctx context.Context, scope ports.Progress, proc *ptyProcess, stop, interrupted chan struct{}) {
	ticker := time.NewTicker(e.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ctx.Done():
		case <-ticker.C:
			if !scope.Canceled() {
				continue
			}
		}
		close(interrupted)
		_ = proc.Interrupt()
		return
	}
}

func (e *Executor) lockFor(tool string) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()

	l, ok := e.locks[tool]
	if !ok {
		l = &sync.Mutex{}
		e.locks[tool] = l
	}
	return l
}

type ptyProcess struct {
	cmd    *exec.Cmd
	ioDone <-chan struct{}
}

func (p *ptyProcess) Wait() error {
	err := p.cmd.Wait()
	<-p.ioDone
	return err
}

// Interrupt sends SIGINT to the process group started in the pty session.
func (p *ptyProcess) Interrupt() error {
	if err := syscall.Kill(-p.cmd.Process.Pid, syscall.SIGINT); err == nil {
		return nil
	}
	return p.cmd.Process.Signal(os.Interrupt)
}

func start(dir string, args, env []string, out io.Writer) (*ptyProcess, error) {
	name := args[0]

	executable := name
	if !filepath.IsAbs(name) {
		if lp, err := lookPath(name, env); err == nil {
			executable = lp
		}
	}

	cmd := exec.Command(executable, args[1:]...) //nolint:gosec // user configured command
	cmd.Args[0] = name
	cmd.Dir = dir
	cmd.Env = env

	ptmx, err := pty.Start(cmd)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to start pty"), "command", name)
	}

	ioDone := make(chan struct{})
	go func() {
		defer close(ioDone)
		defer func() { _ = ptmx.Close() }()
		defer func() {
			if c, ok := out.(io.Closer); ok {
				_ = c.Close()
			}
		}()
		// PTYs merge stdout and stderr.
		_, _ = io.Copy(out, ptmx)
	}()

	return &ptyProcess{cmd: cmd, ioDone: ioDone}, nil
}

// logWriter forwards complete output lines to the logger.
type logWriter struct {
	logger ports.Logger
	buf    []byte
}

func (w *logWriter) Write(p []byte) (n int, err error) {
	w.buf = append(w.buf, p...)

	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.logLine(w.buf[:i])
		w.buf = w.buf[i+1:]
	}

	return len(p), nil
}

func (w *logWriter) Close() error {
	if len(w.buf) > 0 {
		w.logLine(w.buf)
		w.buf = nil
	}
	return nil
}

func (w *logWriter) logLine(line []byte) {
	// PTYs may introduce \r.
	w.logger.Info(strings.TrimSuffix(string(line), "\r"))
}

// tailWriter remembers the last non-blank output line.
type tailWriter struct {
	buf  []byte
	last string
}

func (w *tailWriter) Write(p []byte) (int, error) {
	w.buf = append(w.buf, p...)
	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.remember(w.buf[:i])
		w.buf = w.buf[i+1:]
	}
	return len(p), nil
}

func (w *tailWriter) remember(line []byte) {
	if s := strings.TrimSpace(string(line)); s != "" {
		w.last = s
	}
}

// Last returns the last non-blank line, including an unterminated one.
func (w *tailWriter) Last() string {
	if len(w.buf) > 0 {
		w.remember(w.buf)
		w.buf = nil
	}
	return w.last
}

// allowListedEnvVars are the system environment variables inherited by goals.
var allowListedEnvVars = map[string]struct{}{
	"HOME":      {},
	"TERM":      {},
	"USER":      {},
	"PATH":      {},
	"JAVA_HOME": {},
}

// resolveEnvironment merges the allow-listed system environment with the tool's overrides.
func resolveEnvironment(sysEnv []string, toolEnv map[string]string) []string {
	envMap := make(map[string]string)
	for _, entry := range sysEnv {
		k, v, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		if _, allowed := allowListedEnvVars[k]; allowed {
			envMap[k] = v
		}
	}

	for k, v := range toolEnv {
		envMap[k] = v
	}

	result := make([]string, 0, len(envMap))
	for k, v := range envMap {
		result = append(result, k+"="+v)
	}
	return result
}

// lookPath searches for an executable in the directories named by the PATH environment variable.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if strings.HasPrefix(e, "PATH=") {
			path = strings.TrimPrefix(e, "PATH=")
			break
		}
	}

	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		path := filepath.Join(dir, file)
		if err := findExecutable(path); err == nil {
			return path, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
