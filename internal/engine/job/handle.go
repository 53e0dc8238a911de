package job

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
)

// Handle tracks a scheduled build job.
type Handle struct {
	ID      uuid.UUID
	Kind    domain.DescriptorKind
	Project *domain.Project

	cancel    context.CancelFunc
	cancelled atomic.Bool
	done      chan struct{}

	mu      sync.Mutex
	state   domain.JobState
	outcome domain.Outcome
	scope   ports.Progress
}

func newHandle(project *domain.Project, kind domain.DescriptorKind, cancel context.CancelFunc) *Handle {
	return &Handle{
		ID:      uuid.New(),
		Kind:    kind,
		Project: project,
		cancel:  cancel,
		done:    make(chan struct{}),
		state:   domain.JobWaiting,
	}
}

// Name describes the job for logs.
func (h *Handle) Name() string {
	if h.Project == nil {
		return "build " + string(h.Kind)
	}
	return "build " + string(h.Kind) + " " + h.Project.Name
}

// State returns the current state.
func (h *Handle) State() domain.JobState {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// Outcome returns the final outcome. It is meaningful once the job is terminal.
func (h *Handle) Outcome() domain.Outcome {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.outcome
}

// Done is closed when the job reaches a terminal state.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Wait blocks until the job finishes or ctx ends.
func (h *Handle) Wait(ctx context.Context) (domain.Outcome, error) {
	select {
	case <-h.done:
		return h.Outcome(), nil
	case <-ctx.Done():
		return domain.Outcome{}, ctx.Err()
	}
}

// Cancel requests cancellation. A waiting job never starts; a running job
// observes the request at its next check.
func (h *Handle) Cancel() {
	h.cancelled.Store(true)

	h.mu.Lock()
	scope := h.scope
	h.mu.Unlock()

	if scope != nil {
		scope.Cancel()
	}
	h.cancel()
}

func (h *Handle) start(scope ports.Progress) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.cancelled.Load() {
		return false
	}
	h.scope = scope
	h.state = domain.JobRunning
	return true
}

// finish records the terminal state once.
func (h *Handle) finish(state domain.JobState, outcome domain.Outcome) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.state.IsTerminal() {
		return false
	}
	h.state = state
	h.outcome = outcome
	return true
}
