// Package progress implements hierarchical work budgets.
package progress

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Progress = (*Scope)(nil)

// Allocation records units handed from a scope to a child.
type Allocation struct {
	Name  string
	Units int
}

// Scope is a budget of work units. Children share the root's cancellation flag.
type Scope struct {
	ctx       context.Context
	telemetry ports.Telemetry
	vertex    ports.Vertex

	name     string
	budget   int
	canceled *atomic.Bool

	mu          sync.Mutex
	used        int
	done        bool
	allocations []Allocation
}

// New creates a root scope. Telemetry may be nil.
func New(ctx context.Context, telemetry ports.Telemetry, name string, budget int) *Scope {
	return newScope(ctx, telemetry, name, budget, &atomic.Bool{})
}

func newScope(ctx context.Context, telemetry ports.Telemetry, name string, budget int, canceled *atomic.Bool) *Scope {
	s := &Scope{
		ctx:       ctx,
		telemetry: telemetry,
		name:      name,
		budget:    budget,
		canceled:  canceled,
	}
	if telemetry != nil {
		s.ctx, s.vertex = telemetry.Record(ctx, name)
	}
	return s
}

// Name returns the scope name.
func (s *Scope) Name() string {
	return s.name
}

// Budget returns the total units of the scope.
func (s *Scope) Budget() int {
	return s.budget
}

// Child allocates units of the remaining budget to a new child scope.
func (s *Scope) Child(name string, units int) (ports.Progress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.done {
		return nil, zerr.With(zerr.Wrap(domain.ErrScopeDone, s.name), "scope", s.name)
	}
	if units < 0 || units > s.budget-s.used {
		err := zerr.With(zerr.Wrap(domain.ErrBudgetExceeded, name), "units", units)
		return nil, zerr.With(err, "remaining", s.budget-s.used)
	}

	s.used += units
	s.allocations = append(s.allocations, Allocation{Name: name, Units: units})
	s.report()

	return newScope(s.ctx, s.telemetry, name, units, s.canceled), nil
}

// Worked advances the scope by units.
func (s *Scope) Worked(units int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.done {
		return zerr.With(zerr.Wrap(domain.ErrScopeDone, s.name), "scope", s.name)
	}
	if units < 0 || units > s.budget-s.used {
		err := zerr.With(zerr.Wrap(domain.ErrBudgetExceeded, s.name), "units", units)
		return zerr.With(err, "remaining", s.budget-s.used)
	}

	s.used += units
	s.report()
	return nil
}

// Remaining returns the units not yet allocated or worked.
func (s *Scope) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.budget - s.used
}

// Done completes the scope. A second call returns domain.ErrScopeDone.
func (s *Scope) Done(err error) error {
	s.mu.Lock()
	if s.done {
		s.mu.Unlock()
		return zerr.With(zerr.Wrap(domain.ErrScopeDone, s.name), "scope", s.name)
	}
	s.done = true
	s.used = s.budget
	s.report()
	s.mu.Unlock()

	if s.vertex != nil {
		s.vertex.Complete(err)
	}
	return nil
}

// IsDone reports whether Done was called.
func (s *Scope) IsDone() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}

// Cancel requests cancellation of the whole scope tree.
func (s *Scope) Cancel() {
	s.canceled.Store(true)
}

// Canceled reports whether cancellation was requested anywhere in the tree.
func (s *Scope) Canceled() bool {
	return s.canceled.Load()
}

// Allocations returns the child allocations made so far.
func (s *Scope) Allocations() []Allocation {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Allocation, len(s.allocations))
	copy(out, s.allocations)
	return out
}

// report writes the current position to the vertex. Callers hold s.mu.
func (s *Scope) report() {
	if s.vertex == nil {
		return
	}
	_, _ = fmt.Fprintf(s.vertex.Stdout(), "[%s] %d/%d\n", s.name, s.used, s.budget)
}
