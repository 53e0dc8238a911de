// Package capability implements lookup tables of registered handlers,
// selected by predicate in registration order.
package capability

import (
	"sync"

	exprlang "github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/zerr"
)

// Env is the set of variables a predicate is evaluated against.
type Env map[string]any

// Predicate reports whether an entry applies to env.
type Predicate func(env Env) (bool, error)

// Always matches every env.
func Always() Predicate {
	return func(Env) (bool, error) { return true, nil }
}

// Compile turns an expr-lang expression into a Predicate.
// An empty expression matches everything.
func Compile(expression string) (Predicate, error) {
	if expression == "" {
		return Always(), nil
	}

	program, err := exprlang.Compile(expression, exprlang.AsBool())
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrInvalidPredicate, err.Error()), "expression", expression)
	}
	return fromProgram(expression, program), nil
}

func fromProgram(expression string, program *vm.Program) Predicate {
	return func(env Env) (bool, error) {
		out, err := exprlang.Run(program, map[string]any(env))
		if err != nil {
			return false, zerr.With(zerr.Wrap(err, "predicate evaluation failed"), "expression", expression)
		}
		matched, _ := out.(bool)
		return matched, nil
	}
}

// Entry is a registered handler.
type Entry[T any] struct {
	ID    string
	Match Predicate
	Value T
}

// Table is a process-wide list of handlers for one capability.
type Table[T any] struct {
	mu      sync.RWMutex
	entries []Entry[T]
}

// NewTable creates a table holding the given entries in order.
func NewTable[T any](entries ...Entry[T]) *Table[T] {
	t := &Table[T]{}
	for _, e := range entries {
		t.Register(e)
	}
	return t
}

// Register appends an entry. A nil Match matches everything.
func (t *Table[T]) Register(e Entry[T]) {
	if e.Match == nil {
		e.Match = Always()
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = append(t.entries, e)
}

// Len returns the number of entries.
func (t *Table[T]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}

// Lookup returns the first entry matching env.
func (t *Table[T]) Lookup(env Env) (Entry[T], bool, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for _, e := range t.entries {
		ok, err := e.Match(env)
		if err != nil {
			return Entry[T]{}, false, zerr.With(err, "entry", e.ID)
		}
		if ok {
			return e, true, nil
		}
	}
	return Entry[T]{}, false, nil
}

// All returns every entry matching env, in registration order.
func (t *Table[T]) All(env Env) ([]Entry[T], error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var matched []Entry[T]
	for _, e := range t.entries {
		ok, err := e.Match(env)
		if err != nil {
			return nil, zerr.With(err, "entry", e.ID)
		}
		if ok {
			matched = append(matched, e)
		}
	}
	return matched, nil
}
