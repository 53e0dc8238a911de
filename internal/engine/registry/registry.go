// Package registry holds the live runtimes, servers and SDKs of a workspace.
package registry

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/zerr"
)

// EventType is the kind of mutation a listener is notified about.
type EventType string

const (
	// EventAdded is sent after an entity is added.
	EventAdded EventType = "added"
	// EventChanged is sent after an entity is updated.
	EventChanged EventType = "changed"
	// EventRemoved is sent after an entity is removed.
	EventRemoved EventType = "removed"
)

// Event describes a registry mutation. Entity is a copy.
type Event struct {
	Type   EventType
	Entity *domain.Entity
}

// Listener is notified synchronously after each mutation.
type Listener func(Event)

// Registry is the set of live entities, keyed by kind and id.
type Registry struct {
	store      ports.StateStore
	validators *Validators
	logger     ports.Logger

	mu        sync.RWMutex
	entities  map[domain.EntityKind]map[string]*domain.Entity
	listeners map[int]Listener
	nextID    int
}

// New creates an empty registry. Call Open to load persisted state.
func New(store ports.StateStore, validators *Validators, logger ports.Logger) *Registry {
	if validators == nil {
		validators = NewValidators()
	}
	return &Registry{
		store:      store,
		validators: validators,
		logger:     logger,
		entities:   make(map[domain.EntityKind]map[string]*domain.Entity),
		listeners:  make(map[int]Listener),
	}
}

// Open loads the persisted entities. Entities rejected by a validator are
// dropped and logged. Listeners are not notified.
func (r *Registry) Open(ctx context.Context) error {
	loaded, err := r.store.Load()
	if err != nil {
		return err
	}

	byKind := make(map[domain.EntityKind][]*domain.Entity)
	for _, e := range loaded {
		byKind[e.Kind] = append(byKind[e.Kind], e)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.entities = make(map[domain.EntityKind]map[string]*domain.Entity)
	// Servers are validated against the runtimes accepted before them.
	for _, kind := range domain.ImportOrder {
		for _, e := range byKind[kind] {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := e.Validate(); err != nil {
				r.logger.Error(zerr.Wrap(err, "dropping persisted entity"))
				continue
			}
			if err := r.validators.Check(e, r.lookupLocked); err != nil {
				r.logger.Warn(fmt.Sprintf("dropping %s %s: %s", e.Kind, e.ID, err.Error()))
				continue
			}
			r.putLocked(e.Clone())
		}
	}
	return nil
}

// Close persists the live entities.
func (r *Registry) Close() error {
	return r.store.Save(r.All())
}

// Add makes a new entity live.
func (r *Registry) Add(e *domain.Entity) error {
	if err := e.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	if _, ok := r.lookupLocked(e.Kind, e.ID); ok {
		r.mu.Unlock()
		return zerr.With(zerr.With(zerr.Wrap(domain.ErrEntityExists, string(e.Kind)), "id", e.ID), "kind", string(e.Kind))
	}
	stored := e.Clone()
	r.putLocked(stored)
	r.mu.Unlock()

	r.notify(Event{Type: EventAdded, Entity: stored.Clone()})
	return nil
}

// Update replaces a live entity with the same kind and id.
func (r *Registry) Update(e *domain.Entity) error {
	if err := e.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	if _, ok := r.lookupLocked(e.Kind, e.ID); !ok {
		r.mu.Unlock()
		return notFound(e.Kind, e.ID)
	}
	stored := e.Clone()
	r.putLocked(stored)
	r.mu.Unlock()

	r.notify(Event{Type: EventChanged, Entity: stored.Clone()})
	return nil
}

// Remove deletes a live entity.
func (r *Registry) Remove(kind domain.EntityKind, id string) error {
	r.mu.Lock()
	e, ok := r.lookupLocked(kind, id)
	if !ok {
		r.mu.Unlock()
		return notFound(kind, id)
	}
	delete(r.entities[kind], id)
	r.mu.Unlock()

	r.notify(Event{Type: EventRemoved, Entity: e})
	return nil
}

// Get returns a copy of a live entity.
func (r *Registry) Get(kind domain.EntityKind, id string) (*domain.Entity, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.lookupLocked(kind, id)
	if !ok {
		return nil, false
	}
	return e.Clone(), true
}

// Has reports whether an entity is live.
func (r *Registry) Has(kind domain.EntityKind, id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.lookupLocked(kind, id)
	return ok
}

// List returns copies of the live entities of kind, sorted by id.
func (r *Registry) List(kind domain.EntityKind) []*domain.Entity {
	r.mu.RLock()
	defer r.mu.RUnlock()

	byID := r.entities[kind]
	out := make([]*domain.Entity, 0, len(byID))
	for _, id := range slices.Sorted(maps.Keys(byID)) {
		out = append(out, byID[id].Clone())
	}
	return out
}

// All returns every live entity in import order, each kind sorted by id.
func (r *Registry) All() []*domain.Entity {
	var out []*domain.Entity
	for _, kind := range domain.ImportOrder {
		out = append(out, r.List(kind)...)
	}
	return out
}

// Subscribe registers a listener and returns a function removing it.
func (r *Registry) Subscribe(l Listener) func() {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.nextID
	r.nextID++
	r.listeners[id] = l

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.listeners, id)
	}
}

func (r *Registry) notify(ev Event) {
	r.mu.RLock()
	ids := slices.Sorted(maps.Keys(r.listeners))
	listeners := make([]Listener, 0, len(ids))
	for _, id := range ids {
		listeners = append(listeners, r.listeners[id])
	}
	r.mu.RUnlock()

	for _, l := range listeners {
		l(ev)
	}
}

func (r *Registry) lookupLocked(kind domain.EntityKind, id string) (*domain.Entity, bool) {
	e, ok := r.entities[kind][id]
	return e, ok
}

func (r *Registry) putLocked(e *domain.Entity) {
	byID, ok := r.entities[e.Kind]
	if !ok {
		byID = make(map[string]*domain.Entity)
		r.entities[e.Kind] = byID
	}
	byID[e.ID] = e
}

func notFound(kind domain.EntityKind, id string) error {
	return zerr.With(zerr.With(zerr.Wrap(domain.ErrEntityNotFound, string(kind)), "id", id), "kind", string(kind))
}
