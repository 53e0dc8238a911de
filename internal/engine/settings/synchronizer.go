// Package settings keeps the live registry in sync with the global snapshot files.
package settings

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/forge/internal/engine/registry"
	"go.trai.ch/zerr"
)

// CheckedPreference records that the user has been asked to import global settings.
const CheckedPreference = "settings.global-settings-checked"

const importQuestion = "Runtimes, servers or SDKs from another workspace were found. Import them into this workspace?"

// Synchronizer exports live entities to snapshots and imports snapshots back.
type Synchronizer struct {
	registry *registry.Registry
	store    ports.SnapshotStore
	prefs    ports.Preferences
	prompter ports.Prompter
	logger   ports.Logger
	vendor   string

	locks map[domain.EntityKind]*sync.Mutex
}

// New creates a Synchronizer for entities of the given vendor.
func New(
	reg *registry.Registry,
	store ports.SnapshotStore,
	prefs ports.Preferences,
	prompter ports.Prompter,
	logger ports.Logger,
	vendor string,
) *Synchronizer {
	if vendor == "" {
		vendor = domain.DefaultVendor
	}
	locks := make(map[domain.EntityKind]*sync.Mutex, len(domain.ImportOrder))
	for _, kind := range domain.ImportOrder {
		locks[kind] = &sync.Mutex{}
	}
	return &Synchronizer{
		registry: reg,
		store:    store,
		prefs:    prefs,
		prompter: prompter,
		logger:   logger,
		vendor:   vendor,
		locks:    locks,
	}
}

// Attach exports the affected kind after every registry mutation of a vendor entity.
// It returns a function that detaches the synchronizer.
func (s *Synchronizer) Attach(ctx context.Context) func() {
	return s.registry.Subscribe(func(ev registry.Event) {
		if !ev.Entity.MatchesVendor(s.vendor) {
			return
		}
		if err := s.ExportSnapshot(ctx, ev.Entity.Kind); err != nil {
			s.logger.Error(zerr.Wrap(err, "settings export failed"))
		}
	})
}

// ExportSnapshot merges the live vendor entities of kind into the snapshot file.
// Live entities win. A record that is not live survives only when it has no
// location or its location still exists.
func (s *Synchronizer) ExportSnapshot(ctx context.Context, kind domain.EntityKind) error {
	lock, ok := s.locks[kind]
	if !ok {
		return zerr.With(zerr.Wrap(domain.ErrInvalidEntityKind, "export"), "kind", string(kind))
	}
	lock.Lock()
	defer lock.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	existed := s.store.Exists(kind)
	existing := s.load(kind)

	live := make(map[string]*domain.Entity)
	for _, e := range s.registry.List(kind) {
		if e.MatchesVendor(s.vendor) {
			live[e.ID] = e
		}
	}

	merged := &domain.Snapshot{Kind: kind}
	for _, rec := range existing.Records {
		if _, isLive := live[rec.ID()]; isLive {
			continue
		}
		if loc := rec.Location(); loc != "" && !pathExists(loc) {
			continue
		}
		merged.Records = append(merged.Records, rec)
	}
	for _, e := range live {
		merged.Records = append(merged.Records, e.Record())
	}
	merged.Normalize()

	if merged.Len() == 0 && !existed {
		return nil
	}
	return s.store.Save(merged)
}

// ImportSnapshot adds every vendor record of the kind's snapshot whose id is
// not yet live. Records of other vendors are skipped. Records that fail to
// decode or to be added are logged and skipped.
// It returns the number of entities added.
func (s *Synchronizer) ImportSnapshot(ctx context.Context, kind domain.EntityKind) (int, error) {
	snapshot := s.load(kind)

	count := 0
	for _, rec := range snapshot.Records {
		if err := ctx.Err(); err != nil {
			return count, err
		}
		if s.registry.Has(kind, rec.ID()) {
			continue
		}
		e, err := domain.DecodeEntity(kind, rec)
		if err != nil {
			s.logger.Error(zerr.With(err, "kind", string(kind)))
			continue
		}
		if !e.MatchesVendor(s.vendor) {
			continue
		}
		if err := s.registry.Add(e); err != nil {
			s.logger.Error(zerr.Wrap(err, "import skipped"))
			continue
		}
		count++
	}

	if count > 0 {
		s.logger.Info(fmt.Sprintf("imported %d %s", count, kind.Plural()))
	}
	return count, nil
}

// ImportAll imports every kind in dependency order and returns the total count.
func (s *Synchronizer) ImportAll(ctx context.Context) (int, error) {
	total := 0
	for _, kind := range domain.ImportOrder {
		n, err := s.ImportSnapshot(ctx, kind)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// ExportAll exports every kind.
func (s *Synchronizer) ExportAll(ctx context.Context) error {
	for _, kind := range domain.ImportOrder {
		if err := s.ExportSnapshot(ctx, kind); err != nil {
			return err
		}
	}
	return nil
}

// MaybePromptImport asks once per installation whether global settings
// should be imported. It reports whether an import ran.
func (s *Synchronizer) MaybePromptImport(ctx context.Context) (bool, error) {
	if s.prefs.Bool(CheckedPreference) {
		return false, nil
	}
	if !s.store.HasSettings() {
		return false, nil
	}

	accepted, err := s.prompter.Confirm(ctx, importQuestion)
	if err != nil {
		if errors.Is(err, domain.ErrPromptUnavailable) {
			s.logger.Warn("global settings found but nobody to ask, run 'forge settings import' to import them")
			return false, nil
		}
		return false, err
	}

	s.prefs.SetBool(CheckedPreference, true)
	if err := s.prefs.Flush(); err != nil {
		return false, err
	}

	if !accepted {
		return false, nil
	}
	if _, err := s.ImportAll(ctx); err != nil {
		return true, err
	}
	return true, nil
}

// load reads a snapshot. Read failures are logged and treated as empty.
func (s *Synchronizer) load(kind domain.EntityKind) *domain.Snapshot {
	snapshot, err := s.store.Load(kind)
	if err != nil {
		s.logger.Warn(fmt.Sprintf("ignoring %s snapshot: %s", kind.Plural(), err.Error()))
		return &domain.Snapshot{Kind: kind}
	}
	return snapshot
}

func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
