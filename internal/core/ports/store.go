package ports

import "go.trai.ch/forge/internal/core/domain"

//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks

// SnapshotStore persists snapshots of entities, one file per kind.
type SnapshotStore interface {
	// Load reads the snapshot of kind. A missing file yields an empty snapshot.
	Load(kind domain.EntityKind) (*domain.Snapshot, error)
	// Save replaces the snapshot of its kind.
	Save(snapshot *domain.Snapshot) error
	// Exists reports whether a snapshot file exists for kind.
	Exists(kind domain.EntityKind) bool
	// HasSettings reports whether at least one snapshot holds a record.
	HasSettings() bool
}

// StateStore persists the live registry between processes.
type StateStore interface {
	// Load returns the persisted entities.
	Load() ([]*domain.Entity, error)
	// Save replaces the persisted entities.
	Save(entities []*domain.Entity) error
}

// Preferences is process-wide configuration state, namespaced per installation.
type Preferences interface {
	// Bool returns the value of a boolean preference, false when unset.
	Bool(key string) bool
	// SetBool sets a boolean preference.
	SetBool(key string, value bool)
	// Flush persists pending changes.
	Flush() error
}
