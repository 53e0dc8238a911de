// Package state persists the live registry of a workspace.
package state

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

const stateVersion = 1

var _ ports.StateStore = (*Store)(nil)

type stateFile struct {
	Version  int         `yaml:"version"`
	Entities []entityDTO `yaml:"entities"`
}

type entityDTO struct {
	Kind       string            `yaml:"kind"`
	ID         string            `yaml:"id"`
	Type       string            `yaml:"type,omitempty"`
	Name       string            `yaml:"name,omitempty"`
	Location   string            `yaml:"location,omitempty"`
	Attributes map[string]string `yaml:"attributes,omitempty"`
}

// Store implements ports.StateStore on a YAML file.
type Store struct {
	path string
}

// NewStore creates a Store for the state file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the state file path.
func (s *Store) Path() string {
	return s.path
}

// Load returns the persisted entities. A missing file yields none.
// Entities are returned as stored; validation is up to the caller.
func (s *Store) Load() ([]*domain.Entity, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStateReadFailed.Error()), "path", s.path)
	}

	var file stateFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStateReadFailed.Error()), "path", s.path)
	}

	entities := make([]*domain.Entity, 0, len(file.Entities))
	for _, dto := range file.Entities {
		kind, err := domain.ParseEntityKind(dto.Kind)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrStateReadFailed.Error()), "path", s.path)
		}
		entities = append(entities, &domain.Entity{
			ID:         dto.ID,
			Kind:       kind,
			TypeID:     dto.Type,
			Name:       dto.Name,
			Location:   dto.Location,
			Attributes: dto.Attributes,
		})
	}
	return entities, nil
}

// Save replaces the persisted entities.
func (s *Store) Save(entities []*domain.Entity) error {
	file := stateFile{Version: stateVersion, Entities: make([]entityDTO, 0, len(entities))}
	for _, e := range entities {
		file.Entities = append(file.Entities, entityDTO{
			Kind:       string(e.Kind),
			ID:         e.ID,
			Type:       e.TypeID,
			Name:       e.Name,
			Location:   e.Location,
			Attributes: e.Attributes,
		})
	}

	data, err := yaml.Marshal(&file)
	if err != nil {
		return zerr.Wrap(err, domain.ErrStateWriteFailed.Error())
	}

	if err := os.MkdirAll(filepath.Dir(s.path), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStateWriteFailed.Error()), "path", s.path)
	}
	if err := os.WriteFile(s.path, data, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStateWriteFailed.Error()), "path", s.path)
	}
	return nil
}
