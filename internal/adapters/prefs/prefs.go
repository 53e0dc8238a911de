// Package prefs stores boolean preferences in a YAML file.
package prefs

import (
	"errors"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.Preferences = (*Store)(nil)

// Store implements ports.Preferences. Changes are kept in memory until Flush.
type Store struct {
	path string

	mu     sync.Mutex
	values map[string]bool
	dirty  bool
}

// New returns an empty Store backed by path. Nothing is read.
func New(path string) *Store {
	return &Store{path: path, values: make(map[string]bool)}
}

// Open loads the preferences at path. A missing file yields no preferences.
func Open(path string) (*Store, error) {
	s := New(path)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return s, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrPrefsReadFailed.Error()), "path", path)
	}

	if err := yaml.Unmarshal(data, &s.values); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrPrefsReadFailed.Error()), "path", path)
	}
	if s.values == nil {
		s.values = make(map[string]bool)
	}
	return s, nil
}

// Bool returns the value of key, false when unset.
func (s *Store) Bool(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values[key]
}

// SetBool sets key to value.
func (s *Store) SetBool(key string, value bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if old, ok := s.values[key]; ok && old == value {
		return
	}
	s.values[key] = value
	s.dirty = true
}

// Flush writes pending changes.
func (s *Store) Flush() error {
	s.mu.Lock()
	if !s.dirty {
		s.mu.Unlock()
		return nil
	}
	values := maps.Clone(s.values)
	s.mu.Unlock()

	data, err := yaml.Marshal(values)
	if err != nil {
		return zerr.Wrap(err, domain.ErrPrefsWriteFailed.Error())
	}
	if err := os.MkdirAll(filepath.Dir(s.path), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrPrefsWriteFailed.Error()), "path", s.path)
	}
	if err := os.WriteFile(s.path, data, domain.PrivateFilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrPrefsWriteFailed.Error()), "path", s.path)
	}

	s.mu.Lock()
	s.dirty = false
	s.mu.Unlock()
	return nil
}
