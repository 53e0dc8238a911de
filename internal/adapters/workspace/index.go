package workspace

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/zerr"
)

// Index maps project-relative file paths to content hashes.
type Index map[string]string

// IndexStore persists one Index per project under the workspace root.
type IndexStore struct {
	dir string
}

// NewIndexStore creates an IndexStore for the workspace at root.
func NewIndexStore(root string) *IndexStore {
	return &IndexStore{dir: filepath.Join(root, domain.DefaultIndexPath())}
}

// Get returns the stored index of project. A missing index is empty.
func (s *IndexStore) Get(project string) (Index, error) {
	filename := s.filename(project)
	//nolint:gosec // Path is built from the workspace root and a validated project name
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Index{}, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrIndexReadFailed.Error()), "path", filename)
	}

	var idx Index
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrIndexReadFailed.Error()), "path", filename)
	}
	if idx == nil {
		idx = Index{}
	}
	return idx, nil
}

// Put replaces the stored index of project.
func (s *IndexStore) Put(project string, idx Index) error {
	data, err := json.MarshalIndent(idx, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrIndexWriteFailed.Error())
	}

	if err := os.MkdirAll(s.dir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrIndexWriteFailed.Error()), "dir", s.dir)
	}

	filename := s.filename(project)
	if err := os.WriteFile(filename, data, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrIndexWriteFailed.Error()), "path", filename)
	}
	return nil
}

func (s *IndexStore) filename(project string) string {
	return filepath.Join(s.dir, project+".json")
}
