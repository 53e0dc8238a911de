// Package workspace implements the project tree the builds operate on.
package workspace

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Workspace = (*Workspace)(nil)

// Workspace exposes the projects of a loaded configuration.
type Workspace struct {
	cfg    *domain.Workspace
	walker *Walker
	index  *IndexStore
	lock   chan struct{}
}

// New creates a Workspace over the loaded configuration.
func New(cfg *domain.Workspace) *Workspace {
	return &Workspace{
		cfg:    cfg,
		walker: NewWalker(),
		index:  NewIndexStore(cfg.Root),
		lock:   make(chan struct{}, 1),
	}
}

// Root returns the workspace root directory.
func (w *Workspace) Root() string {
	return w.cfg.Root
}

// Projects returns every project in declaration order.
func (w *Workspace) Projects() []*domain.Project {
	return w.cfg.Projects
}

// ResolveProject returns the project with the given name.
func (w *Workspace) ResolveProject(name string) (*domain.Project, error) {
	if p, ok := w.cfg.Project(name); ok {
		return p, nil
	}
	return nil, zerr.With(zerr.Wrap(domain.ErrProjectNotFound, "resolve project"), "project", name)
}

// ResolveProjectAt returns the project whose directory is dir.
func (w *Workspace) ResolveProjectAt(dir string) (*domain.Project, error) {
	dir = w.abs(dir)
	for _, p := range w.cfg.Projects {
		if filepath.Clean(p.Dir) == dir {
			return p, nil
		}
	}
	return nil, zerr.With(zerr.Wrap(domain.ErrProjectNotFound, "resolve project"), "dir", dir)
}

// ResolveModule returns the innermost project containing path.
func (w *Workspace) ResolveModule(path string) (*domain.Project, error) {
	path = w.abs(path)

	var best *domain.Project
	for _, p := range w.cfg.Projects {
		if !p.Contains(path) {
			continue
		}
		if best == nil || len(p.Dir) > len(best.Dir) {
			best = p
		}
	}
	if best == nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrModuleNotFound, "resolve module"), "path", path)
	}
	return best, nil
}

// ListSiblingModules returns the module names declared by the aggregator.
func (w *Workspace) ListSiblingModules(aggregator *domain.Project) []string {
	if aggregator == nil {
		return nil
	}
	return aggregator.Modules
}

// FindDescriptorFile looks up the descriptor of the given kind in the project.
func (w *Workspace) FindDescriptorFile(project *domain.Project, kind domain.DescriptorKind) (string, bool) {
	for _, dir := range kind.SearchDirs() {
		path := filepath.Join(project.Dir, dir, kind.FileName())
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path, true
		}
	}
	return "", false
}

// Refresh rescans the project tree to the given depth and updates its index.
// Index entries outside the scanned depth are kept untouched.
func (w *Workspace) Refresh(ctx context.Context, project *domain.Project, depth domain.Depth) (domain.RefreshResult, error) {
	var result domain.RefreshResult

	if _, err := os.Stat(project.Dir); err != nil {
		return result, zerr.With(zerr.Wrap(err, domain.ErrRefreshFailed.Error()), "project", project.Name)
	}

	prev, err := w.index.Get(project.Name)
	if err != nil {
		return result, err
	}

	next := make(Index, len(prev))
	for rel, hash := range prev {
		if !inScope(rel, depth) {
			next[rel] = hash
		}
	}

	for rel := range w.scan(project, depth) {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		hash, err := ComputeFileHash(filepath.Join(project.Dir, rel))
		if err != nil {
			return result, zerr.With(zerr.Wrap(err, domain.ErrRefreshFailed.Error()), "project", project.Name)
		}
		next[rel] = hash

		old, ok := prev[rel]
		switch {
		case !ok:
			result.Added++
		case old != hash:
			result.Changed++
		}
	}

	for rel := range prev {
		if _, ok := next[rel]; !ok {
			result.Removed++
		}
	}

	if result.Total() == 0 && len(prev) > 0 {
		return result, nil
	}
	return result, w.index.Put(project.Name, next)
}

// Atomic runs fn while holding the workspace write lock.
func (w *Workspace) Atomic(ctx context.Context, fn func(ctx context.Context) error) error {
	select {
	case w.lock <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { <-w.lock }()

	return fn(ctx)
}

func (w *Workspace) scan(project *domain.Project, depth domain.Depth) func(func(string) bool) {
	switch depth {
	case domain.DepthZero:
		return func(yield func(string) bool) {
			if info, err := os.Stat(project.ConfigPath()); err == nil && info.Mode().IsRegular() {
				yield(domain.ProjectFileName)
			}
		}
	case domain.DepthOne:
		return w.walker.WalkFiles(project.Dir, 0)
	default:
		return w.walker.WalkFiles(project.Dir, -1)
	}
}

// inScope reports whether an index entry is covered by a refresh of the given depth.
func inScope(rel string, depth domain.Depth) bool {
	switch depth {
	case domain.DepthZero:
		return rel == domain.ProjectFileName
	case domain.DepthOne:
		return !strings.ContainsRune(rel, filepath.Separator)
	default:
		return true
	}
}

func (w *Workspace) abs(path string) string {
	if !filepath.IsAbs(path) {
		path = filepath.Join(w.cfg.Root, path)
	}
	return filepath.Clean(path)
}
