package ports

import (
	"context"

	"go.trai.ch/forge/internal/core/domain"
)

// Workspace exposes the project tree the builds operate on.
//
//go:generate mockgen -source=workspace.go -destination=mocks/mock_workspace.go -package=mocks
type Workspace interface {
	// Root returns the workspace root directory.
	Root() string
	// Projects returns every project in declaration order.
	Projects() []*domain.Project
	// ResolveProject returns the project with the given name.
	ResolveProject(name string) (*domain.Project, error)
	// ResolveProjectAt returns the project whose directory is dir.
	ResolveProjectAt(dir string) (*domain.Project, error)
	// ResolveModule returns the innermost project containing path.
	ResolveModule(path string) (*domain.Project, error)
	// ListSiblingModules returns the module names declared by the aggregator.
	ListSiblingModules(aggregator *domain.Project) []string
	// FindDescriptorFile looks up the descriptor of the given kind in the project.
	FindDescriptorFile(project *domain.Project, kind domain.DescriptorKind) (string, bool)
	// Refresh rescans the project tree to the given depth.
	Refresh(ctx context.Context, project *domain.Project, depth domain.Depth) (domain.RefreshResult, error)
	// Atomic runs fn while holding the single workspace write lock.
	// It returns ctx.Err() if ctx ends before the lock is acquired.
	Atomic(ctx context.Context, fn func(ctx context.Context) error) error
}
