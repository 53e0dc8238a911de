package ports

import (
	"context"

	"go.trai.ch/forge/internal/core/domain"
)

// ProjectBuilder runs the generation goals of a project.
//
//go:generate mockgen -source=builder.go -destination=mocks/mock_builder.go -package=mocks
type ProjectBuilder interface {
	// BuildServiceFor generates the service layer of the first module with a service descriptor.
	BuildServiceFor(ctx context.Context, project *domain.Project, budget Progress) domain.Outcome
	// BuildWSDDFor generates the WSDD of the first module with a service descriptor.
	BuildWSDDFor(ctx context.Context, project *domain.Project, budget Progress) domain.Outcome
	// BuildLanguageFor builds the language resources of the project.
	BuildLanguageFor(ctx context.Context, project *domain.Project, budget Progress) domain.Outcome
}

// BuilderProvider selects the builder able to build a project.
type BuilderProvider interface {
	// BuilderFor returns the builder for the project, or domain.ErrBuilderNotFound.
	BuilderFor(project *domain.Project) (ProjectBuilder, error)
}
