package orchestrator

import (
	"fmt"
	"maps"
	"slices"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/forge/internal/engine/capability"
	"go.trai.ch/zerr"
)

var _ ports.BuilderProvider = (*Provider)(nil)

// Provider selects a builder by the project's tool and the tool's `when` predicate.
type Provider struct {
	builders *capability.Table[ports.ProjectBuilder]
}

// NewProvider registers builder for every configured tool, in tool name order.
func NewProvider(tools map[string]*domain.Tool, builder ports.ProjectBuilder) (*Provider, error) {
	table := capability.NewTable[ports.ProjectBuilder]()

	for _, name := range slices.Sorted(maps.Keys(tools)) {
		when, err := capability.Compile(tools[name].When)
		if err != nil {
			return nil, zerr.With(err, "tool", name)
		}
		table.Register(capability.Entry[ports.ProjectBuilder]{
			ID:    name,
			Match: forTool(name, when),
			Value: builder,
		})
	}

	return &Provider{builders: table}, nil
}

func forTool(name string, when capability.Predicate) capability.Predicate {
	return func(env capability.Env) (bool, error) {
		project, _ := env["project"].(map[string]any)
		if project["tool"] != name {
			return false, nil
		}
		return when(env)
	}
}

// BuilderFor returns the builder registered for the project's tool.
func (p *Provider) BuilderFor(project *domain.Project) (ports.ProjectBuilder, error) {
	entry, ok, err := p.builders.Lookup(capability.ProjectEnv(project))
	if err != nil {
		return nil, zerr.With(err, "project", project.Name)
	}
	if !ok {
		return nil, zerr.With(
			zerr.Wrap(domain.ErrBuilderNotFound, fmt.Sprintf("no builder accepts tool %q", project.Tool)),
			"project", project.Name,
		)
	}
	return entry.Value, nil
}
