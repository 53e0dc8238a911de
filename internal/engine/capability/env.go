package capability

import (
	"os"
	"path/filepath"

	"go.trai.ch/forge/internal/core/domain"
)

// ProjectEnv exposes a project to predicates as `project` plus a `has(path)`
// function reporting whether a project-relative path exists.
func ProjectEnv(p *domain.Project) Env {
	return Env{
		"project": map[string]any{
			"name":    p.Name,
			"dir":     p.Dir,
			"tool":    p.Tool,
			"modules": p.Modules,
			"plugin":  p.Plugin,
		},
		"has": func(path string) bool {
			_, err := os.Stat(filepath.Join(p.Dir, path))
			return err == nil
		},
	}
}

// EntityEnv exposes an entity to predicates as `entity` plus an `exists(path)` function.
func EntityEnv(e *domain.Entity) Env {
	return Env{
		"entity": map[string]any{
			"id":         e.ID,
			"kind":       string(e.Kind),
			"type":       e.TypeID,
			"name":       e.Name,
			"location":   e.Location,
			"attributes": e.Attributes,
		},
		"exists": func(path string) bool {
			if path == "" {
				return false
			}
			_, err := os.Stat(path)
			return err == nil
		},
	}
}
