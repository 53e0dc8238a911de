package domain

import (
	"path/filepath"
	"strings"
)

// PluginAPIBaseDir is the plugin configuration key naming the sibling API project directory.
const PluginAPIBaseDir = "apiBaseDir"

// Project is a build unit declared by a forge.yaml file.
type Project struct {
	// Name is the unique project name within the workspace.
	Name string
	// Dir is the absolute project directory.
	Dir string
	// Tool is the alias of the build tool that runs goals for this project.
	Tool string
	// Modules lists the names of child projects in declared order.
	Modules []string
	// Plugin holds the build tool plugin configuration.
	Plugin map[string]string
	// Parent is the aggregator listing this project as a module, or nil.
	Parent *Project
}

// Aggregator returns the top-level aggregator of the project, or the project itself.
func (p *Project) Aggregator() *Project {
	if p.Parent == nil {
		return p
	}
	return p.Parent
}

// Contains reports whether path lies inside the project directory.
func (p *Project) Contains(path string) bool {
	rel, err := filepath.Rel(p.Dir, path)
	if err != nil {
		return false
	}
	return rel == "." || !strings.HasPrefix(rel, "..")
}

// ConfigPath returns the path of the project's forge.yaml.
func (p *Project) ConfigPath() string {
	return filepath.Join(p.Dir, ProjectFileName)
}

// DescriptorKind identifies a generatable artifact.
type DescriptorKind string

const (
	// DescriptorService marks a module with a service layer to generate.
	DescriptorService DescriptorKind = "service"
	// DescriptorWSDD marks a module with web service deployment descriptors to generate.
	DescriptorWSDD DescriptorKind = "wsdd"
	// DescriptorLanguage marks a module with language resources to build.
	DescriptorLanguage DescriptorKind = "language"
)

// ParseDescriptorKind converts a string to a DescriptorKind.
func ParseDescriptorKind(s string) (DescriptorKind, error) {
	switch strings.ToLower(s) {
	case "service":
		return DescriptorService, nil
	case "wsdd":
		return DescriptorWSDD, nil
	case "lang", "language":
		return DescriptorLanguage, nil
	default:
		return "", ErrInvalidDescriptorKind
	}
}

// FileName returns the descriptor file name for the kind.
// Service and WSDD generation share service.xml.
func (k DescriptorKind) FileName() string {
	if k == DescriptorLanguage {
		return "Language.properties"
	}
	return "service.xml"
}

// SearchDirs returns the project-relative directories searched for the descriptor, in order.
func (k DescriptorKind) SearchDirs() []string {
	if k == DescriptorLanguage {
		return []string{
			filepath.Join("src", "main", "resources", "content"),
			filepath.Join("docroot", "WEB-INF", "src", "content"),
		}
	}
	return []string{
		filepath.Join("docroot", "WEB-INF"),
		filepath.Join("src", "main", "webapp", "WEB-INF"),
		".",
	}
}

// Goal returns the build goal generating the kind's artifacts.
func (k DescriptorKind) Goal() string {
	switch k {
	case DescriptorWSDD:
		return GoalBuildWSDD
	case DescriptorLanguage:
		return GoalBuildLang
	default:
		return GoalBuildService
	}
}

// Depth controls how far a refresh descends into a project tree.
type Depth int

const (
	// DepthZero refreshes the project directory entry only.
	DepthZero Depth = iota
	// DepthOne refreshes the direct children of the project directory.
	DepthOne
	// DepthInfinite refreshes the whole tree.
	DepthInfinite
)

// RefreshResult summarises the changes observed by a refresh.
type RefreshResult struct {
	Added   int
	Changed int
	Removed int
}

// Total returns the number of observed changes.
func (r RefreshResult) Total() int {
	return r.Added + r.Changed + r.Removed
}
