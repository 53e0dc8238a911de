// Package config provides the configuration loader for forge.
package config

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"regexp"
	"slices"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using YAML files.
type Loader struct {
	Logger ports.Logger
	fs     FileSystem
}

// NewLoader creates a new Loader reading from the operating system.
func NewLoader(logger ports.Logger) *Loader {
	return NewLoaderWithFS(logger, NewOSFS())
}

// NewLoaderWithFS creates a new Loader reading from fsys.
func NewLoaderWithFS(logger ports.Logger, fsys FileSystem) *Loader {
	return &Loader{Logger: logger, fs: fsys}
}

// Mode represents the configuration mode of forge.
type Mode string

const (
	// ModeWorkspace indicates that forge has a workfile.
	ModeWorkspace Mode = "workspace"
	// ModeStandalone indicates that forge has only one project file.
	ModeStandalone Mode = "standalone"
)

var validProjectNameRegex = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)

// Load reads the configuration reachable from cwd.
func (l *Loader) Load(cwd string) (*domain.Workspace, error) {
	configPath, mode, err := l.findConfiguration(cwd)
	if err != nil {
		return nil, err
	}

	switch mode {
	case ModeStandalone:
		return l.loadProjectfile(configPath)
	case ModeWorkspace:
		return l.loadWorkfile(configPath)
	default:
		return nil, zerr.With(zerr.Wrap(domain.ErrConfigNotFound, "load"), "mode", mode)
	}
}

// DiscoverRoot walks up from cwd to find the workspace root.
func (l *Loader) DiscoverRoot(cwd string) (string, error) {
	configPath, _, err := l.findConfiguration(cwd)
	if err != nil {
		return "", err
	}
	return filepath.Dir(configPath), nil
}

func (l *Loader) findConfiguration(cwd string) (string, Mode, error) {
	currentDir := filepath.Clean(cwd)
	var standaloneCandidate string

	for {
		workfilePath := filepath.Join(currentDir, domain.WorkFileName)
		if _, err := l.fs.Stat(workfilePath); err == nil {
			return workfilePath, ModeWorkspace, nil
		}

		if standaloneCandidate == "" {
			projectfilePath := filepath.Join(currentDir, domain.ProjectFileName)
			if _, err := l.fs.Stat(projectfilePath); err == nil {
				standaloneCandidate = projectfilePath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	if standaloneCandidate != "" {
		return standaloneCandidate, ModeStandalone, nil
	}

	return "", "", zerr.With(zerr.Wrap(domain.ErrConfigNotFound, "discover"), "cwd", cwd)
}

func (l *Loader) loadProjectfile(configPath string) (*domain.Workspace, error) {
	var projectfile Projectfile
	if err := l.readAndUnmarshalYAML(configPath, &projectfile); err != nil {
		return nil, err
	}

	root := filepath.Dir(configPath)
	if projectfile.Project == "" {
		projectfile.Project = filepath.Base(root)
	}
	if len(projectfile.Modules) > 0 {
		l.Logger.Warn(fmt.Sprintf("'modules' defined in %s has no effect in standalone mode", domain.ProjectFileName))
		projectfile.Modules = nil
	}

	ws := &domain.Workspace{
		Root:        root,
		Vendor:      domain.DefaultVendor,
		SettingsDir: resolveSettingsDir(root, ""),
		Tools:       buildTools(projectfile.Tools),
	}

	project, err := l.buildProject(ws, &projectfile, root, ".")
	if err != nil {
		return nil, err
	}
	ws.Projects = []*domain.Project{project}

	return ws, nil
}

func (l *Loader) loadWorkfile(configPath string) (*domain.Workspace, error) {
	var workfile Workfile
	if err := l.readAndUnmarshalYAML(configPath, &workfile); err != nil {
		return nil, err
	}

	root := filepath.Dir(configPath)
	ws := &domain.Workspace{
		Root:        root,
		Vendor:      workfile.Vendor,
		SettingsDir: resolveSettingsDir(root, workfile.SettingsDir),
		Tools:       buildTools(workfile.Tools),
	}
	if ws.Vendor == "" {
		ws.Vendor = domain.DefaultVendor
	}
	for _, v := range workfile.Validators {
		ws.Validators = append(ws.Validators, domain.ValidatorSpec{
			TypePrefix: v.Type,
			When:       v.When,
			Message:    v.Message,
		})
	}

	projectPaths, err := l.resolveProjectPaths(root, workfile.Projects)
	if err != nil {
		return nil, err
	}

	projectNames := make(map[string]string)
	for _, projectPath := range projectPaths {
		project, err := l.processProject(ws, projectPath, projectNames)
		if err != nil {
			return nil, err
		}
		if project != nil {
			ws.Projects = append(ws.Projects, project)
		}
	}

	if err := linkModules(ws); err != nil {
		return nil, err
	}
	return ws, nil
}

func (l *Loader) resolveProjectPaths(root string, patterns []string) ([]string, error) {
	projectPaths := make(map[string]struct{})

	for _, pattern := range patterns {
		matches, err := l.fs.Glob(filepath.Join(root, pattern))
		if err != nil {
			return nil, zerr.Wrap(err, "glob pattern failed: "+pattern)
		}
		for _, match := range matches {
			projectPaths[match] = struct{}{}
		}
	}

	return slices.Sorted(maps.Keys(projectPaths)), nil
}

func (l *Loader) processProject(
	ws *domain.Workspace,
	projectPath string,
	projectNames map[string]string,
) (*domain.Project, error) {
	relPath, _ := filepath.Rel(ws.Root, projectPath)

	isDir, err := l.fs.IsDir(projectPath)
	if err != nil {
		return nil, err
	}
	if !isDir {
		return nil, nil
	}

	projectfilePath := filepath.Join(projectPath, domain.ProjectFileName)
	if _, err := l.fs.Stat(projectfilePath); err != nil {
		l.Logger.Warn(fmt.Sprintf("%s missing in project %s, skipping", domain.ProjectFileName, relPath))
		return nil, nil
	}

	var projectfile Projectfile
	if err := l.readAndUnmarshalYAML(projectfilePath, &projectfile); err != nil {
		return nil, zerr.With(err, "directory", relPath)
	}

	if projectfile.Project == "" {
		return nil, zerr.With(zerr.Wrap(domain.ErrMissingProjectName, relPath), "directory", relPath)
	}

	if existingPath, exists := projectNames[projectfile.Project]; exists {
		err := zerr.With(zerr.Wrap(domain.ErrDuplicateProjectName, projectfile.Project), "project_name", projectfile.Project)
		err = zerr.With(err, "first_occurrence", existingPath)
		return nil, zerr.With(err, "duplicate_at", relPath)
	}
	projectNames[projectfile.Project] = relPath

	if len(projectfile.Tools) > 0 {
		l.Logger.Warn(fmt.Sprintf("'tools' defined in %s is ignored in workspace mode", relPath))
	}

	return l.buildProject(ws, &projectfile, projectPath, relPath)
}

func (l *Loader) buildProject(
	ws *domain.Workspace,
	projectfile *Projectfile,
	dir, relPath string,
) (*domain.Project, error) {
	if !validProjectNameRegex.MatchString(projectfile.Project) {
		err := zerr.With(zerr.Wrap(domain.ErrInvalidProjectName, projectfile.Project), "project_name", projectfile.Project)
		return nil, zerr.With(err, "directory", relPath)
	}

	tool, err := resolveTool(ws.Tools, projectfile.Tool)
	if err != nil {
		return nil, zerr.With(err, "project", projectfile.Project)
	}

	return &domain.Project{
		Name:    projectfile.Project,
		Dir:     filepath.Clean(dir),
		Tool:    tool,
		Modules: projectfile.Modules,
		Plugin:  projectfile.Plugin,
	}, nil
}

// resolveTool checks the tool alias. A project without a tool uses the only
// configured tool, if there is exactly one.
func resolveTool(tools map[string]*domain.Tool, alias string) (string, error) {
	if alias == "" {
		if len(tools) == 1 {
			for name := range tools {
				return name, nil
			}
		}
		return "", nil
	}
	if _, ok := tools[alias]; !ok {
		return "", zerr.With(zerr.Wrap(domain.ErrToolNotFound, alias), "tool_alias", alias)
	}
	return alias, nil
}

// linkModules sets the parent of every project named as a module.
func linkModules(ws *domain.Workspace) error {
	for _, p := range ws.Projects {
		for _, name := range p.Modules {
			module, ok := ws.Project(name)
			if !ok {
				err := zerr.With(zerr.Wrap(domain.ErrMissingModule, name), "module", name)
				return zerr.With(err, "project", p.Name)
			}
			module.Parent = p
		}
	}
	return nil
}

func buildTools(dtos map[string]*ToolDTO) map[string]*domain.Tool {
	tools := make(map[string]*domain.Tool, len(dtos))
	for name, dto := range dtos {
		if dto == nil {
			dto = &ToolDTO{}
		}
		tools[name] = &domain.Tool{
			Name:    name,
			Command: dto.Command,
			When:    dto.When,
			Goals:   dto.Goals,
			Env:     dto.Env,
		}
	}
	return tools
}

// resolveSettingsDir applies FORGE_SETTINGS_DIR, then the configured
// directory, then the default under the user's home.
func resolveSettingsDir(root, configured string) string {
	if os.Getenv(domain.SettingsDirEnv) != "" || configured == "" {
		return domain.DefaultSettingsDir()
	}
	configured = domain.ExpandHome(configured)
	if filepath.IsAbs(configured) {
		return filepath.Clean(configured)
	}
	return filepath.Join(root, configured)
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target struct.
func (l *Loader) readAndUnmarshalYAML(configPath string, target any) error {
	configFile, err := l.fs.ReadFile(configPath)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", configPath)
	}

	if parseErr := yaml.Unmarshal(configFile, target); parseErr != nil {
		return zerr.With(zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error()), "path", configPath)
	}

	return nil
}
