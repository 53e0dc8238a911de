package domain

// DefaultVendor is the vendor prefix used when the workspace does not configure one.
const DefaultVendor = "forge"

// Tool describes an external build tool.
type Tool struct {
	// Name is the alias used by projects.
	Name string
	// Command is the executable and its leading arguments.
	Command []string
	// When is an optional predicate selecting projects this tool can build.
	When string
	// Goals maps goal names to the tool arguments that run them.
	Goals map[string][]string
	// Env holds extra environment variables for goal executions.
	Env map[string]string
}

// Args returns the full command line for a goal.
func (t *Tool) Args(goal string) ([]string, bool) {
	goalArgs, ok := t.Goals[goal]
	if !ok || len(t.Command) == 0 {
		return nil, false
	}
	args := make([]string, 0, len(t.Command)+len(goalArgs))
	args = append(args, t.Command...)
	args = append(args, goalArgs...)
	return args, true
}

// ValidatorSpec is a configured entity validator.
type ValidatorSpec struct {
	// TypePrefix selects entities whose TypeID starts with it.
	TypePrefix string
	// When is the predicate an entity must satisfy.
	When string
	// Message is reported when the predicate is false.
	Message string
}

// Workspace is the loaded workspace configuration.
type Workspace struct {
	Root        string
	Vendor      string
	SettingsDir string
	Tools       map[string]*Tool
	Projects    []*Project
	Validators  []ValidatorSpec
}

// Project returns the project with the given name.
func (w *Workspace) Project(name string) (*Project, bool) {
	for _, p := range w.Projects {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}
