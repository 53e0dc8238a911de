package config

// Workfile represents the structure of the forge.work.yaml configuration file.
type Workfile struct {
	Version     string              `yaml:"version"`
	Vendor      string              `yaml:"vendor"`
	SettingsDir string              `yaml:"settingsDir"`
	Tools       map[string]*ToolDTO `yaml:"tools"`
	Projects    []string            `yaml:"projects"`
	Validators  []ValidatorDTO      `yaml:"validators"`
}

// Projectfile represents the structure of the forge.yaml configuration file.
type Projectfile struct {
	Version string              `yaml:"version"`
	Project string              `yaml:"project"`
	Tool    string              `yaml:"tool"`
	Modules []string            `yaml:"modules"`
	Plugin  map[string]string   `yaml:"plugin"`
	Tools   map[string]*ToolDTO `yaml:"tools"`
}

// ToolDTO represents a build tool definition.
type ToolDTO struct {
	Command []string            `yaml:"command"`
	When    string              `yaml:"when"`
	Goals   map[string][]string `yaml:"goals"`
	Env     map[string]string   `yaml:"env"`
}

// ValidatorDTO represents an entity validator definition.
type ValidatorDTO struct {
	Type    string `yaml:"type"`
	When    string `yaml:"when"`
	Message string `yaml:"message"`
}
