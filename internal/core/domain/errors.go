package domain

import "go.trai.ch/zerr"

var (
	// ErrNoProject is returned when a build job is scheduled without a project.
	ErrNoProject = zerr.New("no project bound to job, use the import command to add the project to the workspace")

	// ErrProjectNotFound is returned when a project cannot be located in the workspace.
	ErrProjectNotFound = zerr.New("project not found")

	// ErrModuleNotFound is returned when the module owning a descriptor cannot be resolved.
	ErrModuleNotFound = zerr.New("could not resolve module for descriptor")

	// ErrDescriptorNotFound is returned when a project has no descriptor file of the requested kind.
	ErrDescriptorNotFound = zerr.New("descriptor file not found")

	// ErrInvalidDescriptorKind is returned when a descriptor kind is unknown.
	ErrInvalidDescriptorKind = zerr.New("invalid descriptor kind, expected 'service', 'wsdd' or 'language'")

	// ErrGoalFailed is returned when the external build tool reports a failure.
	ErrGoalFailed = zerr.New("goal execution failed")

	// ErrGoalNotConfigured is returned when a tool has no arguments configured for a goal.
	ErrGoalNotConfigured = zerr.New("goal not configured for tool")

	// ErrToolNotFound is returned when a project references a tool that is not defined.
	ErrToolNotFound = zerr.New("tool not found")

	// ErrBuilderNotFound is returned when no builder capability matches a project.
	ErrBuilderNotFound = zerr.New("could not create project builder")

	// ErrBudgetExceeded is returned when a progress allocation exceeds the remaining budget.
	ErrBudgetExceeded = zerr.New("progress allocation exceeds remaining budget")

	// ErrScopeDone is returned when a progress scope is completed more than once.
	ErrScopeDone = zerr.New("progress scope already done")

	// ErrJobPanicked is returned when a build job panics.
	ErrJobPanicked = zerr.New("build job panicked")

	// ErrRefreshFailed is returned when refreshing a project tree fails.
	ErrRefreshFailed = zerr.New("failed to refresh project")

	// ErrSiblingNotFound is returned when the sibling API project cannot be located.
	ErrSiblingNotFound = zerr.New("sibling project not found")

	// ErrIndexReadFailed is returned when the refresh index cannot be read.
	ErrIndexReadFailed = zerr.New("failed to read refresh index")

	// ErrIndexWriteFailed is returned when the refresh index cannot be written.
	ErrIndexWriteFailed = zerr.New("failed to write refresh index")

	// ErrEntityExists is returned when adding an entity whose id is already live.
	ErrEntityExists = zerr.New("entity already exists")

	// ErrEntityNotFound is returned when an entity id is not live.
	ErrEntityNotFound = zerr.New("entity not found")

	// ErrInvalidEntity is returned when an entity is missing mandatory fields.
	ErrInvalidEntity = zerr.New("invalid entity")

	// ErrEntityRejected is returned when a validator rejects an entity.
	ErrEntityRejected = zerr.New("entity rejected by validator")

	// ErrInvalidEntityKind is returned when an entity kind is unknown.
	ErrInvalidEntityKind = zerr.New("invalid entity kind, expected 'runtime', 'server' or 'sdk'")

	// ErrRecordDecodeFailed is returned when a snapshot record cannot be decoded into an entity.
	ErrRecordDecodeFailed = zerr.New("failed to decode snapshot record")

	// ErrSnapshotReadFailed is returned when a snapshot file cannot be read.
	ErrSnapshotReadFailed = zerr.New("failed to read snapshot")

	// ErrSnapshotWriteFailed is returned when a snapshot file cannot be written.
	ErrSnapshotWriteFailed = zerr.New("failed to write snapshot")

	// ErrStateReadFailed is returned when the registry state cannot be read.
	ErrStateReadFailed = zerr.New("failed to read registry state")

	// ErrStateWriteFailed is returned when the registry state cannot be written.
	ErrStateWriteFailed = zerr.New("failed to write registry state")

	// ErrPrefsReadFailed is returned when the preferences file cannot be read.
	ErrPrefsReadFailed = zerr.New("failed to read preferences")

	// ErrPrefsWriteFailed is returned when the preferences file cannot be written.
	ErrPrefsWriteFailed = zerr.New("failed to write preferences")

	// ErrPromptUnavailable is returned when no interactive terminal is available to ask the user.
	ErrPromptUnavailable = zerr.New("prompt unavailable, not a terminal")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrConfigNotFound is returned when the config file cannot be found.
	ErrConfigNotFound = zerr.New("could not find forge.yaml or forge.work.yaml")

	// ErrMissingProjectName is returned in workspace mode when a forge.yaml has no project name.
	ErrMissingProjectName = zerr.New("missing project name")

	// ErrInvalidProjectName is returned when a project name is invalid.
	ErrInvalidProjectName = zerr.New("project name can only contain alphanumeric characters, dots, hyphens and underscores")

	// ErrDuplicateProjectName is returned when multiple projects share the same name in a workspace.
	ErrDuplicateProjectName = zerr.New("duplicate project name")

	// ErrMissingModule is returned when an aggregator lists a module that is not a project.
	ErrMissingModule = zerr.New("module is not a workspace project")

	// ErrInvalidPredicate is returned when a capability predicate fails to compile.
	ErrInvalidPredicate = zerr.New("invalid capability predicate")

	// ErrBuildExecutionFailed is returned when one or more build jobs did not succeed.
	ErrBuildExecutionFailed = zerr.New("build execution failed")
)
