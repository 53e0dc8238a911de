package domain

import (
	"os"
	"path/filepath"
)

const (
	// ForgeDirName is the name of the internal workspace directory.
	ForgeDirName = ".forge"

	// IndexDirName is the name of the refresh index directory.
	IndexDirName = "index"

	// SettingsDirName is the name of the global settings directory under the user's forge home.
	SettingsDirName = "settings"

	// ProjectFileName is the name of the project configuration file.
	ProjectFileName = "forge.yaml"

	// WorkFileName is the name of the workspace configuration file.
	WorkFileName = "forge.work.yaml"

	// RegistryFileName is the name of the persisted registry state file.
	RegistryFileName = "registry.yaml"

	// PrefsFileName is the name of the preferences file.
	PrefsFileName = "prefs.yaml"

	// SettingsDirEnv overrides the global settings directory.
	SettingsDirEnv = "FORGE_SETTINGS_DIR"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

// DefaultIndexPath returns the refresh index directory relative to the workspace root.
// It joins .forge and index.
func DefaultIndexPath() string {
	return filepath.Join(ForgeDirName, IndexDirName)
}

// DefaultRegistryPath returns the registry state file relative to the workspace root.
func DefaultRegistryPath() string {
	return filepath.Join(ForgeDirName, RegistryFileName)
}

// DefaultPrefsPath returns the preferences file relative to the workspace root.
func DefaultPrefsPath() string {
	return filepath.Join(ForgeDirName, PrefsFileName)
}

// DefaultSettingsDir returns the global settings directory.
// FORGE_SETTINGS_DIR takes precedence over ~/.forge/settings.
func DefaultSettingsDir() string {
	if dir := os.Getenv(SettingsDirEnv); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(ForgeDirName, SettingsDirName)
	}
	return filepath.Join(home, ForgeDirName, SettingsDirName)
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path == "~" || len(path) > 1 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[1:])
	}
	return path
}
