package domain

import "path/filepath"

const (
	// PolishDirName is the name of the internal metadata directory.
	PolishDirName = ".polish"

	// CacheDirName is the name of the persistent cache directory.
	CacheDirName = "cache"

	// ConfigFileName is the name of the project configuration file.
	ConfigFileName = "polish.yaml"

	// PluginManifestName is the conventional name of a script plugin manifest.
	PluginManifestName = "plugin.yaml"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultPolishPath returns the default root directory for polish metadata.
func DefaultPolishPath() string {
	return PolishDirName
}

// DefaultCachePath returns the default path for the persistent cache.
// It joins .polish and cache.
func DefaultCachePath() string {
	return filepath.Join(PolishDirName, CacheDirName)
}
