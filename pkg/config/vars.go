package config

import (
	"path/filepath"
)

// AppName is used in generating file system paths.
var AppName = "bardb"

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/bardb by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// StagingDir returns the default working directory for staging artifacts.
// Returns ~/.cache/bardb/staging by default.
func StagingDir(homeDir string) string {
	return filepath.Join(homeDir, ".cache", AppName, "staging")
}

// BackupDir returns the default root for timestamped artifact archives.
// Returns ~/.local/share/bardb/backup by default.
func BackupDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "backup")
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/bardb/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/bardb/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// CatalogFilePath returns the full path to the catalog.yaml file that
// describes the upstream catalog API.
// Returns ~/.config/bardb/catalog.yaml by default.
func CatalogFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "catalog.yaml")
}

// WorkDir resolves the staging working directory from config,
// falling back to the default location under homeDir.
func (c *Config) WorkDir() string {
	if c.Pipeline.WorkDir != "" {
		return c.Pipeline.WorkDir
	}
	return StagingDir(c.HomeDir)
}

// BackupRoot resolves the archive root from config, falling back to the
// default location under homeDir.
func (c *Config) BackupRoot() string {
	if c.Pipeline.BackupDir != "" {
		return c.Pipeline.BackupDir
	}
	return BackupDir(c.HomeDir)
}
