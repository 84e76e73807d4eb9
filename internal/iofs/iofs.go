package iofs

import (
	_ "embed"
	"os"

	"github.com/barcraft/bardb/pkg/config"
)

//go:embed config.yaml
var ConfigYAML string

//go:embed catalog.yaml
var CatalogYAML string

func EnsureDirs(homeDir string) error {
	dirs := []string{
		config.ConfigDir(homeDir),
		config.StagingDir(homeDir),
		config.BackupDir(homeDir),
		config.LogDir(homeDir),
	}
	for _, v := range dirs {
		if err := touchDir(v); err != nil {
			return err
		}
	}
	return nil
}

func touchDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil && info.IsDir() {
		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return CreateDirError(dir, err)
	}

	return nil
}

func EnsureConfigFile(homeDir string) error {
	configPath := config.ConfigFilePath(homeDir)

	// Check if config file already exists
	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	// Write embedded config.yaml to the config directory
	if err := os.WriteFile(configPath, []byte(ConfigYAML), 0644); err != nil {
		return CopyFileError(configPath, err)
	}

	return nil
}

func EnsureCatalogFile(homeDir string) error {
	catalogPath := config.CatalogFilePath(homeDir)

	// Check if catalog file already exists
	if _, err := os.Stat(catalogPath); err == nil {
		return nil
	}

	// Write embedded catalog.yaml to the config directory
	if err := os.WriteFile(catalogPath, []byte(CatalogYAML), 0644); err != nil {
		return CopyFileError(catalogPath, err)
	}

	return nil
}
