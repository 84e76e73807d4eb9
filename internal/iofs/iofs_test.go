package iofs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEnsureDirs_CreatesDirectories verifies all required
// directories are created.
func TestEnsureDirs_CreatesDirectories(t *testing.T) {
	tmpDir := t.TempDir()

	err := EnsureDirs(tmpDir)
	require.NoError(t, err)

	dirs := []string{
		filepath.Join(tmpDir, ".config", "bardb"),
		filepath.Join(tmpDir, ".cache", "bardb", "staging"),
		filepath.Join(tmpDir, ".local", "share", "bardb", "backup"),
		filepath.Join(tmpDir, ".local", "share", "bardb", "logs"),
	}
	for _, dir := range dirs {
		info, err := os.Stat(dir)
		require.NoError(t, err, dir)
		assert.True(t, info.IsDir(), dir)
	}
}

// TestEnsureDirs_Idempotent verifies multiple calls work.
func TestEnsureDirs_Idempotent(t *testing.T) {
	tmpDir := t.TempDir()

	require.NoError(t, EnsureDirs(tmpDir))
	require.NoError(t, EnsureDirs(tmpDir))
	require.NoError(t, EnsureDirs(tmpDir))
}

// TestTouchDir_ExistingDirectory verifies an existing directory
// is not modified.
func TestTouchDir_ExistingDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	existingDir := filepath.Join(tmpDir, "existing")

	err := os.MkdirAll(existingDir, 0755)
	require.NoError(t, err)

	originalInfo, err := os.Stat(existingDir)
	require.NoError(t, err)

	err = touchDir(existingDir)
	require.NoError(t, err)

	newInfo, err := os.Stat(existingDir)
	require.NoError(t, err)
	assert.True(t, newInfo.IsDir())
	assert.Equal(t, originalInfo.Mode(), newInfo.Mode())
}

// TestEnsureConfigFile_CreatesFile verifies the config file is
// created with the embedded template content.
func TestEnsureConfigFile_CreatesFile(t *testing.T) {
	tmpDir := t.TempDir()

	require.NoError(t, EnsureDirs(tmpDir))
	require.NoError(t, EnsureConfigFile(tmpDir))

	configPath := filepath.Join(tmpDir, ".config", "bardb",
		"config.yaml")
	content, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Equal(t, ConfigYAML, string(content))
}

// TestEnsureConfigFile_Idempotent verifies an existing file is
// not overwritten.
func TestEnsureConfigFile_Idempotent(t *testing.T) {
	tmpDir := t.TempDir()

	require.NoError(t, EnsureDirs(tmpDir))
	require.NoError(t, EnsureConfigFile(tmpDir))

	configPath := filepath.Join(tmpDir, ".config", "bardb",
		"config.yaml")

	customContent := "# Custom config\ndatabase:\n  host: myhost"
	err := os.WriteFile(configPath, []byte(customContent), 0644)
	require.NoError(t, err)

	require.NoError(t, EnsureConfigFile(tmpDir))

	content, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Equal(t, customContent, string(content),
		"Existing config file should not be overwritten")
}

// TestEnsureCatalogFile_CreatesFile verifies the catalog file is
// created with the embedded template content.
func TestEnsureCatalogFile_CreatesFile(t *testing.T) {
	tmpDir := t.TempDir()

	require.NoError(t, EnsureDirs(tmpDir))
	require.NoError(t, EnsureCatalogFile(tmpDir))

	catalogPath := filepath.Join(tmpDir, ".config", "bardb",
		"catalog.yaml")
	content, err := os.ReadFile(catalogPath)
	require.NoError(t, err)
	assert.Equal(t, CatalogYAML, string(content))
}

// TestEnsureCatalogFile_Idempotent verifies an existing file is
// not overwritten.
func TestEnsureCatalogFile_Idempotent(t *testing.T) {
	tmpDir := t.TempDir()

	require.NoError(t, EnsureDirs(tmpDir))
	require.NoError(t, EnsureCatalogFile(tmpDir))

	catalogPath := filepath.Join(tmpDir, ".config", "bardb",
		"catalog.yaml")

	customContent := "base_url: http://localhost:9999\nletters: [z]"
	err := os.WriteFile(catalogPath, []byte(customContent), 0644)
	require.NoError(t, err)

	require.NoError(t, EnsureCatalogFile(tmpDir))

	content, err := os.ReadFile(catalogPath)
	require.NoError(t, err)
	assert.Equal(t, customContent, string(content),
		"Existing catalog file should not be overwritten")
}

// TestEmbeddedTemplates verifies the embedded templates carry the
// sections the loaders expect.
func TestEmbeddedTemplates(t *testing.T) {
	assert.Contains(t, ConfigYAML, "database")
	assert.Contains(t, ConfigYAML, "pipeline")
	assert.Contains(t, ConfigYAML, "log")

	assert.Contains(t, CatalogYAML, "base_url")
	assert.Contains(t, CatalogYAML, "letters")
}
