package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test per-extension limit resolution with the default fallback
func TestFileLength_LengthLimitFor(t *testing.T) {
	fl := DefaultConfig.FileLength

	assert.Equal(t, 300, fl.LengthLimitFor(".js"))
	assert.Equal(t, 250, fl.LengthLimitFor(".jsx"))
	assert.Equal(t, 400, fl.LengthLimitFor(".py"))
	assert.Equal(t, 400, fl.LengthLimitFor(".PY")) // extension lookup is case-insensitive
	assert.Equal(t, 100, fl.LengthLimitFor(".json"))
	assert.Equal(t, 300, fl.LengthLimitFor(".xyz")) // unknown extensions use the default
}

func TestFileLength_LengthLimitFor_EmptyTable(t *testing.T) {
	var fl FileLength
	assert.Equal(t, 300, fl.LengthLimitFor(".go"))
}

// The projects file round-trips with intervals stored in whole seconds.
func TestProjectsFile_RoundTrip(t *testing.T) {
	dir := t.TempDir()

	projects := []ProjectConfig{
		{Name: "Api", ProjectPath: "/work/api", UpdateInterval: 90 * time.Second, MaxDepth: 4},
		{Name: "Web", ProjectPath: "/work/web", UpdateInterval: 2 * time.Minute, MaxDepth: 2},
	}
	require.NoError(t, SaveProjects(dir, projects))

	data, err := os.ReadFile(filepath.Join(dir, ProjectsFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"update_interval": 90`)
	assert.Contains(t, string(data), `"update_interval": 120`)

	loaded := loadProjectsFile(dir, &DefaultConfig)
	require.Len(t, loaded, 2)
	assert.Equal(t, projects[0], loaded[0])
	assert.Equal(t, projects[1], loaded[1])
}

// Missing per-project settings inherit the global values on load.
func TestProjectsFile_Defaults(t *testing.T) {
	dir := t.TempDir()
	content := `{"projects": [{"name": "Bare", "project_path": "/work/bare"}]}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ProjectsFileName), []byte(content), 0644))

	loaded := loadProjectsFile(dir, &DefaultConfig)
	require.Len(t, loaded, 1)
	assert.Equal(t, DefaultConfig.UpdateInterval, loaded[0].UpdateInterval)
	assert.Equal(t, DefaultConfig.MaxDepth, loaded[0].MaxDepth)
}

func TestProjectsFile_Missing(t *testing.T) {
	assert.Nil(t, loadProjectsFile(t.TempDir(), &DefaultConfig))
}

func TestProjectsFile_Malformed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ProjectsFileName), []byte("{broken"), 0644))
	assert.Nil(t, loadProjectsFile(dir, &DefaultConfig))
}
