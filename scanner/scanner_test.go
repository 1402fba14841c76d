package scanner

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Shahfarzane/CursorFocus/config"
	"github.com/Shahfarzane/CursorFocus/scanner/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func newTestScanner(root string, maxDepth int) *Scanner {
	return NewScanner(root, maxDepth, config.DefaultConfig.Ignore, config.DefaultConfig.FileLength)
}

// Test a full scan over a small project tree
func TestScanner_Scan(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "setup.py", "from setuptools import setup\n")
	writeFile(t, root, "src/app.py", "# entry point\ndef main():\n    pass\n")
	writeFile(t, root, "src/util.py", "def helper():\n    pass\n")
	writeFile(t, root, "node_modules/pkg/index.js", "module.exports = {};\n")
	writeFile(t, root, ".hidden", "ignored\n")

	snap, err := newTestScanner(root, 3).Scan()
	require.NoError(t, err)
	require.NotNil(t, snap)

	assert.Equal(t, models.ProjectTypePython, snap.Project.Type)
	assert.False(t, snap.GeneratedAt.IsZero())

	var paths []string
	for _, f := range snap.Files {
		paths = append(paths, f.RelativePath)
	}
	assert.Equal(t, []string{"src/app.py", "src/util.py", "setup.py"}, paths)

	assert.Equal(t, 2, snap.FunctionCount())
	assert.Equal(t, 3, snap.Files[0].LineCount)
	assert.Equal(t, "main", snap.Files[0].Functions[0].Name)
}

// Two scans of an unchanged tree must yield identical file orderings.
func TestScanner_Deterministic(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "b.py", "def b():\n    pass\n")
	writeFile(t, root, "a.py", "def a():\n    pass\n")
	writeFile(t, root, "lib/z.py", "def z():\n    pass\n")
	writeFile(t, root, "lib/a.py", "def la():\n    pass\n")

	s := newTestScanner(root, 3)

	first, err := s.Scan()
	require.NoError(t, err)
	second, err := s.Scan()
	require.NoError(t, err)

	require.Equal(t, len(first.Files), len(second.Files))
	for i := range first.Files {
		assert.Equal(t, first.Files[i].RelativePath, second.Files[i].RelativePath)
	}

	// Directories come before files, alphabetical within each group.
	assert.Equal(t, "lib/a.py", first.Files[0].RelativePath)
	assert.Equal(t, "lib/z.py", first.Files[1].RelativePath)
	assert.Equal(t, "a.py", first.Files[2].RelativePath)
	assert.Equal(t, "b.py", first.Files[3].RelativePath)
}

func TestScanner_MaxDepth(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "top.py", "def top():\n    pass\n")
	writeFile(t, root, "one/two/deep.py", "def deep():\n    pass\n")
	writeFile(t, root, "one/two/three/deeper.py", "def deeper():\n    pass\n")

	snap, err := newTestScanner(root, 2).Scan()
	require.NoError(t, err)

	var paths []string
	for _, f := range snap.Files {
		paths = append(paths, f.RelativePath)
	}
	assert.Contains(t, paths, "top.py")
	assert.Contains(t, paths, "one/two/deep.py")
	assert.NotContains(t, paths, "one/two/three/deeper.py")
}

func TestScanner_MissingRoot(t *testing.T) {
	s := newTestScanner(filepath.Join(t.TempDir(), "does-not-exist"), 3)
	snap, err := s.Scan()
	assert.Error(t, err)
	assert.Nil(t, snap)
}

// Binary content past the extension table is recorded, not extracted.
func TestScanner_BinaryContent(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "blob.dat", "\x00\x01\x02\x03binary")
	writeFile(t, root, "ok.py", "def ok():\n    pass\n")

	snap, err := newTestScanner(root, 3).Scan()
	require.NoError(t, err)
	require.Len(t, snap.Files, 2)

	var blob *models.FileEntry
	for _, f := range snap.Files {
		if f.Name == "blob.dat" {
			blob = f
		}
	}
	require.NotNil(t, blob)
	assert.True(t, blob.Unreadable)
	assert.Zero(t, blob.LineCount)
	assert.Empty(t, blob.Functions)
}

// Generated artifacts must never appear in their own scan.
func TestScanner_SkipsOwnOutput(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "Focus.md", "# Project Focus\n")
	writeFile(t, root, ".cursorrules", "{}\n")
	writeFile(t, root, "app.py", "def run():\n    pass\n")

	snap, err := newTestScanner(root, 3).Scan()
	require.NoError(t, err)
	require.Len(t, snap.Files, 1)
	assert.Equal(t, "app.py", snap.Files[0].RelativePath)
}

func TestCountLines(t *testing.T) {
	assert.Equal(t, 0, countLines(nil))
	assert.Equal(t, 1, countLines([]byte("one")))
	assert.Equal(t, 1, countLines([]byte("one\n")))
	assert.Equal(t, 2, countLines([]byte("one\ntwo")))
	assert.Equal(t, 2, countLines([]byte("one\ntwo\n")))
}

// A file exactly at its limit carries no alert; severity steps at the
// configured multiples above it.
func TestAlertLevel(t *testing.T) {
	thresholds := config.DefaultConfig.FileLength.Thresholds

	assert.Equal(t, models.AlertNone, alertLevel(300, 300, thresholds))
	assert.Equal(t, models.AlertWarning, alertLevel(301, 300, thresholds))
	assert.Equal(t, models.AlertWarning, alertLevel(450, 300, thresholds))
	assert.Equal(t, models.AlertCritical, alertLevel(451, 300, thresholds))
	assert.Equal(t, models.AlertCritical, alertLevel(600, 300, thresholds))
	assert.Equal(t, models.AlertSevere, alertLevel(601, 300, thresholds))

	// No limit means no alert.
	assert.Equal(t, models.AlertNone, alertLevel(10000, 0, thresholds))
}

func TestScanner_AlertOnLongFile(t *testing.T) {
	root := t.TempDir()

	var b strings.Builder
	b.WriteString("def filler():\n")
	for i := 0; i < 139; i++ {
		b.WriteString("    pass\n")
	}
	writeFile(t, root, "long.json", b.String()) // .json limit is 100

	snap, err := newTestScanner(root, 3).Scan()
	require.NoError(t, err)
	require.Len(t, snap.Files, 1)

	entry := snap.Files[0]
	assert.Equal(t, 140, entry.LineCount)
	assert.Equal(t, 100, entry.LengthLimit)
	assert.Equal(t, models.AlertWarning, entry.Alert)
	assert.Len(t, snap.AlertedFiles(), 1)
}
