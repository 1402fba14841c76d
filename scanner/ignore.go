package scanner

import (
	"path/filepath"
	"strings"

	"github.com/Shahfarzane/CursorFocus/config"
	"github.com/bmatcuk/doublestar/v4"
	gitignore "github.com/sabhiram/go-gitignore"
)

// IgnoreMatcher decides which paths the walker skips. It layers the
// configured directory/file/binary tables with the project's .gitignore.
type IgnoreMatcher struct {
	dirNames   map[string]struct{}
	filterSet  []string
	binaryExts map[string]struct{}
	gitIgnore  *gitignore.GitIgnore
}

// NewIgnoreMatcher builds a matcher from the configured ignore tables and the
// .gitignore at the project root (if one exists).
func NewIgnoreMatcher(rootDir string, cfg config.IgnoreConfig) *IgnoreMatcher {
	m := &IgnoreMatcher{
		dirNames:   make(map[string]struct{}, len(cfg.Directories)),
		filterSet:  cfg.Files,
		binaryExts: make(map[string]struct{}, len(cfg.BinaryExtensions)),
	}

	for _, d := range cfg.Directories {
		m.dirNames[strings.ToLower(d)] = struct{}{}
	}
	for _, ext := range cfg.BinaryExtensions {
		m.binaryExts[strings.ToLower(ext)] = struct{}{}
	}

	// A missing or unreadable .gitignore is not an error, it just means no
	// extra patterns.
	if gi, err := gitignore.CompileIgnoreFile(filepath.Join(rootDir, ".gitignore")); err == nil {
		m.gitIgnore = gi
	}

	return m
}

// IgnoreDir reports whether a directory (by base name) should be skipped
// entirely. Hidden directories are skipped except the root itself.
func (m *IgnoreMatcher) IgnoreDir(name, relPath string) bool {
	if name != "." && strings.HasPrefix(name, ".") {
		return true
	}
	if _, ok := m.dirNames[strings.ToLower(name)]; ok {
		return true
	}
	if m.gitIgnore != nil && m.gitIgnore.MatchesPath(relPath+"/") {
		return true
	}
	return false
}

// IgnoreFile reports whether a file should be excluded from the scan.
func (m *IgnoreMatcher) IgnoreFile(name, relPath string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}

	// A scan must never feed on this tool's own output.
	if isGeneratedArtifact(name) {
		return true
	}

	if _, ok := m.binaryExts[strings.ToLower(filepath.Ext(name))]; ok {
		return true
	}

	for _, pattern := range m.filterSet {
		// Patterns may target the base name or a relative path glob.
		if ok, _ := doublestar.Match(pattern, name); ok {
			return true
		}
		if ok, _ := doublestar.Match(pattern, relPath); ok {
			return true
		}
	}

	if m.gitIgnore != nil && m.gitIgnore.MatchesPath(relPath) {
		return true
	}

	return false
}

// isGeneratedArtifact reports whether a name is one of the files this tool
// writes itself.
func isGeneratedArtifact(name string) bool {
	switch name {
	case "Focus.md", ".cursorrules", config.ProjectsFileName:
		return true
	}
	return false
}
