package scanner

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/Shahfarzane/CursorFocus/config"
	"github.com/Shahfarzane/CursorFocus/extractor"
	"github.com/Shahfarzane/CursorFocus/scanner/models"
	"github.com/go-enry/go-enry/v2"
)

// contentSampleSize bounds how much of a file is handed to language
// classification; line counting still reads the whole file.
const contentSampleSize = 16 * 1024

// Scanner produces a Snapshot of one project directory per cycle.
type Scanner struct {
	rootDir    string
	maxDepth   int
	ignore     *IgnoreMatcher
	fileLength config.FileLength
}

// NewScanner initializes a Scanner for one project root.
func NewScanner(rootDir string, maxDepth int, ignoreCfg config.IgnoreConfig, fileLength config.FileLength) *Scanner {
	if maxDepth <= 0 {
		maxDepth = config.DefaultConfig.MaxDepth
	}
	return &Scanner{
		rootDir:    rootDir,
		maxDepth:   maxDepth,
		ignore:     NewIgnoreMatcher(rootDir, ignoreCfg),
		fileLength: fileLength,
	}
}

// Scan walks the project and returns a fresh Snapshot. The walk is
// depth-first with directories ordered before files, alphabetical within
// each group, so two scans of an unchanged tree are byte-identical inputs
// to the renderer. Individual unreadable files degrade to marked entries;
// only a missing root is an error.
func (s *Scanner) Scan() (*models.Snapshot, error) {
	if _, err := os.Stat(s.rootDir); err != nil {
		return nil, err
	}

	snapshot := &models.Snapshot{
		Project:     DetectProject(s.rootDir),
		GeneratedAt: time.Now(),
	}

	root := &models.TreeNode{Name: filepath.Base(s.rootDir), IsDir: true}
	s.walk(s.rootDir, "", 1, root, snapshot)
	snapshot.Root = root

	return snapshot, nil
}

// walk fills node with the ordered children of dir. relDir is the
// slash-separated path of dir relative to the project root ("" at the root).
func (s *Scanner) walk(dir, relDir string, depth int, node *models.TreeNode, snapshot *models.Snapshot) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		// Unreadable directory: leave the node childless and keep going.
		return
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].IsDir() != entries[j].IsDir() {
			return entries[i].IsDir()
		}
		return entries[i].Name() < entries[j].Name()
	})

	for _, entry := range entries {
		name := entry.Name()
		relPath := name
		if relDir != "" {
			relPath = relDir + "/" + name
		}

		if entry.IsDir() {
			if depth > s.maxDepth || s.ignore.IgnoreDir(name, relPath) {
				continue
			}
			child := &models.TreeNode{Name: name, IsDir: true}
			s.walk(filepath.Join(dir, name), relPath, depth+1, child, snapshot)
			node.Children = append(node.Children, child)
			continue
		}

		if !entry.Type().IsRegular() || s.ignore.IgnoreFile(name, relPath) {
			continue
		}

		fileEntry := s.processFile(filepath.Join(dir, name), relPath, name)
		snapshot.Files = append(snapshot.Files, fileEntry)
		node.Children = append(node.Children, &models.TreeNode{Name: name, Entry: fileEntry})
	}
}

// processFile reads one file and assembles its entry: language tag, line
// count, length alert, and extracted declarations. Read errors are recorded
// on the entry, never propagated.
func (s *Scanner) processFile(path, relPath, name string) *models.FileEntry {
	entry := &models.FileEntry{
		RelativePath: relPath,
		Name:         name,
	}

	content, err := os.ReadFile(path)
	if err != nil {
		entry.Unreadable = true
		return entry
	}

	sample := content
	if len(sample) > contentSampleSize {
		sample = sample[:contentSampleSize]
	}
	entry.Language = enry.GetLanguage(name, sample)
	if entry.Language == "" {
		entry.Language = "Unknown"
	}

	if enry.IsBinary(sample) {
		// Binary content slipped past the extension table: record it
		// without line metrics or extraction.
		entry.Unreadable = true
		return entry
	}

	entry.LineCount = countLines(content)
	entry.LengthLimit = s.fileLength.LengthLimitFor(filepath.Ext(name))
	entry.Alert = alertLevel(entry.LineCount, entry.LengthLimit, s.fileLength.Thresholds)

	lang := extractor.LanguageForFile(name)
	entry.Functions = extractor.Extract(lang, string(content))

	return entry
}

// countLines counts newline-separated lines the way editors report them:
// a trailing newline does not start an extra line.
func countLines(content []byte) int {
	if len(content) == 0 {
		return 0
	}
	n := bytes.Count(content, []byte{'\n'})
	if content[len(content)-1] != '\n' {
		n++
	}
	return n
}

// alertLevel grades a line count against its soft limit. The boundary is
// strict: a file exactly at the limit carries no alert.
func alertLevel(lines, limit int, t config.Thresholds) models.AlertLevel {
	if limit <= 0 || lines <= limit {
		return models.AlertNone
	}

	ratio := float64(lines) / float64(limit)
	switch {
	case ratio > t.Severe:
		return models.AlertSevere
	case ratio > t.Critical:
		return models.AlertCritical
	default:
		return models.AlertWarning
	}
}
