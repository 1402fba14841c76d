package scanner

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/Shahfarzane/CursorFocus/scanner/models"
)

// typeRule associates marker files with a project type. Rules are checked in
// order; the first match wins.
type typeRule struct {
	projectType models.ProjectType
	language    string
	framework   string
	indicators  []string
	required    []string
}

// typeRules is the detection priority table. React must be probed while
// handling the node_js indicator, see DetectProject.
var typeRules = []typeRule{
	{projectType: models.ProjectTypeChromeExtension, language: "javascript", framework: "chrome", indicators: []string{"manifest.json"}},
	{projectType: models.ProjectTypeNode, language: "javascript", framework: "node.js", indicators: []string{"package.json"}},
	{projectType: models.ProjectTypePython, language: "python", indicators: []string{"setup.py", "pyproject.toml"}},
	{projectType: models.ProjectTypeLaravel, language: "php", framework: "laravel", indicators: []string{"artisan"}},
	{projectType: models.ProjectTypeWordPress, language: "php", framework: "wordpress", indicators: []string{"wp-config.php"}},
	{projectType: models.ProjectTypePHP, language: "php", indicators: []string{"composer.json", "index.php"}},
}

// reactMarkers promote a node_js project to react when present.
var reactMarkers = []string{
	filepath.Join("src", "App.js"),
	filepath.Join("src", "index.js"),
}

// DetectProject classifies a project root by probing for marker files.
// Unknown layouts degrade to generic; this never returns an error.
func DetectProject(rootDir string) models.ProjectInfo {
	info := models.ProjectInfo{
		Path: rootDir,
		Type: models.ProjectTypeGeneric,
		Name: ProjectNameFromPath(rootDir),
	}

	for _, rule := range typeRules {
		if !hasAnyMarker(rootDir, rule.indicators) {
			continue
		}

		info.Type = rule.projectType
		info.Language = rule.language
		info.Framework = rule.framework

		if rule.projectType == models.ProjectTypeNode && hasAnyMarker(rootDir, reactMarkers) {
			info.Type = models.ProjectTypeReact
			info.Framework = "react"
		}

		break
	}

	fillManifestMetadata(rootDir, &info)

	return info
}

// hasAnyMarker reports whether any of the relative marker paths exists under root.
func hasAnyMarker(rootDir string, markers []string) bool {
	for _, marker := range markers {
		if _, err := os.Stat(filepath.Join(rootDir, marker)); err == nil {
			return true
		}
	}
	return false
}

// fillManifestMetadata pulls the display name and version out of
// package.json or manifest.json when one is parseable. Best effort only.
func fillManifestMetadata(rootDir string, info *models.ProjectInfo) {
	for _, manifest := range []string{"package.json", "manifest.json"} {
		data, err := os.ReadFile(filepath.Join(rootDir, manifest))
		if err != nil {
			continue
		}

		var meta struct {
			Name        string `json:"name"`
			Version     string `json:"version"`
			Description string `json:"description"`
		}
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		if meta.Name != "" {
			info.Name = meta.Name
		}
		if meta.Version != "" {
			info.Version = meta.Version
		}
		if meta.Description != "" {
			info.Description = meta.Description
		}
		return
	}
}

// ProjectNameFromPath derives a display name from the directory base name:
// common clone suffixes are stripped and the words are title-cased.
func ProjectNameFromPath(path string) string {
	base := filepath.Base(filepath.Clean(path))

	lower := strings.ToLower(base)
	for _, suffix := range []string{"-main", "-master", "-dev", "-development", ".git"} {
		if strings.HasSuffix(lower, suffix) {
			base = base[:len(base)-len(suffix)]
			break
		}
	}

	words := strings.FieldsFunc(base, func(r rune) bool {
		return r == '-' || r == '_' || r == ' '
	})
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	if len(words) == 0 {
		return base
	}
	return strings.Join(words, " ")
}

// ScanForProjects walks at most maxDepth levels below root and returns every
// directory that classifies as a non-generic project. Ignored directory
// names are never descended into.
func ScanForProjects(root string, maxDepth int, ignoredDirs []string) []models.ProjectInfo {
	skip := make(map[string]struct{}, len(ignoredDirs))
	for _, d := range ignoredDirs {
		skip[strings.ToLower(d)] = struct{}{}
	}

	var found []models.ProjectInfo
	scanForProjects(root, 0, maxDepth, skip, &found)
	return found
}

func scanForProjects(dir string, depth, maxDepth int, skip map[string]struct{}, found *[]models.ProjectInfo) {
	if info := DetectProject(dir); info.Type != models.ProjectTypeGeneric {
		*found = append(*found, info)
		return
	}

	if depth >= maxDepth {
		return
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		if _, ignored := skip[strings.ToLower(name)]; ignored {
			continue
		}
		scanForProjects(filepath.Join(dir, name), depth+1, maxDepth, skip, found)
	}
}
