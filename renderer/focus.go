package renderer

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/Shahfarzane/CursorFocus/scanner/models"
)

// timestampLayout mirrors the format Focus.md has always carried.
const timestampLayout = "January 02, 2006 at 03:04 PM"

// FocusFileName is the generated Markdown artifact, written at the project root.
const FocusFileName = "Focus.md"

// genericOverview is used whenever no summary provider prose is available.
const genericOverview = "A software project with automated analysis and documentation generation."

var focusTemplate = template.Must(template.New("focus").Parse(`# Project Focus: {{.Name}}

**Project Type:** {{.TypeLabel}}
{{- if .Language}}
**Language:** {{.Language}}{{end}}
{{- if .Framework}}
**Framework:** {{.Framework}}{{end}}
{{- if .Version}}
**Version:** {{.Version}}{{end}}

## Overview

{{.Overview}}

## Metrics

- **Files:** {{.FileCount}}
- **Functions:** {{.FunctionCount}}
- **Length alerts:** {{.AlertCount}}

## Project Structure

` + "```" + `
{{.Tree}}` + "```" + `

## Files
{{range .Files}}
### {{.Path}}{{if .Unreadable}} (unreadable){{else}} ({{.Language}}, {{.LineCount}} lines){{end}}
{{- if .AlertLine}}
{{.AlertLine}}{{end}}
{{- range .Functions}}
- ` + "`{{.Name}}`" + ` (line {{.Line}}): {{.Description}}
{{- end}}
{{end}}
{{- if .Alerts}}
## Length Alerts
{{range .Alerts}}
- **{{.Path}}**: {{.LineCount}} lines (limit {{.Limit}}, {{.Severity}})
{{- end}}
{{end}}
---
*Last updated: {{.Timestamp}}*
`))

type focusView struct {
	Name          string
	TypeLabel     string
	Language      string
	Framework     string
	Version       string
	Overview      string
	FileCount     int
	FunctionCount int
	AlertCount    int
	Tree          string
	Files         []focusFileView
	Alerts        []focusAlertView
	Timestamp     string
}

type focusFileView struct {
	Path       string
	Language   string
	LineCount  int
	Unreadable bool
	AlertLine  string
	Functions  []models.FunctionInfo
}

type focusAlertView struct {
	Path      string
	LineCount int
	Limit     int
	Severity  string
}

// RenderFocus renders the Focus.md document for a snapshot. The summary
// argument carries provider prose and may be empty; rendering is pure, so
// identical snapshots and summaries produce byte-identical output.
func RenderFocus(snap *models.Snapshot, summary string) string {
	overview := strings.TrimSpace(summary)
	if overview == "" {
		overview = strings.TrimSpace(snap.Project.Description)
	}
	if overview == "" {
		overview = genericOverview
	}

	alerted := snap.AlertedFiles()

	view := focusView{
		Name:          snap.Project.Name,
		TypeLabel:     TypeLabel(snap.Project.Type),
		Language:      titleCase(snap.Project.Language),
		Framework:     titleCase(snap.Project.Framework),
		Version:       snap.Project.Version,
		Overview:      overview,
		FileCount:     len(snap.Files),
		FunctionCount: snap.FunctionCount(),
		AlertCount:    len(alerted),
		Tree:          RenderTree(snap.Root),
		Timestamp:     snap.GeneratedAt.Format(timestampLayout),
	}

	for _, f := range snap.Files {
		fv := focusFileView{
			Path:       f.RelativePath,
			Language:   f.Language,
			LineCount:  f.LineCount,
			Unreadable: f.Unreadable,
			Functions:  f.Functions,
		}
		if f.Alert != models.AlertNone {
			fv.AlertLine = fmt.Sprintf("> ⚠️ %s: %d lines exceeds the %d line limit", f.Alert, f.LineCount, f.LengthLimit)
		}
		view.Files = append(view.Files, fv)
	}

	for _, f := range alerted {
		view.Alerts = append(view.Alerts, focusAlertView{
			Path:      f.RelativePath,
			LineCount: f.LineCount,
			Limit:     f.LengthLimit,
			Severity:  string(f.Alert),
		})
	}

	var b strings.Builder
	// The template is a compile-time constant and the view is plain data;
	// execution cannot fail.
	_ = focusTemplate.Execute(&b, view)
	return b.String()
}

// RenderTree formats the directory tree block used in Focus.md.
func RenderTree(root *models.TreeNode) string {
	var b strings.Builder
	b.WriteString(root.Name + "/\n")
	renderTree(&b, root, "")
	return b.String()
}

func renderTree(b *strings.Builder, node *models.TreeNode, prefix string) {
	for i, child := range node.Children {
		connector := "├── "
		childPrefix := prefix + "│   "
		if i == len(node.Children)-1 {
			connector = "└── "
			childPrefix = prefix + "    "
		}

		if child.IsDir {
			b.WriteString(prefix + connector + child.Name + "/\n")
			renderTree(b, child, childPrefix)
		} else {
			b.WriteString(prefix + connector + child.Name + "\n")
		}
	}
}

// typeLabels are the human-readable project type names.
var typeLabels = map[models.ProjectType]string{
	models.ProjectTypeChromeExtension: "Chrome Extension",
	models.ProjectTypeNode:            "Node.js Project",
	models.ProjectTypeReact:           "React Application",
	models.ProjectTypePython:          "Python Project",
	models.ProjectTypePHP:             "PHP Project",
	models.ProjectTypeLaravel:         "Laravel Project",
	models.ProjectTypeWordPress:       "WordPress Project",
	models.ProjectTypeGeneric:         "Generic Project",
}

// TypeLabel returns the display name for a project type.
func TypeLabel(t models.ProjectType) string {
	if label, ok := typeLabels[t]; ok {
		return label
	}
	return typeLabels[models.ProjectTypeGeneric]
}

func titleCase(s string) string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
