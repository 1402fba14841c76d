package models

import "time"

// ProjectType classifies a project root by its marker files.
type ProjectType string

const (
	ProjectTypeChromeExtension ProjectType = "chrome_extension"
	ProjectTypeNode            ProjectType = "node_js"
	ProjectTypeReact           ProjectType = "react"
	ProjectTypePython          ProjectType = "python"
	ProjectTypePHP             ProjectType = "php"
	ProjectTypeLaravel         ProjectType = "laravel"
	ProjectTypeWordPress       ProjectType = "wordpress"
	ProjectTypeGeneric         ProjectType = "generic"
)

// AlertLevel grades how far a file's line count exceeds its soft limit.
type AlertLevel string

const (
	AlertNone     AlertLevel = ""
	AlertWarning  AlertLevel = "warning"
	AlertCritical AlertLevel = "critical"
	AlertSevere   AlertLevel = "severe"
)

// ProjectInfo describes one detected project root. Immutable within a scan cycle.
type ProjectInfo struct {
	Path        string
	Type        ProjectType
	Name        string
	Version     string
	Language    string
	Framework   string
	Description string
}

// FunctionInfo is one recognized declaration inside a file.
type FunctionInfo struct {
	Name        string
	Line        int
	Description string
}

// FileEntry holds the structural metadata of one discovered file.
type FileEntry struct {
	RelativePath string
	Name         string
	Language     string
	LineCount    int
	LengthLimit  int
	Alert        AlertLevel
	Unreadable   bool
	Functions    []FunctionInfo
}

// TreeNode is one node of the directory tree. Children are ordered:
// directories before files, alphabetical within each group.
type TreeNode struct {
	Name     string
	IsDir    bool
	Entry    *FileEntry
	Children []*TreeNode
}

// Snapshot is the full structural metadata captured in one scan cycle.
type Snapshot struct {
	Project     ProjectInfo
	Root        *TreeNode
	Files       []*FileEntry
	GeneratedAt time.Time
}

// FunctionCount returns the total number of recognized declarations across all files.
func (s *Snapshot) FunctionCount() int {
	var n int
	for _, f := range s.Files {
		n += len(f.Functions)
	}
	return n
}

// AlertedFiles returns the entries carrying a length alert, in walk order.
func (s *Snapshot) AlertedFiles() []*FileEntry {
	var alerted []*FileEntry
	for _, f := range s.Files {
		if f.Alert != AlertNone {
			alerted = append(alerted, f)
		}
	}
	return alerted
}
