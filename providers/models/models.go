package models

// SummaryRequest carries the project metadata sent to a summary provider.
// It is assembled from a scan snapshot; file contents are never included.
type SummaryRequest struct {
	ProjectName   string
	ProjectType   string
	Language      string
	Framework     string
	FileCount     int
	FunctionCount int
	Tree          string
	Highlights    []string
}

// AIError is the error envelope most chat-completion endpoints return.
type AIError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}
