package models

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// SummaryPrompt builds the instruction sent to a provider for the Focus.md
// overview block.
func SummaryPrompt(req SummaryRequest) string {
	var b strings.Builder

	b.WriteString("Analyze this project's structure and write a concise overview (2-3 sentences) of its purpose and architecture.\n\n")
	writeMetadata(&b, req)
	b.WriteString("\nReturn only the description text, no headings and no code fences.")

	return b.String()
}

// RulesPrompt builds the instruction for provider-generated .cursorrules
// behavior rules. The response must be a bare JSON object.
func RulesPrompt(req SummaryRequest) string {
	var b strings.Builder

	b.WriteString("Based on this project's structure, produce coding behavior rules an AI assistant should follow when generating code for it.\n\n")
	writeMetadata(&b, req)
	b.WriteString(`
Return ONLY a JSON object of this exact shape, with concrete entries derived from the project:
{"code_generation": {"style": {"prefer": [], "avoid": []}, "error_handling": {"prefer": [], "avoid": []}}}`)

	return b.String()
}

var jsonObjectPattern = regexp.MustCompile(`(?s)\{.*\}`)

// ExtractJSONObject pulls the outermost JSON object out of a model response,
// which often arrives wrapped in prose or code fences. Returns nil when the
// response contains no valid object.
func ExtractJSONObject(s string) json.RawMessage {
	match := jsonObjectPattern.FindString(s)
	if match == "" || !json.Valid([]byte(match)) {
		return nil
	}
	return json.RawMessage(match)
}

func writeMetadata(b *strings.Builder, req SummaryRequest) {
	fmt.Fprintf(b, "Project: %s\n", req.ProjectName)
	fmt.Fprintf(b, "Type: %s\n", req.ProjectType)
	if req.Language != "" {
		fmt.Fprintf(b, "Language: %s\n", req.Language)
	}
	if req.Framework != "" {
		fmt.Fprintf(b, "Framework: %s\n", req.Framework)
	}
	fmt.Fprintf(b, "Files: %d, Functions: %d\n", req.FileCount, req.FunctionCount)

	if req.Tree != "" {
		b.WriteString("\nDirectory structure:\n")
		b.WriteString(req.Tree)
	}

	if len(req.Highlights) > 0 {
		b.WriteString("\nNotable files:\n")
		for _, h := range req.Highlights {
			b.WriteString("- " + h + "\n")
		}
	}
}
