package utils

import (
	"fmt"
	"os"

	"github.com/alecthomas/chroma/v2/quick"
)

// RenderMarkdownPreview prints a generated Markdown document to the terminal
// with syntax highlighting. Falls back to plain output when highlighting is
// unavailable (dumb terminals, unknown theme).
func RenderMarkdownPreview(content string, theme string) {
	if theme == "" {
		theme = "dracula"
	}
	if err := quick.Highlight(os.Stdout, content, "markdown", "terminal256", theme); err != nil {
		fmt.Print(content)
	}
}
