package extractor

import (
	"path/filepath"
	"strings"

	"github.com/Shahfarzane/CursorFocus/scanner/models"
)

// Language tags a file for declaration extraction. Tags are keyed by file
// extension, independent of the display language reported by the scanner.
type Language string

const (
	LangPython     Language = "python"
	LangJavaScript Language = "javascript"
	LangTypeScript Language = "typescript"
	LangGo         Language = "go"
	LangPHP        Language = "php"
	LangKotlin     Language = "kotlin"
	LangSwift      Language = "swift"
	LangC          Language = "c"
	LangCPP        Language = "cpp"
	LangCSharp     Language = "csharp"
	LangRuby       Language = "ruby"
	LangRust       Language = "rust"
	LangZig        Language = "zig"
	LangUnknown    Language = ""
)

// extByLanguage maps file extensions to extraction languages.
var extByLanguage = map[string]Language{
	".py":    LangPython,
	".pyw":   LangPython,
	".js":    LangJavaScript,
	".jsx":   LangJavaScript,
	".mjs":   LangJavaScript,
	".cjs":   LangJavaScript,
	".ts":    LangTypeScript,
	".tsx":   LangTypeScript,
	".go":    LangGo,
	".php":   LangPHP,
	".phtml": LangPHP,
	".kt":    LangKotlin,
	".kts":   LangKotlin,
	".swift": LangSwift,
	".c":     LangC,
	".h":     LangC,
	".cpp":   LangCPP,
	".cc":    LangCPP,
	".cxx":   LangCPP,
	".hpp":   LangCPP,
	".cs":    LangCSharp,
	".rb":    LangRuby,
	".rs":    LangRust,
	".zig":   LangZig,
}

// LanguageForFile resolves the extraction language for a file name.
func LanguageForFile(name string) Language {
	return extByLanguage[strings.ToLower(filepath.Ext(name))]
}

// maxDescriptionLen bounds the one-line description attached to a declaration.
const maxDescriptionLen = 80

// Extract runs the language's pattern strategy over the source text and
// returns the recognized declarations in source order. Unsupported
// languages yield nil, never an error.
func Extract(lang Language, src string) []models.FunctionInfo {
	strategy, ok := strategies[lang]
	if !ok {
		return nil
	}

	var funcs []models.FunctionInfo
	lines := strings.Split(src, "\n")

	for i, line := range lines {
		for _, p := range strategy.patterns {
			match := p.FindStringSubmatch(line)
			if match == nil {
				continue
			}

			name := firstGroup(match)
			if name == "" || strategy.isKeyword(name) {
				continue
			}

			funcs = append(funcs, models.FunctionInfo{
				Name:        name,
				Line:        i + 1,
				Description: describe(lines, i, strategy.commentPrefix),
			})
			break
		}
	}

	return funcs
}

// firstGroup returns the first non-empty capture group of a match.
func firstGroup(match []string) string {
	for _, g := range match[1:] {
		if g != "" {
			return g
		}
	}
	return ""
}

// describe builds the one-line description for a declaration at line idx:
// the nearest preceding comment line when one is adjacent, else the trimmed
// signature itself. Either way the result is truncated.
func describe(lines []string, idx int, commentPrefix string) string {
	if commentPrefix != "" && idx > 0 {
		prev := strings.TrimSpace(lines[idx-1])
		if strings.HasPrefix(prev, commentPrefix) {
			text := strings.TrimSpace(strings.TrimPrefix(prev, commentPrefix))
			text = strings.TrimSpace(strings.TrimLeft(text, "/*!"))
			if text != "" {
				return truncate(text)
			}
		}
	}

	return truncate(strings.TrimSpace(lines[idx]))
}

func truncate(s string) string {
	if len(s) <= maxDescriptionLen {
		return s
	}
	return s[:maxDescriptionLen-3] + "..."
}
