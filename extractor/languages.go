package extractor

import "regexp"

// strategy holds the compiled declaration patterns for one language. The
// first non-empty capture group of a matching pattern is the declaration
// name; patterns are tried in order and at most one fires per line.
type strategy struct {
	patterns      []*regexp.Regexp
	commentPrefix string
	keywords      map[string]struct{}
}

func (s strategy) isKeyword(name string) bool {
	_, ok := s.keywords[name]
	return ok
}

func keywordSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// strategies is the extraction table: one pattern strategy per supported
// language. Declaration shapes follow the forms these languages actually
// write at line starts; this is text recognition, not parsing, so exotic
// formatting can slip through.
var strategies = map[Language]strategy{
	LangPython: {
		commentPrefix: "#",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`^\s*(?:async\s+)?def\s+(\w+)\s*\(`),
			regexp.MustCompile(`^\s*class\s+(\w+)\s*[(:]`),
		},
	},
	LangJavaScript: {
		commentPrefix: "//",
		keywords:      keywordSet("if", "for", "while", "switch", "catch", "return", "function", "constructor"),
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`^\s*(?:export\s+)?(?:default\s+)?(?:async\s+)?function\s*\*?\s*(\w+)\s*\(`),
			regexp.MustCompile(`^\s*(?:export\s+)?(?:const|let|var)\s+(\w+)\s*=\s*(?:async\s*)?(?:function\b|\([^)]*\)\s*=>|\w+\s*=>)`),
			regexp.MustCompile(`^\s*(?:export\s+)?(?:default\s+)?class\s+(\w+)`),
			regexp.MustCompile(`^\s+(?:async\s+)?(\w+)\s*\([^)]*\)\s*\{\s*$`),
		},
	},
	LangTypeScript: {
		commentPrefix: "//",
		keywords:      keywordSet("if", "for", "while", "switch", "catch", "return", "function", "constructor"),
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`^\s*(?:export\s+)?(?:default\s+)?(?:async\s+)?function\s*\*?\s*(\w+)\s*[<(]`),
			regexp.MustCompile(`^\s*(?:export\s+)?(?:const|let|var)\s+(\w+)\s*=\s*(?:async\s*)?(?:function\b|\([^)]*\)\s*(?::\s*[^=]+)?=>|\w+\s*=>)`),
			regexp.MustCompile(`^\s*(?:export\s+)?(?:default\s+)?(?:abstract\s+)?class\s+(\w+)`),
			regexp.MustCompile(`^\s*(?:export\s+)?(?:interface|type)\s+(\w+)`),
			regexp.MustCompile(`^\s+(?:public\s+|private\s+|protected\s+|static\s+|async\s+)*(\w+)\s*\([^)]*\)\s*[:{]`),
		},
	},
	LangGo: {
		commentPrefix: "//",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`^func\s+(?:\([^)]+\)\s+)?(\w+)\s*[<(]`),
			regexp.MustCompile(`^type\s+(\w+)\s+(?:struct|interface)\b`),
		},
	},
	LangPHP: {
		commentPrefix: "//",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`^\s*(?:(?:public|private|protected|static|final|abstract)\s+)*function\s+(\w+)\s*\(`),
			regexp.MustCompile(`^\s*(?:final\s+|abstract\s+)?(?:class|interface|trait)\s+(\w+)`),
		},
	},
	LangKotlin: {
		commentPrefix: "//",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`^\s*(?:(?:public|private|internal|protected|open|override|suspend|inline|operator)\s+)*fun\s+(?:<[^>]+>\s+)?(\w+)\s*\(`),
			regexp.MustCompile(`^\s*(?:(?:public|private|internal|abstract|open|data|sealed|enum)\s+)*(?:class|interface|object)\s+(\w+)`),
		},
	},
	LangSwift: {
		commentPrefix: "//",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`^\s*(?:(?:public|private|internal|open|static|override|final)\s+)*func\s+(\w+)\s*[<(]`),
			regexp.MustCompile(`^\s*(?:(?:public|private|internal|open|final)\s+)*(?:class|struct|protocol|enum|extension)\s+(\w+)`),
		},
	},
	LangC: {
		commentPrefix: "//",
		keywords:      keywordSet("if", "for", "while", "switch", "return", "sizeof"),
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`^\s*(?:typedef\s+)?(?:struct|enum|union)\s+(\w+)`),
			regexp.MustCompile(`^[A-Za-z_][\w\s\*]*[\s\*](\w+)\s*\([^;]*$`),
			regexp.MustCompile(`^[A-Za-z_][\w\s\*]*[\s\*](\w+)\s*\([^;)]*\)\s*\{?\s*$`),
		},
	},
	LangCPP: {
		commentPrefix: "//",
		keywords:      keywordSet("if", "for", "while", "switch", "return", "sizeof", "catch"),
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`^\s*(?:class|struct)\s+(\w+)`),
			regexp.MustCompile(`^\s*namespace\s+(\w+)`),
			regexp.MustCompile(`^[A-Za-z_][\w:\s\*&<>]*[\s\*&](\w+)\s*\([^;]*$`),
			regexp.MustCompile(`^[A-Za-z_][\w:\s\*&<>]*[\s\*&](\w+)\s*\([^;)]*\)\s*(?:const\s*)?\{?\s*$`),
		},
	},
	LangCSharp: {
		commentPrefix: "//",
		keywords:      keywordSet("if", "for", "foreach", "while", "switch", "return", "catch", "using"),
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`^\s*(?:(?:public|private|protected|internal|static|sealed|abstract|partial)\s+)*(?:class|interface|struct|record|enum)\s+(\w+)`),
			regexp.MustCompile(`^\s*(?:(?:public|private|protected|internal|static|virtual|override|async|sealed)\s+)+[\w<>\[\],\s\?]+\s+(\w+)\s*\(`),
		},
	},
	LangRuby: {
		commentPrefix: "#",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`^\s*def\s+([\w.?!]+)`),
			regexp.MustCompile(`^\s*(?:class|module)\s+(\w+)`),
		},
	},
	LangRust: {
		commentPrefix: "//",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`^\s*(?:pub\s+)?(?:async\s+)?fn\s+(\w+)`),
			regexp.MustCompile(`^\s*(?:pub\s+)?(?:struct|enum|trait)\s+(\w+)`),
			regexp.MustCompile(`^\s*impl(?:\s*<[^>]*>)?\s+(?:\w+\s+for\s+)?(\w+)`),
			regexp.MustCompile(`^\s*(?:pub\s+)?mod\s+(\w+)`),
		},
	},
	LangZig: {
		commentPrefix: "//",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`^\s*(?:pub\s+)?fn\s+(\w+)`),
			regexp.MustCompile(`^\s*(?:pub\s+)?const\s+(\w+)\s*=\s*(?:struct|enum|union)`),
			regexp.MustCompile(`^\s*test\s+"([^"]+)"`),
		},
	},
}
