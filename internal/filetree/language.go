package filetree

import (
	"path"
	"strings"
)

var languages = map[string]string{
	"js":       "javascript",
	"jsx":      "javascript",
	"ts":       "typescript",
	"tsx":      "typescript",
	"py":       "python",
	"java":     "java",
	"rb":       "ruby",
	"go":       "go",
	"rs":       "rust",
	"json":     "json",
	"md":       "markdown",
	"css":      "css",
	"html":     "html",
	"htm":      "html",
	"sh":       "makefile",
	"bash":     "makefile",
	"makefile": "makefile",
	"yml":      "yaml",
	"yaml":     "yaml",
	"c":        "c",
	"cpp":      "cpp",
	"cc":       "cpp",
	"cxx":      "cpp",
	"hpp":      "cpp",
	"h":        "cpp",
	"php":      "php",
	"swift":    "swift",
	"kt":       "kotlin",
	"kts":      "kotlin",
	"pl":       "perl",
	"xml":      "xml",
}

// Language names the highlighting language for a file path, "text" when unknown.
// A name without a dot is looked up as a whole, so Makefile maps like an extension.
func Language(p string) string {
	base := path.Base(p)
	ext := base
	if i := strings.LastIndexByte(base, '.'); i >= 0 {
		ext = base[i+1:]
	}
	if lang, ok := languages[strings.ToLower(ext)]; ok {
		return lang
	}
	return "text"
}
