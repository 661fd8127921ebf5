// Package langdetect guesses the source language of a code block that
// carries no explicit language. It combines shebang lookup, a few strong
// textual hints, and the go-enry classifier.
package langdetect

import (
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Unknown is returned by Detect when no language could be guessed.
const Unknown = "text"

//nolint:gochecknoglobals // Read-only classifier candidate set.
var candidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
	"YAML", "HTML", "CSS", "Markdown", "Dockerfile",
}

// hint recognizes one language from unambiguous markers.
type hint struct {
	lang  string
	match func(code, trimmed string) bool
}

// hints are tried in order; earlier entries are more specific.
//
//nolint:gochecknoglobals // Read-only lookup table.
var hints = []hint{
	{"go", func(_, trimmed string) bool {
		return strings.HasPrefix(trimmed, "package ")
	}},
	{"python", func(code, trimmed string) bool {
		if strings.Contains(code, "__name__") || (strings.Contains(code, "def ") && strings.Contains(code, "):")) {
			return true
		}
		return strings.HasPrefix(trimmed, "import ") && !strings.Contains(code, "import (") ||
			strings.HasPrefix(trimmed, "from ") && strings.Contains(code, " import ")
	}},
	{"html", func(_, trimmed string) bool {
		lower := strings.ToLower(trimmed)
		return containsAny(lower, "<!doctype html", "<html", "<head>", "<body>")
	}},
	{"json", func(_, trimmed string) bool {
		return (strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[")) &&
			strings.Contains(trimmed, `"`)
	}},
	{"dockerfile", func(code, trimmed string) bool {
		return strings.HasPrefix(trimmed, "FROM ") ||
			strings.Contains(code, "\nFROM ") && strings.Contains(code, "\nRUN ")
	}},
	{"sql", func(_, trimmed string) bool {
		upper := strings.ToUpper(trimmed)
		for _, verb := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE "} {
			if strings.HasPrefix(upper, verb) {
				return true
			}
		}
		return false
	}},
	{"rust", func(code, _ string) bool {
		return containsAny(code, "fn main()", "println!", "let mut ")
	}},
	{"javascript", func(code, _ string) bool {
		return containsAny(code, "=>", "console.log", "const ", "function ")
	}},
	{"yaml", func(code, _ string) bool {
		return yamlPairs(code) >= 2
	}},
}

// Detect returns the guessed language of code, or Unknown.
func Detect(code string) string {
	if lang, ok := Guess(code); ok {
		return lang
	}
	return Unknown
}

// Guess returns the language of code and whether the guess is confident.
func Guess(code string) (string, bool) {
	if strings.TrimSpace(code) == "" {
		return "", false
	}

	data := []byte(code)
	if lang, safe := enry.GetLanguageByShebang(data); safe {
		return fenceName(lang), true
	}

	trimmed := strings.TrimSpace(code)
	for _, h := range hints {
		if h.match(code, trimmed) {
			return h.lang, true
		}
	}

	if lang, safe := enry.GetLanguageByClassifier(data, candidates); safe && lang != "" {
		return fenceName(lang), true
	}
	return "", false
}

// fenceName maps a go-enry language name to a fence info string.
func fenceName(lang string) string {
	if lang == "Shell" {
		return "bash"
	}
	return strings.ToLower(lang)
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// yamlPairs counts lines that look like "key: value" or "- item".
func yamlPairs(code string) int {
	count := 0
	for _, line := range strings.Split(code, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == "", strings.HasPrefix(line, "#"):
		case strings.HasPrefix(line, "- "):
			count++
		case strings.Contains(line, ": ") && !strings.ContainsAny(line, "({") && !strings.HasPrefix(line, `"`):
			count++
		}
	}
	return count
}
