// Package list parses list notation: unordered, ordered, alphabetic,
// roman-numeral, definition and checklist items, nested by indentation.
package list

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/yaklabco/kumihan/pkg/parser"
)

// Item types, recorded in attributes.item_type and attributes.list_type.
const (
	Unordered  = "unordered"
	Ordered    = "ordered"
	Alpha      = "alpha"
	Roman      = "roman"
	Definition = "definition"
	Checklist  = "checklist"
)

// TabWidth is the number of columns a tab counts for in indentation.
const TabWidth = 4

//nolint:gochecknoglobals // Compiled once, read-only.
var patterns = parser.MustPatterns(map[string]string{
	Checklist:  `^([ \t]*)([-*+・])\s*\[([ xX✓])\]\s+(.*)$`,
	Unordered:  `^([ \t]*)([-*+]\s+|・\s*)(.*\S.*)$`,
	Ordered:    `^([ \t]*)(\d+)([.)])\s+(.*)$`,
	Roman:      `^([ \t]*)([ivxlcdm]+|[IVXLCDM]+)([.)])\s+(.*)$`,
	Alpha:      `^([ \t]*)([a-zA-Z])([.)])\s+(.*)$`,
	Definition: `^([ \t]*)(\S.*?)\s+::\s+(\S.*)$`,
})

//nolint:gochecknoglobals // Compiled once, read-only.
var romanNumeral = regexp.MustCompile(`^M{0,3}(CM|CD|D?C{0,3})(XC|XL|L?X{0,3})(IX|IV|V?I{0,3})$`)

// item is one recognized list line before tree building.
type item struct {
	kind    string
	indent  int
	marker  string
	text    string
	number  int
	checked bool
	term    string
	line    int
}

// matchItem recognizes a single list item line.
func matchItem(line string) (item, bool) {
	if m := patterns.Submatch(Checklist, line); m != nil {
		return item{
			kind:    Checklist,
			indent:  indentWidth(m[1]),
			marker:  m[2],
			checked: m[3] != " ",
			text:    strings.TrimSpace(m[4]),
		}, true
	}
	if m := patterns.Submatch(Unordered, line); m != nil {
		return item{
			kind:   Unordered,
			indent: indentWidth(m[1]),
			marker: strings.TrimSpace(m[2]),
			text:   strings.TrimSpace(m[3]),
		}, true
	}
	if m := patterns.Submatch(Ordered, line); m != nil {
		n, err := strconv.Atoi(m[2])
		if err == nil {
			return item{
				kind:   Ordered,
				indent: indentWidth(m[1]),
				marker: m[2] + m[3],
				number: n,
				text:   strings.TrimSpace(m[4]),
			}, true
		}
	}
	if m := patterns.Submatch(Roman, line); m != nil && isRoman(m[2]) {
		return item{
			kind:   Roman,
			indent: indentWidth(m[1]),
			marker: m[2] + m[3],
			number: romanValue(m[2]),
			text:   strings.TrimSpace(m[4]),
		}, true
	}
	if m := patterns.Submatch(Alpha, line); m != nil {
		return item{
			kind:   Alpha,
			indent: indentWidth(m[1]),
			marker: m[2] + m[3],
			number: int(strings.ToLower(m[2])[0]-'a') + 1,
			text:   strings.TrimSpace(m[4]),
		}, true
	}
	if m := patterns.Submatch(Definition, line); m != nil {
		return item{
			kind:   Definition,
			indent: indentWidth(m[1]),
			marker: "::",
			term:   strings.TrimSpace(m[2]),
			text:   strings.TrimSpace(m[3]),
		}, true
	}
	return item{}, false
}

// isRoman reports whether s is a roman numeral. Single letters other than
// i and I are treated as alphabetic markers.
func isRoman(s string) bool {
	if len(s) == 1 {
		return s == "i" || s == "I"
	}
	return romanNumeral.MatchString(strings.ToUpper(s))
}

//nolint:gochecknoglobals // Read-only lookup table.
var romanDigits = map[byte]int{'I': 1, 'V': 5, 'X': 10, 'L': 50, 'C': 100, 'D': 500, 'M': 1000}

func romanValue(s string) int {
	s = strings.ToUpper(s)
	total := 0
	for i := range len(s) {
		v := romanDigits[s[i]]
		if i+1 < len(s) && v < romanDigits[s[i+1]] {
			total -= v
		} else {
			total += v
		}
	}
	return total
}

//nolint:gochecknoglobals // Read-only lookup table.
var romanSteps = []struct {
	value  int
	symbol string
}{
	{1000, "m"}, {900, "cm"}, {500, "d"}, {400, "cd"},
	{100, "c"}, {90, "xc"}, {50, "l"}, {40, "xl"},
	{10, "x"}, {9, "ix"}, {5, "v"}, {4, "iv"}, {1, "i"},
}

// toRoman renders n (1..3999) as a lower-case roman numeral.
func toRoman(n int) string {
	var sb strings.Builder
	for _, step := range romanSteps {
		for n >= step.value {
			sb.WriteString(step.symbol)
			n -= step.value
		}
	}
	return sb.String()
}

// toAlpha renders n as a, b, ... z, aa, ab, ...
func toAlpha(n int) string {
	var out []byte
	for n > 0 {
		n--
		out = append([]byte{byte('a' + n%26)}, out...)
		n /= 26
	}
	return string(out)
}

// indentWidth measures leading whitespace in columns.
func indentWidth(ws string) int {
	width := 0
	for _, r := range ws {
		if r == '\t' {
			width += TabWidth
		} else {
			width++
		}
	}
	return width
}
