package content

import (
	"math"
	"regexp"
	"slices"
	"strings"
	"unicode"

	"golang.org/x/text/width"
)

// Content types.
const (
	TypeKumihan   = "kumihan"
	TypeMarkdown  = "markdown"
	TypeHTML      = "html"
	TypePlainText = "plain_text"
)

// Dominant languages.
const (
	LanguageJapanese = "japanese"
	LanguageEnglish  = "english"
	LanguageMixed    = "mixed"
	LanguageUnknown  = "unknown"
)

//nolint:gochecknoglobals // Compiled once, read-only.
var (
	kumihanMarker  = regexp.MustCompile(`(?m)^\s*#(?:[^#\[\]\s]|\[[^\]]*\])+#|#(?:[^#\s\[\]]|\[[^\]]*\])+[ \t]+[^#\n]+#`)
	htmlTag        = regexp.MustCompile(`(?i)<(/?)([a-z][a-z0-9]*)\b[^>]*>`)
	markdownSyntax = regexp.MustCompile("(?m)^ {0,3}#{1,6}[ \\t]+\\S|^ {0,3}```|^ {0,3}>|\\*\\*[^*\\n]+\\*\\*|\\[[^\\]\\n]+\\]\\([^)\\n]+\\)|`[^`\\n]+`")
	paragraphSplit = regexp.MustCompile(`\n[ \t\x{3000}]*\n`)
	sentenceEnd    = regexp.MustCompile(`[。．！？!?]+|\.(?:\s|$)`)
	urlPattern     = regexp.MustCompile(`https?://[^\s<>"'）)\]]+`)
	emailPattern   = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	datePattern    = regexp.MustCompile(`\d{4}[-/]\d{1,2}[-/]\d{1,2}|\d{4}年\d{1,2}月\d{1,2}日`)
)

// Paragraph is one blank-line separated block of text.
type Paragraph struct {
	Text      string
	Line      int
	Sentences int
}

// Entities holds the named entities found in the text, each list in
// order of first appearance without duplicates.
type Entities struct {
	URLs   []string
	Emails []string
	Dates  []string
}

func (e Entities) asMap() map[string]any {
	return map[string]any{
		"urls":   nonNil(e.URLs),
		"emails": nonNil(e.Emails),
		"dates":  nonNil(e.Dates),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// Analysis is the classification of a text.
type Analysis struct {
	ContentType    string
	Language       string
	JapaneseRatio  float64
	ASCIIRatio     float64
	FullwidthRatio float64
	Paragraphs     []Paragraph
	Sentences      int
	Entities       Entities
}

// Analyze classifies text. Ratios are computed over non-space runes and
// rounded to three decimals.
func Analyze(text string) Analysis {
	a := Analysis{
		ContentType: Classify(text),
		Paragraphs:  Paragraphs(text),
		Entities: Entities{
			URLs:   unique(urlPattern.FindAllString(text, -1)),
			Emails: unique(emailPattern.FindAllString(text, -1)),
			Dates:  unique(datePattern.FindAllString(text, -1)),
		},
	}
	for _, p := range a.Paragraphs {
		a.Sentences += p.Sentences
	}

	var total, japanese, ascii, fullwidth int
	for _, r := range text {
		if unicode.IsSpace(r) {
			continue
		}
		total++
		if isJapanese(r) {
			japanese++
		}
		if r <= unicode.MaxASCII {
			ascii++
		}
		if kind := width.LookupRune(r).Kind(); kind == width.EastAsianFullwidth || kind == width.EastAsianWide {
			fullwidth++
		}
	}

	a.JapaneseRatio = ratio(japanese, total)
	a.ASCIIRatio = ratio(ascii, total)
	a.FullwidthRatio = ratio(fullwidth, total)

	switch {
	case total == 0:
		a.Language = LanguageUnknown
	case a.JapaneseRatio >= 0.5:
		a.Language = LanguageJapanese
	case a.ASCIIRatio >= 0.9:
		a.Language = LanguageEnglish
	default:
		a.Language = LanguageMixed
	}

	return a
}

// Classify returns the coarse content type of text. Kumihan markers take
// precedence over HTML, and HTML over Markdown.
func Classify(text string) string {
	switch {
	case kumihanMarker.MatchString(text):
		return TypeKumihan
	case isHTML(text):
		return TypeHTML
	case markdownSyntax.MatchString(text):
		return TypeMarkdown
	default:
		return TypePlainText
	}
}

// isHTML requires a closing tag or at least two tags so that a stray
// "<b>" in prose is not enough.
func isHTML(text string) bool {
	tags := htmlTag.FindAllStringSubmatch(text, -1)
	if len(tags) >= 2 {
		return true
	}
	return len(tags) == 1 && tags[0][1] == "/"
}

// Paragraphs splits text on blank lines. Lines inside a paragraph keep
// their line breaks; surrounding whitespace is trimmed.
func Paragraphs(text string) []Paragraph {
	var out []Paragraph

	line := 1
	last := 0
	emit := func(chunk string, startLine int) {
		trimmed := strings.TrimSpace(chunk)
		if trimmed == "" {
			return
		}
		leading := strings.Count(chunk[:strings.Index(chunk, trimmed)], "\n")
		out = append(out, Paragraph{
			Text:      trimmed,
			Line:      startLine + leading,
			Sentences: CountSentences(trimmed),
		})
	}

	for _, m := range paragraphSplit.FindAllStringIndex(text, -1) {
		emit(text[last:m[0]], line)
		line += strings.Count(text[last:m[1]], "\n")
		last = m[1]
	}
	emit(text[last:], line)

	return out
}

// CountSentences counts sentence terminators; trailing text without one
// counts as a sentence.
func CountSentences(text string) int {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0
	}
	ends := sentenceEnd.FindAllStringIndex(text, -1)
	count := len(ends)
	if count == 0 || strings.TrimSpace(text[ends[count-1][1]:]) != "" {
		count++
	}
	return count
}

func isJapanese(r rune) bool {
	return unicode.In(r, unicode.Hiragana, unicode.Katakana, unicode.Han) || r == 'ー' || r == '々'
}

func ratio(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(total)*1000) / 1000
}

func unique(items []string) []string {
	var out []string
	for _, item := range items {
		if !slices.Contains(out, item) {
			out = append(out, item)
		}
	}
	return out
}
