// Package keyword maps Kumihan keywords (Japanese and English) to node types
// and provides the inline keyword parser.
package keyword

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/yaklabco/kumihan/pkg/ast"
)

// Canonical keyword names.
const (
	NameBold          = "bold"
	NameItalic        = "italic"
	NameHeading       = "heading"
	NameCode          = "code"
	NameUnderline     = "underline"
	NameStrikethrough = "strikethrough"
	NameList          = "list"
	NameTable         = "table"
	NameQuote         = "quote"
	NameFootnote      = "footnote"
	NameHighlight     = "highlight"
	NameWarning       = "warning"
	NameInfo          = "info"
	NameError         = "error"
	NameImage         = "image"
	NameImportant     = "important"
)

// MaxHeadingLevel is the deepest heading level.
const MaxHeadingLevel = 6

// Definition describes a keyword.
type Definition struct {
	// Name is the canonical (English) keyword name.
	Name string

	// NodeType is the type of the node the keyword produces.
	NodeType string

	// Aliases are the other spellings that resolve to this keyword.
	Aliases []string

	// Level is the heading level for heading keywords, 0 otherwise.
	Level int

	// Custom is true for keywords registered at runtime.
	Custom bool
}

//nolint:gochecknoglobals // Read-only lookup table.
var builtinDefinitions = []Definition{
	{Name: NameBold, NodeType: ast.TypeBold, Aliases: []string{"太字", "強調"}},
	{Name: NameItalic, NodeType: ast.TypeItalic, Aliases: []string{"イタリック", "斜体"}},
	{Name: NameHeading, NodeType: ast.TypeHeading, Aliases: []string{"見出し"}},
	{Name: NameCode, NodeType: ast.TypeCode, Aliases: []string{"コード"}},
	{Name: NameUnderline, NodeType: ast.TypeUnderline, Aliases: []string{"下線"}},
	{Name: NameStrikethrough, NodeType: ast.TypeStrikethrough, Aliases: []string{"取り消し線", "打ち消し線"}},
	{Name: NameList, NodeType: ast.TypeList, Aliases: []string{"リスト"}},
	{Name: NameTable, NodeType: ast.TypeTable, Aliases: []string{"表", "テーブル"}},
	{Name: NameQuote, NodeType: ast.TypeQuote, Aliases: []string{"引用"}},
	{Name: NameFootnote, NodeType: ast.TypeFootnote, Aliases: []string{"脚注"}},
	{Name: NameHighlight, NodeType: ast.TypeHighlight, Aliases: []string{"ハイライト"}},
	{Name: NameWarning, NodeType: ast.TypeWarning, Aliases: []string{"警告"}},
	{Name: NameInfo, NodeType: ast.TypeInfo, Aliases: []string{"情報"}},
	{Name: NameError, NodeType: ast.TypeErrorNotice, Aliases: []string{"エラー"}},
	{Name: NameImage, NodeType: ast.TypeImage, Aliases: []string{"画像"}},
	{Name: NameImportant, NodeType: ast.TypeImportant, Aliases: []string{"重要"}},
}

//nolint:gochecknoglobals // Read-only lookup table.
var headingNumerals = map[rune]int{
	'1': 1, '2': 2, '3': 3, '4': 4, '5': 5, '6': 6,
	'１': 1, '２': 2, '３': 3, '４': 4, '５': 5, '６': 6,
	'一': 1, '二': 2, '三': 3, '四': 4, '五': 5, '六': 6,
}

// Vocabulary resolves keywords to definitions. Built-in keywords are fixed;
// custom keywords can be registered by name at runtime.
//
// Vocabulary is safe for concurrent use.
type Vocabulary struct {
	mu      sync.RWMutex
	builtin map[string]Definition
	custom  map[string]Definition
}

// NewVocabulary creates a vocabulary holding the built-in keywords.
func NewVocabulary() *Vocabulary {
	v := &Vocabulary{
		builtin: make(map[string]Definition, len(builtinDefinitions)*3),
		custom:  make(map[string]Definition),
	}
	for _, def := range builtinDefinitions {
		v.builtin[normalize(def.Name)] = def
		for _, alias := range def.Aliases {
			v.builtin[normalize(alias)] = def
		}
	}
	return v
}

// normalize lower-cases ASCII letters and trims surrounding space.
func normalize(keyword string) string {
	return strings.ToLower(strings.TrimSpace(keyword))
}

// RegisterCustom adds a custom keyword producing nodes of nodeType.
// Built-in names cannot be shadowed; re-registering a custom name replaces it.
func (v *Vocabulary) RegisterCustom(name, nodeType string) error {
	key := normalize(name)
	if key == "" {
		return fmt.Errorf("register keyword: empty name")
	}
	if strings.ContainsAny(key, "#[]+-, \t") {
		return fmt.Errorf("register keyword %q: name contains a reserved character", name)
	}
	if strings.TrimSpace(nodeType) == "" {
		return fmt.Errorf("register keyword %q: empty node type", name)
	}
	if _, _, ok := v.resolveBuiltin(key); ok {
		return fmt.Errorf("register keyword %q: conflicts with a built-in keyword", name)
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.custom[key] = Definition{Name: strings.TrimSpace(name), NodeType: nodeType, Custom: true}
	return nil
}

// UnregisterCustom removes a custom keyword and reports whether it existed.
func (v *Vocabulary) UnregisterCustom(name string) bool {
	key := normalize(name)

	v.mu.Lock()
	defer v.mu.Unlock()
	if _, ok := v.custom[key]; !ok {
		return false
	}
	delete(v.custom, key)
	return true
}

// Validate reports whether keyword is a built-in or custom keyword.
// It does not look at content or attributes.
func (v *Vocabulary) Validate(keyword string) bool {
	_, ok := v.Resolve(keyword)
	return ok
}

// Resolve returns the definition for a single keyword. Heading keywords
// accept a trailing level (heading3, 見出し３, 見出し三); the returned
// definition carries that level.
func (v *Vocabulary) Resolve(keyword string) (Definition, bool) {
	key := normalize(keyword)
	if key == "" {
		return Definition{}, false
	}

	if def, level, ok := v.resolveBuiltin(key); ok {
		def.Level = level
		return def, true
	}

	v.mu.RLock()
	defer v.mu.RUnlock()
	def, ok := v.custom[key]
	return def, ok
}

func (v *Vocabulary) resolveBuiltin(key string) (Definition, int, bool) {
	if def, ok := v.builtin[key]; ok {
		if def.Name == NameHeading {
			return def, 1, true
		}
		return def, 0, true
	}

	runes := []rune(key)
	if len(runes) < 2 {
		return Definition{}, 0, false
	}
	level, isNumeral := headingNumerals[runes[len(runes)-1]]
	if !isNumeral {
		return Definition{}, 0, false
	}
	base := strings.TrimSpace(string(runes[:len(runes)-1]))
	if base == "h" {
		base = NameHeading
	}
	def, ok := v.builtin[base]
	if !ok || def.Name != NameHeading {
		return Definition{}, 0, false
	}
	return def, level, true
}

// Definitions returns all definitions, built-in first then custom,
// each group sorted by name.
func (v *Vocabulary) Definitions() []Definition {
	builtins := slices.Clone(builtinDefinitions)
	slices.SortFunc(builtins, func(a, b Definition) int { return cmp.Compare(a.Name, b.Name) })

	v.mu.RLock()
	customs := make([]Definition, 0, len(v.custom))
	for _, def := range v.custom {
		customs = append(customs, def)
	}
	v.mu.RUnlock()
	slices.SortFunc(customs, func(a, b Definition) int { return cmp.Compare(a.Name, b.Name) })

	return append(builtins, customs...)
}
