package keyword

import (
	"strings"

	"github.com/yaklabco/kumihan/pkg/ast"
	"github.com/yaklabco/kumihan/pkg/parser"
)

// Compound is a keyword segment split into its parts.
// "太字+イタリック-下線" has primary 太字, modifier イタリック and
// exclusion 下線.
type Compound struct {
	Primary    string
	Modifiers  []string
	Exclusions []string
}

// SplitCompound splits a keyword segment on '+' and ',' (modifiers) and
// '-' (exclusions). Empty parts are dropped. A modifier that is also
// excluded is removed.
func SplitCompound(segment string) Compound {
	var (
		compound Compound
		current  strings.Builder
		sep      rune
		first    = true
	)

	flush := func() {
		part := strings.TrimSpace(current.String())
		current.Reset()
		if part == "" {
			return
		}
		switch {
		case first:
			compound.Primary = part
			first = false
		case sep == '-':
			compound.Exclusions = append(compound.Exclusions, part)
		default:
			compound.Modifiers = append(compound.Modifiers, part)
		}
	}

	for _, r := range segment {
		switch r {
		case '+', ',', '-':
			flush()
			sep = r
		default:
			current.WriteRune(r)
		}
	}
	flush()

	if len(compound.Exclusions) > 0 && len(compound.Modifiers) > 0 {
		kept := compound.Modifiers[:0]
		for _, m := range compound.Modifiers {
			if !containsFold(compound.Exclusions, m) {
				kept = append(kept, m)
			}
		}
		compound.Modifiers = kept
	}

	return compound
}

// IsCompound reports whether the compound has modifiers or exclusions.
func (c Compound) IsCompound() bool {
	return len(c.Modifiers) > 0 || len(c.Exclusions) > 0
}

func containsFold(list []string, s string) bool {
	for _, item := range list {
		if normalize(item) == normalize(s) {
			return true
		}
	}
	return false
}

// Lookup resolves the primary keyword of a segment that may carry
// [key:value] attributes and compound separators.
func (v *Vocabulary) Lookup(segment string) (Compound, Definition, bool) {
	rest, _ := parser.ExtractAttributes(segment)
	compound := SplitCompound(rest)
	def, ok := v.Resolve(compound.Primary)
	return compound, def, ok
}

// Build turns a keyword segment and its content into a node.
//
// The primary keyword gives the node type; modifiers nest inside it, with
// the innermost node holding content and children. An unknown primary
// keyword produces an unknown_keyword node, an unknown modifier is skipped;
// both are reported through c.
func (v *Vocabulary) Build(segment, content string, children []*ast.Node, c *parser.Collector) *ast.Node {
	rest, attrs := parser.ExtractAttributes(segment)
	compound := SplitCompound(rest)

	var node *ast.Node
	if def, ok := v.Resolve(compound.Primary); ok {
		node = NewNode(def)
	} else {
		c.Issue("unknown keyword %q", compound.Primary)
		node = ast.NewNode(ast.TypeUnknownKeyword)
	}
	node.SetAttr("keyword", rest)

	inner := node
	for _, name := range compound.Modifiers {
		def, ok := v.Resolve(name)
		if !ok {
			c.Issue("unknown modifier keyword %q in %q", name, rest)
			continue
		}
		modifier := NewNode(def)
		modifier.SetMeta("modifier", true)
		ast.AppendChild(inner, modifier)
		inner = modifier
	}
	if len(compound.Exclusions) > 0 {
		node.SetAttr("exclusions", compound.Exclusions)
	}

	if len(children) > 0 {
		ast.AppendChild(inner, children...)
	} else {
		inner.Content = content
	}

	ApplyAttributes(node, attrs, c)
	return node
}

// NewNode creates the node a definition produces. Headings carry their
// level attribute.
func NewNode(def Definition) *ast.Node {
	node := ast.NewNode(def.NodeType)
	if def.Name == NameHeading {
		level := def.Level
		if level < 1 {
			level = 1
		}
		node.SetAttr("level", min(level, MaxHeadingLevel))
	}
	return node
}
