package keyword

import (
	"strings"

	"github.com/yaklabco/kumihan/pkg/ast"
	"github.com/yaklabco/kumihan/pkg/parser"
)

//nolint:gochecknoglobals // Read-only lookup table.
var alignments = map[string]bool{
	"left":    true,
	"center":  true,
	"right":   true,
	"justify": true,
}

// attributeHandler applies one [key:value] attribute to a node.
type attributeHandler func(node *ast.Node, styles map[string]string, value string, c *parser.Collector)

//nolint:gochecknoglobals // Read-only dispatch table.
var attributeHandlers = map[string]attributeHandler{
	"color": func(node *ast.Node, styles map[string]string, value string, c *parser.Collector) {
		if !parser.IsColor(value) {
			c.Warn("invalid color %q", value)
		}
		node.SetAttr("color", value)
		styles["color"] = value
	},
	"size": func(node *ast.Node, styles map[string]string, value string, _ *parser.Collector) {
		node.SetAttr("size", value)
		if isDigits(value) {
			value += "px"
		}
		styles["font-size"] = value
	},
	"align": func(node *ast.Node, styles map[string]string, value string, c *parser.Collector) {
		node.SetAttr("align", value)
		if !alignments[strings.ToLower(value)] {
			c.Warn("invalid alignment %q", value)
			return
		}
		styles["text-align"] = strings.ToLower(value)
	},
	"class": func(node *ast.Node, _ map[string]string, value string, _ *parser.Collector) {
		node.SetAttr("class", value)
		if classes := strings.Fields(value); len(classes) > 0 {
			node.SetAttr("classes", classes)
		}
	},
	"id": func(node *ast.Node, _ map[string]string, value string, _ *parser.Collector) {
		node.SetAttr("id", value)
	},
	"style": func(node *ast.Node, styles map[string]string, value string, c *parser.Collector) {
		for _, decl := range strings.Split(value, ";") {
			decl = strings.TrimSpace(decl)
			if decl == "" {
				continue
			}
			prop, val, ok := strings.Cut(decl, ":")
			prop, val = strings.TrimSpace(prop), strings.TrimSpace(val)
			if !ok || prop == "" || val == "" {
				c.Warn("invalid style declaration %q", decl)
				continue
			}
			styles[strings.ToLower(prop)] = val
		}
	},
	"lang":     setLanguage,
	"language": setLanguage,
}

func setLanguage(node *ast.Node, _ map[string]string, value string, _ *parser.Collector) {
	node.SetAttr("language", value)
}

// ApplyAttributes runs the attribute handlers for attrs in source order.
// Keys without a handler are attached as-is. Style-like attributes are
// collected into attributes.styles.
func ApplyAttributes(node *ast.Node, attrs []parser.Attribute, c *parser.Collector) {
	if node == nil || len(attrs) == 0 {
		return
	}

	styles := make(map[string]string)
	for _, attr := range attrs {
		if handler, ok := attributeHandlers[attr.Key]; ok {
			handler(node, styles, attr.Value, c)
			continue
		}
		node.SetAttr(attr.Key, attr.Value)
	}

	if len(styles) > 0 {
		node.SetAttr("styles", styles)
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
