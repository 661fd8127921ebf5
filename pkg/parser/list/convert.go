package list

import (
	"fmt"
	"strconv"

	"github.com/yaklabco/kumihan/pkg/ast"
)

// converters rebuild the marker of the n-th (1-based) item of a list.
//
//nolint:gochecknoglobals // Read-only dispatch table.
var converters = map[string]func(item *ast.Node, n int){
	Unordered: func(item *ast.Node, _ int) {
		item.SetAttr("marker", "-")
		delete(item.Attributes, "number")
	},
	Ordered: func(item *ast.Node, n int) {
		item.SetAttr("marker", strconv.Itoa(n)+".").SetAttr("number", n)
	},
	Alpha: func(item *ast.Node, n int) {
		item.SetAttr("marker", toAlpha(n)+".").SetAttr("number", n)
	},
	Roman: func(item *ast.Node, n int) {
		item.SetAttr("marker", toRoman(n)+".").SetAttr("number", n)
	},
	Checklist: func(item *ast.Node, _ int) {
		checked, _ := item.Attr("checked")
		if _, ok := checked.(bool); !ok {
			item.SetAttr("checked", false)
		}
		item.SetAttr("marker", "-")
		delete(item.Attributes, "number")
	},
}

// Convert returns a copy of list with every item, nested lists included,
// rewritten as target. Definition items keep their term. An unsupported
// target or a node that is not a list yields an unchanged copy and a
// warning; list itself is never modified.
func Convert(list *ast.Node, target string) (*ast.Node, []string) {
	clone := list.Clone()
	if list == nil || list.Type != ast.TypeList {
		return clone, []string{"convert: node is not a list"}
	}

	convert, ok := converters[target]
	if !ok {
		return clone, []string{fmt.Sprintf("convert: unsupported list type %q", target)}
	}

	for _, sub := range ast.FindByType(clone, ast.TypeList) {
		n := 0
		for _, item := range sub.Children {
			if item.Type != ast.TypeListItem {
				continue
			}
			n++
			if target != Checklist {
				delete(item.Attributes, "checked")
			}
			item.SetAttr("item_type", target)
			convert(item, n)
		}
		sub.SetAttr("list_type", PrimaryType(sub))
	}

	return clone, nil
}
