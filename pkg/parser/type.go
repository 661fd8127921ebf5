package parser

import "strings"

// Type identifies a notation parser.
type Type uint8

// Parser types. TypeUnknown is the zero value and never registered.
const (
	TypeUnknown Type = iota
	TypeBlock
	TypeKeyword
	TypeMarkdown
	TypeList
	TypeContent
)

// String returns the parser name used in ParseResult.ParserType.
func (t Type) String() string {
	switch t {
	case TypeBlock:
		return "block"
	case TypeKeyword:
		return "keyword"
	case TypeMarkdown:
		return "markdown"
	case TypeList:
		return "list"
	case TypeContent:
		return "content"
	default:
		return "unknown"
	}
}

// IsValid returns true for every type except TypeUnknown.
func (t Type) IsValid() bool {
	return t >= TypeBlock && t <= TypeContent
}

// AllTypes returns the known parser types in declaration order.
func AllTypes() []Type {
	return []Type{TypeBlock, TypeKeyword, TypeMarkdown, TypeList, TypeContent}
}

// ParseType resolves a parser name (case-insensitive) to its Type.
func ParseType(name string) (Type, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, t := range AllTypes() {
		if t.String() == name {
			return t, true
		}
	}
	return TypeUnknown, false
}
