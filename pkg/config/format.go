package config

import (
	"fmt"
	"strings"
)

// AllFormats returns the supported output formats.
func AllFormats() []OutputFormat {
	return []OutputFormat{FormatTree, FormatJSON}
}

// IsValid returns true if the output format is supported.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatTree, FormatJSON:
		return true
	default:
		return false
	}
}

// ParseFormat resolves a format name (case-insensitive).
// An empty name yields FormatTree.
func ParseFormat(name string) (OutputFormat, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return FormatTree, nil
	}
	format := OutputFormat(name)
	if !format.IsValid() {
		return "", fmt.Errorf("unknown format %q; must be one of: tree, json", name)
	}
	return format, nil
}

// IsValid returns true if the flavor is known.
func (f Flavor) IsValid() bool {
	switch f {
	case FlavorCommonMark, FlavorGFM:
		return true
	default:
		return false
	}
}
