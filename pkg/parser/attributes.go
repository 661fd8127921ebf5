package parser

import (
	"regexp"
	"strings"
)

var (
	attributePattern = regexp.MustCompile(`\[([A-Za-z_][\w-]*)\s*:\s*([^\]]*)\]`)
	hexColorPattern  = regexp.MustCompile(`^#(?:[0-9A-Fa-f]{3}|[0-9A-Fa-f]{4}|[0-9A-Fa-f]{6}|[0-9A-Fa-f]{8})$`)
	colorNamePattern = regexp.MustCompile(`^[A-Za-z]+$`)
)

// Attribute is a single [key:value] pair in source order.
type Attribute struct {
	Key   string
	Value string
}

// ExtractAttributes removes every [key:value] group from segment and returns
// the remaining text (trimmed) together with the pairs in source order.
// Keys are lower-cased; later duplicates win when converted to a map.
func ExtractAttributes(segment string) (string, []Attribute) {
	matches := attributePattern.FindAllStringSubmatchIndex(segment, -1)
	if len(matches) == 0 {
		return strings.TrimSpace(segment), nil
	}

	attrs := make([]Attribute, 0, len(matches))
	var rest strings.Builder
	last := 0
	for _, m := range matches {
		rest.WriteString(segment[last:m[0]])
		attrs = append(attrs, Attribute{
			Key:   strings.ToLower(segment[m[2]:m[3]]),
			Value: strings.TrimSpace(segment[m[4]:m[5]]),
		})
		last = m[1]
	}
	rest.WriteString(segment[last:])

	return strings.TrimSpace(rest.String()), attrs
}

// AttributeMap converts pairs to a map; later keys overwrite earlier ones.
func AttributeMap(attrs []Attribute) map[string]any {
	if len(attrs) == 0 {
		return nil
	}
	out := make(map[string]any, len(attrs))
	for _, a := range attrs {
		out[a.Key] = a.Value
	}
	return out
}

// IsColor reports whether value is a hex color (#rgb, #rgba, #rrggbb,
// #rrggbbaa) or a plain color name.
func IsColor(value string) bool {
	return hexColorPattern.MatchString(value) || colorNamePattern.MatchString(value)
}
