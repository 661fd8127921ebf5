package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/kumihan/pkg/parser"
)

func TestExtractAttributes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		segment   string
		wantRest  string
		wantAttrs []parser.Attribute
	}{
		{
			name:     "no attributes",
			segment:  " 太字 ",
			wantRest: "太字",
		},
		{
			name:      "hex color keeps hash",
			segment:   "ハイライト[color:#ff0000]",
			wantRest:  "ハイライト",
			wantAttrs: []parser.Attribute{{Key: "color", Value: "#ff0000"}},
		},
		{
			name:     "multiple in order with lowercase keys",
			segment:  "code[Language: go][id:main]",
			wantRest: "code",
			wantAttrs: []parser.Attribute{
				{Key: "language", Value: "go"},
				{Key: "id", Value: "main"},
			},
		},
		{
			name:     "brackets without colon stay",
			segment:  "box[wide]",
			wantRest: "box[wide]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rest, attrs := parser.ExtractAttributes(tt.segment)
			assert.Equal(t, tt.wantRest, rest)
			assert.Equal(t, tt.wantAttrs, attrs)
		})
	}
}

func TestAttributeMap_LaterWins(t *testing.T) {
	t.Parallel()

	got := parser.AttributeMap([]parser.Attribute{{Key: "id", Value: "a"}, {Key: "id", Value: "b"}})
	assert.Equal(t, map[string]any{"id": "b"}, got)
	assert.Nil(t, parser.AttributeMap(nil))
}

func TestIsColor(t *testing.T) {
	t.Parallel()

	for _, ok := range []string{"#fff", "#FFAA00", "#ffaa0080", "red", "SkyBlue"} {
		assert.True(t, parser.IsColor(ok), ok)
	}
	for _, bad := range []string{"#ff", "#gggggg", "light blue", "", "12"} {
		assert.False(t, parser.IsColor(bad), bad)
	}
}
