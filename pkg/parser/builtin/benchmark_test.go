package builtin_test

import (
	"context"
	"strings"
	"testing"

	"github.com/yaklabco/kumihan/pkg/config"
	"github.com/yaklabco/kumihan/pkg/parser"
	"github.com/yaklabco/kumihan/pkg/parser/builtin"
)

const benchSection = `#見出し2#Section##

#太字#bold text## and #イタリック inline#

- one
- two
- three

Plain paragraph with a [link](https://example.com).
`

func benchCoordinator(b *testing.B, cacheEnabled bool) *parser.Coordinator {
	b.Helper()

	cfg := config.NewConfig()
	cfg.Cache.Enabled = &cacheEnabled
	c, err := builtin.NewCoordinator(builtin.Options{Config: cfg})
	if err != nil {
		b.Fatal(err)
	}
	return c
}

func BenchmarkParse(b *testing.B) {
	c := benchCoordinator(b, false)
	b.ResetTimer()
	for range b.N {
		c.Parse(benchSection, parser.Options{})
	}
}

func BenchmarkParse_Cached(b *testing.B) {
	c := benchCoordinator(b, true)
	b.ResetTimer()
	for range b.N {
		c.Parse(benchSection, parser.Options{})
	}
}

func BenchmarkChunked(b *testing.B) {
	content := strings.Repeat(benchSection+"\n", 200)
	chunked := &parser.Chunked{Coordinator: benchCoordinator(b, false), ChunkLines: 100}
	ctx := context.Background()

	b.ResetTimer()
	for range b.N {
		if _, err := chunked.Parse(ctx, content, parser.Options{}); err != nil {
			b.Fatal(err)
		}
	}
}
