package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/kumihan/pkg/config"
)

func TestConfigClone(t *testing.T) {
	t.Run("nil config returns nil", func(t *testing.T) {
		var c *config.Config
		assert.Nil(t, c.Clone())
	})

	t.Run("empty config", func(t *testing.T) {
		c := &config.Config{}
		clone := c.Clone()
		require.NotNil(t, clone)
		assert.NotSame(t, c, clone)
	})

	t.Run("deep copies parser overrides", func(t *testing.T) {
		enabled := true
		priority := 50
		original := &config.Config{
			Parsers: map[string]config.ParserConfig{
				"list": {Enabled: &enabled, Priority: &priority},
			},
		}

		clone := original.Clone()
		*clone.Parsers["list"].Priority = 5
		clone.Parsers["markdown"] = config.ParserConfig{}

		assert.Equal(t, 50, *original.Parsers["list"].Priority)
		assert.NotContains(t, original.Parsers, "markdown")
	})

	t.Run("deep copies keywords and pointers", func(t *testing.T) {
		original := config.NewConfig()
		original.Keywords["注意"] = "notice"
		original.Format = config.FormatJSON
		original.Parser = "block"

		clone := original.Clone()
		clone.Keywords["追加"] = "extra"
		*clone.Strict = true
		*clone.Cache.Enabled = false

		assert.NotContains(t, original.Keywords, "追加")
		assert.False(t, original.IsStrict())
		assert.True(t, original.CacheEnabled())
		assert.Equal(t, config.FormatJSON, clone.Format)
		assert.Equal(t, "block", clone.Parser)
	})
}

func TestFromYAML(t *testing.T) {
	t.Run("full document", func(t *testing.T) {
		data := []byte(`
strict: true
flavor: commonmark
parsers:
  list:
    enabled: false
  markdown:
    priority: 120
keywords:
  注意: notice
cache:
  enabled: false
  size: 32
chunking:
  lines: 200
  jobs: 4
`)
		cfg, err := config.FromYAML(data)
		require.NoError(t, err)

		assert.True(t, cfg.IsStrict())
		assert.Equal(t, config.FlavorCommonMark, cfg.Flavor)
		assert.False(t, cfg.ParserEnabled("list"))
		assert.True(t, cfg.ParserEnabled("block"))
		assert.Equal(t, 120, cfg.ParserPriority("markdown", 80))
		assert.Equal(t, 70, cfg.ParserPriority("list", 70))
		assert.Equal(t, "notice", cfg.Keywords["注意"])
		assert.False(t, cfg.CacheEnabled())
		assert.Equal(t, 32, cfg.Cache.Size)
		assert.Equal(t, 200, cfg.Chunking.Lines)
		assert.Equal(t, 4, cfg.Chunking.Jobs)
	})

	t.Run("empty document", func(t *testing.T) {
		cfg, err := config.FromYAML([]byte("  \n"))
		require.NoError(t, err)
		assert.Nil(t, cfg.Strict)
	})

	t.Run("unknown field", func(t *testing.T) {
		_, err := config.FromYAML([]byte("flavour: gfm\n"))
		require.Error(t, err)
	})

	t.Run("cli fields are ignored on output", func(t *testing.T) {
		cfg := config.NewConfig()
		cfg.Parser = "block"
		out, err := cfg.ToYAML()
		require.NoError(t, err)
		assert.NotContains(t, string(out), "block")
		assert.Contains(t, string(out), "flavor: gfm")
	})
}

func TestConfigHelpers_NilSafe(t *testing.T) {
	var c *config.Config
	assert.False(t, c.IsStrict())
	assert.True(t, c.CacheEnabled())
	assert.True(t, c.ParserEnabled("block"))
	assert.Equal(t, 7, c.ParserPriority("block", 7))
}
