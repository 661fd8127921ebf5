package configloader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/kumihan/pkg/config"
)

func isolated(workDir string) LoadOptions {
	return LoadOptions{
		WorkingDir:         workDir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	}
}

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	result, err := Load(context.Background(), isolated(t.TempDir()))
	require.NoError(t, err)
	require.NotNil(t, result.Config)

	assert.Equal(t, config.FlavorGFM, result.Config.Flavor)
	assert.False(t, result.Config.IsStrict())
	assert.True(t, result.Config.CacheEnabled())
	assert.Empty(t, result.LoadedFrom)
}

func TestLoad_ProjectConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	path := writeConfig(t, tmpDir, ".kumihan.yml", `
strict: true
parsers:
  list:
    enabled: false
keywords:
  注意: notice
`)

	result, err := Load(context.Background(), isolated(tmpDir))
	require.NoError(t, err)

	assert.True(t, result.Config.IsStrict())
	assert.False(t, result.Config.ParserEnabled("list"))
	assert.Equal(t, "notice", result.Config.Keywords["注意"])
	assert.Equal(t, []string{path}, result.LoadedFrom)
}

func TestLoad_ProjectConfigFromParentDir(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeConfig(t, root, "kumihan.yaml", "flavor: commonmark\n")
	nested := filepath.Join(root, "docs", "guide")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	result, err := Load(context.Background(), isolated(nested))
	require.NoError(t, err)
	assert.Equal(t, config.FlavorCommonMark, result.Config.Flavor)
	assert.Equal(t, root, result.Paths.ProjectRoot)
}

func TestLoad_StopsAtVCSRoot(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeConfig(t, root, ".kumihan.yml", "strict: true\n")
	repo := filepath.Join(root, "repo")
	require.NoError(t, os.MkdirAll(filepath.Join(repo, ".git"), 0o755))

	result, err := Load(context.Background(), isolated(repo))
	require.NoError(t, err)
	assert.False(t, result.Config.IsStrict())
	assert.Empty(t, result.Paths.Project)
	assert.Equal(t, repo, result.Paths.ProjectRoot)
}

func TestLoad_ExplicitConfigOverridesProject(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, ".kumihan.yml", "flavor: commonmark\ncache:\n  size: 10\n")
	explicit := writeConfig(t, tmpDir, "custom.yml", "flavor: gfm\n")

	opts := isolated(tmpDir)
	opts.ExplicitPath = explicit

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, config.FlavorGFM, result.Config.Flavor)
	assert.Equal(t, 10, result.Config.Cache.Size)
	assert.Len(t, result.LoadedFrom, 2)
	assert.Equal(t, explicit, result.Paths.Explicit)
}

func TestLoad_CLIOverridesEverything(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, ".kumihan.yml", "strict: true\n")

	notStrict := false
	opts := isolated(tmpDir)
	opts.CLIConfig = &config.Config{Strict: &notStrict, Format: config.FormatJSON, Parser: "block"}

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	assert.False(t, result.Config.IsStrict())
	assert.Equal(t, config.FormatJSON, result.Config.Format)
	assert.Equal(t, "block", result.Config.Parser)
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		field   string
	}{
		{name: "invalid flavor", content: "flavor: rst\n", field: "flavor"},
		{name: "negative cache", content: "cache:\n  size: -1\n", field: "cache.size"},
		{name: "builtin keyword", content: "keywords:\n  太字: loud\n", field: "keywords.太字"},
		{name: "reserved character", content: "keywords:\n  a+b: x\n", field: "keywords.a+b"},
		{name: "bad ignore glob", content: "ignore:\n  - \"[oops\"\n", field: "ignore[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tmpDir := t.TempDir()
			path := writeConfig(t, tmpDir, ".kumihan.yml", tt.content)

			_, err := Load(context.Background(), isolated(tmpDir))
			require.Error(t, err)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
			assert.Equal(t, path, verr.FilePath)
		})
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, ".kumihan.yml", "strict: [\n")

	_, err := Load(context.Background(), isolated(tmpDir))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load project config")
}

func TestLoad_UnknownParserWarns(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, ".kumihan.yml", "parsers:\n  rst:\n    enabled: true\n")

	result, err := Load(context.Background(), isolated(tmpDir))
	require.NoError(t, err)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], `unknown parser "rst"`)
}

func TestLoad_AllParsersDisabled(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, ".kumihan.yml", `
parsers:
  block: {enabled: false}
  keyword: {enabled: false}
  markdown: {enabled: false}
  list: {enabled: false}
  content: {enabled: false}
`)

	_, err := Load(context.Background(), isolated(tmpDir))
	require.Error(t, err)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("KUMIHAN_STRICT", "true")
	t.Setenv("KUMIHAN_CACHE_SIZE", "12")
	t.Setenv("KUMIHAN_DISABLE_PARSERS", "markdown, list")
	t.Setenv("KUMIHAN_IGNORE", "drafts/**, *.bak")

	opts := isolated(t.TempDir())
	opts.IgnoreEnv = false

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	assert.True(t, result.Config.IsStrict())
	assert.Equal(t, 12, result.Config.Cache.Size)
	assert.False(t, result.Config.ParserEnabled("markdown"))
	assert.False(t, result.Config.ParserEnabled("list"))
	assert.True(t, result.Config.ParserEnabled("block"))
	assert.Equal(t, []string{"drafts/**", "*.bak"}, result.Config.Ignore)
}

func TestLoadFromEnv_InvalidValues(t *testing.T) {
	t.Setenv("KUMIHAN_JOBS", "many")
	err := LoadFromEnv(config.NewConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "KUMIHAN_JOBS")
}

func TestListEnvVars(t *testing.T) {
	t.Parallel()

	vars := ListEnvVars()
	assert.Contains(t, vars, "KUMIHAN_STRICT")
	assert.Equal(t, "KUMIHAN_CHUNK_LINES", GetEnvVarName("chunking.lines"))
	assert.Empty(t, GetEnvVarName("nope"))
}

func TestMergeAll(t *testing.T) {
	t.Parallel()

	low, high := 10, 200
	base := config.NewConfig()
	base.Parsers["list"] = config.ParserConfig{Priority: &low}

	disabled := false
	project := &config.Config{
		Parsers:  map[string]config.ParserConfig{"list": {Enabled: &disabled}},
		Keywords: map[string]string{"注意": "notice"},
		Ignore:   []string{"drafts"},
	}
	cli := &config.Config{
		Parsers: map[string]config.ParserConfig{"block": {Priority: &high}},
		Ignore:  []string{"drafts", "*.bak"},
	}

	merged := MergeAll(base, project, cli)

	assert.False(t, merged.ParserEnabled("list"))
	assert.Equal(t, 10, merged.ParserPriority("list", 70))
	assert.Equal(t, 200, merged.ParserPriority("block", 100))
	assert.Equal(t, "notice", merged.Keywords["注意"])
	assert.Equal(t, []string{"drafts", "*.bak"}, merged.Ignore)
	assert.NotContains(t, base.Parsers, "block")
	assert.Nil(t, MergeAll())
}

func TestWriteFile(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", ".kumihan.yml")

	backup, err := WriteFile(ctx, path, []byte("strict: true\n"), false)
	require.NoError(t, err)
	assert.Empty(t, backup)

	_, err = WriteFile(ctx, path, []byte("strict: false\n"), false)
	require.ErrorIs(t, err, ErrConfigExists)

	backup, err = WriteFile(ctx, path, []byte("strict: false\n"), true)
	require.NoError(t, err)
	assert.Equal(t, path+".bak", backup)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "strict: false\n", string(data))

	data, err = os.ReadFile(backup)
	require.NoError(t, err)
	assert.Equal(t, "strict: true\n", string(data))
}
