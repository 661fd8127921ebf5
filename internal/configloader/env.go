package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/kumihan/pkg/config"
)

// envVarPrefix is the prefix for all kumihan environment variables.
const envVarPrefix = "KUMIHAN_"

// envMapping binds one environment variable to a config field.
type envMapping struct {
	field       string
	description string
	apply       func(cfg *config.Config, value string) error
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"STRICT": {
		field:       "strict",
		description: "Report recoverable issues as errors: true or false",
		apply:       boolField(func(c *config.Config, v bool) { c.Strict = &v }),
	},
	"FLAVOR": {
		field:       "flavor",
		description: "Markdown flavor: commonmark or gfm",
		apply:       stringField(func(c *config.Config, v string) { c.Flavor = config.Flavor(v) }),
	},
	"FORMAT": {
		field:       "format",
		description: "Output format: tree or json",
		apply:       stringField(func(c *config.Config, v string) { c.Format = config.OutputFormat(v) }),
	},
	"PARSER": {
		field:       "parser",
		description: "Force a parser: block, keyword, markdown, list, or content",
		apply:       stringField(func(c *config.Config, v string) { c.Parser = v }),
	},
	"CACHE_ENABLED": {
		field:       "cache.enabled",
		description: "Memoize parse results: true or false",
		apply:       boolField(func(c *config.Config, v bool) { c.Cache.Enabled = &v }),
	},
	"CACHE_SIZE": {
		field:       "cache.size",
		description: "Number of memoized parse results",
		apply:       intField(func(c *config.Config, v int) { c.Cache.Size = v }),
	},
	"CHUNK_LINES": {
		field:       "chunking.lines",
		description: "Target lines per parallel chunk",
		apply:       intField(func(c *config.Config, v int) { c.Chunking.Lines = v }),
	},
	"JOBS": {
		field:       "chunking.jobs",
		description: "Number of parallel file and chunk parses (0 = auto)",
		apply:       intField(func(c *config.Config, v int) { c.Chunking.Jobs = v }),
	},
	"DISABLE_PARSERS": {
		field:       "parsers.disabled",
		description: "Comma-separated list of parsers to disable",
		apply:       listField(disableParsers),
	},
	"IGNORE": {
		field:       "ignore",
		description: "Comma-separated glob patterns skipped in directories",
		apply:       listField(func(c *config.Config, v []string) { c.Ignore = append(c.Ignore, v...) }),
	},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with KUMIHAN_ (e.g., KUMIHAN_STRICT).
// Empty variables are ignored.
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for suffix, mapping := range envMappings {
		name := envVarPrefix + suffix
		value := os.Getenv(name)
		if value == "" {
			continue
		}
		if err := mapping.apply(cfg, value); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}

	return nil
}

func stringField(set func(*config.Config, string)) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		set(cfg, strings.TrimSpace(value))
		return nil
	}
}

func boolField(set func(*config.Config, bool)) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		b, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("invalid boolean %q (expected true/false/1/0)", value)
		}
		set(cfg, b)
		return nil
	}
}

func intField(set func(*config.Config, int)) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		i, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("invalid integer %q", value)
		}
		set(cfg, i)
		return nil
	}
}

// listField splits a comma-separated value, trimming and dropping empty
// elements.
func listField(set func(*config.Config, []string)) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		var items []string
		for part := range strings.SplitSeq(value, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				items = append(items, trimmed)
			}
		}
		set(cfg, items)
		return nil
	}
}

func disableParsers(cfg *config.Config, names []string) {
	if cfg.Parsers == nil {
		cfg.Parsers = make(map[string]config.ParserConfig, len(names))
	}
	for _, name := range names {
		pc := cfg.Parsers[name]
		disabled := false
		pc.Enabled = &disabled
		cfg.Parsers[name] = pc
	}
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// ListEnvVars returns all supported environment variables with their descriptions.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envMappings))
	for suffix, mapping := range envMappings {
		vars[envVarPrefix+suffix] = mapping.description
	}
	return vars
}
