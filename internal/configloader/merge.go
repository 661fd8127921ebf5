package configloader

import (
	"maps"
	"slices"

	"github.com/yaklabco/kumihan/pkg/config"
)

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Pointer values: override overwrites base if override is non-nil
//   - Maps: deep merge, with override's values taking precedence
//   - Ignore patterns: appended, duplicates dropped
//   - Nil/unset values in override do not override values in base
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := base.Clone()

	if override.Strict != nil {
		strict := *override.Strict
		result.Strict = &strict
	}
	if override.Flavor != "" {
		result.Flavor = override.Flavor
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Parser != "" {
		result.Parser = override.Parser
	}

	if override.Cache.Enabled != nil {
		enabled := *override.Cache.Enabled
		result.Cache.Enabled = &enabled
	}
	if override.Cache.Size != 0 {
		result.Cache.Size = override.Cache.Size
	}
	if override.Chunking.Lines != 0 {
		result.Chunking.Lines = override.Chunking.Lines
	}
	if override.Chunking.Jobs != 0 {
		result.Chunking.Jobs = override.Chunking.Jobs
	}

	result.Parsers = mergeParsers(result.Parsers, override.Parsers)

	if override.Keywords != nil {
		if result.Keywords == nil {
			result.Keywords = make(map[string]string, len(override.Keywords))
		}
		maps.Copy(result.Keywords, override.Keywords)
	}

	for _, pattern := range override.Ignore {
		if !slices.Contains(result.Ignore, pattern) {
			result.Ignore = append(result.Ignore, pattern)
		}
	}

	return result
}

// mergeParsers performs a deep merge of per-parser overrides.
// base is owned by the caller and may be modified.
func mergeParsers(base, override map[string]config.ParserConfig) map[string]config.ParserConfig {
	if override == nil {
		return base
	}
	if base == nil {
		base = make(map[string]config.ParserConfig, len(override))
	}

	for name, val := range override {
		existing := base[name]
		if val.Enabled != nil {
			enabled := *val.Enabled
			existing.Enabled = &enabled
		}
		if val.Priority != nil {
			priority := *val.Priority
			existing.Priority = &priority
		}
		base[name] = existing
	}

	return base
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
