package config

import (
	"bytes"
	"fmt"
	"maps"
	"slices"

	"gopkg.in/yaml.v3"
)

// ToYAML serializes the configuration to YAML format.
func (c *Config) ToYAML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)

	if err := encoder.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}

	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}

	return buf.Bytes(), nil
}

// FromYAML parses a configuration from YAML bytes. Unknown fields are
// rejected so that typos in config files surface as errors.
func FromYAML(data []byte) (*Config, error) {
	cfg := &Config{}
	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, nil
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	return cfg, nil
}

// Clone creates a deep copy of the configuration, including CLI-only
// fields.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	clone := *c
	clone.Strict = clonePtr(c.Strict)
	clone.Cache.Enabled = clonePtr(c.Cache.Enabled)
	clone.Keywords = maps.Clone(c.Keywords)
	clone.Ignore = slices.Clone(c.Ignore)

	if c.Parsers != nil {
		clone.Parsers = make(map[string]ParserConfig, len(c.Parsers))
		for name, pc := range c.Parsers {
			clone.Parsers[name] = ParserConfig{
				Enabled:  clonePtr(pc.Enabled),
				Priority: clonePtr(pc.Priority),
			}
		}
	}

	return &clone
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
