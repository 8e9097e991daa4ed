package config

import (
	"bytes"
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// yamlIndent matches the indentation of generated templates.
const yamlIndent = 2

// ToYAML encodes the file-backed keys of c. CLI-only fields are omitted.
func (c *Config) ToYAML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(yamlIndent)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// ToYAMLWithHeader is ToYAML preceded by a comment block and a blank line.
func (c *Config) ToYAMLWithHeader(header string) ([]byte, error) {
	data, err := c.ToYAML()
	if err != nil || header == "" {
		return data, err
	}
	return slices.Concat([]byte(strings.TrimRight(header, "\n")), []byte("\n\n"), data), nil
}

// FromYAML decodes a configuration. Keys absent from data stay unset so
// later layers can tell them apart from explicit zero values.
func FromYAML(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return cfg, nil
}

// Clone returns a deep copy of c, CLI-only fields included.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	clone := *c
	clone.Ignore = slices.Clone(c.Ignore)
	clone.Extensions = slices.Clone(c.Extensions)
	if c.StartIndex != nil {
		clone.StartIndex = IntPtr(*c.StartIndex)
	}
	if c.Inspect != nil {
		clone.Inspect = BoolPtr(*c.Inspect)
	}
	return &clone
}
