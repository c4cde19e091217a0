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
	encoder.SetIndent(YAMLIndent())

	if err := encoder.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}

	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}

	return buf.Bytes(), nil
}

// FromYAML parses a configuration from YAML bytes.
// Unknown keys are rejected so that typos in config files surface early.
func FromYAML(data []byte) (*Config, error) {
	cfg := &Config{}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil {
		// An empty document is a valid, empty config.
		if len(bytes.TrimSpace(data)) == 0 {
			return cfg, nil
		}
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	return cfg, nil
}

// Clone creates a deep copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	clone := *c
	clone.Layout.CharWidths = maps.Clone(c.Layout.CharWidths)
	clone.Layout.ChineseMarks = slices.Clone(c.Layout.ChineseMarks)
	clone.Layout.LinesPerPage = clonePtr(c.Layout.LinesPerPage)
	clone.Layout.MaxLineWidth = clonePtr(c.Layout.MaxLineWidth)
	clone.Input.Markdown = clonePtr(c.Input.Markdown)
	clone.Input.Trim = clonePtr(c.Input.Trim)
	clone.Input.CollapseBlankLines = clonePtr(c.Input.CollapseBlankLines)
	clone.Delivery.Delay = clonePtr(c.Delivery.Delay)
	clone.Delivery.PageLimit = clonePtr(c.Delivery.PageLimit)
	clone.Delivery.Wait = clonePtr(c.Delivery.Wait)

	return &clone
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// YAMLIndent returns the default YAML indentation.
func YAMLIndent() int {
	return 2
}
