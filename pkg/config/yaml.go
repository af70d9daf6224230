package config

import (
	"bytes"
	"fmt"
	"maps"
	"slices"

	"gopkg.in/yaml.v3"
)

// yamlIndent is the indentation used when writing configs.
const yamlIndent = 2

// ToYAML serializes the configuration.
func (c *Config) ToYAML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(yamlIndent)

	if err := encoder.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}

	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}

	return buf.Bytes(), nil
}

// ToYAMLWithHeader serializes the configuration below a comment header.
func (c *Config) ToYAMLWithHeader(header string) ([]byte, error) {
	yamlBytes, err := c.ToYAML()
	if err != nil {
		return nil, err
	}

	if header == "" {
		return yamlBytes, nil
	}

	var buf bytes.Buffer
	buf.WriteString(header)
	if header[len(header)-1] != '\n' {
		buf.WriteByte('\n')
	}
	buf.WriteByte('\n')
	buf.Write(yamlBytes)

	return buf.Bytes(), nil
}

// FromYAML parses a configuration from YAML bytes. Fields absent from data
// stay at their zero value; callers merge the result over NewConfig.
func FromYAML(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	if cfg.Rules == nil {
		cfg.Rules = make(map[string]RuleConfig)
	}

	return cfg, nil
}

// UnmarshalYAML accepts both the mapping form and the scalar shorthand:
//
//	even-dash-run: false
//	max-arabic-numeral-digits: 3
//	leading-paragraph-chars: "　「"
func (rc *RuleConfig) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode, yaml.SequenceNode:
		var scalar any
		if err := value.Decode(&scalar); err != nil {
			return fmt.Errorf("decode rule value: %w", err)
		}
		*rc = RuleConfigFromValue(scalar)
		return nil

	default:
		type plain RuleConfig
		var decoded plain
		if err := value.Decode(&decoded); err != nil {
			return fmt.Errorf("decode rule config: %w", err)
		}
		*rc = RuleConfig(decoded)
		return nil
	}
}

// RuleConfigFromValue converts a shorthand value into a RuleConfig.
// Booleans toggle the rule, null disables it, anything else enables it
// with Options["value"] set.
func RuleConfigFromValue(value any) RuleConfig {
	switch v := value.(type) {
	case bool:
		return RuleConfig{Enabled: &v}
	case nil:
		disabled := false
		return RuleConfig{Enabled: &disabled}
	default:
		enabled := true
		return RuleConfig{
			Enabled: &enabled,
			Options: map[string]any{OptionValue: v},
		}
	}
}

// Clone creates a deep copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	clone := *c
	clone.Extensions = slices.Clone(c.Extensions)
	clone.Ignore = slices.Clone(c.Ignore)
	clone.EnableRules = slices.Clone(c.EnableRules)
	clone.DisableRules = slices.Clone(c.DisableRules)
	clone.FixRules = slices.Clone(c.FixRules)

	if c.Rules != nil {
		clone.Rules = make(map[string]RuleConfig, len(c.Rules))
		for k, v := range c.Rules {
			clone.Rules[k] = v.Clone()
		}
	}

	return &clone
}

// Clone creates a copy of the rule config. Nested values inside Options
// are shared.
func (rc RuleConfig) Clone() RuleConfig {
	clone := RuleConfig{}

	if rc.Enabled != nil {
		enabled := *rc.Enabled
		clone.Enabled = &enabled
	}

	if rc.Severity != nil {
		severity := *rc.Severity
		clone.Severity = &severity
	}

	if rc.AutoFix != nil {
		autoFix := *rc.AutoFix
		clone.AutoFix = &autoFix
	}

	if rc.Options != nil {
		clone.Options = maps.Clone(rc.Options)
	}

	return clone
}
