package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Rules are the game rules that can change while the server runs.
type Rules struct {
	// AllowNegative lets base attributes below zero through validation.
	AllowNegative bool `yaml:"allow_negative"`
}

// DefaultRules returns the rules used when no rules file is configured.
func DefaultRules() *Rules {
	return &Rules{AllowNegative: false}
}

// LoadRules reads the YAML rules file at path. An empty path yields
// DefaultRules; fields absent from the file keep their defaults.
func LoadRules(path string) (*Rules, error) {
	rules := DefaultRules()
	if path == "" {
		return rules, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read rules: %w", err)
	}
	if err := yaml.Unmarshal(data, rules); err != nil {
		return nil, fmt.Errorf("config: parse rules yaml: %w", err)
	}
	return rules, nil
}
