package main

import (
	"os"

	"gopkg.in/yaml.v3"
)

// replConfig is the optional ".golox.yaml" preferences file, loaded from
// the current directory at REPL startup if present. None of its fields
// are required; a missing or unreadable file just means the built-in
// defaults stand.
type replConfig struct {
	Prompt string `yaml:"prompt"`
	Banner *bool  `yaml:"banner"`
	Color  *bool  `yaml:"color"`
}

func loadReplConfig(path string) *replConfig {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var cfg replConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		redColor.Fprintf(os.Stderr, "[CONFIG ERROR] %s: %v\n", path, err)
		return nil
	}
	return &cfg
}
