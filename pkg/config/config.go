// Package config loads the configuration of interpreter limits.
package config

import (
	"bytes"
	"errors"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"src.noviq.dev/pkg/block"
	"src.noviq.dev/pkg/diag"
	"src.noviq.dev/pkg/env"
	"src.noviq.dev/pkg/vars"
)

// Config keeps the limits of the interpreter and the REPL.
type Config struct {
	MaxVariables  int    `yaml:"max_variables"`
	MaxNesting    int    `yaml:"max_nesting"`
	FileExtension string `yaml:"file_extension"`
	HistorySize   int    `yaml:"history_size"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		MaxVariables:  vars.DefaultMaxVars,
		MaxNesting:    block.DefaultMaxNesting,
		FileExtension: ".nvq",
		HistorySize:   1000,
	}
}

// Path returns the path of the configuration file: flag if it is not empty,
// otherwise the value of $NOVIQ_CONFIG.
func Path(flag string) string {
	if flag != "" {
		return flag
	}
	return os.Getenv(env.NOVIQ_CONFIG)
}

// Load reads the configuration file at path. An empty path means the default
// configuration.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, &diag.Error{Kind: diag.File,
			Message: "Cannot read configuration: " + err.Error()}
	}
	return Parse(data, path)
}

// Parse parses a YAML configuration. Keys that are absent take their default
// values. Unknown keys and limits less than 1 are errors.
func Parse(data []byte, name string) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, &diag.Error{Kind: diag.File, File: name,
			Message: "Invalid configuration: " + err.Error()}
	}
	if err := cfg.validate(); err != nil {
		return Config{}, diag.WithFile(err, name)
	}
	return cfg, nil
}

func (cfg Config) validate() error {
	for _, limit := range []struct {
		name  string
		value int
	}{
		{"max_variables", cfg.MaxVariables},
		{"max_nesting", cfg.MaxNesting},
		{"history_size", cfg.HistorySize},
	} {
		if limit.value < 1 {
			return diag.Errorf(diag.File, "Invalid configuration: %s must be at least 1, got %d",
				limit.name, limit.value)
		}
	}
	if !strings.HasPrefix(cfg.FileExtension, ".") || len(cfg.FileExtension) < 2 {
		return diag.Errorf(diag.File,
			"Invalid configuration: file_extension must start with '.', got %q", cfg.FileExtension)
	}
	return nil
}
