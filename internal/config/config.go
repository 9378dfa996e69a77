// Package config loads fixturegen settings. Precedence is command-line flags,
// then the YAML file, then built-in defaults.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"pkg.jsn.cam/talentfixtures/pkg/fixture"
)

// Defaults reproduce the stock fixture: 500 talent records in args.json
const (
	DefaultOutput = "args.json"
	DefaultCount  = 500
)

// Config is the resolved generation configuration
type Config struct {
	Generator  string             `yaml:"generator"`
	Count      int                `yaml:"count"`
	Output     string             `yaml:"output"`
	Seed       uint64             `yaml:"seed"` // 0 draws a random seed
	Catalog    string             `yaml:"catalog"`
	Vocabulary fixture.Vocabulary `yaml:"vocabulary"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Generator:  fixture.DefaultGenerator,
		Count:      DefaultCount,
		Output:     DefaultOutput,
		Vocabulary: fixture.DefaultVocabulary(),
	}
}

// Load reads the YAML file at path over the defaults. Unknown keys are rejected.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML config data over the defaults
func Parse(data []byte) (Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg.withDefaults(), nil
}

func (c Config) withDefaults() Config {
	d := Default()
	if c.Generator == "" {
		c.Generator = d.Generator
	}
	if c.Count == 0 {
		c.Count = d.Count
	}
	if c.Output == "" {
		c.Output = d.Output
	}
	c.Vocabulary = c.Vocabulary.WithDefaults()
	return c
}

// Validate checks the configuration before any output is touched
func (c Config) Validate() error {
	if _, ok := fixture.Registry[c.Generator]; !ok {
		return fmt.Errorf("%w: %s (available: %v)", fixture.ErrUnknownGenerator, c.Generator, fixture.List())
	}
	if c.Count <= 0 {
		return fmt.Errorf("%w: %d", fixture.ErrInvalidCount, c.Count)
	}
	if c.Output == "" {
		return errors.New("output path is required")
	}
	return c.Vocabulary.Validate()
}
