// Package config loads the engine's YAML configuration: blend weights,
// candidate-generation bounds, the minimum confidence for the
// whole-sentence convenience wrapper, and the HTTP listen address.
package config

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/nl-sre/semantico/engine"
)

// Config is the top-level shape of the YAML configuration file.
type Config struct {
	Weights struct {
		Char    float64 `yaml:"char"`
		Grammar float64 `yaml:"grammar"`
		Context float64 `yaml:"context"`
	} `yaml:"weights"`
	MinConfidence   float64 `yaml:"min_confidence"`
	MaxEditDistance int     `yaml:"max_edit_distance"`
	MaxCandidates   int     `yaml:"max_candidates"`
	ListenAddr      string  `yaml:"listen_addr"`
}

// Default returns the configuration matching the spec's documented
// defaults: weights (0.30, 0.30, 0.40), min_confidence 0.60, k=3, cap=64.
func Default() Config {
	var c Config
	c.Weights.Char = 0.30
	c.Weights.Grammar = 0.30
	c.Weights.Context = 0.40
	c.MinConfidence = 0.60
	c.MaxEditDistance = 3
	c.MaxCandidates = 64
	c.ListenAddr = ":8080"
	return c
}

// Load parses a YAML document into a Config, starting from Default so any
// field the document omits keeps its documented default.
func Load(r io.Reader) (Config, error) {
	c := Default()
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&c); err != nil && err != io.EOF {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return c, nil
}

// BlendWeights converts the YAML weight fields into an engine.Weights.
func (c Config) BlendWeights() engine.Weights {
	return engine.Weights{Char: c.Weights.Char, Grammar: c.Weights.Grammar, Context: c.Weights.Context}
}

// EngineConfig converts the candidate-generation bounds into an
// engine.Config.
func (c Config) EngineConfig() engine.Config {
	return engine.Config{MaxEditDistance: c.MaxEditDistance, MaxCandidates: c.MaxCandidates}
}
