// Package config loads simulation run settings from YAML files and named
// presets.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultLevel       = "toy"
	DefaultTemperature = 300.0
	DefaultSeed        = 42
	DefaultSequence    = "ACDEFG"
)

// Rotation is one perturbation: an angle increment in radians applied to a
// residue's phi dihedral.
type Rotation struct {
	Residue int     `yaml:"residue"`
	Angle   float64 `yaml:"angle"`
}

// Config describes one simulation run.
type Config struct {
	Sequence    string     `yaml:"sequence"`
	Level       string     `yaml:"level"`
	Temperature float64    `yaml:"temperature"`
	Seed        int64      `yaml:"seed"`
	Rotations   []Rotation `yaml:"rotations"`
	DataDir     string     `yaml:"data_dir"`
}

func Default() *Config {
	return &Config{
		Sequence:    DefaultSequence,
		Level:       DefaultLevel,
		Temperature: DefaultTemperature,
		Seed:        DefaultSeed,
		DataDir:     ".foldsim",
	}
}

// Load reads a YAML config, filling unset fields with defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Sequence == "" {
		return fmt.Errorf("config: sequence must not be empty")
	}
	if c.Temperature <= 0 {
		return fmt.Errorf("config: temperature must be positive, got %f", c.Temperature)
	}
	for _, r := range c.Rotations {
		if r.Residue < 0 || r.Residue >= len(c.Sequence) {
			return fmt.Errorf("config: rotation residue %d outside sequence of length %d",
				r.Residue, len(c.Sequence))
		}
	}
	return nil
}
