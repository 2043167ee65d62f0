// Package config provides YAML-backed configuration for the facade,
// adapted from the teacher's Config struct (which already carried yaml
// struct tags but was never actually passed through a yaml.v3 Decoder).
package config

import (
	"io"
	"time"

	"gopkg.in/yaml.v3"
)

// Config modifies Facade behaviour/output. Set with Facade.SetConfig.
type Config struct {
	Log struct {
		Results bool `yaml:"results"`
	} `yaml:"log"`
	Behaviour struct {
		StepDelay time.Duration `yaml:"delay"`
	} `yaml:"behaviour"`
	Algorithm struct {
		Steps int `yaml:"steps"`
	} `yaml:"algorithm"`
}

// Default returns the Config a Facade starts with absent an explicit Load.
func Default() Config {
	cfg := Config{}
	cfg.Log.Results = true
	cfg.Algorithm.Steps = 1
	return cfg
}

// Load decodes a Config from r.
func Load(r io.Reader) (Config, error) {
	var cfg Config
	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Save encodes cfg to w.
func (cfg Config) Save(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(cfg)
}
