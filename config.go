package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the server configuration, optionally loaded from a YAML file.
// Request parameters override the solver section per call.
type Config struct {
	Listen string       `yaml:"listen"`
	Solver SolverConfig `yaml:"solver"`
}

// SolverConfig mirrors SolveOptions plus the cost tuning in file form.
type SolverConfig struct {
	SampleCount       int     `yaml:"sampleCount"`
	Iterations        int     `yaml:"iterations"`
	MaxRecursionDepth int     `yaml:"maxRecursionDepth"`
	Workers           int     `yaml:"workers"`
	Radius            float64 `yaml:"radius"`
	LinearPenalty     float64 `yaml:"linearPenalty"`
	AngularPenalty    float64 `yaml:"angularPenalty"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	opts := DefaultSolveOptions()
	return Config{
		Listen: ":8080",
		Solver: SolverConfig{
			SampleCount:    opts.SampleCount,
			Iterations:     opts.Iterations,
			Workers:        opts.Workers,
			Radius:         opts.Chi.Radius,
			LinearPenalty:  opts.Chi.LinearPenalty,
			AngularPenalty: opts.Chi.AngularPenalty,
		},
	}
}

// LoadConfig reads the YAML config file, falling back to defaults when the
// file does not exist.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Options converts the file config into solver options.
func (s SolverConfig) Options() SolveOptions {
	return SolveOptions{
		SampleCount:       s.SampleCount,
		Iterations:        s.Iterations,
		MaxRecursionDepth: s.MaxRecursionDepth,
		Workers:           s.Workers,
		Chi: ChiParams{
			Radius:         s.Radius,
			LinearPenalty:  s.LinearPenalty,
			AngularPenalty: s.AngularPenalty,
		},
	}.normalized()
}
