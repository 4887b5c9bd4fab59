package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RunConfig describes one FTMA run read from a YAML file: coordinator
// parameters, every client's metric vector, and which clients survive to
// Finalize. It is the thin, host-language-style wrapper format this CLI
// exists to exercise — not part of the core's wire protocol.
type RunConfig struct {
	NumClients int               `yaml:"num_clients"`
	Threshold  int               `yaml:"threshold"`
	Dimension  int               `yaml:"dimension"`
	Scale      int64             `yaml:"scale"`
	Seed       *uint64           `yaml:"seed"`
	Clients    map[int][]float64 `yaml:"clients"`
	Active     []int             `yaml:"active"`
}

// loadRunConfig reads and parses a YAML run description.
func loadRunConfig(path string) (*RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ftmactl: reading %s: %w", path, err)
	}
	var cfg RunConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("ftmactl: parsing %s: %w", path, err)
	}
	if cfg.Scale == 0 {
		cfg.Scale = 1_000_000
	}
	return &cfg, nil
}
