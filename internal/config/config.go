// Package config loads the optional YAML file carrying crawl
// defaults, so a bibliography's tuning can live next to it instead of
// on the command line.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the crawl configuration file (citegraph.yml).
type Config struct {
	// BaseURL is where the batch API is served, typically an s2proxy
	// instance.
	BaseURL string `yaml:"base_url,omitempty"`
	// MaxDepth is how many expansion rounds to run.
	MaxDepth int `yaml:"max_depth,omitempty"`
	// Connectivity tunes the expansion threshold growth. Informally,
	// tune it so only some dozens of papers are fetched in the last
	// round.
	Connectivity float64 `yaml:"connectivity,omitempty"`
	// CachePath enables the SQLite record cache when set.
	CachePath string `yaml:"cache_path,omitempty"`
	// PrunePasses overrides the pruning pass bound.
	PrunePasses int `yaml:"prune_passes,omitempty"`
}

// Load reads and validates a config file. A missing file is not an
// error: it yields an empty config so flags and defaults apply.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	if cfg.MaxDepth < 0 {
		return nil, fmt.Errorf("%s: max_depth must not be negative", path)
	}
	if cfg.Connectivity != 0 && cfg.Connectivity <= 1 {
		return nil, fmt.Errorf("%s: connectivity must be greater than 1", path)
	}
	if cfg.PrunePasses < 0 {
		return nil, fmt.Errorf("%s: prune_passes must not be negative", path)
	}

	return &cfg, nil
}
