// Package config persists the tool's settings as JSON in a dot-directory.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/jatin-tres/SUI-Stake-data/internal/rpc"
)

const (
	configFile = "config.json"

	defaultBatchSize = 10
	defaultKeyword   = "Nansen"
)

// Config holds the persisted settings.
type Config struct {
	// RPCs is the failover-ordered endpoint list.
	RPCs []string `json:"rpcs"`
	// BatchSize is the multi-get chunk size.
	BatchSize int `json:"batch_size"`
	// Keyword is the default search keyword, remembered between runs.
	Keyword string `json:"keyword"`

	configDir string
}

func defaults(dir string) *Config {
	return &Config{
		RPCs:      append([]string(nil), rpc.DefaultEndpoints...),
		BatchSize: defaultBatchSize,
		Keyword:   defaultKeyword,
		configDir: dir,
	}
}

// Load reads config from dir (or creates defaults). dir defaults to
// ~/.suistake.
func Load(dir string) (*Config, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("could not determine home dir: %w", err)
		}
		dir = filepath.Join(home, ".suistake")
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("could not create config dir: %w", err)
	}

	cfg := defaults(dir)

	path := filepath.Join(dir, configFile)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.configDir = dir
	if len(cfg.RPCs) == 0 {
		cfg.RPCs = append([]string(nil), rpc.DefaultEndpoints...)
	}
	if cfg.BatchSize < 1 {
		cfg.BatchSize = defaultBatchSize
	}

	return cfg, nil
}

// Save writes the config to disk.
func (c *Config) Save() error {
	if err := os.MkdirAll(c.configDir, 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(c.configDir, configFile), data, 0o600)
}

// AddRPC appends an endpoint to the failover list.
func (c *Config) AddRPC(url string) error {
	if slices.Contains(c.RPCs, url) {
		return fmt.Errorf("RPC %s already configured", url)
	}
	c.RPCs = append(c.RPCs, url)
	return nil
}

// RemoveRPC drops an endpoint from the failover list.
func (c *Config) RemoveRPC(url string) error {
	idx := slices.Index(c.RPCs, url)
	if idx < 0 {
		return fmt.Errorf("RPC %s not configured", url)
	}
	c.RPCs = slices.Delete(c.RPCs, idx, idx+1)
	return nil
}

// Reset restores the defaults, keeping the config dir.
func (c *Config) Reset() {
	*c = *defaults(c.configDir)
}
