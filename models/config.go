package models

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds runtime configuration. Values come from an optional YAML file,
// overridden by environment variables, overridden by CLI flags.
type Config struct {
	BaseURL     string `yaml:"base_url"`
	WorkerCount int    `yaml:"workers"`
	DataDir     string `yaml:"data_dir"`
}

// DefaultConfig mirrors the addon's shipped settings. The concurrency cap of
// 20 stays well under the origin's per-client connection limit; it is a
// correctness constraint, not a tuning knob.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:     "https://rumble.com/user/BLCKBX",
		WorkerCount: 20,
		DataDir:     "rumbledir-data",
	}
}

// LoadConfig reads a YAML config file. A missing file yields the defaults;
// a malformed file is an error.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return config, nil
}

// ApplyEnv overlays RUMBLEDIR_* environment variables onto the config.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("RUMBLEDIR_BASE_URL"); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv("RUMBLEDIR_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("RUMBLEDIR_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.WorkerCount = n
		}
	}
}
