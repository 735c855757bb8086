package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Pipeline paths
	File      string `yaml:"file"`
	Results   string `yaml:"results"`
	OutputDir string `yaml:"output_dir"`
	Ledger    string `yaml:"ledger"`

	// Registry is the primary registry base URL; empty uses the
	// built-in default
	Registry string `yaml:"registry"`

	// Sync behavior
	AutoDownload bool `yaml:"auto_download"`
	Workers      int  `yaml:"workers"`

	// Ledger listing defaults
	DefaultSort string `yaml:"default_sort"`
	ReverseSort bool   `yaml:"reverse_sort"`

	// UI Settings
	ColorTheme string `yaml:"color_theme"`
	Editor     string `yaml:"editor"`

	// Performance
	WatchDebounceMS int `yaml:"watch_debounce_ms"`
}

// DefaultConfig returns a Config struct with default values
func DefaultConfig() *Config {
	return &Config{
		File:            "extensions.yaml",
		Results:         "results.json",
		OutputDir:       "downloads",
		Ledger:          "downloads.json",
		Registry:        "",
		AutoDownload:    false,
		Workers:         1,
		DefaultSort:     "date",
		ReverseSort:     false,
		ColorTheme:      "auto",
		Editor:          "",
		WatchDebounceMS: 500,
	}
}

// Load reads configuration from the specified file path
func Load(path string) (*Config, error) {
	// Start with default config
	cfg := DefaultConfig()

	// Try to read the file
	data, err := os.ReadFile(path)
	if err != nil {
		// If file doesn't exist, return default config (not an error)
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse YAML
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply defaults for essential values if missing
	if cfg.File == "" {
		cfg.File = "extensions.yaml"
	}
	if cfg.Results == "" {
		cfg.Results = "results.json"
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "downloads"
	}
	if cfg.Ledger == "" {
		cfg.Ledger = "downloads.json"
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.DefaultSort == "" {
		cfg.DefaultSort = "date"
	}
	if cfg.ColorTheme == "" {
		cfg.ColorTheme = "auto"
	}
	if cfg.WatchDebounceMS <= 0 {
		cfg.WatchDebounceMS = 500
	}

	// Validate DefaultSort
	if !isValidSort(cfg.DefaultSort) {
		cfg.DefaultSort = "date"
	}

	return cfg, nil
}

// Save persists the current configuration to the specified file path
func (c *Config) Save(path string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// isValidSort checks if the sort key is valid
func isValidSort(sortBy string) bool {
	validSorts := []string{"date", "id"}
	for _, valid := range validSorts {
		if sortBy == valid {
			return true
		}
	}
	return false
}
