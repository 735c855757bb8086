package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg == nil {
		t.Fatal("DefaultConfig() returned nil")
	}

	if cfg.File != "extensions.yaml" {
		t.Errorf("expected default File='extensions.yaml', got %q", cfg.File)
	}

	if cfg.Results != "results.json" {
		t.Errorf("expected default Results='results.json', got %q", cfg.Results)
	}

	if cfg.OutputDir != "downloads" {
		t.Errorf("expected default OutputDir='downloads', got %q", cfg.OutputDir)
	}

	if cfg.Ledger != "downloads.json" {
		t.Errorf("expected default Ledger='downloads.json', got %q", cfg.Ledger)
	}

	if cfg.Registry != "" {
		t.Errorf("expected default Registry='', got %q", cfg.Registry)
	}

	if cfg.AutoDownload {
		t.Error("expected AutoDownload=false by default")
	}

	if cfg.Workers != 1 {
		t.Errorf("expected default Workers=1, got %d", cfg.Workers)
	}
}

func TestLoad_NonExistentFile(t *testing.T) {
	// Loading a non-existent file should return default config
	cfg, err := Load("/nonexistent/path/config.yaml")

	if err != nil {
		t.Fatalf("unexpected error loading non-existent file: %v", err)
	}

	if cfg == nil {
		t.Fatal("Load() returned nil config")
	}

	if cfg.File != "extensions.yaml" {
		t.Errorf("expected default File='extensions.yaml', got %q", cfg.File)
	}

	if cfg.Workers != 1 {
		t.Errorf("expected default Workers=1, got %d", cfg.Workers)
	}
}

func TestSave_And_Load(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")

	cfg := &Config{
		File:         "team-extensions.yaml",
		OutputDir:    "/srv/vsix",
		Registry:     "https://registry.internal/api",
		AutoDownload: true,
		Workers:      4,
	}

	err := cfg.Save(configPath)
	if err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Fatal("config file was not created")
	}

	loadedCfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if loadedCfg.File != cfg.File {
		t.Errorf("File: expected %q, got %q", cfg.File, loadedCfg.File)
	}

	if loadedCfg.OutputDir != cfg.OutputDir {
		t.Errorf("OutputDir: expected %q, got %q", cfg.OutputDir, loadedCfg.OutputDir)
	}

	if loadedCfg.Registry != cfg.Registry {
		t.Errorf("Registry: expected %q, got %q", cfg.Registry, loadedCfg.Registry)
	}

	if !loadedCfg.AutoDownload {
		t.Error("expected AutoDownload=true after round trip")
	}

	if loadedCfg.Workers != cfg.Workers {
		t.Errorf("Workers: expected %d, got %d", cfg.Workers, loadedCfg.Workers)
	}
}

func TestLoad_AppliesDefaults(t *testing.T) {
	// Create a partial config (missing paths and workers)
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")

	yamlContent := `registry: https://registry.internal/api
editor: nvim
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to create test config file: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Should apply defaults for missing values
	if cfg.File != "extensions.yaml" {
		t.Errorf("expected default File='extensions.yaml', got %q", cfg.File)
	}

	if cfg.Ledger != "downloads.json" {
		t.Errorf("expected default Ledger='downloads.json', got %q", cfg.Ledger)
	}

	if cfg.Workers != 1 {
		t.Errorf("expected default Workers=1, got %d", cfg.Workers)
	}

	// Should preserve specified values
	if cfg.Registry != "https://registry.internal/api" {
		t.Errorf("expected Registry preserved, got %q", cfg.Registry)
	}

	if cfg.Editor != "nvim" {
		t.Errorf("expected Editor='nvim', got %q", cfg.Editor)
	}
}

func TestLoad_ZeroWorkers(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")

	yamlContent := `workers: 0
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to create test config file: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Should apply default for zero/negative workers
	if cfg.Workers != 1 {
		t.Errorf("expected default Workers=1 for zero value, got %d", cfg.Workers)
	}
}

func TestLoad_NegativeWorkers(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")

	yamlContent := `workers: -5
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to create test config file: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Workers != 1 {
		t.Errorf("expected default Workers=1 for negative value, got %d", cfg.Workers)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")

	yamlContent := `file: extensions.yaml
output_dir: [invalid yaml structure
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to create test config file: %v", err)
	}

	_, err := Load(configPath)
	if err == nil {
		t.Fatal("expected error loading invalid YAML, got nil")
	}
}

func TestLoad_InvalidSortFallsBack(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected string
	}{
		{"date", "date", "date"},
		{"id", "id", "id"},
		{"empty defaults to date", "", "date"},
		{"invalid defaults to date", "size", "date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tempDir := t.TempDir()
			configPath := filepath.Join(tempDir, "config.yaml")

			yamlContent := ""
			if tt.value != "" {
				yamlContent = "default_sort: " + tt.value + "\n"
			}

			if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
				t.Fatalf("failed to create test config file: %v", err)
			}

			cfg, err := Load(configPath)
			if err != nil {
				t.Fatalf("failed to load config: %v", err)
			}

			if cfg.DefaultSort != tt.expected {
				t.Errorf("DefaultSort: expected %q, got %q", tt.expected, cfg.DefaultSort)
			}
		})
	}
}

func TestSave_CreatesDirectory(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "nested", "dir", "config.yaml")

	cfg := DefaultConfig()
	err := cfg.Save(configPath)

	if err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	dir := filepath.Dir(configPath)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		t.Fatal("directory was not created")
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Fatal("config file was not created")
	}
}

func TestSave_ValidYAML(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")

	cfg := &Config{
		File:      "team-extensions.yaml",
		OutputDir: "/srv/vsix",
		Editor:    "emacs",
		Workers:   8,
	}

	err := cfg.Save(configPath)
	if err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("failed to read config file: %v", err)
	}

	content := string(data)
	if !strings.Contains(content, "team-extensions.yaml") {
		t.Error("config file should contain 'team-extensions.yaml'")
	}
	if !strings.Contains(content, "/srv/vsix") {
		t.Error("config file should contain '/srv/vsix'")
	}
	if !strings.Contains(content, "emacs") {
		t.Error("config file should contain 'emacs'")
	}
}
