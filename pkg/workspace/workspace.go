package workspace

import (
	"fmt"
	"os"
	"path/filepath"
)

// Workspace represents the directory a declared extension list and its
// pipeline outputs live in, plus the user-level config location
type Workspace struct {
	RootPath   string
	ConfigPath string
}

// New creates a Workspace rooted at the current directory with an
// XDG-compliant config path
func New() (*Workspace, error) {
	rootPath, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to determine working directory: %w", err)
	}

	configPath, err := getConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to determine config path: %w", err)
	}

	return &Workspace{
		RootPath:   rootPath,
		ConfigPath: configPath,
	}, nil
}

func getConfigPath() (string, error) {
	// Check XDG_CONFIG_HOME first (Unix-like systems)
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "vsx", "config.yaml"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	// Check if we're on Windows by looking for APPDATA
	if appData := os.Getenv("APPDATA"); appData != "" {
		return filepath.Join(appData, "vsx", "config.yaml"), nil
	}

	// Fall back to ~/.config/vsx/config.yaml (Unix-like systems)
	return filepath.Join(homeDir, ".config", "vsx", "config.yaml"), nil
}

// Resolve makes a path absolute against the workspace root. Absolute
// paths pass through unchanged.
func (w *Workspace) Resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(w.RootPath, path)
}

// HasList checks whether the declared extension list exists
func (w *Workspace) HasList(file string) bool {
	info, err := os.Stat(w.Resolve(file))
	if err != nil {
		return false
	}
	return !info.IsDir()
}
