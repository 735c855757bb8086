package workspace

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetConfigPath_XDGConfigHome(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")

	path, err := getConfigPath()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := filepath.Join("/custom/config", "vsx", "config.yaml")
	if path != expected {
		t.Errorf("expected %q, got %q", expected, path)
	}
}

func TestGetConfigPath_HomeFallback(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("APPDATA", "")

	path, err := getConfigPath()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory available: %v", err)
	}

	expected := filepath.Join(homeDir, ".config", "vsx", "config.yaml")
	if path != expected {
		t.Errorf("expected %q, got %q", expected, path)
	}
}

func TestResolve(t *testing.T) {
	ws := &Workspace{RootPath: "/work"}

	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{"relative path joined", "extensions.yaml", filepath.Join("/work", "extensions.yaml")},
		{"nested relative path", "out/results.json", filepath.Join("/work", "out", "results.json")},
		{"absolute path unchanged", "/etc/vsx/extensions.yaml", "/etc/vsx/extensions.yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ws.Resolve(tt.path); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestHasList(t *testing.T) {
	tempDir := t.TempDir()
	ws := &Workspace{RootPath: tempDir}

	if ws.HasList("extensions.yaml") {
		t.Error("expected HasList=false before the file exists")
	}

	listPath := filepath.Join(tempDir, "extensions.yaml")
	if err := os.WriteFile(listPath, []byte("enabled: []\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if !ws.HasList("extensions.yaml") {
		t.Error("expected HasList=true once the file exists")
	}

	if err := os.Mkdir(filepath.Join(tempDir, "dir.yaml"), 0755); err != nil {
		t.Fatal(err)
	}
	if ws.HasList("dir.yaml") {
		t.Error("expected HasList=false for a directory")
	}
}

func TestNew(t *testing.T) {
	ws, err := New()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ws.RootPath == "" {
		t.Error("expected a root path")
	}
	if filepath.Base(ws.ConfigPath) != "config.yaml" {
		t.Errorf("expected config.yaml, got %q", ws.ConfigPath)
	}
}
