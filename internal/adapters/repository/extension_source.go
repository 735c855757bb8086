package repository

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kamal-hamza/vsx-cli/internal/core/domain"
	"github.com/kamal-hamza/vsx-cli/internal/core/ports"
)

// FileExtensionSource reads the declared extension list from a YAML
// file
type FileExtensionSource struct {
	path string
}

// NewFileExtensionSource creates a source backed by the given path
func NewFileExtensionSource(path string) *FileExtensionSource {
	return &FileExtensionSource{
		path: path,
	}
}

// Ensure it implements the interface
var _ ports.ExtensionSource = (*FileExtensionSource)(nil)

// Load reads and parses the declared list. Both a missing file and
// malformed YAML are fatal for the run.
func (s *FileExtensionSource) Load(ctx context.Context) (*domain.ExtensionList, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read extension list %s: %w", s.path, err)
	}

	var list domain.ExtensionList
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("failed to parse extension list %s: %w", s.path, err)
	}

	return &list, nil
}
