package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/kamal-hamza/vsx-cli/internal/core/domain"
	"github.com/kamal-hamza/vsx-cli/internal/core/ports"
)

// FileResultsRepository persists the probe snapshot as a single JSON
// file, overwritten on every run
type FileResultsRepository struct {
	path string
	mu   sync.Mutex
}

// NewFileResultsRepository creates a snapshot store backed by the
// given path
func NewFileResultsRepository(path string) *FileResultsRepository {
	return &FileResultsRepository{
		path: path,
	}
}

// Ensure it implements the interface
var _ ports.ResultsRepository = (*FileResultsRepository)(nil)

// Write overwrites the snapshot file, pretty-printed
func (r *FileResultsRepository) Write(ctx context.Context, results *domain.Results) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize results: %w", err)
	}

	if err := os.WriteFile(r.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write results to %s: %w", r.path, err)
	}
	return nil
}

// Load reads the last written snapshot
func (r *FileResultsRepository) Load(ctx context.Context) (*domain.Results, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read results from %s: %w", r.path, err)
	}

	var results domain.Results
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, fmt.Errorf("failed to parse results from %s: %w", r.path, err)
	}

	return &results, nil
}

// Remove deletes the snapshot file if present
func (r *FileResultsRepository) Remove(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := os.Remove(r.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove results file %s: %w", r.path, err)
	}
	return nil
}
