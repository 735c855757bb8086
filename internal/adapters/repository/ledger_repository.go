package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/kamal-hamza/vsx-cli/internal/core/domain"
	"github.com/kamal-hamza/vsx-cli/internal/core/ports"
)

// FileLedgerRepository keeps the download ledger in a single JSON file,
// rewritten in full on every change. The file is re-read on each call
// so external edits between runs are picked up.
type FileLedgerRepository struct {
	path string
	mu   sync.Mutex
}

// NewFileLedgerRepository creates a ledger backed by the given path
func NewFileLedgerRepository(path string) *FileLedgerRepository {
	return &FileLedgerRepository{
		path: path,
	}
}

// Ensure it implements the interface
var _ ports.LedgerRepository = (*FileLedgerRepository)(nil)

// Upsert replaces any record with the same ID and appends the new one.
// An absent or unreadable ledger counts as empty here.
func (r *FileLedgerRepository) Upsert(ctx context.Context, rec domain.DownloadRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	records := r.loadTolerant()

	kept := records[:0]
	for _, existing := range records {
		if existing.ID != rec.ID {
			kept = append(kept, existing)
		}
	}
	kept = append(kept, rec)

	return r.flush(kept)
}

// UpdateStatus sets the success flag of the record with the given ID
// and refreshes its timestamp. An absent file or unknown ID is a quiet
// no-op; a file that exists but does not parse is an error.
func (r *FileLedgerRepository) UpdateStatus(ctx context.Context, id string, success bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read ledger: %w", err)
	}

	var records []domain.DownloadRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrLedgerCorrupt, r.path)
	}

	for i := range records {
		if records[i].ID == id {
			records[i].Success = success
			records[i].Timestamp = time.Now().UTC().Format(time.RFC3339)
			return r.flush(records)
		}
	}

	return nil
}

// List returns all ledger records, empty when the file is absent
func (r *FileLedgerRepository) List(ctx context.Context) ([]domain.DownloadRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.DownloadRecord{}, nil
		}
		return nil, fmt.Errorf("failed to read ledger: %w", err)
	}

	var records []domain.DownloadRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrLedgerCorrupt, r.path)
	}

	return records, nil
}

// loadTolerant reads the ledger, treating absent or unparsable content
// as an empty ledger
func (r *FileLedgerRepository) loadTolerant() []domain.DownloadRecord {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil
	}

	var records []domain.DownloadRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil
	}
	return records
}

// flush writes the full collection back, pretty-printed
func (r *FileLedgerRepository) flush(records []domain.DownloadRecord) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize ledger: %w", err)
	}

	if err := os.WriteFile(r.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write ledger: %w", err)
	}
	return nil
}
