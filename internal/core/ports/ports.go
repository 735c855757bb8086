package ports

import (
	"context"

	"github.com/kamal-hamza/vsx-cli/internal/core/domain"
)

// ProgressFunc reports cumulative bytes written during a fetch.
// total is 0 when the server did not declare a content length.
type ProgressFunc func(written, total int64)

// ExtensionSource defines the port for loading the declared list
type ExtensionSource interface {
	// Load reads and parses the declared extension list
	Load(ctx context.Context) (*domain.ExtensionList, error)
}

// Resolver defines the port for primary registry probes
type Resolver interface {
	// Resolve classifies one declared extension. Transport failures
	// and non-success statuses degrade to an unavailable resolution;
	// only an unreadable success response is an error.
	Resolve(ctx context.Context, ext domain.DeclaredExtension) (domain.Resolution, error)
}

// Fetcher defines the port for streaming asset downloads
type Fetcher interface {
	// Fetch streams the asset at url into destPath, invoking progress
	// after each chunk. Returns total bytes written.
	Fetch(ctx context.Context, url, destPath string, progress ProgressFunc) (int64, error)
}

// LedgerRepository defines the port for the download-attempt ledger
type LedgerRepository interface {
	// Upsert replaces any record with the same ID and appends the new
	// one. An absent or unparsable ledger file counts as empty.
	Upsert(ctx context.Context, rec domain.DownloadRecord) error

	// UpdateStatus sets the success flag and refreshes the timestamp
	// of the record with the given ID. Absent file or unknown ID is a
	// quiet no-op; a file that exists but does not parse is an error.
	UpdateStatus(ctx context.Context, id string, success bool) error

	// List returns all ledger records, empty when the file is absent
	List(ctx context.Context) ([]domain.DownloadRecord, error)
}

// ResultsRepository defines the port for the probe snapshot
type ResultsRepository interface {
	// Write overwrites the snapshot file with the given results
	Write(ctx context.Context, results *domain.Results) error

	// Load reads the last written snapshot
	Load(ctx context.Context) (*domain.Results, error)

	// Remove deletes the snapshot file if present
	Remove(ctx context.Context) error
}
