package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/kamal-hamza/vsx-cli/internal/core/domain"
	"github.com/kamal-hamza/vsx-cli/internal/core/ports"
)

// SyncService drives the resolve-and-download pipeline: probe the
// primary registry for every declared extension, persist the snapshot,
// then fetch the unavailable ones from the secondary registry
type SyncService struct {
	source   ports.ExtensionSource
	resolver ports.Resolver
	fetcher  ports.Fetcher
	ledger   ports.LedgerRepository
	results  ports.ResultsRepository
}

// NewSyncService creates a new sync service
func NewSyncService(
	source ports.ExtensionSource,
	resolver ports.Resolver,
	fetcher ports.Fetcher,
	ledger ports.LedgerRepository,
	results ports.ResultsRepository,
) *SyncService {
	return &SyncService{
		source:   source,
		resolver: resolver,
		fetcher:  fetcher,
		ledger:   ledger,
		results:  results,
	}
}

// ProbeRequest represents a request to classify the declared list
type ProbeRequest struct {
	// DownloadDir is wiped and recreated before the snapshot is
	// written. Empty skips the directory reset (probe-only commands).
	DownloadDir string

	// Workers bounds probe parallelism; values <= 1 resolve strictly
	// sequentially
	Workers int

	// Only restricts the probe to these identifiers, in declaration
	// order. Empty means the whole list.
	Only []string
}

// ProbeProgress reports one classified extension
type ProbeProgress struct {
	Current   int
	Total     int
	ID        string
	Available bool
	URL       string
}

// ProbeResponse represents the outcome of the probe phase
type ProbeResponse struct {
	Results *domain.Results
	Total   int // declared entries probed, empty IDs skipped
}

// Probe loads the declared list, classifies every entry against the
// primary registry in declaration order, resets the run outputs, and
// writes the snapshot. Transport-level lookup failures degrade items
// to unavailable; an unreadable success response aborts the batch.
func (s *SyncService) Probe(ctx context.Context, req ProbeRequest, progressChan chan<- ProbeProgress) (*ProbeResponse, error) {
	if progressChan != nil {
		defer close(progressChan)
	}

	list, err := s.source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load declared extensions: %w", err)
	}

	declared := list.Declared()
	if len(req.Only) > 0 {
		declared = filterDeclared(declared, req.Only)
	}

	results := domain.NewResults()

	if req.Workers > 1 && len(declared) > 1 {
		if err := s.resolveParallel(ctx, declared, req.Workers, results, progressChan); err != nil {
			return nil, err
		}
	} else {
		for i, ext := range declared {
			res, err := s.resolver.Resolve(ctx, ext)
			if err != nil {
				return nil, err
			}
			results.Add(ext, res)

			if progressChan != nil {
				progressChan <- ProbeProgress{
					Current:   i + 1,
					Total:     len(declared),
					ID:        ext.ID,
					Available: res.Available,
					URL:       res.URL,
				}
			}
		}
	}

	if err := s.resetOutputs(ctx, req.DownloadDir); err != nil {
		return nil, err
	}

	if err := s.results.Write(ctx, results); err != nil {
		return nil, err
	}

	return &ProbeResponse{
		Results: results,
		Total:   len(declared),
	}, nil
}

// resolveParallel classifies extensions with a bounded worker pool.
// Outcomes are collected by index so the partition keeps declaration
// order regardless of completion order.
func (s *SyncService) resolveParallel(
	ctx context.Context,
	declared []domain.DeclaredExtension,
	workers int,
	results *domain.Results,
	progressChan chan<- ProbeProgress,
) error {
	if workers > len(declared) {
		workers = len(declared)
	}

	resolutions := make([]domain.Resolution, len(declared))
	errs := make([]error, len(declared))

	jobs := make(chan int, len(declared))
	done := make(chan int, len(declared))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				resolutions[i], errs[i] = s.resolver.Resolve(ctx, declared[i])
				done <- i
			}
		}()
	}

	for i := range declared {
		jobs <- i
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(done)
	}()

	current := 0
	for i := range done {
		current++
		if progressChan != nil && errs[i] == nil {
			progressChan <- ProbeProgress{
				Current:   current,
				Total:     len(declared),
				ID:        declared[i].ID,
				Available: resolutions[i].Available,
				URL:       resolutions[i].URL,
			}
		}
	}

	for _, err := range errs {
		if err != nil {
			return err
		}
	}

	for i, ext := range declared {
		results.Add(ext, resolutions[i])
	}
	return nil
}

// resetOutputs removes the previous snapshot and download directory,
// then recreates the directory. An empty dir leaves the filesystem
// alone apart from the snapshot.
func (s *SyncService) resetOutputs(ctx context.Context, dir string) error {
	if err := s.results.Remove(ctx); err != nil {
		return err
	}

	if dir == "" {
		return nil
	}

	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("failed to remove download directory %s: %w", dir, err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create download directory %s: %w", dir, err)
	}
	return nil
}

// filterDeclared keeps the declared entries whose IDs appear in only,
// preserving declaration order
func filterDeclared(declared []domain.DeclaredExtension, only []string) []domain.DeclaredExtension {
	wanted := make(map[string]bool, len(only))
	for _, id := range only {
		wanted[id] = true
	}

	filtered := make([]domain.DeclaredExtension, 0, len(only))
	for _, ext := range declared {
		if wanted[ext.ID] {
			filtered = append(filtered, ext)
		}
	}
	return filtered
}

// DownloadRequest represents a request to fetch unavailable extensions
// from the secondary registry
type DownloadRequest struct {
	Extensions  []domain.UnavailableExtension
	DownloadDir string

	// Progress receives cumulative byte counts for the item currently
	// being fetched
	Progress ports.ProgressFunc
}

// DownloadProgress reports the download loop over a channel: one event
// when an item starts, one when it completes (Done set)
type DownloadProgress struct {
	Current int
	Total   int
	ID      string
	Asset   domain.FallbackAsset
	Done    bool
	Success bool
	Bytes   int64
	Error   error
}

// DownloadResult records the outcome for a single extension
type DownloadResult struct {
	ID       string
	FileName string
	Path     string
	Bytes    int64
	Success  bool
	Error    error
}

// DownloadResponse represents the outcome of the download phase
type DownloadResponse struct {
	Total     int
	Succeeded int
	Failed    int
	Results   []DownloadResult
}

// Download fetches every given extension strictly in sequence: for
// each item it synthesizes the fallback asset, upserts the ledger
// record, streams the download, then updates the record status.
// Per-item failures are counted and the loop continues; only a ledger
// that fails to update aborts the run.
func (s *SyncService) Download(ctx context.Context, req DownloadRequest, progressChan chan<- DownloadProgress) (*DownloadResponse, error) {
	if progressChan != nil {
		defer close(progressChan)
	}

	if err := os.MkdirAll(req.DownloadDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create download directory %s: %w", req.DownloadDir, err)
	}

	total := len(req.Extensions)
	response := &DownloadResponse{
		Total:   total,
		Results: make([]DownloadResult, 0, total),
	}

	for i, ext := range req.Extensions {
		current := i + 1

		if progressChan != nil {
			progressChan <- DownloadProgress{Current: current, Total: total, ID: ext.ID}
		}

		asset, err := domain.Synthesize(ext.ID, "", "")
		if err != nil {
			s.finishItem(response, progressChan, current, total, DownloadResult{
				ID:      ext.ID,
				Success: false,
				Error:   err,
			}, asset)
			continue
		}

		destPath := filepath.Join(req.DownloadDir, asset.FileName)
		record := domain.NewDownloadRecord(ext.ID, asset, destPath, "")

		if err := s.ledger.Upsert(ctx, record); err != nil {
			s.finishItem(response, progressChan, current, total, DownloadResult{
				ID:       ext.ID,
				FileName: asset.FileName,
				Path:     destPath,
				Success:  false,
				Error:    err,
			}, asset)
			continue
		}

		bytes, fetchErr := s.fetcher.Fetch(ctx, asset.DirectDownloadURL, destPath, req.Progress)

		if statusErr := s.ledger.UpdateStatus(ctx, ext.ID, fetchErr == nil); statusErr != nil {
			return nil, statusErr
		}

		s.finishItem(response, progressChan, current, total, DownloadResult{
			ID:       ext.ID,
			FileName: asset.FileName,
			Path:     destPath,
			Bytes:    bytes,
			Success:  fetchErr == nil,
			Error:    fetchErr,
		}, asset)
	}

	return response, nil
}

// finishItem records one download outcome and emits its completion
// event
func (s *SyncService) finishItem(
	response *DownloadResponse,
	progressChan chan<- DownloadProgress,
	current, total int,
	result DownloadResult,
	asset domain.FallbackAsset,
) {
	if result.Success {
		response.Succeeded++
	} else {
		response.Failed++
	}
	response.Results = append(response.Results, result)

	if progressChan != nil {
		progressChan <- DownloadProgress{
			Current: current,
			Total:   total,
			ID:      result.ID,
			Asset:   asset,
			Done:    true,
			Success: result.Success,
			Bytes:   result.Bytes,
			Error:   result.Error,
		}
	}
}
