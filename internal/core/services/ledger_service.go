package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/kamal-hamza/vsx-cli/internal/core/domain"
	"github.com/kamal-hamza/vsx-cli/internal/core/ports"
)

// Status filter values accepted by LedgerListRequest
const (
	StatusAll    = "all"
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// LedgerService handles listing and filtering download records
type LedgerService struct {
	ledger ports.LedgerRepository
}

// NewLedgerService creates a new ledger service
func NewLedgerService(ledger ports.LedgerRepository) *LedgerService {
	return &LedgerService{
		ledger: ledger,
	}
}

// LedgerListRequest represents a request to list download records
type LedgerListRequest struct {
	Status  string // "all", "ok", "failed" (default: all)
	SortBy  string // "date", "id" (default: date)
	Reverse bool   // Reverse sort order
}

// LedgerListResponse represents the response from listing records
type LedgerListResponse struct {
	Records []domain.DownloadRecord
	Total   int
}

// Execute lists download records with optional filtering and sorting
func (s *LedgerService) Execute(ctx context.Context, req LedgerListRequest) (*LedgerListResponse, error) {
	records, err := s.ledger.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list download records: %w", err)
	}

	if req.Status != "" && req.Status != StatusAll {
		records, err = s.filterByStatus(records, req.Status)
		if err != nil {
			return nil, err
		}
	}

	records = s.sortRecords(records, req.SortBy, req.Reverse)

	return &LedgerListResponse{
		Records: records,
		Total:   len(records),
	}, nil
}

func (s *LedgerService) filterByStatus(records []domain.DownloadRecord, status string) ([]domain.DownloadRecord, error) {
	var wantSuccess bool
	switch status {
	case StatusOK:
		wantSuccess = true
	case StatusFailed:
		wantSuccess = false
	default:
		return nil, fmt.Errorf("unknown status filter %q (use all, ok, or failed)", status)
	}

	var filtered []domain.DownloadRecord
	for _, record := range records {
		if record.Success == wantSuccess {
			filtered = append(filtered, record)
		}
	}
	return filtered, nil
}

func (s *LedgerService) sortRecords(records []domain.DownloadRecord, sortBy string, reverse bool) []domain.DownloadRecord {
	sort.SliceStable(records, func(i, j int) bool {
		var less bool
		switch sortBy {
		case "id":
			less = strings.ToLower(records[i].ID) < strings.ToLower(records[j].ID)
		default: // "date"
			less = records[i].Timestamp < records[j].Timestamp
		}
		if reverse {
			return !less
		}
		return less
	})
	return records
}

// Find returns the record for one identifier, nil when absent
func (s *LedgerService) Find(ctx context.Context, id string) (*domain.DownloadRecord, error) {
	records, err := s.ledger.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list download records: %w", err)
	}

	for i := range records {
		if records[i].ID == id {
			return &records[i], nil
		}
	}
	return nil, nil
}
