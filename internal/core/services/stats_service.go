package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/kamal-hamza/vsx-cli/internal/core/domain"
	"github.com/kamal-hamza/vsx-cli/internal/core/ports"
)

// PublisherCount is one publisher's share of the download ledger
type PublisherCount struct {
	Publisher string
	Count     int
}

// Stats aggregates the ledger and the last probe snapshot
type Stats struct {
	TotalRecords int
	Succeeded    int
	Failed       int
	ByPublisher  []PublisherCount
	LastAttempt  *domain.DownloadRecord

	HasSnapshot         bool
	SnapshotAvailable   int
	SnapshotUnavailable int
}

// StatsService computes summary figures over the pipeline outputs
type StatsService struct {
	ledger  ports.LedgerRepository
	results ports.ResultsRepository
}

// NewStatsService creates a new stats service
func NewStatsService(ledger ports.LedgerRepository, results ports.ResultsRepository) *StatsService {
	return &StatsService{
		ledger:  ledger,
		results: results,
	}
}

// Execute aggregates the ledger; a missing or unreadable snapshot is
// reported through HasSnapshot rather than an error
func (s *StatsService) Execute(ctx context.Context) (*Stats, error) {
	records, err := s.ledger.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read download records: %w", err)
	}

	stats := &Stats{TotalRecords: len(records)}

	counts := make(map[string]int)
	for i := range records {
		record := records[i]
		if record.Success {
			stats.Succeeded++
		} else {
			stats.Failed++
		}
		if publisher := record.Publisher(); publisher != "" {
			counts[publisher]++
		}

		if stats.LastAttempt == nil || record.Timestamp > stats.LastAttempt.Timestamp {
			stats.LastAttempt = &records[i]
		}
	}

	for publisher, count := range counts {
		stats.ByPublisher = append(stats.ByPublisher, PublisherCount{Publisher: publisher, Count: count})
	}
	sort.Slice(stats.ByPublisher, func(i, j int) bool {
		if stats.ByPublisher[i].Count != stats.ByPublisher[j].Count {
			return stats.ByPublisher[i].Count > stats.ByPublisher[j].Count
		}
		return stats.ByPublisher[i].Publisher < stats.ByPublisher[j].Publisher
	})

	if results, err := s.results.Load(ctx); err == nil {
		stats.HasSnapshot = true
		stats.SnapshotAvailable, stats.SnapshotUnavailable = results.Counts()
	}

	return stats, nil
}
