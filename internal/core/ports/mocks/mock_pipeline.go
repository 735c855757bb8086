package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/kamal-hamza/vsx-cli/internal/core/domain"
	"github.com/kamal-hamza/vsx-cli/internal/core/ports"
)

// MockExtensionSource is a mock implementation of the ExtensionSource
// interface for testing
type MockExtensionSource struct {
	mu         sync.Mutex
	list       *domain.ExtensionList
	shouldFail bool
	failError  error
}

// NewMockExtensionSource creates a new mock source with an empty list
func NewMockExtensionSource() *MockExtensionSource {
	return &MockExtensionSource{
		list: &domain.ExtensionList{},
	}
}

// SetList replaces the declared entries served by Load
func (m *MockExtensionSource) SetList(exts []domain.DeclaredExtension) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.list = &domain.ExtensionList{Enabled: exts}
}

func (m *MockExtensionSource) SetShouldFail(fail bool, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shouldFail = fail
	m.failError = err
}

func (m *MockExtensionSource) Load(ctx context.Context) (*domain.ExtensionList, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.shouldFail {
		if m.failError != nil {
			return nil, m.failError
		}
		return nil, fmt.Errorf("failed to load extension list")
	}
	return m.list, nil
}

// --- MockResolver ---

// MockResolver is a mock implementation of the Resolver interface.
// Unconfigured identifiers resolve as unavailable.
type MockResolver struct {
	mu          sync.Mutex
	resolutions map[string]domain.Resolution
	errors      map[string]error
	calls       []string
}

// NewMockResolver creates a new mock resolver
func NewMockResolver() *MockResolver {
	return &MockResolver{
		resolutions: make(map[string]domain.Resolution),
		errors:      make(map[string]error),
	}
}

// SetResolution fixes the outcome for one identifier
func (m *MockResolver) SetResolution(id string, res domain.Resolution) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resolutions[id] = res
}

// SetError makes Resolve fail for one identifier
func (m *MockResolver) SetError(id string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[id] = err
}

func (m *MockResolver) Resolve(ctx context.Context, ext domain.DeclaredExtension) (domain.Resolution, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, ext.ID)

	if err, ok := m.errors[ext.ID]; ok {
		return domain.Resolution{}, err
	}
	if res, ok := m.resolutions[ext.ID]; ok {
		return res, nil
	}
	return domain.Resolution{Available: false}, nil
}

// GetCalls returns the identifiers resolved so far, in call order
func (m *MockResolver) GetCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	calls := make([]string, len(m.calls))
	copy(calls, m.calls)
	return calls
}

func (m *MockResolver) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
	m.resolutions = make(map[string]domain.Resolution)
	m.errors = make(map[string]error)
}

// --- MockFetcher ---

// FetchCall records one Fetch invocation
type FetchCall struct {
	URL      string
	DestPath string
}

// MockFetcher is a mock implementation of the Fetcher interface. It
// never touches the filesystem.
type MockFetcher struct {
	mu        sync.Mutex
	calls     []FetchCall
	errors    map[string]error // keyed by URL
	bytesSize int64
}

// NewMockFetcher creates a new mock fetcher reporting 1024 bytes per
// fetch
func NewMockFetcher() *MockFetcher {
	return &MockFetcher{
		errors:    make(map[string]error),
		bytesSize: 1024,
	}
}

// SetError makes Fetch fail for one URL
func (m *MockFetcher) SetError(url string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[url] = err
}

// SetBytes sets the byte count reported for successful fetches
func (m *MockFetcher) SetBytes(n int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bytesSize = n
}

func (m *MockFetcher) Fetch(ctx context.Context, url, destPath string, progress ports.ProgressFunc) (int64, error) {
	m.mu.Lock()
	m.calls = append(m.calls, FetchCall{URL: url, DestPath: destPath})
	err := m.errors[url]
	size := m.bytesSize
	m.mu.Unlock()

	if err != nil {
		return 0, err
	}
	if progress != nil {
		progress(size, size)
	}
	return size, nil
}

// GetCalls returns the fetches attempted so far, in call order
func (m *MockFetcher) GetCalls() []FetchCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	calls := make([]FetchCall, len(m.calls))
	copy(calls, m.calls)
	return calls
}

func (m *MockFetcher) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
	m.errors = make(map[string]error)
}

// --- MockLedgerRepository ---

// StatusCall records one UpdateStatus invocation
type StatusCall struct {
	ID      string
	Success bool
}

// MockLedgerRepository is an in-memory mock of the LedgerRepository
// interface with the same upsert and update semantics as the file
// implementation
type MockLedgerRepository struct {
	mu          sync.Mutex
	records     []domain.DownloadRecord
	statusCalls []StatusCall
	shouldFail  bool
	failError   error
	statusError error
}

// NewMockLedgerRepository creates a new empty mock ledger
func NewMockLedgerRepository() *MockLedgerRepository {
	return &MockLedgerRepository{}
}

func (m *MockLedgerRepository) SetShouldFail(fail bool, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shouldFail = fail
	m.failError = err
}

// SetStatusError makes only UpdateStatus fail, leaving Upsert working
func (m *MockLedgerRepository) SetStatusError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statusError = err
}

func (m *MockLedgerRepository) Upsert(ctx context.Context, rec domain.DownloadRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.shouldFail {
		if m.failError != nil {
			return m.failError
		}
		return fmt.Errorf("upsert failed for %s", rec.ID)
	}

	kept := m.records[:0]
	for _, r := range m.records {
		if r.ID != rec.ID {
			kept = append(kept, r)
		}
	}
	m.records = append(kept, rec)
	return nil
}

func (m *MockLedgerRepository) UpdateStatus(ctx context.Context, id string, success bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.statusCalls = append(m.statusCalls, StatusCall{ID: id, Success: success})

	if m.statusError != nil {
		return m.statusError
	}
	if m.shouldFail {
		if m.failError != nil {
			return m.failError
		}
		return fmt.Errorf("update failed for %s", id)
	}

	for i := range m.records {
		if m.records[i].ID == id {
			m.records[i].Success = success
			m.records[i].Timestamp = time.Now().UTC().Format(time.RFC3339)
			break
		}
	}
	return nil
}

func (m *MockLedgerRepository) List(ctx context.Context) ([]domain.DownloadRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	records := make([]domain.DownloadRecord, len(m.records))
	copy(records, m.records)
	return records, nil
}

// GetStatusCalls returns the UpdateStatus invocations so far
func (m *MockLedgerRepository) GetStatusCalls() []StatusCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	calls := make([]StatusCall, len(m.statusCalls))
	copy(calls, m.statusCalls)
	return calls
}

func (m *MockLedgerRepository) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = nil
	m.statusCalls = nil
	m.shouldFail = false
	m.failError = nil
	m.statusError = nil
}

// --- MockResultsRepository ---

// MockResultsRepository is an in-memory mock of the ResultsRepository
// interface
type MockResultsRepository struct {
	mu         sync.Mutex
	written    *domain.Results
	writes     int
	removes    int
	shouldFail bool
	failError  error
}

// NewMockResultsRepository creates a new mock with no snapshot
func NewMockResultsRepository() *MockResultsRepository {
	return &MockResultsRepository{}
}

func (m *MockResultsRepository) SetShouldFail(fail bool, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shouldFail = fail
	m.failError = err
}

func (m *MockResultsRepository) Write(ctx context.Context, results *domain.Results) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.shouldFail {
		if m.failError != nil {
			return m.failError
		}
		return fmt.Errorf("failed to write results")
	}

	m.written = results
	m.writes++
	return nil
}

func (m *MockResultsRepository) Load(ctx context.Context) (*domain.Results, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.written == nil {
		return nil, fmt.Errorf("no results snapshot")
	}
	return m.written, nil
}

func (m *MockResultsRepository) Remove(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.removes++
	m.written = nil
	return nil
}

// Written returns the last written snapshot, nil when none
func (m *MockResultsRepository) Written() *domain.Results {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.written
}

// WriteCount returns how many times Write succeeded
func (m *MockResultsRepository) WriteCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

// RemoveCount returns how many times Remove was called
func (m *MockResultsRepository) RemoveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.removes
}
