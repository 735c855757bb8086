package cmd

import (
	"context"
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kamal-hamza/vsx-cli/internal/core/domain"
	"github.com/kamal-hamza/vsx-cli/internal/core/services"
	"github.com/kamal-hamza/vsx-cli/pkg/ui"
)

// Helper function to create test records
func createTestRecords(count int) []domain.DownloadRecord {
	records := make([]domain.DownloadRecord, count)
	for i := 0; i < count; i++ {
		records[i] = domain.DownloadRecord{
			ID:                fmt.Sprintf("publisher.extension-%d", i+1),
			MarketplaceURL:    fmt.Sprintf("https://marketplace.visualstudio.com/items?itemName=publisher.extension-%d", i+1),
			DirectDownloadURL: fmt.Sprintf("https://example.com/extension-%d.vsix", i+1),
			DownloadPath:      fmt.Sprintf("downloads/publisher.extension-%d.vsix", i+1),
			FileName:          fmt.Sprintf("publisher.extension-%d.vsix", i+1),
			Timestamp:         time.Now().Add(-time.Duration(i) * time.Hour).UTC().Format(time.RFC3339),
			Success:           i%2 == 0,
		}
	}
	return records
}

// TestDashboardModelInitialization tests that the dashboard model is initialized correctly
func TestDashboardModelInitialization(t *testing.T) {
	ctx := context.Background()
	records := createTestRecords(2)

	m := newDashboardModel(ctx, records)

	if len(m.records) != 2 {
		t.Errorf("Expected 2 records, got %d", len(m.records))
	}

	if len(m.filteredRecords) != 2 {
		t.Errorf("Expected 2 filtered records, got %d", len(m.filteredRecords))
	}

	if m.cursor != 0 {
		t.Errorf("Expected cursor at 0, got %d", m.cursor)
	}

	if m.offset != 0 {
		t.Errorf("Expected offset at 0, got %d", m.offset)
	}

	if m.mode != modeList {
		t.Errorf("Expected mode to be modeList, got %v", m.mode)
	}

	if m.statusFilter != services.StatusAll {
		t.Errorf("Expected status filter to be all, got %s", m.statusFilter)
	}

	if m.ready {
		t.Error("Expected ready to be false initially")
	}
}

// TestDashboardNavigationUp tests moving cursor up
func TestDashboardNavigationUp(t *testing.T) {
	ctx := context.Background()
	m := newDashboardModel(ctx, createTestRecords(5))
	m.cursor = 2

	msg := tea.KeyMsg{Type: tea.KeyUp}
	updated, _ := m.updateList(msg)
	m = updated.(dashboardModel)

	if m.cursor != 1 {
		t.Errorf("Expected cursor at 1, got %d", m.cursor)
	}
}

// TestDashboardNavigationDown tests moving cursor down
func TestDashboardNavigationDown(t *testing.T) {
	ctx := context.Background()
	m := newDashboardModel(ctx, createTestRecords(5))
	m.cursor = 1

	msg := tea.KeyMsg{Type: tea.KeyDown}
	updated, _ := m.updateList(msg)
	m = updated.(dashboardModel)

	if m.cursor != 2 {
		t.Errorf("Expected cursor at 2, got %d", m.cursor)
	}
}

// TestDashboardNavigationBoundaries tests cursor boundaries
func TestDashboardNavigationBoundaries(t *testing.T) {
	ctx := context.Background()
	m := newDashboardModel(ctx, createTestRecords(3))

	// Test up boundary (should stay at 0)
	m.cursor = 0
	msg := tea.KeyMsg{Type: tea.KeyUp}
	updated, _ := m.updateList(msg)
	m = updated.(dashboardModel)

	if m.cursor != 0 {
		t.Errorf("Cursor should stay at 0, got %d", m.cursor)
	}

	// Test down boundary (should stay at last item)
	m.cursor = 2
	msg = tea.KeyMsg{Type: tea.KeyDown}
	updated, _ = m.updateList(msg)
	m = updated.(dashboardModel)

	if m.cursor != 2 {
		t.Errorf("Cursor should stay at 2, got %d", m.cursor)
	}
}

// TestDashboardJumpToTop tests jumping to top
func TestDashboardJumpToTop(t *testing.T) {
	ctx := context.Background()
	m := newDashboardModel(ctx, createTestRecords(10))
	m.cursor = 5
	m.offset = 3

	msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'g'}}
	updated, _ := m.updateList(msg)
	m = updated.(dashboardModel)

	if m.cursor != 0 {
		t.Errorf("Expected cursor at 0, got %d", m.cursor)
	}

	if m.offset != 0 {
		t.Errorf("Expected offset at 0, got %d", m.offset)
	}
}

// TestDashboardJumpToBottom tests jumping to bottom
func TestDashboardJumpToBottom(t *testing.T) {
	ctx := context.Background()
	m := newDashboardModel(ctx, createTestRecords(10))
	m.cursor = 2

	msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'G'}}
	updated, _ := m.updateList(msg)
	m = updated.(dashboardModel)

	if m.cursor != 9 {
		t.Errorf("Expected cursor at 9 (last item), got %d", m.cursor)
	}
}

// TestDashboardModeTransitions tests switching between modes
func TestDashboardModeTransitions(t *testing.T) {
	ctx := context.Background()
	m := newDashboardModel(ctx, createTestRecords(3))

	// Enter search mode
	msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}}
	updated, _ := m.updateList(msg)
	m = updated.(dashboardModel)

	if m.mode != modeSearch {
		t.Errorf("Expected mode to be modeSearch, got %v", m.mode)
	}

	// Exit search mode
	msg = tea.KeyMsg{Type: tea.KeyEsc}
	updated, _ = m.updateSearch(msg)
	m = updated.(dashboardModel)

	if m.mode != modeList {
		t.Errorf("Expected mode to return to modeList, got %v", m.mode)
	}

	// Enter help mode
	msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}}
	updated, _ = m.updateList(msg)
	m = updated.(dashboardModel)

	if m.mode != modeHelp {
		t.Errorf("Expected mode to be modeHelp, got %v", m.mode)
	}

	// Exit help mode
	msg = tea.KeyMsg{Type: tea.KeyEsc}
	updated, _ = m.updateHelp(msg)
	m = updated.(dashboardModel)

	if m.mode != modeList {
		t.Errorf("Expected mode to return to modeList, got %v", m.mode)
	}
}

// TestDashboardFilterCycle tests the status filter rotation
func TestDashboardFilterCycle(t *testing.T) {
	ctx := context.Background()
	// 3 ok, 2 failed
	m := newDashboardModel(ctx, createTestRecords(5))

	msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'f'}}
	updated, _ := m.updateList(msg)
	m = updated.(dashboardModel)

	if m.statusFilter != services.StatusOK {
		t.Errorf("Expected filter ok, got %s", m.statusFilter)
	}
	if len(m.filteredRecords) != 3 {
		t.Errorf("Expected 3 successful records, got %d", len(m.filteredRecords))
	}

	updated, _ = m.updateList(msg)
	m = updated.(dashboardModel)

	if m.statusFilter != services.StatusFailed {
		t.Errorf("Expected filter failed, got %s", m.statusFilter)
	}
	if len(m.filteredRecords) != 2 {
		t.Errorf("Expected 2 failed records, got %d", len(m.filteredRecords))
	}

	updated, _ = m.updateList(msg)
	m = updated.(dashboardModel)

	if m.statusFilter != services.StatusAll {
		t.Errorf("Expected filter to wrap back to all, got %s", m.statusFilter)
	}
	if len(m.filteredRecords) != 5 {
		t.Errorf("Expected all 5 records, got %d", len(m.filteredRecords))
	}
}

// TestDashboardSearchFiltering tests search narrowing
func TestDashboardSearchFiltering(t *testing.T) {
	ctx := context.Background()
	records := []domain.DownloadRecord{
		{ID: "ms-python.python", Success: true, Timestamp: "2026-01-01T10:00:00Z"},
		{ID: "golang.go", Success: true, Timestamp: "2026-01-02T10:00:00Z"},
		{ID: "ms-python.pylint", Success: false, Timestamp: "2026-01-03T10:00:00Z"},
	}

	m := newDashboardModel(ctx, records)
	m.searchInput.SetValue("python")
	m.applyFilters()

	if len(m.filteredRecords) != 2 {
		t.Fatalf("Expected 2 matches for 'python', got %d", len(m.filteredRecords))
	}

	for _, rec := range m.filteredRecords {
		if rec.ID != "ms-python.python" && rec.ID != "ms-python.pylint" {
			t.Errorf("Unexpected record in filter results: %s", rec.ID)
		}
	}

	// Search combines with the status filter
	m.statusFilter = services.StatusFailed
	m.applyFilters()

	if len(m.filteredRecords) != 1 {
		t.Fatalf("Expected 1 failed python record, got %d", len(m.filteredRecords))
	}
	if m.filteredRecords[0].ID != "ms-python.pylint" {
		t.Errorf("Expected ms-python.pylint, got %s", m.filteredRecords[0].ID)
	}
}

// TestDashboardSearchClearOnEscape tests that search is cleared on escape
func TestDashboardSearchClearOnEscape(t *testing.T) {
	ctx := context.Background()
	m := newDashboardModel(ctx, createTestRecords(3))

	m.mode = modeSearch
	m.searchInput.SetValue("extension-1")
	m.applyFilters()

	msg := tea.KeyMsg{Type: tea.KeyEsc}
	updated, _ := m.updateSearch(msg)
	m = updated.(dashboardModel)

	if m.searchInput.Value() != "" {
		t.Errorf("Expected search to be cleared, got %s", m.searchInput.Value())
	}

	if m.mode != modeList {
		t.Error("Expected to return to list mode")
	}

	if len(m.filteredRecords) != 3 {
		t.Errorf("Expected filter reset to all 3 records, got %d", len(m.filteredRecords))
	}
}

// TestDashboardSearchModeArrowKeys tests navigation inside search mode
func TestDashboardSearchModeArrowKeys(t *testing.T) {
	ctx := context.Background()
	m := newDashboardModel(ctx, createTestRecords(5))
	m.mode = modeSearch
	m.searchInput.Focus()
	m.cursor = 1

	msg := tea.KeyMsg{Type: tea.KeyDown}
	updated, _ := m.updateSearch(msg)
	m = updated.(dashboardModel)

	if m.cursor != 2 {
		t.Errorf("Expected cursor at 2 after arrow down, got %d", m.cursor)
	}

	msg = tea.KeyMsg{Type: tea.KeyUp}
	updated, _ = m.updateSearch(msg)
	m = updated.(dashboardModel)

	if m.cursor != 1 {
		t.Errorf("Expected cursor at 1 after arrow up, got %d", m.cursor)
	}
}

// TestDashboardStatusMessage tests status message handling
func TestDashboardStatusMessage(t *testing.T) {
	ctx := context.Background()
	m := newDashboardModel(ctx, createTestRecords(3))

	msg := statusMsg{
		message: "Test message",
		style:   ui.StyleSuccess,
	}

	updated, _ := m.Update(msg)
	m = updated.(dashboardModel)

	if m.message != "Test message" {
		t.Errorf("Expected message to be 'Test message', got %s", m.message)
	}

	if time.Now().After(m.messageExpiry) {
		t.Error("Message should not be expired immediately")
	}
}

// TestDashboardWindowResize tests window resize handling
func TestDashboardWindowResize(t *testing.T) {
	ctx := context.Background()
	m := newDashboardModel(ctx, createTestRecords(3))

	msg := tea.WindowSizeMsg{
		Width:  100,
		Height: 40,
	}

	updated, _ := m.Update(msg)
	m = updated.(dashboardModel)

	if m.width != 100 {
		t.Errorf("Expected width to be 100, got %d", m.width)
	}

	if m.height != 40 {
		t.Errorf("Expected height to be 40, got %d", m.height)
	}

	if !m.ready {
		t.Error("Expected ready to be true after resize")
	}
}

// TestDashboardEmptyState tests behavior with no records
func TestDashboardEmptyState(t *testing.T) {
	ctx := context.Background()
	m := newDashboardModel(ctx, []domain.DownloadRecord{})

	if len(m.filteredRecords) != 0 {
		t.Errorf("Expected 0 filtered records, got %d", len(m.filteredRecords))
	}

	// Navigation should not crash with empty list
	msg := tea.KeyMsg{Type: tea.KeyDown}
	_, _ = m.updateList(msg)

	msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'G'}}
	_, _ = m.updateList(msg)
}

// TestDashboardViewportAdjustment tests viewport scrolling
func TestDashboardViewportAdjustment(t *testing.T) {
	ctx := context.Background()
	m := newDashboardModel(ctx, createTestRecords(20))
	m.height = 20

	m.cursor = 15
	m.adjustViewport()

	if m.offset < 0 {
		t.Errorf("Offset should not be negative, got %d", m.offset)
	}

	if m.cursor < m.offset {
		t.Error("Cursor should remain visible after scrolling down")
	}

	m.cursor = 2
	m.adjustViewport()

	if m.offset > m.cursor {
		t.Errorf("Offset should not be greater than cursor position")
	}
}

// TestFormatRelativeTime tests compact age formatting
func TestFormatRelativeTime(t *testing.T) {
	tests := []struct {
		name     string
		t        time.Time
		expected string
	}{
		{"zero time", time.Time{}, "unknown"},
		{"just now", time.Now().Add(-10 * time.Second), "just now"},
		{"minutes", time.Now().Add(-5 * time.Minute), "5m ago"},
		{"hours", time.Now().Add(-3 * time.Hour), "3h ago"},
		{"yesterday", time.Now().Add(-30 * time.Hour), "1d ago"},
		{"days", time.Now().Add(-4 * 24 * time.Hour), "4d ago"},
		{"weeks", time.Now().Add(-10 * 24 * time.Hour), "1w ago"},
		{"months", time.Now().Add(-70 * 24 * time.Hour), "2mo ago"},
		{"years", time.Now().Add(-400 * 24 * time.Hour), "1y ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := formatRelativeTime(tt.t)
			if result != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, result)
			}
		})
	}
}

// TestDashboardPadRight tests the padRight utility function
func TestDashboardPadRight(t *testing.T) {
	tests := []struct {
		name  string
		input string
		width int
	}{
		{"short string", "hello", 10},
		{"exact width", "hello", 5},
		{"longer than width", "hello world", 5},
		{"empty string", "", 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := padRight(tt.input, tt.width)
			if len(result) < len(tt.input) {
				t.Error("padRight should never truncate")
			}
			if len(tt.input) < tt.width && len(result) != tt.width {
				t.Errorf("Expected padded length %d, got %d", tt.width, len(result))
			}
		})
	}
}

// TestDashboardRecordItemRendering tests individual record rendering
func TestDashboardRecordItemRendering(t *testing.T) {
	ctx := context.Background()
	records := createTestRecords(1)
	m := newDashboardModel(ctx, records)
	m.width = 100

	selectedOutput := m.renderRecordItem(records[0], true, 60)
	if selectedOutput == "" {
		t.Error("Selected record rendering should not be empty")
	}

	unselectedOutput := m.renderRecordItem(records[0], false, 60)
	if unselectedOutput == "" {
		t.Error("Unselected record rendering should not be empty")
	}

	if selectedOutput == unselectedOutput {
		t.Error("Selected and unselected renderings should differ")
	}
}

// TestDashboardRenderDetail tests the detail pane
func TestDashboardRenderDetail(t *testing.T) {
	ctx := context.Background()
	records := createTestRecords(2)
	m := newDashboardModel(ctx, records)
	m.width = 120
	m.height = 40

	result := m.renderDetail(60)
	if result == "" {
		t.Error("renderDetail should return content when a record is selected")
	}

	// Empty state
	m.filteredRecords = nil
	result = m.renderDetail(60)
	if result == "" {
		t.Error("renderDetail should render an empty state")
	}
}

// TestDashboardSearchBarRendering tests that the search bar renders in both modes
func TestDashboardSearchBarRendering(t *testing.T) {
	ctx := context.Background()
	m := newDashboardModel(ctx, createTestRecords(3))
	m.width = 80

	inactive := m.renderSearchBar()
	if inactive == "" {
		t.Error("Search bar should render when inactive")
	}

	m.mode = modeSearch
	active := m.renderSearchBar()
	if active == "" {
		t.Error("Search bar should render when active")
	}
}

// Benchmark navigation through a large ledger
func BenchmarkDashboardNavigation(b *testing.B) {
	ctx := context.Background()
	m := newDashboardModel(ctx, createTestRecords(1000))

	msg := tea.KeyMsg{Type: tea.KeyDown}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		updated, _ := m.updateList(msg)
		m = updated.(dashboardModel)
	}
}
