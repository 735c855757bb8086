package cmd

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/kamal-hamza/vsx-cli/internal/adapters/download"
	"github.com/kamal-hamza/vsx-cli/internal/adapters/repository"
	"github.com/kamal-hamza/vsx-cli/internal/core/domain"
	"github.com/kamal-hamza/vsx-cli/internal/core/services"
	"github.com/kamal-hamza/vsx-cli/pkg/ui"
)

// dashboardCmd represents the dashboard command
var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"dash"},
	Short:   "Launch interactive ledger dashboard (alias: dash)",
	Long: `Launch a full-screen interactive dashboard for the download ledger.

The dashboard provides:
- List view with all download attempts, newest first
- Real-time search and status filtering
- Quick actions: reveal file, copy URL, retry failed downloads

Keyboard Shortcuts:
  Navigation:
    ↑/k         Move up
    ↓/j         Move down
    g           Jump to first record
    G           Jump to last record

  Actions:
    Enter       Reveal downloaded file
    c           Copy direct download URL
    r           Retry the download

  Views:
    /           Search by extension id
    f           Cycle status filter (all/ok/failed)
    Esc         Clear search / leave mode
    ?           Toggle help

  General:
    q           Quit
    Ctrl+C      Quit immediately`,
	RunE: runDashboard,
}

func runDashboard(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	// Load initial data
	listResp, err := newLedgerService(appConfig.Ledger).Execute(ctx, services.LedgerListRequest{
		Status:  services.StatusAll,
		SortBy:  "date",
		Reverse: true,
	})
	if err != nil {
		return fmt.Errorf("failed to load download records: %w", err)
	}

	// Initialize dashboard model
	m := newDashboardModel(ctx, listResp.Records)

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running dashboard: %w", err)
	}

	return nil
}

// Dashboard view modes
type viewMode int

const (
	modeList viewMode = iota
	modeSearch
	modeHelp
)

// Dashboard model
type dashboardModel struct {
	ctx             context.Context
	records         []domain.DownloadRecord // All records
	filteredRecords []domain.DownloadRecord // Filtered/searched records
	cursor          int                     // Selected item index
	offset          int                     // Scroll offset for viewport
	mode            viewMode
	statusFilter    string // all, ok, failed
	searchInput     textinput.Model
	help            help.Model
	keys            keyMap
	width           int
	height          int
	ready           bool
	message         string // Status message
	messageStyle    lipgloss.Style
	messageExpiry   time.Time
}

// Key bindings
type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding
	Open   key.Binding
	Copy   key.Binding
	Retry  key.Binding
	Filter key.Binding
	Search key.Binding
	Help   key.Binding
	Quit   key.Binding
	Escape key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Open, k.Retry, k.Search, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom},
		{k.Open, k.Copy, k.Retry},
		{k.Search, k.Filter, k.Help, k.Escape, k.Quit},
	}
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "move up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "move down"),
	),
	Top: key.NewBinding(
		key.WithKeys("g"),
		key.WithHelp("g", "top"),
	),
	Bottom: key.NewBinding(
		key.WithKeys("G"),
		key.WithHelp("G", "bottom"),
	),
	Open: key.NewBinding(
		key.WithKeys("enter", "o"),
		key.WithHelp("enter/o", "reveal file"),
	),
	Copy: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "copy URL"),
	),
	Retry: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "retry download"),
	),
	Filter: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "cycle filter"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Escape: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
}

func newDashboardModel(ctx context.Context, records []domain.DownloadRecord) dashboardModel {
	ti := textinput.New()
	ti.Placeholder = "Search extensions..."
	ti.CharLimit = 100
	ti.Width = 50

	return dashboardModel{
		ctx:             ctx,
		records:         records,
		filteredRecords: records,
		cursor:          0,
		offset:          0,
		mode:            modeList,
		statusFilter:    services.StatusAll,
		searchInput:     ti,
		help:            help.New(),
		keys:            keys,
		ready:           false,
	}
}

func (m dashboardModel) Init() tea.Cmd {
	return nil
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeSearch:
			return m.updateSearch(msg)
		case modeHelp:
			return m.updateHelp(msg)
		case modeList:
			return m.updateList(msg)
		}

	case statusMsg:
		m.message = msg.message
		m.messageStyle = msg.style
		m.messageExpiry = time.Now().Add(3 * time.Second)
		return m, nil

	case reloadRecordsMsg:
		// Reload records from disk
		listResp, err := newLedgerService(appConfig.Ledger).Execute(m.ctx, services.LedgerListRequest{
			Status:  services.StatusAll,
			SortBy:  "date",
			Reverse: true,
		})
		if err == nil {
			m.records = listResp.Records
			m.applyFilters()
		}
		return m, nil
	}

	return m, nil
}

func (m dashboardModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
			m.adjustViewport()
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.filteredRecords)-1 {
			m.cursor++
			m.adjustViewport()
		}

	case key.Matches(msg, m.keys.Top):
		m.cursor = 0
		m.offset = 0

	case key.Matches(msg, m.keys.Bottom):
		m.cursor = len(m.filteredRecords) - 1
		m.adjustViewport()

	case key.Matches(msg, m.keys.Open):
		if len(m.filteredRecords) > 0 {
			return m, m.revealRecord(m.filteredRecords[m.cursor])
		}

	case key.Matches(msg, m.keys.Copy):
		if len(m.filteredRecords) > 0 {
			return m, m.copyRecordURL(m.filteredRecords[m.cursor])
		}

	case key.Matches(msg, m.keys.Retry):
		if len(m.filteredRecords) > 0 {
			return m, m.retryDownload(m.filteredRecords[m.cursor])
		}

	case key.Matches(msg, m.keys.Filter):
		m.cycleFilter()

	case key.Matches(msg, m.keys.Search):
		m.mode = modeSearch
		m.searchInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Help):
		m.mode = modeHelp
	}

	return m, nil
}

func (m dashboardModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch {
	case key.Matches(msg, m.keys.Escape):
		m.mode = modeList
		m.searchInput.Blur()
		m.searchInput.SetValue("")
		m.applyFilters()
		return m, nil

	// Enter key returns to the list keeping the filter
	case msg.Type == tea.KeyEnter:
		m.mode = modeList
		m.searchInput.Blur()
		return m, nil

	// Only use arrow keys for navigation in search mode, not j/k
	case msg.Type == tea.KeyUp:
		if m.cursor > 0 {
			m.cursor--
			m.adjustViewport()
		}

	case msg.Type == tea.KeyDown:
		if m.cursor < len(m.filteredRecords)-1 {
			m.cursor++
			m.adjustViewport()
		}

	default:
		m.searchInput, cmd = m.searchInput.Update(msg)
		m.applyFilters()
		return m, cmd
	}

	return m, nil
}

func (m dashboardModel) updateHelp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Help), key.Matches(msg, m.keys.Quit):
		m.mode = modeList
	}
	return m, nil
}

func (m dashboardModel) View() string {
	if !m.ready {
		return "\n  Loading dashboard..."
	}

	if m.mode == modeHelp {
		return m.viewHelp()
	}
	return m.viewList()
}

func (m dashboardModel) viewList() string {
	// Split screen: list on left, record detail on right
	listWidth := int(float64(m.width) * 0.55)
	detailWidth := m.width - listWidth - 2

	var s strings.Builder

	// Header spans full width
	s.WriteString(m.renderHeader())
	s.WriteString("\n")

	// Search bar spans full width
	s.WriteString(m.renderSearchBar())
	s.WriteString("\n\n")

	if detailWidth < 30 {
		// Screen too narrow, list only
		s.WriteString(m.renderRecordsList(m.width))
	} else {
		listContent := m.renderRecordsList(listWidth)
		detailContent := m.renderDetail(detailWidth)

		listLines := strings.Split(listContent, "\n")
		detailLines := strings.Split(detailContent, "\n")

		maxLines := len(listLines)
		if len(detailLines) > maxLines {
			maxLines = len(detailLines)
		}

		for i := 0; i < maxLines; i++ {
			var listLine, detailLine string

			if i < len(listLines) {
				listLine = listLines[i]
			}
			if i < len(detailLines) {
				detailLine = detailLines[i]
			}

			s.WriteString(padRight(listLine, listWidth))
			s.WriteString("  ")
			s.WriteString(detailLine)
			s.WriteString("\n")
		}
	}

	// Footer
	s.WriteString("\n")
	s.WriteString(m.renderFooter())

	return s.String()
}

func (m dashboardModel) viewHelp() string {
	var s strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(ui.ColorPrimary).
		Padding(1, 2)

	sectionStyle := lipgloss.NewStyle().
		Foreground(ui.ColorAccent).
		Bold(true).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(ui.ColorSuccess).
		Bold(true).
		Width(12)

	descStyle := lipgloss.NewStyle().
		Foreground(ui.ColorDefault)

	s.WriteString(titleStyle.Render("VSX Dashboard - Keyboard Shortcuts"))
	s.WriteString("\n\n")

	sections := []struct {
		title string
		keys  []struct{ key, desc string }
	}{
		{
			title: "Navigation",
			keys: []struct{ key, desc string }{
				{"↑ / k", "Move cursor up"},
				{"↓ / j", "Move cursor down"},
				{"g", "Jump to first record"},
				{"G", "Jump to last record"},
			},
		},
		{
			title: "Actions",
			keys: []struct{ key, desc string }{
				{"Enter / o", "Reveal the downloaded file"},
				{"c", "Copy the direct download URL"},
				{"r", "Retry the download"},
			},
		},
		{
			title: "Views & Search",
			keys: []struct{ key, desc string }{
				{"/", "Search by extension id"},
				{"f", "Cycle status filter (all/ok/failed)"},
				{"Esc", "Clear search / leave mode"},
				{"?", "Toggle this help"},
			},
		},
		{
			title: "General",
			keys: []struct{ key, desc string }{
				{"q", "Quit"},
				{"Ctrl+C", "Quit immediately"},
			},
		},
	}

	for _, section := range sections {
		s.WriteString(sectionStyle.Render(section.title))
		s.WriteString("\n")
		for _, binding := range section.keys {
			s.WriteString("  ")
			s.WriteString(keyStyle.Render(binding.key))
			s.WriteString(descStyle.Render(binding.desc))
			s.WriteString("\n")
		}
	}

	s.WriteString("\n")
	s.WriteString(ui.StyleMuted.Render("  Press ESC or ? to return to dashboard"))
	s.WriteString("\n")

	return s.String()
}

func (m dashboardModel) renderHeader() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(ui.ColorPrimary).
		Bold(true).
		Padding(0, 1)

	statsStyle := lipgloss.NewStyle().
		Foreground(ui.ColorMuted).
		Align(lipgloss.Right)

	ledgerPath := appWorkspace.Resolve(appConfig.Ledger)
	if home, err := os.UserHomeDir(); err == nil {
		ledgerPath = strings.Replace(ledgerPath, home, "~", 1)
	}

	title := titleStyle.Render(ui.IconPackage + " VSX Download Ledger")
	stats := statsStyle.Render(fmt.Sprintf("%d records [%s]  %s", len(m.filteredRecords), m.statusFilter, ledgerPath))

	// Title left, stats right, spacer in between
	titleWidth := lipgloss.Width(title)
	statsWidth := lipgloss.Width(stats)
	spacer := m.width - titleWidth - statsWidth

	if spacer < 0 {
		spacer = 0
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		title,
		strings.Repeat(" ", spacer),
		stats,
	)
}

func (m dashboardModel) renderSearchBar() string {
	borderColor := ui.ColorMuted
	if m.mode == modeSearch {
		borderColor = ui.ColorPrimary
	}

	searchStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1).
		Width(m.width - 4)

	var prompt string
	if m.mode == modeSearch {
		prompt = ui.StylePrimary.Render("🔍 ")
	} else {
		prompt = ui.StyleMuted.Render("🔍 ")
	}

	content := prompt + m.searchInput.View()
	if m.mode != modeSearch && m.searchInput.Value() == "" {
		content = prompt + ui.StyleMuted.Render("Press / to search...")
	}

	return searchStyle.Render(content)
}

func (m dashboardModel) renderRecordsList(width int) string {
	var s strings.Builder

	if len(m.filteredRecords) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(ui.ColorMuted).
			Italic(true).
			Padding(2, 2).
			Width(width)

		if m.searchInput.Value() != "" || m.statusFilter != services.StatusAll {
			s.WriteString(emptyStyle.Render("No records match your filter."))
		} else {
			s.WriteString(emptyStyle.Render("No download attempts yet. Run: vsx sync"))
		}
		return s.String()
	}

	// Calculate viewport
	listHeight := m.height - 10 // Reserve space for header, search, footer
	if listHeight < 3 {
		listHeight = 3
	}

	// Render visible records
	start := m.offset
	end := m.offset + listHeight
	if end > len(m.filteredRecords) {
		end = len(m.filteredRecords)
	}

	for i := start; i < end; i++ {
		s.WriteString(m.renderRecordItem(m.filteredRecords[i], i == m.cursor, width))
	}

	return s.String()
}

func (m dashboardModel) renderRecordItem(rec domain.DownloadRecord, selected bool, width int) string {
	var cursor string
	idStyle := lipgloss.NewStyle().Foreground(ui.ColorDefault)

	if selected {
		cursor = ui.StylePrimary.Render("▶ ")
		idStyle = ui.StylePrimary.Copy().Bold(true)
	} else {
		cursor = "  "
	}

	status := ui.StyleSuccess.Render(ui.IconSuccess)
	if !rec.Success {
		status = ui.StyleError.Render(ui.IconError)
	}

	// Truncate ID to fit width
	maxIDLen := width - 14 // Reserve space for cursor, status, and date
	if maxIDLen < 10 {
		maxIDLen = 10
	}
	id := ui.Truncate(rec.ID, maxIDLen)

	line := fmt.Sprintf("%s%s %-*s %s",
		cursor,
		status,
		maxIDLen,
		idStyle.Render(id),
		ui.StyleMuted.Render(formatRelativeTime(rec.Time())),
	)

	return padRight(line, width) + "\n"
}

func (m dashboardModel) renderDetail(width int) string {
	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ui.ColorMuted).
		Padding(0, 1).
		Width(width - 2)

	if len(m.filteredRecords) == 0 {
		return borderStyle.Render(
			lipgloss.NewStyle().
				Foreground(ui.ColorMuted).
				Italic(true).
				Render("No record selected"),
		)
	}

	rec := m.filteredRecords[m.cursor]

	var s strings.Builder

	s.WriteString(ui.StylePrimary.Copy().Bold(true).Render(rec.ID))
	s.WriteString("\n\n")

	s.WriteString(ui.StyleBold.Render("Status:    "))
	s.WriteString(ui.FormatStatus(rec.Success))
	s.WriteString("\n")

	version := rec.Version
	if version == "" {
		version = "latest"
	}
	s.WriteString(ui.StyleBold.Render("Version:   "))
	s.WriteString(version)
	s.WriteString("\n")

	s.WriteString(ui.StyleBold.Render("File:      "))
	s.WriteString(ui.Truncate(rec.FileName, width-16))
	s.WriteString("\n")

	s.WriteString(ui.StyleBold.Render("Path:      "))
	s.WriteString(ui.Truncate(rec.DownloadPath, width-16))
	s.WriteString("\n")

	s.WriteString(ui.StyleBold.Render("Attempted: "))
	s.WriteString(rec.DisplayTimestamp())
	s.WriteString("\n\n")

	s.WriteString(ui.StyleMuted.Render(ui.Truncate("Page: "+rec.MarketplaceURL, width-6)))
	s.WriteString("\n")
	s.WriteString(ui.StyleMuted.Render(ui.Truncate("URL:  "+rec.DirectDownloadURL, width-6)))

	return borderStyle.Render(s.String())
}

func (m dashboardModel) renderFooter() string {
	// Status message
	var statusLine string
	if m.message != "" && time.Now().Before(m.messageExpiry) {
		statusLine = m.messageStyle.Render(m.message)
	} else {
		statusLine = ui.StyleMuted.Render("Ready")
	}

	// Help hint
	helpHint := ui.StyleMuted.Render("[↑↓/jk] Navigate  [Enter/o] Reveal  [c] Copy URL  [r] Retry  [f] Filter  [/] Search  [?] Help  [q] Quit")

	footerStyle := lipgloss.NewStyle().
		BorderTop(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ui.ColorMuted).
		Padding(0, 1)

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		statusLine,
		helpHint,
	)

	return footerStyle.Render(content)
}

func padRight(s string, width int) string {
	// Strip ANSI codes to get real length
	realLen := lipgloss.Width(s)
	if realLen >= width {
		return s
	}
	return s + strings.Repeat(" ", width-realLen)
}

func (m *dashboardModel) adjustViewport() {
	listHeight := m.height - 10
	if listHeight < 3 {
		listHeight = 3
	}

	// Scroll down
	if m.cursor >= m.offset+listHeight {
		m.offset = m.cursor - listHeight + 1
	}

	// Scroll up
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
}

// applyFilters narrows the record list to the active status filter and
// search query
func (m *dashboardModel) applyFilters() {
	query := strings.ToLower(strings.TrimSpace(m.searchInput.Value()))

	filtered := make([]domain.DownloadRecord, 0, len(m.records))
	for _, rec := range m.records {
		if m.statusFilter == services.StatusOK && !rec.Success {
			continue
		}
		if m.statusFilter == services.StatusFailed && rec.Success {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(rec.ID), query) {
			continue
		}
		filtered = append(filtered, rec)
	}
	m.filteredRecords = filtered

	// Reset cursor
	if m.cursor >= len(m.filteredRecords) {
		m.cursor = len(m.filteredRecords) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.adjustViewport()
}

func (m *dashboardModel) cycleFilter() {
	switch m.statusFilter {
	case services.StatusAll:
		m.statusFilter = services.StatusOK
	case services.StatusOK:
		m.statusFilter = services.StatusFailed
	default:
		m.statusFilter = services.StatusAll
	}
	m.cursor = 0
	m.offset = 0
	m.applyFilters()
}

// formatRelativeTime renders a timestamp as a compact age
func formatRelativeTime(t time.Time) string {
	if t.IsZero() {
		return "unknown"
	}

	diff := time.Since(t)
	days := int(diff.Hours() / 24)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case days == 0:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case days == 1:
		return "1d ago"
	case days < 7:
		return fmt.Sprintf("%dd ago", days)
	case days < 30:
		return fmt.Sprintf("%dw ago", days/7)
	case days < 365:
		return fmt.Sprintf("%dmo ago", days/30)
	default:
		return fmt.Sprintf("%dy ago", days/365)
	}
}

// Commands

type statusMsg struct {
	message string
	style   lipgloss.Style
}

type reloadRecordsMsg struct{}

func (m dashboardModel) revealRecord(rec domain.DownloadRecord) tea.Cmd {
	return func() tea.Msg {
		if _, err := os.Stat(rec.DownloadPath); os.IsNotExist(err) {
			return statusMsg{
				message: "File not found. Retry the download first (press 'r')",
				style:   ui.StyleWarning,
			}
		}

		// Open the containing directory
		dir := filepath.Dir(rec.DownloadPath)

		var cmd *exec.Cmd
		switch {
		case fileExists("/usr/bin/open"): // macOS
			cmd = exec.Command("open", dir)
		case fileExists("/usr/bin/xdg-open"): // Linux
			cmd = exec.Command("xdg-open", dir)
		default:
			return statusMsg{
				message: "Unsupported platform for opening folders",
				style:   ui.StyleError,
			}
		}

		if err := cmd.Start(); err != nil {
			return statusMsg{
				message: fmt.Sprintf("Failed to open folder: %v", err),
				style:   ui.StyleError,
			}
		}

		return statusMsg{
			message: "Opened: " + dir,
			style:   ui.StyleSuccess,
		}
	}
}

func (m dashboardModel) copyRecordURL(rec domain.DownloadRecord) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(rec.DirectDownloadURL); err != nil {
			return statusMsg{
				message: fmt.Sprintf("Failed to copy URL: %v", err),
				style:   ui.StyleError,
			}
		}

		return statusMsg{
			message: "Copied: " + rec.DirectDownloadURL,
			style:   ui.StyleSuccess,
		}
	}
}

func (m dashboardModel) retryDownload(rec domain.DownloadRecord) tea.Cmd {
	return func() tea.Msg {
		if err := os.MkdirAll(filepath.Dir(rec.DownloadPath), 0755); err != nil {
			return statusMsg{
				message: fmt.Sprintf("Retry failed: %v", err),
				style:   ui.StyleError,
			}
		}

		fetcher := download.NewHTTPFetcher()
		_, fetchErr := fetcher.Fetch(m.ctx, rec.DirectDownloadURL, rec.DownloadPath, nil)

		ledger := repository.NewFileLedgerRepository(appConfig.Ledger)
		if err := ledger.UpdateStatus(m.ctx, rec.ID, fetchErr == nil); err != nil {
			return statusMsg{
				message: fmt.Sprintf("Ledger update failed: %v", err),
				style:   ui.StyleError,
			}
		}

		if fetchErr != nil {
			return tea.Sequence(
				func() tea.Msg {
					return statusMsg{
						message: fmt.Sprintf("Retry failed: %v", fetchErr),
						style:   ui.StyleError,
					}
				},
				func() tea.Msg {
					return reloadRecordsMsg{}
				},
			)()
		}

		return tea.Sequence(
			func() tea.Msg {
				return statusMsg{
					message: "✓ Downloaded: " + rec.FileName,
					style:   ui.StyleSuccess,
				}
			},
			func() tea.Msg {
				return reloadRecordsMsg{}
			},
		)()
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
