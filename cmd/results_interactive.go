package cmd

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/kamal-hamza/vsx-cli/internal/core/domain"
)

// resultItem is one snapshot row flattened for navigation
type resultItem struct {
	ID        string
	Available bool
	URL       string
}

// ResultsView provides a terminal-based snapshot browser
type ResultsView struct {
	items         []resultItem
	screen        tcell.Screen
	width         int
	height        int
	scrollOffset  int
	selectedIndex int
	filter        string // "all", "available", "unavailable"
}

// NewResultsView creates a new interactive snapshot browser
func NewResultsView(snapshot *domain.Results) (*ResultsView, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}

	if err := screen.Init(); err != nil {
		return nil, err
	}

	items := make([]resultItem, 0, len(snapshot.Available)+len(snapshot.Unavailable))
	for _, ext := range snapshot.Available {
		items = append(items, resultItem{ID: ext.ID, Available: true, URL: ext.URL})
	}
	for _, ext := range snapshot.Unavailable {
		items = append(items, resultItem{ID: ext.ID, Available: false})
	}

	width, height := screen.Size()

	return &ResultsView{
		items:         items,
		screen:        screen,
		width:         width,
		height:        height,
		scrollOffset:  0,
		selectedIndex: 0,
		filter:        "all",
	}, nil
}

// Run starts the interactive browser
func (v *ResultsView) Run() error {
	defer v.screen.Fini()

	v.screen.Clear()
	v.render()

	for {
		ev := v.screen.PollEvent()

		switch ev := ev.(type) {
		case *tcell.EventResize:
			v.width, v.height = ev.Size()
			v.screen.Sync()
			v.render()

		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
				return nil
			}

			v.handleKeyPress(ev)
			v.render()
		}
	}
}

// handleKeyPress processes keyboard input
func (v *ResultsView) handleKeyPress(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyUp, tcell.KeyCtrlP:
		v.moveCursor(-1)
	case tcell.KeyDown, tcell.KeyCtrlN:
		v.moveCursor(1)
	case tcell.KeyTab:
		v.toggleFilter()
	case tcell.KeyHome:
		v.selectedIndex = 0
		v.scrollOffset = 0
	case tcell.KeyEnd:
		if items := v.visibleItems(); len(items) > 0 {
			v.selectedIndex = len(items) - 1
			v.adjustScroll()
		}
	}

	// Vim-style navigation
	switch ev.Rune() {
	case 'j':
		v.moveCursor(1)
	case 'k':
		v.moveCursor(-1)
	case 'g':
		v.selectedIndex = 0
		v.scrollOffset = 0
	case 'G':
		if items := v.visibleItems(); len(items) > 0 {
			v.selectedIndex = len(items) - 1
			v.adjustScroll()
		}
	}
}

// moveCursor moves the selection cursor
func (v *ResultsView) moveCursor(delta int) {
	items := v.visibleItems()
	if len(items) == 0 {
		return
	}

	v.selectedIndex += delta

	if v.selectedIndex < 0 {
		v.selectedIndex = 0
	}
	if v.selectedIndex >= len(items) {
		v.selectedIndex = len(items) - 1
	}

	v.adjustScroll()
}

// adjustScroll adjusts scroll offset to keep cursor visible
func (v *ResultsView) adjustScroll() {
	visibleLines := v.listHeight()

	if v.selectedIndex < v.scrollOffset {
		v.scrollOffset = v.selectedIndex
	}
	if v.selectedIndex >= v.scrollOffset+visibleLines {
		v.scrollOffset = v.selectedIndex - visibleLines + 1
	}
}

// listHeight is the number of rows the list area can show
func (v *ResultsView) listHeight() int {
	// Header, stats, and the detail/footer area are reserved
	h := v.height - 10
	if h < 1 {
		h = 1
	}
	return h
}

// visibleItems returns the rows matching the active filter
func (v *ResultsView) visibleItems() []resultItem {
	if v.filter == "all" {
		return v.items
	}

	wantAvailable := v.filter == "available"
	filtered := make([]resultItem, 0, len(v.items))
	for _, item := range v.items {
		if item.Available == wantAvailable {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// toggleFilter cycles all -> available -> unavailable
func (v *ResultsView) toggleFilter() {
	switch v.filter {
	case "all":
		v.filter = "available"
	case "available":
		v.filter = "unavailable"
	default:
		v.filter = "all"
	}
	v.selectedIndex = 0
	v.scrollOffset = 0
}

// render draws the interface
func (v *ResultsView) render() {
	v.screen.Clear()

	items := v.visibleItems()

	availableCount := 0
	for _, item := range v.items {
		if item.Available {
			availableCount++
		}
	}

	y := 0

	// Header
	titleStyle := tcell.StyleDefault.Bold(true).Foreground(tcell.ColorPurple)
	v.drawText(0, y, "┌─ Availability snapshot", titleStyle)
	y++
	statsText := fmt.Sprintf("│  Available: %d │ Unavailable: %d │ Filter: %s",
		availableCount, len(v.items)-availableCount, v.filter)
	v.drawText(0, y, statsText, tcell.StyleDefault.Foreground(tcell.ColorGray))
	y++
	v.drawText(0, y, "└─────────────────────────────────────────────────────────────", tcell.StyleDefault.Foreground(tcell.ColorGray))
	y += 2

	// List
	if len(items) == 0 {
		v.drawText(0, y, "  nothing matches this filter", tcell.StyleDefault.Foreground(tcell.ColorGray))
	}

	for i := v.scrollOffset; i < len(items) && i < v.scrollOffset+v.listHeight(); i++ {
		item := items[i]

		style := tcell.StyleDefault
		prefix := "  "
		if i == v.selectedIndex {
			style = style.Reverse(true)
			prefix = "▶ "
		}

		marker := "✗"
		markerStyle := style.Foreground(tcell.ColorYellow)
		if item.Available {
			marker = "✓"
			markerStyle = style.Foreground(tcell.ColorGreen)
		}

		v.drawText(0, y, prefix, style)
		v.drawText(2, y, marker, markerStyle)
		v.drawText(4, y, item.ID, style)
		y++
	}

	// Detail area for the selected row
	detailY := v.height - 5
	v.drawText(0, detailY, strings.Repeat("─", v.width), tcell.StyleDefault.Foreground(tcell.ColorGray))
	detailY++

	if v.selectedIndex < len(items) {
		item := items[v.selectedIndex]
		if item.Available {
			v.drawText(0, detailY, "registry: "+item.URL, tcell.StyleDefault.Foreground(tcell.ColorGreen))
		} else if asset, err := domain.Synthesize(item.ID, "", ""); err == nil {
			v.drawText(0, detailY, "marketplace: "+asset.MarketplaceURL, tcell.StyleDefault.Foreground(tcell.ColorYellow))
			detailY++
			v.drawText(0, detailY, "fallback:    "+asset.DirectDownloadURL, tcell.StyleDefault.Foreground(tcell.ColorYellow))
		}
	}

	// Footer - Help text
	footerY := v.height - 2
	v.drawText(0, footerY, strings.Repeat("─", v.width), tcell.StyleDefault.Foreground(tcell.ColorGray))
	footerY++

	helpText := "↑↓/jk: Navigate │ Tab: Filter │ q/Esc: Quit"
	v.drawText(0, footerY, helpText, tcell.StyleDefault.Foreground(tcell.ColorGray))

	v.screen.Show()
}

// drawText draws text at the specified position
func (v *ResultsView) drawText(x, y int, text string, style tcell.Style) {
	col := x
	for _, r := range text {
		if col >= v.width {
			break
		}
		v.screen.SetContent(col, y, r, nil, style)
		col++
	}
}
