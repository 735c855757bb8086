package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TableColumn declares one column. Width is a minimum; columns grow to
// fit their widest cell. Align is "left", "right" or "center".
type TableColumn struct {
	Header string
	Width  int
	Align  string
}

// Table accumulates rows and renders them as an aligned text table
// with a header rule.
type Table struct {
	Columns []TableColumn
	Rows    [][]string
}

// NewTable creates an empty table with the given columns
func NewTable(columns []TableColumn) *Table {
	return &Table{Columns: columns}
}

// AddRow appends one row. Extra cells beyond the declared columns are
// ignored.
func (t *Table) AddRow(cells []string) {
	t.Rows = append(t.Rows, cells)
}

// widths returns the effective column widths. Cells are measured with
// lipgloss so ANSI sequences and wide runes count correctly.
func (t *Table) widths() []int {
	widths := make([]int, len(t.Columns))
	for i, col := range t.Columns {
		widths[i] = lipgloss.Width(col.Header)
		if col.Width > widths[i] {
			widths[i] = col.Width
		}
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

// Render produces the table text, one trailing newline per line
func (t *Table) Render() string {
	if len(t.Columns) == 0 {
		return ""
	}

	widths := t.widths()
	var b strings.Builder

	cells := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		cells[i] = pad(col.Header, widths[i], "left")
	}
	b.WriteString(StyleTableHeader.Render(strings.Join(cells, "  ")))
	b.WriteByte('\n')

	for i := range t.Columns {
		cells[i] = strings.Repeat("─", widths[i])
	}
	b.WriteString(StyleTableBorder.Render(strings.Join(cells, "  ")))
	b.WriteByte('\n')

	for idx, row := range t.Rows {
		for i := range t.Columns {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			align := t.Columns[i].Align
			if align == "" {
				align = "left"
			}
			cells[i] = pad(cell, widths[i], align)
		}

		rowStyle := StyleTableRow
		if idx%2 == 1 {
			rowStyle = StyleTableRowAlt
		}
		b.WriteString(rowStyle.Render(strings.Join(cells, "  ")))
		b.WriteByte('\n')
	}

	return b.String()
}

// pad fills s with spaces up to width, honoring the alignment
func pad(s string, width int, align string) string {
	gap := width - lipgloss.Width(s)
	if gap <= 0 {
		return s
	}

	switch align {
	case "right":
		return strings.Repeat(" ", gap) + s
	case "center":
		left := gap / 2
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", gap-left)
	default:
		return s + strings.Repeat(" ", gap)
	}
}

// RenderSimpleList renders items as an indented bullet list
func RenderSimpleList(items []string) string {
	var b strings.Builder
	for _, item := range items {
		b.WriteString(StyleInfo.Render("  • "))
		b.WriteString(item)
		b.WriteByte('\n')
	}
	return b.String()
}

// RenderKeyValue renders "key: value" with an accented key
func RenderKeyValue(key, value string) string {
	return StyleAccent.Render(key) + ": " + value
}

// Truncate shortens a string to maxLen runes with an ellipsis
func Truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
