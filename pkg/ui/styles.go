package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette built on the 16 ANSI colors so output follows whatever
// scheme the terminal already uses. Primary leans blue to match the
// editor this tool feeds.
var (
	ColorPrimary = lipgloss.AdaptiveColor{Light: "4", Dark: "4"}
	ColorAccent  = lipgloss.AdaptiveColor{Light: "5", Dark: "5"}
	ColorInfo    = lipgloss.AdaptiveColor{Light: "6", Dark: "6"}
	ColorSuccess = lipgloss.AdaptiveColor{Light: "2", Dark: "2"}
	ColorError   = lipgloss.AdaptiveColor{Light: "1", Dark: "1"}
	ColorWarning = lipgloss.AdaptiveColor{Light: "3", Dark: "3"}
	ColorMuted   = lipgloss.AdaptiveColor{Light: "8", Dark: "8"}
	ColorDefault = lipgloss.AdaptiveColor{Light: "7", Dark: "7"}
)

// Styles are rebuilt whenever the theme changes, so commands can hold
// references to these vars without caring about theme order.
var (
	StyleSuccess lipgloss.Style
	StyleError   lipgloss.Style
	StyleWarning lipgloss.Style
	StyleInfo    lipgloss.Style
	StylePrimary lipgloss.Style
	StyleAccent  lipgloss.Style
	StyleMuted   lipgloss.Style
	StyleBold    lipgloss.Style

	StyleTitle  lipgloss.Style
	StyleHeader lipgloss.Style

	StyleTableHeader lipgloss.Style
	StyleTableRow    lipgloss.Style
	StyleTableRowAlt lipgloss.Style
	StyleTableBorder lipgloss.Style
)

// Status icons shared by every command
var (
	IconSuccess  = "✔"
	IconError    = "✘"
	IconWarning  = "⚠"
	IconInfo     = "ℹ"
	IconRocket   = "🚀"
	IconDownload = "⬇"
	IconPackage  = "📦"
)

func init() {
	SetTheme("auto")
}

// SetTheme forces light or dark rendering. Anything other than those
// two values leaves background detection to lipgloss.
func SetTheme(theme string) {
	switch theme {
	case "light":
		lipgloss.SetHasDarkBackground(false)
	case "dark":
		lipgloss.SetHasDarkBackground(true)
	}
	rebuildStyles()
}

func rebuildStyles() {
	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true)
	StyleError = lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning).Bold(true)
	StyleInfo = lipgloss.NewStyle().Foreground(ColorInfo)
	StylePrimary = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	StyleAccent = lipgloss.NewStyle().Foreground(ColorAccent)
	StyleMuted = lipgloss.NewStyle().Foreground(ColorMuted)
	StyleBold = lipgloss.NewStyle().Bold(true)

	StyleTitle = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true).Underline(true)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)

	StyleTableHeader = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true).Align(lipgloss.Left)
	StyleTableRow = lipgloss.NewStyle().Foreground(ColorDefault)
	StyleTableRowAlt = lipgloss.NewStyle().Foreground(ColorDefault).Faint(true)
	StyleTableBorder = lipgloss.NewStyle().Foreground(ColorMuted)
}

func iconLine(style lipgloss.Style, icon, msg string) string {
	return style.Render(icon + " " + msg)
}

// FormatSuccess renders a green checkmark message
func FormatSuccess(msg string) string {
	return iconLine(StyleSuccess, IconSuccess, msg)
}

// FormatError renders a red cross message
func FormatError(msg string) string {
	return iconLine(StyleError, IconError, msg)
}

// FormatWarning renders a yellow warning message
func FormatWarning(msg string) string {
	return iconLine(StyleWarning, IconWarning, msg)
}

// FormatInfo renders an informational message
func FormatInfo(msg string) string {
	return iconLine(StyleInfo, IconInfo, msg)
}

// FormatRocket renders the banner line that starts a long action
func FormatRocket(msg string) string {
	return iconLine(StylePrimary, IconRocket, msg)
}

// FormatTitle renders a section title
func FormatTitle(title string) string {
	return StyleTitle.Render(title)
}

// FormatMuted renders secondary detail text
func FormatMuted(text string) string {
	return StyleMuted.Render(text)
}

// FormatBold renders emphasized text without color
func FormatBold(text string) string {
	return StyleBold.Render(text)
}

// FormatStatus renders an ok/failed marker the same way everywhere
func FormatStatus(ok bool) string {
	if ok {
		return StyleSuccess.Render(IconSuccess + " ok")
	}
	return StyleError.Render(IconError + " failed")
}
