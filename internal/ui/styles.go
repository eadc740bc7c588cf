package ui

import "github.com/charmbracelet/lipgloss"

// Color palette.
var (
	ColorSuccess   = lipgloss.Color("#00D26A") // green  — matched, success
	ColorWarning   = lipgloss.Color("#FFB800") // yellow — blind mode, warning
	ColorError     = lipgloss.Color("#FF4444") // red    — network error
	ColorAddress   = lipgloss.Color("#00B4D8") // cyan   — addresses, digests
	ColorValue     = lipgloss.Color("#FFFFFF") // white bold — SUI amounts
	ColorMeta      = lipgloss.Color("#555555") // dim gray  — timestamps, notes
	ColorBorder    = lipgloss.Color("#1E3A5F") // dark blue — UI chrome
	ColorAccent    = lipgloss.Color("#4DA2FF") // SUI blue  — titles, spinner
	ColorHighlight = lipgloss.Color("#F15BB5") // pink      — table headers
)

// Base styles.
var (
	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning).Bold(true)
	StyleError   = lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	StyleAddress = lipgloss.NewStyle().Foreground(ColorAddress)
	StyleValue   = lipgloss.NewStyle().Foreground(ColorValue).Bold(true)
	StyleMeta    = lipgloss.NewStyle().Foreground(ColorMeta)
	StyleAccent  = lipgloss.NewStyle().Foreground(ColorAccent).Bold(true)

	StyleBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	StyleHeader = lipgloss.NewStyle().
			Foreground(ColorHighlight).
			Bold(true).
			Underline(true)

	StyleTitle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true).
			MarginBottom(1)
)

// Success formats a success message.
func Success(msg string) string { return StyleSuccess.Render("✓ " + msg) }

// Warn formats a warning message.
func Warn(msg string) string { return StyleWarning.Render("⚠ " + msg) }

// Err formats an error message.
func Err(msg string) string { return StyleError.Render("✗ " + msg) }

// Addr formats an address or digest.
func Addr(a string) string { return StyleAddress.Render(a) }

// Val formats an amount.
func Val(v string) string { return StyleValue.Render(v) }

// Meta formats metadata text.
func Meta(m string) string { return StyleMeta.Render(m) }

// TruncateDigest shortens a digest or address for display: 0x1234…5678.
func TruncateDigest(d string) string {
	if len(d) <= 14 {
		return d
	}
	return d[:8] + "…" + d[len(d)-4:]
}
