package ui

import "github.com/charmbracelet/lipgloss"

// Adaptive colors for light and dark terminals.
var (
	ColorText    = lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#F8F8F2"}
	ColorSubtext = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#BFBFBF"}
	ColorMuted   = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#6272A4"}

	ColorPrimary = lipgloss.AdaptiveColor{Light: "#6B47D9", Dark: "#BD93F9"}
	ColorInfo    = lipgloss.AdaptiveColor{Light: "#006080", Dark: "#8BE9FD"}
	ColorWarning = lipgloss.AdaptiveColor{Light: "#B06800", Dark: "#FFB86C"}
	ColorDanger  = lipgloss.AdaptiveColor{Light: "#CC0000", Dark: "#FF5555"}
)

var (
	// Pane borders: the focused group gets the accent color.
	paneBorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorMuted)

	paneBorderFocusedStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorPrimary)

	// Tab strip.
	tabActiveStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Background(lipgloss.AdaptiveColor{Light: "#D0D0D0", Dark: "#44475A"}).
			Bold(true).
			Padding(0, 1)

	tabInactiveStyle = lipgloss.NewStyle().
				Foreground(ColorSubtext).
				Padding(0, 1)

	dirtyMarkerStyle = lipgloss.NewStyle().Foreground(ColorWarning)

	// Pane body.
	bodyTitleStyle = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	bodyTextStyle  = lipgloss.NewStyle().Foreground(ColorSubtext)

	// Status bar.
	statusStyle     = lipgloss.NewStyle().Foreground(ColorSubtext)
	statusInfoStyle = lipgloss.NewStyle().Foreground(ColorInfo)
	statusErrStyle  = lipgloss.NewStyle().Foreground(ColorDanger)

	// Move-mode target badges drawn into each pane's tab row.
	moveTargetStyle = lipgloss.NewStyle().
			Foreground(ColorWarning).
			Bold(true).
			Padding(0, 1)

	promptStyle = lipgloss.NewStyle().Foreground(ColorPrimary)
)
