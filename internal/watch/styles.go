package watch

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	accentColor = lipgloss.Color("#43BF6D") // Green
	subtleColor = lipgloss.Color("#626262") // Gray
	errorColor  = lipgloss.Color("#FF0000") // Red
)

// Common styles
var (
	titleStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true).
			Padding(0, 1)

	statusStyle = lipgloss.NewStyle().
			Foreground(subtleColor).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true).
			Padding(0, 1)

	tableStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(subtleColor)
)
