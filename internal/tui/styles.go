package tui

import "github.com/charmbracelet/lipgloss"

// Color palette.
var (
	colorRed    = lipgloss.Color("#ff5555")
	colorGreen  = lipgloss.Color("#50fa7b")
	colorYellow = lipgloss.Color("#f1fa8c")
	colorBlue   = lipgloss.Color("#8be9fd")
	colorPurple = lipgloss.Color("#bd93f9")
	colorDim    = lipgloss.Color("#6272a4")
	colorBorder = lipgloss.Color("#44475a")
)

// Style definitions.
var (
	titleStyle = lipgloss.NewStyle().
			Foreground(colorBlue).
			Bold(true)

	categoryStyle = lipgloss.NewStyle().
			Foreground(colorPurple).
			Bold(true)

	promptBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	messagePreviewStyle = lipgloss.NewStyle().
				Foreground(colorGreen)

	warnStyle = lipgloss.NewStyle().
			Foreground(colorYellow)

	cancelledStyle = lipgloss.NewStyle().
			Foreground(colorRed)

	helpBarStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(colorYellow)
)
