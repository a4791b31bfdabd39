package report

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary = lipgloss.Color("#C2185B")
	colorMuted   = lipgloss.Color("#666666")
	colorSubtle  = lipgloss.Color("#414868")
	colorFg      = lipgloss.Color("#C0CAF5")
	colorLong    = lipgloss.Color("#F39C12")
	colorShort   = lipgloss.Color("#2EC4B6")
)

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSubtle).
			Padding(1, 2)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorFg)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)
)

// Heat cells from no data to the maximum symptom intensity.
var heatLevels = []lipgloss.Style{
	lipgloss.NewStyle().Foreground(colorSubtle),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#F8BBD0")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#EC407A")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#AD1457")),
}

var heatGlyphs = []string{"·", "░", "▒", "█"}
