package preview

import "github.com/charmbracelet/lipgloss"

// Colors used by the preview.
var (
	ColorCyan    = lipgloss.Color("#00FFFF")
	ColorYellow  = lipgloss.Color("#FFFF00")
	ColorMagenta = lipgloss.Color("#FF00FF")
	ColorGray    = lipgloss.Color("#666666")
	ColorDimGray = lipgloss.Color("#444444")
	ColorRed     = lipgloss.Color("#FF0000")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorCyan)

	BlockStyle = lipgloss.NewStyle().
			Bold(true)

	GenreStyle = lipgloss.NewStyle().
			Foreground(ColorYellow)

	MarkerStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	InsertionStyle = lipgloss.NewStyle().
			Foreground(ColorMagenta)

	StatsStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorRed)

	DividerStyle = lipgloss.NewStyle().
			Foreground(ColorDimGray)

	ItemStyle = lipgloss.NewStyle().
			PaddingLeft(2)
)
