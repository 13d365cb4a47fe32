package ui

import "github.com/charmbracelet/lipgloss"

// Matrix color palette
var (
	ColorMatrixGreen  = lipgloss.Color("#00FF41")
	ColorGreen        = lipgloss.Color("#00CC33")
	ColorMidGreen     = lipgloss.Color("#008F11")
	ColorDimGreen     = lipgloss.Color("#004A0A")
	ColorBlack        = lipgloss.Color("#000000")
	ColorBorderBright = lipgloss.Color("#00FF41")
	ColorBorderNorm   = lipgloss.Color("#00AA22")
	ColorError        = lipgloss.Color("#FF3300")
	ColorWarning      = lipgloss.Color("#FFAA00")
	ColorBar          = lipgloss.Color("#FDE725")
)

// Pre-built styles
var (
	StyleMenuBar = lipgloss.NewStyle().
			Background(lipgloss.Color("#002200")).
			Foreground(ColorMatrixGreen).
			Bold(true).
			Padding(0, 1)

	StyleMenuKey = lipgloss.NewStyle().
			Foreground(ColorMatrixGreen).
			Bold(true)

	StyleMenuLabel = lipgloss.NewStyle().
			Foreground(ColorGreen)

	StyleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("#002200")).
			Foreground(ColorGreen).
			Padding(0, 1)

	StyleStatusOK = lipgloss.NewStyle().
			Foreground(ColorMatrixGreen).
			Bold(true)

	StyleStatusError = lipgloss.NewStyle().
				Foreground(ColorError).
				Bold(true)

	StylePanelBorder = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBorderNorm)

	StylePanelActive = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBorderBright)

	StylePanelTitle = lipgloss.NewStyle().
			Foreground(ColorMatrixGreen).
			Bold(true).
			Padding(0, 1)

	StyleSeparator = lipgloss.NewStyle().
			Foreground(ColorMidGreen)

	StyleFieldLabel = lipgloss.NewStyle().
			Foreground(ColorMidGreen)

	StyleFieldValue = lipgloss.NewStyle().
			Foreground(ColorMatrixGreen).
			Bold(true)

	StyleFieldEditing = lipgloss.NewStyle().
				Foreground(ColorWarning).
				Bold(true)

	StyleTableHeader = lipgloss.NewStyle().
				Foreground(ColorMatrixGreen).
				Bold(true)

	StyleTableCell = lipgloss.NewStyle().
			Foreground(ColorGreen)

	StyleFactorBar = lipgloss.NewStyle().
			Foreground(ColorBar)

	StyleHelp = lipgloss.NewStyle().
			Foreground(ColorDimGreen)

	// Cursor row style: black text on bright green = unmissable highlight
	StyleCursorLine = lipgloss.NewStyle().
			Foreground(ColorBlack).
			Background(ColorMatrixGreen).
			Bold(true)
)
