package tui

import "github.com/charmbracelet/lipgloss"

// Palette.
const (
	ColorText     = lipgloss.Color("#1F1F1F")
	ColorTitle    = lipgloss.Color("#EE6B2F")
	ColorMuted    = lipgloss.Color("#8A8A8A")
	ColorActive   = lipgloss.Color("#3B4CCA")
	ColorDanger   = lipgloss.Color("#E3350D")
	ColorBorder   = lipgloss.Color("#D0D0D0")
	ColorInactive = lipgloss.Color("#4A4A4A")
)

const (
	// cardWidth is the inner width of one record card.
	cardWidth = 22

	// CardsPerRow is the widest grid row.
	CardsPerRow = 3

	defaultWidth = 80
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(ColorTitle).Bold(true).MarginBottom(1)

	cardStyle = lipgloss.NewStyle().
			Width(cardWidth).
			Padding(0, 1).
			Align(lipgloss.Center).
			Foreground(ColorText).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder)

	idStyle       = lipgloss.NewStyle().Faint(true)
	nameStyle     = lipgloss.NewStyle().Bold(true)
	categoryStyle = lipgloss.NewStyle().Italic(true)

	pageStyle       = lipgloss.NewStyle().Foreground(ColorInactive).Padding(0, 1)
	activePageStyle = lipgloss.NewStyle().Foreground(ColorActive).Bold(true).Underline(true).Padding(0, 1)
	buttonStyle     = lipgloss.NewStyle().Foreground(ColorActive).Bold(true).Padding(0, 1)
	disabledStyle   = lipgloss.NewStyle().Foreground(ColorMuted).Faint(true).Padding(0, 1)

	errorStyle = lipgloss.NewStyle().Foreground(ColorDanger).Bold(true)
	helpStyle  = lipgloss.NewStyle().Foreground(ColorMuted).MarginTop(1)
)
