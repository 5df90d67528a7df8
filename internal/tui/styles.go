package tui

import "github.com/charmbracelet/lipgloss"

// Colours are exported for the command package's own reports.
var (
	ColorInk       = lipgloss.Color("#ECEFF4")
	ColorDim       = lipgloss.Color("#6C7586")
	ColorAccent    = lipgloss.Color("#8FBCBB")
	ColorAccentAlt = lipgloss.Color("#5E81AC")
	ColorSuccess   = lipgloss.Color("#A3BE8C")
	ColorWarn      = lipgloss.Color("#EBCB8B")
	ColorError     = lipgloss.Color("#BF616A")
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
	labelStyle = lipgloss.NewStyle().Foreground(ColorInk)
	valueStyle = lipgloss.NewStyle().Foreground(ColorInk).Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(ColorDim)
	barStyle   = lipgloss.NewStyle().Foreground(ColorAccentAlt)

	okStyle   = lipgloss.NewStyle().Foreground(ColorSuccess)
	warnStyle = lipgloss.NewStyle().Foreground(ColorWarn)
	failStyle = lipgloss.NewStyle().Foreground(ColorError)
)
