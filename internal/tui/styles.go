package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorText    lipgloss.Color = "#cdd6f4"
	colorMuted   lipgloss.Color = "#a6adc8"
	colorBorder  lipgloss.Color = "#585b70"
	colorAccent  lipgloss.Color = "#89b4fa"
	colorSuccess lipgloss.Color = "#a6e3a1"
	colorError   lipgloss.Color = "#f38ba8"
	colorOff     lipgloss.Color = "#6c7086"
	colorSurface lipgloss.Color = "#313244"
)

var (
	titleStyle  = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	countStyle  = lipgloss.NewStyle().Foreground(colorText)
	mutedStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	headerStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Foreground(colorText).Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(colorBorder)

	navOnStyle  = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	navOffStyle = lipgloss.NewStyle().Foreground(colorOff)

	noticeOKStyle = lipgloss.NewStyle().
			Foreground(colorSuccess).
			Background(colorSurface).
			Padding(0, 1)
	noticeErrStyle = lipgloss.NewStyle().
			Foreground(colorError).
			Background(colorSurface).
			Padding(0, 1)

	formLabelStyle = lipgloss.NewStyle().Foreground(colorMuted).Width(12)
	focusMarker    = lipgloss.NewStyle().Foreground(colorAccent).Render("▶")

	keyStyle      = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	helpDescStyle = lipgloss.NewStyle().Foreground(colorMuted)
)
