// Package render turns flattened task trees into terminal output for the CLI.
package render

import "github.com/charmbracelet/lipgloss"

var (
	colorCyan  = lipgloss.Color("#8BE9FD")
	colorGreen = lipgloss.Color("#50FA7B")
	colorRed   = lipgloss.Color("#FF5555")
	colorMuted = lipgloss.Color("#6272A4")

	headerStyle  = lipgloss.NewStyle().Foreground(colorCyan).Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	doneStyle    = cellStyle.Foreground(colorGreen)
	notDoneStyle = cellStyle.Foreground(colorRed)
	borderStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	rootStyle    = lipgloss.NewStyle().Foreground(colorCyan)
	prefixStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	checkStyle   = lipgloss.NewStyle().Foreground(colorGreen)
)
