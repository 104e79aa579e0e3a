package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ══════════════════════════════════════════════════════════════════════════════
// COLOR PALETTE - Dracula-inspired
// ══════════════════════════════════════════════════════════════════════════════

var (
	ColorBg          = lipgloss.Color("#282A36")
	ColorBgHighlight = lipgloss.Color("#44475A")
	ColorText        = lipgloss.Color("#F8F8F2")
	ColorSubtext     = lipgloss.Color("#BFBFBF")
	ColorMuted       = lipgloss.Color("#6272A4")
	ColorBlack       = lipgloss.Color("#000000")

	ColorPrimary = lipgloss.Color("#BD93F9")
	ColorInfo    = lipgloss.Color("#8BE9FD")
	ColorSuccess = lipgloss.Color("#50FA7B")
	ColorDanger  = lipgloss.Color("#FF5555")
)

// ══════════════════════════════════════════════════════════════════════════════
// STATUS LINES
// ══════════════════════════════════════════════════════════════════════════════

var (
	// ModeStyle renders the mode badge at the start of the mode line
	ModeStyle = lipgloss.NewStyle().
			Foreground(ColorBlack).
			Background(ColorInfo).
			Bold(true).
			Padding(0, 1)

	// PaletteStyle renders the command palette line
	PaletteStyle = lipgloss.NewStyle().Foreground(ColorSubtext)

	// ErrorStyle renders failures reported in the command palette
	ErrorStyle = lipgloss.NewStyle().Foreground(ColorDanger)
)

// ══════════════════════════════════════════════════════════════════════════════
// TASK ROWS
// ══════════════════════════════════════════════════════════════════════════════

var (
	ItemStyle = lipgloss.NewStyle().Foreground(ColorText)

	// SelectedItemStyle is the highlighted row
	SelectedItemStyle = lipgloss.NewStyle().
				Foreground(ColorBlack).
				Background(ColorInfo).
				Bold(true)

	ChildOfStyle = lipgloss.NewStyle().Foreground(ColorMuted).Italic(true)
	DoneStyle    = lipgloss.NewStyle().Foreground(ColorSuccess)
	EmptyStyle   = lipgloss.NewStyle().Foreground(ColorSubtext).Italic(true)
	PrefixStyle  = lipgloss.NewStyle().Foreground(ColorMuted)

	// RootRowStyle marks the root row of the subtree outline
	RootRowStyle = lipgloss.NewStyle().Foreground(ColorInfo).Bold(true)

	// RootTitleStyle renders the description heading of the subtree screen
	RootTitleStyle = lipgloss.NewStyle().
			Foreground(ColorInfo).
			Bold(true).
			Underline(true)
)

// ══════════════════════════════════════════════════════════════════════════════
// PANELS
// ══════════════════════════════════════════════════════════════════════════════

var (
	BorderColorStyle = lipgloss.NewStyle().Foreground(ColorBgHighlight)

	// ModalStyle frames the new-task input and the help overlay
	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Padding(0, 1)
)

// RenderTitledBox frames body in a box whose top edge carries the title,
// like "┌┤ Your tasks ├──────┐". width and height include the border.
func RenderTitledBox(title, body string, width, height int) string {
	if width < MinBoxWidth {
		width = MinBoxWidth
	}
	if height < 3 {
		height = 3
	}
	border := lipgloss.NormalBorder()
	label := "┤ " + title + " ├"
	fill := width - 2 - lipgloss.Width(label)
	if fill < 0 {
		fill = 0
	}
	top := BorderColorStyle.Render(border.TopLeft) +
		label +
		BorderColorStyle.Render(strings.Repeat(border.Top, fill)+border.TopRight)

	rest := lipgloss.NewStyle().
		Border(border).
		BorderTop(false).
		BorderForeground(ColorBgHighlight).
		Width(width - 2).
		Height(height - 2).
		Render(body)

	return top + "\n" + rest
}

// RenderDivider renders a horizontal divider line
func RenderDivider(width int) string {
	if width <= 0 {
		return ""
	}
	return BorderColorStyle.Render(strings.Repeat("─", width))
}
