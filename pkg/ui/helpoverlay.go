package ui

import (
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// HelpOverlayModel shows every key binding in a framed box
type HelpOverlayModel struct {
	visible bool
	help    help.Model
}

// NewHelpOverlayModel creates a hidden help overlay
func NewHelpOverlayModel() HelpOverlayModel {
	h := help.New()
	h.ShowAll = true
	h.Styles.FullKey = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	h.Styles.FullDesc = lipgloss.NewStyle().Foreground(ColorSubtext)
	h.Styles.FullSeparator = lipgloss.NewStyle().Foreground(ColorMuted)
	return HelpOverlayModel{help: h}
}

// Toggle toggles visibility
func (m *HelpOverlayModel) Toggle() {
	m.visible = !m.visible
}

// IsVisible returns true if overlay is showing
func (m HelpOverlayModel) IsVisible() bool {
	return m.visible
}

// SetWidth bounds the help columns
func (m *HelpOverlayModel) SetWidth(width int) {
	m.help.Width = width - 6
}

// Update closes the overlay on any key
func (m HelpOverlayModel) Update(msg tea.Msg) (HelpOverlayModel, tea.Cmd) {
	if !m.visible {
		return m, nil
	}
	if _, ok := msg.(tea.KeyMsg); ok {
		m.visible = false
	}
	return m, nil
}

// View renders the overlay for the given bindings
func (m HelpOverlayModel) View(keys help.KeyMap) string {
	if !m.visible {
		return ""
	}
	title := lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary).Render("Keys")
	hint := lipgloss.NewStyle().Faint(true).Italic(true).Render("[Press any key to close]")
	return ModalStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		title, "", m.help.View(keys), "", hint,
	))
}
