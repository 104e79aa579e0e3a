package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// TaskInputModel is the modal that collects the description of a new task.
type TaskInputModel struct {
	input  textinput.Model
	keys   KeyMap
	parent int64 // 0 for a root task

	// Result
	submitted bool
	cancelled bool
}

// NewTaskInputModel creates a focused input. parent is the id the new task
// will hang below, or 0 for a root task.
func NewTaskInputModel(parent int64, keys KeyMap) TaskInputModel {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "What needs doing?"
	ti.CharLimit = 500
	ti.Width = InputWidth - 4
	ti.Focus()

	return TaskInputModel{input: ti, keys: keys, parent: parent}
}

// Init implements tea.Model
func (m TaskInputModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input
func (m TaskInputModel) Update(msg tea.Msg) (TaskInputModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Cancel):
			m.cancelled = true
			return m, nil
		case key.Matches(msg, m.keys.Confirm):
			m.submitted = true
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the modal
func (m TaskInputModel) View() string {
	title := "New task"
	if m.parent != 0 {
		title = "New subtask"
	}
	body := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary).Render("┤ "+title+" ├"),
		m.input.View(),
	)
	return ModalStyle.Width(InputWidth - 2).Render(body)
}

// IsSubmitted returns true if the user pressed enter
func (m TaskInputModel) IsSubmitted() bool {
	return m.submitted
}

// IsCancelled returns true if the user cancelled
func (m TaskInputModel) IsCancelled() bool {
	return m.cancelled
}

// Description returns the trimmed text entered so far
func (m TaskInputModel) Description() string {
	return strings.TrimSpace(m.input.Value())
}

// Parent returns the parent id of the task being created, 0 for a root
func (m TaskInputModel) Parent() int64 {
	return m.parent
}
