package ui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"

	"github.com/kraitsura/teal/pkg/model"
	"github.com/kraitsura/teal/pkg/search"
	"github.com/kraitsura/teal/pkg/store"
	"github.com/kraitsura/teal/pkg/tree"
)

const (
	emptyMessage = " There's nothing here, try removing your filters or press `n` to add a new task"
	createHint   = "Press <ENTER> to finish adding the task, or <ESCAPE> to cancel"
)

// Store is the part of the record store the UI drives.
type Store interface {
	ListTasks(ctx context.Context, includeChildren bool) ([]model.Task, error)
	AddTask(ctx context.Context, description string, parent *int64) (model.Task, error)
	RemoveTask(ctx context.Context, id int64) ([]model.Task, error)
	SetCompletion(ctx context.Context, id int64, complete bool) (model.Task, error)
	Subtree(ctx context.Context, id int64) (*tree.Tree, error)
}

// writeClipboard is swapped out in tests.
var writeClipboard = clipboard.WriteAll

// storeChangedMsg reports that the database was written by someone else.
type storeChangedMsg struct{}

// Model is the Bubble Tea model for the task UI.
type Model struct {
	ctx     context.Context
	store   Store
	changes <-chan struct{}

	keys     KeyMap
	help     help.Model
	overlay  HelpOverlayModel
	input    TaskInputModel
	search   textinput.Model
	viewport viewport.Model

	screen   screen
	tasks    []model.Task
	selected int64  // 0 when nothing is selected; task ids are positive
	term     string // active search filter
	offset   int
	palette  string
	err      error

	width  int
	height int
}

// New loads the root tasks and returns a model on the list screen. changes
// may be nil; otherwise every receive triggers a reload.
func New(ctx context.Context, s Store, changes <-chan struct{}) (Model, error) {
	h := help.New()
	h.Styles.ShortKey = PaletteStyle.Bold(true)
	h.Styles.ShortDesc = PaletteStyle
	h.Styles.ShortSeparator = lipgloss.NewStyle().Foreground(ColorMuted)

	si := textinput.New()
	si.Prompt = "/"
	si.CharLimit = 200

	m := Model{
		ctx:      ctx,
		store:    s,
		changes:  changes,
		keys:     DefaultKeyMap(),
		help:     h,
		overlay:  NewHelpOverlayModel(),
		search:   si,
		viewport: viewport.New(80, 20),
		screen:   listScreen{},
		width:    80,
		height:   24,
	}
	if err := m.reload(); err != nil {
		return m, fmt.Errorf("load tasks: %w", err)
	}
	if len(m.tasks) > 0 {
		m.selected = m.tasks[0].ID
	}
	return m, nil
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return waitForChange(m.ctx, m.changes)
}

func waitForChange(ctx context.Context, ch <-chan struct{}) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case _, ok := <-ch:
			if !ok {
				return nil
			}
			return storeChangedMsg{}
		case <-ctx.Done():
			return nil
		}
	}
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.overlay.SetWidth(msg.Width)
		m.offset = scrollOffset(m.offset, m.indexOf(m.selected), listHeight(m.height))
		if s, ok := m.screen.(subtreeScreen); ok {
			m.syncViewport(s)
		}
		return m, nil

	case storeChangedMsg:
		if s, ok := m.screen.(subtreeScreen); ok {
			m.refreshSubtree(s)
		} else {
			m.refresh()
		}
		return m, waitForChange(m.ctx, m.changes)
	}

	if m.overlay.IsVisible() {
		m.overlay, _ = m.overlay.Update(msg)
		return m, nil
	}

	switch s := m.screen.(type) {
	case listScreen:
		switch s.mode {
		case modeCreate:
			return m.updateCreate(msg)
		case modeSearch:
			return m.updateSearch(msg)
		}
		return m.updateList(msg)
	case subtreeScreen:
		return m.updateSubtree(s, msg)
	}
	return m, nil
}

func (m Model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	m.err = nil
	m.palette = ""

	switch {
	case key.Matches(k, m.keys.Quit):
		m.screen = quitScreen{}
		return m, tea.Quit

	case key.Matches(k, m.keys.Down):
		m.move(1)

	case key.Matches(k, m.keys.Up):
		m.move(-1)

	case key.Matches(k, m.keys.New):
		m.input = NewTaskInputModel(0, m.keys)
		m.screen = listScreen{mode: modeCreate}
		return m, textinput.Blink

	case key.Matches(k, m.keys.AddChild):
		t, ok := m.selectedTask()
		if !ok {
			return m, nil
		}
		m.input = NewTaskInputModel(t.ID, m.keys)
		m.screen = listScreen{mode: modeCreate}
		return m, textinput.Blink

	case key.Matches(k, m.keys.Toggle):
		if t, ok := m.selectedTask(); ok {
			m.setCompletion(t.ID, !t.Complete)
			m.refresh()
		}

	case key.Matches(k, m.keys.Delete):
		m.removeSelected()

	case key.Matches(k, m.keys.Search):
		m.search.SetValue(m.term)
		m.search.CursorEnd()
		m.screen = listScreen{mode: modeSearch}
		m.refresh()
		return m, m.search.Focus()

	case key.Matches(k, m.keys.Open):
		if m.selected != 0 {
			m.openSubtree(m.selected)
		}

	case key.Matches(k, m.keys.Yank):
		if t, ok := m.selectedTask(); ok {
			m.yank(fmt.Sprintf("%d %s", t.ID, t.Description))
		}

	case key.Matches(k, m.keys.Help):
		m.overlay.Toggle()

	case key.Matches(k, m.keys.Cancel):
		if m.term != "" {
			m.term = ""
			m.refresh()
		}
	}
	return m, nil
}

func (m Model) updateCreate(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	switch {
	case m.input.IsCancelled():
		m.screen = listScreen{}
		return m, nil

	case m.input.IsSubmitted():
		m.screen = listScreen{}
		desc := m.input.Description()
		if desc == "" {
			return m, nil
		}
		var parent *int64
		if p := m.input.Parent(); p != 0 {
			parent = model.Ref(p)
		}
		t, err := m.store.AddTask(m.ctx, desc, parent)
		if err != nil {
			m.err = fmt.Errorf("add task: %w", err)
			return m, nil
		}
		m.refresh()
		if m.indexOf(t.ID) >= 0 {
			m.selected = t.ID
			m.offset = scrollOffset(m.offset, m.indexOf(t.ID), listHeight(m.height))
		}
		return m, nil
	}
	return m, cmd
}

func (m Model) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(k, m.keys.Cancel):
			m.search.Blur()
			m.search.SetValue("")
			m.term = ""
			m.screen = listScreen{}
			m.refresh()
			return m, nil

		case key.Matches(k, m.keys.Confirm):
			m.search.Blur()
			m.term = strings.TrimSpace(m.search.Value())
			m.screen = listScreen{}
			m.refresh()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if term := strings.TrimSpace(m.search.Value()); term != m.term {
		m.term = term
		m.refresh()
	}
	return m, cmd
}

func (m Model) updateSubtree(s subtreeScreen, msg tea.Msg) (tea.Model, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	m.err = nil
	m.palette = ""

	switch {
	case key.Matches(k, m.keys.Back):
		m.screen = listScreen{}
		m.refresh()
		if m.indexOf(s.taskID) >= 0 {
			m.selected = s.taskID
			m.offset = scrollOffset(m.offset, m.indexOf(s.taskID), listHeight(m.height))
		}
		return m, nil

	case key.Matches(k, m.keys.Quit):
		m.screen = quitScreen{}
		return m, tea.Quit

	case key.Matches(k, m.keys.Down):
		if s.cursor+1 < len(s.lines) {
			s.cursor++
		}

	case key.Matches(k, m.keys.Up):
		if s.cursor > 0 {
			s.cursor--
		}

	case key.Matches(k, m.keys.Toggle):
		if s.cursor < len(s.lines) {
			t := s.lines[s.cursor].Task
			m.setCompletion(t.ID, !t.Complete)
			m.refreshSubtree(s)
			return m, nil
		}

	case key.Matches(k, m.keys.Yank):
		if s.cursor < len(s.lines) {
			l := s.lines[s.cursor]
			m.yank(l.Number() + " " + l.Task.Description)
		}

	case key.Matches(k, m.keys.Help):
		m.overlay.Toggle()
	}

	m.screen = s
	m.syncViewport(s)
	return m, nil
}

// reload fetches the rows for the list screen: roots, or every task ranked
// by the search term while one is being typed or is active.
func (m *Model) reload() error {
	searching := m.term != ""
	if s, ok := m.screen.(listScreen); ok && s.mode == modeSearch {
		searching = true
	}
	tasks, err := m.store.ListTasks(m.ctx, searching)
	if err != nil {
		return err
	}
	if m.term != "" {
		tasks = search.Search(m.term, tasks)
	}
	m.tasks = tasks

	if m.indexOf(m.selected) < 0 {
		m.selected = 0
		if len(m.tasks) > 0 {
			m.selected = m.tasks[0].ID
		}
	}
	m.offset = scrollOffset(m.offset, m.indexOf(m.selected), listHeight(m.height))
	return nil
}

func (m *Model) refresh() {
	if err := m.reload(); err != nil {
		m.err = fmt.Errorf("load tasks: %w", err)
	}
}

func (m *Model) indexOf(id int64) int {
	if id == 0 {
		return -1
	}
	for i, t := range m.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (m *Model) selectedTask() (model.Task, bool) {
	i := m.indexOf(m.selected)
	if i < 0 {
		return model.Task{}, false
	}
	return m.tasks[i], true
}

// move shifts the selection by delta rows, wrapping at both ends.
func (m *Model) move(delta int) {
	n := len(m.tasks)
	if n == 0 {
		return
	}
	i := m.indexOf(m.selected)
	switch {
	case i < 0 && delta > 0:
		i = 0
	case i < 0:
		i = n - 1
	default:
		i = ((i+delta)%n + n) % n
	}
	m.selected = m.tasks[i].ID
	m.offset = scrollOffset(m.offset, i, listHeight(m.height))
}

func (m *Model) setCompletion(id int64, complete bool) {
	if _, err := m.store.SetCompletion(m.ctx, id, complete); err != nil {
		m.err = fmt.Errorf("update task %d: %w", id, err)
	}
}

// removeSelected deletes the selected task and its subtree, then selects
// the row that moved into its place, or the new last row.
func (m *Model) removeSelected() {
	i := m.indexOf(m.selected)
	if i < 0 {
		return
	}
	removed, err := m.store.RemoveTask(m.ctx, m.selected)
	if err != nil {
		m.err = fmt.Errorf("delete task %d: %w", m.selected, err)
		return
	}
	m.refresh()

	switch {
	case len(m.tasks) == 0:
		m.selected = 0
	case i >= len(m.tasks):
		m.selected = m.tasks[len(m.tasks)-1].ID
	default:
		m.selected = m.tasks[i].ID
	}
	m.offset = scrollOffset(m.offset, m.indexOf(m.selected), listHeight(m.height))
	if len(removed) > 1 {
		m.palette = fmt.Sprintf("Deleted %d tasks", len(removed))
	}
}

func (m *Model) openSubtree(id int64) {
	t, err := m.store.Subtree(m.ctx, id)
	if err != nil {
		m.err = fmt.Errorf("open task %d: %w", id, err)
		return
	}
	s := subtreeScreen{taskID: id, lines: tree.Lines(t)}
	m.screen = s
	m.viewport.GotoTop()
	m.syncViewport(s)
}

// refreshSubtree re-reads the subtree on screen. A root that no longer
// exists sends the UI back to the list.
func (m *Model) refreshSubtree(s subtreeScreen) {
	t, err := m.store.Subtree(m.ctx, s.taskID)
	if err != nil {
		if !errors.Is(err, store.ErrTaskNotFound) {
			m.err = fmt.Errorf("reload task %d: %w", s.taskID, err)
		}
		m.screen = listScreen{}
		m.refresh()
		return
	}
	s.lines = tree.Lines(t)
	if s.cursor >= len(s.lines) {
		s.cursor = len(s.lines) - 1
	}
	m.screen = s
	m.syncViewport(s)
}

func (m *Model) yank(text string) {
	if err := writeClipboard(text); err != nil {
		log.Printf("Warning: copy to clipboard failed: %v", err)
		m.err = fmt.Errorf("copy to clipboard: %w", err)
		return
	}
	m.palette = "Copied: " + text
}

// ══════════════════════════════════════════════════════════════════════════════
// VIEW
// ══════════════════════════════════════════════════════════════════════════════

// View implements tea.Model
func (m Model) View() string {
	var body string
	switch s := m.screen.(type) {
	case quitScreen:
		return ""
	case listScreen:
		if s.mode == modeCreate {
			body = lipgloss.Place(m.width, m.bodyHeight(), lipgloss.Center, lipgloss.Center, m.input.View())
		} else {
			body = m.listView()
		}
	case subtreeScreen:
		body = m.subtreeView(s)
	}

	if m.overlay.IsVisible() {
		var keys help.KeyMap = m.keys
		if _, ok := m.screen.(subtreeScreen); ok {
			keys = subtreeKeys(m.keys)
		}
		body = lipgloss.Place(m.width, m.bodyHeight(), lipgloss.Center, lipgloss.Center, m.overlay.View(keys))
	}

	return lipgloss.JoinVertical(lipgloss.Left, body, m.modeLine(), m.paletteLine())
}

func (m Model) bodyHeight() int {
	return listHeight(m.height) + 2
}

func (m Model) modeLine() string {
	line := ModeStyle.Render(modeLabel(m.screen, m.term != ""))
	if m.term != "" {
		line += PaletteStyle.Render(fmt.Sprintf(" %d matching %q", len(m.tasks), m.term))
	}
	return line
}

func (m Model) paletteLine() string {
	if m.err != nil {
		return ErrorStyle.Render("Error: " + m.err.Error())
	}
	if s, ok := m.screen.(listScreen); ok {
		switch s.mode {
		case modeCreate:
			return PaletteStyle.Render(createHint)
		case modeSearch:
			return m.search.View()
		}
	}
	if m.palette != "" {
		return PaletteStyle.Render(m.palette)
	}
	if _, ok := m.screen.(subtreeScreen); ok {
		return m.help.View(subtreeKeys(m.keys))
	}
	return m.help.View(m.keys)
}

func (m Model) listView() string {
	size := listHeight(m.height)
	inner := m.width - 2

	var rows []string
	if len(m.tasks) == 0 {
		rows = append(rows, EmptyStyle.Render(truncate(emptyMessage, inner)))
	}
	end := m.offset + size
	if end > len(m.tasks) {
		end = len(m.tasks)
	}
	for i := m.offset; i < end; i++ {
		t := m.tasks[i]
		rows = append(rows, renderRow(t, t.ID == m.selected, inner))
	}
	return RenderTitledBox("Your tasks", strings.Join(rows, "\n"), m.width, size+2)
}

// renderRow draws " description", a check mark when done, and
// " (child of task N)" for non-root tasks.
func renderRow(t model.Task, selected bool, width int) string {
	check := ""
	if t.Complete {
		check = " ✓"
	}
	suffix := ""
	if pid, ok := t.ParentID(); ok {
		suffix = fmt.Sprintf(" (child of task %d)", pid)
	}
	avail := width - runewidth.StringWidth(rowIndent+check+suffix)
	text := rowIndent + truncate(t.Description, avail)

	style := ItemStyle
	if selected {
		style = SelectedItemStyle
	}
	line := style.Render(text)
	if check != "" {
		line += DoneStyle.Render(check)
	}
	if suffix != "" {
		line += ChildOfStyle.Render(suffix)
	}
	return line
}

func (m Model) subtreeView(s subtreeScreen) string {
	if len(s.lines) == 0 {
		return ""
	}
	heading := RootTitleStyle.Render(wordwrap.String(s.lines[0].Task.Description, m.width-2))
	return lipgloss.JoinVertical(lipgloss.Left,
		heading,
		RenderDivider(m.width),
		m.viewport.View(),
	)
}

// syncViewport redraws the subtree rows and scrolls the cursor into view.
func (m *Model) syncViewport(s subtreeScreen) {
	if len(s.lines) == 0 {
		return
	}
	headingHeight := lipgloss.Height(wordwrap.String(s.lines[0].Task.Description, m.width-2)) + 1
	m.viewport.Width = m.width
	m.viewport.Height = m.bodyHeight() - headingHeight
	if m.viewport.Height < 1 {
		m.viewport.Height = 1
	}

	rows := make([]string, len(s.lines))
	for i, l := range s.lines {
		rows[i] = renderLine(l, i == s.cursor, m.width)
	}
	m.viewport.SetContent(strings.Join(rows, "\n"))

	switch {
	case s.cursor < m.viewport.YOffset:
		m.viewport.SetYOffset(s.cursor)
	case s.cursor >= m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(s.cursor - m.viewport.Height + 1)
	}
}

// renderLine draws one outline row: connector prefix, a space, then the
// description.
func renderLine(l tree.Line, selected bool, width int) string {
	check := ""
	if l.Task.Complete {
		check = " ✓"
	}
	lead := ""
	if l.Prefix != "" {
		lead = l.Prefix + " "
	}
	desc := truncate(l.Task.Description, width-runewidth.StringWidth(lead+check))

	line := PrefixStyle.Render(lead) + lineStyle(l, selected).Render(desc)
	if check != "" {
		line += DoneStyle.Render(check)
	}
	return line
}

func lineStyle(l tree.Line, selected bool) lipgloss.Style {
	switch {
	case selected:
		return SelectedItemStyle
	case l.IsRoot():
		return RootRowStyle
	}
	return ItemStyle
}

func truncate(s string, width int) string {
	if width < 1 {
		width = 1
	}
	return runewidth.Truncate(s, width, "…")
}
