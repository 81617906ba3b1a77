package ui

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"tasklist/internal/config"
	"tasklist/internal/tasks"
)

type mode int

const (
	modeList mode = iota
	modeAdd
	modeEdit
)

var (
	titleStyle        = lipgloss.NewStyle().Bold(true)
	activeFilterStyle = lipgloss.NewStyle().Bold(true).Reverse(true).Padding(0, 1)
	filterStyle       = lipgloss.NewStyle().Faint(true).Padding(0, 1)
	doneStyle         = lipgloss.NewStyle().Strikethrough(true).Faint(true)
	helpStyle         = lipgloss.NewStyle().Faint(true)
)

type Model struct {
	tasks      *tasks.Manager
	cfg        config.Config
	logger     *log.Logger
	visible    []tasks.Task
	cursor     int
	mode       mode
	input      textinput.Model
	status     string
	confirmDel bool
	pendingDel *tasks.Task
}

func Run(mgr *tasks.Manager, cfg config.Config, logger *log.Logger, firstLaunch bool) error {
	m := NewModel(mgr, cfg, logger)
	if firstLaunch {
		m.status = "Welcome! Press '" + keyLabel(cfg.Keys.Add) + "' to add your first task."
	}
	program := tea.NewProgram(m)
	_, err := program.Run()
	return err
}

func NewModel(mgr *tasks.Manager, cfg config.Config, logger *log.Logger) Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	ti := textinput.New()
	ti.Placeholder = "Add a new task"
	ti.CharLimit = 0
	ti.Width = 40

	mgr.SetFilter(cfg.Filter())
	m := Model{
		tasks:  mgr,
		cfg:    cfg,
		logger: logger,
		input:  ti,
		mode:   modeList,
		status: fmt.Sprintf("Press '%s' to add, %s to toggle, '%s' to edit.",
			keyLabel(cfg.Keys.Add), keyLabel(cfg.Keys.Toggle), keyLabel(cfg.Keys.Edit)),
	}
	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.confirmDel {
			return m.updateDeleteConfirm(msg.String())
		}
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.input.Width = max(msg.Width-10, 10)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch m.mode {
	case modeAdd:
		return m.updateAddMode(key, msg)
	case modeEdit:
		return m.updateEditMode(key, msg)
	}
	return m.updateListMode(key)
}

func (m Model) updateAddMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel:
		m.mode = modeList
		m.input.SetValue("")
		m.input.Blur()
		m.status = "Cancelled"
		return m, nil
	case m.cfg.Keys.Confirm:
		task, ok, err := m.tasks.AddTask(m.input.Value())
		if err != nil {
			m.logger.Error("add task", "err", err)
			m.status = fmt.Sprintf("save failed: %v", err)
			return m, nil
		}
		if !ok {
			m.status = "Task text cannot be empty"
			return m, nil
		}
		m.refresh()
		m.selectTask(task.ID)
		m.status = "Added task"
		m.input.SetValue("")
		m.input.Blur()
		m.mode = modeList
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) updateEditMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel:
		m.tasks.CancelEdit()
		m.mode = modeList
		m.input.SetValue("")
		m.input.Blur()
		m.status = "Edit cancelled"
		return m, nil
	case m.cfg.Keys.Confirm:
		id, _, _ := m.tasks.Editing()
		ok, err := m.tasks.CommitEdit()
		if err != nil {
			m.logger.Error("commit edit", "id", id, "err", err)
			m.status = fmt.Sprintf("save failed: %v", err)
			return m, nil
		}
		if !ok {
			if _, _, editing := m.tasks.Editing(); editing {
				m.status = "Task text cannot be empty"
				return m, nil
			}
			m.status = "Task no longer exists"
		} else {
			m.status = "Saved task"
		}
		m.refresh()
		m.selectTask(id)
		m.mode = modeList
		m.input.SetValue("")
		m.input.Blur()
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		m.tasks.SetEditDraft(m.input.Value())
		return m, cmd
	}
}

func (m Model) updateListMode(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "ctrl+c", m.cfg.Keys.Quit:
		return m, tea.Quit
	case m.cfg.Keys.Down, "down":
		if len(m.visible) == 0 {
			return m, nil
		}
		m.cursor = clampCursor(m.cursor+1, len(m.visible))
	case m.cfg.Keys.Up, "up":
		if m.cursor > 0 {
			m.cursor = clampCursor(m.cursor-1, len(m.visible))
		}
	case m.cfg.Keys.Add:
		m.mode = modeAdd
		m.input.Placeholder = "Add a new task"
		m.input.Focus()
		m.status = "Add mode: type a task and press " + keyLabel(m.cfg.Keys.Confirm)
	case m.cfg.Keys.Toggle:
		task, ok := m.current()
		if !ok {
			return m, nil
		}
		if _, err := m.tasks.ToggleCompletion(task.ID); err != nil {
			m.logger.Error("toggle task", "id", task.ID, "err", err)
			m.status = fmt.Sprintf("toggle failed: %v", err)
			return m, nil
		}
		m.refresh()
		if cur, ok := m.current(); ok && cur.ID == task.ID {
			m.cursor = clampCursor(m.cursor+1, len(m.visible))
		}
		m.status = "Toggled task"
	case m.cfg.Keys.Delete:
		task, ok := m.current()
		if !ok {
			return m, nil
		}
		if !m.cfg.ConfirmDelete {
			return m.deleteTask(task)
		}
		m.confirmDel = true
		m.pendingDel = &task
		m.status = fmt.Sprintf("Delete \"%s\"? y/n", task.Text)
	case m.cfg.Keys.Detail:
		task, ok := m.current()
		if !ok {
			m.status = "No tasks"
			return m, nil
		}
		m.status = fmt.Sprintf("Task #%d • %s • %s", task.ID, task.Text, humanDone(task.Completed))
	case m.cfg.Keys.Edit, m.cfg.Keys.Confirm:
		task, ok := m.current()
		if !ok {
			m.status = "No tasks to edit"
			return m, nil
		}
		return m.startEdit(task)
	case m.cfg.Keys.FilterAll:
		m.setFilter(tasks.FilterAll)
	case m.cfg.Keys.FilterCompleted:
		m.setFilter(tasks.FilterCompleted)
	case m.cfg.Keys.FilterIncomplete:
		m.setFilter(tasks.FilterIncomplete)
	case m.cfg.Keys.FilterCycle, "tab":
		m.setFilter(m.tasks.Filter().Next())
	}
	return m, nil
}

func (m Model) startEdit(t tasks.Task) (tea.Model, tea.Cmd) {
	m.tasks.BeginEdit(t.ID, t.Text)
	m.input.Placeholder = "Task text"
	m.input.SetValue(t.Text)
	m.input.CursorEnd()
	m.input.Focus()
	m.mode = modeEdit
	m.status = fmt.Sprintf("Editing: %s to save, %s to cancel",
		keyLabel(m.cfg.Keys.Confirm), keyLabel(m.cfg.Keys.Cancel))
	return m, nil
}

func (m Model) updateDeleteConfirm(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "n", "N", m.cfg.Keys.Cancel:
		m.status = "Delete cancelled"
		m.confirmDel = false
		m.pendingDel = nil
		return m, nil
	case "y", "Y":
		if m.pendingDel == nil {
			m.status = "Nothing to delete"
			m.confirmDel = false
			return m, nil
		}
		task := *m.pendingDel
		m.confirmDel = false
		m.pendingDel = nil
		return m.deleteTask(task)
	default:
		return m, nil
	}
}

func (m Model) deleteTask(t tasks.Task) (tea.Model, tea.Cmd) {
	if _, err := m.tasks.DeleteTask(t.ID); err != nil {
		m.logger.Error("delete task", "id", t.ID, "err", err)
		m.status = fmt.Sprintf("delete failed: %v", err)
		return m, nil
	}
	m.refresh()
	m.status = "Deleted task"
	return m, nil
}

func (m *Model) setFilter(f tasks.Filter) {
	m.tasks.SetFilter(f)
	m.refresh()
	m.status = "Showing " + strings.ToLower(f.Label()) + " tasks"
}

// refresh recomputes the visible list from the manager.
func (m *Model) refresh() {
	m.visible = slices.Collect(m.tasks.VisibleTasks())
	m.cursor = clampCursor(m.cursor, len(m.visible))
}

func (m *Model) selectTask(id int64) {
	if i := slices.IndexFunc(m.visible, func(t tasks.Task) bool { return t.ID == id }); i >= 0 {
		m.cursor = i
	}
}

func (m Model) current() (tasks.Task, bool) {
	if len(m.visible) == 0 {
		return tasks.Task{}, false
	}
	return m.visible[clampCursor(m.cursor, len(m.visible))], true
}

func (m Model) View() string {
	var b strings.Builder

	total, done := m.tasks.Counts()
	b.WriteString(titleStyle.Render("To-Do List"))
	b.WriteString(fmt.Sprintf("  %d tasks • %d done", total, done))
	b.WriteString("\n\n")
	b.WriteString(m.renderFilterBar())
	b.WriteString("\n\n")

	switch {
	case total == 0:
		b.WriteString(fmt.Sprintf("No tasks yet. Press '%s' to add one.\n", keyLabel(m.cfg.Keys.Add)))
	case len(m.visible) == 0:
		b.WriteString(fmt.Sprintf("No %s tasks.\n", strings.ToLower(m.tasks.Filter().Label())))
	default:
		b.WriteString(m.renderTaskList())
	}

	if m.mode == modeAdd {
		b.WriteString("\n")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.status)
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(renderHelp(m.cfg.Keys)))

	return b.String()
}

func (m Model) renderFilterBar() string {
	parts := make([]string, 0, len(tasks.Filters()))
	for _, f := range tasks.Filters() {
		if f == m.tasks.Filter() {
			parts = append(parts, activeFilterStyle.Render(f.Label()))
			continue
		}
		parts = append(parts, filterStyle.Render(f.Label()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m Model) renderTaskList() string {
	editID, _, editing := m.tasks.Editing()
	editing = editing && m.mode == modeEdit

	var b strings.Builder
	for i, t := range m.visible {
		cursor := " "
		if m.cursor == i && m.mode == modeList {
			cursor = ">"
		}

		checkbox := "[ ]"
		if t.Completed {
			checkbox = "[x]"
		}

		text := t.Text
		switch {
		case editing && t.ID == editID:
			text = m.input.View()
		case t.Completed:
			text = doneStyle.Render(text)
		}

		b.WriteString(fmt.Sprintf("%s %s %s\n", cursor, checkbox, text))
	}
	return b.String()
}

func renderHelp(k config.Keymap) string {
	return fmt.Sprintf("%s/%s move • %s add • %s toggle • %s edit • %s delete • %s detail • %s/%s/%s/%s filter • %s quit",
		keyLabel(k.Up), keyLabel(k.Down), keyLabel(k.Add), keyLabel(k.Toggle), keyLabel(k.Edit),
		keyLabel(k.Delete), keyLabel(k.Detail), keyLabel(k.FilterAll), keyLabel(k.FilterCompleted),
		keyLabel(k.FilterIncomplete), keyLabel(k.FilterCycle), keyLabel(k.Quit))
}

func keyLabel(k string) string {
	if k == " " {
		return "space"
	}
	return k
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}

func humanDone(done bool) string {
	if done {
		return "done"
	}
	return "pending"
}
