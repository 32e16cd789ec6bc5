package ui

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"taskeasy/internal/app"
	"taskeasy/internal/config"
	"taskeasy/internal/form"
	"taskeasy/internal/task"
	"taskeasy/internal/view"
)

type mode int

const (
	modeList mode = iota
	modeForm
	modeConfirm
)

type field int

const (
	fieldTitle field = iota
	fieldDescription
	fieldPriority
	fieldStatus
	fieldCount
)

type Model struct {
	app      *app.App
	cfg      config.Config
	logger   *log.Logger
	styles   styles
	cursor   int
	mode     mode
	title    textinput.Model
	desc     textarea.Model
	priority task.Priority
	status   task.Status
	field    field
	message  string
}

func New(a *app.App, cfg config.Config, logger *log.Logger) Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	ti := textinput.New()
	ti.Placeholder = "Task title"
	ti.CharLimit = 256
	ti.Width = 40

	ta := textarea.New()
	ta.Placeholder = "Description (optional)"
	ta.CharLimit = 1000
	ta.ShowLineNumbers = false
	ta.SetWidth(40)
	ta.SetHeight(3)

	m := Model{
		app:     a,
		cfg:     cfg,
		logger:  logger,
		styles:  newStyles(),
		mode:    modeList,
		title:   ti,
		desc:    ta,
		message: fmt.Sprintf("Press '%s' to add, '%s' to edit, '%s' to delete, '%s' to filter.", cfg.Keys.Add, cfg.Keys.Edit, cfg.Keys.Delete, cfg.Keys.Filter),
	}
	m.loadFields(a.Fields())
	return m
}

// Run starts the terminal program and blocks until it exits.
func Run(a *app.App, cfg config.Config, configPath string, firstLaunch bool, logger *log.Logger) error {
	m := New(a, cfg, logger)
	if firstLaunch {
		m.message = fmt.Sprintf("Wrote default config to %s. Press '%s' to add a task.", configPath, cfg.Keys.Add)
	}
	program := tea.NewProgram(m)
	_, err := program.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.mode {
		case modeConfirm:
			return m.updateDeleteConfirm(msg.String())
		case modeForm:
			return m.updateFormMode(msg.String(), msg)
		default:
			return m.updateListMode(msg.String())
		}
	case tea.WindowSizeMsg:
		w := max(msg.Width-16, 20)
		m.title.Width = w
		m.desc.SetWidth(w)
	}
	return m, nil
}

func (m Model) updateListMode(key string) (tea.Model, tea.Cmd) {
	items := m.app.Projection()
	switch key {
	case "ctrl+c", m.cfg.Keys.Quit:
		return m, tea.Quit
	case m.cfg.Keys.Down, "down":
		if len(items) == 0 {
			return m, nil
		}
		m.cursor = clampCursor(m.cursor+1, len(items))
	case m.cfg.Keys.Up, "up":
		if m.cursor > 0 {
			m.cursor = clampCursor(m.cursor-1, len(items))
		}
	case m.cfg.Keys.Add:
		m.app.CancelEdit()
		return m.openForm("Add mode: fill in the fields and press Enter")
	case m.cfg.Keys.Edit:
		if len(items) == 0 {
			m.message = "No tasks to edit"
			return m, nil
		}
		t := items[m.cursor]
		if !m.app.BeginEdit(t.ID) {
			m.message = "Task no longer exists"
			return m, nil
		}
		return m.openForm(fmt.Sprintf("Editing \"%s\"", t.Title))
	case m.cfg.Keys.Delete:
		if len(items) == 0 {
			return m, nil
		}
		t := items[m.cursor]
		m.app.RequestDelete(t.ID)
		m.mode = modeConfirm
		m.message = fmt.Sprintf("Delete \"%s\"? y/n", t.Title)
	case m.cfg.Keys.Filter:
		f := m.app.CycleFilter()
		m.cursor = clampCursor(m.cursor, len(m.app.Projection()))
		m.message = "Filter: " + f.Label()
	}
	return m, nil
}

func (m Model) openForm(message string) (tea.Model, tea.Cmd) {
	m.loadFields(m.app.Fields())
	m.field = fieldTitle
	m.desc.Blur()
	cmd := m.title.Focus()
	m.mode = modeForm
	m.message = message
	return m, cmd
}

func (m Model) updateFormMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case "ctrl+c":
		return m, tea.Quit
	case m.cfg.Keys.Cancel, "esc":
		editing := m.app.Mode() == form.ModeEdit
		m.app.CancelEdit()
		m.closeForm()
		m.message = "Cancelled"
		if editing {
			m.message = "Edit cancelled"
		}
		return m, nil
	case m.cfg.Keys.Confirm, "enter":
		return m.submit()
	case m.cfg.Keys.NextField:
		return m.focusField(m.field + 1)
	case m.cfg.Keys.PrevField:
		return m.focusField(m.field - 1)
	}

	before := m.fields()
	var cmd tea.Cmd
	switch m.field {
	case fieldPriority:
		m.priority = cycle(task.Priorities, m.priority, m.direction(key))
	case fieldStatus:
		m.status = cycle(task.Statuses, m.status, m.direction(key))
	case fieldDescription:
		m.desc, cmd = m.desc.Update(msg)
	default:
		m.title, cmd = m.title.Update(msg)
	}
	if after := m.fields(); after != before {
		if m.app.FormError() != "" {
			m.message = ""
		}
		m.app.EditFields(after)
	}
	return m, cmd
}

func (m Model) direction(key string) int {
	switch key {
	case m.cfg.Keys.CycleLeft, "left", "h":
		return -1
	case m.cfg.Keys.CycleRight, "right", "l", " ":
		return 1
	}
	return 0
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	editing := m.app.Mode() == form.ModeEdit
	t, err := m.app.Submit(m.fields())
	if err != nil {
		var verr *form.ValidationError
		if errors.As(err, &verr) {
			m.message = verr.Message
		} else {
			m.logger.Error("save failed", "err", err)
			m.message = fmt.Sprintf("save failed: %v", err)
		}
		return m, nil
	}
	m.closeForm()
	m.message = "Added task"
	if editing {
		m.message = "Updated task"
	}
	items := m.app.Projection()
	m.cursor = clampCursor(slices.IndexFunc(items, func(it task.Task) bool { return it.ID == t.ID }), len(items))
	return m, nil
}

func (m *Model) closeForm() {
	m.title.Blur()
	m.desc.Blur()
	m.loadFields(m.app.Fields())
	m.field = fieldTitle
	m.mode = modeList
}

func (m Model) focusField(f field) (tea.Model, tea.Cmd) {
	m.field = (f + fieldCount) % fieldCount
	m.title.Blur()
	m.desc.Blur()
	var cmd tea.Cmd
	switch m.field {
	case fieldTitle:
		cmd = m.title.Focus()
	case fieldDescription:
		cmd = m.desc.Focus()
	}
	return m, cmd
}

func (m Model) updateDeleteConfirm(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "n", "N", m.cfg.Keys.Cancel, "esc":
		m.app.CancelDelete()
		m.mode = modeList
		m.message = "Delete cancelled"
	case "y", "Y", m.cfg.Keys.Confirm:
		if err := m.app.ConfirmDelete(); err != nil {
			m.logger.Error("delete failed", "err", err)
			m.app.CancelDelete()
			m.mode = modeList
			m.message = fmt.Sprintf("delete failed: %v", err)
			return m, nil
		}
		m.mode = modeList
		m.cursor = clampCursor(m.cursor, len(m.app.Projection()))
		m.message = "Deleted task"
	}
	return m, nil
}

func (m *Model) loadFields(f task.Fields) {
	m.title.SetValue(f.Title)
	m.desc.SetValue(f.Description)
	m.priority = f.Priority
	m.status = f.Status
}

func (m Model) fields() task.Fields {
	return task.Fields{
		Title:       m.title.Value(),
		Description: m.desc.Value(),
		Priority:    m.priority,
		Status:      m.status,
	}
}

func (m Model) View() string {
	vm := m.app.Model()
	var b strings.Builder

	b.WriteString(m.styles.header.Render("TaskEasy"))
	b.WriteString(m.styles.subtle.Render(fmt.Sprintf("  Filter: %s (%d of %d)", vm.FilterLabel, len(vm.Items), vm.Total)))
	b.WriteString("\n\n")

	if vm.Empty {
		b.WriteString(vm.EmptyTitle)
		b.WriteString("\n")
		b.WriteString(m.styles.subtle.Render(vm.EmptyHint))
		b.WriteString("\n")
	} else {
		b.WriteString(m.renderTaskList(vm.Items))
	}

	switch {
	case m.mode == modeForm:
		b.WriteString("\n")
		b.WriteString(m.renderForm(vm.Form))
		b.WriteString("\n")
	case vm.Dialog.Open:
		b.WriteString("\n")
		b.WriteString(m.renderDialog(vm.Dialog))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.message)
	b.WriteString("\n")
	b.WriteString(m.styles.subtle.Render(renderHelp(m.cfg.Keys, m.mode)))

	return b.String()
}

func (m Model) renderTaskList(items []view.Item) string {
	var b strings.Builder
	for i, it := range items {
		cursor := " "
		title := it.Title
		if m.cursor == i && m.mode == modeList {
			cursor = ">"
			title = m.styles.selected.Render(title)
		}
		b.WriteString(fmt.Sprintf("%s %s %s  %s  %s\n",
			cursor,
			m.styles.priorityBadge(it.Priority),
			title,
			m.styles.statusBadge(it.Status),
			m.styles.subtle.Render(it.Created)))
		if it.Description != "" {
			b.WriteString("      ")
			b.WriteString(m.styles.subtle.Render(it.Description))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m Model) renderForm(f view.Form) string {
	var b strings.Builder
	b.WriteString(m.styles.header.Render(f.Heading))
	b.WriteString("\n\n")
	rows := []struct {
		f     field
		label string
		value string
	}{
		{fieldTitle, "Title", m.title.View()},
		{fieldDescription, "Description", m.desc.View()},
		{fieldPriority, "Priority", "< " + m.styles.priorityBadge(m.priority) + " >"},
		{fieldStatus, "Status", "< " + m.styles.statusBadge(m.status) + " >"},
	}
	for _, r := range rows {
		prefix := " "
		if r.f == m.field {
			prefix = ">"
		}
		b.WriteString(fmt.Sprintf("%s %s %s\n", prefix, m.styles.label.Render(r.label), r.value))
	}
	b.WriteString("\n")
	actions := fmt.Sprintf("[%s] %s", m.cfg.Keys.Confirm, f.SubmitLabel)
	if f.ShowCancel {
		actions += fmt.Sprintf("  [%s] Cancel", m.cfg.Keys.Cancel)
	}
	b.WriteString(actions)
	if f.Error != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.errText.Render(f.Error))
	}
	return m.styles.formBox.Render(b.String())
}

func (m Model) renderDialog(d view.Dialog) string {
	var b strings.Builder
	b.WriteString(m.styles.header.Render(d.Title))
	b.WriteString("\n")
	if d.Subject != "" {
		b.WriteString(fmt.Sprintf("\"%s\"\n", d.Subject))
	}
	b.WriteString(d.Message)
	b.WriteString("\n\n[y] Delete  [n] Cancel")
	return m.styles.dialog.Render(b.String())
}

func renderHelp(k config.Keymap, md mode) string {
	switch md {
	case modeForm:
		return fmt.Sprintf("%s/%s field • %s/%s change • %s save • %s cancel",
			k.NextField, k.PrevField, k.CycleLeft, k.CycleRight, k.Confirm, k.Cancel)
	case modeConfirm:
		return "y delete • n cancel"
	default:
		return fmt.Sprintf("%s/%s move • %s add • %s edit • %s delete • %s filter • %s quit",
			k.Up, k.Down, k.Add, k.Edit, k.Delete, k.Filter, k.Quit)
	}
}

// cycle steps through values from cur by dir, wrapping at either end.
func cycle[T comparable](values []T, cur T, dir int) T {
	i := slices.Index(values, cur)
	if i < 0 {
		return values[0]
	}
	n := len(values)
	return values[((i+dir)%n+n)%n]
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
