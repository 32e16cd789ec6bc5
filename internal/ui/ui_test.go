package ui

import (
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskeasy/internal/app"
	"taskeasy/internal/config"
	"taskeasy/internal/form"
	"taskeasy/internal/storage"
	"taskeasy/internal/store"
	"taskeasy/internal/task"
)

var at = time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC)

func testConfig() config.Config {
	return config.Config{
		DefaultFilter: "all",
		Keys: config.Keymap{
			Quit: "q", Add: "a", Up: "k", Down: "j", Edit: "e", Delete: "d", Filter: "f",
			Confirm: "enter", Cancel: "esc", NextField: "tab", PrevField: "shift+tab",
			CycleLeft: "left", CycleRight: "right",
		},
	}
}

func newModel(t *testing.T, seed ...task.Task) (Model, *app.App) {
	t.Helper()
	n := 0
	s := store.New(storage.NewMemory(),
		store.WithIDFunc(func() string { n++; return fmt.Sprintf("n%d", n) }),
		store.WithClock(func() time.Time { return at }),
	)
	for _, tk := range seed {
		require.NoError(t, s.Add(tk))
	}
	a := app.New(s, task.FilterAll, nil)
	return New(a, testConfig(), nil), a
}

func key(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(Model)
	}
	return m
}

func typeText(m Model, s string) Model {
	for _, r := range s {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(Model)
	}
	return m
}

func seed() []task.Task {
	return []task.Task{
		{ID: "1", Title: "Low one", Priority: task.PriorityLow, Status: task.StatusTodo, CreatedAt: at},
		{ID: "2", Title: "High one", Priority: task.PriorityHigh, Status: task.StatusCompleted, CreatedAt: at},
	}
}

func TestEmptyStateIsRendered(t *testing.T) {
	m, _ := newModel(t)
	out := m.View()
	assert.Contains(t, out, "No tasks found")
	assert.Contains(t, out, "Add a new task to get started")
}

func TestAddTaskThroughForm(t *testing.T) {
	m, a := newModel(t)

	m = press(m, "a")
	require.Equal(t, modeForm, m.mode)
	assert.Contains(t, m.View(), "Add New Task")

	m = typeText(m, "Test Task")
	m = press(m, "tab")
	m = typeText(m, "Test Description")
	m = press(m, "tab", "right", "right", "tab", "right", "enter")

	require.Equal(t, modeList, m.mode)
	assert.Equal(t, "Added task", m.message)
	tasks := a.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, "n1", tasks[0].ID)
	assert.Equal(t, "Test Task", tasks[0].Title)
	assert.Equal(t, "Test Description", tasks[0].Description)
	assert.Equal(t, task.PriorityHigh, tasks[0].Priority)
	assert.Equal(t, task.StatusInProgress, tasks[0].Status)
	assert.Equal(t, at, tasks[0].CreatedAt)
	assert.Contains(t, m.View(), "Test Task")
}

func TestEmptyTitleShowsValidationMessage(t *testing.T) {
	m, a := newModel(t)

	m = press(m, "a", "enter")

	assert.Equal(t, modeForm, m.mode)
	assert.Equal(t, form.MsgEmptyTitle, m.message)
	assert.Contains(t, m.View(), form.MsgEmptyTitle)
	assert.Empty(t, a.Tasks())
}

func TestTypingClearsValidationMessage(t *testing.T) {
	m, a := newModel(t)

	m = press(m, "a", "enter")
	require.Contains(t, m.View(), form.MsgEmptyTitle)

	m = typeText(m, "B")

	assert.Empty(t, a.Model().Form.Error)
	assert.Empty(t, m.message)
	assert.NotContains(t, m.View(), form.MsgEmptyTitle)
	assert.Equal(t, "B", a.Fields().Title)

	m = press(m, "enter")
	assert.Equal(t, "Added task", m.message)
	require.Len(t, a.Tasks(), 1)
	assert.Equal(t, "B", a.Tasks()[0].Title)
}

func TestFocusChangeKeepsValidationMessage(t *testing.T) {
	m, a := newModel(t)

	m = press(m, "a", "enter", "tab")

	assert.Equal(t, form.MsgEmptyTitle, a.Model().Form.Error)
	assert.Equal(t, form.MsgEmptyTitle, m.message)
}

func TestEditSelectedTask(t *testing.T) {
	m, a := newModel(t, seed()...)

	// projection puts the high priority task first
	m = press(m, "j", "e")
	require.Equal(t, modeForm, m.mode)
	assert.Equal(t, "Low one", m.title.Value())
	assert.Contains(t, m.View(), "Edit Task")

	m.title.SetValue("Edited")
	m = press(m, "enter")

	assert.Equal(t, "Updated task", m.message)
	got := a.Tasks()
	assert.Equal(t, "Edited", got[0].Title)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, at, got[0].CreatedAt)
	assert.Equal(t, seed()[1], got[1])
	assert.Equal(t, form.ModeCreate, a.Mode())
}

func TestEditCancel(t *testing.T) {
	m, a := newModel(t, seed()...)

	m = press(m, "e")
	m.title.SetValue("throwaway")
	m = press(m, "esc")

	assert.Equal(t, modeList, m.mode)
	assert.Equal(t, "Edit cancelled", m.message)
	assert.Equal(t, seed(), a.Tasks())
}

func TestDeleteCancelThenConfirm(t *testing.T) {
	m, a := newModel(t, seed()...)

	m = press(m, "d")
	require.Equal(t, modeConfirm, m.mode)
	out := m.View()
	assert.Contains(t, out, "Confirm Delete")
	assert.Contains(t, out, "High one")

	m = press(m, "n")
	assert.Equal(t, modeList, m.mode)
	assert.Len(t, a.Tasks(), 2)

	m = press(m, "d", "y")
	assert.Equal(t, "Deleted task", m.message)
	assert.Equal(t, []task.Task{seed()[0]}, a.Tasks())
}

func TestFilterCycles(t *testing.T) {
	m, a := newModel(t, seed()...)

	m = press(m, "f")
	assert.Equal(t, task.Filter(task.StatusTodo), a.Filter())
	assert.Equal(t, "Filter: To Do", m.message)
	out := m.View()
	assert.Contains(t, out, "Low one")
	assert.NotContains(t, out, "High one")

	m = press(m, "f")
	assert.Contains(t, m.View(), "No tasks found")
}

func TestCursorStaysInRange(t *testing.T) {
	m, _ := newModel(t, seed()...)

	m = press(m, "j", "j", "j")
	assert.Equal(t, 1, m.cursor)
	m = press(m, "k", "k", "up")
	assert.Equal(t, 0, m.cursor)
}

func TestQuit(t *testing.T) {
	m, _ := newModel(t)
	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestCycle(t *testing.T) {
	assert.Equal(t, task.PriorityMedium, cycle(task.Priorities, task.PriorityLow, 1))
	assert.Equal(t, task.PriorityHigh, cycle(task.Priorities, task.PriorityLow, -1))
	assert.Equal(t, task.PriorityLow, cycle(task.Priorities, task.PriorityHigh, 1))
	assert.Equal(t, task.PriorityLow, cycle(task.Priorities, "bogus", 1))
}

func TestClampCursor(t *testing.T) {
	assert.Equal(t, 0, clampCursor(5, 0))
	assert.Equal(t, 0, clampCursor(-1, 3))
	assert.Equal(t, 2, clampCursor(9, 3))
	assert.Equal(t, 1, clampCursor(1, 3))
}
