// Package view derives what the presentation layer shows from plain state.
// Nothing here is cached; callers rebuild on every change.
package view

import "taskeasy/internal/task"

// Project returns the display list: the tasks matching f, highest priority
// first, ties in input order.
func Project(tasks []task.Task, f task.Filter) []task.Task {
	return task.SortByPriority(task.FilterByStatus(tasks, f))
}

const (
	EmptyTitle      = "No tasks found"
	EmptyHint       = "Add a new task to get started"
	DialogTitle     = "Confirm Delete"
	DialogMessage   = "Are you sure you want to delete this task? This action cannot be undone."
	HeadingCreate   = "Add New Task"
	HeadingEdit     = "Edit Task"
	SubmitLabelAdd  = "Add Task"
	SubmitLabelSave = "Update Task"
)

type Item struct {
	ID            string
	Title         string
	Description   string
	Priority      task.Priority
	PriorityLabel string
	Status        task.Status
	StatusLabel   string
	Created       string
}

type FormState struct {
	Editing bool
	EditID  string
	Fields  task.Fields
	Error   string
}

type Form struct {
	Heading     string
	SubmitLabel string
	ShowCancel  bool
	Fields      task.Fields
	Error       string
}

type ConfirmState struct {
	Pending bool
	ID      string
}

type Dialog struct {
	Open    bool
	Title   string
	Message string
	TaskID  string
	// Subject is the title of the task awaiting deletion, empty if it is gone.
	Subject string
}

// Model is everything a renderer needs for one frame.
type Model struct {
	Filter      task.Filter
	FilterLabel string
	Total       int
	Items       []Item
	Empty       bool
	EmptyTitle  string
	EmptyHint   string
	Form        Form
	Dialog      Dialog
}

// Build is a pure function from state to view-model. Creation dates are
// shown as the local calendar day.
func Build(tasks []task.Task, f task.Filter, fs FormState, cs ConfirmState) Model {
	projected := Project(tasks, f)
	m := Model{
		Filter:      f,
		FilterLabel: f.Label(),
		Total:       len(tasks),
		Items:       make([]Item, 0, len(projected)),
		Empty:       len(projected) == 0,
		Form:        buildForm(fs),
		Dialog:      buildDialog(tasks, cs),
	}
	if m.Empty {
		m.EmptyTitle = EmptyTitle
		m.EmptyHint = EmptyHint
	}
	for _, t := range projected {
		m.Items = append(m.Items, Item{
			ID:            t.ID,
			Title:         t.Title,
			Description:   t.Description,
			Priority:      t.Priority,
			PriorityLabel: t.Priority.Label(),
			Status:        t.Status,
			StatusLabel:   t.Status.Label(),
			Created:       task.FormatDate(t.CreatedAt.Local()),
		})
	}
	return m
}

func buildForm(fs FormState) Form {
	f := Form{
		Heading:     HeadingCreate,
		SubmitLabel: SubmitLabelAdd,
		Fields:      fs.Fields,
		Error:       fs.Error,
	}
	if fs.Editing {
		f.Heading = HeadingEdit
		f.SubmitLabel = SubmitLabelSave
		f.ShowCancel = true
	}
	return f
}

func buildDialog(tasks []task.Task, cs ConfirmState) Dialog {
	if !cs.Pending {
		return Dialog{}
	}
	d := Dialog{
		Open:    true,
		Title:   DialogTitle,
		Message: DialogMessage,
		TaskID:  cs.ID,
	}
	for _, t := range tasks {
		if t.ID == cs.ID {
			d.Subject = t.Title
			break
		}
	}
	return d
}
