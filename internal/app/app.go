// Package app wires one task store to the form, the delete confirmation and
// the active filter, and turns presentation events into store mutations.
package app

import (
	"io"

	"github.com/charmbracelet/log"

	"taskeasy/internal/confirm"
	"taskeasy/internal/form"
	"taskeasy/internal/store"
	"taskeasy/internal/task"
	"taskeasy/internal/view"
)

type App struct {
	store   *store.Store
	form    *form.Controller
	confirm *confirm.Flow
	filter  task.Filter
	logger  *log.Logger
}

// New builds a session around s, which should already be loaded.
func New(s *store.Store, filter task.Filter, logger *log.Logger) *App {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if _, err := task.ParseFilter(string(filter)); err != nil {
		filter = task.FilterAll
	}
	return &App{
		store:   s,
		form:    form.New(s, logger.WithPrefix("form")),
		confirm: confirm.New(s, logger.WithPrefix("confirm")),
		filter:  filter,
		logger:  logger,
	}
}

func (a *App) Tasks() []task.Task {
	return a.store.Tasks()
}

func (a *App) Filter() task.Filter {
	return a.filter
}

// Projection is the filtered, priority-sorted list to display.
func (a *App) Projection() []task.Task {
	return view.Project(a.store.Tasks(), a.filter)
}

func (a *App) Mode() form.Mode {
	return a.form.Mode()
}

func (a *App) Fields() task.Fields {
	return a.form.Fields()
}

func (a *App) PendingDelete() (string, bool) {
	return a.confirm.Pending()
}

// Model returns the view-model for the current state.
func (a *App) Model() view.Model {
	return view.Build(a.store.Tasks(), a.filter, a.formState(), a.confirmState())
}

func (a *App) SetFilter(f task.Filter) error {
	f, err := task.ParseFilter(string(f))
	if err != nil {
		return err
	}
	a.filter = f
	return nil
}

// CycleFilter moves to the next filter and returns it.
func (a *App) CycleFilter() task.Filter {
	a.filter = a.filter.Next()
	return a.filter
}

// Submit replaces the form fields with f and submits them.
func (a *App) Submit(f task.Fields) (task.Task, error) {
	a.form.SetFields(f)
	t, err := a.form.Submit()
	if err != nil {
		a.logger.Debug("submit rejected", "err", err)
	}
	return t, err
}

// EditFields records an in-progress edit of the form and clears any
// validation error.
func (a *App) EditFields(f task.Fields) {
	a.form.SetFields(f)
}

func (a *App) FormError() string {
	return a.form.Error()
}

func (a *App) BeginEdit(id string) bool {
	return a.form.BeginEdit(id)
}

func (a *App) CancelEdit() {
	a.form.Cancel()
}

func (a *App) RequestDelete(id string) {
	a.confirm.Request(id)
}

func (a *App) CancelDelete() {
	a.confirm.Cancel()
}

// ConfirmDelete removes the pending task. If it was open in the form, the
// form drops back to create mode.
func (a *App) ConfirmDelete() error {
	id, err := a.confirm.Confirm()
	if err != nil {
		return err
	}
	if id != "" {
		a.form.Forget(id)
	}
	return nil
}

func (a *App) formState() view.FormState {
	id, editing := a.form.EditingID()
	return view.FormState{
		Editing: editing,
		EditID:  id,
		Fields:  a.form.Fields(),
		Error:   a.form.Error(),
	}
}

func (a *App) confirmState() view.ConfirmState {
	id, pending := a.confirm.Pending()
	return view.ConfirmState{Pending: pending, ID: id}
}
