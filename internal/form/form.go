// Package form implements the add/edit task form as a two-mode state machine.
//
//	Create --BeginEdit--> Edit
//	Edit   --Submit ok | Cancel--> Create
//	Create --Submit ok--> Create (task added)
//	any    --Submit invalid--> same mode, nothing written
package form

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"taskeasy/internal/task"
)

// MsgEmptyTitle is shown when a submit is rejected for a blank title.
const MsgEmptyTitle = "Please enter a task title"

type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

func (m Mode) String() string {
	if m == ModeEdit {
		return "edit"
	}
	return "create"
}

// ValidationError rejects a submit before anything is written.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Store is the part of the task store the form writes through.
type Store interface {
	Get(id string) (task.Task, bool)
	Create(f task.Fields) (task.Task, error)
	Update(t task.Task) error
}

type Controller struct {
	store   Store
	logger  *log.Logger
	mode    Mode
	editing task.Task
	fields  task.Fields
	err     string
}

func New(store Store, logger *log.Logger) *Controller {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Controller{
		store:  store,
		logger: logger,
		fields: task.DefaultFields(),
	}
}

func (c *Controller) Mode() Mode {
	return c.mode
}

func (c *Controller) Fields() task.Fields {
	return c.fields
}

// EditingID returns the id of the task being edited, if any.
func (c *Controller) EditingID() (string, bool) {
	if c.mode != ModeEdit {
		return "", false
	}
	return c.editing.ID, true
}

// Error returns the message of the last rejected submit, cleared by any edit.
func (c *Controller) Error() string {
	return c.err
}

func (c *Controller) SetFields(f task.Fields) {
	c.fields = f
	c.err = ""
}

func (c *Controller) SetTitle(v string) {
	c.fields.Title = v
	c.err = ""
}

func (c *Controller) SetDescription(v string) {
	c.fields.Description = v
	c.err = ""
}

func (c *Controller) SetPriority(p task.Priority) {
	c.fields.Priority = p
	c.err = ""
}

func (c *Controller) SetStatus(s task.Status) {
	c.fields.Status = s
	c.err = ""
}

// BeginEdit loads the task with id into the form. It reports false and
// leaves the form alone when the id is unknown.
func (c *Controller) BeginEdit(id string) bool {
	t, ok := c.store.Get(id)
	if !ok {
		c.logger.Debug("edit requested for unknown task", "id", id)
		return false
	}
	c.mode = ModeEdit
	c.editing = t
	c.fields = t.Fields()
	c.err = ""
	return true
}

// Cancel discards edits and returns to create mode with default fields.
func (c *Controller) Cancel() {
	c.reset()
}

// Submit validates the fields and writes them through the store. In create
// mode the new task is returned; in edit mode the replaced one. On any error
// the mode and fields are kept.
func (c *Controller) Submit() (task.Task, error) {
	fields, err := c.fields.Normalize()
	if err != nil {
		verr := validationError(err)
		c.err = verr.Message
		return task.Task{}, verr
	}

	var out task.Task
	switch c.mode {
	case ModeEdit:
		out = c.editing.WithFields(fields)
		if err := c.store.Update(out); err != nil {
			return task.Task{}, fmt.Errorf("update task: %w", err)
		}
	default:
		out, err = c.store.Create(fields)
		if err != nil {
			return task.Task{}, fmt.Errorf("add task: %w", err)
		}
	}
	c.reset()
	return out, nil
}

// Forget returns to create mode when the task being edited is removed.
func (c *Controller) Forget(id string) {
	if c.mode == ModeEdit && c.editing.ID == id {
		c.reset()
	}
}

func (c *Controller) reset() {
	c.mode = ModeCreate
	c.editing = task.Task{}
	c.fields = task.DefaultFields()
	c.err = ""
}

func validationError(err error) *ValidationError {
	switch {
	case errors.Is(err, task.ErrEmptyTitle):
		return &ValidationError{Field: "title", Message: MsgEmptyTitle, Err: err}
	case errors.Is(err, task.ErrInvalidPriority):
		return &ValidationError{Field: "priority", Message: "Please choose a priority", Err: err}
	case errors.Is(err, task.ErrInvalidStatus):
		return &ValidationError{Field: "status", Message: "Please choose a status", Err: err}
	default:
		return &ValidationError{Message: err.Error(), Err: err}
	}
}
