// Package task holds the task record and the pure helpers that sort, filter
// and validate it.
package task

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrEmptyTitle      = errors.New("title is empty")
	ErrInvalidPriority = errors.New("invalid priority")
	ErrInvalidStatus   = errors.New("invalid status")
	ErrInvalidFilter   = errors.New("invalid filter")
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Priorities lists every priority in the order a picker cycles through them.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

func ParsePriority(v string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(v)))
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return p, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidPriority, v)
}

// Rank orders priorities for display: high=0, medium=1, low=2.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}

func (p Priority) Label() string {
	switch p {
	case PriorityHigh:
		return "High"
	case PriorityMedium:
		return "Medium"
	default:
		return "Low"
	}
}

func (p Priority) MarshalText() ([]byte, error) {
	if _, err := ParsePriority(string(p)); err != nil {
		return nil, err
	}
	return []byte(p), nil
}

func (p *Priority) UnmarshalText(b []byte) error {
	v, err := ParsePriority(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "inprogress"
	StatusCompleted  Status = "completed"
)

// Statuses lists every status in workflow order.
var Statuses = []Status{StatusTodo, StatusInProgress, StatusCompleted}

func ParseStatus(v string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(v)))
	switch s {
	case StatusTodo, StatusInProgress, StatusCompleted:
		return s, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, v)
}

func (s Status) Label() string {
	switch s {
	case StatusInProgress:
		return "In Progress"
	case StatusCompleted:
		return "Completed"
	default:
		return "To Do"
	}
}

func (s Status) MarshalText() ([]byte, error) {
	if _, err := ParseStatus(string(s)); err != nil {
		return nil, err
	}
	return []byte(s), nil
}

func (s *Status) UnmarshalText(b []byte) error {
	v, err := ParseStatus(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Filter selects tasks by status. FilterAll matches every task.
type Filter string

const FilterAll Filter = "all"

// Filters lists the filter values in the order a picker cycles through them.
var Filters = []Filter{FilterAll, Filter(StatusTodo), Filter(StatusInProgress), Filter(StatusCompleted)}

func ParseFilter(v string) (Filter, error) {
	f := Filter(strings.ToLower(strings.TrimSpace(v)))
	if f == FilterAll {
		return f, nil
	}
	if _, err := ParseStatus(string(f)); err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidFilter, v)
	}
	return f, nil
}

func (f Filter) Label() string {
	if f == FilterAll {
		return "All"
	}
	return Status(f).Label()
}

// Next returns the filter after f, wrapping around.
func (f Filter) Next() Filter {
	for i, v := range Filters {
		if v == f {
			return Filters[(i+1)%len(Filters)]
		}
	}
	return FilterAll
}

// Task is a single to-do record. ID and CreatedAt are set once at creation.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Priority    Priority  `json:"priority"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Fields are the user-editable parts of a task.
type Fields struct {
	Title       string
	Description string
	Priority    Priority
	Status      Status
}

// DefaultFields returns the values a fresh form starts with.
func DefaultFields() Fields {
	return Fields{Priority: PriorityLow, Status: StatusTodo}
}

// Fields returns the editable fields of t.
func (t Task) Fields() Fields {
	return Fields{
		Title:       t.Title,
		Description: t.Description,
		Priority:    t.Priority,
		Status:      t.Status,
	}
}

// Normalize trims the free-text fields and checks the title and enums.
func (f Fields) Normalize() (Fields, error) {
	f.Title = strings.TrimSpace(f.Title)
	f.Description = strings.TrimSpace(f.Description)
	if !ValidateTitle(f.Title) {
		return f, ErrEmptyTitle
	}
	var err error
	if f.Priority, err = ParsePriority(string(f.Priority)); err != nil {
		return f, err
	}
	if f.Status, err = ParseStatus(string(f.Status)); err != nil {
		return f, err
	}
	return f, nil
}

// New builds a task from already-normalized fields.
func New(id string, createdAt time.Time, f Fields) Task {
	return Task{
		ID:          id,
		Title:       f.Title,
		Description: f.Description,
		Priority:    f.Priority,
		Status:      f.Status,
		CreatedAt:   createdAt,
	}
}

// WithFields replaces every editable field and keeps ID and CreatedAt.
func (t Task) WithFields(f Fields) Task {
	return New(t.ID, t.CreatedAt, f)
}
