package task

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SortByPriority returns a copy of tasks ordered high, medium, low.
// Tasks that share a priority keep their input order.
func SortByPriority(tasks []Task) []Task {
	out := slices.Clone(tasks)
	if out == nil {
		out = []Task{}
	}
	slices.SortStableFunc(out, func(a, b Task) int {
		return a.Priority.Rank() - b.Priority.Rank()
	})
	return out
}

// FilterByStatus returns tasks unchanged for FilterAll, otherwise the tasks
// whose status equals the filter in input order.
func FilterByStatus(tasks []Task, f Filter) []Task {
	if f == FilterAll {
		return tasks
	}
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if Filter(t.Status) == f {
			out = append(out, t)
		}
	}
	return out
}

func ValidateTitle(title string) bool {
	return strings.TrimSpace(title) != ""
}

// FormatDate renders t as "Jan 15, 2024".
func FormatDate(t time.Time) string {
	return t.Format("Jan 2, 2006")
}

// IDFunc produces task ids.
type IDFunc func() string

// NewID returns a random UUID string.
func NewID() string {
	return uuid.NewString()
}
