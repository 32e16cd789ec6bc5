// Package confirm guards task deletion behind an explicit second step.
package confirm

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

type Remover interface {
	Remove(id string) error
}

// Flow is Idle until Request, then Pending(id) until Confirm or Cancel.
// A second Request while pending replaces the target.
type Flow struct {
	store   Remover
	logger  *log.Logger
	pending bool
	id      string
}

func New(store Remover, logger *log.Logger) *Flow {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Flow{store: store, logger: logger}
}

func (f *Flow) Request(id string) {
	if f.pending && f.id != id {
		f.logger.Debug("replacing pending deletion", "old", f.id, "new", id)
	}
	f.pending = true
	f.id = id
}

// Pending returns the id awaiting confirmation.
func (f *Flow) Pending() (string, bool) {
	return f.id, f.pending
}

// Confirm removes the pending task and returns to Idle. It reports the id
// that was removed; when Idle it does nothing. A failed removal keeps the
// request pending so it can be retried or cancelled.
func (f *Flow) Confirm() (string, error) {
	if !f.pending {
		return "", nil
	}
	id := f.id
	if err := f.store.Remove(id); err != nil {
		return "", fmt.Errorf("remove task %s: %w", id, err)
	}
	f.reset()
	return id, nil
}

func (f *Flow) Cancel() {
	f.reset()
}

func (f *Flow) reset() {
	f.pending = false
	f.id = ""
}
