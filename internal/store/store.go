// Package store owns the in-memory task collection and mirrors it to a
// persisted slot after every mutation.
package store

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"taskeasy/internal/storage"
	"taskeasy/internal/task"
)

// DefaultKey is the slot the collection is persisted under.
const DefaultKey = "tasks"

var ErrDuplicateID = errors.New("duplicate task id")

//go:embed tasks.schema.json
var schemaJSON string

var payloadSchema = jsonschema.MustCompileString("tasks.schema.json", schemaJSON)

// Store holds the authoritative task list. It is not safe for concurrent use;
// callers drive it from a single event loop.
type Store struct {
	slots  storage.Slots
	key    string
	newID  task.IDFunc
	now    func() time.Time
	logger *log.Logger
	tasks  []task.Task
}

type Option func(*Store)

// WithKey overrides DefaultKey.
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithIDFunc replaces the UUID generator, mainly for deterministic tests.
func WithIDFunc(f task.IDFunc) Option {
	return func(s *Store) {
		if f != nil {
			s.newID = f
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// New returns an empty store. Call Load to read the persisted slot.
func New(slots storage.Slots, opts ...Option) *Store {
	s := &Store{
		slots:  slots,
		key:    DefaultKey,
		newID:  task.NewID,
		now:    func() time.Time { return time.Now().UTC() },
		logger: log.New(io.Discard),
		tasks:  []task.Task{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the in-memory list with the persisted one. A missing or
// unreadable slot yields an empty list; the cause is only logged.
func (s *Store) Load() []task.Task {
	s.tasks = s.read()
	s.logger.Debug("loaded tasks", "key", s.key, "count", len(s.tasks))
	return s.Tasks()
}

func (s *Store) read() []task.Task {
	raw, err := s.slots.Get(s.key)
	if errors.Is(err, storage.ErrSlotNotFound) {
		return []task.Task{}
	}
	if err != nil {
		s.logger.Warn("discarding persisted tasks", "key", s.key, "err", err)
		return []task.Task{}
	}
	tasks, err := decode(raw)
	if err != nil {
		s.logger.Warn("discarding persisted tasks", "key", s.key, "err", err)
		return []task.Task{}
	}
	return s.dedupe(tasks)
}

func decode(raw string) ([]task.Task, error) {
	var doc any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, fmt.Errorf("parse tasks: %w", err)
	}
	if err := payloadSchema.Validate(doc); err != nil {
		return nil, fmt.Errorf("validate tasks: %w", err)
	}
	var tasks []task.Task
	if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}
	return tasks, nil
}

func (s *Store) dedupe(tasks []task.Task) []task.Task {
	seen := make(map[string]struct{}, len(tasks))
	out := make([]task.Task, 0, len(tasks))
	for _, t := range tasks {
		if _, ok := seen[t.ID]; ok {
			s.logger.Warn("dropping task with duplicate id", "id", t.ID)
			continue
		}
		seen[t.ID] = struct{}{}
		out = append(out, t)
	}
	return out
}

// Save writes tasks to the slot, replacing its previous content.
func (s *Store) Save(tasks []task.Task) error {
	if tasks == nil {
		tasks = []task.Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}
	if err := s.slots.Set(s.key, string(data)); err != nil {
		return fmt.Errorf("write tasks: %w", err)
	}
	s.logger.Debug("saved tasks", "key", s.key, "count", len(tasks))
	return nil
}

// Tasks returns a copy of the collection in insertion order.
func (s *Store) Tasks() []task.Task {
	return slices.Clone(s.tasks)
}

func (s *Store) Len() int {
	return len(s.tasks)
}

func (s *Store) Get(id string) (task.Task, bool) {
	i := s.index(id)
	if i < 0 {
		return task.Task{}, false
	}
	return s.tasks[i], true
}

// Create assigns a fresh id and creation time to f and adds the task.
func (s *Store) Create(f task.Fields) (task.Task, error) {
	t := task.New(s.newID(), s.now(), f)
	if err := s.Add(t); err != nil {
		return task.Task{}, err
	}
	return t, nil
}

// Add appends a fully formed task and persists the collection.
func (s *Store) Add(t task.Task) error {
	if err := check(t); err != nil {
		return err
	}
	if s.index(t.ID) >= 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateID, t.ID)
	}
	next := append(slices.Clone(s.tasks), t)
	if err := s.commit(next); err != nil {
		return err
	}
	s.logger.Info("added task", "id", t.ID)
	return nil
}

// Update replaces the task with the same id. An unknown id is a no-op.
func (s *Store) Update(t task.Task) error {
	i := s.index(t.ID)
	if i < 0 {
		s.logger.Debug("update of unknown task ignored", "id", t.ID)
		return nil
	}
	if err := check(t); err != nil {
		return err
	}
	next := slices.Clone(s.tasks)
	next[i] = t
	if err := s.commit(next); err != nil {
		return err
	}
	s.logger.Info("updated task", "id", t.ID)
	return nil
}

// Remove deletes the task with id. An unknown id is a no-op.
func (s *Store) Remove(id string) error {
	i := s.index(id)
	if i < 0 {
		s.logger.Debug("remove of unknown task ignored", "id", id)
		return nil
	}
	next := slices.Delete(slices.Clone(s.tasks), i, i+1)
	if err := s.commit(next); err != nil {
		return err
	}
	s.logger.Info("removed task", "id", id)
	return nil
}

// commit persists next and only then swaps it in, so a failed write leaves
// the in-memory list untouched.
func (s *Store) commit(next []task.Task) error {
	if err := s.Save(next); err != nil {
		return err
	}
	s.tasks = next
	return nil
}

func (s *Store) index(id string) int {
	return slices.IndexFunc(s.tasks, func(t task.Task) bool { return t.ID == id })
}

func check(t task.Task) error {
	if t.ID == "" {
		return errors.New("task id is empty")
	}
	if _, err := t.Fields().Normalize(); err != nil {
		return fmt.Errorf("task %s: %w", t.ID, err)
	}
	return nil
}
