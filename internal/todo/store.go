// Package todo owns the per-day todo collection and keeps it persisted.
package todo

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sandeepkv93/lifegrid/internal/logging"
	"github.com/sandeepkv93/lifegrid/internal/model"
	"github.com/sandeepkv93/lifegrid/internal/storage"
)

// Armer arms and cancels alarms on behalf of the store.
type Armer interface {
	Arm(todo model.Todo, now time.Time) bool
	Cancel(todoID string) bool
}

// Store holds every todo in insertion order. Each mutation rewrites the full
// collection before the next one is accepted. Rejected input and unknown ids
// are no-ops; write failures are logged and kept in Err.
type Store struct {
	mu     sync.Mutex
	kv     storage.KV
	armer  Armer
	log    logging.Printer
	now    func() time.Time
	todos  []model.Todo
	lastID int64
	err    error
}

// New builds an empty store. armer, log and now may be nil.
func New(kv storage.KV, armer Armer, log logging.Printer, now func() time.Time) *Store {
	if log == nil {
		log = logging.Discard
	}
	if now == nil {
		now = time.Now
	}
	return &Store{kv: kv, armer: armer, log: log, now: now}
}

// Load replaces the in-memory collection with the persisted one. An absent
// key leaves the store empty. Entries that fail validation are dropped.
func (s *Store) Load(ctx context.Context) error {
	var loaded []model.Todo
	ok, err := s.kv.Get(ctx, storage.KeyTodos, &loaded)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.log.Printf("load todos: %v", err)
		s.err = err
		return err
	}
	s.todos = s.todos[:0]
	if !ok {
		return nil
	}
	for _, t := range loaded {
		if err := t.Validate(); err != nil {
			s.log.Printf("drop persisted todo %q: %v", t.ID, err)
			continue
		}
		s.todos = append(s.todos, t)
		if n, err := strconv.ParseInt(t.ID, 10, 64); err == nil && n > s.lastID {
			s.lastID = n
		}
	}
	return nil
}

// Add appends a todo for day. Whitespace-only text is rejected.
func (s *Store) Add(ctx context.Context, day model.DayKey, text string) (model.Todo, bool) {
	text = strings.TrimSpace(text)
	if text == "" || !day.IsValid() {
		return model.Todo{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	t := model.Todo{ID: s.nextIDLocked(), Text: text, Date: day}
	s.todos = append(s.todos, t)
	s.persistLocked(ctx)
	return t.Clone(), true
}

func (s *Store) Toggle(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(id)
	if i < 0 {
		return false
	}
	s.todos[i].Completed = !s.todos[i].Completed
	s.persistLocked(ctx)
	return true
}

// Remove deletes the todo and cancels any alarm it had pending.
func (s *Store) Remove(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(id)
	if i < 0 {
		return false
	}
	s.todos = append(s.todos[:i], s.todos[i+1:]...)
	s.persistLocked(ctx)
	if s.armer != nil {
		s.armer.Cancel(id)
	}
	return true
}

// SetAlarm enables an HH:MM alarm on the todo and arms it when the todo
// belongs to today.
func (s *Store) SetAlarm(ctx context.Context, id, clock string) bool {
	hm, err := model.ParseAlarmTime(clock)
	if err != nil {
		s.log.Printf("set alarm %s: %v", id, err)
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(id)
	if i < 0 {
		return false
	}
	s.todos[i].Alarm = &model.Alarm{Time: hm.Format(model.AlarmTimeLayout), Enabled: true}
	s.persistLocked(ctx)
	if s.armer != nil {
		s.armer.Arm(s.todos[i].Clone(), s.now())
	}
	return true
}

// ListForDay returns the day's todos in insertion order.
func (s *Store) ListForDay(day model.DayKey) []model.Todo {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Todo, 0)
	for _, t := range s.todos {
		if t.Date == day {
			out = append(out, t.Clone())
		}
	}
	return out
}

func (s *Store) All() []model.Todo {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Todo, len(s.todos))
	for i, t := range s.todos {
		out[i] = t.Clone()
	}
	return out
}

func (s *Store) Get(id string) (model.Todo, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(id)
	if i < 0 {
		return model.Todo{}, false
	}
	return s.todos[i].Clone(), true
}

// Err returns the error from the most recent load or write, if any.
func (s *Store) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *Store) indexLocked(id string) int {
	for i := range s.todos {
		if s.todos[i].ID == id {
			return i
		}
	}
	return -1
}

// nextIDLocked uses the creation time in milliseconds, bumped past the last
// issued id so rapid adds never collide.
func (s *Store) nextIDLocked() string {
	id := s.now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return strconv.FormatInt(id, 10)
}

func (s *Store) persistLocked(ctx context.Context) {
	todos := s.todos
	if todos == nil {
		todos = []model.Todo{}
	}
	if err := s.kv.Set(ctx, storage.KeyTodos, todos); err != nil {
		s.log.Printf("persist todos: %v", err)
		s.err = err
		return
	}
	s.err = nil
}
