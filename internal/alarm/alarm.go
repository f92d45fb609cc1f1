// Package alarm arms one-shot todo reminders for the current day and
// delivers them to a notification sink when they come due.
package alarm

import (
	"sync"
	"time"

	"github.com/sandeepkv93/lifegrid/internal/logging"
	"github.com/sandeepkv93/lifegrid/internal/model"
	"github.com/sandeepkv93/lifegrid/internal/notify"
	"github.com/sandeepkv93/lifegrid/internal/scheduler"
)

// Title is the notification title used for every alarm.
const Title = "Todo Reminder"

type State int

const (
	StateNone State = iota
	StatePending
	StateFired
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateFired:
		return "fired"
	case StateCancelled:
		return "cancelled"
	default:
		return "none"
	}
}

// Scheduler owns at most one pending timer per todo id. Alarms are only
// armed for today and only while their fire time lies ahead; anything else
// is skipped without error.
type Scheduler struct {
	engine *scheduler.Engine
	sink   notify.Sink
	log    logging.Printer

	mu      sync.Mutex
	states  map[string]State
	// armed holds the Seq of the live arming per id, from Schedule until
	// delivery. Events whose Seq no longer matches are dropped.
	armed   map[string]uint64
	seq     uint64
	fired   chan scheduler.Event
	started bool
	stopped bool
	done    chan struct{}
}

func New(engine *scheduler.Engine, sink notify.Sink, log logging.Printer) *Scheduler {
	if sink == nil {
		sink = notify.Noop{}
	}
	if log == nil {
		log = logging.Discard
	}
	return &Scheduler{
		engine: engine,
		sink:   sink,
		log:    log,
		states: make(map[string]State),
		armed:  make(map[string]uint64),
		fired:  make(chan scheduler.Event, 16),
		done:   make(chan struct{}),
	}
}

// Fired yields every delivered alarm. It is closed after Stop.
func (s *Scheduler) Fired() <-chan scheduler.Event {
	return s.fired
}

func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started || s.stopped {
		return
	}
	s.started = true
	s.engine.Start()
	go s.deliver()
}

// Stop cancels every pending alarm and waits for delivery to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	started := s.started
	for _, id := range s.engine.PendingIDs() {
		s.engine.Cancel(id)
	}
	for id := range s.armed {
		s.states[id] = StateCancelled
		delete(s.armed, id)
	}
	s.mu.Unlock()

	s.engine.Stop()
	if started {
		<-s.done
		return
	}
	close(s.fired)
}

// Arm schedules the todo's alarm for its configured HH:MM on its own day.
func (s *Scheduler) Arm(todo model.Todo, now time.Time) bool {
	if !todo.HasActiveAlarm() {
		return false
	}
	fireAt, err := todo.Date.At(todo.Alarm.Time)
	if err != nil {
		s.log.Printf("skip %s: %v", todo.ID, err)
		return false
	}
	return s.ArmAt(todo, fireAt, now)
}

// ArmAt schedules a notification for todo at fireAt. It reports whether a
// timer was armed.
func (s *Scheduler) ArmAt(todo model.Todo, fireAt, now time.Time) bool {
	if todo.Date != model.DayKeyOf(now) {
		s.log.Printf("skip %s: day %s is not today", todo.ID, todo.Date)
		return false
	}
	delay := fireAt.Sub(now)
	if delay <= 0 {
		s.log.Printf("skip %s: fire time %s already passed", todo.ID, fireAt.Format(model.AlarmTimeLayout))
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	// The engine runs on the wall clock; now may be injected.
	superseded, err := s.engine.Schedule(scheduler.Event{
		ID:        todo.ID,
		Title:     Title,
		Body:      todo.Text,
		DayKey:    todo.Date.String(),
		TriggerAt: time.Now().Add(delay),
		Seq:       s.seq,
	})
	if err != nil {
		s.log.Printf("arm %s: %v", todo.ID, err)
		return false
	}
	// An earlier arming may already have left the engine.
	_, inFlight := s.armed[todo.ID]
	s.armed[todo.ID] = s.seq
	s.states[todo.ID] = StatePending
	if superseded || inFlight {
		s.log.Printf("re-armed %s in %s", todo.ID, delay.Round(time.Second))
	} else {
		s.log.Printf("armed %s in %s", todo.ID, delay.Round(time.Second))
	}
	return true
}

// ArmDay arms every enabled alarm in todos and returns how many were armed.
func (s *Scheduler) ArmDay(todos []model.Todo, now time.Time) int {
	n := 0
	for _, t := range todos {
		if s.Arm(t, now) {
			n++
		}
	}
	return n
}

// Cancel stops a pending alarm, including one already due but not yet
// delivered. It reports whether one was pending.
func (s *Scheduler) Cancel(todoID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine.Cancel(todoID)
	if _, ok := s.armed[todoID]; !ok {
		return false
	}
	delete(s.armed, todoID)
	s.states[todoID] = StateCancelled
	s.log.Printf("cancelled %s", todoID)
	return true
}

func (s *Scheduler) State(todoID string) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.states[todoID]
}

func (s *Scheduler) deliver() {
	defer close(s.done)
	defer close(s.fired)
	for ev := range s.engine.C() {
		s.mu.Lock()
		seq, ok := s.armed[ev.ID]
		if !ok || seq != ev.Seq {
			s.mu.Unlock()
			s.log.Printf("dropped stale alarm %s", ev.ID)
			continue
		}
		delete(s.armed, ev.ID)
		s.states[ev.ID] = StateFired
		s.mu.Unlock()

		if err := s.sink.Notify(ev.Title, ev.Body); err != nil {
			s.log.Printf("notify %s: %v", ev.ID, err)
		}
		s.log.Printf("fired %s", ev.ID)

		select {
		case s.fired <- ev:
		default:
		}
	}
}
