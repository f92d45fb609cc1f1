package scheduler

import (
	"fmt"
	"testing"
	"time"
)

func TestEngineEmitsInTriggerOrder(t *testing.T) {
	engine := NewEngine(8)
	engine.Start()
	defer engine.Stop()

	now := time.Now()
	if _, err := engine.Schedule(Event{ID: "later", TriggerAt: now.Add(80 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule later: %v", err)
	}
	if _, err := engine.Schedule(Event{ID: "sooner", TriggerAt: now.Add(20 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule sooner: %v", err)
	}

	first := waitEvent(t, engine.C(), time.Second)
	second := waitEvent(t, engine.C(), time.Second)
	if first.ID != "sooner" || second.ID != "later" {
		t.Fatalf("unexpected order: first=%s second=%s", first.ID, second.ID)
	}
	if engine.Pending("sooner") || engine.Pending("later") {
		t.Fatal("fired events should no longer be pending")
	}
}

func TestEngineRescheduleSupersedes(t *testing.T) {
	engine := NewEngine(8)
	engine.Start()
	defer engine.Stop()

	now := time.Now()
	if superseded, err := engine.Schedule(Event{ID: "todo-1", Body: "first", TriggerAt: now.Add(20 * time.Millisecond)}); err != nil || superseded {
		t.Fatalf("first schedule: superseded=%v err=%v", superseded, err)
	}
	superseded, err := engine.Schedule(Event{ID: "todo-1", Body: "second", TriggerAt: now.Add(60 * time.Millisecond)})
	if err != nil || !superseded {
		t.Fatalf("second schedule: superseded=%v err=%v", superseded, err)
	}

	ev := waitEvent(t, engine.C(), time.Second)
	if ev.Body != "second" {
		t.Fatalf("expected superseding event, got %q", ev.Body)
	}
	expectNoEvent(t, engine.C(), 120*time.Millisecond)
}

func TestEngineCancel(t *testing.T) {
	engine := NewEngine(8)
	engine.Start()
	defer engine.Stop()

	if _, err := engine.Schedule(Event{ID: "gone", TriggerAt: time.Now().Add(30 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if !engine.Pending("gone") {
		t.Fatal("expected pending before cancel")
	}
	if !engine.Cancel("gone") {
		t.Fatal("expected cancel to report a pending event")
	}
	if engine.Cancel("gone") {
		t.Fatal("second cancel should be a no-op")
	}
	expectNoEvent(t, engine.C(), 100*time.Millisecond)
}

func TestEngineNonBlockingDropsWhenConsumerIsSlow(t *testing.T) {
	engine := NewEngine(1)
	engine.Start()
	defer engine.Stop()

	at := time.Now().Add(20 * time.Millisecond)
	for i := 0; i < 25; i++ {
		if _, err := engine.Schedule(Event{ID: fmt.Sprintf("evt-%d", i), TriggerAt: at}); err != nil {
			t.Fatalf("schedule event: %v", err)
		}
	}

	time.Sleep(120 * time.Millisecond)
	if engine.Dropped() == 0 {
		t.Fatalf("expected dropped events > 0, got %d", engine.Dropped())
	}
}

func TestScheduleValidates(t *testing.T) {
	engine := NewEngine(1)
	if _, err := engine.Schedule(Event{ID: "bad"}); err != ErrInvalidTriggerTime {
		t.Fatalf("expected ErrInvalidTriggerTime, got %v", err)
	}
	if _, err := engine.Schedule(Event{TriggerAt: time.Now()}); err != ErrMissingID {
		t.Fatalf("expected ErrMissingID, got %v", err)
	}
	engine.Stop()
	if _, err := engine.Schedule(Event{ID: "late", TriggerAt: time.Now()}); err != ErrStopped {
		t.Fatalf("expected ErrStopped, got %v", err)
	}
	if _, ok := <-engine.C(); ok {
		t.Fatal("expected closed channel after stop")
	}
}

func waitEvent(t *testing.T, ch <-chan Event, timeout time.Duration) Event {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(timeout):
		t.Fatalf("timed out waiting for event")
		return Event{}
	}
}

func expectNoEvent(t *testing.T, ch <-chan Event, wait time.Duration) {
	t.Helper()
	select {
	case ev := <-ch:
		t.Fatalf("unexpected event: %+v", ev)
	case <-time.After(wait):
	}
}
