package todo

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/sandeepkv93/lifegrid/internal/alarm"
	"github.com/sandeepkv93/lifegrid/internal/model"
	"github.com/sandeepkv93/lifegrid/internal/scheduler"
	"github.com/sandeepkv93/lifegrid/internal/storage"
)

type heldSink struct {
	entered chan string
	release chan struct{}

	mu     sync.Mutex
	bodies []string
}

func (h *heldSink) Notify(_, body string) error {
	h.entered <- body
	<-h.release
	h.mu.Lock()
	defer h.mu.Unlock()
	h.bodies = append(h.bodies, body)
	return nil
}

func TestRemoveStopsAlarmWaitingForDelivery(t *testing.T) {
	sink := &heldSink{entered: make(chan string, 4), release: make(chan struct{})}
	engine := scheduler.NewEngine(8)
	alarms := alarm.New(engine, sink, nil)
	alarms.Start()
	t.Cleanup(alarms.Stop)
	t.Cleanup(func() {
		select {
		case <-sink.release:
		default:
			close(sink.release)
		}
	})

	ctx := context.Background()
	store := New(storage.NewMemoryKV(), alarms, nil, time.Now)
	today := model.DayKeyOf(time.Now())
	first, _ := store.Add(ctx, today, "first")
	second, _ := store.Add(ctx, today, "second")

	now := time.Now()
	if !alarms.ArmAt(first, now.Add(10*time.Millisecond), now) || !alarms.ArmAt(second, now.Add(30*time.Millisecond), now) {
		t.Fatal("arm failed")
	}
	select {
	case <-sink.entered:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for first delivery")
	}
	deadline := time.Now().Add(time.Second)
	for engine.Pending(second.ID) {
		if time.Now().After(deadline) {
			t.Fatal("second alarm never came due")
		}
		time.Sleep(5 * time.Millisecond)
	}

	if !store.Remove(ctx, second.ID) {
		t.Fatal("remove failed")
	}
	if got := alarms.State(second.ID); got != alarm.StateCancelled {
		t.Fatalf("expected cancelled after remove, got %s", got)
	}
	close(sink.release)

	select {
	case ev := <-alarms.Fired():
		if ev.ID != first.ID {
			t.Fatalf("expected first to fire, got %s", ev.ID)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for first alarm")
	}
	select {
	case ev := <-alarms.Fired():
		t.Fatalf("removed todo's alarm fired: %+v", ev)
	case <-time.After(80 * time.Millisecond):
	}
	sink.mu.Lock()
	defer sink.mu.Unlock()
	if len(sink.bodies) != 1 || sink.bodies[0] != "first" {
		t.Fatalf("unexpected deliveries: %v", sink.bodies)
	}
}
