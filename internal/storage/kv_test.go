package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

type todoRecord struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	Date      string `json:"date"`
}

func backends(t *testing.T) map[string]KV {
	t.Helper()
	dir := t.TempDir()
	sqliteKV, err := Open(BackendSQLite, filepath.Join(dir, "nested", "lifegrid.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	fileKV, err := Open(BackendJSON, filepath.Join(dir, "nested", "lifegrid.json"))
	if err != nil {
		t.Fatalf("open json: %v", err)
	}
	memKV, err := Open(BackendMemory, "")
	if err != nil {
		t.Fatalf("open memory: %v", err)
	}
	out := map[string]KV{"sqlite": sqliteKV, "json": fileKV, "memory": memKV}
	t.Cleanup(func() {
		for _, kv := range out {
			_ = kv.Close()
		}
	})
	return out
}

func TestKVGetSetSemantics(t *testing.T) {
	ctx := context.Background()
	for name, kv := range backends(t) {
		var opacity float64
		ok, err := kv.Get(ctx, KeyOpacity, &opacity)
		if err != nil || ok {
			t.Fatalf("%s: expected absent key, ok=%v err=%v", name, ok, err)
		}

		if err := kv.Set(ctx, KeyOpacity, 0.75); err != nil {
			t.Fatalf("%s: set opacity: %v", name, err)
		}
		if err := kv.Set(ctx, KeyOpacity, 0.5); err != nil {
			t.Fatalf("%s: overwrite opacity: %v", name, err)
		}
		ok, err = kv.Get(ctx, KeyOpacity, &opacity)
		if err != nil || !ok || opacity != 0.5 {
			t.Fatalf("%s: get opacity ok=%v v=%v err=%v", name, ok, opacity, err)
		}

		todos := []todoRecord{{ID: "1", Text: "Buy milk", Date: "2024-06-15"}, {ID: "2", Text: "Walk", Completed: true, Date: "2024-06-16"}}
		if err := kv.Set(ctx, KeyTodos, todos); err != nil {
			t.Fatalf("%s: set todos: %v", name, err)
		}
		var loaded []todoRecord
		if ok, err := kv.Get(ctx, KeyTodos, &loaded); err != nil || !ok {
			t.Fatalf("%s: get todos ok=%v err=%v", name, ok, err)
		}
		if !reflect.DeepEqual(loaded, todos) {
			t.Fatalf("%s: todos mismatch: %#v", name, loaded)
		}

		keys, err := kv.Keys(ctx)
		if err != nil {
			t.Fatalf("%s: keys: %v", name, err)
		}
		if !reflect.DeepEqual(keys, []string{KeyOpacity, KeyTodos}) {
			t.Fatalf("%s: unexpected keys %v", name, keys)
		}

		if err := kv.Delete(ctx, KeyOpacity); err != nil {
			t.Fatalf("%s: delete: %v", name, err)
		}
		if err := kv.Delete(ctx, KeyOpacity); !errors.Is(err, ErrNotFound) {
			t.Fatalf("%s: expected ErrNotFound on second delete, got %v", name, err)
		}
	}
}

func TestFileKVSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.json")
	kv, err := OpenFileKV(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := kv.Set(ctx, KeyBirthdate, "1985-03-02"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("expected temp file to be renamed away, stat err=%v", err)
	}

	reopened, err := OpenFileKV(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	var birth string
	if ok, err := reopened.Get(ctx, KeyBirthdate, &birth); err != nil || !ok || birth != "1985-03-02" {
		t.Fatalf("reopened get ok=%v v=%q err=%v", ok, birth, err)
	}
}

func TestFileKVRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := OpenFileKV(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestSQLiteKVTracksUpdatedAt(t *testing.T) {
	ctx := context.Background()
	kv, err := OpenSQLite(filepath.Join(t.TempDir(), "lifegrid.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer kv.Close()
	fixed := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	kv.now = func() time.Time { return fixed }

	if err := kv.Set(ctx, KeyLifeExpectancy, 80); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := kv.UpdatedAt(ctx, KeyLifeExpectancy)
	if err != nil {
		t.Fatalf("updated at: %v", err)
	}
	if !got.Equal(fixed) {
		t.Fatalf("updated_at = %s, want %s", got, fixed)
	}
	if _, err := kv.UpdatedAt(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestOpenUnknownBackend(t *testing.T) {
	if _, err := Open("redis", "x"); !errors.Is(err, ErrUnknownBackend) {
		t.Fatalf("expected ErrUnknownBackend, got %v", err)
	}
}
