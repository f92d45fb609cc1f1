package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrNotFound       = errors.New("storage: not found")
	ErrUnknownBackend = errors.New("storage: unknown backend")
)

// Keys persisted by lifegrid.
const (
	KeyBirthdate      = "birthdate"
	KeyTodos          = "todos"
	KeyOpacity        = "opacity"
	KeyLifeExpectancy = "lifeExpectancy"
)

// KV is a string-keyed store of JSON values.
type KV interface {
	// Get decodes the value stored under key into dst. It reports false,
	// with dst untouched, when the key is absent.
	Get(ctx context.Context, key string, dst any) (bool, error)
	// Set JSON-encodes value and stores it under key, replacing any prior value.
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
	// Keys lists stored keys in ascending order.
	Keys(ctx context.Context) ([]string, error)
	Close() error
}

const (
	BackendSQLite = "sqlite"
	BackendJSON   = "json"
	BackendMemory = "memory"
)

// Open returns the KV for backend, creating the parent directory of path
// when the backend lives on disk.
func Open(backend, path string) (KV, error) {
	backend = strings.ToLower(strings.TrimSpace(backend))
	if backend == BackendMemory {
		return NewMemoryKV(), nil
	}
	if backend != BackendSQLite && backend != BackendJSON {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("storage: data path is required")
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}
	if backend == BackendJSON {
		return OpenFileKV(path)
	}
	return OpenSQLite(path)
}
