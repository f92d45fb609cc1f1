package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Printer is what the core packages log through. A nil *Logger satisfies it
// and discards everything.
type Printer interface {
	Printf(format string, args ...any)
}

// Logger appends timestamped lines to a file. The TUI owns the terminal, so
// this is the only place diagnostics go.
type Logger struct {
	mu  sync.Mutex
	out io.Writer
	c   io.Closer
	now func() time.Time
}

// New creates (or appends to) the log file at path.
func New(path string) (*Logger, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("logging: ensure log dir: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("logging: open log file: %w", err)
	}
	return &Logger{out: f, c: f, now: time.Now}, nil
}

// NewWriter logs to w; used by the plain-text subcommands and tests.
func NewWriter(w io.Writer) *Logger {
	return &Logger{out: w, now: time.Now}
}

func (l *Logger) Close() error {
	if l == nil || l.c == nil {
		return nil
	}
	return l.c.Close()
}

// Printf writes a single timestamped line.
func (l *Logger) Printf(format string, args ...any) {
	if l == nil || l.out == nil {
		return
	}
	line := fmt.Sprintf(format, args...)
	line = strings.TrimRight(line, "\n")
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.out, "[%s] %s\n", l.now().Format(time.RFC3339), line)
}

// With prefixes every line with a component name.
func (l *Logger) With(component string) Printer {
	return prefixed{l: l, prefix: component + ": "}
}

type prefixed struct {
	l      *Logger
	prefix string
}

func (p prefixed) Printf(format string, args ...any) {
	p.l.Printf(p.prefix+format, args...)
}

// Discard is a Printer that drops everything.
var Discard Printer = (*Logger)(nil)
