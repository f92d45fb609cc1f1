// Package notify delivers alarm notifications to the desktop or to in-app
// listeners.
package notify

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// Sink shows a notification. Delivery is best effort.
type Sink interface {
	Notify(title, body string) error
}

type Noop struct{}

func (Noop) Notify(string, string) error { return nil }

// Func adapts a plain function to Sink.
type Func func(title, body string) error

func (f Func) Notify(title, body string) error { return f(title, body) }

// Exec shells out to the platform notifier.
type Exec struct {
	// GOOS overrides runtime.GOOS; empty means the running platform.
	GOOS string
	run  func(name string, args ...string) error
}

func (e Exec) Notify(title, body string) error {
	goos := e.GOOS
	if goos == "" {
		goos = runtime.GOOS
	}
	run := e.run
	if run == nil {
		run = func(name string, args ...string) error { return exec.Command(name, args...).Run() }
	}
	switch goos {
	case "linux":
		return run("notify-send", title, body)
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(body), escapeAppleScript(title))
		return run("osascript", "-e", script)
	default:
		return nil
	}
}

// Multi fans out to every sink and joins their errors.
type Multi []Sink

func (m Multi) Notify(title, body string) error {
	var errs []error
	for _, s := range m {
		if s == nil {
			continue
		}
		if err := s.Notify(title, body); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func escapeAppleScript(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}
