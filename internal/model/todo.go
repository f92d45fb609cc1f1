package model

import (
	"errors"
	"fmt"
	"strings"
)

var ErrEmptyText = errors.New("model: todo text is required")

type Alarm struct {
	Time    string `json:"time" yaml:"time"`
	Enabled bool   `json:"enabled" yaml:"enabled"`
}

type Todo struct {
	ID        string `json:"id" yaml:"id"`
	Text      string `json:"text" yaml:"text"`
	Completed bool   `json:"completed" yaml:"completed"`
	Date      DayKey `json:"date" yaml:"date"`
	// Alarm is nil when no alarm was ever configured.
	Alarm *Alarm `json:"alarm,omitempty" yaml:"alarm,omitempty"`
}

func (t Todo) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: todo id is required")
	}
	if strings.TrimSpace(t.Text) == "" {
		return ErrEmptyText
	}
	if !t.Date.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidDayKey, t.Date)
	}
	if t.Alarm != nil {
		if _, err := ParseAlarmTime(t.Alarm.Time); err != nil {
			return err
		}
	}
	return nil
}

// HasActiveAlarm reports whether the todo carries an enabled alarm.
func (t Todo) HasActiveAlarm() bool {
	return t.Alarm != nil && t.Alarm.Enabled
}

// Clone returns a copy that shares no memory with t.
func (t Todo) Clone() Todo {
	out := t
	if t.Alarm != nil {
		a := *t.Alarm
		out.Alarm = &a
	}
	return out
}
