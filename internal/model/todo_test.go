package model

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestTodoValidateSuccess(t *testing.T) {
	todo := Todo{
		ID:    "1718445600000",
		Text:  "Buy milk",
		Date:  "2024-06-15",
		Alarm: &Alarm{Time: "09:30", Enabled: true},
	}
	if err := todo.Validate(); err != nil {
		t.Fatalf("expected valid todo, got error: %v", err)
	}
}

func TestTodoValidateRejectsBlankText(t *testing.T) {
	todo := Todo{ID: "1", Text: "   ", Date: "2024-06-15"}
	if err := todo.Validate(); !errors.Is(err, ErrEmptyText) {
		t.Fatalf("expected ErrEmptyText, got %v", err)
	}
}

func TestTodoValidateRejectsBadDateAndAlarm(t *testing.T) {
	todo := Todo{ID: "1", Text: "x", Date: "2024-13-01"}
	if err := todo.Validate(); !errors.Is(err, ErrInvalidDayKey) {
		t.Fatalf("expected ErrInvalidDayKey, got %v", err)
	}

	todo.Date = "2024-06-15"
	todo.Alarm = &Alarm{Time: "25:00", Enabled: true}
	if err := todo.Validate(); !errors.Is(err, ErrInvalidAlarmTime) {
		t.Fatalf("expected ErrInvalidAlarmTime, got %v", err)
	}
}

func TestTodoJSONOmitsAbsentAlarm(t *testing.T) {
	raw, err := json.Marshal(Todo{ID: "1", Text: "x", Date: "2024-06-15"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(raw), "alarm") {
		t.Fatalf("expected no alarm field, got %s", raw)
	}

	var decoded Todo
	if err := json.Unmarshal([]byte(`{"id":"2","text":"y","completed":true,"date":"2024-06-16","alarm":{"time":"23:59","enabled":true}}`), &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !decoded.HasActiveAlarm() || decoded.Alarm.Time != "23:59" || !decoded.Completed {
		t.Fatalf("unexpected decoded todo: %+v", decoded)
	}
}

func TestTodoCloneDetachesAlarm(t *testing.T) {
	orig := Todo{ID: "1", Text: "x", Date: "2024-06-15", Alarm: &Alarm{Time: "08:00", Enabled: true}}
	cp := orig.Clone()
	cp.Alarm.Time = "09:00"
	if orig.Alarm.Time != "08:00" {
		t.Fatalf("clone shares alarm with original: %+v", orig.Alarm)
	}
}
