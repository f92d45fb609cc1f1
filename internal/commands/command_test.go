package commands

import (
	"errors"
	"testing"
)

func TestParseSupportedCommands(t *testing.T) {
	cases := []struct {
		in       string
		typeWant Type
	}{
		{"/add buy milk", TypeAdd},
		{"done 1", TypeDone},
		{"rm 2", TypeRemove},
		{"alarm 1 23:59", TypeAlarm},
		{"goto 2024-06-15", TypeGoto},
		{"GOTO today", TypeGoto},
		{"birthdate 1990-01-01", TypeBirthdate},
		{"expectancy 90", TypeExpectancy},
		{"/opacity 0.75", TypeOpacity},
	}

	for _, tc := range cases {
		cmd, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("parse %q failed: %v", tc.in, err)
		}
		if cmd.Type != tc.typeWant {
			t.Fatalf("parse %q type = %s, want %s", tc.in, cmd.Type, tc.typeWant)
		}
	}
}

func TestParseArguments(t *testing.T) {
	cmd, err := Parse("/add   call   the bank ")
	if err != nil || cmd.Add.Text != "call the bank" {
		t.Fatalf("add: cmd=%+v err=%v", cmd.Add, err)
	}
	cmd, err = Parse("alarm 3 9:05")
	if err != nil || cmd.Alarm.Index != 3 || cmd.Alarm.Time != "09:05" {
		t.Fatalf("alarm: cmd=%+v err=%v", cmd.Alarm, err)
	}
	cmd, err = Parse("goto today")
	if err != nil || !cmd.Goto.Today || cmd.Goto.Day != "" {
		t.Fatalf("goto today: cmd=%+v err=%v", cmd.Goto, err)
	}
	cmd, err = Parse("birthdate 1985-03-04")
	if err != nil || cmd.Birthdate.Date.Format("2006-01-02") != "1985-03-04" {
		t.Fatalf("birthdate: cmd=%+v err=%v", cmd.Birthdate, err)
	}
	cmd, err = Parse("opacity 0.5")
	if err != nil || cmd.Opacity.Value != 0.5 {
		t.Fatalf("opacity: cmd=%+v err=%v", cmd.Opacity, err)
	}
}

func TestParseInvalidArguments(t *testing.T) {
	inputs := []string{
		"add   ",
		"done",
		"done 0",
		"rm x",
		"alarm 1",
		"alarm 1 24:30",
		"goto tomorrow",
		"birthdate 01/01/1990",
		"expectancy eighty",
		"opacity high",
	}
	for _, in := range inputs {
		_, err := Parse(in)
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != ErrCodeInvalidArgument {
			t.Fatalf("parse %q: expected invalid argument, got %v", in, err)
		}
	}
}

func TestParseEmptyAndUnknown(t *testing.T) {
	var ce *CommandError
	if _, err := Parse("  / "); !errors.As(err, &ce) || ce.Code != ErrCodeEmptyInput {
		t.Fatalf("expected empty input error, got %v", err)
	}
	if _, err := Parse("/unknown do x"); !errors.As(err, &ce) || ce.Code != ErrCodeUnknownCommand {
		t.Fatalf("expected unknown command error, got %v", err)
	}
}

func TestExecuteDispatch(t *testing.T) {
	cmd, err := Parse("/add write docs")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	called := false
	res, err := Execute(cmd, Handlers{
		Add: func(a AddArgs) (Result, error) {
			called = true
			if a.Text != "write docs" {
				t.Fatalf("unexpected text: %q", a.Text)
			}
			return Result{Message: "ok"}, nil
		},
	})
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !called || res.Message != "ok" {
		t.Fatalf("dispatch failed, called=%v res=%+v", called, res)
	}
}

func TestExecuteRoutesDoneAndRemoveSeparately(t *testing.T) {
	var got []string
	handlers := Handlers{
		Done:   func(a ItemArgs) (Result, error) { got = append(got, "done"); return Result{}, nil },
		Remove: func(a ItemArgs) (Result, error) { got = append(got, "rm"); return Result{}, nil },
	}
	for _, in := range []string{"done 1", "rm 1"} {
		cmd, err := Parse(in)
		if err != nil {
			t.Fatalf("parse %q: %v", in, err)
		}
		if _, err := Execute(cmd, handlers); err != nil {
			t.Fatalf("execute %q: %v", in, err)
		}
	}
	if len(got) != 2 || got[0] != "done" || got[1] != "rm" {
		t.Fatalf("unexpected routing: %v", got)
	}
}

func TestExecuteMissingHandler(t *testing.T) {
	cmd, err := Parse("expectancy 90")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	_, err = Execute(cmd, Handlers{})
	if err == nil {
		t.Fatal("expected error")
	}
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeHandlerMissing {
		t.Fatalf("expected missing handler error, got %v", err)
	}
}
