package views

import (
	"strings"
	"testing"

	"github.com/sandeepkv93/lifegrid/internal/timeline"
)

func TestRenderGridDrawsOneRowPerWeekday(t *testing.T) {
	year := GridYear{Label: "age 0 (1990)", Weeks: 3}
	year.Cells[2][1] = GridCell{Cursor: true}
	out := RenderGrid(GridData{Years: []GridYear{year}, Selected: "1990-01-09"})

	lines := strings.Split(out, "\n")
	if lines[0] != "age 0 (1990)" {
		t.Fatalf("expected year label first, got %q", lines[0])
	}
	rows := lines[1 : 1+timeline.DaysPerWeek]
	for i, row := range rows {
		if n := strings.Count(row, cellGlyph) + strings.Count(row, cursorGlyph); n != 3 {
			t.Fatalf("row %d: expected 3 cells, got %d in %q", i, n, row)
		}
	}
	if !strings.Contains(rows[2], cursorGlyph) || strings.Contains(rows[0], cursorGlyph) {
		t.Fatalf("cursor drawn in the wrong row: %q", strings.Join(rows, "\n"))
	}
	if !strings.Contains(out, "selected: 1990-01-09") {
		t.Fatalf("expected selected day in output: %q", out)
	}
}

func TestRenderDayPanelShowsMarksAndAlarms(t *testing.T) {
	out := RenderDayPanel(DayPanelData{
		Title:   "Saturday, June 15, 2024",
		IsToday: true,
		Items: []DayItemData{
			{Text: "Buy milk", Completed: true},
			{Text: "Call mom", AlarmTime: "18:30", Armed: true},
		},
		Cursor: 1,
	})
	for _, want := range []string{"Saturday, June 15, 2024", "1. [x] Buy milk", "> 2. [ ] Call mom", "18:30", "[A]alarm"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in %q", want, out)
		}
	}
}

func TestRenderDayPanelWrapsLongText(t *testing.T) {
	long := strings.Repeat("word ", 30)
	out := RenderDayPanel(DayPanelData{Title: "t", Items: []DayItemData{{Text: long}}, Width: 30})
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "word") && len(line) > 40 {
			t.Fatalf("line not wrapped: %q", line)
		}
	}
}

func TestRenderDayPanelEmptyAndPastDay(t *testing.T) {
	out := RenderDayPanel(DayPanelData{Title: "Monday"})
	if !strings.Contains(out, "(no todos for this day)") {
		t.Fatalf("expected empty marker: %q", out)
	}
	if strings.Contains(out, "[A]alarm") {
		t.Fatalf("alarm action offered on a day that is not today: %q", out)
	}
}

func TestRenderSettingsPanel(t *testing.T) {
	out := RenderSettingsPanel(SettingsPanelData{Birthdate: "1990-01-01", LifeExpectancy: 80, Opacity: 0.9, Cursor: 2})
	for _, want := range []string{"birthdate: 1990-01-01", "life expectancy: 80 years", "> opacity: 90%"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in %q", want, out)
		}
	}
}

func TestRenderAppIncludesStatusAndFooter(t *testing.T) {
	out := RenderApp(AppData{Header: "lifegrid", MainPane: "grid", StatusLine: "status: ok", Footer: "keys"})
	for _, want := range []string{"lifegrid", "grid", "status: ok", "keys"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in %q", want, out)
		}
	}
}
