package timeline

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestAgeCountsCompletedBirthdays(t *testing.T) {
	cases := []struct {
		birth time.Time
		now   time.Time
		want  int
	}{
		{date(1990, 1, 1), time.Date(2024, 6, 15, 12, 0, 0, 0, time.Local), 34},
		{date(1990, 7, 1), date(2024, 6, 15), 33},
		{date(1990, 6, 15), date(2024, 6, 15), 34},
		{date(1990, 6, 16), date(2024, 6, 15), 33},
		{date(2024, 6, 15), date(2024, 6, 15), 0},
	}
	for _, tc := range cases {
		if got := Age(tc.birth, tc.now); got != tc.want {
			t.Fatalf("Age(%s, %s) = %d, want %d", tc.birth.Format("2006-01-02"), tc.now.Format("2006-01-02"), got, tc.want)
		}
	}
}

func TestLifeProgressRoundsAndClamps(t *testing.T) {
	birth := date(1990, 1, 1)
	if got := LifeProgress(birth, 80, date(2024, 6, 15)); got != 43 {
		t.Fatalf("expected 43%% (34/80 rounded), got %d", got)
	}
	if got := LifeProgress(date(1900, 1, 1), 80, date(2024, 6, 15)); got != 100 {
		t.Fatalf("expected clamp to 100, got %d", got)
	}
	if got := LifeProgress(date(2030, 1, 1), 80, date(2024, 6, 15)); got != 0 {
		t.Fatalf("expected 0 for unborn, got %d", got)
	}
}

func TestLifeProgressMonotonic(t *testing.T) {
	birth := date(1970, 3, 10)
	prev := -1
	for now := date(1970, 3, 10); now.Year() < 2100; now = now.AddDate(0, 1, 0) {
		got := LifeProgress(birth, 90, now)
		if got < prev {
			t.Fatalf("progress decreased at %s: %d < %d", now.Format("2006-01-02"), got, prev)
		}
		if got > 100 {
			t.Fatalf("progress above 100 at %s: %d", now.Format("2006-01-02"), got)
		}
		prev = got
	}
}

func TestBuildGridShape(t *testing.T) {
	for _, years := range []int{50, 80, 120} {
		birth := date(1990, 1, 1)
		grid := BuildGrid(birth, years)
		if len(grid) != years*WeeksPerYear {
			t.Fatalf("years=%d: expected %d weeks, got %d", years, years*WeeksPerYear, len(grid))
		}
		first := grid[0][0]
		if first.After(birth) || DaysBetween(first, birth) > 6 {
			t.Fatalf("years=%d: first day %s not within 6 days before birth", years, first.Format("2006-01-02"))
		}
		for w := range grid {
			for d := 1; d < DaysPerWeek; d++ {
				if DaysBetween(grid[w][d-1], grid[w][d]) != 1 {
					t.Fatalf("week %d not consecutive at slot %d", w, d)
				}
			}
			if w > 0 && DaysBetween(grid[w-1][DaysPerWeek-1], grid[w][0]) != 1 {
				t.Fatalf("gap between week %d and %d", w-1, w)
			}
		}
	}
}

func TestBuildGridStartsOnSunday(t *testing.T) {
	// 1990-01-01 was a Monday.
	grid := BuildGrid(date(1990, 1, 1), 50)
	if got := grid[0][0].Format("2006-01-02"); got != "1989-12-31" {
		t.Fatalf("unexpected grid start: %s", got)
	}
	if grid[0][0].Weekday() != time.Sunday {
		t.Fatalf("grid does not start on Sunday: %s", grid[0][0].Weekday())
	}
	monday := BuildGridFrom(date(1990, 1, 3), 50, time.Monday)
	if got := monday[0][0].Format("2006-01-02"); got != "1990-01-01" {
		t.Fatalf("unexpected monday-start grid: %s", got)
	}
}

func TestLocate(t *testing.T) {
	grid := BuildGrid(date(1990, 1, 1), 50)
	week, slot, ok := Locate(grid, date(1990, 1, 10))
	if !ok || week != 1 || slot != 3 {
		t.Fatalf("Locate = (%d, %d, %v), want (1, 3, true)", week, slot, ok)
	}
	if _, _, ok := Locate(grid, date(1980, 1, 1)); ok {
		t.Fatal("expected day before grid to be out of range")
	}
}
