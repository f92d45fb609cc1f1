// Package timeline computes the weeks-of-life grid and the per-day colouring
// used to render it. Everything here is pure: results depend only on the
// arguments.
package timeline

import (
	"math"
	"time"
)

const (
	WeeksPerYear = 52
	DaysPerWeek  = 7
)

// Week holds seven consecutive local-midnight days.
type Week [DaysPerWeek]time.Time

// Age counts completed birthdays between birthdate and now.
func Age(birthdate, now time.Time) int {
	age := now.Year() - birthdate.Year()
	if now.Month() < birthdate.Month() || (now.Month() == birthdate.Month() && now.Day() < birthdate.Day()) {
		age--
	}
	return age
}

// LifeProgress is round(age/lifeExpectancy*100) clamped to [0, 100].
func LifeProgress(birthdate time.Time, lifeExpectancy int, now time.Time) int {
	if lifeExpectancy <= 0 {
		return 100
	}
	age := Age(birthdate, now)
	if age <= 0 {
		return 0
	}
	pct := int(math.Round(float64(age) / float64(lifeExpectancy) * 100))
	if pct > 100 {
		return 100
	}
	return pct
}

// Midnight truncates t to the start of its local calendar day.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns midnight of the first day of the week containing t.
func StartOfWeek(t time.Time, weekStart time.Weekday) time.Time {
	day := Midnight(t)
	offset := (int(day.Weekday()) - int(weekStart) + DaysPerWeek) % DaysPerWeek
	return day.AddDate(0, 0, -offset)
}

// BuildGrid lays out lifeExpectancy*52 weeks starting on the Sunday of the
// week that contains birthdate. Years are treated as exactly 52 weeks.
func BuildGrid(birthdate time.Time, lifeExpectancy int) []Week {
	return BuildGridFrom(birthdate, lifeExpectancy, time.Sunday)
}

func BuildGridFrom(birthdate time.Time, lifeExpectancy int, weekStart time.Weekday) []Week {
	if lifeExpectancy <= 0 {
		return []Week{}
	}
	start := StartOfWeek(birthdate, weekStart)
	total := lifeExpectancy * WeeksPerYear
	grid := make([]Week, total)
	for w := 0; w < total; w++ {
		for d := 0; d < DaysPerWeek; d++ {
			grid[w][d] = start.AddDate(0, 0, w*DaysPerWeek+d)
		}
	}
	return grid
}

// DaysBetween counts calendar days from a to b, ignoring clock time and DST.
func DaysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	ua := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	ub := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}

// Locate finds the week and weekday slot of day inside grid.
func Locate(grid []Week, day time.Time) (week int, slot int, ok bool) {
	if len(grid) == 0 {
		return 0, 0, false
	}
	n := DaysBetween(grid[0][0], day)
	if n < 0 || n >= len(grid)*DaysPerWeek {
		return 0, 0, false
	}
	return n / DaysPerWeek, n % DaysPerWeek, true
}
