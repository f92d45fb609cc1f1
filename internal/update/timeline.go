package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/lifegrid/internal/model"
	"github.com/sandeepkv93/lifegrid/internal/timeline"
	"github.com/sandeepkv93/lifegrid/internal/views"
)

const (
	defaultVisibleYears = 3
	maxVisibleYears     = 10
	// Rows per year block: a label plus one row per weekday, and a gap.
	yearBlockHeight = timeline.DaysPerWeek + 2
	chromeHeight    = 14
)

func (m Model) handleTimelineKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "h", "left":
		m.moveCursor(-timeline.DaysPerWeek)
	case "l", "right":
		m.moveCursor(timeline.DaysPerWeek)
	case "k", "up":
		m.moveCursor(-1)
	case "j", "down":
		m.moveCursor(1)
	case "t":
		m.Cursor = m.today()
		m.clampCursor()
		m.Status = StatusBar{Text: fmt.Sprintf("jumped to %s", model.DayKeyOf(m.Cursor)), IsError: false}
	case "enter":
		m = m.openDay()
	}
	return m
}

func (m *Model) moveCursor(days int) {
	m.Cursor = m.Cursor.AddDate(0, 0, days)
	m.clampCursor()
}

// openDay switches to the day view for the cursor. Opening today re-arms
// that day's alarms.
func (m Model) openDay() Model {
	m.CurrentView = ViewDay
	m.Day.Cursor = 0
	if !m.cursorIsToday() || m.alarms == nil {
		return m
	}
	key := model.DayKeyOf(m.Cursor)
	if n := m.alarms.ArmDay(m.todos.ListForDay(key), m.now()); n > 0 {
		m.Status = StatusBar{Text: fmt.Sprintf("armed %d alarm(s) for today", n), IsError: false}
	}
	return m
}

func (m Model) visibleYears() int {
	if m.height <= 0 {
		return defaultVisibleYears
	}
	n := (m.height - chromeHeight) / yearBlockHeight
	if n < 1 {
		return 1
	}
	if n > maxVisibleYears {
		return maxVisibleYears
	}
	return n
}

// yearWindow returns the first and one-past-last year blocks to draw so the
// cursor's year stays visible.
func (m Model) yearWindow() (int, int) {
	total := len(m.grid) / timeline.WeeksPerYear
	if len(m.grid)%timeline.WeeksPerYear != 0 {
		total++
	}
	n := m.visibleYears()
	if n > total {
		n = total
	}
	week, _, ok := timeline.Locate(m.grid, m.Cursor)
	if !ok {
		return 0, n
	}
	start := week/timeline.WeeksPerYear - (n-1)/2
	if start < 0 {
		start = 0
	}
	if start+n > total {
		start = total - n
	}
	return start, start + n
}

func (m Model) buildGridData() views.GridData {
	s := m.prefs.Get()
	today := m.today()
	idx := timeline.NewIndex(m.todos.All())
	from, to := m.yearWindow()

	years := make([]views.GridYear, 0, to-from)
	for y := from; y < to; y++ {
		first := y * timeline.WeeksPerYear
		if first >= len(m.grid) {
			break
		}
		block := views.GridYear{
			Label: fmt.Sprintf("age %d (%d)", y, m.grid[first][0].Year()),
		}
		for w := 0; w < timeline.WeeksPerYear && first+w < len(m.grid); w++ {
			week := m.grid[first+w]
			for slot, day := range week {
				block.Cells[slot][w] = views.GridCell{
					Tier:   timeline.TierFor(day, today, idx),
					Cursor: timeline.DaysBetween(day, m.Cursor) == 0,
				}
			}
			block.Weeks = w + 1
		}
		years = append(years, block)
	}

	key := model.DayKeyOf(m.Cursor)
	selected := fmt.Sprintf("%s (%s)", key, m.Cursor.Format("Monday"))
	if c := idx[key]; c.Total > 0 {
		selected += fmt.Sprintf(" %d/%d done", c.Completed, c.Total)
	}
	return views.GridData{
		Title:    "timeline: [h/l]week [j/k]day [t]today [enter]open day",
		Years:    years,
		Dim:      s.Opacity < 0.5,
		Selected: selected,
	}
}

func (m Model) renderTimelineView() string {
	return views.RenderGrid(m.buildGridData())
}
