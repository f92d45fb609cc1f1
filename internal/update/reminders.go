package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/lifegrid/internal/scheduler"
)

func waitForAlarmCmd(ch <-chan scheduler.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return AlarmFiredMsg{Event: ev}
	}
}

func (m Model) onAlarmFired(ev scheduler.Event) Model {
	text := fmt.Sprintf("%s: %s", ev.Title, ev.Body)
	m.Status = StatusBar{Text: text, IsError: false}
	m.notify(ev.Title, ev.Body, "alarm")
	m.log.Printf("alarm shown: %s (%s)", ev.ID, ev.DayKey)
	return m
}
