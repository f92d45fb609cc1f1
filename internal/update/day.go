package update

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/lifegrid/internal/alarm"
	"github.com/sandeepkv93/lifegrid/internal/model"
	"github.com/sandeepkv93/lifegrid/internal/timeline"
	"github.com/sandeepkv93/lifegrid/internal/views"
)

const dayTitleLayout = "Monday, January 2, 2006"

func (m Model) dayTodos() []model.Todo {
	return m.todos.ListForDay(model.DayKeyOf(m.Cursor))
}

func (m Model) selectedTodo() (model.Todo, bool) {
	items := m.dayTodos()
	if m.Day.Cursor < 0 || m.Day.Cursor >= len(items) {
		return model.Todo{}, false
	}
	return items[m.Day.Cursor], true
}

func (m Model) handleDayKey(msg tea.KeyMsg) Model {
	if m.inputActive() {
		return m.handleDayInputKey(msg)
	}
	switch msg.String() {
	case "esc":
		m.CurrentView = ViewTimeline
	case "up", "k":
		if m.Day.Cursor > 0 {
			m.Day.Cursor--
		}
	case "down", "j":
		if m.Day.Cursor < len(m.dayTodos())-1 {
			m.Day.Cursor++
		}
	case "a":
		m.Input = InputAdd
		m.todoInput.SetValue("")
		m.todoInput.Focus()
	case " ", "space":
		if t, ok := m.selectedTodo(); ok {
			m.todos.Toggle(context.Background(), t.ID)
			m.afterStoreWrite(fmt.Sprintf("toggled: %s", t.Text))
		}
	case "x", "delete":
		if t, ok := m.selectedTodo(); ok {
			m.todos.Remove(context.Background(), t.ID)
			if m.Day.Cursor >= len(m.dayTodos()) && m.Day.Cursor > 0 {
				m.Day.Cursor--
			}
			m.afterStoreWrite(fmt.Sprintf("deleted: %s", t.Text))
		}
	case "A":
		t, ok := m.selectedTodo()
		if !ok {
			return m
		}
		if !m.cursorIsToday() {
			m.Status = StatusBar{Text: "alarms can only be set for today", IsError: true}
			return m
		}
		m.Input = InputAlarm
		m.alarmInput.SetValue("")
		if t.Alarm != nil {
			m.alarmInput.SetValue(t.Alarm.Time)
		}
		m.alarmInput.Focus()
	}
	return m
}

func (m Model) handleDayInputKey(msg tea.KeyMsg) Model {
	input := &m.todoInput
	if m.Input == InputAlarm {
		input = &m.alarmInput
	}
	switch msg.String() {
	case "esc":
		m.closeInput()
		return m
	case "enter":
		value := strings.TrimSpace(input.Value())
		mode := m.Input
		m.closeInput()
		if mode == InputAlarm {
			return m.commitAlarm(value)
		}
		return m.commitAdd(value)
	}
	if msg.Type == tea.KeyRunes {
		input.SetValue(input.Value() + string(msg.Runes))
		return m
	}
	*input, _ = input.Update(msg)
	return m
}

func (m *Model) closeInput() {
	m.Input = InputNone
	m.todoInput.Blur()
	m.alarmInput.Blur()
	m.birthInput.Blur()
}

func (m Model) commitAdd(text string) Model {
	t, ok := m.todos.Add(context.Background(), model.DayKeyOf(m.Cursor), text)
	if !ok {
		m.Status = StatusBar{Text: "todo text is required", IsError: true}
		return m
	}
	m.Day.Cursor = len(m.dayTodos()) - 1
	m.afterStoreWrite(fmt.Sprintf("added: %s", t.Text))
	return m
}

func (m Model) commitAlarm(clock string) Model {
	if _, err := model.ParseAlarmTime(clock); err != nil {
		m.Status = StatusBar{Text: fmt.Sprintf("invalid alarm time %q, use HH:MM", clock), IsError: true}
		return m
	}
	t, ok := m.selectedTodo()
	if !ok || !m.todos.SetAlarm(context.Background(), t.ID, clock) {
		m.Status = StatusBar{Text: "todo no longer exists", IsError: true}
		return m
	}
	updated, _ := m.todos.Get(t.ID)
	msg := fmt.Sprintf("alarm set for %s at %s", t.Text, updated.Alarm.Time)
	if m.alarms != nil && m.alarms.State(t.ID) != alarm.StatePending {
		msg += " (time already passed)"
	}
	m.afterStoreWrite(msg)
	return m
}

// afterStoreWrite reports a successful mutation, or the persistence error
// the store absorbed.
func (m *Model) afterStoreWrite(ok string) {
	if err := m.todos.Err(); err != nil {
		m.LastError = err
		m.Status = StatusBar{Text: fmt.Sprintf("save failed: %v", err), IsError: true}
		return
	}
	m.Status = StatusBar{Text: ok, IsError: false}
}

func (m Model) renderDayView() string {
	items := m.dayTodos()
	data := views.DayPanelData{
		Title:   m.Cursor.Format(dayTitleLayout),
		IsToday: m.cursorIsToday(),
		Cursor:  m.Day.Cursor,
		Width:   dayPanelWidth(m.width),
	}
	for _, t := range items {
		item := views.DayItemData{Text: t.Text, Completed: t.Completed}
		if t.HasActiveAlarm() {
			item.AlarmTime = t.Alarm.Time
			item.Armed = m.alarms != nil && m.alarms.State(t.ID) == alarm.StatePending
		}
		data.Items = append(data.Items, item)
	}
	switch m.Input {
	case InputAdd:
		data.InputMode = "new todo"
		data.InputView = m.todoInput.View()
	case InputAlarm:
		data.InputMode = "alarm"
		data.InputView = m.alarmInput.View()
	}
	return views.RenderDayPanel(data)
}

func (m Model) renderDaySummary() string {
	items := m.dayTodos()
	done := 0
	for _, t := range items {
		if t.Completed {
			done++
		}
	}
	level := timeline.LevelFor(len(items), done)
	md := fmt.Sprintf("## %s\n\n- **%d** todos, **%d** done\n- activity: *%s*\n", model.DayKeyOf(m.Cursor), len(items), done, level)
	if !m.cursorIsToday() {
		md += "- alarms are only armed on the day itself\n"
	}
	return views.RenderMarkdown(md)
}

func dayPanelWidth(total int) int {
	if total <= 0 {
		return 0
	}
	w := total/2 - 6
	if w < 24 {
		return 24
	}
	return w
}
