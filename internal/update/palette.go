package update

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/lifegrid/internal/commands"
	"github.com/sandeepkv93/lifegrid/internal/model"
	"github.com/sandeepkv93/lifegrid/internal/timeline"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.Palette.Active = false
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Blur()
		m.Status = StatusBar{Text: "command palette closed", IsError: false}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		m = m.executePaletteCommand()
	default:
		if msg.Type == tea.KeyRunes {
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.Palette.Input = m.commandInput.Value()
			return m
		}
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		_ = cmd
		m.Palette.Input = m.commandInput.Value()
	}
	return m
}

func (m Model) todoAt(index int) (model.Todo, error) {
	items := m.dayTodos()
	if index < 1 || index > len(items) {
		return model.Todo{}, &commands.CommandError{
			Code:    commands.ErrCodeInvalidArgument,
			Message: fmt.Sprintf("no todo #%d on %s", index, model.DayKeyOf(m.Cursor)),
		}
	}
	return items[index-1], nil
}

func (m Model) executePaletteCommand() Model {
	raw := strings.TrimSpace(m.Palette.Input)
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.Palette.Active = false
		m.Palette.Input = ""
		return m
	}

	ctx := context.Background()
	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			t, ok := m.todos.Add(ctx, model.DayKeyOf(m.Cursor), a.Text)
			if !ok {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "todo text is required"}
			}
			return commands.Result{Message: fmt.Sprintf("added to %s: %s", t.Date, t.Text)}, nil
		},
		Done: func(a commands.ItemArgs) (commands.Result, error) {
			t, err := m.todoAt(a.Index)
			if err != nil {
				return commands.Result{}, err
			}
			m.todos.Toggle(ctx, t.ID)
			return commands.Result{Message: fmt.Sprintf("toggled: %s", t.Text)}, nil
		},
		Remove: func(a commands.ItemArgs) (commands.Result, error) {
			t, err := m.todoAt(a.Index)
			if err != nil {
				return commands.Result{}, err
			}
			m.todos.Remove(ctx, t.ID)
			m.Day.Cursor = 0
			return commands.Result{Message: fmt.Sprintf("deleted: %s", t.Text)}, nil
		},
		Alarm: func(a commands.AlarmArgs) (commands.Result, error) {
			if !m.cursorIsToday() {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "alarms can only be set for today"}
			}
			t, err := m.todoAt(a.Index)
			if err != nil {
				return commands.Result{}, err
			}
			m.todos.SetAlarm(ctx, t.ID, a.Time)
			return commands.Result{Message: fmt.Sprintf("alarm set for %s at %s", t.Text, a.Time)}, nil
		},
		Goto: func(a commands.GotoArgs) (commands.Result, error) {
			target := m.today()
			if !a.Today {
				day, err := a.Day.Time()
				if err != nil {
					return commands.Result{}, err
				}
				target = day
			}
			if _, _, ok := timeline.Locate(m.grid, target); !ok {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("%s is outside the timeline", model.DayKeyOf(target))}
			}
			m.Cursor = target
			return commands.Result{Message: fmt.Sprintf("moved to %s", model.DayKeyOf(target))}, nil
		},
		Birthdate: func(a commands.BirthdateArgs) (commands.Result, error) {
			if !m.prefs.SetBirthdate(ctx, a.Date) {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "birthdate rejected"}
			}
			m.rebuildGrid()
			return commands.Result{Message: fmt.Sprintf("birthdate set to %s", model.DayKeyOf(a.Date))}, nil
		},
		Expectancy: func(a commands.ExpectancyArgs) (commands.Result, error) {
			if !m.prefs.SetLifeExpectancy(ctx, a.Years) {
				return commands.Result{}, &commands.CommandError{
					Code:    commands.ErrCodeInvalidArgument,
					Message: fmt.Sprintf("life expectancy must be between %d and %d", model.MinLifeExpectancy, model.MaxLifeExpectancy),
				}
			}
			m.rebuildGrid()
			return commands.Result{Message: fmt.Sprintf("life expectancy set to %d", a.Years)}, nil
		},
		Opacity: func(a commands.OpacityArgs) (commands.Result, error) {
			if !m.prefs.SetOpacity(ctx, a.Value) {
				return commands.Result{}, &commands.CommandError{
					Code:    commands.ErrCodeInvalidArgument,
					Message: fmt.Sprintf("opacity must be between %.1f and %.1f", model.MinOpacity, model.MaxOpacity),
				}
			}
			return commands.Result{Message: fmt.Sprintf("opacity set to %.2f", m.prefs.Get().Opacity)}, nil
		},
	})
	if err == nil {
		err = m.storeErrFor(cmd.Type)
	}
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.notify("Command Failed", err.Error(), "error")
	} else {
		m.Status = StatusBar{Text: res.Message, IsError: false}
		m.notify("Command", res.Message, "info")
	}

	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
	return m
}

// storeErrFor returns the persistence error absorbed by the store cmd wrote to.
func (m Model) storeErrFor(t commands.Type) error {
	switch t {
	case commands.TypeAdd, commands.TypeDone, commands.TypeRemove, commands.TypeAlarm:
		return m.todos.Err()
	case commands.TypeBirthdate, commands.TypeExpectancy, commands.TypeOpacity:
		return m.prefs.Err()
	default:
		return nil
	}
}
