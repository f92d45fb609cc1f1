package update

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/lifegrid/internal/model"
	"github.com/sandeepkv93/lifegrid/internal/settings"
	"github.com/sandeepkv93/lifegrid/internal/views"
)

func (m Model) handleSettingsKey(msg tea.KeyMsg) Model {
	if m.Input == InputBirthdate {
		return m.handleBirthdateInputKey(msg)
	}
	switch msg.String() {
	case "esc":
		m.CurrentView = ViewTimeline
	case "up", "k":
		if m.Settings.Cursor > 0 {
			m.Settings.Cursor--
		}
	case "down", "j":
		if m.Settings.Cursor < settingCount-1 {
			m.Settings.Cursor++
		}
	case "enter":
		if m.Settings.Cursor == SettingBirthdate {
			m.Input = InputBirthdate
			m.birthInput.SetValue(settings.FormatBirthdate(m.prefs.Get().Birthdate))
			m.birthInput.Focus()
		}
	case "+", "=", "right":
		m = m.adjustSetting(1)
	case "-", "left":
		m = m.adjustSetting(-1)
	}
	return m
}

func (m Model) handleBirthdateInputKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.closeInput()
		return m
	case "enter":
		raw := strings.TrimSpace(m.birthInput.Value())
		m.closeInput()
		t, err := time.ParseInLocation(model.DayKeyLayout, raw, time.Local)
		if err != nil {
			m.Status = StatusBar{Text: fmt.Sprintf("birthdate must be YYYY-MM-DD, got %q", raw), IsError: true}
			return m
		}
		return m.applyBirthdate(t)
	}
	if msg.Type == tea.KeyRunes {
		m.birthInput.SetValue(m.birthInput.Value() + string(msg.Runes))
		return m
	}
	m.birthInput, _ = m.birthInput.Update(msg)
	return m
}

func (m Model) adjustSetting(dir int) Model {
	s := m.prefs.Get()
	switch m.Settings.Cursor {
	case SettingLifeExpectancy:
		return m.applyLifeExpectancy(s.LifeExpectancy + dir)
	case SettingOpacity:
		return m.applyOpacity(s.Opacity + float64(dir)*model.OpacityStep)
	}
	return m
}

func (m Model) applyBirthdate(t time.Time) Model {
	if !m.prefs.SetBirthdate(context.Background(), t) {
		m.Status = StatusBar{Text: "birthdate rejected", IsError: true}
		return m
	}
	m.rebuildGrid()
	m.afterSettingsWrite(fmt.Sprintf("birthdate set to %s", settings.FormatBirthdate(t)))
	return m
}

func (m Model) applyLifeExpectancy(years int) Model {
	if !m.prefs.SetLifeExpectancy(context.Background(), years) {
		m.Status = StatusBar{Text: fmt.Sprintf("life expectancy must be between %d and %d", model.MinLifeExpectancy, model.MaxLifeExpectancy), IsError: true}
		return m
	}
	m.rebuildGrid()
	m.afterSettingsWrite(fmt.Sprintf("life expectancy set to %d", years))
	return m
}

func (m Model) applyOpacity(v float64) Model {
	if !m.prefs.SetOpacity(context.Background(), v) {
		m.Status = StatusBar{Text: fmt.Sprintf("opacity must be between %.1f and %.1f", model.MinOpacity, model.MaxOpacity), IsError: true}
		return m
	}
	m.afterSettingsWrite(fmt.Sprintf("opacity set to %d%%", int(m.prefs.Get().Opacity*100+0.5)))
	return m
}

func (m *Model) afterSettingsWrite(ok string) {
	if err := m.prefs.Err(); err != nil {
		m.LastError = err
		m.Status = StatusBar{Text: fmt.Sprintf("save failed: %v", err), IsError: true}
		return
	}
	m.Status = StatusBar{Text: ok, IsError: false}
}

func (m Model) renderSettingsView() string {
	s := m.prefs.Get()
	return views.RenderSettingsPanel(views.SettingsPanelData{
		Birthdate:      settings.FormatBirthdate(s.Birthdate),
		LifeExpectancy: s.LifeExpectancy,
		Opacity:        s.Opacity,
		Cursor:         m.Settings.Cursor,
		InputView:      m.birthInput.View(),
		Editing:        m.Input == InputBirthdate,
	})
}
