package update

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/lifegrid/internal/model"
	"github.com/sandeepkv93/lifegrid/internal/timeline"
	"github.com/sandeepkv93/lifegrid/internal/views"
)

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{clockTickCmd()}
	if m.alarms != nil {
		cmds = append(cmds, waitForAlarmCmd(m.alarms.Fired()))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if m.Palette.Active {
			if typed.String() == m.Keys.Help {
				m.HelpVisible = !m.HelpVisible
				return m, nil
			}
			return m.handlePaletteKey(typed), nil
		}
		if m.inputActive() {
			if m.CurrentView == ViewSettings {
				return m.handleSettingsKey(typed), nil
			}
			return m.handleDayKey(typed), nil
		}

		switch typed.String() {
		case "/":
			m.Palette.Active = true
			m.Palette.Input = ""
			m.commandInput.Focus()
			m.commandInput.SetValue("")
			m.Status = StatusBar{Text: "command palette active", IsError: false}
			return m, nil
		case m.Keys.Timeline:
			m.CurrentView = ViewTimeline
			return m, nil
		case m.Keys.Settings:
			m.CurrentView = ViewSettings
			return m, nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			if m.HelpVisible {
				m.Status = StatusBar{Text: "help shown", IsError: false}
			} else {
				m.Status = StatusBar{Text: "help hidden", IsError: false}
			}
			return m, nil
		case "ctrl+c", m.Keys.Quit:
			m.Quitting = true
			return m, tea.Quit
		}
		if m.HelpVisible {
			switch typed.String() {
			case "pgup", "pgdown":
				var cmd tea.Cmd
				m.helpViewport, cmd = m.helpViewport.Update(typed)
				return m, cmd
			}
		}
		switch m.CurrentView {
		case ViewTimeline:
			return m.handleTimelineKey(typed), nil
		case ViewDay:
			return m.handleDayKey(typed), nil
		case ViewSettings:
			return m.handleSettingsKey(typed), nil
		}
	case tea.WindowSizeMsg:
		m.width = typed.Width
		m.height = typed.Height
		return m, nil
	case SwitchViewMsg:
		switch typed.View {
		case ViewTimeline, ViewSettings:
			m.CurrentView = typed.View
		case ViewDay:
			m = m.openDay()
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		m.notify("Status", typed.Text, levelFromError(typed.IsError))
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
			m.notify("Error", typed.Err.Error(), "error")
		}
		return m, nil
	case AlarmFiredMsg:
		m = m.onAlarmFired(typed.Event)
		if m.alarms != nil {
			return m, waitForAlarmCmd(m.alarms.Fired())
		}
		return m, nil
	case ClockTickMsg:
		return m, clockTickCmd()
	}

	return m, nil
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	mainPane := ""
	sidePane := ""
	switch m.CurrentView {
	case ViewTimeline:
		mainPane = m.renderTimelineView()
	case ViewDay:
		mainPane = m.renderDayView()
		sidePane = m.renderDaySummary()
	case ViewSettings:
		mainPane = m.renderSettingsView()
	}
	if palette := m.renderCommandPalette(); palette != "" {
		sidePane = joinNonEmpty(sidePane, palette)
	}
	if m.HelpVisible {
		sidePane = joinNonEmpty(sidePane, m.renderHelpView())
	}

	return views.RenderApp(views.AppData{
		Header:       fmt.Sprintf("lifegrid | view: %s | day: %s", m.CurrentView, model.DayKeyOf(m.Cursor)),
		Progress:     m.renderProgress(),
		MainPane:     mainPane,
		SidePane:     sidePane,
		StatusLine:   status,
		Notification: m.renderNotificationsView(),
		Footer:       fmt.Sprintf("keys: %s timeline | %s settings | / cmd | %s help | %s quit", m.Keys.Timeline, m.Keys.Settings, m.Keys.Help, m.Keys.Quit),
		Width:        m.width,
	})
}

func (m Model) renderProgress() string {
	s := m.prefs.Get()
	now := m.now()
	pct := timeline.LifeProgress(s.Birthdate, s.LifeExpectancy, now)
	return fmt.Sprintf("Life Progress: %d%% %s  Age: %d years", pct, m.lifeProgress.ViewAs(float64(pct)/100), timeline.Age(s.Birthdate, now))
}

func clockTickCmd() tea.Cmd {
	return tea.Tick(time.Minute, func(t time.Time) tea.Msg { return ClockTickMsg(t) })
}
