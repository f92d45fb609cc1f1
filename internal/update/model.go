package update

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/sandeepkv93/lifegrid/internal/alarm"
	"github.com/sandeepkv93/lifegrid/internal/logging"
	"github.com/sandeepkv93/lifegrid/internal/scheduler"
	"github.com/sandeepkv93/lifegrid/internal/settings"
	"github.com/sandeepkv93/lifegrid/internal/timeline"
	"github.com/sandeepkv93/lifegrid/internal/todo"
	"github.com/sandeepkv93/lifegrid/internal/views"
)

type View string

const (
	ViewTimeline View = "Timeline"
	ViewDay      View = "Day"
	ViewSettings View = "Settings"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Timeline string
	Settings string
	Help     string
	Quit     string
}

type InputMode string

const (
	InputNone      InputMode = ""
	InputAdd       InputMode = "add"
	InputAlarm     InputMode = "alarm"
	InputBirthdate InputMode = "birthdate"
)

type DayState struct {
	Cursor int
}

const (
	SettingBirthdate = iota
	SettingLifeExpectancy
	SettingOpacity
	settingCount
)

type SettingsState struct {
	Cursor int
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Notification struct {
	Title string
	Body  string
	Level string
	At    time.Time
}

// Deps are the long-lived collaborators the shell drives.
type Deps struct {
	Todos     *todo.Store
	Settings  *settings.Store
	Alarms    *alarm.Scheduler
	Log       logging.Printer
	Now       func() time.Time
	WeekStart time.Weekday
}

type Model struct {
	CurrentView   View
	Cursor        time.Time
	Day           DayState
	Settings      SettingsState
	Input         InputMode
	Palette       CommandPaletteState
	HelpVisible   bool
	Notifications []Notification
	Status        StatusBar
	Keys          GlobalKeyMap
	Quitting      bool
	LastError     error

	todos     *todo.Store
	prefs     *settings.Store
	alarms    *alarm.Scheduler
	log       logging.Printer
	now       func() time.Time
	weekStart time.Weekday
	grid      []timeline.Week

	width  int
	height int

	todoInput    textinput.Model
	alarmInput   textinput.Model
	birthInput   textinput.Model
	commandInput textinput.Model
	lifeProgress progress.Model
	helpModel    help.Model
	helpViewport viewport.Model
}

type SwitchViewMsg struct {
	View View
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

// AlarmFiredMsg carries an alarm delivered by the scheduler.
type AlarmFiredMsg struct {
	Event scheduler.Event
}

// ClockTickMsg refreshes the today marker once a minute.
type ClockTickMsg time.Time

func NewModel(deps Deps) Model {
	if deps.Log == nil {
		deps.Log = logging.Discard
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	m := Model{
		CurrentView: ViewTimeline,
		Keys: GlobalKeyMap{
			Timeline: "1",
			Settings: "s",
			Help:     "?",
			Quit:     "q",
		},
		todos:     deps.Todos,
		prefs:     deps.Settings,
		alarms:    deps.Alarms,
		log:       deps.Log,
		now:       deps.Now,
		weekStart: deps.WeekStart,
	}
	m.Cursor = timeline.Midnight(m.now())
	m.initBubbleComponents()
	m.rebuildGrid()
	return m
}

func (m *Model) initBubbleComponents() {
	m.todoInput = textinput.New()
	m.todoInput.Prompt = "todo> "
	m.todoInput.Placeholder = "What needs doing?"
	m.todoInput.CharLimit = 256
	m.todoInput.Width = 42

	m.alarmInput = textinput.New()
	m.alarmInput.Prompt = "at> "
	m.alarmInput.Placeholder = "HH:MM"
	m.alarmInput.CharLimit = 5
	m.alarmInput.Width = 8

	m.birthInput = textinput.New()
	m.birthInput.Prompt = ""
	m.birthInput.Placeholder = "YYYY-MM-DD"
	m.birthInput.CharLimit = 10
	m.birthInput.Width = 12

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.lifeProgress = progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage(), progress.WithWidth(40))
	m.helpModel = help.New()
	m.helpViewport = viewport.New(48, 12)
	m.helpViewport.SetContent(views.RenderMarkdown(helpMarkdown))
}

// rebuildGrid regenerates the week grid from the current settings and keeps
// the cursor inside it.
func (m *Model) rebuildGrid() {
	s := m.prefs.Get()
	m.grid = timeline.BuildGridFrom(s.Birthdate, s.LifeExpectancy, m.weekStart)
	m.clampCursor()
}

func (m *Model) clampCursor() {
	if len(m.grid) == 0 {
		return
	}
	first := m.grid[0][0]
	last := m.grid[len(m.grid)-1][timeline.DaysPerWeek-1]
	if m.Cursor.Before(first) {
		m.Cursor = first
	}
	if m.Cursor.After(last) {
		m.Cursor = last
	}
}

func (m Model) today() time.Time {
	return timeline.Midnight(m.now())
}

func (m Model) cursorIsToday() bool {
	return timeline.DaysBetween(m.today(), m.Cursor) == 0
}

func (m Model) inputActive() bool {
	return m.Input != InputNone
}
