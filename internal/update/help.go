package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/sandeepkv93/lifegrid/internal/views"
)

const helpMarkdown = `# lifegrid

Each row block is one year of **52 weeks**; each column is a week and each
row a weekday.

| colour | meaning |
|---|---|
| grey | past day without todos |
| green, darker to brighter | share of the day's todos completed |
| blue | today |
| dark | days still ahead |

## Commands

- ` + "`add <text>`" + ` add a todo to the selected day
- ` + "`done <n>`" + ` / ` + "`rm <n>`" + ` toggle or delete the n-th todo
- ` + "`alarm <n> <HH:MM>`" + ` remind about a todo later today
- ` + "`goto <YYYY-MM-DD|today>`" + ` move the cursor
- ` + "`birthdate`" + `, ` + "`expectancy`" + `, ` + "`opacity`" + ` change settings
`

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) renderHelpView() string {
	bindings := m.helpBindings()
	var plain []string
	for _, kb := range m.viewBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		CurrentView: string(m.CurrentView),
		Bindings:    plain,
		HelpView: m.helpModel.View(helpKeyMap{
			short: bindings,
			full:  [][]key.Binding{bindings},
		}),
		Markdown: m.helpViewport.View(),
	})
}

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: m.Keys.Timeline, Action: "switch to Timeline"},
		{Key: m.Keys.Settings, Action: "switch to Settings"},
		{Key: "/", Action: "open command palette"},
		{Key: m.Keys.Help, Action: "toggle help panel"},
		{Key: m.Keys.Quit, Action: "quit app"},
	}
}

func (m Model) viewBindings() []KeyBinding {
	switch m.CurrentView {
	case ViewTimeline:
		return []KeyBinding{
			{Key: "h/l", Action: "previous/next week"},
			{Key: "j/k", Action: "next/previous day"},
			{Key: "t", Action: "jump to today"},
			{Key: "enter", Action: "open day"},
		}
	case ViewDay:
		out := []KeyBinding{
			{Key: "j/k", Action: "move selection"},
			{Key: "a", Action: "add todo"},
			{Key: "space", Action: "toggle done"},
			{Key: "x", Action: "delete todo"},
		}
		if m.cursorIsToday() {
			out = append(out, KeyBinding{Key: "A", Action: "set alarm"})
		}
		return append(out, KeyBinding{Key: "esc", Action: "back to timeline"})
	case ViewSettings:
		return []KeyBinding{
			{Key: "j/k", Action: "move between fields"},
			{Key: "+/-", Action: "adjust value"},
			{Key: "enter", Action: "edit birthdate"},
			{Key: "esc", Action: "back to timeline"},
		}
	default:
		return []KeyBinding{{Key: "-", Action: "no contextual bindings"}}
	}
}

func (m Model) helpBindings() []key.Binding {
	out := make([]key.Binding, 0, len(m.globalBindings())+len(m.viewBindings()))
	for _, kb := range m.globalBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	for _, kb := range m.viewBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
