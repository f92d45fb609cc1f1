package views

import (
	"fmt"
	"strings"

	"github.com/muesli/reflow/wordwrap"
)

type DayItemData struct {
	Text      string
	Completed bool
	AlarmTime string
	Armed     bool
}

type DayPanelData struct {
	Title     string
	IsToday   bool
	Items     []DayItemData
	Cursor    int
	InputView string
	InputMode string
	Width     int
}

type SettingsPanelData struct {
	Birthdate      string
	LifeExpectancy int
	Opacity        float64
	Cursor         int
	InputView      string
	Editing        bool
}

type HelpPanelData struct {
	CurrentView string
	Bindings    []string
	HelpView    string
	Markdown    string
}

func RenderDayPanel(data DayPanelData) string {
	var b strings.Builder
	b.WriteString(data.Title + "\n")
	if data.IsToday {
		b.WriteString("actions: [a]add [space]toggle [x]delete [A]alarm [esc]back\n")
	} else {
		b.WriteString("actions: [a]add [space]toggle [x]delete [esc]back\n")
	}
	if len(data.Items) == 0 {
		b.WriteString("\n(no todos for this day)\n")
	}
	width := data.Width
	if width <= 0 {
		width = 48
	}
	for i, item := range data.Items {
		cursor := " "
		if i == data.Cursor {
			cursor = ">"
		}
		mark := "[ ]"
		if item.Completed {
			mark = "[x]"
		}
		line := fmt.Sprintf("%s %d. %s %s", cursor, i+1, mark, item.Text)
		if item.AlarmTime != "" {
			bell := "🔔"
			if item.Armed {
				bell += "*"
			}
			line += fmt.Sprintf(" %s %s", bell, item.AlarmTime)
		}
		b.WriteString("\n" + indentContinuation(wordwrap.String(line, width), "        "))
	}
	if data.InputMode != "" {
		b.WriteString(fmt.Sprintf("\n\n%s: %s", data.InputMode, data.InputView))
	}
	return strings.TrimRight(b.String(), "\n")
}

func indentContinuation(s, indent string) string {
	return strings.ReplaceAll(s, "\n", "\n"+indent)
}

func RenderSettingsPanel(data SettingsPanelData) string {
	rows := []string{
		fmt.Sprintf("birthdate: %s", data.Birthdate),
		fmt.Sprintf("life expectancy: %d years", data.LifeExpectancy),
		fmt.Sprintf("opacity: %d%%", int(data.Opacity*100+0.5)),
	}
	if data.Editing {
		rows[0] = "birthdate: " + data.InputView
	}
	var b strings.Builder
	b.WriteString("settings:\n")
	b.WriteString("actions: [j/k]field [+/-]adjust [enter]edit birthdate [esc]back\n")
	for i, row := range rows {
		cursor := " "
		if i == data.Cursor {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("\n%s %s", cursor, row))
	}
	return b.String()
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderNotification(level string, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return fmt.Sprintf("notification: [%s] %s", strings.ToUpper(level), body)
}

func RenderHelpPanel(data HelpPanelData) string {
	out := fmt.Sprintf("help:\n%s view:\n%s\n%s",
		strings.ToLower(data.CurrentView),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
	if data.Markdown != "" {
		out += "\n\n" + data.Markdown
	}
	return out
}
