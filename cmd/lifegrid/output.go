package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/muesli/reflow/wordwrap"
	"github.com/sandeepkv93/lifegrid/internal/model"
	"github.com/sandeepkv93/lifegrid/internal/settings"
	"github.com/sandeepkv93/lifegrid/internal/storage"
	"github.com/sandeepkv93/lifegrid/internal/timeline"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

const defaultLineWidth = 80

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Print age and life progress",
	Args:  cobra.NoArgs,
	RunE:  runProgress,
}

var todosCmd = &cobra.Command{
	Use:   "todos",
	Short: "List the todos of a day",
	Args:  cobra.NoArgs,
	RunE:  runTodos,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Dump settings and every todo",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

var (
	todosDay     string
	exportFormat string
)

func init() {
	todosCmd.Flags().StringVar(&todosDay, "day", "", "Day to list as YYYY-MM-DD (default today)")
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "Output format: json or yaml")
}

func runProgress(cmd *cobra.Command, args []string) error {
	a, err := openFromFlags(cmd)
	if err != nil {
		return err
	}
	defer a.Close()
	return writeProgress(cmd.OutOrStdout(), a.prefs.Get(), a.cfg.WeekStart, lineWidth())
}

func runTodos(cmd *cobra.Command, args []string) error {
	day := model.DayKeyOf(now())
	if strings.TrimSpace(todosDay) != "" {
		parsed, err := model.ParseDayKey(todosDay)
		if err != nil {
			return err
		}
		day = parsed
	}
	a, err := openFromFlags(cmd)
	if err != nil {
		return err
	}
	defer a.Close()
	return writeTodos(cmd.OutOrStdout(), day, a.todos.ListForDay(day), lineWidth())
}

func runExport(cmd *cobra.Command, args []string) error {
	a, err := openFromFlags(cmd)
	if err != nil {
		return err
	}
	defer a.Close()
	doc := newExportDoc(a.prefs.Get(), a.todos.All())
	if st, ok := a.kv.(stamped); ok {
		if at, err := st.UpdatedAt(cmd.Context(), storage.KeyTodos); err == nil {
			doc.SavedAt = at.Format(time.RFC3339)
		}
	}
	return writeExport(cmd.OutOrStdout(), exportFormat, doc)
}

// stamped is implemented by backends that record write times.
type stamped interface {
	UpdatedAt(ctx context.Context, key string) (time.Time, error)
}

// lineWidth is the terminal width, or a fixed width when stdout is piped.
func lineWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return defaultLineWidth
	}
	w, _, err := term.GetSize(fd)
	if err != nil || w <= 0 {
		return defaultLineWidth
	}
	return w
}

func writeProgress(w io.Writer, s model.Settings, weekStart time.Weekday, width int) error {
	t := now()
	pct := timeline.LifeProgress(s.Birthdate, s.LifeExpectancy, t)
	grid := timeline.BuildGridFrom(s.Birthdate, s.LifeExpectancy, weekStart)
	lived := 0
	if week, _, ok := timeline.Locate(grid, t); ok {
		lived = week + 1
	} else if t.After(s.Birthdate) {
		lived = len(grid)
	}

	barWidth := min(width-2, 60)
	if barWidth < 10 {
		barWidth = 10
	}
	bar := progress.New(progress.WithoutPercentage(), progress.WithWidth(barWidth), progress.WithSolidFill("10"))
	_, err := fmt.Fprintf(w, "Age: %d years\nLife Progress: %d%%\n%s\nWeeks: %d of %d\n",
		timeline.Age(s.Birthdate, t), pct, bar.ViewAs(float64(pct)/100), lived, len(grid))
	return err
}

func writeTodos(w io.Writer, day model.DayKey, todos []model.Todo, width int) error {
	if _, err := fmt.Fprintf(w, "%s (%s)\n", day, timeline.ClassifyKey(day, todos)); err != nil {
		return err
	}
	if len(todos) == 0 {
		_, err := fmt.Fprintln(w, "no todos")
		return err
	}
	for i, t := range todos {
		mark := "[ ]"
		if t.Completed {
			mark = "[x]"
		}
		line := fmt.Sprintf("%d. %s %s", i+1, mark, t.Text)
		if t.HasActiveAlarm() {
			line += fmt.Sprintf(" (alarm %s)", t.Alarm.Time)
		}
		wrapped := strings.ReplaceAll(wordwrap.String(line, width), "\n", "\n       ")
		if _, err := fmt.Fprintln(w, wrapped); err != nil {
			return err
		}
	}
	return nil
}

type exportDoc struct {
	Birthdate      string       `json:"birthdate" yaml:"birthdate"`
	LifeExpectancy int          `json:"lifeExpectancy" yaml:"lifeExpectancy"`
	Opacity        float64      `json:"opacity" yaml:"opacity"`
	Todos          []model.Todo `json:"todos" yaml:"todos"`
	SavedAt        string       `json:"savedAt,omitempty" yaml:"savedAt,omitempty"`
}

func newExportDoc(s model.Settings, todos []model.Todo) exportDoc {
	if todos == nil {
		todos = []model.Todo{}
	}
	return exportDoc{
		Birthdate:      settings.FormatBirthdate(s.Birthdate),
		LifeExpectancy: s.LifeExpectancy,
		Opacity:        s.Opacity,
		Todos:          todos,
	}
}

func writeExport(w io.Writer, format string, doc exportDoc) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported export format %q (want json or yaml)", format)
	}
}
