// Package main implements the lifegrid CLI.
package main

import (
	"errors"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/lifegrid/internal/update"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// now is swapped in tests.
var now = time.Now

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "lifegrid",
	Short:        "A weeks-of-life calendar with per-day todos and alarms",
	SilenceUsage: true,
	Args:         cobra.NoArgs,
	RunE:         runTUI,
}

func init() {
	addConfigFlags(rootCmd.PersistentFlags())
	rootCmd.AddCommand(progressCmd, todosCmd, exportCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) || !term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New("lifegrid needs a terminal; use the progress, todos or export commands for plain output")
	}
	a, err := openFromFlags(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	a.alarms.Start()
	m := update.NewModel(update.Deps{
		Todos:     a.todos,
		Settings:  a.prefs,
		Alarms:    a.alarms,
		Log:       a.log.With("ui"),
		Now:       now,
		WeekStart: a.cfg.WeekStart,
	})
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		a.log.Printf("tui failed: %v", err)
		return err
	}
	return nil
}
