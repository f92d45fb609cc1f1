package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sandeepkv93/lifegrid/internal/timeline"
)

const (
	cellGlyph   = "■"
	cursorGlyph = "◆"
)

var tierStyles = map[timeline.Tier]lipgloss.Style{
	timeline.TierEmpty:  lipgloss.NewStyle().Foreground(lipgloss.Color("239")),
	timeline.TierLevel1: lipgloss.NewStyle().Foreground(lipgloss.Color("22")),
	timeline.TierLevel2: lipgloss.NewStyle().Foreground(lipgloss.Color("28")),
	timeline.TierLevel3: lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
	timeline.TierLevel4: lipgloss.NewStyle().Foreground(lipgloss.Color("46")),
	timeline.TierToday:  lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
	timeline.TierFuture: lipgloss.NewStyle().Foreground(lipgloss.Color("236")),
}

var cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)

// GridYear is one 52-week block. Cells are indexed [weekday slot][week].
type GridYear struct {
	Label string
	Cells [timeline.DaysPerWeek][timeline.WeeksPerYear]GridCell
	// Weeks is how many columns are populated; the last block may be short.
	Weeks int
}

type GridCell struct {
	Tier   timeline.Tier
	Cursor bool
}

type GridData struct {
	Title    string
	Years    []GridYear
	Dim      bool
	Selected string
}

func RenderGrid(data GridData) string {
	var b strings.Builder
	if data.Title != "" {
		b.WriteString(data.Title + "\n")
	}
	for i, year := range data.Years {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(year.Label + "\n")
		for slot := 0; slot < timeline.DaysPerWeek; slot++ {
			for w := 0; w < year.Weeks; w++ {
				b.WriteString(renderCell(year.Cells[slot][w], data.Dim))
			}
			b.WriteString("\n")
		}
	}
	if data.Selected != "" {
		b.WriteString(fmt.Sprintf("\nselected: %s", data.Selected))
	}
	b.WriteString("\n" + RenderLegend())
	return strings.TrimRight(b.String(), "\n")
}

func renderCell(c GridCell, dim bool) string {
	if c.Cursor {
		return cursorStyle.Render(cursorGlyph)
	}
	style, ok := tierStyles[c.Tier]
	if !ok {
		style = tierStyles[timeline.TierEmpty]
	}
	if dim {
		style = style.Faint(true)
	}
	return style.Render(cellGlyph)
}

// RenderLegend lists the tiers in order from no activity to complete.
func RenderLegend() string {
	order := []timeline.Tier{timeline.TierEmpty, timeline.TierLevel1, timeline.TierLevel2, timeline.TierLevel3, timeline.TierLevel4}
	var cells []string
	for _, t := range order {
		cells = append(cells, tierStyles[t].Render(cellGlyph))
	}
	return fmt.Sprintf("less %s more  %s today  %s future",
		strings.Join(cells, ""),
		tierStyles[timeline.TierToday].Render(cellGlyph),
		tierStyles[timeline.TierFuture].Render(cellGlyph),
	)
}
