package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type helpItem struct {
	key  string
	desc string
}

type helpSection struct {
	title string
	items []helpItem
}

var helpSections = []helpSection{
	{title: "Tasks", items: []helpItem{
		{key: "a / i", desc: "new task"},
		{key: "Enter", desc: "add task / save edit"},
		{key: "Esc", desc: "leave input / cancel edit"},
		{key: "Space / x", desc: "toggle completed"},
		{key: "e", desc: "edit selected"},
		{key: "d / Del", desc: "delete selected"},
		{key: "C", desc: "clear completed"},
	}},
	{title: "View", items: []helpItem{
		{key: "j/k", desc: "move selection"},
		{key: "g/G", desc: "top/bottom"},
		{key: "1 2 3 / Tab", desc: "all / active / completed"},
		{key: "t", desc: "light/dark theme"},
		{key: "?", desc: "toggle help"},
		{key: "q / Ctrl+C", desc: "quit"},
	}},
}

func (m *Model) renderHelpOverlay(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}

	lines := make([]string, 0, 24)
	lines = append(lines, m.theme.Accent().Render("Help"), "")
	keyStyle := m.theme.Accent()
	for _, sec := range helpSections {
		lines = append(lines, lipgloss.NewStyle().Bold(true).Render(sec.title))
		for _, it := range sec.items {
			lines = append(lines, "  "+keyStyle.Render(it.key)+"  "+it.desc)
		}
		lines = append(lines, "")
	}
	lines = append(lines, m.theme.Muted().Render("Dismiss: ? or Esc"))

	panelWidth := minInt(maxInt(40, width-10), 72)
	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Base.Border)).
		Foreground(lipgloss.Color(m.theme.Base.Foreground)).
		Padding(1, 2).
		Width(panelWidth)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, panel.Render(strings.Join(lines, "\n")))
}
