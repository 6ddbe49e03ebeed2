package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

func (m *Model) renderHeader() string {
	left := "tick"
	center := fmt.Sprintf("%d tasks", m.view.Total)
	right := m.theme.Icon + " " + m.theme.Name
	line := joinHeader(left, center, right, m.width)
	return m.theme.Header().Width(maxInt(0, m.width)).Render(line)
}

func (m *Model) renderFooter() string {
	left := itemsLeft(m.view.Remaining)
	var hints string
	switch m.mode {
	case modeInput:
		hints = "enter add  esc done"
	case modeEdit:
		hints = "enter save  esc cancel"
	default:
		hints = "a add  x toggle  e edit  d delete  tab filter  C clear  t theme  ? help  q quit"
	}
	line := joinHeader(left, "", hints, maxInt(0, m.width-2))
	return m.theme.Footer().Width(maxInt(0, m.width)).Render(line)
}

func itemsLeft(n int) string {
	if n == 1 {
		return "1 item left"
	}
	return fmt.Sprintf("%d items left", n)
}

func joinHeader(left, center, right string, width int) string {
	left = strings.TrimSpace(left)
	center = strings.TrimSpace(center)
	right = strings.TrimSpace(right)
	if width <= 0 {
		return left
	}

	space := width - lipgloss.Width(left) - lipgloss.Width(center) - lipgloss.Width(right)
	if space < 2 {
		line := left
		if right != "" {
			line = left + "  " + right
		}
		return truncate(line, width)
	}

	leftGap := space / 2
	rightGap := space - leftGap
	return truncate(left+strings.Repeat(" ", leftGap)+center+strings.Repeat(" ", rightGap)+right, width)
}

func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	return runewidth.Truncate(s, max, "…")
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
