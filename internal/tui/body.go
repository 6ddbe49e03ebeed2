package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tOgg1/tick/internal/models"
)

const inputPlaceholder = "Add a new todo..."

var filterLabels = map[models.Filter]string{
	models.FilterAll:       "All",
	models.FilterActive:    "Active",
	models.FilterCompleted: "Completed",
}

func (m *Model) renderBody(height int) string {
	if height <= 0 {
		return ""
	}
	input := m.renderInput()
	tabs := m.renderTabs()
	listHeight := height - lipgloss.Height(input) - lipgloss.Height(tabs) - 1
	list := m.renderList(listHeight)

	body := lipgloss.JoinVertical(lipgloss.Left, input, tabs, "", list)
	return lipgloss.NewStyle().Height(height).MaxHeight(height).Render(body)
}

func (m *Model) renderInput() string {
	focused := m.mode == modeInput
	var content string
	switch {
	case focused:
		content = m.input + "▏"
	case m.input == "":
		content = m.theme.Muted().Render(inputPlaceholder)
	default:
		content = m.input
	}
	width := maxInt(10, m.width-4)
	return m.theme.Input(focused).Width(width).Render(truncate(content, width-2))
}

func (m *Model) renderTabs() string {
	tabs := make([]string, 0, len(models.Filters))
	for i, filter := range models.Filters {
		label := string(rune('1'+i)) + " " + filterLabels[filter]
		tabs = append(tabs, m.theme.Tab(filter == m.view.Filter).Render(label))
	}
	clearHint := m.theme.Danger().Render("C clear completed")
	return lipgloss.JoinHorizontal(lipgloss.Top, append(tabs, "  ", clearHint)...)
}

func (m *Model) renderList(height int) string {
	if height <= 0 {
		return ""
	}
	if len(m.view.Tasks) == 0 {
		return m.theme.Muted().Render(emptyMessage(m.view.Filter))
	}

	start, end := visibleRange(len(m.view.Tasks), m.cursor, height)
	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		lines = append(lines, m.renderTask(m.view.Tasks[i], i == m.cursor))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderTask(task models.Task, selected bool) string {
	pointer := "  "
	if selected {
		pointer = m.theme.Accent().Render("> ")
	}
	box := "[ ]"
	if task.Completed {
		box = "[x]"
	}
	width := maxInt(1, m.width-8)

	if m.view.Editing && m.view.EditID == task.ID {
		text := truncate(m.view.EditText+"▏", width)
		return pointer + box + " " + m.theme.Editing().Render(text)
	}
	return pointer + box + " " + m.theme.TaskRow(task.Completed, selected).Render(truncate(task.Text, width))
}

func emptyMessage(filter models.Filter) string {
	switch filter {
	case models.FilterActive:
		return "Nothing left to do."
	case models.FilterCompleted:
		return "No completed tasks."
	default:
		return "No tasks yet. Press a to add one."
	}
}

// visibleRange returns the window of rows that keeps cursor on screen.
func visibleRange(total, cursor, height int) (int, int) {
	if total <= height {
		return 0, total
	}
	start := cursor - height/2
	if start < 0 {
		start = 0
	}
	end := minInt(total, start+height)
	start = maxInt(0, end-height)
	return start, end
}
