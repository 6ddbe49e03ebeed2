package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tOgg1/tick/internal/models"
)

var filterKeys = map[string]models.Filter{
	"1": models.FilterAll,
	"2": models.FilterActive,
	"3": models.FilterCompleted,
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		return m.quit()
	}
	if m.showHelp {
		switch msg.String() {
		case "?", "esc", "q":
			m.showHelp = false
		}
		return nil
	}

	switch m.mode {
	case modeInput:
		return m.handleInputKey(msg)
	case modeEdit:
		return m.handleEditKey(msg)
	default:
		return m.handleBrowseKey(msg)
	}
}

func (m *Model) handleBrowseKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	if filter, ok := filterKeys[key]; ok {
		m.apply(m.store.SetFilter(filter))
		return nil
	}

	switch key {
	case "q":
		return m.quit()
	case "?":
		m.showHelp = true
	case "a", "i":
		m.mode = modeInput
	case " ", "space", "x":
		if task, ok := m.selected(); ok {
			m.apply(m.store.Toggle(task.ID))
		}
	case "e", "enter":
		if task, ok := m.selected(); ok {
			m.apply(m.store.BeginEdit(task.ID, task.Text))
			m.mode = modeEdit
		}
	case "d", "delete":
		if task, ok := m.selected(); ok {
			m.apply(m.store.Remove(task.ID))
		}
	case "tab":
		m.apply(m.store.SetFilter(m.view.Filter.Next()))
	case "C":
		m.apply(m.store.ClearCompleted())
	case "t":
		m.theme = m.theme.Toggle()
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.view.Tasks)-1 {
			m.cursor++
		}
	case "home", "g":
		m.cursor = 0
	case "end", "G":
		m.cursor = len(m.view.Tasks) - 1
		m.clampCursor()
	}
	return nil
}

func (m *Model) handleInputKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		before := m.view.Total
		m.apply(m.store.Add(m.input))
		m.input = ""
		if m.view.Total > before && len(m.view.Tasks) > 0 {
			m.cursor = len(m.view.Tasks) - 1
		}
		return nil
	case "esc":
		m.input = ""
		m.mode = modeBrowse
		return nil
	case "backspace", "ctrl+h":
		m.input = dropLastRune(m.input)
		return nil
	case "ctrl+u":
		m.input = ""
		return nil
	}

	if text, ok := typedText(msg); ok {
		m.input += text
	}
	return nil
}

func (m *Model) handleEditKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		m.apply(m.store.CommitEdit())
		m.mode = modeBrowse
		return nil
	case "esc":
		m.apply(m.store.CancelEdit())
		m.mode = modeBrowse
		return nil
	case "backspace", "ctrl+h":
		m.apply(m.store.SetEditText(dropLastRune(m.view.EditText)))
		return nil
	case "ctrl+u":
		m.apply(m.store.SetEditText(""))
		return nil
	}

	if text, ok := typedText(msg); ok {
		m.apply(m.store.SetEditText(m.view.EditText + text))
	}
	if !m.view.Editing {
		// The edit target vanished underneath us.
		m.mode = modeBrowse
	}
	return nil
}

func typedText(msg tea.KeyMsg) (string, bool) {
	switch msg.Type {
	case tea.KeySpace:
		return " ", true
	case tea.KeyRunes:
		if len(msg.Runes) == 0 {
			return "", false
		}
		return string(msg.Runes), true
	}
	return "", false
}

func dropLastRune(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	return string(runes[:len(runes)-1])
}
