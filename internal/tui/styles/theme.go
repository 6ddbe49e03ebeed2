package styles

import "github.com/charmbracelet/lipgloss"

// BaseColors defines global UI colors.
type BaseColors struct {
	Background string
	Foreground string
	Card       string
	Muted      string
	Accent     string
	Border     string
}

// TaskColors defines colors for task rows.
type TaskColors struct {
	Active    string
	Completed string
	Selected  string
	Editing   string
}

// ChromeColors defines non-content UI colors.
type ChromeColors struct {
	Header      string
	Footer      string
	TabActive   string
	TabInactive string
	Danger      string
}

// Theme defines the tick TUI style tokens.
type Theme struct {
	Name string
	Icon string

	Base   BaseColors
	Task   TaskColors
	Chrome ChromeColors
}

// Themes lists available palettes by name.
var Themes = map[string]Theme{
	LightTheme.Name: LightTheme,
	DarkTheme.Name:  DarkTheme,
}

// Lookup returns the named theme, falling back to LightTheme.
func Lookup(name string) Theme {
	if theme, ok := Themes[name]; ok {
		return theme
	}
	return LightTheme
}

// Toggle returns the other palette.
func (t Theme) Toggle() Theme {
	if t.Name == DarkTheme.Name {
		return LightTheme
	}
	return DarkTheme
}

// Text is the default body style.
func (t Theme) Text() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.Base.Foreground))
}

// Muted renders secondary text.
func (t Theme) Muted() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.Base.Muted))
}

// Accent renders highlighted text.
func (t Theme) Accent() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.Base.Accent)).Bold(true)
}

// Header is the title bar style.
func (t Theme) Header() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.Base.Background)).
		Background(lipgloss.Color(t.Chrome.Header)).
		Bold(true).
		Padding(0, 1)
}

// Footer is the status bar style.
func (t Theme) Footer() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.Base.Foreground)).
		Background(lipgloss.Color(t.Chrome.Footer)).
		Padding(0, 1)
}

// Input is the bordered input box style.
func (t Theme) Input(focused bool) lipgloss.Style {
	border := t.Base.Border
	if focused {
		border = t.Base.Accent
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(border)).
		Foreground(lipgloss.Color(t.Base.Foreground)).
		Padding(0, 1)
}

// Tab renders one filter tab.
func (t Theme) Tab(active bool) lipgloss.Style {
	style := lipgloss.NewStyle().Padding(0, 1)
	if active {
		return style.
			Foreground(lipgloss.Color(t.Base.Background)).
			Background(lipgloss.Color(t.Chrome.TabActive)).
			Bold(true)
	}
	return style.Foreground(lipgloss.Color(t.Chrome.TabInactive))
}

// TaskRow renders a task line.
func (t Theme) TaskRow(completed, selected bool) lipgloss.Style {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(t.Task.Active))
	if completed {
		style = style.Foreground(lipgloss.Color(t.Task.Completed)).Strikethrough(true)
	}
	if selected {
		style = style.Background(lipgloss.Color(t.Base.Card)).Bold(true)
	}
	return style
}

// Editing renders the row being edited.
func (t Theme) Editing() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.Task.Editing)).Underline(true)
}

// Danger renders destructive hints.
func (t Theme) Danger() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.Chrome.Danger))
}
