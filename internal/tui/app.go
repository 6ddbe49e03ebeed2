// Package tui is the single-screen terminal interface for tick.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/tOgg1/tick/internal/models"
	"github.com/tOgg1/tick/internal/todo"
	"github.com/tOgg1/tick/internal/tui/styles"
)

type mode int

const (
	modeBrowse mode = iota
	modeInput
	modeEdit
)

// Flusher writes pending state. *storage.Writer implements it.
type Flusher interface {
	Flush(ctx context.Context)
}

// Config configures the TUI.
type Config struct {
	Store  *todo.Store
	Writer Flusher
	Theme  string
	Logger zerolog.Logger
}

// Model is the bubbletea model for the task screen.
type Model struct {
	store  *todo.Store
	writer Flusher
	theme  styles.Theme
	logger zerolog.Logger

	view   todo.View
	mode   mode
	input  string
	cursor int

	width    int
	height   int
	showHelp bool
}

// NewModel validates cfg and builds the model.
func NewModel(cfg Config) (*Model, error) {
	normalized, err := cfg.normalize()
	if err != nil {
		return nil, err
	}
	return &Model{
		store:  normalized.Store,
		writer: normalized.Writer,
		theme:  styles.Lookup(normalized.Theme),
		logger: normalized.Logger,
		view:   normalized.Store.View(),
	}, nil
}

// Run starts the program on the alternate screen and flushes pending writes
// when it exits.
func Run(cfg Config) error {
	model, err := NewModel(cfg)
	if err != nil {
		return err
	}
	defer model.flush()

	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = typed.Width
		m.height = typed.Height
		return m, nil
	case tea.KeyMsg:
		return m, m.handleKey(typed)
	}
	return m, nil
}

func (m *Model) View() string {
	header := m.renderHeader()
	footer := m.renderFooter()
	contentHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if contentHeight < 0 {
		contentHeight = 0
	}

	var body string
	if m.showHelp {
		body = m.renderHelpOverlay(m.width, contentHeight)
	} else {
		body = m.renderBody(contentHeight)
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m *Model) apply(view todo.View) {
	m.view = view
	m.clampCursor()
}

func (m *Model) selected() (models.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.view.Tasks) {
		return models.Task{}, false
	}
	return m.view.Tasks[m.cursor], true
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.view.Tasks) {
		m.cursor = len(m.view.Tasks) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) flush() {
	if m.writer == nil {
		return
	}
	m.writer.Flush(context.Background())
	m.logger.Debug().Msg("flushed pending tasks")
}

func (m *Model) quit() tea.Cmd {
	m.flush()
	return tea.Quit
}

func (c Config) normalize() (Config, error) {
	if c.Store == nil {
		return Config{}, errors.New("task store required")
	}
	c.Theme = strings.ToLower(strings.TrimSpace(c.Theme))
	if c.Theme == "" {
		c.Theme = styles.LightTheme.Name
	}
	if _, ok := styles.Themes[c.Theme]; !ok {
		return Config{}, fmt.Errorf("invalid theme %q", c.Theme)
	}
	return c, nil
}
