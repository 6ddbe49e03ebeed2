package tui

import (
	"context"
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/tOgg1/tick/internal/models"
	"github.com/tOgg1/tick/internal/todo"
)

type countingFlusher struct {
	flushes int
}

func (c *countingFlusher) Flush(context.Context) { c.flushes++ }

func newTestStore(tasks ...models.Task) *todo.Store {
	var tick int64
	return todo.New(tasks, todo.WithNow(func() time.Time {
		tick++
		return time.UnixMilli(1_700_000_000_000 + tick)
	}))
}

func newTestModel(t *testing.T, cfg Config) *Model {
	t.Helper()
	if cfg.Store == nil {
		cfg.Store = newTestStore()
	}
	model, err := NewModel(cfg)
	require.NoError(t, err)
	return applyUpdate(t, model, tea.WindowSizeMsg{Width: 100, Height: 30})
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{
		Type:  tea.KeyRunes,
		Runes: []rune{r},
	}
}

func applyUpdate(t *testing.T, model *Model, msg tea.Msg) *Model {
	t.Helper()
	next, _ := model.Update(msg)
	out, ok := next.(*Model)
	require.True(t, ok)
	return out
}

func typeText(t *testing.T, model *Model, text string) *Model {
	t.Helper()
	for _, r := range text {
		if r == ' ' {
			model = applyUpdate(t, model, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
			continue
		}
		model = applyUpdate(t, model, runeKey(r))
	}
	return model
}

func addTasks(t *testing.T, model *Model, texts ...string) *Model {
	t.Helper()
	model = applyUpdate(t, model, runeKey('a'))
	for _, text := range texts {
		model = typeText(t, model, text)
		model = applyUpdate(t, model, tea.KeyMsg{Type: tea.KeyEnter})
	}
	return applyUpdate(t, model, tea.KeyMsg{Type: tea.KeyEsc})
}

func texts(view todo.View) []string {
	out := make([]string, 0, len(view.Tasks))
	for _, task := range view.Tasks {
		out = append(out, task.Text)
	}
	return out
}

func TestNewModelValidatesConfig(t *testing.T) {
	_, err := NewModel(Config{})
	require.Error(t, err)

	_, err = NewModel(Config{Store: newTestStore(), Theme: "matrix"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid theme")

	model, err := NewModel(Config{Store: newTestStore(), Theme: " Dark "})
	require.NoError(t, err)
	require.Equal(t, "dark", model.theme.Name)

	model, err = NewModel(Config{Store: newTestStore()})
	require.NoError(t, err)
	require.Equal(t, "light", model.theme.Name)
}

func TestUpdateHandlesResizeHelpAndQuit(t *testing.T) {
	flusher := &countingFlusher{}
	model := newTestModel(t, Config{Writer: flusher})
	require.Equal(t, 100, model.width)
	require.Equal(t, 30, model.height)

	model = applyUpdate(t, model, runeKey('?'))
	require.True(t, model.showHelp)
	require.Contains(t, model.View(), "Dismiss")
	model = applyUpdate(t, model, runeKey('x'))
	require.True(t, model.showHelp)
	model = applyUpdate(t, model, tea.KeyMsg{Type: tea.KeyEsc})
	require.False(t, model.showHelp)

	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	require.True(t, ok)
	require.Equal(t, 1, flusher.flushes)
}

func TestQuitKeyFlushesWriter(t *testing.T) {
	flusher := &countingFlusher{}
	model := newTestModel(t, Config{Writer: flusher})

	_, cmd := model.Update(runeKey('q'))
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	require.True(t, ok)
	require.Equal(t, 1, flusher.flushes)
}

func TestInputAddsTrimmedTasks(t *testing.T) {
	model := newTestModel(t, Config{})

	model = applyUpdate(t, model, runeKey('a'))
	require.Equal(t, modeInput, model.mode)
	model = typeText(t, model, "  Buy milk ")
	model = applyUpdate(t, model, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, "", model.input)

	model = applyUpdate(t, model, tea.KeyMsg{Type: tea.KeyEnter})
	model = typeText(t, model, "Walk dog!")
	model = applyUpdate(t, model, tea.KeyMsg{Type: tea.KeyBackspace})
	model = applyUpdate(t, model, tea.KeyMsg{Type: tea.KeyEnter})

	require.Equal(t, []string{"Buy milk", "Walk dog"}, texts(model.view))
	require.Equal(t, 1, model.cursor)

	model = applyUpdate(t, model, runeKey('q'))
	require.Equal(t, modeInput, model.mode)
	require.Equal(t, "q", model.input)

	model = applyUpdate(t, model, tea.KeyMsg{Type: tea.KeyEsc})
	require.Equal(t, modeBrowse, model.mode)
	require.Equal(t, "", model.input)
}

func TestToggleFilterAndRemainingCount(t *testing.T) {
	model := newTestModel(t, Config{})
	model = addTasks(t, model, "Buy milk", "Walk dog")

	model = applyUpdate(t, model, runeKey('g'))
	model = applyUpdate(t, model, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	require.True(t, model.view.Tasks[0].Completed)
	require.Equal(t, 1, model.view.Remaining)
	require.Contains(t, model.View(), "1 item left")

	model = applyUpdate(t, model, runeKey('2'))
	require.Equal(t, models.FilterActive, model.view.Filter)
	require.Equal(t, []string{"Walk dog"}, texts(model.view))

	model = applyUpdate(t, model, runeKey('3'))
	require.Equal(t, []string{"Buy milk"}, texts(model.view))

	model = applyUpdate(t, model, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, models.FilterAll, model.view.Filter)
	require.Len(t, model.view.Tasks, 2)

	model = applyUpdate(t, model, runeKey('x'))
	require.False(t, model.view.Tasks[0].Completed)
	require.Contains(t, model.View(), "2 items left")
}

func TestEditCommitAndCancel(t *testing.T) {
	model := newTestModel(t, Config{})
	model = addTasks(t, model, "Buy milk")
	model = applyUpdate(t, model, runeKey('g'))

	model = applyUpdate(t, model, runeKey('e'))
	require.Equal(t, modeEdit, model.mode)
	require.True(t, model.view.Editing)
	require.Equal(t, "Buy milk", model.view.EditText)

	for i := 0; i < len("milk"); i++ {
		model = applyUpdate(t, model, tea.KeyMsg{Type: tea.KeyBackspace})
	}
	model = typeText(t, model, "oat milk")
	require.Contains(t, model.View(), "Buy oat milk")
	model = applyUpdate(t, model, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, modeBrowse, model.mode)
	require.Equal(t, []string{"Buy oat milk"}, texts(model.view))

	model = applyUpdate(t, model, runeKey('e'))
	model = typeText(t, model, " now")
	model = applyUpdate(t, model, tea.KeyMsg{Type: tea.KeyEsc})
	require.False(t, model.view.Editing)
	require.Equal(t, []string{"Buy oat milk"}, texts(model.view))
}

func TestRemoveAndClearCompleted(t *testing.T) {
	model := newTestModel(t, Config{})
	model = addTasks(t, model, "a", "b", "c", "d")

	model = applyUpdate(t, model, runeKey('g'))
	model = applyUpdate(t, model, runeKey('x'))
	model = applyUpdate(t, model, runeKey('j'))
	model = applyUpdate(t, model, runeKey('j'))
	model = applyUpdate(t, model, runeKey('x'))
	model = applyUpdate(t, model, runeKey('C'))
	require.Equal(t, []string{"b", "d"}, texts(model.view))

	model = applyUpdate(t, model, runeKey('G'))
	model = applyUpdate(t, model, runeKey('d'))
	require.Equal(t, []string{"b"}, texts(model.view))
	require.Equal(t, 0, model.cursor)

	model = applyUpdate(t, model, tea.KeyMsg{Type: tea.KeyDelete})
	require.Empty(t, model.view.Tasks)
	require.Contains(t, model.View(), "No tasks yet")

	model = applyUpdate(t, model, runeKey('x'))
	require.Empty(t, model.view.Tasks)
}

func TestThemeToggleIsPresentationOnly(t *testing.T) {
	store := newTestStore(models.Task{ID: "1", Text: "keep"})
	model := newTestModel(t, Config{Store: store, Theme: "light"})
	before := store.Tasks()

	model = applyUpdate(t, model, runeKey('t'))
	require.Equal(t, "dark", model.theme.Name)
	require.Contains(t, model.View(), "dark")
	model = applyUpdate(t, model, runeKey('t'))
	require.Equal(t, "light", model.theme.Name)

	require.Equal(t, before, store.Tasks())
}

func TestCursorStaysVisible(t *testing.T) {
	tasks := make([]models.Task, 0, 50)
	for i := 0; i < 50; i++ {
		tasks = append(tasks, models.Task{ID: fmt.Sprintf("%d", i), Text: fmt.Sprintf("task %02d", i)})
	}
	model := newTestModel(t, Config{Store: newTestStore(tasks...)})

	model = applyUpdate(t, model, runeKey('G'))
	require.Equal(t, 49, model.cursor)
	require.Contains(t, model.View(), "task 49")
	require.NotContains(t, model.View(), "task 00")

	model = applyUpdate(t, model, runeKey('k'))
	require.Equal(t, 48, model.cursor)
}

func TestVisibleRange(t *testing.T) {
	start, end := visibleRange(5, 4, 10)
	require.Equal(t, 0, start)
	require.Equal(t, 5, end)

	start, end = visibleRange(50, 0, 10)
	require.Equal(t, 0, start)
	require.Equal(t, 10, end)

	start, end = visibleRange(50, 49, 10)
	require.Equal(t, 40, start)
	require.Equal(t, 50, end)

	start, end = visibleRange(50, 25, 10)
	require.Equal(t, 20, start)
	require.Equal(t, 30, end)
}

func TestItemsLeft(t *testing.T) {
	require.Equal(t, "0 items left", itemsLeft(0))
	require.Equal(t, "1 item left", itemsLeft(1))
	require.Equal(t, "3 items left", itemsLeft(3))
}
