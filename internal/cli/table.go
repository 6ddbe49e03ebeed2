package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/mattn/go-runewidth"

	"github.com/tOgg1/tick/internal/models"
	"github.com/tOgg1/tick/internal/todo"
)

const columnGap = "  "

var (
	taskColumns    = []string{"#", "DONE", "TEXT", "ID"}
	historyColumns = []string{"TIME", "EVENT", "TASK", "DETAIL"}
)

// table lays out cells in columns sized by terminal display width, so task
// text in CJK or with emoji still lines up.
type table struct {
	headers []string
	rows    [][]string
}

func newTable(headers ...string) *table {
	return &table{headers: headers}
}

// addRow appends a row. Control characters in task text (an imported tab or
// newline) would break the layout and are shown as spaces.
func (t *table) addRow(cells ...string) {
	row := make([]string, len(cells))
	for i, cell := range cells {
		row[i] = flattenCell(cell)
	}
	t.rows = append(t.rows, row)
}

func (t *table) widths() []int {
	widths := make([]int, len(t.headers))
	measure := func(row []string) {
		for i, cell := range row {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	measure(t.headers)
	for _, row := range t.rows {
		measure(row)
	}
	return widths
}

// render writes the header and rows. The last column is never padded.
func (t *table) render(out io.Writer) error {
	widths := t.widths()
	if len(widths) == 0 {
		return nil
	}
	w := bufio.NewWriter(out)
	writeRow := func(row []string) {
		for i := range widths {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			if i == len(widths)-1 {
				w.WriteString(cell)
				break
			}
			w.WriteString(runewidth.FillRight(cell, widths[i]))
			w.WriteString(columnGap)
		}
		w.WriteString("\n")
	}
	if len(t.headers) > 0 {
		writeRow(t.headers)
	}
	for _, row := range t.rows {
		writeRow(row)
	}
	return w.Flush()
}

// writeTaskTable prints view followed by the items-left counter. Positions
// refer to the full list so they can be passed back to done, edit and rm.
func writeTaskTable(out io.Writer, view todo.View, all []models.Task) error {
	if len(view.Tasks) == 0 {
		if _, err := fmt.Fprintln(out, "No tasks."); err != nil {
			return err
		}
	} else {
		positions := make(map[string]int, len(all))
		for i, task := range all {
			positions[task.ID] = i + 1
		}
		tbl := newTable(taskColumns...)
		for _, task := range view.Tasks {
			tbl.addRow(strconv.Itoa(positions[task.ID]), formatStatus(task.Completed), task.Text, task.ID)
		}
		if err := tbl.render(out); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(out, itemsLeft(view.Remaining))
	return err
}

// writeHistoryTable prints recorded events oldest first.
func writeHistoryTable(out io.Writer, events []*models.Event) error {
	tbl := newTable(historyColumns...)
	for _, event := range events {
		tbl.addRow(
			event.Timestamp.Local().Format(time.DateTime),
			string(event.Type),
			event.EntityID,
			describePayload(event),
		)
	}
	return tbl.render(out)
}

func formatStatus(completed bool) string {
	if completed {
		return "[x]"
	}
	return "[ ]"
}

func itemsLeft(n int) string {
	if n == 1 {
		return "1 item left"
	}
	return fmt.Sprintf("%d items left", n)
}

func flattenCell(value string) string {
	if strings.IndexFunc(value, unicode.IsControl) < 0 {
		return value
	}
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, value)
}
