package cli

import (
	"encoding/json"
	"io"

	"github.com/tOgg1/tick/internal/models"
	"github.com/tOgg1/tick/internal/todo"
)

// listResult is the --json payload for commands that print the list.
type listResult struct {
	Filter    models.Filter `json:"filter"`
	Remaining int           `json:"remaining"`
	Total     int           `json:"total"`
	Tasks     []models.Task `json:"tasks"`
}

func writeJSON(out io.Writer, v any) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func newListResult(view todo.View) listResult {
	return listResult{
		Filter:    view.Filter,
		Remaining: view.Remaining,
		Total:     view.Total,
		Tasks:     models.CloneTasks(view.Tasks),
	}
}
