package models

import (
	"errors"
	"fmt"
	"strings"
)

// Task validation errors.
var (
	ErrEmptyTaskID     = errors.New("task id is required")
	ErrEmptyTaskText   = errors.New("task text is required")
	ErrDuplicateTaskID = errors.New("duplicate task id")
)

// Task is a single to-do item.
type Task struct {
	// ID is the opaque identifier assigned at creation. It never changes.
	ID string `json:"id"`

	// Text is the display text.
	Text string `json:"text"`

	// Completed marks the task as done.
	Completed bool `json:"completed"`
}

// Validate checks the fields required for a freshly created task.
func (t *Task) Validate() error {
	validation := &ValidationErrors{}
	if strings.TrimSpace(t.ID) == "" {
		validation.Add("id", ErrEmptyTaskID)
	}
	if strings.TrimSpace(t.Text) == "" {
		validation.Add("text", ErrEmptyTaskText)
	}
	return validation.Err()
}

// CloneTasks returns a copy of tasks that shares no backing array.
func CloneTasks(tasks []Task) []Task {
	if tasks == nil {
		return []Task{}
	}
	out := make([]Task, len(tasks))
	copy(out, tasks)
	return out
}

// Filter selects which tasks the derived view shows.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

// Filters lists the filter modes in display order.
var Filters = []Filter{FilterAll, FilterActive, FilterCompleted}

// ParseFilter converts user input to a Filter. Empty input means all.
func ParseFilter(value string) (Filter, error) {
	switch Filter(strings.ToLower(strings.TrimSpace(value))) {
	case "", FilterAll:
		return FilterAll, nil
	case FilterActive:
		return FilterActive, nil
	case FilterCompleted:
		return FilterCompleted, nil
	default:
		return "", fmt.Errorf("invalid filter %q (want all, active or completed)", value)
	}
}

// Matches reports whether the task belongs in a view with this filter.
func (f Filter) Matches(task Task) bool {
	switch f {
	case FilterActive:
		return !task.Completed
	case FilterCompleted:
		return task.Completed
	default:
		return true
	}
}

// Next cycles to the following filter mode.
func (f Filter) Next() Filter {
	for i, candidate := range Filters {
		if candidate == f {
			return Filters[(i+1)%len(Filters)]
		}
	}
	return FilterAll
}
