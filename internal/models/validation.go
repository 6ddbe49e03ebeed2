package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// TaskListField names the whole task list in validation output.
const TaskListField = "tasks"

// maxReported bounds how many problems Error spells out.
const maxReported = 5

// ValidationError is one rejected field of a task or task list.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Cause   error  `json:"-"`
}

func (v ValidationError) Error() string {
	if v.Field == "" {
		return v.Message
	}
	return v.Field + ": " + v.Message
}

// ValidationErrors collects every problem found in a task or a task list so
// they are reported together instead of one per attempt.
type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

// Add records err against field. Nested ValidationErrors are flattened with
// their fields prefixed.
func (v *ValidationErrors) Add(field string, err error) {
	if err == nil {
		return
	}

	var nested *ValidationErrors
	if errors.As(err, &nested) {
		for _, sub := range nested.Errors {
			sub.Field = joinField(field, sub.Field)
			v.Errors = append(v.Errors, sub)
		}
		return
	}

	v.Errors = append(v.Errors, ValidationError{Field: field, Message: err.Error(), Cause: err})
}

// AddMessage records a problem that has no sentinel error.
func (v *ValidationErrors) AddMessage(field, message string) {
	if message == "" {
		return
	}
	v.Errors = append(v.Errors, ValidationError{Field: field, Message: message})
}

// AddTask records err against a field of the task at index, for example
// tasks[2].id.
func (v *ValidationErrors) AddTask(index int, field string, err error) {
	v.Add(TaskField(index, field), err)
}

// Err returns nil when nothing was recorded.
func (v *ValidationErrors) Err() error {
	if v == nil || len(v.Errors) == 0 {
		return nil
	}
	return v
}

func (v *ValidationErrors) Error() string {
	if v == nil || len(v.Errors) == 0 {
		return "validation failed"
	}
	if len(v.Errors) == 1 {
		return v.Errors[0].Error()
	}

	shown := v.Errors
	if len(shown) > maxReported {
		shown = shown[:maxReported]
	}
	parts := make([]string, 0, len(shown)+1)
	for _, err := range shown {
		parts = append(parts, err.Error())
	}
	if hidden := len(v.Errors) - len(shown); hidden > 0 {
		parts = append(parts, fmt.Sprintf("and %d more", hidden))
	}
	return strings.Join(parts, "; ")
}

// Is lets errors.Is match any recorded cause.
func (v *ValidationErrors) Is(target error) bool {
	if v == nil {
		return false
	}
	for _, err := range v.Errors {
		if err.Cause != nil && errors.Is(err.Cause, target) {
			return true
		}
	}
	return false
}

// TaskField formats the field path of one task in a list.
func TaskField(index int, field string) string {
	return joinField(TaskListField+"["+strconv.Itoa(index)+"]", field)
}

// FieldFromPointer turns a JSON pointer into the task list into a field path:
// "/1/completed" becomes tasks[1].completed and the root becomes tasks.
func FieldFromPointer(ptr string) string {
	ptr = strings.TrimPrefix(strings.TrimPrefix(ptr, "#"), "/")
	field := TaskListField
	if ptr == "" {
		return field
	}
	for _, token := range strings.Split(ptr, "/") {
		token = pointerUnescaper.Replace(token)
		if n, err := strconv.Atoi(token); err == nil && n >= 0 {
			field += "[" + token + "]"
			continue
		}
		field = joinField(field, token)
	}
	return field
}

var pointerUnescaper = strings.NewReplacer("~1", "/", "~0", "~")

func joinField(prefix, field string) string {
	switch {
	case prefix == "":
		return field
	case field == "":
		return prefix
	default:
		return prefix + "." + field
	}
}
