package models

import (
	"errors"
	"strings"
	"testing"
)

func TestValidationErrorsIs(t *testing.T) {
	validation := &ValidationErrors{}
	validation.Add("text", ErrEmptyTaskText)

	err := validation.Err()
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, ErrEmptyTaskText) {
		t.Fatalf("expected errors.Is to match ErrEmptyTaskText, got %v", err)
	}
}

func TestValidationErrorsNestedFields(t *testing.T) {
	nested := &ValidationErrors{}
	nested.AddMessage("text", "task text is required")

	validation := &ValidationErrors{}
	validation.Add("tasks[0]", nested)

	err := validation.Err()
	if err == nil {
		t.Fatal("expected error")
	}

	list, ok := err.(*ValidationErrors)
	if !ok {
		t.Fatalf("expected ValidationErrors type, got %T", err)
	}
	if len(list.Errors) != 1 {
		t.Fatalf("expected 1 error, got %d", len(list.Errors))
	}
	if list.Errors[0].Field != "tasks[0].text" {
		t.Fatalf("expected field tasks[0].text, got %q", list.Errors[0].Field)
	}
}

func TestValidationErrorsEmptyIsNil(t *testing.T) {
	validation := &ValidationErrors{}
	if err := validation.Err(); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestValidationErrorsAddTask(t *testing.T) {
	validation := &ValidationErrors{}
	validation.AddTask(2, "id", ErrEmptyTaskID)

	if len(validation.Errors) != 1 {
		t.Fatalf("expected 1 error, got %d", len(validation.Errors))
	}
	if got := validation.Errors[0].Field; got != "tasks[2].id" {
		t.Fatalf("expected field tasks[2].id, got %q", got)
	}
	if !errors.Is(validation.Err(), ErrEmptyTaskID) {
		t.Fatalf("expected errors.Is to match ErrEmptyTaskID")
	}
}

func TestFieldFromPointer(t *testing.T) {
	cases := map[string]string{
		"":              "tasks",
		"#":             "tasks",
		"/1":            "tasks[1]",
		"/1/completed":  "tasks[1].completed",
		"#/0/id":        "tasks[0].id",
		"/0/a~1b":       "tasks[0].a/b",
		"/0/tilde~0key": "tasks[0].tilde~key",
	}
	for ptr, want := range cases {
		if got := FieldFromPointer(ptr); got != want {
			t.Fatalf("FieldFromPointer(%q) = %q, want %q", ptr, got, want)
		}
	}
}

func TestValidationErrorsSummarizesLongLists(t *testing.T) {
	validation := &ValidationErrors{}
	for i := 0; i < maxReported+3; i++ {
		validation.AddTask(i, "id", ErrEmptyTaskID)
	}

	msg := validation.Error()
	if !strings.HasPrefix(msg, "tasks[0].id: task id is required; ") {
		t.Fatalf("unexpected message %q", msg)
	}
	if !strings.HasSuffix(msg, "; and 3 more") {
		t.Fatalf("expected hidden count, got %q", msg)
	}
	if strings.Contains(msg, "tasks[5]") {
		t.Fatalf("expected at most %d problems spelled out, got %q", maxReported, msg)
	}
}
